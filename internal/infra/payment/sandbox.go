package payment

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/internal/pkg/paysign"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	tradeStateNotPay = "NOTPAY"
	signTypeHMAC     = "HMAC-SHA256"
)

var ErrUnknownOrder = errs.New("sandbox: unknown order number")

// SandboxGateway stands in for the real provider: it issues prepay parameters and settles
// orders on demand, signing notifications with the callback secret.
type SandboxGateway struct {
	secret string
	now    func() time.Time

	mu     sync.Mutex
	trades map[string]*shared.GatewayTransaction
}

func NewSandboxGateway(secret string) *SandboxGateway {
	return &SandboxGateway{
		secret: secret,
		now:    time.Now,
		trades: make(map[string]*shared.GatewayTransaction),
	}
}

func (g *SandboxGateway) CreatePrepay(ctx context.Context, req shared.PrepayRequest) (*shared.PrepayParams, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	if _, ok := g.trades[req.OrderNumber]; !ok {
		g.trades[req.OrderNumber] = &shared.GatewayTransaction{OrderNumber: req.OrderNumber, TradeState: tradeStateNotPay}
	}
	g.mu.Unlock()

	prepayID := "sandbox_" + uuid.NewString()
	ts := strconv.FormatInt(g.now().Unix(), 10)
	nonce := uuid.NewString()
	pkg := "prepay_id=" + prepayID
	return &shared.PrepayParams{
		PrepayID:  prepayID,
		TimeStamp: ts,
		NonceStr:  nonce,
		Package:   pkg,
		SignType:  signTypeHMAC,
		PaySign:   paysign.Sign(g.secret, ts, nonce, pkg),
	}, nil
}

func (g *SandboxGateway) QueryTransaction(ctx context.Context, orderNumber string) (*shared.GatewayTransaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	t, ok := g.trades[orderNumber]
	if !ok {
		return &shared.GatewayTransaction{OrderNumber: orderNumber, TradeState: shared.TradeStateNotExist}, nil
	}
	cp := *t
	return &cp, nil
}

// Settle marks the order paid and returns the transaction id and the signature a provider
// callback for it would carry.
func (g *SandboxGateway) Settle(orderNumber string) (string, string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	t, ok := g.trades[orderNumber]
	if !ok {
		return "", "", ErrUnknownOrder
	}
	if t.TransactionID == "" {
		t.TransactionID = "SBX" + strconv.FormatInt(g.now().UnixNano(), 10)
	}
	t.TradeState = shared.TradeStateSuccess
	return t.TransactionID, paysign.Sign(g.secret, orderNumber, t.TransactionID, shared.TradeStateSuccess), nil
}
