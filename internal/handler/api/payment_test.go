//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"github.com/bruceg7333/water-shop-api/internal/domain/order"
	"github.com/bruceg7333/water-shop-api/internal/domain/user"
	"github.com/bruceg7333/water-shop-api/internal/handler/api"
	resdto "github.com/bruceg7333/water-shop-api/internal/handler/dto/response"
	"github.com/bruceg7333/water-shop-api/internal/pkg/errs"
	"github.com/bruceg7333/water-shop-api/internal/usecase/commands"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"
	"github.com/bruceg7333/water-shop-api/tests/common/httptest"
	commandsmock "github.com/bruceg7333/water-shop-api/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockPayments *commandsmock.MockPaymentCommands
	actor        shared.Actor
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockPayments = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.actor = shared.Actor{UserID: uuid.New(), Role: user.RoleAdmin}
	handler := api.NewPaymentHandler(s.mockPayments)

	s.router.POST("/payments/callback", handler.Callback)
	authed := s.router.Group("/", func(c *gin.Context) {
		c.Set("user_id", s.actor.UserID)
		c.Set("actor", s.actor)
	})
	authed.POST("/payments", handler.Create)
	authed.GET("/payments/:orderId/status", handler.Status)
	authed.PUT("/admin/orders/:id/pay", handler.MarkPaid)
}

func (s *PaymentHandlerTestSuite) SetupSubTest() {
	s.SetupTest()
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *PaymentHandlerTestSuite) TestCreate() {
	s.Run("success: returns prepay params", func() {
		orderID := uuid.New()
		s.mockPayments.EXPECT().CreatePayment(gomock.Any(), s.actor, orderID).
			Return(&shared.PrepayParams{PrepayID: "prepay-1", SignType: "HMAC-SHA256"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments", map[string]any{"order_id": orderID}, "token")

		var response shared.PrepayParams
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("prepay-1", response.PrepayID)
	})

	s.Run("error: cash on delivery order", func() {
		orderID := uuid.New()
		s.mockPayments.EXPECT().CreatePayment(gomock.Any(), s.actor, orderID).Return(nil, errs.ErrPaymentMethodMismatch)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments", map[string]any{"order_id": orderID}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Order does not use this payment method")
	})

	s.Run("error: gateway unavailable", func() {
		orderID := uuid.New()
		s.mockPayments.EXPECT().CreatePayment(gomock.Any(), s.actor, orderID).
			Return(nil, errs.Mark(errs.New("circuit breaker is open"), errs.ErrPaymentGateway))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments", map[string]any{"order_id": orderID}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Payment gateway unavailable")
	})

	s.Run("error: missing order id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments", map[string]any{}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *PaymentHandlerTestSuite) TestCallback() {
	body := map[string]any{
		"order_number":   "WS202506011000000001",
		"transaction_id": "TX-1",
		"status":         "SUCCESS",
		"signature":      "sig",
	}

	s.Run("success: acknowledges the gateway", func() {
		s.mockPayments.EXPECT().HandleCallback(gomock.Any(), commands.PaymentNotification{
			OrderNumber:   "WS202506011000000001",
			TransactionID: "TX-1",
			Status:        "SUCCESS",
			Signature:     "sig",
		}).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/callback", body, "")

		var response map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("SUCCESS", response["code"])
	})

	s.Run("error: forged signature", func() {
		s.mockPayments.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).Return(errs.ErrInvalidSignature)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/callback", body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid notification signature")
	})

	s.Run("error: conflicting transaction", func() {
		s.mockPayments.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).Return(order.ErrPaymentRefMismatch)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/callback", body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "different payment reference")
	})
}

func (s *PaymentHandlerTestSuite) TestStatusAndMarkPaid() {
	orderID := uuid.New()

	s.Run("success: status reports the trade state", func() {
		s.mockPayments.EXPECT().SyncStatus(gomock.Any(), s.actor, orderID).Return(&commands.PaymentStatusResult{
			OrderID:    orderID,
			Status:     order.StatusPendingShipment,
			TradeState: "SUCCESS",
			Changed:    true,
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/"+orderID.String()+"/status", nil, "token")

		var response resdto.PaymentStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("pending_shipment", response.Status)
		s.True(response.Changed)
	})

	s.Run("success: admin records cash payment", func() {
		s.mockPayments.EXPECT().MarkCashCollected(gomock.Any(), s.actor, orderID).Return(&commands.OrderStatusResult{
			OrderID: orderID,
			Status:  order.StatusPendingShipment,
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/admin/orders/"+orderID.String()+"/pay", nil, "token")

		var response resdto.OrderStatusResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Changed)
	})
}
