//go:build e2e

package order_test

import (
	"net/http"
	nethttptest "net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/bruceg7333/water-shop-api/internal/domain/user"
	resdto "github.com/bruceg7333/water-shop-api/internal/handler/dto/response"
	"github.com/bruceg7333/water-shop-api/internal/handler/httperr"
	"github.com/bruceg7333/water-shop-api/internal/pkg/paysign"
	"github.com/bruceg7333/water-shop-api/internal/usecase/queries"
	"github.com/bruceg7333/water-shop-api/tests/common/authtest"
	"github.com/bruceg7333/water-shop-api/tests/common/dbtest"
	"github.com/bruceg7333/water-shop-api/tests/common/httptest"
	"github.com/bruceg7333/water-shop-api/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

const (
	ordersURL      = "/api/orders"
	adminOrdersURL = "/api/admin/orders"
	paymentsURL    = "/api/payments"
	callbackURL    = "/api/payments/callback"
	claimURL       = "/api/coupons/claim"
	cartURL        = "/api/cart"
)

type orderSuite struct {
	e2e.SharedSuite
	jwtHelper *authtest.JWTHelper
}

func TestOrderSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(orderSuite))
}

func (s *orderSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = authtest.NewJWTHelper(s.Config.JWT)
}

// customer creates a user row and signs a token for it without going through bcrypt.
func (s *orderSuite) customer(email string) (uuid.UUID, string) {
	id := dbtest.CreateTestUser(s.T(), s.DB, email, string(user.RoleCustomer))
	return id, s.jwtHelper.GenerateToken(s.T(), id, user.RoleCustomer)
}

func (s *orderSuite) admin() string {
	id := dbtest.CreateTestUser(s.T(), s.DB, "admin@example.com", string(user.RoleAdmin))
	return s.jwtHelper.GenerateToken(s.T(), id, user.RoleAdmin)
}

func checkoutBody(method string, items ...map[string]any) map[string]any {
	return map[string]any{
		"items": items,
		"shipping": map[string]any{
			"name":    "Li Si",
			"phone":   "13900000000",
			"address": "8 Spring Road",
		},
		"payment_method": method,
	}
}

func item(productID uuid.UUID, qty int) map[string]any {
	return map[string]any{"product_id": productID, "quantity": qty}
}

func (s *orderSuite) checkout(token string, body map[string]any) *resdto.OrderResponse {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, ordersURL, body, token)
	var res resdto.CheckoutResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
	require.NotNil(s.T(), res.Order)
	return res.Order
}

func (s *orderSuite) put(path, token string) *nethttptest.ResponseRecorder {
	return httptest.PerformRequest(s.T(), s.Router, http.MethodPut, path, nil, token)
}

func (s *orderSuite) payByCallback(o *resdto.OrderResponse, txID string) *nethttptest.ResponseRecorder {
	sig := paysign.Sign(s.Config.Payment.CallbackSecret, o.OrderNumber, txID, "SUCCESS")
	return httptest.PerformRequest(s.T(), s.Router, http.MethodPost, callbackURL, map[string]any{
		"order_number":   o.OrderNumber,
		"transaction_id": txID,
		"status":         "SUCCESS",
		"signature":      sig,
	}, "")
}

func requireDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func (s *orderSuite) TestCheckoutTotals() {
	s.Run("two units at 10.00 with shipping 5.00 totals 25.00", func() {
		t := s.T()
		_, token := s.customer("buyer@example.com")
		productA := dbtest.CreateTestProduct(t, s.DB, "Product A", "10.00", 10)

		o := s.checkout(token, checkoutBody("wechat_pay", item(productA, 2)))

		requireDecimal(t, "20", o.ItemsTotal)
		requireDecimal(t, "5", o.ShippingFee)
		requireDecimal(t, "0", o.DiscountAmount)
		requireDecimal(t, "25", o.GrandTotal)
		require.Equal(t, "pending_payment", o.Status)
		require.False(t, o.IsPaid)
		require.Equal(t, 8, dbtest.ProductStock(t, s.DB, productA))
	})

	s.Run("10 percent coupon capped at 3.00 totals 23.00", func() {
		t := s.T()
		_, token := s.customer("buyer@example.com")
		productA := dbtest.CreateTestProduct(t, s.DB, "Product A", "10.00", 10)
		maxDiscount := "3"
		f := dbtest.DefaultCoupon("TENOFF")
		f.Type, f.Amount, f.MaxDiscount = "percentage", "10", &maxDiscount
		couponID := dbtest.CreateTestCoupon(t, s.DB, f)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, claimURL, map[string]any{"code": "TENOFF"}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		body := checkoutBody("wechat_pay", item(productA, 2))
		body["coupon_code"] = "TENOFF"
		o := s.checkout(token, body)

		requireDecimal(t, "20", o.ItemsTotal)
		requireDecimal(t, "2", o.DiscountAmount)
		requireDecimal(t, "23", o.GrandTotal)
		require.NotNil(t, o.CouponCode)
		require.Equal(t, "TENOFF", *o.CouponCode)

		_, used := dbtest.CouponCounts(t, s.DB, couponID)
		require.Equal(t, 1, used)
	})

	s.Run("items above the free shipping threshold ship free", func() {
		t := s.T()
		_, token := s.customer("buyer@example.com")

		o := s.checkout(token, checkoutBody("cash_on_delivery", item(dbtest.MineralWaterID, 4)))

		requireDecimal(t, "100", o.ItemsTotal)
		requireDecimal(t, "0", o.ShippingFee)
		requireDecimal(t, "100", o.GrandTotal)
	})

	s.Run("lines of the same product are merged before the stock check", func() {
		t := s.T()
		_, token := s.customer("buyer@example.com")
		productA := dbtest.CreateTestProduct(t, s.DB, "Product A", "10.00", 3)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL,
			checkoutBody("wechat_pay", item(productA, 2), item(productA, 2)), token)

		errRes := httptest.AssertErrorResponse(t, w, http.StatusConflict, "Insufficient stock")
		require.Equal(t, httperr.CodeInsufficientStock, errRes.Error.Code)
		detail, ok := errRes.Detail.(map[string]any)
		require.True(t, ok)
		require.EqualValues(t, 4, detail["requested"])
		require.EqualValues(t, 3, detail["available"])
		require.Equal(t, 3, dbtest.ProductStock(t, s.DB, productA))
	})
}

func (s *orderSuite) TestCheckoutFailuresRollBack() {
	s.Run("coupon minimum not met leaves stock untouched", func() {
		t := s.T()
		_, token := s.customer("buyer@example.com")
		productA := dbtest.CreateTestProduct(t, s.DB, "Product A", "10.00", 10)
		f := dbtest.DefaultCoupon("BIGSPEND")
		f.MinPurchase = "50"
		couponID := dbtest.CreateTestCoupon(t, s.DB, f)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, claimURL, map[string]any{"code": "BIGSPEND"}, token)
		require.Equal(t, http.StatusCreated, w.Code)

		body := checkoutBody("wechat_pay", item(productA, 2))
		body["coupon_code"] = "BIGSPEND"
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, body, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "minimum")

		require.Equal(t, 10, dbtest.ProductStock(t, s.DB, productA))
		_, used := dbtest.CouponCounts(t, s.DB, couponID)
		require.Zero(t, used)
	})

	s.Run("coupon without a claim is rejected", func() {
		t := s.T()
		_, token := s.customer("buyer@example.com")
		dbtest.CreateTestCoupon(t, s.DB, dbtest.DefaultCoupon("UNCLAIMED"))

		body := checkoutBody("wechat_pay", item(dbtest.SpringWaterID, 1))
		body["coupon_code"] = "UNCLAIMED"
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, body, token)
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, 100, dbtest.ProductStock(t, s.DB, dbtest.SpringWaterID))
	})

	s.Run("inactive product", func() {
		t := s.T()
		_, token := s.customer("buyer@example.com")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL,
			checkoutBody("wechat_pay", item(dbtest.RetiredWaterID, 1)), token)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("validation errors", func() {
		t := s.T()
		_, token := s.customer("buyer@example.com")

		cases := []map[string]any{
			checkoutBody("wechat_pay"),
			checkoutBody("wechat_pay", item(dbtest.SpringWaterID, 0)),
			checkoutBody("bitcoin", item(dbtest.SpringWaterID, 1)),
		}
		for _, body := range cases {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL, body, token)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		}
	})
}

func (s *orderSuite) TestParallelCheckoutsNeverOversell() {
	s.Run("ten buyers race for five units", func() {
		t := s.T()
		const buyers, stock = 10, 5
		productA := dbtest.CreateTestProduct(t, s.DB, "Limited Spring", "10.00", stock)

		tokens := make([]string, buyers)
		for i := range tokens {
			_, tokens[i] = s.customer("racer" + uuid.NewString()[:8] + "@example.com")
		}

		var created, rejected, other atomic.Int32
		var g errgroup.Group
		for _, token := range tokens {
			g.Go(func() error {
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL,
					checkoutBody("wechat_pay", item(productA, 1)), token)
				switch w.Code {
				case http.StatusCreated:
					created.Add(1)
				case http.StatusConflict:
					rejected.Add(1)
				default:
					other.Add(1)
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())

		require.EqualValues(t, stock, created.Load())
		require.EqualValues(t, buyers-stock, rejected.Load())
		require.Zero(t, other.Load())
		require.Zero(t, dbtest.ProductStock(t, s.DB, productA))
	})
}

func (s *orderSuite) TestIdempotentCheckout() {
	s.Run("replaying a key returns the original order", func() {
		t := s.T()
		userID, token := s.customer("buyer@example.com")
		key := uuid.NewString()
		body := checkoutBody("wechat_pay", item(dbtest.SpringWaterID, 2))

		send := func(b map[string]any) *nethttptest.ResponseRecorder {
			return httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, ordersURL, b, token,
				map[string]string{"Idempotency-Key": key})
		}

		first := send(body)
		var firstRes resdto.CheckoutResponse
		httptest.AssertSuccessResponse(t, first, http.StatusCreated, &firstRes)

		second := send(body)
		var secondRes resdto.CheckoutResponse
		httptest.AssertSuccessResponse(t, second, http.StatusOK, &secondRes)
		httptest.AssertHeaders(t, second, map[string]string{"Idempotent-Replayed": "true"})
		require.True(t, secondRes.IsReplayed)
		require.Equal(t, firstRes.Order.ID, secondRes.Order.ID)

		require.Equal(t, 1, dbtest.CountOrders(t, s.DB, userID))
		require.Equal(t, 98, dbtest.ProductStock(t, s.DB, dbtest.SpringWaterID))

		changed := checkoutBody("wechat_pay", item(dbtest.SpringWaterID, 3))
		w := send(changed)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("a failed checkout releases its key", func() {
		t := s.T()
		_, token := s.customer("buyer@example.com")
		key := map[string]string{"Idempotency-Key": uuid.NewString()}
		productA := dbtest.CreateTestProduct(t, s.DB, "Product A", "10.00", 1)

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, ordersURL,
			checkoutBody("wechat_pay", item(productA, 2)), token, key)
		require.Equal(t, http.StatusConflict, w.Code)

		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, ordersURL,
			checkoutBody("wechat_pay", item(productA, 2)), token, key)
		require.Equal(t, http.StatusConflict, w.Code, "retry with the same key must run again, not replay")
	})
}

func (s *orderSuite) TestLifecycle() {
	s.Run("paid, delivered and received order credits points once", func() {
		t := s.T()
		userID, token := s.customer("buyer@example.com")
		admin := s.admin()

		o := s.checkout(token, checkoutBody("wechat_pay", item(dbtest.MineralWaterID, 2)))
		requireDecimal(t, "55", o.GrandTotal)

		w := s.put("/api/admin/orders/"+o.ID.String()+"/deliver", admin)
		errRes := httptest.AssertErrorResponse(t, w, http.StatusConflict, "Invalid order status transition")
		require.Equal(t, httperr.CodeInvalidTransition, errRes.Error.Code)
		require.Equal(t, "pending_payment", errRes.Detail.(map[string]any)["current_status"])

		w = s.payByCallback(o, "TX-100")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.Equal(t, "pending_shipment", dbtest.OrderStatus(t, s.DB, o.ID))

		w = s.payByCallback(o, "TX-100")
		require.Equal(t, http.StatusOK, w.Code, "repeated notification is acknowledged")

		w = s.payByCallback(o, "TX-200")
		require.Equal(t, http.StatusConflict, w.Code)

		w = s.put("/api/orders/"+o.ID.String()+"/receipt", token)
		require.Equal(t, http.StatusConflict, w.Code, "cannot receive before delivery")

		w = s.put("/api/admin/orders/"+o.ID.String()+"/deliver", admin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = s.put("/api/orders/"+o.ID.String()+"/receipt", token)
		var status resdto.OrderStatusResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &status)
		require.Equal(t, "completed", status.Status)
		require.EqualValues(t, 55, status.PointsCredited)

		w = s.put("/api/orders/"+o.ID.String()+"/receipt", token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "finalized")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/admin/orders/"+o.ID.String()+"/grant-points", nil, admin)
		var grant resdto.GrantPointsResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &grant)
		require.False(t, grant.Granted)

		require.EqualValues(t, 55, dbtest.PointsBalance(t, s.DB, userID))
		require.Equal(t, dbtest.PointsBalance(t, s.DB, userID), dbtest.PointsLedgerSum(t, s.DB, userID))

		w = s.put("/api/orders/"+o.ID.String()+"/cancel", token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "finalized")
	})

	s.Run("gateway settlement is picked up by a status sync", func() {
		t := s.T()
		_, token := s.customer("buyer@example.com")
		o := s.checkout(token, checkoutBody("wechat_pay", item(dbtest.SpringWaterID, 1)))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, paymentsURL, map[string]any{"order_id": o.ID}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		statusURL := paymentsURL + "/" + o.ID.String() + "/status"
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, statusURL, nil, token)
		var pending resdto.PaymentStatusResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &pending)
		require.Equal(t, "NOTPAY", pending.TradeState)
		require.Equal(t, "pending_payment", pending.Status)

		_, _, err := s.Gateway.Settle(o.OrderNumber)
		require.NoError(t, err)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, statusURL, nil, token)
		var paid resdto.PaymentStatusResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &paid)
		require.Equal(t, "pending_shipment", paid.Status)
		require.True(t, paid.Changed)
	})

	s.Run("cash on delivery is marked paid by an admin", func() {
		t := s.T()
		_, token := s.customer("buyer@example.com")
		admin := s.admin()
		o := s.checkout(token, checkoutBody("cash_on_delivery", item(dbtest.SpringWaterID, 1)))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, paymentsURL, map[string]any{"order_id": o.ID}, token)
		require.Equal(t, http.StatusConflict, w.Code, "no prepay for cash on delivery")

		w = s.put("/api/admin/orders/"+o.ID.String()+"/pay", admin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		w = s.put("/api/admin/orders/"+o.ID.String()+"/pay", admin)
		var again resdto.OrderStatusResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &again)
		require.False(t, again.Changed)
	})

	s.Run("forged callback is rejected", func() {
		t := s.T()
		_, token := s.customer("buyer@example.com")
		o := s.checkout(token, checkoutBody("wechat_pay", item(dbtest.SpringWaterID, 1)))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, callbackURL, map[string]any{
			"order_number":   o.OrderNumber,
			"transaction_id": "TX-1",
			"status":         "SUCCESS",
			"signature":      "deadbeef",
		}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, "pending_payment", dbtest.OrderStatus(t, s.DB, o.ID))
	})

	s.Run("another customer cannot touch the order", func() {
		t := s.T()
		_, owner := s.customer("owner@example.com")
		_, stranger := s.customer("stranger@example.com")
		o := s.checkout(owner, checkoutBody("wechat_pay", item(dbtest.SpringWaterID, 1)))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL+"/"+o.ID.String(), nil, stranger)
		require.Equal(t, http.StatusNotFound, w.Code)

		w = s.put("/api/orders/"+o.ID.String()+"/cancel", stranger)
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}

func (s *orderSuite) TestCancelRestoresStockAndCoupon() {
	s.Run("cancel returns units and the claim can be used again", func() {
		t := s.T()
		_, token := s.customer("buyer@example.com")
		productA := dbtest.CreateTestProduct(t, s.DB, "Product A", "10.00", 10)
		couponID := dbtest.CreateTestCoupon(t, s.DB, dbtest.DefaultCoupon("FIVEOFF"))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, claimURL, map[string]any{"code": "FIVEOFF"}, token)
		require.Equal(t, http.StatusCreated, w.Code)

		body := checkoutBody("wechat_pay", item(productA, 3))
		body["coupon_code"] = "FIVEOFF"
		o := s.checkout(token, body)
		require.Equal(t, 7, dbtest.ProductStock(t, s.DB, productA))
		requireDecimal(t, "30", o.GrandTotal)

		w = s.put("/api/orders/"+o.ID.String()+"/cancel", token)
		var res resdto.OrderStatusResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		require.Equal(t, "canceled", res.Status)

		require.Equal(t, 10, dbtest.ProductStock(t, s.DB, productA))
		_, used := dbtest.CouponCounts(t, s.DB, couponID)
		require.Zero(t, used)

		reused := s.checkout(token, body)
		requireDecimal(t, "5", reused.DiscountAmount)

		w = s.put("/api/orders/"+o.ID.String()+"/cancel", token)
		require.Equal(t, http.StatusConflict, w.Code)
	})
}

func (s *orderSuite) TestCouponPreviewAndDistribution() {
	s.Run("verify previews without redeeming and distribution claims per user", func() {
		t := s.T()
		buyerID, token := s.customer("buyer@example.com")
		otherID, _ := s.customer("other@example.com")
		admin := s.admin()
		couponID := dbtest.CreateTestCoupon(t, s.DB, dbtest.DefaultCoupon("FIVEOFF"))
		verifyURL := "/api/coupons/verify/" + couponID.String()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, verifyURL+"?subtotal=30", nil, token)
		require.Equal(t, http.StatusNotFound, w.Code, "nothing claimed yet")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/admin/coupons/"+couponID.String()+"/distribute",
			map[string]any{"user_ids": []string{buyerID.String(), otherID.String(), uuid.NewString()}}, admin)
		var dist resdto.DistributionResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &dist)
		require.Equal(t, 2, dist.Claimed)
		require.Len(t, dist.Items, 3)
		require.NotNil(t, dist.Items[2].Error)
		require.Equal(t, "USER_NOT_FOUND", dist.Items[2].Error.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, verifyURL+"?subtotal=30", nil, token)
		var preview resdto.CouponPreviewResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &preview)
		requireDecimal(t, "5", preview.Discount)
		requireDecimal(t, "25", preview.Payable)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, verifyURL+"?subtotal=30", nil, token)
		require.Equal(t, http.StatusOK, w.Code, "a preview leaves the claim unused")
		_, used := dbtest.CouponCounts(t, s.DB, couponID)
		require.Zero(t, used)
	})
}

func (s *orderSuite) TestConcurrentClaims() {
	s.Run("same user racing for a single-use coupon gets one claim", func() {
		t := s.T()
		_, token := s.customer("buyer@example.com")
		couponID := dbtest.CreateTestCoupon(t, s.DB, dbtest.DefaultCoupon("ONCE"))

		var created atomic.Int32
		var g errgroup.Group
		for range 8 {
			g.Go(func() error {
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, claimURL, map[string]any{"code": "ONCE"}, token)
				if w.Code == http.StatusCreated {
					created.Add(1)
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())

		require.EqualValues(t, 1, created.Load())
		require.Equal(t, 1, dbtest.CountClaims(t, s.DB, couponID))
		issued, _ := dbtest.CouponCounts(t, s.DB, couponID)
		require.Equal(t, 1, issued)
	})

	s.Run("total limit holds across users", func() {
		t := s.T()
		limit := 3
		f := dbtest.DefaultCoupon("FIRST3")
		f.TotalLimit = &limit
		couponID := dbtest.CreateTestCoupon(t, s.DB, f)

		tokens := make([]string, 8)
		for i := range tokens {
			_, tokens[i] = s.customer("claimer" + uuid.NewString()[:8] + "@example.com")
		}

		var created atomic.Int32
		var g errgroup.Group
		for _, token := range tokens {
			g.Go(func() error {
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, claimURL, map[string]any{"code": "FIRST3"}, token)
				if w.Code == http.StatusCreated {
					created.Add(1)
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())

		require.EqualValues(t, limit, created.Load())
		require.Equal(t, limit, dbtest.CountClaims(t, s.DB, couponID))
	})
}

func (s *orderSuite) TestPointsLedger() {
	s.Run("debits clamp to the balance and the ledger matches the balance", func() {
		t := s.T()
		userID, token := s.customer("buyer@example.com")
		admin := s.admin()

		move := func(direction string, amount int64) *nethttptest.ResponseRecorder {
			return httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/admin/points/entries", map[string]any{
				"user_id":   userID,
				"amount":    amount,
				"direction": direction,
				"source":    "signin",
				"title":     "Daily sign-in",
			}, admin)
		}

		require.Equal(t, http.StatusUnprocessableEntity, move("decrease", 10).Code, "nothing to debit")

		var entry resdto.PointsEntryResponse
		httptest.AssertSuccessResponse(t, move("increase", 40), http.StatusCreated, &entry)
		require.EqualValues(t, 40, entry.BalanceAfter)

		httptest.AssertSuccessResponse(t, move("decrease", 15), http.StatusCreated, &entry)
		require.EqualValues(t, 25, entry.BalanceAfter)

		httptest.AssertSuccessResponse(t, move("decrease", 100), http.StatusCreated, &entry)
		require.EqualValues(t, 25, entry.Applied)
		require.Zero(t, entry.BalanceAfter)

		require.Zero(t, dbtest.PointsBalance(t, s.DB, userID))
		require.Equal(t, dbtest.PointsBalance(t, s.DB, userID), dbtest.PointsLedgerSum(t, s.DB, userID))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/points/entries?limit=2", nil, token)
		var page resdto.PointsEntriesResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)
		require.Len(t, page.Items, 2)
		require.NotNil(t, page.NextCursor)
		require.Equal(t, "decrease", page.Items[0].Direction)
	})
}

func (s *orderSuite) TestListArchiveAndBuyAgain() {
	s.Run("archived orders drop out of the list and buy again fills the cart", func() {
		t := s.T()
		_, token := s.customer("buyer@example.com")

		first := s.checkout(token, checkoutBody("wechat_pay", item(dbtest.SpringWaterID, 2)))
		second := s.checkout(token, checkoutBody("wechat_pay", item(dbtest.MineralWaterID, 1)))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL, nil, token)
		var list resdto.OrderListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Len(t, list.Items, 2)
		require.Equal(t, second.ID, list.Items[0].ID, "newest first")

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, ordersURL+"/"+first.ID.String(), nil, token)
		require.Equal(t, http.StatusConflict, w.Code, "only finished orders can be archived")

		require.Equal(t, http.StatusOK, s.put("/api/orders/"+first.ID.String()+"/cancel", token).Code)
		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, ordersURL+"/"+first.ID.String(), nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)
		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, ordersURL+"/"+first.ID.String(), nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL, nil, token)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Len(t, list.Items, 1)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL+"/"+first.ID.String()+"/buy-again", nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, ordersURL+"/"+first.ID.String()+"/buy-again", nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, cartURL, nil, token)
		var cart queries.CartView
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &cart)

		type line struct {
			ProductID uuid.UUID
			Quantity  int
		}
		got := make([]line, 0, len(cart.Lines))
		for _, l := range cart.Lines {
			got = append(got, line{ProductID: l.ProductID, Quantity: l.Quantity})
		}
		want := []line{{ProductID: dbtest.SpringWaterID, Quantity: 4}}
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("cart mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("status filter and bad cursor", func() {
		t := s.T()
		_, token := s.customer("buyer@example.com")
		s.checkout(token, checkoutBody("wechat_pay", item(dbtest.SpringWaterID, 1)))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL+"?status=completed", nil, token)
		var list resdto.OrderListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Empty(t, list.Items)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL+"?status=lost", nil, token)
		require.Equal(t, http.StatusBadRequest, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, ordersURL+"?after=not-a-cursor", nil, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	s.Run("admin list spans customers and archived orders", func() {
		t := s.T()
		_, alice := s.customer("alice@example.com")
		bobID, bob := s.customer("bob@example.com")
		admin := s.admin()

		a := s.checkout(alice, checkoutBody("wechat_pay", item(dbtest.SpringWaterID, 1)))
		b := s.checkout(bob, checkoutBody("wechat_pay", item(dbtest.MineralWaterID, 1)))
		require.Equal(t, http.StatusOK, s.put("/api/orders/"+a.ID.String()+"/cancel", alice).Code)
		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, ordersURL+"/"+a.ID.String(), nil, alice)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, adminOrdersURL, nil, admin)
		var list resdto.OrderListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Len(t, list.Items, 2)
		require.Equal(t, b.ID, list.Items[0].ID)
		require.Equal(t, &bobID, list.Items[0].UserID)
		require.Equal(t, a.ID, list.Items[1].ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, adminOrdersURL+"?status=canceled", nil, admin)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Len(t, list.Items, 1)
		require.Equal(t, a.ID, list.Items[0].ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, adminOrdersURL+"?keyword=bob%40", nil, admin)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Len(t, list.Items, 1)
		require.Equal(t, b.ID, list.Items[0].ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, adminOrdersURL+"?keyword="+b.OrderNumber, nil, admin)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Len(t, list.Items, 1)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, adminOrdersURL, nil, bob)
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}
