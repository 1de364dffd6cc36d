//go:build e2e

package payment_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"storefront-api/internal/domain/user"
	"storefront-api/internal/handler/dto/request"
	"storefront-api/internal/handler/dto/response"
	"storefront-api/internal/pkg/signature"
	"storefront-api/internal/usecase/shared"
	"storefront-api/tests/common/authtest"
	"storefront-api/tests/common/dbtest"
	"storefront-api/tests/common/httptest"
	"storefront-api/tests/common/testutil"
	"storefront-api/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	createOrderURL   = "/api/payments/create-order"
	verifyPaymentURL = "/api/payments/verify-payment"
	orderURL         = "/api/payments/orders/"
	couponURL        = "/api/coupon"
	validateURL      = "/api/coupon/validate"
)

type PaymentSuite struct {
	e2e.SharedSuite
	tokens *authtest.JWTHelper
}

func (s *PaymentSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.tokens = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *PaymentSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestPaymentSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(PaymentSuite))
}

func tshirts(qty int, price string) request.CreateOrderRequest {
	return request.CreateOrderRequest{
		Products: []request.ProductLine{{ID: "prod_tshirt", Price: decimal.RequireFromString(price), Quantity: qty}},
	}
}

func withCoupon(req request.CreateOrderRequest, code string) request.CreateOrderRequest {
	req.CouponCode = &code
	return req
}

func (s *PaymentSuite) checkout(token string, req request.CreateOrderRequest) response.CreateOrderResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, createOrderURL, req, token)

	var res response.CreateOrderResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
	require.NotEqual(t, uuid.Nil, res.OrderID)
	return res
}

func (s *PaymentSuite) callback(created response.CreateOrderResponse, paymentID string) request.VerifyPaymentRequest {
	sig, err := signature.Sign(created.RazorpayOrderID, paymentID, s.Config.Razorpay.KeySecret)
	require.NoError(s.T(), err)
	return request.VerifyPaymentRequest{
		RazorpayOrderID:   created.RazorpayOrderID,
		RazorpayPaymentID: paymentID,
		RazorpaySignature: sig,
		OrderID:           created.OrderID,
	}
}

func (s *PaymentSuite) verify(token string, req request.VerifyPaymentRequest) response.VerifyPaymentResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, verifyPaymentURL, req, token)

	var res response.VerifyPaymentResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
	return res
}

func (s *PaymentSuite) activeCoupon(token string) *response.CouponResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, couponURL, nil, token)

	var res *response.CouponResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
	return res
}

// =============================================================================
// TestCheckout - create order, verify payment, coupon issuance
// =============================================================================

func (s *PaymentSuite) TestCheckout() {
	s.Run("Normal case: paid order above the threshold issues a coupon", func() {
		t := s.T()
		userID := uuid.New()
		token := s.tokens.GenerateToken(t, userID, user.RoleCustomer)

		created := s.checkout(token, tshirts(2, "150.00"))
		assert.Equal(t, int64(30000), created.Amount)
		assert.Equal(t, "INR", created.Currency)
		assert.Equal(t, s.Config.Razorpay.KeyID, created.Key)
		assert.Equal(t, "pending", dbtest.OrderStatus(t, s.DB, created.OrderID))

		reqs := s.Razorpay.Requests()
		require.Len(t, reqs, 1)
		assert.Equal(t, int64(30000), reqs[0].Amount)
		assert.True(t, strings.HasPrefix(reqs[0].Receipt, "rcpt_"))

		res := s.verify(token, s.callback(created, "pay_e2e_1"))
		assert.True(t, res.Success)
		assert.Equal(t, "Payment verified successfully", res.Message)
		assert.Equal(t, "paid", dbtest.OrderStatus(t, s.DB, created.OrderID))

		issued := s.activeCoupon(token)
		require.NotNil(t, issued)
		assert.True(t, strings.HasPrefix(issued.Code, "GIFT"))
		assert.Equal(t, 10, issued.DiscountPercentage)
		assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), issued.ExpirationDate, time.Minute)

		assert.Equal(t, 1, dbtest.CountActiveCoupons(t, s.DB, userID))
		assert.Equal(t, 1, dbtest.CountOutboxEvents(t, s.DB, shared.EventOrderPaid))
		assert.Equal(t, 1, dbtest.CountOutboxEvents(t, s.DB, shared.EventCouponIssued))
	})

	s.Run("Normal case: order below the threshold issues no coupon", func() {
		t := s.T()
		userID := uuid.New()
		token := s.tokens.GenerateToken(t, userID, user.RoleCustomer)

		created := s.checkout(token, tshirts(1, "150.00"))
		res := s.verify(token, s.callback(created, "pay_e2e_small"))

		assert.Equal(t, "Payment verified successfully", res.Message)
		assert.Nil(t, s.activeCoupon(token))
		assert.Equal(t, 0, dbtest.CountOutboxEvents(t, s.DB, shared.EventCouponIssued))
	})

	s.Run("Normal case: applied coupon is discounted, spent and replaced", func() {
		t := s.T()
		userID := uuid.New()
		token := s.tokens.GenerateToken(t, userID, user.RoleCustomer)
		dbtest.InsertCoupon(t, s.DB, userID, "GIFTOLD12345", 10, time.Now().Add(24*time.Hour), true)

		created := s.checkout(token, withCoupon(tshirts(2, "150.00"), " giftold12345 "))
		assert.Equal(t, int64(27000), created.Amount)

		s.verify(token, s.callback(created, "pay_e2e_coupon"))

		replacement := s.activeCoupon(token)
		require.NotNil(t, replacement)
		assert.NotEqual(t, "GIFTOLD12345", replacement.Code)
		assert.Equal(t, 1, dbtest.CountActiveCoupons(t, s.DB, userID))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, validateURL, request.ValidateCouponRequest{Code: "GIFTOLD12345"}, token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Coupon has already been used")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, createOrderURL, withCoupon(tshirts(1, "10"), "GIFTOLD12345"), token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Coupon has already been used")
	})

	s.Run("Normal case: replayed callback is acknowledged once", func() {
		t := s.T()
		userID := uuid.New()
		token := s.tokens.GenerateToken(t, userID, user.RoleCustomer)

		created := s.checkout(token, tshirts(2, "150.00"))
		callback := s.callback(created, "pay_e2e_replay")
		s.verify(token, callback)
		first := s.activeCoupon(token)

		res := s.verify(token, callback)
		assert.Equal(t, "Payment verified successfully", res.Message)
		assert.Equal(t, first.Code, s.activeCoupon(token).Code)
		assert.Equal(t, 1, dbtest.CountOutboxEvents(t, s.DB, shared.EventOrderPaid))
	})

	s.Run("Error case: tampered signature leaves the order pending", func() {
		t := s.T()
		token := s.tokens.GenerateToken(t, uuid.New(), user.RoleCustomer)

		created := s.checkout(token, tshirts(2, "150.00"))
		callback := s.callback(created, "pay_e2e_tamper")
		callback.RazorpayPaymentID = "pay_e2e_other"

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, verifyPaymentURL, callback, token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Payment verification failed")
		assert.Equal(t, "pending", dbtest.OrderStatus(t, s.DB, created.OrderID))
		assert.Nil(t, s.activeCoupon(token))
	})

	s.Run("Error case: another customer cannot settle the order", func() {
		t := s.T()
		owner := s.tokens.GenerateToken(t, uuid.New(), user.RoleCustomer)
		intruder := s.tokens.GenerateToken(t, uuid.New(), user.RoleCustomer)

		created := s.checkout(owner, tshirts(2, "150.00"))
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, verifyPaymentURL, s.callback(created, "pay_e2e_x"), intruder)

		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Order not found")
		assert.Equal(t, "pending", dbtest.OrderStatus(t, s.DB, created.OrderID))
	})

	s.Run("Error case: gateway failure stores no order", func() {
		t := s.T()
		token := s.tokens.GenerateToken(t, uuid.New(), user.RoleCustomer)
		s.Razorpay.FailNext(http.StatusBadRequest)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, createOrderURL, tshirts(1, "50"), token)
		httptest.AssertErrorResponse(t, w, http.StatusInternalServerError, "Failed to create payment order")

		var n int
		require.NoError(t, s.DB.QueryRow(t.Context(), "SELECT count(*) FROM orders").Scan(&n))
		assert.Zero(t, n)
	})

	s.Run("Error case: expired coupon is rejected and deactivated", func() {
		t := s.T()
		userID := uuid.New()
		token := s.tokens.GenerateToken(t, userID, user.RoleCustomer)
		dbtest.InsertCoupon(t, s.DB, userID, "GIFTEXP12345", 10, time.Now().Add(-time.Hour), true)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, createOrderURL, withCoupon(tshirts(2, "150.00"), "GIFTEXP12345"), token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Coupon has expired")
		assert.Equal(t, 0, dbtest.CountActiveCoupons(t, s.DB, userID))
		assert.Empty(t, s.Razorpay.Requests())
	})

	s.Run("Error case: empty cart is rejected", func() {
		t := s.T()
		token := s.tokens.GenerateToken(t, uuid.New(), user.RoleCustomer)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, createOrderURL, request.CreateOrderRequest{Products: []request.ProductLine{}}, token)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid or empty products array")
	})

	s.Run("Error case: missing token", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, createOrderURL, tshirts(1, "10"), "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Access token required")
	})
}

// =============================================================================
// TestGetOrder - order lookup and ownership
// =============================================================================

func (s *PaymentSuite) TestGetOrder() {
	s.Run("Normal case: owner reads the settled order", func() {
		t := s.T()
		userID := uuid.New()
		token := s.tokens.GenerateToken(t, userID, user.RoleCustomer)

		created := s.checkout(token, tshirts(2, "150.00"))
		s.verify(token, s.callback(created, "pay_e2e_read"))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, orderURL+created.OrderID.String(), nil, token)
		var actual response.OrderResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &actual)
		httptest.AssertBodyExcludes(t, w, "signature", s.Config.Razorpay.KeySecret)

		paymentID := "pay_e2e_read"
		expected := &response.OrderResponse{
			ID:     created.OrderID,
			Status: "paid",
			Products: []response.OrderItemResponse{
				{ProductID: "prod_tshirt", Quantity: 2, Price: decimal.RequireFromString("150")},
			},
			OriginalAmount:       decimal.RequireFromString("300"),
			CouponDiscountAmount: decimal.Zero,
			TotalAmount:          decimal.RequireFromString("300"),
			Currency:             "INR",
			RazorpayOrderID:      created.RazorpayOrderID,
			RazorpayPaymentID:    &paymentID,
		}
		opts := []cmp.Option{
			testutil.DecimalComparer,
			cmpopts.IgnoreFields(response.OrderResponse{}, "PaidAt", "CreatedAt"),
		}
		if diff := cmp.Diff(expected, &actual, opts...); diff != "" {
			t.Errorf("Order response mismatch (-want +got):\n%s", diff)
		}
		require.NotNil(t, actual.PaidAt)
	})

	s.Run("Normal case: admin reads any order", func() {
		t := s.T()
		owner := s.tokens.GenerateToken(t, uuid.New(), user.RoleCustomer)
		admin := s.tokens.GenerateToken(t, uuid.New(), user.RoleAdmin)

		created := s.checkout(owner, tshirts(1, "99.99"))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, orderURL+created.OrderID.String(), nil, admin)

		var actual response.OrderResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &actual)
		assert.Equal(t, "pending", actual.Status)
		assert.Nil(t, actual.RazorpayPaymentID)
	})

	s.Run("Error case: other customers get not found", func() {
		t := s.T()
		owner := s.tokens.GenerateToken(t, uuid.New(), user.RoleCustomer)
		other := s.tokens.GenerateToken(t, uuid.New(), user.RoleCustomer)

		created := s.checkout(owner, tshirts(1, "99.99"))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, orderURL+created.OrderID.String(), nil, other)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Order not found")
	})
}

// =============================================================================
// TestCoupon - active coupon and validation
// =============================================================================

func (s *PaymentSuite) TestCoupon() {
	s.Run("Normal case: no coupon yet returns null", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, couponURL, nil, s.tokens.GenerateToken(t, uuid.New(), user.RoleCustomer))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "null", w.Body.String())
	})

	s.Run("Normal case: validate accepts the caller's coupon case-insensitively", func() {
		t := s.T()
		userID := uuid.New()
		token := s.tokens.GenerateToken(t, userID, user.RoleCustomer)
		dbtest.InsertCoupon(t, s.DB, userID, "GIFTVAL12345", 15, time.Now().Add(time.Hour), true)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, validateURL, request.ValidateCouponRequest{Code: "giftval12345"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body response.ValidateCouponResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Coupon is valid", body.Message)
		assert.Equal(t, "GIFTVAL12345", body.Code)
		assert.Equal(t, 15, body.DiscountPercentage)
		assert.Equal(t, userID, body.UserID)
		assert.NotEqual(t, uuid.Nil, body.ID)
	})

	s.Run("Error case: validation verdicts", func() {
		t := s.T()
		userID := uuid.New()
		token := s.tokens.GenerateToken(t, userID, user.RoleCustomer)
		dbtest.InsertCoupon(t, s.DB, userID, "GIFTEXP00001", 10, time.Now().Add(-time.Minute), true)
		dbtest.InsertCoupon(t, s.DB, uuid.New(), "GIFTFOREIGN1", 10, time.Now().Add(time.Hour), true)
		dbtest.InsertPaidOrder(t, s.DB, userID, "GIFTUSED0001", "250")

		testCases := []struct {
			name           string
			code           string
			expectedStatus int
			expectedMsg    string
		}{
			{name: "expired", code: "GIFTEXP00001", expectedStatus: http.StatusBadRequest, expectedMsg: "Coupon has expired"},
			{name: "held by another user", code: "GIFTFOREIGN1", expectedStatus: http.StatusNotFound, expectedMsg: "Invalid coupon code"},
			{name: "already spent", code: "GIFTUSED0001", expectedStatus: http.StatusBadRequest, expectedMsg: "Coupon has already been used"},
			{name: "malformed", code: "gift-!!", expectedStatus: http.StatusNotFound, expectedMsg: "Invalid coupon code"},
		}

		for _, tc := range testCases {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, validateURL, request.ValidateCouponRequest{Code: tc.code}, token)
			httptest.AssertErrorResponse(t, w, tc.expectedStatus, tc.expectedMsg)
		}
		assert.Equal(t, 0, dbtest.CountActiveCoupons(t, s.DB, userID), "expired coupon should be deactivated")
	})
}
