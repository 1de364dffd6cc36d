//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"storefront-api/internal/domain/user"
	"storefront-api/internal/handler/api"
	resdto "storefront-api/internal/handler/dto/response"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/commands"
	"storefront-api/internal/usecase/queries"
	"storefront-api/tests/common/builder"
	"storefront-api/tests/common/httptest"
	"storefront-api/tests/common/testutil"
	commandsmock "storefront-api/tests/mock/commands"
	queriesmock "storefront-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockPaymentCommands
	mockQueries  *queriesmock.MockOrderQueries
	handler      *api.PaymentHandler
	userID       uuid.UUID
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewPaymentHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleCustomer)
		c.Next()
	}

	s.router.POST("/payments/create-order", authMiddleware, s.handler.CreateOrder)
	s.router.POST("/payments/verify-payment", authMiddleware, s.handler.VerifyPayment)
	s.router.GET("/payments/orders/:id", authMiddleware, s.handler.GetOrder)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

// ================================================================================
// TestCreateOrder
// ================================================================================

func (s *PaymentHandlerTestSuite) TestCreateOrder() {
	url := "/payments/create-order"

	reqBody := builder.NewOrderBuilder().BuildCreateRequestDTO()
	result := &commands.CreateOrderResult{
		RemoteOrderID: "order_Nx81YqgT3kD9",
		OrderID:       uuid.New(),
		AmountMinor:   30000,
		Currency:      "INR",
		KeyID:         "rzp_test_key",
	}

	s.Run("success: returns checkout parameters", func() {
		s.mockCommands.EXPECT().CreateOrder(gomock.Any(), testutil.MatchesDTO(reqBody), s.userID).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.CreateOrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(result.RemoteOrderID, body.RazorpayOrderID)
		s.Equal(result.OrderID, body.OrderID)
		s.Equal(int64(30000), body.Amount)
		s.Equal("INR", body.Currency)
		s.Equal("rzp_test_key", body.Key)
	})

	s.Run("success: wire field names match the checkout client", func() {
		s.mockCommands.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		for _, key := range []string{"razorpayOrderId", "mongoOrderId", "amount", "currency", "key"} {
			s.Contains(body, key)
		}
	})

	s.Run("error: 400 Bad Request on malformed bodies", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing products", mutate: testutil.Field("products", nil)},
			{name: "products is not an array", mutate: testutil.Field("products", "tshirt")},
			{name: "price is not numeric", mutate: testutil.ProductField(0, "price", "abc")},
			{name: "quantity is not an integer", mutate: testutil.ProductField(0, "quantity", "two")},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid or empty products array")
			})
		}
	})

	s.Run("error: 400 Bad Request on invalid JSON", func() {
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, `{"products": [`, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "empty cart",
				commandsError:  commands.ErrInvalidInput,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid or empty products array",
			},
			{
				name:           "coupon already used",
				commandsError:  commands.ErrCouponAlreadyUsed,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Coupon has already been used",
			},
			{
				name:           "coupon expired",
				commandsError:  errs.Mark(commands.ErrCouponExpired, commands.ErrInvalidCoupon),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Coupon has expired",
			},
			{
				name:           "unknown coupon",
				commandsError:  errs.Mark(commands.ErrCouponNotFound, commands.ErrInvalidCoupon),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid coupon code",
			},
			{
				name:           "gateway failure",
				commandsError:  errs.Mark(errors.New("connection refused"), commands.ErrGateway),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Failed to create payment order",
			},
			{
				name:           "persistence failure",
				commandsError:  errs.Mark(errors.New("database error"), commands.ErrDatabaseOperationFailed),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Error processing checkout",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateOrder(gomock.Any(), testutil.MatchesDTO(reqBody), s.userID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				httptest.AssertBodyExcludes(s.T(), rec, "connection refused", "database error")
			})
		}
	})
}

// ================================================================================
// TestVerifyPayment
// ================================================================================

func (s *PaymentHandlerTestSuite) TestVerifyPayment() {
	url := "/payments/verify-payment"

	ob := builder.NewOrderBuilder().WithUserID(s.userID)
	reqBody := ob.BuildVerifyRequestDTO("pay_Nx82Ab", "5f0c1a2b3c4d")

	s.Run("success: every settled outcome answers with the storefront's confirmation", func() {
		issued := builder.NewCouponBuilder().WithUserID(s.userID).BuildDomain()
		testCases := []struct {
			name        string
			result      *commands.VerifyPaymentResult
			expectedMsg string
		}{
			{
				name:        "first settlement",
				result:      &commands.VerifyPaymentResult{OrderID: ob.ID},
				expectedMsg: "Payment verified successfully",
			},
			{
				name:        "coupon earned",
				result:      &commands.VerifyPaymentResult{OrderID: ob.ID, IssuedCoupon: issued},
				expectedMsg: "Payment verified successfully",
			},
			{
				name:        "replayed callback",
				result:      &commands.VerifyPaymentResult{OrderID: ob.ID, AlreadyPaid: true},
				expectedMsg: "Payment verified successfully",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().VerifyPayment(gomock.Any(), reqBody, s.userID).
					Return(tc.result, nil).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

				var body resdto.VerifyPaymentResponse
				httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
				s.True(body.Success)
				s.Equal(tc.expectedMsg, body.Message)
				s.Equal(ob.ID, body.OrderID)
			})
		}
	})

	s.Run("error: 400 Bad Request when orderId is not a uuid", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("orderId", "not-a-uuid"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Missing required payment fields")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "missing fields",
				commandsError:  commands.ErrInvalidInput,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Missing required payment fields",
			},
			{
				name:           "bad signature",
				commandsError:  commands.ErrSignatureMismatch,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Payment verification failed",
			},
			{
				name:           "unknown order",
				commandsError:  commands.ErrOrderNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Order not found",
			},
			{
				name:           "reconciliation failure",
				commandsError:  errs.Mark(errors.New("deadlock detected"), commands.ErrReconciliationFailed),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Payment verification failed",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().VerifyPayment(gomock.Any(), reqBody, s.userID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				httptest.AssertBodyExcludes(s.T(), rec, "deadlock detected", reqBody.RazorpaySignature)
			})
		}
	})
}

// ================================================================================
// TestGetOrder
// ================================================================================

func (s *PaymentHandlerTestSuite) TestGetOrder() {
	paidAt := time.Now().Add(-time.Minute)
	ob := builder.NewOrderBuilder().WithUserID(s.userID).AsPaid("pay_Nx82Ab", "5f0c1a2b3c4d", paidAt)
	view := ob.BuildView()
	url := "/payments/orders/" + ob.ID.String()

	s.Run("success: returns the order without the signature", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), ob.ID, s.userID, user.RoleCustomer).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(ob.ID, body.ID)
		s.Equal("paid", body.Status)
		s.Equal(ob.RemoteOrderID, body.RazorpayOrderID)
		s.Require().NotNil(body.RazorpayPaymentID)
		s.Equal("pay_Nx82Ab", *body.RazorpayPaymentID)
		s.True(view.TotalAmount.Equal(body.TotalAmount))
		httptest.AssertBodyExcludes(s.T(), rec, "5f0c1a2b3c4d")
	})

	s.Run("error: 400 Bad Request on invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/orders/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 Not Found when the order is hidden or missing", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), ob.ID, s.userID, user.RoleCustomer).
			Return(nil, queries.ErrOrderNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})

	s.Run("error: 500 Internal Server Error on query failure", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), ob.ID, s.userID, user.RoleCustomer).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to load order")
	})
}
