package api

import (
	"net/http"

	reqdto "storefront-api/internal/handler/dto/request"
	resdto "storefront-api/internal/handler/dto/response"
	"storefront-api/internal/handler/httperr"
	"storefront-api/internal/handler/middleware"
	"storefront-api/internal/pkg/errs"
	"storefront-api/internal/usecase/commands"
	"storefront-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	cmds commands.PaymentCommands
	q    queries.OrderQueries
}

func NewPaymentHandler(cmds commands.PaymentCommands, q queries.OrderQueries) *PaymentHandler {
	return &PaymentHandler{cmds: cmds, q: q}
}

// @Summary Create payment order
// @Description Price the cart, apply an optional coupon and open a Razorpay order
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateOrderRequest true "Cart contents"
// @Success 200 {object} resdto.CreateOrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /payments/create-order [post]
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid or empty products array", nil)
		return
	}

	result, err := h.cmds.CreateOrder(c.Request.Context(), req, userID)
	if err != nil {
		status, msg := createOrderError(err)
		httperr.AbortWithError(c, status, err, msg, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCreateOrderResult(result))
}

func createOrderError(err error) (int, string) {
	switch {
	case errs.Is(err, commands.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid or empty products array"
	case errs.Is(err, commands.ErrCouponAlreadyUsed):
		return http.StatusBadRequest, "Coupon has already been used"
	case errs.Is(err, commands.ErrCouponExpired):
		return http.StatusBadRequest, "Coupon has expired"
	case errs.Is(err, commands.ErrInvalidCoupon):
		return http.StatusBadRequest, "Invalid coupon code"
	case errs.Is(err, commands.ErrGateway):
		return http.StatusInternalServerError, "Failed to create payment order"
	default:
		return http.StatusInternalServerError, "Error processing checkout"
	}
}

// @Summary Verify payment
// @Description Verify the Razorpay checkout signature and settle the order
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.VerifyPaymentRequest true "Checkout callback payload"
// @Success 200 {object} resdto.VerifyPaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /payments/verify-payment [post]
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Missing required payment fields", nil)
		return
	}

	result, err := h.cmds.VerifyPayment(c.Request.Context(), req, userID)
	if err != nil {
		status, msg := verifyPaymentError(err)
		httperr.AbortWithError(c, status, err, msg, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVerifyPaymentResult(result))
}

// Every post-signature failure shares one message so callers learn nothing about the cause.
func verifyPaymentError(err error) (int, string) {
	switch {
	case errs.Is(err, commands.ErrInvalidInput):
		return http.StatusBadRequest, "Missing required payment fields"
	case errs.Is(err, commands.ErrSignatureMismatch):
		return http.StatusBadRequest, "Payment verification failed"
	case errs.Is(err, commands.ErrOrderNotFound):
		return http.StatusNotFound, "Order not found"
	default:
		return http.StatusInternalServerError, "Payment verification failed"
	}
}

// @Summary Get order
// @Description Get an order's payment status; customers only see their own orders
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /payments/orders/{id} [get]
func (h *PaymentHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id, actorID, role)
	if err != nil {
		if errs.Is(err, queries.ErrOrderNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load order", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}
