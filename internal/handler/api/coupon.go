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
)

type CouponHandler struct {
	cmds commands.CouponCommands
	q    queries.CouponQueries
}

func NewCouponHandler(cmds commands.CouponCommands, q queries.CouponQueries) *CouponHandler {
	return &CouponHandler{cmds: cmds, q: q}
}

// @Summary Get active coupon
// @Description Get the caller's active coupon, or null when there is none
// @Tags coupons
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CouponResponse
// @Failure 401 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /coupon [get]
func (h *CouponHandler) GetActive(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	view, err := h.q.GetActive(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load coupon", nil)
		return
	}
	if view == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCouponView(view))
}

// @Summary Validate coupon
// @Description Check that a coupon code can be applied by the caller
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ValidateCouponRequest true "Coupon code"
// @Success 200 {object} resdto.ValidateCouponResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /coupon/validate [post]
func (h *CouponHandler) Validate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Coupon code is required", nil)
		return
	}

	found, err := h.cmds.Validate(c.Request.Context(), userID, req.Code)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrCouponNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Invalid coupon code", nil)
		case errs.Is(err, commands.ErrCouponExpired):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Coupon has expired", nil)
		case errs.Is(err, commands.ErrCouponAlreadyUsed):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Coupon has already been used", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Error validating coupon", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.NewValidateCouponResponse(found))
}
