package handler

import (
	"net/http"

	"ezakat/internal/middleware"
	"ezakat/internal/service"
	"ezakat/pkg/pagination"
	"ezakat/pkg/response"

	"github.com/gin-gonic/gin"
)

type CommissionHandler struct {
	commissionService service.CommissionService
}

func NewCommissionHandler(commissionService service.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissionService: commissionService}
}

func (h *CommissionHandler) RegisterRoutes(router *gin.RouterGroup) {
	commissions := router.Group("/api/commissions")
	commissions.Use(middleware.RequireRole("admin", "amil"))
	{
		commissions.GET("", h.ListCommissions)
		commissions.POST("/:id/settle", middleware.RequireRole("admin"), h.SettleCommission)
	}
}

// ListCommissions handles GET /api/commissions. Amils see their own
// earnings, admins see everything with an optional status filter.
// @Summary      List commissions
// @Tags         commissions
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Param        status  query     string  false  "Filter by status (PENDING, SETTLED; admin only)"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/commissions [get]
func (h *CommissionHandler) ListCommissions(c *gin.Context) {
	p := pagination.Parse(c)

	var (
		commissions []service.CommissionResponse
		total       int64
		err         error
	)

	if middleware.UserRole(c) == "amil" {
		commissions, total, err = h.commissionService.ListByAmil(c.Request.Context(), middleware.UserID(c), p.Page, p.Limit)
	} else {
		commissions, total, err = h.commissionService.List(c.Request.Context(), p.Page, p.Limit, c.Query("status"))
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope(commissions, total, p)))
}

// SettleCommission handles POST /api/commissions/:id/settle
// @Summary      Settle commission
// @Description  Marks a pending amil commission as paid out
// @Tags         commissions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Commission ID"
// @Success      200  {object}  response.Response{data=service.CommissionResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/commissions/{id}/settle [post]
func (h *CommissionHandler) SettleCommission(c *gin.Context) {
	commission, err := h.commissionService.SettleCommission(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, commission))
}
