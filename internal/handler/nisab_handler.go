package handler

import (
	"net/http"

	"ezakat/internal/middleware"
	"ezakat/internal/service"
	"ezakat/pkg/pagination"
	"ezakat/pkg/response"

	"github.com/gin-gonic/gin"
)

type NisabHandler struct {
	nisabService service.NisabService
}

func NewNisabHandler(nisabService service.NisabService) *NisabHandler {
	return &NisabHandler{nisabService: nisabService}
}

func (h *NisabHandler) RegisterRoutes(router *gin.RouterGroup) {
	rules := router.Group("/api/nisab-rules")
	rules.GET("", middleware.RequireRole("admin", "amil"), h.GetNisabRules)
	rules.POST("", middleware.RequireRole("admin"), h.CreateNisabRule)
	rules.PUT("/:id", middleware.RequireRole("admin"), h.UpdateNisabRule)
	rules.DELETE("/:id", middleware.RequireRole("admin"), h.DeleteNisabRule)
}

// GetNisabRules returns nisab rules ordered by effective_from DESC
// @Summary      List nisab rules
// @Description  Retrieves nisab thresholds and rates, including historical ones
// @Tags         nisab-rules
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/nisab-rules [get]
func (h *NisabHandler) GetNisabRules(c *gin.Context) {
	p := pagination.Parse(c)

	rules, total, err := h.nisabService.GetNisabRules(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope(rules, total, p)))
}

// CreateNisabRule creates a new nisab rule entry
// @Summary      Create nisab rule
// @Description  Creates a nisab rule for a category with an effective window. Overlapping windows for the same category are rejected.
// @Tags         nisab-rules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateNisabRuleRequest  true  "Create Nisab Rule Payload"
// @Success      201      {object}  response.Response{data=service.NisabRuleResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/nisab-rules [post]
func (h *NisabHandler) CreateNisabRule(c *gin.Context) {
	var req service.CreateNisabRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rule, err := h.nisabService.CreateNisabRule(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rule))
}

// UpdateNisabRule updates an existing nisab rule
// @Summary      Update nisab rule
// @Tags         nisab-rules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Rule ID"
// @Param        payload  body      service.UpdateNisabRuleRequest  true  "Update Nisab Rule Payload"
// @Success      200      {object}  response.Response{data=service.NisabRuleResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/nisab-rules/{id} [put]
func (h *NisabHandler) UpdateNisabRule(c *gin.Context) {
	id := c.Param("id")
	var req service.UpdateNisabRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rule, err := h.nisabService.UpdateNisabRule(c.Request.Context(), id, req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rule))
}

// DeleteNisabRule soft deletes a nisab rule
// @Summary      Delete nisab rule
// @Tags         nisab-rules
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Rule ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/nisab-rules/{id} [delete]
func (h *NisabHandler) DeleteNisabRule(c *gin.Context) {
	id := c.Param("id")

	if err := h.nisabService.DeleteNisabRule(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Nisab rule deleted successfully"))
}
