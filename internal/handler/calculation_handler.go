package handler

import (
	"errors"
	"net/http"

	"ezakat/internal/middleware"
	"ezakat/internal/service"
	"ezakat/internal/zakat"
	"ezakat/pkg/pagination"
	"ezakat/pkg/response"

	"github.com/gin-gonic/gin"
)

type CalculationHandler struct {
	calcService service.CalculationService
}

func NewCalculationHandler(calcService service.CalculationService) *CalculationHandler {
	return &CalculationHandler{calcService: calcService}
}

func (h *CalculationHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Anonymous calculator, nothing is stored
	router.POST("/zakat/calculate", h.Calculate)

	calcs := router.Group("/api/zakat/calculations")
	calcs.Use(middleware.RequireRole("admin", "amil", "payer"))
	{
		calcs.POST("", h.StoreCalculation)
		calcs.GET("", h.ListMyCalculations)
		calcs.GET("/all", middleware.RequireRole("admin", "amil"), h.ListAllCalculations)
		calcs.GET("/:id", h.GetCalculation)
	}
}

// calculationError maps engine sentinels to client errors; everything
// else is a server fault.
func calculationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, zakat.ErrUnknownCategory):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, zakat.ErrUnknownCategory.Error()))
	case errors.Is(err, zakat.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, zakat.ErrInvalidDateRange.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
	}
}

// Calculate handles POST /zakat/calculate for anonymous estimation
// @Summary      Calculate zakat
// @Description  Evaluates a zakat obligation for a category without storing anything. Missing inputs count as zero.
// @Tags         zakat
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CalculateRequest  true  "Calculation Payload"
// @Success      200      {object}  response.Response{data=service.CalculationResponse}
// @Failure      400      {object}  response.Response
// @Router       /zakat/calculate [post]
func (h *CalculationHandler) Calculate(c *gin.Context) {
	var req service.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.calcService.Calculate(c.Request.Context(), req)
	if err != nil {
		calculationError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// StoreCalculation handles POST /api/zakat/calculations for assessments on record
// @Summary      Store a zakat calculation
// @Description  Evaluates and persists a zakat assessment for the authenticated user. A wajib outcome queues a zakat-due notification.
// @Tags         zakat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CalculateRequest  true  "Calculation Payload"
// @Success      201      {object}  response.Response{data=service.CalculationResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/zakat/calculations [post]
func (h *CalculationHandler) StoreCalculation(c *gin.Context) {
	var req service.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.calcService.StoreCalculation(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		calculationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// ListMyCalculations handles GET /api/zakat/calculations
// @Summary      List own calculations
// @Description  Retrieves the authenticated user's stored assessments, newest first
// @Tags         zakat
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/zakat/calculations [get]
func (h *CalculationHandler) ListMyCalculations(c *gin.Context) {
	p := pagination.Parse(c)

	results, total, err := h.calcService.ListByUser(c.Request.Context(), middleware.UserID(c), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope(results, total, p)))
}

// ListAllCalculations handles GET /api/zakat/calculations/all for staff
// @Summary      List all calculations
// @Description  Retrieves stored assessments across all payers, filterable by category and status
// @Tags         zakat
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Number of items per page (default 20)"
// @Param        category  query     string  false  "Filter by category"
// @Param        status    query     string  false  "Filter by status (wajib, tidak_wajib)"
// @Success      200       {object}  response.Response{data=object}
// @Failure      500       {object}  response.Response
// @Router       /api/zakat/calculations/all [get]
func (h *CalculationHandler) ListAllCalculations(c *gin.Context) {
	p := pagination.Parse(c)

	results, total, err := h.calcService.List(c.Request.Context(), p.Page, p.Limit, c.Query("category"), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope(results, total, p)))
}

// GetCalculation handles GET /api/zakat/calculations/:id
// @Summary      Get calculation by ID
// @Tags         zakat
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Calculation ID"
// @Success      200  {object}  response.Response{data=service.CalculationResponse}
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /api/zakat/calculations/{id} [get]
func (h *CalculationHandler) GetCalculation(c *gin.Context) {
	result, err := h.calcService.GetCalculation(c.Request.Context(), c.Param("id"),
		middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		// A row that cannot be mapped back is a data fault, not a miss.
		if errors.Is(err, service.ErrRecordMapping) {
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
			return
		}
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
