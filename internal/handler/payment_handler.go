package handler

import (
	"net/http"

	"ezakat/internal/middleware"
	"ezakat/internal/service"
	"ezakat/pkg/pagination"
	"ezakat/pkg/response"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) RegisterRoutes(router *gin.RouterGroup) {
	payments := router.Group("/api/payments")
	payments.Use(middleware.RequireRole("admin", "amil", "payer"))
	{
		payments.POST("", middleware.RequireRole("payer"), h.CreatePayment)
		payments.POST("/counter", middleware.RequireRole("amil"), h.RecordCounterPayment)
		payments.POST("/:id/complete", middleware.RequireRole("admin"), h.CompletePayment)
		payments.POST("/:id/fail", middleware.RequireRole("admin"), h.FailPayment)
		payments.GET("", h.ListPayments)
		payments.GET("/:id", h.GetPayment)
	}
}

// CreatePayment handles POST /api/payments to open a gateway payment
// @Summary      Create payment
// @Description  Opens a pending payment for the payer's own wajib calculation. The amount is taken from the stored assessment.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreatePaymentRequest  true  "Create Payment Payload"
// @Success      201      {object}  response.Response{data=service.PaymentResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/payments [post]
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req service.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, payment))
}

// RecordCounterPayment handles POST /api/payments/counter
// @Summary      Record counter payment
// @Description  Records a completed in-person collection by the authenticated amil. Issues the receipt and commission immediately.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CounterPaymentRequest  true  "Counter Payment Payload"
// @Success      201      {object}  response.Response{data=service.PaymentResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/payments/counter [post]
func (h *PaymentHandler) RecordCounterPayment(c *gin.Context) {
	var req service.CounterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	payment, err := h.paymentService.RecordCounterPayment(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, payment))
}

// CompletePayment handles POST /api/payments/:id/complete
// @Summary      Complete payment
// @Description  Marks a pending payment as completed with the gateway reference, issuing the receipt atomically
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Payment ID"
// @Param        payload  body      service.CompletePaymentRequest  true  "Complete Payment Payload"
// @Success      200      {object}  response.Response{data=service.PaymentResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/payments/{id}/complete [post]
func (h *PaymentHandler) CompletePayment(c *gin.Context) {
	var req service.CompletePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	payment, err := h.paymentService.CompletePayment(c.Request.Context(), c.Param("id"), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, payment))
}

// FailPayment handles POST /api/payments/:id/fail
// @Summary      Fail payment
// @Description  Marks a pending payment as failed with the gateway's reason. The calculation stays payable.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Payment ID"
// @Param        payload  body      service.FailPaymentRequest  true  "Fail Payment Payload"
// @Success      200      {object}  response.Response{data=service.PaymentResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/payments/{id}/fail [post]
func (h *PaymentHandler) FailPayment(c *gin.Context) {
	var req service.FailPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	payment, err := h.paymentService.FailPayment(c.Request.Context(), c.Param("id"), req, middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, payment))
}

// ListPayments handles GET /api/payments, scoped to the caller's role:
// payers see their own payments, amils their own collections, admins
// everything with optional filters.
// @Summary      List payments
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        page     query     int     false  "Page number (default 1)"
// @Param        limit    query     int     false  "Number of items per page (default 20)"
// @Param        status   query     string  false  "Filter by status (admin only)"
// @Param        channel  query     string  false  "Filter by channel (admin only)"
// @Success      200      {object}  response.Response{data=object}
// @Failure      500      {object}  response.Response
// @Router       /api/payments [get]
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	p := pagination.Parse(c)

	var (
		payments []service.PaymentResponse
		total    int64
		err      error
	)

	switch middleware.UserRole(c) {
	case "payer":
		payments, total, err = h.paymentService.ListByPayer(c.Request.Context(), middleware.UserID(c), p.Page, p.Limit)
	case "amil":
		payments, total, err = h.paymentService.ListByAmil(c.Request.Context(), middleware.UserID(c), p.Page, p.Limit)
	default:
		payments, total, err = h.paymentService.List(c.Request.Context(), p.Page, p.Limit, c.Query("status"), c.Query("channel"))
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope(payments, total, p)))
}

// GetPayment handles GET /api/payments/:id
// @Summary      Get payment by ID
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Payment ID"
// @Success      200  {object}  response.Response{data=service.PaymentResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("id"),
		middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, payment))
}
