package handler

import (
	"net/http"

	"ezakat/internal/middleware"
	"ezakat/internal/service"
	"ezakat/pkg/pagination"
	"ezakat/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReceiptHandler struct {
	receiptService service.ReceiptService
}

func NewReceiptHandler(receiptService service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

func (h *ReceiptHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Public verification by receipt number, for LHDN tax relief checks
	router.GET("/receipts/verify/:receiptNo", h.VerifyReceipt)

	receipts := router.Group("/api/receipts")
	receipts.Use(middleware.RequireRole("admin", "amil", "payer"))
	{
		receipts.GET("", h.ListMyReceipts)
		receipts.GET("/:id", h.GetReceipt)
	}
}

// VerifyReceipt resolves a receipt by its printed number
// @Summary      Verify receipt
// @Description  Looks up an official receipt by its number so third parties can verify authenticity
// @Tags         receipts
// @Produce      json
// @Param        receiptNo  path      string  true  "Receipt number, e.g. RCP-20260115-00042"
// @Success      200        {object}  response.Response{data=service.ReceiptResponse}
// @Failure      404        {object}  response.Response
// @Router       /receipts/verify/{receiptNo} [get]
func (h *ReceiptHandler) VerifyReceipt(c *gin.Context) {
	receipt, err := h.receiptService.GetByReceiptNo(c.Request.Context(), c.Param("receiptNo"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Receipt not found"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, receipt))
}

// ListMyReceipts returns the authenticated payer's receipts
func (h *ReceiptHandler) ListMyReceipts(c *gin.Context) {
	p := pagination.Parse(c)

	receipts, total, err := h.receiptService.ListByPayer(c.Request.Context(), middleware.UserID(c), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope(receipts, total, p)))
}

// GetReceipt returns a single receipt by ID
func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), c.Param("id"),
		middleware.UserID(c), middleware.UserRole(c))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, receipt))
}
