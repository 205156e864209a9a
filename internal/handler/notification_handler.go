package handler

import (
	"net/http"

	"ezakat/internal/middleware"
	"ezakat/internal/service"
	"ezakat/pkg/pagination"
	"ezakat/pkg/response"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/api/notifications")
	notifications.Use(middleware.RequireRole("admin", "amil", "payer"))
	{
		notifications.GET("", h.ListMyNotifications)
	}
}

// ListMyNotifications returns the authenticated user's notifications, newest first
func (h *NotificationHandler) ListMyNotifications(c *gin.Context) {
	p := pagination.Parse(c)

	notifications, total, err := h.notificationService.ListByUser(c.Request.Context(), middleware.UserID(c), p.Page, p.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pagination.Envelope(notifications, total, p)))
}
