package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finfacil/internal/errors"
	"finfacil/internal/models"
	"finfacil/internal/pagination"
	"finfacil/internal/services"
)

// NotificationHandler handles notification inbox requests.
type NotificationHandler struct {
	notificationService services.NotificationServicer
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService services.NotificationServicer) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// CreateNotificationRequest represents the request payload for creating a notification.
type CreateNotificationRequest struct {
	Type      models.NotificationType     `json:"type" binding:"required,notification_type"`
	Priority  models.NotificationPriority `json:"priority" binding:"omitempty,notification_priority"`
	Title     string                      `json:"title" binding:"required,min=1,max=120"`
	Message   string                      `json:"message" binding:"max=1000"`
	ActionURL string                      `json:"action_url" binding:"max=255"`
	Metadata  map[string]any              `json:"metadata"`
}

// CreateNotification handles the creation of a notification.
// @Summary     Create a notification
// @Description Add an unread notification to the inbox
// @Tags        notifications
// @Accept      json
// @Produce     json
// @Param       request body CreateNotificationRequest true "Notification details"
// @Success     201 {object} models.Notification "Notification created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications [post]
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	n, err := h.notificationService.Create(c.Request.Context(), services.NotificationRequest{
		Type:      req.Type,
		Priority:  req.Priority,
		Title:     req.Title,
		Message:   req.Message,
		ActionURL: req.ActionURL,
		Metadata:  req.Metadata,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"notification": n})
}

// GetNotifications handles listing notifications.
// @Summary     Get notifications
// @Description Get a paginated list of notifications, newest first
// @Tags        notifications
// @Produce     json
// @Param       unread    query bool false "Only unread notifications"
// @Param       page      query int  false "Page number (default 1)"
// @Param       page_size query int  false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Notification] "Paginated notifications"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	unread, err := parseBoolQuery(c, "unread")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.notificationService.GetNotifications(page, unread)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetNotification handles retrieving a single notification.
// @Summary     Get notification by ID
// @Tags        notifications
// @Produce     json
// @Param       id path string true "Notification ID"
// @Success     200 {object} models.Notification "Notification details"
// @Failure     404 {object} ErrorResponse "Notification not found"
// @Router      /notifications/{id} [get]
func (h *NotificationHandler) GetNotification(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	n, err := h.notificationService.GetNotificationByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notification": n})
}

// GetStats handles retrieving inbox counters.
// @Summary     Get notification stats
// @Description Count notifications by read state, type and priority
// @Tags        notifications
// @Produce     json
// @Success     200 {object} services.NotificationStats "Notification stats"
// @Router      /notifications/stats [get]
func (h *NotificationHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.notificationService.GetStats()})
}

// MarkAsRead handles flagging one notification as read.
// @Summary     Mark notification read
// @Tags        notifications
// @Produce     json
// @Param       id path string true "Notification ID"
// @Success     200 {object} models.Notification "Updated notification"
// @Failure     404 {object} ErrorResponse "Notification not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications/{id}/read [put]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	n, err := h.notificationService.MarkAsRead(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notification": n})
}

// MarkAllAsRead handles flagging every notification as read.
// @Summary     Mark all notifications read
// @Tags        notifications
// @Produce     json
// @Success     200 {object} CountResponse "Number of notifications changed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications/read-all [put]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	n, err := h.notificationService.MarkAllAsRead(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CountResponse{Count: n})
}

// DeleteNotification handles deleting one notification.
// @Summary     Delete notification
// @Tags        notifications
// @Produce     json
// @Param       id path string true "Notification ID"
// @Success     200 {object} MessageResponse "Notification deleted"
// @Failure     404 {object} ErrorResponse "Notification not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.notificationService.DeleteNotification(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Notification deleted successfully"})
}

// DeleteAll handles emptying the inbox.
// @Summary     Delete all notifications
// @Tags        notifications
// @Produce     json
// @Success     200 {object} CountResponse "Number of notifications deleted"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications [delete]
func (h *NotificationHandler) DeleteAll(c *gin.Context) {
	n, err := h.notificationService.DeleteAll(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CountResponse{Count: n})
}

// DeleteRead handles deleting read notifications.
// @Summary     Delete read notifications
// @Tags        notifications
// @Produce     json
// @Success     200 {object} CountResponse "Number of notifications deleted"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /notifications/read [delete]
func (h *NotificationHandler) DeleteRead(c *gin.Context) {
	n, err := h.notificationService.DeleteRead(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CountResponse{Count: n})
}
