package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/simtrack/internal/application"
	"github.com/linskybing/simtrack/internal/domain/notification"
	"github.com/linskybing/simtrack/pkg/response"
	"github.com/linskybing/simtrack/pkg/utils"
)

type NotificationHandler struct {
	svc *application.NotificationService
}

func NewNotificationHandler(svc *application.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List godoc
// @Summary List the caller's notifications
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Param unread query bool false "Only unread"
// @Param limit query int false "Page size (default 50)"
// @Success 200 {array} notification.Notification
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		respondError(c, application.ErrUnauthenticated)
		return
	}
	list, err := h.svc.List(uid, c.Query("unread") == "true", utils.QueryInt(c, "limit", 50))
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []notification.Notification{}
	}
	c.JSON(http.StatusOK, list)
}

// MarkRead godoc
// @Summary Mark one notification read
// @Tags notifications
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.ErrorResponse
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		respondError(c, application.ErrUnauthenticated)
		return
	}
	id, err := utils.ParseUintParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid notification id"})
		return
	}
	if err := h.svc.MarkRead(id, uid); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAllRead godoc
// @Summary Mark every notification read
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	uid, err := utils.GetUserIDFromContext(c)
	if err != nil {
		respondError(c, application.ErrUnauthenticated)
		return
	}
	n, err := h.svc.MarkAllRead(uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}
