package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"github.com/taskmgr-io/taskmgr/internal/modules/serializer"
	"github.com/taskmgr-io/taskmgr/internal/modules/service"
)

type NotificationHandler struct {
	svc service.NotificationService
}

func NewNotificationHandler(s service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: s}
}

// GetNotifications godoc
//
//	@Summary		List the caller's notifications
//	@Tags			notification
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Notification}
//	@Router			/notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	notifications, err := h.svc.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al obtener notificaciones", err))
		return
	}
	c.JSON(http.StatusOK, serializer.OK(notifications))
}

// MarkAllRead godoc
//
//	@Summary		Mark all of the caller's notifications as read
//	@Tags			notification
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/notifications/read [put]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	if err := h.svc.MarkAllRead(c.Request.Context(), user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al actualizar notificaciones", err))
		return
	}
	c.JSON(http.StatusOK, serializer.Msg("Notificaciones marcadas como leídas"))
}
