package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskmgr-io/taskmgr/internal/modules/serializer"
	"github.com/taskmgr-io/taskmgr/internal/modules/service"
)

type HistoryHandler struct {
	svc service.HistoryService
}

func NewHistoryHandler(s service.HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: s}
}

// GetHistoryByTask godoc
//
//	@Summary		List a task's history
//	@Tags			history
//	@Produce		json
//	@Security		BearerAuth
//	@Param			taskId	path	string	true	"Task id"
//	@Success		200	{object}	serializer.Response{data=[]model.History}
//	@Router			/history/task/{taskId} [get]
func (h *HistoryHandler) GetHistoryByTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	entries, err := h.svc.ListByTask(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al obtener historial", err))
		return
	}
	c.JSON(http.StatusOK, serializer.OK(entries))
}

// GetAllHistory godoc
//
//	@Summary		List recent history across all tasks
//	@Description	Entries for deleted tasks are kept; their taskTitle is empty
//	@Tags			history
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.History}
//	@Router			/history/all [get]
func (h *HistoryHandler) GetAllHistory(c *gin.Context) {
	entries, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al obtener historial", err))
		return
	}
	c.JSON(http.StatusOK, serializer.OK(entries))
}
