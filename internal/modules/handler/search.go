package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskmgr-io/taskmgr/internal/modules/serializer"
	"github.com/taskmgr-io/taskmgr/internal/modules/service"
)

type SearchHandler struct {
	svc service.TaskService
}

func NewSearchHandler(s service.TaskService) *SearchHandler {
	return &SearchHandler{svc: s}
}

// SearchTasks godoc
//
//	@Summary		Search tasks
//	@Description	Filters combine with AND; text matches title or description, case-insensitive. projectId "0" means no project filter.
//	@Tags			search
//	@Produce		json
//	@Security		BearerAuth
//	@Param			text		query	string	false	"Free text over title and description"
//	@Param			status		query	string	false	"Exact status"
//	@Param			priority	query	string	false	"Exact priority"
//	@Param			projectId	query	string	false	"Project id, or 0 for any"
//	@Success		200	{object}	serializer.Response{data=[]model.Task}
//	@Failure		400	{object}	serializer.Response
//	@Router			/search [get]
func (h *SearchHandler) SearchTasks(c *gin.Context) {
	in := service.SearchInput{
		Text:      c.Query("text"),
		Status:    c.Query("status"),
		Priority:  c.Query("priority"),
		ProjectID: c.Query("projectId"),
	}

	tasks, err := h.svc.Search(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrBadProjectID) {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("Proyecto no válido", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al buscar tareas", err))
		return
	}
	c.JSON(http.StatusOK, serializer.OK(tasks))
}
