package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"github.com/taskmgr-io/taskmgr/internal/modules/serializer"
	"github.com/taskmgr-io/taskmgr/internal/modules/service"
	"gorm.io/gorm"
)

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(s service.TaskService) *TaskHandler {
	return &TaskHandler{svc: s}
}

type CreateTaskReq struct {
	Title          string             `json:"title" binding:"required,min=3"`
	Description    string             `json:"description"`
	Status         model.TaskStatus   `json:"status" binding:"omitempty,oneof=Pendiente 'En Progreso' Completada Bloqueada Cancelada"`
	Priority       model.TaskPriority `json:"priority" binding:"omitempty,oneof=Baja Media Alta Crítica"`
	ProjectID      *uuid.UUID         `json:"projectId"`
	AssignedTo     *uuid.UUID         `json:"assignedTo"`
	DueDate        *time.Time         `json:"dueDate"`
	EstimatedHours float64            `json:"estimatedHours" binding:"omitempty,gte=0"`
	ActualHours    float64            `json:"actualHours" binding:"omitempty,gte=0"`
}

type UpdateTaskReq struct {
	Title          *string             `json:"title" binding:"omitempty,min=3"`
	Description    *string             `json:"description"`
	Status         *model.TaskStatus   `json:"status" binding:"omitempty,oneof=Pendiente 'En Progreso' Completada Bloqueada Cancelada"`
	Priority       *model.TaskPriority `json:"priority" binding:"omitempty,oneof=Baja Media Alta Crítica"`
	ProjectID      *uuid.UUID          `json:"projectId"`
	AssignedTo     *uuid.UUID          `json:"assignedTo"`
	DueDate        *time.Time          `json:"dueDate"`
	EstimatedHours *float64            `json:"estimatedHours" binding:"omitempty,gte=0"`
	ActualHours    *float64            `json:"actualHours" binding:"omitempty,gte=0"`
}

// GetTasks godoc
//
//	@Summary		List tasks
//	@Description	All tasks, newest first, references resolved
//	@Tags			task
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Task}
//	@Router			/tasks [get]
func (h *TaskHandler) GetTasks(c *gin.Context) {
	tasks, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al obtener tareas", err))
		return
	}
	c.JSON(http.StatusOK, serializer.OK(tasks))
}

// GetTaskByID godoc
//
//	@Summary		Get one task
//	@Tags			task
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Task id"
//	@Success		200	{object}	serializer.Response{data=model.Task}
//	@Failure		404	{object}	serializer.Response
//	@Router			/tasks/{id} [get]
func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	task, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Tarea no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al obtener tarea", err))
		return
	}
	c.JSON(http.StatusOK, serializer.OK(task))
}

// CreateTask godoc
//
//	@Summary		Create task
//	@Description	Creates a task; the creator is always the caller
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			payload	body	handler.CreateTaskReq	true	"CreateTask payload"
//	@Success		201	{object}	serializer.Response{data=model.Task}
//	@Failure		400	{object}	serializer.Response
//	@Router			/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	req := CreateTaskReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr(err))
		return
	}

	actor := c.MustGet("user").(*model.User)
	task, err := h.svc.Create(c.Request.Context(), service.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		ProjectID:      req.ProjectID,
		AssignedTo:     req.AssignedTo,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
	}, actor)
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("Referencia no válida", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al crear tarea", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.OK(task))
}

// UpdateTask godoc
//
//	@Summary		Update task
//	@Description	Partial update; status and title changes are audited
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path	string					true	"Task id"
//	@Param			payload	body	handler.UpdateTaskReq	true	"UpdateTask payload"
//	@Success		200	{object}	serializer.Response{data=model.Task}
//	@Failure		404	{object}	serializer.Response
//	@Router			/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := UpdateTaskReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr(err))
		return
	}

	actor := c.MustGet("user").(*model.User)
	task, err := h.svc.Update(c.Request.Context(), id, service.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		ProjectID:      req.ProjectID,
		AssignedTo:     req.AssignedTo,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
	}, actor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Tarea no encontrada"))
			return
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("Referencia no válida", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al actualizar tarea", err))
		return
	}

	c.JSON(http.StatusOK, serializer.OK(task))
}

// DeleteTask godoc
//
//	@Summary		Delete task
//	@Description	Writes the DELETED audit row, then removes the task
//	@Tags			task
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Task id"
//	@Success		200	{object}	serializer.Response
//	@Failure		404	{object}	serializer.Response
//	@Router			/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	actor := c.MustGet("user").(*model.User)
	if err := h.svc.Delete(c.Request.Context(), id, actor); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Tarea no encontrada"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al eliminar tarea", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Msg("Tarea eliminada correctamente"))
}

// GetTaskStats godoc
//
//	@Summary		Task statistics
//	@Tags			task
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.TaskStats}
//	@Router			/tasks/stats [get]
func (h *TaskHandler) GetTaskStats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al obtener estadísticas", err))
		return
	}
	c.JSON(http.StatusOK, serializer.OK(stats))
}
