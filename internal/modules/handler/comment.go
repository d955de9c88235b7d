package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"github.com/taskmgr-io/taskmgr/internal/modules/serializer"
	"github.com/taskmgr-io/taskmgr/internal/modules/service"
	"gorm.io/gorm"
)

type CommentHandler struct {
	svc service.CommentService
}

func NewCommentHandler(s service.CommentService) *CommentHandler {
	return &CommentHandler{svc: s}
}

type CreateCommentReq struct {
	TaskID      uuid.UUID `json:"taskId" binding:"required"`
	CommentText string    `json:"commentText" binding:"required,max=500"`
}

// GetCommentsByTask godoc
//
//	@Summary		List task comments
//	@Tags			comment
//	@Produce		json
//	@Security		BearerAuth
//	@Param			taskId	path	string	true	"Task id"
//	@Success		200	{object}	serializer.Response{data=[]model.Comment}
//	@Router			/comments/task/{taskId} [get]
func (h *CommentHandler) GetCommentsByTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	comments, err := h.svc.ListByTask(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al obtener comentarios", err))
		return
	}
	c.JSON(http.StatusOK, serializer.OK(comments))
}

// CreateComment godoc
//
//	@Summary		Create comment
//	@Description	The author is always the caller; the task's assignee is notified
//	@Tags			comment
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			payload	body	handler.CreateCommentReq	true	"CreateComment payload"
//	@Success		201	{object}	serializer.Response{data=model.Comment}
//	@Failure		400	{object}	serializer.Response
//	@Router			/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	req := CreateCommentReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr(err))
		return
	}

	actor := c.MustGet("user").(*model.User)
	comment, err := h.svc.Create(c.Request.Context(), service.CreateCommentInput{
		TaskID:      req.TaskID,
		CommentText: req.CommentText,
	}, actor)
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("La tarea no existe", err))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al crear comentario", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.OK(comment))
}
