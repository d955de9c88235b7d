package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskmgr-io/taskmgr/internal/modules/serializer"
	"github.com/taskmgr-io/taskmgr/internal/modules/service"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	svc service.ProjectService
}

func NewProjectHandler(s service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: s}
}

type CreateProjectReq struct {
	Name        string `json:"name" binding:"required,min=3,max=50"`
	Description string `json:"description" binding:"omitempty,max=200"`
}

type UpdateProjectReq struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=50"`
	Description *string `json:"description" binding:"omitempty,max=200"`
}

// GetProjects godoc
//
//	@Summary		List projects
//	@Tags			project
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.Project}
//	@Router			/projects [get]
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al obtener proyectos", err))
		return
	}
	c.JSON(http.StatusOK, serializer.OK(projects))
}

// GetProjectByID godoc
//
//	@Summary		Get one project
//	@Tags			project
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Project id"
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Failure		404	{object}	serializer.Response
//	@Router			/projects/{id} [get]
func (h *ProjectHandler) GetProjectByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	project, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Proyecto no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al obtener proyecto", err))
		return
	}
	c.JSON(http.StatusOK, serializer.OK(project))
}

// CreateProject godoc
//
//	@Summary		Create project
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			payload	body	handler.CreateProjectReq	true	"CreateProject payload"
//	@Success		201	{object}	serializer.Response{data=model.Project}
//	@Failure		400	{object}	serializer.Response
//	@Router			/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	req := CreateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr(err))
		return
	}

	project, err := h.svc.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al crear proyecto", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.OK(project))
}

// UpdateProject godoc
//
//	@Summary		Update project
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path	string						true	"Project id"
//	@Param			payload	body	handler.UpdateProjectReq	true	"UpdateProject payload"
//	@Success		200	{object}	serializer.Response{data=model.Project}
//	@Failure		404	{object}	serializer.Response
//	@Router			/projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := UpdateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr(err))
		return
	}

	project, err := h.svc.Update(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Proyecto no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al actualizar proyecto", err))
		return
	}

	c.JSON(http.StatusOK, serializer.OK(project))
}

// DeleteProject godoc
//
//	@Summary		Delete project
//	@Description	Tasks referencing the project keep existing; their projectId is cleared
//	@Tags			project
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Project id"
//	@Success		200	{object}	serializer.Response
//	@Failure		404	{object}	serializer.Response
//	@Router			/projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, serializer.NotFoundErr("Proyecto no encontrado"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al eliminar proyecto", err))
		return
	}

	c.JSON(http.StatusOK, serializer.Msg("Proyecto eliminado correctamente"))
}
