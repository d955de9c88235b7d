package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"github.com/taskmgr-io/taskmgr/internal/modules/serializer"
	"github.com/taskmgr-io/taskmgr/internal/modules/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{svc: s}
}

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Verify credentials and issue a bearer token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.LoginReq	true	"Login payload"
//	@Success		200	{object}	serializer.Response{data=service.AuthResult}
//	@Failure		401	{object}	serializer.Response
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req := LoginReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err("Usuario y contraseña son requeridos", err))
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, serializer.AuthErr("Credenciales inválidas"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al iniciar sesión", err))
		return
	}

	c.JSON(http.StatusOK, serializer.OK(result))
}

type RegisterReq struct {
	Username string     `json:"username" binding:"required,min=3"`
	Password string     `json:"password" binding:"required,min=6"`
	Role     model.Role `json:"role" binding:"omitempty,oneof=admin user"`
}

// Register godoc
//
//	@Summary		Register
//	@Description	Create a new account and issue a bearer token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.RegisterReq	true	"Register payload"
//	@Success		201	{object}	serializer.Response{data=service.AuthResult}
//	@Failure		400	{object}	serializer.Response
//	@Router			/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	req := RegisterReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr(err))
		return
	}

	result, err := h.svc.Register(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateUsername) {
			c.JSON(http.StatusBadRequest, serializer.DuplicateErr("El usuario ya existe"))
			return
		}
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al registrar usuario", err))
		return
	}

	c.JSON(http.StatusCreated, serializer.OK(result))
}

// Me godoc
//
//	@Summary		Current user
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response
//	@Router			/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := c.MustGet("user").(*model.User)
	c.JSON(http.StatusOK, serializer.OK(gin.H{"user": user}))
}

// ListUsers godoc
//
//	@Summary		List users
//	@Description	All registered users, password never included
//	@Tags			auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=[]model.User}
//	@Router			/auth/users [get]
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, serializer.DBErr("Error al obtener usuarios", err))
		return
	}
	c.JSON(http.StatusOK, serializer.OK(users))
}
