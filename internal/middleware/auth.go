package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/taskmgr-io/taskmgr/internal/config"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
	"github.com/taskmgr-io/taskmgr/internal/modules/serializer"
	"github.com/taskmgr-io/taskmgr/internal/pkg/auth"
)

// UserAuth returns a middleware that authenticates requests using
// bearer JWTs. It verifies the token, loads the user it names, and
// attaches the user to the request context. Handlers behind it can
// rely on "user" being present.
func UserAuth(cfg *config.Config, db *gorm.DB) gin.HandlerFunc {
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("No se proporcionó token de autenticación"))
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims, err := tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr(""))
			return
		}

		id, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr(""))
			return
		}

		var user model.User
		if err := db.WithContext(c.Request.Context()).Where("id = ?", id).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("Usuario no encontrado"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}

		// Tag the current span for telemetry filtering
		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			span.SetAttributes(attribute.String("user_id", user.ID.String()))
		}

		c.Set("user", &user)
		c.Next()
	}
}
