package serializer

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Response is the envelope every JSON endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK wraps data in a successful response.
func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// Msg returns a successful response with only a message.
func Msg(msg string) Response {
	return Response{Success: true, Message: msg}
}

// Err builds a failure response.
func Err(msg string, err error) Response {
	res := Response{Success: false, Message: msg}
	// development mode, show error detail
	if err != nil && gin.Mode() != gin.ReleaseMode {
		res.Error = fmt.Sprintf("%+v", err)
	}
	return res
}

// DBErr is used for unexpected persistence failures (500).
func DBErr(msg string, err error) Response {
	if msg == "" {
		msg = "Error interno del servidor"
	}
	return Err(msg, err)
}

// ParamErr is used for malformed input, including invalid ids (400).
func ParamErr(msg string, err error) Response {
	if msg == "" {
		msg = "ID no válido"
	}
	return Err(msg, err)
}

// AuthErr is used for authentication failures (401).
func AuthErr(msg string) Response {
	if msg == "" {
		msg = "Token inválido o expirado"
	}
	return Err(msg, nil)
}

// NotFoundErr is used when the requested entity does not exist (404).
func NotFoundErr(msg string) Response {
	if msg == "" {
		msg = "Recurso no encontrado"
	}
	return Err(msg, nil)
}

// DuplicateErr is used for unique constraint violations (400).
func DuplicateErr(msg string) Response {
	if msg == "" {
		msg = "Ya existe un registro con esos datos"
	}
	return Err(msg, nil)
}

// ValidationErr maps binding failures to the per-field errors array.
func ValidationErr(err error) Response {
	res := Response{Success: false, Message: "Error de validación"}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		for _, fe := range vErrs {
			res.Errors = append(res.Errors, fieldMessage(fe))
		}
	} else if err != nil {
		res.Errors = append(res.Errors, err.Error())
	}
	return res
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo %s es requerido", fe.Field())
	case "min":
		return fmt.Sprintf("El campo %s debe tener al menos %s caracteres", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("El campo %s no puede exceder %s caracteres", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("Valor no permitido para el campo %s", fe.Field())
	case "gte":
		return fmt.Sprintf("El campo %s no puede ser negativo", fe.Field())
	default:
		return fmt.Sprintf("El campo %s no es válido", fe.Field())
	}
}
