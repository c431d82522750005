package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dermaclinic/dermaclinic-api/internal/domain"
	"github.com/dermaclinic/dermaclinic-api/internal/domain/patient"
	"github.com/dermaclinic/dermaclinic-api/internal/service"
)

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "datos no válidos",
			Fields: validErr.Fields,
		})
		return
	}

	var repoErr *service.RepositoryError
	if errors.As(err, &repoErr) {
		// A missing record under update surfaces through the store error.
		if errors.Is(repoErr.Err, patient.ErrPatientNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Paciente no encontrado"})
			return
		}
		// The message already carries the action description; the UI shows
		// it as-is.
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: repoErr.Error()})
		return
	}

	switch {
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "access denied"})

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})

	case errors.Is(err, service.ErrAccountInactive):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "account is inactive"})

	case errors.Is(err, service.ErrAccountLocked):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{
			Error: "account temporarily locked",
			Code:  "ACCOUNT_LOCKED",
		})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}
	return true
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// caller returns the authenticated identity stored by the auth middleware.
func caller(c *gin.Context) (uuid.UUID, string) {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return uuid.Nil, ""
	}
	claims, ok := v.(*domain.Claims)
	if !ok {
		return uuid.Nil, ""
	}
	return claims.UserID, string(claims.Role)
}
