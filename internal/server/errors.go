package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	attributedomain "github.com/sellercentre/catalog/internal/attribute/domain"
	categorydomain "github.com/sellercentre/catalog/internal/category/domain"
	productdomain "github.com/sellercentre/catalog/internal/product/domain"
	sellerdomain "github.com/sellercentre/catalog/internal/seller/domain"
	shopdomain "github.com/sellercentre/catalog/internal/shop/domain"
	variantdomain "github.com/sellercentre/catalog/internal/variant/domain"
	"github.com/sellercentre/catalog/pkg/idcodec"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var ErrInvalidRequest = errors.New("invalid_request")

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	switch {
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isBadRequestError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_request",
			Message: err.Error(),
		}
	case errors.Is(err, variantdomain.ErrInvariantViolation):
		return http.StatusInternalServerError, errorPayload{
			Type:    "invariant_violation",
			Message: "internal server error",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, sellerdomain.ErrNotFound),
		errors.Is(err, shopdomain.ErrNotFound),
		errors.Is(err, categorydomain.ErrNotFound),
		errors.Is(err, attributedomain.ErrNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, variantdomain.ErrNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, sellerdomain.ErrDuplicateEmail),
		errors.Is(err, shopdomain.ErrDuplicateSlug):
		return true
	default:
		return false
	}
}

// isBadRequestError covers malformed ids, type mismatches and operations the
// document model rejects, duplicate attribute included.
func isBadRequestError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, idcodec.ErrMalformedToken),
		errors.Is(err, attributedomain.ErrTypeMismatch),
		errors.Is(err, attributedomain.ErrInvalidOperation),
		errors.Is(err, attributedomain.ErrUnknownKind),
		errors.Is(err, attributedomain.ErrInvalidName),
		errors.Is(err, attributedomain.ErrInvalidID),
		errors.Is(err, sellerdomain.ErrInvalidName),
		errors.Is(err, sellerdomain.ErrInvalidEmail),
		errors.Is(err, sellerdomain.ErrInvalidID),
		errors.Is(err, shopdomain.ErrInvalidName),
		errors.Is(err, shopdomain.ErrInvalidID),
		errors.Is(err, categorydomain.ErrInvalidName),
		errors.Is(err, categorydomain.ErrInvalidID),
		errors.Is(err, productdomain.ErrInvalidName),
		errors.Is(err, productdomain.ErrInvalidID),
		errors.Is(err, variantdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}
