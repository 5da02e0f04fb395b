package httperr

import (
	"errors"
	"net/http"

	"bookride-api/internal/domain/auth"
	"bookride-api/internal/pkg/codec"
	"bookride-api/internal/pkg/errs"
	"bookride-api/internal/pkg/schema"

	"github.com/gin-gonic/gin"
)

const (
	CodeSchemaValidation = "schema_validation"

	MsgInternal = "Internal server error"
)

// Response is rendered either as a plain {"detail": ...} body or, when Code
// is set, as a structured {"error", "message"[, "path"]} body.
type Response struct {
	Status  int       `json:"-"`
	Detail  string    `json:"detail,omitempty"`
	Code    string    `json:"error,omitempty"`
	Message string    `json:"message,omitempty"`
	Path    *[]string `json:"path,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string) {
	abort(c, err, Response{Status: status, Detail: msg})
}

func AbortWithProblem(c *gin.Context, status int, err error, code, msg string) {
	abort(c, err, Response{Status: status, Code: code, Message: msg})
}

// Abort maps err onto its HTTP status and body.
func Abort(c *gin.Context, err error) {
	if err == nil {
		panic("Abort: err cannot be nil")
	}

	var (
		validationErr *schema.ValidationError
		codecErr      *codec.Error
		authErr       *auth.Error
		tooLarge      *http.MaxBytesError
	)
	switch {
	case errors.As(err, &validationErr):
		path := validationErr.Path
		if path == nil {
			path = []string{}
		}
		abort(c, err, Response{
			Status:  http.StatusUnprocessableEntity,
			Code:    CodeSchemaValidation,
			Message: validationErr.Message,
			Path:    &path,
		})
	case errors.As(err, &codecErr):
		status := codecStatus(codecErr.Kind)
		if code := codecErr.Code(); code != "" {
			AbortWithProblem(c, status, err, code, codecErr.Message)
			return
		}
		AbortWithError(c, status, err, codecErr.Message)
	case errors.As(err, &authErr):
		if authErr.Kind == auth.InsufficientScope {
			AbortWithError(c, http.StatusForbidden, err, authErr.Message)
			return
		}
		Unauthorized(c, err, authErr.Message)
	case errs.Is(err, errs.ErrBookNotFound):
		AbortWithError(c, http.StatusNotFound, err, "Book not found")
	case errs.Is(err, errs.ErrPartnerRentalNotFound), errs.Is(err, errs.ErrRentalNotFound):
		AbortWithError(c, http.StatusNotFound, err, "Rental not found")
	case errs.Is(err, errs.ErrRentalAlreadyStopped):
		AbortWithError(c, http.StatusBadRequest, err, "Rental already stopped")
	case errs.Is(err, errs.ErrEmailTaken):
		AbortWithError(c, http.StatusConflict, err, "Email already registered")
	case errs.Is(err, errs.ErrInvalidCredentials):
		AbortWithError(c, http.StatusUnauthorized, err, "Invalid credentials")
	case errs.Is(err, errs.ErrUserNotFound):
		Unauthorized(c, err, "User not found")
	case errs.Is(err, errs.ErrDomainValidationFailed):
		AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid request data")
	case errors.As(err, &tooLarge):
		AbortWithError(c, http.StatusRequestEntityTooLarge, err, "Request body too large")
	default:
		AbortWithError(c, http.StatusInternalServerError, err, MsgInternal)
	}
}

// Unauthorized aborts with 401 and a bearer challenge.
func Unauthorized(c *gin.Context, err error, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	AbortWithError(c, http.StatusUnauthorized, err, msg)
}

func codecStatus(kind codec.Kind) int {
	switch kind {
	case codec.KindUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case codec.KindNotAcceptable:
		return http.StatusNotAcceptable
	case codec.KindInvalidTarget, codec.KindUnsupportedPayload, codec.KindUnsafeXML:
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

func abort(c *gin.Context, err error, resp Response) {
	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}
