package api

import (
	"net/http"

	reqdto "bookride-api/internal/handler/dto/request"
	resdto "bookride-api/internal/handler/dto/response"
	"bookride-api/internal/handler/httperr"
	"bookride-api/internal/handler/middleware"
	"bookride-api/internal/pkg/errs"
	"bookride-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
}

func NewAuthHandler(authCommands commands.AuthCommands) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
	}
}

// @Summary Register a user
// @Description Creates a user with role "user" and no scopes, returning a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Register request"
// @Success 201 {object} resdto.TokenResponse
// @Failure 409 {object} resdto.ErrorResponse
// @Failure 422 {object} resdto.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	credentials, err := req.ToDomain()
	if err != nil {
		httperr.Abort(c, errs.Mark(err, errs.ErrDomainValidationFailed))
		return
	}

	result, err := h.authCommands.Register(c.Request.Context(), credentials)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.NewTokenResponse(result))
}

// @Summary User login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.TokenResponse
// @Failure 401 {object} resdto.ErrorResponse
// @Failure 422 {object} resdto.ErrorResponse
// @Router /login [post]
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NewTokenResponse(result))
}

// @Summary Get current user
// @Description Get current authenticated user information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.MeResponse
// @Failure 401 {object} resdto.ErrorResponse
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	current, ok := middleware.GetCurrentUser(c)
	if !ok {
		// RequireUser must run first
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("current user missing from context"), httperr.MsgInternal)
		return
	}

	c.JSON(http.StatusOK, resdto.NewMeResponse(current))
}
