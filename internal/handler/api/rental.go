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

// RentalHandler serves the start/stop ride workflow for authenticated actors.
type RentalHandler struct {
	commands commands.RentalCommands
}

func NewRentalHandler(commands commands.RentalCommands) *RentalHandler {
	return &RentalHandler{commands: commands}
}

// @Summary Start a rental
// @Tags rentals
// @Security BearerAuth
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body reqdto.StartRentalRequest true "Bike to rent"
// @Success 200 {object} resdto.StartRentalResponse
// @Failure 401 {object} resdto.ErrorResponse
// @Failure 403 {object} resdto.ErrorResponse
// @Failure 422 {object} resdto.ErrorResponse
// @Router /rentals/start [post]
func (h *RentalHandler) Start(c *gin.Context) {
	var req reqdto.StartRentalRequest
	if !bindJSON(c, &req) {
		return
	}

	actor, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("principal missing from context"), httperr.MsgInternal)
		return
	}

	result, err := h.commands.Start(c.Request.Context(), actor, req.BikeID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NewStartRentalResponse(result))
}

// @Summary Stop a rental
// @Description Only the actor that started the rental may stop it
// @Tags rentals
// @Security BearerAuth
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body reqdto.StopRentalRequest true "Rental to stop"
// @Success 200 {object} resdto.StopRentalResponse
// @Failure 400 {object} resdto.ErrorResponse
// @Failure 401 {object} resdto.ErrorResponse
// @Failure 404 {object} resdto.ErrorResponse
// @Router /rentals/stop [post]
func (h *RentalHandler) Stop(c *gin.Context) {
	var req reqdto.StopRentalRequest
	if !bindJSON(c, &req) {
		return
	}

	actor, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("principal missing from context"), httperr.MsgInternal)
		return
	}

	result, err := h.commands.Stop(c.Request.Context(), actor, req.RentalID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NewStopRentalResponse(result))
}
