package api

import (
	"net/http"

	"bookride-api/internal/domain/partnerrental"
	"bookride-api/internal/handler/httperr"
	"bookride-api/internal/pkg/codec"
	"bookride-api/internal/usecase/commands"
	"bookride-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// PartnerRentalHandler serves the partner-facing /rentals resource.
type PartnerRentalHandler struct {
	commands commands.PartnerRentalCommands
	queries  queries.PartnerRentalQueries
}

func NewPartnerRentalHandler(commands commands.PartnerRentalCommands, queries queries.PartnerRentalQueries) *PartnerRentalHandler {
	return &PartnerRentalHandler{
		commands: commands,
		queries:  queries,
	}
}

// @Summary Upsert a partner rental
// @Tags rentals
// @Security BearerAuth
// @Accept json,xml,application/x-yaml,application/x-protobuf
// @Produce json,xml,application/x-yaml,application/x-protobuf
// @Param pretty query string false "compact with false, 0, no or compact"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Failure 415 {object} map[string]any
// @Failure 422 {object} map[string]any
// @Router /rentals [post]
func (h *PartnerRentalHandler) Create(c *gin.Context) {
	n, err := negotiate(c)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	payload, f, err := decodeBody(c, partnerrental.Resource)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	if f == codec.Protobuf {
		payload = codec.DropUnset(payload, partnerrental.Resource.Binary)
	}

	stored, err := h.commands.Upsert(c.Request.Context(), payload)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	render(c, http.StatusOK, n, stored.Record(), partnerrental.Resource.Single())
}

// @Summary Get a partner rental
// @Tags rentals
// @Security BearerAuth
// @Produce json,xml,application/x-yaml,application/x-protobuf
// @Param id path int true "Rental ID"
// @Param pretty query string false "compact with false, 0, no or compact"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /rentals/{id} [get]
func (h *PartnerRentalHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	n, err := negotiate(c)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	r, err := h.queries.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	render(c, http.StatusOK, n, r.Record(), partnerrental.Resource.Single())
}
