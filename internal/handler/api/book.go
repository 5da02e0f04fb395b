package api

import (
	"net/http"
	"strconv"

	"bookride-api/internal/domain/book"
	"bookride-api/internal/handler/httperr"
	"bookride-api/internal/pkg/codec"
	"bookride-api/internal/pkg/errs"
	"bookride-api/internal/pkg/record"
	"bookride-api/internal/usecase/commands"
	"bookride-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const msgBookListBinary = "Protobuf not supported for book lists"

type BookHandler struct {
	commands commands.BookCommands
	queries  queries.BookQueries
}

func NewBookHandler(commands commands.BookCommands, queries queries.BookQueries) *BookHandler {
	return &BookHandler{
		commands: commands,
		queries:  queries,
	}
}

// @Summary Upsert a book
// @Description Decodes the body per Content-Type, validates it and stores it by id
// @Tags books
// @Security BearerAuth
// @Accept json,xml,application/x-yaml,application/x-protobuf
// @Produce json,xml,application/x-yaml,application/x-protobuf
// @Param pretty query string false "compact with false, 0, no or compact"
// @Success 201 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Failure 406 {object} map[string]any
// @Failure 415 {object} map[string]any
// @Failure 422 {object} map[string]any
// @Router /books [post]
func (h *BookHandler) Create(c *gin.Context) {
	n, err := negotiate(c)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	payload, _, err := decodeBody(c, book.Resource)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	stored, err := h.commands.Upsert(c.Request.Context(), payload)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	render(c, http.StatusCreated, n, stored.Record(), book.Resource.Single())
}

// @Summary List books
// @Tags books
// @Security BearerAuth
// @Produce json,xml,application/x-yaml
// @Param pretty query string false "compact with false, 0, no or compact"
// @Success 200 {array} map[string]any
// @Failure 401 {object} map[string]any
// @Failure 406 {object} map[string]any
// @Router /books [get]
func (h *BookHandler) List(c *gin.Context) {
	n, err := negotiate(c)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	if n.format == codec.Protobuf {
		httperr.AbortWithError(c, http.StatusNotAcceptable, codec.NewPayloadError(codec.KindNotAcceptable, msgBookListBinary), msgBookListBinary)
		return
	}

	books, err := h.queries.List(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	items := make(record.List, 0, len(books))
	for _, b := range books {
		items = append(items, b.Record())
	}
	render(c, http.StatusOK, n, items, book.Resource.Collection())
}

// @Summary Get a book
// @Tags books
// @Security BearerAuth
// @Produce json,xml,application/x-yaml,application/x-protobuf
// @Param id path int true "Book ID"
// @Param pretty query string false "compact with false, 0, no or compact"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Failure 406 {object} map[string]any
// @Router /books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	n, err := negotiate(c)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	b, err := h.queries.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	render(c, http.StatusOK, n, b.Record(), book.Resource.Single())
}

// pathID parses the :id parameter, aborting with 422 when it is not an integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, errs.Wrapf(err, "parse id %q", c.Param("id")), "id must be an integer")
		return 0, false
	}
	return id, true
}
