package api

import (
	"net/http"

	"bookride-api/internal/domain/book"
	"bookride-api/internal/handler/httperr"
	"bookride-api/internal/pkg/codec"

	"github.com/gin-gonic/gin"
)

const (
	convertRoot = "root"
	convertItem = "item"
)

// convertResource decodes any document shape. Binary input and output use
// the book field layout.
var convertResource = codec.Resource{Binary: book.Resource.Binary}

type ConvertHandler struct{}

func NewConvertHandler() *ConvertHandler {
	return &ConvertHandler{}
}

// @Summary Convert a document between formats
// @Description Transcodes the body without validation or persistence
// @Tags convert
// @Accept json,xml,application/x-yaml,application/x-protobuf
// @Produce json,xml,application/x-yaml,application/x-protobuf
// @Param to query string true "json, xml, yaml or protobuf"
// @Param pretty query string false "compact with false, 0, no or compact"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 415 {object} map[string]any
// @Failure 422 {object} map[string]any
// @Router /convert [post]
func (h *ConvertHandler) Convert(c *gin.Context) {
	payload, _, err := decodeBody(c, convertResource)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	target, err := codec.ParseTarget(c.Query("to"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	out, err := codec.Encode(target, payload, codec.EncodeOptions{
		Root:   convertRoot,
		Item:   convertItem,
		Binary: convertResource.Binary,
	})
	if err != nil {
		if codec.IsKind(err, codec.KindInvalidPayload) {
			err = codec.NewPayloadError(codec.KindInvalidPayload, "Cannot map payload to Book protobuf: "+err.Error())
		}
		httperr.Abort(c, err)
		return
	}

	writeRendered(c, http.StatusOK, out, codec.ParsePretty(c.Query("pretty")))
}
