package api

import (
	"net/http"

	"bookride-api/internal/handler/httperr"
	"bookride-api/internal/pkg/codec"
	"bookride-api/internal/pkg/record"

	"github.com/gin-gonic/gin"
)

// negotiation is the response format and layout chosen for one request.
type negotiation struct {
	format codec.Format
	pretty bool
}

func negotiate(c *gin.Context) (negotiation, error) {
	f, err := codec.NegotiateAccept(c.GetHeader("Accept"))
	if err != nil {
		return negotiation{}, err
	}
	return negotiation{format: f, pretty: codec.ParsePretty(c.Query("pretty"))}, nil
}

// decodeBody reads the request body in the format named by Content-Type.
func decodeBody(c *gin.Context, res codec.Resource) (record.Value, codec.Format, error) {
	f, err := codec.ParseContentType(c.GetHeader("Content-Type"))
	if err != nil {
		return nil, f, err
	}
	body, err := c.GetRawData()
	if err != nil {
		return nil, f, err
	}
	v, err := codec.Decode(f, body, res)
	if err != nil {
		return nil, f, err
	}
	return v, f, nil
}

// render writes v with the size headers of the chosen layout.
func render(c *gin.Context, status int, n negotiation, v record.Value, opts codec.EncodeOptions) {
	out, err := codec.Encode(n.format, v, opts)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	writeRendered(c, status, out, n.pretty)
}

func writeRendered(c *gin.Context, status int, out codec.Rendered, pretty bool) {
	for k, v := range out.Headers(pretty) {
		c.Header(k, v)
	}
	c.Data(status, out.MediaType, out.Body(pretty))
}

// bindJSON binds a JSON request DTO, aborting with 422 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid request body")
		return false
	}
	return true
}
