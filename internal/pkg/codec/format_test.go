//go:build unit

package codec_test

import (
	"testing"

	"bookride-api/internal/pkg/codec"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContentType(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    codec.Format
		wantErr string
	}{
		{name: "json", header: "application/json", want: codec.JSON},
		{name: "parameters and case ignored", header: "Application/XML; charset=utf-8", want: codec.XML},
		{name: "yaml", header: "application/x-yaml", want: codec.YAML},
		{name: "protobuf", header: "application/x-protobuf", want: codec.Protobuf},
		{name: "absent", header: "", wantErr: "Content-Type header required"},
		{name: "unknown", header: "text/plain", wantErr: "Unsupported Media Type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := codec.ParseContentType(tt.header)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, codec.IsKind(err, codec.KindUnsupportedMediaType))
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNegotiateAccept(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    codec.Format
		wantErr bool
	}{
		{name: "absent defaults to json", header: "", want: codec.JSON},
		{name: "registry order beats header order", header: "application/xml, application/json", want: codec.JSON},
		{name: "yaml before protobuf", header: "application/x-protobuf, application/x-yaml", want: codec.YAML},
		{name: "parameters allowed", header: "application/x-yaml;q=0.9", want: codec.YAML},
		{name: "wildcard", header: "*/*", want: codec.JSON},
		{name: "wildcard with unknown", header: "text/html, */*", want: codec.JSON},
		{name: "exact match wins over wildcard", header: "*/*, application/xml", want: codec.XML},
		{name: "unknown", header: "application/x-custom", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for n := 0; n < 3; n++ {
				got, err := codec.NegotiateAccept(tt.header)
				if tt.wantErr {
					require.Error(t, err)
					assert.True(t, codec.IsKind(err, codec.KindNotAcceptable))
					assert.Equal(t, "Not Acceptable", err.Error())
					continue
				}
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseTarget(t *testing.T) {
	got, err := codec.ParseTarget("YAML")
	require.NoError(t, err)
	assert.Equal(t, codec.YAML, got)

	_, err = codec.ParseTarget("csv")
	require.Error(t, err)
	assert.True(t, codec.IsKind(err, codec.KindInvalidTarget))
	assert.Equal(t, "to must be 'json', 'xml', 'yaml', or 'protobuf'", err.Error())
}

func TestParsePretty(t *testing.T) {
	for _, raw := range []string{"false", "0", "no", "compact", "COMPACT", " No "} {
		assert.False(t, codec.ParsePretty(raw), raw)
	}
	for _, raw := range []string{"", "true", "1", "yes", "pretty", "anything"} {
		assert.True(t, codec.ParsePretty(raw), raw)
	}
}

func TestFormats(t *testing.T) {
	formats := codec.Formats()
	require.Len(t, formats, 4)
	want := []string{"application/json", "application/xml", "application/x-yaml", "application/x-protobuf"}
	for i, f := range formats {
		assert.Equal(t, want[i], f.MediaType())
		assert.Equal(t, f, f.Codec().Format())
	}
}
