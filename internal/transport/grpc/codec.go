package grpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"

	"github.com/nadzzz/sayas/internal/script"
)

// codecName is the content subtype of the sayas service ("application/grpc+json").
const codecName = "json"

// jsonCodec carries scripts over gRPC as JSON documents so the wire shape
// matches the HTTP transport.
type jsonCodec struct{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return script.DecodeJSON(data, v)
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
