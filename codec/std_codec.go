package codec

import (
	"encoding/json"
)

// StdCodec uses Go's standard library encoding/json for serialization.
// Pros: zero extra dependencies, reference behavior for the wire format.
// Cons: slower on hot paths due to reflection.
type StdCodec struct{}

func (c *StdCodec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c *StdCodec) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (c *StdCodec) Type() CodecType {
	return CodecTypeStd
}
