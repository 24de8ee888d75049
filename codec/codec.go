// Package codec serializes JSON-RPC envelopes and decodes result payloads
// into the caller's declared types.
//
// Two implementations share the same wire format (standard JSON):
//   - StdCodec:  encoding/json from the standard library
//   - FastCodec: json-iterator, configured to be bit-compatible with encoding/json
package codec

type CodecType byte

const (
	CodecTypeStd  CodecType = 0
	CodecTypeFast CodecType = 1
)

// Codec encodes values to JSON and decodes JSON into typed values.
// Decode must fail when the payload shape does not fit the target type.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
	Type() CodecType
}

func GetCodec(codecType CodecType) Codec {
	if codecType == CodecTypeFast {
		return &FastCodec{}
	}

	return &StdCodec{}
}
