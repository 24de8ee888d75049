package codec

import (
	jsoniter "github.com/json-iterator/go"
)

var iter = jsoniter.ConfigCompatibleWithStandardLibrary

// FastCodec uses json-iterator for serialization. The config mirrors
// encoding/json exactly, so both codecs produce interchangeable bytes
// and either one can decode what the other encoded.
type FastCodec struct{}

func (c *FastCodec) Encode(v any) ([]byte, error) {
	return iter.Marshal(v)
}

func (c *FastCodec) Decode(data []byte, v any) error {
	return iter.Unmarshal(data, v)
}

func (c *FastCodec) Type() CodecType {
	return CodecTypeFast
}
