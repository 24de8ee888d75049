// Package envelope defines the JSON-RPC 2.0 request and response bodies and
// classifies response outcomes.
//
// The response side tells three cases apart:
//
//	{"result": ...}            → success, raw result handed to the codec
//	{"error": ...}             → RemoteError (three server error shapes)
//	anything else / bad JSON   → ProtocolError
//
// A non-null error field always wins over a result field.
package envelope

import (
	"bytes"
	"encoding/json"
)

// Version is the protocol version stamped on every outgoing request.
const Version = "2.0"

// Request is the JSON-RPC 2.0 request body.
//
// Params is nil (and omitted from the wire) for zero-argument calls,
// a []any for positional calls, or a map[string]any for named calls.
type Request struct {
	Jsonrpc string `json:"jsonrpc"`
	ID      int32  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// NewRequest assembles a request envelope. The wire method name is the remote
// handle joined with the method name: "handle.method".
func NewRequest(handle, method string, id int32, params any) *Request {
	return &Request{
		Jsonrpc: Version,
		ID:      id,
		Method:  handle + "." + method,
		Params:  params,
	}
}

// Response is the JSON-RPC 2.0 response body. Result and Error are kept raw:
// Error is classified by Err, Result is decoded later against the declared
// return type.
type Response struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      *int64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   json.RawMessage `json:"error"`
}

// ParseResponse parses raw response text. Anything that is not a single JSON
// object at the top level is a ProtocolError.
func ParseResponse(raw []byte) (*Response, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &ProtocolError{Reason: "response is not a JSON object", Raw: string(raw)}
	}

	resp := new(Response)
	if err := json.Unmarshal(raw, resp); err != nil {
		return nil, &ProtocolError{Reason: err.Error(), Raw: string(raw)}
	}
	return resp, nil
}

// errorBody is the structured error shape. Data stays raw so that nested
// objects keep their exact textual form.
type errorBody struct {
	Code    *int64          `json:"code"`
	Message *string         `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Err classifies the error field of the response:
//
//   - absent or null        → nil
//   - JSON primitive        → RemoteError carrying only a message
//   - JSON object           → RemoteError with optional code/message/data
//   - anything else (array) → RemoteError with a synthesized "unknown error" message
func (r *Response) Err() error {
	if isNull(r.Error) {
		return nil
	}

	var v any
	if err := json.Unmarshal(r.Error, &v); err != nil {
		return &ProtocolError{Reason: "malformed error field: " + err.Error(), Raw: string(r.Error)}
	}

	switch e := v.(type) {
	case string:
		return &RemoteError{Message: e}
	case float64, bool:
		return &RemoteError{Message: string(bytes.TrimSpace(r.Error))}
	case map[string]any:
		var body errorBody
		// Shape already known to be an object, so this cannot fail.
		json.Unmarshal(r.Error, &body)

		re := &RemoteError{Code: body.Code}
		if body.Message != nil {
			re.Message = *body.Message
		}
		if !isNull(body.Data) {
			re.Data = stringForm(body.Data)
		}
		return re
	default:
		return &RemoteError{Message: "unknown error, data = " + string(bytes.TrimSpace(r.Error))}
	}
}

// stringForm renders the data field: a JSON string is unquoted, an object (or
// any other value) keeps its raw textual form. Callers match on this
// asymmetry, so it must not be normalized.
func stringForm(raw json.RawMessage) *string {
	var s string
	if raw[0] == '"' && json.Unmarshal(raw, &s) == nil {
		return &s
	}
	s = string(bytes.TrimSpace(raw))
	return &s
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
