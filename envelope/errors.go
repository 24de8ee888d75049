package envelope

import (
	"fmt"
	"strings"
)

// RemoteError is an application-level error reported by the server.
// Code and Data are nil when the server omitted them.
type RemoteError struct {
	Code    *int64
	Message string
	Data    *string
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	b.WriteString("jsonrpc: remote error")
	if e.Code != nil {
		fmt.Fprintf(&b, " (code %d)", *e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Data != nil {
		fmt.Fprintf(&b, ", data = %s", *e.Data)
	}
	return b.String()
}

// ProtocolError means the response text did not match the expected
// envelope shape. Raw keeps the offending text for diagnostics.
type ProtocolError struct {
	Reason string
	Raw    string
}

func (e *ProtocolError) Error() string {
	return "jsonrpc: malformed response: " + e.Reason
}
