package client

import (
	"context"
	"fmt"
	"math/rand"

	"jrpc/binding"
	"jrpc/envelope"
	"jrpc/transport"
)

// Stub translates calls on a declared remote interface into JSON-RPC 2.0
// exchanges. It is stateless between calls and safe for concurrent use; the
// only shared mutable piece is the process-wide random id source, which is
// already synchronized.
type Stub struct {
	invoker   *Invoker
	transport transport.Transport
	handle    string
	methods   map[string]Method
}

// Call invokes the named method with args and decodes the result into result,
// which must be a pointer (or nil for void methods).
//
// Error outcomes, in pipeline order: ConfigurationError from the binder
// (before anything is sent), TransportError, ProtocolError, RemoteError,
// DecodeError.
func (s *Stub) Call(ctx context.Context, method string, result any, args ...any) error {
	m, ok := s.methods[method]
	if !ok {
		return fmt.Errorf("jsonrpc: method %q is not declared on handle %q", method, s.handle)
	}

	params, err := binding.Bind(method, m.paramNames(), args)
	if err != nil {
		return err
	}

	// Ids only need to fit a non-negative int32; calls are strictly
	// synchronous, so nothing correlates responses by id.
	req := envelope.NewRequest(s.handle, method, rand.Int31(), params)

	requestData, err := s.invoker.codec.Encode(req)
	if err != nil {
		return fmt.Errorf("jsonrpc: encode request: %w", err)
	}

	s.invoker.log.Debugf("JSON-RPC >> %s", requestData)
	responseData, err := s.transport.Call(ctx, requestData)
	if err != nil {
		return &TransportError{Cause: err}
	}
	s.invoker.log.Debugf("JSON-RPC << %s", responseData)

	resp, err := envelope.ParseResponse(responseData)
	if err != nil {
		return err
	}
	if err := resp.Err(); err != nil {
		return err
	}

	if !m.Returns || result == nil || len(resp.Result) == 0 {
		return nil
	}
	if err := s.invoker.codec.Decode(resp.Result, result); err != nil {
		return &DecodeError{Method: method, Cause: err}
	}
	return nil
}

// Call invokes method on the stub and decodes the result into a value of
// type T. Void methods go through (*Stub).Call with a nil result instead.
func Call[T any](ctx context.Context, s *Stub, method string, args ...any) (T, error) {
	var out T
	err := s.Call(ctx, method, &out, args...)
	return out, err
}

// TransportError wraps a failure raised by the transport itself. The
// response, if any, is never parsed in that case.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return "jsonrpc: unable to get data from transport: " + e.Cause.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// DecodeError means the result payload does not fit the declared return type.
type DecodeError struct {
	Method string
	Cause  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("jsonrpc: method %q: cannot decode result: %v", e.Method, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
