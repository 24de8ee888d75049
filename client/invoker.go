// Package client implements the outward-facing JSON-RPC 2.0 invoker: given a
// transport, a remote handle name and an interface descriptor, it produces a
// stub whose calls run the full pipeline
//
//	binder → request builder → transport → response classifier → result decoder
//
// one synchronous request/response exchange per call.
package client

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"jrpc/codec"
	"jrpc/transport"
)

// ErrInvalidArgument is returned by Get when the transport, handle or
// interface descriptor is missing, or when the type checker rejects the
// descriptor.
var ErrInvalidArgument = errors.New("jsonrpc: invalid argument")

// Invoker is the stub factory. It holds the pieces shared by every stub it
// creates: the codec, the interface validity policy, and the logger used for
// raw envelope debug output.
type Invoker struct {
	checker TypeChecker
	codec   codec.Codec
	log     logrus.FieldLogger
}

type Option func(*Invoker)

// WithCodec replaces the JSON codec (default: the stdlib codec).
func WithCodec(c codec.Codec) Option {
	return func(inv *Invoker) { inv.codec = c }
}

// WithTypeChecker replaces the interface validity policy (default: BasicChecker).
func WithTypeChecker(tc TypeChecker) Option {
	return func(inv *Invoker) { inv.checker = tc }
}

// WithLogger replaces the logger for raw request/response debug lines
// (default: the logrus standard logger).
func WithLogger(log logrus.FieldLogger) Option {
	return func(inv *Invoker) { inv.log = log }
}

func NewInvoker(opts ...Option) *Invoker {
	inv := &Invoker{
		checker: BasicChecker{},
		codec:   codec.GetCodec(codec.CodecTypeStd),
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Get builds a stub for the interface descriptor, bound to a transport and a
// remote handle name. No network activity happens here; the first request is
// sent when a method is called on the stub.
func (inv *Invoker) Get(t transport.Transport, handle string, iface *Interface) (*Stub, error) {
	if t == nil || handle == "" || iface == nil {
		return nil, fmt.Errorf("%w: transport, handle and interface are all required", ErrInvalidArgument)
	}
	if err := inv.checker.IsValidInterface(iface); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	methods := make(map[string]Method, len(iface.Methods))
	for _, m := range iface.Methods {
		methods[m.Name] = m
	}

	return &Stub{
		invoker:   inv,
		transport: t,
		handle:    handle,
		methods:   methods,
	}, nil
}
