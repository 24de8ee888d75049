// Package binding decides how call arguments travel on the wire: as an
// ordered JSON array (positional mode) or as a name→value JSON object
// (named mode).
//
// Naming is all-or-nothing per method. A partial set of names would silently
// drop the unnamed arguments from the request, so it is rejected instead.
package binding

import "fmt"

// ConfigurationError reports a broken parameter declaration on a method.
// It is raised when the method is invoked, not when the stub is created,
// because the binding is computed per call.
type ConfigurationError struct {
	Method string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("jsonrpc: method %q: %s", e.Method, e.Reason)
}

// Bind pairs the declared parameter names with the actual argument values.
// names holds one entry per formal parameter; an empty string means the
// parameter carries no declared name.
//
// Returns nil for zero arguments (the params field is omitted entirely),
// []any when no parameter is named, map[string]any when every parameter is.
func Bind(method string, names []string, args []any) (any, error) {
	if len(args) != len(names) {
		return nil, &ConfigurationError{
			Method: method,
			Reason: fmt.Sprintf("declared %d parameters, got %d arguments", len(names), len(args)),
		}
	}

	named := 0
	for _, n := range names {
		if n != "" {
			named++
		}
	}

	if named == 0 {
		if len(args) == 0 {
			return nil, nil
		}
		positional := make([]any, len(args))
		copy(positional, args)
		return positional, nil
	}

	if named != len(names) {
		return nil, &ConfigurationError{
			Method: method,
			Reason: "parameter names are declared on some but not all parameters; " +
				"unnamed arguments would be dropped from the request",
		}
	}

	object := make(map[string]any, len(args))
	for i, n := range names {
		object[n] = args[i]
	}
	return object, nil
}
