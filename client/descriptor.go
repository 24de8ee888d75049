package client

import "fmt"

// Param describes one formal parameter of a remote method. An empty Name
// means the argument travels positionally; a non-empty Name puts it into a
// named params object. Naming is all-or-nothing per method, checked when the
// method is called.
type Param struct {
	Name string
}

// Method describes one remote operation: its wire name (without the handle
// prefix), its formal parameters, and whether it returns a value.
type Method struct {
	Name    string
	Params  []Param
	Returns bool
}

func (m Method) paramNames() []string {
	names := make([]string, len(m.Params))
	for i, p := range m.Params {
		names[i] = p.Name
	}
	return names
}

// Interface is the static descriptor of a remote interface — the declaration
// a stub is generated from. Hand-written adapter types pair one Interface
// with typed wrapper methods around Stub.Call.
type Interface struct {
	Methods []Method
}

// TypeChecker is the injected policy deciding whether an interface descriptor
// is suitable for stub generation. Get runs it once, before any call is made.
type TypeChecker interface {
	IsValidInterface(iface *Interface) error
}

// BasicChecker accepts any descriptor with at least one method, where every
// method has a distinct non-empty name. It deliberately does not look at
// parameter naming: partial naming is a per-call concern and is reported by
// the binder when the method is invoked.
type BasicChecker struct{}

func (BasicChecker) IsValidInterface(iface *Interface) error {
	if len(iface.Methods) == 0 {
		return fmt.Errorf("interface declares no methods")
	}

	seen := make(map[string]bool, len(iface.Methods))
	for _, m := range iface.Methods {
		if m.Name == "" {
			return fmt.Errorf("interface declares a method without a name")
		}
		if seen[m.Name] {
			return fmt.Errorf("interface declares method %q twice", m.Name)
		}
		seen[m.Name] = true
	}
	return nil
}
