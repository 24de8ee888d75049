package test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jrpc/client"
	"jrpc/envelope"
	"jrpc/loadbalance"
	"jrpc/middleware"
	"jrpc/registry"
	"jrpc/transport"
)

// ---- in-process JSON-RPC server for the tests ----

type wireRequest struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// newCalcServer serves a tiny "calc" handle: add (positional), divide
// (named), reset (void). tag is echoed by the "whoami" method so the
// discovery test can see which server answered.
func newCalcServer(tb testing.TB, tag string) *httptest.Server {
	tb.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req wireRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		reply := func(result any, rpcErr any) {
			body := map[string]any{"jsonrpc": "2.0", "id": req.ID}
			if rpcErr != nil {
				body["error"] = rpcErr
			} else {
				body["result"] = result
			}
			json.NewEncoder(w).Encode(body)
		}

		switch req.Method {
		case "calc.add":
			var args []int
			if err := json.Unmarshal(req.Params, &args); err != nil || len(args) != 2 {
				reply(nil, map[string]any{"code": -32602, "message": "invalid params"})
				return
			}
			reply(args[0]+args[1], nil)
		case "calc.divide":
			var args struct {
				Dividend int `json:"dividend"`
				Divisor  int `json:"divisor"`
			}
			if err := json.Unmarshal(req.Params, &args); err != nil {
				reply(nil, map[string]any{"code": -32602, "message": "invalid params"})
				return
			}
			if args.Divisor == 0 {
				reply(nil, map[string]any{"code": 400, "message": "division by zero"})
				return
			}
			reply(args.Dividend/args.Divisor, nil)
		case "calc.reset":
			reply(nil, nil)
		case "calc.whoami":
			reply(tag, nil)
		default:
			reply(nil, map[string]any{"code": -32601, "message": "method not found"})
		}
	}))
}

// ---- hand-written typed adapter over the stub ----

func calcInterface() *client.Interface {
	return &client.Interface{Methods: []client.Method{
		{Name: "add", Params: []client.Param{{}, {}}, Returns: true},
		{Name: "divide", Params: []client.Param{{Name: "dividend"}, {Name: "divisor"}}, Returns: true},
		{Name: "reset"},
		{Name: "whoami", Returns: true},
	}}
}

// Calc is the kind of adapter a caller writes once per remote interface:
// typed methods on top of the generic stub.
type Calc struct {
	stub *client.Stub
}

func NewCalc(t transport.Transport) (*Calc, error) {
	stub, err := client.NewInvoker().Get(t, "calc", calcInterface())
	if err != nil {
		return nil, err
	}
	return &Calc{stub: stub}, nil
}

func (c *Calc) Add(ctx context.Context, a, b int) (int, error) {
	return client.Call[int](ctx, c.stub, "add", a, b)
}

func (c *Calc) Divide(ctx context.Context, dividend, divisor int) (int, error) {
	return client.Call[int](ctx, c.stub, "divide", dividend, divisor)
}

func (c *Calc) Reset(ctx context.Context) error {
	return c.stub.Call(ctx, "reset", nil)
}

func (c *Calc) WhoAmI(ctx context.Context) (string, error) {
	return client.Call[string](ctx, c.stub, "whoami")
}

// ---- end-to-end tests ----

func TestEndToEndHTTP(t *testing.T) {
	server := newCalcServer(t, "primary")
	defer server.Close()

	calc, err := NewCalc(transport.NewHTTPTransport(server.URL))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	sum, err := calc.Add(ctx, 3, 5)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if sum != 8 {
		t.Fatalf("Add: expect 8, got %d", sum)
	}

	quotient, err := calc.Divide(ctx, 42, 6)
	if err != nil {
		t.Fatalf("Divide failed: %v", err)
	}
	if quotient != 7 {
		t.Fatalf("Divide: expect 7, got %d", quotient)
	}

	if err := calc.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
}

func TestEndToEndRemoteError(t *testing.T) {
	server := newCalcServer(t, "primary")
	defer server.Close()

	calc, err := NewCalc(transport.NewHTTPTransport(server.URL))
	if err != nil {
		t.Fatal(err)
	}

	_, err = calc.Divide(context.Background(), 1, 0)

	var re *envelope.RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expect RemoteError, got %v", err)
	}
	if re.Code == nil || *re.Code != 400 || re.Message != "division by zero" {
		t.Fatalf("expect code 400 / division by zero, got %+v", re)
	}
}

func TestEndToEndWithMiddleware(t *testing.T) {
	server := newCalcServer(t, "primary")
	defer server.Close()

	wrapped := middleware.Apply(transport.NewHTTPTransport(server.URL),
		middleware.LoggingMiddleware(nil),
		middleware.TimeoutMiddleware(2*time.Second),
		middleware.RateLimitMiddleware(100, 10),
	)

	calc, err := NewCalc(wrapped)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 5; i++ {
		sum, err := calc.Add(context.Background(), i, i*10)
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
		if sum != i+i*10 {
			t.Fatalf("request %d: expect %d, got %d", i, i+i*10, sum)
		}
	}
}

func TestEndToEndDeadServer(t *testing.T) {
	server := newCalcServer(t, "primary")
	server.Close() // nothing listens anymore

	calc, err := NewCalc(transport.NewHTTPTransport(server.URL))
	if err != nil {
		t.Fatal(err)
	}

	_, err = calc.Add(context.Background(), 1, 2)

	var te *client.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expect TransportError, got %v", err)
	}
}

func TestEndToEndDiscovery(t *testing.T) {
	east := newCalcServer(t, "east")
	defer east.Close()
	west := newCalcServer(t, "west")
	defer west.Close()

	reg := newMemoryRegistry()
	ctx := context.Background()
	reg.Register(ctx, "calc", registry.Endpoint{Addr: east.URL}, 10)
	reg.Register(ctx, "calc", registry.Endpoint{Addr: west.URL}, 10)

	dt := transport.NewDiscoveryTransport(reg, &loadbalance.RoundRobinBalancer{}, "calc",
		func(addr string) (transport.Transport, error) {
			return transport.NewHTTPTransport(addr), nil
		})

	calc, err := NewCalc(dt)
	if err != nil {
		t.Fatal(err)
	}

	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		tag, err := calc.WhoAmI(ctx)
		if err != nil {
			t.Fatal(err)
		}
		seen[tag] = true
	}

	if !seen["east"] || !seen["west"] {
		t.Fatalf("expect calls spread over both servers, got %v", seen)
	}
}
