package transport

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"sync"
	"time"
)

// ConnTransport exchanges newline-delimited JSON values over a single stream
// connection, strictly one request then one response.
//
// The mutex serializes whole exchanges: with several goroutines sharing one
// connection, interleaved writes (or a response claimed by the wrong caller)
// would corrupt the conversation. Callers who need parallelism should use
// PoolTransport instead.
type ConnTransport struct {
	mu   sync.Mutex
	conn io.ReadWriteCloser
	enc  *json.Encoder
	dec  *json.Decoder
}

func NewConnTransport(conn io.ReadWriteCloser) *ConnTransport {
	return &ConnTransport{
		conn: conn,
		enc:  json.NewEncoder(conn),
		dec:  json.NewDecoder(conn),
	}
}

func (t *ConnTransport) Call(ctx context.Context, request []byte) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// A context deadline maps onto the connection deadline when the
	// underlying stream supports one.
	if nc, ok := t.conn.(net.Conn); ok {
		if deadline, has := ctx.Deadline(); has {
			nc.SetDeadline(deadline)
			defer nc.SetDeadline(time.Time{})
		}
	}

	if err := t.enc.Encode(json.RawMessage(request)); err != nil {
		return nil, err
	}

	var response json.RawMessage
	if err := t.dec.Decode(&response); err != nil {
		return nil, err
	}
	return response, nil
}

func (t *ConnTransport) Close() error {
	return t.conn.Close()
}
