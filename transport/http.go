package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPTransport posts each request body to a fixed URL and returns the
// response body. The zero of Client falls back to http.DefaultClient, so
// timeouts, TLS and proxies are configured the usual net/http way.
type HTTPTransport struct {
	URL     string
	Client  *http.Client
	Headers http.Header // extra headers, e.g. authorization
}

func NewHTTPTransport(url string) *HTTPTransport {
	return &HTTPTransport{URL: url}
}

func (t *HTTPTransport) Call(ctx context.Context, request []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.URL, bytes.NewReader(request))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range t.Headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected HTTP status %s", resp.Status)
	}
	return body, nil
}
