// Package network provides the HTTP client shared by catalogue requests.
package network

import (
	"net/http"
	"time"

	"github.com/poolsuite-cli/poolsuite/constant"
)

// Client is shared by every catalogue request.
// Stream data never goes through it, mpv fetches streams itself.
var Client = &http.Client{
	Timeout:   30 * time.Second,
	Transport: &userAgentTransport{base: newTransport()},
}

// userAgentTransport sets a browser User-Agent unless the request has one.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}

	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", constant.UserAgent)
	return t.base.RoundTrip(req)
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 16
	t.MaxIdleConnsPerHost = 8
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 15 * time.Second
	return t
}
