package httpclient

import (
	"net/http"
	"time"
)

// sharedTransport is reused across all pooled clients so the reddit and
// model clients share one connection pool instead of each opening fresh
// TCP+TLS handshakes to their upstreams.
var sharedTransport = &http.Transport{
	MaxIdleConns:        20,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     120 * time.Second,
	DisableKeepAlives:   false,
}

// NewPooledClient creates an http.Client with the shared transport and the
// given overall request timeout.
func NewPooledClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: sharedTransport,
	}
}
