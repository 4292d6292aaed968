package customHttpClient

import (
	"net/http"
	"time"

	"github.com/akolanti/EsgAPI/internal/config"
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// Transport is the shared pooled transport for outbound fetches.
func Transport() *http.Transport {
	return customTransport
}

// Client returns a client on the shared transport.
func Client(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: customTransport,
		Timeout:   timeout,
	}
}
