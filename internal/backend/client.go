// Package backend provides the typed REST client for the external shop
// backend. Only two endpoints exist on this surface: the ownership check
// and the session refresh; everything else flows over the message channel.
package backend

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Client calls the shop backend's REST endpoints.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	logger      *slog.Logger
}

// NewClient creates a backend client. Requests are rate limited to keep
// rapid navigation from hammering the ownership endpoint; the check is
// idempotent so dropped duplicates cost nothing.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		// 5 requests per second, burst of 10
		rateLimiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 10),
		baseURL:     strings.TrimRight(baseURL, "/"),
		logger:      logger,
	}
}
