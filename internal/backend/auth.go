package backend

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"

	"github.com/shopboxapp/shopbox-client/internal/domain"
	"github.com/shopboxapp/shopbox-client/internal/errors"
)

// meResponse is the envelope of the /api/auth/me endpoint.
type meResponse struct {
	User domain.PlatformUser `json:"user"`
}

// Me validates the stored bearer token against the backend and returns
// the account it belongs to. A 401 means the token expired and the
// caller should run the refresh flow; the refresh endpoint itself lives
// on the backend and is not wrapped here.
func (c *Client) Me(ctx context.Context, accessToken string) (*domain.PlatformUser, error) {
	if accessToken == "" {
		return nil, errors.Unauthorized("no access token")
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/me", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth check request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusUnauthorized:
		return nil, errors.Unauthorized("access token expired")
	default:
		return nil, errors.Unavailable(fmt.Sprintf("auth check failed: status %d", resp.StatusCode))
	}

	var me meResponse
	if err := json.UnmarshalRead(resp.Body, &me); err != nil {
		return nil, fmt.Errorf("parse auth response: %w", err)
	}

	return &me.User, nil
}
