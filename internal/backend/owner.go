package backend

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopboxapp/shopbox-client/internal/domain"
	"github.com/shopboxapp/shopbox-client/internal/errors"
)

// CheckOwner asks the backend whether the platform user owns the tenant.
// A 200 response carries the boolean plus the shop metadata. Any other
// status or transport failure is an error; callers treat every error as
// "not owner".
func (c *Client) CheckOwner(ctx context.Context, tenantID string, userID int64) (*domain.OwnerCheck, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	checkURL := c.baseURL + "/api/business/check-owner/" + url.PathEscape(tenantID) +
		"?user_id=" + strconv.FormatInt(userID, 10)

	c.logger.Debug("checking shop ownership",
		"tenant", tenantID,
		"user_id", userID,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, checkURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("owner check request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Unavailable(fmt.Sprintf("owner check failed: status %d", resp.StatusCode))
	}

	var check domain.OwnerCheck
	if err := json.UnmarshalRead(resp.Body, &check); err != nil {
		return nil, fmt.Errorf("parse owner check: %w", err)
	}

	c.logger.Debug("owner check result",
		"tenant", tenantID,
		"is_owner", check.IsOwner,
	)

	return &check, nil
}
