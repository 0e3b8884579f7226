// Package telegram extracts the platform user from the init data string
// the Telegram Mini-App runtime injects at startup.
package telegram

import (
	"encoding/json/v2"
	"net/url"

	"github.com/shopboxapp/shopbox-client/internal/domain"
)

// ParseInitData parses the url-encoded init data and returns the
// embedded user, or nil when the app runs outside the platform.
// Malformed data fails closed to the unauthenticated state; signature
// verification belongs to the backend, not this client.
func ParseInitData(initData string) *domain.PlatformUser {
	if initData == "" {
		return nil
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil
	}

	raw := values.Get("user")
	if raw == "" {
		return nil
	}

	var user domain.PlatformUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	if user.ID == 0 {
		return nil
	}
	return &user
}
