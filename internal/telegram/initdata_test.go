package telegram

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInitData_FullUser(t *testing.T) {
	userJSON := `{"id":709652754,"first_name":"Test","last_name":"User","username":"testuser"}`
	initData := url.Values{
		"user":      {userJSON},
		"auth_date": {"1735689600"},
		"hash":      {"abc123"},
	}.Encode()

	user := ParseInitData(initData)
	require.NotNil(t, user)
	assert.Equal(t, int64(709652754), user.ID)
	assert.Equal(t, "Test", user.FirstName)
	assert.Equal(t, "User", user.LastName)
	assert.Equal(t, "testuser", user.Username)
}

func TestParseInitData_Degradations(t *testing.T) {
	tests := []struct {
		name     string
		initData string
	}{
		{"empty string", ""},
		{"no user key", "auth_date=1735689600&hash=abc"},
		{"user not json", "user=notjson"},
		{"user without id", `user={"first_name":"Test"}`},
		{"bad url encoding", "user=%zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ParseInitData(tt.initData))
		})
	}
}
