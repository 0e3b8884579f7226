package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeValidation, http.StatusBadRequest},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
		{Code("UNKNOWN"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.HTTPStatus(), "code %s", tt.code)
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := Forbidden("not the shop owner")

	assert.True(t, Is(err, ErrForbidden))
	assert.False(t, Is(err, ErrNotFound))
}

func TestError_WrappedCauseSurvives(t *testing.T) {
	cause := New("connection refused")
	err := Unavailable("owner check failed").WithCause(cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "owner check failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestError_IsThroughFmtWrap(t *testing.T) {
	inner := NotFound("card 123")
	wrapped := fmt.Errorf("loading screen: %w", inner)

	assert.True(t, Is(wrapped, ErrNotFound))

	var domainErr *Error
	require.True(t, As(wrapped, &domainErr))
	assert.Equal(t, CodeNotFound, domainErr.Code)
}

func TestError_WithDetails(t *testing.T) {
	err := ValidationWithDetails("invalid settings", map[string]string{"business_name": "required"})

	assert.Equal(t, CodeValidation, err.Code)
	assert.NotNil(t, err.Details)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
}
