package validation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopboxapp/shopbox-client/internal/domain"
	"github.com/shopboxapp/shopbox-client/internal/errors"
	"github.com/shopboxapp/shopbox-client/internal/validation"
)

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	order := domain.Order{
		Name:  "Ann",
		Phone: "+7 900 000-00-00",
		Items: []domain.CartItem{{CardID: 1, Title: "Roses", Quantity: 1}},
	}

	assert.NoError(t, v.Validate(order))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name     string
		value    any
		wantField string
	}{
		{
			name:      "order missing name",
			value:     domain.Order{Phone: "+7 900 000-00-00", Items: []domain.CartItem{{CardID: 1}}},
			wantField: "name",
		},
		{
			name:      "order with empty cart",
			value:     domain.Order{Name: "Ann", Phone: "+7 900 000-00-00"},
			wantField: "items",
		},
		{
			name:      "hint missing receiver phone",
			value:     domain.Hint{Name: "Ann", ReceiverName: "Kate"},
			wantField: "receiver_phone",
		},
		{
			name:      "settings with bad logo url",
			value:     domain.ShopSettings{BusinessName: "Flower Corner", LogoURL: "not a url"},
			wantField: "logo_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.value)
			require.Error(t, err)

			var domainErr *errors.Error
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

			fields, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestValidator_JSONFieldNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(domain.ShopSettings{})
	require.Error(t, err)

	var domainErr *errors.Error
	require.True(t, errors.As(err, &domainErr))
	fields := domainErr.Details.(map[string]string)
	assert.Contains(t, fields, "business_name")
	assert.NotContains(t, fields, "BusinessName")
}
