package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopboxapp/shopbox-client/internal/domain"
)

func TestMessage_EncodeFilterTuple(t *testing.T) {
	msg, err := NewMessage("cards", "filter", map[string]any{"category": "roses"}, 6)
	require.NoError(t, err)

	data, err := msg.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `["cards","filter",{"category":"roses"},6]`, string(data))
}

func TestDecodeMessage_FilterResponse(t *testing.T) {
	raw := `["cards","filter",[{"_id":1,"title":"Red roses","price":"3 500","price_number":3500,"views_count":2}],{"category":"roses"},6]`

	msg, err := DecodeMessage([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "cards", msg.Domain)
	assert.Equal(t, "filter", msg.Verb)
	require.Len(t, msg.Args, 3)

	var cards []domain.Card
	require.NoError(t, msg.Arg(0, &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, int64(1), cards[0].ID)
	assert.Equal(t, "Red roses", cards[0].Title)
}

func TestDecodeMessage_ErrorTupleHasNoVerb(t *testing.T) {
	msg, err := DecodeMessage([]byte(`["error","no such table: cards"]`))
	require.NoError(t, err)
	assert.Equal(t, "error", msg.Domain)
	assert.Empty(t, msg.Verb)

	var text string
	require.NoError(t, msg.Arg(0, &text))
	assert.Equal(t, "no such table: cards", text)
}

func TestDecodeMessage_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not an array", `{"domain":"cards"}`},
		{"empty array", `[]`},
		{"numeric domain", `[42,"filter"]`},
		{"truncated", `["cards",`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMessage([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestMessage_RoundTrip(t *testing.T) {
	msg, err := NewMessage("images", "add", 7, 0, "data:image/jpeg;base64,xyz")
	require.NoError(t, err)

	data, err := msg.Encode()
	require.NoError(t, err)

	back, err := DecodeMessage(data)
	require.NoError(t, err)
	assert.Equal(t, "images", back.Domain)
	assert.Equal(t, "add", back.Verb)

	var cardID int64
	require.NoError(t, back.Arg(0, &cardID))
	assert.Equal(t, int64(7), cardID)
}

func TestMessage_ArgOutOfRange(t *testing.T) {
	msg, err := NewMessage("cards", "deleted")
	require.NoError(t, err)

	var v any
	assert.Error(t, msg.Arg(0, &v))
	assert.Error(t, msg.Arg(-1, &v))
}

func TestDecodeMessage_NonStringSecondElementStaysInArgs(t *testing.T) {
	// ["cards", 42] has no verb; 42 is payload.
	msg, err := DecodeMessage([]byte(`["cards",42]`))
	require.NoError(t, err)
	assert.Equal(t, "cards", msg.Domain)
	assert.Empty(t, msg.Verb)
	require.Len(t, msg.Args, 1)
}
