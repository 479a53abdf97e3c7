//go:build unit

package giftcard_test

import (
	"testing"

	"account-shop/internal/domain/giftcard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	testCases := []struct {
		name       string
		rawType    string
		rawCode    string
		expectType giftcard.CardType
		errIs      error
	}{
		{
			name:       "amazon alphanumeric code",
			rawType:    "Amazon Gift Card",
			rawCode:    "ABCD1234EFGH56",
			expectType: giftcard.TypeAmazon,
		},
		{
			name:       "amazon code with hyphens is normalized",
			rawType:    "amazon",
			rawCode:    "ABCD-1234-EFGH",
			expectType: giftcard.TypeAmazon,
		},
		{
			name:    "amazon code too short",
			rawType: "amazon",
			rawCode: "ABC123",
			errIs:   giftcard.ErrInvalidFormat,
		},
		{
			name:    "amazon code with symbols",
			rawType: "amazon",
			rawCode: "ABCD!234EFGH56",
			errIs:   giftcard.ErrInvalidFormat,
		},
		{
			name:       "google play code",
			rawType:    "Google Play",
			rawCode:    "ABCDE12345FGHIJ67890",
			expectType: giftcard.TypeGooglePlay,
		},
		{
			name:    "google play code too short",
			rawType: "google play",
			rawCode: "ABCDE12345",
			errIs:   giftcard.ErrInvalidFormat,
		},
		{
			name:       "visa prepaid digits",
			rawType:    "Visa",
			rawCode:    "4111 1111 1111 1111",
			expectType: giftcard.TypePrepaid,
		},
		{
			name:       "mastercard classifies as prepaid",
			rawType:    "mastercard prepaid",
			rawCode:    "5500000000000004",
			expectType: giftcard.TypePrepaid,
		},
		{
			name:    "prepaid rejects letters",
			rawType: "prepaid",
			rawCode: "41111111111A1111",
			errIs:   giftcard.ErrInvalidFormat,
		},
		{
			name:    "prepaid too short",
			rawType: "visa",
			rawCode: "41111111",
			errIs:   giftcard.ErrInvalidFormat,
		},
		{
			name:    "unknown type",
			rawType: "steam",
			rawCode: "ABCD1234EFGH56",
			errIs:   giftcard.ErrUnsupportedType,
		},
		{
			name:    "empty type",
			rawType: "",
			rawCode: "ABCD1234EFGH56",
			errIs:   giftcard.ErrUnsupportedType,
		},
		{
			name:    "empty code",
			rawType: "amazon",
			rawCode: "",
			errIs:   giftcard.ErrInvalidFormat,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			card, err := giftcard.NewCard(tc.rawType, tc.rawCode)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectType, card.Type())
		})
	}
}

func TestCardType_DisplayName(t *testing.T) {
	assert.Equal(t, "Amazon", giftcard.TypeAmazon.DisplayName())
	assert.Equal(t, "Google Play", giftcard.TypeGooglePlay.DisplayName())
	assert.Equal(t, "Prepaid Visa/Mastercard", giftcard.TypePrepaid.DisplayName())
}
