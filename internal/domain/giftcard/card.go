package giftcard

import (
	"errors"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported gift card type")
	ErrInvalidFormat   = errors.New("invalid gift card code format")
)

type CardType string

const (
	TypeAmazon     CardType = "amazon"
	TypeGooglePlay CardType = "google_play"
	TypePrepaid    CardType = "prepaid" // Visa / Mastercard prepaid
)

func (t CardType) String() string {
	return string(t)
}

// DisplayName is what buyers and the operator see in embeds.
func (t CardType) DisplayName() string {
	switch t {
	case TypeAmazon:
		return "Amazon"
	case TypeGooglePlay:
		return "Google Play"
	case TypePrepaid:
		return "Prepaid Visa/Mastercard"
	default:
		return string(t)
	}
}

// Card is the buyer-submitted payment instrument. The code is only ever
// format-checked here; redemption is the operator's manual job.
type Card struct {
	cardType CardType
	code     string
}

// NewCard classifies the free-text type the buyer entered and validates the
// code's shape for that type. Codes are normalized by stripping spaces and
// hyphens before length checks.
func NewCard(rawType, rawCode string) (Card, error) {
	cardType, err := classifyType(rawType)
	if err != nil {
		return Card{}, err
	}

	code := strings.TrimSpace(rawCode)
	clean := strings.NewReplacer(" ", "", "-", "").Replace(code)

	switch cardType {
	case TypeAmazon:
		// だいたい14-15桁の英数字
		if len(clean) < 10 || !isAlnum(clean) {
			return Card{}, ErrInvalidFormat
		}
	case TypeGooglePlay:
		// だいたい20桁の英数字
		if len(clean) < 15 || !isAlnum(clean) {
			return Card{}, ErrInvalidFormat
		}
	case TypePrepaid:
		// プリペイドカードは16桁の数字が標準
		if len(clean) < 12 || !isDigits(clean) {
			return Card{}, ErrInvalidFormat
		}
	}

	return Card{cardType: cardType, code: code}, nil
}

func (c Card) Type() CardType { return c.cardType }
func (c Card) Code() string   { return c.code }

func classifyType(raw string) (CardType, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(normalized, "amazon"):
		return TypeAmazon, nil
	case strings.Contains(normalized, "google"):
		return TypeGooglePlay, nil
	case strings.Contains(normalized, "visa"),
		strings.Contains(normalized, "mastercard"),
		strings.Contains(normalized, "prepaid"):
		return TypePrepaid, nil
	default:
		return "", ErrUnsupportedType
	}
}

func isAlnum(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return len(s) > 0
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
