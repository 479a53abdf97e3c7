package account

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail      = errors.New("invalid email")
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrAlreadyConsumed   = errors.New("account is already consumed")
	ErrInvalidImportPair = errors.New("invalid import pair format")
)

// Account is a single unit of sellable inventory: one pre-provisioned
// credential pair. Once consumed it never returns to the pool.
type Account struct {
	id         uuid.UUID
	email      string
	password   string
	consumed   bool
	consumedBy string
	consumedAt *time.Time
	createdAt  time.Time
}

func NewAccount(email, password string) (*Account, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if !strings.Contains(email, "@") || len(email) < 3 {
		return nil, ErrInvalidEmail
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}
	return &Account{
		id:       uuid.New(),
		email:    email,
		password: password,
	}, nil
}

func ReconstructAccount(
	id uuid.UUID,
	email, password string,
	consumed bool,
	consumedBy string,
	consumedAt *time.Time,
	createdAt time.Time,
) *Account {
	return &Account{
		id:         id,
		email:      email,
		password:   password,
		consumed:   consumed,
		consumedBy: consumedBy,
		consumedAt: consumedAt,
		createdAt:  createdAt,
	}
}

// Consume flips the account to consumed, irreversibly.
func (a *Account) Consume(buyerID string, now time.Time) error {
	if a.consumed {
		return ErrAlreadyConsumed
	}
	a.consumed = true
	a.consumedBy = buyerID
	a.consumedAt = &now
	return nil
}

func (a *Account) ID() uuid.UUID          { return a.id }
func (a *Account) Email() string          { return a.email }
func (a *Account) Password() string       { return a.password }
func (a *Account) IsConsumed() bool       { return a.consumed }
func (a *Account) ConsumedBy() string     { return a.consumedBy }
func (a *Account) ConsumedAt() *time.Time { return a.consumedAt }
func (a *Account) CreatedAt() time.Time   { return a.createdAt }

// ImportError records one rejected pair from a bulk import line.
type ImportError struct {
	Pair   string
	Reason error
}

// ParseImportList parses the operator's bulk-import input, a comma-separated
// list of email:password pairs. Invalid pairs are collected rather than
// aborting the whole import.
func ParseImportList(raw string) ([]*Account, []ImportError) {
	var (
		accounts []*Account
		failures []ImportError
	)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		email, password, found := strings.Cut(pair, ":")
		if !found {
			failures = append(failures, ImportError{Pair: pair, Reason: ErrInvalidImportPair})
			continue
		}
		acc, err := NewAccount(email, password)
		if err != nil {
			failures = append(failures, ImportError{Pair: pair, Reason: err})
			continue
		}
		accounts = append(accounts, acc)
	}
	return accounts, failures
}
