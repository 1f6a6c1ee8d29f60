package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is wrapped by every validation failure of a request record.
var ErrInvalidInput = errors.New("invalid input")

const dateLayout = "2006-01-02"

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// ParseAmount reads a user-typed amount. Both "12.5" and "12,5" are accepted;
// an empty string is zero. Negative amounts are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.Replace(s, ",", ".", 1)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, invalid("amount %q is not a number", s)
	}
	if d.IsNegative() {
		return decimal.Zero, invalid("amount must not be negative")
	}
	return d, nil
}

// ValidateDate checks a business date in YYYY-MM-DD form.
func ValidateDate(s string) error {
	if s == "" {
		return invalid("date is required")
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return invalid("date %q must be YYYY-MM-DD", s)
	}
	return nil
}

func requirePositive(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return invalid("%s must be greater than zero", field)
	}
	return nil
}

func requireNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return invalid("%s must not be negative", field)
	}
	return nil
}

// Audit is the updated_by_name/updated_at pair. It is only ever set by an
// edit, never on create.
type Audit struct {
	UpdatedByName *string    `json:"updated_by_name,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func (a Audit) Edited() bool {
	return a.UpdatedByName != nil && *a.UpdatedByName != ""
}

func NewAudit(editor string, at time.Time) Audit {
	return Audit{UpdatedByName: &editor, UpdatedAt: &at}
}
