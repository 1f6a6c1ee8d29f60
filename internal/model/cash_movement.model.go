package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type CashMovement struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Type        CashDirection   `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Audit
	CreatedAt time.Time `json:"created_at"`
	FullName  string    `json:"full_name"`
}

type CashMovementCreateRequest struct {
	Type        CashDirection
	Amount      decimal.Decimal
	Description string
	Date        string
}

func (r CashMovementCreateRequest) Validate() error {
	if !r.Type.Valid() {
		return invalid("unknown cash movement type %q", r.Type)
	}
	if err := requirePositive("amount", r.Amount); err != nil {
		return err
	}
	if strings.TrimSpace(r.Description) == "" {
		return invalid("description is required")
	}
	return ValidateDate(r.Date)
}

type CashMovementUpdateRequest struct {
	Amount      decimal.Decimal
	Description string
}

func (r CashMovementUpdateRequest) Validate() error {
	if err := requirePositive("amount", r.Amount); err != nil {
		return err
	}
	if strings.TrimSpace(r.Description) == "" {
		return invalid("description is required")
	}
	return nil
}

type CashMovementPatch struct {
	Amount      decimal.Decimal
	Description string
	Audit       Audit
}
