package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID            int64           `json:"id"`
	SupplierID    int64           `json:"supplier_id"`
	BusinessID    int64           `json:"business_id"`
	UserID        int64           `json:"user_id"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	Description   string          `json:"description"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	InvoiceURL    *string         `json:"invoice_url,omitempty"`
	Audit
	CreatedAt time.Time `json:"created_at"`
	FullName  string    `json:"full_name"`
}

type TransactionCreateRequest struct {
	SupplierID    int64
	Type          TransactionType
	Amount        decimal.Decimal
	Date          string
	Description   string
	PaymentMethod PaymentMethod
}

func (r TransactionCreateRequest) Validate() error {
	if r.SupplierID == 0 {
		return invalid("supplier_id is required")
	}
	if !r.Type.Valid() {
		return invalid("unknown transaction type %q", r.Type)
	}
	if err := requirePositive("amount", r.Amount); err != nil {
		return err
	}
	if err := ValidateDate(r.Date); err != nil {
		return err
	}
	if !r.PaymentMethod.Valid() {
		return invalid("unknown payment method %q", r.PaymentMethod)
	}
	return nil
}

// TransactionUpdateRequest carries the editable fields. Type and date are
// fixed once a transaction exists.
type TransactionUpdateRequest struct {
	Amount        decimal.Decimal
	Description   string
	PaymentMethod PaymentMethod
}

func (r TransactionUpdateRequest) Validate() error {
	if err := requirePositive("amount", r.Amount); err != nil {
		return err
	}
	if !r.PaymentMethod.Valid() {
		return invalid("unknown payment method %q", r.PaymentMethod)
	}
	return nil
}

// TransactionPatch is what the repository writes on edit.
type TransactionPatch struct {
	Amount        decimal.Decimal
	Description   string
	PaymentMethod PaymentMethod
	InvoiceURL    *string
	Audit         Audit
}
