package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID            int64           `json:"id"`
	DailyReportID int64           `json:"daily_report_id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
}

type DailyReport struct {
	ID         int64           `json:"id"`
	BusinessID int64           `json:"business_id"`
	UserID     int64           `json:"user_id"`
	Date       string          `json:"date"`
	CreditCard decimal.Decimal `json:"credit_card"`
	Cash       decimal.Decimal `json:"cash"`
	MealCards  decimal.Decimal `json:"meal_cards"`
	ActualCash decimal.Decimal `json:"actual_cash"`
	Notes      string          `json:"notes"`
	Expenses   []*Expense      `json:"expenses"`
	Audit
	CreatedAt time.Time `json:"created_at"`
	FullName  string    `json:"full_name"`
}

type ExpenseDraft struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ReportDraft is the form content of a report add or edit, held by the save
// gate until the user acknowledges the expense summary.
type ReportDraft struct {
	ReportID   int64           `json:"report_id,omitempty"`
	BusinessID int64           `json:"business_id"`
	Date       string          `json:"date"`
	CreditCard decimal.Decimal `json:"credit_card"`
	Cash       decimal.Decimal `json:"cash"`
	MealCards  decimal.Decimal `json:"meal_cards"`
	ActualCash decimal.Decimal `json:"actual_cash"`
	Notes      string          `json:"notes"`
	Expenses   []ExpenseDraft  `json:"expenses"`
}

func (d ReportDraft) Validate() error {
	if d.BusinessID == 0 {
		return invalid("business_id is required")
	}
	if err := ValidateDate(d.Date); err != nil {
		return err
	}
	totals := []struct {
		field string
		v     decimal.Decimal
	}{
		{"credit_card", d.CreditCard},
		{"cash", d.Cash},
		{"meal_cards", d.MealCards},
		{"actual_cash", d.ActualCash},
	}
	for _, t := range totals {
		if err := requireNonNegative(t.field, t.v); err != nil {
			return err
		}
	}
	for i, e := range d.Expenses {
		if strings.TrimSpace(e.Description) == "" {
			return invalid("expense %d: description is required", i+1)
		}
		if err := requirePositive("expense amount", e.Amount); err != nil {
			return err
		}
	}
	return nil
}

func (d ReportDraft) ExpenseTotal() decimal.Decimal {
	total := decimal.Zero
	for _, e := range d.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// ReportTotals are the columns rewritten by a report edit.
type ReportTotals struct {
	CreditCard decimal.Decimal
	Cash       decimal.Decimal
	MealCards  decimal.Decimal
	ActualCash decimal.Decimal
	Notes      string
}

func (d ReportDraft) Totals() ReportTotals {
	return ReportTotals{
		CreditCard: d.CreditCard,
		Cash:       d.Cash,
		MealCards:  d.MealCards,
		ActualCash: d.ActualCash,
		Notes:      d.Notes,
	}
}
