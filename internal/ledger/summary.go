package ledger

import (
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/shopspring/decimal"
)

type BusinessSummary struct {
	BusinessID   int64           `json:"business_id"`
	Name         string          `json:"name"`
	CreditCard   decimal.Decimal `json:"credit_card"`
	Cash         decimal.Decimal `json:"cash"`
	MealCards    decimal.Decimal `json:"meal_cards"`
	Expenses     decimal.Decimal `json:"expenses"`
	Total        decimal.Decimal `json:"total"`
	Net          decimal.Decimal `json:"net"`
	CashDiff     decimal.Decimal `json:"cash_difference"`
	ReportID     int64           `json:"report_id"`
	ReportedByID int64           `json:"reported_by_id"`
}

type Summary struct {
	Date            string            `json:"date"`
	TotalCreditCard decimal.Decimal   `json:"total_credit_card"`
	TotalCash       decimal.Decimal   `json:"total_cash"`
	TotalMealCards  decimal.Decimal   `json:"total_meal_cards"`
	TotalExpenses   decimal.Decimal   `json:"total_expenses"`
	Total           decimal.Decimal   `json:"total"`
	NetTotal        decimal.Decimal   `json:"net_total"`
	Businesses      []BusinessSummary `json:"businesses"`
}

// DailySummary rolls the reports of one date up across businesses, in the
// order businesses are given. A business without a report for the date is
// left out and adds nothing to the totals.
func DailySummary(businesses []*model.Business, reports []*model.DailyReport, date string) Summary {
	s := Summary{
		Date:            date,
		TotalCreditCard: decimal.Zero,
		TotalCash:       decimal.Zero,
		TotalMealCards:  decimal.Zero,
		TotalExpenses:   decimal.Zero,
		Businesses:      []BusinessSummary{},
	}

	for _, b := range businesses {
		r := ReportFor(reports, b.ID, date)
		if r == nil {
			continue
		}
		expenses := ExpenseTotal(r)
		total := r.CreditCard.Add(r.Cash).Add(r.MealCards)

		s.TotalCreditCard = s.TotalCreditCard.Add(r.CreditCard)
		s.TotalCash = s.TotalCash.Add(r.Cash)
		s.TotalMealCards = s.TotalMealCards.Add(r.MealCards)
		s.TotalExpenses = s.TotalExpenses.Add(expenses)

		s.Businesses = append(s.Businesses, BusinessSummary{
			BusinessID:   b.ID,
			Name:         b.Name,
			CreditCard:   r.CreditCard,
			Cash:         r.Cash,
			MealCards:    r.MealCards,
			Expenses:     expenses,
			Total:        total,
			Net:          total.Sub(expenses),
			CashDiff:     CashDifference(r),
			ReportID:     r.ID,
			ReportedByID: r.UserID,
		})
	}

	s.Total = s.TotalCreditCard.Add(s.TotalCash).Add(s.TotalMealCards)
	s.NetTotal = s.Total.Sub(s.TotalExpenses)
	return s
}

// ReportFor finds the report of a business for a date, nil if none.
func ReportFor(reports []*model.DailyReport, businessID int64, date string) *model.DailyReport {
	for _, r := range reports {
		if r.BusinessID == businessID && r.Date == date {
			return r
		}
	}
	return nil
}
