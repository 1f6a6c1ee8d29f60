// Package ledger derives balances and totals from already loaded rows. It
// performs no I/O and keeps no cache; every call reduces its inputs again.
package ledger

import (
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/shopspring/decimal"
)

type Direction string

const (
	DirectionDebt   Direction = "debt"
	DirectionCredit Direction = "credit"
	DirectionEven   Direction = "even"
)

// SupplierBalance is Σ ALIM − Σ ODEME over the supplier's transactions.
// Positive means the business owes the supplier.
func SupplierBalance(txs []*model.Transaction, supplierID int64) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range txs {
		if t.SupplierID != supplierID {
			continue
		}
		switch t.Type {
		case model.TransactionPurchase:
			balance = balance.Add(t.Amount)
		case model.TransactionPayment:
			balance = balance.Sub(t.Amount)
		}
	}
	return balance
}

// BusinessTotalDebt sums the balances of the suppliers owned by businessID.
func BusinessTotalDebt(suppliers []*model.Supplier, txs []*model.Transaction, businessID int64) decimal.Decimal {
	total := decimal.Zero
	for _, s := range suppliers {
		if s.BusinessID != businessID {
			continue
		}
		total = total.Add(SupplierBalance(txs, s.ID))
	}
	return total
}

func BalanceDirection(balance decimal.Decimal) Direction {
	switch balance.Sign() {
	case 1:
		return DirectionDebt
	case -1:
		return DirectionCredit
	}
	return DirectionEven
}

func ExpenseTotal(r *model.DailyReport) decimal.Decimal {
	total := decimal.Zero
	if r == nil {
		return total
	}
	for _, e := range r.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// CashDifference compares counted cash with what the drawer should hold.
// Negative is a shortfall, positive a surplus.
func CashDifference(r *model.DailyReport) decimal.Decimal {
	if r == nil {
		return decimal.Zero
	}
	expected := r.Cash.Sub(ExpenseTotal(r))
	return r.ActualCash.Sub(expected)
}

// CashTotals sums IN and OUT movements dated date. An empty date sums all.
func CashTotals(movements []*model.CashMovement, date string) (in, out decimal.Decimal) {
	in, out = decimal.Zero, decimal.Zero
	for _, m := range movements {
		if date != "" && m.Date != date {
			continue
		}
		switch m.Type {
		case model.CashIn:
			in = in.Add(m.Amount)
		case model.CashOut:
			out = out.Add(m.Amount)
		}
	}
	return in, out
}
