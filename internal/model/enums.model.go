package model

// TransactionType says whether a supplier transaction grows or shrinks the debt.
type TransactionType string

const (
	TransactionPurchase TransactionType = "ALIM"
	TransactionPayment  TransactionType = "ODEME"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionPurchase, TransactionPayment:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "nakit"
	PaymentCreditCard PaymentMethod = "kredi_karti"
	PaymentCheque     PaymentMethod = "cek"
	PaymentNote       PaymentMethod = "senet"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCreditCard, PaymentCheque, PaymentNote:
		return true
	}
	return false
}

// CashDirection is the IN/OUT flag of a cash-ledger movement.
type CashDirection string

const (
	CashIn  CashDirection = "IN"
	CashOut CashDirection = "OUT"
)

func (d CashDirection) Valid() bool {
	switch d {
	case CashIn, CashOut:
		return true
	}
	return false
}

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff:
		return true
	}
	return false
}

// EntityKind names the record types that go through the delete workflow and
// show up in the recent-edits panel.
type EntityKind string

const (
	KindSupplier     EntityKind = "supplier"
	KindTransaction  EntityKind = "transaction"
	KindReport       EntityKind = "report"
	KindCashMovement EntityKind = "cash_movement"
)

func (k EntityKind) Valid() bool {
	switch k {
	case KindSupplier, KindTransaction, KindReport, KindCashMovement:
		return true
	}
	return false
}
