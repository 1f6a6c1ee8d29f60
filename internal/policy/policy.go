package policy

import (
	"github.com/nimasrn/outlet-ledger/internal/clock"
	"github.com/nimasrn/outlet-ledger/internal/model"
)

// Policy decides what the acting user may change. Date-bound checks compare
// against the business clock, never the caller's wall clock.
type Policy struct {
	clock clock.Clock
}

func New(c clock.Clock) *Policy {
	return &Policy{clock: c}
}

// CanEdit gates edit and delete of transactions, reports and cash movements:
// admins always, everyone else only on records dated today.
func (p *Policy) CanEdit(u *model.User, recordDate string) bool {
	if u == nil {
		return false
	}
	if u.IsAdmin() {
		return true
	}
	return recordDate == p.clock.Today()
}

// CanAddReport is CanEdit applied to the report date. The one-report-per-day
// rule is checked separately against the stored reports.
func (p *Policy) CanAddReport(u *model.User, date string) bool {
	return p.CanEdit(u, date)
}

func (p *Policy) Today() string {
	return p.clock.Today()
}

func CanAccessCashLedger(u *model.User) bool {
	return u != nil
}

func CanViewSummary(u *model.User) bool {
	return u.IsAdmin()
}

func CanManageSuppliers(u *model.User) bool {
	return u.IsAdmin()
}

func CanAccessBusiness(u *model.User, businessID int64) bool {
	return u.AllowedIn(businessID)
}
