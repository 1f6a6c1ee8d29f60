package policy

import (
	"testing"
	"time"

	"github.com/nimasrn/outlet-ledger/internal/clock"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/stretchr/testify/assert"
)

func newPolicy(t *testing.T) *Policy {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		t.Fatal(err)
	}
	// 2024-03-01 23:30 in Istanbul
	return New(clock.Fixed{At: time.Date(2024, 3, 1, 20, 30, 0, 0, time.UTC), Loc: loc})
}

func TestPolicy_CanEdit(t *testing.T) {
	p := newPolicy(t)
	admin := &model.User{ID: 1, Role: model.RoleAdmin}
	staff := &model.User{ID: 2, Role: model.RoleStaff}

	t.Run("admin edits any date", func(t *testing.T) {
		assert.True(t, p.CanEdit(admin, "2020-01-01"))
		assert.True(t, p.CanEdit(admin, "2024-03-01"))
	})

	t.Run("staff edits only today", func(t *testing.T) {
		assert.True(t, p.CanEdit(staff, "2024-03-01"))
		assert.False(t, p.CanEdit(staff, "2024-02-29"))
		assert.False(t, p.CanEdit(staff, "2024-03-02"))
	})

	t.Run("anonymous never edits", func(t *testing.T) {
		assert.False(t, p.CanEdit(nil, "2024-03-01"))
	})

	assert.Equal(t, p.CanEdit(staff, "2024-02-29"), p.CanAddReport(staff, "2024-02-29"))
}

func TestRoleGates(t *testing.T) {
	admin := &model.User{Role: model.RoleAdmin, AllowedBusinesses: []int64{1}}
	staff := &model.User{Role: model.RoleStaff, AllowedBusinesses: []int64{2}}

	assert.True(t, CanAccessCashLedger(staff))
	assert.True(t, CanAccessCashLedger(admin))
	assert.False(t, CanAccessCashLedger(nil))

	assert.True(t, CanViewSummary(admin))
	assert.False(t, CanViewSummary(staff))

	assert.True(t, CanManageSuppliers(admin))
	assert.False(t, CanManageSuppliers(staff))

	assert.True(t, CanAccessBusiness(staff, 2))
	assert.False(t, CanAccessBusiness(staff, 1))
}
