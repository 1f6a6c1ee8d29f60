package ledger

import (
	"sort"
	"time"

	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/shopspring/decimal"
)

const recentEditsLimit = 5

// Edit is one row of the recent-edits panel.
type Edit struct {
	Kind     model.EntityKind `json:"kind"`
	ID       int64            `json:"id"`
	Editor   string           `json:"editor"`
	EditedAt time.Time        `json:"edited_at"`
	ItemDate string           `json:"item_date"`
	Label    string           `json:"label"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
}

func RecentTransactionEdits(txs []*model.Transaction) []Edit {
	var edits []Edit
	for _, t := range txs {
		if !t.Edited() {
			continue
		}
		amount := t.Amount
		edits = append(edits, newEdit(model.KindTransaction, t.ID, t.Audit, t.Date, string(t.Type), &amount))
	}
	return newest(edits)
}

func RecentReportEdits(reports []*model.DailyReport) []Edit {
	var edits []Edit
	for _, r := range reports {
		if !r.Edited() {
			continue
		}
		edits = append(edits, newEdit(model.KindReport, r.ID, r.Audit, r.Date, "daily_report", nil))
	}
	return newest(edits)
}

func RecentCashEdits(movements []*model.CashMovement) []Edit {
	var edits []Edit
	for _, m := range movements {
		if !m.Edited() {
			continue
		}
		amount := m.Amount
		edits = append(edits, newEdit(model.KindCashMovement, m.ID, m.Audit, m.Date, string(m.Type), &amount))
	}
	return newest(edits)
}

func newEdit(kind model.EntityKind, id int64, a model.Audit, itemDate, label string, amount *decimal.Decimal) Edit {
	e := Edit{
		Kind:     kind,
		ID:       id,
		Editor:   *a.UpdatedByName,
		ItemDate: itemDate,
		Label:    label,
		Amount:   amount,
	}
	if a.UpdatedAt != nil {
		e.EditedAt = *a.UpdatedAt
	}
	return e
}

func newest(edits []Edit) []Edit {
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].EditedAt.After(edits[j].EditedAt)
	})
	if len(edits) > recentEditsLimit {
		edits = edits[:recentEditsLimit]
	}
	if edits == nil {
		return []Edit{}
	}
	return edits
}
