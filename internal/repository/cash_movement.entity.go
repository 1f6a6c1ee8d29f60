package repository

import (
	"time"

	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/shopspring/decimal"
)

type CashMovementEntity struct {
	ID          int64           `db:"id"              gorm:"primaryKey;autoIncrement;column:id"`
	UserID      int64           `db:"user_id"         gorm:"column:user_id;not null"`
	Type        string          `db:"type"            gorm:"column:type;not null"`
	Amount      decimal.Decimal `db:"amount"          gorm:"column:amount;type:numeric(14,2);not null"`
	Description string          `db:"description"     gorm:"column:description;not null"`
	Date        string          `db:"date"            gorm:"column:date;type:varchar(10);not null;index"`
	EditedBy    *string         `db:"updated_by_name" gorm:"column:updated_by_name"`
	EditedAt    *time.Time      `db:"updated_at"      gorm:"column:updated_at"`
	CreatedAt   time.Time       `db:"created_at"      gorm:"column:created_at;autoCreateTime"`
}

func (CashMovementEntity) TableName() string {
	return "cash_movements"
}

type cashMovementRow struct {
	CashMovementEntity
	FullName *string `gorm:"column:full_name"`
}

func toCashMovementEntity(m *model.CashMovement) *CashMovementEntity {
	if m == nil {
		return nil
	}
	return &CashMovementEntity{
		ID:          m.ID,
		UserID:      m.UserID,
		Type:        string(m.Type),
		Amount:      m.Amount,
		Description: m.Description,
		Date:        m.Date,
		EditedBy:    m.UpdatedByName,
		EditedAt:    m.UpdatedAt,
		CreatedAt:   m.CreatedAt,
	}
}

func toCashMovementModel(e *CashMovementEntity, fullName *string) *model.CashMovement {
	if e == nil {
		return nil
	}
	m := &model.CashMovement{
		ID:          e.ID,
		UserID:      e.UserID,
		Type:        model.CashDirection(e.Type),
		Amount:      e.Amount,
		Description: e.Description,
		Date:        e.Date,
		Audit:       model.Audit{UpdatedByName: e.EditedBy, UpdatedAt: e.EditedAt},
		CreatedAt:   e.CreatedAt,
	}
	if fullName != nil {
		m.FullName = *fullName
	}
	return m
}

func toCashMovementModels(rows []*cashMovementRow) []*model.CashMovement {
	if rows == nil {
		return nil
	}
	models := make([]*model.CashMovement, len(rows))
	for i, r := range rows {
		models[i] = toCashMovementModel(&r.CashMovementEntity, r.FullName)
	}
	return models
}
