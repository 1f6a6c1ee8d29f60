package repository

import (
	"time"

	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/shopspring/decimal"
)

type TransactionEntity struct {
	ID            int64           `db:"id"              gorm:"primaryKey;autoIncrement;column:id"`
	SupplierID    int64           `db:"supplier_id"     gorm:"column:supplier_id;not null;index"`
	BusinessID    int64           `db:"business_id"     gorm:"column:business_id;not null;index"`
	UserID        int64           `db:"user_id"         gorm:"column:user_id;not null"`
	Type          string          `db:"type"            gorm:"column:type;not null"`
	Amount        decimal.Decimal `db:"amount"          gorm:"column:amount;type:numeric(14,2);not null"`
	Date          string          `db:"date"            gorm:"column:date;type:varchar(10);not null;index"`
	Description   string          `db:"description"     gorm:"column:description"`
	PaymentMethod string          `db:"payment_method"  gorm:"column:payment_method;not null;default:nakit"`
	InvoiceURL    *string         `db:"invoice_url"     gorm:"column:invoice_url"`
	EditedBy      *string         `db:"updated_by_name" gorm:"column:updated_by_name"`
	EditedAt      *time.Time      `db:"updated_at"      gorm:"column:updated_at"`
	CreatedAt     time.Time       `db:"created_at"      gorm:"column:created_at;autoCreateTime"`
}

func (TransactionEntity) TableName() string {
	return "transactions"
}

// transactionRow is a transaction joined with its creator's full name.
type transactionRow struct {
	TransactionEntity
	FullName *string `gorm:"column:full_name"`
}

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:            m.ID,
		SupplierID:    m.SupplierID,
		BusinessID:    m.BusinessID,
		UserID:        m.UserID,
		Type:          string(m.Type),
		Amount:        m.Amount,
		Date:          m.Date,
		Description:   m.Description,
		PaymentMethod: string(m.PaymentMethod),
		InvoiceURL:    m.InvoiceURL,
		EditedBy:      m.UpdatedByName,
		EditedAt:      m.UpdatedAt,
		CreatedAt:     m.CreatedAt,
	}
}

func toTransactionModel(e *TransactionEntity, fullName *string) *model.Transaction {
	if e == nil {
		return nil
	}
	m := &model.Transaction{
		ID:            e.ID,
		SupplierID:    e.SupplierID,
		BusinessID:    e.BusinessID,
		UserID:        e.UserID,
		Type:          model.TransactionType(e.Type),
		Amount:        e.Amount,
		Date:          e.Date,
		Description:   e.Description,
		PaymentMethod: model.PaymentMethod(e.PaymentMethod),
		InvoiceURL:    e.InvoiceURL,
		Audit:         model.Audit{UpdatedByName: e.EditedBy, UpdatedAt: e.EditedAt},
		CreatedAt:     e.CreatedAt,
	}
	if fullName != nil {
		m.FullName = *fullName
	}
	return m
}

func toTransactionModels(rows []*transactionRow) []*model.Transaction {
	if rows == nil {
		return nil
	}
	models := make([]*model.Transaction, len(rows))
	for i, r := range rows {
		models[i] = toTransactionModel(&r.TransactionEntity, r.FullName)
	}
	return models
}
