package repository

import (
	"time"

	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/shopspring/decimal"
)

type DailyReportEntity struct {
	ID         int64           `db:"id"              gorm:"primaryKey;autoIncrement;column:id"`
	BusinessID int64           `db:"business_id"     gorm:"column:business_id;not null;uniqueIndex:ux_daily_reports_business_date"`
	UserID     int64           `db:"user_id"         gorm:"column:user_id;not null"`
	Date       string          `db:"date"            gorm:"column:date;type:varchar(10);not null;uniqueIndex:ux_daily_reports_business_date"`
	CreditCard decimal.Decimal `db:"credit_card"     gorm:"column:credit_card;type:numeric(14,2);not null;default:0"`
	Cash       decimal.Decimal `db:"cash"            gorm:"column:cash;type:numeric(14,2);not null;default:0"`
	MealCards  decimal.Decimal `db:"meal_cards"      gorm:"column:meal_cards;type:numeric(14,2);not null;default:0"`
	ActualCash decimal.Decimal `db:"actual_cash"     gorm:"column:actual_cash;type:numeric(14,2);not null;default:0"`
	Notes      string          `db:"notes"           gorm:"column:notes"`
	EditedBy   *string         `db:"updated_by_name" gorm:"column:updated_by_name"`
	EditedAt   *time.Time      `db:"updated_at"      gorm:"column:updated_at"`
	CreatedAt  time.Time       `db:"created_at"      gorm:"column:created_at;autoCreateTime"`
}

func (DailyReportEntity) TableName() string {
	return "daily_reports"
}

type ExpenseEntity struct {
	ID            int64           `db:"id"              gorm:"primaryKey;autoIncrement;column:id"`
	DailyReportID int64           `db:"daily_report_id" gorm:"column:daily_report_id;not null;index"`
	Description   string          `db:"description"     gorm:"column:description;not null"`
	Amount        decimal.Decimal `db:"amount"          gorm:"column:amount;type:numeric(14,2);not null"`
}

func (ExpenseEntity) TableName() string {
	return "expenses"
}

type dailyReportRow struct {
	DailyReportEntity
	FullName *string `gorm:"column:full_name"`
}

func toDailyReportEntity(m *model.DailyReport) *DailyReportEntity {
	if m == nil {
		return nil
	}
	return &DailyReportEntity{
		ID:         m.ID,
		BusinessID: m.BusinessID,
		UserID:     m.UserID,
		Date:       m.Date,
		CreditCard: m.CreditCard,
		Cash:       m.Cash,
		MealCards:  m.MealCards,
		ActualCash: m.ActualCash,
		Notes:      m.Notes,
		EditedBy:   m.UpdatedByName,
		EditedAt:   m.UpdatedAt,
		CreatedAt:  m.CreatedAt,
	}
}

func toDailyReportModel(e *DailyReportEntity, fullName *string, expenses []*ExpenseEntity) *model.DailyReport {
	if e == nil {
		return nil
	}
	m := &model.DailyReport{
		ID:         e.ID,
		BusinessID: e.BusinessID,
		UserID:     e.UserID,
		Date:       e.Date,
		CreditCard: e.CreditCard,
		Cash:       e.Cash,
		MealCards:  e.MealCards,
		ActualCash: e.ActualCash,
		Notes:      e.Notes,
		Expenses:   toExpenseModels(expenses),
		Audit:      model.Audit{UpdatedByName: e.EditedBy, UpdatedAt: e.EditedAt},
		CreatedAt:  e.CreatedAt,
	}
	if fullName != nil {
		m.FullName = *fullName
	}
	return m
}

func toExpenseEntities(reportID int64, drafts []model.ExpenseDraft) []*ExpenseEntity {
	entities := make([]*ExpenseEntity, len(drafts))
	for i, d := range drafts {
		entities[i] = &ExpenseEntity{
			DailyReportID: reportID,
			Description:   d.Description,
			Amount:        d.Amount,
		}
	}
	return entities
}

func toExpenseModels(entities []*ExpenseEntity) []*model.Expense {
	models := make([]*model.Expense, len(entities))
	for i, e := range entities {
		models[i] = &model.Expense{
			ID:            e.ID,
			DailyReportID: e.DailyReportID,
			Description:   e.Description,
			Amount:        e.Amount,
		}
	}
	return models
}
