package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/pkg/pg"
	"gorm.io/gorm"
)

type DailyReportRepository struct {
	*pg.DB
}

func NewDailyReportRepository(db *pg.DB) *DailyReportRepository {
	return &DailyReportRepository{
		db,
	}
}

func (r *DailyReportRepository) query(ctx context.Context) *gorm.DB {
	return r.Read(ctx).
		Table("daily_reports").
		Select("daily_reports.*, users.full_name AS full_name").
		Joins("LEFT JOIN users ON users.id = daily_reports.user_id")
}

// List returns all reports, latest business date first, each with its
// expenses in insertion order.
func (r *DailyReportRepository) List(ctx context.Context) ([]*model.DailyReport, error) {
	var rows []*dailyReportRow
	err := r.query(ctx).
		Order("daily_reports.date DESC").
		Order("daily_reports.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.attachExpenses(ctx, rows)
}

func (r *DailyReportRepository) FindByID(ctx context.Context, id int64) (*model.DailyReport, error) {
	var rows []*dailyReportRow
	if err := r.query(ctx).Where("daily_reports.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	reports, err := r.attachExpenses(ctx, rows)
	if err != nil {
		return nil, err
	}
	return reports[0], nil
}

func (r *DailyReportRepository) FindByBusinessDate(ctx context.Context, businessID int64, date string) (*model.DailyReport, error) {
	var entity DailyReportEntity
	err := r.Read(ctx).Where("business_id = ? AND date = ?", businessID, date).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r.FindByID(ctx, entity.ID)
}

// Create writes the report header and its expenses in one transaction and
// reads the result back within it.
func (r *DailyReportRepository) Create(ctx context.Context, report *model.DailyReport, expenses []model.ExpenseDraft) (*model.DailyReport, error) {
	entity := toDailyReportEntity(report)
	entity.EditedBy, entity.EditedAt = nil, nil

	var saved *model.DailyReport
	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := r.Write(ctx).Create(entity).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateReport
			}
			return fmt.Errorf("insert report: %w", err)
		}
		if err := r.insertExpenses(ctx, entity.ID, expenses); err != nil {
			return err
		}
		var err error
		saved, err = r.FindByID(ctx, entity.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Update rewrites the totals and replaces the expense set wholesale: every
// old expense row is deleted and the new list inserted.
func (r *DailyReportRepository) Update(ctx context.Context, id int64, totals model.ReportTotals, audit model.Audit, expenses []model.ExpenseDraft) (*model.DailyReport, error) {
	var saved *model.DailyReport
	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		res := r.Write(ctx).Model(&DailyReportEntity{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"credit_card":     totals.CreditCard,
				"cash":            totals.Cash,
				"meal_cards":      totals.MealCards,
				"actual_cash":     totals.ActualCash,
				"notes":           totals.Notes,
				"updated_by_name": audit.UpdatedByName,
				"updated_at":      audit.UpdatedAt,
			})
		if res.Error != nil {
			return fmt.Errorf("update report: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := r.Write(ctx).Where("daily_report_id = ?", id).Delete(&ExpenseEntity{}).Error; err != nil {
			return fmt.Errorf("delete expenses: %w", err)
		}
		if err := r.insertExpenses(ctx, id, expenses); err != nil {
			return err
		}
		var err error
		saved, err = r.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Delete removes the report and its expenses in one transaction.
func (r *DailyReportRepository) Delete(ctx context.Context, id int64) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := r.Write(ctx).Where("daily_report_id = ?", id).Delete(&ExpenseEntity{}).Error; err != nil {
			return fmt.Errorf("delete expenses: %w", err)
		}
		res := r.Write(ctx).Where("id = ?", id).Delete(&DailyReportEntity{})
		if res.Error != nil {
			return fmt.Errorf("delete report: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *DailyReportRepository) insertExpenses(ctx context.Context, reportID int64, drafts []model.ExpenseDraft) error {
	if len(drafts) == 0 {
		return nil
	}
	entities := toExpenseEntities(reportID, drafts)
	if err := r.Write(ctx).Create(&entities).Error; err != nil {
		return fmt.Errorf("insert expenses: %w", err)
	}
	return nil
}

func (r *DailyReportRepository) attachExpenses(ctx context.Context, rows []*dailyReportRow) ([]*model.DailyReport, error) {
	if len(rows) == 0 {
		return []*model.DailyReport{}, nil
	}
	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	var expenses []*ExpenseEntity
	err := r.Read(ctx).
		Where("daily_report_id IN ?", ids).
		Order("id").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	byReport := make(map[int64][]*ExpenseEntity, len(rows))
	for _, e := range expenses {
		byReport[e.DailyReportID] = append(byReport[e.DailyReportID], e)
	}

	out := make([]*model.DailyReport, len(rows))
	for i, row := range rows {
		out[i] = toDailyReportModel(&row.DailyReportEntity, row.FullName, byReport[row.ID])
	}
	return out, nil
}
