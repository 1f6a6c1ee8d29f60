package repository

import (
	"context"

	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/pkg/pg"
	"gorm.io/gorm"
)

type CashMovementRepository struct {
	*pg.DB
}

func NewCashMovementRepository(db *pg.DB) *CashMovementRepository {
	return &CashMovementRepository{
		db,
	}
}

func (r *CashMovementRepository) query(ctx context.Context) *gorm.DB {
	return r.Read(ctx).
		Table("cash_movements").
		Select("cash_movements.*, users.full_name AS full_name").
		Joins("LEFT JOIN users ON users.id = cash_movements.user_id")
}

func (r *CashMovementRepository) List(ctx context.Context) ([]*model.CashMovement, error) {
	var rows []*cashMovementRow
	err := r.query(ctx).
		Order("cash_movements.created_at DESC").
		Order("cash_movements.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCashMovementModels(rows), nil
}

func (r *CashMovementRepository) FindByID(ctx context.Context, id int64) (*model.CashMovement, error) {
	var rows []*cashMovementRow
	if err := r.query(ctx).Where("cash_movements.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return toCashMovementModel(&rows[0].CashMovementEntity, rows[0].FullName), nil
}

func (r *CashMovementRepository) Create(ctx context.Context, m *model.CashMovement) (*model.CashMovement, error) {
	entity := toCashMovementEntity(m)
	entity.EditedBy, entity.EditedAt = nil, nil

	var created *model.CashMovement
	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := r.Write(ctx).Create(entity).Error; err != nil {
			return err
		}
		var err error
		created, err = r.FindByID(ctx, entity.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *CashMovementRepository) Update(ctx context.Context, id int64, p model.CashMovementPatch) error {
	res := r.Write(ctx).Model(&CashMovementEntity{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"amount":          p.Amount,
			"description":     p.Description,
			"updated_by_name": p.Audit.UpdatedByName,
			"updated_at":      p.Audit.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CashMovementRepository) Delete(ctx context.Context, id int64) error {
	res := r.Write(ctx).Where("id = ?", id).Delete(&CashMovementEntity{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
