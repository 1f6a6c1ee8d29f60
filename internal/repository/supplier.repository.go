package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/pkg/pg"
	"gorm.io/gorm"
)

type SupplierRepository struct {
	*pg.DB
}

func NewSupplierRepository(db *pg.DB) *SupplierRepository {
	return &SupplierRepository{
		db,
	}
}

func (r *SupplierRepository) List(ctx context.Context) ([]*model.Supplier, error) {
	var entities []*SupplierEntity
	if err := r.Read(ctx).Order("name").Order("id").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toSupplierModels(entities), nil
}

func (r *SupplierRepository) FindByID(ctx context.Context, id int64) (*model.Supplier, error) {
	var entity SupplierEntity
	if err := r.Read(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toSupplierModel(&entity), nil
}

func (r *SupplierRepository) Create(ctx context.Context, s *model.Supplier) (*model.Supplier, error) {
	entity := toSupplierEntity(s)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toSupplierModel(entity), nil
}

func (r *SupplierRepository) Update(ctx context.Context, id int64, p model.SupplierUpdateRequest) error {
	res := r.Write(ctx).Model(&SupplierEntity{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":  p.Name,
			"phone": p.Phone,
			"notes": p.Notes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the supplier and every transaction booked against it in
// one database transaction.
func (r *SupplierRepository) Delete(ctx context.Context, id int64) error {
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := r.Write(ctx).Where("supplier_id = ?", id).Delete(&TransactionEntity{}).Error; err != nil {
			return fmt.Errorf("delete supplier transactions: %w", err)
		}
		res := r.Write(ctx).Where("id = ?", id).Delete(&SupplierEntity{})
		if res.Error != nil {
			return fmt.Errorf("delete supplier: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
