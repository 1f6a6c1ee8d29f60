package repository

import (
	"context"

	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/pkg/pg"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	*pg.DB
}

func NewTransactionRepository(db *pg.DB) *TransactionRepository {
	return &TransactionRepository{
		db,
	}
}

func (r *TransactionRepository) query(ctx context.Context) *gorm.DB {
	return r.Read(ctx).
		Table("transactions").
		Select("transactions.*, users.full_name AS full_name").
		Joins("LEFT JOIN users ON users.id = transactions.user_id")
}

// List returns every transaction, newest first.
func (r *TransactionRepository) List(ctx context.Context) ([]*model.Transaction, error) {
	var rows []*transactionRow
	err := r.query(ctx).
		Order("transactions.created_at DESC").
		Order("transactions.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toTransactionModels(rows), nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id int64) (*model.Transaction, error) {
	var rows []*transactionRow
	if err := r.query(ctx).Where("transactions.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return toTransactionModel(&rows[0].TransactionEntity, rows[0].FullName), nil
}

// Create inserts the transaction and returns it with the creator's name. The
// row is read back inside the write transaction, never from the replica.
func (r *TransactionRepository) Create(ctx context.Context, t *model.Transaction) (*model.Transaction, error) {
	entity := toTransactionEntity(t)
	entity.EditedBy, entity.EditedAt = nil, nil

	var created *model.Transaction
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

func (r *TransactionRepository) Update(ctx context.Context, id int64, p model.TransactionPatch) error {
	res := r.Write(ctx).Model(&TransactionEntity{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"amount":          p.Amount,
			"payment_method":  string(p.PaymentMethod),
			"description":     p.Description,
			"invoice_url":     p.InvoiceURL,
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

func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	res := r.Write(ctx).Where("id = ?", id).Delete(&TransactionEntity{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
