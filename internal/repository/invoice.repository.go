package repository

import (
	"context"
	"errors"
	"time"

	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/pkg/pg"
	"gorm.io/gorm"
)

type InvoiceObjectEntity struct {
	Path        string    `db:"path"         gorm:"primaryKey;column:path;type:varchar(255)"`
	BusinessID  int64     `db:"business_id"  gorm:"column:business_id;not null;index"`
	ContentType string    `db:"content_type" gorm:"column:content_type;not null"`
	Size        int       `db:"size"         gorm:"column:size;not null"`
	Data        []byte    `db:"data"         gorm:"column:data;type:bytea;not null"`
	CreatedAt   time.Time `db:"created_at"   gorm:"column:created_at;autoCreateTime"`
}

func (InvoiceObjectEntity) TableName() string {
	return "invoice_objects"
}

type InvoiceRepository struct {
	*pg.DB
}

func NewInvoiceRepository(db *pg.DB) *InvoiceRepository {
	return &InvoiceRepository{
		db,
	}
}

func (r *InvoiceRepository) Put(ctx context.Context, obj *model.InvoiceObject) error {
	entity := &InvoiceObjectEntity{
		Path:        obj.Path,
		BusinessID:  obj.BusinessID,
		ContentType: obj.ContentType,
		Size:        obj.Size,
		Data:        obj.Data,
	}
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return err
	}
	obj.CreatedAt = entity.CreatedAt
	return nil
}

func (r *InvoiceRepository) Get(ctx context.Context, path string) (*model.InvoiceObject, error) {
	var entity InvoiceObjectEntity
	if err := r.Read(ctx).Where("path = ?", path).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &model.InvoiceObject{
		Path:        entity.Path,
		BusinessID:  entity.BusinessID,
		ContentType: entity.ContentType,
		Size:        entity.Size,
		Data:        entity.Data,
		CreatedAt:   entity.CreatedAt,
	}, nil
}
