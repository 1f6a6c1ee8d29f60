package repository

import (
	"github.com/nimasrn/outlet-ledger/internal/model"
)

type SupplierEntity struct {
	ID         int64  `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	BusinessID int64  `db:"business_id" gorm:"column:business_id;not null;index"`
	Name       string `db:"name"        gorm:"column:name;not null"`
	Phone      string `db:"phone"       gorm:"column:phone"`
	Notes      string `db:"notes"       gorm:"column:notes"`
}

func (SupplierEntity) TableName() string {
	return "suppliers"
}

func toSupplierEntity(m *model.Supplier) *SupplierEntity {
	if m == nil {
		return nil
	}
	return &SupplierEntity{
		ID:         m.ID,
		BusinessID: m.BusinessID,
		Name:       m.Name,
		Phone:      m.Phone,
		Notes:      m.Notes,
	}
}

func toSupplierModel(e *SupplierEntity) *model.Supplier {
	if e == nil {
		return nil
	}
	return &model.Supplier{
		ID:         e.ID,
		BusinessID: e.BusinessID,
		Name:       e.Name,
		Phone:      e.Phone,
		Notes:      e.Notes,
	}
}

func toSupplierModels(entities []*SupplierEntity) []*model.Supplier {
	if entities == nil {
		return nil
	}
	models := make([]*model.Supplier, len(entities))
	for i, e := range entities {
		models[i] = toSupplierModel(e)
	}
	return models
}
