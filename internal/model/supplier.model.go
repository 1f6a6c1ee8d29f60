package model

import "strings"

type Supplier struct {
	ID         int64  `json:"id"`
	BusinessID int64  `json:"business_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Notes      string `json:"notes"`
}

type SupplierCreateRequest struct {
	BusinessID int64
	Name       string
	Phone      string
	Notes      string
}

func (r SupplierCreateRequest) Validate() error {
	if r.BusinessID == 0 {
		return invalid("business_id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return invalid("name is required")
	}
	return nil
}

type SupplierUpdateRequest struct {
	Name  string
	Phone string
	Notes string
}

func (r SupplierUpdateRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return invalid("name is required")
	}
	return nil
}
