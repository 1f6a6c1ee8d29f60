package model

import "time"

// InvoiceObject is a stored invoice attachment, addressed by its path.
type InvoiceObject struct {
	Path        string    `json:"path"`
	BusinessID  int64     `json:"business_id"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	Data        []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
