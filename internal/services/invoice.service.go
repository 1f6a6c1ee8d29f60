package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/nimasrn/outlet-ledger/internal/model"
	"github.com/nimasrn/outlet-ledger/pkg/prom"
)

const InvoiceRoute = "/files/invoices/"

var (
	ErrInvoiceTooLarge = errors.New("invoice file is too large")
	ErrInvoiceType     = errors.New("invoice must be an image or a PDF")
)

type InvoiceRepository interface {
	Put(ctx context.Context, obj *model.InvoiceObject) error
	Get(ctx context.Context, path string) (*model.InvoiceObject, error)
}

// InvoiceFile is an attachment as received from the client.
type InvoiceFile struct {
	Name string
	Data []byte
}

type InvoiceService struct {
	repo     InvoiceRepository
	baseURL  string
	maxBytes int
}

func NewInvoiceService(repo InvoiceRepository, baseURL string, maxBytes int) *InvoiceService {
	return &InvoiceService{
		repo:     repo,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
	}
}

// Put stores an invoice under <businessID>/<uuid>.<ext> and returns its
// public URL.
func (s *InvoiceService) Put(ctx context.Context, businessID int64, filename string, data []byte) (string, error) {
	if s.maxBytes > 0 && len(data) > s.maxBytes {
		return "", ErrInvoiceTooLarge
	}
	mt := mimetype.Detect(data)
	if !allowedInvoiceType(mt) {
		return "", fmt.Errorf("%w: got %s", ErrInvoiceType, mt.String())
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || len(ext) > 6 {
		ext = mt.Extension()
	}
	obj := &model.InvoiceObject{
		Path:        fmt.Sprintf("%d/%s%s", businessID, uuid.NewString(), ext),
		BusinessID:  businessID,
		ContentType: mt.String(),
		Size:        len(data),
		Data:        data,
	}
	if err := s.repo.Put(ctx, obj); err != nil {
		return "", fmt.Errorf("store invoice: %w", err)
	}
	prom.RecordInvoiceUpload(len(data))
	return s.URL(obj.Path), nil
}

func (s *InvoiceService) Open(ctx context.Context, path string) (*model.InvoiceObject, error) {
	return s.repo.Get(ctx, strings.TrimPrefix(path, "/"))
}

func (s *InvoiceService) URL(path string) string {
	return s.baseURL + InvoiceRoute + path
}

func allowedInvoiceType(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") || m.Is("application/pdf") {
			return true
		}
	}
	return false
}
