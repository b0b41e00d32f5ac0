package document

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/tarfea/dashboard-api/internal/domain"
	s3infra "github.com/tarfea/dashboard-api/internal/infrastructure/s3"
	"github.com/tarfea/dashboard-api/internal/pkg/id"
)

// downloadURLTTL bounds how long a presigned document link stays valid.
const downloadURLTTL = 15 * time.Minute

type Service interface {
	Upload(ctx context.Context, ownerUserID, companyID string, req domain.UploadDocumentRequest) (*domain.Document, error)
	List(ctx context.Context, ownerUserID, companyID string) ([]domain.Document, error)
	DownloadURL(ctx context.Context, ownerUserID, companyID, documentID string) (string, error)
	Delete(ctx context.Context, ownerUserID, companyID, documentID string) error
}

type companyStore interface {
	Get(ctx context.Context, companyID string) (*domain.Company, error)
}

type documentStore interface {
	Put(ctx context.Context, d *domain.Document) error
	Get(ctx context.Context, documentID string) (*domain.Document, error)
	ListByCompany(ctx context.Context, companyID string) ([]domain.Document, error)
	Delete(ctx context.Context, documentID string) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	companies companyStore
	docs      documentStore
	objects   objectStore
}

func NewService(companies companyStore, docs documentStore, objects objectStore) Service {
	return &service{companies: companies, docs: docs, objects: objects}
}

func (s *service) Upload(ctx context.Context, ownerUserID, companyID string, req domain.UploadDocumentRequest) (*domain.Document, error) {
	if _, err := s.ownedCompany(ctx, ownerUserID, companyID); err != nil {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return nil, fmt.Errorf("data must be base64-encoded: %w", domain.ErrBadRequest)
	}
	docID := id.New()
	key := fmt.Sprintf("companies/%s/%s-%s", companyID, docID, req.Name)
	contentType := s3infra.DetectContentType(req.Name)
	if _, err := s.objects.Upload(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return nil, err
	}
	d := &domain.Document{
		DocumentID:       docID,
		CompanyID:        companyID,
		Name:             req.Name,
		Object:           key,
		Size:             int64(len(data)),
		ContentType:      contentType,
		UploadedByUserID: ownerUserID,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.docs.Put(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) List(ctx context.Context, ownerUserID, companyID string) ([]domain.Document, error) {
	if _, err := s.ownedCompany(ctx, ownerUserID, companyID); err != nil {
		return nil, err
	}
	return s.docs.ListByCompany(ctx, companyID)
}

func (s *service) DownloadURL(ctx context.Context, ownerUserID, companyID, documentID string) (string, error) {
	d, err := s.ownedDocument(ctx, ownerUserID, companyID, documentID)
	if err != nil {
		return "", err
	}
	return s.objects.PresignedURL(ctx, d.Object, downloadURLTTL)
}

func (s *service) Delete(ctx context.Context, ownerUserID, companyID, documentID string) error {
	d, err := s.ownedDocument(ctx, ownerUserID, companyID, documentID)
	if err != nil {
		return err
	}
	if err := s.objects.Delete(ctx, d.Object); err != nil {
		return err
	}
	return s.docs.Delete(ctx, documentID)
}

// ownedCompany hides other users' companies behind not-found.
func (s *service) ownedCompany(ctx context.Context, ownerUserID, companyID string) (*domain.Company, error) {
	c, err := s.companies.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if c.OwnerUserID != ownerUserID {
		return nil, fmt.Errorf("company: %w", domain.ErrNotFound)
	}
	return c, nil
}

// ownedDocument resolves a document and checks it belongs to the company in
// the URL and that the company belongs to the caller.
func (s *service) ownedDocument(ctx context.Context, ownerUserID, companyID, documentID string) (*domain.Document, error) {
	if _, err := s.ownedCompany(ctx, ownerUserID, companyID); err != nil {
		return nil, err
	}
	d, err := s.docs.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if d.CompanyID != companyID {
		return nil, fmt.Errorf("document: %w", domain.ErrNotFound)
	}
	return d, nil
}
