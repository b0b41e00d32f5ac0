package document

import (
	"context"
	"encoding/base64"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tarfea/dashboard-api/internal/domain"
)

type mockCompanyStore struct{ mock.Mock }

func (m *mockCompanyStore) Get(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

type mockDocumentStore struct{ mock.Mock }

func (m *mockDocumentStore) Put(ctx context.Context, d *domain.Document) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *mockDocumentStore) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *mockDocumentStore) ListByCompany(ctx context.Context, companyID string) ([]domain.Document, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *mockDocumentStore) Delete(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockObjectStore) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

func (m *mockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func ownedCompanyFixture() *domain.Company {
	return &domain.Company{CompanyID: "c1", OwnerUserID: "u1", CompanyName: "Acme"}
}

func TestUpload_StoresObjectAndMetadata(t *testing.T) {
	companies := new(mockCompanyStore)
	docs := new(mockDocumentStore)
	objects := new(mockObjectStore)
	svc := NewService(companies, docs, objects)

	companies.On("Get", mock.Anything, "c1").Return(ownedCompanyFixture(), nil)
	objects.On("Upload", mock.Anything, mock.Anything, mock.Anything, "application/pdf").Return("s3://bucket/key", nil)
	docs.On("Put", mock.Anything, mock.MatchedBy(func(d *domain.Document) bool {
		return d.CompanyID == "c1" && d.Name == "licence.pdf" && d.Size == 4
	})).Return(nil)

	d, err := svc.Upload(context.Background(), "u1", "c1", domain.UploadDocumentRequest{
		Name: "licence.pdf",
		Data: base64.StdEncoding.EncodeToString([]byte("%PDF")),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, d.DocumentID)
	assert.Equal(t, "application/pdf", d.ContentType)
	objects.AssertExpectations(t)
	docs.AssertExpectations(t)
}

func TestUpload_RejectsInvalidBase64(t *testing.T) {
	companies := new(mockCompanyStore)
	svc := NewService(companies, new(mockDocumentStore), new(mockObjectStore))

	companies.On("Get", mock.Anything, "c1").Return(ownedCompanyFixture(), nil)

	_, err := svc.Upload(context.Background(), "u1", "c1", domain.UploadDocumentRequest{
		Name: "licence.pdf",
		Data: "!!! not base64 !!!",
	})

	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestUpload_CrossUserCompanyIsNotFound(t *testing.T) {
	companies := new(mockCompanyStore)
	objects := new(mockObjectStore)
	svc := NewService(companies, new(mockDocumentStore), objects)

	companies.On("Get", mock.Anything, "c1").Return(&domain.Company{
		CompanyID: "c1", OwnerUserID: "someone-else",
	}, nil)

	_, err := svc.Upload(context.Background(), "u1", "c1", domain.UploadDocumentRequest{
		Name: "licence.pdf",
		Data: base64.StdEncoding.EncodeToString([]byte("x")),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	objects.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDownloadURL_DocumentMustBelongToCompany(t *testing.T) {
	companies := new(mockCompanyStore)
	docs := new(mockDocumentStore)
	svc := NewService(companies, docs, new(mockObjectStore))

	companies.On("Get", mock.Anything, "c1").Return(ownedCompanyFixture(), nil)
	docs.On("Get", mock.Anything, "doc1").Return(&domain.Document{
		DocumentID: "doc1", CompanyID: "other-company", Object: "k",
	}, nil)

	_, err := svc.DownloadURL(context.Background(), "u1", "c1", "doc1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_RemovesObjectThenMetadata(t *testing.T) {
	companies := new(mockCompanyStore)
	docs := new(mockDocumentStore)
	objects := new(mockObjectStore)
	svc := NewService(companies, docs, objects)

	companies.On("Get", mock.Anything, "c1").Return(ownedCompanyFixture(), nil)
	docs.On("Get", mock.Anything, "doc1").Return(&domain.Document{
		DocumentID: "doc1", CompanyID: "c1", Object: "companies/c1/doc1-licence.pdf",
	}, nil)
	objects.On("Delete", mock.Anything, "companies/c1/doc1-licence.pdf").Return(nil)
	docs.On("Delete", mock.Anything, "doc1").Return(nil)

	require.NoError(t, svc.Delete(context.Background(), "u1", "c1", "doc1"))
	objects.AssertExpectations(t)
	docs.AssertExpectations(t)
}
