package domestic

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tarfea/dashboard-api/internal/domain"
	"github.com/tarfea/dashboard-api/internal/pkg/expiry"
	"github.com/tarfea/dashboard-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldSponsor   = "sponsor"
	fieldContact   = "contact"
	fieldHousemaid = "housemaid"
	fieldDamanExp  = "daman_exp"
	fieldStatus    = "status"
)

type Service interface {
	List(ctx context.Context, ownerUserID string) ([]domain.Domestic, error)
	Create(ctx context.Context, ownerUserID string, req domain.CreateDomesticRequest) (*domain.Domestic, error)
	Get(ctx context.Context, ownerUserID, domesticID string) (*domain.Domestic, error)
	Update(ctx context.Context, ownerUserID, domesticID string, req domain.UpdateDomesticRequest) (*domain.Domestic, error)
	Delete(ctx context.Context, ownerUserID, domesticID string) error
}

type domesticStore interface {
	Put(ctx context.Context, d *domain.Domestic) error
	Get(ctx context.Context, domesticID string) (*domain.Domestic, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]domain.Domestic, error)
	Update(ctx context.Context, domesticID string, updates map[string]interface{}) error
	Delete(ctx context.Context, domesticID string) error
}

type service struct {
	repo domesticStore
	now  func() time.Time
}

func NewService(repo domesticStore) Service {
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) List(ctx context.Context, ownerUserID string) ([]domain.Domestic, error) {
	domestics, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range domestics {
		domestics[i].Status = expiry.Compute([]time.Time{domestics[i].DamanExp}, now)
	}
	// Worst status first, then nearest expiry.
	sort.SliceStable(domestics, func(i, j int) bool {
		ri, rj := expiry.Rank(domestics[i].Status), expiry.Rank(domestics[j].Status)
		if ri != rj {
			return ri < rj
		}
		return domestics[i].DamanExp.Before(domestics[j].DamanExp)
	})
	return domestics, nil
}

func (s *service) Create(ctx context.Context, ownerUserID string, req domain.CreateDomesticRequest) (*domain.Domestic, error) {
	daman, err := parseDate("damanExp", req.DamanExp)
	if err != nil {
		return nil, err
	}
	now := s.now()
	d := &domain.Domestic{
		DomesticID:  id.New(),
		Sponsor:     req.Sponsor,
		Contact:     req.Contact,
		Housemaid:   req.Housemaid,
		DamanExp:    daman,
		Status:      expiry.Compute([]time.Time{daman}, now),
		OwnerUserID: ownerUserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) Get(ctx context.Context, ownerUserID, domesticID string) (*domain.Domestic, error) {
	d, err := s.getOwned(ctx, ownerUserID, domesticID)
	if err != nil {
		return nil, err
	}
	d.Status = expiry.Compute([]time.Time{d.DamanExp}, s.now())
	return d, nil
}

func (s *service) Update(ctx context.Context, ownerUserID, domesticID string, req domain.UpdateDomesticRequest) (*domain.Domestic, error) {
	d, err := s.getOwned(ctx, ownerUserID, domesticID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Sponsor != nil {
		updates[fieldSponsor] = *req.Sponsor
		d.Sponsor = *req.Sponsor
	}
	if req.Contact != nil {
		updates[fieldContact] = *req.Contact
		d.Contact = *req.Contact
	}
	if req.Housemaid != nil {
		updates[fieldHousemaid] = *req.Housemaid
		d.Housemaid = *req.Housemaid
	}
	if req.DamanExp != nil {
		t, err := parseDate("damanExp", *req.DamanExp)
		if err != nil {
			return nil, err
		}
		updates[fieldDamanExp] = t
		d.DamanExp = t
	}
	now := s.now()
	d.Status = expiry.Compute([]time.Time{d.DamanExp}, now)
	if len(updates) == 0 {
		return d, nil
	}
	updates[fieldStatus] = d.Status
	if err := s.repo.Update(ctx, domesticID, updates); err != nil {
		return nil, err
	}
	d.UpdatedAt = now
	return d, nil
}

func (s *service) Delete(ctx context.Context, ownerUserID, domesticID string) error {
	if _, err := s.getOwned(ctx, ownerUserID, domesticID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, domesticID)
}

func (s *service) getOwned(ctx context.Context, ownerUserID, domesticID string) (*domain.Domestic, error) {
	d, err := s.repo.Get(ctx, domesticID)
	if err != nil {
		return nil, err
	}
	if d.OwnerUserID != ownerUserID {
		return nil, fmt.Errorf("domestic: %w", domain.ErrNotFound)
	}
	return d, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be in YYYY-MM-DD format: %w", field, domain.ErrBadRequest)
	}
	return t, nil
}
