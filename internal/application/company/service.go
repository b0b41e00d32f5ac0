package company

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tarfea/dashboard-api/internal/domain"
	"github.com/tarfea/dashboard-api/internal/pkg/expiry"
	"github.com/tarfea/dashboard-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldCompanyName = "company_name"
	fieldMobileNo    = "mobile_no"
	fieldLicenceExp  = "licence_exp"
	fieldMunshaExp   = "munsha_exp"
	fieldMathafiExp  = "mathafi_exp"
	fieldDamanExp    = "daman_exp"
	fieldEchannelExp = "echannel_exp"
	fieldStatus      = "status"
)

type Service interface {
	List(ctx context.Context, ownerUserID string) ([]domain.Company, error)
	Create(ctx context.Context, ownerUserID string, req domain.CreateCompanyRequest) (*domain.Company, error)
	Get(ctx context.Context, ownerUserID, companyID string) (*domain.Company, error)
	Update(ctx context.Context, ownerUserID, companyID string, req domain.UpdateCompanyRequest) (*domain.Company, error)
	Delete(ctx context.Context, ownerUserID, companyID string) error
}

type companyStore interface {
	Put(ctx context.Context, c *domain.Company) error
	Get(ctx context.Context, companyID string) (*domain.Company, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]domain.Company, error)
	Update(ctx context.Context, companyID string, updates map[string]interface{}) error
	Delete(ctx context.Context, companyID string) error
}

type service struct {
	repo companyStore
	now  func() time.Time
}

func NewService(repo companyStore) Service {
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) List(ctx context.Context, ownerUserID string) ([]domain.Company, error) {
	companies, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range companies {
		companies[i].Status = expiry.Compute(companies[i].ExpiryDates(), now)
	}
	// Worst status first, then alphabetical so the dashboard is stable.
	sort.SliceStable(companies, func(i, j int) bool {
		ri, rj := expiry.Rank(companies[i].Status), expiry.Rank(companies[j].Status)
		if ri != rj {
			return ri < rj
		}
		return strings.ToLower(companies[i].CompanyName) < strings.ToLower(companies[j].CompanyName)
	})
	return companies, nil
}

func (s *service) Create(ctx context.Context, ownerUserID string, req domain.CreateCompanyRequest) (*domain.Company, error) {
	licence, err := parseDate("licenceExp", req.LicenceExp)
	if err != nil {
		return nil, err
	}
	munsha, err := parseDate("munshaExp", req.MunshaExp)
	if err != nil {
		return nil, err
	}
	mathafi, err := parseDate("mathafiExp", req.MathafiExp)
	if err != nil {
		return nil, err
	}
	daman, err := parseDate("damanExp", req.DamanExp)
	if err != nil {
		return nil, err
	}
	echannel, err := parseDate("echannelExp", req.EchannelExp)
	if err != nil {
		return nil, err
	}
	now := s.now()
	c := &domain.Company{
		CompanyID:   id.New(),
		CompanyName: req.CompanyName,
		MobileNo:    req.MobileNo,
		LicenceExp:  licence,
		MunshaExp:   munsha,
		MathafiExp:  mathafi,
		DamanExp:    daman,
		EchannelExp: echannel,
		OwnerUserID: ownerUserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	c.Status = expiry.Compute(c.ExpiryDates(), now)
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, ownerUserID, companyID string) (*domain.Company, error) {
	c, err := s.getOwned(ctx, ownerUserID, companyID)
	if err != nil {
		return nil, err
	}
	c.Status = expiry.Compute(c.ExpiryDates(), s.now())
	return c, nil
}

func (s *service) Update(ctx context.Context, ownerUserID, companyID string, req domain.UpdateCompanyRequest) (*domain.Company, error) {
	c, err := s.getOwned(ctx, ownerUserID, companyID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.CompanyName != nil {
		updates[fieldCompanyName] = *req.CompanyName
		c.CompanyName = *req.CompanyName
	}
	if req.MobileNo != nil {
		updates[fieldMobileNo] = *req.MobileNo
		c.MobileNo = *req.MobileNo
	}
	if req.LicenceExp != nil {
		t, err := parseDate("licenceExp", *req.LicenceExp)
		if err != nil {
			return nil, err
		}
		updates[fieldLicenceExp] = t
		c.LicenceExp = t
	}
	if req.MunshaExp != nil {
		t, err := parseDate("munshaExp", *req.MunshaExp)
		if err != nil {
			return nil, err
		}
		updates[fieldMunshaExp] = t
		c.MunshaExp = t
	}
	if req.MathafiExp != nil {
		t, err := parseDate("mathafiExp", *req.MathafiExp)
		if err != nil {
			return nil, err
		}
		updates[fieldMathafiExp] = t
		c.MathafiExp = t
	}
	if req.DamanExp != nil {
		t, err := parseDate("damanExp", *req.DamanExp)
		if err != nil {
			return nil, err
		}
		updates[fieldDamanExp] = t
		c.DamanExp = t
	}
	if req.EchannelExp != nil {
		t, err := parseDate("echannelExp", *req.EchannelExp)
		if err != nil {
			return nil, err
		}
		updates[fieldEchannelExp] = t
		c.EchannelExp = t
	}
	now := s.now()
	c.Status = expiry.Compute(c.ExpiryDates(), now)
	if len(updates) == 0 {
		return c, nil
	}
	// The stored status is a denormalized copy; reads recompute it anyway.
	updates[fieldStatus] = c.Status
	if err := s.repo.Update(ctx, companyID, updates); err != nil {
		return nil, err
	}
	c.UpdatedAt = now
	return c, nil
}

func (s *service) Delete(ctx context.Context, ownerUserID, companyID string) error {
	if _, err := s.getOwned(ctx, ownerUserID, companyID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, companyID)
}

// getOwned fetches a company and hides other users' records behind not-found,
// so existence is never leaked across tenants.
func (s *service) getOwned(ctx context.Context, ownerUserID, companyID string) (*domain.Company, error) {
	c, err := s.repo.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if c.OwnerUserID != ownerUserID {
		return nil, fmt.Errorf("company: %w", domain.ErrNotFound)
	}
	return c, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be in YYYY-MM-DD format: %w", field, domain.ErrBadRequest)
	}
	return t, nil
}
