package notification

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tarfea/dashboard-api/internal/domain"
	"github.com/tarfea/dashboard-api/internal/infrastructure/smtp"
	"github.com/tarfea/dashboard-api/internal/infrastructure/sns"
	"github.com/tarfea/dashboard-api/internal/pkg/expiry"
)

// trackedFields are the company expiry fields the feed watches, with their
// display labels, in canonical order.
var trackedFields = []struct {
	Key   string
	Label string
}{
	{"licenceExp", "License"},
	{"munshaExp", "Munsha"},
	{"mathafiExp", "Mathafi"},
	{"damanExp", "Daman"},
	{"echannelExp", "E-Channel"},
}

type Service interface {
	Feed(ctx context.Context, ownerUserID string) ([]domain.NotificationItem, error)
	// Dismiss suppresses one (company, field) pair for this user. Returns
	// created=false when the pair was already dismissed.
	Dismiss(ctx context.Context, ownerUserID string, req domain.DismissRequest) (created bool, err error)
	Undismiss(ctx context.Context, ownerUserID string, req domain.DismissRequest) error
	Remind(ctx context.Context, ownerUserID string, req domain.RemindRequest) (string, error)
}

type companyStore interface {
	ListByOwner(ctx context.Context, ownerUserID string) ([]domain.Company, error)
	Get(ctx context.Context, companyID string) (*domain.Company, error)
}

type dismissalStore interface {
	PutIfAbsent(ctx context.Context, d *domain.Dismissal) (bool, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]domain.Dismissal, error)
	Delete(ctx context.Context, ownerUserID, companyID, field string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type service struct {
	companies  companyStore
	dismissals dismissalStore
	users      userStore
	mailer     smtp.Mailer
	smsSender  sns.SMSSender // nil when SNS is not configured
	now        func() time.Time
}

type ServiceDeps struct {
	CompanyRepo   companyStore
	DismissalRepo dismissalStore
	UserRepo      userStore
	Mailer        smtp.Mailer
	SMSSender     sns.SMSSender
}

func NewService(deps ServiceDeps) Service {
	return &service{
		companies:  deps.CompanyRepo,
		dismissals: deps.DismissalRepo,
		users:      deps.UserRepo,
		mailer:     deps.Mailer,
		smsSender:  deps.SMSSender,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Feed(ctx context.Context, ownerUserID string) ([]domain.NotificationItem, error) {
	companies, err := s.companies.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	dismissals, err := s.dismissals.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	dismissed := make(map[string]struct{}, len(dismissals))
	for _, d := range dismissals {
		dismissed[pairKey(d.CompanyID, d.Field)] = struct{}{}
	}
	return buildFeed(companies, dismissed, s.now()), nil
}

// buildFeed scans every tracked field of every company, skips dismissed
// pairs, and emits one item per expired or nearly-expired date. Output order:
// all Expired before all Nearly Expired, ascending by date within each type.
func buildFeed(companies []domain.Company, dismissed map[string]struct{}, now time.Time) []domain.NotificationItem {
	items := []domain.NotificationItem{}
	for i := range companies {
		c := &companies[i]
		for _, f := range trackedFields {
			if _, ok := dismissed[pairKey(c.CompanyID, f.Key)]; ok {
				continue
			}
			date := fieldDate(c, f.Key)
			if date.IsZero() {
				continue
			}
			diff := expiry.DaysUntil(date, now)
			var typ string
			switch {
			case diff < 0:
				typ = expiry.StatusExpired
			case diff <= expiry.ThresholdDays:
				typ = expiry.StatusNearlyExpired
			default:
				continue
			}
			items = append(items, domain.NotificationItem{
				CompanyID:   c.CompanyID,
				Field:       f.Key,
				Type:        typ,
				CompanyName: c.CompanyName,
				Label:       f.Label,
				Date:        date,
			})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := expiry.Rank(items[i].Type), expiry.Rank(items[j].Type)
		if ri != rj {
			return ri < rj
		}
		return items[i].Date.Before(items[j].Date)
	})
	return items
}

func (s *service) Dismiss(ctx context.Context, ownerUserID string, req domain.DismissRequest) (bool, error) {
	if !isTrackedField(req.Field) {
		return false, fmt.Errorf("unknown field %q: %w", req.Field, domain.ErrBadRequest)
	}
	return s.dismissals.PutIfAbsent(ctx, &domain.Dismissal{
		OwnerUserID: ownerUserID,
		DismissKey:  req.CompanyID + "#" + req.Field,
		CompanyID:   req.CompanyID,
		Field:       req.Field,
		DismissedAt: s.now(),
	})
}

func (s *service) Undismiss(ctx context.Context, ownerUserID string, req domain.DismissRequest) error {
	if !isTrackedField(req.Field) {
		return fmt.Errorf("unknown field %q: %w", req.Field, domain.ErrBadRequest)
	}
	return s.dismissals.Delete(ctx, ownerUserID, req.CompanyID, req.Field)
}

func (s *service) Remind(ctx context.Context, ownerUserID string, req domain.RemindRequest) (string, error) {
	switch req.Channel {
	case "email":
		return s.remindByEmail(ctx, ownerUserID)
	case "sms":
		return s.remindBySMS(ctx, ownerUserID, req.CompanyID, req.Field)
	default:
		return "", fmt.Errorf("unknown channel %q: %w", req.Channel, domain.ErrBadRequest)
	}
}

// remindByEmail mails the caller their current feed as a plain-text digest.
func (s *service) remindByEmail(ctx context.Context, ownerUserID string) (string, error) {
	items, err := s.Feed(ctx, ownerUserID)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "nothing is expiring soon", nil
	}
	u, err := s.users.Get(ctx, ownerUserID)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nUpcoming expirations on your dashboard:\n\n", u.Name)
	for _, it := range items {
		fmt.Fprintf(&b, "- %s: %s %s on %s\n", it.CompanyName, it.Label, verbFor(it.Type), it.Date.Format("2006-01-02"))
	}
	subject := fmt.Sprintf("Expiry digest: %d item(s) need attention", len(items))
	if err := s.mailer.SendEmail(u.Email, subject, b.String()); err != nil {
		return "", err
	}
	return fmt.Sprintf("digest with %d item(s) sent to %s", len(items), u.Email), nil
}

// remindBySMS texts one company's contact number about a single field.
func (s *service) remindBySMS(ctx context.Context, ownerUserID, companyID, field string) (string, error) {
	if s.smsSender == nil {
		return "", fmt.Errorf("sms reminders are not enabled: %w", domain.ErrBadRequest)
	}
	if !isTrackedField(field) {
		return "", fmt.Errorf("unknown field %q: %w", field, domain.ErrBadRequest)
	}
	c, err := s.companies.Get(ctx, companyID)
	if err != nil {
		return "", err
	}
	if c.OwnerUserID != ownerUserID {
		return "", fmt.Errorf("company: %w", domain.ErrNotFound)
	}
	label := labelFor(field)
	date := fieldDate(c, field)
	msg := fmt.Sprintf("Reminder from Tarfea: %s for %s %s on %s.",
		label, c.CompanyName, verbFor(statusOf(date, s.now())), date.Format("2006-01-02"))
	if err := s.smsSender.SendSMS(ctx, c.MobileNo, msg); err != nil {
		return "", err
	}
	return fmt.Sprintf("sms reminder sent to %s", c.MobileNo), nil
}

func pairKey(companyID, field string) string {
	return companyID + "_" + field
}

func isTrackedField(field string) bool {
	for _, f := range trackedFields {
		if f.Key == field {
			return true
		}
	}
	return false
}

func labelFor(field string) string {
	for _, f := range trackedFields {
		if f.Key == field {
			return f.Label
		}
	}
	return field
}

func fieldDate(c *domain.Company, field string) time.Time {
	switch field {
	case "licenceExp":
		return c.LicenceExp
	case "munshaExp":
		return c.MunshaExp
	case "mathafiExp":
		return c.MathafiExp
	case "damanExp":
		return c.DamanExp
	case "echannelExp":
		return c.EchannelExp
	}
	return time.Time{}
}

func statusOf(date time.Time, now time.Time) string {
	return expiry.Compute([]time.Time{date}, now)
}

func verbFor(status string) string {
	if status == expiry.StatusExpired {
		return "expired"
	}
	return "expires"
}
