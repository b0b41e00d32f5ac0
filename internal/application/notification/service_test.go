package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tarfea/dashboard-api/internal/domain"
	"github.com/tarfea/dashboard-api/internal/pkg/expiry"
)

type mockCompanyStore struct{ mock.Mock }

func (m *mockCompanyStore) ListByOwner(ctx context.Context, ownerUserID string) ([]domain.Company, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *mockCompanyStore) Get(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

type mockDismissalStore struct{ mock.Mock }

func (m *mockDismissalStore) PutIfAbsent(ctx context.Context, d *domain.Dismissal) (bool, error) {
	args := m.Called(ctx, d)
	return args.Bool(0), args.Error(1)
}

func (m *mockDismissalStore) ListByOwner(ctx context.Context, ownerUserID string) ([]domain.Dismissal, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Dismissal), args.Error(1)
}

func (m *mockDismissalStore) Delete(ctx context.Context, ownerUserID, companyID, field string) error {
	args := m.Called(ctx, ownerUserID, companyID, field)
	return args.Error(0)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

type mockSMSSender struct{ mock.Mock }

func (m *mockSMSSender) SendSMS(ctx context.Context, phone, message string) error {
	args := m.Called(ctx, phone, message)
	return args.Error(0)
}

// Fixed clock for deterministic day math.
var testNow = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return testNow.AddDate(0, 0, offset)
}

func newTestService(companies *mockCompanyStore, dismissals *mockDismissalStore, users *mockUserStore, mailer *mockMailer, sms *mockSMSSender) *service {
	svc := &service{
		companies:  companies,
		dismissals: dismissals,
		users:      users,
		now:        func() time.Time { return testNow },
	}
	if mailer != nil {
		svc.mailer = mailer
	}
	if sms != nil {
		svc.smsSender = sms
	}
	return svc
}

func TestBuildFeed_EmitsExpiredAndNearlyExpired(t *testing.T) {
	companies := []domain.Company{
		{
			CompanyID:   "c1",
			CompanyName: "Acme",
			LicenceExp:  day(-3),  // expired
			MunshaExp:   day(10),  // nearly expired
			MathafiExp:  day(200), // fine
			DamanExp:    day(30),  // boundary, nearly expired
			EchannelExp: day(31),  // just outside the window
		},
	}

	items := buildFeed(companies, map[string]struct{}{}, testNow)

	require.Len(t, items, 3)
	assert.Equal(t, "licenceExp", items[0].Field)
	assert.Equal(t, expiry.StatusExpired, items[0].Type)
	assert.Equal(t, "License", items[0].Label)
	assert.Equal(t, "munshaExp", items[1].Field)
	assert.Equal(t, expiry.StatusNearlyExpired, items[1].Type)
	assert.Equal(t, "damanExp", items[2].Field)
	assert.Equal(t, expiry.StatusNearlyExpired, items[2].Type)
}

func TestBuildFeed_ExpiredSortsBeforeNearlyExpired(t *testing.T) {
	companies := []domain.Company{
		{CompanyID: "c1", CompanyName: "Acme", LicenceExp: day(5), MunshaExp: day(300), MathafiExp: day(300), DamanExp: day(300), EchannelExp: day(300)},
		{CompanyID: "c2", CompanyName: "Globex", LicenceExp: day(-10), MunshaExp: day(300), MathafiExp: day(300), DamanExp: day(300), EchannelExp: day(300)},
		{CompanyID: "c3", CompanyName: "Initech", LicenceExp: day(-2), MunshaExp: day(2), MathafiExp: day(300), DamanExp: day(300), EchannelExp: day(300)},
	}

	items := buildFeed(companies, map[string]struct{}{}, testNow)

	require.Len(t, items, 4)
	// All Expired first, ascending by date, then Nearly Expired ascending.
	assert.Equal(t, "c2", items[0].CompanyID)
	assert.Equal(t, "c3", items[1].CompanyID)
	assert.Equal(t, expiry.StatusExpired, items[1].Type)
	assert.Equal(t, "c3", items[2].CompanyID)
	assert.Equal(t, expiry.StatusNearlyExpired, items[2].Type)
	assert.Equal(t, "c1", items[3].CompanyID)
}

func TestBuildFeed_DismissedPairNeverAppears(t *testing.T) {
	companies := []domain.Company{
		{CompanyID: "c1", CompanyName: "Acme", LicenceExp: day(-3), MunshaExp: day(10), MathafiExp: day(300), DamanExp: day(300), EchannelExp: day(300)},
	}
	dismissed := map[string]struct{}{"c1_licenceExp": {}}

	items := buildFeed(companies, dismissed, testNow)

	require.Len(t, items, 1)
	assert.Equal(t, "munshaExp", items[0].Field)
}

func TestBuildFeed_ZeroDatesAreSkipped(t *testing.T) {
	companies := []domain.Company{{CompanyID: "c1", CompanyName: "Acme"}}

	items := buildFeed(companies, map[string]struct{}{}, testNow)

	assert.Empty(t, items)
}

func TestBuildFeed_UnsetFieldsDoNotSurfaceAsExpired(t *testing.T) {
	// Only munshaExp is set; the four unset fields must not show up as
	// ancient Expired entries.
	companies := []domain.Company{
		{CompanyID: "c1", CompanyName: "Acme", MunshaExp: day(10)},
	}

	items := buildFeed(companies, map[string]struct{}{}, testNow)

	require.Len(t, items, 1)
	assert.Equal(t, "munshaExp", items[0].Field)
	assert.Equal(t, expiry.StatusNearlyExpired, items[0].Type)
}

func TestFeed_FiltersByDismissals(t *testing.T) {
	companyStore := new(mockCompanyStore)
	dismissalStore := new(mockDismissalStore)
	svc := newTestService(companyStore, dismissalStore, nil, nil, nil)

	companyStore.On("ListByOwner", mock.Anything, "u1").Return([]domain.Company{
		{CompanyID: "c1", CompanyName: "Acme", LicenceExp: day(-1), MunshaExp: day(5), MathafiExp: day(300), DamanExp: day(300), EchannelExp: day(300)},
	}, nil)
	dismissalStore.On("ListByOwner", mock.Anything, "u1").Return([]domain.Dismissal{
		{OwnerUserID: "u1", CompanyID: "c1", Field: "munshaExp"},
	}, nil)

	items, err := svc.Feed(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "licenceExp", items[0].Field)
	companyStore.AssertExpectations(t)
}

func TestDismiss_IsIdempotent(t *testing.T) {
	dismissalStore := new(mockDismissalStore)
	svc := newTestService(new(mockCompanyStore), dismissalStore, nil, nil, nil)

	req := domain.DismissRequest{CompanyID: "c1", Field: "licenceExp"}
	dismissalStore.On("PutIfAbsent", mock.Anything, mock.MatchedBy(func(d *domain.Dismissal) bool {
		return d.OwnerUserID == "u1" && d.DismissKey == "c1#licenceExp"
	})).Return(true, nil).Once()
	dismissalStore.On("PutIfAbsent", mock.Anything, mock.Anything).Return(false, nil).Once()

	created, err := svc.Dismiss(context.Background(), "u1", req)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.Dismiss(context.Background(), "u1", req)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestDismiss_RejectsUnknownField(t *testing.T) {
	svc := newTestService(new(mockCompanyStore), new(mockDismissalStore), nil, nil, nil)

	_, err := svc.Dismiss(context.Background(), "u1", domain.DismissRequest{CompanyID: "c1", Field: "bogus"})

	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestUndismiss_DeletesTheSuppression(t *testing.T) {
	dismissalStore := new(mockDismissalStore)
	svc := newTestService(new(mockCompanyStore), dismissalStore, nil, nil, nil)

	dismissalStore.On("Delete", mock.Anything, "u1", "c1", "licenceExp").Return(nil)

	err := svc.Undismiss(context.Background(), "u1", domain.DismissRequest{CompanyID: "c1", Field: "licenceExp"})

	require.NoError(t, err)
	dismissalStore.AssertExpectations(t)
}

func TestRemind_EmailSendsDigest(t *testing.T) {
	companyStore := new(mockCompanyStore)
	dismissalStore := new(mockDismissalStore)
	userStore := new(mockUserStore)
	mailer := new(mockMailer)
	svc := newTestService(companyStore, dismissalStore, userStore, mailer, nil)

	companyStore.On("ListByOwner", mock.Anything, "u1").Return([]domain.Company{
		{CompanyID: "c1", CompanyName: "Acme", LicenceExp: day(3), MunshaExp: day(300), MathafiExp: day(300), DamanExp: day(300), EchannelExp: day(300)},
	}, nil)
	dismissalStore.On("ListByOwner", mock.Anything, "u1").Return([]domain.Dismissal{}, nil)
	userStore.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Name: "Sam", Email: "sam@example.com"}, nil)
	mailer.On("SendEmail", "sam@example.com", mock.Anything, mock.MatchedBy(func(body string) bool {
		return len(body) > 0
	})).Return(nil)

	msg, err := svc.Remind(context.Background(), "u1", domain.RemindRequest{Channel: "email"})

	require.NoError(t, err)
	assert.Contains(t, msg, "sam@example.com")
	mailer.AssertExpectations(t)
}

func TestRemind_EmailWithEmptyFeedSkipsSending(t *testing.T) {
	companyStore := new(mockCompanyStore)
	dismissalStore := new(mockDismissalStore)
	mailer := new(mockMailer)
	svc := newTestService(companyStore, dismissalStore, new(mockUserStore), mailer, nil)

	companyStore.On("ListByOwner", mock.Anything, "u1").Return([]domain.Company{}, nil)
	dismissalStore.On("ListByOwner", mock.Anything, "u1").Return([]domain.Dismissal{}, nil)

	msg, err := svc.Remind(context.Background(), "u1", domain.RemindRequest{Channel: "email"})

	require.NoError(t, err)
	assert.Equal(t, "nothing is expiring soon", msg)
	mailer.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemind_SMSRequiresOwnership(t *testing.T) {
	companyStore := new(mockCompanyStore)
	sms := new(mockSMSSender)
	svc := newTestService(companyStore, new(mockDismissalStore), nil, nil, sms)

	companyStore.On("Get", mock.Anything, "c1").Return(&domain.Company{
		CompanyID: "c1", OwnerUserID: "someone-else", MobileNo: "+971500000000", LicenceExp: day(2),
	}, nil)

	_, err := svc.Remind(context.Background(), "u1", domain.RemindRequest{Channel: "sms", CompanyID: "c1", Field: "licenceExp"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	sms.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemind_SMSSendsToCompanyMobile(t *testing.T) {
	companyStore := new(mockCompanyStore)
	sms := new(mockSMSSender)
	svc := newTestService(companyStore, new(mockDismissalStore), nil, nil, sms)

	companyStore.On("Get", mock.Anything, "c1").Return(&domain.Company{
		CompanyID: "c1", CompanyName: "Acme", OwnerUserID: "u1", MobileNo: "+971500000000", LicenceExp: day(2),
	}, nil)
	sms.On("SendSMS", mock.Anything, "+971500000000", mock.MatchedBy(func(msg string) bool {
		return msg != ""
	})).Return(nil)

	msg, err := svc.Remind(context.Background(), "u1", domain.RemindRequest{Channel: "sms", CompanyID: "c1", Field: "licenceExp"})

	require.NoError(t, err)
	assert.Contains(t, msg, "+971500000000")
	sms.AssertExpectations(t)
}

func TestRemind_SMSWithoutSenderIsBadRequest(t *testing.T) {
	svc := newTestService(new(mockCompanyStore), new(mockDismissalStore), nil, nil, nil)

	_, err := svc.Remind(context.Background(), "u1", domain.RemindRequest{Channel: "sms", CompanyID: "c1", Field: "licenceExp"})

	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestFeed_PropagatesStoreErrors(t *testing.T) {
	companyStore := new(mockCompanyStore)
	svc := newTestService(companyStore, new(mockDismissalStore), nil, nil, nil)

	companyStore.On("ListByOwner", mock.Anything, "u1").Return(nil, errors.New("dynamo down"))

	_, err := svc.Feed(context.Background(), "u1")

	assert.Error(t, err)
}
