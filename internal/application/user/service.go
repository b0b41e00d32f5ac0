package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tarfea/dashboard-api/internal/domain"
	"github.com/tarfea/dashboard-api/internal/pkg/id"
	pkgtoken "github.com/tarfea/dashboard-api/internal/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

type LoginResult struct {
	Bearer       string
	RefreshToken string
	User         *domain.User
}

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (bearer, newRefreshToken string, err error)
	Logout(ctx context.Context, sessionID string) error
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
}

type sessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error)
	Update(ctx context.Context, sessionID string, updates map[string]interface{}) error
	RotateRefreshToken(ctx context.Context, sessionID, newToken string, newExpiry int64) error
}

type jwtSigner interface {
	Sign(userID, sessionID string) (string, error)
}

type service struct {
	repo            userStore
	sessionRepo     sessionStore
	jwtProvider     jwtSigner
	refreshTokenDur time.Duration
}

type ServiceDeps struct {
	UserRepo        userStore
	SessionRepo     sessionStore
	JWTProvider     jwtSigner
	RefreshTokenDur time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:            deps.UserRepo,
		sessionRepo:     deps.SessionRepo,
		jwtProvider:     deps.JWTProvider,
		refreshTokenDur: deps.RefreshTokenDur,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	_, err := s.repo.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("email already in use: %w", domain.ErrConflict)
	case !errors.Is(err, domain.ErrNotFound):
		// A store failure must not let the duplicate check slip through.
		return nil, fmt.Errorf("check email: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error) {
	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrBadRequest)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrBadRequest)
	}
	refreshToken, err := pkgtoken.NewRefreshToken()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	sess := &domain.Session{
		SessionID:        id.New(),
		UserID:           u.UserID,
		Enable:           true,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: now.Add(s.refreshTokenDur).Unix(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.sessionRepo.Put(ctx, sess); err != nil {
		return nil, err
	}
	bearer, err := s.jwtProvider.Sign(u.UserID, sess.SessionID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Bearer: bearer, RefreshToken: refreshToken, User: u}, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	sess, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("invalid or expired refresh token: %w", domain.ErrBadRequest)
	}
	if !sess.Enable || sess.RefreshExpiresAt < time.Now().Unix() {
		return "", "", fmt.Errorf("invalid or expired refresh token: %w", domain.ErrBadRequest)
	}
	newToken, err := pkgtoken.NewRefreshToken()
	if err != nil {
		return "", "", err
	}
	newExpiry := time.Now().Add(s.refreshTokenDur).Unix()
	if err := s.sessionRepo.RotateRefreshToken(ctx, sess.SessionID, newToken, newExpiry); err != nil {
		return "", "", err
	}
	bearer, err := s.jwtProvider.Sign(sess.UserID, sess.SessionID)
	if err != nil {
		return "", "", err
	}
	return bearer, newToken, nil
}

func (s *service) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Update(ctx, sessionID, map[string]interface{}{"enable": false})
}
