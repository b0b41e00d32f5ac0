package http

import (
	companyapp "github.com/tarfea/dashboard-api/internal/application/company"
	documentapp "github.com/tarfea/dashboard-api/internal/application/document"
	domesticapp "github.com/tarfea/dashboard-api/internal/application/domestic"
	notificationapp "github.com/tarfea/dashboard-api/internal/application/notification"
	userapp "github.com/tarfea/dashboard-api/internal/application/user"
	jwtinfra "github.com/tarfea/dashboard-api/internal/infrastructure/jwt"
)

// Deps carries everything the router needs, wired up in cmd/api.
type Deps struct {
	JWTProvider    *jwtinfra.Provider
	AllowedOrigins []string

	UserService         userapp.Service
	CompanyService      companyapp.Service
	DomesticService     domesticapp.Service
	NotificationService notificationapp.Service
	DocumentService     documentapp.Service
}
