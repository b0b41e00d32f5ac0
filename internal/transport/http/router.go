package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/tarfea/dashboard-api/internal/transport/http/handler"
	"github.com/tarfea/dashboard-api/internal/transport/http/middleware"
)

// NewRouter assembles the full API route tree under /api. Registration and
// login sit behind a per-IP rate limiter; everything after the auth group
// requires a Bearer token.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	healthHandler := handler.NewHealthHandler()
	userHandler := handler.NewUserHandler(deps.UserService)
	companyHandler := handler.NewCompanyHandler(deps.CompanyService)
	domesticHandler := handler.NewDomesticHandler(deps.DomesticService)
	notificationHandler := handler.NewNotificationHandler(deps.NotificationService)
	documentHandler := handler.NewDocumentHandler(deps.DocumentService)

	authLimiter := middleware.NewRateLimiter(rate.Limit(5), 10)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health-check/ping", healthHandler.Ping)

		// Public routes.
		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Limit)
			r.Post("/users", userHandler.Register)
			r.Post("/users/login", userHandler.Login)
		})
		r.Post("/users/refresh", userHandler.Refresh)

		// Authenticated routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.JWTProvider))

			r.Post("/users/logout", userHandler.Logout)

			r.Route("/company", func(r chi.Router) {
				r.Get("/", companyHandler.List)
				r.Post("/", companyHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", companyHandler.Get)
					r.Put("/", companyHandler.Update)
					r.Delete("/", companyHandler.Delete)

					r.Route("/documents", func(r chi.Router) {
						r.Get("/", documentHandler.List)
						r.Post("/", documentHandler.Upload)
						r.Get("/{docID}", documentHandler.Download)
						r.Delete("/{docID}", documentHandler.Delete)
					})
				})
			})

			r.Route("/domestic", func(r chi.Router) {
				r.Get("/", domesticHandler.List)
				r.Post("/", domesticHandler.Create)
				r.Get("/{id}", domesticHandler.Get)
				r.Put("/{id}", domesticHandler.Update)
				r.Delete("/{id}", domesticHandler.Delete)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.Feed)
				r.Post("/dismiss", notificationHandler.Dismiss)
				r.Delete("/dismiss", notificationHandler.Undismiss)
				r.Post("/remind", notificationHandler.Remind)
			})
		})
	})

	return r
}
