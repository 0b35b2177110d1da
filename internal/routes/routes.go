package routes

import (
	"github.com/BradenHooton/heavyprofile/internal/auth"
	"github.com/BradenHooton/heavyprofile/internal/handlers"
	"github.com/BradenHooton/heavyprofile/internal/middleware"
	"github.com/BradenHooton/heavyprofile/internal/models"
	pkghttp "github.com/BradenHooton/heavyprofile/pkg/http"
	"github.com/go-chi/chi/v5"
)

// Handlers bundles every API handler the router mounts
type Handlers struct {
	Auth      *handlers.AuthHandler
	Admin     *handlers.AdminHandler
	Portfolio *handlers.ContentHandler[models.PortfolioItem]
	Services  *handlers.ContentHandler[models.ServiceItem]
	Faq       *handlers.ContentHandler[models.FaqItem]
	Site      *handlers.SiteHandler
	Upload    *handlers.UploadHandler
	Lead      *handlers.LeadHandler
}

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	h Handlers,
	sessions *auth.SessionManager,
	ipConfig *pkghttp.IPConfig,
) {
	router.Route("/api", func(r chi.Router) {
		// Public routes
		r.With(middleware.NoStore, middleware.RateLimitByClient(middleware.DefaultLoginRateLimit(), ipConfig)).
			Post("/admin/auth", h.Auth.Login)
		r.With(middleware.NoStore).Get("/admin/auth", h.Auth.Status)
		r.With(middleware.NoStore).Post("/admin/logout", h.Auth.Logout)

		r.Get("/admin/portfolio", h.Portfolio.List)
		r.Get("/admin/services", h.Services.List)
		r.Get("/admin/faq", h.Faq.List)
		r.Get("/admin/settings", h.Site.GetSettings)
		r.Get("/documents", h.Site.GetDocuments)

		r.With(middleware.RateLimitByClient(middleware.DefaultLeadRateLimit(), ipConfig)).
			Post("/telegram", h.Lead.Submit)

		// Admin session required
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireSession(sessions))
			r.Use(middleware.NoStore)

			r.Post("/admin/portfolio", h.Portfolio.Create)
			r.Put("/admin/portfolio", h.Portfolio.Update)
			r.Delete("/admin/portfolio", h.Portfolio.Delete)

			r.Post("/admin/services", h.Services.Create)
			r.Put("/admin/services", h.Services.Update)
			r.Delete("/admin/services", h.Services.Delete)

			r.Post("/admin/faq", h.Faq.Create)
			r.Put("/admin/faq", h.Faq.Update)
			r.Delete("/admin/faq", h.Faq.Delete)

			r.Put("/admin/settings", h.Site.PutSettings)
			r.Get("/admin/documents", h.Site.GetDocuments)
			r.Put("/admin/documents", h.Site.PutDocuments)

			r.Get("/admin/password", h.Admin.GetCredentials)
			r.Post("/admin/password", h.Admin.ChangeCredentials)
			r.Get("/admin/login-attempts", h.Admin.ListLoginAttempts)

			r.With(middleware.RateLimitByClient(middleware.DefaultUploadRateLimit(), ipConfig)).
				Post("/upload", h.Upload.Upload)
		})
	})
}
