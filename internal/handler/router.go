package handler

import (
	"github.com/dangerclosesec/apmap/internal/auth"
	"github.com/dangerclosesec/apmap/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Handlers groups every REST handler mounted under /api
type Handlers struct {
	Auth          *AuthHandler
	AccessPoints  *AccessPointHandler
	Organizations *OrganizationHandler
	AuditLogs     *AuditLogHandler
	SpeedTests    *SpeedTestHandler
	Wigle         *WigleHandler
	Users         *UserHandler
}

// Mount registers the API routes on r
func (h *Handlers) Mount(r chi.Router, tokenManager *auth.TokenManager) {
	r.Use(chimw.AllowContentType("application/json"))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
	})

	r.Route("/access-points", func(r chi.Router) {
		// Public routes
		r.Get("/{id}/qr-code", h.AccessPoints.QRCode)

		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(tokenManager))
			r.Get("/nearby", h.AccessPoints.Nearby)
			r.Get("/{id}", h.AccessPoints.Get)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(tokenManager))
			r.Post("/", h.AccessPoints.Create)
			r.Post("/{id}/password", h.AccessPoints.SetPassword)
			r.Post("/{id}/rating", h.AccessPoints.Rate)
			r.Post("/{id}/service-block", h.AccessPoints.ReportServiceBlock)
		})
	})

	r.Route("/organizations", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(tokenManager))
		r.Post("/", h.Organizations.Create)
		r.Get("/mine", h.Organizations.Mine)
		r.Get("/mine/audit-logs", h.AuditLogs.GetAuditLogs)
		r.Post("/join", h.Organizations.Join)
		r.Post("/leave", h.Organizations.Leave)
		r.Get("/{slug}/access-points", h.Organizations.AccessPoints)
	})

	r.Route("/wigle", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(tokenManager))
		r.Post("/search", h.Wigle.Search)
		r.Get("/statistics", h.Wigle.Statistics)
	})

	r.Route("/speed-test", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(tokenManager))
		r.Post("/start", h.SpeedTests.Start)
		r.Post("/save", h.SpeedTests.Save)
		r.Get("/history/{accessPointId}", h.SpeedTests.History)
	})

	r.Route("/user", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(tokenManager))
		r.Get("/favorites", h.Users.Favorites)
		r.Post("/favorites/{accessPointId}", h.Users.AddFavorite)
		r.Delete("/favorites/{accessPointId}", h.Users.RemoveFavorite)
		r.Get("/activity", h.Users.Activity)
		r.Get("/profile", h.Users.Profile)
		r.Put("/profile", h.Users.UpdateProfile)
	})
}
