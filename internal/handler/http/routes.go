package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// enrollment and login ride on the anonymous session cookie
	router.Group(func(r chi.Router) {
		r.Use(h.withSession)

		r.Post("/api/register/initiate", h.initiateRegistration)
		r.Post("/api/register/totp", h.verifyRegistrationTOTP)
		r.Post("/api/register/complete", h.completeRegistration)

		r.Post("/api/login/identify", h.identify)
		r.Post("/api/login/totp", h.verifyLoginTOTP)
	})

	// vault routes require a valid access token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/vault/items", h.listItems)
		r.Post("/api/vault/items", h.createItem)
		r.Get("/api/vault/items/{itemID}", h.getItem)
		r.Put("/api/vault/items/{itemID}", h.updateItem)
		r.Delete("/api/vault/items/{itemID}", h.deleteItem)
	})

	return router
}
