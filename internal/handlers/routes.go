package handlers

import (
	"net/http"
	"time"

	"clubadmin/internal/transport/auth"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes mounts the API. Reads are open; anything that mutates a payment
// sits behind the admin token middleware.
func (h *Handlers) Routes(tokenRepo auth.TokenRepo) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", h.Health)

	r.Get("/members", h.ListMembers)
	r.Get("/members/rollup", h.MemberRollups)

	r.Get("/payments", h.ListPayments)
	r.Get("/payments/stats", h.Statistics)
	r.Get("/payments/{id}", h.GetPayment)
	r.Get("/payments/{id}/history", h.PaymentHistory)

	r.Get("/reports/payments.xlsx", h.ExportReport)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.TokenMiddleware(tokenRepo))
		pr.Post("/payments", h.CreatePayment)
		pr.Post("/payments/{id}/transition", h.Transition)
	})

	return r
}
