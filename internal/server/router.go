package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"chaospizza/internal/order"
)

func NewRouter(orderModule *order.Module, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", orderModule.Orders.Create)
		r.Get("/", orderModule.Orders.List)

		r.Route("/{orderSlug}", func(r chi.Router) {
			r.Get("/", orderModule.Orders.Get)
			r.Get("/history", orderModule.Orders.History)

			r.Post("/ordering", orderModule.Orders.Ordering)
			r.Post("/ordered", orderModule.Orders.Ordered)
			r.Post("/delivered", orderModule.Orders.Delivered)
			r.Post("/cancel", orderModule.Orders.Cancel)

			r.Post("/items", orderModule.Items.Add)
			r.Put("/items/{itemSlug}", orderModule.Items.Update)
			r.Delete("/items/{itemSlug}", orderModule.Items.Delete)
		})
	})

	return r
}
