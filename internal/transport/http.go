package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/TanishqDodiya/elyf-EVspare/internal/catalog"
	"github.com/TanishqDodiya/elyf-EVspare/internal/handler"
	"github.com/TanishqDodiya/elyf-EVspare/internal/order"
)

func NewRouter(catalogRepo catalog.Repository, orderSvc order.Service) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		handler.NewProductHandler(catalogRepo).RegisterRoutes(api)
		handler.NewOrderHandler(orderSvc).RegisterRoutes(api)
	})

	return r
}
