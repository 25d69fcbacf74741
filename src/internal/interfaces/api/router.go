package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SetupRouter 設定 HTTP 路由與 middleware
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.ListCustomers)
			r.Post("/", h.RegisterCustomer)
			r.Post("/with-recharge", h.CreateCustomerWithRecharge)

			r.Route("/{customerID}", func(r chi.Router) {
				r.Get("/", h.GetCustomer)
				r.Put("/", h.UpdateCustomer)
				r.Delete("/", h.DeleteCustomer)
				r.Get("/balance", h.GetBalance)
				r.Put("/balance", h.SetBalance)
				r.Get("/orders", h.ListCustomerOrders)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.ListOrders)
			r.Post("/", h.CreateOrder)

			r.Route("/{orderID}", func(r chi.Router) {
				r.Get("/", h.GetOrder)
				r.Put("/", h.UpdateOrder)
				r.Delete("/", h.CancelOrder)
				r.Put("/status", h.UpdateOrderStatus)
				r.Get("/clothes", h.ListClothes)
				r.Post("/clothes", h.AddClothes)
			})
		})

		r.Route("/clothes", func(r chi.Router) {
			r.Get("/status/{status}", h.ListClothesByStatus)

			r.Route("/{clothesID}", func(r chi.Router) {
				r.Put("/", h.UpdateClothes)
				r.Put("/status", h.AdvanceClothesStatus)
				r.Delete("/", h.DeleteClothes)
			})
		})

		r.Route("/prepaid", func(r chi.Router) {
			r.Post("/recharge", h.Recharge)
			r.Post("/pay", h.PayWithPrepaid)
			r.Get("/recharge-records/{customerID}", h.ListRechargeRecords)
		})

		r.Route("/statistics", func(r chi.Router) {
			r.Get("/daily", h.DailyStatistics)
			r.Get("/monthly", h.MonthlyStatistics)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
