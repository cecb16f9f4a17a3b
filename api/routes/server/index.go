package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers all server-related routes
func RegisterRoutes(r chi.Router, server interface{}) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		HandleHealth(w, r, server)
	})

	s := server.(interface{ Registry() *prometheus.Registry })
	r.Handle("/metrics", promhttp.HandlerFor(s.Registry(), promhttp.HandlerOpts{}))
}
