package contents

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all content row routes
func RegisterRoutes(r chi.Router, server interface{}) {
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		HandleInsert(w, r, server)
	})
	r.Post("/list", func(w http.ResponseWriter, r *http.Request) {
		HandleList(w, r, server)
	})
	r.Post("/delete", func(w http.ResponseWriter, r *http.Request) {
		HandleDelete(w, r, server)
	})
	r.Post("/search", func(w http.ResponseWriter, r *http.Request) {
		HandleSearch(w, r, server)
	})
}
