package objects

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all object table routes
func RegisterRoutes(r chi.Router, server interface{}) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		HandleList(w, r, server)
	})
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		HandleAllocate(w, r, server)
	})
	r.Post("/rename", func(w http.ResponseWriter, r *http.Request) {
		HandleRename(w, r, server)
	})
	r.Delete("/{table}", func(w http.ResponseWriter, r *http.Request) {
		HandleDrop(w, r, server)
	})
	r.Get("/{table}/children", func(w http.ResponseWriter, r *http.Request) {
		HandleChildren(w, r, server)
	})
}
