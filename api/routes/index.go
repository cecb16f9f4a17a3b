package routes

import (
	"net/http"
	"time"

	"github.com/Voltaic314/ShelfDB/api/routes/auth"
	"github.com/Voltaic314/ShelfDB/api/routes/canvas"
	"github.com/Voltaic314/ShelfDB/api/routes/contents"
	"github.com/Voltaic314/ShelfDB/api/routes/objects"
	"github.com/Voltaic314/ShelfDB/api/routes/server"
	coreauth "github.com/Voltaic314/ShelfDB/auth"
	"github.com/Voltaic314/ShelfDB/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RegisterAllRoutes registers all API routes
func RegisterAllRoutes(r chi.Router, srv interface{}) {
	s := srv.(interface {
		Logger() *zap.Logger
		Issuer() *coreauth.Issuer
		CookieName() string
	})

	// Add middleware
	r.Use(middleware.RequestID)
	r.Use(logger.Middleware(s.Logger()))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(coreauth.Middleware(s.Issuer(), s.CookieName()))

	server.RegisterRoutes(r, srv)

	// Register route groups with server instance
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			auth.RegisterRoutes(r, srv)
		})
		r.Route("/objects", func(r chi.Router) {
			objects.RegisterRoutes(r, srv)
		})
		r.Route("/contents", func(r chi.Router) {
			contents.RegisterRoutes(r, srv)
		})
		r.Route("/canvas", func(r chi.Router) {
			canvas.RegisterRoutes(r, srv)
		})
		r.Post("/reset", func(w http.ResponseWriter, r *http.Request) {
			objects.HandleReset(w, r, srv)
		})
	})
}
