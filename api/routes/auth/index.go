package auth

import (
	"net/http"
	"time"

	"github.com/Voltaic314/ShelfDB/auth"
	"github.com/Voltaic314/ShelfDB/types/api"
	"github.com/go-chi/chi/v5"
)

// Server is what the auth handlers need from the server.
type Server interface {
	Auth() *auth.Service
	CookieName() string
}

// RegisterRoutes registers the account routes
func RegisterRoutes(r chi.Router, server interface{}) {
	r.Post("/register", func(w http.ResponseWriter, r *http.Request) {
		HandleRegister(w, r, server)
	})
	r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		HandleLogin(w, r, server)
	})
	r.Post("/logout", func(w http.ResponseWriter, r *http.Request) {
		HandleLogout(w, r, server)
	})
	r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
		HandleMe(w, r, server)
	})
}

// CredentialsRequest is the body of register and login
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponseData struct {
	Username   string `json:"username"`
	BackendKey string `json:"backend_key,omitempty"`
}

// HandleRegister creates an account
func HandleRegister(w http.ResponseWriter, r *http.Request, server interface{}) {
	var req CredentialsRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}

	s := server.(Server)
	u, err := s.Auth().Register(r.Context(), req.Username, req.Password)
	if err != nil {
		api.Fail(w, r, server, err)
		return
	}
	api.Created(w, UserResponseData{Username: u.Username})
}

// HandleLogin issues an access token, returned in the body and as a cookie
func HandleLogin(w http.ResponseWriter, r *http.Request, server interface{}) {
	var req CredentialsRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}

	s := server.(Server)
	tok, err := s.Auth().Login(r.Context(), req.Username, req.Password)
	if err != nil {
		api.Fail(w, r, server, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.CookieName(),
		Value:    tok.AccessToken,
		Path:     "/",
		Expires:  tok.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	api.Success(w, tok)
}

// HandleLogout clears the access cookie
func HandleLogout(w http.ResponseWriter, r *http.Request, server interface{}) {
	s := server.(Server)
	http.SetCookie(w, &http.Cookie{
		Name:     s.CookieName(),
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	api.SuccessEmpty(w)
}

// HandleMe returns the caller's identity and backend key
func HandleMe(w http.ResponseWriter, r *http.Request, server interface{}) {
	b, ok := api.Backend(w, r, server)
	if !ok {
		return
	}
	api.Success(w, UserResponseData{Username: b.Username, BackendKey: b.Key})
}
