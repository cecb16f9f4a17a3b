package api

import (
	"net/http"

	"github.com/Voltaic314/ShelfDB/auth"
	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	"github.com/Voltaic314/ShelfDB/tenant"
	"go.uber.org/zap"
)

// TenantServer is the part of the server every tenant-scoped handler needs.
type TenantServer interface {
	Tenants() *tenant.Router
	Logger() *zap.Logger
}

// Backend resolves the caller's backend from the verified request claims.
// On failure it writes the error response and returns false.
func Backend(w http.ResponseWriter, r *http.Request, server interface{}) (*tenant.Backend, bool) {
	s := server.(TenantServer)

	b, err := s.Tenants().ResolveAuth(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		Fail(w, r, server, err)
		return nil, false
	}
	return b, true
}

// Fail logs err when it is not a client error and sends its response.
func Fail(w http.ResponseWriter, r *http.Request, server interface{}, err error) {
	if s, ok := server.(TenantServer); ok && kerrors.StatusCode(err) >= http.StatusInternalServerError {
		s.Logger().Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	Error(w, err)
}
