package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Voltaic314/ShelfDB/directory"
	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	"github.com/Voltaic314/ShelfDB/tenant"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	HashCost = bcrypt.MinCost
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir, err := directory.Open(context.Background(), filepath.Join(t.TempDir(), "directory.db"), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { dir.Close() })

	issuer, err := NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	return NewService(dir, issuer, zaptest.NewLogger(t))
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	u, err := s.Register(ctx, "  Alice ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = s.Register(ctx, "ALICE", "another password")
	assert.Equal(t, kerrors.EConflict, kerrors.ErrorCode(err))

	_, err = s.Register(ctx, "bob", "short")
	assert.Equal(t, kerrors.EInvalid, kerrors.ErrorCode(err))

	_, err = s.Register(ctx, "   ", "long enough")
	assert.Equal(t, kerrors.EInvalid, kerrors.ErrorCode(err))

	tok, err := s.Login(ctx, "alice", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "alice", tok.Username)

	claims, err := s.Issuer().Verify(tok.AccessToken)
	require.NoError(t, err)
	id, ok := claims.TenantID()
	assert.True(t, ok)
	assert.Equal(t, "alice", id)
	assert.NotEmpty(t, claims.ID)

	_, err = s.Login(ctx, "alice", "wrong password")
	assert.Equal(t, kerrors.EUnauthorized, kerrors.ErrorCode(err))
	_, err = s.Login(ctx, "nobody", "whatever1")
	assert.Equal(t, kerrors.EUnauthorized, kerrors.ErrorCode(err))
}

func TestVerifyRejects(t *testing.T) {
	issuer, err := NewIssuer("secret", time.Hour)
	require.NoError(t, err)

	other, err := NewIssuer("other", time.Hour)
	require.NoError(t, err)
	tok, _, err := other.Issue("alice")
	require.NoError(t, err)
	_, err = issuer.Verify(tok)
	assert.Equal(t, kerrors.EUnauthorized, kerrors.ErrorCode(err))

	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := issuer.Issue("alice")
	require.NoError(t, err)
	_, err = issuer.Verify(expired)
	assert.Equal(t, kerrors.EUnauthorized, kerrors.ErrorCode(err))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Verify(unsigned)
	assert.Equal(t, kerrors.EUnauthorized, kerrors.ErrorCode(err))

	_, err = NewIssuer("", time.Hour)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	issuer, err := NewIssuer("secret", time.Hour)
	require.NoError(t, err)
	tok, _, err := issuer.Issue("alice")
	require.NoError(t, err)

	var got tenant.AuthContext
	h := Middleware(issuer, "access_token_cookie")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		tenant string
		ok     bool
	}{
		{name: "bearer", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }, tenant: "alice", ok: true},
		{name: "cookie", setup: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token_cookie", Value: tok}) }, tenant: "alice", ok: true},
		{name: "garbage", setup: func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }},
		{name: "anonymous", setup: func(r *http.Request) {}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(r)
			h.ServeHTTP(httptest.NewRecorder(), r)

			id, ok := got.TenantID()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.tenant, id)
		})
	}
}
