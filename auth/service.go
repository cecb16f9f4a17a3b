// Package auth registers users, issues access tokens and turns request
// credentials into a verified tenant identity.
package auth

import (
	"context"

	"github.com/Voltaic314/ShelfDB/directory"
	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	"github.com/Voltaic314/ShelfDB/tenant"
	"go.uber.org/zap"
)

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (directory.User, error)
	FindUser(ctx context.Context, username string) (directory.User, error)
}

// Service implements registration and login.
type Service struct {
	users  UserStore
	issuer *Issuer
	log    *zap.Logger
}

// NewService creates an auth service.
func NewService(users UserStore, issuer *Issuer, log *zap.Logger) *Service {
	return &Service{users: users, issuer: issuer, log: log}
}

// Issuer returns the token issuer used by the service.
func (s *Service) Issuer() *Issuer { return s.issuer }

// Register creates an account. Usernames are stored normalized.
func (s *Service) Register(ctx context.Context, username, password string) (directory.User, error) {
	const op = "auth.Register"

	name := tenant.NormalizeUsername(username)
	if name == "" {
		return directory.User{}, kerrors.Invalid(op, "username is required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return directory.User{}, err
	}

	u, err := s.users.CreateUser(ctx, name, hash)
	if err != nil {
		return directory.User{}, err
	}
	s.log.Info("user registered", zap.String("username", name))
	return u, nil
}

// Login checks credentials and returns a signed access token.
func (s *Service) Login(ctx context.Context, username, password string) (*Token, error) {
	name := tenant.NormalizeUsername(username)
	if name == "" || password == "" {
		return nil, EIncorrectCredentials
	}

	u, err := s.users.FindUser(ctx, name)
	if kerrors.ErrorCode(err) == kerrors.ENotFound {
		return nil, EIncorrectCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := ComparePassword(u.PasswordHash, password); err != nil {
		s.log.Debug("login rejected", zap.String("username", name))
		return nil, err
	}

	signed, exp, err := s.issuer.Issue(u.Username)
	if err != nil {
		return nil, err
	}
	return &Token{AccessToken: signed, ExpiresAt: exp, Username: u.Username}, nil
}
