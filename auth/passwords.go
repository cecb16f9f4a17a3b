package auth

import (
	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password we allow into the system.
const MinPasswordLength = 8

// HashCost currently using the default cost of bcrypt
var HashCost = bcrypt.DefaultCost

var (
	// EIncorrectCredentials is returned by login failures. It does not tell
	// unknown users apart from wrong passwords.
	EIncorrectCredentials = &kerrors.Error{
		Code: kerrors.EUnauthorized,
		Msg:  "your username or password is incorrect",
	}

	// EShortPassword is used when a password is less than the minimum
	// acceptable password length.
	EShortPassword = &kerrors.Error{
		Code: kerrors.EInvalid,
		Msg:  "passwords must be at least 8 characters long",
	}
)

// HashPassword validates and hashes a new password.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", EShortPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword checks password against a stored hash.
func ComparePassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return EIncorrectCredentials
	}
	return nil
}
