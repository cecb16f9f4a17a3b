package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	"gorm.io/gorm"
)

// UserModel is a registered account. Username is stored normalized.
type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string { return "users" }

// User is the account as seen by callers.
type User struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateUser stores a new account. A taken username is a conflict.
func (d *Directory) CreateUser(ctx context.Context, username, passwordHash string) (User, error) {
	const op = "directory.CreateUser"

	m := UserModel{Username: username, PasswordHash: passwordHash}
	if err := d.db.WithContext(ctx).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return User{}, kerrors.Conflict(op, fmt.Sprintf("username %s is already taken", username))
		}
		return User{}, kerrors.Storage(op, err)
	}
	return toUser(m), nil
}

// FindUser looks an account up by its normalized username.
func (d *Directory) FindUser(ctx context.Context, username string) (User, error) {
	const op = "directory.FindUser"

	var m UserModel
	err := d.db.WithContext(ctx).Where("username = ?", username).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, kerrors.NotFound(op, fmt.Sprintf("user %s not found", username))
	}
	if err != nil {
		return User{}, kerrors.Storage(op, err)
	}
	return toUser(m), nil
}

func toUser(m UserModel) User {
	return User{ID: m.ID, Username: m.Username, PasswordHash: m.PasswordHash, CreatedAt: m.CreatedAt}
}
