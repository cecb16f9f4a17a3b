package directory

import (
	"context"
	"time"

	"gorm.io/gorm/clause"
)

// TenantLookupModel maps a username to the key of its backend file. It is a
// convenience index for operators; nothing reads it to route requests.
type TenantLookupModel struct {
	Username   string `gorm:"primaryKey"`
	BackendKey string `gorm:"not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (TenantLookupModel) TableName() string { return "tenant_lookup" }

// TenantEntry is one row of the lookup.
type TenantEntry struct {
	Username   string    `json:"username"`
	BackendKey string    `json:"backend_key"`
	CreatedAt  time.Time `json:"created_at"`
}

// RecordTenant inserts or refreshes the mapping for username.
func (d *Directory) RecordTenant(ctx context.Context, username, backendKey string) error {
	m := TenantLookupModel{Username: username, BackendKey: backendKey}
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"backend_key", "updated_at"}),
	}).Create(&m).Error
}

// GetBackendKey returns the recorded key for username.
func (d *Directory) GetBackendKey(ctx context.Context, username string) (string, error) {
	var m TenantLookupModel
	err := d.db.WithContext(ctx).Where("username = ?", username).First(&m).Error
	return m.BackendKey, err
}

// ListTenants returns every recorded mapping ordered by username.
func (d *Directory) ListTenants(ctx context.Context) ([]TenantEntry, error) {
	var rows []TenantLookupModel
	if err := d.db.WithContext(ctx).Order("username").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]TenantEntry, 0, len(rows))
	for _, m := range rows {
		out = append(out, TenantEntry{Username: m.Username, BackendKey: m.BackendKey, CreatedAt: m.CreatedAt})
	}
	return out, nil
}
