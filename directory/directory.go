// Package directory is the process-wide SQLite store shared by all tenants:
// registered users and the advisory username -> backend key lookup.
package directory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Directory is the shared users and tenant lookup store. It is safe for
// concurrent use.
type Directory struct {
	db *gorm.DB
}

// Open opens (creating if absent) the directory database at path and
// migrates its tables.
func Open(ctx context.Context, path string, log *zap.Logger) (*Directory, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create directory dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open directory %s: %w", path, err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&UserModel{}, &TenantLookupModel{}); err != nil {
		return nil, fmt.Errorf("migrate directory: %w", err)
	}

	log.Debug("directory ready", zap.String("path", path))
	return &Directory{db: db}, nil
}

// Close releases the underlying connection pool.
func (d *Directory) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the database answers.
func (d *Directory) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
