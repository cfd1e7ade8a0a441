package postgres

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"filmorate/pkg/logger"
)

const filePrefix = "file://"

// Константы для сообщений об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrResolveMigrationsPath   = "failed to resolve migrations path"
)

// MigrateDSN выполняет миграции базы данных из указанного каталога.
// Относительный путь разрешается от рабочего каталога процесса.
func MigrateDSN(ctx context.Context, dsn string, migrationsDir string) error {
	log := logger.Log(ctx)

	migrationsPath := migrationsDir
	if !strings.Contains(migrationsPath, "://") {
		if !filepath.IsAbs(migrationsPath) {
			absPath, err := filepath.Abs(migrationsPath)
			if err != nil {
				return fmt.Errorf("%s: %w", ErrResolveMigrationsPath, err)
			}
			migrationsPath = absPath
		}
		migrationsPath = filePrefix + migrationsPath
	}

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err), zap.String("path", migrationsPath))
		return fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error(ctx, ErrApplyMigrations, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	log.Info(ctx, LogMigrationsApplied)
	return nil
}
