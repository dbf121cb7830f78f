package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/models"
)

// Models lists every persisted model in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Recipe{},
	}
}

// RunMigrations brings the schema up to date with the models.
func RunMigrations(db *gorm.DB, logger *zap.Logger) error {
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
	}
	logger.Info("database schema is up to date", zap.String("driver", db.Dialector.Name()))
	return nil
}
