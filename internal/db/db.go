package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/chambapp/backend_chamba/internal/models"
)

// Connect opens the shared GORM handle. TranslateError lets callers match
// unique violations as gorm.ErrDuplicatedKey regardless of driver.
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
}

func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.ClientProfile{},
		&models.WorkerProfile{},
		&models.WorkerCategory{},
		&models.Category{},
	)
}
