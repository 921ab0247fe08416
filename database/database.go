package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"linkup/models"
)

// New opens a postgres-backed gorm connection. TranslateError lets
// repositories detect unique-constraint violations portably.
func New(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates the schema. Join tables are registered explicitly so the
// follow and like edges keep their composite primary keys.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.User{}, "Followers", &models.Follow{}); err != nil {
		return fmt.Errorf("failed to set up followers join table: %w", err)
	}
	if err := db.SetupJoinTable(&models.User{}, "Following", &models.Follow{}); err != nil {
		return fmt.Errorf("failed to set up following join table: %w", err)
	}
	if err := db.SetupJoinTable(&models.Post{}, "Likes", &models.PostLike{}); err != nil {
		return fmt.Errorf("failed to set up likes join table: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
