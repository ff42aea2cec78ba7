package repository

import (
	"fmt"

	"itsupport/internal/app/ds"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB builds the repository over an existing connection. Tests use it
// with an in-memory sqlite database.
func NewWithDB(db *gorm.DB) (*Repository, error) {
	err := db.AutoMigrate(
		&ds.User{},
		&ds.ServicePlan{},
		&ds.ServiceOffering{},
		&ds.ServiceRequest{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}
