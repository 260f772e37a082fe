package database

import (
	"log"

	"mfgtrack/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// Migrate creates or updates the schema for every persisted model.
// order_stats_daily is included even though only an external refresh job
// writes it; this service still owns its shape.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Customer{},
		&model.Product{},
		&model.Material{},
		&model.Operation{},
		&model.Workshop{},
		&model.Equipment{},
		&model.Order{},
		&model.OrderItem{},
		&model.RouteStep{},
		&model.OperationLog{},
		&model.OrderStatusHistory{},
		&model.OrderStatsDaily{},
	)
}
