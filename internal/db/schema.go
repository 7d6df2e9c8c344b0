package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/product_service/internal/models"
)

func CreateSchema(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

func DropSchema(ctx context.Context, db *gorm.DB) error {
	tables := models.All()
	for i := len(tables) - 1; i >= 0; i-- {
		if err := db.WithContext(ctx).Migrator().DropTable(tables[i]); err != nil {
			return fmt.Errorf("drop tables: %w", err)
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

// SampleProducts are the rows inserted by Seed.
func SampleProducts() []models.Product {
	return []models.Product{
		{
			Name:        ptr("Product 1"),
			Description: ptr("This is product 1"),
			Price:       ptr(12.99),
			Stock:       ptr(5),
		},
		{
			Name:  ptr("Product 2"),
			Price: ptr(15.0),
			Stock: ptr(0),
		},
	}
}

func Seed(ctx context.Context, db *gorm.DB) ([]models.Product, error) {
	products := SampleProducts()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&products).Error
	})
	if err != nil {
		return nil, fmt.Errorf("seed tables: %w", err)
	}
	return products, nil
}
