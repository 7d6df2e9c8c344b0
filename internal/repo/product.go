package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/product_service/internal/models"
	"github.com/Skotchmaster/product_service/internal/transport"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProducts returns the total row count and one page ordered by id.
// A negative limit returns every row from offset on.
func (r *GormRepo) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return nil, err
	}
	return prod, nil
}

func (r *GormRepo) PatchProduct(ctx context.Context, id uint, fields transport.ProductFields) (*models.Product, error) {
	var prod models.Product
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&prod, id).Error; err != nil {
			return err
		}
		fields.ApplyTo(&prod)
		return tx.Save(&prod).Error
	})
	if err != nil {
		return nil, err
	}
	return &prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
