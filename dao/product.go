package dao

import (
	"context"

	"base97/models"

	"gorm.io/gorm"
)

type Products struct {
	Repo[models.Product]
}

func NewProducts(db *gorm.DB) *Products {
	return &Products{
		Repo: NewRepo[models.Product](db),
	}
}

func (p *Products) ListAll(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	err := p.Db.WithContext(ctx).Order("id asc").Find(&products).Error
	return products, err
}

// FindByIDs 下单重新计价时批量取商品
func (p *Products) FindByIDs(ctx context.Context, ids []uint) (map[uint]*models.Product, error) {
	var products []*models.Product
	if err := p.Db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	m := make(map[uint]*models.Product, len(products))
	for _, prod := range products {
		m[prod.ID] = prod
	}
	return m, nil
}

func (p *Products) Updates(ctx context.Context, productID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return p.Db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(updates).Error
}
