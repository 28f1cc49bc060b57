package dao

import (
	"context"

	"base97/models"

	"gorm.io/gorm"
)

type Reviews struct {
	Repo[models.Review]
}

func NewReviews(db *gorm.DB) *Reviews {
	return &Reviews{
		Repo: NewRepo[models.Review](db),
	}
}

func (r *Reviews) ListByProduct(ctx context.Context, productID uint) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.Db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at desc").
		Find(&reviews).Error
	return reviews, err
}

// CountByUser 推广资格检查用: 用户历史评价总数
func (r *Reviews) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.Db.WithContext(ctx).
		Model(&models.Review{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *Reviews) ListAllWithRefs(ctx context.Context) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.Db.WithContext(ctx).
		Preload("User").
		Preload("Product").
		Order("created_at desc").
		Find(&reviews).Error
	return reviews, err
}
