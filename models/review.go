package models

import (
	"time"
)

// Review 商品评价, 同一用户可对同一商品重复评价
type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_reviews_user_id;column:user_id" json:"user_id"`
	ProductID uint      `gorm:"not null;index:idx_reviews_product_id;column:product_id" json:"product_id"`
	Rating    int       `gorm:"not null;column:rating" json:"rating"` // 1..5
	Comment   string    `gorm:"type:text;column:comment" json:"comment"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
