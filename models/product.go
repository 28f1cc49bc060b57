package models

import (
	"time"

	"gorm.io/datatypes"
)

// Product 对应 products 表, sizes 以 JSON 数组存储
type Product struct {
	ID           uint           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name         string         `gorm:"size:255;not null;column:name" json:"name"`
	Description  string         `gorm:"type:text;column:description" json:"description"`
	Price        float64        `gorm:"not null;column:price" json:"price"`
	Image        string         `gorm:"size:512;default:'';column:image" json:"image"`
	Category     string         `gorm:"size:128;column:category" json:"category"`
	Sizes        datatypes.JSON `gorm:"column:sizes" json:"sizes"` // 尺码标签数组, 例如 ["S","M","L"]
	CountInStock int            `gorm:"default:0;not null;column:count_in_stock" json:"count_in_stock"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
