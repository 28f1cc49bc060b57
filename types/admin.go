package types

import (
	"time"
)

// DashboardMetrics 后台看板聚合, 每次请求实时计算
type DashboardMetrics struct {
	Total       int64        `json:"total"`
	Pending     int64        `json:"pending"`
	Paid        int64        `json:"paid"`
	Dispatched  int64        `json:"dispatched"`
	Delivered   int64        `json:"delivered"`
	Cancelled   int64        `json:"cancelled"`
	Sales       []DailySales `json:"sales"`
	TopProducts []TopProduct `json:"top_products"`
}

type DailySales struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
}

type TopProduct struct {
	ProductID uint  `json:"product_id"`
	TotalQty  int64 `json:"total_qty"`
}

// UserWithUsage 用户列表附带推广码使用次数
type UserWithUsage struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	IsAdmin           bool      `json:"is_admin"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	AffiliateUseCount int64     `json:"affiliate_use_count"`
}
