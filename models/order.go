package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	OrderStatusPending    = "Pending"
	OrderStatusPaid       = "Paid"
	OrderStatusDispatched = "Dispatched"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// orderTransitions 状态迁移表, 不在表里的迁移一律拒绝。
// 非终态允许原状态重写(重复置 Paid 幂等, 重复置 Dispatched 会重发邮件)。
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusPending, OrderStatusPaid, OrderStatusDispatched, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusPaid, OrderStatusDispatched, OrderStatusCancelled},
	OrderStatusDispatched: {OrderStatusDispatched, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

func ValidOrderStatus(status string) bool {
	_, ok := orderTransitions[status]
	return ok
}

// CanTransition 判断 from -> to 是否允许
func CanTransition(from, to string) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Order 订单主表
type Order struct {
	ID                uint           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OrderSn           string         `gorm:"size:32;not null;uniqueIndex:idx_orders_order_sn;column:order_sn" json:"order_sn"`
	UserID            uint           `gorm:"not null;index:idx_orders_user_id;column:user_id" json:"user_id"`
	ShippingAddress   datatypes.JSON `gorm:"not null;column:shipping_address" json:"shipping_address"`
	PaymentMethod     string         `gorm:"size:32;not null;column:payment_method" json:"payment_method"`
	ItemsPrice        float64        `gorm:"not null;column:items_price" json:"items_price"`
	ShippingPrice     float64        `gorm:"not null;column:shipping_price" json:"shipping_price"`
	TotalPrice        float64        `gorm:"not null;column:total_price" json:"total_price"` // 折后金额
	AffiliateCodeUsed *string        `gorm:"size:9;column:affiliate_code_used" json:"affiliate_code_used"`
	AffiliateOwnerID  *uint          `gorm:"index:idx_orders_affiliate_owner;column:affiliate_owner_id" json:"affiliate_owner_id"`
	Status            string         `gorm:"size:16;not null;default:'Pending';index:idx_orders_status;column:status" json:"status"`
	PaidAt            *time.Time     `gorm:"column:paid_at" json:"paid_at"`
	DeliveredAt       *time.Time     `gorm:"column:delivered_at" json:"delivered_at"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// IsPaid 以 paid_at 时间戳推导, 不单独存布尔列
func (o *Order) IsPaid() bool {
	return o.PaidAt != nil
}

func (o *Order) IsDelivered() bool {
	return o.DeliveredAt != nil
}

// OrderItem 订单明细, 下单时冗余成交价, 创建后不再变更
type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OrderID   uint    `gorm:"not null;index:idx_order_items_order_id;column:order_id" json:"order_id"`
	ProductID uint    `gorm:"not null;index:idx_order_items_product_id;column:product_id" json:"product_id"`
	Qty       int     `gorm:"not null;column:qty" json:"qty"`
	Price     float64 `gorm:"not null;column:price" json:"price"` // 下单时的单价快照
	Size      string  `gorm:"size:32;default:'';column:size" json:"size"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
