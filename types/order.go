package types

import (
	"encoding/json"
	"time"

	"base97/models"
)

type ShippingAddress struct {
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

type OrderLine struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Qty       int    `json:"qty" binding:"required,min=1"`
	Size      string `json:"size"`
}

type CreateOrderRequest struct {
	Items           []OrderLine     `json:"items" binding:"required,min=1,dive"`
	ShippingAddress ShippingAddress `json:"shipping_address" binding:"required"`
	PaymentMethod   string          `json:"payment_method" binding:"required"`
	ShippingPrice   float64         `json:"shipping_price" binding:"min=0"`
	AffiliateCode   string          `json:"affiliate_code"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderView 订单返回体, is_paid/is_delivered 由时间戳推导
type OrderView struct {
	ID                uint               `json:"id"`
	OrderSn           string             `json:"order_sn"`
	UserID            uint               `json:"user_id"`
	ShippingAddress   json.RawMessage    `json:"shipping_address"`
	PaymentMethod     string             `json:"payment_method"`
	ItemsPrice        float64            `json:"items_price"`
	ShippingPrice     float64            `json:"shipping_price"`
	TotalPrice        float64            `json:"total_price"`
	AffiliateCodeUsed *string            `json:"affiliate_code_used"`
	AffiliateOwnerID  *uint              `json:"affiliate_owner_id"`
	Status            string             `json:"status"`
	IsPaid            bool               `json:"is_paid"`
	PaidAt            *time.Time         `json:"paid_at"`
	IsDelivered       bool               `json:"is_delivered"`
	DeliveredAt       *time.Time         `json:"delivered_at"`
	CreatedAt         time.Time          `json:"created_at"`
	User              *models.User       `json:"user,omitempty"`
	Items             []models.OrderItem `json:"items,omitempty"`
}

func NewOrderView(o *models.Order) *OrderView {
	return &OrderView{
		ID:                o.ID,
		OrderSn:           o.OrderSn,
		UserID:            o.UserID,
		ShippingAddress:   json.RawMessage(o.ShippingAddress),
		PaymentMethod:     o.PaymentMethod,
		ItemsPrice:        o.ItemsPrice,
		ShippingPrice:     o.ShippingPrice,
		TotalPrice:        o.TotalPrice,
		AffiliateCodeUsed: o.AffiliateCodeUsed,
		AffiliateOwnerID:  o.AffiliateOwnerID,
		Status:            o.Status,
		IsPaid:            o.IsPaid(),
		PaidAt:            o.PaidAt,
		IsDelivered:       o.IsDelivered(),
		DeliveredAt:       o.DeliveredAt,
		CreatedAt:         o.CreatedAt,
		User:              o.User,
		Items:             o.Items,
	}
}
