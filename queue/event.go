package queue

import "encoding/json"

// EmailQueue 所有通知邮件走同一条持久化队列
const EmailQueue = "notify.email"

const (
	KindUserRegistered     = "user.registered"
	KindReviewCreated      = "review.created"
	KindAffiliateApproved  = "affiliate.approved"
	KindAffiliateRejected  = "affiliate.rejected"
	KindOrderCreated       = "order.created"
	KindOrderStatusChanged = "order.status_changed"
)

// Envelope 队列消息外壳, payload 按 kind 解码
type Envelope struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

type UserRegisteredEvent struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

type ReviewCreatedEvent struct {
	UserID      uint   `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
}

type AffiliateApprovedEvent struct {
	RequestID uint   `json:"request_id"`
	UserID    uint   `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Code      string `json:"code"`
}

type AffiliateRejectedEvent struct {
	RequestID uint   `json:"request_id"`
	UserID    uint   `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

type OrderLineSnapshot struct {
	ProductID uint    `json:"product_id"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
	Size      string  `json:"size"`
}

type OrderCreatedEvent struct {
	OrderID            uint                `json:"order_id"`
	OrderSn            string              `json:"order_sn"`
	CustomerName       string              `json:"customer_name"`
	CustomerEmail      string              `json:"customer_email"`
	Items              []OrderLineSnapshot `json:"items"`
	ItemsPrice         float64             `json:"items_price"`
	ShippingPrice      float64             `json:"shipping_price"`
	Discount           float64             `json:"discount"`
	TotalPrice         float64             `json:"total_price"`
	AffiliateCode      string              `json:"affiliate_code,omitempty"`
	AffiliateOwnerID   uint                `json:"affiliate_owner_id,omitempty"`
	AffiliateOwnerName string              `json:"affiliate_owner_name,omitempty"`
	Address            string              `json:"address"`
	City               string              `json:"city"`
	PostalCode         string              `json:"postal_code"`
	Country            string              `json:"country"`
	PaymentMethod      string              `json:"payment_method"`
}

type OrderStatusChangedEvent struct {
	OrderID       uint   `json:"order_id"`
	Status        string `json:"status"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}
