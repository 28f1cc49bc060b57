package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"base97/models"
	"base97/pkg/response"
	"base97/pkg/snowflake"
	"base97/queue"
	"base97/types"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// affiliateDiscountRate 推广码固定九五折
const affiliateDiscountRate = 0.05

// OrderStore dao.Orders 的能力切面
type OrderStore interface {
	CreateWithItems(ctx context.Context, order *models.Order, items []*models.OrderItem) error
	FindById(ctx context.Context, id uint) (*models.Order, error)
	FindByIDWithDetail(ctx context.Context, id uint) (*models.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Order, error)
	ListAllWithDetail(ctx context.Context) ([]*models.Order, error)
	Save(ctx context.Context, order *models.Order) error
}

// CodeRedeemer 下单时按推广码查 Approved 申请
type CodeRedeemer interface {
	FindApprovedByCode(ctx context.Context, code string) (*models.AffiliateRequest, error)
}

var _ IOrderService = (*OrderService)(nil)

type IOrderService interface {
	Create(ctx context.Context, userID uint, req *types.CreateOrderRequest) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status string) (*models.Order, error)
	Get(ctx context.Context, orderID, requesterID uint, isAdmin bool) (*models.Order, error)
	ListMine(ctx context.Context, userID uint) ([]*models.Order, error)
	ListAll(ctx context.Context) ([]*models.Order, error)
}

type OrderService struct {
	Orders   OrderStore
	Products ProductFinder
	Codes    CodeRedeemer
	Users    UserStore
	Queue    queue.Publisher
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Discount 推广折扣: 合法码按总价 5% 计, 其余一律 0
func Discount(total float64, codeValid bool) float64 {
	if !codeValid {
		return 0
	}
	return round2(total * affiliateDiscountRate)
}

func (s *OrderService) Create(ctx context.Context, userID uint, req *types.CreateOrderRequest) (*models.Order, error) {
	ids := make([]uint, 0, len(req.Items))
	for _, line := range req.Items {
		ids = append(ids, line.ProductID)
	}
	products, err := s.Products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 以库内实时价重新计价, 不信任客户端金额
	itemsPrice := 0.0
	items := make([]*models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, response.BadRequest(fmt.Sprintf("Product %d not found", line.ProductID))
		}
		itemsPrice += product.Price * float64(line.Qty)
		items = append(items, &models.OrderItem{
			ProductID: product.ID,
			Qty:       line.Qty,
			Price:     product.Price, // 成交价快照
			Size:      line.Size,
		})
	}
	itemsPrice = round2(itemsPrice)
	total := round2(itemsPrice + req.ShippingPrice)

	// 推广码兑换: 查不到或未审核通过时静默忽略, 不报错
	var affiliateOwnerID *uint
	var affiliateCodeUsed *string
	codeValid := false
	if req.AffiliateCode != "" {
		aff, err := s.Codes.FindApprovedByCode(ctx, req.AffiliateCode)
		if err == nil {
			codeValid = true
			affiliateOwnerID = &aff.UserID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		code := req.AffiliateCode
		affiliateCodeUsed = &code
	}
	discount := Discount(total, codeValid)
	finalTotal := round2(total - discount)

	address, err := json.Marshal(req.ShippingAddress)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderSn:           snowflake.GenOrderSn(),
		UserID:            userID,
		ShippingAddress:   datatypes.JSON(address),
		PaymentMethod:     req.PaymentMethod,
		ItemsPrice:        itemsPrice,
		ShippingPrice:     req.ShippingPrice,
		TotalPrice:        finalTotal,
		AffiliateCodeUsed: affiliateCodeUsed,
		AffiliateOwnerID:  affiliateOwnerID,
		Status:            models.OrderStatusPending,
	}
	if err := s.Orders.CreateWithItems(ctx, order, items); err != nil {
		return nil, err
	}

	s.publishOrderCreated(ctx, order, items, req, discount, codeValid)

	return order, nil
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order *models.Order, items []*models.OrderItem, req *types.CreateOrderRequest, discount float64, codeValid bool) {
	customer, err := s.Users.FindById(ctx, order.UserID)
	if err != nil {
		return
	}

	ev := queue.OrderCreatedEvent{
		OrderID:       order.ID,
		OrderSn:       order.OrderSn,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		ItemsPrice:    order.ItemsPrice,
		ShippingPrice: order.ShippingPrice,
		Discount:      discount,
		TotalPrice:    order.TotalPrice,
		Address:       req.ShippingAddress.Address,
		City:          req.ShippingAddress.City,
		PostalCode:    req.ShippingAddress.PostalCode,
		Country:       req.ShippingAddress.Country,
		PaymentMethod: order.PaymentMethod,
	}
	for _, item := range items {
		ev.Items = append(ev.Items, queue.OrderLineSnapshot{
			ProductID: item.ProductID,
			Qty:       item.Qty,
			Price:     item.Price,
			Size:      item.Size,
		})
	}
	if codeValid && order.AffiliateOwnerID != nil {
		ev.AffiliateCode = req.AffiliateCode
		ev.AffiliateOwnerID = *order.AffiliateOwnerID
		if owner, err := s.Users.FindById(ctx, *order.AffiliateOwnerID); err == nil {
			ev.AffiliateOwnerName = owner.Name
		}
	}
	_ = s.Queue.Publish(ctx, queue.KindOrderCreated, ev)
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, response.BadRequest("Invalid status")
	}

	order, err := s.Orders.FindById(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NotFound("Order not found")
		}
		return nil, err
	}

	if !models.CanTransition(order.Status, status) {
		return nil, response.Conflict(fmt.Sprintf("Cannot change status from %s to %s", order.Status, status))
	}

	firstPaid := status == models.OrderStatusPaid && !order.IsPaid()
	firstDelivered := status == models.OrderStatusDelivered && !order.IsDelivered()

	order.Status = status
	now := time.Now()
	if firstPaid {
		order.PaidAt = &now
	}
	if firstDelivered {
		order.DeliveredAt = &now
	}
	if err := s.Orders.Save(ctx, order); err != nil {
		return nil, err
	}

	// 首次支付发确认邮件; 每次置 Dispatched 都发发货邮件
	if firstPaid || status == models.OrderStatusDispatched {
		if customer, err := s.Users.FindById(ctx, order.UserID); err == nil {
			_ = s.Queue.Publish(ctx, queue.KindOrderStatusChanged, queue.OrderStatusChangedEvent{
				OrderID:       order.ID,
				Status:        status,
				CustomerName:  customer.Name,
				CustomerEmail: customer.Email,
			})
		}
	}

	return order, nil
}

func (s *OrderService) Get(ctx context.Context, orderID, requesterID uint, isAdmin bool) (*models.Order, error) {
	order, err := s.Orders.FindByIDWithDetail(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NotFound("Order not found")
		}
		return nil, err
	}
	if !isAdmin && order.UserID != requesterID {
		return nil, response.Forbidden("Not authorized to view this order")
	}
	return order, nil
}

func (s *OrderService) ListMine(ctx context.Context, userID uint) ([]*models.Order, error) {
	return s.Orders.ListByUser(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]*models.Order, error) {
	return s.Orders.ListAllWithDetail(ctx)
}
