package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"base97/models"
	"base97/pkg/response"
	"base97/queue"
	"base97/types"
)

func newOrderService(products map[uint]*models.Product, users *fakeUsers) (*OrderService, *fakeOrders, *fakeAffiliates, *fakePublisher) {
	orders := newFakeOrders()
	affiliates := newFakeAffiliates()
	pub := &fakePublisher{}
	svc := &OrderService{
		Orders:   orders,
		Products: &fakeProducts{products: products},
		Codes:    affiliates,
		Users:    users,
		Queue:    pub,
	}
	return svc, orders, affiliates, pub
}

func testCreateOrderRequest() *types.CreateOrderRequest {
	return &types.CreateOrderRequest{
		Items: []types.OrderLine{
			{ProductID: 1, Qty: 2, Size: "M"},
			{ProductID: 2, Qty: 1},
		},
		ShippingAddress: types.ShippingAddress{
			Address:    "1 Main St",
			City:       "Lagos",
			PostalCode: "100001",
			Country:    "NG",
		},
		PaymentMethod: "COD",
		ShippingPrice: 50,
	}
}

// 商品单价 250 和 500, 两件 250 + 一件 500 = 1000
func testProducts() map[uint]*models.Product {
	return map[uint]*models.Product{
		1: {ID: 1, Name: "Shirt", Price: 250},
		2: {ID: 2, Name: "Shoes", Price: 500},
	}
}

func TestDiscount(t *testing.T) {
	if got := Discount(1050, false); got != 0 {
		t.Errorf("Discount without code = %v, want 0", got)
	}
	if got := Discount(1050, true); got != 52.5 {
		t.Errorf("Discount(1050) = %v, want 52.5", got)
	}
	if got := Discount(99.99, true); got != 5.0 {
		t.Errorf("Discount(99.99) = %v, want 5.0", got)
	}
}

func TestCreateOrderWithoutCode(t *testing.T) {
	users := newFakeUsers(&models.User{ID: 7, Name: "buyer", Email: "b@x.com"})
	svc, orders, _, pub := newOrderService(testProducts(), users)

	order, err := svc.Create(context.Background(), 7, testCreateOrderRequest())
	if err != nil {
		t.Fatal(err)
	}
	if order.ItemsPrice != 1000 {
		t.Errorf("items price = %v, want 1000", order.ItemsPrice)
	}
	if order.TotalPrice != 1050 {
		t.Errorf("total = %v, want 1050", order.TotalPrice)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("status = %s, want Pending", order.Status)
	}
	if order.AffiliateCodeUsed != nil || order.AffiliateOwnerID != nil {
		t.Error("no code was used")
	}
	if order.OrderSn == "" {
		t.Error("order sn should be assigned")
	}

	// 明细带成交价快照
	items := orders.items[order.ID]
	if len(items) != 2 {
		t.Fatalf("item count = %d", len(items))
	}
	if items[0].Price != 250 || items[1].Price != 500 {
		t.Errorf("snapshot prices = %v, %v", items[0].Price, items[1].Price)
	}

	kind, raw := pub.last()
	if kind != queue.KindOrderCreated {
		t.Fatalf("published kind = %s", kind)
	}
	var ev queue.OrderCreatedEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Discount != 0 || ev.TotalPrice != 1050 || ev.CustomerEmail != "b@x.com" {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestCreateOrderWithValidCode(t *testing.T) {
	users := newFakeUsers(
		&models.User{ID: 7, Name: "buyer", Email: "b@x.com"},
		&models.User{ID: 9, Name: "owner", Email: "o@x.com"},
	)
	svc, _, affiliates, pub := newOrderService(testProducts(), users)

	code := "ABC123XYZ"
	affiliates.requests[1] = &models.AffiliateRequest{
		ID: 1, UserID: 9, Status: models.AffiliateStatusApproved, AffiliateCode: &code,
	}

	req := testCreateOrderRequest()
	req.AffiliateCode = code
	order, err := svc.Create(context.Background(), 7, req)
	if err != nil {
		t.Fatal(err)
	}
	// 1050 * 5% = 52.5
	if order.TotalPrice != 997.5 {
		t.Errorf("total = %v, want 997.5", order.TotalPrice)
	}
	if order.AffiliateCodeUsed == nil || *order.AffiliateCodeUsed != code {
		t.Error("code should be recorded")
	}
	if order.AffiliateOwnerID == nil || *order.AffiliateOwnerID != 9 {
		t.Error("owner should be recorded")
	}

	_, raw := pub.last()
	var ev queue.OrderCreatedEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Discount != 52.5 || ev.AffiliateOwnerName != "owner" {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestCreateOrderWithInvalidCode(t *testing.T) {
	users := newFakeUsers(&models.User{ID: 7, Name: "buyer", Email: "b@x.com"})
	svc, _, _, _ := newOrderService(testProducts(), users)

	req := testCreateOrderRequest()
	req.AffiliateCode = "NOSUCHONE"
	order, err := svc.Create(context.Background(), 7, req)
	if err != nil {
		t.Fatal(err)
	}
	// 不合法的码静默忽略, 不打折但照样记录
	if order.TotalPrice != 1050 {
		t.Errorf("total = %v, want 1050", order.TotalPrice)
	}
	if order.AffiliateCodeUsed == nil || *order.AffiliateCodeUsed != "NOSUCHONE" {
		t.Error("used code is recorded even when invalid")
	}
	if order.AffiliateOwnerID != nil {
		t.Error("invalid code must not attach an owner")
	}
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	users := newFakeUsers(&models.User{ID: 7, Name: "buyer", Email: "b@x.com"})
	svc, _, _, _ := newOrderService(testProducts(), users)

	req := testCreateOrderRequest()
	req.Items = append(req.Items, types.OrderLine{ProductID: 99, Qty: 1})
	_, err := svc.Create(context.Background(), 7, req)
	var biz *response.BizError
	if !errors.As(err, &biz) || biz.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUpdateStatusLifecycle(t *testing.T) {
	users := newFakeUsers(&models.User{ID: 7, Name: "buyer", Email: "b@x.com"})
	svc, _, _, pub := newOrderService(testProducts(), users)

	order, err := svc.Create(context.Background(), 7, testCreateOrderRequest())
	if err != nil {
		t.Fatal(err)
	}

	paid, err := svc.UpdateStatus(context.Background(), order.ID, models.OrderStatusPaid)
	if err != nil {
		t.Fatal(err)
	}
	if !paid.IsPaid() || paid.Status != models.OrderStatusPaid {
		t.Fatal("paid_at should be set on first Paid")
	}
	firstPaidAt := *paid.PaidAt
	if kind, _ := pub.last(); kind != queue.KindOrderStatusChanged {
		t.Errorf("expected status event, got %s", kind)
	}
	sent := len(pub.kinds)

	// 重复置 Paid: 不动时间戳也不重发邮件
	paid, err = svc.UpdateStatus(context.Background(), order.ID, models.OrderStatusPaid)
	if err != nil {
		t.Fatal(err)
	}
	if !paid.PaidAt.Equal(firstPaidAt) {
		t.Error("paid_at must not move on repeated Paid")
	}
	if len(pub.kinds) != sent {
		t.Error("repeated Paid must not publish again")
	}

	if _, err = svc.UpdateStatus(context.Background(), order.ID, models.OrderStatusDispatched); err != nil {
		t.Fatal(err)
	}
	delivered, err := svc.UpdateStatus(context.Background(), order.ID, models.OrderStatusDelivered)
	if err != nil {
		t.Fatal(err)
	}
	if !delivered.IsDelivered() {
		t.Error("delivered_at should be set")
	}

	// 终态后任何迁移都拒绝
	_, err = svc.UpdateStatus(context.Background(), order.ID, models.OrderStatusCancelled)
	var biz *response.BizError
	if !errors.As(err, &biz) || biz.Code != http.StatusConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	users := newFakeUsers(&models.User{ID: 7, Name: "buyer", Email: "b@x.com"})
	svc, _, _, _ := newOrderService(testProducts(), users)

	_, err := svc.UpdateStatus(context.Background(), 1, "Shipped")
	var biz *response.BizError
	if !errors.As(err, &biz) || biz.Msg != "Invalid status" {
		t.Fatalf("expected invalid status, got %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), 404, models.OrderStatusPaid)
	if !errors.As(err, &biz) || biz.Code != http.StatusNotFound || biz.Msg != "Order not found" {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestCancelSkipsNotification(t *testing.T) {
	users := newFakeUsers(&models.User{ID: 7, Name: "buyer", Email: "b@x.com"})
	svc, _, _, pub := newOrderService(testProducts(), users)

	order, err := svc.Create(context.Background(), 7, testCreateOrderRequest())
	if err != nil {
		t.Fatal(err)
	}
	sent := len(pub.kinds)

	if _, err := svc.UpdateStatus(context.Background(), order.ID, models.OrderStatusCancelled); err != nil {
		t.Fatal(err)
	}
	if len(pub.kinds) != sent {
		t.Error("cancellation must not publish a status event")
	}
}

func TestGetOrderOwnership(t *testing.T) {
	users := newFakeUsers(&models.User{ID: 7, Name: "buyer", Email: "b@x.com"})
	svc, _, _, _ := newOrderService(testProducts(), users)

	order, err := svc.Create(context.Background(), 7, testCreateOrderRequest())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Get(context.Background(), order.ID, 7, false); err != nil {
		t.Errorf("owner should see own order: %v", err)
	}
	if _, err := svc.Get(context.Background(), order.ID, 8, true); err != nil {
		t.Errorf("admin should see any order: %v", err)
	}

	_, err = svc.Get(context.Background(), order.ID, 8, false)
	var biz *response.BizError
	if !errors.As(err, &biz) || biz.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}
