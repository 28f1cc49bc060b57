package models

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPending, OrderStatusDispatched, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusPaid, OrderStatusDispatched, true},
		{OrderStatusPaid, OrderStatusPending, false},
		{OrderStatusPaid, OrderStatusDelivered, false},
		{OrderStatusDispatched, OrderStatusDelivered, true},
		{OrderStatusDispatched, OrderStatusCancelled, true},
		{OrderStatusDispatched, OrderStatusPaid, false},
		// 终态不允许任何迁移
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusDelivered, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusCancelled, false},
		// 非终态允许原状态重写
		{OrderStatusPending, OrderStatusPending, true},
		{OrderStatusPaid, OrderStatusPaid, true},
		{OrderStatusDispatched, OrderStatusDispatched, true},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []string{OrderStatusPending, OrderStatusPaid, OrderStatusDispatched, OrderStatusDelivered, OrderStatusCancelled} {
		if !ValidOrderStatus(s) {
			t.Errorf("ValidOrderStatus(%s) = false", s)
		}
	}
	for _, s := range []string{"", "paid", "Shipped", "Done"} {
		if ValidOrderStatus(s) {
			t.Errorf("ValidOrderStatus(%q) = true", s)
		}
	}
}

func TestOrderDerivedFlags(t *testing.T) {
	o := &Order{}
	if o.IsPaid() || o.IsDelivered() {
		t.Fatal("new order should not be paid or delivered")
	}

	now := time.Now()
	o.PaidAt = &now
	if !o.IsPaid() {
		t.Error("order with paid_at should be paid")
	}
	if o.IsDelivered() {
		t.Error("order without delivered_at should not be delivered")
	}

	o.DeliveredAt = &now
	if !o.IsDelivered() {
		t.Error("order with delivered_at should be delivered")
	}
}
