package dao

import (
	"context"
	"time"

	"base97/models"
	"base97/types"

	"gorm.io/gorm"
)

type Orders struct {
	Repo[models.Order]
}

func NewOrders(db *gorm.DB) *Orders {
	return &Orders{
		Repo: NewRepo[models.Order](db),
	}
}

// CreateWithItems 订单头和明细在同一事务写入, 避免出现无明细的孤儿订单
func (o *Orders) CreateWithItems(ctx context.Context, order *models.Order, items []*models.OrderItem) error {
	return o.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for _, item := range items {
			item.OrderID = order.ID
		}
		return tx.Create(&items).Error
	})
}

func (o *Orders) FindByIDWithDetail(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	err := o.Db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("User").
		First(&order, orderID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (o *Orders) ListByUser(ctx context.Context, userID uint) ([]*models.Order, error) {
	var orders []*models.Order
	err := o.Db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

func (o *Orders) ListAllWithDetail(ctx context.Context) ([]*models.Order, error) {
	var orders []*models.Order
	err := o.Db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("User").
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

func (o *Orders) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := o.Db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error
	return count, err
}

func (o *Orders) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := o.Db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// SalesSince 按天汇总折后销售额, 升序
func (o *Orders) SalesSince(ctx context.Context, since time.Time) ([]types.DailySales, error) {
	var rows []types.DailySales
	err := o.Db.WithContext(ctx).
		Model(&models.Order{}).
		Select("DATE(created_at) AS date, SUM(total_price) AS sales").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}

// TopProducts 销量前 N 的商品, 裸 SQL 聚合
func (o *Orders) TopProducts(ctx context.Context, limit int) ([]types.TopProduct, error) {
	var rows []types.TopProduct
	err := o.Db.WithContext(ctx).Raw(`
		SELECT oi.product_id, SUM(oi.qty) AS total_qty
		FROM order_items oi
		GROUP BY oi.product_id
		ORDER BY total_qty DESC
		LIMIT ?`, limit).Scan(&rows).Error
	return rows, err
}

// AffiliateUsage 每个推广码归属人被使用的订单数
func (o *Orders) AffiliateUsage(ctx context.Context) (map[uint]int64, error) {
	var rows []struct {
		AffiliateOwnerID uint  `gorm:"column:affiliate_owner_id"`
		UseCount         int64 `gorm:"column:use_count"`
	}
	err := o.Db.WithContext(ctx).
		Model(&models.Order{}).
		Select("affiliate_owner_id, COUNT(id) AS use_count").
		Where("affiliate_owner_id IS NOT NULL").
		Group("affiliate_owner_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	usage := make(map[uint]int64, len(rows))
	for _, row := range rows {
		usage[row.AffiliateOwnerID] = row.UseCount
	}
	return usage, nil
}
