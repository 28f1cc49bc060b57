package service

import (
	"context"
	"time"

	"base97/dao"
	"base97/models"
	"base97/types"
)

var _ IAdminService = (*AdminService)(nil)

type IAdminService interface {
	DashboardMetrics(ctx context.Context) (*types.DashboardMetrics, error)
	ListUsers(ctx context.Context) ([]types.UserWithUsage, error)
}

// AdminService 后台只读聚合, 直接依赖 dao 的统计查询
type AdminService struct {
	Orders *dao.Orders
	Users  *dao.Users
}

func (s *AdminService) DashboardMetrics(ctx context.Context) (*types.DashboardMetrics, error) {
	metrics := &types.DashboardMetrics{}

	var err error
	if metrics.Total, err = s.Orders.CountAll(ctx); err != nil {
		return nil, err
	}
	statuses := []struct {
		name string
		dst  *int64
	}{
		{models.OrderStatusPending, &metrics.Pending},
		{models.OrderStatusPaid, &metrics.Paid},
		{models.OrderStatusDispatched, &metrics.Dispatched},
		{models.OrderStatusDelivered, &metrics.Delivered},
		{models.OrderStatusCancelled, &metrics.Cancelled},
	}
	for _, st := range statuses {
		if *st.dst, err = s.Orders.CountByStatus(ctx, st.name); err != nil {
			return nil, err
		}
	}

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	if metrics.Sales, err = s.Orders.SalesSince(ctx, thirtyDaysAgo); err != nil {
		return nil, err
	}

	if metrics.TopProducts, err = s.Orders.TopProducts(ctx, 10); err != nil {
		return nil, err
	}

	return metrics, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]types.UserWithUsage, error) {
	users, err := s.Users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	usage, err := s.Orders.AffiliateUsage(ctx)
	if err != nil {
		return nil, err
	}
	return MergeAffiliateUsage(users, usage), nil
}

// MergeAffiliateUsage 把推广使用次数并进用户列表
func MergeAffiliateUsage(users []*models.User, usage map[uint]int64) []types.UserWithUsage {
	result := make([]types.UserWithUsage, 0, len(users))
	for _, u := range users {
		result = append(result, types.UserWithUsage{
			ID:                u.ID,
			Name:              u.Name,
			Email:             u.Email,
			IsAdmin:           u.IsAdmin,
			CreatedAt:         u.CreatedAt,
			UpdatedAt:         u.UpdatedAt,
			AffiliateUseCount: usage[u.ID],
		})
	}
	return result
}
