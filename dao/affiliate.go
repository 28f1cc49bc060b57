package dao

import (
	"context"
	"errors"

	"base97/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrPendingExists 同一用户已有待审核申请
var ErrPendingExists = errors.New("pending affiliate request exists")

type AffiliateRequests struct {
	Repo[models.AffiliateRequest]
}

func NewAffiliateRequests(db *gorm.DB) *AffiliateRequests {
	return &AffiliateRequests{
		Repo: NewRepo[models.AffiliateRequest](db),
	}
}

// CreatePending 在事务内加锁检查后写入, 防止双击提交出现两条 Pending。
// MySQL 没有部分唯一索引, 这里用 SELECT ... FOR UPDATE 顶替。
func (a *AffiliateRequests) CreatePending(ctx context.Context, userID uint) (*models.AffiliateRequest, error) {
	req := &models.AffiliateRequest{
		UserID: userID,
		Status: models.AffiliateStatusPending,
	}
	err := a.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Model(&models.AffiliateRequest{}).
			Where("user_id = ? AND status = ?", userID, models.AffiliateStatusPending).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrPendingExists
		}
		return tx.Create(req).Error
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (a *AffiliateRequests) ListWithUsers(ctx context.Context) ([]*models.AffiliateRequest, error) {
	var requests []*models.AffiliateRequest
	err := a.Db.WithContext(ctx).
		Preload("User").
		Order("created_at desc").
		Find(&requests).Error
	return requests, err
}

// FindApprovedByCode 下单折扣兑换查询, 找不到返回 gorm.ErrRecordNotFound
func (a *AffiliateRequests) FindApprovedByCode(ctx context.Context, code string) (*models.AffiliateRequest, error) {
	return a.Repo.FindByWhere(ctx, "affiliate_code = ? AND status = ?", code, models.AffiliateStatusApproved)
}

// SetApproved 写入推广码并置 Approved。affiliate_code 有唯一索引,
// 撞码时返回 gorm.ErrDuplicatedKey, 由上层重新生成。
func (a *AffiliateRequests) SetApproved(ctx context.Context, req *models.AffiliateRequest, code string) error {
	return a.Db.WithContext(ctx).
		Model(req).
		Updates(map[string]interface{}{
			"status":         models.AffiliateStatusApproved,
			"affiliate_code": code,
		}).Error
}

func (a *AffiliateRequests) SetRejected(ctx context.Context, req *models.AffiliateRequest) error {
	return a.Db.WithContext(ctx).
		Model(req).
		Update("status", models.AffiliateStatusRejected).Error
}
