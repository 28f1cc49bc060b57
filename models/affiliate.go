package models

import (
	"time"
)

const (
	AffiliateStatusPending  = "Pending"
	AffiliateStatusApproved = "Approved"
	AffiliateStatusRejected = "Rejected"
)

// AffiliateRequest 推广申请, Pending 一次性流转到 Approved/Rejected
type AffiliateRequest struct {
	ID            uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID        uint      `gorm:"not null;index:idx_affiliate_user_id;column:user_id" json:"user_id"`
	Status        string    `gorm:"size:16;not null;default:'Pending';column:status" json:"status"`
	AffiliateCode *string   `gorm:"size:9;uniqueIndex:idx_affiliate_code;column:affiliate_code" json:"affiliate_code"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AffiliateRequest) TableName() string {
	return "affiliate_requests"
}

func (r *AffiliateRequest) IsPending() bool {
	return r.Status == AffiliateStatusPending
}
