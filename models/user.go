package models

import (
	"time"
)

// User 顾客与管理员共用一张表, is_admin 区分
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name      string    `gorm:"size:255;not null;column:name" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:idx_users_email;column:email" json:"email"`
	Password  string    `gorm:"size:255;not null;column:password" json:"-"`
	Contact   string    `gorm:"size:64;column:contact" json:"contact"`
	IsAdmin   bool      `gorm:"not null;default:false;column:is_admin" json:"is_admin"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
