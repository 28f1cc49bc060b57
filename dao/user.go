package dao

import (
	"context"

	"base97/models"

	"gorm.io/gorm"
)

type Users struct {
	Repo[models.User]
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{
		Repo: NewRepo[models.User](db),
	}
}

// FindByEmail 邮箱查询
func (u *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return u.Repo.FindByWhere(ctx, "email = ?", email)
}

// IsEmailExist 判断邮箱是否已注册
func (u *Users) IsEmailExist(ctx context.Context, email string) bool {
	exist, _ := u.Repo.IsExist(ctx, "email = ?", email)
	return exist
}

func (u *Users) ListAll(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := u.Db.WithContext(ctx).Order("id asc").Find(&users).Error
	return users, err
}

func (u *Users) Update(ctx context.Context, userID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return u.Db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(updates).Error
}

// EnsureAdmin 启动时补种管理员账号, 已存在则跳过
func (u *Users) EnsureAdmin(ctx context.Context, name, email, passwordHash string) error {
	admin := &models.User{
		Name:     name,
		Email:    email,
		Password: passwordHash,
		IsAdmin:  true,
	}
	return u.Db.WithContext(ctx).
		Where("email = ?", email).
		FirstOrCreate(admin).Error
}
