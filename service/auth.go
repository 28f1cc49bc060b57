package service

import (
	"context"
	"errors"
	"time"

	"base97/config"
	"base97/models"
	"base97/pkg/encrypt"
	"base97/pkg/jwt"
	"base97/pkg/response"
	"base97/queue"
	"base97/types"

	"gorm.io/gorm"
)

// UserStore dao.Users 提供的能力, 拆成接口便于测试
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindById(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	IsEmailExist(ctx context.Context, email string) bool
	Update(ctx context.Context, userID uint, updates map[string]interface{}) error
}

var _ IAuthService = (*AuthService)(nil)

type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResponse, error)
	Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResponse, error)
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, req *types.UpdateProfileRequest) (*types.AuthResponse, error)
}

type AuthService struct {
	Config *config.Config
	Users  UserStore
	Queue  queue.Publisher
}

func (s *AuthService) token(user *models.User) (string, error) {
	expire := time.Duration(s.Config.Jwt.ExpireDays) * 24 * time.Hour
	return jwt.GenerateToken([]byte(s.Config.Jwt.Secret), user.ID, user.IsAdmin, expire)
}

func (s *AuthService) authResponse(user *models.User) (*types.AuthResponse, error) {
	token, err := s.token(user)
	if err != nil {
		return nil, err
	}
	return &types.AuthResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		Token:   token,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResponse, error) {
	if s.Users.IsEmailExist(ctx, req.Email) {
		return nil, response.BadRequest("Email already in use")
	}

	hashed, err := encrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Contact:  req.Contact,
		Password: hashed,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	// 欢迎邮件, 发布失败不影响注册
	_ = s.Queue.Publish(ctx, queue.KindUserRegistered, queue.UserRegisteredEvent{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	})

	return s.authResponse(user)
}

func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResponse, error) {
	user, err := s.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	if !encrypt.VerifyPassword(user.Password, req.Password) {
		return nil, response.Unauthorized("Invalid credentials")
	}

	return s.authResponse(user)
}

func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Users.FindById(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, req *types.UpdateProfileRequest) (*types.AuthResponse, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" && req.Email != user.Email {
		if s.Users.IsEmailExist(ctx, req.Email) {
			return nil, response.BadRequest("Email already in use")
		}
		updates["email"] = req.Email
	}
	if req.Contact != "" {
		updates["contact"] = req.Contact
	}
	if req.Password != "" {
		hashed, err := encrypt.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hashed
	}

	if err := s.Users.Update(ctx, userID, updates); err != nil {
		return nil, err
	}

	user, err = s.Users.FindById(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.authResponse(user)
}
