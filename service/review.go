package service

import (
	"context"
	"errors"

	"base97/models"
	"base97/pkg/response"
	"base97/queue"
	"base97/types"

	"gorm.io/gorm"
)

// ReviewStore dao.Reviews 的能力切面
type ReviewStore interface {
	Create(ctx context.Context, review *models.Review) error
	FindById(ctx context.Context, id uint) (*models.Review, error)
	Delete(ctx context.Context, id uint) error
	ListByProduct(ctx context.Context, productID uint) ([]*models.Review, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	ListAllWithRefs(ctx context.Context) ([]*models.Review, error)
}

// ProductFinder 评价与下单都要按 ID 取商品
type ProductFinder interface {
	FindById(ctx context.Context, id uint) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*models.Product, error)
}

var _ IReviewService = (*ReviewService)(nil)

type IReviewService interface {
	Create(ctx context.Context, userID uint, req *types.CreateReviewRequest) (*models.Review, error)
	ListByProduct(ctx context.Context, productID uint) ([]*models.Review, error)
	ListAll(ctx context.Context) ([]*models.Review, error)
	Delete(ctx context.Context, id uint) error
}

type ReviewService struct {
	Reviews  ReviewStore
	Products ProductFinder
	Users    UserStore
	Queue    queue.Publisher
}

func (s *ReviewService) Create(ctx context.Context, userID uint, req *types.CreateReviewRequest) (*models.Review, error) {
	product, err := s.Products.FindById(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NotFound("Product not found")
		}
		return nil, err
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.Reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	// 每次评价都发致谢邮件, 与推广资格提示一起
	if user, err := s.Users.FindById(ctx, userID); err == nil {
		_ = s.Queue.Publish(ctx, queue.KindReviewCreated, queue.ReviewCreatedEvent{
			UserID:      user.ID,
			Name:        user.Name,
			Email:       user.Email,
			ProductID:   product.ID,
			ProductName: product.Name,
		})
	}

	return review, nil
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID uint) ([]*models.Review, error) {
	return s.Reviews.ListByProduct(ctx, productID)
}

func (s *ReviewService) ListAll(ctx context.Context) ([]*models.Review, error) {
	return s.Reviews.ListAllWithRefs(ctx)
}

func (s *ReviewService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Reviews.FindById(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound("Not found")
		}
		return err
	}
	return s.Reviews.Delete(ctx, id)
}
