package service

import (
	"context"
	"encoding/json"
	"errors"

	"base97/dao"
	"base97/models"
	"base97/pkg/response"
	"base97/types"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var _ IProductService = (*ProductService)(nil)

type IProductService interface {
	List(ctx context.Context) ([]*models.Product, error)
	Get(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, req *types.CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, id uint, req *types.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
}

type ProductService struct {
	Products *dao.Products
}

func sizesJSON(sizes []string) datatypes.JSON {
	if sizes == nil {
		sizes = []string{}
	}
	raw, _ := json.Marshal(sizes)
	return datatypes.JSON(raw)
}

func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	return s.Products.ListAll(ctx)
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Products.FindById(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NotFound("Not found")
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, req *types.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Image:        req.Image,
		Category:     req.Category,
		Sizes:        sizesJSON(req.Sizes),
		CountInStock: req.CountInStock,
	}
	if err := s.Products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, req *types.UpdateProductRequest) (*models.Product, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Sizes != nil {
		updates["sizes"] = sizesJSON(req.Sizes)
	}
	if req.CountInStock != nil {
		updates["count_in_stock"] = *req.CountInStock
	}

	if err := s.Products.Updates(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.Products.Delete(ctx, id)
}
