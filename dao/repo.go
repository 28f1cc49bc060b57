package dao

import (
	"context"

	"gorm.io/gorm"
)

// Repo 泛型基础仓储, 各实体 DAO 内嵌使用
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

func (r Repo[T]) Create(ctx context.Context, m *T) error {
	return r.Db.WithContext(ctx).Create(m).Error
}

func (r Repo[T]) FindById(ctx context.Context, id uint) (*T, error) {
	var m T
	if err := r.Db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	var m T
	if err := r.Db.WithContext(ctx).Where(where, args...).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r Repo[T]) IsExist(ctx context.Context, where string, args ...any) (bool, error) {
	var count int64
	var m T
	err := r.Db.WithContext(ctx).Model(&m).Where(where, args...).Count(&count).Error
	return count > 0, err
}

func (r Repo[T]) Save(ctx context.Context, m *T) error {
	return r.Db.WithContext(ctx).Save(m).Error
}

func (r Repo[T]) Delete(ctx context.Context, id uint) error {
	var m T
	return r.Db.WithContext(ctx).Delete(&m, id).Error
}
