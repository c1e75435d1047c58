package biz

import (
	"context"

	"gorm.io/gorm"
)

type AbstractService struct {
	db *gorm.DB
}

func (a *AbstractService) dbFromContext(ctx context.Context) *gorm.DB {
	return a.db.WithContext(ctx)
}

func (a *AbstractService) RunInTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return a.db.WithContext(ctx).Transaction(fn)
}
