package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/mech-ai/internal/domain/servicerecord"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func reposFor(db *gorm.DB) domain.Repositories {
	return domain.Repositories{
		Clients: NewClientGormRepository(db),
		Cars:    NewCarGormRepository(db),
		Records: NewServiceRecordGormRepository(db),
	}
}

func (s *GormStore) Repositories() domain.Repositories {
	return reposFor(s.db)
}

func (s *GormStore) WithinTransaction(
	ctx context.Context,
	fn func(tx domain.Repositories) error,
) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (s *GormStore) Refresh(ctx context.Context, entities ...any) error {
	for _, e := range entities {
		if err := s.db.WithContext(ctx).First(e).Error; err != nil {
			return fmt.Errorf("refresh %T: %w", e, err)
		}
	}
	return nil
}

// Compile-time check
var _ domain.Store = (*GormStore)(nil)
