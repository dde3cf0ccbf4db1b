package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/Domenick1991/fanzone/internal/repository"
)

type UseCase[T domain.CatalogItem] interface {
	List(ctx context.Context, filter domain.CatalogFilter) ([]T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id int64) error
}

// Cache keeps the unfiltered listing of one variant. Get returns nil, nil on a miss.
type Cache[T any] interface {
	Get(ctx context.Context) ([]T, error)
	Set(ctx context.Context, items []T) error
	Invalidate(ctx context.Context) error
}

type Service[T domain.CatalogItem] struct {
	repo   repository.CatalogRepository[T]
	cache  Cache[T]
	logger *zap.Logger
}

// NewService builds the service for one variant. cache may be nil.
func NewService[T domain.CatalogItem](repo repository.CatalogRepository[T], cache Cache[T], logger *zap.Logger) *Service[T] {
	return &Service[T]{repo: repo, cache: cache, logger: logger}
}

func (s *Service[T]) List(ctx context.Context, filter domain.CatalogFilter) ([]T, error) {
	if !filter.IsZero() {
		return s.repo.List(ctx, filter)
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, items); err != nil {
			s.logger.Warn("failed to cache catalog listing", zap.Error(err))
		}
	}
	return items, nil
}

func (s *Service[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service[T]) Create(ctx context.Context, item *T) error {
	if err := (*item).Validate(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service[T]) Update(ctx context.Context, item *T) error {
	if err := (*item).Validate(); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service[T]) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service[T]) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate catalog cache", zap.Error(err))
	}
}

var _ UseCase[domain.Flight] = (*Service[domain.Flight])(nil)
