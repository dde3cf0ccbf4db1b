package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/Domenick1991/fanzone/internal/domain"
)

// ListInvalidator drops one cached listing.
type ListInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Invalidators drops cached listings for writes made outside Service, such as
// inventory moves in the booking ledger and hotels stored by the assistant.
// A nil *Invalidators is a no-op.
type Invalidators struct {
	caches map[domain.ItemKind]ListInvalidator
	logger *zap.Logger
}

func NewInvalidators(caches map[domain.ItemKind]ListInvalidator, logger *zap.Logger) *Invalidators {
	return &Invalidators{caches: caches, logger: logger}
}

// Invalidate drops the listings of kinds. Failures are logged.
func (i *Invalidators) Invalidate(ctx context.Context, kinds ...domain.ItemKind) {
	if i == nil {
		return
	}
	for _, kind := range kinds {
		cache, ok := i.caches[kind]
		if !ok || cache == nil {
			continue
		}
		if err := cache.Invalidate(ctx); err != nil {
			i.logger.Warn("failed to invalidate catalog cache", zap.String("kind", string(kind)), zap.Error(err))
		}
	}
}
