package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/model"
)

// FetchPage runs a plain listing with the same no-data semantics as the bus
// table. list returns one page of items and the total page count.
// The error is non-nil only when ctx ends before the page is built.
func FetchPage[T any](ctx context.Context, logger *zap.Logger, page int, list func(ctx context.Context) ([]T, int, error)) (model.Page[T], error) {
	items, totalPages, err := list(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return model.NoDataPage[T](page), context.Cause(ctx)
		}
		if logger != nil {
			logger.Warn("listing failed", zap.Int("page", page), zap.Error(err))
		}
		return model.NoDataPage[T](page), nil
	}
	if items == nil {
		items = []T{}
	}
	return model.Page[T]{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}
