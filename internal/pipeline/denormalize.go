// Package pipeline turns pages of raw bus records into display rows.
package pipeline

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/model"
	"github.com/Sapuran-Berperan/bus-admin-backend/internal/upstream"
)

// BusSource lists buses and resolves their foreign keys to names
type BusSource interface {
	ListBuses(ctx context.Context, q model.ListQuery) (*upstream.BusListing, error)
	GetOwnerName(ctx context.Context, ownerID string) (string, error)
	GetCityName(ctx context.Context, cityID string) (string, error)
}

// BusPipeline builds denormalized pages of the bus table
type BusPipeline struct {
	source      BusSource
	logger      *zap.Logger
	concurrency int
}

// NewBusPipeline creates a new BusPipeline. concurrency caps the in-flight
// lookups of one page; 0 or less means no cap.
func NewBusPipeline(source BusSource, logger *zap.Logger, concurrency int) *BusPipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BusPipeline{
		source:      source,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Fetch lists one page of buses and resolves the owner, source, destination
// and rest stop names of every row. All lookups of the page run concurrently
// and the page is assembled once every one of them has settled.
//
// A failed listing yields a no-data page. A failed lookup yields the field's
// sentinel. The error is non-nil only when ctx ends before the page is assembled.
func (p *BusPipeline) Fetch(ctx context.Context, q model.ListQuery) (model.BusPage, error) {
	listing, err := p.source.ListBuses(ctx, q)
	if err != nil {
		if ctx.Err() != nil {
			return model.NoDataPage[model.DenormalizedBusRow](q.Page), context.Cause(ctx)
		}
		p.logger.Warn("bus listing failed", zap.Int("page", q.Page), zap.Error(err))
		return model.NoDataPage[model.DenormalizedBusRow](q.Page), nil
	}

	rows := make([]model.DenormalizedBusRow, len(listing.Buses))
	var g errgroup.Group
	if p.concurrency > 0 {
		g.SetLimit(p.concurrency)
	}

	for i, bus := range listing.Buses {
		row := &rows[i]
		row.BusRecord = bus
		row.RestStopsCities = make([]string, len(bus.RestStops))

		g.Go(func() error {
			row.OwnerName = p.resolve(ctx, p.source.GetOwnerName, bus.OwnerID, model.UnknownOwner, "owner")
			return nil
		})
		g.Go(func() error {
			row.SourceCity = p.resolve(ctx, p.source.GetCityName, bus.Source, model.UnknownCity, "source")
			return nil
		})
		g.Go(func() error {
			row.DestinationCity = p.resolve(ctx, p.source.GetCityName, bus.Destination, model.UnknownCity, "destination")
			return nil
		})
		for j, stopID := range bus.RestStops {
			g.Go(func() error {
				row.RestStopsCities[j] = p.resolve(ctx, p.source.GetCityName, stopID, model.UnknownCity, "rest_stop")
				return nil
			})
		}
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		return model.NoDataPage[model.DenormalizedBusRow](q.Page), context.Cause(ctx)
	}

	return model.BusPage{
		Items:      rows,
		Page:       q.Page,
		TotalPages: listing.TotalPages,
	}, nil
}

type lookupFunc func(ctx context.Context, id string) (string, error)

// resolve runs one lookup, substituting sentinel when it yields no name
func (p *BusPipeline) resolve(ctx context.Context, lookup lookupFunc, id, sentinel, field string) string {
	if id == "" {
		return sentinel
	}
	name, err := lookup(ctx, id)
	if err != nil || name == "" {
		p.logger.Debug("lookup fell back to sentinel",
			zap.String("field", field),
			zap.String("id", id),
			zap.Error(err))
		return sentinel
	}
	return name
}
