package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/Domenick1991/fanzone/internal/repository"
)

// Items is a priced set of catalog rows across the four variants.
type Items struct {
	Flights      []domain.Flight
	Hotels       []domain.Hotel
	MatchTickets []domain.MatchTicket
	Activities   []domain.Activity
}

// Total sums unit prices. A hotel contributes its nightly price once.
func (it *Items) Total() int64 {
	var total int64
	for _, f := range it.Flights {
		total += f.UnitPriceCents()
	}
	for _, h := range it.Hotels {
		total += h.UnitPriceCents()
	}
	for _, m := range it.MatchTickets {
		total += m.UnitPriceCents()
	}
	for _, a := range it.Activities {
		total += a.UnitPriceCents()
	}
	return total
}

func (it *Items) IsEmpty() bool {
	return len(it.Flights) == 0 && len(it.Hotels) == 0 && len(it.MatchTickets) == 0 && len(it.Activities) == 0
}

// Selection returns the ids of every gathered row.
func (it *Items) Selection() domain.Selection {
	return domain.Selection{
		FlightIDs:      ids(it.Flights),
		HotelIDs:       ids(it.Hotels),
		MatchTicketIDs: ids(it.MatchTickets),
		ActivityIDs:    ids(it.Activities),
	}
}

func ids[T domain.CatalogItem](items []T) []int64 {
	if len(items) == 0 {
		return nil
	}
	out := make([]int64, len(items))
	for i, item := range items {
		out[i] = item.ItemID()
	}
	return out
}

// Repositories groups the four variant stores.
type Repositories struct {
	Flights      repository.FlightRepository
	Hotels       repository.CatalogRepository[domain.Hotel]
	MatchTickets repository.MatchTicketRepository
	Activities   repository.ActivityRepository
}

// Load fetches every selected row. An unknown id fails with domain.ErrNotFound.
func (r Repositories) Load(ctx context.Context, sel domain.Selection) (*Items, error) {
	var it Items
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		it.Flights, err = r.Flights.GetByIDs(gctx, sel.FlightIDs)
		return err
	})
	g.Go(func() (err error) {
		it.Hotels, err = r.Hotels.GetByIDs(gctx, sel.HotelIDs)
		return err
	})
	g.Go(func() (err error) {
		it.MatchTickets, err = r.MatchTickets.GetByIDs(gctx, sel.MatchTicketIDs)
		return err
	})
	g.Go(func() (err error) {
		it.Activities, err = r.Activities.GetByIDs(gctx, sel.ActivityIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &it, nil
}

// Near returns up to limit rows of each variant whose location fields contain location.
func (r Repositories) Near(ctx context.Context, location string, limit int) (*Items, error) {
	var it Items
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		it.Flights, err = r.Flights.SearchByLocation(gctx, location, limit)
		return wrapSearch("flights", err)
	})
	g.Go(func() (err error) {
		it.Hotels, err = r.Hotels.SearchByLocation(gctx, location, limit)
		return wrapSearch("hotels", err)
	})
	g.Go(func() (err error) {
		it.MatchTickets, err = r.MatchTickets.SearchByLocation(gctx, location, limit)
		return wrapSearch("match tickets", err)
	})
	g.Go(func() (err error) {
		it.Activities, err = r.Activities.SearchByLocation(gctx, location, limit)
		return wrapSearch("activities", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &it, nil
}

func wrapSearch(what string, err error) error {
	if err != nil {
		return fmt.Errorf("search %s: %w", what, err)
	}
	return nil
}
