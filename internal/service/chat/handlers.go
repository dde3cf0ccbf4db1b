package chat

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/Domenick1991/fanzone/internal/hotellookup"
	"github.com/Domenick1991/fanzone/internal/service/packages"
)

type hotelLine struct {
	name     string
	location string
	rating   float64
	price    int64
}

func renderHotels(header string, hotels []hotelLine) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString(":\n\n")
	for _, h := range hotels {
		fmt.Fprintf(&b, "- %s\n  Location: %s\n  Rating: %.1f/5\n  Price per night: %s\n\n",
			h.name, h.location, h.rating, domain.Dollars(h.price))
	}
	b.WriteString(hotelFollowUp)
	return b.String()
}

func (d *Dispatcher) moreOptions(ctx context.Context, session *domain.Session, message string) (string, error) {
	if location := session.LastLocation; location != "" {
		lines := d.searchExternal(ctx, location)
		if len(lines) == 0 {
			return fmt.Sprintf("I couldn't find any more hotels in %s. Would you like to try a different location?", location), nil
		}
		return renderHotels("Here are some additional hotels in "+location, lines), nil
	}

	location := d.extractLocation(ctx, session, message)
	if location == "" {
		return askLocationMoreReply, nil
	}
	lines := d.searchExternal(ctx, location)
	if len(lines) == 0 {
		return noHotelsReply(location), nil
	}
	return renderHotels("Here are some hotels in "+location, lines), nil
}

func (d *Dispatcher) hotelInquiry(ctx context.Context, session *domain.Session, message string) (string, error) {
	location := d.extractLocation(ctx, session, message)
	if location == "" {
		return askLocationReply, nil
	}

	stored, err := d.catalog.Hotels.SearchByLocation(ctx, location, 0)
	if err != nil {
		return "", fmt.Errorf("search hotels: %w", err)
	}
	if len(stored) > 0 {
		lines := make([]hotelLine, len(stored))
		for i, h := range stored {
			lines[i] = hotelLine{name: h.Name, location: h.City, rating: h.Rating, price: h.PricePerNightCents}
		}
		return renderHotels(fmt.Sprintf("I found these hotels in %s from our database", location), lines), nil
	}

	lines := d.searchExternal(ctx, location)
	if len(lines) == 0 {
		return noHotelsReply(location), nil
	}
	return renderHotels("I found these hotels in "+location, lines), nil
}

func noHotelsReply(location string) string {
	return fmt.Sprintf("I couldn't find any hotels in %s. Would you like to try a different location?", location)
}

// searchExternal queries the hotel lookup and stores every result by name.
// Lookup failures yield no lines.
func (d *Dispatcher) searchExternal(ctx context.Context, location string) []hotelLine {
	if d.hotelSearch == nil {
		return nil
	}
	found, err := d.hotelSearch.Search(ctx, location)
	if err != nil {
		d.logger.Warn("external hotel lookup unavailable", zap.String("location", location), zap.Error(err))
		return nil
	}
	lines := make([]hotelLine, 0, len(found))
	stored := false
	for _, h := range found {
		if d.upsertHotel(ctx, h) {
			stored = true
		}
		lines = append(lines, hotelLine{name: h.Name, location: h.Location, rating: h.Rating, price: h.PricePerNightCents})
	}
	if stored && d.invalidator != nil {
		d.invalidator.Invalidate(ctx, domain.KindHotel)
	}
	return lines
}

// upsertHotel reports whether a new row was stored.
func (d *Dispatcher) upsertHotel(ctx context.Context, h hotellookup.Hotel) bool {
	if d.hotels == nil {
		return false
	}
	stored, created, err := d.hotels.GetOrCreateByName(ctx, h.Catalog())
	if err != nil {
		d.logger.Warn("failed to store suggested hotel", zap.String("name", h.Name), zap.Error(err))
		return false
	}
	if created {
		d.logger.Info("stored suggested hotel", zap.Int64("hotel_id", stored.ID), zap.String("name", stored.Name))
	}
	return created
}

type availability struct {
	hotels, flights, activities, matches int
}

func (a availability) complete() bool {
	return a.hotels > 0 && (a.flights > 0 || a.activities > 0 || a.matches > 0)
}

func (d *Dispatcher) countNear(ctx context.Context, location string) (availability, error) {
	var a availability
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		a.hotels, err = d.catalog.Hotels.CountByLocation(gctx, location)
		return err
	})
	g.Go(func() (err error) {
		a.flights, err = d.catalog.Flights.CountByLocation(gctx, location)
		return err
	})
	g.Go(func() (err error) {
		a.activities, err = d.catalog.Activities.CountByLocation(gctx, location)
		return err
	})
	g.Go(func() (err error) {
		a.matches, err = d.catalog.MatchTickets.CountByLocation(gctx, location)
		return err
	})
	if err := g.Wait(); err != nil {
		return availability{}, fmt.Errorf("count catalog near %q: %w", location, err)
	}
	return a, nil
}

func (d *Dispatcher) packageInquiry(ctx context.Context, session *domain.Session, message string) (string, error) {
	location := d.extractLocation(ctx, session, message)
	if location == "" {
		return askLocationPackageReply, nil
	}

	avail, err := d.countNear(ctx, location)
	if err != nil {
		return "", err
	}
	if !avail.complete() {
		return renderShortfall(location, avail), nil
	}

	pkg, err := d.composer.Compose(ctx, packages.ComposeRequest{Location: location})
	if err != nil {
		return "", fmt.Errorf("compose package: %w", err)
	}
	items, err := d.catalog.Load(ctx, pkg.Selection)
	if err != nil {
		return "", fmt.Errorf("load package items: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I've created a special package for %s:\n\n", location)
	fmt.Fprintf(&b, "Package: %s\n", pkg.Name)
	if len(items.Hotels) > 0 {
		fmt.Fprintf(&b, "Hotel: %s\n", items.Hotels[0].Name)
	}
	if len(items.Flights) > 0 {
		fmt.Fprintf(&b, "Flight: %s\n", items.Flights[0].FlightNumber)
	}
	if len(items.MatchTickets) > 0 {
		fmt.Fprintf(&b, "Match: %s\n", items.MatchTickets[0].Title())
	}
	names := make([]string, len(items.Activities))
	for i, a := range items.Activities {
		names[i] = a.Name
	}
	fmt.Fprintf(&b, "Activities: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(&b, "Original Price: %s\n", domain.Dollars(pkg.TotalPriceCents))
	fmt.Fprintf(&b, "Discount: %s%%\n", strconv.FormatFloat(pkg.DiscountPercent, 'f', -1, 64))
	fmt.Fprintf(&b, "Final Price: %s\n\n", domain.Dollars(pkg.FinalPriceCents))
	b.WriteString(packageFollowUp)
	return b.String(), nil
}

func renderShortfall(location string, a availability) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I don't have enough options in our database to create a complete package for %s. ", location)
	if a.hotels > 0 {
		fmt.Fprintf(&b, "I have %d hotels available. ", a.hotels)
	}
	if a.flights > 0 {
		fmt.Fprintf(&b, "I have %d flights available. ", a.flights)
	}
	if a.activities > 0 {
		fmt.Fprintf(&b, "I have %d activities available. ", a.activities)
	}
	if a.matches > 0 {
		fmt.Fprintf(&b, "I have %d matches available. ", a.matches)
	}
	b.WriteString(incompletePackageFollowUp)
	return b.String()
}

func (d *Dispatcher) listFlights(ctx context.Context, _ *domain.Session, _ string) (string, error) {
	flights, err := d.catalog.Flights.SearchByLocation(ctx, "", d.listLimit)
	if err != nil {
		return "", fmt.Errorf("list flights: %w", err)
	}
	if len(flights) == 0 {
		return noFlightsReply, nil
	}
	var b strings.Builder
	b.WriteString("Here are some available flights:\n\n")
	for _, f := range flights {
		fmt.Fprintf(&b, "- Flight %s: %s to %s\n  Price: %s\n\n", f.FlightNumber, f.DepartureCity, f.ArrivalCity, domain.Dollars(f.PriceCents))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (d *Dispatcher) listMatches(ctx context.Context, _ *domain.Session, _ string) (string, error) {
	matches, err := d.catalog.MatchTickets.SearchByLocation(ctx, "", d.listLimit)
	if err != nil {
		return "", fmt.Errorf("list match tickets: %w", err)
	}
	if len(matches) == 0 {
		return noMatchesReply, nil
	}
	var b strings.Builder
	b.WriteString("Here are some upcoming matches:\n\n")
	for _, m := range matches {
		fmt.Fprintf(&b, "- %s\n  Stadium: %s\n  Price: %s\n\n", m.Title(), m.Stadium, domain.Dollars(m.PriceCents))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (d *Dispatcher) listActivities(ctx context.Context, _ *domain.Session, _ string) (string, error) {
	activities, err := d.catalog.Activities.SearchByLocation(ctx, "", d.listLimit)
	if err != nil {
		return "", fmt.Errorf("list activities: %w", err)
	}
	if len(activities) == 0 {
		return noActivitiesReply, nil
	}
	var b strings.Builder
	b.WriteString("Here are some popular activities:\n\n")
	for _, a := range activities {
		fmt.Fprintf(&b, "- %s in %s\n  Price: %s\n\n", a.Name, a.City, domain.Dollars(a.PriceCents))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
