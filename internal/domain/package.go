package domain

import "time"

// Selection is a set of catalog item ids grouped by variant.
type Selection struct {
	FlightIDs      []int64 `json:"flight_ids"`
	HotelIDs       []int64 `json:"hotel_ids"`
	MatchTicketIDs []int64 `json:"match_ticket_ids"`
	ActivityIDs    []int64 `json:"activity_ids"`
}

func (s Selection) IsEmpty() bool {
	return len(s.FlightIDs) == 0 && len(s.HotelIDs) == 0 && len(s.MatchTicketIDs) == 0 && len(s.ActivityIDs) == 0
}

// Normalize drops duplicate ids, keeping first occurrences in order.
func (s Selection) Normalize() Selection {
	return Selection{
		FlightIDs:      uniqueIDs(s.FlightIDs),
		HotelIDs:       uniqueIDs(s.HotelIDs),
		MatchTicketIDs: uniqueIDs(s.MatchTicketIDs),
		ActivityIDs:    uniqueIDs(s.ActivityIDs),
	}
}

// IDs returns the ids selected for kind.
func (s Selection) IDs(kind ItemKind) []int64 {
	switch kind {
	case KindFlight:
		return s.FlightIDs
	case KindHotel:
		return s.HotelIDs
	case KindMatchTicket:
		return s.MatchTicketIDs
	case KindActivity:
		return s.ActivityIDs
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Kinds returns the variants with at least one selected id.
func (s Selection) Kinds() []ItemKind {
	var kinds []ItemKind
	for _, kind := range []ItemKind{KindFlight, KindHotel, KindMatchTicket, KindActivity} {
		if len(s.IDs(kind)) > 0 {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// Count returns the number of selected items across all variants.
func (s Selection) Count() int {
	return len(s.FlightIDs) + len(s.HotelIDs) + len(s.MatchTicketIDs) + len(s.ActivityIDs)
}

type PackageStatus string

const (
	PackageStatusSuggested PackageStatus = "suggested"
	PackageStatusApproved  PackageStatus = "approved"
	PackageStatusActive    PackageStatus = "active"
	PackageStatusInactive  PackageStatus = "inactive"
)

func (s PackageStatus) Valid() bool {
	switch s {
	case PackageStatusSuggested, PackageStatusApproved, PackageStatusActive, PackageStatusInactive:
		return true
	}
	return false
}

type Package struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Selection
	TotalPriceCents int64         `json:"total_price_cents"`
	DiscountPercent float64       `json:"discount_percent"`
	FinalPriceCents int64         `json:"final_price_cents"`
	Status          PackageStatus `json:"status"`
	IsAISuggested   bool          `json:"is_ai_suggested"`
	ImageURL        string        `json:"image_url,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Reprice recomputes the final price from the total and discount.
func (p *Package) Reprice() {
	p.FinalPriceCents = ApplyDiscount(p.TotalPriceCents, p.DiscountPercent)
}
