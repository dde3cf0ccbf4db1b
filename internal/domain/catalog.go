package domain

import (
	"strings"
	"time"
)

type ItemKind string

const (
	KindFlight      ItemKind = "flight"
	KindHotel       ItemKind = "hotel"
	KindMatchTicket ItemKind = "match_ticket"
	KindActivity    ItemKind = "activity"
)

// CatalogItem is the behavior shared by every bookable variant.
type CatalogItem interface {
	ItemID() int64
	ItemKind() ItemKind
	UnitPriceCents() int64
	Validate() error
}

type Flight struct {
	ID             int64     `json:"id"`
	FlightNumber   string    `json:"flight_number"`
	Airline        string    `json:"airline"`
	DepartureCity  string    `json:"departure_city"`
	ArrivalCity    string    `json:"arrival_city"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	PriceCents     int64     `json:"price_cents"`
	AvailableSeats int       `json:"available_seats"`
	ImageURL       string    `json:"image_url,omitempty"`
	IsAISuggested  bool      `json:"is_ai_suggested"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (f Flight) ItemID() int64         { return f.ID }
func (f Flight) ItemKind() ItemKind    { return KindFlight }
func (f Flight) UnitPriceCents() int64 { return f.PriceCents }

func (f Flight) Validate() error {
	switch {
	case strings.TrimSpace(f.FlightNumber) == "":
		return NewValidationError("flight_number is required")
	case strings.TrimSpace(f.DepartureCity) == "" || strings.TrimSpace(f.ArrivalCity) == "":
		return NewValidationError("departure_city and arrival_city are required")
	case !f.ArrivalTime.IsZero() && f.ArrivalTime.Before(f.DepartureTime):
		return NewValidationError("arrival_time must not be before departure_time")
	}
	return validateAmounts(f.PriceCents, f.AvailableSeats)
}

type Hotel struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	City               string    `json:"city"`
	Address            string    `json:"address"`
	Description        string    `json:"description"`
	PricePerNightCents int64     `json:"price_per_night_cents"`
	AvailableRooms     int       `json:"available_rooms"`
	Rating             float64   `json:"rating"`
	ImageURL           string    `json:"image_url,omitempty"`
	IsAISuggested      bool      `json:"is_ai_suggested"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (h Hotel) ItemID() int64         { return h.ID }
func (h Hotel) ItemKind() ItemKind    { return KindHotel }
func (h Hotel) UnitPriceCents() int64 { return h.PricePerNightCents }

func (h Hotel) Validate() error {
	switch {
	case strings.TrimSpace(h.Name) == "":
		return NewValidationError("name is required")
	case strings.TrimSpace(h.City) == "":
		return NewValidationError("city is required")
	case h.Rating < 1 || h.Rating > 5:
		return NewValidationError("rating must be between 1 and 5")
	}
	return validateAmounts(h.PricePerNightCents, h.AvailableRooms)
}

// SuggestedHotel is the read-only projection of AI-suggested hotels.
type SuggestedHotel struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Location           string  `json:"location"`
	Rating             float64 `json:"rating"`
	PricePerNightCents int64   `json:"price_per_night_cents"`
	Description        string  `json:"description"`
}

type MatchType string

const (
	MatchTypeCAN           MatchType = "CAN"
	MatchTypeWorldCup      MatchType = "WORLD_CUP"
	MatchTypeGroupStage    MatchType = "GROUP_STAGE"
	MatchTypeRoundOf16     MatchType = "ROUND_OF_16"
	MatchTypeQuarterFinals MatchType = "QUARTER_FINALS"
	MatchTypeSemiFinals    MatchType = "SEMI_FINALS"
	MatchTypeFinal         MatchType = "FINAL"
)

func (t MatchType) Valid() bool {
	switch t {
	case MatchTypeCAN, MatchTypeWorldCup, MatchTypeGroupStage, MatchTypeRoundOf16,
		MatchTypeQuarterFinals, MatchTypeSemiFinals, MatchTypeFinal:
		return true
	}
	return false
}

type MatchTicket struct {
	ID               int64     `json:"id"`
	MatchName        string    `json:"match_name"`
	HomeTeam         string    `json:"home_team"`
	AwayTeam         string    `json:"away_team"`
	MatchDate        time.Time `json:"match_date"`
	Stadium          string    `json:"stadium"`
	MatchType        MatchType `json:"match_type"`
	PriceCents       int64     `json:"price_cents"`
	AvailableTickets int       `json:"available_tickets"`
	ImageURL         string    `json:"image_url,omitempty"`
	IsAISuggested    bool      `json:"is_ai_suggested"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (m MatchTicket) ItemID() int64         { return m.ID }
func (m MatchTicket) ItemKind() ItemKind    { return KindMatchTicket }
func (m MatchTicket) UnitPriceCents() int64 { return m.PriceCents }

// Title is the human label used in listings.
func (m MatchTicket) Title() string {
	if m.HomeTeam != "" && m.AwayTeam != "" {
		return m.HomeTeam + " vs " + m.AwayTeam
	}
	return m.MatchName
}

func (m MatchTicket) Validate() error {
	switch {
	case strings.TrimSpace(m.MatchName) == "":
		return NewValidationError("match_name is required")
	case strings.TrimSpace(m.Stadium) == "":
		return NewValidationError("stadium is required")
	case !m.MatchType.Valid():
		return NewValidationError("unknown match_type " + string(m.MatchType))
	}
	return validateAmounts(m.PriceCents, m.AvailableTickets)
}

type ActivityType string

const (
	ActivityMuseum        ActivityType = "MUSEUM"
	ActivityTravel        ActivityType = "TRAVEL"
	ActivitySport         ActivityType = "SPORT"
	ActivityEntertainment ActivityType = "ENTERTAINMENT"
	ActivityCulture       ActivityType = "CULTURE"
	ActivityShopping      ActivityType = "SHOPPING"
	ActivityFood          ActivityType = "FOOD"
	ActivityNightlife     ActivityType = "NIGHTLIFE"
	ActivityTour          ActivityType = "TOUR"
	ActivityWorkshop      ActivityType = "WORKSHOP"
	ActivityExhibition    ActivityType = "EXHIBITION"
	ActivityConcert       ActivityType = "CONCERT"
	ActivityFanZone       ActivityType = "FAN_ZONE"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityMuseum, ActivityTravel, ActivitySport, ActivityEntertainment, ActivityCulture,
		ActivityShopping, ActivityFood, ActivityNightlife, ActivityTour, ActivityWorkshop,
		ActivityExhibition, ActivityConcert, ActivityFanZone:
		return true
	}
	return false
}

type Activity struct {
	ID              int64        `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	City            string       `json:"city"`
	ActivityDate    time.Time    `json:"activity_date"`
	ActivityType    ActivityType `json:"activity_type"`
	DurationMinutes int          `json:"duration_minutes"`
	PriceCents      int64        `json:"price_cents"`
	AvailableSpots  int          `json:"available_spots"`
	ImageURL        string       `json:"image_url,omitempty"`
	IsAISuggested   bool         `json:"is_ai_suggested"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

func (a Activity) ItemID() int64         { return a.ID }
func (a Activity) ItemKind() ItemKind    { return KindActivity }
func (a Activity) UnitPriceCents() int64 { return a.PriceCents }

func (a Activity) Validate() error {
	switch {
	case strings.TrimSpace(a.Name) == "":
		return NewValidationError("name is required")
	case strings.TrimSpace(a.City) == "":
		return NewValidationError("city is required")
	case !a.ActivityType.Valid():
		return NewValidationError("unknown activity_type " + string(a.ActivityType))
	case a.DurationMinutes < 0:
		return NewValidationError("duration_minutes must not be negative")
	}
	return validateAmounts(a.PriceCents, a.AvailableSpots)
}

func validateAmounts(price int64, available int) error {
	if price < 0 {
		return NewValidationError("price must not be negative")
	}
	if available < 0 {
		return NewValidationError("availability must not be negative")
	}
	return nil
}

// CatalogFilter narrows catalog listings. Empty fields are ignored.
type CatalogFilter struct {
	Location     string
	MatchType    MatchType
	ActivityType ActivityType
	AISuggested  *bool
}

// IsZero reports whether the filter selects everything.
func (f CatalogFilter) IsZero() bool {
	return f.Location == "" && f.MatchType == "" && f.ActivityType == "" && f.AISuggested == nil
}
