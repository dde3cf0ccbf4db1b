package repository

import "github.com/Domenick1991/fanzone/internal/domain"

type FlightRepository = CatalogRepository[domain.Flight]

var flightTable = table[domain.Flight]{
	name: "flights",
	columns: []string{
		"flight_number", "airline", "departure_city", "arrival_city", "departure_time",
		"arrival_time", "price_cents", "available_seats", "image_url", "is_ai_suggested",
	},
	locationColumns: []string{"departure_city", "arrival_city"},
	values: func(f *domain.Flight) []any {
		return []any{
			f.FlightNumber, f.Airline, f.DepartureCity, f.ArrivalCity, f.DepartureTime,
			f.ArrivalTime, f.PriceCents, f.AvailableSeats, f.ImageURL, f.IsAISuggested,
		}
	},
	dest: func(f *domain.Flight) []any {
		return []any{
			&f.ID, &f.FlightNumber, &f.Airline, &f.DepartureCity, &f.ArrivalCity, &f.DepartureTime,
			&f.ArrivalTime, &f.PriceCents, &f.AvailableSeats, &f.ImageURL, &f.IsAISuggested,
			&f.CreatedAt, &f.UpdatedAt,
		}
	},
	stamp: func(f *domain.Flight) []any { return []any{&f.CreatedAt, &f.UpdatedAt} },
	setID: func(f *domain.Flight, id int64) { f.ID = id },
}

func NewFlightRepository(db DB) FlightRepository {
	return newCatalogRepository(db, flightTable)
}

var _ FlightRepository = (*PGCatalogRepository[domain.Flight])(nil)
