package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/jackc/pgx/v5"
)

type HotelRepository interface {
	CatalogRepository[domain.Hotel]
	// GetOrCreateByName inserts an AI-suggested hotel unless a suggested row
	// with the same name exists, in which case the stored row is returned unchanged.
	// Hotels entered through the catalog may share names freely.
	GetOrCreateByName(ctx context.Context, hotel domain.Hotel) (*domain.Hotel, bool, error)
	ListSuggested(ctx context.Context) ([]domain.SuggestedHotel, error)
}

var hotelTable = table[domain.Hotel]{
	name: "hotels",
	columns: []string{
		"name", "city", "address", "description", "price_per_night_cents",
		"available_rooms", "rating", "image_url", "is_ai_suggested",
	},
	locationColumns: []string{"city"},
	values: func(h *domain.Hotel) []any {
		return []any{
			h.Name, h.City, h.Address, h.Description, h.PricePerNightCents,
			h.AvailableRooms, h.Rating, h.ImageURL, h.IsAISuggested,
		}
	},
	dest: func(h *domain.Hotel) []any {
		return []any{
			&h.ID, &h.Name, &h.City, &h.Address, &h.Description, &h.PricePerNightCents,
			&h.AvailableRooms, &h.Rating, &h.ImageURL, &h.IsAISuggested,
			&h.CreatedAt, &h.UpdatedAt,
		}
	},
	stamp: func(h *domain.Hotel) []any { return []any{&h.CreatedAt, &h.UpdatedAt} },
	setID: func(h *domain.Hotel, id int64) { h.ID = id },
}

type PGHotelRepository struct {
	*PGCatalogRepository[domain.Hotel]
}

func NewHotelRepository(db DB) HotelRepository {
	return &PGHotelRepository{PGCatalogRepository: newCatalogRepository(db, hotelTable)}
}

const insertHotelIfAbsent = `INSERT INTO hotels (name, city, address, description, price_per_night_cents, available_rooms, rating, image_url, is_ai_suggested)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (name) WHERE is_ai_suggested DO NOTHING
	RETURNING id, created_at, updated_at`

func (r *PGHotelRepository) GetOrCreateByName(ctx context.Context, hotel domain.Hotel) (*domain.Hotel, bool, error) {
	hotel.IsAISuggested = true
	var id int64
	err := r.db.QueryRow(ctx, insertHotelIfAbsent, hotelTable.values(&hotel)...).Scan(&id, &hotel.CreatedAt, &hotel.UpdatedAt)
	if err == nil {
		hotel.ID = id
		return &hotel, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, translate("insert hotel "+hotel.Name, err)
	}

	var existing domain.Hotel
	row := r.db.QueryRow(ctx, "SELECT "+hotelTable.selectColumns()+" FROM hotels WHERE name = $1 AND is_ai_suggested", hotel.Name)
	if err := row.Scan(hotelTable.dest(&existing)...); err != nil {
		return nil, false, translate("get hotel "+hotel.Name, err)
	}
	return &existing, false, nil
}

func (r *PGHotelRepository) ListSuggested(ctx context.Context) ([]domain.SuggestedHotel, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, location, rating, price_per_night_cents, description FROM suggested_hotels ORDER BY id`)
	if err != nil {
		return nil, translate("list suggested hotels", err)
	}
	defer rows.Close()

	hotels := make([]domain.SuggestedHotel, 0)
	for rows.Next() {
		var h domain.SuggestedHotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Location, &h.Rating, &h.PricePerNightCents, &h.Description); err != nil {
			return nil, fmt.Errorf("scan suggested hotel: %w", err)
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

var _ HotelRepository = (*PGHotelRepository)(nil)
