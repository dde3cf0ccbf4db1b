package repository

import (
	"github.com/Domenick1991/fanzone/internal/domain"
	sq "github.com/Masterminds/squirrel"
)

type ActivityRepository = CatalogRepository[domain.Activity]

var activityTable = table[domain.Activity]{
	name: "activities",
	columns: []string{
		"name", "description", "city", "activity_date", "activity_type",
		"duration_minutes", "price_cents", "available_spots", "image_url", "is_ai_suggested",
	},
	locationColumns: []string{"city"},
	values: func(a *domain.Activity) []any {
		return []any{
			a.Name, a.Description, a.City, a.ActivityDate, string(a.ActivityType),
			a.DurationMinutes, a.PriceCents, a.AvailableSpots, a.ImageURL, a.IsAISuggested,
		}
	},
	dest: func(a *domain.Activity) []any {
		return []any{
			&a.ID, &a.Name, &a.Description, &a.City, &a.ActivityDate, &a.ActivityType,
			&a.DurationMinutes, &a.PriceCents, &a.AvailableSpots, &a.ImageURL, &a.IsAISuggested,
			&a.CreatedAt, &a.UpdatedAt,
		}
	},
	stamp: func(a *domain.Activity) []any { return []any{&a.CreatedAt, &a.UpdatedAt} },
	setID: func(a *domain.Activity, id int64) { a.ID = id },
	filters: func(b sq.SelectBuilder, f domain.CatalogFilter) sq.SelectBuilder {
		if f.ActivityType != "" {
			b = b.Where(sq.Eq{"activity_type": string(f.ActivityType)})
		}
		return b
	},
}

func NewActivityRepository(db DB) ActivityRepository {
	return newCatalogRepository(db, activityTable)
}
