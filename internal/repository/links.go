package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/jackc/pgx/v5"
)

// itemLink describes how one catalog variant hangs off a booking or package.
type itemLink struct {
	kind         domain.ItemKind
	suffix       string
	column       string
	catalog      string
	availability string
}

var itemLinks = []itemLink{
	{kind: domain.KindFlight, suffix: "flights", column: "flight_id", catalog: "flights", availability: "available_seats"},
	{kind: domain.KindHotel, suffix: "hotels", column: "hotel_id", catalog: "hotels", availability: "available_rooms"},
	{kind: domain.KindMatchTicket, suffix: "match_tickets", column: "match_ticket_id", catalog: "match_tickets", availability: "available_tickets"},
	{kind: domain.KindActivity, suffix: "activities", column: "activity_id", catalog: "activities", availability: "available_spots"},
}

// aggregateColumns selects every linked id list of owner row alias o, one array per variant.
func aggregateColumns(prefix, ownerColumn string) string {
	var cols string
	for _, l := range itemLinks {
		cols += fmt.Sprintf(",\n\tCOALESCE((SELECT array_agg(%[1]s ORDER BY %[1]s) FROM %[2]s_%[3]s WHERE %[4]s = o.id), '{}')",
			l.column, prefix, l.suffix, ownerColumn)
	}
	return cols
}

func selectionDest(s *domain.Selection) []any {
	return []any{&s.FlightIDs, &s.HotelIDs, &s.MatchTicketIDs, &s.ActivityIDs}
}

func insertLinks(ctx context.Context, tx pgx.Tx, prefix, ownerColumn string, ownerID int64, sel domain.Selection) error {
	for _, l := range itemLinks {
		ids := sel.IDs(l.kind)
		if len(ids) == 0 {
			continue
		}
		sql := fmt.Sprintf("INSERT INTO %s_%s (%s, %s) SELECT $1, unnest($2::bigint[])", prefix, l.suffix, ownerColumn, l.column)
		if _, err := tx.Exec(ctx, sql, ownerID, ids); err != nil {
			return translate("link "+l.suffix, err)
		}
	}
	return nil
}

// reserveItems takes one unit of availability from every selected item, failing when any is exhausted.
func reserveItems(ctx context.Context, tx pgx.Tx, sel domain.Selection) error {
	for _, l := range itemLinks {
		sql := fmt.Sprintf("UPDATE %[1]s SET %[2]s = %[2]s - 1, updated_at = now() WHERE id = $1 AND %[2]s > 0", l.catalog, l.availability)
		for _, id := range sel.IDs(l.kind) {
			tag, err := tx.Exec(ctx, sql, id)
			if err != nil {
				return translate("reserve "+l.catalog, err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%s %d is sold out: %w", l.kind, id, domain.ErrConflict)
			}
		}
	}
	return nil
}

func releaseItems(ctx context.Context, tx pgx.Tx, sel domain.Selection) error {
	for _, l := range itemLinks {
		sql := fmt.Sprintf("UPDATE %[1]s SET %[2]s = %[2]s + 1, updated_at = now() WHERE id = $1", l.catalog, l.availability)
		for _, id := range sel.IDs(l.kind) {
			if _, err := tx.Exec(ctx, sql, id); err != nil {
				return translate("release "+l.catalog, err)
			}
		}
	}
	return nil
}
