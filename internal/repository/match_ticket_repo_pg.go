package repository

import (
	"github.com/Domenick1991/fanzone/internal/domain"
	sq "github.com/Masterminds/squirrel"
)

type MatchTicketRepository = CatalogRepository[domain.MatchTicket]

var matchTicketTable = table[domain.MatchTicket]{
	name: "match_tickets",
	columns: []string{
		"match_name", "home_team", "away_team", "match_date", "stadium",
		"match_type", "price_cents", "available_tickets", "image_url", "is_ai_suggested",
	},
	locationColumns: []string{"stadium"},
	values: func(m *domain.MatchTicket) []any {
		return []any{
			m.MatchName, m.HomeTeam, m.AwayTeam, m.MatchDate, m.Stadium,
			string(m.MatchType), m.PriceCents, m.AvailableTickets, m.ImageURL, m.IsAISuggested,
		}
	},
	dest: func(m *domain.MatchTicket) []any {
		return []any{
			&m.ID, &m.MatchName, &m.HomeTeam, &m.AwayTeam, &m.MatchDate, &m.Stadium,
			&m.MatchType, &m.PriceCents, &m.AvailableTickets, &m.ImageURL, &m.IsAISuggested,
			&m.CreatedAt, &m.UpdatedAt,
		}
	},
	stamp: func(m *domain.MatchTicket) []any { return []any{&m.CreatedAt, &m.UpdatedAt} },
	setID: func(m *domain.MatchTicket, id int64) { m.ID = id },
	filters: func(b sq.SelectBuilder, f domain.CatalogFilter) sq.SelectBuilder {
		if f.MatchType != "" {
			b = b.Where(sq.Eq{"match_type": string(f.MatchType)})
		}
		return b
	},
}

func NewMatchTicketRepository(db DB) MatchTicketRepository {
	return newCatalogRepository(db, matchTicketTable)
}
