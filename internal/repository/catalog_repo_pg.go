package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/fanzone/internal/domain"
	sq "github.com/Masterminds/squirrel"
)

// CatalogRepository stores one catalog variant.
type CatalogRepository[T domain.CatalogItem] interface {
	List(ctx context.Context, filter domain.CatalogFilter) ([]T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	GetByIDs(ctx context.Context, ids []int64) ([]T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id int64) error
	SearchByLocation(ctx context.Context, query string, limit int) ([]T, error)
	CountByLocation(ctx context.Context, query string) (int, error)
}

// table describes how a variant maps onto its postgres table.
type table[T domain.CatalogItem] struct {
	name string
	// columns lists the writable columns in the order values returns them.
	columns         []string
	locationColumns []string
	values          func(item *T) []any
	// dest returns scan targets for id, columns..., created_at, updated_at.
	dest    func(item *T) []any
	stamp   func(item *T) []any
	setID   func(item *T, id int64)
	filters func(b sq.SelectBuilder, f domain.CatalogFilter) sq.SelectBuilder
}

func (t table[T]) selectColumns() string {
	return "id, " + strings.Join(t.columns, ", ") + ", created_at, updated_at"
}

type PGCatalogRepository[T domain.CatalogItem] struct {
	db DB
	t  table[T]
}

func newCatalogRepository[T domain.CatalogItem](db DB, t table[T]) *PGCatalogRepository[T] {
	return &PGCatalogRepository[T]{db: db, t: t}
}

func (r *PGCatalogRepository[T]) List(ctx context.Context, filter domain.CatalogFilter) ([]T, error) {
	b := psql.Select(r.t.selectColumns()).From(r.t.name).OrderBy("id")
	if filter.Location != "" {
		b = b.Where(locationMatch(filter.Location, r.t.locationColumns))
	}
	if filter.AISuggested != nil {
		b = b.Where(sq.Eq{"is_ai_suggested": *filter.AISuggested})
	}
	if r.t.filters != nil {
		b = r.t.filters(b, filter)
	}
	return r.query(ctx, "list "+r.t.name, b)
}

func (r *PGCatalogRepository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	sql, args, err := psql.Select(r.t.selectColumns()).From(r.t.name).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get %s: %w", r.t.name, err)
	}
	var item T
	if err := r.db.QueryRow(ctx, sql, args...).Scan(r.t.dest(&item)...); err != nil {
		return nil, translate(fmt.Sprintf("get %s %d", r.t.name, id), err)
	}
	return &item, nil
}

// GetByIDs returns the rows for ids ordered by id. Missing ids are reported as ErrNotFound.
func (r *PGCatalogRepository[T]) GetByIDs(ctx context.Context, ids []int64) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	b := psql.Select(r.t.selectColumns()).From(r.t.name).Where(sq.Eq{"id": ids}).OrderBy("id")
	items, err := r.query(ctx, "get "+r.t.name, b)
	if err != nil {
		return nil, err
	}
	if len(items) != len(ids) {
		return nil, fmt.Errorf("get %s %v: %w", r.t.name, missingIDs(ids, items), domain.ErrNotFound)
	}
	return items, nil
}

func (r *PGCatalogRepository[T]) Create(ctx context.Context, item *T) error {
	sql, args, err := psql.Insert(r.t.name).
		Columns(r.t.columns...).
		Values(r.t.values(item)...).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", r.t.name, err)
	}
	var id int64
	dest := append([]any{&id}, r.t.stamp(item)...)
	if err := r.db.QueryRow(ctx, sql, args...).Scan(dest...); err != nil {
		return translate("insert "+r.t.name, err)
	}
	r.t.setID(item, id)
	return nil
}

func (r *PGCatalogRepository[T]) Update(ctx context.Context, item *T) error {
	id := (*item).ItemID()
	b := psql.Update(r.t.name)
	for i, v := range r.t.values(item) {
		b = b.Set(r.t.columns[i], v)
	}
	sql, args, err := b.Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update %s: %w", r.t.name, err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(r.t.stamp(item)...); err != nil {
		return translate(fmt.Sprintf("update %s %d", r.t.name, id), err)
	}
	return nil
}

func (r *PGCatalogRepository[T]) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM "+r.t.name+" WHERE id = $1", id)
	if err != nil {
		return translate(fmt.Sprintf("delete %s %d", r.t.name, id), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete %s %d: %w", r.t.name, id, domain.ErrNotFound)
	}
	return nil
}

// SearchByLocation matches query against the variant's location columns. limit <= 0 means no limit.
func (r *PGCatalogRepository[T]) SearchByLocation(ctx context.Context, query string, limit int) ([]T, error) {
	b := psql.Select(r.t.selectColumns()).
		From(r.t.name).
		Where(locationMatch(query, r.t.locationColumns)).
		OrderBy("id")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	return r.query(ctx, "search "+r.t.name, b)
}

func (r *PGCatalogRepository[T]) CountByLocation(ctx context.Context, query string) (int, error) {
	sql, args, err := psql.Select("COUNT(*)").
		From(r.t.name).
		Where(locationMatch(query, r.t.locationColumns)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count %s: %w", r.t.name, err)
	}
	var n int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, translate("count "+r.t.name, err)
	}
	return n, nil
}

func (r *PGCatalogRepository[T]) query(ctx context.Context, op string, b sq.SelectBuilder) ([]T, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(op, err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		var item T
		if err := rows.Scan(r.t.dest(&item)...); err != nil {
			return nil, translate(op, err)
		}
		items = append(items, item)
	}
	return items, translate(op, rows.Err())
}

func missingIDs[T domain.CatalogItem](ids []int64, found []T) []int64 {
	have := make(map[int64]struct{}, len(found))
	for _, item := range found {
		have[item.ItemID()] = struct{}{}
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
