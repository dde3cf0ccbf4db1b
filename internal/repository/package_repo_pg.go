package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/fanzone/internal/domain"
)

type PackageRepository interface {
	Create(ctx context.Context, pkg *domain.Package) error
	GetByID(ctx context.Context, id int64) (*domain.Package, error)
	List(ctx context.Context) ([]domain.Package, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PackageStatus) (*domain.Package, error)
	Delete(ctx context.Context, id int64) error
}

type PGPackageRepository struct {
	db DB
}

func NewPackageRepository(db DB) PackageRepository {
	return &PGPackageRepository{db: db}
}

var selectPackage = `SELECT o.id, o.name, o.description, o.total_price_cents, o.discount_percent, o.final_price_cents,
	o.status, o.is_ai_suggested, o.image_url, o.created_at, o.updated_at` +
	aggregateColumns("package", "package_id") + `
FROM packages o`

func packageDest(p *domain.Package) []any {
	return append([]any{
		&p.ID, &p.Name, &p.Description, &p.TotalPriceCents, &p.DiscountPercent, &p.FinalPriceCents,
		&p.Status, &p.IsAISuggested, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	}, selectionDest(&p.Selection)...)
}

func (r *PGPackageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin package tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO packages (name, description, total_price_cents, discount_percent, final_price_cents, status, is_ai_suggested, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		pkg.Name, pkg.Description, pkg.TotalPriceCents, pkg.DiscountPercent, pkg.FinalPriceCents,
		string(pkg.Status), pkg.IsAISuggested, pkg.ImageURL).
		Scan(&pkg.ID, &pkg.CreatedAt, &pkg.UpdatedAt); err != nil {
		return translate("insert package", err)
	}

	if err := insertLinks(ctx, tx, "package", "package_id", pkg.ID, pkg.Selection); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit package: %w", err)
	}
	return nil
}

func (r *PGPackageRepository) GetByID(ctx context.Context, id int64) (*domain.Package, error) {
	var p domain.Package
	if err := r.db.QueryRow(ctx, selectPackage+` WHERE o.id = $1`, id).Scan(packageDest(&p)...); err != nil {
		return nil, translate(fmt.Sprintf("get package %d", id), err)
	}
	return &p, nil
}

func (r *PGPackageRepository) List(ctx context.Context) ([]domain.Package, error) {
	rows, err := r.db.Query(ctx, selectPackage+` ORDER BY o.id`)
	if err != nil {
		return nil, translate("list packages", err)
	}
	defer rows.Close()

	packages := make([]domain.Package, 0)
	for rows.Next() {
		var p domain.Package
		if err := rows.Scan(packageDest(&p)...); err != nil {
			return nil, fmt.Errorf("scan package: %w", err)
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}

func (r *PGPackageRepository) UpdateStatus(ctx context.Context, id int64, status domain.PackageStatus) (*domain.Package, error) {
	tag, err := r.db.Exec(ctx, `UPDATE packages SET status = $1, updated_at = now() WHERE id = $2`, string(status), id)
	if err != nil {
		return nil, translate(fmt.Sprintf("update package %d", id), err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("update package %d: %w", id, domain.ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

func (r *PGPackageRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return translate(fmt.Sprintf("delete package %d", id), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete package %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

var _ PackageRepository = (*PGPackageRepository)(nil)
