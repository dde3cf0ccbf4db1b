package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/fanzone/internal/domain"
)

type BookingRepository interface {
	// Create stores a pending booking with its item links. When reserve is set the
	// linked items lose one unit of availability in the same transaction.
	Create(ctx context.Context, booking *domain.Booking, reserve bool) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	// List returns bookings that are not cancelled, optionally restricted to one user.
	List(ctx context.Context, userID *int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	// Cancel moves a pending booking to cancelled, releasing inventory when release is set.
	Cancel(ctx context.Context, booking *domain.Booking, release bool) error
}

type PGBookingRepository struct {
	db DB
}

func NewBookingRepository(db DB) BookingRepository {
	return &PGBookingRepository{db: db}
}

var selectBooking = `SELECT o.id, o.reference, o.user_id, o.package_id, o.status, o.total_price_cents, o.created_at, o.updated_at` +
	aggregateColumns("booking", "booking_id") + `
FROM bookings o`

func bookingDest(b *domain.Booking) []any {
	return append([]any{&b.ID, &b.Reference, &b.UserID, &b.PackageID, &b.Status, &b.TotalPriceCents, &b.CreatedAt, &b.UpdatedAt},
		selectionDest(&b.Selection)...)
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking, reserve bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if reserve {
		if err := reserveItems(ctx, tx, booking.Selection); err != nil {
			return err
		}
	}

	booking.Status = domain.BookingStatusPending
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (reference, user_id, package_id, status, total_price_cents)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		booking.Reference, booking.UserID, booking.PackageID, string(booking.Status), booking.TotalPriceCents).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return translate("insert booking", err)
	}

	if err := insertLinks(ctx, tx, "booking", "booking_id", booking.ID, booking.Selection); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking: %w", err)
	}
	return nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.QueryRow(ctx, selectBooking+` WHERE o.id = $1`, id).Scan(bookingDest(&b)...); err != nil {
		return nil, translate(fmt.Sprintf("get booking %d", id), err)
	}
	return &b, nil
}

func (r *PGBookingRepository) List(ctx context.Context, userID *int64) ([]domain.Booking, error) {
	sql := selectBooking + ` WHERE o.status <> 'cancelled'`
	args := []any{}
	if userID != nil {
		sql += ` AND o.user_id = $1`
		args = append(args, *userID)
	}
	rows, err := r.db.Query(ctx, sql+` ORDER BY o.id`, args...)
	if err != nil {
		return nil, translate("list bookings", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(bookingDest(&b)...); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	tag, err := r.db.Exec(ctx, `UPDATE bookings SET status = $1, updated_at = now() WHERE id = $2 AND status <> 'cancelled'`, string(status), id)
	if err != nil {
		return nil, translate(fmt.Sprintf("update booking %d", id), err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists); err != nil {
			return nil, translate(fmt.Sprintf("update booking %d", id), err)
		}
		if exists {
			return nil, fmt.Errorf("update booking %d: already cancelled: %w", id, domain.ErrConflict)
		}
		return nil, fmt.Errorf("update booking %d: %w", id, domain.ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

func (r *PGBookingRepository) Cancel(ctx context.Context, booking *domain.Booking, release bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin cancel tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE bookings SET status = 'cancelled', updated_at = now() WHERE id = $1 AND status = 'pending'`, booking.ID)
	if err != nil {
		return translate(fmt.Sprintf("cancel booking %d", booking.ID), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cancel booking %d: no longer pending: %w", booking.ID, domain.ErrConflict)
	}

	if release {
		if err := releaseItems(ctx, tx, booking.Selection); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit cancel: %w", err)
	}
	booking.Status = domain.BookingStatusCancelled
	return nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
