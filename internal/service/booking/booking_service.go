package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/Domenick1991/fanzone/internal/kafka"
	"github.com/Domenick1991/fanzone/internal/observability"
	"github.com/Domenick1991/fanzone/internal/repository"
	"github.com/Domenick1991/fanzone/internal/service/catalog"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, actor domain.Principal, input CreateBookingInput) (*domain.Booking, error)
	BookPackage(ctx context.Context, actor domain.Principal, packageID int64) (*domain.Booking, error)
	Get(ctx context.Context, actor domain.Principal, id int64) (*domain.Booking, error)
	List(ctx context.Context, actor domain.Principal) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, actor domain.Principal, id int64, status domain.BookingStatus) (*domain.Booking, error)
	Cancel(ctx context.Context, actor domain.Principal, id int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	domain.Selection
	// TotalPriceCents is the total the client expects to pay. When set it must
	// equal the sum of the selected items.
	TotalPriceCents *int64 `json:"total_price_cents"`
}

// CacheInvalidator drops cached catalog listings whose availability changed.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, kinds ...domain.ItemKind)
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithMetrics(m *observability.Metrics) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = m
	}
}

// WithInventoryReservation toggles decrementing availability on booking.
func WithInventoryReservation(reserve bool) BookingServiceOption {
	return func(s *BookingService) {
		s.reserve = reserve
	}
}

// WithCacheInvalidator drops cached listings after inventory moves.
func WithCacheInvalidator(inv CacheInvalidator) BookingServiceOption {
	return func(s *BookingService) {
		s.invalidator = inv
	}
}

type BookingService struct {
	bookings           repository.BookingRepository
	packages           repository.PackageRepository
	catalog            catalog.Repositories
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	reserve            bool
	invalidator        CacheInvalidator
	metrics            *observability.Metrics
	logger             *zap.Logger
	now                func() time.Time
}

func NewBookingService(
	bookings repository.BookingRepository,
	packages repository.PackageRepository,
	repos catalog.Repositories,
	producer Producer,
	bookingTopic string,
	logger *zap.Logger,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		packages:     packages,
		catalog:      repos,
		producer:     producer,
		bookingTopic: bookingTopic,
		reserve:      true,
		logger:       logger,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, actor domain.Principal, input CreateBookingInput) (*domain.Booking, error) {
	sel := input.Selection.Normalize()
	if sel.IsEmpty() {
		return nil, domain.NewValidationError("at least one item required")
	}

	items, err := s.catalog.Load(ctx, sel)
	if err != nil {
		s.metrics.Booking(ctx, "create", "error")
		return nil, err
	}

	calculated := items.Total()
	if input.TotalPriceCents != nil && *input.TotalPriceCents != calculated {
		s.metrics.Booking(ctx, "create", "rejected")
		return nil, domain.NewValidationError(fmt.Sprintf(
			"Total price (%s) does not match the sum of items (%s)",
			domain.Decimal(*input.TotalPriceCents), domain.Decimal(calculated)))
	}

	booking := &domain.Booking{
		Reference:       uuid.NewString(),
		UserID:          actor.UserID,
		Selection:       sel,
		TotalPriceCents: calculated,
	}
	if err := s.bookings.Create(ctx, booking, s.reserve); err != nil {
		s.metrics.Booking(ctx, "create", "error")
		return nil, err
	}
	s.metrics.Booking(ctx, "create", "ok")
	s.inventoryMoved(ctx, sel)

	s.logger.Info("booking created",
		zap.Int64("booking_id", booking.ID),
		zap.String("reference", booking.Reference),
		zap.Int64("user_id", booking.UserID),
		zap.Int64("total_price_cents", booking.TotalPriceCents),
	)
	s.publish(ctx, kafka.EventBookingCreated, actor, booking)
	return booking, nil
}

// BookPackage books every item linked to the package at its discounted price.
func (s *BookingService) BookPackage(ctx context.Context, actor domain.Principal, packageID int64) (*domain.Booking, error) {
	pkg, err := s.packages.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	sel := pkg.Selection.Normalize()
	if sel.IsEmpty() {
		return nil, domain.NewValidationError("package has no items to book")
	}

	booking := &domain.Booking{
		Reference:       uuid.NewString(),
		UserID:          actor.UserID,
		Selection:       sel,
		PackageID:       &pkg.ID,
		TotalPriceCents: domain.ApplyDiscount(pkg.TotalPriceCents, pkg.DiscountPercent),
	}
	if err := s.bookings.Create(ctx, booking, s.reserve); err != nil {
		s.metrics.Booking(ctx, "book_package", "error")
		return nil, err
	}
	s.metrics.Booking(ctx, "book_package", "ok")
	s.inventoryMoved(ctx, sel)

	s.logger.Info("package booked",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("package_id", pkg.ID),
		zap.Int64("user_id", booking.UserID),
	)
	s.publish(ctx, kafka.EventPackageBooked, actor, booking)
	return booking, nil
}

// Get returns a live booking visible to actor. Cancelled bookings are not found.
func (s *BookingService) Get(ctx context.Context, actor domain.Principal, id int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingStatusCancelled {
		return nil, fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
	}
	if booking.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, fmt.Errorf("booking %d: %w", id, domain.ErrForbidden)
	}
	return booking, nil
}

func (s *BookingService) List(ctx context.Context, actor domain.Principal) ([]domain.Booking, error) {
	if actor.IsAdmin() {
		return s.bookings.List(ctx, nil)
	}
	userID := actor.UserID
	return s.bookings.List(ctx, &userID)
}

// UpdateStatus changes the status of a booking. Moving to cancelled is only
// allowed from pending and releases reserved inventory.
func (s *BookingService) UpdateStatus(ctx context.Context, actor domain.Principal, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("unknown booking status " + string(status))
	}

	current, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if status == domain.BookingStatusCancelled {
		return s.cancel(ctx, actor, current)
	}

	updated, err := s.bookings.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if status == domain.BookingStatusConfirmed && current.Status != domain.BookingStatusConfirmed {
		s.metrics.Booking(ctx, "confirm", "ok")
		s.publish(ctx, kafka.EventBookingConfirmed, actor, updated)
	}
	return updated, nil
}

func (s *BookingService) Cancel(ctx context.Context, actor domain.Principal, id int64) error {
	_, err := s.UpdateStatus(ctx, actor, id, domain.BookingStatusCancelled)
	return err
}

func (s *BookingService) cancel(ctx context.Context, actor domain.Principal, booking *domain.Booking) (*domain.Booking, error) {
	if booking.Status != domain.BookingStatusPending {
		s.metrics.Booking(ctx, "cancel", "rejected")
		return nil, domain.NewValidationError("Only pending bookings can be cancelled.")
	}
	if err := s.bookings.Cancel(ctx, booking, s.reserve); err != nil {
		s.metrics.Booking(ctx, "cancel", "error")
		return nil, err
	}
	booking.Status = domain.BookingStatusCancelled
	s.metrics.Booking(ctx, "cancel", "ok")
	s.inventoryMoved(ctx, booking.Selection)

	s.logger.Info("booking cancelled", zap.Int64("booking_id", booking.ID), zap.String("reference", booking.Reference))
	s.publish(ctx, kafka.EventBookingCancelled, actor, booking)
	return booking, nil
}

// inventoryMoved drops cached listings of the reserved or released kinds.
func (s *BookingService) inventoryMoved(ctx context.Context, sel domain.Selection) {
	if !s.reserve || s.invalidator == nil {
		return
	}
	s.invalidator.Invalidate(ctx, sel.Kinds()...)
}

// publish emits the event to the booking topic and, when configured, the
// notifications topic. Failures are logged.
func (s *BookingService) publish(ctx context.Context, eventType string, actor domain.Principal, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:            eventType,
		BookingID:       booking.ID,
		Reference:       booking.Reference,
		UserID:          booking.UserID,
		Status:          string(booking.Status),
		PackageID:       booking.PackageID,
		TotalPriceCents: booking.TotalPriceCents,
		ItemCount:       booking.Selection.Count(),
		OccurredAt:      s.now(),
	}
	if actor.UserID == booking.UserID {
		event.Email = actor.Email
	}

	topics := []string{s.bookingTopic}
	if s.notificationsTopic != "" {
		topics = append(topics, s.notificationsTopic)
	}
	for _, topic := range topics {
		if err := s.producer.Publish(ctx, topic, booking.Reference, event); err != nil {
			s.logger.Warn("failed to publish booking event",
				zap.String("type", eventType),
				zap.String("topic", topic),
				zap.String("reference", booking.Reference),
				zap.Error(err),
			)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
