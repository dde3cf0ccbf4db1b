package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/Domenick1991/fanzone/internal/kafka"
	"github.com/Domenick1991/fanzone/internal/mocks"
	"github.com/Domenick1991/fanzone/internal/service/catalog"
)

const (
	bookingTopic       = "fanzone.bookings"
	notificationsTopic = "fanzone.notifications"
)

var (
	owner = domain.Principal{UserID: 7, Username: "fan", Email: "fan@example.com", Role: domain.RoleUser}
	admin = domain.Principal{UserID: 1, Username: "root", Role: domain.RoleAdmin}
)

type fixture struct {
	bookings   *mocks.BookingRepository
	packages   *mocks.PackageRepository
	flights    *mocks.CatalogRepository[domain.Flight]
	hotels     *mocks.HotelRepository
	matches    *mocks.CatalogRepository[domain.MatchTicket]
	activities *mocks.CatalogRepository[domain.Activity]
	producer   *mocks.Producer
	service    *BookingService
}

func newFixture(opts ...BookingServiceOption) *fixture {
	f := &fixture{
		bookings:   &mocks.BookingRepository{},
		packages:   &mocks.PackageRepository{},
		flights:    &mocks.CatalogRepository[domain.Flight]{},
		hotels:     &mocks.HotelRepository{},
		matches:    &mocks.CatalogRepository[domain.MatchTicket]{},
		activities: &mocks.CatalogRepository[domain.Activity]{},
		producer:   &mocks.Producer{},
	}
	opts = append([]BookingServiceOption{WithNotificationsTopic(notificationsTopic)}, opts...)
	f.service = NewBookingService(f.bookings, f.packages, catalog.Repositories{
		Flights:      f.flights,
		Hotels:       f.hotels,
		MatchTickets: f.matches,
		Activities:   f.activities,
	}, f.producer, bookingTopic, zap.NewNop(), opts...)
	return f
}

// expectItems prices one flight at 100.00 and one hotel at 50.00.
func (f *fixture) expectItems() {
	f.flights.On("GetByIDs", mock.Anything, []int64{1}).Return([]domain.Flight{{ID: 1, PriceCents: 10000}}, nil).Once()
	f.hotels.On("GetByIDs", mock.Anything, []int64{2}).Return([]domain.Hotel{{ID: 2, PricePerNightCents: 5000}}, nil).Once()
	f.matches.On("GetByIDs", mock.Anything, []int64(nil)).Return([]domain.MatchTicket(nil), nil).Once()
	f.activities.On("GetByIDs", mock.Anything, []int64(nil)).Return([]domain.Activity(nil), nil).Once()
}

func (f *fixture) expectPublish(eventType string) {
	matches := mock.MatchedBy(func(e kafka.BookingEvent) bool { return e.Type == eventType })
	f.producer.On("Publish", mock.Anything, bookingTopic, mock.AnythingOfType("string"), matches).Return(nil).Once()
	f.producer.On("Publish", mock.Anything, notificationsTopic, mock.AnythingOfType("string"), matches).Return(nil).Once()
}

func selection() domain.Selection {
	return domain.Selection{FlightIDs: []int64{1}, HotelIDs: []int64{2, 2}}
}

func total(cents int64) *int64 {
	return &cents
}

func TestBookingService_CreateBooking_Success(t *testing.T) {
	f := newFixture()
	f.expectItems()
	f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking"), true).
		Run(func(args mock.Arguments) {
			b := args.Get(1).(*domain.Booking)
			b.ID = 11
			b.Status = domain.BookingStatusPending
		}).
		Return(nil).Once()
	f.expectPublish(kafka.EventBookingCreated)

	booking, err := f.service.CreateBooking(context.Background(), owner, CreateBookingInput{
		Selection:       selection(),
		TotalPriceCents: total(15000),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), booking.ID)
	assert.Equal(t, owner.UserID, booking.UserID)
	assert.Equal(t, int64(15000), booking.TotalPriceCents)
	assert.Equal(t, []int64{2}, booking.HotelIDs)
	assert.NotEmpty(t, booking.Reference)
	assert.Equal(t, domain.BookingStatusPending, booking.Status)

	f.bookings.AssertExpectations(t)
	f.producer.AssertExpectations(t)
}

func TestBookingService_CreateBooking_WithoutDeclaredTotal(t *testing.T) {
	f := newFixture(WithInventoryReservation(false))
	f.expectItems()
	f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking"), false).Return(nil).Once()
	f.expectPublish(kafka.EventBookingCreated)

	booking, err := f.service.CreateBooking(context.Background(), owner, CreateBookingInput{Selection: selection()})

	require.NoError(t, err)
	assert.Equal(t, int64(15000), booking.TotalPriceCents)
	f.bookings.AssertExpectations(t)
}

func TestBookingService_CreateBooking_TotalMismatch(t *testing.T) {
	f := newFixture()
	f.flights.On("GetByIDs", mock.Anything, []int64{1}).Return([]domain.Flight{{ID: 1, PriceCents: 10000}}, nil).Once()
	f.hotels.On("GetByIDs", mock.Anything, []int64(nil)).Return([]domain.Hotel(nil), nil).Once()
	f.matches.On("GetByIDs", mock.Anything, []int64(nil)).Return([]domain.MatchTicket(nil), nil).Once()
	f.activities.On("GetByIDs", mock.Anything, []int64(nil)).Return([]domain.Activity(nil), nil).Once()

	booking, err := f.service.CreateBooking(context.Background(), owner, CreateBookingInput{
		Selection:       domain.Selection{FlightIDs: []int64{1}},
		TotalPriceCents: total(15000),
	})

	assert.Nil(t, booking)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, err, "Total price (150.00) does not match the sum of items (100.00)")
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	f.producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_CreateBooking_EmptySelection(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateBooking(context.Background(), owner, CreateBookingInput{})

	assert.EqualError(t, err, "at least one item required")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBookingService_CreateBooking_SoldOut(t *testing.T) {
	f := newFixture()
	f.expectItems()
	f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking"), true).
		Return(domain.ErrConflict).Once()

	_, err := f.service.CreateBooking(context.Background(), owner, CreateBookingInput{Selection: selection()})

	assert.ErrorIs(t, err, domain.ErrConflict)
	f.producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_CreateBooking_PublishFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.expectItems()
	f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking"), true).Return(nil).Once()
	f.producer.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("broker down")).Twice()

	booking, err := f.service.CreateBooking(context.Background(), owner, CreateBookingInput{Selection: selection()})

	assert.NoError(t, err)
	assert.NotNil(t, booking)
	f.producer.AssertExpectations(t)
}

func TestBookingService_BookPackage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	pkg := &domain.Package{
		ID:              3,
		Selection:       domain.Selection{FlightIDs: []int64{1}, ActivityIDs: []int64{4, 5}},
		TotalPriceCents: 40000,
		DiscountPercent: 15,
		FinalPriceCents: 34000,
	}
	f.packages.On("GetByID", ctx, int64(3)).Return(pkg, nil).Once()
	f.bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking"), true).Return(nil).Once()
	f.expectPublish(kafka.EventPackageBooked)

	booking, err := f.service.BookPackage(ctx, owner, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(34000), booking.TotalPriceCents)
	require.NotNil(t, booking.PackageID)
	assert.Equal(t, int64(3), *booking.PackageID)
	assert.Equal(t, pkg.Selection, booking.Selection)
	f.producer.AssertExpectations(t)
}

func TestBookingService_BookPackage_NotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.packages.On("GetByID", ctx, int64(3)).Return(nil, domain.ErrNotFound).Once()

	_, err := f.service.BookPackage(ctx, owner, 3)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_Get(t *testing.T) {
	ctx := context.Background()
	stored := &domain.Booking{ID: 5, UserID: owner.UserID, Status: domain.BookingStatusPending}

	t.Run("owner", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", ctx, int64(5)).Return(stored, nil).Once()
		got, err := f.service.Get(ctx, owner, 5)
		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("stranger", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", ctx, int64(5)).Return(stored, nil).Once()
		_, err := f.service.Get(ctx, domain.Principal{UserID: 99, Role: domain.RoleUser}, 5)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin", func(t *testing.T) {
		f := newFixture()
		f.bookings.On("GetByID", ctx, int64(5)).Return(stored, nil).Once()
		_, err := f.service.Get(ctx, admin, 5)
		assert.NoError(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		f := newFixture()
		cancelled := *stored
		cancelled.Status = domain.BookingStatusCancelled
		f.bookings.On("GetByID", ctx, int64(5)).Return(&cancelled, nil).Once()
		_, err := f.service.Get(ctx, owner, 5)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBookingService_List_ScopedToOwner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	userID := owner.UserID
	f.bookings.On("List", ctx, &userID).Return([]domain.Booking{{ID: 1}}, nil).Once()
	f.bookings.On("List", ctx, (*int64)(nil)).Return([]domain.Booking{{ID: 1}, {ID: 2}}, nil).Once()

	mine, err := f.service.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := f.service.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	f.bookings.AssertExpectations(t)
}

func TestBookingService_Cancel_ThenNotRetrievable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	pending := &domain.Booking{ID: 5, Reference: "ref", UserID: owner.UserID, Status: domain.BookingStatusPending}

	f.bookings.On("GetByID", ctx, int64(5)).Return(pending, nil).Once()
	f.bookings.On("Cancel", ctx, pending, true).Return(nil).Once()
	f.expectPublish(kafka.EventBookingCancelled)

	require.NoError(t, f.service.Cancel(ctx, owner, 5))
	assert.Equal(t, domain.BookingStatusCancelled, pending.Status)

	f.bookings.On("GetByID", ctx, int64(5)).Return(pending, nil).Once()
	_, err := f.service.Get(ctx, owner, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	f.bookings.AssertExpectations(t)
	f.producer.AssertExpectations(t)
}

func TestBookingService_Cancel_OnlyPending(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	confirmed := &domain.Booking{ID: 5, UserID: owner.UserID, Status: domain.BookingStatusConfirmed}
	f.bookings.On("GetByID", ctx, int64(5)).Return(confirmed, nil).Once()

	_, err := f.service.UpdateStatus(ctx, owner, 5, domain.BookingStatusCancelled)

	assert.EqualError(t, err, "Only pending bookings can be cancelled.")
	f.bookings.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_UpdateStatus_Confirm(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	pending := &domain.Booking{ID: 5, UserID: owner.UserID, Status: domain.BookingStatusPending}
	confirmed := &domain.Booking{ID: 5, UserID: owner.UserID, Status: domain.BookingStatusConfirmed}

	f.bookings.On("GetByID", ctx, int64(5)).Return(pending, nil).Once()
	f.bookings.On("UpdateStatus", ctx, int64(5), domain.BookingStatusConfirmed).Return(confirmed, nil).Once()
	f.expectPublish(kafka.EventBookingConfirmed)

	got, err := f.service.UpdateStatus(ctx, owner, 5, domain.BookingStatusConfirmed)

	require.NoError(t, err)
	assert.Equal(t, confirmed, got)
	f.producer.AssertExpectations(t)
}

func TestBookingService_UpdateStatus_Unknown(t *testing.T) {
	f := newFixture()

	_, err := f.service.UpdateStatus(context.Background(), owner, 5, "expired")

	assert.ErrorIs(t, err, domain.ErrValidation)
	f.bookings.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context, kinds ...domain.ItemKind) {
	m.Called(ctx, kinds)
}

func TestBookingService_CreateBooking_InvalidatesReservedKinds(t *testing.T) {
	inv := &MockInvalidator{}
	f := newFixture(WithCacheInvalidator(inv))
	f.expectItems()
	f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking"), true).Return(nil).Once()
	f.expectPublish(kafka.EventBookingCreated)
	inv.On("Invalidate", mock.Anything, []domain.ItemKind{domain.KindFlight, domain.KindHotel}).Once()

	_, err := f.service.CreateBooking(context.Background(), owner, CreateBookingInput{Selection: selection()})

	require.NoError(t, err)
	inv.AssertExpectations(t)
}

func TestBookingService_CreateBooking_NoReservationKeepsCache(t *testing.T) {
	inv := &MockInvalidator{}
	f := newFixture(WithCacheInvalidator(inv), WithInventoryReservation(false))
	f.expectItems()
	f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking"), false).Return(nil).Once()
	f.expectPublish(kafka.EventBookingCreated)

	_, err := f.service.CreateBooking(context.Background(), owner, CreateBookingInput{Selection: selection()})

	require.NoError(t, err)
	inv.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestBookingService_CreateBooking_SoldOutKeepsCache(t *testing.T) {
	inv := &MockInvalidator{}
	f := newFixture(WithCacheInvalidator(inv))
	f.expectItems()
	f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking"), true).Return(domain.ErrConflict).Once()

	_, err := f.service.CreateBooking(context.Background(), owner, CreateBookingInput{Selection: selection()})

	assert.ErrorIs(t, err, domain.ErrConflict)
	inv.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestBookingService_Cancel_InvalidatesReleasedKinds(t *testing.T) {
	inv := &MockInvalidator{}
	f := newFixture(WithCacheInvalidator(inv))
	ctx := context.Background()
	pending := &domain.Booking{
		ID: 5, UserID: owner.UserID, Status: domain.BookingStatusPending,
		Selection: domain.Selection{MatchTicketIDs: []int64{3}},
	}

	f.bookings.On("GetByID", ctx, int64(5)).Return(pending, nil).Once()
	f.bookings.On("Cancel", ctx, pending, true).Return(nil).Once()
	f.expectPublish(kafka.EventBookingCancelled)
	inv.On("Invalidate", ctx, []domain.ItemKind{domain.KindMatchTicket}).Once()

	require.NoError(t, f.service.Cancel(ctx, owner, 5))
	inv.AssertExpectations(t)
}

// Repeated ids count once, so a total declared for both copies is rejected
// against the single-item sum.
func TestBookingService_CreateBooking_DuplicateIDsPricedOnce(t *testing.T) {
	f := newFixture()
	f.flights.On("GetByIDs", mock.Anything, []int64{1}).Return([]domain.Flight{{ID: 1, PriceCents: 10000}}, nil).Once()
	f.hotels.On("GetByIDs", mock.Anything, []int64(nil)).Return([]domain.Hotel(nil), nil).Once()
	f.matches.On("GetByIDs", mock.Anything, []int64(nil)).Return([]domain.MatchTicket(nil), nil).Once()
	f.activities.On("GetByIDs", mock.Anything, []int64(nil)).Return([]domain.Activity(nil), nil).Once()

	_, err := f.service.CreateBooking(context.Background(), owner, CreateBookingInput{
		Selection:       domain.Selection{FlightIDs: []int64{1, 1}},
		TotalPriceCents: total(20000),
	})

	assert.EqualError(t, err, "Total price (200.00) does not match the sum of items (100.00)")
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_UpdateStatus_CancelledConcurrently(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	pending := &domain.Booking{ID: 5, UserID: owner.UserID, Status: domain.BookingStatusPending}

	f.bookings.On("GetByID", ctx, int64(5)).Return(pending, nil).Once()
	f.bookings.On("UpdateStatus", ctx, int64(5), domain.BookingStatusConfirmed).Return(nil, domain.ErrConflict).Once()

	_, err := f.service.UpdateStatus(ctx, owner, 5, domain.BookingStatusConfirmed)

	assert.ErrorIs(t, err, domain.ErrConflict)
	f.producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
