// Package mocks holds testify mocks of the repository and messaging interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Domenick1991/fanzone/internal/domain"
)

type CatalogRepository[T domain.CatalogItem] struct {
	mock.Mock
}

func (m *CatalogRepository[T]) List(ctx context.Context, filter domain.CatalogFilter) ([]T, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]T), args.Error(1)
}

func (m *CatalogRepository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *CatalogRepository[T]) GetByIDs(ctx context.Context, ids []int64) ([]T, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]T), args.Error(1)
}

func (m *CatalogRepository[T]) Create(ctx context.Context, item *T) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *CatalogRepository[T]) Update(ctx context.Context, item *T) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *CatalogRepository[T]) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *CatalogRepository[T]) SearchByLocation(ctx context.Context, query string, limit int) ([]T, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]T), args.Error(1)
}

func (m *CatalogRepository[T]) CountByLocation(ctx context.Context, query string) (int, error) {
	args := m.Called(ctx, query)
	return args.Int(0), args.Error(1)
}

type HotelRepository struct {
	CatalogRepository[domain.Hotel]
}

func (m *HotelRepository) GetOrCreateByName(ctx context.Context, hotel domain.Hotel) (*domain.Hotel, bool, error) {
	args := m.Called(ctx, hotel)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Hotel), args.Bool(1), args.Error(2)
}

func (m *HotelRepository) ListSuggested(ctx context.Context) ([]domain.SuggestedHotel, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.SuggestedHotel), args.Error(1)
}

type BookingRepository struct {
	mock.Mock
}

func (m *BookingRepository) Create(ctx context.Context, booking *domain.Booking, reserve bool) error {
	args := m.Called(ctx, booking, reserve)
	return args.Error(0)
}

func (m *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *BookingRepository) List(ctx context.Context, userID *int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *BookingRepository) Cancel(ctx context.Context, booking *domain.Booking, release bool) error {
	args := m.Called(ctx, booking, release)
	return args.Error(0)
}

type PackageRepository struct {
	mock.Mock
}

func (m *PackageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *PackageRepository) GetByID(ctx context.Context, id int64) (*domain.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

func (m *PackageRepository) List(ctx context.Context) ([]domain.Package, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Package), args.Error(1)
}

func (m *PackageRepository) UpdateStatus(ctx context.Context, id int64, status domain.PackageStatus) (*domain.Package, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

func (m *PackageRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ConversationRepository struct {
	mock.Mock
}

func (m *ConversationRepository) Create(ctx context.Context, conv *domain.Conversation) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *ConversationRepository) AttachResponse(ctx context.Context, id int64, response string) error {
	args := m.Called(ctx, id, response)
	return args.Error(0)
}

func (m *ConversationRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.Conversation, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).([]domain.Conversation), args.Error(1)
}

type Producer struct {
	mock.Mock
}

func (m *Producer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}
