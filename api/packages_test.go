package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/Domenick1991/fanzone/internal/service/packages"
)

type MockPackageUseCase struct {
	mock.Mock
}

func (m *MockPackageUseCase) Compose(ctx context.Context, req packages.ComposeRequest) (*domain.Package, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

func (m *MockPackageUseCase) List(ctx context.Context) ([]domain.Package, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Package), args.Error(1)
}

func (m *MockPackageUseCase) Get(ctx context.Context, id int64) (*domain.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

func (m *MockPackageUseCase) Create(ctx context.Context, input packages.CreateInput) (*domain.Package, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

func (m *MockPackageUseCase) UpdateStatus(ctx context.Context, id int64, status domain.PackageStatus) (*domain.Package, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

func (m *MockPackageUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newPackageRouter(service *MockPackageUseCase, bookings *MockBookingUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := NewAuth(stubAuthenticator{
		"user-token":  testUser,
		"admin-token": {UserID: 1, Role: domain.RoleAdmin},
	})
	NewPackageHandler(service, bookings).Register(r.Group("/api/packages"), auth)
	return r
}

func TestPackageHandler_compose(t *testing.T) {
	mockService := &MockPackageUseCase{}
	r := newPackageRouter(mockService, &MockBookingUseCase{})

	mockService.On("Compose", mock.Anything, packages.ComposeRequest{Location: "Casablanca"}).
		Return(&domain.Package{ID: 4, Name: "Sports Tourism Package - Casablanca", TotalPriceCents: 40000, DiscountPercent: 15, FinalPriceCents: 34000}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/packages/compose", strings.NewReader(`{"location":"Casablanca"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer user-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"final_price_cents":34000`)
	mockService.AssertExpectations(t)
}

func TestPackageHandler_compose_NothingNearby(t *testing.T) {
	mockService := &MockPackageUseCase{}
	r := newPackageRouter(mockService, &MockBookingUseCase{})

	mockService.On("Compose", mock.Anything, packages.ComposeRequest{Location: "Nowhere"}).
		Return(nil, domain.ErrNotFound).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/packages/compose", strings.NewReader(`{"location":"Nowhere"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer user-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPackageHandler_book(t *testing.T) {
	mockBookings := &MockBookingUseCase{}
	r := newPackageRouter(&MockPackageUseCase{}, mockBookings)

	pkgID := int64(4)
	mockBookings.On("BookPackage", mock.Anything, testUser, int64(4)).
		Return(&domain.Booking{ID: 11, UserID: testUser.UserID, PackageID: &pkgID, TotalPriceCents: 34000, Status: domain.BookingStatusPending}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/packages/4/book", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockBookings.AssertExpectations(t)
}

func TestPackageHandler_updateStatus_RequiresAdmin(t *testing.T) {
	mockService := &MockPackageUseCase{}
	r := newPackageRouter(mockService, &MockBookingUseCase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/api/packages/4", strings.NewReader(`{"status":"active"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer user-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestPackageHandler_RequiresToken(t *testing.T) {
	mockService := &MockPackageUseCase{}
	r := newPackageRouter(mockService, &MockBookingUseCase{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/packages", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
