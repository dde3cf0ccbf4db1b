package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/Domenick1991/fanzone/internal/service/booking"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, actor domain.Principal, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) BookPackage(ctx context.Context, actor domain.Principal, packageID int64) (*domain.Booking, error) {
	args := m.Called(ctx, actor, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Get(ctx context.Context, actor domain.Principal, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) List(ctx context.Context, actor domain.Principal) ([]domain.Booking, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) UpdateStatus(ctx context.Context, actor domain.Principal, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, actor, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, actor domain.Principal, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

var testUser = domain.Principal{UserID: 7, Username: "fan", Role: domain.RoleUser}

// newAuthedContext returns a test context carrying testUser.
func newAuthedContext(method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(principalKey, testUser)
	return c, w
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	total := int64(15000)
	input := booking.CreateBookingInput{
		Selection:       domain.Selection{FlightIDs: []int64{1}, HotelIDs: []int64{2}},
		TotalPriceCents: &total,
	}
	body, _ := json.Marshal(input)
	c, w := newAuthedContext("POST", "/api/bookings", body)

	created := &domain.Booking{ID: 1, Reference: "ref-1", UserID: 7, Status: domain.BookingStatusPending, TotalPriceCents: 15000}
	mockService.On("CreateBooking", c.Request.Context(), testUser, input).Return(created, nil).Once()

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response domain.Booking
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ref-1", response.Reference)
	assert.Equal(t, domain.BookingStatusPending, response.Status)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_TotalMismatch(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)
	c, w := newAuthedContext("POST", "/api/bookings", []byte(`{"flight_ids":[1],"total_price_cents":15000}`))

	mockService.On("CreateBooking", c.Request.Context(), testUser, mock.Anything).
		Return(nil, domain.NewValidationError("Total price (150.00) does not match the sum of items (100.00)")).Once()

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Total price (150.00) does not match the sum of items (100.00)"}`, w.Body.String())
}

func TestBookingHandler_create_BadJSON(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)
	c, w := newAuthedContext("POST", "/api/bookings", []byte(`{"flight_ids":`))

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingHandler_get_Cancelled(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)
	c, w := newAuthedContext("GET", "/api/bookings/5", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}

	mockService.On("Get", c.Request.Context(), testUser, int64(5)).Return(nil, domain.ErrNotFound).Once()

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_get_InvalidID(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)
	c, w := newAuthedContext("GET", "/api/bookings/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingHandler_update_CancelReturnsNoContent(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)
	c, w := newAuthedContext("PATCH", "/api/bookings/5", []byte(`{"status":"cancelled"}`))
	c.Params = gin.Params{{Key: "id", Value: "5"}}

	mockService.On("UpdateStatus", c.Request.Context(), testUser, int64(5), domain.BookingStatusCancelled).
		Return(&domain.Booking{ID: 5, Status: domain.BookingStatusCancelled}, nil).Once()

	handler.update(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	mockService.AssertExpectations(t)
}

func TestBookingHandler_update_CancelNotPending(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)
	c, w := newAuthedContext("PATCH", "/api/bookings/5", []byte(`{"status":"cancelled"}`))
	c.Params = gin.Params{{Key: "id", Value: "5"}}

	mockService.On("UpdateStatus", c.Request.Context(), testUser, int64(5), domain.BookingStatusCancelled).
		Return(nil, domain.NewValidationError("Only pending bookings can be cancelled.")).Once()

	handler.update(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Only pending bookings can be cancelled."}`, w.Body.String())
}

func TestBookingHandler_update_Confirm(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)
	c, w := newAuthedContext("PATCH", "/api/bookings/5", []byte(`{"status":"confirmed"}`))
	c.Params = gin.Params{{Key: "id", Value: "5"}}

	mockService.On("UpdateStatus", c.Request.Context(), testUser, int64(5), domain.BookingStatusConfirmed).
		Return(&domain.Booking{ID: 5, Status: domain.BookingStatusConfirmed}, nil).Once()

	handler.update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"confirmed"`)
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)
	c, w := newAuthedContext("DELETE", "/api/bookings/5", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}

	mockService.On("Cancel", c.Request.Context(), testUser, int64(5)).Return(nil).Once()

	handler.cancel(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_list(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)
	c, w := newAuthedContext("GET", "/api/bookings", nil)

	mockService.On("List", c.Request.Context(), testUser).Return([]domain.Booking(nil), nil).Once()

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestBookingHandler_RequiresPrincipal(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/bookings", nil)

	handler.list(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
