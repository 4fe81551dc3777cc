package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/flightreservation/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Search(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) ReadSeatState(ctx context.Context, id uuid.UUID) (domain.SeatState, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.SeatState), args.Error(1)
}

func (m *MockFlightRepository) ConditionalUpdateBooked(ctx context.Context, id uuid.UUID, expectedVersion int64, newBooked int) (int64, error) {
	args := m.Called(ctx, id, expectedVersion, newBooked)
	return args.Get(0).(int64), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func sampleFlights() []domain.Flight {
	return []domain.Flight{
		{
			ID:            uuid.New(),
			DepartureCity: "Paris",
			ArrivalCity:   "Lyon",
			DepartureTime: time.Now().Add(24 * time.Hour),
			ArrivalTime:   time.Now().Add(26 * time.Hour),
			PriceCents:    15000,
			Capacity:      180,
			Booked:        12,
		},
	}
}

func TestFlightService_Search_CacheMiss(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache, time.Minute)

	ctx := context.Background()
	flights := sampleFlights()

	mockCache.On("GetFlights", ctx).Return(([]domain.Flight)(nil), nil).Once()
	mockRepo.On("Search", ctx, domain.FlightFilter{}).Return(flights, nil).Once()
	mockCache.On("SetFlights", ctx, flights).Return(nil).Once()

	result, err := service.Search(ctx, domain.FlightFilter{})

	assert.NoError(t, err)
	assert.Equal(t, flights, result)

	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_Search_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache, time.Minute)

	ctx := context.Background()
	flights := sampleFlights()

	mockCache.On("GetFlights", ctx).Return(flights, nil).Once()

	result, err := service.Search(ctx, domain.FlightFilter{})

	assert.NoError(t, err)
	assert.Equal(t, flights, result)

	mockRepo.AssertNotCalled(t, "Search")
	mockCache.AssertExpectations(t)
}

func TestFlightService_Search_FilteredBypassesCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache, time.Minute)

	ctx := context.Background()
	filter := domain.FlightFilter{DepartureCity: "Paris"}
	flights := sampleFlights()

	mockRepo.On("Search", ctx, filter).Return(flights, nil).Once()

	result, err := service.Search(ctx, filter)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)

	mockCache.AssertNotCalled(t, "GetFlights")
	mockCache.AssertNotCalled(t, "SetFlights")
	mockRepo.AssertExpectations(t)
}

func TestFlightService_Search_RepositoryError(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache, time.Minute)

	ctx := context.Background()
	expectedErr := errors.New("database error")

	mockCache.On("GetFlights", ctx).Return(([]domain.Flight)(nil), nil).Once()
	mockRepo.On("Search", ctx, domain.FlightFilter{}).Return(([]domain.Flight)(nil), expectedErr).Once()

	result, err := service.Search(ctx, domain.FlightFilter{})

	assert.Nil(t, result)
	assert.Equal(t, expectedErr, err)
}

func TestFlightService_Create_InvalidatesCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache, time.Minute)

	ctx := context.Background()
	flight := &domain.Flight{DepartureCity: "Paris", ArrivalCity: "Nice"}

	mockRepo.On("Create", ctx, flight).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	err := service.Create(ctx, flight)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}
