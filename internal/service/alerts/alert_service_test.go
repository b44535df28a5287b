package alerts

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tulsagolf/teetimes/internal/domain"
	"github.com/tulsagolf/teetimes/internal/kafka"
	"github.com/tulsagolf/teetimes/internal/registry"
)

// MockAlertRepository is a mock implementation of repository.AlertRepository
type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockAlertRepository) List(ctx context.Context) ([]domain.Alert, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Alert), args.Error(1)
}

func (m *MockAlertRepository) ListByPhone(ctx context.Context, phone string) ([]domain.Alert, error) {
	args := m.Called(ctx, phone)
	return args.Get(0).([]domain.Alert), args.Error(1)
}

func (m *MockAlertRepository) ListActive(ctx context.Context) ([]domain.Alert, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Alert), args.Error(1)
}

func (m *MockAlertRepository) HasActive(ctx context.Context, phone, courseKey, date string) (bool, error) {
	args := m.Called(ctx, phone, courseKey, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockAlertRepository) Deactivate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAlertRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSearch struct {
	mock.Mock
}

func (m *MockSearch) Search(ctx context.Context, date string, players int, courseKeys []string) (*domain.SearchResult, error) {
	args := m.Called(ctx, date, players, courseKeys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SearchResult), args.Error(1)
}

func (m *MockSearch) Courses() []domain.Course {
	args := m.Called()
	return args.Get(0).([]domain.Course)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func newTestService(repo *MockAlertRepository, search *MockSearch, producer *MockProducer) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, registry.New(), search, producer, "teetime-notifications", logger)
}

func emptyResult(date string) *domain.SearchResult {
	return &domain.SearchResult{Date: date, Players: 1, TeeTimes: []domain.TeeTime{}}
}

func validInput() CreateAlertInput {
	return CreateAlertInput{
		Phone:     "+19185551234",
		CourseKey: "lafortune",
		Date:      "06-15-2025",
		StartTime: "07:00",
		EndTime:   "10:00",
	}
}

func TestAlertService_Create(t *testing.T) {
	repo := &MockAlertRepository{}
	search := &MockSearch{}
	service := newTestService(repo, search, &MockProducer{})

	ctx := context.Background()

	repo.On("HasActive", ctx, "+19185551234", "lafortune", "06-15-2025").Return(false, nil)
	search.On("Search", ctx, "06-15-2025", 1, []string{"lafortune"}).Return(emptyResult("06-15-2025"), nil)
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Alert")).Return(nil)

	alert, err := service.Create(ctx, validInput())

	assert.NoError(t, err)
	assert.NotEmpty(t, alert.ID)
	assert.True(t, alert.Active)
	assert.Equal(t, 1, alert.MinSpots)

	repo.AssertExpectations(t)
	search.AssertExpectations(t)
}

func TestAlertService_Create_MissingFields(t *testing.T) {
	repo := &MockAlertRepository{}
	service := newTestService(repo, &MockSearch{}, &MockProducer{})

	input := validInput()
	input.Phone = ""

	_, err := service.Create(context.Background(), input)

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create")
}

func TestAlertService_Create_UnknownCourse(t *testing.T) {
	repo := &MockAlertRepository{}
	service := newTestService(repo, &MockSearch{}, &MockProducer{})

	input := validInput()
	input.CourseKey = "pebblebeach"

	_, err := service.Create(context.Background(), input)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown course")
	repo.AssertNotCalled(t, "Create")
}

func TestAlertService_Create_InvalidWindow(t *testing.T) {
	repo := &MockAlertRepository{}
	service := newTestService(repo, &MockSearch{}, &MockProducer{})

	input := validInput()
	input.StartTime = "10:00"
	input.EndTime = "07:00"

	_, err := service.Create(context.Background(), input)

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create")
}

func TestAlertService_Create_Duplicate(t *testing.T) {
	repo := &MockAlertRepository{}
	search := &MockSearch{}
	service := newTestService(repo, search, &MockProducer{})

	ctx := context.Background()

	repo.On("HasActive", ctx, "+19185551234", "lafortune", "06-15-2025").Return(true, nil)

	_, err := service.Create(ctx, validInput())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	repo.AssertNotCalled(t, "Create")
	search.AssertNotCalled(t, "Search")
}

func TestAlertService_Create_AlreadyAvailable(t *testing.T) {
	repo := &MockAlertRepository{}
	search := &MockSearch{}
	service := newTestService(repo, search, &MockProducer{})

	ctx := context.Background()

	repo.On("HasActive", ctx, "+19185551234", "lafortune", "06-15-2025").Return(false, nil)
	search.On("Search", ctx, "06-15-2025", 1, []string{"lafortune"}).Return(&domain.SearchResult{
		TeeTimes: []domain.TeeTime{
			{Course: "LaFortune Park", Time: "2025-06-15 08:30", AvailableSpots: 4},
		},
	}, nil)

	_, err := service.Create(ctx, validInput())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "go book it")
	repo.AssertNotCalled(t, "Create")
}

func TestAlertService_Sweep_Notifies(t *testing.T) {
	repo := &MockAlertRepository{}
	search := &MockSearch{}
	producer := &MockProducer{}
	service := newTestService(repo, search, producer)
	service.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	ctx := context.Background()

	alert := domain.Alert{
		ID: "a-1", Phone: "+19185551234", CourseKey: "lafortune",
		Date: "06-15-2025", StartTime: "07:00", EndTime: "10:00", MinSpots: 2, Active: true,
	}
	repo.On("ListActive", ctx).Return([]domain.Alert{alert}, nil)
	search.On("Search", ctx, "06-15-2025", 2, []string{"lafortune"}).Return(&domain.SearchResult{
		TeeTimes: []domain.TeeTime{
			{Course: "LaFortune Park", Time: "2025-06-15 06:00", AvailableSpots: 4},
			{Course: "LaFortune Park", Time: "2025-06-15 08:30", AvailableSpots: 4},
		},
	}, nil)
	producer.On("Publish", ctx, "teetime-notifications", "a-1", mock.MatchedBy(func(v interface{}) bool {
		event, ok := v.(kafka.TeeTimeEvent)
		return ok && event.Type == "teetime_available" && event.Time == "2025-06-15 08:30" && event.Phone == "+19185551234"
	})).Return(nil)
	repo.On("Deactivate", ctx, "a-1").Return(nil)

	notified, err := service.Sweep(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, notified)

	repo.AssertExpectations(t)
	search.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestAlertService_Sweep_NoMatch(t *testing.T) {
	repo := &MockAlertRepository{}
	search := &MockSearch{}
	producer := &MockProducer{}
	service := newTestService(repo, search, producer)
	service.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	ctx := context.Background()

	alert := domain.Alert{
		ID: "a-1", Phone: "+19185551234", CourseKey: "lafortune",
		Date: "06-15-2025", StartTime: "07:00", EndTime: "10:00", MinSpots: 4, Active: true,
	}
	repo.On("ListActive", ctx).Return([]domain.Alert{alert}, nil)
	search.On("Search", ctx, "06-15-2025", 4, []string{"lafortune"}).Return(&domain.SearchResult{
		TeeTimes: []domain.TeeTime{
			{Course: "LaFortune Park", Time: "2025-06-15 08:30", AvailableSpots: 2},
			{Course: "LaFortune Park", Time: "2025-06-15 13:00", AvailableSpots: 4},
		},
	}, nil)

	notified, err := service.Sweep(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 0, notified)

	producer.AssertNotCalled(t, "Publish")
	repo.AssertNotCalled(t, "Deactivate")
}

func TestAlertService_Sweep_DeactivatesPastDates(t *testing.T) {
	repo := &MockAlertRepository{}
	search := &MockSearch{}
	producer := &MockProducer{}
	service := newTestService(repo, search, producer)
	service.now = func() time.Time { return time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC) }

	ctx := context.Background()

	alert := domain.Alert{ID: "a-1", CourseKey: "lafortune", Date: "06-15-2025", StartTime: "07:00", EndTime: "10:00", MinSpots: 1, Active: true}
	repo.On("ListActive", ctx).Return([]domain.Alert{alert}, nil)
	repo.On("Deactivate", ctx, "a-1").Return(nil)

	notified, err := service.Sweep(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 0, notified)

	repo.AssertExpectations(t)
	search.AssertNotCalled(t, "Search")
	producer.AssertNotCalled(t, "Publish")
}
