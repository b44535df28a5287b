package alerts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tulsagolf/teetimes/internal/domain"
	"github.com/tulsagolf/teetimes/internal/kafka"
	"github.com/tulsagolf/teetimes/internal/registry"
	"github.com/tulsagolf/teetimes/internal/repository"
	"github.com/tulsagolf/teetimes/internal/service/teetimes"
)

type AlertUseCase interface {
	Create(ctx context.Context, input CreateAlertInput) (*domain.Alert, error)
	List(ctx context.Context, phone string) ([]domain.Alert, error)
	Delete(ctx context.Context, id string) error
	Sweep(ctx context.Context) (int, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateAlertInput struct {
	Phone     string `json:"phone"`
	CourseKey string `json:"course"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	MinSpots  int    `json:"minSpots"`
}

type Service struct {
	alerts   repository.AlertRepository
	registry *registry.Registry
	search   teetimes.SearchUseCase
	producer Producer
	topic    string
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(alerts repository.AlertRepository, reg *registry.Registry, search teetimes.SearchUseCase, producer Producer, topic string, logger *slog.Logger) *Service {
	return &Service{
		alerts:   alerts,
		registry: reg,
		search:   search,
		producer: producer,
		topic:    topic,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, input CreateAlertInput) (*domain.Alert, error) {
	if input.Phone == "" || input.CourseKey == "" || input.Date == "" || input.StartTime == "" || input.EndTime == "" {
		return nil, errors.New("phone, course, date, startTime and endTime are required")
	}

	course, ok := s.registry.Get(input.CourseKey)
	if !ok {
		return nil, fmt.Errorf("unknown course %q", input.CourseKey)
	}

	start := timeToMinutes(input.StartTime)
	end := timeToMinutes(input.EndTime)
	if start >= end {
		return nil, errors.New("start time must be before end time")
	}

	exists, err := s.alerts.HasActive(ctx, input.Phone, input.CourseKey, input.Date)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("an alert for %s on %s already exists; delete it first", course.Name, input.Date)
	}

	minSpots := input.MinSpots
	if minSpots <= 0 {
		minSpots = 1
	}

	// If something inside the window is already bookable there is nothing
	// to wait for; tell the user to go book it.
	if result, err := s.search.Search(ctx, input.Date, minSpots, []string{input.CourseKey}); err == nil {
		for _, tt := range result.TeeTimes {
			if matchesWindow(tt, start, end, minSpots) {
				return nil, fmt.Errorf("a tee time at %s is already available at %s, go book it", course.Name, tt.Time)
			}
		}
	}

	alert := &domain.Alert{
		ID:        uuid.NewString(),
		Phone:     input.Phone,
		CourseKey: input.CourseKey,
		Date:      input.Date,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		MinSpots:  minSpots,
		Active:    true,
	}
	if err := s.alerts.Create(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

func (s *Service) List(ctx context.Context, phone string) ([]domain.Alert, error) {
	if phone != "" {
		return s.alerts.ListByPhone(ctx, phone)
	}
	return s.alerts.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.alerts.Delete(ctx, id)
}

// Sweep checks every active alert against current availability. A matching
// tee time publishes one notification event and deactivates the alert;
// alerts whose date has passed are deactivated without firing. Returns the
// number of notifications published.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	active, err := s.alerts.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	notified := 0
	for _, alert := range active {
		if s.dateHasPassed(alert.Date) {
			if err := s.alerts.Deactivate(ctx, alert.ID); err != nil {
				s.logger.Warn("deactivate stale alert failed", "alert", alert.ID, "error", err)
			}
			continue
		}

		result, err := s.search.Search(ctx, alert.Date, alert.MinSpots, []string{alert.CourseKey})
		if err != nil {
			s.logger.Warn("alert availability check failed", "alert", alert.ID, "error", err)
			continue
		}

		start := timeToMinutes(alert.StartTime)
		end := timeToMinutes(alert.EndTime)
		for _, tt := range result.TeeTimes {
			if !matchesWindow(tt, start, end, alert.MinSpots) {
				continue
			}

			event := kafka.TeeTimeEvent{
				Type:           "teetime_available",
				AlertID:        alert.ID,
				Phone:          alert.Phone,
				Course:         tt.Course,
				Date:           alert.Date,
				Time:           tt.Time,
				AvailableSpots: tt.AvailableSpots,
			}
			if err := s.producer.Publish(ctx, s.topic, alert.ID, event); err != nil {
				s.logger.Warn("publish notification failed", "alert", alert.ID, "error", err)
				break
			}
			if err := s.alerts.Deactivate(ctx, alert.ID); err != nil {
				s.logger.Warn("deactivate fired alert failed", "alert", alert.ID, "error", err)
			}
			notified++
			break
		}
	}
	return notified, nil
}

func (s *Service) dateHasPassed(date string) bool {
	d, err := time.Parse("01-02-2006", date)
	if err != nil {
		return false
	}
	today := s.now()
	return d.Before(time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()))
}

func matchesWindow(tt domain.TeeTime, start, end, minSpots int) bool {
	if tt.AvailableSpots < minSpots {
		return false
	}
	mins := slotMinutes(tt.Time)
	if mins < 0 {
		return false
	}
	return mins >= start && mins <= end
}

// slotMinutes pulls the time-of-day out of an upstream time string such as
// "2025-06-15 08:00" or "2025-06-15T08:00:00" as minutes since midnight.
// Returns -1 when no clock part can be found.
func slotMinutes(raw string) int {
	idx := strings.IndexAny(raw, " T")
	if idx < 0 {
		return -1
	}
	return timeToMinutes(raw[idx+1:])
}

func timeToMinutes(clock string) int {
	parts := strings.SplitN(clock, ":", 3)
	if len(parts) < 2 {
		return -1
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return -1
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil {
		return -1
	}
	return hours*60 + mins
}

var _ AlertUseCase = (*Service)(nil)
