package teetimes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tulsagolf/teetimes/internal/cache"
	"github.com/tulsagolf/teetimes/internal/domain"
	"github.com/tulsagolf/teetimes/internal/registry"
)

const defaultPlayers = 2

type SearchUseCase interface {
	Search(ctx context.Context, date string, players int, courseKeys []string) (*domain.SearchResult, error)
	Courses() []domain.Course
}

// Upstream is the ForeUp client surface the service needs.
type Upstream interface {
	DiscoverScheduleID(ctx context.Context, facilityID int) (int, error)
	FetchTimes(ctx context.Context, course domain.Course, scheduleID int, scheduleLabel, date string, players int) ([]domain.TeeTime, error)
}

// Service fans a search out across courses, caching discovered schedule
// ids and fetched times. Upstream failures stay contained to the schedule
// they hit: the affected schedule contributes no records and everything
// else still comes back.
type Service struct {
	registry    *registry.Registry
	upstream    Upstream
	schedules   cache.Store
	times       cache.Store
	scheduleTTL time.Duration
	timesTTL    time.Duration
	logger      *slog.Logger
}

func NewService(reg *registry.Registry, upstream Upstream, schedules, times cache.Store, scheduleTTL, timesTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		registry:    reg,
		upstream:    upstream,
		schedules:   schedules,
		times:       times,
		scheduleTTL: scheduleTTL,
		timesTTL:    timesTTL,
		logger:      logger,
	}
}

func (s *Service) Courses() []domain.Course {
	return s.registry.All()
}

// Search aggregates tee times for one date/party-size query. Each course
// is fetched in its own goroutine and the call returns once every fetch
// finished or failed on its own; no course can fail the whole search.
func (s *Service) Search(ctx context.Context, date string, players int, courseKeys []string) (*domain.SearchResult, error) {
	if players <= 0 {
		players = defaultPlayers
	}
	if len(courseKeys) == 0 {
		for _, c := range s.registry.All() {
			courseKeys = append(courseKeys, c.Key)
		}
	}

	results := make([][]domain.TeeTime, len(courseKeys))
	var wg sync.WaitGroup
	for i, key := range courseKeys {
		course, ok := s.registry.Get(strings.TrimSpace(key))
		if !ok {
			s.logger.Warn("unknown course key, skipping", "course", key)
			continue
		}

		wg.Add(1)
		go func(i int, course domain.Course) {
			defer wg.Done()
			results[i] = s.courseTimes(ctx, course, date, players)
		}(i, course)
	}
	wg.Wait()

	merged := make([]domain.TeeTime, 0)
	for _, r := range results {
		merged = append(merged, r...)
	}
	sortByTime(merged)

	return &domain.SearchResult{
		Date:     date,
		Players:  players,
		Count:    len(merged),
		TeeTimes: merged,
	}, nil
}

func (s *Service) courseTimes(ctx context.Context, course domain.Course, date string, players int) []domain.TeeTime {
	var all []domain.TeeTime
	for _, schedule := range course.Schedules {
		scheduleID, ok := s.resolveScheduleID(ctx, course, schedule)
		if !ok {
			continue
		}
		all = append(all, s.scheduleTimes(ctx, course, scheduleID, schedule.Label, date, players)...)
	}
	return all
}

// resolveScheduleID returns the static id when configured, otherwise the
// cached discovery result, otherwise runs discovery and caches it for the
// schedule TTL. An unresolved schedule is skipped, not an error.
func (s *Service) resolveScheduleID(ctx context.Context, course domain.Course, schedule domain.Schedule) (int, bool) {
	if schedule.ScheduleID != 0 {
		return schedule.ScheduleID, true
	}

	key := scheduleKey(course.FacilityID)
	if data, ok, err := s.schedules.Get(ctx, key); err == nil && ok {
		if id, err := strconv.Atoi(string(data)); err == nil {
			return id, true
		}
	}

	id, err := s.upstream.DiscoverScheduleID(ctx, course.FacilityID)
	if err != nil {
		s.logger.Warn("schedule discovery failed", "course", course.Key, "facility", course.FacilityID, "error", err)
		return 0, false
	}

	if err := s.schedules.Set(ctx, key, []byte(strconv.Itoa(id)), s.scheduleTTL); err != nil {
		s.logger.Warn("schedule cache write failed", "course", course.Key, "error", err)
	}
	return id, true
}

func (s *Service) scheduleTimes(ctx context.Context, course domain.Course, scheduleID int, label, date string, players int) []domain.TeeTime {
	key := timesKey(course.Key, scheduleID, date, players)
	if data, ok, err := s.times.Get(ctx, key); err == nil && ok {
		var cached []domain.TeeTime
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached
		}
	}

	times, err := s.upstream.FetchTimes(ctx, course, scheduleID, label, date, players)
	if err != nil {
		s.logger.Warn("times fetch failed", "course", course.Key, "schedule", scheduleID, "error", err)
		return nil
	}

	if data, err := json.Marshal(times); err == nil {
		if err := s.times.Set(ctx, key, data, s.timesTTL); err != nil {
			s.logger.Warn("times cache write failed", "course", course.Key, "schedule", scheduleID, "error", err)
		}
	}
	return times
}

// sortByTime orders records by their raw time string. A record without a
// time expresses no preference, so the stable sort keeps such records in
// their incoming relative order.
func sortByTime(times []domain.TeeTime) {
	sort.SliceStable(times, func(i, j int) bool {
		if times[i].Time == "" || times[j].Time == "" {
			return false
		}
		return times[i].Time < times[j].Time
	})
}

func scheduleKey(facilityID int) string {
	return fmt.Sprintf("schedule:%d", facilityID)
}

func timesKey(courseKey string, scheduleID int, date string, players int) string {
	return fmt.Sprintf("times:%s:%d:%s:%d", courseKey, scheduleID, date, players)
}

var _ SearchUseCase = (*Service)(nil)
