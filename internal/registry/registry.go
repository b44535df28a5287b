package registry

import (
	"github.com/tulsagolf/teetimes/internal/domain"
)

// builtinCourses is the Tulsa-area set of ForeUp facilities. A schedule id
// of 0 means the id is not known statically and gets discovered from the
// booking page at runtime.
var builtinCourses = []domain.Course{
	{
		Key:        "lafortune",
		Name:       "LaFortune Park",
		FacilityID: 20095,
		Schedules:  []domain.Schedule{{ScheduleID: 22846, Label: "Championship 18"}},
		BookingURL: "https://foreupsoftware.com/index.php/booking/20095#/teetimes",
	},
	{
		Key:        "battlecreek",
		Name:       "Battle Creek",
		FacilityID: 20097,
		Schedules:  []domain.Schedule{{ScheduleID: 22850, Label: ""}},
		BookingURL: "https://foreupsoftware.com/index.php/booking/20097#/teetimes",
	},
	{
		Key:        "pagebelcher",
		Name:       "Page Belcher",
		FacilityID: 20099,
		Schedules: []domain.Schedule{
			{ScheduleID: 22902, Label: "Olde Page"},
			{ScheduleID: 0, Label: "Stone Creek"},
		},
		BookingURL: "https://foreupsoftware.com/index.php/booking/20099#/teetimes",
	},
	{
		Key:        "mohawk",
		Name:       "Mohawk Park",
		FacilityID: 20101,
		Schedules: []domain.Schedule{
			{ScheduleID: 22910, Label: "Pecan Valley"},
			{ScheduleID: 0, Label: "Woodbine"},
		},
		BookingURL: "https://foreupsoftware.com/index.php/booking/20101#/teetimes",
	},
}

// Registry is the static course lookup. It is built once at startup and
// read-only afterwards; discovered schedule ids live in the cache beside
// it, never mutated into these configs.
type Registry struct {
	courses map[string]domain.Course
	order   []string
}

func New(extra ...domain.Course) *Registry {
	r := &Registry{courses: make(map[string]domain.Course)}
	for _, c := range builtinCourses {
		r.add(c)
	}
	for _, c := range extra {
		if c.Key == "" {
			continue
		}
		r.add(c)
	}
	return r
}

func (r *Registry) add(c domain.Course) {
	if _, exists := r.courses[c.Key]; !exists {
		r.order = append(r.order, c.Key)
	}
	r.courses[c.Key] = c
}

func (r *Registry) Get(key string) (domain.Course, bool) {
	c, ok := r.courses[key]
	return c, ok
}

// All returns the courses in registration order.
func (r *Registry) All() []domain.Course {
	out := make([]domain.Course, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.courses[key])
	}
	return out
}
