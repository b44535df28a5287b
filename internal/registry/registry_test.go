package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tulsagolf/teetimes/internal/domain"
)

func TestRegistry_Get(t *testing.T) {
	reg := New()

	course, ok := reg.Get("lafortune")
	assert.True(t, ok)
	assert.Equal(t, "LaFortune Park", course.Name)
	assert.NotZero(t, course.FacilityID)
	assert.NotEmpty(t, course.Schedules)

	_, ok = reg.Get("pebblebeach")
	assert.False(t, ok)
}

func TestRegistry_All_StableOrder(t *testing.T) {
	reg := New()

	first := reg.All()
	second := reg.All()

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.Equal(t, "lafortune", first[0].Key)
}

func TestRegistry_ExtraCourses(t *testing.T) {
	extra := domain.Course{
		Key:        "southlakes",
		Name:       "South Lakes",
		FacilityID: 20244,
		Schedules:  []domain.Schedule{{ScheduleID: 0, Label: ""}},
	}
	reg := New(extra)

	course, ok := reg.Get("southlakes")
	assert.True(t, ok)
	assert.Equal(t, "South Lakes", course.Name)

	all := reg.All()
	assert.Equal(t, "southlakes", all[len(all)-1].Key)
}

func TestRegistry_ExtraOverridesBuiltin(t *testing.T) {
	override := domain.Course{
		Key:        "lafortune",
		Name:       "LaFortune Park (North)",
		FacilityID: 20095,
		Schedules:  []domain.Schedule{{ScheduleID: 22846, Label: ""}},
	}
	reg := New(override)

	course, _ := reg.Get("lafortune")
	assert.Equal(t, "LaFortune Park (North)", course.Name)

	// Overriding must not duplicate the entry.
	count := 0
	for _, c := range reg.All() {
		if c.Key == "lafortune" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
