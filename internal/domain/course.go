package domain

// Schedule is a bookable sub-resource of a course on the ForeUp platform,
// e.g. a specific layout or rate class. ScheduleID 0 means "unknown": the
// id has to be discovered by scraping the booking page.
type Schedule struct {
	ScheduleID int    `yaml:"schedule_id" json:"scheduleId"`
	Label      string `yaml:"label" json:"label"`
}

type Course struct {
	Key        string     `yaml:"key" json:"key"`
	Name       string     `yaml:"name" json:"name"`
	FacilityID int        `yaml:"facility_id" json:"facilityId"`
	Schedules  []Schedule `yaml:"schedules" json:"schedules"`
	BookingURL string     `yaml:"booking_url" json:"bookingUrl"`
}
