package domain

import "time"

// Alert is a standing request to be notified when a tee time opens up at a
// course inside a time-of-day window on a given date. Times are 24h "HH:MM"
// strings; Date uses the same MM-DD-YYYY form the search API takes.
type Alert struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	CourseKey string    `json:"courseKey"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	MinSpots  int       `json:"minSpots,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}
