package domain

import "encoding/json"

// TeeTime is one bookable slot, normalized across courses. The time, fee
// and players fields are passed through from ForeUp verbatim: fees are
// opaque decimals with no assumed unit scale, players are opaque
// descriptors the upstream attaches to a slot.
type TeeTime struct {
	Course         string          `json:"course"`
	CourseKey      string          `json:"courseKey"`
	Schedule       string          `json:"schedule,omitempty"`
	Time           string          `json:"time"`
	AvailableSpots int             `json:"available_spots"`
	GreenFee       float64         `json:"green_fee"`
	CartFee        float64         `json:"cart_fee"`
	Players        json.RawMessage `json:"players,omitempty"`
	Holes          int             `json:"holes"`
	BookingURL     string          `json:"bookingUrl"`
}

type SearchResult struct {
	Date     string    `json:"date"`
	Players  int       `json:"players"`
	Count    int       `json:"count"`
	TeeTimes []TeeTime `json:"teetimes"`
}
