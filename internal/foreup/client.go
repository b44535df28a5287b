// Package foreup talks to the ForeUp booking platform: the public JSON
// times endpoint and, for facilities whose schedule id is not known up
// front, the booking index page the id is scraped out of.
package foreup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/tulsagolf/teetimes/internal/domain"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/144.0.0.0 Safari/537.36"

// ForeUp embeds the schedule configuration in the booking page as JSON.
// Depending on the page variant it shows up either as a bare schedule_id
// field or as the schedule object's own id right before facility_id.
var (
	scheduleIDRe = regexp.MustCompile(`"schedule_id"\s*:\s*(\d+)`)
	schedObjRe   = regexp.MustCompile(`"id"\s*:\s*(\d+)\s*,\s*"facility_id"`)
)

type Client struct {
	httpClient *http.Client
	host       string
	userAgent  string
}

func NewClient(host, userAgent string, timeout time.Duration) *Client {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		host:       host,
		userAgent:  userAgent,
	}
}

// DiscoverScheduleID scrapes the booking index page of a facility for its
// schedule id. ForeUp serves the real page only to browser-looking clients,
// hence the User-Agent.
func (c *Client) DiscoverScheduleID(ctx context.Context, facilityID int) (int, error) {
	pageURL := fmt.Sprintf("%s/index.php/booking/index/%d", c.host, facilityID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch booking page for facility %d: %w", facilityID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("booking page for facility %d: status %d", facilityID, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read booking page for facility %d: %w", facilityID, err)
	}

	if m := scheduleIDRe.FindSubmatch(body); m != nil {
		return strconv.Atoi(string(m[1]))
	}
	if m := schedObjRe.FindSubmatch(body); m != nil {
		return strconv.Atoi(string(m[1]))
	}

	return 0, fmt.Errorf("no schedule id found on booking page for facility %d", facilityID)
}

type slot struct {
	Time           string          `json:"time"`
	AvailableSpots int             `json:"available_spots"`
	GreenFee       float64         `json:"green_fee"`
	CartFee        float64         `json:"cart_fee"`
	Players        json.RawMessage `json:"players"`
	Holes          int             `json:"holes"`
}

// FetchTimes queries the times endpoint for one course schedule on one
// date. The date must already be in ForeUp's MM-DD-YYYY form. Anything but
// a 200 with a JSON array comes back as an error; the caller decides that
// this means "no times", not a failed request.
func (c *Client) FetchTimes(ctx context.Context, course domain.Course, scheduleID int, scheduleLabel, date string, players int) ([]domain.TeeTime, error) {
	q := url.Values{}
	q.Set("time", "all")
	q.Set("date", date)
	q.Set("holes", "18")
	q.Set("players", strconv.Itoa(players))
	q.Set("booking_class", "default")
	q.Set("schedule_id", strconv.Itoa(scheduleID))
	q.Set("specials_only", "0")
	q.Set("api_key", "no_limits")

	timesURL := fmt.Sprintf("%s/index.php/api/booking/times?%s", c.host, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, timesURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Referer", course.BookingURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch times for %s schedule %d: %w", course.Key, scheduleID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("times for %s schedule %d: status %d", course.Key, scheduleID, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read times for %s schedule %d: %w", course.Key, scheduleID, err)
	}

	var slots []slot
	if err := json.Unmarshal(body, &slots); err != nil {
		// ForeUp answers errors with a JSON object instead of an array.
		return nil, fmt.Errorf("unexpected times payload for %s schedule %d: %w", course.Key, scheduleID, err)
	}

	times := make([]domain.TeeTime, 0, len(slots))
	for _, s := range slots {
		times = append(times, domain.TeeTime{
			Course:         course.Name,
			CourseKey:      course.Key,
			Schedule:       scheduleLabel,
			Time:           s.Time,
			AvailableSpots: s.AvailableSpots,
			GreenFee:       s.GreenFee,
			CartFee:        s.CartFee,
			Players:        s.Players,
			Holes:          s.Holes,
			BookingURL:     course.BookingURL,
		})
	}

	return times, nil
}
