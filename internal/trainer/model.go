package trainer

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"

	"disciplix/internal/review"
)

// Availability maps weekday names to time ranges, e.g. {"monday": ["09:00-12:00"]}.
// Stored as jsonb; the API returns it verbatim.
type Availability map[string][]string

func (a Availability) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

func (a *Availability) Scan(src interface{}) error {
	if src == nil {
		*a = Availability{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return errors.New("availability: expected []byte from driver")
	}
	return json.Unmarshal(b, a)
}

type Profile struct {
	ID              int            `db:"id" json:"id"`
	UserID          int            `db:"user_id" json:"user_id"`
	Bio             string         `db:"bio" json:"bio"`
	Specialties     pq.StringArray `db:"specialties" json:"specialties" swaggertype:"array,string"`
	HourlyRate      float64        `db:"hourly_rate" json:"hourly_rate"`
	Currency        string         `db:"currency" json:"currency"`
	ExperienceYears int            `db:"experience_years" json:"experience_years"`
	Availability    Availability   `db:"availability" json:"availability"`
	IsVerified      bool           `db:"is_verified" json:"is_verified"`
	IsAvailable     bool           `db:"is_available" json:"is_available"`
	Rating          float64        `db:"rating" json:"rating"`
	ReviewCount     int            `db:"review_count" json:"review_count"`
	TotalSessions   int            `db:"total_sessions" json:"total_sessions"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}

// ListItem is a directory row: the profile plus the joined user identity.
type ListItem struct {
	Profile
	Name   string  `db:"name" json:"name"`
	Avatar *string `db:"avatar" json:"avatar,omitempty"`
}

// BusySlot is an already-booked window shown on the trainer page so clients
// can avoid picking a conflicting start time. It deliberately carries no
// client identity.
type BusySlot struct {
	ScheduledAt     time.Time `db:"scheduled_at" json:"scheduled_at"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
}

// Detail is the full trainer page payload.
type Detail struct {
	ListItem
	Reviews          []review.ReviewWithUser `json:"reviews"`
	UpcomingSessions []BusySlot              `json:"upcoming_sessions"`
}

// ListFilter holds the directory query parameters. Zero values mean "not set"
// except Page and Limit, which the handler always fills in.
type ListFilter struct {
	Specialty string
	MinRate   float64
	MaxRate   float64
	MinRating float64
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}
