package deadline

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"countdown/internal/countdown"
)

const (
	DefaultCategory = "General"

	// DateTimeLayout matches the value of an HTML datetime-local input.
	DateTimeLayout = "2006-01-02T15:04"
	DisplayLayout  = "2 Jan 2006, 3:04 pm"

	MinInterval = 1
	MaxInterval = 30
)

var (
	ErrEmptyTitle       = errors.New("please set a valid title")
	ErrEmptyDateTime    = errors.New("please set a date and time for the deadline")
	ErrInvalidDateTime  = errors.New("date and time must look like 2006-01-02T15:04")
	ErrNotFound         = errors.New("deadline not found")
	ErrAmbiguous        = errors.New("more than one deadline matches")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrDefaultCategory  = errors.New("the default category cannot be deleted")
	ErrCategoryNotEmpty = errors.New("category still has deadlines")
)

type Deadline struct {
	ID         string `json:"id,omitempty"`
	Title      string `json:"title"`
	DateTime   string `json:"dateTime"`
	Category   string `json:"category"`
	Recurrence int    `json:"recurrence,omitempty"`
}

func (d Deadline) Recurring() bool {
	return d.Recurrence > 0
}

func (d Deadline) Due() (time.Time, error) {
	return ParseDateTime(d.DateTime)
}

// Status evaluates the countdown for d at now. Records with an unreadable
// date are reported as passed.
func (d Deadline) Status(now time.Time) countdown.Status {
	due, err := d.Due()
	if err != nil {
		return countdown.Status{Urgent: true, Passed: true, Text: "Invalid date"}
	}
	return countdown.Evaluate(due, d.Recurrence, now)
}

var parseLayouts = []string{
	DateTimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDateTime reads a stored due time. Layouts without a zone are taken as
// local time; RFC3339 values keep their zone.
func ParseDateTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, ErrEmptyDateTime
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.Local(), nil
	}
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDateTime
}

func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(DateTimeLayout)
}

func FormatDisplay(t time.Time) string {
	return t.In(time.Local).Format(DisplayLayout)
}

func newID() string {
	return uuid.NewString()
}
