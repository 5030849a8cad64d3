package deadline

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"countdown/internal/countdown"
)

// Settings is the whole persisted blob. The store writes it back in one
// piece on every save.
type Settings struct {
	Categories []string   `json:"categories"`
	Deadlines  []Deadline `json:"deadlines"`
	Draft      Draft      `json:"draft"`
}

// Draft holds the create form's field values between sessions.
type Draft struct {
	Title           string `json:"deadlineTitle"`
	DateTime        string `json:"deadlineDateTime"`
	Recurring       bool   `json:"deadlineFrequency"`
	RecurrenceValue int    `json:"selectedRecurrenceValue"`
	Category        string `json:"selectedCategory"`
}

func NewDraft(now time.Time) Draft {
	return Draft{
		DateTime: FormatDateTime(now.Truncate(time.Minute)),
		Category: DefaultCategory,
	}
}

// SetRecurring flips the recurrence toggle. Turning it on keeps a positive
// interval (1 when none was chosen); turning it off zeroes the interval.
func (d *Draft) SetRecurring(on bool) {
	d.Recurring = on
	if !on {
		d.RecurrenceValue = 0
		return
	}
	if d.RecurrenceValue <= 0 {
		d.RecurrenceValue = MinInterval
	}
	d.RecurrenceValue = clampInterval(d.RecurrenceValue)
}

func (d *Draft) SetInterval(days int) {
	d.RecurrenceValue = clampInterval(days)
}

func (d Draft) recurrence() int {
	if !d.Recurring {
		return 0
	}
	if d.RecurrenceValue <= 0 {
		return MinInterval
	}
	return clampInterval(d.RecurrenceValue)
}

func clampInterval(v int) int {
	if v < MinInterval {
		return MinInterval
	}
	if v > MaxInterval {
		return MaxInterval
	}
	return v
}

func Defaults() *Settings {
	return &Settings{
		Categories: []string{DefaultCategory},
		Deadlines:  []Deadline{},
		Draft:      NewDraft(time.Now()),
	}
}

// Normalize repairs a freshly loaded blob: the default category is put back
// at the front when missing and records without an ID get one. It reports
// whether anything changed.
func (s *Settings) Normalize() bool {
	changed := s.EnsureDefaultCategory()
	if s.Deadlines == nil {
		s.Deadlines = []Deadline{}
	}
	for i := range s.Deadlines {
		if s.Deadlines[i].ID == "" {
			s.Deadlines[i].ID = newID()
			changed = true
		}
	}
	return changed
}

func (s *Settings) EnsureDefaultCategory() bool {
	if s.HasCategory(DefaultCategory) {
		return false
	}
	s.Categories = append([]string{DefaultCategory}, s.Categories...)
	return true
}

func (s *Settings) HasCategory(name string) bool {
	return slices.Contains(s.Categories, name)
}

// AddDeadline validates d and appends it as a new deadline. created reports
// whether d's category was new and had to be registered. Nothing changes
// when validation fails.
func (s *Settings) AddDeadline(d Draft) (dl Deadline, created bool, err error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return Deadline{}, false, ErrEmptyTitle
	}
	if strings.TrimSpace(d.DateTime) == "" {
		return Deadline{}, false, ErrEmptyDateTime
	}
	if _, err := ParseDateTime(d.DateTime); err != nil {
		return Deadline{}, false, err
	}

	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = DefaultCategory
	}
	if !s.HasCategory(category) {
		s.Categories = append(s.Categories, category)
		created = true
	}

	dl = Deadline{
		ID:         newID(),
		Title:      title,
		DateTime:   strings.TrimSpace(d.DateTime),
		Category:   category,
		Recurrence: d.recurrence(),
	}
	s.Deadlines = append(s.Deadlines, dl)
	s.Draft = NewDraft(time.Now())
	return dl, created, nil
}

func (s *Settings) index(id string) int {
	return slices.IndexFunc(s.Deadlines, func(d Deadline) bool { return d.ID == id })
}

func (s *Settings) DeleteDeadline(id string) (Deadline, error) {
	i := s.index(id)
	if i < 0 {
		return Deadline{}, ErrNotFound
	}
	dl := s.Deadlines[i]
	s.Deadlines = slices.Delete(s.Deadlines, i, i+1)
	return dl, nil
}

// MoveDeadline reassigns a deadline to category and moves it to the end of
// the list.
func (s *Settings) MoveDeadline(id, category string) (Deadline, error) {
	if !s.HasCategory(category) {
		return Deadline{}, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	i := s.index(id)
	if i < 0 {
		return Deadline{}, ErrNotFound
	}
	dl := s.Deadlines[i]
	dl.Category = category
	s.Deadlines = slices.Delete(s.Deadlines, i, i+1)
	s.Deadlines = append(s.Deadlines, dl)
	return dl, nil
}

func (s *Settings) DeleteCategory(name string) error {
	if name == DefaultCategory {
		return ErrDefaultCategory
	}
	i := slices.Index(s.Categories, name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}
	if len(s.DeadlinesIn(name)) > 0 {
		return fmt.Errorf("%w: %s", ErrCategoryNotEmpty, name)
	}
	s.Categories = slices.Delete(s.Categories, i, i+1)
	return nil
}

// Find looks a deadline up by ID, then by title, then by unique ID prefix.
func (s *Settings) Find(key string) (Deadline, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Deadline{}, ErrNotFound
	}
	if i := s.index(key); i >= 0 {
		return s.Deadlines[i], nil
	}
	for _, d := range s.Deadlines {
		if d.Title == key {
			return d, nil
		}
	}
	var match []Deadline
	for _, d := range s.Deadlines {
		if strings.HasPrefix(d.ID, key) {
			match = append(match, d)
		}
	}
	switch len(match) {
	case 0:
		return Deadline{}, ErrNotFound
	case 1:
		return match[0], nil
	default:
		return Deadline{}, fmt.Errorf("%w: %q", ErrAmbiguous, key)
	}
}

func (s *Settings) DeadlinesIn(category string) []Deadline {
	var out []Deadline
	for _, d := range s.Deadlines {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Grouped buckets deadlines by category, keeping list order inside a bucket.
func (s *Settings) Grouped() map[string][]Deadline {
	groups := make(map[string][]Deadline)
	for _, d := range s.Deadlines {
		groups[d.Category] = append(groups[d.Category], d)
	}
	return groups
}

// SidebarCategories returns the categories that have deadlines, sorted.
func (s *Settings) SidebarCategories() []string {
	groups := s.Grouped()
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ManagedCategories returns every category sorted case-insensitively.
func (s *Settings) ManagedCategories() []string {
	names := slices.Clone(s.Categories)
	sort.SliceStable(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}

// Rollover moves every passed recurring deadline forward to its next future
// occurrence and returns the records it changed.
func (s *Settings) Rollover(now time.Time) []Deadline {
	var rolled []Deadline
	for i := range s.Deadlines {
		d := &s.Deadlines[i]
		if !d.Recurring() {
			continue
		}
		due, err := d.Due()
		if err != nil || due.After(now) {
			continue
		}
		d.DateTime = FormatDateTime(countdown.Next(due, d.Recurrence, now))
		rolled = append(rolled, *d)
	}
	return rolled
}
