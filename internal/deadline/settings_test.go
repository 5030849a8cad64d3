package deadline

import (
	"errors"
	"testing"
	"time"
)

func draft(title, at, category string) Draft {
	return Draft{Title: title, DateTime: at, Category: category}
}

func TestAddDeadlineValidation(t *testing.T) {
	cases := []struct {
		name string
		in   Draft
		want error
	}{
		{"empty title", draft("  ", "2024-01-01T10:00", ""), ErrEmptyTitle},
		{"empty date", draft("Essay", "", ""), ErrEmptyDateTime},
		{"bad date", draft("Essay", "next tuesday", ""), ErrInvalidDateTime},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Defaults()
			tc.in.Category = "Uni"
			_, _, err := s.AddDeadline(tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if len(s.Deadlines) != 0 {
				t.Fatalf("deadlines = %d, want 0", len(s.Deadlines))
			}
			if s.HasCategory("Uni") {
				t.Fatal("category registered despite failed validation")
			}
		})
	}
}

func TestAddDeadlineCategoryAutoCreate(t *testing.T) {
	s := Defaults()

	dl, created, err := s.AddDeadline(draft("Essay", "2024-01-01T10:00", " Uni "))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !created {
		t.Fatal("expected category to be created")
	}
	if dl.Category != "Uni" || dl.ID == "" {
		t.Fatalf("unexpected deadline %+v", dl)
	}

	_, created, err = s.AddDeadline(draft("Exam", "2024-01-02T10:00", "Uni"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created {
		t.Fatal("category created twice")
	}
	count := 0
	for _, c := range s.Categories {
		if c == "Uni" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("Uni appears %d times in %v", count, s.Categories)
	}
}

func TestAddDeadlineDefaultsAndReset(t *testing.T) {
	s := Defaults()
	d := draft("Rent", "2024-01-01T10:00", "")
	d.SetRecurring(true)

	dl, created, err := s.AddDeadline(d)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created {
		t.Fatal("default category should already exist")
	}
	if dl.Category != DefaultCategory {
		t.Fatalf("category = %q", dl.Category)
	}
	if dl.Recurrence != 1 {
		t.Fatalf("recurrence = %d, want 1", dl.Recurrence)
	}
	if s.Draft.Title != "" || s.Draft.Recurring || s.Draft.Category != DefaultCategory {
		t.Fatalf("draft not reset: %+v", s.Draft)
	}
}

func TestDraftRecurrenceToggle(t *testing.T) {
	var d Draft
	d.SetRecurring(true)
	if d.RecurrenceValue != 1 {
		t.Fatalf("value = %d, want 1", d.RecurrenceValue)
	}
	d.SetInterval(45)
	if d.RecurrenceValue != MaxInterval {
		t.Fatalf("value = %d, want %d", d.RecurrenceValue, MaxInterval)
	}
	d.SetInterval(0)
	if d.RecurrenceValue != MinInterval {
		t.Fatalf("value = %d, want %d", d.RecurrenceValue, MinInterval)
	}
	d.SetInterval(14)
	d.SetRecurring(true)
	if d.RecurrenceValue != 14 {
		t.Fatalf("re-enabling changed value to %d", d.RecurrenceValue)
	}
	d.SetRecurring(false)
	if d.RecurrenceValue != 0 {
		t.Fatalf("value = %d after disabling", d.RecurrenceValue)
	}
}

func TestEnsureDefaultCategory(t *testing.T) {
	s := &Settings{Categories: []string{"Work", "Home"}}
	if !s.EnsureDefaultCategory() {
		t.Fatal("expected a change")
	}
	if s.Categories[0] != DefaultCategory || len(s.Categories) != 3 {
		t.Fatalf("categories = %v", s.Categories)
	}
	if s.EnsureDefaultCategory() {
		t.Fatal("second call should be a no-op")
	}
}

func TestMoveDeadline(t *testing.T) {
	s := Defaults()
	a, _, _ := s.AddDeadline(draft("A", "2024-01-01T10:00", "Work"))
	b, _, _ := s.AddDeadline(draft("B", "2024-01-01T11:00", "Home"))
	c, _, _ := s.AddDeadline(draft("C", "2024-01-01T12:00", "Work"))

	moved, err := s.MoveDeadline(a.ID, "Home")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.Category != "Home" {
		t.Fatalf("category = %q", moved.Category)
	}
	if len(s.Deadlines) != 3 {
		t.Fatalf("len = %d, want 3", len(s.Deadlines))
	}
	gotOrder := []string{s.Deadlines[0].ID, s.Deadlines[1].ID, s.Deadlines[2].ID}
	wantOrder := []string{b.ID, c.ID, a.ID}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("order = %v, want %v", gotOrder, wantOrder)
		}
	}
	if s.Deadlines[2].Category != "Home" {
		t.Fatalf("stored category = %q", s.Deadlines[2].Category)
	}

	if _, err := s.MoveDeadline(a.ID, "Nowhere"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("err = %v", err)
	}
	if _, err := s.MoveDeadline("missing", "Home"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestDeleteDeadline(t *testing.T) {
	s := Defaults()
	a, _, _ := s.AddDeadline(draft("A", "2024-01-01T10:00", ""))
	if _, err := s.DeleteDeadline(a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(s.Deadlines) != 0 {
		t.Fatalf("len = %d", len(s.Deadlines))
	}
	if _, err := s.DeleteDeadline(a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestDeleteCategory(t *testing.T) {
	s := Defaults()
	a, _, _ := s.AddDeadline(draft("A", "2024-01-01T10:00", "Work"))

	if err := s.DeleteCategory(DefaultCategory); !errors.Is(err, ErrDefaultCategory) {
		t.Fatalf("err = %v", err)
	}
	if err := s.DeleteCategory("Work"); !errors.Is(err, ErrCategoryNotEmpty) {
		t.Fatalf("err = %v", err)
	}
	if err := s.DeleteCategory("Nope"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("err = %v", err)
	}
	if _, err := s.MoveDeadline(a.ID, DefaultCategory); err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := s.DeleteCategory("Work"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.HasCategory("Work") {
		t.Fatal("Work still present")
	}
}

func TestFind(t *testing.T) {
	s := Defaults()
	a, _, _ := s.AddDeadline(draft("Essay", "2024-01-01T10:00", ""))
	s.AddDeadline(draft("Essay", "2024-01-02T10:00", ""))

	got, err := s.Find("Essay")
	if err != nil || got.ID != a.ID {
		t.Fatalf("find by title = %+v, %v", got, err)
	}
	got, err = s.Find(a.ID[:8])
	if err != nil || got.ID != a.ID {
		t.Fatalf("find by prefix = %+v, %v", got, err)
	}
	if _, err := s.Find("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestCategoryOrdering(t *testing.T) {
	s := &Settings{Categories: []string{DefaultCategory, "work", "Admin", "home"}}
	s.Deadlines = []Deadline{
		{ID: "1", Title: "a", Category: "work"},
		{ID: "2", Title: "b", Category: "Admin"},
		{ID: "3", Title: "c", Category: "work"},
	}

	managed := s.ManagedCategories()
	want := []string{"Admin", DefaultCategory, "home", "work"}
	for i := range want {
		if managed[i] != want[i] {
			t.Fatalf("managed = %v, want %v", managed, want)
		}
	}

	sidebar := s.SidebarCategories()
	if len(sidebar) != 2 || sidebar[0] != "Admin" || sidebar[1] != "work" {
		t.Fatalf("sidebar = %v", sidebar)
	}
	groups := s.Grouped()
	if len(groups["work"]) != 2 || groups["work"][0].ID != "1" || groups["work"][1].ID != "3" {
		t.Fatalf("work group = %+v", groups["work"])
	}
}

func TestRollover(t *testing.T) {
	now, _ := time.ParseInLocation(DateTimeLayout, "2024-01-20T00:00", time.Local)
	s := &Settings{
		Categories: []string{DefaultCategory},
		Deadlines: []Deadline{
			{ID: "weekly", Title: "Weekly", DateTime: "2024-01-01T00:00", Category: DefaultCategory, Recurrence: 7},
			{ID: "once", Title: "Once", DateTime: "2024-01-01T00:00", Category: DefaultCategory},
			{ID: "later", Title: "Later", DateTime: "2024-02-01T00:00", Category: DefaultCategory, Recurrence: 7},
		},
	}

	rolled := s.Rollover(now)
	if len(rolled) != 1 || rolled[0].ID != "weekly" {
		t.Fatalf("rolled = %+v", rolled)
	}
	if s.Deadlines[0].DateTime != "2024-01-22T00:00" {
		t.Fatalf("weekly due = %s", s.Deadlines[0].DateTime)
	}
	if s.Deadlines[1].DateTime != "2024-01-01T00:00" {
		t.Fatalf("non-recurring moved to %s", s.Deadlines[1].DateTime)
	}
	if len(s.Rollover(now)) != 0 {
		t.Fatal("second rollover should be a no-op")
	}
}

func TestNormalizeAssignsIDs(t *testing.T) {
	s := &Settings{
		Categories: []string{DefaultCategory},
		Deadlines:  []Deadline{{Title: "Old", DateTime: "2024-01-01T00:00", Category: DefaultCategory}},
	}
	if !s.Normalize() {
		t.Fatal("expected a change")
	}
	if s.Deadlines[0].ID == "" {
		t.Fatal("ID not assigned")
	}
	if s.Normalize() {
		t.Fatal("second normalize should be a no-op")
	}
}

func TestParseDateTime(t *testing.T) {
	for _, v := range []string{"2024-01-01T10:00", "2024-01-01T10:00:00", "2024-01-01T10:00:00Z", "2024-01-01"} {
		if _, err := ParseDateTime(v); err != nil {
			t.Fatalf("ParseDateTime(%q): %v", v, err)
		}
	}
	if _, err := ParseDateTime(""); !errors.Is(err, ErrEmptyDateTime) {
		t.Fatalf("err = %v", err)
	}
}
