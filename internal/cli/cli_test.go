package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"countdown/internal/config"
	"countdown/internal/deadline"
	"countdown/internal/storage"
)

func newTestContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "deadlines.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	now, _ := time.ParseInLocation(deadline.DateTimeLayout, "2024-03-10T12:00", time.Local)
	out := &bytes.Buffer{}
	return &Context{
		Store: store,
		Cfg:   config.Default(),
		Out:   out,
		Now:   func() time.Time { return now },
	}, out
}

func TestAddListMoveDelete(t *testing.T) {
	ctx, out := newTestContext(t)

	add := &AddCmd{Title: "Essay", At: "2024-03-11T14:00", Category: "Uni", Every: 0}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out.String(), "New category created: Uni") {
		t.Fatalf("output = %q", out.String())
	}
	out.Reset()

	add = &AddCmd{Title: "Rent", At: "2024-03-20T09:00", Every: 30}
	if err := add.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	if strings.Contains(out.String(), "New category") {
		t.Fatalf("default category reported as new: %q", out.String())
	}
	out.Reset()

	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	listing := out.String()
	for _, want := range []string{"Uni", "Essay", "Ends: 1 days 2 hours 0 minutes", "Rent", "Resets: 9 days 21 hours 0 minutes"} {
		if !strings.Contains(listing, want) {
			t.Fatalf("missing %q in:\n%s", want, listing)
		}
	}
	out.Reset()

	if err := (&MoveCmd{Key: "Essay", Category: deadline.DefaultCategory}).Run(ctx); err != nil {
		t.Fatalf("move: %v", err)
	}
	settings, err := ctx.Store.Load()
	if err != nil {
		t.Fatal(err)
	}
	last := settings.Deadlines[len(settings.Deadlines)-1]
	if last.Title != "Essay" || last.Category != deadline.DefaultCategory {
		t.Fatalf("last = %+v", last)
	}

	if err := (&CategoryDeleteCmd{Name: "Uni"}).Run(ctx); err != nil {
		t.Fatalf("category delete: %v", err)
	}
	if err := (&DeleteCmd{Key: "Essay"}).Run(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	settings, err = ctx.Store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(settings.Deadlines) != 1 || settings.Deadlines[0].Title != "Rent" {
		t.Fatalf("deadlines = %+v", settings.Deadlines)
	}
	if settings.HasCategory("Uni") {
		t.Fatalf("categories = %v", settings.Categories)
	}
}

func TestAddRejectsEmptyTitle(t *testing.T) {
	ctx, _ := newTestContext(t)
	err := (&AddCmd{Title: " ", At: "2024-03-11T14:00", Category: "Uni"}).Run(ctx)
	if !errors.Is(err, deadline.ErrEmptyTitle) {
		t.Fatalf("err = %v", err)
	}
	settings, err := ctx.Store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if settings.HasCategory("Uni") || len(settings.Deadlines) != 0 {
		t.Fatalf("state changed: %+v", settings)
	}
}

func TestAddValidateInterval(t *testing.T) {
	if err := (&AddCmd{Every: 31}).Validate(); err == nil {
		t.Fatal("expected an error for 31 days")
	}
	if err := (&AddCmd{Every: -1}).Validate(); err == nil {
		t.Fatal("expected an error for a negative interval")
	}
}

func TestCategoryDeleteGuards(t *testing.T) {
	ctx, _ := newTestContext(t)
	if err := (&CategoryDeleteCmd{Name: deadline.DefaultCategory}).Run(ctx); !errors.Is(err, deadline.ErrDefaultCategory) {
		t.Fatalf("err = %v", err)
	}
	if err := (&AddCmd{Title: "Essay", At: "2024-03-11T14:00", Category: "Uni"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&CategoryDeleteCmd{Name: "Uni"}).Run(ctx); !errors.Is(err, deadline.ErrCategoryNotEmpty) {
		t.Fatalf("err = %v", err)
	}
}

func TestCategoryList(t *testing.T) {
	ctx, out := newTestContext(t)
	if err := (&AddCmd{Title: "Essay", At: "2024-03-11T14:00", Category: "uni"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&CategoryListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], deadline.DefaultCategory) || !strings.HasPrefix(lines[1], "uni") {
		t.Fatalf("lines = %q", lines)
	}
}

func TestListEmpty(t *testing.T) {
	ctx, out := newTestContext(t)
	if err := (&ListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No upcoming deadlines.") {
		t.Fatalf("output = %q", out.String())
	}
}
