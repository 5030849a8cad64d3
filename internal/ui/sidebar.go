package ui

import (
	"strings"
	"time"

	"countdown/internal/deadline"
)

const emptySidebar = "No upcoming deadlines."

// RenderSidebar draws the read-only deadline list grouped by category as of
// now. Rollovers are shown but not written back.
func RenderSidebar(s *deadline.Settings, now time.Time) string {
	if len(s.Deadlines) == 0 {
		return emptySidebar + "\n"
	}

	groups := s.Grouped()
	var b strings.Builder
	for i, category := range s.SidebarCategories() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(categoryStyle.Render(category))
		b.WriteString("\n")
		for _, d := range groups[category] {
			b.WriteString(renderEntry(d, now, "  "))
		}
	}
	return b.String()
}

func renderEntry(d deadline.Deadline, now time.Time, indent string) string {
	st := d.Status(now)
	remaining := remainingStyle
	title := titleStyle
	if st.Urgent {
		remaining = urgentStyle
		title = urgentStyle
	}

	date := "unknown date"
	if due, err := d.Due(); err == nil {
		date = deadline.FormatDisplay(due)
	}

	var b strings.Builder
	b.WriteString(indent + title.Render(d.Title) + "\n")
	b.WriteString(indent + "  " + dateStyle.Render(date) + "\n")
	b.WriteString(indent + "  " + remaining.Render(st.Text) + "\n")
	return b.String()
}
