package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"countdown/internal/deadline"
	"countdown/internal/logger"
)

// row is one selectable line of the management list: a category header when
// id is empty, otherwise a deadline card.
type row struct {
	category string
	id       string
}

func (r row) isHeader() bool { return r.id == "" }

func (m Model) rows() []row {
	var rows []row
	for _, category := range m.settings.ManagedCategories() {
		rows = append(rows, row{category: category})
		for _, d := range m.settings.DeadlinesIn(category) {
			rows = append(rows, row{category: category, id: d.ID})
		}
	}
	return rows
}

func (m Model) current() (row, bool) {
	rows := m.rows()
	if len(rows) == 0 {
		return row{}, false
	}
	return rows[clampCursor(m.cursor, len(rows))], true
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.rows())
	switch {
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, n)
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, n)
	case key.Matches(msg, m.keys.Add):
		return m.openForm()
	case key.Matches(msg, m.keys.Refresh):
		m.panelAt = m.now()
	case key.Matches(msg, m.keys.Cancel):
		if m.grabbed != "" {
			m.grabbed = ""
			return m.showToast("Move cancelled")
		}
	case key.Matches(msg, m.keys.Grab), key.Matches(msg, m.keys.Confirm):
		if m.grabbed != "" {
			return m.drop()
		}
		if key.Matches(msg, m.keys.Grab) {
			return m.grab()
		}
	case key.Matches(msg, m.keys.Delete):
		return m.deleteCurrent()
	case key.Matches(msg, m.keys.DeleteCategory):
		return m.deleteCurrentCategory()
	}
	return m, nil
}

func (m Model) grab() (tea.Model, tea.Cmd) {
	r, ok := m.current()
	if !ok || r.isHeader() {
		return m, nil
	}
	d, err := m.settings.Find(r.id)
	if err != nil {
		return m, nil
	}
	m.grabbed = d.ID
	return m.showToast(fmt.Sprintf("Moving %q: pick a category and press %s", d.Title, m.cfg.Keys.Grab))
}

// drop moves the grabbed deadline into the category under the cursor.
func (m Model) drop() (tea.Model, tea.Cmd) {
	r, ok := m.current()
	id := m.grabbed
	m.grabbed = ""
	if !ok {
		return m, nil
	}
	d, err := m.settings.MoveDeadline(id, r.category)
	if err != nil {
		return m.showToast(errorText(err))
	}
	if err := m.store.Save(m.settings); err != nil {
		logger.Error("save after move failed", "error", err)
		return m.showToast("Save failed: " + err.Error())
	}
	logger.Info("deadline moved", "id", d.ID, "category", d.Category)
	m.cursor = m.rowIndex(d.ID)
	return m, nil
}

func (m Model) deleteCurrent() (tea.Model, tea.Cmd) {
	r, ok := m.current()
	if !ok || r.isHeader() {
		return m, nil
	}
	d, err := m.settings.DeleteDeadline(r.id)
	if err != nil {
		return m.showToast(errorText(err))
	}
	if m.grabbed == d.ID {
		m.grabbed = ""
	}
	if err := m.store.Save(m.settings); err != nil {
		logger.Error("save after delete failed", "error", err)
		return m.showToast("Save failed: " + err.Error())
	}
	logger.Info("deadline deleted", "id", d.ID, "title", d.Title)
	m.cursor = clampCursor(m.cursor, len(m.rows()))
	return m.showToast("Deadline removed")
}

func (m Model) deleteCurrentCategory() (tea.Model, tea.Cmd) {
	r, ok := m.current()
	if !ok || !r.isHeader() {
		return m, nil
	}
	if err := m.settings.DeleteCategory(r.category); err != nil {
		return m.showToast(errorText(err))
	}
	if err := m.store.Save(m.settings); err != nil {
		logger.Error("save after category delete failed", "error", err)
		return m.showToast("Save failed: " + err.Error())
	}
	logger.Info("category deleted", "category", r.category)
	m.cursor = clampCursor(m.cursor, len(m.rows()))
	return m.showToast(fmt.Sprintf("Category %q deleted", r.category))
}

func (m Model) rowIndex(id string) int {
	for i, r := range m.rows() {
		if r.id == id {
			return i
		}
	}
	return 0
}

func (m Model) renderSettings() string {
	rows := m.rows()
	cursor := clampCursor(m.cursor, len(rows))
	var b strings.Builder
	for i, r := range rows {
		pointer := "  "
		if i == cursor {
			pointer = "> "
		}
		if r.isHeader() {
			if i > 0 {
				b.WriteString("\n")
			}
			header := categoryStyle.Render(r.category)
			if m.grabbed != "" && i == cursor {
				header = dropTargetStyle.Render(r.category + " (drop here)")
			}
			b.WriteString(pointer + header)
			if len(m.settings.DeadlinesIn(r.category)) == 0 {
				if r.category != deadline.DefaultCategory {
					b.WriteString(mutedStyle.Render(fmt.Sprintf("  [%s delete category]", m.cfg.Keys.DeleteCategory)))
				} else {
					b.WriteString(mutedStyle.Render("  (empty)"))
				}
			}
			b.WriteString("\n")
			continue
		}
		d, err := m.settings.Find(r.id)
		if err != nil {
			continue
		}
		b.WriteString(m.renderCard(d, pointer))
	}
	return b.String()
}

func (m Model) renderCard(d deadline.Deadline, pointer string) string {
	st := d.Status(m.panelAt)
	title := titleStyle
	remaining := remainingStyle
	if st.Urgent {
		title = urgentStyle
		remaining = urgentStyle
	}
	if d.ID == m.grabbed {
		title = dropTargetStyle
	}

	date := "unknown date"
	if due, err := d.Due(); err == nil {
		date = deadline.FormatDisplay(st.Due)
		if st.Passed {
			date = "Deadline was at " + deadline.FormatDisplay(due)
		}
	}

	var b strings.Builder
	b.WriteString(pointer + "  " + title.Render(d.Title))
	if d.Recurring() {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  every %d days", d.Recurrence)))
	}
	b.WriteString("\n")
	b.WriteString("      " + dateStyle.Render(date) + "\n")
	b.WriteString("      " + remaining.Render(st.Text) + "\n")
	return b.String()
}

// errorText turns a domain error into toast text.
func errorText(err error) string {
	switch {
	case errors.Is(err, deadline.ErrEmptyTitle):
		return "Please set a valid title."
	case errors.Is(err, deadline.ErrEmptyDateTime):
		return "Please set a date and time for the deadline."
	}
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
