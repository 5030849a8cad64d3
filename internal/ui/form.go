package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"countdown/internal/deadline"
	"countdown/internal/logger"
)

type formState struct {
	Title     string
	DateTime  string
	Recurring bool
	Interval  int
	Category  string
}

func newFormState(d deadline.Draft) *formState {
	fs := &formState{
		Title:     d.Title,
		DateTime:  d.DateTime,
		Recurring: d.Recurring,
		Interval:  d.RecurrenceValue,
		Category:  d.Category,
	}
	if fs.Interval < deadline.MinInterval {
		fs.Interval = deadline.MinInterval
	}
	return fs
}

// draft converts the form values, applying the recurrence toggle rules.
func (fs *formState) draft() deadline.Draft {
	d := deadline.Draft{
		Title:    fs.Title,
		DateTime: fs.DateTime,
		Category: fs.Category,
	}
	d.SetInterval(fs.Interval)
	d.SetRecurring(fs.Recurring)
	return d
}

func intervalOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, deadline.MaxInterval)
	for i := deadline.MinInterval; i <= deadline.MaxInterval; i++ {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%d days", i), i))
	}
	return opts
}

func newDeadlineForm(fs *formState) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description("Set a title for the deadline").
				Placeholder("Enter a title").
				Value(&fs.Title),
			huh.NewInput().
				Title("Date and Time").
				Description("YYYY-MM-DDTHH:MM").
				Value(&fs.DateTime),
			huh.NewConfirm().
				Title("Recurrence").
				Description("Enable to set a recurring interval for the deadline").
				Value(&fs.Recurring),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Recurrence Interval").
				Description("Set how often this deadline repeats (1-30 days)").
				Options(intervalOptions()...).
				Value(&fs.Interval),
		).WithHideFunc(func() bool { return !fs.Recurring }),
		huh.NewGroup(
			huh.NewInput().
				Title("Category").
				Description("Set a category for the deadline").
				Placeholder("Enter a category").
				Value(&fs.Category),
		),
	).WithTheme(huh.ThemeCharm())
}

func (m Model) openForm() (tea.Model, tea.Cmd) {
	m.grabbed = ""
	m.formData = newFormState(m.settings.Draft)
	m.form = newDeadlineForm(m.formData)
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		return m.closeForm(false)
	}
	// keep the countdown loop alive while the form is open
	if t, ok := msg.(tickMsg); ok {
		return m.handleTick(t)
	}
	if t, ok := msg.(toastExpiredMsg); ok {
		if t.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		return m.closeForm(true)
	case huh.StateAborted:
		return m.closeForm(false)
	}
	return m, cmd
}

// closeForm keeps the typed values as the draft. On submit the draft is also
// validated and saved as a new deadline.
func (m Model) closeForm(submit bool) (tea.Model, tea.Cmd) {
	d := m.formData.draft()
	m.form = nil
	m.formData = nil
	m.settings.Draft = d

	if !submit {
		if err := m.store.Save(m.settings); err != nil {
			logger.Error("save draft failed", "error", err)
		}
		return m, nil
	}
	return m.saveDraft(d)
}

func (m Model) saveDraft(d deadline.Draft) (tea.Model, tea.Cmd) {
	dl, created, err := m.settings.AddDeadline(d)
	if err != nil {
		logger.Debug("deadline rejected", "error", err)
		if serr := m.store.Save(m.settings); serr != nil {
			logger.Error("save draft failed", "error", serr)
		}
		return m.showToast(errorText(err))
	}
	if err := m.store.Save(m.settings); err != nil {
		logger.Error("save deadline failed", "error", err)
		return m.showToast("Save failed: " + err.Error())
	}
	logger.Info("deadline added", "id", dl.ID, "title", dl.Title, "category", dl.Category, "recurrence", dl.Recurrence)

	m.cursor = m.rowIndex(dl.ID)
	text := "Deadline saved successfully!"
	if created {
		text = fmt.Sprintf("New category created: %s. %s", dl.Category, text)
	}
	return m.showToast(text)
}
