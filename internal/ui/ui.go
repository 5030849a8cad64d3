package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"countdown/internal/config"
	"countdown/internal/deadline"
	"countdown/internal/logger"
	"countdown/internal/storage"
)

type tab int

const (
	tabSidebar tab = iota
	tabSettings
)

const tickInterval = time.Second

type (
	tickMsg struct {
		id  int
		now time.Time
	}
	toastExpiredMsg struct{ seq int }
)

type Model struct {
	store    *storage.Store
	cfg      config.Config
	keys     KeyMap
	help     help.Model
	settings *deadline.Settings
	now      func() time.Time

	tab       tab
	sidebarAt time.Time
	panelAt   time.Time
	tickID    int

	cursor  int
	grabbed string

	form     *huh.Form
	formData *formState

	toast    string
	toastSeq int
	width    int
}

func Run(store *storage.Store, cfg config.Config) error {
	settings, err := store.Load()
	if err != nil {
		return err
	}
	m := newModel(store, cfg, settings, time.Now)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func newModel(store *storage.Store, cfg config.Config, settings *deadline.Settings, now func() time.Time) Model {
	t := now()
	return Model{
		store:     store,
		cfg:       cfg,
		keys:      newKeyMap(cfg.Keys),
		help:      help.New(),
		settings:  settings,
		now:       now,
		tab:       tabSidebar,
		sidebarAt: t,
		panelAt:   t,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tickMsg:
		return m.handleTick(msg)
	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.SwitchTab):
		return m.switchTab()
	}
	if m.tab == tabSidebar {
		if key.Matches(msg, m.keys.Refresh) {
			m.sidebarAt = m.now()
		}
		return m, nil
	}
	return m.updateSettings(msg)
}

func (m Model) switchTab() (tea.Model, tea.Cmd) {
	m.grabbed = ""
	if m.tab == tabSettings {
		m.tab = tabSidebar
		m.sidebarAt = m.now()
		return m, nil
	}
	m.tab = tabSettings
	m.cursor = clampCursor(m.cursor, len(m.rows()))
	return m.startTicking()
}

// startTicking begins a fresh countdown loop. Ticks from earlier loops carry
// a stale id and are dropped, so at most one loop is ever live.
func (m Model) startTicking() (tea.Model, tea.Cmd) {
	m.tickID++
	return m.handleTick(tickMsg{id: m.tickID, now: m.now()})
}

func (m Model) tick() tea.Cmd {
	id := m.tickID
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{id: id, now: t}
	})
}

func (m Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.tickID || m.tab != tabSettings {
		return m, nil
	}
	m.panelAt = msg.now
	rolled := m.settings.Rollover(m.panelAt)
	if len(rolled) > 0 {
		for _, d := range rolled {
			logger.Info("deadline rolled over", "id", d.ID, "title", d.Title, "due", d.DateTime)
		}
		if err := m.store.Save(m.settings); err != nil {
			logger.Error("save after rollover failed", "error", err)
			var cmd tea.Cmd
			m, cmd = m.showToast("Save failed: " + err.Error())
			return m, tea.Batch(cmd, m.tick())
		}
	}
	return m, m.tick()
}

func (m Model) showToast(text string) (Model, tea.Cmd) {
	m.toastSeq++
	m.toast = text
	seq := m.toastSeq
	d := time.Duration(m.cfg.ToastSeconds) * time.Second
	if d <= 0 {
		d = config.DefaultToastSeconds * time.Second
	}
	return m, tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch {
	case m.form != nil:
		b.WriteString(m.form.View())
	case m.tab == tabSidebar:
		b.WriteString(RenderSidebar(m.settings, m.sidebarAt))
	default:
		b.WriteString(m.renderSettings())
	}

	b.WriteString("\n")
	if m.toast != "" {
		b.WriteString(toastStyle.Render(m.toast))
		b.WriteString("\n")
	}
	if m.form == nil {
		if m.tab == tabSidebar {
			b.WriteString(m.help.View(sidebarKeys(m.keys)))
		} else {
			b.WriteString(m.help.View(settingsKeys(m.keys)))
		}
	}
	return b.String()
}

func (m Model) renderTabs() string {
	names := []string{"Deadline Countdown", "Manage Deadlines"}
	rendered := make([]string, len(names))
	for i, name := range names {
		if tab(i) == m.tab {
			rendered[i] = activeTabStyle.Render(name)
		} else {
			rendered[i] = inactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
