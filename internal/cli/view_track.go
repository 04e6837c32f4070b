package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/horia913/daily-fitness-sub008/internal/app"
	"github.com/horia913/daily-fitness-sub008/internal/cli/formatter"
	"github.com/horia913/daily-fitness-sub008/internal/domain"
	"github.com/horia913/daily-fitness-sub008/internal/tracker"
)

// progressLoadedMsg carries a fresh read of the subject's item progress.
type progressLoadedMsg struct {
	rows []app.ItemProgress
	err  error
}

// toggleSettledMsg reports the store outcome of a toggle started from the view.
type toggleSettledMsg struct {
	itemID    string
	completed bool
	err       error
}

type trackKeys struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var defaultTrackKeys = trackKeys{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle today")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// trackView is the daily check-off screen for one subject. Toggles flip the
// row at once and settle against the store in a Cmd.
type trackView struct {
	app     *App
	subject *domain.Subject
	ctrl    *tracker.Controller
	window  int

	rows    []app.ItemProgress
	cursor  int
	loading bool
	err     error
	status  string

	spinner spinner.Model
	keys    trackKeys
}

func newTrackView(a *App, subject *domain.Subject, ctrl *tracker.Controller, window int) *trackView {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = formatter.StyleYellow
	return &trackView{
		app:     a,
		subject: subject,
		ctrl:    ctrl,
		window:  window,
		loading: true,
		spinner: sp,
		keys:    defaultTrackKeys,
	}
}

func (v *trackView) Init() tea.Cmd {
	return v.loadProgress()
}

func (v *trackView) loadProgress() tea.Cmd {
	svc := v.app.Adherence
	req := app.ProgressRequest{SubjectID: v.subject.ID, WindowDays: v.window}
	return func() tea.Msg {
		rows, err := svc.GetProgress(context.Background(), req)
		return progressLoadedMsg{rows: rows, err: err}
	}
}

func settleToggle(f *tracker.Flight, itemID string) tea.Cmd {
	return func() tea.Msg {
		completed, err := f.Settle(context.Background())
		return toggleSettledMsg{itemID: itemID, completed: completed, err: err}
	}
}

func (v *trackView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.rows = msg.rows
		if v.cursor >= len(v.rows) {
			v.cursor = max(len(v.rows)-1, 0)
		}
		done := make(map[string]bool, len(v.rows))
		for _, r := range v.rows {
			done[r.Item.ID] = r.DoneToday
		}
		v.ctrl.Load(done)
		return v, nil

	case toggleSettledMsg:
		if msg.err != nil {
			if errors.Is(msg.err, tracker.ErrClosed) {
				return v, nil
			}
			v.status = formatter.StyleRed.Render(fmt.Sprintf("Couldn't save %s: %v", v.titleOf(msg.itemID), msg.err))
		} else {
			v.status = ""
		}
		return v, v.loadProgress()

	case spinner.TickMsg:
		if !v.anyPending() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *trackView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.rows)-1 {
			v.cursor++
		}
	case key.Matches(msg, v.keys.Refresh):
		v.loading = true
		return v, v.loadProgress()
	case key.Matches(msg, v.keys.Toggle):
		if len(v.rows) == 0 {
			return v, nil
		}
		itemID := v.rows[v.cursor].Item.ID
		f, err := v.ctrl.Begin(itemID)
		if err != nil {
			if errors.Is(err, tracker.ErrTogglePending) {
				v.status = formatter.Dim("Still saving, try again in a moment.")
			} else {
				v.status = formatter.StyleRed.Render(err.Error())
			}
			return v, nil
		}
		v.status = ""
		return v, tea.Batch(settleToggle(f, itemID), v.spinner.Tick)
	}
	return v, nil
}

func (v *trackView) anyPending() bool {
	for _, r := range v.rows {
		if st, ok := v.ctrl.State(r.Item.ID); ok && st.Pending {
			return true
		}
	}
	return false
}

func (v *trackView) titleOf(itemID string) string {
	for _, r := range v.rows {
		if r.Item.ID == itemID {
			return r.Item.Title
		}
	}
	return itemID
}

func (v *trackView) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header(fmt.Sprintf("%s · %s", v.subject.Name, domain.FormatDate(v.ctrl.Today()))))
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(formatter.StyleRed.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	case v.loading && len(v.rows) == 0:
		b.WriteString(formatter.Dim("Loading..."))
		b.WriteString("\n")
	case len(v.rows) == 0:
		b.WriteString(formatter.Dim("No active items."))
		b.WriteString("\n")
	default:
		for i, r := range v.rows {
			b.WriteString(v.renderRow(i, r))
			b.WriteString("\n")
		}
	}

	if v.status != "" {
		b.WriteString("\n")
		b.WriteString(v.status)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(formatter.Dim(v.helpLine()))
	return b.String()
}

func (v *trackView) renderRow(i int, r app.ItemProgress) string {
	cursor := "  "
	if i == v.cursor {
		cursor = formatter.StyleOrange.Render("> ")
	}

	st, _ := v.ctrl.State(r.Item.ID)
	mark := formatter.CheckMark(st.Visible)
	if st.Pending {
		mark = v.spinner.View()
	}

	return fmt.Sprintf("%s%s %-28s %s  %s  %s",
		cursor,
		mark,
		r.Item.Title,
		formatter.CategoryBadge(r.Item.Category),
		formatter.StreakBadge(r.Streak),
		formatter.RenderRate(r.Rate, 10),
	)
}

func (v *trackView) helpLine() string {
	bindings := []key.Binding{v.keys.Up, v.keys.Down, v.keys.Toggle, v.keys.Refresh, v.keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
