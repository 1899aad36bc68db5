package ui

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"tablenest/internal/api"
	"tablenest/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type hoursLoadedMsg struct{ periods []model.OpeningPeriod }

// manageHoursScreen edits the restaurant's weekly opening hours. Days
// with both fields empty are treated as closed.
type manageHoursScreen struct {
	api          *api.Client
	creds        model.Credentials
	restaurantID int64

	rows    [7][2]textinput.Model // per day: opening, closing
	focus   int                   // 0..13, row = focus/2
	loading bool
	busy    bool
	notice  string
}

func newManageHoursScreen(client *api.Client, creds model.Credentials, restaurantID int64) *manageHoursScreen {
	s := &manageHoursScreen{
		api:          client,
		creds:        creds,
		restaurantID: restaurantID,
		loading:      true,
	}
	for day := range s.rows {
		for col := range s.rows[day] {
			input := textinput.New()
			input.Placeholder = "HH:MM"
			input.CharLimit = 5
			input.Width = 7
			s.rows[day][col] = input
		}
	}
	s.rows[0][0].Focus()
	return s
}

func (s *manageHoursScreen) init() tea.Cmd {
	return tea.Batch(textinput.Blink, s.loadCmd())
}

func (s *manageHoursScreen) title() string { return "Opening hours" }

func (s *manageHoursScreen) capturing() bool { return true }

func (s *manageHoursScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return navBack
		case "tab", "right":
			s.focus = (s.focus + 1) % 14
			return s.syncFocus()
		case "shift+tab", "left":
			s.focus = (s.focus + 13) % 14
			return s.syncFocus()
		case "down", "enter":
			s.focus = (s.focus + 2) % 14
			return s.syncFocus()
		case "up":
			s.focus = (s.focus + 12) % 14
			return s.syncFocus()
		case "ctrl+s":
			return s.save()
		}
		day, col := s.focus/2, s.focus%2
		var cmd tea.Cmd
		s.rows[day][col], cmd = s.rows[day][col].Update(msg)
		return cmd

	case hoursLoadedMsg:
		s.loading = false
		for _, p := range msg.periods {
			if p.Day >= 0 && p.Day < len(s.rows) {
				s.rows[p.Day][0].SetValue(p.OpeningTime)
				s.rows[p.Day][1].SetValue(p.ClosingTime)
			}
		}

	case model.OpeningPeriodsSavedMsg:
		s.busy = false
		s.notice = "Opening hours saved"

	case model.ErrorMsg:
		s.loading = false
		s.busy = false
	}
	return nil
}

func (s *manageHoursScreen) save() tea.Cmd {
	if s.busy {
		return nil
	}

	var periods []model.OpeningPeriod
	for day := range s.rows {
		opening := strings.TrimSpace(s.rows[day][0].Value())
		closing := strings.TrimSpace(s.rows[day][1].Value())
		if opening == "" && closing == "" {
			continue
		}
		if !clockPattern.MatchString(opening) || !clockPattern.MatchString(closing) {
			s.notice = fmt.Sprintf("%s: times must be HH:MM.", dayNames[day])
			return nil
		}
		periods = append(periods, model.OpeningPeriod{Day: day, OpeningTime: opening, ClosingTime: closing})
	}

	s.busy = true
	s.notice = ""
	client, creds := s.api, s.creds
	return func() tea.Msg {
		if err := client.SetOpeningPeriods(context.Background(), creds, periods); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.OpeningPeriodsSavedMsg{}
	}
}

func (s *manageHoursScreen) syncFocus() tea.Cmd {
	for day := range s.rows {
		for col := range s.rows[day] {
			s.rows[day][col].Blur()
		}
	}
	return s.rows[s.focus/2][s.focus%2].Focus()
}

func (s *manageHoursScreen) view(width int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Opening hours"))
	b.WriteString("\n\n")

	if s.loading {
		b.WriteString("  " + HelpDescStyle.Render("loading opening hours..."))
		return b.String()
	}

	for day := range s.rows {
		fmt.Fprintf(&b, "  %-10s %s  to  %s\n",
			dayNames[day], s.rows[day][0].View(), s.rows[day][1].View())
	}
	b.WriteString("\n  " + HelpDescStyle.Render("leave a day empty to mark it closed"))

	if s.busy {
		b.WriteString("\n\n  " + HelpDescStyle.Render("saving..."))
	}
	if s.notice != "" {
		if strings.HasSuffix(s.notice, "saved") {
			b.WriteString("\n" + SuccessStyle.Render(s.notice))
		} else {
			b.WriteString("\n" + ErrorStyle.Render(s.notice))
		}
	}
	return b.String()
}

func (s *manageHoursScreen) footer() string {
	return footerHints("tab", "next field", "ctrl+s", "save", "esc", "back")
}

func (s *manageHoursScreen) loadCmd() tea.Cmd {
	client, id := s.api, s.restaurantID
	return func() tea.Msg {
		details, err := client.RestaurantDetails(context.Background(), id)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return hoursLoadedMsg{periods: details.OpeningPeriods}
	}
}

// clockPattern accepts times like 9:00 or 18:30.
var clockPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)
