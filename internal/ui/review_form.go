package ui

import (
	"context"
	"strconv"
	"strings"

	"tablenest/internal/api"
	"tablenest/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// reviewScreen submits a customer review of a restaurant.
type reviewScreen struct {
	api          *api.Client
	creds        model.Credentials
	restaurantID int64

	titleInput textinput.Model
	body       textinput.Model
	rating     textinput.Model
	focus      int
	busy       bool
	notice     string
}

func newReviewScreen(client *api.Client, creds model.Credentials, restaurantID int64) *reviewScreen {
	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 80
	title.Width = 40
	title.Focus()

	body := textinput.New()
	body.Placeholder = "how was it?"
	body.CharLimit = 500
	body.Width = 60

	rating := textinput.New()
	rating.Placeholder = "1-5"
	rating.CharLimit = 1
	rating.Width = 4

	return &reviewScreen{
		api:          client,
		creds:        creds,
		restaurantID: restaurantID,
		titleInput:   title,
		body:         body,
		rating:       rating,
	}
}

func (s *reviewScreen) init() tea.Cmd { return textinput.Blink }

func (s *reviewScreen) title() string { return "Write review" }

func (s *reviewScreen) capturing() bool { return true }

func (s *reviewScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return navBack
		case "tab", "down", "enter":
			if msg.String() == "enter" && s.focus == 2 {
				return s.submit()
			}
			s.focus = (s.focus + 1) % 3
			return s.syncFocus()
		case "shift+tab", "up":
			s.focus = (s.focus + 2) % 3
			return s.syncFocus()
		case "ctrl+s":
			return s.submit()
		}
		return s.updateInputs(msg)
	case model.ErrorMsg:
		s.busy = false
	}
	return nil
}

func (s *reviewScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}
	title := strings.TrimSpace(s.titleInput.Value())
	if title == "" {
		s.notice = "A title is required."
		return nil
	}
	rating, err := strconv.Atoi(strings.TrimSpace(s.rating.Value()))
	if err != nil || rating < 1 || rating > 5 {
		s.notice = "Rating must be between 1 and 5."
		return nil
	}

	review := model.Review{Title: title, Body: strings.TrimSpace(s.body.Value()), Rating: rating}
	s.busy = true
	s.notice = ""
	client, creds, id := s.api, s.creds, s.restaurantID
	return func() tea.Msg {
		if err := client.SubmitReview(context.Background(), creds, id, review); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ReviewSavedMsg{RestaurantID: id}
	}
}

func (s *reviewScreen) syncFocus() tea.Cmd {
	s.titleInput.Blur()
	s.body.Blur()
	s.rating.Blur()
	switch s.focus {
	case 0:
		return s.titleInput.Focus()
	case 1:
		return s.body.Focus()
	default:
		return s.rating.Focus()
	}
}

func (s *reviewScreen) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	s.titleInput, cmd = s.titleInput.Update(msg)
	cmds = append(cmds, cmd)
	s.body, cmd = s.body.Update(msg)
	cmds = append(cmds, cmd)
	s.rating, cmd = s.rating.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (s *reviewScreen) view(width int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Write review"))
	b.WriteString("\n\n")
	b.WriteString("  " + LabelStyle.Render("Title") + "\n")
	b.WriteString("  " + s.titleInput.View() + "\n\n")
	b.WriteString("  " + LabelStyle.Render("Review") + "\n")
	b.WriteString("  " + s.body.View() + "\n\n")
	b.WriteString("  " + LabelStyle.Render("Rating") + "  " + s.rating.View() + "\n")
	if s.busy {
		b.WriteString("\n  " + HelpDescStyle.Render("submitting..."))
	}
	if s.notice != "" {
		b.WriteString("\n" + ErrorStyle.Render(s.notice))
	}
	return b.String()
}

func (s *reviewScreen) footer() string {
	return footerHints("tab", "next field", "ctrl+s", "submit", "esc", "back")
}
