package ui

import (
	"context"
	"strconv"
	"strings"

	"tablenest/internal/api"
	"tablenest/internal/model"
	"tablenest/internal/nav"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type panelDeniedMsg struct{ err error }

type panelDetailsMsg struct{ details model.RestaurantDetails }

// controlPanelScreen is the operator's hub. It resolves which
// restaurant the signed-in account runs, then links out to the queue
// and the management screens, and edits the public profile inline.
type controlPanelScreen struct {
	api   *api.Client
	creds model.Credentials

	restaurantID int64
	details      model.RestaurantDetails
	loaded       bool

	editing bool
	inputs  [3]textinput.Model // name, description, category
	focus   int
	busy    bool
	notice  string
}

func newControlPanelScreen(client *api.Client, creds model.Credentials) *controlPanelScreen {
	s := &controlPanelScreen{api: client, creds: creds}

	placeholders := [3]string{"restaurant name", "description", "category"}
	for i := range s.inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.CharLimit = 200
		input.Width = 50
		s.inputs[i] = input
	}
	return s
}

func (s *controlPanelScreen) init() tea.Cmd { return s.resolveCmd() }

func (s *controlPanelScreen) title() string { return "Control panel" }

func (s *controlPanelScreen) capturing() bool { return s.editing }

func (s *controlPanelScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)

	case model.OperatorRestaurantMsg:
		s.restaurantID = msg.RestaurantID
		return s.detailsCmd()

	case panelDetailsMsg:
		s.loaded = true
		s.details = msg.details
		s.inputs[0].SetValue(msg.details.Name)
		s.inputs[1].SetValue(msg.details.Description)
		s.inputs[2].SetValue(msg.details.Category)

	case panelDeniedMsg:
		// Not an operator account, or the backend refused; bail out.
		err := msg.err
		return tea.Sequence(
			navBack,
			func() tea.Msg { return model.ErrorMsg{Err: err} },
		)

	case model.RestaurantUpdatedMsg:
		s.busy = false
		s.editing = false
		s.notice = "Profile updated"
		return s.detailsCmd()

	case model.ErrorMsg:
		s.busy = false
	}
	return nil
}

func (s *controlPanelScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.editing {
		switch msg.String() {
		case "esc":
			s.editing = false
			return nil
		case "tab", "down":
			s.focus = (s.focus + 1) % len(s.inputs)
			return s.syncFocus()
		case "shift+tab", "up":
			s.focus = (s.focus + len(s.inputs) - 1) % len(s.inputs)
			return s.syncFocus()
		case "enter", "ctrl+s":
			return s.saveProfile()
		}
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		return cmd
	}

	if !s.loaded {
		return nil
	}
	param := strconv.FormatInt(s.restaurantID, 10)
	switch msg.String() {
	case "o":
		return navTo(nav.To(nav.OrderQueue))
	case "m":
		return navTo(nav.ToParam(nav.ManageMenu, param))
	case "t":
		return navTo(nav.To(nav.ManageTables))
	case "h":
		return navTo(nav.ToParam(nav.ManageHours, param))
	case "r":
		return navTo(nav.To(nav.ViewReservations))
	case "e":
		s.editing = true
		s.focus = 0
		s.notice = ""
		return s.syncFocus()
	}
	return nil
}

func (s *controlPanelScreen) saveProfile() tea.Cmd {
	if s.busy {
		return nil
	}
	name := strings.TrimSpace(s.inputs[0].Value())
	if name == "" {
		s.notice = "The restaurant needs a name."
		return nil
	}
	description := strings.TrimSpace(s.inputs[1].Value())
	category := strings.TrimSpace(s.inputs[2].Value())

	s.busy = true
	s.notice = ""
	client, creds := s.api, s.creds
	return func() tea.Msg {
		if err := client.UpdateRestaurant(context.Background(), creds, name, description, category); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.RestaurantUpdatedMsg{}
	}
}

func (s *controlPanelScreen) syncFocus() tea.Cmd {
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
	return s.inputs[s.focus].Focus()
}

func (s *controlPanelScreen) view(width int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Control panel"))
	b.WriteString("\n\n")

	if !s.loaded {
		b.WriteString("  " + HelpDescStyle.Render("loading your restaurant..."))
		return b.String()
	}

	if s.editing {
		labels := [3]string{"Name", "Description", "Category"}
		for i := range s.inputs {
			b.WriteString("  " + LabelStyle.Render(labels[i]) + "\n")
			b.WriteString("  " + s.inputs[i].View() + "\n\n")
		}
		if s.busy {
			b.WriteString("  " + HelpDescStyle.Render("saving..."))
		}
		if s.notice != "" {
			b.WriteString(ErrorStyle.Render(s.notice))
		}
		return b.String()
	}

	b.WriteString("  " + LabelStyle.Render(s.details.Name) + "\n")
	if s.details.Category != "" {
		b.WriteString("  " + HelpDescStyle.Render(s.details.Category) + "\n")
	}
	b.WriteString("\n")

	rows := [][2]string{
		{"o", "Order queue"},
		{"m", "Manage menu"},
		{"t", "Manage tables"},
		{"h", "Opening hours"},
		{"r", "Reservations"},
		{"e", "Edit profile"},
	}
	for _, row := range rows {
		b.WriteString("  " + HelpKeyStyle.Render(row[0]) + "  " + row[1] + "\n")
	}

	if s.notice != "" {
		b.WriteString("\n" + SuccessStyle.Render(s.notice))
	}
	return b.String()
}

func (s *controlPanelScreen) footer() string {
	if s.editing {
		return footerHints("tab", "next field", "enter", "save", "esc", "cancel")
	}
	return footerHints("o", "queue", "m", "menu", "t", "tables", "h", "hours", "r", "reservations", "e", "profile", "esc", "back")
}

func (s *controlPanelScreen) resolveCmd() tea.Cmd {
	client, userID := s.api, s.creds.UserID
	return func() tea.Msg {
		restaurantID, err := client.OperatorRestaurantID(context.Background(), userID)
		if err != nil {
			return panelDeniedMsg{err: err}
		}
		return model.OperatorRestaurantMsg{RestaurantID: restaurantID}
	}
}

func (s *controlPanelScreen) detailsCmd() tea.Cmd {
	client, id := s.api, s.restaurantID
	return func() tea.Msg {
		details, err := client.RestaurantDetails(context.Background(), id)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return panelDetailsMsg{details: details}
	}
}
