package ui

import (
	"context"
	"strings"

	"tablenest/internal/api"
	"tablenest/internal/model"
	"tablenest/internal/nav"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// accountScreen shows the signed-in user's profile.
type accountScreen struct {
	api   *api.Client
	creds model.Credentials

	spin    spinner.Model
	loading bool
	account model.Account
}

func newAccountScreen(client *api.Client, creds model.Credentials) *accountScreen {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	return &accountScreen{api: client, creds: creds, spin: spin, loading: true}
}

func (s *accountScreen) init() tea.Cmd {
	return tea.Batch(s.spin.Tick, s.loadCmd())
}

func (s *accountScreen) title() string { return "Account" }

func (s *accountScreen) capturing() bool { return false }

func (s *accountScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			return navTo(nav.To(nav.ChangeEmail))
		case "c":
			if s.account.Professional {
				return navTo(nav.To(nav.ControlPanel))
			}
		case "s":
			return func() tea.Msg { return model.SignedOutMsg{} }
		}
	case spinner.TickMsg:
		if !s.loading {
			return nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return cmd
	case model.AccountLoadedMsg:
		s.loading = false
		s.account = msg.Account
	case model.ErrorMsg:
		s.loading = false
	}
	return nil
}

func (s *accountScreen) view(width int) string {
	if s.loading {
		return "  " + s.spin.View() + " loading account"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Account"))
	b.WriteString("\n\n")
	b.WriteString("  " + LabelStyle.Render("Name") + "   " + s.account.Name + "\n")
	b.WriteString("  " + LabelStyle.Render("Email") + "  " + s.account.Email + "\n")
	if s.account.Professional {
		b.WriteString("\n  " + BadgeConfirmedStyle.Render("professional account") + "\n")
	}
	return b.String()
}

func (s *accountScreen) footer() string {
	hints := []string{"e", "change email"}
	if s.account.Professional {
		hints = append(hints, "c", "control panel")
	}
	hints = append(hints, "s", "sign out", "esc", "back")
	return footerHints(hints...)
}

func (s *accountScreen) loadCmd() tea.Cmd {
	client, creds := s.api, s.creds
	return func() tea.Msg {
		account, err := client.AccountDetails(context.Background(), creds)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.AccountLoadedMsg{Account: account}
	}
}

// changeEmailScreen updates the account's email address.
type changeEmailScreen struct {
	api   *api.Client
	creds model.Credentials

	input  textinput.Model
	busy   bool
	notice string
}

func newChangeEmailScreen(client *api.Client, creds model.Credentials) *changeEmailScreen {
	input := textinput.New()
	input.Placeholder = "new@example.com"
	input.CharLimit = 128
	input.Width = 40
	input.Focus()

	return &changeEmailScreen{api: client, creds: creds, input: input}
}

func (s *changeEmailScreen) init() tea.Cmd { return textinput.Blink }

func (s *changeEmailScreen) title() string { return "Change email" }

func (s *changeEmailScreen) capturing() bool { return true }

func (s *changeEmailScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return navBack
		case "enter":
			return s.submit()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return cmd
	case model.ErrorMsg:
		s.busy = false
	}
	return nil
}

func (s *changeEmailScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}
	email := strings.TrimSpace(s.input.Value())
	if !emailPattern.MatchString(email) {
		s.notice = "Enter a valid email address."
		return nil
	}

	s.busy = true
	s.notice = ""
	client, creds := s.api, s.creds
	return func() tea.Msg {
		if err := client.ChangeEmail(context.Background(), creds, email); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.EmailChangedMsg{NewEmail: email}
	}
}

func (s *changeEmailScreen) view(width int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Change email"))
	b.WriteString("\n\n")
	b.WriteString("  " + LabelStyle.Render("New email") + "\n")
	b.WriteString("  " + s.input.View() + "\n")
	if s.busy {
		b.WriteString("\n  " + HelpDescStyle.Render("saving..."))
	}
	if s.notice != "" {
		b.WriteString("\n" + ErrorStyle.Render(s.notice))
	}
	return b.String()
}

func (s *changeEmailScreen) footer() string {
	return footerHints("enter", "save", "esc", "back")
}
