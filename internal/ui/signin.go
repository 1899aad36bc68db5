package ui

import (
	"context"
	"regexp"
	"strings"

	"tablenest/internal/api"
	"tablenest/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// signInScreen starts the email verification flow, either for an
// existing account or a new one.
type signInScreen struct {
	api *api.Client

	signup bool
	name   textinput.Model
	email  textinput.Model
	focus  int
	busy   bool
	notice string
}

func newSignInScreen(client *api.Client) *signInScreen {
	name := textinput.New()
	name.Placeholder = "your name"
	name.CharLimit = 64
	name.Width = 40

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 128
	email.Width = 40
	email.Focus()

	return &signInScreen{api: client, name: name, email: email}
}

func (s *signInScreen) init() tea.Cmd { return textinput.Blink }

func (s *signInScreen) title() string {
	if s.signup {
		return "Sign up"
	}
	return "Sign in"
}

func (s *signInScreen) capturing() bool { return true }

func (s *signInScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return navBack
		case "ctrl+t":
			s.signup = !s.signup
			s.notice = ""
			return s.syncFocus()
		case "tab", "shift+tab", "up", "down":
			if s.signup {
				s.focus = (s.focus + 1) % 2
			}
			return s.syncFocus()
		case "enter":
			return s.submit()
		}
		return s.updateInputs(msg)
	case model.ErrorMsg:
		s.busy = false
	}
	return nil
}

func (s *signInScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}
	email := strings.TrimSpace(s.email.Value())
	if !emailPattern.MatchString(email) {
		s.notice = "Enter a valid email address."
		return nil
	}

	var name *string
	if s.signup {
		trimmed := strings.TrimSpace(s.name.Value())
		if trimmed == "" {
			s.notice = "Enter your name to sign up."
			return nil
		}
		name = &trimmed
	}

	s.busy = true
	s.notice = ""
	client := s.api
	return func() tea.Msg {
		userID, err := client.BeginVerification(context.Background(), email, name)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.VerificationStartedMsg{UserID: userID, Email: email}
	}
}

func (s *signInScreen) syncFocus() tea.Cmd {
	s.name.Blur()
	s.email.Blur()
	if s.signup && s.focus == 0 {
		return s.name.Focus()
	}
	s.focus = 1
	return s.email.Focus()
}

func (s *signInScreen) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	s.name, cmd = s.name.Update(msg)
	cmds = append(cmds, cmd)
	s.email, cmd = s.email.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (s *signInScreen) view(width int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(s.title()))
	b.WriteString("\n\n")

	if s.signup {
		b.WriteString("  " + LabelStyle.Render("Name") + "\n")
		b.WriteString("  " + s.name.View() + "\n\n")
	}
	b.WriteString("  " + LabelStyle.Render("Email") + "\n")
	b.WriteString("  " + s.email.View() + "\n\n")

	if s.busy {
		b.WriteString("  " + HelpDescStyle.Render("requesting verification code...") + "\n")
	}
	if s.notice != "" {
		b.WriteString(ErrorStyle.Render(s.notice) + "\n")
	}
	b.WriteString("\n  " + HelpDescStyle.Render("A verification code will be emailed to you."))
	return b.String()
}

func (s *signInScreen) footer() string {
	mode := "switch to sign up"
	if s.signup {
		mode = "switch to sign in"
	}
	return footerHints("enter", "continue", "ctrl+t", mode, "esc", "back")
}

// verifyScreen exchanges the emailed code for a session.
type verifyScreen struct {
	api    *api.Client
	userID int64
	email  string

	code   textinput.Model
	busy   bool
	notice string
}

func newVerifyScreen(client *api.Client, userID int64, email string) *verifyScreen {
	code := textinput.New()
	code.Placeholder = "verification code"
	code.CharLimit = 12
	code.Width = 20
	code.Focus()

	return &verifyScreen{api: client, userID: userID, email: email, code: code}
}

func (s *verifyScreen) init() tea.Cmd { return textinput.Blink }

func (s *verifyScreen) title() string { return "Verify code" }

func (s *verifyScreen) capturing() bool { return true }

func (s *verifyScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return navBack
		case "enter":
			return s.submit()
		}
		var cmd tea.Cmd
		s.code, cmd = s.code.Update(msg)
		return cmd
	case model.ErrorMsg:
		s.busy = false
	}
	return nil
}

func (s *verifyScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}
	code := strings.TrimSpace(s.code.Value())
	if code == "" {
		s.notice = "Enter the code from your email."
		return nil
	}

	s.busy = true
	s.notice = ""
	client, userID, email := s.api, s.userID, s.email
	return func() tea.Msg {
		token, err := client.VerifyCode(context.Background(), userID, code)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		creds := model.Credentials{UserID: userID, AuthToken: token}
		return model.SignedInMsg{Creds: creds, Email: email}
	}
}

func (s *verifyScreen) view(width int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Verify code"))
	b.WriteString("\n\n")
	if s.email != "" {
		b.WriteString("  We emailed a code to " + LabelStyle.Render(s.email) + "\n\n")
	}
	b.WriteString("  " + s.code.View() + "\n")
	if s.busy {
		b.WriteString("\n  " + HelpDescStyle.Render("verifying..."))
	}
	if s.notice != "" {
		b.WriteString("\n" + ErrorStyle.Render(s.notice))
	}
	return b.String()
}

func (s *verifyScreen) footer() string {
	return footerHints("enter", "verify", "esc", "back")
}
