// Package ui is the terminal front end. A root Model owns the view
// history and the signed-in session; each screen is a sub-model built
// when its view becomes current and discarded when the user navigates
// away. All backend traffic happens inside tea.Cmd closures, so Update
// never blocks.
package ui

import (
	"strconv"
	"strings"

	"tablenest/internal/api"
	"tablenest/internal/model"
	"tablenest/internal/nav"
	"tablenest/internal/session"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// screen is one view of the client. capturing reports whether the
// screen currently owns the keyboard (a focused text input, an open
// sub-panel), in which case the root passes every key through instead
// of handling the global ones.
type screen interface {
	update(msg tea.Msg) tea.Cmd
	view(width int) string
	footer() string
	title() string
	capturing() bool
}

// Model is the root Bubble Tea model.
type Model struct {
	api   *api.Client
	store *session.Store

	creds    model.Credentials
	email    string
	signedIn bool

	// pendingEmail is the address a verification code was sent to,
	// held until the code is verified.
	pendingEmail string

	history *nav.Stack
	active  screen
	initCmd tea.Cmd

	// gen increments every time a screen is built. Timer and poll
	// messages carry the gen they were scheduled under; a mismatch
	// means the message belongs to an abandoned visit and is dropped.
	gen int

	width    int
	height   int
	errText  string
	infoText string
	showHelp bool
}

// New builds the root model positioned on the home screen.
func New(client *api.Client, store *session.Store, creds model.Credentials, email string, signedIn bool) Model {
	m := Model{
		api:      client,
		store:    store,
		creds:    creds,
		email:    email,
		signedIn: signedIn,
		history:  nav.NewStack(),
		width:    80,
		height:   24,
	}
	m.active, m.initCmd = m.buildScreen(nav.To(nav.Home))
	return m
}

func (m Model) Init() tea.Cmd {
	return m.initCmd
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		m.infoText = ""
		if !m.active.capturing() {
			switch {
			case key.Matches(msg, Keys.Quit):
				return m, tea.Quit
			case key.Matches(msg, Keys.Help):
				m.showHelp = true
				return m, nil
			case key.Matches(msg, Keys.Back):
				return m.goBack()
			}
		}
		return m, m.active.update(msg)

	case model.ErrorMsg:
		m.errText = msg.Err.Error()
		// Screens still see the error so they can drop busy states.
		return m, m.active.update(msg)

	case model.NavigateMsg:
		return m.navigate(msg.View)

	case model.NavigateBackMsg:
		return m.goBack()

	case model.VerificationStartedMsg:
		m.pendingEmail = msg.Email
		return m.navigate(nav.ToParam(nav.VerifyCode, strconv.FormatInt(msg.UserID, 10)))

	case model.SignedInMsg:
		m.creds = msg.Creds
		m.email = msg.Email
		m.signedIn = true
		m.infoText = "Signed in as " + msg.Email
		save := m.saveSessionCmd()
		next, cmd := m.navigate(nav.To(nav.AccountDetails))
		return next, tea.Batch(save, cmd)

	case model.SignedOutMsg:
		m.creds = model.Credentials{}
		m.email = ""
		m.signedIn = false
		m.infoText = "Signed out"
		clear := m.clearSessionCmd()
		next, cmd := m.navigate(nav.To(nav.Home))
		return next, tea.Batch(clear, cmd)

	case model.EmailChangedMsg:
		m.email = msg.NewEmail
		m.infoText = "Email updated"
		save := m.saveSessionCmd()
		next, cmd := m.goBack()
		return next, tea.Batch(save, cmd)

	case model.ReviewSavedMsg:
		m.infoText = "Review submitted"
		return m.goBack()

	case model.ReservationPlacedMsg:
		m.infoText = "Reservation confirmed"
		return m.goBack()

	case model.OrderPlacedMsg:
		m.infoText = "Order placed"
		return m.navigate(nav.ToParam(nav.OrderStatus, strconv.FormatInt(msg.FoodOrderID, 10)))

	default:
		return m, m.active.update(msg)
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("TableNest"))
	b.WriteString("  ")
	b.WriteString(m.breadcrumbs())
	if m.signedIn && m.email != "" {
		b.WriteString("  ")
		b.WriteString(BreadcrumbStyle.Render(m.email))
	}
	b.WriteString("\n\n")

	switch {
	case m.errText != "":
		b.WriteString(ErrorStyle.Render(m.errText))
		b.WriteString("\n\n")
	case m.infoText != "":
		b.WriteString(SuccessStyle.Render(m.infoText))
		b.WriteString("\n\n")
	}

	if m.showHelp {
		b.WriteString(m.helpView())
	} else {
		b.WriteString(m.active.view(m.width))
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Width(max(m.width-2, 20)).Render(m.active.footer()))
	return b.String()
}

// navigate pushes a view onto the history and activates its screen.
// Views that need a session redirect to the sign-in screen when no one
// is signed in.
func (m Model) navigate(v nav.View) (Model, tea.Cmd) {
	if requiresAuth(v.Name) && !m.signedIn {
		v = nav.To(nav.SignIn)
	}
	m.history.Push(v)
	m.errText = ""
	var cmd tea.Cmd
	m.active, cmd = m.buildScreen(v)
	return m, cmd
}

// goBack returns to the previous view. At the initial home entry there
// is nowhere to go, so nothing happens.
func (m Model) goBack() (Model, tea.Cmd) {
	if m.history.Depth() == 1 {
		return m, nil
	}
	v := m.history.Back()
	m.errText = ""
	var cmd tea.Cmd
	m.active, cmd = m.buildScreen(v)
	return m, cmd
}

// buildScreen constructs the screen for a view and returns its load
// command. Unknown names and unparseable parameters fall back to the
// home screen.
func (m *Model) buildScreen(v nav.View) (screen, tea.Cmd) {
	m.gen++

	switch v.Name {
	case nav.Home:
		s := newHomeScreen(m.api, m.signedIn)
		return s, s.init()
	case nav.RestaurantPreview:
		if id, ok := parseID(v.Param); ok {
			s := newPreviewScreen(m.api, id)
			return s, s.init()
		}
	case nav.SignIn:
		s := newSignInScreen(m.api)
		return s, s.init()
	case nav.VerifyCode:
		if id, ok := parseID(v.Param); ok {
			s := newVerifyScreen(m.api, id, m.pendingEmail)
			return s, s.init()
		}
	case nav.AccountDetails:
		s := newAccountScreen(m.api, m.creds)
		return s, s.init()
	case nav.ChangeEmail:
		s := newChangeEmailScreen(m.api, m.creds)
		return s, s.init()
	case nav.PlaceReview:
		if id, ok := parseID(v.Param); ok {
			s := newReviewScreen(m.api, m.creds, id)
			return s, s.init()
		}
	case nav.PlaceReservation:
		if id, ok := parseID(v.Param); ok {
			s := newReservationScreen(m.api, m.creds, id)
			return s, s.init()
		}
	case nav.ViewReservations:
		s := newReservationsScreen(m.api, m.creds)
		return s, s.init()
	case nav.PlaceFoodOrder:
		if id, ok := parseID(v.Param); ok {
			s := newOrderFormScreen(m.api, m.creds, id)
			return s, s.init()
		}
	case nav.OrderStatus:
		if id, ok := parseID(v.Param); ok {
			s := newOrderStatusScreen(m.api, id, m.gen)
			return s, s.init()
		}
	case nav.ControlPanel:
		s := newControlPanelScreen(m.api, m.creds)
		return s, s.init()
	case nav.OrderQueue:
		s := newOrderQueueScreen(m.api, m.creds, m.gen)
		return s, s.init()
	case nav.ManageMenu:
		if id, ok := parseID(v.Param); ok {
			s := newManageMenuScreen(m.api, m.creds, id)
			return s, s.init()
		}
	case nav.ManageTables:
		s := newManageTablesScreen(m.api, m.creds)
		return s, s.init()
	case nav.ManageHours:
		if id, ok := parseID(v.Param); ok {
			s := newManageHoursScreen(m.api, m.creds, id)
			return s, s.init()
		}
	}

	s := newHomeScreen(m.api, m.signedIn)
	return s, s.init()
}

func (m Model) breadcrumbs() string {
	depth := m.history.Depth()
	var parts []string
	if depth > 1 {
		parts = append(parts, BreadcrumbStyle.Render(strconv.Itoa(depth-1)+" back"))
	}
	parts = append(parts, BreadcrumbActiveStyle.Render(m.active.title()))
	return strings.Join(parts, BreadcrumbStyle.Render(" > "))
}

func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Help"))
	b.WriteString("\n\n")
	for _, binding := range []key.Binding{Keys.Up, Keys.Down, Keys.Select, Keys.Back, Keys.Help, Keys.Quit} {
		b.WriteString("  ")
		b.WriteString(HelpKeyStyle.Render(binding.Help().Key))
		b.WriteString("  ")
		b.WriteString(HelpDescStyle.Render(binding.Help().Desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(HelpDescStyle.Render("  This screen: " + m.active.footer()))
	b.WriteString("\n\n")
	b.WriteString(HelpDescStyle.Render("  press any key to close"))
	return b.String()
}

func (m Model) saveSessionCmd() tea.Cmd {
	store, creds, email := m.store, m.creds, m.email
	return func() tea.Msg {
		if err := store.Save(creds, email); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return nil
	}
}

func (m Model) clearSessionCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		if err := store.Clear(); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return nil
	}
}

// requiresAuth reports whether a view only makes sense with a session.
func requiresAuth(name nav.Name) bool {
	switch name {
	case nav.AccountDetails, nav.ChangeEmail, nav.PlaceReview,
		nav.PlaceReservation, nav.ViewReservations, nav.PlaceFoodOrder,
		nav.ControlPanel, nav.OrderQueue, nav.ManageMenu,
		nav.ManageTables, nav.ManageHours:
		return true
	}
	return false
}

func parseID(param string) (int64, bool) {
	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// navTo builds a command that asks the root model to open a view.
func navTo(v nav.View) tea.Cmd {
	return func() tea.Msg {
		return model.NavigateMsg{View: v}
	}
}

func navBack() tea.Msg {
	return model.NavigateBackMsg{}
}
