package ui

import (
	"context"
	"strconv"
	"strings"

	"tablenest/internal/api"
	"tablenest/internal/model"
	"tablenest/internal/nav"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// homeScreen shows a selection of restaurants and a search box.
type homeScreen struct {
	api      *api.Client
	signedIn bool

	search      textinput.Model
	spin        spinner.Model
	loading     bool
	restaurants []model.RestaurantDetails
	cursor      int
	resultsFor  string
}

func newHomeScreen(client *api.Client, signedIn bool) *homeScreen {
	search := textinput.New()
	search.Placeholder = "search restaurants"
	search.CharLimit = 64
	search.Width = 40

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	return &homeScreen{
		api:      client,
		signedIn: signedIn,
		search:   search,
		spin:     spin,
		loading:  true,
	}
}

func (s *homeScreen) init() tea.Cmd {
	return tea.Batch(s.spin.Tick, s.loadNearbyCmd())
}

func (s *homeScreen) title() string { return "Restaurants" }

func (s *homeScreen) capturing() bool { return s.search.Focused() }

func (s *homeScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)
	case spinner.TickMsg:
		if !s.loading {
			return nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return cmd
	case model.NearbyLoadedMsg:
		s.loading = false
		s.resultsFor = ""
		s.restaurants = msg.Restaurants
		s.cursor = 0
	case model.SearchResultsMsg:
		s.loading = false
		s.resultsFor = s.search.Value()
		s.restaurants = msg.Restaurants
		s.cursor = 0
	case model.ErrorMsg:
		s.loading = false
	}
	return nil
}

func (s *homeScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.search.Focused() {
		switch msg.String() {
		case "esc":
			s.search.Blur()
			return nil
		case "enter":
			term := s.search.Value()
			s.search.Blur()
			if term == "" {
				s.loading = true
				return tea.Batch(s.spin.Tick, s.loadNearbyCmd())
			}
			s.loading = true
			return tea.Batch(s.spin.Tick, s.searchCmd(term))
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, Keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, Keys.Down):
		if s.cursor < len(s.restaurants)-1 {
			s.cursor++
		}
	case key.Matches(msg, Keys.Select):
		if len(s.restaurants) > 0 {
			id := s.restaurants[s.cursor].RestaurantID
			return navTo(nav.ToParam(nav.RestaurantPreview, strconv.FormatInt(id, 10)))
		}
	default:
		switch msg.String() {
		case "/":
			return s.search.Focus()
		case "a":
			return navTo(nav.To(nav.AccountDetails))
		case "s":
			if !s.signedIn {
				return navTo(nav.To(nav.SignIn))
			}
		}
	}
	return nil
}

func (s *homeScreen) view(width int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(s.heading()))
	b.WriteString("\n\n  ")
	b.WriteString(s.search.View())
	b.WriteString("\n\n")

	if s.loading {
		b.WriteString("  " + s.spin.View() + " loading restaurants")
		return b.String()
	}
	if len(s.restaurants) == 0 {
		b.WriteString(EmptyStateStyle.Render("No restaurants found."))
		return b.String()
	}

	for i, r := range s.restaurants {
		line := r.Name
		if r.Category != "" {
			line += "  " + HelpDescStyle.Render(r.Category)
		}
		if r.Description != "" {
			line += "  " + HelpDescStyle.Render(truncate(r.Description, 48))
		}
		b.WriteString(renderRow(line, i == s.cursor, width-4))
		b.WriteByte('\n')
	}
	return b.String()
}

func (s *homeScreen) heading() string {
	if s.resultsFor != "" {
		return "Results for \"" + s.resultsFor + "\""
	}
	return "Restaurants near you"
}

func (s *homeScreen) footer() string {
	hints := []string{"/", "search", "enter", "view", "a", "account"}
	if !s.signedIn {
		hints = append(hints, "s", "sign in")
	}
	hints = append(hints, "q", "quit")
	return footerHints(hints...)
}

func (s *homeScreen) loadNearbyCmd() tea.Cmd {
	client := s.api
	return func() tea.Msg {
		ids, err := client.NearbyRestaurants(context.Background(), nil, nil, true)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		details, err := fetchDetails(client, ids)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.NearbyLoadedMsg{Restaurants: details}
	}
}

func (s *homeScreen) searchCmd(term string) tea.Cmd {
	client := s.api
	return func() tea.Msg {
		ids, err := client.SearchRestaurants(context.Background(), term)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		details, err := fetchDetails(client, ids)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.SearchResultsMsg{Restaurants: details}
	}
}

// fetchDetails resolves a list of restaurant identifiers to their
// profiles, preserving order.
func fetchDetails(client *api.Client, ids []int64) ([]model.RestaurantDetails, error) {
	details := make([]model.RestaurantDetails, 0, len(ids))
	for _, id := range ids {
		d, err := client.RestaurantDetails(context.Background(), id)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}
