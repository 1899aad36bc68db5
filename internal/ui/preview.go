package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tablenest/internal/api"
	"tablenest/internal/model"
	"tablenest/internal/nav"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// previewScreen shows one restaurant's profile, menu and reviews.
type previewScreen struct {
	api          *api.Client
	restaurantID int64

	spin    spinner.Model
	loading bool
	details model.RestaurantDetails
	menu    []model.MenuItem
	reviews []model.Review
}

func newPreviewScreen(client *api.Client, restaurantID int64) *previewScreen {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	return &previewScreen{
		api:          client,
		restaurantID: restaurantID,
		spin:         spin,
		loading:      true,
	}
}

func (s *previewScreen) init() tea.Cmd {
	return tea.Batch(s.spin.Tick, s.loadCmd())
}

func (s *previewScreen) title() string {
	if s.details.Name != "" {
		return s.details.Name
	}
	return "Restaurant"
}

func (s *previewScreen) capturing() bool { return false }

func (s *previewScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		param := strconv.FormatInt(s.restaurantID, 10)
		switch msg.String() {
		case "o":
			return navTo(nav.ToParam(nav.PlaceFoodOrder, param))
		case "r":
			return navTo(nav.ToParam(nav.PlaceReservation, param))
		case "w":
			return navTo(nav.ToParam(nav.PlaceReview, param))
		}
	case spinner.TickMsg:
		if !s.loading {
			return nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return cmd
	case model.PreviewLoadedMsg:
		s.loading = false
		s.details = msg.Details
		s.menu = msg.Menu
		s.reviews = msg.Reviews
	case model.ErrorMsg:
		s.loading = false
	}
	return nil
}

func (s *previewScreen) view(width int) string {
	if s.loading {
		return "  " + s.spin.View() + " loading restaurant"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(s.details.Name))
	b.WriteString("\n\n")
	if s.details.Category != "" {
		b.WriteString("  " + LabelStyle.Render(s.details.Category) + "\n")
	}
	if s.details.Description != "" {
		b.WriteString("  " + s.details.Description + "\n")
	}

	if len(s.details.OpeningPeriods) > 0 {
		b.WriteString("\n" + LabelStyle.Render("  Opening hours") + "\n")
		for _, p := range s.details.OpeningPeriods {
			day := "?"
			if p.Day >= 0 && p.Day < len(dayNames) {
				day = dayNames[p.Day]
			}
			fmt.Fprintf(&b, "    %-10s %s - %s\n", day, p.OpeningTime, p.ClosingTime)
		}
	}

	if len(s.menu) > 0 {
		b.WriteString("\n" + LabelStyle.Render("  Menu") + "\n")
		section := ""
		for _, item := range s.menu {
			if item.MenuSection != section {
				section = item.MenuSection
				b.WriteString("    " + HelpDescStyle.Render(section) + "\n")
			}
			fmt.Fprintf(&b, "      %-28s %7.2f  %s\n",
				truncate(item.Name, 28), item.Price,
				HelpDescStyle.Render(fmt.Sprintf("%d kcal", item.Calories)))
		}
	}

	if len(s.reviews) > 0 {
		b.WriteString("\n" + LabelStyle.Render("  Reviews") + "\n")
		for _, r := range s.reviews {
			fmt.Fprintf(&b, "    %s %s\n", BadgePendingStyle.Render(stars(r.Rating)), r.Title)
			if r.Body != "" {
				b.WriteString("      " + HelpDescStyle.Render(truncate(r.Body, width-8)) + "\n")
			}
		}
	}
	return b.String()
}

func (s *previewScreen) footer() string {
	return footerHints("o", "order food", "r", "reserve table", "w", "write review", "esc", "back")
}

func (s *previewScreen) loadCmd() tea.Cmd {
	client, id := s.api, s.restaurantID
	return func() tea.Msg {
		ctx := context.Background()
		details, err := client.RestaurantDetails(ctx, id)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		menu, err := client.Menu(ctx, id)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		reviews, err := client.Reviews(ctx, id)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.PreviewLoadedMsg{Details: details, Menu: menu, Reviews: reviews}
	}
}
