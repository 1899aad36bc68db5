package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tablenest/internal/api"
	"tablenest/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// orderFormScreen composes a food order from the restaurant's menu.
type orderFormScreen struct {
	api          *api.Client
	creds        model.Credentials
	restaurantID int64

	menu    []model.MenuItem
	cursor  int
	qty     map[int64]int
	table   textinput.Model
	note    textinput.Model
	loading bool
	busy    bool
	notice  string
}

func newOrderFormScreen(client *api.Client, creds model.Credentials, restaurantID int64) *orderFormScreen {
	table := textinput.New()
	table.Placeholder = "table number"
	table.CharLimit = 4
	table.Width = 12

	note := textinput.New()
	note.Placeholder = "allergies, preferences..."
	note.CharLimit = 200
	note.Width = 50

	return &orderFormScreen{
		api:          client,
		creds:        creds,
		restaurantID: restaurantID,
		qty:          make(map[int64]int),
		table:        table,
		note:         note,
		loading:      true,
	}
}

func (s *orderFormScreen) init() tea.Cmd { return s.loadMenuCmd() }

func (s *orderFormScreen) title() string { return "Order food" }

func (s *orderFormScreen) capturing() bool {
	return s.table.Focused() || s.note.Focused()
}

func (s *orderFormScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)
	case model.MenuLoadedMsg:
		s.loading = false
		s.menu = msg.Menu
		s.cursor = 0
	case model.ErrorMsg:
		s.loading = false
		s.busy = false
	}
	return nil
}

func (s *orderFormScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.table.Focused() || s.note.Focused() {
		switch msg.String() {
		case "esc", "enter", "tab":
			s.table.Blur()
			s.note.Blur()
			return nil
		}
		var cmd tea.Cmd
		if s.table.Focused() {
			s.table, cmd = s.table.Update(msg)
		} else {
			s.note, cmd = s.note.Update(msg)
		}
		return cmd
	}

	switch {
	case key.Matches(msg, Keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, Keys.Down):
		if s.cursor < len(s.menu)-1 {
			s.cursor++
		}
	default:
		switch msg.String() {
		case "+", "=", "enter":
			if len(s.menu) > 0 {
				s.qty[s.menu[s.cursor].MenuItemID]++
			}
		case "-", "_":
			if len(s.menu) > 0 {
				id := s.menu[s.cursor].MenuItemID
				if s.qty[id] > 0 {
					s.qty[id]--
				}
				if s.qty[id] == 0 {
					delete(s.qty, id)
				}
			}
		case "t":
			return s.table.Focus()
		case "n":
			return s.note.Focus()
		case "ctrl+s":
			return s.submit()
		}
	}
	return nil
}

func (s *orderFormScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}
	if len(s.qty) == 0 {
		s.notice = "Add at least one item."
		return nil
	}
	tableID, err := strconv.ParseInt(strings.TrimSpace(s.table.Value()), 10, 64)
	if err != nil || tableID < 1 {
		s.notice = "Enter your table number."
		return nil
	}

	// Keep menu order for the selections.
	var selections []model.OrderSelection
	for _, item := range s.menu {
		if q := s.qty[item.MenuItemID]; q > 0 {
			selections = append(selections, model.OrderSelection{MenuItemID: item.MenuItemID, Quantity: q})
		}
	}

	s.busy = true
	s.notice = ""
	client, creds, restaurantID := s.api, s.creds, s.restaurantID
	note := strings.TrimSpace(s.note.Value())
	return func() tea.Msg {
		orderID, err := client.PlaceOrder(context.Background(), creds, restaurantID, tableID, selections, note)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.OrderPlacedMsg{FoodOrderID: orderID}
	}
}

func (s *orderFormScreen) view(width int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Order food"))
	b.WriteString("\n\n")

	if s.loading {
		b.WriteString("  " + HelpDescStyle.Render("loading menu..."))
		return b.String()
	}
	if len(s.menu) == 0 {
		b.WriteString(EmptyStateStyle.Render("This restaurant has no menu yet."))
		return b.String()
	}

	section := ""
	for i, item := range s.menu {
		if item.MenuSection != section {
			section = item.MenuSection
			b.WriteString("  " + HelpDescStyle.Render(section) + "\n")
		}
		q := s.qty[item.MenuItemID]
		qmark := "   "
		if q > 0 {
			qmark = BadgeConfirmedStyle.Render(fmt.Sprintf("%2dx", q))
		}
		line := fmt.Sprintf("%s %-28s %7.2f", qmark, truncate(item.Name, 28), item.Price)
		b.WriteString(renderRow(line, i == s.cursor, width-4))
		b.WriteByte('\n')
	}

	var total float64
	for _, item := range s.menu {
		total += item.Price * float64(s.qty[item.MenuItemID])
	}
	fmt.Fprintf(&b, "\n  %s %.2f\n", LabelStyle.Render("Total"), total)

	b.WriteString("\n  " + LabelStyle.Render("Table") + "  " + s.table.View() + "\n")
	b.WriteString("  " + LabelStyle.Render("Note") + "   " + s.note.View() + "\n")

	if s.busy {
		b.WriteString("\n  " + HelpDescStyle.Render("placing order..."))
	}
	if s.notice != "" {
		b.WriteString("\n" + ErrorStyle.Render(s.notice))
	}
	return b.String()
}

func (s *orderFormScreen) footer() string {
	return footerHints("+/-", "quantity", "t", "table", "n", "note", "ctrl+s", "place order", "esc", "back")
}

func (s *orderFormScreen) loadMenuCmd() tea.Cmd {
	client, id := s.api, s.restaurantID
	return func() tea.Msg {
		menu, err := client.Menu(context.Background(), id)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.MenuLoadedMsg{Menu: menu}
	}
}
