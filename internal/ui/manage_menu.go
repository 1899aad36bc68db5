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

// manageMenuScreen lets the operator add, edit and remove menu items.
type manageMenuScreen struct {
	api          *api.Client
	creds        model.Credentials
	restaurantID int64

	menu    []model.MenuItem
	cursor  int
	loading bool

	editing bool
	editID  *int64             // nil when adding a new item
	inputs  [5]textinput.Model // name, description, price, calories, section
	focus   int
	busy    bool
	notice  string
}

func newManageMenuScreen(client *api.Client, creds model.Credentials, restaurantID int64) *manageMenuScreen {
	s := &manageMenuScreen{
		api:          client,
		creds:        creds,
		restaurantID: restaurantID,
		loading:      true,
	}

	placeholders := [5]string{"name", "description", "price", "calories", "section"}
	for i := range s.inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.CharLimit = 200
		input.Width = 40
		s.inputs[i] = input
	}
	return s
}

func (s *manageMenuScreen) init() tea.Cmd { return s.loadCmd() }

func (s *manageMenuScreen) title() string { return "Manage menu" }

func (s *manageMenuScreen) capturing() bool { return s.editing }

func (s *manageMenuScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)
	case model.MenuLoadedMsg:
		s.loading = false
		s.menu = msg.Menu
		if s.cursor >= len(s.menu) && s.cursor > 0 {
			s.cursor = len(s.menu) - 1
		}
	case model.MenuItemSavedMsg:
		s.busy = false
		s.editing = false
		s.notice = "Menu item saved"
		return s.loadCmd()
	case model.MenuItemDeletedMsg:
		s.notice = "Menu item deleted"
		return s.loadCmd()
	case model.ErrorMsg:
		s.loading = false
		s.busy = false
	}
	return nil
}

func (s *manageMenuScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
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
			return s.save()
		}
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
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
		case "a":
			return s.openForm(nil)
		case "e":
			if len(s.menu) > 0 {
				item := s.menu[s.cursor]
				return s.openForm(&item)
			}
		case "d":
			if len(s.menu) > 0 {
				return s.deleteCmd(s.menu[s.cursor].MenuItemID)
			}
		}
	}
	return nil
}

// openForm opens the item form, prefilled when editing an existing item.
func (s *manageMenuScreen) openForm(item *model.MenuItem) tea.Cmd {
	s.editing = true
	s.focus = 0
	s.notice = ""
	if item == nil {
		s.editID = nil
		for i := range s.inputs {
			s.inputs[i].SetValue("")
		}
	} else {
		id := item.MenuItemID
		s.editID = &id
		s.inputs[0].SetValue(item.Name)
		s.inputs[1].SetValue(item.Description)
		s.inputs[2].SetValue(strconv.FormatFloat(item.Price, 'f', 2, 64))
		s.inputs[3].SetValue(strconv.Itoa(item.Calories))
		s.inputs[4].SetValue(item.MenuSection)
	}
	return s.syncFocus()
}

func (s *manageMenuScreen) save() tea.Cmd {
	if s.busy {
		return nil
	}
	name := strings.TrimSpace(s.inputs[0].Value())
	if name == "" {
		s.notice = "The item needs a name."
		return nil
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(s.inputs[2].Value()), 64)
	if err != nil || price < 0 {
		s.notice = "Enter a valid price."
		return nil
	}
	calories, err := strconv.Atoi(strings.TrimSpace(s.inputs[3].Value()))
	if err != nil || calories < 0 {
		s.notice = "Enter the calories as a whole number."
		return nil
	}

	input := model.MenuItemInput{
		RestaurantID:     s.restaurantID,
		Name:             name,
		Description:      strings.TrimSpace(s.inputs[1].Value()),
		Price:            price,
		Calories:         calories,
		MenuSection:      strings.TrimSpace(s.inputs[4].Value()),
		ChangeExistingID: s.editID,
	}

	s.busy = true
	s.notice = ""
	client, creds := s.api, s.creds
	return func() tea.Msg {
		if err := client.SaveMenuItem(context.Background(), creds, input); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.MenuItemSavedMsg{}
	}
}

func (s *manageMenuScreen) syncFocus() tea.Cmd {
	for i := range s.inputs {
		s.inputs[i].Blur()
	}
	return s.inputs[s.focus].Focus()
}

func (s *manageMenuScreen) view(width int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Manage menu"))
	b.WriteString("\n\n")

	if s.editing {
		heading := "New item"
		if s.editID != nil {
			heading = "Edit item"
		}
		b.WriteString("  " + LabelStyle.Render(heading) + "\n\n")
		labels := [5]string{"Name", "Description", "Price", "Calories", "Section"}
		for i := range s.inputs {
			b.WriteString(fmt.Sprintf("  %-12s %s\n", LabelStyle.Render(labels[i]), s.inputs[i].View()))
		}
		if s.busy {
			b.WriteString("\n  " + HelpDescStyle.Render("saving..."))
		}
		if s.notice != "" {
			b.WriteString("\n" + ErrorStyle.Render(s.notice))
		}
		return b.String()
	}

	switch {
	case s.loading:
		b.WriteString("  " + HelpDescStyle.Render("loading menu..."))
	case len(s.menu) == 0:
		b.WriteString(EmptyStateStyle.Render("The menu is empty. Press a to add the first item."))
	default:
		section := ""
		for i, item := range s.menu {
			if item.MenuSection != section {
				section = item.MenuSection
				b.WriteString("  " + HelpDescStyle.Render(section) + "\n")
			}
			line := fmt.Sprintf("%-28s %7.2f  %s", truncate(item.Name, 28), item.Price,
				HelpDescStyle.Render(fmt.Sprintf("%d kcal", item.Calories)))
			b.WriteString(renderRow(line, i == s.cursor, width-4))
			b.WriteByte('\n')
		}
	}

	if s.notice != "" {
		b.WriteString("\n" + SuccessStyle.Render(s.notice))
	}
	return b.String()
}

func (s *manageMenuScreen) footer() string {
	if s.editing {
		return footerHints("tab", "next field", "enter", "save", "esc", "cancel")
	}
	return footerHints("a", "add", "e", "edit", "d", "delete", "esc", "back")
}

func (s *manageMenuScreen) loadCmd() tea.Cmd {
	client, id := s.api, s.restaurantID
	return func() tea.Msg {
		menu, err := client.Menu(context.Background(), id)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.MenuLoadedMsg{Menu: menu}
	}
}

func (s *manageMenuScreen) deleteCmd(menuItemID int64) tea.Cmd {
	client, creds := s.api, s.creds
	return func() tea.Msg {
		if err := client.DeleteMenuItem(context.Background(), creds, menuItemID); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.MenuItemDeletedMsg{MenuItemID: menuItemID}
	}
}
