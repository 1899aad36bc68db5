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

type tableBillMsg struct {
	tableID int64
	orders  []model.Order
}

// manageTablesScreen lets the operator add, edit and remove tables, and
// check the running bill of any table.
type manageTablesScreen struct {
	api   *api.Client
	creds model.Credentials

	tables  []model.Table
	cursor  int
	loading bool

	editing bool
	editID  *int64 // nil when adding a new table
	number  textinput.Model
	cap     textinput.Model
	focus   int
	busy    bool
	notice  string

	billFor    int64 // table the open bill belongs to, 0 when closed
	billOrders []model.Order
}

func newManageTablesScreen(client *api.Client, creds model.Credentials) *manageTablesScreen {
	number := textinput.New()
	number.Placeholder = "table number"
	number.CharLimit = 4
	number.Width = 12

	capacity := textinput.New()
	capacity.Placeholder = "seats"
	capacity.CharLimit = 3
	capacity.Width = 8

	return &manageTablesScreen{
		api:     client,
		creds:   creds,
		number:  number,
		cap:     capacity,
		loading: true,
	}
}

func (s *manageTablesScreen) init() tea.Cmd { return s.loadCmd() }

func (s *manageTablesScreen) title() string { return "Manage tables" }

func (s *manageTablesScreen) capturing() bool { return s.editing || s.billFor != 0 }

func (s *manageTablesScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)
	case model.TablesLoadedMsg:
		s.loading = false
		s.tables = msg.Tables
		if s.cursor >= len(s.tables) && s.cursor > 0 {
			s.cursor = len(s.tables) - 1
		}
	case model.TableSavedMsg:
		s.busy = false
		s.editing = false
		s.notice = "Table saved"
		return s.loadCmd()
	case model.TableDeletedMsg:
		s.notice = "Table deleted"
		return s.loadCmd()
	case tableBillMsg:
		s.billFor = msg.tableID
		s.billOrders = msg.orders
	case model.ErrorMsg:
		s.loading = false
		s.busy = false
	}
	return nil
}

func (s *manageTablesScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.billFor != 0 {
		if msg.String() == "esc" || msg.String() == "i" {
			s.billFor = 0
			s.billOrders = nil
		}
		return nil
	}

	if s.editing {
		switch msg.String() {
		case "esc":
			s.editing = false
			return nil
		case "tab", "shift+tab", "up", "down":
			s.focus = 1 - s.focus
			return s.syncFocus()
		case "enter", "ctrl+s":
			return s.save()
		}
		var cmd tea.Cmd
		if s.focus == 0 {
			s.number, cmd = s.number.Update(msg)
		} else {
			s.cap, cmd = s.cap.Update(msg)
		}
		return cmd
	}

	switch {
	case key.Matches(msg, Keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, Keys.Down):
		if s.cursor < len(s.tables)-1 {
			s.cursor++
		}
	default:
		switch msg.String() {
		case "a":
			return s.openForm(nil)
		case "e":
			if len(s.tables) > 0 {
				table := s.tables[s.cursor]
				return s.openForm(&table)
			}
		case "d":
			if len(s.tables) > 0 {
				return s.deleteCmd(s.tables[s.cursor].TableID)
			}
		case "i":
			if len(s.tables) > 0 {
				return s.billCmd(s.tables[s.cursor].TableID)
			}
		}
	}
	return nil
}

func (s *manageTablesScreen) openForm(table *model.Table) tea.Cmd {
	s.editing = true
	s.focus = 0
	s.notice = ""
	if table == nil {
		s.editID = nil
		s.number.SetValue("")
		s.cap.SetValue("")
	} else {
		id := table.TableID
		s.editID = &id
		s.number.SetValue(strconv.Itoa(table.TableNumber))
		s.cap.SetValue(strconv.Itoa(table.Capacity))
	}
	return s.syncFocus()
}

func (s *manageTablesScreen) save() tea.Cmd {
	if s.busy {
		return nil
	}
	number, err := strconv.Atoi(strings.TrimSpace(s.number.Value()))
	if err != nil || number < 1 {
		s.notice = "Enter a table number."
		return nil
	}
	capacity, err := strconv.Atoi(strings.TrimSpace(s.cap.Value()))
	if err != nil || capacity < 1 {
		s.notice = "Enter how many seats the table has."
		return nil
	}

	s.busy = true
	s.notice = ""
	client, creds, editID := s.api, s.creds, s.editID
	return func() tea.Msg {
		var err error
		if editID == nil {
			err = client.CreateTable(context.Background(), creds, number, capacity)
		} else {
			err = client.EditTable(context.Background(), creds, *editID, number, capacity)
		}
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.TableSavedMsg{}
	}
}

func (s *manageTablesScreen) syncFocus() tea.Cmd {
	s.number.Blur()
	s.cap.Blur()
	if s.focus == 0 {
		return s.number.Focus()
	}
	return s.cap.Focus()
}

func (s *manageTablesScreen) view(width int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Manage tables"))
	b.WriteString("\n\n")

	if s.billFor != 0 {
		return s.billView(&b)
	}

	if s.editing {
		heading := "New table"
		if s.editID != nil {
			heading = "Edit table"
		}
		b.WriteString("  " + LabelStyle.Render(heading) + "\n\n")
		b.WriteString("  " + LabelStyle.Render("Number") + "  " + s.number.View() + "\n")
		b.WriteString("  " + LabelStyle.Render("Seats") + "   " + s.cap.View() + "\n")
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
		b.WriteString("  " + HelpDescStyle.Render("loading tables..."))
	case len(s.tables) == 0:
		b.WriteString(EmptyStateStyle.Render("No tables yet. Press a to add one."))
	default:
		for i, table := range s.tables {
			line := fmt.Sprintf("table %-3d  %d seats", table.TableNumber, table.Capacity)
			b.WriteString(renderRow(line, i == s.cursor, width-4))
			b.WriteByte('\n')
		}
	}

	if s.notice != "" {
		b.WriteString("\n" + SuccessStyle.Render(s.notice))
	}
	return b.String()
}

func (s *manageTablesScreen) billView(b *strings.Builder) string {
	b.WriteString("  " + LabelStyle.Render(fmt.Sprintf("Bill for table %d", s.billFor)) + "\n\n")
	if len(s.billOrders) == 0 {
		b.WriteString(EmptyStateStyle.Render("Nothing unpaid on this table."))
		return b.String()
	}

	var total float64
	for _, o := range s.billOrders {
		fmt.Fprintf(b, "  #%-4d %-40s %7.2f\n", o.FoodOrderID, truncate(orderSummary(o), 40), orderTotal(o))
		total += orderTotal(o)
	}
	fmt.Fprintf(b, "\n  %s %.2f\n", LabelStyle.Render("Total"), total)
	return b.String()
}

func (s *manageTablesScreen) footer() string {
	if s.billFor != 0 {
		return footerHints("esc", "close bill")
	}
	if s.editing {
		return footerHints("tab", "next field", "enter", "save", "esc", "cancel")
	}
	return footerHints("a", "add", "e", "edit", "d", "delete", "i", "bill", "esc", "back")
}

func (s *manageTablesScreen) loadCmd() tea.Cmd {
	client, creds := s.api, s.creds
	return func() tea.Msg {
		tables, err := client.Tables(context.Background(), creds)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.TablesLoadedMsg{Tables: tables}
	}
}

func (s *manageTablesScreen) deleteCmd(tableID int64) tea.Cmd {
	client, creds := s.api, s.creds
	return func() tea.Msg {
		if err := client.DeleteTable(context.Background(), creds, tableID); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.TableDeletedMsg{TableID: tableID}
	}
}

func (s *manageTablesScreen) billCmd(tableID int64) tea.Cmd {
	client := s.api
	return func() tea.Msg {
		orders, err := client.TableBill(context.Background(), tableID)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return tableBillMsg{tableID: tableID, orders: orders}
	}
}
