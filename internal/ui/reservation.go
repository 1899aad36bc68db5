package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tablenest/internal/api"
	"tablenest/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// reservationScreen books a table: pick a date and party size, then
// choose one of the free times the backend offers.
type reservationScreen struct {
	api          *api.Client
	creds        model.Credentials
	restaurantID int64

	date    textinput.Model
	persons textinput.Model
	focus   int // 0 date, 1 persons, 2 slot list

	slots      []string
	slotCursor int
	loading    bool
	busy       bool
	notice     string
}

func newReservationScreen(client *api.Client, creds model.Credentials, restaurantID int64) *reservationScreen {
	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 10
	date.Width = 12
	date.SetValue(time.Now().Format("2006-01-02"))
	date.Focus()

	persons := textinput.New()
	persons.Placeholder = "2"
	persons.CharLimit = 2
	persons.Width = 4
	persons.SetValue("2")

	return &reservationScreen{
		api:          client,
		creds:        creds,
		restaurantID: restaurantID,
		date:         date,
		persons:      persons,
		loading:      true,
	}
}

func (s *reservationScreen) init() tea.Cmd {
	return tea.Batch(textinput.Blink, s.loadSlotsCmd())
}

func (s *reservationScreen) title() string { return "Reserve table" }

func (s *reservationScreen) capturing() bool { return true }

func (s *reservationScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)
	case model.AvailabilityLoadedMsg:
		s.loading = false
		s.slots = msg.Times
		s.slotCursor = 0
	case model.ErrorMsg:
		s.loading = false
		s.busy = false
	}
	return nil
}

func (s *reservationScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		return navBack
	}

	if s.focus < 2 {
		switch msg.String() {
		case "tab", "shift+tab":
			s.focus = 1 - s.focus
			return s.syncFocus()
		case "enter", "down":
			if msg.String() == "down" && s.focus == 0 {
				s.focus = 1
				return s.syncFocus()
			}
			s.focus = 2
			s.date.Blur()
			s.persons.Blur()
			return s.refetch()
		}
		var cmd tea.Cmd
		if s.focus == 0 {
			s.date, cmd = s.date.Update(msg)
		} else {
			s.persons, cmd = s.persons.Update(msg)
		}
		return cmd
	}

	// slot list
	switch {
	case key.Matches(msg, Keys.Up):
		if s.slotCursor > 0 {
			s.slotCursor--
		} else {
			s.focus = 1
			return s.syncFocus()
		}
	case key.Matches(msg, Keys.Down):
		if s.slotCursor < len(s.slots)-1 {
			s.slotCursor++
		}
	case key.Matches(msg, Keys.Select):
		return s.book()
	default:
		if msg.String() == "tab" {
			s.focus = 0
			return s.syncFocus()
		}
	}
	return nil
}

func (s *reservationScreen) syncFocus() tea.Cmd {
	s.date.Blur()
	s.persons.Blur()
	if s.focus == 0 {
		return s.date.Focus()
	}
	if s.focus == 1 {
		return s.persons.Focus()
	}
	return nil
}

// refetch validates the form and reloads availability for it.
func (s *reservationScreen) refetch() tea.Cmd {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s.date.Value())); err != nil {
		s.notice = "Enter a date as YYYY-MM-DD."
		s.focus = 0
		return s.syncFocus()
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s.persons.Value())); err != nil || n < 1 {
		s.notice = "Enter the number of guests."
		s.focus = 1
		return s.syncFocus()
	}
	s.notice = ""
	s.loading = true
	return s.loadSlotsCmd()
}

func (s *reservationScreen) book() tea.Cmd {
	if s.busy || len(s.slots) == 0 {
		return nil
	}
	date := strings.TrimSpace(s.date.Value())
	persons, _ := strconv.Atoi(strings.TrimSpace(s.persons.Value()))
	slot := s.slots[s.slotCursor]

	s.busy = true
	client, creds, id := s.api, s.creds, s.restaurantID
	return func() tea.Msg {
		if err := client.MakeReservation(context.Background(), creds, id, date, slot, persons); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ReservationPlacedMsg{}
	}
}

func (s *reservationScreen) loadSlotsCmd() tea.Cmd {
	client, id := s.api, s.restaurantID
	date := strings.TrimSpace(s.date.Value())
	persons, err := strconv.Atoi(strings.TrimSpace(s.persons.Value()))
	if err != nil {
		persons = 2
	}
	return func() tea.Msg {
		times, err := client.ReservationAvailability(context.Background(), id, date, persons)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.AvailabilityLoadedMsg{Times: times}
	}
}

func (s *reservationScreen) view(width int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Reserve a table"))
	b.WriteString("\n\n")
	b.WriteString("  " + LabelStyle.Render("Date") + "    " + s.date.View() + "\n")
	b.WriteString("  " + LabelStyle.Render("Guests") + "  " + s.persons.View() + "\n\n")

	switch {
	case s.loading:
		b.WriteString("  " + HelpDescStyle.Render("checking availability..."))
	case len(s.slots) == 0:
		b.WriteString(EmptyStateStyle.Render("No free tables for that date and party size."))
	default:
		b.WriteString("  " + LabelStyle.Render("Available times") + "\n")
		for i, slot := range s.slots {
			selected := s.focus == 2 && i == s.slotCursor
			b.WriteString(renderRow(slot, selected, 24))
			b.WriteByte('\n')
		}
	}

	if s.busy {
		b.WriteString("\n  " + HelpDescStyle.Render("booking..."))
	}
	if s.notice != "" {
		b.WriteString("\n" + ErrorStyle.Render(s.notice))
	}
	return b.String()
}

func (s *reservationScreen) footer() string {
	return footerHints("tab", "next field", "enter", "check times / book", "esc", "back")
}

// reservationsScreen lists the operator's upcoming reservations.
type reservationsScreen struct {
	api   *api.Client
	creds model.Credentials

	loading      bool
	reservations []model.Reservation
	cursor       int
	notice       string
}

func newReservationsScreen(client *api.Client, creds model.Credentials) *reservationsScreen {
	return &reservationsScreen{api: client, creds: creds, loading: true}
}

func (s *reservationsScreen) init() tea.Cmd { return s.loadCmd() }

func (s *reservationsScreen) title() string { return "Reservations" }

func (s *reservationsScreen) capturing() bool { return false }

func (s *reservationsScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, Keys.Up):
			if s.cursor > 0 {
				s.cursor--
			}
		case key.Matches(msg, Keys.Down):
			if s.cursor < len(s.reservations)-1 {
				s.cursor++
			}
		default:
			if msg.String() == "d" && len(s.reservations) > 0 {
				return s.cancelCmd(s.reservations[s.cursor].ReservationID)
			}
		}
	case model.ReservationsLoadedMsg:
		s.loading = false
		s.reservations = msg.Reservations
		s.cursor = 0
	case model.ReservationCancelledMsg:
		for i, r := range s.reservations {
			if r.ReservationID == msg.ReservationID {
				s.reservations = append(s.reservations[:i], s.reservations[i+1:]...)
				break
			}
		}
		if s.cursor >= len(s.reservations) && s.cursor > 0 {
			s.cursor--
		}
		s.notice = "Reservation cancelled"
	case model.ErrorMsg:
		s.loading = false
	}
	return nil
}

func (s *reservationsScreen) view(width int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Reservations"))
	b.WriteString("\n\n")

	switch {
	case s.loading:
		b.WriteString("  " + HelpDescStyle.Render("loading reservations..."))
	case len(s.reservations) == 0:
		b.WriteString(EmptyStateStyle.Render("No reservations."))
	default:
		for i, r := range s.reservations {
			line := fmt.Sprintf("%s  table %d  %d guests  %s %s",
				r.Datetime, r.TableID, r.Persons, r.UserName,
				HelpDescStyle.Render(r.UserEmail))
			b.WriteString(renderRow(line, i == s.cursor, width-4))
			b.WriteByte('\n')
		}
	}

	if s.notice != "" {
		b.WriteString("\n" + SuccessStyle.Render(s.notice))
	}
	return b.String()
}

func (s *reservationsScreen) footer() string {
	return footerHints("d", "cancel reservation", "esc", "back")
}

func (s *reservationsScreen) loadCmd() tea.Cmd {
	client, creds := s.api, s.creds
	return func() tea.Msg {
		reservations, err := client.Reservations(context.Background(), creds)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ReservationsLoadedMsg{Reservations: reservations}
	}
}

func (s *reservationsScreen) cancelCmd(reservationID int64) tea.Cmd {
	client, creds := s.api, s.creds
	return func() tea.Msg {
		if err := client.CancelReservation(context.Background(), creds, reservationID); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ReservationCancelledMsg{ReservationID: reservationID}
	}
}
