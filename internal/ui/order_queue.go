package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tablenest/internal/api"
	"tablenest/internal/model"
	"tablenest/internal/queue"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pollInterval is how often the queue asks the backend for new orders.
const pollInterval = 10 * time.Second

type queueTickMsg struct{ gen int }

type queuePolledMsg struct {
	gen    int
	orders []model.Order
}

type queuePollFailedMsg struct {
	gen int
	err error
}

type decisionDoneMsg struct {
	foodOrderID int64
	decision    api.Decision
}

// orderQueueScreen shows incoming orders to the operator and records
// their decisions. Every poll fetches only the orders above the queue's
// watermark.
//
// Poll scheduling: the timer and every poll response carry the gen this
// screen was built with, so ticks and results from an earlier visit are
// dropped. While a poll is in flight a tick only reschedules itself, so
// polls never overlap, and the next one still carries the watermark the
// previous response established.
type orderQueueScreen struct {
	api   *api.Client
	creds model.Credentials

	queue    *queue.Queue
	gen      int
	inFlight bool

	cursor  int
	spin    spinner.Model
	loading bool
	pollErr string
	notice  string
}

func newOrderQueueScreen(client *api.Client, creds model.Credentials, gen int) *orderQueueScreen {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	return &orderQueueScreen{
		api:     client,
		creds:   creds,
		queue:   queue.New(),
		gen:     gen,
		spin:    spin,
		loading: true,
	}
}

func (s *orderQueueScreen) init() tea.Cmd {
	s.inFlight = true
	return tea.Batch(s.spin.Tick, s.pollCmd(), s.tickCmd())
}

func (s *orderQueueScreen) title() string { return "Order queue" }

func (s *orderQueueScreen) capturing() bool { return false }

func (s *orderQueueScreen) update(msg tea.Msg) tea.Cmd {
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

	case queueTickMsg:
		if msg.gen != s.gen {
			return nil
		}
		if s.inFlight {
			return s.tickCmd()
		}
		s.inFlight = true
		return tea.Batch(s.pollCmd(), s.tickCmd())

	case queuePolledMsg:
		if msg.gen != s.gen {
			return nil
		}
		s.inFlight = false
		s.loading = false
		s.pollErr = ""
		s.queue.Merge(msg.orders)
		s.clampCursor()

	case queuePollFailedMsg:
		if msg.gen != s.gen {
			return nil
		}
		// The queue and its watermark stay as they were; the next poll
		// retries the same range.
		s.inFlight = false
		s.loading = false
		s.pollErr = msg.err.Error()

	case decisionDoneMsg:
		switch msg.decision {
		case api.DecisionConfirm:
			s.queue.Confirm(msg.foodOrderID)
			s.notice = fmt.Sprintf("Order #%d accepted", msg.foodOrderID)
		case api.DecisionReject:
			s.queue.Remove(msg.foodOrderID)
			s.notice = fmt.Sprintf("Order #%d rejected", msg.foodOrderID)
		case api.DecisionFulfil:
			s.queue.Remove(msg.foodOrderID)
			s.notice = fmt.Sprintf("Order #%d fulfilled", msg.foodOrderID)
		}
		s.clampCursor()
	}
	return nil
}

func (s *orderQueueScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	orders := s.queue.Orders()
	switch {
	case key.Matches(msg, Keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, Keys.Down):
		if s.cursor < len(orders)-1 {
			s.cursor++
		}
	default:
		switch msg.String() {
		case "c":
			return s.decide(orders, api.DecisionConfirm)
		case "x":
			return s.decide(orders, api.DecisionReject)
		case "f":
			return s.decide(orders, api.DecisionFulfil)
		case "r":
			if s.inFlight {
				return nil
			}
			s.inFlight = true
			return s.pollCmd()
		}
	}
	return nil
}

func (s *orderQueueScreen) decide(orders []model.Order, decision api.Decision) tea.Cmd {
	if len(orders) == 0 {
		return nil
	}
	order := orders[s.cursor]
	if decision != api.DecisionFulfil && order.Confirmed != nil {
		return nil
	}
	return s.decisionCmd(order.FoodOrderID, decision)
}

func (s *orderQueueScreen) clampCursor() {
	if n := s.queue.Len(); s.cursor >= n && s.cursor > 0 {
		s.cursor = n - 1
	}
}

func (s *orderQueueScreen) view(width int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Order queue"))
	b.WriteString("\n\n")

	orders := s.queue.Orders()
	switch {
	case s.loading:
		b.WriteString("  " + s.spin.View() + " waiting for orders")
	case len(orders) == 0:
		b.WriteString(EmptyStateStyle.Render("No open orders. New orders appear here automatically."))
	default:
		for i, o := range orders {
			line := fmt.Sprintf("#%-4d table %-3d %-40s %7.2f  %s",
				o.FoodOrderID, o.TableID,
				truncate(orderSummary(o), 40), orderTotal(o), orderBadge(o))
			b.WriteString(renderRow(line, i == s.cursor, width-4))
			b.WriteByte('\n')
		}
	}

	if s.pollErr != "" {
		b.WriteString("\n" + ErrorStyle.Render("poll failed: "+s.pollErr))
	}
	if s.notice != "" {
		b.WriteString("\n" + SuccessStyle.Render(s.notice))
	}
	return b.String()
}

func (s *orderQueueScreen) footer() string {
	return footerHints("c", "accept", "x", "reject", "f", "fulfil", "r", "refresh", "esc", "back")
}

func (s *orderQueueScreen) tickCmd() tea.Cmd {
	gen := s.gen
	return tea.Tick(pollInterval, func(time.Time) tea.Msg {
		return queueTickMsg{gen: gen}
	})
}

func (s *orderQueueScreen) pollCmd() tea.Cmd {
	client, creds, gen := s.api, s.creds, s.gen
	lastSeen := s.queue.LastSeen()
	return func() tea.Msg {
		orders, err := client.FetchOrderQueue(context.Background(), creds, lastSeen)
		if err != nil {
			return queuePollFailedMsg{gen: gen, err: err}
		}
		return queuePolledMsg{gen: gen, orders: orders}
	}
}

func (s *orderQueueScreen) decisionCmd(foodOrderID int64, decision api.Decision) tea.Cmd {
	client, creds := s.api, s.creds
	return func() tea.Msg {
		if err := client.SubmitOrderDecision(context.Background(), creds, foodOrderID, decision); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return decisionDoneMsg{foodOrderID: foodOrderID, decision: decision}
	}
}
