package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tablenest/internal/api"

	tea "github.com/charmbracelet/bubbletea"
)

// etaRefreshInterval is how often the order status screen re-asks the
// backend for an arrival estimate.
const etaRefreshInterval = 30 * time.Second

type etaTickMsg struct{ gen int }

type etaLoadedMsg struct {
	gen int
	eta string
}

type etaFailedMsg struct {
	gen int
	err error
}

// orderStatusScreen tracks one placed order's estimated arrival time.
// Timer messages carry the generation they were scheduled under, so
// timers from an earlier visit to this screen die silently.
type orderStatusScreen struct {
	api     *api.Client
	orderID int64
	gen     int

	eta     string
	loading bool
	errText string
}

func newOrderStatusScreen(client *api.Client, orderID int64, gen int) *orderStatusScreen {
	return &orderStatusScreen{api: client, orderID: orderID, gen: gen, loading: true}
}

func (s *orderStatusScreen) init() tea.Cmd {
	return tea.Batch(s.fetchCmd(), s.tickCmd())
}

func (s *orderStatusScreen) title() string { return "Order status" }

func (s *orderStatusScreen) capturing() bool { return false }

func (s *orderStatusScreen) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "r" {
			return s.fetchCmd()
		}
	case etaTickMsg:
		if msg.gen != s.gen {
			return nil
		}
		return tea.Batch(s.fetchCmd(), s.tickCmd())
	case etaLoadedMsg:
		if msg.gen != s.gen {
			return nil
		}
		s.loading = false
		s.errText = ""
		s.eta = msg.eta
	case etaFailedMsg:
		if msg.gen != s.gen {
			return nil
		}
		s.loading = false
		s.errText = msg.err.Error()
	}
	return nil
}

func (s *orderStatusScreen) view(width int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Order #%d", s.orderID)))
	b.WriteString("\n\n")

	switch {
	case s.loading:
		b.WriteString("  " + HelpDescStyle.Render("checking your order..."))
	case s.errText != "":
		b.WriteString(ErrorStyle.Render(s.errText))
	default:
		b.WriteString("  " + LabelStyle.Render("Estimated arrival") + "  " + s.eta + "\n")
		b.WriteString("\n  " + HelpDescStyle.Render("updates every 30 seconds"))
	}
	return b.String()
}

func (s *orderStatusScreen) footer() string {
	return footerHints("r", "refresh", "esc", "back")
}

func (s *orderStatusScreen) tickCmd() tea.Cmd {
	gen := s.gen
	return tea.Tick(etaRefreshInterval, func(time.Time) tea.Msg {
		return etaTickMsg{gen: gen}
	})
}

func (s *orderStatusScreen) fetchCmd() tea.Cmd {
	client, orderID, gen := s.api, s.orderID, s.gen
	return func() tea.Msg {
		eta, err := client.OrderETA(context.Background(), orderID)
		if err != nil {
			return etaFailedMsg{gen: gen, err: err}
		}
		return etaLoadedMsg{gen: gen, eta: eta}
	}
}
