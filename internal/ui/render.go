package ui

import (
	"fmt"
	"strings"

	"tablenest/internal/model"
)

// footerHints joins key/description pairs into one footer line.
func footerHints(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, HelpKeyStyle.Render(pairs[i])+" "+HelpDescStyle.Render(pairs[i+1]))
	}
	return strings.Join(parts, HelpDescStyle.Render(" · "))
}

// renderRow styles one list row, highlighting the selected one.
func renderRow(text string, selected bool, width int) string {
	if width < 10 {
		width = 10
	}
	if selected {
		return SelectedRowStyle.Width(width).Render("> " + text)
	}
	return NormalRowStyle.Width(width).Render("  " + text)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if n <= 3 {
		n = 3
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// stars renders a rating out of five.
func stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// orderTotal sums an order's line prices.
func orderTotal(o model.Order) float64 {
	var total float64
	for _, it := range o.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// orderSummary formats an order's lines as "2x Burger, 1x Fries".
func orderSummary(o model.Order) string {
	parts := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		parts = append(parts, fmt.Sprintf("%dx %s", it.Quantity, it.Name))
	}
	return strings.Join(parts, ", ")
}

// orderBadge renders an order's decision state.
func orderBadge(o model.Order) string {
	switch {
	case o.Fulfilled:
		return BadgeConfirmedStyle.Render("fulfilled")
	case o.Confirmed == nil:
		return BadgePendingStyle.Render("pending")
	case *o.Confirmed:
		return BadgeConfirmedStyle.Render("accepted")
	default:
		return ErrorStyle.Padding(0).Render("rejected")
	}
}

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
