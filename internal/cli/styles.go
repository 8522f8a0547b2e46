package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CLI output styles for consistent hayaku-themed terminal output.
var (
	cliSuccess = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#02BF87"})
	cliWarn    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	cliError   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#FF5F87"})
	cliMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})
	cliPrimary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C2367A", Dark: "#F25D94"})
	cliBorder  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"})
)

func symSuccess() string { return cliSuccess.Render("✓") }

// kvPair is a label/value line inside a card.
type kvPair struct {
	key   string
	value string
}

// renderKeyValueLines renders aligned key/value lines.
func renderKeyValueLines(pairs []kvPair) string {
	width := 0
	for _, p := range pairs {
		if len(p.key) > width {
			width = len(p.key)
		}
	}
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(fmt.Sprintf("%s  %s",
			cliMuted.Render(fmt.Sprintf("%-*s", width, p.key)),
			p.value))
	}
	return b.String()
}

// renderCard renders a titled, bordered block with the given body lines.
func renderCard(title string, details ...string) string {
	body := cliPrimary.Bold(true).Render(title)
	for _, d := range details {
		if d == "" {
			continue
		}
		body += "\n" + d
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cliBorder.GetForeground()).
		Padding(0, 2)
	return card.Render(body)
}

// renderSuccessCard renders a card with a success check mark in the title.
func renderSuccessCard(title string, details ...string) string {
	return renderCard(symSuccess()+" "+title, details...)
}
