package shell

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/strongroom-dev/strongroom/internal/bank"
)

const clearSequence = "\033[H\033[2J"

var (
	statusStyle  = lipgloss.NewStyle().Bold(true)
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Status renders the one-line session header.
func Status(sess bank.Session) string {
	if !sess.Active() {
		return statusStyle.Render("[Not logged in]")
	}
	return statusStyle.Render(fmt.Sprintf("[Logged in: %s, Current balance: $%s]",
		sess.ID(), formatMoney(sess.Account())))
}

// formatMoney groups the integer part and keeps exactly two decimals.
func formatMoney(a *bank.Account) string {
	fixed := a.Balance().StringFixed(2)
	cents := fixed[len(fixed)-3:]
	return humanize.BigComma(a.Balance().BigInt()) + cents
}
