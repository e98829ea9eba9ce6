// Package client handles client-side display and user interface
package client

import (
	"time"

	"github.com/fatih/color"
)

// Display renders game events with per-event colors
type Display struct {
	roundColor   *color.Color
	flightColor  *color.Color
	crashColor   *color.Color
	payoutColor  *color.Color
	profitColor  *color.Color
	lossColor    *color.Color
	infoColor    *color.Color
	warningColor *color.Color
	errorColor   *color.Color
}

// NewDisplay creates a display instance with configured colors
func NewDisplay() *Display {
	return &Display{
		roundColor:   color.New(color.FgGreen, color.Bold),
		flightColor:  color.New(color.FgYellow),
		crashColor:   color.New(color.FgRed, color.Bold),
		payoutColor:  color.New(color.FgGreen, color.Bold),
		profitColor:  color.New(color.FgCyan),
		lossColor:    color.New(color.FgRed),
		infoColor:    color.New(color.FgWhite),
		warningColor: color.New(color.FgYellow),
		errorColor:   color.New(color.FgRed, color.Bold),
	}
}

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// PrintBanner displays the game banner
func (d *Display) PrintBanner() {
	banner := `
╔═══════════════════════════════════════╗
║            AVIATOR CLIENT             ║
║        bet · fly · cash out           ║
╚═══════════════════════════════════════╝
`
	d.roundColor.Println(banner)
}

// PrintHelp shows the available commands
func (d *Display) PrintHelp() {
	d.infoColor.Println("Commands: <amount> = bet during betting, C = cash out in flight, Q = quit")
}

// PrintConnected displays the connection status line
func (d *Display) PrintConnected(nick, addr string) {
	d.infoColor.Printf("[%s] [CONNECTED] %s @ %s\n", timestamp(), nick, addr)
}

// PrintRoundStart announces the betting window
func (d *Display) PrintRoundStart() {
	d.roundColor.Printf("[%s] [ROUND] Betting is open! Place your bet.\n", timestamp())
}

// PrintBetPlaced confirms a sent bet
func (d *Display) PrintBetPlaced(nick string, amount float32) {
	d.infoColor.Printf("[%s] [BET] %s bets R$ %.2f\n", timestamp(), nick, amount)
}

// PrintBettingClosed announces takeoff and the explosion point
func (d *Display) PrintBettingClosed(explosionPoint float32) {
	d.flightColor.Printf("[%s] [TAKEOFF] Betting closed, explosion at %.2fx\n", timestamp(), explosionPoint)
}

// PrintMultiplier shows the current multiplier
func (d *Display) PrintMultiplier(m float32) {
	d.flightColor.Printf("[%s] [FLIGHT] %.2fx\n", timestamp(), m)
}

// PrintExplosion announces the end of the flight
func (d *Display) PrintExplosion(explosionPoint float32) {
	d.crashColor.Printf("[%s] [BOOM] Exploded at %.2fx\n", timestamp(), explosionPoint)
}

// PrintPayout shows a payout result for this player
func (d *Display) PrintPayout(amount, playerProfit, houseProfit float32) {
	if amount > 0 {
		d.payoutColor.Printf("[%s] [PAYOUT] You receive R$ %.2f\n", timestamp(), amount)
	} else {
		d.lossColor.Printf("[%s] [PAYOUT] Nothing this round\n", timestamp())
	}
	d.profitColor.Printf("[%s] [BALANCE] your profit: R$ %.2f | house: R$ %.2f\n",
		timestamp(), playerProfit, houseProfit)
}

// PrintProfit shows the cumulative profit line sent after settlement
func (d *Display) PrintProfit(nick string, playerProfit, houseProfit float32) {
	d.profitColor.Printf("[%s] [PROFIT] %s: R$ %.2f | house: R$ %.2f\n",
		timestamp(), nick, playerProfit, houseProfit)
}

// PrintInfo displays an informational line
func (d *Display) PrintInfo(message string) {
	d.infoColor.Printf("[%s] %s\n", timestamp(), message)
}

// PrintWarning displays a warning line
func (d *Display) PrintWarning(message string) {
	d.warningColor.Printf("[%s] %s\n", timestamp(), message)
}

// PrintError displays an error line
func (d *Display) PrintError(message string) {
	d.errorColor.Printf("[%s] %s\n", timestamp(), message)
}
