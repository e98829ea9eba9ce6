// Package client implements the terminal front-end: a thin I/O layer over
// the wire protocol that displays server broadcasts and forwards commands.
package client

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync/atomic"

	"aviator-game/internal/protocol"
	"aviator-game/pkg/logger"
)

// Client is the terminal game client. The server never learns the
// nickname; it exists for the local display only.
type Client struct {
	addr    string
	nick    string
	conn    net.Conn
	display *Display
	input   *InputHandler
	logger  *logger.Logger

	betting atomic.Bool
	flight  atomic.Bool
	done    chan struct{}
	closed  atomic.Bool
}

// NewClient creates a client for the given server address and nickname
func NewClient(addr, nick string) *Client {
	display := NewDisplay()
	return &Client{
		addr:    addr,
		nick:    nick,
		display: display,
		input:   NewInputHandler(display),
		logger:  logger.Client,
		done:    make(chan struct{}),
	}
}

// Start connects to the server and runs until the round stream ends or the
// player quits
func (c *Client) Start() error {
	c.display.PrintBanner()

	conn, err := net.Dial("tcp", c.addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.addr, err)
	}
	c.conn = conn

	c.display.PrintConnected(c.nick, c.addr)
	c.logger.Info("connected to %s as %s", c.addr, c.nick)

	go c.receiveLoop()
	c.commandLoop()
	return nil
}

// Close tears the connection down
func (c *Client) Close() {
	if !c.closed.CompareAndSwap(false, true) {
		return
	}
	close(c.done)
	if c.conn != nil {
		c.conn.Close()
	}
}

// receiveLoop decodes server frames and renders them
func (c *Client) receiveLoop() {
	defer c.Close()

	for {
		f, err := protocol.Recv(c.conn)
		if err != nil {
			if !c.closed.Load() {
				c.display.PrintError("Connection to server lost")
				c.logger.Error("receive failed: %v", err)
			}
			return
		}

		switch f.Type {
		case protocol.TagStart:
			c.betting.Store(true)
			c.flight.Store(false)
			c.display.PrintRoundStart()
		case protocol.TagClosed:
			c.betting.Store(false)
			c.flight.Store(true)
			c.display.PrintBettingClosed(f.Value)
		case protocol.TagMultiplier:
			c.display.PrintMultiplier(f.Value)
		case protocol.TagExplode:
			c.flight.Store(false)
			c.display.PrintExplosion(f.Value)
		case protocol.TagPayout:
			c.display.PrintPayout(f.Value, f.PlayerProfit, f.HouseProfit)
		case protocol.TagProfit:
			c.display.PrintProfit(c.nick, f.PlayerProfit, f.HouseProfit)
		case protocol.TagBye:
			c.display.PrintInfo("Server closed the session. Goodbye!")
			return
		default:
			c.logger.Warn("ignoring unexpected frame type %q", f.Type)
		}
	}
}

// commandLoop reads player commands: a number places a bet, C cashes out,
// Q quits
func (c *Client) commandLoop() {
	c.display.PrintHelp()
	lines := c.input.Lines()

	for {
		select {
		case <-c.done:
			return
		case line, ok := <-lines:
			if !ok {
				c.quit()
				return
			}
			if done := c.handleCommand(line); done {
				return
			}
		}
	}
}

// handleCommand dispatches one input line; it reports true when the client
// should exit
func (c *Client) handleCommand(line string) bool {
	switch strings.ToUpper(strings.TrimSpace(line)) {
	case "":
		return false
	case "Q":
		c.quit()
		return true
	case "C":
		if !c.flight.Load() {
			c.display.PrintWarning("Nothing to cash out right now")
			return false
		}
		if err := c.send(protocol.TagCashout, 0); err != nil {
			c.display.PrintError("Failed to send cashout")
			return true
		}
		c.display.PrintInfo("Cashout requested...")
		return false
	default:
		amount, err := strconv.ParseFloat(strings.TrimSpace(line), 32)
		if err != nil || amount <= 0 {
			c.display.PrintWarning("Enter a positive bet amount, C to cash out, or Q to quit")
			return false
		}
		if !c.betting.Load() {
			c.display.PrintWarning("Betting is closed, wait for the next round")
			return false
		}
		if err := c.send(protocol.TagBet, float32(amount)); err != nil {
			c.display.PrintError("Failed to send bet")
			return true
		}
		c.display.PrintBetPlaced(c.nick, float32(amount))
		return false
	}
}

// quit sends a bye frame and closes the connection
func (c *Client) quit() {
	_ = c.send(protocol.TagBye, 0)
	c.display.PrintInfo("Leaving the table. Goodbye!")
	c.Close()
}

func (c *Client) send(tag protocol.Tag, value float32) error {
	return protocol.Send(c.conn, protocol.Frame{
		PlayerID: protocol.BroadcastID,
		Value:    value,
		Type:     tag,
	})
}
