// Package client handles user input reading and validation
package client

import (
	"bufio"
	"os"
)

// InputHandler reads player commands from stdin
type InputHandler struct {
	scanner *bufio.Scanner
	display *Display
}

// NewInputHandler creates a new input handler
func NewInputHandler(display *Display) *InputHandler {
	return &InputHandler{
		scanner: bufio.NewScanner(os.Stdin),
		display: display,
	}
}

// Lines returns a channel of input lines. The channel closes when stdin
// reaches EOF, which the client treats as a quit.
func (ih *InputHandler) Lines() <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for ih.scanner.Scan() {
			lines <- ih.scanner.Text()
		}
	}()
	return lines
}
