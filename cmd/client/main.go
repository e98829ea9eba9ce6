// Aviator Client - Main Entry Point
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"aviator-game/internal/client"
	"aviator-game/pkg/logger"
)

var version = "1.0.0"

// maxNickLen bounds the nickname shown in the local display
const maxNickLen = 13

func main() {
	if len(os.Args) < 3 {
		showUsage()
		os.Exit(2)
	}

	ip := os.Args[1]
	if net.ParseIP(ip) == nil {
		fmt.Fprintf(os.Stderr, "invalid ip address %q\n", ip)
		os.Exit(2)
	}

	port, err := strconv.Atoi(os.Args[2])
	if err != nil || port < 1 || port > 65535 {
		fmt.Fprintf(os.Stderr, "invalid port %q: want 1..65535\n", os.Args[2])
		os.Exit(2)
	}

	flags := flag.NewFlagSet("client", flag.ExitOnError)
	nick := flags.String("nick", "", "Nickname shown in the local display (1-13 characters)")
	logLevel := flags.String("log-level", "ERROR", "Log level (DEBUG, INFO, WARN, ERROR)")
	flags.Parse(os.Args[3:])

	if err := validateNick(*nick); err != nil {
		fmt.Fprintf(os.Stderr, "invalid nickname: %v\n", err)
		os.Exit(2)
	}

	logger.SetGlobalLogLevel(logger.ParseLevel(*logLevel))

	addr := net.JoinHostPort(ip, strconv.Itoa(port))
	gameClient := client.NewClient(addr, *nick)

	setupGracefulShutdown(gameClient)

	if err := gameClient.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "client failed: %v\n", err)
		os.Exit(1)
	}
}

// validateNick enforces 1..13 graphical ASCII characters
func validateNick(nick string) error {
	if len(nick) < 1 || len(nick) > maxNickLen {
		return fmt.Errorf("must be 1-%d characters, got %d", maxNickLen, len(nick))
	}
	for _, c := range nick {
		if c <= ' ' || c > '~' {
			return fmt.Errorf("must contain only printable ASCII characters")
		}
	}
	return nil
}

// setupGracefulShutdown closes the client on interrupt signals
func setupGracefulShutdown(gameClient *client.Client) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		gameClient.Close()
		os.Exit(0)
	}()
}

// showUsage displays usage information
func showUsage() {
	fmt.Fprintf(os.Stderr, `Aviator Client v%s

USAGE:
    %s <ip> <port> -nick <name>

ARGUMENTS:
    ip                  Server IP address (IPv4 or IPv6)
    port                TCP port, 1..65535

OPTIONS:
    -nick string        Nickname, 1-13 printable characters (required)
    -log-level string   Log level (default "ERROR")

GAMEPLAY:
    <amount>            Place a bet while betting is open
    C                   Cash out during flight
    Q                   Quit

EXAMPLE:
    %s 127.0.0.1 51511 -nick Player1
`, version, os.Args[0], os.Args[0])
}
