// Aviator Server - Main Entry Point
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"aviator-game/internal/config"
	"aviator-game/internal/server"
	"aviator-game/pkg/logger"
)

var version = "1.0.0"

func main() {
	if len(os.Args) < 3 {
		showUsage()
		os.Exit(2)
	}

	family := os.Args[1]
	if family != "v4" && family != "v6" {
		fmt.Fprintf(os.Stderr, "invalid address family %q: want v4 or v6\n", family)
		os.Exit(2)
	}

	port, err := strconv.Atoi(os.Args[2])
	if err != nil || port < 1 || port > 65535 {
		fmt.Fprintf(os.Stderr, "invalid port %q: want 1..65535\n", os.Args[2])
		os.Exit(2)
	}

	flags := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := flags.String("config", "", "Path to a YAML tuning file (optional)")
	flags.Parse(os.Args[3:])

	config.LoadEnv(".env")
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := initLogging(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	logger.Server.Info("Starting Aviator Server v%s", version)

	srv, err := server.NewServer(family, port, cfg)
	if err != nil {
		logger.Server.Fatal("Failed to create server: %v", err)
	}

	setupGracefulShutdown(srv)

	if err := srv.Start(); err != nil {
		logger.Server.Fatal("Server failed to start: %v", err)
	}
}

// initLogging sets up the logging system from the loaded configuration
func initLogging(cfg config.Config) error {
	logger.SetGlobalLogLevel(logger.ParseLevel(cfg.LogLevel))

	if cfg.LogFile != "" {
		if err := logger.Server.SetFile(cfg.LogFile); err != nil {
			return err
		}
		if err := logger.Game.SetFile(cfg.LogFile); err != nil {
			return err
		}
		logger.Server.Info("Logging to file: %s", cfg.LogFile)
	}
	return nil
}

// setupGracefulShutdown stops the server on interrupt signals
func setupGracefulShutdown(srv *server.Server) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Server.Info("Received shutdown signal, stopping server...")
		srv.Stop()
		os.Exit(0)
	}()
}

// showUsage displays usage information
func showUsage() {
	fmt.Fprintf(os.Stderr, `Aviator Server v%s

USAGE:
    %s <v4|v6> <port> [OPTIONS]

ARGUMENTS:
    v4|v6               Address family: bind 0.0.0.0 (v4) or :: (v6)
    port                TCP port, 1..65535

OPTIONS:
    -config string      Path to a YAML tuning file (optional)

ENVIRONMENT:
    AVIATOR_CONFIG      Tuning file path (overridden by -config)
    AVIATOR_LOG_LEVEL   DEBUG, INFO, WARN or ERROR
    AVIATOR_LOG_FILE    Log file path

EXAMPLES:
    # IPv4 on port 51511
    %s v4 51511

    # IPv6 with debug logging
    AVIATOR_LOG_LEVEL=DEBUG %s v6 51511
`, version, os.Args[0], os.Args[0], os.Args[0])
}
