// Package server implements the TCP server that drives the crash game: the
// acceptor, the per-player handlers and the round manager.
package server

import (
	"fmt"
	"net"
	"sync/atomic"

	"aviator-game/internal/config"
	"aviator-game/internal/game"
	"aviator-game/internal/protocol"
	"aviator-game/pkg/logger"
)

// Server owns the listener, the player table, the shared round state and
// the profit ledger. One round manager goroutine sequences rounds; one
// handler goroutine serves each admitted player.
type Server struct {
	cfg     config.Config
	network string
	address string

	listener net.Listener
	table    *game.Table
	round    *game.Round
	ledger   *game.Ledger

	// joined wakes the round manager when a player is admitted while the
	// table was empty
	joined chan struct{}
	done   chan struct{}

	running atomic.Bool
	logger  *logger.Logger
}

// NewServer creates a server for the given address family ("v4" or "v6")
// and port
func NewServer(family string, port int, cfg config.Config) (*Server, error) {
	var network, address string
	switch family {
	case "v4":
		network, address = "tcp4", fmt.Sprintf("0.0.0.0:%d", port)
	case "v6":
		network, address = "tcp6", fmt.Sprintf("[::]:%d", port)
	default:
		return nil, fmt.Errorf("unknown address family %q, want v4 or v6", family)
	}

	return &Server{
		cfg:     cfg,
		network: network,
		address: address,
		table:   game.NewTable(cfg.Capacity),
		round:   game.NewRound(cfg.Capacity),
		ledger:  game.NewLedger(cfg.Capacity),
		joined:  make(chan struct{}, 1),
		done:    make(chan struct{}),
		logger:  logger.Server,
	}, nil
}

// Start binds the listener and serves until Stop is called. It fails on
// bind errors; accept errors on a live listener are logged and skipped.
func (s *Server) Start() error {
	var err error
	s.listener, err = net.Listen(s.network, s.address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.address, err)
	}

	s.running.Store(true)
	s.logger.Info("server listening on %s (%s), capacity %d", s.address, s.network, s.table.Capacity())

	go s.roundLoop()

	for s.running.Load() {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.running.Load() {
				s.logger.Error("failed to accept connection: %v", err)
			}
			continue
		}
		go s.handleConn(conn)
	}
	return nil
}

// Addr returns the listener address, or nil before Start
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop shuts the server down: the listener closes and every connected
// player observes a disconnect. No shutdown frame is defined.
func (s *Server) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	close(s.done)

	if s.listener != nil {
		s.listener.Close()
	}
	for _, slot := range s.table.Snapshot() {
		slot.Conn.Close()
	}
	s.logger.Info("server stopped")
}

// handleConn admits the connection and runs its handler loop. When the
// table is full the player gets a bye frame and the connection closes.
func (s *Server) handleConn(conn net.Conn) {
	id, err := s.table.Admit(conn)
	if err != nil {
		s.logger.Warn("rejecting %s: %v", conn.RemoteAddr(), err)
		_ = protocol.Send(conn, protocol.Frame{PlayerID: protocol.BroadcastID, Type: protocol.TagBye})
		conn.Close()
		return
	}

	// The id may have belonged to an earlier player; their lifetime
	// profit does not carry over.
	s.ledger.Reset(id)

	s.logger.Info("player %d connected from %s", id, conn.RemoteAddr())
	s.notifyJoin()
	s.servePlayer(id, conn)
}

// notifyJoin wakes the round manager without blocking; a pending signal is
// enough
func (s *Server) notifyJoin() {
	select {
	case s.joined <- struct{}{}:
	default:
	}
}
