package server

import (
	"errors"
	"net"

	"aviator-game/internal/protocol"
)

// servePlayer is the per-player receive loop: decode one frame, validate it
// against the round phase, update shared state and answer where the
// protocol defines a response.
func (s *Server) servePlayer(id int32, conn net.Conn) {
	defer s.dropPlayer(id, conn)

	for {
		f, err := protocol.Recv(conn)
		if err != nil {
			if errors.Is(err, protocol.ErrMalformed) {
				s.logger.Warn("player %d sent a malformed frame: %v", id, err)
			} else {
				s.logger.Debug("player %d read failed: %v", id, err)
			}
			return
		}

		switch f.Type {
		case protocol.TagBet:
			s.handleBet(id, f.Value)
		case protocol.TagCashout:
			if err := s.handleCashout(id, conn); err != nil {
				return
			}
		case protocol.TagBye:
			_ = protocol.Send(conn, protocol.Frame{PlayerID: id, Type: protocol.TagBye})
			return
		default:
			// Server-to-client tag arriving from a client is a
			// protocol error; drop the connection.
			s.logger.Warn("player %d sent unexpected frame type %q", id, f.Type)
			return
		}
	}
}

// handleBet records a bet. Rejections (wrong phase, duplicate, bad amount)
// are silently discarded; the protocol defines no error frame.
func (s *Server) handleBet(id int32, amount float32) {
	if err := s.round.RecordBet(id, amount); err != nil {
		s.logger.Debug("bet of %.2f from player %d rejected: %v", amount, id, err)
		return
	}

	n, v := s.round.Aggregates()
	s.logEvent(eventBet, id, eventFields{n: n, v: v, bet: amount})
}

// handleCashout settles an accepted cashout inline: the profit deltas are
// applied and the payout frame goes out before the round's explode
// broadcast can reach this player. The explosion settlement skips slots
// settled here.
func (s *Server) handleCashout(id int32, conn net.Conn) error {
	co, err := s.round.RecordCashout(id)
	if err != nil {
		s.logger.Debug("cashout from player %d rejected: %v", id, err)
		return nil
	}

	payout := co.Payout()
	playerProfit, houseProfit := s.ledger.Apply(id, payout-co.Bet, co.Bet-payout)

	if err := protocol.Send(conn, protocol.Frame{
		PlayerID:     id,
		Value:        payout,
		Type:         protocol.TagPayout,
		PlayerProfit: playerProfit,
		HouseProfit:  houseProfit,
	}); err != nil {
		return err
	}

	s.logEvent(eventPayout, id, eventFields{
		m:            co.Multiplier,
		me:           s.round.ExplosionPoint(),
		bet:          co.Bet,
		payout:       payout,
		playerProfit: playerProfit,
		houseProfit:  houseProfit,
	})
	return nil
}

// dropPlayer releases the slot and closes the socket. A departed player's
// bet stays in the round and is settled as a loss, so the id is held back
// from reuse until the round is over.
func (s *Server) dropPlayer(id int32, conn net.Conn) {
	conn.Close()

	hold := s.round.HasOpenBet(id)
	s.table.Release(id, hold)

	s.logEvent(eventDisconnect, id, eventFields{})
}
