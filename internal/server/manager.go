package server

import (
	"time"

	"aviator-game/internal/protocol"
)

// roundLoop is the single driver of the round lifecycle. It is the only
// writer of phase transitions and of broadcast frames.
func (s *Server) roundLoop() {
	for s.running.Load() {
		if !s.awaitPlayers() {
			return
		}
		s.runRound()
	}
}

// awaitPlayers blocks until at least one slot is occupied, logging a start
// event for each join observed while idle. It returns false on shutdown.
func (s *Server) awaitPlayers() bool {
	for s.table.Occupied() == 0 {
		select {
		case <-s.joined:
			if s.table.Occupied() > 0 {
				s.logEvent(eventStart, protocol.BroadcastID, eventFields{})
			}
		case <-s.done:
			return false
		}
	}
	return true
}

// runRound sequences one full round: betting window, flight ticks,
// explosion and settlement.
func (s *Server) runRound() {
	// Ids retired for a finished round's stale bets are safe to hand out
	// again once the per-round state resets.
	s.table.Recycle()
	s.round.BeginBetting()

	s.broadcast(protocol.Frame{PlayerID: protocol.BroadcastID, Type: protocol.TagStart})
	s.logEvent(eventStart, protocol.BroadcastID, eventFields{})

	s.sleepUntil(time.Now().Add(s.cfg.BettingWindow))

	n, v, me := s.round.CloseBetting()
	s.broadcast(protocol.Frame{PlayerID: protocol.BroadcastID, Value: me, Type: protocol.TagClosed})
	s.logEvent(eventClosed, protocol.BroadcastID, eventFields{me: me, n: n, v: v})

	// Absolute deadlines: transient scheduling delay must not stretch the
	// round, since me is fixed and the flight duration is the tick count.
	next := time.Now()
	for s.running.Load() {
		next = next.Add(s.cfg.TickInterval)
		s.sleepUntil(next)

		m, exploded := s.round.Tick()
		if exploded {
			break
		}
		s.broadcast(protocol.Frame{PlayerID: protocol.BroadcastID, Value: m, Type: protocol.TagMultiplier})
		s.logEvent(eventMultiplier, protocol.BroadcastID, eventFields{m: m, me: me, n: n, v: v})
	}
	if !s.running.Load() {
		return
	}

	s.broadcast(protocol.Frame{PlayerID: protocol.BroadcastID, Value: me, Type: protocol.TagExplode})
	s.logEvent(eventExplode, protocol.BroadcastID, eventFields{m: s.round.Multiplier(), me: me, n: n, v: v})

	s.settle(me, n, v)
}

// settle applies the round outcome. Players settled inline by their own
// cashout only get the profit frame; every other bettor forfeits the bet
// and gets an explicit zero payout first.
func (s *Server) settle(me float32, n int32, v float32) {
	results := s.round.Settle()

	for _, r := range results {
		if r.AlreadySettled {
			continue
		}
		playerProfit, houseProfit := s.ledger.Apply(r.ID, r.DeltaPlayer, r.DeltaHouse)
		s.sendTo(r.ID, protocol.Frame{
			PlayerID:     r.ID,
			Value:        0,
			Type:         protocol.TagPayout,
			PlayerProfit: playerProfit,
			HouseProfit:  houseProfit,
		})
		s.logEvent(eventPayout, r.ID, eventFields{
			me: me, n: n, v: v,
			bet:          r.Bet,
			payout:       0,
			playerProfit: playerProfit,
			houseProfit:  houseProfit,
		})
	}

	for _, r := range results {
		playerProfit := s.ledger.Player(r.ID)
		houseProfit := s.ledger.House()
		s.sendTo(r.ID, protocol.Frame{
			PlayerID:     r.ID,
			Type:         protocol.TagProfit,
			PlayerProfit: playerProfit,
			HouseProfit:  houseProfit,
		})
		s.logEvent(eventProfit, r.ID, eventFields{
			me: me, n: n, v: v,
			bet:          r.Bet,
			payout:       r.Payout,
			playerProfit: playerProfit,
			houseProfit:  houseProfit,
		})
	}
}

// broadcast sends a frame to a snapshot of the occupied slots. A failed
// send closes that player's socket, which makes its handler release the
// slot, and the loop goes on to the next player. Sends carry no write
// deadline, so a peer that stops reading can stall the loop once its
// socket buffer is full.
func (s *Server) broadcast(f protocol.Frame) {
	for _, slot := range s.table.Snapshot() {
		if err := protocol.Send(slot.Conn, f); err != nil {
			s.logger.Debug("broadcast %q to player %d failed: %v", f.Type, slot.ID, err)
			slot.Conn.Close()
		}
	}
}

// sendTo sends an addressed frame to one player if they are still
// connected
func (s *Server) sendTo(id int32, f protocol.Frame) {
	conn := s.table.Conn(id)
	if conn == nil {
		return
	}
	if err := protocol.Send(conn, f); err != nil {
		s.logger.Debug("send %q to player %d failed: %v", f.Type, id, err)
		conn.Close()
	}
}

// sleepUntil sleeps to an absolute deadline, waking early on shutdown
func (s *Server) sleepUntil(deadline time.Time) {
	d := time.Until(deadline)
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-s.done:
	}
}
