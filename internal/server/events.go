package server

import (
	"fmt"

	"aviator-game/internal/protocol"
	"aviator-game/pkg/logger"
)

// Game event tags as they appear in the log stream
const (
	eventStart      = "start"
	eventBet        = "bet"
	eventClosed     = "closed"
	eventMultiplier = "multiplier"
	eventPayout     = "payout"
	eventExplode    = "explode"
	eventProfit     = "profit"
	eventDisconnect = "disconnect"
)

// eventFields carries the numeric columns of a game event line. Fields that
// do not apply to an event stay zero.
type eventFields struct {
	m            float32
	me           float32
	n            int32
	v            float32
	bet          float32
	payout       float32
	playerProfit float32
	houseProfit  float32
}

// logEvent emits one game event line with the columns in fixed order.
// Broadcast events that are not attributable to one player use id=*.
func (s *Server) logEvent(tag string, id int32, f eventFields) {
	playerCol := "*"
	if id != protocol.BroadcastID {
		playerCol = fmt.Sprintf("%d", id)
	}

	logger.Game.Info(
		"event=%s | id=%s | m=%.2f | me=%.2f | N=%d | V=%.2f | bet=%.2f | payout=%.2f | player_profit=%.2f | house_profit=%.2f",
		tag, playerCol, f.m, f.me, f.n, f.v, f.bet, f.payout, f.playerProfit, f.houseProfit,
	)
}
