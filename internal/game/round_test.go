package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginBettingResetsState(t *testing.T) {
	r := NewRound(3)
	r.BeginBetting()
	require.NoError(t, r.RecordBet(1, 50))
	r.CloseBetting()

	r.BeginBetting()
	assert.Equal(t, PhaseBetting, r.Phase())

	n, v := r.Aggregates()
	assert.Zero(t, n)
	assert.Zero(t, v)
	assert.NoError(t, r.RecordBet(1, 25), "previous round's bet must not linger")
}

func TestRecordBetValidation(t *testing.T) {
	r := NewRound(3)

	assert.ErrorIs(t, r.RecordBet(1, 50), ErrWrongPhase, "no bets while idle")

	r.BeginBetting()
	assert.ErrorIs(t, r.RecordBet(1, 0), ErrBadAmount)
	assert.ErrorIs(t, r.RecordBet(1, -10), ErrBadAmount)
	assert.ErrorIs(t, r.RecordBet(1, float32(math.NaN())), ErrBadAmount)
	assert.ErrorIs(t, r.RecordBet(1, float32(math.Inf(1))), ErrBadAmount)
	assert.ErrorIs(t, r.RecordBet(0, 50), ErrNoSlot)
	assert.ErrorIs(t, r.RecordBet(4, 50), ErrNoSlot)

	require.NoError(t, r.RecordBet(1, 50))
	assert.ErrorIs(t, r.RecordBet(1, 20), ErrDuplicateBet)

	r.CloseBetting()
	assert.ErrorIs(t, r.RecordBet(2, 50), ErrWrongPhase, "betting is closed in flight")
}

func TestCloseBettingExplosionPoint(t *testing.T) {
	cases := []struct {
		name string
		bets map[int32]float32
		n    int32
		v    float32
		me   float64
	}{
		{"no bets", nil, 0, 0, 1.0},
		{"solo 100", map[int32]float32{1: 100}, 1, 100, math.Sqrt(3)},
		{"two fifties", map[int32]float32{1: 50, 2: 50}, 2, 100, 2.0},
		{"three mixed", map[int32]float32{1: 10, 2: 20, 3: 70}, 3, 100, math.Sqrt(5)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRound(10)
			r.BeginBetting()
			for id, amount := range tc.bets {
				require.NoError(t, r.RecordBet(id, amount))
			}

			n, v, me := r.CloseBetting()
			assert.Equal(t, tc.n, n)
			assert.InDelta(t, tc.v, v, 1e-4)
			assert.InDelta(t, tc.me, me, 1e-5)

			assert.Equal(t, PhaseFlight, r.Phase())
			assert.Equal(t, InitialMultiplier, r.Multiplier())
		})
	}
}

func TestTickExplodesImmediatelyWithNoBets(t *testing.T) {
	r := NewRound(3)
	r.BeginBetting()
	_, _, me := r.CloseBetting()
	require.InDelta(t, 1.0, me, 1e-6)

	m, exploded := r.Tick()
	assert.True(t, exploded, "me=1.0 must explode on the first tick")
	assert.InDelta(t, 1.01, m, 1e-4)
	assert.Equal(t, PhaseExploding, r.Phase())
}

func TestTickRisesUntilExplosion(t *testing.T) {
	r := NewRound(3)
	r.BeginBetting()
	require.NoError(t, r.RecordBet(1, 100))
	_, _, me := r.CloseBetting()

	var ticks int
	prev := r.Multiplier()
	for {
		m, exploded := r.Tick()
		ticks++
		assert.Greater(t, m, prev, "multiplier must be monotonic")
		prev = m
		if exploded {
			assert.GreaterOrEqual(t, m, me)
			break
		}
		assert.Less(t, m, me)
		require.Less(t, ticks, 1000, "round must terminate")
	}

	// me = sqrt(3) ~ 1.732, starting at 1.00 with 0.01 steps
	assert.InDelta(t, 74, ticks, 2)
}

func TestRecordCashoutValidation(t *testing.T) {
	r := NewRound(3)

	_, err := r.RecordCashout(1)
	assert.ErrorIs(t, err, ErrWrongPhase, "no cashout while idle")

	r.BeginBetting()
	require.NoError(t, r.RecordBet(1, 100))
	_, err = r.RecordCashout(1)
	assert.ErrorIs(t, err, ErrWrongPhase, "no cashout during betting")

	r.CloseBetting()
	r.Tick()

	_, err = r.RecordCashout(2)
	assert.ErrorIs(t, err, ErrNoBet)
	_, err = r.RecordCashout(0)
	assert.ErrorIs(t, err, ErrNoSlot)

	co, err := r.RecordCashout(1)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, co.Bet, 1e-4)
	assert.InDelta(t, 1.01, co.Multiplier, 1e-4)
	assert.InDelta(t, 101.0, co.Payout(), 1e-2)

	_, err = r.RecordCashout(1)
	assert.ErrorIs(t, err, ErrAlreadyCashed)
}

func TestCashoutStampsMultiplierBelowExplosion(t *testing.T) {
	r := NewRound(3)
	r.BeginBetting()
	require.NoError(t, r.RecordBet(1, 50))
	require.NoError(t, r.RecordBet(2, 50))
	_, _, me := r.CloseBetting()
	require.InDelta(t, 2.0, me, 1e-5)

	// ride to ~1.80x
	for r.Multiplier() < 1.80 {
		_, exploded := r.Tick()
		require.False(t, exploded)
	}

	co, err := r.RecordCashout(1)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, co.Multiplier, float32(1.0))
	assert.Less(t, co.Multiplier, me)
}

func TestSettleMixedOutcomes(t *testing.T) {
	r := NewRound(10)
	ledger := NewLedger(10)

	r.BeginBetting()
	require.NoError(t, r.RecordBet(1, 50))
	require.NoError(t, r.RecordBet(2, 50))
	r.CloseBetting()

	for r.Multiplier() < 1.80 {
		r.Tick()
	}

	// player 1 cashes out and is settled inline
	co, err := r.RecordCashout(1)
	require.NoError(t, err)
	payout := co.Payout()
	ledger.Apply(1, payout-co.Bet, co.Bet-payout)

	// ride out the explosion
	for {
		if _, exploded := r.Tick(); exploded {
			break
		}
	}

	results := r.Settle()
	require.Len(t, results, 2)
	assert.Equal(t, PhaseSettling, r.Phase())

	for _, res := range results {
		switch res.ID {
		case 1:
			assert.True(t, res.AlreadySettled)
			assert.InDelta(t, payout, res.Payout, 1e-3)
			assert.Zero(t, res.DeltaPlayer)
			assert.Zero(t, res.DeltaHouse)
		case 2:
			assert.False(t, res.AlreadySettled)
			assert.Zero(t, res.Payout)
			assert.InDelta(t, -50.0, res.DeltaPlayer, 1e-4)
			assert.InDelta(t, 50.0, res.DeltaHouse, 1e-4)
			ledger.Apply(res.ID, res.DeltaPlayer, res.DeltaHouse)
		default:
			t.Fatalf("unexpected settlement for id %d", res.ID)
		}
	}

	// zero-sum: player deltas and house delta cancel
	sum := ledger.Player(1) + ledger.Player(2) + ledger.House()
	assert.InDelta(t, 0.0, sum, 1e-3)

	// cashout near 1.80x on 50 yields ~90, so +40 for the winner and
	// +10 for the house against player 2's forfeit
	assert.InDelta(t, 40.0, ledger.Player(1), 1.0)
	assert.InDelta(t, -50.0, ledger.Player(2), 1e-4)
	assert.InDelta(t, 10.0, ledger.House(), 1.0)
}

func TestSettleSkipsPlayersWithoutBets(t *testing.T) {
	r := NewRound(5)
	r.BeginBetting()
	require.NoError(t, r.RecordBet(3, 25))
	r.CloseBetting()
	for {
		if _, exploded := r.Tick(); exploded {
			break
		}
	}

	results := r.Settle()
	require.Len(t, results, 1)
	assert.Equal(t, int32(3), results[0].ID)
}

func TestHasOpenBet(t *testing.T) {
	r := NewRound(3)
	assert.False(t, r.HasOpenBet(1))

	r.BeginBetting()
	assert.False(t, r.HasOpenBet(1))
	require.NoError(t, r.RecordBet(1, 50))
	assert.True(t, r.HasOpenBet(1))

	r.CloseBetting()
	assert.True(t, r.HasOpenBet(1))

	_, err := r.RecordCashout(1)
	require.NoError(t, err)
	assert.False(t, r.HasOpenBet(1), "cashed-out bet is settled")

	for {
		if _, exploded := r.Tick(); exploded {
			break
		}
	}
	r.Settle()
	assert.False(t, r.HasOpenBet(1), "settled round holds no open bets")
}

func TestLedgerConservation(t *testing.T) {
	l := NewLedger(5)

	// a winner, a loser and a washout
	l.Apply(1, 50, -50)
	l.Apply(2, -100, 100)
	l.Apply(3, 0, 0)

	sum := l.House()
	for id := int32(1); id <= 5; id++ {
		sum += l.Player(id)
	}
	assert.InDelta(t, 0.0, sum, 1e-4)

	assert.InDelta(t, 50.0, l.Player(1), 1e-4)
	assert.InDelta(t, -100.0, l.Player(2), 1e-4)
	assert.InDelta(t, 50.0, l.House(), 1e-4)
}

func TestLedgerResetOnReadmission(t *testing.T) {
	l := NewLedger(3)
	l.Apply(1, -75, 75)
	require.InDelta(t, -75.0, l.Player(1), 1e-4)

	l.Reset(1)
	assert.Zero(t, l.Player(1), "a new occupant starts from zero")
	assert.InDelta(t, 75.0, l.House(), 1e-4, "house profit persists")
}
