package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession() State {
	return NewState("g1", "alice", "bob", 4242)
}

func turn(n int) *int { return &n }

func submit(t *testing.T, s State, player string, a Action) State {
	t.Helper()
	_, next, err := Apply(s, Command{Type: CmdSubmitAction, PlayerID: player, Action: a})
	require.NoError(t, err)
	return next
}

func confirm(t *testing.T, s State, player string) ([]Event, State) {
	t.Helper()
	events, next, err := Apply(s, Command{Type: CmdConfirmTurn, PlayerID: player})
	require.NoError(t, err)
	return events, next
}

func TestSubmitAction(t *testing.T) {
	base := newSession()
	base.Turn = 2

	cases := []struct {
		name      string
		player    string
		turn      *int
		wantErr   error
		wantA     bool
		wantB     bool
		wantEvent bool
	}{
		{name: "side A without turn number", player: "alice", wantA: true, wantEvent: true},
		{name: "side B with current turn", player: "bob", turn: turn(2), wantB: true, wantEvent: true},
		{name: "stale retransmit is rejected", player: "alice", turn: turn(1), wantErr: ErrTurnMismatch},
		{name: "future turn is rejected", player: "bob", turn: turn(3), wantErr: ErrTurnMismatch},
		{name: "stranger is ignored", player: "mallory", turn: turn(2)},
		{name: "stranger with a stale turn is still ignored", player: "mallory", turn: turn(1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			events, next, err := Apply(base, Command{
				Type:     CmdSubmitAction,
				PlayerID: tc.player,
				Turn:     tc.turn,
				Action:   Action{Type: "move", Index: 1},
			})
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, base, next, "rejected submission must not mutate state")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantA, next.ActionA != nil)
			assert.Equal(t, tc.wantB, next.ActionB != nil)
			assert.Equal(t, tc.wantEvent, ContainsEvent(events, EvtActionSubmitted))
		})
	}
}

func TestTurnMismatchCarriesServerTurn(t *testing.T) {
	s := newSession()
	s.Turn = 2

	_, _, err := Apply(s, Command{Type: CmdSubmitAction, PlayerID: "alice", Turn: turn(1)})

	var mismatch *TurnMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 2, mismatch.ServerTurn)
	assert.Equal(t, 1, mismatch.ClientTurn)
}

func TestResubmitOverwrites(t *testing.T) {
	s := newSession()
	s = submit(t, s, "alice", Action{Type: "move", Index: 0})
	s = submit(t, s, "alice", Action{Type: "switch", Index: 3, QueuedSwitch: 2})

	require.NotNil(t, s.ActionA)
	assert.Equal(t, Action{Type: "switch", Index: 3, QueuedSwitch: 2}, *s.ActionA)
	assert.Nil(t, s.ActionB)
}

func TestDualConfirmAdvancesExactlyOnce(t *testing.T) {
	s := newSession()
	s = submit(t, s, "alice", Action{Type: "move"})
	s = submit(t, s, "bob", Action{Type: "move"})

	events, s := confirm(t, s, "alice")
	assert.False(t, ContainsEvent(events, EvtTurnAdvanced))
	assert.Equal(t, 1, s.Turn)

	// repeated confirm from the same side never advances
	events, s = confirm(t, s, "alice")
	assert.False(t, ContainsEvent(events, EvtTurnAdvanced))
	assert.Equal(t, 1, s.Turn)

	events, s = confirm(t, s, "bob")
	require.True(t, ContainsEvent(events, EvtTurnAdvanced))
	assert.Equal(t, 2, s.Turn)
	assert.Nil(t, s.ActionA)
	assert.Nil(t, s.ActionB)
	assert.False(t, s.ConfirmedA)
	assert.False(t, s.ConfirmedB)
	assert.Equal(t, PhaseAwaitingActions, DerivePhase(s))
}

func TestConfirmFromStrangerIsIgnored(t *testing.T) {
	s := newSession()
	events, next := confirm(t, s, "mallory")
	assert.Empty(t, events)
	assert.Equal(t, s, next)
}

func TestDerivePhase(t *testing.T) {
	s := newSession()
	assert.Equal(t, PhaseAwaitingActions, DerivePhase(s))

	s = submit(t, s, "alice", Action{})
	assert.Equal(t, PhaseAwaitingActions, DerivePhase(s))

	s = submit(t, s, "bob", Action{})
	assert.Equal(t, PhaseActionsComplete, DerivePhase(s))

	_, s = confirm(t, s, "bob")
	assert.Equal(t, PhaseSyncing, DerivePhase(s))
}

func TestViewPrecedence(t *testing.T) {
	ready := newSession()
	ready.ActionA = &Action{Type: "move", Index: 1, HPState: "100/100"}
	ready.ActionB = &Action{Type: "switch", Index: 2, QueuedSwitch: 1, HPState: "40/90"}

	cases := []struct {
		name   string
		setup  State
		viewer string
		want   ViewStatus
	}{
		{name: "no actions", setup: newSession(), viewer: "alice", want: ViewBattleOngoing},
		{name: "both actions", setup: ready, viewer: "bob", want: ViewTurnReady},
		{
			name: "own confirmation wins over ready",
			setup: func() State {
				s := ready
				s.ConfirmedA = true
				return s
			}(),
			viewer: "alice",
			want:   ViewSyncing,
		},
		{
			name: "peer confirmation does not hide ready",
			setup: func() State {
				s := ready
				s.ConfirmedA = true
				return s
			}(),
			viewer: "bob",
			want:   ViewTurnReady,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ViewFor(tc.setup, tc.viewer).Status)
		})
	}
}

func TestTurnReadyViewIsMirrored(t *testing.T) {
	s := newSession()
	s = submit(t, s, "alice", Action{Type: "move", Index: 1, HPState: "a-hp"})
	s = submit(t, s, "bob", Action{Type: "move", Index: 3, HPState: "b-hp"})

	a := ViewFor(s, "alice")
	b := ViewFor(s, "bob")

	assert.Equal(t, 3, a.Theirs.Index)
	assert.Equal(t, "b-hp", a.Theirs.HPState)
	assert.Equal(t, "bob", a.Opponent)
	assert.Equal(t, 1, b.Theirs.Index)
	assert.Equal(t, "alice", b.Opponent)
	assert.Equal(t, 4242, a.Seed)
	assert.Equal(t, 1, a.Turn)
}

func TestViewForStrangerIsEmpty(t *testing.T) {
	s := newSession()
	s = submit(t, s, "alice", Action{Type: "move", Index: 1, HPState: "a-hp"})
	s = submit(t, s, "bob", Action{Type: "move", Index: 3})

	for _, viewer := range []string{"mallory", ""} {
		assert.Equal(t, View{}, ViewFor(s, viewer), viewer)
	}
}

func TestBattleOngoingReportsOwnSubmission(t *testing.T) {
	s := submit(t, newSession(), "bob", Action{Type: "move"})

	assert.True(t, ViewFor(s, "bob").Submitted)
	assert.False(t, ViewFor(s, "alice").Submitted)
}

func TestChatOverwritesSlotInEveryPhase(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	s := newSession()
	s = submit(t, s, "alice", Action{})
	s = submit(t, s, "bob", Action{})
	_, s = confirm(t, s, "alice")

	events, s, err := Apply(s, Command{Type: CmdPostChat, PlayerID: "bob", Text: "gg", At: at})
	require.NoError(t, err)
	require.True(t, ContainsEvent(events, EvtChatPosted))

	want := Chat{SenderID: "bob", Text: "gg", SentAt: at}
	assert.Equal(t, want, ViewFor(s, "alice").Chat) // syncing
	assert.Equal(t, want, ViewFor(s, "bob").Chat)   // turn ready
}

func TestUnsupportedCommand(t *testing.T) {
	_, _, err := Apply(newSession(), Command{Type: "Nope", PlayerID: "alice"})
	require.ErrorIs(t, err, ErrUnsupportedCommand)
}
