package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
	"github.com/mitchelldurbincs/bridgefront/internal/game/events"
	"github.com/mitchelldurbincs/bridgefront/internal/game/states"
	"github.com/mitchelldurbincs/bridgefront/internal/submit"
	"github.com/mitchelldurbincs/bridgefront/internal/targeting"
	"github.com/mitchelldurbincs/bridgefront/internal/testutil"
)

type recorder struct {
	events []events.Event
}

func (r *recorder) ID() string                { return "recorder" }
func (r *recorder) HandleEvent(e events.Event) { r.events = append(r.events, e) }
func (r *recorder) InterestedIn(string) bool  { return true }

func (r *recorder) types() []string {
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type())
	}
	return out
}

func (r *recorder) last(eventType string) events.Event {
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type() == eventType {
			return r.events[i]
		}
	}
	return nil
}

func newTestSession(t *testing.T) (*Session, *recorder, *events.EventBus) {
	t.Helper()
	bus := events.NewEventBus(testutil.NopLogger())
	rec := &recorder{}
	bus.Subscribe(rec)

	catalog := targeting.NewCatalog()
	catalog.Register("card.draw", targeting.NoneSpec{})
	s := NewSession(DefaultSessionConfig(), catalog, bus, testutil.NopLogger())
	return s, rec, bus
}

func moveSnapshot(phase states.GamePhase, round int) Snapshot {
	b := testutil.HexBoard(2).
		Player("p1", "0,0").
		Player("p2", "2,0").
		Force("f1", "p1", "0,0").
		Bridge("0,0", "1,0").
		Build()
	return Snapshot{Board: b, PlayerID: "p1", Phase: phase, Round: round}
}

func TestSession_SelectRequiresInteractivePhase(t *testing.T) {
	s, _, _ := newTestSession(t)

	_, err := s.Select(targeting.ActionMove)
	assert.ErrorIs(t, err, ErrNotInteractive)

	s.Update(moveSnapshot(states.PhaseAction, 1))
	_, err = s.Select("card.unknown")
	assert.ErrorIs(t, err, ErrUnknownCard)

	st, err := s.Select(targeting.ActionMove)
	require.NoError(t, err)
	assert.Equal(t, targeting.KindStack, st.Kind())
	assert.Equal(t, targeting.ActionMove, s.Context().SelectedID)
}

func TestSession_PickAndSubmit(t *testing.T) {
	s, rec, _ := newTestSession(t)
	s.Update(moveSnapshot(states.PhaseAction, 1))

	_, err := s.Select(targeting.ActionMove)
	require.NoError(t, err)
	assert.True(t, s.Candidates().StartHexes.Has("0,0"))

	s.PickHex("0,0")
	st := s.PickHex("1,0")
	require.True(t, st.Ready())

	assert.Equal(t, []string{
		events.TypeSelectionBegun,
		events.TypeSelectionChanged,
		events.TypeSelectionChanged,
		events.TypeSelectionCompleted,
	}, rec.types())

	completed := rec.last(events.TypeSelectionCompleted).(*events.SelectionCompletedEvent)
	assert.Equal(t, targeting.StackPayload{From: "0,0", To: "1,0"}, completed.Payload)
	assert.Equal(t, "p1", completed.Metadata.PlayerID)
	assert.Equal(t, 1, completed.Metadata.Round)
	assert.Equal(t, s.ID(), completed.SessionID())

	cmd, err := s.Submit()
	require.NoError(t, err)
	assert.NotEmpty(t, cmd.RequestID)
	assert.Equal(t, "p1", cmd.PlayerID)
	assert.Equal(t, targeting.KindStack, cmd.Kind)
	assert.False(t, s.State().IsActive(), "the payload is consumed once")
	assert.Empty(t, s.Context().SelectedID)

	submitted := rec.last(events.TypeActionSubmitted).(*events.ActionSubmittedEvent)
	assert.Equal(t, cmd.RequestID, submitted.RequestID)

	_, err = s.Submit()
	assert.ErrorIs(t, err, ErrNoSelection)

	t.Run("resubmission reuses the request id", func(t *testing.T) {
		_, err := s.Select(targeting.ActionMove)
		require.NoError(t, err)
		s.PickHex("0,0")
		s.PickHex("1,0")

		again, err := s.Submit()
		require.NoError(t, err)
		assert.Equal(t, cmd.RequestID, again.RequestID)
	})
}

func TestSession_SubmitAcrossRounds(t *testing.T) {
	s, _, _ := newTestSession(t)
	move := func() submit.Command {
		t.Helper()
		_, err := s.Select(targeting.ActionMove)
		require.NoError(t, err)
		s.PickHex("0,0")
		s.PickHex("1,0")
		cmd, err := s.Submit()
		require.NoError(t, err)
		return cmd
	}

	s.Update(moveSnapshot(states.PhaseAction, 1))
	first := move()
	assert.Equal(t, 1, first.Round)

	s.Update(moveSnapshot(states.PhaseResolution, 1))
	s.Update(moveSnapshot(states.PhaseAction, 2))
	second := move()
	assert.Equal(t, 2, second.Round)
	assert.NotEqual(t, first.RequestID, second.RequestID, "the same move in a new round is a new action")

	retry := move()
	assert.Equal(t, second.RequestID, retry.RequestID)
}

func TestSession_IgnoredClicksPublishNothing(t *testing.T) {
	s, rec, _ := newTestSession(t)
	s.Update(moveSnapshot(states.PhaseAction, 1))
	_, err := s.Select(targeting.ActionMove)
	require.NoError(t, err)

	s.PickHex("2,-2")
	s.PickHex("not-a-hex")
	assert.Equal(t, []string{events.TypeSelectionBegun}, rec.types())
}

func TestSession_SubmitIncomplete(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.Update(moveSnapshot(states.PhaseAction, 1))
	_, err := s.Select(targeting.ActionMove)
	require.NoError(t, err)
	s.PickHex("0,0")

	_, err = s.Submit()
	require.Error(t, err)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	assert.True(t, s.State().IsActive(), "a failed submission keeps the selection")
}

func TestSession_SubmitNone(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.Update(moveSnapshot(states.PhaseAction, 1))
	_, err := s.Select("card.draw")
	require.NoError(t, err)

	cmd, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, targeting.KindNone, cmd.Kind)
	assert.Nil(t, cmd.Payload)
}

func TestSession_ResetTriggers(t *testing.T) {
	t.Run("phase ended", func(t *testing.T) {
		s, rec, _ := newTestSession(t)
		s.Update(moveSnapshot(states.PhaseAction, 1))
		_, err := s.Select(targeting.ActionMove)
		require.NoError(t, err)
		s.PickHex("0,0")

		trigger := s.Update(moveSnapshot(states.PhaseResolution, 1))
		assert.Equal(t, TriggerPhaseEnded, trigger)
		assert.True(t, s.State().Pending().IsZero())
		assert.Equal(t, targeting.KindStack, s.State().Kind())

		reset := rec.last(events.TypeSelectionReset).(*events.SelectionResetEvent)
		assert.Equal(t, events.ResetPhaseEnded, reset.Reason)
		assert.NotNil(t, rec.last(events.TypeStateTransition))
	})

	t.Run("round advanced", func(t *testing.T) {
		s, rec, _ := newTestSession(t)
		s.Update(moveSnapshot(states.PhaseAction, 1))
		_, err := s.Select(targeting.ActionMove)
		require.NoError(t, err)
		s.PickHex("0,0")

		trigger := s.Update(moveSnapshot(states.PhaseAction, 2))
		assert.Equal(t, TriggerRoundAdvanced, trigger)
		assert.True(t, s.State().Pending().IsZero())

		reset := rec.last(events.TypeSelectionReset).(*events.SelectionResetEvent)
		assert.Equal(t, events.ResetRoundAdvanced, reset.Reason)
	})

	t.Run("deselected", func(t *testing.T) {
		s, rec, _ := newTestSession(t)
		s.Update(moveSnapshot(states.PhaseAction, 1))
		_, err := s.Select(targeting.ActionMove)
		require.NoError(t, err)

		st := s.Deselect()
		assert.False(t, st.IsActive())
		reset := rec.last(events.TypeSelectionReset).(*events.SelectionResetEvent)
		assert.Equal(t, events.ResetDeselected, reset.Reason)
	})

	t.Run("cancel keeps the card", func(t *testing.T) {
		s, rec, _ := newTestSession(t)
		s.Update(moveSnapshot(states.PhaseAction, 1))
		_, err := s.Select(targeting.ActionMove)
		require.NoError(t, err)
		s.PickHex("0,0")

		st := s.Cancel()
		assert.True(t, st.IsActive())
		assert.True(t, st.Pending().IsZero())
		reset := rec.last(events.TypeSelectionReset).(*events.SelectionResetEvent)
		assert.Equal(t, events.ResetCancelled, reset.Reason)
	})

	t.Run("idle session publishes no reset", func(t *testing.T) {
		s, rec, _ := newTestSession(t)
		s.Update(moveSnapshot(states.PhaseAction, 1))
		s.Update(moveSnapshot(states.PhaseResolution, 1))
		assert.Nil(t, rec.last(events.TypeSelectionReset))
	})
}

func TestSession_HandlersMayCallBack(t *testing.T) {
	s, _, bus := newTestSession(t)
	s.Update(moveSnapshot(states.PhaseAction, 1))

	var highlighted []core.HexKey
	bus.SubscribeFunc(events.TypeSelectionChanged, func(events.Event) {
		highlighted = s.Candidates().CandidateHexes.Sorted()
	})

	_, err := s.Select(targeting.ActionMove)
	require.NoError(t, err)
	s.PickHex("0,0")
	assert.Equal(t, []core.HexKey{"1,0"}, highlighted)
}

func TestSession_ResetPrecedesPhaseAnnouncement(t *testing.T) {
	s, rec, bus := newTestSession(t)
	s.Update(moveSnapshot(states.PhaseAction, 1))
	_, err := s.Select(targeting.ActionMove)
	require.NoError(t, err)
	s.PickHex("0,0")

	pendingAtTransition := true
	bus.SubscribeFunc(events.TypeStateTransition, func(events.Event) {
		pendingAtTransition = !s.State().Pending().IsZero()
	})
	rec.events = nil

	s.Update(moveSnapshot(states.PhaseResolution, 1))
	assert.False(t, pendingAtTransition, "handlers of the phase change see the reset selection")
	assert.Equal(t, []string{events.TypeStateTransition, events.TypeSelectionReset}, rec.types())
}

func TestDecodeSnapshot(t *testing.T) {
	snap, err := DecodeSnapshot([]byte(`{
		"board": {
			"hexes": {"0,0": {"tile": "capital"}, "1,0": {"tile": "normal"}},
			"bridges": {"0,0|1,0": {}},
			"players": [{"id": "p1", "capitalHex": "0,0"}]
		},
		"playerId": "p1",
		"phase": "action",
		"round": 3
	}`))
	require.NoError(t, err)

	require.NotNil(t, snap.Board)
	assert.Equal(t, core.HexKey("1,0"), snap.Board.Hexes["1,0"].Key, "map keys fill omitted hex keys")
	assert.True(t, snap.Board.HasBridge("1,0", "0,0"))
	assert.Equal(t, "p1", snap.PlayerID)
	assert.Equal(t, states.PhaseAction, snap.Phase)
	assert.Equal(t, 3, snap.Round)

	spectator, err := DecodeSnapshot([]byte(`{"board": null, "phase": "lobby"}`))
	require.NoError(t, err)
	assert.Nil(t, spectator.Board)

	_, err = DecodeSnapshot([]byte(`{"phase": "overtime"}`))
	assert.Error(t, err)
}
