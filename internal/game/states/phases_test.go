package states

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/bridgefront/internal/game/events"
)

func TestGamePhase_String(t *testing.T) {
	tests := []struct {
		phase    GamePhase
		expected string
	}{
		{PhaseLobby, "lobby"},
		{PhaseSetup, "setup"},
		{PhaseMarket, "market"},
		{PhaseAction, "action"},
		{PhaseResolution, "resolution"},
		{PhaseCleanup, "cleanup"},
		{PhaseEnded, "ended"},
		{GamePhase(999), "unknown(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
		})
	}
}

func TestGamePhase_Properties(t *testing.T) {
	t.Run("IsInteractive", func(t *testing.T) {
		assert.True(t, PhaseAction.IsInteractive())
		assert.False(t, PhaseMarket.IsInteractive())
		assert.False(t, PhaseResolution.IsInteractive())
		assert.False(t, PhaseEnded.IsInteractive())
	})

	t.Run("IsTerminal", func(t *testing.T) {
		assert.True(t, PhaseEnded.IsTerminal())
		assert.False(t, PhaseAction.IsTerminal())
	})
}

func TestGamePhase_Transitions(t *testing.T) {
	tests := []struct {
		from    GamePhase
		allowed []GamePhase
	}{
		{PhaseLobby, []GamePhase{PhaseSetup}},
		{PhaseSetup, []GamePhase{PhaseMarket, PhaseEnded}},
		{PhaseMarket, []GamePhase{PhaseAction, PhaseEnded}},
		{PhaseAction, []GamePhase{PhaseResolution, PhaseEnded}},
		{PhaseResolution, []GamePhase{PhaseCleanup, PhaseEnded}},
		{PhaseCleanup, []GamePhase{PhaseMarket, PhaseEnded}},
		{PhaseEnded, []GamePhase{}},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.AllowedTransitions())
			for _, target := range tt.allowed {
				assert.True(t, tt.from.CanTransitionTo(target))
			}
			assert.False(t, tt.from.CanTransitionTo(PhaseLobby))
		})
	}
}

func TestParsePhase(t *testing.T) {
	for p, name := range phaseNames {
		parsed, err := ParsePhase(name)
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	_, err := ParsePhase("Running")
	assert.Error(t, err)
}

func TestGamePhase_JSON(t *testing.T) {
	var snapshot struct {
		Phase GamePhase `json:"phase"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"phase":"resolution"}`), &snapshot))
	assert.Equal(t, PhaseResolution, snapshot.Phase)

	data, err := json.Marshal(snapshot)
	require.NoError(t, err)
	assert.JSONEq(t, `{"phase":"resolution"}`, string(data))

	assert.Error(t, json.Unmarshal([]byte(`{"phase":"paused"}`), &snapshot))
}

func TestTracker(t *testing.T) {
	bus := events.NewEventBus(zerolog.Nop())
	var published []*events.StateTransitionEvent
	bus.SubscribeFunc(events.TypeStateTransition, func(e events.Event) {
		published = append(published, e.(*events.StateTransitionEvent))
	})

	tracker := NewTracker("s1", bus, zerolog.Nop())

	_, changed := tracker.Observe(PhaseAction, 1)
	assert.False(t, changed, "the first snapshot only seeds the tracker")

	_, changed = tracker.Observe(PhaseAction, 1)
	assert.False(t, changed)

	tr, changed := tracker.Observe(PhaseResolution, 1)
	require.True(t, changed)
	assert.True(t, tr.LeftInteractive())
	assert.False(t, tr.RoundAdvanced())
	assert.True(t, tr.Expected)

	tr, changed = tracker.Observe(PhaseAction, 2)
	require.True(t, changed)
	assert.False(t, tr.Expected, "cleanup and market were skipped")
	assert.True(t, tr.RoundAdvanced())
	assert.False(t, tr.LeftInteractive())

	phase, round := tracker.Current()
	assert.Equal(t, PhaseAction, phase)
	assert.Equal(t, 2, round)

	assert.Len(t, tracker.History(), 2)
	require.Len(t, published, 2)
	assert.Equal(t, "resolution", published[0].ToPhase)
	assert.Equal(t, 2, published[1].ToRound)
}

func TestTrackerHistoryBound(t *testing.T) {
	tracker := NewTracker("s1", nil, zerolog.Nop())
	tracker.maxHistory = 3

	tracker.Observe(PhaseAction, 0)
	for round := 1; round <= 5; round++ {
		tracker.Observe(PhaseAction, round)
	}

	history := tracker.History()
	require.Len(t, history, 3)
	assert.Equal(t, 5, history[2].ToRound)
	assert.Equal(t, 3, history[0].ToRound)
}
