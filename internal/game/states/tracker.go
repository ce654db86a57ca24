package states

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/bridgefront/internal/game/events"
)

const defaultMaxHistory = 256

// Transition is one observed change of phase or round
type Transition struct {
	From      GamePhase
	To        GamePhase
	FromRound int
	ToRound   int
	Timestamp time.Time
	// Expected is false when the engine skipped phases the client did not see
	Expected bool
}

// LeftInteractive reports whether the transition leaves the interactive phase
func (t Transition) LeftInteractive() bool {
	return t.From.IsInteractive() && !t.To.IsInteractive()
}

func (t Transition) RoundAdvanced() bool {
	return t.ToRound > t.FromRound
}

// Tracker follows the phase and round of authoritative snapshots. The engine
// owns phase changes; the tracker only records them, flags unexpected jumps,
// and announces each change on the event bus.
type Tracker struct {
	mu         sync.RWMutex
	sessionID  string
	phase      GamePhase
	round      int
	seen       bool
	history    []Transition
	maxHistory int
	bus        events.Publisher
	logger     zerolog.Logger
}

// NewTracker creates a tracker that has not yet observed a snapshot
func NewTracker(sessionID string, bus events.Publisher, logger zerolog.Logger) *Tracker {
	return &Tracker{
		sessionID:  sessionID,
		maxHistory: defaultMaxHistory,
		bus:        bus,
		logger:     logger.With().Str("component", "phase_tracker").Logger(),
	}
}

// Current returns the last observed phase and round
func (t *Tracker) Current() (GamePhase, int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.phase, t.round
}

// Observe records a snapshot's phase and round. It returns the transition and
// true when either changed; the first observation only seeds the tracker.
func (t *Tracker) Observe(phase GamePhase, round int) (Transition, bool) {
	t.mu.Lock()
	if !t.seen {
		t.seen = true
		t.phase, t.round = phase, round
		t.mu.Unlock()
		return Transition{}, false
	}
	if phase == t.phase && round == t.round {
		t.mu.Unlock()
		return Transition{}, false
	}

	tr := Transition{
		From:      t.phase,
		To:        phase,
		FromRound: t.round,
		ToRound:   round,
		Timestamp: time.Now(),
		Expected:  phase == t.phase || t.phase.CanTransitionTo(phase),
	}
	t.phase, t.round = phase, round
	t.history = append(t.history, tr)
	if len(t.history) > t.maxHistory {
		t.history = t.history[len(t.history)-t.maxHistory:]
	}
	t.mu.Unlock()

	logEvent := t.logger.Info()
	if !tr.Expected {
		logEvent = t.logger.Warn()
	}
	logEvent.
		Str("from_phase", tr.From.String()).
		Str("to_phase", tr.To.String()).
		Int("from_round", tr.FromRound).
		Int("to_round", tr.ToRound).
		Bool("expected", tr.Expected).
		Msg("Phase transition observed")

	if t.bus != nil {
		t.bus.Publish(events.NewStateTransitionEvent(
			t.sessionID, tr.From.String(), tr.To.String(), tr.FromRound, tr.ToRound, tr.Expected,
		))
	}
	return tr, true
}

// History returns a copy of the observed transitions, oldest first
func (t *Tracker) History() []Transition {
	t.mu.RLock()
	defer t.mu.RUnlock()

	history := make([]Transition, len(t.history))
	copy(history, t.history)
	return history
}
