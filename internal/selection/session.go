package selection

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
	"github.com/mitchelldurbincs/bridgefront/internal/game/events"
	"github.com/mitchelldurbincs/bridgefront/internal/game/rules"
	"github.com/mitchelldurbincs/bridgefront/internal/game/states"
	"github.com/mitchelldurbincs/bridgefront/internal/submit"
	"github.com/mitchelldurbincs/bridgefront/internal/targeting"
)

var (
	ErrUnknownCard    = errors.New("card has no target spec")
	ErrNotInteractive = errors.New("game is not in an interactive phase")
	ErrNoSelection    = errors.New("no card or action selected")
)

// Snapshot is one authoritative update as delivered to the client
type Snapshot struct {
	Board     *core.Board      `json:"board"`
	Modifiers []core.Modifier  `json:"modifiers,omitempty"`
	PlayerID  string           `json:"playerId,omitempty"`
	Phase     states.GamePhase `json:"phase"`
	Round     int              `json:"round"`
}

// DecodeSnapshot parses a snapshot document; the board goes through core.DecodeBoard
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var wire struct {
		Snapshot
		Board json.RawMessage `json:"board"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	snap := wire.Snapshot
	if len(wire.Board) > 0 && string(wire.Board) != "null" {
		b, err := core.DecodeBoard(wire.Board)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Board = b
	}
	return snap, nil
}

// SessionConfig holds the tunables a session copies at construction
type SessionConfig struct {
	Rules     rules.Options
	Selection Options
	LedgerTTL time.Duration
}

// DefaultSessionConfig returns the standard session tunables
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Rules:     rules.DefaultOptions(),
		Selection: DefaultOptions(),
		LedgerTTL: submit.DefaultLedgerTTL,
	}
}

// Session owns the selection state of one client between authoritative
// updates. It feeds snapshots through the phase tracker, applies reset
// triggers, and publishes selection events. Events are published after the
// session lock is released, so handlers may call back into the session.
type Session struct {
	mu      sync.Mutex
	id      string
	cfg     SessionConfig
	catalog *targeting.Catalog
	tracker *states.Tracker
	ledger  *submit.Ledger
	bus     events.Publisher
	logger  zerolog.Logger

	state State
	view  rules.View
	ctx   Context
}

// NewSession creates a session with no snapshot. bus may be nil.
func NewSession(cfg SessionConfig, catalog *targeting.Catalog, bus events.Publisher, logger zerolog.Logger) *Session {
	id := uuid.NewString()
	logger = logger.With().Str("component", "selection").Str("session_id", id).Logger()
	if catalog == nil {
		catalog = targeting.NewCatalog()
	}
	return &Session{
		id:      id,
		cfg:     cfg,
		catalog: catalog,
		tracker: states.NewTracker(id, bus, logger),
		ledger:  submit.NewLedger(cfg.LedgerTTL),
		bus:     bus,
		logger:  logger,
		state:   New(cfg.Selection),
		view:    rules.View{Options: cfg.Rules},
	}
}

func (s *Session) ID() string { return s.id }

// State returns the current selection state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View returns the rule view built from the last snapshot
func (s *Session) View() rules.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Context returns what the session knows about the game
func (s *Session) Context() Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

// Tracker returns the phase tracker fed by Update
func (s *Session) Tracker() *states.Tracker {
	return s.tracker
}

// Candidates computes the highlight sets for the current selection
func (s *Session) Candidates() targeting.Candidates {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Candidates(s.view)
}

// Update replaces the board snapshot and applies any reset trigger the
// phase or round change implies. It returns the trigger that fired. The
// selection is already reset when the phase transition is announced, and the
// reset event follows it.
func (s *Session) Update(snap Snapshot) Trigger {
	s.mu.Lock()
	s.view = rules.View{
		Board:     snap.Board,
		Modifiers: snap.Modifiers,
		PlayerID:  snap.PlayerID,
		Options:   s.cfg.Rules,
	}
	next := Context{SelectedID: s.ctx.SelectedID, Phase: snap.Phase, Round: snap.Round}
	trigger := DetectTrigger(s.ctx, next)
	if next.Round > s.ctx.Round {
		s.ledger.Reset()
	}
	s.ctx = next
	pending := s.resetLocked(trigger)
	s.mu.Unlock()

	s.tracker.Observe(snap.Phase, snap.Round)
	s.publish(pending...)
	return trigger
}

// Select begins targeting for cardID, replacing any selection in progress
func (s *Session) Select(cardID string) (State, error) {
	spec, ok := s.catalog.Lookup(cardID)
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrUnknownCard, cardID)
	}

	s.mu.Lock()
	if !s.ctx.Phase.IsInteractive() {
		phase := s.ctx.Phase
		s.mu.Unlock()
		return State{}, fmt.Errorf("%w: %s", ErrNotInteractive, phase)
	}
	s.state = s.state.Begin(cardID, spec)
	s.ctx.SelectedID = cardID
	state := s.state
	meta := s.metaLocked()
	s.mu.Unlock()

	s.logger.Debug().Str("card_id", cardID).Str("kind", string(spec.Kind())).Msg("Selection begun")
	s.publish(events.NewSelectionBegunEvent(s.id, meta, cardID, string(spec.Kind())))
	return state, nil
}

// Deselect clears the chosen card and everything pending for it
func (s *Session) Deselect() State {
	s.mu.Lock()
	next := s.ctx
	next.SelectedID = ""
	pending := s.resetLocked(DetectTrigger(s.ctx, next))
	s.ctx = next
	state := s.state
	s.mu.Unlock()

	s.publish(pending...)
	return state
}

// Cancel discards pending picks but keeps the chosen card
func (s *Session) Cancel() State {
	s.mu.Lock()
	var pending []events.Event
	if s.state.IsActive() {
		pending = append(pending, events.NewSelectionResetEvent(s.id, s.metaLocked(), s.state.CardID(), events.ResetCancelled))
	}
	s.state = s.state.Cancel()
	state := s.state
	s.mu.Unlock()

	s.publish(pending...)
	return state
}

func (s *Session) PickHex(hex core.HexKey) State {
	return s.apply(string(hex), func(st State, v rules.View) State { return st.PickHex(v, hex) })
}

func (s *Session) PickEdge(edge core.EdgeKey) State {
	return s.apply(string(edge), func(st State, v rules.View) State { return st.PickEdge(v, edge) })
}

func (s *Session) PickPlayer(playerID string) State {
	return s.apply(playerID, func(st State, v rules.View) State { return st.PickPlayer(v, playerID) })
}

func (s *Session) SetStackSplit(split rules.MoveSplit) State {
	return s.apply("split", func(st State, v rules.View) State { return st.SetStackSplit(v, split) })
}

// Submit wraps the finalized selection into a command and consumes it.
// An identical resubmission within the ledger TTL reuses the request id.
func (s *Session) Submit() (submit.Command, error) {
	s.mu.Lock()
	if !s.state.IsActive() {
		s.mu.Unlock()
		return submit.Command{}, ErrNoSelection
	}
	if !s.ctx.Phase.IsInteractive() {
		phase := s.ctx.Phase
		s.mu.Unlock()
		return submit.Command{}, fmt.Errorf("%w: %s", ErrNotInteractive, phase)
	}
	payload, _ := s.state.Payload()
	cmd, err := submit.Build(s.view.PlayerID, s.state.CardID(), s.state.Kind(), payload)
	if err != nil {
		s.mu.Unlock()
		return submit.Command{}, err
	}
	cmd.Round = s.ctx.Round
	cmd, reused := s.ledger.Assign(cmd)
	meta := s.metaLocked()
	s.state = s.state.Clear()
	s.ctx.SelectedID = ""
	s.mu.Unlock()

	s.logger.Info().
		Str("request_id", cmd.RequestID).
		Str("card_id", cmd.CardID).
		Str("kind", string(cmd.Kind)).
		Bool("resubmitted", reused).
		Msg("Action submitted")
	s.publish(events.NewActionSubmittedEvent(s.id, meta, cmd.RequestID, cmd.CardID, string(cmd.Kind)))
	return cmd, nil
}

// apply runs one pick transition and publishes what changed
func (s *Session) apply(picked string, fn func(State, rules.View) State) State {
	s.mu.Lock()
	prev := s.state
	next := fn(prev, s.view)
	s.state = next
	meta := s.metaLocked()
	s.mu.Unlock()

	if !next.IsActive() || next.sameAs(prev) {
		return next
	}

	kind := string(next.Kind())
	changed := events.NewSelectionChangedEvent(s.id, meta, next.CardID(), kind, picked, next.Ready())
	changed.PathSteps = len(next.pending.Path)
	changed.Edges = len(next.pending.Edges)
	pending := []events.Event{changed}

	if payload, ok := next.Payload(); ok && !reflect.DeepEqual(payload, prev.payload) {
		s.logger.Debug().Str("card_id", next.CardID()).Str("kind", kind).Msg("Selection completed")
		pending = append(pending, events.NewSelectionCompletedEvent(s.id, meta, next.CardID(), kind, payload))
	}
	s.publish(pending...)
	return next
}

// resetLocked applies trigger to the state and returns the event to publish
func (s *Session) resetLocked(trigger Trigger) []events.Event {
	if trigger == TriggerNone || !s.state.IsActive() {
		return nil
	}
	cardID := s.state.CardID()
	s.state = s.state.Reset(trigger)
	s.logger.Debug().Str("card_id", cardID).Str("reason", trigger.String()).Msg("Selection reset")
	return []events.Event{events.NewSelectionResetEvent(s.id, s.metaLocked(), cardID, trigger.String())}
}

func (s *Session) metaLocked() events.EventMetadata {
	return events.EventMetadata{PlayerID: s.view.PlayerID, Round: s.ctx.Round}
}

func (s *Session) publish(evts ...events.Event) {
	if s.bus == nil {
		return
	}
	for _, e := range evts {
		s.bus.Publish(e)
	}
}

// sameAs reports whether two states hold the same picks
func (s State) sameAs(o State) bool {
	return s.cardID == o.cardID &&
		s.unitID == o.unitID &&
		s.choice == o.choice &&
		s.playerID == o.playerID &&
		reflect.DeepEqual(s.pending, o.pending) &&
		reflect.DeepEqual(s.payload, o.payload)
}
