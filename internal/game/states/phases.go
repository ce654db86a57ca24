package states

import (
	"fmt"
	"slices"
)

// GamePhase is the authoritative phase of a game as observed by the client
type GamePhase int

const (
	// PhaseLobby - Players joining, configuration
	PhaseLobby GamePhase = iota

	// PhaseSetup - Capitals and starting units placed
	PhaseSetup

	// PhaseMarket - Bidding for cards
	PhaseMarket

	// PhaseAction - Players play cards and basic actions; the only interactive phase
	PhaseAction

	// PhaseResolution - Moves and combats resolve
	PhaseResolution

	// PhaseCleanup - Upkeep before the round counter advances
	PhaseCleanup

	// PhaseEnded - Final state
	PhaseEnded
)

var phaseNames = map[GamePhase]string{
	PhaseLobby:      "lobby",
	PhaseSetup:      "setup",
	PhaseMarket:     "market",
	PhaseAction:     "action",
	PhaseResolution: "resolution",
	PhaseCleanup:    "cleanup",
	PhaseEnded:      "ended",
}

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(p))
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnded
}

// IsInteractive returns true if players may pick targets in this phase.
// Leaving it resets any pending selection.
func (p GamePhase) IsInteractive() bool {
	return p == PhaseAction
}

// AllowedTransitions returns the phases the engine may move to from p
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseLobby:
		return []GamePhase{PhaseSetup}
	case PhaseSetup:
		return []GamePhase{PhaseMarket, PhaseEnded}
	case PhaseMarket:
		return []GamePhase{PhaseAction, PhaseEnded}
	case PhaseAction:
		return []GamePhase{PhaseResolution, PhaseEnded}
	case PhaseResolution:
		return []GamePhase{PhaseCleanup, PhaseEnded}
	case PhaseCleanup:
		return []GamePhase{PhaseMarket, PhaseEnded}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	return slices.Contains(p.AllowedTransitions(), target)
}

// ParsePhase converts a phase name to a GamePhase
func ParsePhase(s string) (GamePhase, error) {
	for p, name := range phaseNames {
		if name == s {
			return p, nil
		}
	}
	return PhaseLobby, fmt.Errorf("unknown game phase %q", s)
}

// MarshalText encodes the phase by name
func (p GamePhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name
func (p *GamePhase) UnmarshalText(text []byte) error {
	parsed, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
