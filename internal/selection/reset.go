package selection

import (
	"github.com/mitchelldurbincs/bridgefront/internal/game/events"
	"github.com/mitchelldurbincs/bridgefront/internal/game/states"
)

// Trigger is a reason pending selection state must be discarded
type Trigger int

const (
	TriggerNone Trigger = iota
	// TriggerDeselected - the player cleared the chosen card or action
	TriggerDeselected
	// TriggerPhaseEnded - the game left the interactive phase
	TriggerPhaseEnded
	// TriggerRoundAdvanced - the round counter moved forward
	TriggerRoundAdvanced
)

func (t Trigger) String() string {
	switch t {
	case TriggerDeselected:
		return events.ResetDeselected
	case TriggerPhaseEnded:
		return events.ResetPhaseEnded
	case TriggerRoundAdvanced:
		return events.ResetRoundAdvanced
	default:
		return "none"
	}
}

// Context is what the surrounding client knows about the game between snapshots
type Context struct {
	// SelectedID is the chosen card or action, empty when nothing is chosen
	SelectedID string
	Phase      states.GamePhase
	Round      int
}

// DetectTrigger compares two consecutive contexts. When several triggers fire
// at once the deselect wins, then the phase change.
func DetectTrigger(prev, next Context) Trigger {
	switch {
	case prev.SelectedID != "" && next.SelectedID == "":
		return TriggerDeselected
	case prev.Phase.IsInteractive() && !next.Phase.IsInteractive():
		return TriggerPhaseEnded
	case next.Round > prev.Round:
		return TriggerRoundAdvanced
	default:
		return TriggerNone
	}
}

// Reset applies a trigger. Deselecting drops the active kind; the other
// triggers clear every pending field and the payload unconditionally.
func (s State) Reset(t Trigger) State {
	switch t {
	case TriggerDeselected:
		return s.Clear()
	case TriggerPhaseEnded, TriggerRoundAdvanced:
		return s.Cancel()
	default:
		return s
	}
}
