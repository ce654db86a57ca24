package events

// Event type constants
const (
	TypeSelectionBegun     = "selection.begun"
	TypeSelectionChanged   = "selection.changed"
	TypeSelectionCompleted = "selection.completed"
	TypeSelectionReset     = "selection.reset"
	TypeActionSubmitted    = "action.submitted"
	TypeStateTransition    = "state.transition"
)

// Reset reasons carried by SelectionResetEvent
const (
	ResetCancelled     = "cancelled"
	ResetDeselected    = "deselected"
	ResetPhaseEnded    = "phase_ended"
	ResetRoundAdvanced = "round_advanced"
)

// SelectionBegunEvent is published when a target-requiring card or action is chosen
type SelectionBegunEvent struct {
	BaseEvent
	Metadata EventMetadata
	CardID   string
	Kind     string
}

func NewSelectionBegunEvent(sessionID string, meta EventMetadata, cardID, kind string) *SelectionBegunEvent {
	return &SelectionBegunEvent{
		BaseEvent: newBase(TypeSelectionBegun, sessionID),
		Metadata:  meta,
		CardID:    cardID,
		Kind:      kind,
	}
}

// SelectionChangedEvent is published after every pick that changes pending state
type SelectionChangedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	CardID    string
	Kind      string
	Picked    string
	Ready     bool
	PathSteps int
	Edges     int
}

func NewSelectionChangedEvent(sessionID string, meta EventMetadata, cardID, kind, picked string, ready bool) *SelectionChangedEvent {
	return &SelectionChangedEvent{
		BaseEvent: newBase(TypeSelectionChanged, sessionID),
		Metadata:  meta,
		CardID:    cardID,
		Kind:      kind,
		Picked:    picked,
		Ready:     ready,
	}
}

// SelectionCompletedEvent is published when a pick produces a finalized payload
type SelectionCompletedEvent struct {
	BaseEvent
	Metadata EventMetadata
	CardID   string
	Kind     string
	Payload  any
}

func NewSelectionCompletedEvent(sessionID string, meta EventMetadata, cardID, kind string, payload any) *SelectionCompletedEvent {
	return &SelectionCompletedEvent{
		BaseEvent: newBase(TypeSelectionCompleted, sessionID),
		Metadata:  meta,
		CardID:    cardID,
		Kind:      kind,
		Payload:   payload,
	}
}

// SelectionResetEvent is published when pending selection state is discarded
type SelectionResetEvent struct {
	BaseEvent
	Metadata EventMetadata
	CardID   string
	Reason   string
}

func NewSelectionResetEvent(sessionID string, meta EventMetadata, cardID, reason string) *SelectionResetEvent {
	return &SelectionResetEvent{
		BaseEvent: newBase(TypeSelectionReset, sessionID),
		Metadata:  meta,
		CardID:    cardID,
		Reason:    reason,
	}
}

// ActionSubmittedEvent is published when a submission envelope is handed to the transport
type ActionSubmittedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	RequestID string
	CardID    string
	Kind      string
}

func NewActionSubmittedEvent(sessionID string, meta EventMetadata, requestID, cardID, kind string) *ActionSubmittedEvent {
	return &ActionSubmittedEvent{
		BaseEvent: newBase(TypeActionSubmitted, sessionID),
		Metadata:  meta,
		RequestID: requestID,
		CardID:    cardID,
		Kind:      kind,
	}
}

// StateTransitionEvent is published when the observed game phase or round changes
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	FromRound int
	ToRound   int
	Expected  bool
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(sessionID, fromPhase, toPhase string, fromRound, toRound int, expected bool) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, sessionID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		FromRound: fromRound,
		ToRound:   toRound,
		Expected:  expected,
	}
}
