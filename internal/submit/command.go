package submit

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/bridgefront/internal/targeting"
)

// Command is the action submission handed to the transport layer.
// The engine re-validates Payload; it is a hint, never trusted.
type Command struct {
	RequestID string            `json:"requestId"`
	PlayerID  string            `json:"playerId"`
	CardID    string            `json:"cardId"`
	Kind      targeting.Kind    `json:"kind"`
	Payload   targeting.Payload `json:"targets,omitempty"`
	// Round is the game round the selection was made in. The same intent in a
	// later round is a new action, not a retry.
	Round int `json:"round"`
}

// Build wraps a finalized selection into a command with a fresh request id.
// Errors are gRPC status errors so transports can return them unchanged.
func Build(playerID, cardID string, kind targeting.Kind, payload targeting.Payload) (Command, error) {
	if playerID == "" {
		return Command{}, status.Error(codes.PermissionDenied, "spectators cannot submit actions")
	}
	if cardID == "" {
		return Command{}, status.Error(codes.InvalidArgument, "card id required")
	}
	if payload == nil {
		if kind != targeting.KindNone {
			return Command{}, status.Errorf(codes.FailedPrecondition, "selection for %s (%s) is incomplete", cardID, kind)
		}
	} else {
		if payload.Kind() != kind {
			return Command{}, status.Errorf(codes.InvalidArgument, "payload kind %s does not match %s", payload.Kind(), kind)
		}
		if err := payload.Validate(); err != nil {
			return Command{}, status.Errorf(codes.InvalidArgument, "invalid %s payload: %v", kind, err)
		}
	}

	return Command{
		RequestID: uuid.NewString(),
		PlayerID:  playerID,
		CardID:    cardID,
		Kind:      kind,
		Payload:   payload,
	}, nil
}

// ToStruct encodes the command for the engine's protobuf transport
func (c Command) ToStruct() (*structpb.Struct, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal command: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("unmarshal command: %w", err)
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode command: %w", err)
	}
	return s, nil
}

// fingerprint identifies the intent of a command regardless of its request id
func (c Command) fingerprint() string {
	payload, _ := json.Marshal(c.Payload)
	return c.CardID + "\x00" + string(c.Kind) + "\x00" + string(payload)
}
