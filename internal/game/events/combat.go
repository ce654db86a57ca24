package events

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
)

// Authoritative log entry types consumed by the replay extractor
const (
	LogCombatStart = "combat.start"
	LogCombatRound = "combat.round"
	LogCombatEnd   = "combat.end"
)

var ErrMalformedEntry = errors.New("malformed log entry")

// LogEntry is one element of the authoritative, append-only game log.
// Payload is absent for entries that carry no data.
type LogEntry struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// DecodeLog parses a JSON array of log entries
func DecodeLog(data []byte) ([]LogEntry, error) {
	var entries []LogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode log: %w", err)
	}
	return entries, nil
}

type ChampionSummary struct {
	UnitID string `json:"unitId"`
	HP     int    `json:"hp"`
	MaxHP  int    `json:"maxHp"`
}

// SideSummary is one side of a battle: who fights and with what
type SideSummary struct {
	PlayerID  string            `json:"playerId"`
	Forces    int               `json:"forces"`
	Champions []ChampionSummary `json:"champions,omitempty"`
}

type CombatStart struct {
	HexKey   core.HexKey `json:"hexKey"`
	Attacker SideSummary `json:"attacker"`
	Defender SideSummary `json:"defender"`
}

// SideRoll is the dice thrown by one side in a round
type SideRoll struct {
	Dice []int `json:"dice"`
	Hits int   `json:"hits"`
}

// HitAssignment breaks the hits a side took down into forces lost and
// damage per champion unit id
type HitAssignment struct {
	Forces    int            `json:"forces"`
	Champions map[string]int `json:"champions,omitempty"`
}

type CombatRound struct {
	HexKey         core.HexKey   `json:"hexKey"`
	Round          int           `json:"round"`
	Attacker       SideRoll      `json:"attacker"`
	Defender       SideRoll      `json:"defender"`
	HitsToAttacker HitAssignment `json:"hitsToAttacker"`
	HitsToDefender HitAssignment `json:"hitsToDefender"`
}

type CombatEnd struct {
	HexKey   core.HexKey `json:"hexKey"`
	WinnerID string      `json:"winnerId,omitempty"`
	Reason   string      `json:"reason"`
	Attacker SideSummary `json:"attacker"`
	Defender SideSummary `json:"defender"`
}

func decodePayload(e LogEntry, want string, v any) error {
	if e.Type != want {
		return fmt.Errorf("%w: type %q, want %q", ErrMalformedEntry, e.Type, want)
	}
	if len(e.Payload) == 0 || string(e.Payload) == "null" {
		return fmt.Errorf("%w: %s without payload", ErrMalformedEntry, want)
	}
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedEntry, want, err)
	}
	return nil
}

func requireHex(entryType string, key core.HexKey) error {
	if _, err := core.ParseHexKey(key); err != nil {
		return fmt.Errorf("%w: %s hexKey: %v", ErrMalformedEntry, entryType, err)
	}
	return nil
}

// ParseCombatStart extracts the start summary; the hex and both player ids are required
func ParseCombatStart(e LogEntry) (CombatStart, error) {
	var out CombatStart
	if err := decodePayload(e, LogCombatStart, &out); err != nil {
		return CombatStart{}, err
	}
	if err := requireHex(LogCombatStart, out.HexKey); err != nil {
		return CombatStart{}, err
	}
	if out.Attacker.PlayerID == "" || out.Defender.PlayerID == "" {
		return CombatStart{}, fmt.Errorf("%w: %s without both sides", ErrMalformedEntry, LogCombatStart)
	}
	return out, nil
}

// ParseCombatRound extracts one round; both dice lists are required
func ParseCombatRound(e LogEntry) (CombatRound, error) {
	var wire struct {
		CombatRound
		Attacker *SideRoll `json:"attacker"`
		Defender *SideRoll `json:"defender"`
	}
	if err := decodePayload(e, LogCombatRound, &wire); err != nil {
		return CombatRound{}, err
	}
	if wire.Attacker == nil || wire.Defender == nil || wire.Attacker.Dice == nil || wire.Defender.Dice == nil {
		return CombatRound{}, fmt.Errorf("%w: %s without dice", ErrMalformedEntry, LogCombatRound)
	}
	out := wire.CombatRound
	out.Attacker = *wire.Attacker
	out.Defender = *wire.Defender
	return out, nil
}

// ParseCombatEnd extracts the final summary; the hex and the reason are required
func ParseCombatEnd(e LogEntry) (CombatEnd, error) {
	var out CombatEnd
	if err := decodePayload(e, LogCombatEnd, &out); err != nil {
		return CombatEnd{}, err
	}
	if err := requireHex(LogCombatEnd, out.HexKey); err != nil {
		return CombatEnd{}, err
	}
	if out.Reason == "" {
		return CombatEnd{}, fmt.Errorf("%w: %s without reason", ErrMalformedEntry, LogCombatEnd)
	}
	return out, nil
}
