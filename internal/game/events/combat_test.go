package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
)

func entry(t string, payload string) LogEntry {
	if payload == "" {
		return LogEntry{Type: t}
	}
	return LogEntry{Type: t, Payload: json.RawMessage(payload)}
}

func TestParseCombatStart(t *testing.T) {
	start, err := ParseCombatStart(entry(LogCombatStart,
		`{"hexKey":"1,-1","attacker":{"playerId":"p1","forces":3,"champions":[{"unitId":"c1","hp":4,"maxHp":5}]},"defender":{"playerId":"p2","forces":2}}`))
	require.NoError(t, err)
	assert.Equal(t, core.HexKey("1,-1"), start.HexKey)
	assert.Equal(t, 3, start.Attacker.Forces)
	assert.Equal(t, []ChampionSummary{{UnitID: "c1", HP: 4, MaxHP: 5}}, start.Attacker.Champions)
	assert.Equal(t, "p2", start.Defender.PlayerID)

	tests := []struct {
		name  string
		entry LogEntry
	}{
		{"no payload", entry(LogCombatStart, "")},
		{"null payload", entry(LogCombatStart, "null")},
		{"wrong type", entry(LogCombatEnd, `{"hexKey":"0,0","attacker":{"playerId":"p1"},"defender":{"playerId":"p2"}}`)},
		{"bad hex", entry(LogCombatStart, `{"hexKey":"north","attacker":{"playerId":"p1"},"defender":{"playerId":"p2"}}`)},
		{"missing defender", entry(LogCombatStart, `{"hexKey":"0,0","attacker":{"playerId":"p1"}}`)},
		{"not an object", entry(LogCombatStart, `[1,2]`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCombatStart(tt.entry)
			assert.ErrorIs(t, err, ErrMalformedEntry)
		})
	}
}

func TestParseCombatRound(t *testing.T) {
	round, err := ParseCombatRound(entry(LogCombatRound,
		`{"hexKey":"0,0","round":1,"attacker":{"dice":[6,2],"hits":1},"defender":{"dice":[1],"hits":0},`+
			`"hitsToDefender":{"forces":0,"champions":{"c9":1}}}`))
	require.NoError(t, err)
	assert.Equal(t, 1, round.Round)
	assert.Equal(t, []int{6, 2}, round.Attacker.Dice)
	assert.Equal(t, 1, round.Attacker.Hits)
	assert.Equal(t, []int{1}, round.Defender.Dice)
	assert.Equal(t, map[string]int{"c9": 1}, round.HitsToDefender.Champions)
	assert.Equal(t, 0, round.HitsToAttacker.Forces)

	_, err = ParseCombatRound(entry(LogCombatRound, `{"hexKey":"0,0","attacker":{"dice":[3],"hits":0}}`))
	assert.ErrorIs(t, err, ErrMalformedEntry)

	_, err = ParseCombatRound(entry(LogCombatRound, `{"attacker":{"hits":1},"defender":{"dice":[]}}`))
	assert.ErrorIs(t, err, ErrMalformedEntry, "dice are required on both sides")
}

func TestParseCombatEnd(t *testing.T) {
	end, err := ParseCombatEnd(entry(LogCombatEnd,
		`{"hexKey":"0,0","winnerId":"p1","reason":"eliminated","attacker":{"playerId":"p1","forces":1},"defender":{"playerId":"p2","forces":0}}`))
	require.NoError(t, err)
	assert.Equal(t, "p1", end.WinnerID)
	assert.Equal(t, "eliminated", end.Reason)
	assert.Equal(t, 0, end.Defender.Forces)

	_, err = ParseCombatEnd(entry(LogCombatEnd, `{"hexKey":"0,0"}`))
	assert.ErrorIs(t, err, ErrMalformedEntry)
}

func TestDecodeLog(t *testing.T) {
	entries, err := DecodeLog([]byte(`[{"type":"round.start"},{"type":"combat.start","payload":{"hexKey":"0,0"}}]`))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Empty(t, entries[0].Payload)
	assert.JSONEq(t, `{"hexKey":"0,0"}`, string(entries[1].Payload))

	_, err = DecodeLog([]byte(`{}`))
	assert.Error(t, err)
}
