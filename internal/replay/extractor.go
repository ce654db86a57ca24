package replay

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
	"github.com/mitchelldurbincs/bridgefront/internal/game/events"
)

// Sequence is one closed combat, from its start entry to its end entry
type Sequence struct {
	ID         string               `json:"id"`
	HexKey     core.HexKey          `json:"hexKey"`
	StartIndex int                  `json:"startIndex"`
	EndIndex   int                  `json:"endIndex"`
	Start      events.CombatStart   `json:"start"`
	Rounds     []events.CombatRound `json:"rounds"`
	End        events.CombatEnd     `json:"end"`
}

// SequenceID derives the stable id of the combat started at index on hex
func SequenceID(hex core.HexKey, startIndex int) string {
	return fmt.Sprintf("%s-%d", hex, startIndex)
}

// Stats counts what the recognizer did with the entries it saw
type Stats struct {
	Entries   int `json:"entries"`
	Sequences int `json:"sequences"`
	// DroppedStarts are unparseable combat starts, ignored while idle
	DroppedStarts int `json:"droppedStarts"`
	// DroppedRounds are unparseable rounds, or rounds outside any combat
	DroppedRounds int `json:"droppedRounds"`
	// Discarded are combats abandoned by a bad end entry or a restart
	Discarded int `json:"discarded"`
}

type recognizerState int

const (
	stateIdle recognizerState = iota
	stateAccumulating
)

// recognizer is the idle/accumulating state machine. A combat closes on a
// parseable end entry, which emits the sequence and returns to idle.
type recognizer struct {
	state  recognizerState
	acc    Sequence
	stats  Stats
	logger zerolog.Logger
}

func (r *recognizer) step(index int, e events.LogEntry) (Sequence, bool) {
	r.stats.Entries++
	switch e.Type {
	case events.LogCombatStart:
		start, err := events.ParseCombatStart(e)
		if err != nil {
			r.stats.DroppedStarts++
			r.logger.Debug().Err(err).Int("index", index).Msg("Ignoring combat start")
			return Sequence{}, false
		}
		if r.state == stateAccumulating {
			r.stats.Discarded++
			r.logger.Debug().Str("sequence_id", r.acc.ID).Int("index", index).Msg("Combat restarted before it ended")
		}
		r.state = stateAccumulating
		r.acc = Sequence{
			ID:         SequenceID(start.HexKey, index),
			HexKey:     start.HexKey,
			StartIndex: index,
			Start:      start,
		}

	case events.LogCombatRound:
		if r.state != stateAccumulating {
			r.stats.DroppedRounds++
			return Sequence{}, false
		}
		round, err := events.ParseCombatRound(e)
		if err != nil {
			r.stats.DroppedRounds++
			r.logger.Debug().Err(err).Int("index", index).Str("sequence_id", r.acc.ID).Msg("Dropping combat round")
			return Sequence{}, false
		}
		r.acc.Rounds = append(r.acc.Rounds, round)

	case events.LogCombatEnd:
		if r.state != stateAccumulating {
			return Sequence{}, false
		}
		r.state = stateIdle
		end, err := events.ParseCombatEnd(e)
		if err != nil {
			r.stats.Discarded++
			r.logger.Debug().Err(err).Int("index", index).Str("sequence_id", r.acc.ID).Msg("Discarding combat")
			r.acc = Sequence{}
			return Sequence{}, false
		}
		seq := r.acc
		seq.EndIndex = index
		seq.End = end
		if seq.Rounds == nil {
			seq.Rounds = []events.CombatRound{}
		}
		r.acc = Sequence{}
		r.stats.Sequences++
		return seq, true
	}
	return Sequence{}, false
}

// Extractor segments an ordered log into combat sequences
type Extractor struct {
	logger zerolog.Logger
}

func NewExtractor(logger zerolog.Logger) *Extractor {
	return &Extractor{logger: logger.With().Str("component", "replay").Logger()}
}

// Extract scans entries in log order and returns every closed combat.
// The result depends only on entries, so running it again over a longer log
// reproduces every earlier sequence unchanged.
func (x *Extractor) Extract(entries []events.LogEntry) ([]Sequence, Stats) {
	r := recognizer{logger: x.logger}
	var out []Sequence
	for i, e := range entries {
		if seq, ok := r.step(i, e); ok {
			out = append(out, seq)
		}
	}
	return out, r.stats
}

// Extract runs a quiet extractor over entries
func Extract(entries []events.LogEntry) []Sequence {
	seqs, _ := NewExtractor(zerolog.Nop()).Extract(entries)
	return seqs
}
