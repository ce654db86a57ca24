package replay

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/bridgefront/internal/game/events"
)

// Follower extracts sequences incrementally from a log that only grows.
// Each call to Sync hands over the whole log and gets back the sequences
// closed since the previous call.
type Follower struct {
	mu        sync.Mutex
	r         recognizer
	next      int
	sequences []Sequence
}

func NewFollower(logger zerolog.Logger) *Follower {
	return &Follower{r: recognizer{logger: logger.With().Str("component", "replay_follower").Logger()}}
}

// Sync processes the entries past the last seen index. A log shorter than
// what was already seen means the game was replaced; the follower restarts.
func (f *Follower) Sync(log []events.LogEntry) []Sequence {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(log) < f.next {
		f.r.logger.Info().Int("seen", f.next).Int("length", len(log)).Msg("Log shrank, restarting extraction")
		f.r = recognizer{logger: f.r.logger}
		f.next = 0
		f.sequences = nil
	}

	var fresh []Sequence
	for i := f.next; i < len(log); i++ {
		if seq, ok := f.r.step(i, log[i]); ok {
			fresh = append(fresh, seq)
		}
	}
	f.next = len(log)
	f.sequences = append(f.sequences, fresh...)
	return fresh
}

// Sequences returns every sequence closed so far, in log order
func (f *Follower) Sequences() []Sequence {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Sequence, len(f.sequences))
	copy(out, f.sequences)
	return out
}

// Pending reports whether a combat has started but not yet ended
func (f *Follower) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.r.state == stateAccumulating
}

func (f *Follower) Stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.r.stats
}
