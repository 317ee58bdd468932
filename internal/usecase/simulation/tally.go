package simulation

import (
	"sync"
	"time"

	"woodsim/internal/domain/game"
)

// Tally accumulates finished games. Only the simulation loop writes to it;
// Snapshot may be called from any goroutine.
type Tally struct {
	mu        sync.RWMutex
	runID     string
	wanted    int
	counts    map[game.Outcome]int
	total     int
	fallbacks int
	startedAt time.Time
	elapsed   time.Duration
	done      bool
	now       func() time.Time
}

func NewTally(runID string, wanted int, now func() time.Time) *Tally {
	if now == nil {
		now = time.Now
	}
	counts := make(map[game.Outcome]int, len(game.Outcomes))
	for _, o := range game.Outcomes {
		counts[o] = 0
	}
	return &Tally{
		runID:     runID,
		wanted:    wanted,
		counts:    counts,
		startedAt: now(),
		now:       now,
	}
}

func (t *Tally) Add(result game.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.counts[result.Outcome]++
	t.total++
	if result.Fallback {
		t.fallbacks++
	}
}

// Stop freezes the elapsed time.
func (t *Tally) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.done {
		t.elapsed = t.now().Sub(t.startedAt)
		t.done = true
	}
}

func (t *Tally) Snapshot() game.Summary {
	t.mu.RLock()
	defer t.mu.RUnlock()

	counts := make(map[game.Outcome]int, len(t.counts))
	for k, v := range t.counts {
		counts[k] = v
	}
	elapsed := t.elapsed
	if !t.done {
		elapsed = t.now().Sub(t.startedAt)
	}

	return game.Summary{
		RunID:       t.runID,
		Total:       t.total,
		Counts:      counts,
		Fallbacks:   t.fallbacks,
		Elapsed:     elapsed,
		StartedAt:   t.startedAt,
		BlackScore:  BlackScore(counts[game.OutcomeBlack], counts[game.OutcomeWhite], counts[game.OutcomeDraw]),
		BlackLOS:    LOS(counts[game.OutcomeBlack], counts[game.OutcomeWhite]),
		Completed:   t.done && t.total == t.wanted,
		GamesWanted: t.wanted,
	}
}
