package simulation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"woodsim/internal/domain/game"
	gameuc "woodsim/internal/usecase/game"
)

type Engine interface {
	PlayOut(ctx context.Context, recordPath string) (string, error)
}

type RecordWriter interface {
	Write(index int, whiteStone string) (string, error)
}

type PositionSource interface {
	CornerPosition() string
}

// Observer is told about every finished game. Errors are logged and never
// stop the run.
type Observer interface {
	Observe(ctx context.Context, result game.Result) error
}

// Finisher is implemented by observers that want the final summary.
type Finisher interface {
	Finish(ctx context.Context, summary game.Summary) error
}

// Progress receives every game together with the tally including it.
type Progress interface {
	GameFinished(result game.Result, tally game.Summary)
}

type Simulator struct {
	engine    Engine
	records   RecordWriter
	positions PositionSource
	log       *zap.SugaredLogger

	runID     string
	workers   int
	observers []Observer
	progress  Progress
	now       func() time.Time
	tally     *Tally
}

type Option func(*Simulator)

func WithWorkers(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithRunID(id string) Option {
	return func(s *Simulator) { s.runID = id }
}

func WithObservers(observers ...Observer) Option {
	return func(s *Simulator) { s.observers = append(s.observers, observers...) }
}

func WithProgress(p Progress) Option {
	return func(s *Simulator) { s.progress = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Simulator) { s.now = now }
}

func NewSimulator(engine Engine, records RecordWriter, positions PositionSource, log *zap.SugaredLogger, opts ...Option) *Simulator {
	s := &Simulator{
		engine:    engine,
		records:   records,
		positions: positions,
		log:       log,
		runID:     uuid.New().String(),
		workers:   1,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) RunID() string {
	return s.runID
}

// Tally is nil until Run has been called.
func (s *Simulator) Tally() *Tally {
	return s.tally
}

// Prepare creates the tally ahead of Run so that observers started before
// the loop can read it.
func (s *Simulator) Prepare(games int) *Tally {
	s.tally = NewTally(s.runID, games, s.now)
	return s.tally
}

// Run plays games one after another (or on the configured number of
// workers) and returns the final tally. A cancelled context stops the run
// after the games in flight; the error is then ctx.Err().
func (s *Simulator) Run(ctx context.Context, games int) (game.Summary, error) {
	if s.tally == nil || s.tally.wanted != games {
		s.Prepare(games)
	}
	s.log.Infow("simulation started", "run_id", s.runID, "games", games, "workers", s.workers)

	var err error
	if s.workers == 1 {
		err = s.runSequential(ctx, games)
	} else {
		err = s.runParallel(ctx, games)
	}

	s.tally.Stop()
	summary := s.tally.Snapshot()
	s.finish(context.WithoutCancel(ctx), summary)

	s.log.Infow("simulation finished", "run_id", s.runID, "games", summary.Total, "elapsed", summary.Elapsed)
	return summary, err
}

func (s *Simulator) runSequential(ctx context.Context, games int) error {
	for i := 0; i < games; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		result := s.PlayGame(ctx, i)
		if ctx.Err() != nil && result.Fallback {
			// interrupted mid-game, the outcome is meaningless
			return ctx.Err()
		}
		s.record(ctx, result)
	}
	return nil
}

func (s *Simulator) runParallel(ctx context.Context, games int) error {
	g, gctx := errgroup.WithContext(ctx)

	indices := make(chan int)
	results := make(chan game.Result)

	g.Go(func() error {
		defer close(indices)
		for i := 0; i < games; i++ {
			select {
			case <-gctx.Done():
				return nil
			case indices <- i:
			}
		}
		return nil
	})

	var wg = &sync.WaitGroup{}
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for i := range indices {
				result := s.PlayGame(gctx, i)
				if gctx.Err() != nil && result.Fallback {
					return nil
				}
				results <- result
			}
			return nil
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	for result := range results {
		s.record(ctx, result)
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// PlayGame runs one full cycle: place the corner stone, write the record,
// let the engine finish it and classify the winner. It never fails: every
// problem ends in the default outcome.
func (s *Simulator) PlayGame(ctx context.Context, index int) game.Result {
	started := s.now()
	stone := s.positions.CornerPosition()
	result := game.Result{
		RunID:      s.runID,
		GameIndex:  index,
		WhiteStone: stone,
	}
	s.log.Debugw("game started", "game", index, "white_stone", stone)

	path, err := s.records.Write(index, stone)
	if err != nil {
		s.log.Errorw("failed to write game record", "game", index, "error", err)
		result.Outcome, result.Fallback = game.DefaultOutcome, true
		result.EngineErr = err.Error()
		return s.finishResult(result, started)
	}
	result.RecordPath = path

	output, err := s.engine.PlayOut(ctx, path)
	s.log.Debugw("engine output", "game", index, "output", output)
	result.Outcome, result.Fallback = gameuc.Classify(output, err)

	switch {
	case err != nil:
		result.EngineErr = err.Error()
		s.log.Warnw("engine call failed, using default outcome",
			"game", index, "outcome", result.Outcome, "error", err)
	case result.Fallback:
		s.log.Warnw("no result found in engine output, using default outcome",
			"game", index, "outcome", result.Outcome)
	}
	return s.finishResult(result, started)
}

func (s *Simulator) finishResult(result game.Result, started time.Time) game.Result {
	result.FinishedAt = s.now()
	result.Duration = result.FinishedAt.Sub(started)
	return result
}

func (s *Simulator) record(ctx context.Context, result game.Result) {
	s.tally.Add(result)
	if s.progress != nil {
		s.progress.GameFinished(result, s.tally.Snapshot())
	}
	for _, o := range s.observers {
		if err := o.Observe(ctx, result); err != nil {
			s.log.Warnw("result observer failed", "game", result.GameIndex, "error", err)
		}
	}
}

func (s *Simulator) finish(ctx context.Context, summary game.Summary) {
	for _, o := range s.observers {
		f, ok := o.(Finisher)
		if !ok {
			continue
		}
		if err := f.Finish(ctx, summary); err != nil {
			s.log.Warnw("result observer failed to store summary", "error", err)
		}
	}
}
