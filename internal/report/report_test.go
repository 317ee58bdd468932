package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"woodsim/internal/domain/game"
)

func summary() game.Summary {
	return game.Summary{
		RunID: "run-7",
		Total: 4,
		Counts: map[game.Outcome]int{
			game.OutcomeBlack: 1,
			game.OutcomeWhite: 3,
			game.OutcomeDraw:  0,
		},
		Fallbacks:   1,
		Elapsed:     2 * time.Second,
		StartedAt:   time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC),
		BlackScore:  0.25,
		BlackLOS:    0.16,
		Completed:   true,
		GamesWanted: 4,
	}
}

func TestTextReporter_GameFinished(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	NewTextReporter(out).GameFinished(
		game.Result{GameIndex: 0, WhiteStone: "sb", Outcome: game.OutcomeWhite},
		game.Summary{Total: 1, Counts: map[game.Outcome]int{game.OutcomeWhite: 1}},
	)

	require.Equal(t,
		"Game 1 | board: 19x19 | white stone: sb | result: white\n"+
			"Current: total 1 | black 0 (0.00%) | white 1 (100.00%)\n",
		out.String())
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	WriteSummary(out, summary())

	text := out.String()
	require.Contains(t, text, "Total games: 4")
	require.Contains(t, text, "Black wins: 1 (25.00%)")
	require.Contains(t, text, "White wins: 3 (75.00%)")
	require.Contains(t, text, "Draws: 0 (0.00%)")
	require.Contains(t, text, "Engine fallbacks: 1")
	require.Contains(t, text, "Black score: 25.0%")
	require.Contains(t, text, "Black LOS: 16.0%")
	require.Contains(t, text, "Average per game: 0.5000s")
	require.Contains(t, text, "Throughput: 2.00 games/s")
	require.NotContains(t, text, "Interrupted")
}

func TestWriteSummary_Interrupted(t *testing.T) {
	t.Parallel()
	s := summary()
	s.Completed = false
	s.GamesWanted = 10
	out := &bytes.Buffer{}

	WriteSummary(out, s)

	require.Contains(t, out.String(), "Interrupted after 4 of 10 games")
}

func TestWritePDF(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "report.pdf")

	require.NoError(t, WritePDF(summary(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}
