package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"woodsim/internal/domain/game"
)

const rule = 60

// TextReporter prints one line per game and the running percentages.
type TextReporter struct {
	mu  sync.Mutex
	out io.Writer
}

func NewTextReporter(out io.Writer) *TextReporter {
	return &TextReporter{out: out}
}

func (r *TextReporter) GameFinished(result game.Result, tally game.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "Game %d | board: %dx%d | white stone: %s | result: %s\n",
		result.GameIndex+1, game.BoardSize, game.BoardSize, result.WhiteStone, result.Outcome)
	fmt.Fprintf(r.out, "Current: total %d | black %d (%.2f%%) | white %d (%.2f%%)\n",
		tally.Total,
		tally.Counts[game.OutcomeBlack], tally.Percent(game.OutcomeBlack),
		tally.Counts[game.OutcomeWhite], tally.Percent(game.OutcomeWhite))
}

// WriteSummary prints the final report.
func WriteSummary(out io.Writer, s game.Summary) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Wood rule simulation results:")
	fmt.Fprintln(out, strings.Repeat("=", rule))
	for _, line := range SummaryLines(s) {
		if line == "" {
			fmt.Fprintln(out, strings.Repeat("-", rule))
			continue
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, strings.Repeat("=", rule))
}

// SummaryLines is the body of the report; an empty string separates the
// outcome block from the timing block.
func SummaryLines(s game.Summary) []string {
	lines := []string{
		fmt.Sprintf("Run: %s", s.RunID),
		fmt.Sprintf("Total games: %d", s.Total),
		fmt.Sprintf("Black wins: %d (%.2f%%)", s.Counts[game.OutcomeBlack], s.Percent(game.OutcomeBlack)),
		fmt.Sprintf("White wins: %d (%.2f%%)", s.Counts[game.OutcomeWhite], s.Percent(game.OutcomeWhite)),
		fmt.Sprintf("Draws: %d (%.2f%%)", s.Counts[game.OutcomeDraw], s.Percent(game.OutcomeDraw)),
		fmt.Sprintf("Engine fallbacks: %d", s.Fallbacks),
		fmt.Sprintf("Black score: %.1f%%", s.BlackScore*100),
		fmt.Sprintf("Black LOS: %.1f%%", s.BlackLOS*100),
	}
	if !s.Completed {
		lines = append(lines, fmt.Sprintf("Interrupted after %d of %d games", s.Total, s.GamesWanted))
	}
	lines = append(lines, "",
		fmt.Sprintf("Total time: %.2fs", s.Elapsed.Seconds()),
		fmt.Sprintf("Average per game: %.4fs", s.AvgPerGame().Seconds()),
		fmt.Sprintf("Throughput: %.2f games/s", s.Throughput()),
	)
	return lines
}
