package game

import (
	"strings"

	"woodsim/internal/domain/game"
)

var (
	blackWinMarkers = []string{"black wins", "b+", "black+"}
	whiteWinMarkers = []string{"white wins", "w+", "white+"}
)

// ClassifyOutput reads the engine's free text. Black wins only when a black
// marker is present and no white marker is: ties and unclear output go to
// White under the Wood rule. The second value reports whether any marker was
// found at all.
func ClassifyOutput(output string) (game.Outcome, bool) {
	lower := strings.ToLower(output)
	black := containsAny(lower, blackWinMarkers)
	white := containsAny(lower, whiteWinMarkers)

	switch {
	case black && !white:
		return game.OutcomeBlack, true
	case white:
		return game.OutcomeWhite, true
	default:
		return game.DefaultOutcome, false
	}
}

// Classify maps an engine call to an outcome. Any engine error yields the
// default outcome; fallback is set whenever the outcome was not read from a
// recognised marker.
func Classify(output string, engineErr error) (outcome game.Outcome, fallback bool) {
	if engineErr != nil {
		return game.DefaultOutcome, true
	}
	outcome, matched := ClassifyOutput(output)
	return outcome, !matched
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
