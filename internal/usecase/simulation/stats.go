package simulation

import "math"

// BlackScore is Black's share of decided games, draws counted as half.
func BlackScore(black, white, draws int) float64 {
	games := black + white + draws
	if games == 0 {
		return 0
	}
	return (float64(black) + 0.5*float64(draws)) / float64(games)
}

// LOS is the likelihood of superiority of Black over White.
// https://www.chessprogramming.org/Match_Statistics
func LOS(black, white int) float64 {
	if black+white == 0 {
		return 0.5
	}
	return 0.5 + 0.5*math.Erf(float64(black-white)/math.Sqrt(2*float64(black+white)))
}
