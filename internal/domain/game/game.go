package game

import "time"

type Outcome string

const (
	OutcomeBlack Outcome = "black"
	OutcomeWhite Outcome = "white"
	OutcomeDraw  Outcome = "draw"
)

// DefaultOutcome is used whenever the engine gives no usable answer:
// under the Wood rule equal score favors White.
const DefaultOutcome = OutcomeWhite

// Outcomes lists every label in report order.
var Outcomes = []Outcome{OutcomeBlack, OutcomeWhite, OutcomeDraw}

const (
	BoardSize = 19
	Komi      = 0
	Handicap  = 0
)

type Result struct {
	RunID      string        `json:"run_id" bson:"run_id"`
	GameIndex  int           `json:"game_index" bson:"game_index"`
	WhiteStone string        `json:"white_stone" bson:"white_stone"`
	RecordPath string        `json:"record_path" bson:"record_path"`
	Outcome    Outcome       `json:"outcome" bson:"outcome"`
	Fallback   bool          `json:"fallback" bson:"fallback"`
	EngineErr  string        `json:"engine_error,omitempty" bson:"engine_error,omitempty"`
	Duration   time.Duration `json:"duration" bson:"duration"`
	FinishedAt time.Time     `json:"finished_at" bson:"finished_at"`
}

type Summary struct {
	RunID       string          `json:"run_id" bson:"run_id"`
	Total       int             `json:"total" bson:"total"`
	Counts      map[Outcome]int `json:"counts" bson:"counts"`
	Fallbacks   int             `json:"fallbacks" bson:"fallbacks"`
	Elapsed     time.Duration   `json:"elapsed" bson:"elapsed"`
	StartedAt   time.Time       `json:"started_at" bson:"started_at"`
	BlackScore  float64         `json:"black_score" bson:"black_score"`
	BlackLOS    float64         `json:"black_los" bson:"black_los"`
	Completed   bool            `json:"completed" bson:"completed"`
	GamesWanted int             `json:"games_wanted" bson:"games_wanted"`
}

// Percent returns the share of games that ended with o, in percent.
func (s Summary) Percent(o Outcome) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Counts[o]) / float64(s.Total) * 100
}

// Throughput is games per second.
func (s Summary) Throughput() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Total) / s.Elapsed.Seconds()
}

// AvgPerGame is the mean wall time of one game.
func (s Summary) AvgPerGame() time.Duration {
	if s.Total == 0 {
		return 0
	}
	return s.Elapsed / time.Duration(s.Total)
}
