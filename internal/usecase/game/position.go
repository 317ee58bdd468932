package game

import (
	"math/rand"
	"sync"
	"time"
)

// Wood rule: White's stone goes on the second row, next to one of the corners.
var (
	CornerColumns = []byte{'a', 'b', 's', 't'}
	CornerRow     = byte('b')
)

// PositionGenerator picks the White corner stone. It is safe for
// concurrent use.
type PositionGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewPositionGenerator seeds from the clock when seed is 0.
func NewPositionGenerator(seed int64) *PositionGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PositionGenerator{rnd: rand.New(rand.NewSource(seed))}
}

// CornerPosition returns a two letter SGF coordinate, column first.
func (p *PositionGenerator) CornerPosition() string {
	p.mu.Lock()
	col := CornerColumns[p.rnd.Intn(len(CornerColumns))]
	p.mu.Unlock()
	return string([]byte{col, CornerRow})
}
