package scheduler

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/alexanderramin/jt/internal/domain"
)

// RandomChooser picks a candidate uniformly at random.
type RandomChooser struct {
	rng *rand.Rand
}

// NewRandomChooser returns a chooser drawing from rng, or from a
// time-seeded source when rng is nil.
func NewRandomChooser(rng *rand.Rand) *RandomChooser {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>32))
	}
	return &RandomChooser{rng: rng}
}

func (c *RandomChooser) ChooseTask(_ context.Context, _ time.Time, candidates []domain.Task, _, _ time.Duration) (domain.Task, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	return candidates[c.rng.IntN(len(candidates))], nil
}
