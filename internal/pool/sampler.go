// Package pool implements the two-stage random sampling used to serve
// question sets: a pool drawn from every question of an exam, then a
// serving set drawn from that pool.
package pool

import (
	"errors"
	"math/rand/v2"
)

const (
	DefaultPoolCap    = 100
	DefaultServingCap = 50
)

var ErrNoQuestionsAvailable = errors.New("no questions available")

type Selection struct {
	Pool           []uint
	Serving        []uint
	TotalAvailable int
}

// Rand is the subset of *rand.Rand the sampler needs.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Sample draws with the package-level generator, which is safe for concurrent use.
func Sample(ids []uint, poolCap, servingCap int) (Selection, error) {
	return SampleWith(globalRand{}, ids, poolCap, servingCap)
}

// SampleWith is Sample with an explicit source. The input slice is never modified.
func SampleWith(r Rand, ids []uint, poolCap, servingCap int) (Selection, error) {
	if poolCap <= 0 {
		poolCap = DefaultPoolCap
	}
	if servingCap <= 0 {
		servingCap = DefaultServingCap
	}

	distinct := dedupe(ids)
	if len(distinct) == 0 {
		return Selection{}, ErrNoQuestionsAvailable
	}

	poolIDs := draw(r, distinct, poolCap)

	// draw works on its own copy, so the pool keeps its order.
	serving := draw(r, poolIDs, servingCap)
	shuffle(r, serving)

	return Selection{
		Pool:           poolIDs,
		Serving:        serving,
		TotalAvailable: len(distinct),
	}, nil
}

// draw returns min(k, len(src)) distinct elements of src chosen uniformly,
// using a partial Fisher-Yates over a copy.
func draw(r Rand, src []uint, k int) []uint {
	buf := make([]uint, len(src))
	copy(buf, src)
	if k > len(buf) {
		k = len(buf)
	}
	for i := 0; i < k; i++ {
		j := i + r.IntN(len(buf)-i)
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf[:k:k]
}

func shuffle(r Rand, s []uint) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
