// Package generator creates randomized problem instances. Randomness
// is always seeded explicitly so that generated instances are
// reproducible.
package generator

import (
	"math/rand"
	"strconv"
)

// IDProvider hands out identifiers with a fixed prefix and a running
// counter.
type IDProvider struct {
	prefix  string
	counter int
}

// NewIDProvider constructs an IDProvider.
func NewIDProvider(prefix string) *IDProvider {
	return &IDProvider{prefix: prefix}
}

// Next returns the next identifier.
func (p *IDProvider) Next() string {
	id := p.prefix + strconv.Itoa(p.counter)
	p.counter++
	return id
}

// generator is the shared randomness of all instance generators.
type generator struct {
	random *rand.Rand
}

func newGenerator(seed int64) generator {
	return generator{random: rand.New(rand.NewSource(seed))}
}

// randRange returns a random int in [min, max].
func (g generator) randRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + g.random.Intn(max-min+1)
}
