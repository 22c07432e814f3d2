// Package idgen produces the run identifiers and the per-definition
// identifiers stamped on registered support code.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// Generator produces unique identifiers.
type Generator interface {
	Generate() string
}

// NewRunID returns a globally unique identifier for a build cycle.
func NewRunID() string {
	return xid.New().String()
}

// NewIncrementing returns a generator whose ids are prefix-1, prefix-2, ...
// An empty prefix yields bare counters.
func NewIncrementing(prefix string) Generator {
	return &incrementingGenerator{prefix: prefix}
}

type incrementingGenerator struct {
	prefix string
	next   uint64
}

func (g *incrementingGenerator) Generate() string {
	n := strconv.FormatUint(atomic.AddUint64(&g.next, 1), 10)
	if g.prefix == "" {
		return n
	}
	return g.prefix + "-" + n
}
