// Package chain holds the node's in-memory block history and cumulative
// mining effort. There is no persistence: a restarted node starts empty
// and re-synchronizes from peers via resolve_conflicts.
package chain

import (
	"math"
	"sync"

	"github.com/shawenyao/noded/internal/log"
	"github.com/shawenyao/noded/pkg/block"
)

// Chain is an append-only, mutex-protected sequence of block envelopes
// plus the cumulative effort E accumulated in producing them.
type Chain struct {
	mu     sync.RWMutex
	blocks []block.Envelope
	effort float64
}

// New returns an empty chain with no blocks and zero effort.
func New() *Chain {
	return &Chain{}
}

// Effort of a single block at the given difficulty: 16^(difficulty-1) —
// each additional hex digit of required leading zeros is sixteen times
// harder to find.
func Effort(difficulty int) float64 {
	return math.Pow(16, float64(difficulty-1))
}

// Append adds env to the tail of the chain and accrues its effort.
func (c *Chain) Append(env block.Envelope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocks = append(c.blocks, env)
	c.effort += Effort(env.Block.Difficulty)
	log.Chain.Debug().Int("index", env.Block.Index).Str("hash", env.Hash).Float64("effort", c.effort).Msg("block appended")
}

// Tip returns the most recently appended envelope and whether the chain
// is non-empty.
func (c *Chain) Tip() (block.Envelope, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.blocks) == 0 {
		return block.Envelope{}, false
	}
	return c.blocks[len(c.blocks)-1], true
}

// Snapshot returns a copy of the full chain and its cumulative effort.
func (c *Chain) Snapshot() ([]block.Envelope, float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]block.Envelope, len(c.blocks))
	copy(out, c.blocks)
	return out, c.effort
}

// Len returns the number of blocks in the chain.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blocks)
}

// Replace discards the current chain and effort, adopting env and
// effort instead. Used only by conflict resolution, which has already
// verified env is strictly heavier than the current chain.
func (c *Chain) Replace(env []block.Envelope, effort float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocks = append([]block.Envelope(nil), env...)
	c.effort = effort
	log.Chain.Info().Int("length", len(c.blocks)).Float64("effort", effort).Msg("chain replaced")
}
