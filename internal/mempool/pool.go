// Package mempool holds transactions that have not yet been mined.
package mempool

import (
	"sync"

	"github.com/shawenyao/noded/internal/log"
	"github.com/shawenyao/noded/internal/utxo"
	"github.com/shawenyao/noded/pkg/block"
	"github.com/shawenyao/noded/pkg/tx"
	"github.com/shawenyao/noded/pkg/types"
)

// Pool is an ordered, mutex-protected list of pending transactions.
// There is no fee market: ordering is plain insertion order.
type Pool struct {
	mu  sync.RWMutex
	txs []tx.Transaction
}

// New returns an empty pool.
func New() *Pool {
	return &Pool{}
}

// Add appends t to the tail of the pool.
func (p *Pool) Add(t tx.Transaction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.txs = append(p.txs, t)
}

// Pending returns a snapshot of the pool's contents, in insertion order.
func (p *Pool) Pending() []tx.Transaction {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]tx.Transaction, len(p.txs))
	copy(out, p.txs)
	return out
}

// Replace discards the pool's contents and replaces them with txs, used
// when a peer's chain is adopted and its pending set is fetched wholesale.
func (p *Pool) Replace(txs []tx.Transaction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.txs = append([]tx.Transaction(nil), txs...)
}

// Admit walks the pool in order against chain and greedily selects every
// transaction that keeps all non-coinbase balances non-negative. It
// returns the admitted transactions and their indices into the pool as
// observed at the time of the call; it does not mutate the pool.
func (p *Pool) Admit(chain []block.Envelope) (admitted []tx.Transaction, admittedIdx []int) {
	p.mu.RLock()
	txs := make([]tx.Transaction, len(p.txs))
	copy(txs, p.txs)
	p.mu.RUnlock()

	for i, t := range txs {
		candidate := append(append([]tx.Transaction(nil), admitted...), t)
		balances := utxo.ReplayWithPending(chain, candidate)
		delete(balances, types.Coinbase)

		ok := true
		for _, bal := range balances {
			if bal < 0 {
				ok = false
				break
			}
		}
		if ok {
			admitted = append(admitted, t)
			admittedIdx = append(admittedIdx, i)
		} else {
			log.Mempool.Debug().Str("sender", string(t.Sender)).Str("recipient", string(t.Recipient)).Float64("amount", t.Amount).Msg("rejected pending transaction: would overdraw a balance")
		}
	}
	return admitted, admittedIdx
}

// RemoveIndices removes the pool entries at idx, which must be sorted
// ascending (the shape Admit returns), as they appeared when idx was
// computed. Transactions appended by Add after Admit do not disturb those
// indices, but the pool must not be Replaced between Admit and
// RemoveIndices.
func (p *Pool) RemoveIndices(idx []int) {
	if len(idx) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	remove := make(map[int]bool, len(idx))
	for _, i := range idx {
		remove[i] = true
	}
	kept := p.txs[:0:0]
	for i, t := range p.txs {
		if !remove[i] {
			kept = append(kept, t)
		}
	}
	p.txs = kept
}

// Len returns the number of pending transactions.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.txs)
}
