// Package miner produces new blocks by running proof-of-work over the
// node's admitted mempool transactions.
package miner

import (
	"context"
	"errors"
	"fmt"

	"github.com/shawenyao/noded/internal/consensus"
	"github.com/shawenyao/noded/internal/log"
	"github.com/shawenyao/noded/pkg/block"
	"github.com/shawenyao/noded/pkg/tx"
	"github.com/shawenyao/noded/pkg/types"
)

// ErrStaleMine is returned when the chain tip changed out from under a
// mining pass (a concurrent chain adoption won the race). The caller
// should discard the result rather than splice it onto the new tip.
var ErrStaleMine = errors.New("miner: chain tip changed during mining, discarding result")

// ChainState is the read/write view of chain history the miner needs.
// Satisfied by *internal/chain.Chain.
type ChainState interface {
	Tip() (block.Envelope, bool)
	Snapshot() ([]block.Envelope, float64)
	Append(env block.Envelope)
}

// MempoolSelector is the admission-filter view of the mempool the miner
// needs. Satisfied by *internal/mempool.Pool.
type MempoolSelector interface {
	Admit(chain []block.Envelope) (admitted []tx.Transaction, admittedIdx []int)
	RemoveIndices(idx []int)
}

// Clock supplies the timestamp recorded on newly mined, non-genesis
// blocks. Tests substitute a fixed string; production uses the current
// Eastern-time wall clock.
type Clock func() string

// Miner orchestrates one mining pass: admission, proof-of-work search,
// and commit.
type Miner struct {
	Chain      ChainState
	Pool       MempoolSelector
	NodeID     types.Address
	Difficulty func() int
	Now        Clock
}

// Mine performs one mining pass and returns the committed envelope.
//
// The nonce search itself holds no lock and may run for an unbounded
// time. Mine takes no lock of its own beyond what Chain and Pool do
// internally: it re-checks the chain tip before appending and returns
// ErrStaleMine if the tip moved, but that check and the append are not
// one atomic step, so callers must not run Mine concurrently with itself
// or with a chain replacement against the same Chain/Pool pair.
func (m *Miner) Mine(ctx context.Context) (block.Envelope, error) {
	chainSnapshot, _ := m.Chain.Snapshot()
	genesis := len(chainSnapshot) == 0

	admitted, admittedIdx := m.Pool.Admit(chainSnapshot)

	recipient := m.NodeID
	if genesis {
		recipient = types.GenesisRecipient
	}
	coinbase := tx.Coinbase(recipient, 1)

	timestamp := block.GenesisTimestamp
	if !genesis {
		timestamp = m.Now()
	}

	previousHash := block.GenesisPreviousHash
	if !genesis {
		tip, ok := m.Chain.Tip()
		if !ok {
			return block.Envelope{}, fmt.Errorf("miner: chain is non-empty but has no tip")
		}
		previousHash = tip.Hash
	}

	body := block.Body{
		Index:        len(chainSnapshot) + 1,
		Difficulty:   m.Difficulty(),
		Timestamp:    timestamp,
		Transactions: append(append([]tx.Transaction(nil), admitted...), coinbase),
		PreviousHash: previousHash,
	}

	startNonce := uint64(0)
	if !genesis {
		startNonce = consensus.RandomStartNonce()
	}

	nonce, hash, err := consensus.Search(body, startNonce)
	if err != nil {
		return block.Envelope{}, fmt.Errorf("miner: search: %w", err)
	}
	body.Nonce = nonce
	env := block.Envelope{Block: body, Hash: hash}

	if !genesis {
		tip, ok := m.Chain.Tip()
		if !ok || tip.Hash != previousHash {
			log.Miner.Warn().Int("index", body.Index).Msg("discarding stale mining result: chain tip moved during search")
			return block.Envelope{}, ErrStaleMine
		}
	}

	m.Chain.Append(env)
	m.Pool.RemoveIndices(admittedIdx)
	log.Miner.Info().Int("index", body.Index).Uint64("nonce", nonce).Int("transactions", len(body.Transactions)).Msg("mined block")
	return env, nil
}
