// Package utxo replays transaction history into per-address balances.
//
// There is no persistent UTXO index: balances are derived on demand by
// walking the chain from genesis.
package utxo

import (
	"math"

	"github.com/shawenyao/noded/pkg/block"
	"github.com/shawenyao/noded/pkg/tx"
	"github.com/shawenyao/noded/pkg/types"
)

const roundingFactor = 1e8

// Replay walks chain in order and returns the resulting balance of every
// address that appears as a sender or recipient. It never mutates chain.
func Replay(chain []block.Envelope) map[types.Address]float64 {
	return ReplayWithPending(chain, nil)
}

// ReplayWithPending is Replay extended with an in-memory tail of
// not-yet-mined transactions, applied after the chain in order.
func ReplayWithPending(chain []block.Envelope, pending []tx.Transaction) map[types.Address]float64 {
	balances := make(map[types.Address]float64)

	apply := func(t tx.Transaction) {
		balances[t.Sender] -= t.Amount
		balances[t.Recipient] += t.Amount
	}

	for _, env := range chain {
		for _, t := range env.Block.Transactions {
			apply(t)
		}
	}
	for _, t := range pending {
		apply(t)
	}

	for addr, bal := range balances {
		balances[addr] = round8(bal)
	}
	return balances
}

func round8(v float64) float64 {
	return math.Round(v*roundingFactor) / roundingFactor
}
