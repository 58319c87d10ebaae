// Package consensus implements proof-of-work mining and chain validation.
package consensus

import (
	"errors"
	"fmt"

	"github.com/shawenyao/noded/internal/log"
	"github.com/shawenyao/noded/internal/utxo"
	"github.com/shawenyao/noded/pkg/block"
	"github.com/shawenyao/noded/pkg/hashutil"
	"github.com/shawenyao/noded/pkg/types"
)

// ErrInvalidChain wraps every structural or balance failure returned by
// ValidateChain and ValidateChainStrict.
var ErrInvalidChain = errors.New("invalid chain")

// ValidateChain checks hash linkage, hash correctness, and difficulty
// satisfaction for every block in c. It does not touch account balances.
func ValidateChain(c []block.Envelope) error {
	for i, env := range c {
		if i > 0 && env.Block.PreviousHash != c[i-1].Hash {
			return fmt.Errorf("%w: block %d previous_hash does not match block %d hash", ErrInvalidChain, i, i-1)
		}
		want, err := hashutil.Hash(env.Block)
		if err != nil {
			return fmt.Errorf("%w: block %d: %v", ErrInvalidChain, i, err)
		}
		if env.Hash != want {
			return fmt.Errorf("%w: block %d hash does not match its contents", ErrInvalidChain, i)
		}
		if !hashutil.SatisfiesDifficulty(env.Hash, env.Block.Difficulty) {
			return fmt.Errorf("%w: block %d does not satisfy its stated difficulty", ErrInvalidChain, i)
		}
	}
	return nil
}

// ValidateChainStrict runs ValidateChain and additionally replays the UTXO
// of every prefix of c, rejecting the chain if any non-coinbase address
// ever goes negative.
func ValidateChainStrict(c []block.Envelope) error {
	if err := ValidateChain(c); err != nil {
		return err
	}
	for i := range c {
		balances := utxo.Replay(c[:i+1])
		delete(balances, types.Coinbase)
		for addr, bal := range balances {
			if bal < 0 {
				log.Consensus.Debug().Str("address", string(addr)).Float64("balance", bal).Int("block", i).Msg("rejecting chain: address balance goes negative")
				return fmt.Errorf("%w: address %q goes negative by block %d", ErrInvalidChain, addr, i)
			}
		}
	}
	return nil
}
