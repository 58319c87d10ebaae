package consensus

import (
	"math/rand"

	"github.com/shawenyao/noded/pkg/block"
	"github.com/shawenyao/noded/pkg/hashutil"
)

// randomStartBound is 2^31, the upper bound (exclusive) a fresh search's
// starting nonce is drawn from.
const randomStartBound = 1 << 31

// RandomStartNonce returns a nonce drawn uniformly from [0, 2^31), the
// starting point of a fresh proof-of-work search.
func RandomStartNonce() uint64 {
	return uint64(rand.Int63n(randomStartBound))
}

// Search finds a nonce for body, starting at startNonce and incrementing
// until the resulting hash satisfies difficulty, wrapping back to 0 on
// uint64 overflow rather than going negative. body is not mutated; a copy
// is probed on each attempt. It returns the winning nonce and its hash.
func Search(body block.Body, startNonce uint64) (nonce uint64, hash string, err error) {
	n := startNonce
	for {
		candidate := body
		candidate.Nonce = n
		h, err := hashutil.Hash(candidate)
		if err != nil {
			return 0, "", err
		}
		if hashutil.SatisfiesDifficulty(h, candidate.Difficulty) {
			return n, h, nil
		}
		n++ // wraps to 0 on overflow, per uint64 semantics
	}
}
