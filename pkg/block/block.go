// Package block defines the block body and envelope types.
package block

import "github.com/shawenyao/noded/pkg/tx"

// GenesisPreviousHash is the sentinel previous-hash value recorded on the
// genesis block, where no prior block exists to link to.
const GenesisPreviousHash = "[note: previous hash is not applicable in the case of genesis block]"

// GenesisTimestamp is the fixed, human-readable timestamp recorded on the
// genesis block of every chain (a nod to Bitcoin's own genesis block).
const GenesisTimestamp = "Jan 03, 2009 13:15:00 PM ET"

// Body is the hashed content of a block. json field order does not matter
// for Go's encoder (struct fields marshal in declaration order and
// hashutil.Hash re-canonicalizes by key), but the field names and shapes
// here are wire-significant: any divergence produces incompatible hashes.
type Body struct {
	Index        int              `json:"index"`
	Difficulty   int              `json:"difficulty"`
	Nonce        uint64           `json:"nonce"`
	Timestamp    string           `json:"timestamp"`
	Transactions []tx.Transaction `json:"transactions"`
	PreviousHash string           `json:"previous_hash"`
}

// Envelope pairs a block body with the hash that seals it.
type Envelope struct {
	Block Body   `json:"block"`
	Hash  string `json:"hash"`
}

// Coinbase returns the block's mint transaction, which is always last.
// Callers are expected to have validated that Transactions is non-empty.
func (b Body) Coinbase() tx.Transaction {
	return b.Transactions[len(b.Transactions)-1]
}
