// Package types defines the small value types shared across the ledger.
package types

// Address is an opaque account identifier. The system performs no key
// derivation or signature checks on addresses — see the transaction
// validation non-goals.
type Address string

// Coinbase is the distinguished sender address of every block-reward
// transaction. Its balance is not consensus-checked: mint sources are
// expected to go negative without bound.
const Coinbase Address = "0"

// GenesisRecipient is the distinguished recipient of the genesis block's
// coinbase transaction.
const GenesisRecipient Address = "satoshi"
