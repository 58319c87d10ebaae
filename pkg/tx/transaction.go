// Package tx defines the transaction record and its construction helpers.
package tx

import "github.com/shawenyao/noded/pkg/types"

// Transaction is a value transfer from Sender to Recipient. There is no
// signature field: authorization checks are out of scope for this ledger.
type Transaction struct {
	Sender    types.Address `json:"sender"`
	Recipient types.Address `json:"recipient"`
	Amount    float64       `json:"amount"`
}

// New creates a pending transaction.
func New(sender, recipient types.Address, amount float64) Transaction {
	return Transaction{Sender: sender, Recipient: recipient, Amount: amount}
}

// Coinbase builds the single mint transaction appended to the tail of
// every block's transaction list.
func Coinbase(recipient types.Address, amount float64) Transaction {
	return Transaction{Sender: types.Coinbase, Recipient: recipient, Amount: amount}
}

// IsCoinbase reports whether t is a mint transaction.
func (t Transaction) IsCoinbase() bool {
	return t.Sender == types.Coinbase
}
