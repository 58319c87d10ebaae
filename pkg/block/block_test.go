package block

import (
	"testing"

	"github.com/shawenyao/noded/pkg/tx"
)

func TestBody_Coinbase(t *testing.T) {
	b := Body{
		Index:      1,
		Difficulty: 2,
		Nonce:      42,
		Timestamp:  "Jan 03, 2009 13:15:00 PM ET",
		Transactions: []tx.Transaction{
			tx.New("alice", "bob", 1),
			tx.Coinbase("bob", 1),
		},
		PreviousHash: GenesisPreviousHash,
	}

	got := b.Coinbase()
	if !got.IsCoinbase() {
		t.Errorf("Coinbase() returned non-coinbase transaction: %+v", got)
	}
	if got.Recipient != "bob" {
		t.Errorf("Coinbase().Recipient = %q, want %q", got.Recipient, "bob")
	}
}
