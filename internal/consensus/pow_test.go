package consensus

import (
	"testing"

	"github.com/shawenyao/noded/pkg/block"
	"github.com/shawenyao/noded/pkg/hashutil"
	"github.com/shawenyao/noded/pkg/tx"
)

func TestSearch_FindsSatisfyingNonce(t *testing.T) {
	body := block.Body{
		Index:        1,
		Difficulty:   1,
		Timestamp:    "Jan 03, 2009 13:15:00 PM ET",
		Transactions: []tx.Transaction{tx.Coinbase("alice", 1)},
		PreviousHash: block.GenesisPreviousHash,
	}

	nonce, hash, err := Search(body, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !hashutil.SatisfiesDifficulty(hash, body.Difficulty) {
		t.Errorf("Search returned hash %q that does not satisfy difficulty %d", hash, body.Difficulty)
	}

	body.Nonce = nonce
	want, err := hashutil.Hash(body)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash != want {
		t.Errorf("Search hash = %s, want %s", hash, want)
	}
}

func TestSearch_ZeroDifficultyAcceptsStartNonce(t *testing.T) {
	body := block.Body{
		Index:        1,
		Difficulty:   0,
		Timestamp:    "Jan 03, 2009 13:15:00 PM ET",
		Transactions: []tx.Transaction{tx.Coinbase("alice", 1)},
		PreviousHash: block.GenesisPreviousHash,
	}
	nonce, _, err := Search(body, 7)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if nonce != 7 {
		t.Errorf("Search with difficulty 0 found nonce %d, want the start nonce 7", nonce)
	}
}

func TestRandomStartNonce_WithinBound(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := RandomStartNonce()
		if n >= randomStartBound {
			t.Fatalf("RandomStartNonce() = %d, want < %d", n, randomStartBound)
		}
	}
}
