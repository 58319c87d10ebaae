package mempool

import (
	"testing"

	"github.com/shawenyao/noded/pkg/block"
	"github.com/shawenyao/noded/pkg/tx"
)

func genesisChain() []block.Envelope {
	body := block.Body{
		Index:        1,
		Difficulty:   1,
		Timestamp:    block.GenesisTimestamp,
		Transactions: []tx.Transaction{tx.Coinbase("alice", 1)},
		PreviousHash: block.GenesisPreviousHash,
	}
	return []block.Envelope{{Block: body, Hash: "deadbeef"}}
}

func TestPool_AddPending(t *testing.T) {
	p := New()
	if got := p.Pending(); len(got) != 0 {
		t.Fatalf("new pool Pending() = %v, want empty", got)
	}
	p.Add(tx.New("alice", "bob", 0.1))
	got := p.Pending()
	if len(got) != 1 || got[0].Recipient != "bob" {
		t.Errorf("Pending() = %v, want one transaction to bob", got)
	}
}

func TestPool_Admit_RejectsOverdraft(t *testing.T) {
	p := New()
	p.Add(tx.New("alice", "bob", 0.5))  // affordable
	p.Add(tx.New("alice", "carol", 10)) // alice doesn't have this much

	admitted, idx := p.Admit(genesisChain())
	if len(admitted) != 1 || admitted[0].Recipient != "bob" {
		t.Errorf("Admit() admitted = %v, want only the transfer to bob", admitted)
	}
	if len(idx) != 1 || idx[0] != 0 {
		t.Errorf("Admit() admittedIdx = %v, want [0]", idx)
	}
}

func TestPool_Admit_LaterTransactionCanDependOnEarlierOne(t *testing.T) {
	p := New()
	// alice has 1 coin; she sends 0.9 to bob, then bob forwards 0.5 to carol.
	// Admit must replay admitted-so-far when checking each candidate.
	p.Add(tx.New("alice", "bob", 0.9))
	p.Add(tx.New("bob", "carol", 0.5))

	admitted, _ := p.Admit(genesisChain())
	if len(admitted) != 2 {
		t.Fatalf("Admit() admitted %d transactions, want 2: %v", len(admitted), admitted)
	}
}

func TestPool_RemoveIndices(t *testing.T) {
	p := New()
	p.Add(tx.New("alice", "bob", 0.1))
	p.Add(tx.New("alice", "carol", 0.1))
	p.Add(tx.New("alice", "dave", 0.1))

	p.RemoveIndices([]int{0, 2})

	got := p.Pending()
	if len(got) != 1 || got[0].Recipient != "carol" {
		t.Errorf("Pending() after RemoveIndices = %v, want only the transfer to carol", got)
	}
}

func TestPool_Replace(t *testing.T) {
	p := New()
	p.Add(tx.New("alice", "bob", 0.1))
	p.Replace([]tx.Transaction{tx.New("carol", "dave", 0.2)})

	got := p.Pending()
	if len(got) != 1 || got[0].Sender != "carol" {
		t.Errorf("Pending() after Replace = %v, want only carol's transfer", got)
	}
}
