package miner

import (
	"context"
	"testing"

	"github.com/shawenyao/noded/internal/chain"
	"github.com/shawenyao/noded/internal/mempool"
	"github.com/shawenyao/noded/pkg/block"
	"github.com/shawenyao/noded/pkg/tx"
)

// raceyChain answers its first Tip call with the snapshot's own tip
// (matching what Mine used to build the tentative body) and every call
// after that with a different tip, simulating a chain adoption that
// lands while a mining search is still in flight.
type raceyChain struct {
	snapshot  []block.Envelope
	effort    float64
	staleTip  block.Envelope
	callCount int
}

func (r *raceyChain) Tip() (block.Envelope, bool) {
	r.callCount++
	if r.callCount <= 1 {
		return r.snapshot[len(r.snapshot)-1], true
	}
	return r.staleTip, true
}
func (r *raceyChain) Snapshot() ([]block.Envelope, float64) { return r.snapshot, r.effort }
func (r *raceyChain) Append(env block.Envelope)             {}

func fixedClock() string { return "Jul 31, 2026 12:00:00 PM ET" }

func TestMiner_MinesGenesis(t *testing.T) {
	c := chain.New()
	p := mempool.New()
	m := &Miner{Chain: c, Pool: p, NodeID: "node-1", Difficulty: func() int { return 1 }, Now: fixedClock}

	env, err := m.Mine(context.Background())
	if err != nil {
		t.Fatalf("Mine: %v", err)
	}
	if env.Block.Index != 1 {
		t.Errorf("genesis Index = %d, want 1", env.Block.Index)
	}
	if env.Block.PreviousHash != block.GenesisPreviousHash {
		t.Errorf("genesis PreviousHash = %q, want %q", env.Block.PreviousHash, block.GenesisPreviousHash)
	}
	if env.Block.Timestamp != block.GenesisTimestamp {
		t.Errorf("genesis Timestamp = %q, want %q", env.Block.Timestamp, block.GenesisTimestamp)
	}
	coinbase := env.Block.Coinbase()
	if coinbase.Recipient != "satoshi" {
		t.Errorf("genesis coinbase recipient = %q, want satoshi", coinbase.Recipient)
	}
	if c.Len() != 1 {
		t.Errorf("chain length after genesis = %d, want 1", c.Len())
	}
}

func TestMiner_MinesSecondBlock(t *testing.T) {
	c := chain.New()
	p := mempool.New()
	m := &Miner{Chain: c, Pool: p, NodeID: "node-1", Difficulty: func() int { return 1 }, Now: fixedClock}

	if _, err := m.Mine(context.Background()); err != nil {
		t.Fatalf("genesis Mine: %v", err)
	}

	p.Add(tx.New("satoshi", "alice", 0.5))
	env, err := m.Mine(context.Background())
	if err != nil {
		t.Fatalf("second Mine: %v", err)
	}
	if env.Block.Index != 2 {
		t.Errorf("second block Index = %d, want 2", env.Block.Index)
	}
	if len(env.Block.Transactions) != 2 {
		t.Errorf("second block has %d transactions, want 2 (transfer + coinbase)", len(env.Block.Transactions))
	}
	coinbase := env.Block.Coinbase()
	if coinbase.Recipient != "node-1" {
		t.Errorf("second block coinbase recipient = %q, want node-1", coinbase.Recipient)
	}
	if p.Len() != 0 {
		t.Errorf("mempool length after mining = %d, want 0 (admitted transaction removed)", p.Len())
	}
}

func TestMiner_DiscardsOverdraftTransactions(t *testing.T) {
	c := chain.New()
	p := mempool.New()
	m := &Miner{Chain: c, Pool: p, NodeID: "node-1", Difficulty: func() int { return 1 }, Now: fixedClock}
	if _, err := m.Mine(context.Background()); err != nil {
		t.Fatalf("genesis Mine: %v", err)
	}

	p.Add(tx.New("alice", "bob", 1000)) // alice has no balance at all
	env, err := m.Mine(context.Background())
	if err != nil {
		t.Fatalf("second Mine: %v", err)
	}
	if len(env.Block.Transactions) != 1 {
		t.Errorf("block has %d transactions, want 1 (coinbase only, overdraft rejected)", len(env.Block.Transactions))
	}
	if p.Len() != 1 {
		t.Errorf("mempool length = %d, want 1 (rejected transaction stays pending)", p.Len())
	}
}

func TestMiner_StaleMineDiscarded(t *testing.T) {
	genesisEnv := block.Envelope{
		Block: block.Body{Index: 1, Difficulty: 1, PreviousHash: block.GenesisPreviousHash, Transactions: []tx.Transaction{tx.Coinbase("satoshi", 1)}},
		Hash:  "genesis-hash",
	}
	c := &raceyChain{
		snapshot: []block.Envelope{genesisEnv},
		effort:   1,
		staleTip: block.Envelope{Block: block.Body{Index: 2}, Hash: "adopted-by-a-peer"},
	}
	p := mempool.New()
	m := &Miner{Chain: c, Pool: p, NodeID: "node-1", Difficulty: func() int { return 1 }, Now: fixedClock}

	_, err := m.Mine(context.Background())
	if err != ErrStaleMine {
		t.Errorf("Mine() error = %v, want ErrStaleMine", err)
	}
}
