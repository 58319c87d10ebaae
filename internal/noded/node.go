// Package noded wires the chain, mempool, miner, and peer registry into
// the single orchestrator a running node operates through. Mutating entry
// points serialize through the node's own locks (a state lock, and a
// mining lock that also orders chain adoption against mining) in addition
// to whatever locking each component already does internally, so the
// HTTP layer above it can serve requests concurrently without observing a
// partial block or a torn mempool.
package noded

import (
	"context"
	"fmt"
	"sync"

	"github.com/shawenyao/noded/config"
	"github.com/shawenyao/noded/internal/chain"
	"github.com/shawenyao/noded/internal/log"
	"github.com/shawenyao/noded/internal/mempool"
	"github.com/shawenyao/noded/internal/miner"
	"github.com/shawenyao/noded/internal/peer"
	"github.com/shawenyao/noded/internal/utxo"
	"github.com/shawenyao/noded/pkg/block"
	"github.com/shawenyao/noded/pkg/tx"
	"github.com/shawenyao/noded/pkg/types"
	"github.com/rs/zerolog"
)

// Node is a fully initialized node: chain, mempool, miner, and peer
// registry, mined to genesis and ready to serve RPCs.
type Node struct {
	// mu guards difficulty and is held for writing by NewTransaction,
	// UpdateDifficulty and the splice of an adopted chain; read-only
	// accessors take its read lock to observe a consistent snapshot.
	// mineMu is a second lock that serializes /mine passes against each
	// other and against that splice, so a long-running nonce search does
	// not block unrelated reads.
	mu     sync.RWMutex
	mineMu sync.Mutex

	nodeID     types.Address
	difficulty int

	chain    *chain.Chain
	pool     *mempool.Pool
	registry *peer.Registry
	resolver *peer.Resolver
	miner    *miner.Miner

	logger zerolog.Logger
}

// New builds a node from cfg, mines its genesis block, and seeds the peer
// registry from cfg.Peers.
func New(cfg *config.Config) (*Node, error) {
	logger := log.WithComponent("node")

	n := &Node{
		nodeID:     types.Address(cfg.NodeID),
		difficulty: cfg.Difficulty,
		chain:      chain.New(),
		pool:       mempool.New(),
		registry:   peer.NewRegistry(),
		logger:     logger,
	}
	n.resolver = peer.NewResolver(n.registry)
	n.miner = &miner.Miner{
		Chain:      n.chain,
		Pool:       n.pool,
		NodeID:     n.nodeID,
		Difficulty: func() int { return n.Difficulty() },
		Now:        nowEastern,
	}

	logger.Info().Str("node_id", cfg.NodeID).Int("difficulty", cfg.Difficulty).Msg("mining genesis block")
	if _, err := n.miner.Mine(context.Background()); err != nil {
		return nil, fmt.Errorf("noded: mine genesis: %w", err)
	}

	for _, rawURL := range cfg.Peers {
		if err := n.registry.RegisterNode(context.Background(), rawURL); err != nil {
			logger.Warn().Str("peer", rawURL).Err(err).Msg("could not register seed peer")
		}
	}

	return n, nil
}

// ID returns the node's identifier.
func (n *Node) ID() string {
	return string(n.nodeID)
}

// Difficulty returns the node's current mining difficulty.
func (n *Node) Difficulty() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.difficulty
}

// UpdateDifficulty sets the node's mining difficulty, affecting only
// blocks mined after the call. It rejects values outside
// [config.MinDifficulty, config.MaxDifficulty].
func (n *Node) UpdateDifficulty(d int) error {
	if d < config.MinDifficulty || d > config.MaxDifficulty {
		return fmt.Errorf("%w: difficulty %d outside [%d,%d]", ErrConfigOutOfRange, d, config.MinDifficulty, config.MaxDifficulty)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.difficulty = d
	return nil
}

// BroadcastDifficulty pushes the node's current difficulty to every
// registered peer.
func (n *Node) BroadcastDifficulty(ctx context.Context) {
	n.registry.BroadcastDifficulty(ctx, n.Difficulty())
}

// Mine performs one mining pass. Concurrent callers queue on mineMu
// rather than racing each other's admission pass.
func (n *Node) Mine(ctx context.Context) (block.Envelope, error) {
	n.mineMu.Lock()
	defer n.mineMu.Unlock()
	return n.miner.Mine(ctx)
}

// NewTransaction validates and queues t for the next mining pass. It
// rejects a transaction with an empty sender or recipient.
func (n *Node) NewTransaction(t tx.Transaction) error {
	if t.Sender == "" || t.Recipient == "" {
		return fmt.Errorf("%w: sender and recipient are required", ErrBadRequest)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pool.Add(t)
	return nil
}

// BroadcastTransaction queues t locally and forwards it to every
// registered peer's /transactions/new.
func (n *Node) BroadcastTransaction(ctx context.Context, t tx.Transaction) error {
	if err := n.NewTransaction(t); err != nil {
		return err
	}
	n.registry.BroadcastTransaction(ctx, t)
	return nil
}

// Pending returns a snapshot of the not-yet-mined transaction set.
func (n *Node) Pending() []tx.Transaction {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.pool.Pending()
}

// ChainSnapshot returns a copy of the full chain and its cumulative effort.
func (n *Node) ChainSnapshot() ([]block.Envelope, float64) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.chain.Snapshot()
}

// UTXO returns every address's current balance, replayed from the chain.
func (n *Node) UTXO() map[types.Address]float64 {
	n.mu.RLock()
	chain, _ := n.chain.Snapshot()
	n.mu.RUnlock()
	return utxo.Replay(chain)
}

// RegisterNodes registers every rawURL as a peer, continuing past any
// that are unreachable. It returns the registry's full set of known
// node_ids after the attempt. The registry has its own internal lock and
// makes its own network calls, so this runs without holding the node's
// lock.
func (n *Node) RegisterNodes(ctx context.Context, rawURLs []string) []string {
	for _, rawURL := range rawURLs {
		if err := n.registry.RegisterNode(ctx, rawURL); err != nil {
			n.logger.Warn().Str("peer", rawURL).Err(err).Msg("could not register peer")
		}
	}
	return n.registry.NodeIDs()
}

// ResolveConflicts sweeps registered peers and adopts the heaviest valid
// chain strictly heavier than the local one, replacing the local mempool
// with the adopted peer's pending set. It reports whether adoption
// occurred. The peer sweep itself runs with the node's locks released, so
// a slow or unreachable peer cannot block reads or /mine; only the final
// splice of the adopted chain/mempool is taken, after any in-flight mining
// pass has finished, under mineMu and the write lock.
func (n *Node) ResolveConflicts(ctx context.Context) (bool, error) {
	_, localEffort := n.chain.Snapshot()

	adopted, newChain, newEffort, newPending, err := n.resolver.ResolveConflicts(ctx, localEffort)
	if err != nil {
		return false, err
	}
	if !adopted {
		return false, nil
	}

	// Wait for any in-flight mining pass so the splice cannot land between
	// the miner's tip re-check and its append.
	n.mineMu.Lock()
	defer n.mineMu.Unlock()
	n.mu.Lock()
	defer n.mu.Unlock()
	n.chain.Replace(newChain, newEffort)
	n.pool.Replace(newPending)
	n.logger.Info().Float64("effort", newEffort).Int("length", len(newChain)).Msg("adopted a peer's chain")
	return true, nil
}
