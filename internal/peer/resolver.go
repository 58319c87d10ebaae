package peer

import (
	"context"

	"github.com/shawenyao/noded/internal/consensus"
	"github.com/shawenyao/noded/internal/log"
	"github.com/shawenyao/noded/pkg/block"
	"github.com/shawenyao/noded/pkg/tx"
)

// chainResponse mirrors the /chain route's response body.
type chainResponse struct {
	Chain  []block.Envelope `json:"chain"`
	Effort float64          `json:"effort"`
}

// pendingResponse mirrors the /transactions/pending route's response body.
type pendingResponse struct {
	PendingTransactions []tx.Transaction `json:"pending_transactions"`
}

// Resolver implements the longest-cumulative-effort chain adoption rule
// against a registry of known peers.
type Resolver struct {
	Registry *Registry
}

// NewResolver returns a resolver sweeping the given registry's peers.
func NewResolver(r *Registry) *Resolver {
	return &Resolver{Registry: r}
}

// ResolveConflicts sweeps every registered peer, looking for a chain with
// strictly greater effort than localEffort that also passes strict
// validation. If one is found, it returns the adopted chain, its effort,
// and its pending transaction set, with adopted=true. A peer that times
// out, answers non-200, or whose chain fails validation is silently
// skipped; it does not fail the sweep.
func (r *Resolver) ResolveConflicts(ctx context.Context, localEffort float64) (adopted bool, newChain []block.Envelope, newEffort float64, newPending []tx.Transaction, err error) {
	bestEffort := localEffort
	var bestChain []block.Envelope
	var bestHost string

	for _, host := range r.Registry.Hosts() {
		var resp chainResponse
		if err := r.Registry.getJSON(ctx, "http://"+host+"/chain", &resp); err != nil {
			log.Peer.Debug().Str("peer", host).Err(err).Msg("skipping peer: unavailable")
			continue
		}
		if resp.Effort <= bestEffort {
			log.Peer.Debug().Str("peer", host).Float64("effort", resp.Effort).Msg("skipping peer: not heavier than current best")
			continue
		}
		if err := consensus.ValidateChainStrict(resp.Chain); err != nil {
			log.Peer.Warn().Str("peer", host).Err(err).Msg("skipping peer: invalid chain")
			continue
		}
		bestEffort = resp.Effort
		bestChain = resp.Chain
		bestHost = host
	}

	if bestChain == nil {
		return false, nil, localEffort, nil, nil
	}

	var pendingResp pendingResponse
	if err := r.Registry.getJSON(ctx, "http://"+bestHost+"/transactions/pending", &pendingResp); err != nil {
		// The chain itself is still valid and heavier; adopt it even if
		// the follow-up pending fetch failed, just with an empty mempool.
		return true, bestChain, bestEffort, nil, nil
	}

	return true, bestChain, bestEffort, pendingResp.PendingTransactions, nil
}
