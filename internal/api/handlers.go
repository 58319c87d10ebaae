package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shawenyao/noded/internal/miner"
	"github.com/shawenyao/noded/internal/noded"
	"github.com/shawenyao/noded/pkg/tx"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) handleID(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, idResponse{NodeID: s.node.ID()})
}

func (s *Server) handleMine(w http.ResponseWriter, r *http.Request) {
	env, err := s.node.Mine(r.Context())
	if errors.Is(err, miner.ErrStaleMine) {
		writeJSON(w, http.StatusOK, mineResponse{
			Message:    "no block appended, chain changed concurrently",
			Difficulty: s.node.Difficulty(),
			NodeID:     s.node.ID(),
		})
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("mining pass failed")
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, mineResponse{
		Message:    "new block forged",
		BlockIndex: env.Block.Index,
		Difficulty: env.Block.Difficulty,
		NodeID:     s.node.ID(),
	})
}

func decodeTransaction(r *http.Request) (tx.Transaction, error) {
	var req newTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return tx.Transaction{}, noded.ErrBadRequest
	}
	return tx.New(
		newTxAddress(req.Sender),
		newTxAddress(req.Recipient),
		req.Amount,
	), nil
}

func (s *Server) handleNewTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := decodeTransaction(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.node.NewTransaction(t); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionResponse{
		Message:     "transaction will be added to the next block",
		Transaction: t,
		NodeID:      s.node.ID(),
	})
}

func (s *Server) handleBroadcastTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := decodeTransaction(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.node.BroadcastTransaction(r.Context(), t); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionResponse{
		Message:     "transaction will be added to the next block",
		Transaction: t,
		NodeID:      s.node.ID(),
	})
}

func (s *Server) handlePendingTransactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pendingResponse{
		Message:             "pending transactions",
		PendingTransactions: s.node.Pending(),
		NodeID:              s.node.ID(),
	})
}

func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	chain, effort := s.node.ChainSnapshot()
	writeJSON(w, http.StatusOK, chainResponse{
		Chain:  chain,
		Length: len(chain),
		Effort: effort,
		NodeID: s.node.ID(),
	})
}

func (s *Server) handleUTXO(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, utxoResponse{
		Balances: s.node.UTXO(),
		NodeID:   s.node.ID(),
	})
}

func (s *Server) handleRegisterNodes(w http.ResponseWriter, r *http.Request) {
	var req registerNodesRequest
	if r.Body != nil {
		// An empty or absent body is tolerated (registers nothing, still
		// returns the current node list), matching the external
		// interface's "nodes: [...] (may be empty)" contract.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	all := s.node.RegisterNodes(r.Context(), req.Nodes)
	writeJSON(w, http.StatusOK, registerNodesResponse{
		Message:  "new nodes have been added",
		AllNodes: all,
		NodeID:   s.node.ID(),
	})
}

func (s *Server) handleResolveConflicts(w http.ResponseWriter, r *http.Request) {
	adopted, err := s.node.ResolveConflicts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	message := "our chain is authoritative"
	if adopted {
		message = "our chain was replaced"
	}
	writeJSON(w, http.StatusOK, resolveResponse{Message: message, NodeID: s.node.ID()})
}

func (s *Server) handleUpdateDifficulty(w http.ResponseWriter, r *http.Request) {
	difficulty, ok, err := parseDifficultyQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if ok {
		// An out-of-range difficulty is reported in the body, not as an
		// error status: the node's difficulty is simply left unchanged.
		if err := s.node.UpdateDifficulty(difficulty); err != nil {
			s.logger.Warn().Err(err).Msg("rejected difficulty update")
		}
	}
	writeJSON(w, http.StatusOK, difficultyResponse{
		Message:    "difficulty updated",
		Difficulty: s.node.Difficulty(),
		NodeID:     s.node.ID(),
	})
}

func (s *Server) handleBroadcastDifficulty(w http.ResponseWriter, r *http.Request) {
	difficulty, ok, err := parseDifficultyQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if ok {
		if err := s.node.UpdateDifficulty(difficulty); err != nil {
			s.logger.Warn().Err(err).Msg("rejected difficulty update")
		}
	}
	s.node.BroadcastDifficulty(r.Context())
	writeJSON(w, http.StatusOK, difficultyResponse{
		Message:    "difficulty broadcast to all peers",
		Difficulty: s.node.Difficulty(),
		NodeID:     s.node.ID(),
	})
}
