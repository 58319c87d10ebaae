package api

import "github.com/shawenyao/noded/pkg/tx"

// idResponse is the body of GET /id.
type idResponse struct {
	NodeID string `json:"node_id"`
}

// mineResponse is the body of GET /mine.
type mineResponse struct {
	Message    string `json:"message"`
	BlockIndex int    `json:"block#"`
	Difficulty int    `json:"difficulty"`
	NodeID     string `json:"node_id"`
}

// newTransactionRequest is the body of POST /transactions/new and
// POST /transactions/broadcast.
type newTransactionRequest struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
}

// transactionResponse is the body returned after accepting a transaction.
type transactionResponse struct {
	Message     string         `json:"message"`
	Transaction tx.Transaction `json:"transaction"`
	NodeID      string         `json:"node_id"`
}

// pendingResponse is the body of GET /transactions/pending.
type pendingResponse struct {
	Message             string           `json:"message"`
	PendingTransactions []tx.Transaction `json:"pending_transactions"`
	NodeID              string           `json:"node_id"`
}

// chainResponse is the body of GET /chain.
type chainResponse struct {
	Chain  interface{} `json:"chain"`
	Length int         `json:"length"`
	Effort float64     `json:"effort"`
	NodeID string      `json:"node_id"`
}

// utxoResponse is the body of GET /utxo.
type utxoResponse struct {
	Balances interface{} `json:"balances"`
	NodeID   string      `json:"node_id"`
}

// registerNodesRequest is the body of POST /nodes/register.
type registerNodesRequest struct {
	Nodes []string `json:"nodes"`
}

// registerNodesResponse is the body returned after registering peers.
type registerNodesResponse struct {
	Message  string   `json:"message"`
	AllNodes []string `json:"all_nodes"`
	NodeID   string   `json:"node_id"`
}

// resolveResponse is the body of GET /nodes/resolve.
type resolveResponse struct {
	Message string `json:"message"`
	NodeID  string `json:"node_id"`
}

// difficultyResponse is the body of GET /difficulty/update and
// GET /difficulty/broadcast.
type difficultyResponse struct {
	Message    string `json:"message"`
	Difficulty int    `json:"difficulty"`
	NodeID     string `json:"node_id"`
}

// errorResponse is the body of any non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}
