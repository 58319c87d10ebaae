// Package api implements the node's HTTP+JSON interface: route dispatch
// with gorilla/mux and permissive CORS with rs/cors, so that a browser
// client on a different origin can call every route without a preflight
// failure.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/shawenyao/noded/internal/log"
	"github.com/shawenyao/noded/internal/noded"
)

// Server serves the node's REST interface.
type Server struct {
	node    *noded.Node
	router  *mux.Router
	handler http.Handler
	logger  zerolog.Logger
}

// New builds a Server around node, wiring every route named in the
// external interface table.
func New(node *noded.Node) *Server {
	s := &Server{
		node:   node,
		router: mux.NewRouter(),
		logger: log.WithComponent("api"),
	}

	s.router.HandleFunc("/id", s.handleID).Methods(http.MethodGet)
	s.router.HandleFunc("/mine", s.handleMine).Methods(http.MethodGet)
	s.router.HandleFunc("/transactions/new", s.handleNewTransaction).Methods(http.MethodPost)
	s.router.HandleFunc("/transactions/broadcast", s.handleBroadcastTransaction).Methods(http.MethodPost)
	s.router.HandleFunc("/transactions/pending", s.handlePendingTransactions).Methods(http.MethodGet)
	s.router.HandleFunc("/chain", s.handleChain).Methods(http.MethodGet)
	s.router.HandleFunc("/utxo", s.handleUTXO).Methods(http.MethodGet)
	s.router.HandleFunc("/nodes/register", s.handleRegisterNodes).Methods(http.MethodPost)
	s.router.HandleFunc("/nodes/resolve", s.handleResolveConflicts).Methods(http.MethodGet)
	s.router.HandleFunc("/difficulty/update", s.handleUpdateDifficulty).Methods(http.MethodGet)
	s.router.HandleFunc("/difficulty/broadcast", s.handleBroadcastDifficulty).Methods(http.MethodGet)

	s.handler = cors.AllowAll().Handler(s.router)
	return s
}

// ServeHTTP makes Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
