// noded is a single proof-of-work node: a mined chain, a pending
// transaction pool, and an HTTP+JSON interface for peers and clients to
// talk to it.
//
// Usage:
//
//	noded [port] [node_id] [--difficulty N] [--log-level LEVEL] [--log-json] [--peer URL ...]
package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shawenyao/noded/config"
	"github.com/shawenyao/noded/internal/api"
	"github.com/shawenyao/noded/internal/log"
	"github.com/shawenyao/noded/internal/noded"
)

func main() {
	// ── 1. Parse flags and build config ──────────────────────────────
	flags := config.ParseFlags()
	cfg, err := config.ToConfig(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// ── 2. Init logger ────────────────────────────────────────────────
	log.Init(cfg.Log.Level, cfg.Log.JSON)
	logger := log.WithNodeID(cfg.NodeID)

	// ── 3. Build the node (mines genesis, registers seed peers) ──────
	n, err := noded.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start node")
	}

	// ── 4. Serve HTTP ─────────────────────────────────────────────────
	server := api.New(n)
	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{Addr: addr, Handler: server}

	go func() {
		logger.Info().Str("addr", addr).Int("difficulty", cfg.Difficulty).Msg("node listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// ── 5. Wait for shutdown ──────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
}
