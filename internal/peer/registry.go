// Package peer maintains the set of known remote nodes and implements
// the longest-effort conflict-resolution algorithm.
package peer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// ErrPeerUnavailable is returned when a peer cannot be reached or answers
// with a non-200 status.
var ErrPeerUnavailable = errors.New("peer: unavailable")

// DefaultTimeout bounds every outbound HTTP call to a peer.
const DefaultTimeout = 5 * time.Second

// Registry tracks peer node_id -> host:port, the shape the reference
// node's nodes.register/resolve RPCs operate on.
type Registry struct {
	mu    sync.RWMutex
	peers map[string]string // node_id -> host:port
	http  *http.Client
}

// NewRegistry returns an empty registry using DefaultTimeout for every
// outbound request.
func NewRegistry() *Registry {
	return &Registry{
		peers: make(map[string]string),
		http:  &http.Client{Timeout: DefaultTimeout},
	}
}

// RegisterNode parses rawURL to a host:port, fetches the peer's /id, and
// records it under the peer's reported node_id. A peer that cannot be
// reached or answers non-200 returns ErrPeerUnavailable; it is not added.
func (r *Registry) RegisterNode(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("peer: parse %q: %w", rawURL, err)
	}
	host := u.Host
	if host == "" {
		host = u.Path // tolerate bare "host:port" with no scheme
	}

	var idResp struct {
		NodeID string `json:"node_id"`
	}
	if err := r.getJSON(ctx, "http://"+host+"/id", &idResp); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPeerUnavailable, host, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.peers[idResp.NodeID] = host
	return nil
}

// Hosts returns a snapshot of every known peer's host:port, in no
// particular order.
func (r *Registry) Hosts() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.peers))
	for _, host := range r.peers {
		out = append(out, host)
	}
	return out
}

// NodeIDs returns a snapshot of every known peer's node_id, in no
// particular order.
func (r *Registry) NodeIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.peers))
	for id := range r.peers {
		out = append(out, id)
	}
	return out
}

// All returns a snapshot of the node_id -> host:port mapping.
func (r *Registry) All() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.peers))
	for id, host := range r.peers {
		out[id] = host
	}
	return out
}

func (r *Registry) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (r *Registry) postJSON(ctx context.Context, rawURL string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
