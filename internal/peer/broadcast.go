package peer

import (
	"context"
	"fmt"

	"github.com/shawenyao/noded/pkg/tx"
)

// BroadcastTransaction fans t out to every registered peer's
// /transactions/new. Unreachable peers are skipped; the broadcast never
// fails the caller's own /transactions/broadcast request.
func (r *Registry) BroadcastTransaction(ctx context.Context, t tx.Transaction) {
	for _, host := range r.Hosts() {
		_ = r.postJSON(ctx, "http://"+host+"/transactions/new", t, nil)
	}
}

// BroadcastDifficulty fans difficulty out to every registered peer's
// /difficulty/update as a GET with a query string, matching that route's
// own signature.
func (r *Registry) BroadcastDifficulty(ctx context.Context, difficulty int) {
	for _, host := range r.Hosts() {
		url := fmt.Sprintf("http://%s/difficulty/update?difficulty=%d", host, difficulty)
		var discard interface{}
		_ = r.getJSON(ctx, url, &discard)
	}
}
