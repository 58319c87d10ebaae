package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/shawenyao/noded/pkg/types"
)

func newTxAddress(s string) types.Address {
	return types.Address(s)
}

// parseDifficultyQuery reads an optional ?difficulty=N query parameter.
// ok is false when the parameter is absent, in which case callers should
// leave the node's difficulty unchanged.
func parseDifficultyQuery(r *http.Request) (difficulty int, ok bool, err error) {
	raw := r.URL.Query().Get("difficulty")
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("difficulty must be an integer: %w", err)
	}
	return n, true, nil
}
