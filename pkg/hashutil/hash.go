// Package hashutil implements the canonical block hash used for chain
// linkage and proof-of-work.
package hashutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// CanonicalJSON re-encodes v with object keys sorted ascending by Unicode
// code point, the representation every hash in this package is computed
// over. Go's map marshaling already sorts string keys, so the approach is
// to round-trip v through a generic map/slice tree and re-marshal it.
//
// The round-trip decodes numbers with json.Number instead of float64: a
// mined nonce can exceed 2^53, and the re-encoded form must keep the exact
// digits of every integer, including values passed in as generic JSON
// (json.RawMessage, map values) rather than typed Go structs, not a
// float-rounded approximation.
func CanonicalJSON(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic interface{}
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}

// Hash computes the hex-encoded SHA-256 of v's canonical JSON form.
func Hash(v interface{}) (string, error) {
	canon, err := CanonicalJSON(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}

// SatisfiesDifficulty reports whether hash's first difficulty characters
// are all '0'. Difficulty is counted in hex digits, not bits.
func SatisfiesDifficulty(hash string, difficulty int) bool {
	if difficulty <= 0 {
		return true
	}
	if len(hash) < difficulty {
		return false
	}
	for i := 0; i < difficulty; i++ {
		if hash[i] != '0' {
			return false
		}
	}
	return true
}
