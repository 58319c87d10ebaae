package hashutil

import (
	"encoding/json"
	"testing"
)

func TestHash_Deterministic(t *testing.T) {
	body := map[string]interface{}{"b": 2, "a": 1}
	h1, err := Hash(body)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := Hash(body)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 != h2 {
		t.Errorf("Hash is not deterministic: %s != %s", h1, h2)
	}
}

func TestHash_FieldOrderIndependent(t *testing.T) {
	// Marshaled key order in the input struct/map must not affect the hash:
	// CanonicalJSON re-sorts keys before hashing.
	a := struct {
		A int `json:"a"`
		B int `json:"b"`
	}{A: 1, B: 2}
	b := struct {
		B int `json:"b"`
		A int `json:"a"`
	}{B: 2, A: 1}

	ha, err := Hash(a)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	hb, err := Hash(b)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if ha != hb {
		t.Errorf("Hash depends on declared field order: %s != %s", ha, hb)
	}
}

func TestHash_KnownVector(t *testing.T) {
	h, err := Hash(map[string]interface{}{"hello": "world"})
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	// sha256(`{"hello":"world"}`)
	want := "93a23971a914e5eacbf0a8d25154cda309c3c1c72fbb9914d47c60f3cb681588"
	if h != want {
		t.Errorf("Hash(%q) = %s, want %s", `{"hello":"world"}`, h, want)
	}
}

func TestHash_LargeNonceNotRoundedByFloat64(t *testing.T) {
	// 2^53 + 1 is the smallest positive integer a float64 cannot represent
	// exactly; CanonicalJSON must preserve it verbatim via json.Number.
	const big = "9007199254740993"
	canon, err := CanonicalJSON(map[string]json.RawMessage{"nonce": json.RawMessage(big)})
	if err != nil {
		t.Fatalf("CanonicalJSON: %v", err)
	}
	if got := string(canon); got != `{"nonce":9007199254740993}` {
		t.Errorf("CanonicalJSON rounded a large integer: got %s", got)
	}
}

func TestSatisfiesDifficulty(t *testing.T) {
	tests := []struct {
		hash       string
		difficulty int
		want       bool
	}{
		{"000abc", 3, true},
		{"000abc", 4, false},
		{"00abc", 0, true},
		{"abc", 1, false},
		{"0", 1, true},
	}
	for _, tt := range tests {
		if got := SatisfiesDifficulty(tt.hash, tt.difficulty); got != tt.want {
			t.Errorf("SatisfiesDifficulty(%q, %d) = %v, want %v", tt.hash, tt.difficulty, got, tt.want)
		}
	}
}
