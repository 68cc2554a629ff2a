package builtin

import (
	"sync"

	"golang.org/x/crypto/blake2b"
)

// generationCache memoizes a runtime-defined replacement's generated
// before/after body strings, keyed by a content hash of the template plus
// the call-site parameter strings. This avoids re-substituting holes for a
// macro invoked repeatedly with identical parameters — e.g. the same macro
// call appearing inside a loop body re-executed across several top-level
// Execute calls against one registry.
//
// Grounded on core/planfmt/idfactory.go's use of golang.org/x/crypto hash
// primitives for deterministic content-addressed keys; blake2b is used here
// in place of that file's sha3+hkdf pairing because this cache only needs
// content addressing, not key derivation.
type generationCache struct {
	mu    sync.Mutex
	pairs map[[32]byte][2]string
}

func newGenerationCache() *generationCache {
	return &generationCache{pairs: make(map[[32]byte][2]string)}
}

func (c *generationCache) get(key [32]byte) (before, after string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pair, ok := c.pairs[key]
	if !ok {
		return "", "", false
	}
	return pair[0], pair[1], true
}

func (c *generationCache) put(key [32]byte, before, after string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pairs[key] = [2]string{before, after}
}

func cacheKey(beforeProto, afterProto string, params []string) [32]byte {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(beforeProto))
	h.Write([]byte{0})
	h.Write([]byte(afterProto))
	for _, p := range params {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
