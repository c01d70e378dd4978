package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// AttributeKeyOpts captures everything that influences an attribute
// computation besides the hierarchy itself. Two computations with the same
// tree hash and the same options produce the same result, so they share a
// cache entry.
type AttributeKeyOpts struct {
	Attribute  string `json:"attribute"`
	Base       string `json:"base,omitempty"` // extinction's base attribute
	Increasing bool   `json:"increasing"`
}

// ArtifactKeyOpts captures everything that influences a rendered artifact.
type ArtifactKeyOpts struct {
	Format    string `json:"format"`
	Attribute string `json:"attribute"`
}

// Keyer generates cache keys for the different entry types.
type Keyer interface {
	// AttributeKey generates a key for a computed attribute array.
	AttributeKey(treeHash string, opts AttributeKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generation strategy.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// AttributeKey generates a key for a computed attribute array.
func (k *DefaultKeyer) AttributeKey(treeHash string, opts AttributeKeyOpts) string {
	return hashKey("attr", treeHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", treeHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, e.g. when
// several datasets share one Redis instance.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// AttributeKey generates a prefixed attribute key.
func (k *ScopedKeyer) AttributeKey(treeHash string, opts AttributeKeyOpts) string {
	return k.prefix + k.inner.AttributeKey(treeHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(treeHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Use full SHA-256 hash (64 hex chars / 256 bits) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
