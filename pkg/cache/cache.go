// Package cache stores computed schedule and layout results keyed by graph
// fingerprint, so repeated runs over an unchanged plan skip both engines.
//
// Three backends implement the same [Cache] interface: a file cache for the
// CLI, a Redis cache for multi-instance serve deployments, and a null cache
// for tests or when caching is disabled. Entries carry a TTL; the derived
// results are disposable artifacts, so losing an entry only costs a
// recomputation.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/mbertsch/critpath/pkg/graph"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default TTLs per entry kind. Schedules and layouts are cheap to recompute
// but expensive to re-render, so artifacts keep a longer lease.
const (
	// TTLResult applies to cached schedule+layout payloads.
	TTLResult = 24 * time.Hour
	// TTLArtifact applies to rendered output bytes (SVG, PNG, PDF, JSON).
	TTLArtifact = 7 * 24 * time.Hour
)

// Hash returns the hex-encoded SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Fingerprint derives a deterministic content key for a graph snapshot.
// Only nodes and edges participate - the snapshot version is a session
// counter, not content, and would defeat cross-run caching.
func Fingerprint(snap graph.Snapshot) string {
	payload := struct {
		Nodes []string     `json:"nodes"`
		Edges []graph.Edge `json:"edges"`
	}{snap.Nodes, snap.Edges}

	data, _ := json.Marshal(payload)
	return Hash(data)
}

// ResultKey namespaces a fingerprint for computed schedule+layout entries.
func ResultKey(fingerprint string) string {
	return "result:" + fingerprint
}

// ArtifactKey namespaces a fingerprint for rendered output bytes of one format.
func ArtifactKey(fingerprint, format string) string {
	return "artifact:" + fingerprint + ":" + format
}
