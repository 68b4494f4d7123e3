// Package session holds the client-side session context: the uploaded resume
// reference, its extracted text, the answer log, saved resumes, the profile and
// the sealed auth token. Values are JSON documents stored under fixed keys in a
// pluggable Store (file, Redis or Postgres).
package session

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// Store is a flat key/value store of JSON documents.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value for key. value must be valid JSON.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
	// Close releases connections held by the store.
	Close() error
}

// Open selects a Store from a URL:
//   - redis://, rediss://   Redis via go-redis
//   - postgres://, postgresql://  Postgres via pgx
//   - file:///path or a bare path  JSON file
func Open(ctx context.Context, storeURL string, log zerolog.Logger) (Store, error) {
	if storeURL == "" {
		return nil, fmt.Errorf("store URL is empty")
	}

	scheme := ""
	if i := strings.Index(storeURL, "://"); i > 0 {
		scheme = strings.ToLower(storeURL[:i])
	}

	switch scheme {
	case "redis", "rediss":
		return OpenRedis(ctx, storeURL, log)
	case "postgres", "postgresql":
		return OpenPostgres(ctx, storeURL, log)
	case "file":
		u, err := url.Parse(storeURL)
		if err != nil {
			return nil, fmt.Errorf("invalid store URL: %w", err)
		}
		return NewFileStore(u.Path, log)
	case "":
		return NewFileStore(storeURL, log)
	default:
		return nil, fmt.Errorf("unsupported store scheme %q", scheme)
	}
}
