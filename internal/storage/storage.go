// Package storage keeps local interview sessions between CLI invocations.
package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/mock-interview-client/internal/domain"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Store persists sessions keyed by id.
type Store interface {
	Close() error
	PutSession(s domain.Session) error
	Session(id string) (domain.Session, error)
	Sessions() ([]domain.Session, error)
	DeleteSession(id string) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	SessionTTL      time.Duration
	CleanupInterval time.Duration
}

const (
	defaultSessionTTL      = 7 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "memory":
		return newMemoryStore(opts), nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}
