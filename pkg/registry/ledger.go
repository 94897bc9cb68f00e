package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mkrogh/bridgeway/pkg/db"
)

// Request carries everything a flow has learned about a bridge by the time
// it is ready to register it. ID must already be canonical.
type Request struct {
	ID        string
	Host      string
	Port      int
	APIKey    string
	Source    string
	Announced bool
}

// Ledger is the single commit point for all pairing flows. It enforces
// at most one record per canonical bridge id: concurrent flows for the same
// bridge serialize on a per-id lock so creation happens exactly once, and
// re-pairing updates the existing record in place instead of duplicating it.
type Ledger struct {
	store db.BridgeStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLedger creates a Ledger over the given store.
func NewLedger(store db.BridgeStore) *Ledger {
	return &Ledger{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

func (l *Ledger) lockFor(id string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[id] = lock
	}
	return lock
}

// Existing returns the record for id, or db.ErrBridgeNotFound.
func (l *Ledger) Existing(ctx context.Context, id string) (*db.Bridge, error) {
	return l.store.Get(ctx, id)
}

// Commit registers a bridge. Returns the resulting record and whether it
// was newly created. created == false means the bridge was already
// registered; the record has been refreshed with the request's connection
// parameters unless the request came from an announcement and the existing
// record is addon-managed, in which case it is left untouched.
func (l *Ledger) Commit(ctx context.Context, req Request) (*db.Bridge, bool, error) {
	if req.ID == "" {
		return nil, false, errors.New("commit requires a canonical bridge id")
	}

	lock := l.lockFor(req.ID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := l.store.Get(ctx, req.ID)
	if errors.Is(err, db.ErrBridgeNotFound) {
		b := &db.Bridge{
			ID:      req.ID,
			Host:    req.Host,
			Port:    req.Port,
			APIKey:  req.APIKey,
			Source:  req.Source,
			Options: db.DefaultOptions(),
		}
		if err := l.store.Create(ctx, b); err != nil {
			return nil, false, fmt.Errorf("failed to register bridge: %w", err)
		}
		log.Info().Str("bridge", req.ID).Str("source", req.Source).Msg("Bridge registered")
		return b, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	// Addon-managed records outrank announcement-triggered flows.
	if req.Announced && existing.Source == db.SourceAddon {
		log.Debug().Str("bridge", req.ID).Msg("Announcement ignored, bridge is addon-managed")
		return existing, false, nil
	}

	if err := l.store.UpdateConnection(ctx, req.ID, req.Host, req.Port, req.APIKey); err != nil {
		return nil, false, fmt.Errorf("failed to refresh bridge: %w", err)
	}
	updated, err := l.store.Get(ctx, req.ID)
	if err != nil {
		return nil, false, err
	}
	log.Info().Str("bridge", req.ID).Msg("Bridge already registered, connection refreshed")
	return updated, false, nil
}
