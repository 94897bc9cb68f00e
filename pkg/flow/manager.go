package flow

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mkrogh/bridgeway/pkg/bridge"
	"github.com/mkrogh/bridgeway/pkg/registry"
)

var ErrFlowNotFound = errors.New("pairing flow not found")

// Manager owns the live pairing flow instances. Flows are addressed by an
// opaque handle; terminal results drop the instance, and Cancel abandons
// one with no persisted side effects.
type Manager struct {
	svc    *bridge.Service
	ledger *registry.Ledger

	mu    sync.Mutex
	flows map[string]*Flow
}

// NewManager creates a Manager.
func NewManager(svc *bridge.Service, ledger *registry.Ledger) *Manager {
	return &Manager{
		svc:    svc,
		ledger: ledger,
		flows:  make(map[string]*Flow),
	}
}

// Start creates a flow from the seed and runs its entry step. The returned
// handle addresses the flow in Advance and Cancel; it is only retained
// when the first result asks for more input.
func (m *Manager) Start(ctx context.Context, seed Seed) (string, Result, error) {
	f := newFlow(uuid.NewString(), seed, m.svc, m.ledger)

	res, err := f.start(ctx)
	if err != nil {
		return "", Result{}, err
	}

	if !res.Terminal() {
		m.mu.Lock()
		m.flows[f.session.ID] = f
		m.mu.Unlock()
	}

	log.Info().
		Str("flow", f.session.ID).
		Str("trigger", string(seed.Trigger)).
		Str("result", string(res.Kind)).
		Msg("Pairing flow started")

	return f.session.ID, res, nil
}

// Advance submits input to a flow's pending step.
func (m *Manager) Advance(ctx context.Context, id string, in Input) (Result, error) {
	m.mu.Lock()
	f, ok := m.flows[id]
	m.mu.Unlock()
	if !ok {
		return Result{}, ErrFlowNotFound
	}

	res, err := f.advance(ctx, in)
	if err != nil {
		return Result{}, err
	}

	if res.Terminal() {
		m.remove(id)
		log.Info().
			Str("flow", id).
			Str("result", string(res.Kind)).
			Str("reason", res.Reason).
			Msg("Pairing flow finished")
	}
	return res, nil
}

// Cancel abandons a flow. Nothing was persisted before the ledger commit,
// so no cleanup beyond dropping the instance is needed.
func (m *Manager) Cancel(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.flows[id]; !ok {
		return ErrFlowNotFound
	}
	delete(m.flows, id)
	log.Info().Str("flow", id).Msg("Pairing flow abandoned")
	return nil
}

func (m *Manager) remove(id string) {
	m.mu.Lock()
	delete(m.flows, id)
	m.mu.Unlock()
}
