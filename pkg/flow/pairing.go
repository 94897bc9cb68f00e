package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mkrogh/bridgeway/pkg/bridge"
	"github.com/mkrogh/bridgeway/pkg/db"
	"github.com/mkrogh/bridgeway/pkg/registry"
)

// Flow is one pairing flow instance. It advances strictly sequentially:
// every call renders the next prompt or a terminal outcome, and nothing is
// persisted before the ledger commit, so abandoning a flow at any prompt
// has no side effects.
type Flow struct {
	mu      sync.Mutex
	session Session
	step    string
	svc     *bridge.Service
	ledger  *registry.Ledger
}

func newFlow(id string, seed Seed, svc *bridge.Service, ledger *registry.Ledger) *Flow {
	s := Session{
		ID:         id,
		Trigger:    seed.Trigger,
		Host:       seed.Host,
		Port:       seed.Port,
		APIKey:     seed.APIKey,
		AddonLabel: seed.AddonLabel,
	}
	if seed.RawID != "" {
		s.BridgeID = bridge.NormalizeID(seed.RawID)
	}
	return &Flow{session: s, svc: svc, ledger: ledger}
}

// start runs the trigger's entry logic and returns the first result.
func (f *Flow) start(ctx context.Context) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.session.Trigger {
	case TriggerUser:
		f.session.Candidates = f.svc.Discover(ctx)
		if len(f.session.Candidates) == 0 {
			return f.form(StepManualInput), nil
		}
		choices := make([]string, 0, len(f.session.Candidates)+1)
		for _, c := range f.session.Candidates {
			choices = append(choices, c.Host)
		}
		choices = append(choices, ManualChoice)
		r := f.form(StepChoose)
		r.Choices = choices
		return r, nil

	case TriggerReauth:
		if f.session.Host == "" || f.session.BridgeID == "" {
			return Result{}, errors.New("reauth requires a registered bridge")
		}
		return f.form(StepLink), nil

	case TriggerAnnounce:
		if f.session.BridgeID == "" || f.session.Host == "" {
			return Result{}, errors.New("announcement requires bridge id and host")
		}
		existing, err := f.ledger.Existing(ctx, f.session.BridgeID)
		if err != nil && !errors.Is(err, db.ErrBridgeNotFound) {
			return Result{}, err
		}
		if existing != nil && existing.Source == db.SourceAddon {
			// Addon-managed bridge: do not even contact the device.
			return f.abort(ReasonAlreadyConfigured), nil
		}
		return f.form(StepLink), nil

	case TriggerAddon:
		if f.session.BridgeID == "" || f.session.APIKey == "" {
			return Result{}, errors.New("addon announcement requires bridge id and credential")
		}
		r := f.form(StepAddonConfirm)
		r.Placeholders = map[string]string{"addon": f.session.AddonLabel}
		return r, nil

	default:
		return Result{}, fmt.Errorf("unknown pairing trigger %q", f.session.Trigger)
	}
}

// advance consumes the input for the current step and moves the flow on.
func (f *Flow) advance(ctx context.Context, in Input) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.step {
	case StepChoose:
		return f.stepChoose(in)
	case StepManualInput:
		return f.stepManualInput(in)
	case StepLink:
		return f.stepLink(ctx)
	case StepAddonConfirm:
		return f.register(ctx)
	default:
		return Result{}, fmt.Errorf("flow has no pending step")
	}
}

func (f *Flow) stepChoose(in Input) (Result, error) {
	if in.Host == ManualChoice {
		return f.form(StepManualInput), nil
	}
	for _, c := range f.session.Candidates {
		if c.Host == in.Host {
			f.session.Host = c.Host
			f.session.Port = c.Port
			f.session.BridgeID = bridge.NormalizeID(c.ID)
			return f.form(StepLink), nil
		}
	}
	// Not one of the offered candidates: render the choice again.
	r := f.form(StepChoose)
	for _, c := range f.session.Candidates {
		r.Choices = append(r.Choices, c.Host)
	}
	r.Choices = append(r.Choices, ManualChoice)
	return r, nil
}

func (f *Flow) stepManualInput(in Input) (Result, error) {
	if in.Host == "" {
		return f.form(StepManualInput), nil
	}
	f.session.Host = in.Host
	f.session.Port = in.Port
	if f.session.Port == 0 {
		f.session.Port = DefaultPort
	}
	return f.form(StepLink), nil
}

func (f *Flow) stepLink(ctx context.Context) (Result, error) {
	log.Debug().
		Str("host", f.session.Host).
		Int("port", f.session.Port).
		Msg("Attempting to link with gateway")

	key, err := f.svc.Negotiate(ctx, f.session.Host, f.session.Port)
	if errors.Is(err, bridge.ErrLinkButtonNotPressed) {
		r := f.form(StepLink)
		r.Reason = ReasonLinkingNotPossible
		return r, nil
	}
	if err != nil {
		// Timeout, request or response failure: retryable from the
		// same prompt, host and port stay in the session.
		r := f.form(StepLink)
		r.Reason = ReasonNoKey
		return r, nil
	}
	f.session.APIKey = key

	if f.session.BridgeID == "" {
		id, err := f.svc.ResolveID(ctx, f.session.Host, f.session.Port, f.session.APIKey)
		if err != nil {
			// Identity ambiguity is not safely retryable.
			return f.abort(ReasonNoBridges), nil
		}
		f.session.BridgeID = id
	}

	return f.register(ctx)
}

func (f *Flow) register(ctx context.Context) (Result, error) {
	_, created, err := f.ledger.Commit(ctx, registry.Request{
		ID:        f.session.BridgeID,
		Host:      f.session.Host,
		Port:      f.session.Port,
		APIKey:    f.session.APIKey,
		Source:    f.session.Trigger.Source(),
		Announced: f.session.Trigger.Announced(),
	})
	if err != nil {
		return Result{}, err
	}
	if !created {
		return f.abort(ReasonAlreadyConfigured), nil
	}
	f.step = ""
	return Result{Kind: KindCreated, BridgeID: f.session.BridgeID}, nil
}

func (f *Flow) form(step string) Result {
	f.step = step
	return Result{Kind: KindForm, Step: step}
}

func (f *Flow) abort(reason string) Result {
	f.step = ""
	return Result{Kind: KindAbort, Reason: reason}
}
