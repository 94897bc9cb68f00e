package flow

import (
	"context"

	"github.com/mkrogh/bridgeway/pkg/db"
)

// OptionsNegotiator adjusts the behavior toggles of a registered bridge.
// It is independent of the pairing flow: a single present-then-replace
// step with no network calls.
type OptionsNegotiator struct {
	store db.BridgeStore
}

// NewOptionsNegotiator creates an OptionsNegotiator.
func NewOptionsNegotiator(store db.BridgeStore) *OptionsNegotiator {
	return &OptionsNegotiator{store: store}
}

// Current returns the bridge's option values.
func (o *OptionsNegotiator) Current(ctx context.Context, bridgeID string) (db.Options, error) {
	b, err := o.store.Get(ctx, bridgeID)
	if err != nil {
		return db.Options{}, err
	}
	return b.Options, nil
}

// Apply replaces all option values on the bridge.
func (o *OptionsNegotiator) Apply(ctx context.Context, bridgeID string, opts db.Options) (db.Options, error) {
	if err := o.store.UpdateOptions(ctx, bridgeID, opts); err != nil {
		return db.Options{}, err
	}
	return opts, nil
}
