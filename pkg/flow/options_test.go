package flow

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mkrogh/bridgeway/pkg/db"
)

func optionsStore(t *testing.T) db.BridgeStore {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database.Bridges()
}

func TestOptions_DefaultsOnNewRecord(t *testing.T) {
	store := optionsStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, &db.Bridge{
		ID: "001122ff", Host: "10.0.0.5", Port: 80, APIKey: "k",
		Source: db.SourceUser, Options: db.DefaultOptions(),
	}); err != nil {
		t.Fatalf("seed record failed: %v", err)
	}

	neg := NewOptionsNegotiator(store)
	opts, err := neg.Current(ctx, "001122ff")
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if !opts.AllowVirtualSensors || !opts.AllowGroups || !opts.AllowNewDevices {
		t.Errorf("expected all defaults enabled, got %+v", opts)
	}
}

func TestOptions_ApplyIsFullReplace(t *testing.T) {
	store := optionsStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, &db.Bridge{
		ID: "001122ff", Host: "10.0.0.5", Port: 80, APIKey: "k",
		Source: db.SourceUser, Options: db.DefaultOptions(),
	}); err != nil {
		t.Fatalf("seed record failed: %v", err)
	}

	neg := NewOptionsNegotiator(store)
	want := db.Options{AllowVirtualSensors: false, AllowGroups: false, AllowNewDevices: true}
	got, err := neg.Apply(ctx, "001122ff", want)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	stored, _ := neg.Current(ctx, "001122ff")
	if stored != want {
		t.Errorf("options not persisted, got %+v", stored)
	}
}

func TestOptions_UnknownBridge(t *testing.T) {
	neg := NewOptionsNegotiator(optionsStore(t))

	if _, err := neg.Current(context.Background(), "missing"); !errors.Is(err, db.ErrBridgeNotFound) {
		t.Errorf("expected ErrBridgeNotFound, got %v", err)
	}
}
