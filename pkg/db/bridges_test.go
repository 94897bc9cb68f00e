package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func TestBridges_CreateAndGet(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	store := database.Bridges()

	b := &Bridge{
		ID:      "001122ff",
		Host:    "10.0.0.5",
		Port:    80,
		APIKey:  "ABC123",
		Source:  SourceUser,
		Options: DefaultOptions(),
	}
	if err := store.Create(ctx, b); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := store.Get(ctx, "001122ff")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Host != "10.0.0.5" || got.Port != 80 || got.APIKey != "ABC123" {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.Source != SourceUser {
		t.Errorf("expected source user, got %q", got.Source)
	}
	if !got.Options.AllowVirtualSensors || !got.Options.AllowGroups || !got.Options.AllowNewDevices {
		t.Errorf("expected default options enabled, got %+v", got.Options)
	}
}

func TestBridges_GetNotFound(t *testing.T) {
	database := testDB(t)

	_, err := database.Bridges().Get(context.Background(), "missing")
	if !errors.Is(err, ErrBridgeNotFound) {
		t.Errorf("expected ErrBridgeNotFound, got %v", err)
	}
}

func TestBridges_DuplicateCreateFails(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	store := database.Bridges()

	b := &Bridge{ID: "001122ff", Host: "10.0.0.5", Port: 80, APIKey: "ABC", Source: SourceUser, Options: DefaultOptions()}
	if err := store.Create(ctx, b); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.Create(ctx, b); err == nil {
		t.Error("expected second create for same id to fail")
	}
}

func TestBridges_UpdateConnection(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	store := database.Bridges()

	b := &Bridge{ID: "001122ff", Host: "10.0.0.5", Port: 80, APIKey: "ABC", Source: SourceUser, Options: DefaultOptions()}
	if err := store.Create(ctx, b); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := store.UpdateConnection(ctx, "001122ff", "10.0.0.9", 8080, "XYZ"); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := store.Get(ctx, "001122ff")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Host != "10.0.0.9" || got.Port != 8080 || got.APIKey != "XYZ" {
		t.Errorf("connection not updated: %+v", got)
	}

	// Empty key keeps the stored credential
	if err := store.UpdateConnection(ctx, "001122ff", "10.0.0.10", 80, ""); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	got, _ = store.Get(ctx, "001122ff")
	if got.APIKey != "XYZ" {
		t.Errorf("credential should be untouched on empty key, got %q", got.APIKey)
	}
	if got.Host != "10.0.0.10" {
		t.Errorf("host not updated, got %q", got.Host)
	}
}

func TestBridges_UpdateConnectionNotFound(t *testing.T) {
	database := testDB(t)

	err := database.Bridges().UpdateConnection(context.Background(), "missing", "h", 80, "k")
	if !errors.Is(err, ErrBridgeNotFound) {
		t.Errorf("expected ErrBridgeNotFound, got %v", err)
	}
}

func TestBridges_UpdateOptions(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	store := database.Bridges()

	b := &Bridge{ID: "001122ff", Host: "10.0.0.5", Port: 80, APIKey: "ABC", Source: SourceUser, Options: DefaultOptions()}
	if err := store.Create(ctx, b); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	opts := Options{AllowVirtualSensors: false, AllowGroups: true, AllowNewDevices: false}
	if err := store.UpdateOptions(ctx, "001122ff", opts); err != nil {
		t.Fatalf("update options failed: %v", err)
	}

	got, err := store.Get(ctx, "001122ff")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Options != opts {
		t.Errorf("expected options %+v, got %+v", opts, got.Options)
	}
}

func TestBridges_ListAndDelete(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	store := database.Bridges()

	for _, id := range []string{"aaaa", "bbbb"} {
		b := &Bridge{ID: id, Host: "10.0.0.5", Port: 80, APIKey: "k", Source: SourceUser, Options: DefaultOptions()}
		if err := store.Create(ctx, b); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	bridges, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(bridges) != 2 {
		t.Fatalf("expected 2 bridges, got %d", len(bridges))
	}

	if err := store.Delete(ctx, "aaaa"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	bridges, _ = store.List(ctx)
	if len(bridges) != 1 || bridges[0].ID != "bbbb" {
		t.Errorf("unexpected bridges after delete: %v", bridges)
	}
}

func TestSettings_BootstrapAndLoad(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	needs, err := database.NeedsBootstrap(ctx)
	if err != nil {
		t.Fatalf("needs bootstrap check failed: %v", err)
	}
	if !needs {
		t.Fatal("fresh database should need bootstrap")
	}

	if err := database.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	s, err := database.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("load settings failed: %v", err)
	}
	if s.Address() != "0.0.0.0:8080" {
		t.Errorf("unexpected default address %q", s.Address())
	}
}
