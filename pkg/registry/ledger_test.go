package registry

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mkrogh/bridgeway/pkg/db"
)

func testStore(t *testing.T) db.BridgeStore {
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

func TestCommit_CreatesRecord(t *testing.T) {
	ledger := NewLedger(testStore(t))

	b, created, err := ledger.Commit(context.Background(), Request{
		ID: "001122ff", Host: "10.0.0.5", Port: 80, APIKey: "ABC123", Source: db.SourceUser,
	})
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if !created {
		t.Error("expected created = true for first commit")
	}
	if b.Host != "10.0.0.5" || b.Port != 80 || b.APIKey != "ABC123" {
		t.Errorf("unexpected record: %+v", b)
	}
}

func TestCommit_SecondCommitUpdatesInPlace(t *testing.T) {
	store := testStore(t)
	ledger := NewLedger(store)
	ctx := context.Background()

	if _, _, err := ledger.Commit(ctx, Request{
		ID: "001122ff", Host: "10.0.0.5", Port: 80, APIKey: "ABC123", Source: db.SourceUser,
	}); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}

	b, created, err := ledger.Commit(ctx, Request{
		ID: "001122ff", Host: "10.0.0.9", Port: 8080, APIKey: "XYZ789", Source: db.SourceUser,
	})
	if err != nil {
		t.Fatalf("second commit failed: %v", err)
	}
	if created {
		t.Error("expected created = false for re-pairing")
	}
	if b.Host != "10.0.0.9" || b.Port != 8080 || b.APIKey != "XYZ789" {
		t.Errorf("record not refreshed: %+v", b)
	}

	bridges, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(bridges) != 1 {
		t.Errorf("expected exactly one record, got %d", len(bridges))
	}
}

func TestCommit_AnnouncementDefersToAddonRecord(t *testing.T) {
	ledger := NewLedger(testStore(t))
	ctx := context.Background()

	if _, _, err := ledger.Commit(ctx, Request{
		ID: "001122ff", Host: "10.0.0.5", Port: 80, APIKey: "ABC123", Source: db.SourceAddon,
	}); err != nil {
		t.Fatalf("addon commit failed: %v", err)
	}

	b, created, err := ledger.Commit(ctx, Request{
		ID: "001122ff", Host: "10.0.0.9", Port: 8080, APIKey: "OTHER", Source: db.SourceAnnounce, Announced: true,
	})
	if err != nil {
		t.Fatalf("announce commit failed: %v", err)
	}
	if created {
		t.Error("expected created = false")
	}
	if b.Host != "10.0.0.5" || b.APIKey != "ABC123" {
		t.Errorf("addon-managed record must be untouched by announcement, got %+v", b)
	}
}

func TestCommit_UserOverridesAddonRecord(t *testing.T) {
	ledger := NewLedger(testStore(t))
	ctx := context.Background()

	if _, _, err := ledger.Commit(ctx, Request{
		ID: "001122ff", Host: "10.0.0.5", Port: 80, APIKey: "ABC123", Source: db.SourceAddon,
	}); err != nil {
		t.Fatalf("addon commit failed: %v", err)
	}

	// A user-initiated flow is not announcement-class and wins.
	b, created, err := ledger.Commit(ctx, Request{
		ID: "001122ff", Host: "10.0.0.9", Port: 8080, APIKey: "USERKEY", Source: db.SourceUser,
	})
	if err != nil {
		t.Fatalf("user commit failed: %v", err)
	}
	if created {
		t.Error("expected created = false")
	}
	if b.Host != "10.0.0.9" || b.APIKey != "USERKEY" {
		t.Errorf("user flow should refresh the record, got %+v", b)
	}
}

func TestCommit_ConcurrentSameIdentityCreatesOnce(t *testing.T) {
	store := testStore(t)
	ledger := NewLedger(store)
	ctx := context.Background()

	const flows = 16
	var wg sync.WaitGroup
	createdCount := make(chan bool, flows)

	for i := 0; i < flows; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, created, err := ledger.Commit(ctx, Request{
				ID: "001122ff", Host: "10.0.0.5", Port: 80, APIKey: "ABC123", Source: db.SourceUser,
			})
			if err != nil {
				t.Errorf("commit failed: %v", err)
				return
			}
			createdCount <- created
		}()
	}
	wg.Wait()
	close(createdCount)

	creates := 0
	for created := range createdCount {
		if created {
			creates++
		}
	}
	if creates != 1 {
		t.Errorf("expected exactly one creation, got %d", creates)
	}

	bridges, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(bridges) != 1 {
		t.Errorf("expected exactly one record, got %d", len(bridges))
	}
}
