package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkrogh/bridgeway/pkg/bridge"
	"github.com/mkrogh/bridgeway/pkg/db"
	"github.com/mkrogh/bridgeway/pkg/flow"
	"github.com/mkrogh/bridgeway/pkg/registry"
)

type staticTransport struct {
	apiKey   string
	bridgeID string
}

func (s *staticTransport) Discover(ctx context.Context) ([]bridge.Candidate, error) {
	return nil, nil
}

func (s *staticTransport) GetAPIKey(ctx context.Context, host string, port int) (string, error) {
	return s.apiKey, nil
}

func (s *staticTransport) GetBridgeID(ctx context.Context, host string, port int, apiKey string) (string, error) {
	return s.bridgeID, nil
}

func testRouter(t *testing.T) (*Router, db.BridgeStore) {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	store := database.Bridges()
	ledger := registry.NewLedger(store)
	svc := bridge.NewService(&staticTransport{apiKey: "ABC123", bridgeID: "00:11:22:FF"})
	manager := flow.NewManager(svc, ledger)

	return NewRouter(manager, store, flow.NewOptionsNegotiator(store)), store
}

func doJSON(t *testing.T, r *Router, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.engine.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
		}
	}
	return w, out
}

func TestPairingFlow_OverHTTP(t *testing.T) {
	r, store := testRouter(t)

	// Empty discovery: the flow opens on manual input.
	w, res := doJSON(t, r, http.MethodPost, "/api/v1/pairing/flows", `{"trigger":"user"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %v", w.Code, res)
	}
	if res["step"] != flow.StepManualInput {
		t.Fatalf("expected manual_input step, got %v", res)
	}
	flowID, _ := res["flow_id"].(string)
	if flowID == "" {
		t.Fatal("expected a flow handle")
	}

	w, res = doJSON(t, r, http.MethodPost, "/api/v1/pairing/flows/"+flowID+"/steps", `{"host":"10.0.0.5","port":80}`)
	if w.Code != http.StatusOK || res["step"] != flow.StepLink {
		t.Fatalf("expected link step, got %d %v", w.Code, res)
	}

	w, res = doJSON(t, r, http.MethodPost, "/api/v1/pairing/flows/"+flowID+"/steps", `{}`)
	if w.Code != http.StatusOK || res["kind"] != string(flow.KindCreated) {
		t.Fatalf("expected created, got %d %v", w.Code, res)
	}
	if res["bridge_id"] != "001122ff" {
		t.Errorf("expected bridge_id 001122ff, got %v", res["bridge_id"])
	}

	if _, err := store.Get(context.Background(), "001122ff"); err != nil {
		t.Errorf("record missing after flow: %v", err)
	}
}

func TestPairingFlow_UnknownHandle(t *testing.T) {
	r, _ := testRouter(t)

	w, res := doJSON(t, r, http.MethodPost, "/api/v1/pairing/flows/nope/steps", `{}`)
	if w.Code != http.StatusNotFound || res["error"] != "flow_not_found" {
		t.Errorf("expected 404 flow_not_found, got %d %v", w.Code, res)
	}
}

func TestPairingFlow_InvalidTrigger(t *testing.T) {
	r, _ := testRouter(t)

	w, res := doJSON(t, r, http.MethodPost, "/api/v1/pairing/flows", `{"trigger":"announce"}`)
	if w.Code != http.StatusBadRequest || res["error"] != "invalid_trigger" {
		t.Errorf("expected 400 invalid_trigger, got %d %v", w.Code, res)
	}
}

func TestAddonEndpoint_ConfirmRegisters(t *testing.T) {
	r, store := testRouter(t)

	w, res := doJSON(t, r, http.MethodPost, "/api/v1/pairing/addon",
		`{"id":"00:AA:BB:CC","host":"172.30.0.3","port":40850,"api_key":"ADDONKEY","addon":"gateway-addon"}`)
	if w.Code != http.StatusOK || res["step"] != flow.StepAddonConfirm {
		t.Fatalf("expected addon_confirm, got %d %v", w.Code, res)
	}
	flowID, _ := res["flow_id"].(string)

	w, res = doJSON(t, r, http.MethodPost, "/api/v1/pairing/flows/"+flowID+"/steps", `{}`)
	if w.Code != http.StatusOK || res["kind"] != string(flow.KindCreated) {
		t.Fatalf("expected created, got %d %v", w.Code, res)
	}

	b, err := store.Get(context.Background(), "00aabbcc")
	if err != nil {
		t.Fatalf("record missing: %v", err)
	}
	if b.Source != db.SourceAddon {
		t.Errorf("expected addon source, got %q", b.Source)
	}
}

func TestOptionsEndpoints(t *testing.T) {
	r, store := testRouter(t)
	ctx := context.Background()

	if err := store.Create(ctx, &db.Bridge{
		ID: "001122ff", Host: "10.0.0.5", Port: 80, APIKey: "k",
		Source: db.SourceUser, Options: db.DefaultOptions(),
	}); err != nil {
		t.Fatalf("seed record failed: %v", err)
	}

	w, res := doJSON(t, r, http.MethodGet, "/api/v1/bridges/001122ff/options", "")
	if w.Code != http.StatusOK || res["allow_groups"] != true {
		t.Fatalf("expected defaults, got %d %v", w.Code, res)
	}

	// Partial updates are rejected: options replace as a whole.
	w, _ = doJSON(t, r, http.MethodPut, "/api/v1/bridges/001122ff/options", `{"allow_groups":false}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for partial options, got %d", w.Code)
	}

	w, res = doJSON(t, r, http.MethodPut, "/api/v1/bridges/001122ff/options",
		`{"allow_virtual_sensors":false,"allow_groups":false,"allow_new_devices":true}`)
	if w.Code != http.StatusOK || res["allow_virtual_sensors"] != false {
		t.Fatalf("expected replaced options, got %d %v", w.Code, res)
	}

	b, _ := store.Get(ctx, "001122ff")
	if b.Options.AllowVirtualSensors || b.Options.AllowGroups || !b.Options.AllowNewDevices {
		t.Errorf("options not persisted: %+v", b.Options)
	}
}

func TestBridgesEndpoints(t *testing.T) {
	r, store := testRouter(t)
	ctx := context.Background()

	if err := store.Create(ctx, &db.Bridge{
		ID: "001122ff", Host: "10.0.0.5", Port: 80, APIKey: "SECRET",
		Source: db.SourceUser, Options: db.DefaultOptions(),
	}); err != nil {
		t.Fatalf("seed record failed: %v", err)
	}

	w, res := doJSON(t, r, http.MethodGet, "/api/v1/bridges", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list failed: %d", w.Code)
	}
	if res["count"] != float64(1) {
		t.Errorf("expected one bridge, got %v", res["count"])
	}
	if strings.Contains(string(mustMarshal(t, res)), "SECRET") {
		t.Error("API key must never be exposed")
	}

	w, _ = doJSON(t, r, http.MethodDelete, "/api/v1/bridges/001122ff", "")
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}
	if _, err := store.Get(ctx, "001122ff"); err == nil {
		t.Error("bridge should be deleted")
	}
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return b
}
