package announce

import "testing"

func TestParseNetwork_Valid(t *testing.T) {
	p, err := ParseNetwork([]byte(`{"id":"00:11:22:FF","host":"10.0.0.5","port":80}`))
	if err != nil {
		t.Fatalf("expected valid payload, got: %v", err)
	}
	if p.ID != "00:11:22:FF" || p.Host != "10.0.0.5" || p.Port != 80 {
		t.Errorf("unexpected payload: %+v", p)
	}
}

func TestParseNetwork_MissingFields(t *testing.T) {
	if _, err := ParseNetwork([]byte(`{"host":"10.0.0.5"}`)); err == nil {
		t.Error("expected validation error for missing id and port")
	}
}

func TestParseNetwork_BadPort(t *testing.T) {
	if _, err := ParseNetwork([]byte(`{"id":"x","host":"10.0.0.5","port":"eighty"}`)); err == nil {
		t.Error("expected validation error for non-integer port")
	}
	if _, err := ParseNetwork([]byte(`{"id":"x","host":"10.0.0.5","port":0}`)); err == nil {
		t.Error("expected validation error for port 0")
	}
}

func TestParseNetwork_NotJSON(t *testing.T) {
	if _, err := ParseNetwork([]byte(`not json`)); err == nil {
		t.Error("expected error for non-JSON payload")
	}
}

func TestParseAddon_Valid(t *testing.T) {
	p, err := ParseAddon([]byte(`{"id":"00:11:22:FF","host":"172.30.0.3","port":40850,"api_key":"ABC123","addon":"gateway-addon"}`))
	if err != nil {
		t.Fatalf("expected valid payload, got: %v", err)
	}
	if p.APIKey != "ABC123" || p.Addon != "gateway-addon" {
		t.Errorf("unexpected payload: %+v", p)
	}
}

func TestParseAddon_RequiresAPIKey(t *testing.T) {
	if _, err := ParseAddon([]byte(`{"id":"x","host":"h","port":80}`)); err == nil {
		t.Error("expected validation error for missing api_key")
	}
}

func TestParseAddon_RejectsUnknownFields(t *testing.T) {
	if _, err := ParseAddon([]byte(`{"id":"x","host":"h","port":80,"api_key":"k","extra":true}`)); err == nil {
		t.Error("expected validation error for unknown field")
	}
}
