package envelope

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestWrapProducesSingleRootKey(t *testing.T) {
	data, err := Wrap("connector-post-status", map[string]string{"status": "Available"})
	if err != nil {
		t.Fatalf("wrap failed: %v", err)
	}
	var outer map[string]json.RawMessage
	if err = json.Unmarshal(data, &outer); err != nil {
		t.Fatalf("invalid json produced: %v", err)
	}
	if len(outer) != 1 {
		t.Fatalf("expected exactly one root key, got %d", len(outer))
	}
	if _, ok := outer["connector-post-status"]; !ok {
		t.Fatalf("missing root key in %s", string(data))
	}
}

func TestUnwrapRoundTrip(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	data, err := Wrap("station-post", payload{Name: "Dock A"})
	if err != nil {
		t.Fatalf("wrap failed: %v", err)
	}
	raw, err := Unwrap("station-post", data)
	if err != nil {
		t.Fatalf("unwrap failed: %v", err)
	}
	var got payload
	if err = json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if got.Name != "Dock A" {
		t.Errorf("expected Dock A, got %q", got.Name)
	}
}

func TestUnwrapMissingRootKey(t *testing.T) {
	_, err := Unwrap("session-start", []byte(`{"session-stop":{}}`))
	if err == nil {
		t.Fatal("expected error for missing root key")
	}
	if !strings.Contains(err.Error(), "missing root key") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWrapTransformHook(t *testing.T) {
	hook := func(raw json.RawMessage) (json.RawMessage, error) {
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		m["vendor-extension"] = true
		return json.Marshal(m)
	}
	data, err := Wrap("rfid-verify", map[string]string{"rfid": "04A1B2"}, hook)
	if err != nil {
		t.Fatalf("wrap failed: %v", err)
	}
	raw, err := Unwrap("rfid-verify", data)
	if err != nil {
		t.Fatalf("unwrap failed: %v", err)
	}
	var m map[string]any
	if err = json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if m["vendor-extension"] != true {
		t.Errorf("transform hook was not applied: %v", m)
	}
}

func TestRootKey(t *testing.T) {
	key, err := RootKey([]byte(`{"session-post":{"id":"s1"}}`))
	if err != nil {
		t.Fatalf("root key failed: %v", err)
	}
	if key != "session-post" {
		t.Errorf("expected session-post, got %q", key)
	}
	if _, err = RootKey([]byte(`{"a":{},"b":{}}`)); err == nil {
		t.Error("expected error for two root keys")
	}
	if _, err = RootKey([]byte(`{}`)); err == nil {
		t.Error("expected error for empty envelope")
	}
}
