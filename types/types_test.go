package types

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseConnectorStatus(t *testing.T) {
	status, err := ParseConnectorStatus("Available")
	if err != nil {
		t.Fatalf("valid status rejected: %v", err)
	}
	if status != ConnectorStatusAvailable {
		t.Errorf("unexpected status %q", status)
	}
	if _, err = ParseConnectorStatus("Charging"); err == nil {
		t.Error("unknown status must be rejected, not defaulted")
	}
	if _, err = ParseConnectorStatus("available"); err == nil {
		t.Error("status values are case sensitive")
	}
}

func TestParseConnectorType(t *testing.T) {
	if _, err := ParseConnectorType("Chademo"); err != nil {
		t.Errorf("valid type rejected: %v", err)
	}
	if _, err := ParseConnectorType("Tesla"); err == nil {
		t.Error("unknown type must be rejected")
	}
}

func TestParseIdentifierType(t *testing.T) {
	if _, err := ParseIdentifierType("evco-id"); err != nil {
		t.Errorf("valid identifier type rejected: %v", err)
	}
	if _, err := ParseIdentifierType("email"); err == nil {
		t.Error("unknown identifier type must be rejected")
	}
}

func TestParseIdentifiers(t *testing.T) {
	if _, err := ParseConnectorID("165946"); err != nil {
		t.Errorf("valid connector id rejected: %v", err)
	}
	if _, err := ParseConnectorID(""); err == nil {
		t.Error("empty identifier must be rejected")
	}
	if _, err := ParseConnectorID(strings.Repeat("x", 129)); err == nil {
		t.Error("overlong identifier must be rejected")
	}
	if _, err := ParseRFID("04A1\tB2"); err == nil {
		t.Error("control characters must be rejected")
	}
}

func TestDateTimeJSON(t *testing.T) {
	dt := NewDateTime(time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC))
	data, err := json.Marshal(dt)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"2024-06-01T12:30:00Z"` {
		t.Errorf("unexpected encoding %s", string(data))
	}
	var decoded DateTime
	if err = json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !decoded.Equal(dt.Time) {
		t.Errorf("round trip changed the value: %v", decoded)
	}
	if err = json.Unmarshal([]byte(`"01.06.2024"`), &decoded); err == nil {
		t.Error("non RFC3339 value must be rejected")
	}
}
