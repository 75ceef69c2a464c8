package emp

import (
	"strings"
	"testing"

	"oioi/models"
	"oioi/types"
)

func user() models.User {
	return models.User{IdentifierType: types.IdentifierTypeRFID, Identifier: "04A1B2"}
}

func TestSessionStartOmitsAbsentPaymentReference(t *testing.T) {
	request, err := NewSessionStartRequest(user(), "165946")
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	data, err := request.ToJSON()
	if err != nil {
		t.Fatalf("encoding request: %v", err)
	}
	if strings.Contains(string(data), "payment-reference") {
		t.Errorf("absent payment reference must be omitted, not null: %s", string(data))
	}

	request.PaymentReference = "INV-42"
	data, err = request.ToJSON()
	if err != nil {
		t.Fatalf("encoding request: %v", err)
	}
	if !strings.Contains(string(data), `"payment-reference":"INV-42"`) {
		t.Errorf("payment reference lost: %s", string(data))
	}
}

func TestSessionStartRequestRoundTrip(t *testing.T) {
	request, err := NewSessionStartRequest(user(), "165946")
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	data, err := request.ToJSON()
	if err != nil {
		t.Fatalf("encoding request: %v", err)
	}
	decoded, err := ParseSessionStartRequest(data)
	if err != nil {
		t.Fatalf("decoding request: %v", err)
	}
	if decoded.User.Identifier != "04A1B2" || decoded.ConnectorId != "165946" {
		t.Errorf("round trip lost request data: %+v", decoded)
	}
}

func TestParseSessionStartResponse(t *testing.T) {
	body := `{"session-start":{"session-id":"S-77","is-stoppable":true},"result":{"code":"success","message":""}}`
	response, err := ParseSessionStartResponse([]byte(body))
	if err != nil {
		t.Fatalf("parsing response: %v", err)
	}
	if response.SessionId != "S-77" {
		t.Errorf("expected session S-77, got %q", response.SessionId)
	}
	if !response.IsStoppable {
		t.Error("stoppable flag lost")
	}
	if !response.Result().IsSuccess() {
		t.Errorf("expected success, got %s", response.Result().Code)
	}
}

func TestParseSessionStartResponseMissingRootKey(t *testing.T) {
	body := `{"result":{"code":"success"}}`
	if _, err := ParseSessionStartResponse([]byte(body)); err == nil {
		t.Error("response without root key must fail")
	}
	if _, ok := TryParseSessionStartResponse([]byte(body)); ok {
		t.Error("try-parse must report false on a foreign body")
	}
}

func TestParseSessionStartResponseMissingResult(t *testing.T) {
	body := `{"session-start":{"session-id":"S-77"}}`
	if _, err := ParseSessionStartResponse([]byte(body)); err == nil {
		t.Error("response without result must fail")
	}
}

func TestSessionStopRoundTrip(t *testing.T) {
	request, err := NewSessionStopRequest(user(), "165946", "S-77")
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	data, err := request.ToJSON()
	if err != nil {
		t.Fatalf("encoding request: %v", err)
	}
	decoded, err := ParseSessionStopRequest(data)
	if err != nil {
		t.Fatalf("decoding request: %v", err)
	}
	if decoded.SessionId != "S-77" {
		t.Errorf("round trip lost session id: %q", decoded.SessionId)
	}

	answer, err := NewSessionStopResponse(types.NotFound("session S-77 is not known")).ToJSON()
	if err != nil {
		t.Fatalf("encoding response: %v", err)
	}
	parsed, err := ParseSessionStopResponse(answer)
	if err != nil {
		t.Fatalf("parsing response: %v", err)
	}
	if parsed.Result().Code != types.ResultCodeNotFound {
		t.Errorf("expected not-found, got %s", parsed.Result().Code)
	}
}

func TestStationGetSurfaceValidation(t *testing.T) {
	if _, err := NewStationGetSurfaceRequest(48.0, 47.0, 2.0, 3.0); err == nil {
		t.Error("min-lat above max-lat must be rejected")
	}
	if _, err := NewStationGetSurfaceRequest(-91.0, 0.0, 0.0, 1.0); err == nil {
		t.Error("latitude below -90 must be rejected")
	}
	if _, err := NewStationGetSurfaceRequest(47.0, 48.0, 2.0, 185.0); err == nil {
		t.Error("longitude above 180 must be rejected")
	}
}

func TestStationGetSurfaceFiltersOmittedWhenEmpty(t *testing.T) {
	request, err := NewStationGetSurfaceRequest(47.0, 48.0, 2.0, 3.0)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	data, err := request.ToJSON()
	if err != nil {
		t.Fatalf("encoding request: %v", err)
	}
	if strings.Contains(string(data), "filters") {
		t.Errorf("empty filters must be omitted: %s", string(data))
	}

	request.Filters.ConnectorTypes = []types.ConnectorType{types.ConnectorTypeType2}
	data, err = request.ToJSON()
	if err != nil {
		t.Fatalf("encoding request: %v", err)
	}
	if !strings.Contains(string(data), `"connector-types":["Type2"]`) {
		t.Errorf("connector type filter lost: %s", string(data))
	}
}

func TestParseStationGetSurfaceResponse(t *testing.T) {
	body := `{"stations":[{"id":"ST-1","latitude":48.1,"longitude":2.5}],"result":{"code":"success","message":""}}`
	response, err := ParseStationGetSurfaceResponse([]byte(body))
	if err != nil {
		t.Fatalf("parsing response: %v", err)
	}
	if len(response.Stations) != 1 || response.Stations[0].Id != "ST-1" {
		t.Errorf("stations lost: %+v", response.Stations)
	}

	if _, err = ParseStationGetSurfaceResponse([]byte(`{"result":{"code":"success"}}`)); err == nil {
		t.Error("surface response without stations property must fail")
	}
}
