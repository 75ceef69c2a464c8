package cpo

import (
	"strings"
	"testing"

	"oioi/models"
	"oioi/types"
)

func TestConnectorPostStatusEncoding(t *testing.T) {
	request, err := NewConnectorPostStatusRequest("165946", "GraphDefined", types.ConnectorStatusAvailable)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	data, err := request.ToJSON()
	if err != nil {
		t.Fatalf("encoding request: %v", err)
	}
	expected := `{"connector-post-status":{"connector-id":"165946","partner-identifier":"GraphDefined","status":"Available"}}`
	if string(data) != expected {
		t.Errorf("wire encoding mismatch\n got: %s\nwant: %s", string(data), expected)
	}
}

func TestConnectorPostStatusRejectsUnknownStatus(t *testing.T) {
	_, err := NewConnectorPostStatusRequest("165946", "GraphDefined", "Charging")
	if err == nil {
		t.Fatal("unknown status must fail request construction")
	}
}

func TestParseConnectorPostStatusLegacyResponse(t *testing.T) {
	response, err := ParseConnectorPostStatusResponse([]byte(`{"connector-post-status":{"success":true}}`))
	if err != nil {
		t.Fatalf("parsing response: %v", err)
	}
	if !response.Success {
		t.Error("legacy success flag lost")
	}
	if !response.Result().IsSuccess() {
		t.Errorf("expected success result, got %s", response.Result().Code)
	}
}

func TestParseConnectorPostStatusCodedResponse(t *testing.T) {
	body := `{"connector-post-status":{"result":{"code":"not-found","message":"unknown connector"}}}`
	response, err := ParseConnectorPostStatusResponse([]byte(body))
	if err != nil {
		t.Fatalf("parsing response: %v", err)
	}
	if response.Success {
		t.Error("not-found result must not read as success")
	}
	if response.Result().Code != types.ResultCodeNotFound {
		t.Errorf("expected not-found, got %s", response.Result().Code)
	}
}

func TestParseResponseMissingRootKey(t *testing.T) {
	_, err := ParseConnectorPostStatusResponse([]byte(`{"station-post":{"success":true}}`))
	if err == nil || !strings.Contains(err.Error(), "missing root key") {
		t.Errorf("expected missing root key error, got %v", err)
	}
	if _, ok := TryParseConnectorPostStatusResponse([]byte(`{}`)); ok {
		t.Error("try-parse must report false on a foreign body")
	}
}

func TestParseResponseUnknownResultCode(t *testing.T) {
	body := `{"station-post":{"result":{"code":"partial-success"}}}`
	if _, err := ParseStationPostResponse([]byte(body)); err == nil {
		t.Error("unknown result code must fail decoding")
	}
}

func TestStationPostRoundTrip(t *testing.T) {
	station := models.Station{
		Id:        "ST-1",
		Name:      "Dock A",
		Latitude:  52.52,
		Longitude: 13.405,
		Connectors: []models.Connector{
			{Id: "165946", Type: types.ConnectorTypeType2, Status: types.ConnectorStatusAvailable},
		},
	}
	request, err := NewStationPostRequest(station, "GraphDefined")
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	data, err := request.ToJSON()
	if err != nil {
		t.Fatalf("encoding request: %v", err)
	}
	decoded, err := ParseStationPostRequest(data)
	if err != nil {
		t.Fatalf("decoding request: %v", err)
	}
	if decoded.Station.Id != station.Id || len(decoded.Station.Connectors) != 1 {
		t.Errorf("round trip lost station data: %+v", decoded.Station)
	}
	if decoded.PartnerIdentifier != "GraphDefined" {
		t.Errorf("round trip lost partner identifier: %q", decoded.PartnerIdentifier)
	}
}

func TestStationPostRequiresConnectors(t *testing.T) {
	_, err := NewStationPostRequest(models.Station{Id: "ST-1"}, "GraphDefined")
	if err == nil {
		t.Fatal("station without connectors must be rejected")
	}
}

func TestRFIDVerifyResponseSeparatesOutcomeFromAnswer(t *testing.T) {
	response, err := ParseRFIDVerifyResponse([]byte(`{"rfid-verify":{"verified":false}}`))
	if err != nil {
		t.Fatalf("parsing response: %v", err)
	}
	if response.Verified {
		t.Error("unknown token must not verify")
	}
	if !response.Result().IsSuccess() {
		t.Errorf("an answered verification is a successful call, got %s", response.Result().Code)
	}
}

func TestSessionPostValidation(t *testing.T) {
	session := models.Session{Id: "S-1", ConnectorId: "165946"}
	if _, err := NewSessionPostRequest(session, "GraphDefined"); err == nil {
		t.Error("session without interval start must be rejected")
	}
}

func TestAckWithoutAnyFlagFails(t *testing.T) {
	if _, err := ParseSessionPostResponse([]byte(`{"session-post":{}}`)); err == nil {
		t.Error("empty ack must fail, there is no outcome to report")
	}
}

func TestNewResponseEncoding(t *testing.T) {
	data, err := NewRFIDVerifyResponse(true, types.Success("")).ToJSON()
	if err != nil {
		t.Fatalf("encoding response: %v", err)
	}
	decoded, err := ParseRFIDVerifyResponse(data)
	if err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !decoded.Verified || !decoded.Result().IsSuccess() {
		t.Errorf("round trip lost verification outcome: %+v", decoded)
	}
}
