package cpo

import (
	"encoding/json"
	"fmt"
	"time"

	"oioi/envelope"
	"oioi/models"
	"oioi/types"
)

const StationPostOperationName = "station-post"

type StationPostRequest struct {
	Station           models.Station
	PartnerIdentifier types.PartnerIdentifier

	// Timeout overrides the client default for this call when non-zero.
	Timeout time.Duration
}

type stationPostWire struct {
	Station           models.Station          `json:"station"`
	PartnerIdentifier types.PartnerIdentifier `json:"partner-identifier"`
}

func NewStationPostRequest(station models.Station, partner types.PartnerIdentifier) (*StationPostRequest, error) {
	r := &StationPostRequest{
		Station:           station,
		PartnerIdentifier: partner,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r StationPostRequest) Operation() string {
	return StationPostOperationName
}

func (r StationPostRequest) Partner() types.PartnerIdentifier {
	return r.PartnerIdentifier
}

func (r StationPostRequest) TimeoutOverride() time.Duration {
	return r.Timeout
}

func (r StationPostRequest) Validate() error {
	if r.Station.Id == "" {
		return fmt.Errorf("%s: station id is required", StationPostOperationName)
	}
	if r.PartnerIdentifier == "" {
		return fmt.Errorf("%s: partner identifier is required", StationPostOperationName)
	}
	if len(r.Station.Connectors) == 0 {
		return fmt.Errorf("%s: station must carry at least one connector", StationPostOperationName)
	}
	return nil
}

func (r StationPostRequest) ToJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return envelope.Wrap(StationPostOperationName, stationPostWire{
		Station:           r.Station,
		PartnerIdentifier: r.PartnerIdentifier,
	})
}

// ParseStationPostRequest decodes an incoming request envelope.
func ParseStationPostRequest(data []byte) (*StationPostRequest, error) {
	raw, err := envelope.Unwrap(StationPostOperationName, data)
	if err != nil {
		return nil, err
	}
	var wire stationPostWire
	if err = json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("decoding %s request: %w", StationPostOperationName, err)
	}
	r := &StationPostRequest{
		Station:           wire.Station,
		PartnerIdentifier: wire.PartnerIdentifier,
	}
	if err = r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

type StationPostResponse struct {
	Success bool
	result  types.Result
}

func (r StationPostResponse) Result() types.Result {
	return r.result
}

func ParseStationPostResponse(data []byte) (*StationPostResponse, error) {
	body, err := parseAck(StationPostOperationName, data)
	if err != nil {
		return nil, err
	}
	result, err := body.result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StationPostOperationName, err)
	}
	return &StationPostResponse{
		Success: result.IsSuccess(),
		result:  result,
	}, nil
}

func TryParseStationPostResponse(data []byte) (*StationPostResponse, bool) {
	response, err := ParseStationPostResponse(data)
	if err != nil {
		return nil, false
	}
	return response, true
}

// NewStationPostResponse builds the server-side acknowledgement.
func NewStationPostResponse(result types.Result) *StationPostResponse {
	return &StationPostResponse{Success: result.IsSuccess(), result: result}
}

func (r StationPostResponse) ToJSON() ([]byte, error) {
	return envelope.Wrap(StationPostOperationName, ack{Success: &r.Success, Result: &r.result})
}
