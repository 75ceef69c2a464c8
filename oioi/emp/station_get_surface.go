package emp

import (
	"encoding/json"
	"fmt"
	"time"

	"oioi/envelope"
	"oioi/types"
)

const StationGetSurfaceOperationName = "station-get-surface"

type SurfaceFilters struct {
	ConnectorTypes []types.ConnectorType `json:"connector-types,omitempty"`
}

type StationGetSurfaceRequest struct {
	MinLat  float64
	MaxLat  float64
	MinLong float64
	MaxLong float64
	Filters SurfaceFilters

	// Timeout overrides the client default for this call when non-zero.
	Timeout time.Duration
}

type stationGetSurfaceWire struct {
	MinLat  float64         `json:"min-lat"`
	MaxLat  float64         `json:"max-lat"`
	MinLong float64         `json:"min-long"`
	MaxLong float64         `json:"max-long"`
	Filters *SurfaceFilters `json:"filters,omitempty"`
}

func NewStationGetSurfaceRequest(minLat, maxLat, minLong, maxLong float64) (*StationGetSurfaceRequest, error) {
	r := &StationGetSurfaceRequest{
		MinLat:  minLat,
		MaxLat:  maxLat,
		MinLong: minLong,
		MaxLong: maxLong,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r StationGetSurfaceRequest) Operation() string {
	return StationGetSurfaceOperationName
}

func (r StationGetSurfaceRequest) TimeoutOverride() time.Duration {
	return r.Timeout
}

func (r StationGetSurfaceRequest) Validate() error {
	if r.MinLat > r.MaxLat {
		return fmt.Errorf("%s: min-lat exceeds max-lat", StationGetSurfaceOperationName)
	}
	if r.MinLong > r.MaxLong {
		return fmt.Errorf("%s: min-long exceeds max-long", StationGetSurfaceOperationName)
	}
	if r.MinLat < -90 || r.MaxLat > 90 {
		return fmt.Errorf("%s: latitude out of range", StationGetSurfaceOperationName)
	}
	if r.MinLong < -180 || r.MaxLong > 180 {
		return fmt.Errorf("%s: longitude out of range", StationGetSurfaceOperationName)
	}
	return nil
}

func (r StationGetSurfaceRequest) ToJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	wire := stationGetSurfaceWire{
		MinLat:  r.MinLat,
		MaxLat:  r.MaxLat,
		MinLong: r.MinLong,
		MaxLong: r.MaxLong,
	}
	if len(r.Filters.ConnectorTypes) > 0 {
		wire.Filters = &r.Filters
	}
	return envelope.Wrap(StationGetSurfaceOperationName, wire)
}

// ParseStationGetSurfaceRequest decodes an incoming request envelope.
func ParseStationGetSurfaceRequest(data []byte) (*StationGetSurfaceRequest, error) {
	raw, err := envelope.Unwrap(StationGetSurfaceOperationName, data)
	if err != nil {
		return nil, err
	}
	var wire stationGetSurfaceWire
	if err = json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("decoding %s request: %w", StationGetSurfaceOperationName, err)
	}
	r := &StationGetSurfaceRequest{
		MinLat:  wire.MinLat,
		MaxLat:  wire.MaxLat,
		MinLong: wire.MinLong,
		MaxLong: wire.MaxLong,
	}
	if wire.Filters != nil {
		r.Filters = *wire.Filters
	}
	if err = r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// SurfaceStation is the reduced station shape returned by the surface query.
type SurfaceStation struct {
	Id        types.StationID         `json:"id"`
	Name      string                  `json:"name,omitempty"`
	Latitude  float64                 `json:"latitude"`
	Longitude float64                 `json:"longitude"`
	Types     []types.ConnectorType   `json:"connector-types,omitempty"`
	Statuses  []types.ConnectorStatus `json:"connector-statuses,omitempty"`
}

type stationGetSurfaceResponseWire struct {
	Stations []SurfaceStation `json:"stations"`
	Result   *types.Result    `json:"result"`
}

type StationGetSurfaceResponse struct {
	Stations []SurfaceStation
	result   types.Result
}

func (r StationGetSurfaceResponse) Result() types.Result {
	return r.result
}

func ParseStationGetSurfaceResponse(data []byte) (*StationGetSurfaceResponse, error) {
	// the surface answer uses "stations" as its root property
	if _, err := envelope.Unwrap("stations", data); err != nil {
		return nil, err
	}
	var wire stationGetSurfaceResponseWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", StationGetSurfaceOperationName, err)
	}
	if wire.Result == nil {
		return nil, fmt.Errorf("%s response is missing result", StationGetSurfaceOperationName)
	}
	if _, err := types.ParseResultCode(string(wire.Result.Code)); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", StationGetSurfaceOperationName, err)
	}
	return &StationGetSurfaceResponse{
		Stations: wire.Stations,
		result:   *wire.Result,
	}, nil
}

func TryParseStationGetSurfaceResponse(data []byte) (*StationGetSurfaceResponse, bool) {
	response, err := ParseStationGetSurfaceResponse(data)
	if err != nil {
		return nil, false
	}
	return response, true
}

// NewStationGetSurfaceResponse builds the server-side answer.
func NewStationGetSurfaceResponse(stations []SurfaceStation, result types.Result) *StationGetSurfaceResponse {
	return &StationGetSurfaceResponse{Stations: stations, result: result}
}

func (r StationGetSurfaceResponse) ToJSON() ([]byte, error) {
	stations := r.Stations
	if stations == nil {
		stations = []SurfaceStation{}
	}
	return json.Marshal(stationGetSurfaceResponseWire{
		Stations: stations,
		Result:   &r.result,
	})
}
