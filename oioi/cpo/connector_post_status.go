package cpo

import (
	"encoding/json"
	"fmt"
	"time"

	"oioi/envelope"
	"oioi/types"
)

const ConnectorPostStatusOperationName = "connector-post-status"

type ConnectorPostStatusRequest struct {
	ConnectorId       types.ConnectorID
	PartnerIdentifier types.PartnerIdentifier
	Status            types.ConnectorStatus

	// Timeout overrides the client default for this call when non-zero.
	Timeout time.Duration
}

type connectorPostStatusWire struct {
	ConnectorId       types.ConnectorID       `json:"connector-id"`
	PartnerIdentifier types.PartnerIdentifier `json:"partner-identifier"`
	Status            types.ConnectorStatus   `json:"status"`
}

func NewConnectorPostStatusRequest(connectorId types.ConnectorID, partner types.PartnerIdentifier, status types.ConnectorStatus) (*ConnectorPostStatusRequest, error) {
	r := &ConnectorPostStatusRequest{
		ConnectorId:       connectorId,
		PartnerIdentifier: partner,
		Status:            status,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r ConnectorPostStatusRequest) Operation() string {
	return ConnectorPostStatusOperationName
}

func (r ConnectorPostStatusRequest) Partner() types.PartnerIdentifier {
	return r.PartnerIdentifier
}

func (r ConnectorPostStatusRequest) TimeoutOverride() time.Duration {
	return r.Timeout
}

func (r ConnectorPostStatusRequest) Validate() error {
	if r.ConnectorId == "" {
		return fmt.Errorf("%s: connector id is required", ConnectorPostStatusOperationName)
	}
	if r.PartnerIdentifier == "" {
		return fmt.Errorf("%s: partner identifier is required", ConnectorPostStatusOperationName)
	}
	if _, err := types.ParseConnectorStatus(string(r.Status)); err != nil {
		return fmt.Errorf("%s: %w", ConnectorPostStatusOperationName, err)
	}
	return nil
}

func (r ConnectorPostStatusRequest) ToJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return envelope.Wrap(ConnectorPostStatusOperationName, connectorPostStatusWire{
		ConnectorId:       r.ConnectorId,
		PartnerIdentifier: r.PartnerIdentifier,
		Status:            r.Status,
	})
}

// ParseConnectorPostStatusRequest decodes an incoming request envelope.
func ParseConnectorPostStatusRequest(data []byte) (*ConnectorPostStatusRequest, error) {
	raw, err := envelope.Unwrap(ConnectorPostStatusOperationName, data)
	if err != nil {
		return nil, err
	}
	var wire connectorPostStatusWire
	if err = json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("decoding %s request: %w", ConnectorPostStatusOperationName, err)
	}
	r := &ConnectorPostStatusRequest{
		ConnectorId:       wire.ConnectorId,
		PartnerIdentifier: wire.PartnerIdentifier,
		Status:            wire.Status,
	}
	if err = r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

type ConnectorPostStatusResponse struct {
	Success bool
	result  types.Result
}

func (r ConnectorPostStatusResponse) Result() types.Result {
	return r.result
}

func ParseConnectorPostStatusResponse(data []byte) (*ConnectorPostStatusResponse, error) {
	body, err := parseAck(ConnectorPostStatusOperationName, data)
	if err != nil {
		return nil, err
	}
	result, err := body.result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ConnectorPostStatusOperationName, err)
	}
	return &ConnectorPostStatusResponse{
		Success: result.IsSuccess(),
		result:  result,
	}, nil
}

func TryParseConnectorPostStatusResponse(data []byte) (*ConnectorPostStatusResponse, bool) {
	response, err := ParseConnectorPostStatusResponse(data)
	if err != nil {
		return nil, false
	}
	return response, true
}

// NewConnectorPostStatusResponse builds the server-side acknowledgement.
func NewConnectorPostStatusResponse(result types.Result) *ConnectorPostStatusResponse {
	return &ConnectorPostStatusResponse{Success: result.IsSuccess(), result: result}
}

func (r ConnectorPostStatusResponse) ToJSON() ([]byte, error) {
	return envelope.Wrap(ConnectorPostStatusOperationName, ack{Success: &r.Success, Result: &r.result})
}
