package cpo

import (
	"encoding/json"
	"fmt"
	"time"

	"oioi/envelope"
	"oioi/types"
)

const RFIDVerifyOperationName = "rfid-verify"

type RFIDVerifyRequest struct {
	RFID              types.RFID
	PartnerIdentifier types.PartnerIdentifier

	// Timeout overrides the client default for this call when non-zero.
	Timeout time.Duration
}

type rfidVerifyWire struct {
	RFID              types.RFID              `json:"rfid"`
	PartnerIdentifier types.PartnerIdentifier `json:"partner-identifier"`
}

func NewRFIDVerifyRequest(rfid types.RFID, partner types.PartnerIdentifier) (*RFIDVerifyRequest, error) {
	r := &RFIDVerifyRequest{
		RFID:              rfid,
		PartnerIdentifier: partner,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r RFIDVerifyRequest) Operation() string {
	return RFIDVerifyOperationName
}

func (r RFIDVerifyRequest) Partner() types.PartnerIdentifier {
	return r.PartnerIdentifier
}

func (r RFIDVerifyRequest) TimeoutOverride() time.Duration {
	return r.Timeout
}

func (r RFIDVerifyRequest) Validate() error {
	if r.RFID == "" {
		return fmt.Errorf("%s: rfid is required", RFIDVerifyOperationName)
	}
	if r.PartnerIdentifier == "" {
		return fmt.Errorf("%s: partner identifier is required", RFIDVerifyOperationName)
	}
	return nil
}

func (r RFIDVerifyRequest) ToJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return envelope.Wrap(RFIDVerifyOperationName, rfidVerifyWire{
		RFID:              r.RFID,
		PartnerIdentifier: r.PartnerIdentifier,
	})
}

// ParseRFIDVerifyRequest decodes an incoming request envelope.
func ParseRFIDVerifyRequest(data []byte) (*RFIDVerifyRequest, error) {
	raw, err := envelope.Unwrap(RFIDVerifyOperationName, data)
	if err != nil {
		return nil, err
	}
	var wire rfidVerifyWire
	if err = json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("decoding %s request: %w", RFIDVerifyOperationName, err)
	}
	r := &RFIDVerifyRequest{
		RFID:              wire.RFID,
		PartnerIdentifier: wire.PartnerIdentifier,
	}
	if err = r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// RFIDVerifyResponse separates the call outcome from the verification
// answer: an unknown token is still a successfully processed call.
type RFIDVerifyResponse struct {
	Verified bool
	result   types.Result
}

func (r RFIDVerifyResponse) Result() types.Result {
	return r.result
}

func ParseRFIDVerifyResponse(data []byte) (*RFIDVerifyResponse, error) {
	body, err := parseAck(RFIDVerifyOperationName, data)
	if err != nil {
		return nil, err
	}
	result, err := body.result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", RFIDVerifyOperationName, err)
	}
	verified := body.Verified != nil && *body.Verified
	return &RFIDVerifyResponse{
		Verified: verified,
		result:   result,
	}, nil
}

func TryParseRFIDVerifyResponse(data []byte) (*RFIDVerifyResponse, bool) {
	response, err := ParseRFIDVerifyResponse(data)
	if err != nil {
		return nil, false
	}
	return response, true
}

// NewRFIDVerifyResponse builds the server-side answer.
func NewRFIDVerifyResponse(verified bool, result types.Result) *RFIDVerifyResponse {
	return &RFIDVerifyResponse{Verified: verified, result: result}
}

func (r RFIDVerifyResponse) ToJSON() ([]byte, error) {
	return envelope.Wrap(RFIDVerifyOperationName, ack{Verified: &r.Verified, Result: &r.result})
}
