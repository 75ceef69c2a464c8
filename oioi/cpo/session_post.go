package cpo

import (
	"encoding/json"
	"fmt"
	"time"

	"oioi/envelope"
	"oioi/models"
	"oioi/types"
)

const SessionPostOperationName = "session-post"

type SessionPostRequest struct {
	Session           models.Session
	PartnerIdentifier types.PartnerIdentifier

	// Timeout overrides the client default for this call when non-zero.
	Timeout time.Duration
}

type sessionPostWire struct {
	Session           models.Session          `json:"session"`
	PartnerIdentifier types.PartnerIdentifier `json:"partner-identifier"`
}

func NewSessionPostRequest(session models.Session, partner types.PartnerIdentifier) (*SessionPostRequest, error) {
	r := &SessionPostRequest{
		Session:           session,
		PartnerIdentifier: partner,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r SessionPostRequest) Operation() string {
	return SessionPostOperationName
}

func (r SessionPostRequest) Partner() types.PartnerIdentifier {
	return r.PartnerIdentifier
}

func (r SessionPostRequest) TimeoutOverride() time.Duration {
	return r.Timeout
}

func (r SessionPostRequest) Validate() error {
	if r.Session.Id == "" {
		return fmt.Errorf("%s: session id is required", SessionPostOperationName)
	}
	if r.Session.ConnectorId == "" {
		return fmt.Errorf("%s: connector id is required", SessionPostOperationName)
	}
	if r.Session.SessionInterval.Start == nil {
		return fmt.Errorf("%s: session interval start is required", SessionPostOperationName)
	}
	if r.PartnerIdentifier == "" {
		return fmt.Errorf("%s: partner identifier is required", SessionPostOperationName)
	}
	return nil
}

func (r SessionPostRequest) ToJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return envelope.Wrap(SessionPostOperationName, sessionPostWire{
		Session:           r.Session,
		PartnerIdentifier: r.PartnerIdentifier,
	})
}

// ParseSessionPostRequest decodes an incoming request envelope.
func ParseSessionPostRequest(data []byte) (*SessionPostRequest, error) {
	raw, err := envelope.Unwrap(SessionPostOperationName, data)
	if err != nil {
		return nil, err
	}
	var wire sessionPostWire
	if err = json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("decoding %s request: %w", SessionPostOperationName, err)
	}
	r := &SessionPostRequest{
		Session:           wire.Session,
		PartnerIdentifier: wire.PartnerIdentifier,
	}
	if err = r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

type SessionPostResponse struct {
	Success bool
	result  types.Result
}

func (r SessionPostResponse) Result() types.Result {
	return r.result
}

func ParseSessionPostResponse(data []byte) (*SessionPostResponse, error) {
	body, err := parseAck(SessionPostOperationName, data)
	if err != nil {
		return nil, err
	}
	result, err := body.result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", SessionPostOperationName, err)
	}
	return &SessionPostResponse{
		Success: result.IsSuccess(),
		result:  result,
	}, nil
}

func TryParseSessionPostResponse(data []byte) (*SessionPostResponse, bool) {
	response, err := ParseSessionPostResponse(data)
	if err != nil {
		return nil, false
	}
	return response, true
}

// NewSessionPostResponse builds the server-side acknowledgement.
func NewSessionPostResponse(result types.Result) *SessionPostResponse {
	return &SessionPostResponse{Success: result.IsSuccess(), result: result}
}

func (r SessionPostResponse) ToJSON() ([]byte, error) {
	return envelope.Wrap(SessionPostOperationName, ack{Success: &r.Success, Result: &r.result})
}
