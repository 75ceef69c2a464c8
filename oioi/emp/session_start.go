// Package emp defines the EMP-facing operations of the partner API:
// starting and stopping charging sessions on behalf of a customer and
// querying the station surface. These operations answer with the coded
// result model of the newer protocol generation.
package emp

import (
	"encoding/json"
	"fmt"
	"time"

	"oioi/envelope"
	"oioi/models"
	"oioi/types"
)

const SessionStartOperationName = "session-start"

type SessionStartRequest struct {
	User             models.User
	ConnectorId      types.ConnectorID
	PaymentReference string

	// Timeout overrides the client default for this call when non-zero.
	Timeout time.Duration
}

type sessionStartWire struct {
	User             models.User       `json:"user"`
	ConnectorId      types.ConnectorID `json:"connector-id"`
	PaymentReference string            `json:"payment-reference,omitempty"`
}

func NewSessionStartRequest(user models.User, connectorId types.ConnectorID) (*SessionStartRequest, error) {
	r := &SessionStartRequest{
		User:        user,
		ConnectorId: connectorId,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r SessionStartRequest) Operation() string {
	return SessionStartOperationName
}

func (r SessionStartRequest) TimeoutOverride() time.Duration {
	return r.Timeout
}

func (r SessionStartRequest) Validate() error {
	if r.User.Identifier == "" {
		return fmt.Errorf("%s: user identifier is required", SessionStartOperationName)
	}
	if _, err := types.ParseIdentifierType(string(r.User.IdentifierType)); err != nil {
		return fmt.Errorf("%s: %w", SessionStartOperationName, err)
	}
	if r.ConnectorId == "" {
		return fmt.Errorf("%s: connector id is required", SessionStartOperationName)
	}
	return nil
}

func (r SessionStartRequest) ToJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return envelope.Wrap(SessionStartOperationName, sessionStartWire{
		User:             r.User,
		ConnectorId:      r.ConnectorId,
		PaymentReference: r.PaymentReference,
	})
}

// ParseSessionStartRequest decodes an incoming request envelope.
func ParseSessionStartRequest(data []byte) (*SessionStartRequest, error) {
	raw, err := envelope.Unwrap(SessionStartOperationName, data)
	if err != nil {
		return nil, err
	}
	var wire sessionStartWire
	if err = json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("decoding %s request: %w", SessionStartOperationName, err)
	}
	r := &SessionStartRequest{
		User:             wire.User,
		ConnectorId:      wire.ConnectorId,
		PaymentReference: wire.PaymentReference,
	}
	if err = r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

type sessionStartPayload struct {
	SessionId   types.SessionID `json:"session-id,omitempty"`
	IsStoppable *bool           `json:"is-stoppable,omitempty"`
}

type sessionStartResponseWire struct {
	SessionStart *sessionStartPayload `json:"session-start"`
	Result       *types.Result        `json:"result"`
}

type SessionStartResponse struct {
	SessionId   types.SessionID
	IsStoppable bool
	result      types.Result
}

func (r SessionStartResponse) Result() types.Result {
	return r.result
}

func ParseSessionStartResponse(data []byte) (*SessionStartResponse, error) {
	var wire sessionStartResponseWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", SessionStartOperationName, err)
	}
	if wire.SessionStart == nil {
		return nil, fmt.Errorf("%s response is missing root key %q", SessionStartOperationName, SessionStartOperationName)
	}
	if wire.Result == nil {
		return nil, fmt.Errorf("%s response is missing result", SessionStartOperationName)
	}
	if _, err := types.ParseResultCode(string(wire.Result.Code)); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", SessionStartOperationName, err)
	}
	return &SessionStartResponse{
		SessionId:   wire.SessionStart.SessionId,
		IsStoppable: wire.SessionStart.IsStoppable != nil && *wire.SessionStart.IsStoppable,
		result:      *wire.Result,
	}, nil
}

func TryParseSessionStartResponse(data []byte) (*SessionStartResponse, bool) {
	response, err := ParseSessionStartResponse(data)
	if err != nil {
		return nil, false
	}
	return response, true
}

// NewSessionStartResponse builds the server-side answer.
func NewSessionStartResponse(sessionId types.SessionID, stoppable bool, result types.Result) *SessionStartResponse {
	return &SessionStartResponse{SessionId: sessionId, IsStoppable: stoppable, result: result}
}

func (r SessionStartResponse) ToJSON() ([]byte, error) {
	return json.Marshal(sessionStartResponseWire{
		SessionStart: &sessionStartPayload{
			SessionId:   r.SessionId,
			IsStoppable: &r.IsStoppable,
		},
		Result: &r.result,
	})
}
