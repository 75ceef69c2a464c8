package emp

import (
	"encoding/json"
	"fmt"
	"time"

	"oioi/envelope"
	"oioi/models"
	"oioi/types"
)

const SessionStopOperationName = "session-stop"

type SessionStopRequest struct {
	User        models.User
	ConnectorId types.ConnectorID
	SessionId   types.SessionID

	// Timeout overrides the client default for this call when non-zero.
	Timeout time.Duration
}

type sessionStopWire struct {
	User        models.User       `json:"user"`
	ConnectorId types.ConnectorID `json:"connector-id"`
	SessionId   types.SessionID   `json:"session-id"`
}

func NewSessionStopRequest(user models.User, connectorId types.ConnectorID, sessionId types.SessionID) (*SessionStopRequest, error) {
	r := &SessionStopRequest{
		User:        user,
		ConnectorId: connectorId,
		SessionId:   sessionId,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r SessionStopRequest) Operation() string {
	return SessionStopOperationName
}

func (r SessionStopRequest) TimeoutOverride() time.Duration {
	return r.Timeout
}

func (r SessionStopRequest) Validate() error {
	if r.User.Identifier == "" {
		return fmt.Errorf("%s: user identifier is required", SessionStopOperationName)
	}
	if _, err := types.ParseIdentifierType(string(r.User.IdentifierType)); err != nil {
		return fmt.Errorf("%s: %w", SessionStopOperationName, err)
	}
	if r.ConnectorId == "" {
		return fmt.Errorf("%s: connector id is required", SessionStopOperationName)
	}
	if r.SessionId == "" {
		return fmt.Errorf("%s: session id is required", SessionStopOperationName)
	}
	return nil
}

func (r SessionStopRequest) ToJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return envelope.Wrap(SessionStopOperationName, sessionStopWire{
		User:        r.User,
		ConnectorId: r.ConnectorId,
		SessionId:   r.SessionId,
	})
}

// ParseSessionStopRequest decodes an incoming request envelope.
func ParseSessionStopRequest(data []byte) (*SessionStopRequest, error) {
	raw, err := envelope.Unwrap(SessionStopOperationName, data)
	if err != nil {
		return nil, err
	}
	var wire sessionStopWire
	if err = json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("decoding %s request: %w", SessionStopOperationName, err)
	}
	r := &SessionStopRequest{
		User:        wire.User,
		ConnectorId: wire.ConnectorId,
		SessionId:   wire.SessionId,
	}
	if err = r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

type sessionStopResponseWire struct {
	SessionStop *struct{}     `json:"session-stop"`
	Result      *types.Result `json:"result"`
}

type SessionStopResponse struct {
	result types.Result
}

func (r SessionStopResponse) Result() types.Result {
	return r.result
}

func ParseSessionStopResponse(data []byte) (*SessionStopResponse, error) {
	var wire sessionStopResponseWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", SessionStopOperationName, err)
	}
	if wire.SessionStop == nil {
		return nil, fmt.Errorf("%s response is missing root key %q", SessionStopOperationName, SessionStopOperationName)
	}
	if wire.Result == nil {
		return nil, fmt.Errorf("%s response is missing result", SessionStopOperationName)
	}
	if _, err := types.ParseResultCode(string(wire.Result.Code)); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", SessionStopOperationName, err)
	}
	return &SessionStopResponse{result: *wire.Result}, nil
}

func TryParseSessionStopResponse(data []byte) (*SessionStopResponse, bool) {
	response, err := ParseSessionStopResponse(data)
	if err != nil {
		return nil, false
	}
	return response, true
}

// NewSessionStopResponse builds the server-side answer.
func NewSessionStopResponse(result types.Result) *SessionStopResponse {
	return &SessionStopResponse{result: result}
}

func (r SessionStopResponse) ToJSON() ([]byte, error) {
	return json.Marshal(sessionStopResponseWire{
		SessionStop: &struct{}{},
		Result:      &r.result,
	})
}
