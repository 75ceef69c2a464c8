// Package cpo defines the CPO-facing operations of the partner API:
// station upload, connector status push, RFID verification and session
// reporting. Each operation lives in its own file with its envelope key,
// request and response types.
package cpo

import (
	"encoding/json"
	"fmt"

	"oioi/envelope"
	"oioi/types"
)

// ack is the body every CPO response carries inside its envelope. Older
// protocol generations answer with a bare boolean, newer ones with a coded
// result; both normalize to types.Result on decode.
type ack struct {
	Success  *bool         `json:"success,omitempty"`
	Verified *bool         `json:"verified,omitempty"`
	Message  string        `json:"message,omitempty"`
	Result   *types.Result `json:"result,omitempty"`
}

func parseAck(operation string, data []byte) (*ack, error) {
	raw, err := envelope.Unwrap(operation, data)
	if err != nil {
		return nil, err
	}
	var body ack
	if err = json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", operation, err)
	}
	if body.Result != nil {
		if _, err = types.ParseResultCode(string(body.Result.Code)); err != nil {
			return nil, fmt.Errorf("decoding %s response: %w", operation, err)
		}
	}
	return &body, nil
}

func (a *ack) result() (types.Result, error) {
	if a.Result != nil {
		return *a.Result, nil
	}
	if a.Success != nil {
		return types.FromLegacySuccess(*a.Success, a.Message), nil
	}
	if a.Verified != nil {
		// a processed verification is a successful call whatever the answer
		return types.Success(a.Message), nil
	}
	return types.Result{}, fmt.Errorf("response carries neither result nor success flag")
}
