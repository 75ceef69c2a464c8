// Package envelope handles the wire framing shared by every operation:
// a single JSON object with exactly one top-level property named for the
// operation, wrapping the operation payload.
package envelope

import (
	"encoding/json"
	"fmt"
)

// Transform rewrites an encoded payload before it is returned. Hooks let
// callers attach vendor extensions without the codec knowing about them.
type Transform func(raw json.RawMessage) (json.RawMessage, error)

// Wrap encodes payload under the named root property. Optional fields are
// expected to carry omitempty tags; absent values are omitted, never null.
func Wrap(key string, payload any, hooks ...Transform) ([]byte, error) {
	inner, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", key, err)
	}
	raw := json.RawMessage(inner)
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		raw, err = hook(raw)
		if err != nil {
			return nil, fmt.Errorf("transforming %s payload: %w", key, err)
		}
	}
	return json.Marshal(map[string]json.RawMessage{key: raw})
}

// Unwrap looks up the root property and returns its raw payload. A missing
// root key is a hard contract violation, distinct from a field missing
// inside the envelope.
func Unwrap(key string, data []byte, hooks ...Transform) (json.RawMessage, error) {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(data, &outer); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}
	raw, ok := outer[key]
	if !ok {
		return nil, fmt.Errorf("envelope is missing root key %q", key)
	}
	var err error
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		raw, err = hook(raw)
		if err != nil {
			return nil, fmt.Errorf("transforming %s payload: %w", key, err)
		}
	}
	return raw, nil
}

// RootKey reports the single operation name carried by an incoming envelope.
// Used by the server to dispatch before the payload shape is known.
func RootKey(data []byte) (string, error) {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(data, &outer); err != nil {
		return "", fmt.Errorf("decoding envelope: %w", err)
	}
	if len(outer) != 1 {
		return "", fmt.Errorf("envelope must carry exactly one root key, got %d", len(outer))
	}
	for key := range outer {
		return key, nil
	}
	return "", fmt.Errorf("envelope is empty")
}
