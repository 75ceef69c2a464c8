package types

import "fmt"

// String-backed identifiers used across all operations. Parse functions are
// the single entry point: an identifier that exists was valid at creation.

type PartnerIdentifier string

type StationID string

type ConnectorID string

type SessionID string

type RFID string

const maxIdentifierLength = 128

func validIdentifier(kind, s string) error {
	if s == "" {
		return fmt.Errorf("%s must not be empty", kind)
	}
	if len(s) > maxIdentifierLength {
		return fmt.Errorf("%s exceeds %d characters", kind, maxIdentifierLength)
	}
	for _, r := range s {
		if r < 0x20 || r > 0x7e {
			return fmt.Errorf("%s contains invalid character %q", kind, r)
		}
	}
	return nil
}

func ParsePartnerIdentifier(s string) (PartnerIdentifier, error) {
	if err := validIdentifier("partner identifier", s); err != nil {
		return "", err
	}
	return PartnerIdentifier(s), nil
}

func ParseStationID(s string) (StationID, error) {
	if err := validIdentifier("station id", s); err != nil {
		return "", err
	}
	return StationID(s), nil
}

func ParseConnectorID(s string) (ConnectorID, error) {
	if err := validIdentifier("connector id", s); err != nil {
		return "", err
	}
	return ConnectorID(s), nil
}

func ParseSessionID(s string) (SessionID, error) {
	if err := validIdentifier("session id", s); err != nil {
		return "", err
	}
	return SessionID(s), nil
}

func ParseRFID(s string) (RFID, error) {
	if err := validIdentifier("rfid", s); err != nil {
		return "", err
	}
	return RFID(s), nil
}
