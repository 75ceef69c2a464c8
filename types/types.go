package types

import "fmt"

type ConnectorStatus string

const (
	ConnectorStatusAvailable ConnectorStatus = "Available"
	ConnectorStatusOccupied  ConnectorStatus = "Occupied"
	ConnectorStatusOffline   ConnectorStatus = "Offline"
	ConnectorStatusReserved  ConnectorStatus = "Reserved"
	ConnectorStatusUnknown   ConnectorStatus = "Unknown"
)

// ConnectorStatuses lists every status value the protocol knows.
func ConnectorStatuses() []ConnectorStatus {
	return []ConnectorStatus{
		ConnectorStatusAvailable,
		ConnectorStatusOccupied,
		ConnectorStatusOffline,
		ConnectorStatusReserved,
		ConnectorStatusUnknown,
	}
}

func ParseConnectorStatus(status string) (ConnectorStatus, error) {
	switch status {
	case "Available":
		return ConnectorStatusAvailable, nil
	case "Occupied":
		return ConnectorStatusOccupied, nil
	case "Offline":
		return ConnectorStatusOffline, nil
	case "Reserved":
		return ConnectorStatusReserved, nil
	case "Unknown":
		return ConnectorStatusUnknown, nil
	default:
		return "", fmt.Errorf("unsupported connector status %q", status)
	}
}

type ConnectorType string

const (
	ConnectorTypeType2   ConnectorType = "Type2"
	ConnectorTypeType3   ConnectorType = "Type3"
	ConnectorTypeCombo   ConnectorType = "Combo"
	ConnectorTypeChademo ConnectorType = "Chademo"
	ConnectorTypeSchuko  ConnectorType = "Schuko"
	ConnectorTypeCee     ConnectorType = "Cee"
)

func ParseConnectorType(t string) (ConnectorType, error) {
	switch t {
	case "Type2":
		return ConnectorTypeType2, nil
	case "Type3":
		return ConnectorTypeType3, nil
	case "Combo":
		return ConnectorTypeCombo, nil
	case "Chademo":
		return ConnectorTypeChademo, nil
	case "Schuko":
		return ConnectorTypeSchuko, nil
	case "Cee":
		return ConnectorTypeCee, nil
	default:
		return "", fmt.Errorf("unsupported connector type %q", t)
	}
}

// IdentifierType tells the remote API what kind of token identifies
// the charging customer in EMP session requests.
type IdentifierType string

const (
	IdentifierTypeRFID     IdentifierType = "rfid"
	IdentifierTypeEvcoID   IdentifierType = "evco-id"
	IdentifierTypeUsername IdentifierType = "username"
)

func ParseIdentifierType(t string) (IdentifierType, error) {
	switch t {
	case "rfid":
		return IdentifierTypeRFID, nil
	case "evco-id":
		return IdentifierTypeEvcoID, nil
	case "username":
		return IdentifierTypeUsername, nil
	default:
		return "", fmt.Errorf("unsupported identifier type %q", t)
	}
}
