package models

import "oioi/types"

type SessionInterval struct {
	Start *types.DateTime `json:"start" bson:"start"`
	Stop  *types.DateTime `json:"stop,omitempty" bson:"stop,omitempty"`
}

// Session is a completed charging session reported by a CPO.
type Session struct {
	Id               types.SessionID   `json:"id" bson:"_id"`
	User             User              `json:"user" bson:"user"`
	ConnectorId      types.ConnectorID `json:"connector-id" bson:"connector_id"`
	SessionInterval  SessionInterval   `json:"session-interval" bson:"session_interval"`
	ChargingInterval *SessionInterval  `json:"charging-interval,omitempty" bson:"charging_interval,omitempty"`
	EnergyConsumed   float64           `json:"energy-consumed,omitempty" bson:"energy_consumed,omitempty"`
	PartnerReference string            `json:"partner-reference,omitempty" bson:"partner_reference,omitempty"`
}
