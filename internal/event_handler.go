package internal

import "time"

const (
	StationEventType   = "station"
	ConnectorEventType = "connector"
	SessionEventType   = "session"
	VerifyEventType    = "verify"
)

// EventHandler receives domain events the dispatch server extracts from
// incoming partner requests. Implementations must not block.
type EventHandler interface {
	OnStationPost(event *EventMessage)
	OnConnectorStatus(event *EventMessage)
	OnSessionStart(event *EventMessage)
	OnSessionStop(event *EventMessage)
	OnSessionPost(event *EventMessage)
	OnRFIDVerify(event *EventMessage)
}

type EventMessage struct {
	Type        string      `json:"type" bson:"type"`
	Operation   string      `json:"operation" bson:"operation"`
	PartnerId   string      `json:"partner_id" bson:"partner_id"`
	StationId   string      `json:"station_id" bson:"station_id"`
	ConnectorId string      `json:"connector_id" bson:"connector_id"`
	SessionId   string      `json:"session_id" bson:"session_id"`
	Time        time.Time   `json:"time" bson:"time"`
	Username    string      `json:"username" bson:"username"`
	Status      string      `json:"status" bson:"status"`
	Info        string      `json:"info" bson:"info"`
	Payload     interface{} `json:"payload" bson:"payload"`
}
