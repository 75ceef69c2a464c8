package models

import "oioi/types"

type Connector struct {
	Id     types.ConnectorID     `json:"id" bson:"connector_id"`
	Name   string                `json:"name,omitempty" bson:"name,omitempty"`
	Type   types.ConnectorType   `json:"type" bson:"type"`
	Speed  float64               `json:"speed,omitempty" bson:"speed,omitempty"`
	Status types.ConnectorStatus `json:"status,omitempty" bson:"status,omitempty"`
}
