package models

import "oioi/types"

// User identifies the charging customer inside EMP session requests.
type User struct {
	IdentifierType types.IdentifierType `json:"identifier-type" bson:"identifier_type"`
	Identifier     string               `json:"identifier" bson:"identifier"`
	Token          string               `json:"token,omitempty" bson:"token,omitempty"`
}
