package models

import "oioi/types"

type Address struct {
	Street       string `json:"street" bson:"street"`
	StreetNumber string `json:"street-number" bson:"street_number"`
	City         string `json:"city" bson:"city"`
	Zip          string `json:"zip" bson:"zip"`
	Country      string `json:"country" bson:"country"`
}

type Contact struct {
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
	Fax   string `json:"fax,omitempty" bson:"fax,omitempty"`
	Web   string `json:"web,omitempty" bson:"web,omitempty"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
}

type Station struct {
	Id          types.StationID `json:"id" bson:"_id"`
	Name        string          `json:"name" bson:"name"`
	Description string          `json:"description,omitempty" bson:"description,omitempty"`
	Latitude    float64         `json:"latitude" bson:"latitude"`
	Longitude   float64         `json:"longitude" bson:"longitude"`
	Address     Address         `json:"address" bson:"address"`
	Contact     Contact         `json:"contact,omitempty" bson:"contact,omitempty"`
	CpoId       string          `json:"cpo-id,omitempty" bson:"cpo_id,omitempty"`
	IsOpen24    bool            `json:"is-open-24,omitempty" bson:"is_open_24,omitempty"`
	Notes       string          `json:"notes,omitempty" bson:"notes,omitempty"`
	Connectors  []Connector     `json:"connectors" bson:"connectors"`
}
