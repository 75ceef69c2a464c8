package internal

import "oioi/models"

type Database interface {
	WriteLogMessage(data Data) error
	ReadLog() (interface{}, error)
	WriteStation(station *models.Station) error
	GetStations() ([]models.Station, error)
	WriteSession(session *models.Session) error
	GetSubscriptions() ([]models.UserSubscription, error)
	AddSubscription(subscription *models.UserSubscription) error
	DeleteSubscription(subscription *models.UserSubscription) error
}

type Data interface {
	DataType() string
}
