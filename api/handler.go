package api

import (
	"encoding/json"
	"fmt"

	"oioi/internal"
	"oioi/models"
)

const (
	ReadLog      = "ReadLog"
	ReadStations = "ReadStations"
)

// StationReader answers station snapshots from the live registry.
type StationReader interface {
	Stations() []models.Station
}

type Handler struct {
	logger   internal.LogHandler
	database internal.Database
	stations StationReader
}

func NewHandler(logger internal.LogHandler, database internal.Database, stations StationReader) *Handler {
	handler := Handler{
		logger:   logger,
		database: database,
		stations: stations,
	}
	return &handler
}

func (h *Handler) HandleApiCall(callType, remote string) []byte {
	h.logger.Debug(fmt.Sprintf("api call %s from remote %s", callType, remote))
	switch callType {
	case ReadLog:
		return h.readLog()
	case ReadStations:
		return h.readStations()
	}
	return nil
}

func (h *Handler) readLog() []byte {
	if h.database == nil {
		return nil
	}
	data, err := h.database.ReadLog()
	if err != nil {
		h.logger.Error("read log error", err)
		return nil
	}
	byteData, err := json.Marshal(data)
	if err != nil {
		h.logger.Error("encoding log data failed", err)
		return nil
	}
	return byteData
}

func (h *Handler) readStations() []byte {
	if h.stations == nil {
		return nil
	}
	byteData, err := json.Marshal(h.stations.Stations())
	if err != nil {
		h.logger.Error("encoding station data failed", err)
		return nil
	}
	return byteData
}
