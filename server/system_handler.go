package server

import (
	"fmt"
	"sync"
	"time"

	"oioi/internal"
	"oioi/metrics/counters"
	"oioi/models"
	"oioi/oioi/cpo"
	"oioi/oioi/emp"
	"oioi/types"
	"oioi/utility"
)

// SystemHandler keeps the in-memory state of the partner system: known
// stations with their connectors, running sessions and authorized tokens.
// The database, when present, is a write-behind mirror of that state.
type SystemHandler struct {
	stations       map[types.StationID]*models.Station
	sessions       map[types.SessionID]*models.Session
	tokens         map[types.RFID]bool
	database       internal.Database
	logger         internal.LogHandler
	eventListeners []internal.EventHandler
	debug          bool
	mux            *sync.Mutex
}

func NewSystemHandler() *SystemHandler {
	handler := SystemHandler{
		stations: make(map[types.StationID]*models.Station),
		sessions: make(map[types.SessionID]*models.Session),
		tokens:   make(map[types.RFID]bool),
		mux:      &sync.Mutex{},
	}
	return &handler
}

func (h *SystemHandler) SetDatabase(database internal.Database) {
	h.database = database
}

// SetDebugMode setting debug mode, used for accepting unknown rfid tokens
func (h *SystemHandler) SetDebugMode(debug bool) {
	h.debug = debug
}

func (h *SystemHandler) SetLogger(logger internal.LogHandler) {
	h.logger = logger
}

func (h *SystemHandler) AddEventListener(listener internal.EventHandler) {
	if listener == nil {
		return
	}
	h.eventListeners = append(h.eventListeners, listener)
}

// AuthorizeToken marks an rfid token as known and verified.
func (h *SystemHandler) AuthorizeToken(rfid types.RFID) {
	h.mux.Lock()
	defer h.mux.Unlock()
	h.tokens[rfid] = true
}

func (h *SystemHandler) OnStart() error {
	if h.database != nil {
		stations, err := h.database.GetStations()
		if err != nil {
			return fmt.Errorf("failed to load stations from database: %s", err)
		}
		h.mux.Lock()
		for i := range stations {
			station := stations[i]
			h.stations[station.Id] = &station
		}
		h.mux.Unlock()
		h.logger.Debug(fmt.Sprintf("loaded %d stations from database", len(stations)))
	}
	h.updateConnectorGauges()
	return nil
}

func (h *SystemHandler) OnStationPost(partner types.PartnerIdentifier, station models.Station) *cpo.StationPostResponse {
	h.mux.Lock()
	h.stations[station.Id] = &station
	h.mux.Unlock()

	if h.database != nil {
		err := h.database.WriteStation(&station)
		if err != nil {
			h.logger.Error("write station", err)
			return cpo.NewStationPostResponse(types.SystemError("station could not be stored"))
		}
	}
	h.logger.FeatureEvent(cpo.StationPostOperationName, string(station.Id), fmt.Sprintf("station uploaded by %s with %d connectors", partner, len(station.Connectors)))
	h.notify(&internal.EventMessage{
		Type:      internal.StationEventType,
		Operation: cpo.StationPostOperationName,
		PartnerId: string(partner),
		StationId: string(station.Id),
		Time:      time.Now(),
		Payload:   station,
	})
	h.updateConnectorGauges()
	return cpo.NewStationPostResponse(types.Success(""))
}

func (h *SystemHandler) OnConnectorStatus(partner types.PartnerIdentifier, connectorId types.ConnectorID, status types.ConnectorStatus) *cpo.ConnectorPostStatusResponse {
	h.mux.Lock()
	connector := h.findConnector(connectorId)
	if connector != nil {
		connector.Status = status
	}
	h.mux.Unlock()

	if connector == nil {
		h.logger.Warn(fmt.Sprintf("status report for unknown connector %s", connectorId))
		return cpo.NewConnectorPostStatusResponse(types.NotFound(fmt.Sprintf("connector %s is not registered", connectorId)))
	}
	h.logger.FeatureEvent(cpo.ConnectorPostStatusOperationName, string(connectorId), fmt.Sprintf("status %s reported by %s", status, partner))
	h.notify(&internal.EventMessage{
		Type:        internal.ConnectorEventType,
		Operation:   cpo.ConnectorPostStatusOperationName,
		PartnerId:   string(partner),
		ConnectorId: string(connectorId),
		Time:        time.Now(),
		Status:      string(status),
	})
	h.updateConnectorGauges()
	return cpo.NewConnectorPostStatusResponse(types.Success(""))
}

func (h *SystemHandler) OnRFIDVerify(partner types.PartnerIdentifier, rfid types.RFID) *cpo.RFIDVerifyResponse {
	h.mux.Lock()
	verified := h.tokens[rfid]
	h.mux.Unlock()
	if !verified && h.debug {
		// in debug mode every token passes
		verified = true
	}

	h.logger.FeatureEvent(cpo.RFIDVerifyOperationName, string(rfid), fmt.Sprintf("verification requested by %s: %v", partner, verified))
	h.notify(&internal.EventMessage{
		Type:      internal.VerifyEventType,
		Operation: cpo.RFIDVerifyOperationName,
		PartnerId: string(partner),
		Time:      time.Now(),
		Status:    fmt.Sprintf("%v", verified),
	})
	return cpo.NewRFIDVerifyResponse(verified, types.Success(""))
}

func (h *SystemHandler) OnSessionPost(partner types.PartnerIdentifier, session models.Session) *cpo.SessionPostResponse {
	h.mux.Lock()
	h.sessions[session.Id] = &session
	h.mux.Unlock()

	if h.database != nil {
		err := h.database.WriteSession(&session)
		if err != nil {
			h.logger.Error("write session", err)
			return cpo.NewSessionPostResponse(types.SystemError("session could not be stored"))
		}
	}
	h.logger.FeatureEvent(cpo.SessionPostOperationName, string(session.Id), fmt.Sprintf("session reported by %s; %.3f kWh", partner, session.EnergyConsumed))
	h.notify(&internal.EventMessage{
		Type:        internal.SessionEventType,
		Operation:   cpo.SessionPostOperationName,
		PartnerId:   string(partner),
		SessionId:   string(session.Id),
		ConnectorId: string(session.ConnectorId),
		Time:        time.Now(),
		Username:    session.User.Identifier,
		Info:        fmt.Sprintf("%.3f kWh", session.EnergyConsumed),
	})
	return cpo.NewSessionPostResponse(types.Success(""))
}

func (h *SystemHandler) OnSessionStart(user models.User, connectorId types.ConnectorID, paymentReference string) *emp.SessionStartResponse {
	h.mux.Lock()
	defer h.mux.Unlock()

	connector := h.findConnector(connectorId)
	if connector == nil {
		return emp.NewSessionStartResponse("", false, types.NotFound(fmt.Sprintf("connector %s is not registered", connectorId)))
	}
	if connector.Status != types.ConnectorStatusAvailable {
		return emp.NewSessionStartResponse("", false, types.ClientRequestError(fmt.Sprintf("connector %s is %s", connectorId, connector.Status)))
	}

	sessionId := types.SessionID(utility.NewUUID())
	session := models.Session{
		Id:          sessionId,
		User:        user,
		ConnectorId: connectorId,
		SessionInterval: models.SessionInterval{
			Start: types.NewDateTime(time.Now()),
		},
		PartnerReference: paymentReference,
	}
	h.sessions[sessionId] = &session
	connector.Status = types.ConnectorStatusOccupied

	h.logger.FeatureEvent(emp.SessionStartOperationName, string(sessionId), fmt.Sprintf("session started on %s for %s", connectorId, user.Identifier))
	h.notify(&internal.EventMessage{
		Type:        internal.SessionEventType,
		Operation:   emp.SessionStartOperationName,
		SessionId:   string(sessionId),
		ConnectorId: string(connectorId),
		Time:        time.Now(),
		Username:    user.Identifier,
	})
	h.updateConnectorGaugesLocked()
	return emp.NewSessionStartResponse(sessionId, true, types.Success(""))
}

func (h *SystemHandler) OnSessionStop(user models.User, connectorId types.ConnectorID, sessionId types.SessionID) *emp.SessionStopResponse {
	h.mux.Lock()
	defer h.mux.Unlock()

	session, ok := h.sessions[sessionId]
	if !ok {
		return emp.NewSessionStopResponse(types.NotFound(fmt.Sprintf("session %s is not known", sessionId)))
	}
	if session.ConnectorId != connectorId {
		return emp.NewSessionStopResponse(types.ClientRequestError(fmt.Sprintf("session %s does not belong to connector %s", sessionId, connectorId)))
	}
	if session.SessionInterval.Stop != nil {
		return emp.NewSessionStopResponse(types.ClientRequestError(fmt.Sprintf("session %s is already stopped", sessionId)))
	}

	session.SessionInterval.Stop = types.NewDateTime(time.Now())
	connector := h.findConnector(connectorId)
	if connector != nil {
		connector.Status = types.ConnectorStatusAvailable
	}
	if h.database != nil {
		err := h.database.WriteSession(session)
		if err != nil {
			h.logger.Error("write session", err)
		}
	}

	h.logger.FeatureEvent(emp.SessionStopOperationName, string(sessionId), fmt.Sprintf("session stopped on %s for %s", connectorId, user.Identifier))
	h.notify(&internal.EventMessage{
		Type:        internal.SessionEventType,
		Operation:   emp.SessionStopOperationName,
		SessionId:   string(sessionId),
		ConnectorId: string(connectorId),
		Time:        time.Now(),
		Username:    user.Identifier,
	})
	h.updateConnectorGaugesLocked()
	return emp.NewSessionStopResponse(types.Success(""))
}

func (h *SystemHandler) OnStationGetSurface(request *emp.StationGetSurfaceRequest) *emp.StationGetSurfaceResponse {
	h.mux.Lock()
	defer h.mux.Unlock()

	stations := make([]emp.SurfaceStation, 0)
	for _, station := range h.stations {
		if station.Latitude < request.MinLat || station.Latitude > request.MaxLat {
			continue
		}
		if station.Longitude < request.MinLong || station.Longitude > request.MaxLong {
			continue
		}
		surface := emp.SurfaceStation{
			Id:        station.Id,
			Name:      station.Name,
			Latitude:  station.Latitude,
			Longitude: station.Longitude,
		}
		match := len(request.Filters.ConnectorTypes) == 0
		for _, connector := range station.Connectors {
			surface.Types = append(surface.Types, connector.Type)
			surface.Statuses = append(surface.Statuses, connector.Status)
			for _, wanted := range request.Filters.ConnectorTypes {
				if connector.Type == wanted {
					match = true
				}
			}
		}
		if match {
			stations = append(stations, surface)
		}
	}
	return emp.NewStationGetSurfaceResponse(stations, types.Success(""))
}

// Stations returns a snapshot of the known stations for the read api.
func (h *SystemHandler) Stations() []models.Station {
	h.mux.Lock()
	defer h.mux.Unlock()
	stations := make([]models.Station, 0, len(h.stations))
	for _, station := range h.stations {
		stations = append(stations, *station)
	}
	return stations
}

// findConnector must be called with the mutex held.
func (h *SystemHandler) findConnector(connectorId types.ConnectorID) *models.Connector {
	for _, station := range h.stations {
		for i := range station.Connectors {
			if station.Connectors[i].Id == connectorId {
				return &station.Connectors[i]
			}
		}
	}
	return nil
}

func (h *SystemHandler) notify(event *internal.EventMessage) {
	for _, listener := range h.eventListeners {
		switch event.Operation {
		case cpo.StationPostOperationName:
			listener.OnStationPost(event)
		case cpo.ConnectorPostStatusOperationName:
			listener.OnConnectorStatus(event)
		case cpo.RFIDVerifyOperationName:
			listener.OnRFIDVerify(event)
		case cpo.SessionPostOperationName:
			listener.OnSessionPost(event)
		case emp.SessionStartOperationName:
			listener.OnSessionStart(event)
		case emp.SessionStopOperationName:
			listener.OnSessionStop(event)
		}
	}
}

func (h *SystemHandler) updateConnectorGauges() {
	h.mux.Lock()
	defer h.mux.Unlock()
	h.updateConnectorGaugesLocked()
}

func (h *SystemHandler) updateConnectorGaugesLocked() {
	byStatus := make(map[types.ConnectorStatus]int)
	for _, station := range h.stations {
		for _, connector := range station.Connectors {
			byStatus[connector.Status]++
		}
	}
	for _, status := range types.ConnectorStatuses() {
		counters.ObserveConnectorStatus(string(status), byStatus[status])
	}
}
