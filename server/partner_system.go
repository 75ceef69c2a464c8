package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"oioi/api"
	"oioi/envelope"
	"oioi/internal"
	"oioi/internal/config"
	"oioi/metrics"
	"oioi/metrics/counters"
	"oioi/oioi/cpo"
	"oioi/oioi/emp"
	"oioi/pusher"
	"oioi/telegram"
	"oioi/types"
)

// PartnerSystem is the server counterpart of the partner API: it decodes
// incoming operation envelopes, routes them to the system handler and
// answers with the matching response envelope.
type PartnerSystem struct {
	server  *Server
	logger  internal.LogHandler
	handler *SystemHandler
}

type operationResponse interface {
	Result() types.Result
	ToJSON() ([]byte, error)
}

func (ps *PartnerSystem) handleRequest(data []byte, remote string) ([]byte, int) {
	operation, err := envelope.RootKey(data)
	if err != nil {
		ps.logger.Warn(fmt.Sprintf("malformed envelope from %s: %s", remote, err))
		return errorBody("", err.Error())
	}

	var response operationResponse
	switch operation {
	case cpo.StationPostOperationName:
		request, err := cpo.ParseStationPostRequest(data)
		if err != nil {
			return badRequest(operation, err)
		}
		response = ps.handler.OnStationPost(request.PartnerIdentifier, request.Station)
	case cpo.ConnectorPostStatusOperationName:
		request, err := cpo.ParseConnectorPostStatusRequest(data)
		if err != nil {
			return badRequest(operation, err)
		}
		response = ps.handler.OnConnectorStatus(request.PartnerIdentifier, request.ConnectorId, request.Status)
	case cpo.RFIDVerifyOperationName:
		request, err := cpo.ParseRFIDVerifyRequest(data)
		if err != nil {
			return badRequest(operation, err)
		}
		response = ps.handler.OnRFIDVerify(request.PartnerIdentifier, request.RFID)
	case cpo.SessionPostOperationName:
		request, err := cpo.ParseSessionPostRequest(data)
		if err != nil {
			return badRequest(operation, err)
		}
		response = ps.handler.OnSessionPost(request.PartnerIdentifier, request.Session)
	case emp.SessionStartOperationName:
		request, err := emp.ParseSessionStartRequest(data)
		if err != nil {
			return badRequest(operation, err)
		}
		response = ps.handler.OnSessionStart(request.User, request.ConnectorId, request.PaymentReference)
	case emp.SessionStopOperationName:
		request, err := emp.ParseSessionStopRequest(data)
		if err != nil {
			return badRequest(operation, err)
		}
		response = ps.handler.OnSessionStop(request.User, request.ConnectorId, request.SessionId)
	case emp.StationGetSurfaceOperationName:
		request, err := emp.ParseStationGetSurfaceRequest(data)
		if err != nil {
			return badRequest(operation, err)
		}
		response = ps.handler.OnStationGetSurface(request)
	default:
		ps.logger.Warn(fmt.Sprintf("unsupported operation %s from %s", operation, remote))
		return errorBody(operation, fmt.Sprintf("operation not supported: %s", operation))
	}

	counters.CountServerRequest(operation, string(response.Result().Code))
	body, err := response.ToJSON()
	if err != nil {
		ps.logger.Error(fmt.Sprintf("encoding %s response", operation), err)
		return nil, http.StatusInternalServerError
	}
	return body, http.StatusOK
}

// badRequest answers an undecodable or invalid operation payload.
func badRequest(operation string, err error) ([]byte, int) {
	return errorBody(operation, err.Error())
}

func errorBody(operation, message string) ([]byte, int) {
	counters.CountServerRequest(operation, string(types.ResultCodeClientRequestError))
	body, _ := json.Marshal(struct {
		Result types.Result `json:"result"`
	}{Result: types.ClientRequestError(message)})
	return body, http.StatusBadRequest
}

func (ps *PartnerSystem) Start() {

	go func() {
		if err := ps.server.Start(); err != nil {
			ps.logger.Error("server failed", err)
		}
	}()

	go func() {
		if err := metrics.Listen(ps.server.conf); err != nil {
			ps.logger.Error("metrics server failed", err)
		}
	}()

	select {}
}

func NewPartnerSystem(conf *config.Config) (*PartnerSystem, error) {
	ps := PartnerSystem{}

	log.Println("set time zone to " + conf.TimeZone)
	location, err := time.LoadLocation(conf.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time zone initialization failed: %s", err)
	}
	var database internal.Database

	if conf.Mongo.Enabled {
		database, err = internal.NewMongoClient(conf)
		if err != nil {
			return nil, fmt.Errorf("mongodb setup failed: %s", err)
		}
		if database != nil {
			log.Println("mongodb is configured and enabled")
		}
	} else {
		log.Println("database is disabled")
	}

	var messageService internal.MessageService
	if conf.Pusher.Enabled {
		messagePusher, err := pusher.NewPusher(conf)
		if err != nil {
			return nil, fmt.Errorf("pusher setup failed: %s", err)
		}
		if messagePusher != nil {
			messageService = messagePusher
			log.Println("pusher service is configured and enabled")
		}
	} else {
		log.Println("message pushing service is disabled")
	}

	// logger with database and push service for the message handling
	logService := internal.NewLogger(location)
	logService.SetDebugMode(conf.IsDebug)
	logService.SetDatabase(database)
	logService.SetMessageService(messageService)

	ps.logger = logService

	// system events handler
	systemHandler := NewSystemHandler()
	systemHandler.SetDatabase(database)
	systemHandler.SetLogger(logService)
	systemHandler.SetDebugMode(conf.IsDebug)

	if conf.Telegram.Enabled {
		telegramBot, err := telegram.NewBot(conf.Telegram.ApiKey)
		if err != nil {
			return nil, fmt.Errorf("telegram bot setup failed: %s", err)
		}
		telegramBot.SetDatabase(database)
		telegramBot.Start()
		systemHandler.AddEventListener(telegramBot)
		log.Println("telegram bot is configured and enabled")
	}

	// http listener with the websocket event feed
	httpServer := NewServer(conf, logService)
	httpServer.SetRequestHandler(ps.handleRequest)
	systemHandler.AddEventListener(httpServer)

	apiHandler := api.NewHandler(logService, database, systemHandler)
	httpServer.SetApiHandler(apiHandler.HandleApiCall)

	ps.server = httpServer

	err = systemHandler.OnStart()
	if err != nil {
		return nil, err
	}
	ps.handler = systemHandler

	return &ps, nil
}
