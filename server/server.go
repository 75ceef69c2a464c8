package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"oioi/internal"
	"oioi/internal/config"
	"oioi/metrics/counters"
	"oioi/utility"
)

const (
	requestEndpoint = "/api/v4/request"
	logEndpoint     = "/api/v4/log"
	stationEndpoint = "/api/v4/stations"
	wsEndpoint      = "/ws"
)

// Server terminates partner HTTP traffic: the single request endpoint every
// operation is posted to, a read api and a websocket feed of domain events.
type Server struct {
	conf           *config.Config
	httpServer     *http.Server
	upgrader       websocket.Upgrader
	requestHandler func(data []byte, remote string) ([]byte, int)
	apiHandler     func(callType, remote string) []byte
	logger         internal.LogHandler
	observers      map[string]*websocket.Conn
	mux            *sync.Mutex
}

func NewServer(conf *config.Config, logger internal.LogHandler) *Server {
	server := Server{
		conf:      conf,
		logger:    logger,
		upgrader:  websocket.Upgrader{},
		observers: make(map[string]*websocket.Conn),
		mux:       &sync.Mutex{},
	}
	// register itself as a router for httpServer handler
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler: router,
	}
	return &server
}

func (s *Server) SetRequestHandler(handler func(data []byte, remote string) ([]byte, int)) {
	s.requestHandler = handler
}

func (s *Server) SetApiHandler(handler func(callType, remote string) []byte) {
	s.apiHandler = handler
}

func (s *Server) Register(router *httprouter.Router) {
	router.POST(requestEndpoint, s.handleRequest)
	router.GET(logEndpoint, s.handleReadLog)
	router.GET(stationEndpoint, s.handleReadStations)
	router.GET(wsEndpoint, s.handleWsRequest)
}

// authorized checks the partner key header. With no key configured every
// caller is accepted.
func (s *Server) authorized(r *http.Request) bool {
	if s.conf.Listen.ApiKey == "" {
		return true
	}
	header := r.Header.Get("Authorization")
	key := strings.TrimPrefix(header, "key=")
	return key != header && key == s.conf.Listen.ApiKey
}

func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !s.authorized(r) {
		s.logger.Warn(fmt.Sprintf("unauthorized request from %s", r.RemoteAddr))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("error reading body from %s: %s", r.RemoteAddr, err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if s.requestHandler == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	s.logger.RawDataEvent("IN", string(body))
	response, status := s.requestHandler(body, r.RemoteAddr)
	s.logger.RawDataEvent("OUT", string(response))
	w.Header().Add("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if response != nil {
		_, err = w.Write(response)
		if err != nil {
			s.logger.Error("sending response", err)
		}
	}
}

func (s *Server) handleReadLog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.handleApiCall(w, r, "ReadLog")
}

func (s *Server) handleReadStations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.handleApiCall(w, r, "ReadStations")
}

func (s *Server) handleApiCall(w http.ResponseWriter, r *http.Request, callType string) {
	if !s.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if s.apiHandler == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	data := s.apiHandler(callType, r.RemoteAddr)
	if data == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Add("Content-Type", "application/json; charset=utf-8")
	_, err := w.Write(data)
	if err != nil {
		s.logger.Error("sending api response", err)
	}
}

func (s *Server) handleWsRequest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.logger.Debug(fmt.Sprintf("observer connection initiated from remote %s", r.RemoteAddr))

	s.upgrader.CheckOrigin = func(r *http.Request) bool {
		return true
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed: ", err)
		return
	}

	id := utility.NewUUID()
	s.mux.Lock()
	s.observers[id] = conn
	count := len(s.observers)
	s.mux.Unlock()
	counters.ObserveObservers(wsEndpoint, count)

	go s.observerReader(id, conn)
}

// observerReader drains the socket until the observer leaves; the feed is
// one-way, incoming frames are discarded.
func (s *Server) observerReader(id string, conn *websocket.Conn) {
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug(fmt.Sprintf("observer %s leaving", id))
			} else {
				s.logger.Debug(fmt.Sprintf("observer %s is closing session %s", id, err))
			}
			_ = conn.Close()
			s.mux.Lock()
			delete(s.observers, id)
			count := len(s.observers)
			s.mux.Unlock()
			counters.ObserveObservers(wsEndpoint, count)
			return
		}
	}
}

// broadcast pushes a domain event to every connected observer.
func (s *Server) broadcast(event *internal.EventMessage) {
	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("encoding event", err)
		return
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	for id, conn := range s.observers {
		if err = conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.logger.Warn(fmt.Sprintf("error writing to observer %s: %s", id, err))
		}
	}
}

// Server relays every domain event to its websocket observers.
func (s *Server) OnStationPost(event *internal.EventMessage) { s.broadcast(event) }

func (s *Server) OnConnectorStatus(event *internal.EventMessage) { s.broadcast(event) }

func (s *Server) OnSessionStart(event *internal.EventMessage) { s.broadcast(event) }

func (s *Server) OnSessionStop(event *internal.EventMessage) { s.broadcast(event) }

func (s *Server) OnSessionPost(event *internal.EventMessage) { s.broadcast(event) }

func (s *Server) OnRFIDVerify(event *internal.EventMessage) { s.broadcast(event) }

func (s *Server) Start() error {
	if s.conf == nil {
		return utility.Err("configuration not loaded")
	}
	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	s.logger.Debug(fmt.Sprintf("starting server on %s", serverAddress))
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}
	if s.conf.Listen.TLS {
		s.logger.Debug("starting https TLS server")
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Debug("starting http server")
		err = s.httpServer.Serve(listener)
	}
	return err
}
