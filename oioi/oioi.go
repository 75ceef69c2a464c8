// Package oioi binds the partner API operations behind one client with
// shared endpoint, credentials and policy. Message types live in the cpo
// and emp subpackages, the raw HTTP transport in client.
package oioi

import (
	"context"
	"time"

	"oioi/internal"
	"oioi/models"
	"oioi/oioi/client"
	"oioi/oioi/cpo"
	"oioi/oioi/emp"
	"oioi/types"
	"oioi/utility"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 2
)

// Config carries everything a Client needs; hooks left nil default to
// identity or always-true behaviour. Validated once at construction,
// read-only afterwards.
type Config struct {
	Url               string
	ApiKey            string
	PartnerIdentifier types.PartnerIdentifier
	ClientId          string
	Timeout           time.Duration
	MaxRetries        int

	PartnerSelector       PartnerSelector
	RequestMapper         RequestMapper
	ResponseMapper        ResponseMapper
	StationFilter         func(station models.Station) bool
	ConnectorStatusFilter func(connectorId types.ConnectorID, status types.ConnectorStatus) bool
	SessionFilter         func(session models.Session) bool
	Listeners             []CallListener
	OnException           ExceptionHandler
	Logger                internal.LogHandler
}

type Client struct {
	conf Config
	http *client.Client
}

func New(conf Config) (*Client, error) {
	if conf.Url == "" {
		return nil, utility.Err("missed Url parameter in client configuration")
	}
	if conf.ApiKey == "" {
		return nil, utility.Err("missed ApiKey parameter in client configuration")
	}
	if conf.PartnerIdentifier == "" {
		return nil, utility.Err("missed PartnerIdentifier parameter in client configuration")
	}
	if conf.Timeout == 0 {
		conf.Timeout = DefaultTimeout
	}
	if conf.Timeout < 0 {
		return nil, utility.Err("client timeout must be positive")
	}
	if conf.MaxRetries < 0 {
		return nil, utility.Err("max retry count must not be negative")
	}
	if conf.PartnerSelector == nil {
		partner := conf.PartnerIdentifier
		conf.PartnerSelector = func(any) types.PartnerIdentifier { return partner }
	}
	return &Client{
		conf: conf,
		http: client.New(conf.Url, conf.ApiKey),
	}, nil
}

// StationPost uploads a station description (CPO).
func (c *Client) StationPost(ctx context.Context, request *cpo.StationPostRequest) *Outcome {
	excluded := c.conf.StationFilter != nil && !c.conf.StationFilter(request.Station)
	return c.send(ctx, call{
		request:  request,
		payload:  request.Station,
		partner:  request.PartnerIdentifier,
		excluded: excluded,
		decode: func(data []byte) (Response, error) {
			return cpo.ParseStationPostResponse(data)
		},
	})
}

// ConnectorPostStatus pushes a connector status change (CPO).
func (c *Client) ConnectorPostStatus(ctx context.Context, request *cpo.ConnectorPostStatusRequest) *Outcome {
	excluded := c.conf.ConnectorStatusFilter != nil && !c.conf.ConnectorStatusFilter(request.ConnectorId, request.Status)
	return c.send(ctx, call{
		request:  request,
		payload:  request.Status,
		partner:  request.PartnerIdentifier,
		excluded: excluded,
		decode: func(data []byte) (Response, error) {
			return cpo.ParseConnectorPostStatusResponse(data)
		},
	})
}

// RFIDVerify asks the remote API whether a token is known (CPO).
func (c *Client) RFIDVerify(ctx context.Context, request *cpo.RFIDVerifyRequest) *Outcome {
	return c.send(ctx, call{
		request: request,
		payload: request.RFID,
		partner: request.PartnerIdentifier,
		decode: func(data []byte) (Response, error) {
			return cpo.ParseRFIDVerifyResponse(data)
		},
	})
}

// SessionPost reports a finished charging session (CPO).
func (c *Client) SessionPost(ctx context.Context, request *cpo.SessionPostRequest) *Outcome {
	excluded := c.conf.SessionFilter != nil && !c.conf.SessionFilter(request.Session)
	return c.send(ctx, call{
		request:  request,
		payload:  request.Session,
		partner:  request.PartnerIdentifier,
		excluded: excluded,
		decode: func(data []byte) (Response, error) {
			return cpo.ParseSessionPostResponse(data)
		},
	})
}

// SessionStart starts a charging session for a customer (EMP).
func (c *Client) SessionStart(ctx context.Context, request *emp.SessionStartRequest) *Outcome {
	return c.send(ctx, call{
		request: request,
		payload: request.User,
		decode: func(data []byte) (Response, error) {
			return emp.ParseSessionStartResponse(data)
		},
	})
}

// SessionStop stops a running charging session (EMP).
func (c *Client) SessionStop(ctx context.Context, request *emp.SessionStopRequest) *Outcome {
	return c.send(ctx, call{
		request: request,
		payload: request.SessionId,
		decode: func(data []byte) (Response, error) {
			return emp.ParseSessionStopResponse(data)
		},
	})
}

// StationGetSurface queries stations within a bounding box (EMP).
func (c *Client) StationGetSurface(ctx context.Context, request *emp.StationGetSurfaceRequest) *Outcome {
	return c.send(ctx, call{
		request: request,
		decode: func(data []byte) (Response, error) {
			return emp.ParseStationGetSurfaceResponse(data)
		},
	})
}
