package oioi

import (
	"context"

	"oioi/models"
	"oioi/oioi/cpo"
	"oioi/oioi/emp"
	"oioi/types"
)

// Convenience overloads building requests from raw domain values. The
// partner identifier is derived from the configured selector, the timeout
// from the client default. A value that fails request validation yields a
// client-request-error outcome without network activity.

func (c *Client) PostStation(ctx context.Context, station models.Station) *Outcome {
	request, err := cpo.NewStationPostRequest(station, c.conf.PartnerSelector(station))
	if err != nil {
		return c.invalid(ctx, err)
	}
	return c.StationPost(ctx, request)
}

func (c *Client) PostConnectorStatus(ctx context.Context, connectorId types.ConnectorID, status types.ConnectorStatus) *Outcome {
	request, err := cpo.NewConnectorPostStatusRequest(connectorId, c.conf.PartnerSelector(connectorId), status)
	if err != nil {
		return c.invalid(ctx, err)
	}
	return c.ConnectorPostStatus(ctx, request)
}

// VerifyRFID reports whether the token is known to the remote API. The
// boolean is only meaningful when the outcome is successful.
func (c *Client) VerifyRFID(ctx context.Context, rfid types.RFID) (bool, *Outcome) {
	request, err := cpo.NewRFIDVerifyRequest(rfid, c.conf.PartnerSelector(rfid))
	if err != nil {
		return false, c.invalid(ctx, err)
	}
	outcome := c.RFIDVerify(ctx, request)
	if response, ok := outcome.Response.(*cpo.RFIDVerifyResponse); ok {
		return response.Verified, outcome
	}
	return false, outcome
}

func (c *Client) PostSession(ctx context.Context, session models.Session) *Outcome {
	request, err := cpo.NewSessionPostRequest(session, c.conf.PartnerSelector(session))
	if err != nil {
		return c.invalid(ctx, err)
	}
	return c.SessionPost(ctx, request)
}

func (c *Client) StartSession(ctx context.Context, user models.User, connectorId types.ConnectorID) (*emp.SessionStartResponse, *Outcome) {
	request, err := emp.NewSessionStartRequest(user, connectorId)
	if err != nil {
		return nil, c.invalid(ctx, err)
	}
	outcome := c.SessionStart(ctx, request)
	response, _ := outcome.Response.(*emp.SessionStartResponse)
	return response, outcome
}

func (c *Client) StopSession(ctx context.Context, user models.User, connectorId types.ConnectorID, sessionId types.SessionID) *Outcome {
	request, err := emp.NewSessionStopRequest(user, connectorId, sessionId)
	if err != nil {
		return c.invalid(ctx, err)
	}
	return c.SessionStop(ctx, request)
}

func (c *Client) GetStationSurface(ctx context.Context, minLat, maxLat, minLong, maxLong float64, filters SurfaceFilters) ([]emp.SurfaceStation, *Outcome) {
	request, err := emp.NewStationGetSurfaceRequest(minLat, maxLat, minLong, maxLong)
	if err != nil {
		return nil, c.invalid(ctx, err)
	}
	request.Filters = filters
	outcome := c.StationGetSurface(ctx, request)
	if response, ok := outcome.Response.(*emp.StationGetSurfaceResponse); ok {
		return response.Stations, outcome
	}
	return nil, outcome
}

// SurfaceFilters re-exports the surface query filter for callers using only
// the facade package.
type SurfaceFilters = emp.SurfaceFilters

// invalid produces a uniform outcome for values rejected before a request
// could even be constructed.
func (c *Client) invalid(ctx context.Context, err error) *Outcome {
	outcome := &Outcome{CorrelationId: correlationID(ctx)}
	outcome.Response = NewSyntheticResponse(types.ClientRequestError(err.Error()))
	outcome.Result = outcome.Response.Result()
	return outcome
}
