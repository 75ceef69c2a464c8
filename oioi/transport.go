package oioi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"oioi/metrics/counters"
	"oioi/types"
)

// Request is the contract every operation request satisfies. A request that
// exists has been validated at construction; Validate is re-checked before
// transmission because the request mapper may have produced a new value.
type Request interface {
	Operation() string
	Validate() error
	ToJSON() ([]byte, error)
	TimeoutOverride() time.Duration
}

// Response is the uniform decision surface for callers: every response,
// decoded or synthesized, carries a coded result.
type Response interface {
	Result() types.Result
}

// RequestMapper rewrites a request before transmission. Returning nil fails
// the call before any network activity.
type RequestMapper func(request Request) Request

// ResponseMapper is the one-shot post-processing hook applied to decoded
// responses; it receives the raw wire payload alongside the parsed value.
type ResponseMapper func(raw json.RawMessage, response Response) Response

// PartnerSelector derives the partner identifier for a payload when a
// convenience overload is used without an explicit one.
type PartnerSelector func(payload any) types.PartnerIdentifier

type syntheticResponse struct {
	result types.Result
}

func (r syntheticResponse) Result() types.Result {
	return r.result
}

// NewSyntheticResponse wraps a locally produced result so failures created
// inside the transport are indistinguishable, API-wise, from decoded ones.
func NewSyntheticResponse(result types.Result) Response {
	return syntheticResponse{result: result}
}

// Outcome is the wrapper every operation returns: the transport-level view
// (HTTP status, attempts, duration) plus the decoded or synthetic Response.
type Outcome struct {
	Request       Request
	Response      Response
	Result        types.Result
	HTTPStatus    int
	RawBody       []byte
	Attempts      int
	Duration      time.Duration
	CorrelationId string
	Excluded      bool
}

func (o *Outcome) IsSuccess() bool {
	return o.Result.IsSuccess()
}

// call bundles what the facade knows about one operation invocation.
type call struct {
	request  Request
	payload  any
	partner  types.PartnerIdentifier
	excluded bool
	decode   func(data []byte) (Response, error)
}

// send drives one call through its lifecycle: mapper, exclusion check,
// start notification, bounded retry loop, decode, completion notification.
// It never panics and never returns a nil Response.
func (c *Client) send(ctx context.Context, op call) *Outcome {
	started := time.Now()
	outcome := &Outcome{
		Request:       op.request,
		CorrelationId: correlationID(ctx),
		Excluded:      op.excluded,
	}

	request := op.request
	if c.conf.RequestMapper != nil {
		request = c.conf.RequestMapper(request)
		outcome.Request = request
	}

	operation := "unknown"
	timeout := c.conf.Timeout
	if request != nil {
		operation = request.Operation()
		if override := request.TimeoutOverride(); override > 0 {
			timeout = override
		}
	}

	event := &CallEvent{
		Operation:     operation,
		CorrelationId: outcome.CorrelationId,
		ClientId:      c.conf.ClientId,
		PartnerId:     op.partner,
		StartTime:     started,
		RequestTime:   started,
		Timeout:       timeout,
		Payload:       op.payload,
	}
	c.fireCallStart(event)

	outcome.Response = c.execute(ctx, op, request, operation, timeout, outcome)
	outcome.Result = outcome.Response.Result()
	outcome.Duration = time.Since(started)

	counters.CountApiCall(operation, string(outcome.Result.Code))
	c.logOutcome(operation, outcome)

	event.EndTime = started.Add(outcome.Duration)
	event.Duration = outcome.Duration
	event.Attempts = outcome.Attempts
	event.Response = outcome.Response
	c.fireCallComplete(event)

	return outcome
}

func (c *Client) execute(ctx context.Context, op call, request Request, operation string, timeout time.Duration, outcome *Outcome) Response {
	if request == nil {
		return NewSyntheticResponse(types.ClientRequestError("request mapper returned no request"))
	}
	if err := request.Validate(); err != nil {
		return NewSyntheticResponse(types.ClientRequestError(err.Error()))
	}
	if op.excluded {
		// deliberate no-op, zero network calls
		return NewSyntheticResponse(types.Success(fmt.Sprintf("%s excluded by filter, nothing to send", operation)))
	}

	body, err := request.ToJSON()
	if err != nil {
		c.reportException(nil, err)
		return NewSyntheticResponse(types.ClientRequestError(err.Error()))
	}

	for attempt := 0; attempt <= c.conf.MaxRetries; attempt++ {
		outcome.Attempts = attempt + 1
		if attempt > 0 {
			counters.CountRetry(operation)
			c.logAttempt(operation, outcome.CorrelationId, attempt)
		}

		resp, err := c.http.Send(ctx, body, timeout)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return NewSyntheticResponse(types.Cancelled("request cancelled"))
			}
			if errors.Is(err, context.DeadlineExceeded) {
				if ctx.Err() != nil {
					// the caller's own deadline is gone, retrying is pointless
					return NewSyntheticResponse(types.Timeout("request deadline expired"))
				}
				continue
			}
			c.reportException(nil, err)
			return NewSyntheticResponse(types.ClientRequestError(err.Error()))
		}

		outcome.HTTPStatus = resp.StatusCode
		outcome.RawBody = resp.Body

		if resp.StatusCode == http.StatusRequestTimeout {
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return NewSyntheticResponse(types.HTTPError(resp.StatusCode))
		}

		response, err := op.decode(resp.Body)
		if err != nil {
			c.reportException(resp.Body, err)
			return NewSyntheticResponse(types.InvalidResponseFormat(err.Error()))
		}
		if c.conf.ResponseMapper != nil {
			if mapped := c.conf.ResponseMapper(resp.Body, response); mapped != nil {
				response = mapped
			}
		}
		return response
	}

	return NewSyntheticResponse(types.Timeout(fmt.Sprintf("retry budget exhausted after %d attempts", c.conf.MaxRetries+1)))
}

func (c *Client) logAttempt(operation, correlationId string, attempt int) {
	if c.conf.Logger == nil {
		return
	}
	c.conf.Logger.FeatureEvent(operation, correlationId, fmt.Sprintf("timeout, retry attempt %d", attempt))
}

func (c *Client) logOutcome(operation string, outcome *Outcome) {
	if c.conf.Logger == nil {
		return
	}
	c.conf.Logger.FeatureEvent(operation, outcome.CorrelationId,
		fmt.Sprintf("finished with result %s after %d attempt(s) in %s", outcome.Result.Code, outcome.Attempts, outcome.Duration))
}
