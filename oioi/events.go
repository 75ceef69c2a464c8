package oioi

import (
	"fmt"
	"time"

	"oioi/types"
)

// CallEvent carries the correlation fields observers need to pair a request
// with its final response. The same value is delivered to OnCallStart and,
// completed with outcome fields, to OnCallComplete.
type CallEvent struct {
	Operation     string                  `json:"operation"`
	CorrelationId string                  `json:"correlation_id"`
	ClientId      string                  `json:"client_id,omitempty"`
	PartnerId     types.PartnerIdentifier `json:"partner_id,omitempty"`
	StartTime     time.Time               `json:"start_time"`
	RequestTime   time.Time               `json:"request_time"`
	Timeout       time.Duration           `json:"timeout"`
	Payload       any                     `json:"payload,omitempty"`

	// completion fields, zero until OnCallComplete
	EndTime  time.Time     `json:"end_time,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
	Attempts int           `json:"attempts,omitempty"`
	Response Response      `json:"response,omitempty"`
}

// CallListener observes the lifecycle of every call. For any outcome,
// including exclusions and synthetic failures, OnCallStart fires exactly once
// before the network attempt and OnCallComplete exactly once after the final
// outcome is known.
type CallListener interface {
	OnCallStart(event *CallEvent)
	OnCallComplete(event *CallEvent)
}

// ExceptionHandler is the side channel for faults that must not abort a
// call: decode failures, listener panics, unexpected send errors.
type ExceptionHandler func(timestamp time.Time, raw []byte, err error)

func (c *Client) reportException(raw []byte, err error) {
	if c.conf.OnException == nil {
		return
	}
	c.conf.OnException(time.Now(), raw, err)
}

// notify runs one listener callback, isolating panics so no observer can
// abort the underlying call.
func (c *Client) notify(f func()) {
	defer func() {
		if r := recover(); r != nil {
			c.reportException(nil, fmt.Errorf("call listener panic: %v", r))
		}
	}()
	f()
}

func (c *Client) fireCallStart(event *CallEvent) {
	for _, listener := range c.conf.Listeners {
		listener := listener
		c.notify(func() { listener.OnCallStart(event) })
	}
}

func (c *Client) fireCallComplete(event *CallEvent) {
	for _, listener := range c.conf.Listeners {
		listener := listener
		c.notify(func() { listener.OnCallComplete(event) })
	}
}
