package oioi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"oioi/models"
	"oioi/oioi/cpo"
	"oioi/types"
)

type recordingListener struct {
	starts    []*CallEvent
	completes []*CallEvent
}

func (l *recordingListener) OnCallStart(event *CallEvent) { l.starts = append(l.starts, event) }

func (l *recordingListener) OnCallComplete(event *CallEvent) {
	l.completes = append(l.completes, event)
}

func newTestClient(t *testing.T, url string, mutate func(conf *Config)) *Client {
	t.Helper()
	conf := Config{
		Url:               url,
		ApiKey:            "secret",
		PartnerIdentifier: "GraphDefined",
		MaxRetries:        2,
	}
	if mutate != nil {
		mutate(&conf)
	}
	client, err := New(conf)
	if err != nil {
		t.Fatalf("client setup failed: %v", err)
	}
	return client
}

func connectorRequest(t *testing.T) *cpo.ConnectorPostStatusRequest {
	t.Helper()
	request, err := cpo.NewConnectorPostStatusRequest("165946", "GraphDefined", types.ConnectorStatusAvailable)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	return request
}

func TestConfigValidation(t *testing.T) {
	if _, err := New(Config{ApiKey: "k", PartnerIdentifier: "p"}); err == nil {
		t.Error("missing url must fail construction")
	}
	if _, err := New(Config{Url: "http://localhost", PartnerIdentifier: "p"}); err == nil {
		t.Error("missing api key must fail construction")
	}
	if _, err := New(Config{Url: "http://localhost", ApiKey: "k"}); err == nil {
		t.Error("missing partner identifier must fail construction")
	}
	if _, err := New(Config{Url: "http://localhost", ApiKey: "k", PartnerIdentifier: "p", MaxRetries: -1}); err == nil {
		t.Error("negative retry count must fail construction")
	}
	client, err := New(Config{Url: "http://localhost", ApiKey: "k", PartnerIdentifier: "p"})
	if err != nil {
		t.Fatalf("valid configuration rejected: %v", err)
	}
	if client.conf.Timeout != DefaultTimeout {
		t.Errorf("timeout not defaulted: %v", client.conf.Timeout)
	}
}

func TestSuccessfulCall(t *testing.T) {
	var gotAuth, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"connector-post-status":{"success":true}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	outcome := client.ConnectorPostStatus(context.Background(), connectorRequest(t))
	if !outcome.IsSuccess() {
		t.Fatalf("expected success, got %s: %s", outcome.Result.Code, outcome.Result.Message)
	}
	if outcome.Attempts != 1 {
		t.Errorf("expected a single attempt, got %d", outcome.Attempts)
	}
	if outcome.HTTPStatus != http.StatusOK {
		t.Errorf("expected status 200, got %d", outcome.HTTPStatus)
	}
	if gotAuth != "key=secret" {
		t.Errorf("wrong authorization header %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("wrong content type %q", gotContentType)
	}
}

func TestRetryBudgetOnPersistent408(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusRequestTimeout)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, func(conf *Config) { conf.MaxRetries = 3 })
	outcome := client.ConnectorPostStatus(context.Background(), connectorRequest(t))
	if got := atomic.LoadInt32(&calls); got != 4 {
		t.Errorf("expected exactly 4 attempts, server saw %d", got)
	}
	if outcome.Attempts != 4 {
		t.Errorf("outcome reports %d attempts", outcome.Attempts)
	}
	if outcome.Result.Code != types.ResultCodeTimeout {
		t.Errorf("expected timeout after exhausting retries, got %s", outcome.Result.Code)
	}
}

func TestNoRetryOn422(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	outcome := client.ConnectorPostStatus(context.Background(), connectorRequest(t))
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("a 422 must not be retried, server saw %d calls", got)
	}
	if outcome.Result.Code != types.ResultCodeAmbiguousIdentifier {
		t.Errorf("expected ambiguous-identifier, got %s", outcome.Result.Code)
	}
	if outcome.IsSuccess() {
		t.Error("a 422 outcome must not be a success")
	}
}

func TestExclusionShortCircuit(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	listener := &recordingListener{}
	client := newTestClient(t, server.URL, func(conf *Config) {
		conf.ConnectorStatusFilter = func(connectorId types.ConnectorID, status types.ConnectorStatus) bool {
			return false
		}
		conf.Listeners = []CallListener{listener}
	})
	outcome := client.ConnectorPostStatus(context.Background(), connectorRequest(t))
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Errorf("excluded call must not touch the network, server saw %d calls", got)
	}
	if !outcome.IsSuccess() {
		t.Errorf("excluded call must succeed synthetically, got %s", outcome.Result.Code)
	}
	if !outcome.Excluded {
		t.Error("outcome must be flagged as excluded")
	}
	if len(listener.starts) != 1 || len(listener.completes) != 1 {
		t.Errorf("exclusion must still notify once each way, got %d/%d", len(listener.starts), len(listener.completes))
	}
}

func TestListenerPairingAndCorrelation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"connector-post-status":{"success":true}}`))
	}))
	defer server.Close()

	listener := &recordingListener{}
	client := newTestClient(t, server.URL, func(conf *Config) {
		conf.Listeners = []CallListener{listener}
	})

	ctx := WithCorrelationID(context.Background(), "trace-1")
	outcome := client.ConnectorPostStatus(ctx, connectorRequest(t))

	if len(listener.starts) != 1 || len(listener.completes) != 1 {
		t.Fatalf("expected one start and one complete, got %d/%d", len(listener.starts), len(listener.completes))
	}
	start, complete := listener.starts[0], listener.completes[0]
	if start.CorrelationId != "trace-1" || complete.CorrelationId != "trace-1" {
		t.Errorf("correlation id not propagated: %q / %q", start.CorrelationId, complete.CorrelationId)
	}
	if outcome.CorrelationId != "trace-1" {
		t.Errorf("outcome lost the correlation id: %q", outcome.CorrelationId)
	}
	if complete.Attempts != 1 || complete.Response == nil {
		t.Errorf("completion event missing outcome fields: %+v", complete)
	}
}

type panickingListener struct{}

func (panickingListener) OnCallStart(event *CallEvent) { panic("observer fault") }

func (panickingListener) OnCallComplete(event *CallEvent) { panic("observer fault") }

func TestListenerPanicDoesNotAbortCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"connector-post-status":{"success":true}}`))
	}))
	defer server.Close()

	var reported []error
	client := newTestClient(t, server.URL, func(conf *Config) {
		conf.Listeners = []CallListener{panickingListener{}}
		conf.OnException = func(_ time.Time, _ []byte, err error) {
			reported = append(reported, err)
		}
	})
	outcome := client.ConnectorPostStatus(context.Background(), connectorRequest(t))
	if !outcome.IsSuccess() {
		t.Fatalf("listener panic must not fail the call, got %s", outcome.Result.Code)
	}
	if len(reported) != 2 {
		t.Errorf("expected both panics on the exception channel, got %d", len(reported))
	}
}

func TestRequestMapperReturningNil(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, func(conf *Config) {
		conf.RequestMapper = func(request Request) Request { return nil }
	})
	outcome := client.ConnectorPostStatus(context.Background(), connectorRequest(t))
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("a nil-mapped request must not reach the network")
	}
	if outcome.Result.Code != types.ResultCodeClientRequestError {
		t.Errorf("expected client-request-error, got %s", outcome.Result.Code)
	}
}

func TestInvalidResponseFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"station-post":{"success":true}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	outcome := client.ConnectorPostStatus(context.Background(), connectorRequest(t))
	if outcome.Result.Code != types.ResultCodeInvalidResponseFormat {
		t.Errorf("foreign root key must decode to invalid-response-format, got %s", outcome.Result.Code)
	}
}

func TestCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"connector-post-status":{"success":true}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	outcome := client.ConnectorPostStatus(ctx, connectorRequest(t))
	if outcome.Result.Code != types.ResultCodeCancelled {
		t.Errorf("expected cancelled, got %s", outcome.Result.Code)
	}
}

func TestPartnerDefaultingViaSelector(t *testing.T) {
	received := make(chan []byte, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- body
		_, _ = w.Write([]byte(`{"connector-post-status":{"success":true}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	outcome := client.PostConnectorStatus(context.Background(), "165946", types.ConnectorStatusAvailable)
	if !outcome.IsSuccess() {
		t.Fatalf("expected success, got %s", outcome.Result.Code)
	}
	body := string(<-received)
	expected := `{"connector-post-status":{"connector-id":"165946","partner-identifier":"GraphDefined","status":"Available"}}`
	if body != expected {
		t.Errorf("convenience overload body mismatch\n got: %s\nwant: %s", body, expected)
	}
}

func TestVerifyRFIDOverload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rfid-verify":{"verified":true}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	verified, outcome := client.VerifyRFID(context.Background(), "04A1B2")
	if !verified {
		t.Error("verified answer lost")
	}
	if !outcome.IsSuccess() {
		t.Errorf("expected success, got %s", outcome.Result.Code)
	}
}

func TestStationFilterSelectsPerStation(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"station-post":{"success":true}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, func(conf *Config) {
		conf.StationFilter = func(station models.Station) bool {
			return station.CpoId == "CPO-1"
		}
	})

	included := models.Station{Id: "ST-1", CpoId: "CPO-1", Connectors: []models.Connector{{Id: "1", Type: types.ConnectorTypeType2}}}
	excluded := models.Station{Id: "ST-2", CpoId: "CPO-2", Connectors: []models.Connector{{Id: "2", Type: types.ConnectorTypeType2}}}

	if outcome := client.PostStation(context.Background(), included); !outcome.IsSuccess() || outcome.Excluded {
		t.Errorf("matching station must be sent: %+v", outcome.Result)
	}
	if outcome := client.PostStation(context.Background(), excluded); !outcome.Excluded {
		t.Error("non-matching station must be excluded")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected one network call, server saw %d", got)
	}
}
