package minio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/awsxray/v1/capture"
	"github.com/Aleph-Alpha/awsxray/v1/observability"
	"github.com/Aleph-Alpha/awsxray/v1/segment"
)

type discardEmitter struct{}

func (discardEmitter) Emit(*segment.Document) error { return nil }

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

type recordingLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *recordingLogger) Info(msg string, _ error, _ ...map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, msg)
}

func (l *recordingLogger) Warn(msg string, _ error, _ ...map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, msg)
}

// mockMinio answers HEAD and DELETE for objects under /invoices and 404s
// everything else.
func newMockMinio(t *testing.T) (*httptest.Server, *[]string) {
	var (
		mu      sync.Mutex
		headers []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		headers = append(headers, r.Header.Get(segment.TraceHeaderName))
		mu.Unlock()

		w.Header().Set("x-amz-request-id", "MINIOREQ")
		switch {
		case r.Method == http.MethodHead && r.URL.Path == "/invoices/2024/03.pdf":
			w.Header().Set("ETag", `"abc"`)
			w.Header().Set("Content-Length", "5")
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Last-Modified", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Format(http.TimeFormat))
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodDelete && r.URL.Path == "/invoices/2024/03.pdf":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server, &headers
}

func newTestClient(t *testing.T, server *httptest.Server, rec *segment.Recorder, tracing TracingConfig) *minio.Client {
	client, err := NewClient(Config{
		Connection: ConnectionConfig{
			Endpoint:        server.Listener.Addr().String(),
			AccessKeyID:     "minioadmin",
			SecretAccessKey: "minioadmin",
			Region:          "us-east-1",
		},
		Tracing: tracing,
	}, rec, nil, nil)
	require.NoError(t, err)
	return client
}

func TestStatObjectTraced(t *testing.T) {
	server, headers := newMockMinio(t)
	rec := segment.NewRecorder(segment.Config{ServiceName: "billing"}, discardEmitter{}, nil)
	client := newTestClient(t, server, rec, TracingConfig{})

	ctx, seg := rec.BeginSegment(context.Background(), "")
	info, err := client.StatObject(ctx, "invoices", "2024/03.pdf", minio.StatObjectOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size)

	subs := seg.Subsegments()
	require.Len(t, subs, 1)
	sub := subs[0]
	assert.Equal(t, "s3", sub.Name())
	assert.True(t, sub.Closed())
	assert.False(t, sub.Errored())
	assert.False(t, sub.Faulted())

	awsAttr, ok := sub.Attribute("aws")
	require.True(t, ok)
	attrs := awsAttr.(capture.AWSAttributes)
	assert.Equal(t, "headObject", attrs.Request.Operation)
	assert.Equal(t, "us-east-1", attrs.Request.HTTPRequest.Region)
	assert.Equal(t, "MINIOREQ", attrs.RequestID)
	assert.Equal(t, map[string]string{"Bucket": "invoices", "Key": "2024/03.pdf"}, attrs.Request.Params)

	require.Len(t, *headers, 1)
	want := segment.TraceHeader{Root: seg.TraceID(), Parent: sub.ID(), Sampled: true}
	assert.Equal(t, want.String(), (*headers)[0])
}

func TestRemoveObjectTraced(t *testing.T) {
	server, _ := newMockMinio(t)
	rec := segment.NewRecorder(segment.Config{ServiceName: "billing"}, discardEmitter{}, nil)
	client := newTestClient(t, server, rec, TracingConfig{Service: "minio", OmitParams: true})

	ctx, seg := rec.BeginSegment(context.Background(), "")
	err := client.RemoveObject(ctx, "invoices", "2024/03.pdf", minio.RemoveObjectOptions{})
	require.NoError(t, err)

	subs := seg.Subsegments()
	require.Len(t, subs, 1)
	assert.Equal(t, "minio", subs[0].Name())

	awsAttr, _ := subs[0].Attribute("aws")
	attrs := awsAttr.(capture.AWSAttributes)
	assert.Equal(t, "deleteObject", attrs.Request.Operation)
	assert.Equal(t, http.StatusNoContent, attrs.Request.HTTPRequest.StatusCode)
	assert.Nil(t, attrs.Request.Params)
}

func TestStatObjectNotFound(t *testing.T) {
	server, _ := newMockMinio(t)
	rec := segment.NewRecorder(segment.Config{ServiceName: "billing"}, discardEmitter{}, nil)
	client := newTestClient(t, server, rec, TracingConfig{})

	ctx, seg := rec.BeginSegment(context.Background(), "")
	_, err := client.StatObject(ctx, "invoices", "missing.pdf", minio.StatObjectOptions{})
	require.Error(t, err)

	subs := seg.Subsegments()
	require.Len(t, subs, 1)
	sub := subs[0]
	assert.True(t, sub.Closed())
	assert.True(t, sub.Errored())
	assert.False(t, sub.Faulted())
	assert.False(t, sub.Throttled())
	assert.Nil(t, sub.Cause())

	httpAttr, _ := sub.Attribute("http")
	assert.Equal(t, http.StatusNotFound, httpAttr.(capture.HTTPOutcome).Response.Status)
}

func TestTransportWithoutSegment(t *testing.T) {
	var seen *http.Request
	base := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		seen = req
		return &http.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: http.NoBody, Request: req}, nil
	})

	rec := segment.NewRecorder(segment.Config{ServiceName: "billing"}, discardEmitter{}, nil)
	log := &recordingLogger{}
	var observed []observability.OperationContext
	observer := observability.ObserverFunc(func(op observability.OperationContext) {
		observed = append(observed, op)
	})
	transport := NewTransport(base, Config{}, rec, log, observer)

	req := httptest.NewRequest(http.MethodGet, "http://minio.local/invoices/a.pdf", nil)
	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, seen)
	assert.Empty(t, seen.Header.Get(segment.TraceHeaderName))
	assert.Equal(t, []string{"Call s3.getObject is missing the sub/segment context for automatic mode. Ignoring."}, log.msgs)

	require.Len(t, observed, 1)
	assert.Equal(t, "getObject", observed[0].Operation)
	assert.Equal(t, false, observed[0].Metadata["traced"])
}

func TestTransportError(t *testing.T) {
	dialErr := errors.New("connection refused")
	base := roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, dialErr
	})

	rec := segment.NewRecorder(segment.Config{ServiceName: "billing"}, discardEmitter{}, nil)
	transport := NewTransport(base, Config{}, rec, nil, nil)

	ctx, seg := rec.BeginSegment(context.Background(), "")
	req := httptest.NewRequest(http.MethodPut, "http://minio.local/invoices/a.pdf", nil).WithContext(ctx)
	resp, err := transport.RoundTrip(req)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, dialErr)

	subs := seg.Subsegments()
	require.Len(t, subs, 1)
	cause := subs[0].Cause()
	require.NotNil(t, cause)
	assert.Equal(t, "connection refused", cause.Message)
	assert.True(t, cause.Remote)
}

func TestTransportDoesNotMutateRequest(t *testing.T) {
	base := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: http.NoBody, Request: req}, nil
	})

	rec := segment.NewRecorder(segment.Config{ServiceName: "billing"}, discardEmitter{}, nil)
	transport := NewTransport(base, Config{}, rec, nil, nil)

	ctx, _ := rec.BeginSegment(context.Background(), "")
	req := httptest.NewRequest(http.MethodGet, "http://minio.local/", nil).WithContext(ctx)
	_, err := transport.RoundTrip(req)
	require.NoError(t, err)
	assert.Empty(t, req.Header.Get(segment.TraceHeaderName))
}

func TestTransportVirtualHostRequest(t *testing.T) {
	base := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: http.NoBody, Request: req}, nil
	})

	rec := segment.NewRecorder(segment.Config{ServiceName: "billing"}, discardEmitter{}, nil)
	transport := NewTransport(base, Config{Connection: ConnectionConfig{
		Endpoint: "s3.eu-west-1.amazonaws.com",
		Region:   "eu-west-1",
	}}, rec, nil, nil)

	ctx, seg := rec.BeginSegment(context.Background(), "")
	req := httptest.NewRequest(http.MethodGet, "https://invoices.s3.eu-west-1.amazonaws.com/2024/03.pdf", nil).WithContext(ctx)
	_, err := transport.RoundTrip(req)
	require.NoError(t, err)

	subs := seg.Subsegments()
	require.Len(t, subs, 1)
	awsAttr, _ := subs[0].Attribute("aws")
	attrs := awsAttr.(capture.AWSAttributes)
	assert.Equal(t, "getObject", attrs.Request.Operation)
	assert.Equal(t, map[string]string{"Bucket": "invoices", "Key": "2024/03.pdf"}, attrs.Request.Params)
}
