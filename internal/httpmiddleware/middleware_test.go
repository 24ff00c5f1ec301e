package httpmiddleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_Order(t *testing.T) {
	var calls []string

	mark := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
				calls = append(calls, name)
				return next.RoundTrip(req)
			})
		}
	}

	base := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		calls = append(calls, "base")
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})

	rt := Wrap(base, mark("outer"), mark("inner"))

	req := httptest.NewRequest(http.MethodGet, "http://store.local/", nil)
	_, err := rt.RoundTrip(req)
	require.NoError(t, err)

	assert.Equal(t, []string{"outer", "inner", "base"}, calls)
}

func TestRequestID(t *testing.T) {
	var seen []string

	base := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		seen = append(seen, req.Header.Get(RequestIDHeader))
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})

	rt := Wrap(base, RequestID)

	ctx := WithRequestID(context.Background(), "req-42")
	req := httptest.NewRequest(http.MethodGet, "http://store.local/", nil).WithContext(ctx)
	_, err := rt.RoundTrip(req)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "http://store.local/", nil)
	_, err = rt.RoundTrip(req)
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, "req-42", seen[0])
	assert.NotEmpty(t, seen[1])
	assert.NotEqual(t, "req-42", seen[1])

	// исходный запрос не меняется
	assert.Empty(t, req.Header.Get(RequestIDHeader))
}

func TestLogger_RedactsAndKeepsBodies(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var received string

	base := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		b, _ := io.ReadAll(req.Body)
		received = string(b)

		return &http.Response{
			StatusCode: http.StatusBadRequest,
			Body:       io.NopCloser(strings.NewReader(`{"code":"validation_error"}`)),
		}, nil
	})

	rt := Wrap(base,
		RequestGetBodySetter,
		Headers(map[string]string{"Authorization": "Bearer secret_abc"}),
		Logger(logger, FullBody),
	)

	req := httptest.NewRequest(http.MethodPost, "http://store.local/pages", strings.NewReader(`{"parent":{}}`))
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, `{"code":"validation_error"}`, string(body))
	assert.Equal(t, `{"parent":{}}`, received)

	out := logs.String()
	assert.NotContains(t, out, "secret_abc")
	assert.Contains(t, out, "[REDACTED]")
	assert.Contains(t, out, "validation_error")
	assert.Contains(t, out, "level=WARN")
}

func TestLogger_NoBody(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	base := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader("payload"))}, nil
	})

	rt := Wrap(base, RequestGetBodySetter, Logger(logger, NoBody))

	req := httptest.NewRequest(http.MethodPost, "http://store.local/", strings.NewReader("request-payload"))
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "payload", string(body))
	assert.NotContains(t, logs.String(), "payload")
}
