package httpmiddleware

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Body logging modes for Logger.
const (
	NoBody   = 0
	FullBody = -1
)

var sensitiveHeaders = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"set-cookie":    {},
	"x-api-key":     {},
	"notion-token":  {},
}

// Logger logs every outbound call and its response.
// maxBodySize: NoBody disables body logging, FullBody logs everything,
// a positive value logs the first N bytes.
func Logger(logger *slog.Logger, maxBodySize int) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			logRequest(logger, req, maxBodySize)

			start := time.Now()
			resp, err := next.RoundTrip(req)
			elapsed := time.Since(start)

			if err != nil {
				logger.LogAttrs(req.Context(), slog.LevelError, "store call failed",
					slog.String("method", req.Method),
					slog.String("url", req.URL.String()),
					slog.String("request_id", req.Header.Get(RequestIDHeader)),
					slog.Duration("duration", elapsed),
					slog.Any("error", err))

				return resp, err
			}

			logResponse(logger, req, resp, elapsed, maxBodySize)

			return resp, nil
		})
	}
}

func logRequest(logger *slog.Logger, req *http.Request, maxBodySize int) {
	attrs := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.String("request_id", req.Header.Get(RequestIDHeader)),
		slog.Any("headers", headerGroup(req.Header)),
	}

	if maxBodySize != NoBody && req.GetBody != nil {
		if rc, err := req.GetBody(); err == nil {
			if body, err := readBody(rc, maxBodySize); err == nil && len(body) > 0 {
				attrs = append(attrs, slog.String("body", string(body)))
			}
		}
	}

	logger.LogAttrs(req.Context(), slog.LevelDebug, "📤 store request", attrs...)
}

func logResponse(logger *slog.Logger, req *http.Request, resp *http.Response, elapsed time.Duration, maxBodySize int) {
	attrs := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.String("request_id", req.Header.Get(RequestIDHeader)),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", elapsed),
	}

	if maxBodySize != NoBody && resp.Body != nil {
		body, err := readBody(resp.Body, FullBody)
		if err == nil {
			// the caller reads the body again
			resp.Body = io.NopCloser(bytes.NewReader(body))

			if maxBodySize > 0 && len(body) > maxBodySize {
				body = body[:maxBodySize]
			}

			if len(body) > 0 {
				attrs = append(attrs, slog.String("body", string(body)))
			}
		}
	}

	level := slog.LevelDebug
	switch {
	case resp.StatusCode >= 500:
		level = slog.LevelError
	case resp.StatusCode >= 400:
		level = slog.LevelWarn
	}

	logger.LogAttrs(req.Context(), level, "📥 store response", attrs...)
}

func headerGroup(h http.Header) slog.Value {
	attrs := make([]slog.Attr, 0, len(h))
	for k, v := range h {
		if isSensitiveHeader(k) {
			attrs = append(attrs, slog.String(k, "[REDACTED]"))
			continue
		}

		attrs = append(attrs, slog.String(k, strings.Join(v, ", ")))
	}

	return slog.GroupValue(attrs...)
}

func readBody(body io.ReadCloser, maxBodySize int) ([]byte, error) {
	defer body.Close()

	if maxBodySize == FullBody {
		return io.ReadAll(body)
	}

	buf := make([]byte, maxBodySize)
	n, err := io.ReadFull(body, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return buf[:n], nil
}

func isSensitiveHeader(name string) bool {
	_, ok := sensitiveHeaders[strings.ToLower(name)]
	return ok
}
