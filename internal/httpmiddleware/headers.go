package httpmiddleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id of a call.
const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// WithRequestID stores a correlation id in ctx. Outbound calls made with
// this ctx reuse it instead of generating a new one.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the correlation id stored in ctx, if any.
func RequestIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// Headers sets static headers on every request. The request is cloned so
// the caller's header map is never mutated.
func Headers(static map[string]string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			req = req.Clone(req.Context())
			for k, v := range static {
				req.Header.Set(k, v)
			}

			return next.RoundTrip(req)
		})
	}
}

// RequestID sets X-Request-Id from the context, or a fresh uuid.
func RequestID(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.Header.Get(RequestIDHeader) != "" {
			return next.RoundTrip(req)
		}

		id, ok := RequestIDFrom(req.Context())
		if !ok {
			id = uuid.NewString()
		}

		req = req.Clone(req.Context())
		req.Header.Set(RequestIDHeader, id)

		return next.RoundTrip(req)
	})
}
