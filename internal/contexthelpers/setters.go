package contexthelpers

import (
	"context"
	"net/http"
)

func SetCurrentUserID(r *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(r.Context(), CurrentUserIDContextKey, userID)
	return r.WithContext(ctx)
}

func SetTraceID(r *http.Request, traceID string) *http.Request {
	ctx := context.WithValue(r.Context(), TraceIDContextKey, traceID)
	return r.WithContext(ctx)
}
