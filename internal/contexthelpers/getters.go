package contexthelpers

import (
	"context"
)

func CurrentUserID(ctx context.Context) int64 {
	userID, ok := ctx.Value(CurrentUserIDContextKey).(int64)
	if !ok {
		return 0
	}

	return userID
}

func TraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDContextKey).(string)
	if !ok {
		return ""
	}

	return traceID
}
