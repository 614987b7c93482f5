package main

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/contexthelpers"
	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/logging"
)

// defaultTimeout bounds request handling end to end.
const defaultTimeout = 5 * time.Second

const sessionKeyUserID = "userID"

// statusResponseWriter captures the status code for request logging.
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		next.ServeHTTP(w, r)
	})
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		next.ServeHTTP(w, r)
	})
}

// authenticate resolves the session user, minting an anonymous identity on the
// first request, and exposes it in the request context.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := app.sessionManager.GetInt64(r.Context(), sessionKeyUserID)
		if userID == 0 {
			userID = newAnonymousUserID()
			app.sessionManager.Put(r.Context(), sessionKeyUserID, userID)
			app.logger.LogAttrs(r.Context(), slog.LevelInfo, "minted anonymous user",
				slog.Int64("userID", userID))
		}
		r = contexthelpers.SetCurrentUserID(r, userID)
		r = r.WithContext(logging.WithAttrs(r.Context(), slog.Int64("userID", userID)))
		next.ServeHTTP(w, r)
	})
}

// newAnonymousUserID returns a random positive identifier. Collisions over a
// 63-bit space are not a practical concern at this scale.
func newAnonymousUserID() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("read random bytes: %v", err))
	}
	id := int64(binary.BigEndian.Uint64(buf[:]) >> 1)
	if id == 0 {
		id = 1
	}
	return id
}

func (app *application) logAndTraceRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := rand.Text()
		r = contexthelpers.SetTraceID(r, traceID)
		r = r.WithContext(logging.WithAttrs(r.Context(), slog.String("traceID", traceID)))
		sw := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(sw, r)

		level := slog.LevelInfo
		if sw.statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		app.logger.LogAttrs(r.Context(), level, "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", sw.statusCode),
			slog.Duration("duration", time.Since(start)))
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, r, fmt.Errorf("panic: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func crossOriginProtection(next http.Handler) http.Handler {
	return http.NewCrossOriginProtection().Handler(next)
}

func timeout(next http.Handler) http.Handler {
	// Shave a bit off so the timeout response beats the server write deadline.
	return http.TimeoutHandler(next, defaultTimeout-200*time.Millisecond, "request timed out")
}
