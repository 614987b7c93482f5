package main

import "net/http"

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	// Applied to every route.
	shared := func(next http.Handler) http.Handler {
		return app.recoverPanic(secureHeaders(noCache(app.logAndTraceRequest(next))))
	}
	// Routes that operate on per-user state. The session mints an anonymous
	// identity on first contact, so there is no separate login step.
	session := func(next http.Handler) http.Handler {
		return shared(app.sessionManager.LoadAndSave(app.authenticate(next)))
	}

	mux.Handle("GET /api/healthy", shared(http.HandlerFunc(app.healthy)))

	mux.Handle("GET /api/profile", session(http.HandlerFunc(app.showProfile)))
	mux.Handle("POST /api/profile", session(http.HandlerFunc(app.updateProfile)))
	mux.Handle("GET /api/assessment", session(http.HandlerFunc(app.assessmentPlan)))

	mux.Handle("POST /api/protocols", session(http.HandlerFunc(app.createProtocol)))
	mux.Handle("POST /api/protocols/propagate", session(http.HandlerFunc(app.propagateAssessment)))
	mux.Handle("GET /api/protocols/{exercise}", session(http.HandlerFunc(app.currentProtocol)))

	mux.Handle("POST /api/sessions", session(http.HandlerFunc(app.recordSession)))
	mux.Handle("GET /api/progression/{exercise}", session(http.HandlerFunc(app.suggestProgression)))
	mux.Handle("POST /api/progression/{exercise}/apply", session(http.HandlerFunc(app.applyProgression)))

	mux.Handle("GET /api/exercises/{exercise}/info", session(http.HandlerFunc(app.exerciseInfo)))

	return timeout(crossOriginProtection(mux))
}
