package main

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/errors"
	"github.com/yuin/goldmark"
)

// exerciseInfo serves coaching notes for an exercise as an HTML fragment. The
// notes are authored as markdown, AI-generated when configured.
func (app *application) exerciseInfo(w http.ResponseWriter, r *http.Request) {
	exercise := r.PathValue("exercise")

	notes, err := app.programService.ExerciseNotes(r.Context(), exercise)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "exercise notes"))
		return
	}

	var buf bytes.Buffer
	if err = goldmark.Convert([]byte(notes), &buf); err != nil {
		app.serverError(w, r, errors.Wrap(err, "render notes"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(buf.Bytes()); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "write response", errors.SlogError(err))
	}
}
