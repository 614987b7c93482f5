package testhelpers

import (
	"io"
	"log/slog"

	"github.com/axels2025/ai-research-based-gym-app-sub000/internal/logging"
)

// NewLogger creates a debug-level text logger writing to the given sink,
// typically a testhelpers.Writer.
func NewLogger(logSink io.Writer) *slog.Logger {
	handler := logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	return slog.New(handler)
}
