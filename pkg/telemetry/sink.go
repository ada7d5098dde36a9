// Package telemetry provides the error sink consumed by the engine.
//
// The sink contract is fire-and-forget: Report never blocks the caller on
// I/O guarantees and never propagates a panic back into the render path.
package telemetry

import (
	"github.com/rs/zerolog"
)

// Sink receives engine error reports.
//
// Implementations must not panic; callers treat Report as infallible.
type Sink interface {
	// Report records an error occurrence. kind is the error taxonomy kind
	// (component, render, hook, event, validation, ...), message is a
	// short description, and context carries structured diagnostics.
	Report(kind, message string, context map[string]any)
}

// NopSink discards all reports.
type NopSink struct{}

// Report implements Sink.
func (NopSink) Report(string, string, map[string]any) {}

// LogSink writes reports to a zerolog logger at error level.
type LogSink struct {
	Logger zerolog.Logger
}

// NewLogSink creates a LogSink around the given logger.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{Logger: logger}
}

// Report implements Sink.
func (s *LogSink) Report(kind, message string, context map[string]any) {
	defer recoverReport()

	ev := s.Logger.Error().Str("kind", kind)
	for k, v := range context {
		ev = ev.Interface(k, v)
	}
	ev.Msg(message)
}

// MultiSink fans a report out to several sinks.
type MultiSink []Sink

// Report implements Sink.
func (m MultiSink) Report(kind, message string, context map[string]any) {
	for _, s := range m {
		if s != nil {
			s.Report(kind, message, context)
		}
	}
}

// recoverReport swallows panics from sink implementations. A broken sink
// must never take down a render pass.
func recoverReport() {
	_ = recover()
}
