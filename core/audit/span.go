// Copyright 2023 - 2025, the docs-ru contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"fmt"
	"runtime/trace"
	"strconv"
	"time"

	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Kind names the unit of work a Span measures.
type Kind string

const (
	// KindRequest is an incoming HTTP request.
	KindRequest Kind = "request"
	// KindRender is the rendering of one page for one preference snapshot.
	KindRender Kind = "render"
)

// Span is a unit of work in flight.
type Span struct {
	// only these fields are set automatically
	task     *trace.Task
	start    time.Time
	duration time.Duration
	metric   *servertiming.Metric

	Kind       Kind
	RequestID  string
	Method     string
	URL        string
	StatusCode int
	Size       int
	Error      error
}

// ServerTimingName is the metric name reported in the Server-Timing header.
func (span Span) ServerTimingName() string {
	return string(span.Kind)
}

// Begin starts the span and attaches a Server-Timing metric if ctx carries a
// timing header.
func (span *Span) Begin(ctx context.Context) context.Context {
	span.start = time.Now()

	ctx, span.task = trace.NewTask(ctx, "docsru."+string(span.Kind))
	if timing := servertiming.FromContext(ctx); timing != nil {
		span.metric = timing.NewMetric(span.ServerTimingName())
		span.metric.Desc = span.URL
		span.metric.Extra = map[string]string{
			"start": strconv.FormatFloat(float64(span.start.UnixNano())/float64(time.Millisecond), 'f', -1, 64),
		}
	}

	return ctx
}

// End records the duration. Calling it more than once has no effect.
func (span *Span) End() {
	if span.task == nil {
		return
	}

	span.duration = time.Since(span.start)
	span.task.End()

	if span.metric != nil {
		span.metric.Duration = span.duration
	}

	span.task = nil
}

// Duration is the time between Begin and End.
func (span Span) Duration() time.Duration {
	return span.duration
}

// Log writes the span. Server errors are logged at warn level, the rest at debug.
func (span Span) Log() {
	var event *zerolog.Event

	if span.Error != nil && span.StatusCode >= 500 {
		event = log.Warn()
	} else {
		event = log.Debug()
	}

	event.Str("sys", "http").
		Str("kind", string(span.Kind)).
		Str("method", span.Method).
		Str("url", span.URL).
		Int("status_code", span.StatusCode).
		Str("len", humanizeSize(span.Size)).
		Dur("dur", span.duration).
		Str("request_id", span.RequestID)

	if span.Error != nil {
		event.Err(span.Error)
	}

	event.Send()
}

// Phase starts a named Server-Timing metric on ctx and returns its stop
// function. It is a no-op when ctx carries no timing header.
func Phase(ctx context.Context, name string) func() {
	timing := servertiming.FromContext(ctx)
	if timing == nil {
		return func() {}
	}

	metric := timing.NewMetric(name).Start()

	return func() { metric.Stop() }
}

const (
	bytesInKB = 1024
	bytesInMB = bytesInKB * bytesInKB
)

func humanizeSize(x int) string {
	switch {
	case x < bytesInKB:
		return strconv.Itoa(x)
	case x < bytesInMB:
		return fmt.Sprintf("%.2fK", float64(x)/bytesInKB)
	default:
		return fmt.Sprintf("%.2fM", float64(x)/bytesInMB)
	}
}
