// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a custom slog handler that mirrors WARN and
// ERROR records into the events collection for auditing.
package logging

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/ocrm-go/internal/id"
	"github.com/olegiv/ocrm-go/internal/model"
	"github.com/olegiv/ocrm-go/internal/store"
)

// AuditHandler is a slog.Handler that wraps another handler and also
// appends WARN+ records to the events collection. Writes go straight
// through the collection, not a binding: an audit append must never
// trigger change notifications of its own.
type AuditHandler struct {
	inner  slog.Handler
	events *store.Collection[model.Event]
	level  slog.Level
}

// NewAuditHandler creates an AuditHandler that wraps the given handler.
// Records at WARN level and above are mirrored to the events collection.
func NewAuditHandler(inner slog.Handler, st *store.Store) *AuditHandler {
	return &AuditHandler{
		inner:  inner,
		events: st.Events,
		level:  slog.LevelWarn,
	}
}

// Enabled implements slog.Handler.
func (h *AuditHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *AuditHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.appendEvent(r)
	}

	return nil
}

// WithAttrs implements slog.Handler.
func (h *AuditHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AuditHandler{
		inner:  h.inner.WithAttrs(attrs),
		events: h.events,
		level:  h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *AuditHandler) WithGroup(name string) slog.Handler {
	return &AuditHandler{
		inner:  h.inner.WithGroup(name),
		events: h.events,
		level:  h.level,
	}
}

// appendEvent writes the record to the events collection. A background
// context is used so the event lands even if the request context is done.
// The read must stay quiet: this handler is installed as the default
// logger, so a WARN emitted from inside the read would recurse back here.
func (h *AuditHandler) appendEvent(r slog.Record) {
	ctx := context.Background()

	list, err := h.events.ReadQuiet(ctx)
	if err != nil {
		// Storage is unusable; the inner handler already saw the record.
		return
	}
	list = append(list, model.Event{
		ID:        id.New(),
		Level:     recordLevel(r.Level),
		Category:  recordCategory(r),
		Message:   r.Message,
		Metadata:  recordMetadata(r),
		CreatedAt: timeOrNow(r.Time).UTC(),
	})

	if err := h.events.Write(ctx, list); err != nil {
		// Inner handler already saw the record; nothing more to do.
		_ = err
	}
}

// recordLevel converts a slog.Level to an event level.
func recordLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// recordCategory extracts a category attribute, or infers one from the
// message.
func recordCategory(r slog.Record) string {
	var category string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false
		}
		return true
	})
	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "login") || strings.Contains(msg, "logout") || strings.Contains(msg, "auth"):
		return model.EventCategoryAuth
	case strings.Contains(msg, "collection") || strings.Contains(msg, "record"):
		return model.EventCategoryRecord
	default:
		return model.EventCategorySystem
	}
}

// recordMetadata collects the remaining attributes into a JSON string.
func recordMetadata(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return "{}"
	}

	var sb strings.Builder
	sb.WriteString("{")
	first := true

	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			return true
		}
		if !first {
			sb.WriteString(",")
		}
		first = false
		sb.WriteString(`"`)
		sb.WriteString(escapeJSON(a.Key))
		sb.WriteString(`":"`)
		sb.WriteString(escapeJSON(a.Value.String()))
		sb.WriteString(`"`)
		return true
	})

	sb.WriteString("}")
	return sb.String()
}

// escapeJSON escapes special characters in a string for JSON.
func escapeJSON(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// timeOrNow guards against zero-time records from hand-built slog.Records.
func timeOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
