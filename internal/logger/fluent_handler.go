package logger

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// poster is the part of *fluent.Fluent the handler needs.
type poster interface {
	Post(tag string, message interface{}) error
}

// FluentHandler forwards records to fluentd/fluent-bit. The tag is the level
// name, so the daemon can route on it.
type FluentHandler struct {
	client   poster
	minLevel slog.Level
	attrs    map[string]any
	group    string
}

func NewFluentHandler(client poster, minLevel slog.Level) *FluentHandler {
	return &FluentHandler{client: client, minLevel: minLevel, attrs: map[string]any{}}
}

func (h *FluentHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.minLevel
}

func (h *FluentHandler) Handle(_ context.Context, r slog.Record) error {
	data := make(map[string]any, len(h.attrs)+r.NumAttrs()+3)
	for k, v := range h.attrs {
		data[k] = v
	}
	r.Attrs(func(a slog.Attr) bool {
		h.put(data, a)
		return true
	})
	data["level"] = strings.ToLower(r.Level.String())
	data["message"] = r.Message
	data["timestamp"] = r.Time.UTC().Format(time.RFC3339Nano)

	// A lost log line must not fail the caller.
	_ = h.client.Post(strings.ToLower(r.Level.String()), data)
	return nil
}

func (h *FluentHandler) put(data map[string]any, a slog.Attr) {
	key := a.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		for _, ga := range v.Group() {
			(&FluentHandler{group: key}).put(data, ga)
		}
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			data[key] = err.Error()
			return
		}
		data[key] = v.Any()
	default:
		data[key] = v.Any()
	}
}

func (h *FluentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, a := range attrs {
		h.put(next.attrs, a)
	}
	return next
}

func (h *FluentHandler) WithGroup(name string) slog.Handler {
	next := h.clone()
	if next.group != "" {
		name = next.group + "." + name
	}
	next.group = name
	return next
}

func (h *FluentHandler) clone() *FluentHandler {
	attrs := make(map[string]any, len(h.attrs))
	for k, v := range h.attrs {
		attrs[k] = v
	}
	return &FluentHandler{client: h.client, minLevel: h.minLevel, attrs: attrs, group: h.group}
}
