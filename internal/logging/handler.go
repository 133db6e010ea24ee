// Package logging provides custom logging handlers.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Supported output formats for New.
const (
	FormatHuman = "human"
	FormatText  = "text"
	FormatJSON  = "json"
)

// HumanReadableHandler is a custom slog handler that formats logs in a human-readable way.
//
// A line reads "message (key=value, key=value)". Attributes added with
// WithAttrs come before record attributes, and group names prefix keys
// with "group.".
type HumanReadableHandler struct {
	mu     *sync.Mutex
	writer io.Writer
	opts   slog.HandlerOptions
	attrs  []slog.Attr
	groups []string
}

// NewHumanReadableHandler creates a new human-readable log handler.
func NewHumanReadableHandler(w io.Writer, opts *slog.HandlerOptions) *HumanReadableHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &HumanReadableHandler{
		mu:     &sync.Mutex{},
		writer: w,
		opts:   *opts,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *HumanReadableHandler) Enabled(ctx context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats and writes the log record.
func (h *HumanReadableHandler) Handle(ctx context.Context, r slog.Record) error {
	// Record fields go through ReplaceAttr too, so callers can drop time or level.
	attrs := []slog.Attr{
		slog.Time(slog.TimeKey, r.Time),
		slog.Any(slog.LevelKey, r.Level),
		slog.String(slog.MessageKey, r.Message),
	}
	const builtinAttrs = 3
	attrs = append(attrs, h.attrs...)

	prefix := h.groupPrefix()
	r.Attrs(func(a slog.Attr) bool {
		if prefix != "" {
			a.Key = prefix + a.Key
		}
		attrs = append(attrs, a)
		return true
	})

	var msg string
	var hasMsg bool
	var others []slog.Attr
	for i, a := range attrs {
		if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
			var groups []string
			if i >= builtinAttrs {
				groups = h.groups
			}
			a = h.opts.ReplaceAttr(groups, a)
		}
		if a.Key == "" {
			continue
		}
		if a.Key == slog.MessageKey && !hasMsg {
			msg = a.Value.String()
			hasMsg = true
			continue
		}
		others = append(others, flatten(a)...)
	}

	var buf strings.Builder
	buf.WriteString(msg)

	if len(others) > 0 {
		if hasMsg {
			buf.WriteString(" (")
		}
		for i, a := range others {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(a.Key)
			buf.WriteString("=")
			buf.WriteString(formatValue(a.Value))
		}
		if hasMsg {
			buf.WriteString(")")
		}
	}
	buf.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, buf.String())
	return err
}

// WithAttrs returns a new handler with the given attributes.
func (h *HumanReadableHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := h.clone()
	prefix := h.groupPrefix()
	for _, a := range attrs {
		if prefix != "" {
			a.Key = prefix + a.Key
		}
		clone.attrs = append(clone.attrs, a)
	}
	return clone
}

// WithGroup returns a new handler with the given group name.
func (h *HumanReadableHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *HumanReadableHandler) clone() *HumanReadableHandler {
	return &HumanReadableHandler{
		mu:     h.mu,
		writer: h.writer,
		opts:   h.opts,
		attrs:  append([]slog.Attr(nil), h.attrs...),
		groups: append([]string(nil), h.groups...),
	}
}

func (h *HumanReadableHandler) groupPrefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

// flatten expands group attributes into dotted keys.
func flatten(a slog.Attr) []slog.Attr {
	if a.Value.Kind() != slog.KindGroup {
		return []slog.Attr{a}
	}
	var out []slog.Attr
	for _, sub := range a.Value.Group() {
		if a.Key != "" {
			sub.Key = a.Key + "." + sub.Key
		}
		out = append(out, flatten(sub)...)
	}
	return out
}

// formatValue quotes strings that contain spaces or '='.
func formatValue(v slog.Value) string {
	v = v.Resolve()
	if v.Kind() == slog.KindString {
		s := v.String()
		if strings.ContainsAny(s, " =") {
			return `"` + s + `"`
		}
		return s
	}
	return fmt.Sprintf("%v", v.Any())
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (use debug, info, warn or error)", name)
	}
	return level, nil
}

// New builds a logger writing to w in the given format.
//
// The human format drops time and level like the console output of the
// server. Text and JSON use the standard slog handlers.
func New(w io.Writer, level slog.Level, format string) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatHuman:
		opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && (a.Key == slog.TimeKey || a.Key == slog.LevelKey) {
				return slog.Attr{}
			}
			return a
		}
		h = NewHumanReadableHandler(w, opts)
	case FormatText:
		h = slog.NewTextHandler(w, opts)
	case FormatJSON:
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format %q (use human, text or json)", format)
	}
	return slog.New(h), nil
}
