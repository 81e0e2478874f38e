package common

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"
)

// ANSI color codes
const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiWhite  = "\033[37m"
	ansiGray   = "\033[90m"
)

// ColorHandler is a colorized slog handler for interactive suite runs.
// All attribute values pass through the masker before being written.
type ColorHandler struct {
	opts     *slog.HandlerOptions
	writer   io.Writer
	attrs    []slog.Attr
	groups   []string
	masker   *Masker
	useColor bool
}

// NewColorHandler creates a color handler writing to w.
func NewColorHandler(w io.Writer, opts *slog.HandlerOptions) *ColorHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &ColorHandler{
		opts:     opts,
		writer:   w,
		useColor: shouldUseColor(w),
		masker:   NewMasker(),
	}
}

// SetUseColor forces color output on or off regardless of terminal detection.
func (h *ColorHandler) SetUseColor(use bool) { h.useColor = use }

func shouldUseColor(w io.Writer) bool {
	if runtime.GOOS == "windows" {
		return false
	}
	if f, ok := w.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// Enabled reports whether the handler handles records at the given level
func (h *ColorHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats and writes the record
func (h *ColorHandler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 512)

	if !r.Time.IsZero() {
		buf = append(buf, h.colorize(ansiGray, r.Time.Format(time.RFC3339))...)
		buf = append(buf, ' ')
	}
	buf = append(buf, h.formatLevel(r.Level)...)
	buf = append(buf, ' ')
	if len(h.groups) > 0 {
		buf = append(buf, h.colorize(ansiCyan, "["+strings.Join(h.groups, ".")+"]")...)
		buf = append(buf, ' ')
	}
	buf = append(buf, h.colorize(ansiWhite, r.Message)...)

	attrs := make([]slog.Attr, 0, r.NumAttrs()+len(h.attrs))
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	for _, a := range attrs {
		buf = append(buf, ' ')
		buf = append(buf, h.colorize(ansiCyan, a.Key)...)
		buf = append(buf, '=')
		buf = append(buf, h.formatValue(a.Key, a.Value)...)
	}

	buf = append(buf, '\n')
	_, err := h.writer.Write(buf)
	return err
}

// WithAttrs returns a handler whose attributes include attrs
func (h *ColorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &nh
}

// WithGroup returns a handler with the given group appended
func (h *ColorHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	nh.groups = append(append([]string{}, h.groups...), name)
	return &nh
}

func (h *ColorHandler) colorize(color, s string) string {
	if !h.useColor {
		return s
	}
	return color + s + ansiReset
}

func (h *ColorHandler) formatLevel(level slog.Level) string {
	var color, s string
	switch level {
	case slog.LevelDebug:
		color, s = ansiGray, "DEBUG"
	case slog.LevelWarn:
		color, s = ansiYellow, "WARN "
	case slog.LevelError:
		color, s = ansiRed, "ERROR"
	default:
		color, s = ansiGreen, "INFO "
	}
	return h.colorize(color, "["+s+"]")
}

func (h *ColorHandler) formatValue(key string, v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		masked := h.masker.MaskValue(key, v.String())
		return h.colorize(ansiWhite, fmt.Sprintf("%q", masked))
	case slog.KindInt64:
		return h.colorize(ansiYellow, fmt.Sprintf("%d", v.Int64()))
	case slog.KindFloat64:
		return h.colorize(ansiYellow, fmt.Sprintf("%g", v.Float64()))
	case slog.KindBool:
		return h.colorize(ansiYellow, fmt.Sprintf("%t", v.Bool()))
	case slog.KindDuration:
		return h.colorize(ansiYellow, v.Duration().String())
	case slog.KindTime:
		return h.colorize(ansiGray, v.Time().Format(time.RFC3339))
	default:
		masked := h.masker.MaskValue(key, v.String())
		return h.colorize(ansiWhite, fmt.Sprint(masked))
	}
}
