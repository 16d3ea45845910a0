package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyHandler renders records with ANSI colors, either as key=value
// pairs on one line (text) or as an indented multiline object (json).
type prettyHandler struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	mu         *sync.Mutex
	w          io.Writer
	attrs      []slog.Attr
	format     Format
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	format Format,
	formatTime FormatTime,
) *prettyHandler {
	return &prettyHandler{
		opts:       *opts,
		formatTime: formatTime,
		mu:         &sync.Mutex{},
		w:          w,
		format:     format,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if h.format == FormatJSON {
		buf.WriteString("{\n")
	}

	if !r.Time.IsZero() {
		if formatted := h.formatTime(r.Time); formatted != "" {
			h.writeField(buf, slog.TimeKey, colorBlue, formatted)
		}
	}

	h.writeField(buf, slog.LevelKey, levelColor(r.Level), levelName(r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeField(buf, slog.SourceKey, colorGray,
				fmt.Sprintf("%s:%d", src.File, src.Line))
		}
	}

	h.writeField(buf, slog.MessageKey, colorCyan, r.Message)

	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, a)

		return true
	})

	if h.format == FormatJSON {
		buf.WriteString("\n}")
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &clone
}

func (h *prettyHandler) WithGroup(string) slog.Handler {
	// Groups are flattened in pretty output.
	return h
}

// writeAttr writes an attribute with a value color chosen by kind.
func (h *prettyHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	h.writeField(buf, a.Key, valueColor(a.Value), renderValue(a.Value))
}

// writeField writes a single colorized key/value pair, with the delimiter
// depending on the configured format.
func (h *prettyHandler) writeField(
	buf *bytes.Buffer,
	key, color, value string,
) {
	if h.format == FormatJSON {
		if buf.Len() > 2 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		buf.WriteString(colorGray)
		buf.WriteString(key)
		buf.WriteString(colorReset)
		buf.WriteString(": ")
	} else {
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(colorGray)
		buf.WriteString(key)
		buf.WriteString(colorReset)
		buf.WriteByte('=')
	}

	buf.WriteString(color)
	buf.WriteString(value)
	buf.WriteString(colorReset)
}

func renderValue(v slog.Value) string {
	v = v.Resolve()

	switch v.Kind() {
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)

	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)

	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)

	case slog.KindBool:
		return strconv.FormatBool(v.Bool())

	case slog.KindDuration:
		return v.Duration().String()

	default:
		return v.String()
	}
}

func valueColor(v slog.Value) string {
	v = v.Resolve()

	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return colorYellow

	case slog.KindBool:
		if v.Bool() {
			return colorGreen
		}

		return colorRed

	case slog.KindDuration:
		return colorMagenta

	case slog.KindTime:
		return colorBlue

	default:
		return colorCyan
	}
}

func levelName(level slog.Level) string {
	switch {
	case level <= slog.Level(LevelTrace):
		return "TRACE"
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	default:
		return colorBlue
	}
}
