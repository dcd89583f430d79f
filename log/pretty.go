package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used for pretty printing. Styles are bound to a
// renderer for the output writer, so color is dropped when the writer is not
// a terminal.
type palette struct {
	key, text, number, yes, no, duration, time lipgloss.Style
	trace, debug, info, warn, fail             lipgloss.Style
}

func makePalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:      fg("8"),
		text:     fg("6"),
		number:   fg("3"),
		yes:      fg("2"),
		no:       fg("1"),
		duration: fg("5"),
		time:     fg("4"),
		trace:    fg("8"),
		debug:    fg("4"),
		info:     fg("2"),
		warn:     fg("3"),
		fail:     fg("1").Bold(true),
	}
}

func (p palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.fail
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyTextHandler implements a colorized text handler for log messages.
type prettyTextHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	style  palette
	attrs  []slog.Attr
	groups []string
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{
		opts:  *opts,
		mu:    &sync.Mutex{},
		w:     w,
		style: makePalette(w),
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		h.writeAttr(buf, "", h.replace(slog.Time(slog.TimeKey, r.Time)))
	}

	h.writeAttr(buf, "", h.replace(slog.Any(slog.LevelKey, r.Level)))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeAttr(buf, "", slog.String(slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	h.writeAttr(buf, "", slog.String(slog.MessageKey, r.Message))

	prefix := strings.Join(h.groups, ".")

	for _, a := range h.attrs {
		h.writeAttr(buf, prefix, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &c
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &c
}

// replace applies the configured ReplaceAttr to a built-in attribute.
func (h *prettyTextHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, g := range a.Value.Group() {
			h.writeAttr(buf, key, g)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(h.style.key.Render(key))
	buf.WriteByte('=')
	h.writeValue(buf, a.Key, a.Value)
}

func (h *prettyTextHandler) writeValue(buf *bytes.Buffer, key string, v slog.Value) {
	p := h.style

	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if key == slog.LevelKey {
			buf.WriteString(p.level(slog.Level(ParseLevel(s))).Render(s))

			return
		}

		buf.WriteString(p.text.Render(s))
	case slog.KindInt64:
		buf.WriteString(p.number.Render(strconv.FormatInt(v.Int64(), 10)))
	case slog.KindUint64:
		buf.WriteString(p.number.Render(strconv.FormatUint(v.Uint64(), 10)))
	case slog.KindFloat64:
		buf.WriteString(p.number.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64)))
	case slog.KindBool:
		if v.Bool() {
			buf.WriteString(p.yes.Render("true"))
		} else {
			buf.WriteString(p.no.Render("false"))
		}
	case slog.KindDuration:
		buf.WriteString(p.duration.Render(v.Duration().String()))
	case slog.KindTime:
		buf.WriteString(p.time.Render(v.Time().String()))
	case slog.KindAny:
		if level, ok := v.Any().(slog.Level); ok {
			buf.WriteString(p.level(level).Render(Level(level).String()))

			return
		}

		buf.WriteString(p.text.Render(v.String()))
	default:
		buf.WriteString(p.text.Render(v.String()))
	}
}

// prettyJSONHandler implements an indented, colorized JSON-like handler.
type prettyJSONHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	style palette
	attrs []slog.Attr
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{
		opts:  *opts,
		mu:    &sync.Mutex{},
		w:     w,
		style: makePalette(w),
	}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)
	buf.WriteString("{\n")

	first := true

	if !r.Time.IsZero() {
		h.writeField(buf, 1, slog.TimeKey,
			slog.StringValue(r.Time.Format("2006-01-02T15:04:05Z07:00")), &first)
	}

	level := Level(r.Level).String()
	h.writeField(buf, 1, slog.LevelKey, slog.StringValue(strings.ToUpper(level)), &first)

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeField(buf, 1, slog.SourceKey,
				slog.StringValue(fmt.Sprintf("%s:%d", src.File, src.Line)), &first)
		}
	}

	h.writeField(buf, 1, slog.MessageKey, slog.StringValue(r.Message), &first)

	for _, a := range h.attrs {
		h.writeField(buf, 1, a.Key, a.Value, &first)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeField(buf, 1, a.Key, a.Value, &first)

		return true
	})

	buf.WriteString("\n}\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &c
}

func (h *prettyJSONHandler) WithGroup(string) slog.Handler {
	c := *h

	return &c
}

func (h *prettyJSONHandler) writeField(
	buf *bytes.Buffer,
	depth int,
	key string,
	v slog.Value,
	first *bool,
) {
	v = v.Resolve()

	if !*first {
		buf.WriteString(",\n")
	}

	*first = false

	indent := strings.Repeat("  ", depth)

	buf.WriteString(indent)
	buf.WriteString(h.style.key.Render(strconv.Quote(key)))
	buf.WriteString(": ")

	if v.Kind() != slog.KindGroup {
		h.writeValue(buf, key, v)

		return
	}

	buf.WriteString("{\n")

	inner := true
	for _, a := range v.Group() {
		h.writeField(buf, depth+1, a.Key, a.Value, &inner)
	}

	buf.WriteString("\n" + indent + "}")
}

func (h *prettyJSONHandler) writeValue(buf *bytes.Buffer, key string, v slog.Value) {
	p := h.style

	switch v.Kind() {
	case slog.KindString:
		s := strconv.Quote(v.String())
		if key == slog.LevelKey {
			buf.WriteString(p.level(slog.Level(ParseLevel(v.String()))).Render(s))

			return
		}

		buf.WriteString(p.text.Render(s))
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		buf.WriteString(p.number.Render(v.String()))
	case slog.KindBool:
		if v.Bool() {
			buf.WriteString(p.yes.Render("true"))
		} else {
			buf.WriteString(p.no.Render("false"))
		}
	case slog.KindAny:
		if v.Any() == nil {
			buf.WriteString(p.key.Render("null"))

			return
		}

		buf.WriteString(p.text.Render(strconv.Quote(fmt.Sprint(v.Any()))))
	default:
		buf.WriteString(p.text.Render(strconv.Quote(v.String())))
	}
}
