package views

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/storefront/content"
)

// ThemeVars derives the four theme custom properties from one color. The
// color is normalized to #rrggbb so the alpha suffixes stay valid.
func ThemeVars(color string) []CSSVar {
	c := normalizeHex(color)
	if c == "" {
		c = content.DefaultThemeColor
	}
	return []CSSVar{
		{Name: "--primary", Value: c},
		{Name: "--primary-80", Value: c + "cc"},
		{Name: "--primary-20", Value: c + "33"},
		{Name: "--primary-10", Value: c + "1a"},
	}
}

func normalizeHex(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if !strings.HasPrefix(c, "#") {
		return ""
	}
	hex := c[1:]
	for _, r := range hex {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return ""
		}
	}
	switch len(hex) {
	case 3:
		var b strings.Builder
		b.WriteByte('#')
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		return b.String()
	case 6:
		return c
	case 8:
		return c[:7]
	}
	return ""
}

// BuildURL joins a base URL with already-escaped path segments.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	return u.JoinPath(pathSegments...).String()
}

// FormatPrice renders a price with at most two decimals.
func FormatPrice(p float64) string {
	s := strconv.FormatFloat(p, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return "$" + s
}

// safeURL returns u if it is a safe link target, otherwise "#".
func safeURL(u string) string {
	if strings.TrimSpace(u) == "" {
		return "#"
	}
	return string(templ.URL(u))
}

// writer accumulates the first write error so components read linearly.
type writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (w *writer) raw(parts ...string) {
	for _, s := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

// tag writes "<name", the escaped attribute pairs, and ">".
func (w *writer) tag(name string, attrs ...string) {
	w.raw("<", name)
	for i := 0; i+1 < len(attrs); i += 2 {
		w.raw(" ", attrs[i], `="`, templ.EscapeString(attrs[i+1]), `"`)
	}
	w.raw(">")
}

// wrap writes the element name around whatever body writes, so every
// opening tag gets its matching close.
func (w *writer) wrap(name string, attrs []string, body func()) {
	w.tag(name, attrs...)
	if body != nil {
		body()
	}
	w.raw("</", name, ">")
}

// attrs is shorthand for the attribute pairs passed to wrap.
func attrs(kv ...string) []string { return kv }

// el writes a complete element with escaped text content.
func (w *writer) el(name, text string, attrs ...string) {
	w.tag(name, attrs...)
	w.text(text)
	w.raw("</", name, ">")
}

func (w *writer) render(c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(w.ctx, w.w)
}

// component adapts a writer-based body to templ.Component.
func component(fn func(w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{ctx: ctx, w: out}
		fn(w)
		return w.err
	})
}
