package views

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	policy = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// SanitizeHTML strips anything from gateway HTML that is not safe to embed.
func SanitizeHTML(s string) string {
	return policy.Sanitize(s)
}

// RenderMarkdown converts markdown to sanitized HTML.
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return string(policy.SanitizeBytes(buf.Bytes())), nil
}

// Body renders a page or post body in the given format ("markdown" or HTML).
func Body(content, format string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if format != "markdown" {
			_, err := io.WriteString(w, SanitizeHTML(content))
			return err
		}
		out, err := RenderMarkdown(content)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	})
}
