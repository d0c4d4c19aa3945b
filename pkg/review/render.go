package review

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const (
	htmlTemplate = "review.html.tpl"
	textTemplate = "review.txt.tpl"
	defaultTitle = "PLEASE REVIEW THIS INFORMATION"
)

// TemplatesFS returns the bundled review templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Option customises an HTMLRenderer.
type Option func(*HTMLRenderer)

// WithTemplatesFS replaces the bundled templates. The filesystem must provide
// review.html.tpl and review.txt.tpl.
func WithTemplatesFS(fsys fs.FS) Option {
	return func(r *HTMLRenderer) {
		if fsys != nil {
			r.templates = fsys
		}
	}
}

// WithTheme applies go-theme renderer configuration: the theme name and
// variant are exposed as data attributes and CSS variables are emitted as a
// :root block.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(r *HTMLRenderer) {
		r.theme = cfg
	}
}

// WithTitle overrides the panel heading.
func WithTitle(title string) Option {
	return func(r *HTMLRenderer) {
		if strings.TrimSpace(title) != "" {
			r.title = title
		}
	}
}

// HTMLRenderer renders a Review through pongo2 templates.
type HTMLRenderer struct {
	templates fs.FS
	theme     *theme.RendererConfig
	title     string

	html *pongo2.Template
	text *pongo2.Template
}

// NewHTMLRenderer parses the review templates.
func NewHTMLRenderer(options ...Option) (*HTMLRenderer, error) {
	r := &HTMLRenderer{
		templates: TemplatesFS(),
		title:     defaultTitle,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	set := pongo2.NewSet("review", pongo2.NewFSLoader(r.templates))
	var err error
	if r.html, err = set.FromFile(htmlTemplate); err != nil {
		return nil, fmt.Errorf("review: load template %q: %w", htmlTemplate, err)
	}
	if r.text, err = set.FromFile(textTemplate); err != nil {
		return nil, fmt.Errorf("review: load template %q: %w", textTemplate, err)
	}
	return r, nil
}

// Render writes the HTML review panel to w.
func (r *HTMLRenderer) Render(w io.Writer, rv Review) error {
	if r == nil || r.html == nil {
		return errors.New("review: renderer is nil")
	}
	if err := r.html.ExecuteWriter(r.context(rv), w); err != nil {
		return fmt.Errorf("review: execute template %q: %w", htmlTemplate, err)
	}
	return nil
}

// RenderText writes the plain-text review panel to w.
func (r *HTMLRenderer) RenderText(w io.Writer, rv Review) error {
	if r == nil || r.text == nil {
		return errors.New("review: renderer is nil")
	}
	if err := r.text.ExecuteWriter(r.context(rv), w); err != nil {
		return fmt.Errorf("review: execute template %q: %w", textTemplate, err)
	}
	return nil
}

var (
	defaultRendererOnce sync.Once
	defaultRenderer     *HTMLRenderer
	defaultRendererErr  error
)

// RenderText writes rv as plain text using the bundled templates.
func RenderText(w io.Writer, rv Review) error {
	defaultRendererOnce.Do(func() {
		defaultRenderer, defaultRendererErr = NewHTMLRenderer()
	})
	if defaultRendererErr != nil {
		return defaultRendererErr
	}
	return defaultRenderer.RenderText(w, rv)
}

func (r *HTMLRenderer) context(rv Review) pongo2.Context {
	return pongo2.Context{
		"title":     r.title,
		"identity":  rowsContext(rv.Identity),
		"requested": rowsContext(rv.Requested),
		"valid":     rv.Valid(),
		"theme":     themeContext(r.theme),
	}
}

func rowsContext(rows []Row) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]any{
			"label":  row.Label,
			"lines":  append([]string(nil), row.Lines...),
			"text":   row.Text(),
			"status": row.Status,
			"passed": row.Passed(),
		})
	}
	return out
}

func themeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":     cfg.Theme,
		"variant":  cfg.Variant,
		"css_vars": cssVarsStyle(cfg.CSSVars),
	}
}

var cssVarName = regexp.MustCompile(`^--[A-Za-z0-9_-]+$`)

// cssVarsStyle renders vars as a :root block. Keys that are not plain custom
// property names are dropped; the block is emitted unescaped.
func cssVarsStyle(vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if cssVarName.MatchString(key) {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {")
	for _, key := range keys {
		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cssValue(vars[key]))
		b.WriteString(";")
	}
	b.WriteString(" }")
	return b.String()
}

// cssValue drops characters that could close the style block.
func cssValue(value string) string {
	return strings.NewReplacer("<", "", ">", "", "{", "", "}", "", ";", "").Replace(strings.TrimSpace(value))
}
