package report

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/fjglira/go-supportcode/pkg/domain"
	"github.com/fjglira/go-supportcode/pkg/supportcode"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer renders a finalized library in one of the supported formats.
type Renderer interface {
	Render(lib *supportcode.Library, format string) (string, error)
	Formats() []string
}

// DefaultRenderer implements Renderer with the embedded Markdown template.
type DefaultRenderer struct {
	markdown *template.Template
	html     goldmark.Markdown
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*DefaultRenderer, error) {
	tmpl, err := template.New("library.md.tmpl").Funcs(CustomFuncMap()).ParseFS(templateFS, "templates/library.md.tmpl")
	if err != nil {
		return nil, domain.NewError("report", "templates/library.md.tmpl", 0, "failed to parse template", err)
	}
	return &DefaultRenderer{
		markdown: tmpl,
		html:     goldmark.New(goldmark.WithExtensions(extension.Table)),
	}, nil
}

// Formats lists the accepted format names.
func (r *DefaultRenderer) Formats() []string {
	return []string{"markdown", "html", "yaml"}
}

// Render renders lib as "markdown", "html" or "yaml".
func (r *DefaultRenderer) Render(lib *supportcode.Library, format string) (string, error) {
	switch format {
	case "markdown", "":
		return r.Markdown(lib)
	case "html":
		return r.HTML(lib)
	case "yaml":
		return YAML(lib)
	}
	return "", domain.NewError("report", "", 0, fmt.Sprintf("unsupported format %q", format), nil)
}

// Markdown renders the library summary as a Markdown document.
func (r *DefaultRenderer) Markdown(lib *supportcode.Library) (string, error) {
	var buf bytes.Buffer
	if err := r.markdown.Execute(&buf, Summarize(lib)); err != nil {
		return "", domain.NewError("report", "", 0, "failed to execute template", err)
	}
	return buf.String(), nil
}

// HTML renders the Markdown summary to an HTML fragment.
func (r *DefaultRenderer) HTML(lib *supportcode.Library) (string, error) {
	md, err := r.Markdown(lib)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := r.html.Convert([]byte(md), &buf); err != nil {
		return "", domain.NewError("report", "", 0, "failed to convert markdown to html", err)
	}
	return buf.String(), nil
}

// YAML renders the library summary as YAML.
func YAML(lib *supportcode.Library) (string, error) {
	out, err := yaml.Marshal(Summarize(lib))
	if err != nil {
		return "", domain.NewError("report", "", 0, "failed to marshal summary", err)
	}
	return string(out), nil
}
