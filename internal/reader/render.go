package reader

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"path/filepath"

	"github.com/microcosm-cc/bluemonday"

	"github.com/mrlokans/reader/internal/entities"
)

//go:embed templates/*.html
var templatesFS embed.FS

// PageOptions carries the per-request values of a reader page.
type PageOptions struct {
	EventsURL    string
	HighlightURL string
	CloseURL     string
	CSRFToken    string
}

type pageData struct {
	PageOptions
	Document *entities.Document
	FileName string
	Content  template.HTML
	Percent  int
}

// Renderer builds reader pages. Article bodies are sanitized before they
// are embedded.
type Renderer struct {
	tmpl   *template.Template
	policy *bluemonday.Policy
}

// NewRenderer parses the embedded page template.
func NewRenderer() *Renderer {
	return &Renderer{
		tmpl:   template.Must(template.ParseFS(templatesFS, "templates/*.html")),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render writes the reader page for doc.
func (r *Renderer) Render(w io.Writer, doc *entities.Document, opts PageOptions) error {
	data := pageData{
		PageOptions: opts,
		Document:    doc,
		Percent:     int(doc.ReadingProgress*100 + 0.5),
	}
	switch doc.Kind {
	case entities.DocumentKindArticle:
		data.Content = template.HTML(r.policy.Sanitize(doc.Content)) //nolint:gosec // sanitized by bluemonday
	case entities.DocumentKindPDF:
		data.FileName = filepath.Base(doc.FilePath)
	}

	if err := r.tmpl.ExecuteTemplate(w, "reader.html", data); err != nil {
		return fmt.Errorf("failed to render document %d: %w", doc.ID, err)
	}
	return nil
}
