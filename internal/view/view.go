// Package view renders the server-side HTML pages for dinos.
// Templates are embedded at compile time, like the SQL migrations, so the
// binary carries everything it needs.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/pkordes/dinos/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page names accepted by Renderer.Render.
const (
	Index   = "index"
	Show    = "show"
	NewPage = "new"
	Edit    = "edit"
	Error   = "error"
)

// Page is the data every template receives.
type Page struct {
	Title   string
	Notice  string
	Message string

	Dino  domain.Dino
	Dinos []domain.Dino

	// Errors are full validation messages shown above a form.
	Errors []string
}

// FormAction is where the dino form posts: the collection for a new record,
// the member URL (with a hidden _method=patch) for an existing one.
func (p Page) FormAction() string {
	if p.Dino.IsNew() {
		return "/dinos"
	}
	return "/dinos/" + p.Dino.ID.String()
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the shared layout and form.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{Index, Show, NewPage, Edit, Error} {
		t, err := template.ParseFS(templatesFS,
			"templates/layout.html",
			"templates/form.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("view.New: parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// MustNew is New for package-level wiring where a template error is a
// programming mistake.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Render executes the named page into w. The page is rendered to a buffer
// first so a template failure never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, name string, page Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view.Render: unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("view.Render: %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
