// Package views renders the HTML pages.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/taskdesk/internal/api/middleware"
	"github.com/taskdesk/taskdesk/internal/core/domain"
	"github.com/taskdesk/taskdesk/internal/core/ports"
)

//go:embed templates
var templatesFS embed.FS

const (
	baseLayout  = "templates/layouts/base.html"
	partialsDir = "templates/partials"
	pagesDir    = "templates/pages"
)

// Drainer hands over the notifications queued since the last render.
type Drainer interface {
	Drain() []ports.Notification
}

// View is what handlers pass to c.Render.
type View struct {
	Title string
	Data  any
}

// ErrorPage is the data of the "error" template.
type ErrorPage struct {
	Code    int
	Heading string
	Message string
	// Home is where the page offers to go next.
	Home string
}

// TaskForm feeds the shared task form fields. A nil Task renders an empty
// create form.
type TaskForm struct {
	Task       *domain.Task
	Employees  []domain.Employee
	Priorities []domain.Priority
}

// Page is the value every template executes against.
type Page struct {
	Title   string
	Session *domain.Session
	Flashes []ports.Notification
	Path    string
	Now     time.Time
	Data    any
}

// Renderer implements echo.Renderer over the embedded templates. Each
// page is parsed together with the base layout and the partials.
type Renderer struct {
	templates map[string]*template.Template
	flashes   Drainer
	now       func() time.Time
}

func New(flashes Drainer) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		flashes:   flashes,
		now:       time.Now,
	}
	if err := r.parseTemplates(templatesFS); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) parseTemplates(fsys fs.FS) error {
	partials, err := templateFiles(fsys, partialsDir)
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}
	pages, err := templateFiles(fsys, pagesDir)
	if err != nil {
		return fmt.Errorf("getting pages: %w", err)
	}

	for _, page := range pages {
		name := strings.TrimSuffix(path.Base(page), ".html")

		files := append([]string{baseLayout}, partials...)
		files = append(files, page)

		tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(fsys, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return nil
}

// templateFiles returns the .html files directly inside dir.
func templateFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// Has reports whether a page template named name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	page := Page{
		Path: c.Request().URL.Path,
		Now:  r.now(),
	}
	if v, ok := data.(View); ok {
		page.Title, page.Data = v.Title, v.Data
	} else {
		page.Data = data
	}
	if sess, ok := middleware.SessionFrom(c); ok {
		page.Session = &sess
	}
	if r.flashes != nil {
		page.Flashes = r.flashes.Drain()
	}

	return tmpl.ExecuteTemplate(w, "base", page)
}
