// Package ui serves the browser front end for the todo list.
package ui

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/jrazmi/todos/bridge/scaffolding/errs"
	"github.com/jrazmi/todos/infrastructure/web"
)

//go:embed templates static
var files embed.FS

var pageTemplate = template.Must(template.ParseFS(files, "templates/page.html"))

// Page is the data the page template renders with. The same template serves
// the editable list and the read-only completed list.
type Page struct {
	Title         string
	ShowControls  bool
	CompletedOnly bool
}

var (
	// ListPage is the main page with the add form and per-row controls.
	ListPage = Page{Title: "TODO List", ShowControls: true}

	// CompletedPage shows only completed todos with no controls.
	CompletedPage = Page{Title: "Completed TODOs", CompletedOnly: true}
)

// Render executes the page template.
func Render(p Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("render %q: %w", p.Title, err)
	}
	return buf.Bytes(), nil
}

// AddHandlers registers the pages and their static assets.
func AddHandlers(h *web.WebHandler) error {
	h.GET("/{$}", page(ListPage))
	h.GET("/todos", page(ListPage))
	h.GET("/completed", page(CompletedPage))

	if err := h.FileServer(files, "static", "/static/"); err != nil {
		return fmt.Errorf("ui static files: %w", err)
	}

	return nil
}

func page(p Page) web.HandlerFunc {
	return func(ctx context.Context, r *http.Request) web.Encoder {
		body, err := Render(p)
		if err != nil {
			return errs.New(errs.InternalOnlyLog, err)
		}
		return web.NewHTMLResponse(body)
	}
}
