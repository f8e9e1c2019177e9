package dashboard_web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
)

//go:embed templates/*.html templates/partials/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Pages are parsed separately over a shared base so each can define its own
// "content" block.
var pageTemplates = []string{pageLive, pageSimulation, pagePerformance}

type Renderer struct {
	base  *template.Template
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	base, err := template.New("root").ParseFS(templatesFS, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFS(templatesFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = clone
	}

	return &Renderer{base: base, pages: pages}, nil
}

func (renderer *Renderer) Render(writer io.Writer, page string, data any) error {
	tmpl, ok := renderer.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return tmpl.ExecuteTemplate(writer, "layout", data)
}

func (renderer *Renderer) RenderPartial(writer io.Writer, name string, data any) error {
	return renderer.base.ExecuteTemplate(writer, name, data)
}

func staticFiles() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
