package htmlpage

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
)

const indexFileName = "index.html"

// PageMeta describes one rendered field page for the report index.
type PageMeta struct {
	ID          string // filename stem, e.g. "status"
	Title       string // display title, e.g. "Field: status"
	Description string // short description for the index card
}

// MultiPageRenderer writes per-field pages plus the index document that
// binds them. Title and Author land in every page's metadata.
type MultiPageRenderer struct {
	OutputDir string
	Title     string
	Author    string
	Theme     Theme
}

// RenderPage renders one field page to <OutputDir>/<id>.html. Pages are
// standalone HTML with a navigation link back to the index.
func (r *MultiPageRenderer) RenderPage(id, title, description string, sections []Section) error {
	page := NewPage(title, description)
	page.Theme = r.Theme
	page.ProjectName = r.Title
	page.Author = r.Author

	navHTML, err := renderTemplate("nav.html", nil)
	if err != nil {
		return fmt.Errorf("render nav: %w", err)
	}

	page.Sections = append([]Section{{Chart: rawHTML(navHTML)}}, sections...)

	return r.writePage(filepath.Join(r.OutputDir, id+".html"), page)
}

// RenderIndex renders the combined report document with navigation cards to
// <OutputDir>/index.html.
func (r *MultiPageRenderer) RenderIndex(description string, pages []PageMeta) error {
	page := NewPage(r.Title, description)
	page.Theme = r.Theme
	page.ProjectName = r.Title
	page.Author = r.Author

	indexContent, err := renderTemplate("index.html", indexData{Pages: pages})
	if err != nil {
		return fmt.Errorf("render index content: %w", err)
	}

	page.Sections = []Section{{Chart: rawHTML(indexContent)}}

	return r.writePage(filepath.Join(r.OutputDir, indexFileName), page)
}

func (r *MultiPageRenderer) writePage(path string, page *Page) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	renderErr := HTMLRenderer{}.Render(f, page)
	if renderErr != nil {
		return fmt.Errorf("render %s: %w", path, renderErr)
	}

	return nil
}

// rawHTML is a Renderable that writes pre-rendered HTML.
type rawHTML template.HTML

// Render writes the raw HTML content.
func (r rawHTML) Render(w io.Writer) error {
	_, err := w.Write([]byte(r))
	if err != nil {
		return fmt.Errorf("write raw html: %w", err)
	}

	return nil
}
