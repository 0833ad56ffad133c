package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"campaign-builder/internal/domain/schema"
	"campaign-builder/internal/domain/workspace"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// LocationSource supplies the live location list for a workspace. The
// locations section is the only section that reaches outside its props.
type LocationSource interface {
	LocationsForWorkspace(ctx context.Context, workspaceID string) ([]workspace.Location, error)
}

// Form submission outcomes carried into a re-render.
const (
	FormIdle    = "idle"
	FormSuccess = "success"
	FormError   = "error"
)

// FormState drives the lead form markup: idle shows the empty form,
// success swaps in the thank-you panel, error re-shows the form with the
// message and the previously entered values.
type FormState struct {
	Status  string
	Message string
	Values  map[string]string
}

// PageContext is the shared render context: identity of the page, the
// workspace brand tokens, and the state of the lead form.
type PageContext struct {
	PageID      string
	WorkspaceID string
	Slug        string
	Title       string
	Description string
	Keywords    []string
	Tokens      workspace.BrandTokens
	Form        FormState
}

type Renderer struct {
	tmpl      *template.Template
	locations LocationSource
}

// New parses the embedded section templates. locations may be nil, in
// which case location sections render their empty-state hint.
func New(locations LocationSource) (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("render: parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, locations: locations}, nil
}

type pageData struct {
	Title       string
	Description string
	Keywords    string
	StyleVars   template.CSS
	Sections    []template.HTML
}

// Page renders the full document in input order. One broken section never
// takes down the page: it degrades to the placeholder markup.
func (r *Renderer) Page(ctx context.Context, doc schema.Document, pc PageContext) ([]byte, error) {
	sections := make([]template.HTML, 0, len(doc))
	for _, s := range doc {
		sections = append(sections, r.section(ctx, s, pc))
	}

	data := pageData{
		Title:       pc.Title,
		Description: pc.Description,
		Keywords:    strings.Join(pc.Keywords, ", "),
		StyleVars:   styleVars(pc.Tokens),
		Sections:    sections,
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "page.tmpl", data); err != nil {
		return nil, fmt.Errorf("render: page template: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) section(ctx context.Context, s schema.Section, pc PageContext) template.HTML {
	var (
		name string
		data any
	)

	switch s := s.(type) {
	case schema.Hero:
		name, data = "hero.tmpl", s
	case schema.Benefits:
		name, data = "benefits.tmpl", s
	case schema.Locations:
		name, data = "locations.tmpl", locationsData{
			Heading:     s.Heading,
			Description: s.Description,
			Locations:   r.fetchLocations(ctx, pc.WorkspaceID),
		}
	case schema.FAQ:
		name, data = "faq.tmpl", s
	case schema.Form:
		name, data = "form.tmpl", buildFormData(s, pc)
	case schema.Footer:
		name, data = "footer.tmpl", s
	case schema.Unknown:
		name, data = "unsupported.tmpl", unsupportedData{Type: s.Type}
	default:
		name, data = "unsupported.tmpl", unsupportedData{Type: s.SectionType()}
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return placeholder(s.SectionType())
	}
	return template.HTML(buf.String())
}

type unsupportedData struct {
	Type string
}

func placeholder(sectionType string) template.HTML {
	var buf bytes.Buffer
	template.HTMLEscape(&buf, []byte(sectionType))
	return template.HTML(`<section class="section"><div class="container"><p>Unsupported section: ` + buf.String() + `</p></div></section>`)
}

type locationsData struct {
	Heading     string
	Description string
	Locations   []workspace.Location
}

// A failed lookup silently yields an empty list; the template shows the
// not-yet-configured hint instead.
func (r *Renderer) fetchLocations(ctx context.Context, workspaceID string) []workspace.Location {
	if r.locations == nil {
		return nil
	}
	list, err := r.locations.LocationsForWorkspace(ctx, workspaceID)
	if err != nil {
		return nil
	}
	return list
}
