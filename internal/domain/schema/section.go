package schema

import (
	"encoding/json"
)

// Section type discriminants. These are the only values the renderer has
// handlers for; anything else is carried as an Unknown section.
const (
	TypeHero      = "hero"
	TypeBenefits  = "benefits"
	TypeLocations = "locations"
	TypeFAQ       = "faq"
	TypeForm      = "form"
	TypeFooter    = "footer"
)

// Form field input kinds.
const (
	FieldText   = "text"
	FieldEmail  = "email"
	FieldTel    = "tel"
	FieldSelect = "select"
)

// Section is one renderable block of a landing page. The set of
// implementations is closed: the six known variants plus Unknown, which
// preserves sections this version does not understand.
type Section interface {
	SectionType() string
}

// Document is the full ordered schema of one page. Order is presentation
// order; nothing reorders it.
type Document []Section

type CTA struct {
	Label  string `json:"label"`
	Target string `json:"target"`
}

type Hero struct {
	Eyebrow      string `json:"eyebrow,omitempty"`
	Heading      string `json:"heading"`
	Subheading   string `json:"subheading,omitempty"`
	PrimaryCTA   *CTA   `json:"primaryCta,omitempty"`
	SecondaryCTA *CTA   `json:"secondaryCta,omitempty"`
}

func (Hero) SectionType() string { return TypeHero }

type BenefitItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Benefits struct {
	Heading string        `json:"heading,omitempty"`
	Items   []BenefitItem `json:"items"`
}

func (Benefits) SectionType() string { return TypeBenefits }

// Locations carries copy only; the live location list comes from the
// owning workspace at render time.
type Locations struct {
	Heading     string `json:"heading,omitempty"`
	Description string `json:"description,omitempty"`
}

func (Locations) SectionType() string { return TypeLocations }

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type FAQ struct {
	Heading string    `json:"heading,omitempty"`
	Items   []FAQItem `json:"items"`
}

func (FAQ) SectionType() string { return TypeFAQ }

type FormField struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Placeholder string   `json:"placeholder,omitempty"`
	Type        string   `json:"type"`
	Options     []string `json:"options,omitempty"`
	Required    bool     `json:"required,omitempty"`
}

type Form struct {
	ID           string      `json:"id,omitempty"`
	Heading      string      `json:"heading,omitempty"`
	Description  string      `json:"description,omitempty"`
	SubmitLabel  string      `json:"submitLabel,omitempty"`
	SuccessTitle string      `json:"successTitle,omitempty"`
	SuccessBody  string      `json:"successBody,omitempty"`
	Fields       []FormField `json:"fields"`
}

func (Form) SectionType() string { return TypeForm }

// FieldNames returns the declared field names in order. A lead submission
// may only ever carry these keys.
func (f Form) FieldNames() []string {
	names := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		names = append(names, field.Name)
	}
	return names
}

type FooterLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Footer struct {
	Legal string       `json:"legal,omitempty"`
	Links []FooterLink `json:"links,omitempty"`
}

func (Footer) SectionType() string { return TypeFooter }

// Unknown preserves a section whose type this version does not recognize.
// Props are kept verbatim so a round-trip through the editor never loses
// data authored by a newer schema version.
type Unknown struct {
	Type  string
	Props json.RawMessage
}

func (u Unknown) SectionType() string { return u.Type }

// envelope is the wire shape of every section.
type envelope struct {
	Type  string          `json:"type"`
	Props json.RawMessage `json:"props"`
}

// MarshalJSON writes the document back in the {type, props} envelope form,
// preserving section order and unknown-section payloads byte for byte.
func (d Document) MarshalJSON() ([]byte, error) {
	out := make([]envelope, 0, len(d))
	for _, s := range d {
		var props json.RawMessage
		if u, ok := s.(Unknown); ok {
			props = u.Props
			if props == nil {
				props = json.RawMessage(`{}`)
			}
		} else {
			b, err := json.Marshal(s)
			if err != nil {
				return nil, err
			}
			props = b
		}
		out = append(out, envelope{Type: s.SectionType(), Props: props})
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses and validates the envelope form. It is the inverse
// of MarshalJSON; see ParseDocument for the validation rules.
func (d *Document) UnmarshalJSON(b []byte) error {
	doc, err := ParseDocument(b)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}
