package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedDocumentError means the candidate text was not a JSON array of
// sections at all. Nothing of it is kept.
type MalformedDocumentError struct {
	Err error
}

func (e *MalformedDocumentError) Error() string {
	return "malformed schema document: " + e.Err.Error()
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

// InvalidSectionError reports a section with a recognized type whose props
// do not satisfy that variant's contract. Index is the position in the
// document.
type InvalidSectionError struct {
	Index  int
	Reason string
}

func (e *InvalidSectionError) Error() string {
	return fmt.Sprintf("invalid section at index %d: %s", e.Index, e.Reason)
}

// ParseDocument validates a candidate schema document and returns the typed
// sections. Sections with an unrecognized type pass through as Unknown so
// the renderer can degrade instead of dropping authored data; a recognized
// type with missing required props is a hard failure.
func ParseDocument(raw []byte) (Document, error) {
	var envelopes []envelope
	if err := json.Unmarshal(raw, &envelopes); err != nil {
		return nil, &MalformedDocumentError{Err: err}
	}

	doc := make(Document, 0, len(envelopes))
	for i, env := range envelopes {
		section, err := parseSection(i, env)
		if err != nil {
			return nil, err
		}
		doc = append(doc, section)
	}
	return doc, nil
}

func parseSection(index int, env envelope) (Section, error) {
	if strings.TrimSpace(env.Type) == "" {
		return nil, &InvalidSectionError{Index: index, Reason: "missing type"}
	}

	switch env.Type {
	case TypeHero, TypeBenefits, TypeLocations, TypeFAQ, TypeForm, TypeFooter:
	default:
		// Forward-compatible pass-through.
		return Unknown{Type: env.Type, Props: env.Props}, nil
	}

	if len(env.Props) == 0 || string(env.Props) == "null" {
		return nil, &InvalidSectionError{Index: index, Reason: "missing props object"}
	}

	invalid := func(reason string) error {
		return &InvalidSectionError{Index: index, Reason: reason}
	}
	decode := func(dst any) error {
		if err := json.Unmarshal(env.Props, dst); err != nil {
			return invalid("props: " + err.Error())
		}
		return nil
	}

	switch env.Type {
	case TypeHero:
		var s Hero
		if err := decode(&s); err != nil {
			return nil, err
		}
		if strings.TrimSpace(s.Heading) == "" {
			return nil, invalid("hero requires a heading")
		}
		return s, nil

	case TypeBenefits:
		var s Benefits
		if err := decode(&s); err != nil {
			return nil, err
		}
		if len(s.Items) == 0 {
			return nil, invalid("benefits requires at least one item")
		}
		for j, item := range s.Items {
			if strings.TrimSpace(item.Title) == "" || strings.TrimSpace(item.Description) == "" {
				return nil, invalid(fmt.Sprintf("benefits item %d requires title and description", j))
			}
		}
		return s, nil

	case TypeLocations:
		var s Locations
		if err := decode(&s); err != nil {
			return nil, err
		}
		return s, nil

	case TypeFAQ:
		var s FAQ
		if err := decode(&s); err != nil {
			return nil, err
		}
		if len(s.Items) == 0 {
			return nil, invalid("faq requires at least one item")
		}
		for j, item := range s.Items {
			if strings.TrimSpace(item.Question) == "" || strings.TrimSpace(item.Answer) == "" {
				return nil, invalid(fmt.Sprintf("faq item %d requires question and answer", j))
			}
		}
		return s, nil

	case TypeForm:
		var s Form
		if err := decode(&s); err != nil {
			return nil, err
		}
		if len(s.Fields) == 0 {
			return nil, invalid("form requires at least one field")
		}
		seen := make(map[string]struct{}, len(s.Fields))
		for j, field := range s.Fields {
			name := strings.TrimSpace(field.Name)
			if name == "" {
				return nil, invalid(fmt.Sprintf("form field %d requires a name", j))
			}
			if strings.TrimSpace(field.Label) == "" {
				return nil, invalid(fmt.Sprintf("form field %q requires a label", name))
			}
			if _, dup := seen[name]; dup {
				return nil, invalid(fmt.Sprintf("duplicate form field name %q", name))
			}
			seen[name] = struct{}{}

			switch field.Type {
			case FieldText, FieldEmail, FieldTel:
			case FieldSelect:
				if len(field.Options) == 0 {
					return nil, invalid(fmt.Sprintf("select field %q requires options", name))
				}
			default:
				return nil, invalid(fmt.Sprintf("form field %q has unsupported type %q", name, field.Type))
			}
		}
		return s, nil

	case TypeFooter:
		var s Footer
		if err := decode(&s); err != nil {
			return nil, err
		}
		return s, nil
	}

	// Unreachable: all known types are handled above.
	return nil, invalid("unhandled type " + env.Type)
}
