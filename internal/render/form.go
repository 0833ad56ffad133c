package render

import "campaign-builder/internal/domain/schema"

// Defaults for the success panel when the section does not configure one.
const (
	DefaultSuccessTitle = "Thanks for reaching out!"
	DefaultSuccessBody  = "We will be in touch shortly."
	DefaultSubmitLabel  = "Submit"
)

type formField struct {
	Name        string
	Label       string
	Type        string
	Placeholder string
	Options     []string
	Required    bool
	Value       string
}

type formData struct {
	ID           string
	Heading      string
	Description  string
	SubmitLabel  string
	SuccessTitle string
	SuccessBody  string
	Action       string
	Fields       []formField
	State        FormState
}

func buildFormData(s schema.Form, pc PageContext) formData {
	data := formData{
		ID:           s.ID,
		Heading:      s.Heading,
		Description:  s.Description,
		SubmitLabel:  s.SubmitLabel,
		SuccessTitle: s.SuccessTitle,
		SuccessBody:  s.SuccessBody,
		Action:       "/p/" + pc.Slug + "/submit",
		State:        pc.Form,
	}
	if data.SubmitLabel == "" {
		data.SubmitLabel = DefaultSubmitLabel
	}
	if data.SuccessTitle == "" {
		data.SuccessTitle = DefaultSuccessTitle
	}
	if data.SuccessBody == "" {
		data.SuccessBody = DefaultSuccessBody
	}
	if data.State.Status == "" {
		data.State.Status = FormIdle
	}

	for _, f := range s.Fields {
		data.Fields = append(data.Fields, formField{
			Name:        f.Name,
			Label:       f.Label,
			Type:        f.Type,
			Placeholder: f.Placeholder,
			Options:     f.Options,
			Required:    f.Required,
			Value:       pc.Form.Values[f.Name],
		})
	}
	return data
}
