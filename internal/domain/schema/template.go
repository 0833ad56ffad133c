package schema

// Campaign types recognized by the starter templates. The selector is
// advisory UI: anything unrecognized falls back to the default template.
const (
	CampaignEvent  = "event"
	CampaignCustom = "custom"
)

// StarterDocument returns the hand-authored starter schema for a new page.
// Deterministic and always valid; the admin editor takes it from there.
func StarterDocument(campaignType string) Document {
	switch campaignType {
	case CampaignEvent:
		return Document{
			Hero{
				Eyebrow:    "Upcoming event",
				Heading:    "Join us for our next event",
				Subheading: "Update the copy in the editor to tailor this event to your audience.",
				PrimaryCTA: &CTA{Label: "Save your seat", Target: "#lead-form"},
			},
			Form{
				ID:      "lead-form",
				Heading: "RSVP now",
				Fields: []FormField{
					{Name: "name", Label: "Full name", Type: FieldText, Required: true},
					{Name: "email", Label: "Email", Type: FieldEmail, Required: true},
				},
				SubmitLabel: "Reserve spot",
			},
			Footer{
				Legal: "Update event footer copy.",
			},
		}
	default:
		return Document{
			Hero{
				Eyebrow:    "New campaign",
				Heading:    "Landing page headline goes here",
				Subheading: "Use the quick edit panel or JSON editor to refine your content.",
				PrimaryCTA: &CTA{Label: "Get started", Target: "#lead-form"},
			},
			Benefits{
				Heading: "Key benefits",
				Items: []BenefitItem{
					{Title: "Benefit 1", Description: "Describe the first benefit."},
					{Title: "Benefit 2", Description: "Describe the second benefit."},
				},
			},
			Form{
				ID:      "lead-form",
				Heading: "Request more info",
				Fields: []FormField{
					{Name: "name", Label: "Full name", Type: FieldText, Required: true},
					{Name: "email", Label: "Email", Type: FieldEmail, Required: true},
					{Name: "company", Label: "Company", Type: FieldText},
				},
			},
			Footer{
				Legal: "© Company Name",
			},
		}
	}
}
