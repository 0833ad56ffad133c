package database

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"campaign-builder/internal/domain/pages"
	"campaign-builder/internal/domain/schema"
	"campaign-builder/internal/domain/workspace"

	"gorm.io/gorm"
)

// Seed provisions the demo workspace and its published sample page.
// Idempotent: existing rows are left untouched.
func Seed() {
	if err := seedDemo(DB); err != nil {
		log.Fatal("Seed error:", err)
	}
	fmt.Println("Demo workspace seeded")
}

func seedDemo(db *gorm.DB) error {
	brandTokens, err := json.Marshal(workspace.BrandTokens{
		Colors: map[string]string{
			"primary":    "#2563eb",
			"secondary":  "#f97316",
			"background": "#ffffff",
			"surface":    "#f3f4f6",
			"text":       "#111827",
		},
		Fonts: map[string]string{
			"heading": `"Inter", sans-serif`,
			"body":    `"Inter", sans-serif`,
		},
	})
	if err != nil {
		return err
	}

	locations, err := json.Marshal([]workspace.Location{
		{Name: "Austin HQ", Address: "123 Market St, Austin, TX"},
		{Name: "Denver Office", Address: "456 Blake St, Denver, CO"},
	})
	if err != nil {
		return err
	}

	ws := workspace.Workspace{
		Name:        "Acme Co",
		Slug:        "acme-co",
		BrandTokens: brandTokens,
		Locations:   locations,
	}
	if err := db.Where("slug = ?", ws.Slug).FirstOrCreate(&ws).Error; err != nil {
		return err
	}

	doc := demoDocument()
	rawSchema, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	seo, err := json.Marshal(pages.SEOMeta{
		Title:       "Acme Co Spring Flash Sale",
		Description: "Claim a 25% discount on Acme annual plans before May 31.",
		Keywords:    []string{"landing pages", "campaign builder", "marketing automation"},
	})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	page := pages.Page{
		WorkspaceID: ws.ID,
		Title:       "Spring Flash Sale",
		Slug:        "spring-flash-sale",
		Status:      pages.StatusPublished,
		PublishedAt: &now,
		Schema:      rawSchema,
		SEO:         seo,
	}
	return db.Where("workspace_id = ? AND slug = ?", ws.ID, page.Slug).
		FirstOrCreate(&page).Error
}

func demoDocument() schema.Document {
	return schema.Document{
		schema.Hero{
			Eyebrow:      "Limited Time",
			Heading:      "Spring Flash Sale",
			Subheading:   "Save 25% on annual plans when you join before May 31.",
			PrimaryCTA:   &schema.CTA{Label: "Claim Offer", Target: "#lead-form"},
			SecondaryCTA: &schema.CTA{Label: "See Locations", Target: "#locations"},
		},
		schema.Benefits{
			Heading: "Why marketers choose Acme",
			Items: []schema.BenefitItem{
				{Title: "Fast Launch", Description: "Publish branded landing pages in minutes."},
				{Title: "Lead Routing", Description: "Send new leads to the right rep instantly."},
				{Title: "Analytics-ready", Description: "All campaigns include SEO, pixel, and UTM defaults."},
			},
		},
		schema.Locations{
			Heading:     "Where we operate",
			Description: "Pick the closest market to tailor your offer.",
		},
		schema.FAQ{
			Heading: "Common Questions",
			Items: []schema.FAQItem{
				{Question: "How quickly can we launch?", Answer: "Most teams launch within the first hour using our guided builder."},
				{Question: "Can I connect my CRM?", Answer: "Yes, use built-in webhooks to push leads to HubSpot, Salesforce, or Zapier."},
			},
		},
		schema.Form{
			ID:           "lead-form",
			Heading:      "Get the offer",
			SubmitLabel:  "Request demo",
			SuccessTitle: "Thanks for reaching out!",
			SuccessBody:  "A campaign specialist will follow up within one business day.",
			Fields: []schema.FormField{
				{Name: "name", Label: "Full name", Type: schema.FieldText, Required: true},
				{Name: "email", Label: "Work email", Type: schema.FieldEmail, Required: true},
				{Name: "company", Label: "Company", Type: schema.FieldText, Required: true},
				{Name: "timeline", Label: "Expected launch timeline", Type: schema.FieldSelect, Options: []string{"<30 days", "30-60 days", "60+ days"}},
			},
		},
		schema.Footer{
			Legal: fmt.Sprintf("© %d Acme Co. All rights reserved.", time.Now().Year()),
			Links: []schema.FooterLink{
				{Label: "Privacy", Href: "#"},
				{Label: "Terms", Href: "#"},
			},
		},
	}
}
