package render

import (
	"fmt"
	"html/template"
	"strings"

	"campaign-builder/internal/domain/workspace"
)

// Fallback palette used when a workspace has no token configured for a
// slot. Mirrors the platform defaults.
var fallbackTokens = workspace.BrandTokens{
	Colors: map[string]string{
		"primary":    "#2563eb",
		"secondary":  "#f97316",
		"background": "#ffffff",
		"surface":    "#f5f5f5",
		"text":       "#0f172a",
	},
	Fonts: map[string]string{
		"heading": "'Inter', -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif",
		"body":    "'Inter', -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif",
	},
}

var colorSlots = []string{"primary", "secondary", "background", "surface", "text"}
var fontSlots = []string{"heading", "body"}

// styleVars turns brand tokens into the CSS custom properties the section
// templates reference.
func styleVars(t workspace.BrandTokens) template.CSS {
	var b strings.Builder
	for _, slot := range colorSlots {
		value := t.Colors[slot]
		if value == "" {
			value = fallbackTokens.Colors[slot]
		}
		fmt.Fprintf(&b, "--color-%s: %s; ", slot, value)
	}
	for _, slot := range fontSlots {
		value := t.Fonts[slot]
		if value == "" {
			value = fallbackTokens.Fonts[slot]
		}
		fmt.Fprintf(&b, "--font-%s: %s; ", slot, value)
	}
	return template.CSS(strings.TrimSpace(b.String()))
}
