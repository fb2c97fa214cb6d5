package service

import (
	"testing"

	"flyer/models"

	"github.com/stretchr/testify/assert"
)

func elements(idsAndDefaults ...string) []models.TemplateElement {
	var out []models.TemplateElement
	for i := 0; i+1 < len(idsAndDefaults); i += 2 {
		out = append(out, models.TemplateElement{Type: "text", ID: idsAndDefaults[i], Content: idsAndDefaults[i+1]})
	}
	return out
}

func TestMapSlots(t *testing.T) {
	content := models.StructuredContent{
		Headline: "Your Dream Home Awaits",
		Sections: []models.Section{
			{Title: "Property HIGHLIGHTS", Content: "- Pool"},
			{Title: "Location Benefits", Content: "Near the beach"},
			{Title: "Key Services", Content: "- Staging"},
			{Title: "More Features", Content: "- Garage"},
		},
		CallToAction: "Call now!",
	}
	els := elements(
		"headline", "Default headline",
		"highlights", "Default highlights",
		"location", "Default location",
		"benefits", "Default benefits",
		"cta", "Default cta",
		"details", "Default details",
		"services", "Default services",
		"footer", "Default footer",
	)

	got := MapSlots(content, els)

	assert.Equal(t, models.SlotContentMap{
		"headline":   "Your Dream Home Awaits",
		"highlights": "- Pool",
		"location":   "Near the beach",
		"benefits":   "Near the beach",
		"cta":        "Call now!",
		"details":    "- Staging",
		"services":   "- Staging",
		"footer":     "Default footer",
	}, got)
}

func TestMapSlots_FallsBackToDefaults(t *testing.T) {
	els := elements(
		"headline", "Luxury Living",
		"highlights", "• Premium Feature 1",
		"location", "Exclusive Neighborhood",
		"cta", "Schedule Private Showing",
		"unknown", "",
	)

	got := MapSlots(models.StructuredContent{
		Sections: []models.Section{{Title: "Something else", Content: "ignored"}},
	}, els)

	assert.Equal(t, models.SlotContentMap{
		"headline":   "Luxury Living",
		"highlights": "• Premium Feature 1",
		"location":   "Exclusive Neighborhood",
		"cta":        "Schedule Private Showing",
		"unknown":    "",
	}, got)
}

func TestMapSlots_FirstMatchWins(t *testing.T) {
	content := models.StructuredContent{
		Sections: []models.Section{
			{Title: "Why Choose Us", Content: "first"},
			{Title: "Benefits", Content: "second"},
		},
	}
	got := MapSlots(content, elements("benefits", "default"))
	assert.Equal(t, "first", got["benefits"])
}

func TestMapSlots_IsPure(t *testing.T) {
	content := models.StructuredContent{
		Headline: "Open house this Sunday",
		Sections: []models.Section{{Title: "Highlights", Content: "- Pool"}},
	}
	els := elements("headline", "h", "highlights", "x", "cta", "Call Today!")

	first := MapSlots(content, els)
	second := MapSlots(content, els)

	assert.Equal(t, first, second)
	assert.Equal(t, "Open house this Sunday", content.Headline)
	assert.Len(t, content.Sections, 1)
}

func TestMapSlotsWith_CategoryRulesOnlyFillEmptySlots(t *testing.T) {
	content := models.StructuredContent{
		Sections: []models.Section{
			{Title: "Event Title", Content: "Summer Jazz Night"},
			{Title: "Why Attend", Content: "- Live music"},
		},
	}
	els := elements("headline", "Amazing Event", "highlights", "• Why Attend 1")
	extra := []models.SlotRule{
		{Slots: []string{"headline"}, Source: models.SourceSection, Keywords: []string{"title"}},
		{Slots: []string{"highlights"}, Source: models.SourceSection, Keywords: []string{"attend"}},
	}

	assert.Equal(t, models.SlotContentMap{
		"headline":   "Amazing Event",
		"highlights": "• Why Attend 1",
	}, MapSlots(content, els))

	assert.Equal(t, models.SlotContentMap{
		"headline":   "Summer Jazz Night",
		"highlights": "- Live music",
	}, MapSlotsWith(content, els, RulesFor(extra)))

	content.Headline = "Jazz under the stars"
	got := MapSlotsWith(content, els, RulesFor(extra))
	assert.Equal(t, "Jazz under the stars", got["headline"])
}

func TestRulesFor_DoesNotMutateDefaults(t *testing.T) {
	RulesFor([]models.SlotRule{{Slots: []string{"x"}, Source: models.SourceHeadline}})
	assert.Len(t, DefaultSlotRules(), 5)
}
