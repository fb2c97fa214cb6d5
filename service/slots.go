package service

import (
	"slices"
	"strings"

	"flyer/models"
)

// DefaultSlotRules is the slot table shared by every template category.
func DefaultSlotRules() []models.SlotRule {
	return []models.SlotRule{
		{Slots: []string{"headline"}, Source: models.SourceHeadline},
		{Slots: []string{"highlights"}, Source: models.SourceSection, Keywords: []string{"highlight", "feature"}},
		{Slots: []string{"location", "benefits"}, Source: models.SourceSection, Keywords: []string{"location", "benefit", "choose"}},
		{Slots: []string{"cta"}, Source: models.SourceCallToAction},
		{Slots: []string{"details", "services"}, Source: models.SourceSection, Keywords: []string{"detail", "service"}},
	}
}

// MapSlots fills every element of a template using DefaultSlotRules.
func MapSlots(content models.StructuredContent, elements []models.TemplateElement) models.SlotContentMap {
	return MapSlotsWith(content, elements, DefaultSlotRules())
}

// MapSlotsWith fills every element from content. The rules naming an
// element's id are tried in order and the first non-empty text wins; elements
// left empty keep their default content. Sections are not consumed, so one
// section can feed several slots.
func MapSlotsWith(content models.StructuredContent, elements []models.TemplateElement, rules []models.SlotRule) models.SlotContentMap {
	slots := make(models.SlotContentMap, len(elements))
	for _, el := range elements {
		text := ""
		for _, rule := range rules {
			if !slices.Contains(rule.Slots, el.ID) {
				continue
			}
			if text = resolve(content, rule); text != "" {
				break
			}
		}
		if text == "" {
			text = el.Content
		}
		slots[el.ID] = text
	}
	return slots
}

// RulesFor appends category-specific rules to the default table.
func RulesFor(extra []models.SlotRule) []models.SlotRule {
	return append(DefaultSlotRules(), extra...)
}

func resolve(content models.StructuredContent, rule models.SlotRule) string {
	switch rule.Source {
	case models.SourceHeadline:
		return content.Headline
	case models.SourceCallToAction:
		return content.CallToAction
	case models.SourceSection:
		for _, sec := range content.Sections {
			if containsAny(strings.ToLower(sec.Title), rule.Keywords) {
				return sec.Content
			}
		}
	}
	return ""
}
