package service

import (
	"fmt"
	"strings"

	"flyer/models"
)

const ExportFilename = "flyer-content.txt"

// ExportText renders slot text as plain text, one block per element in
// template order:
//
//	HEADLINE:
//	Your Dream Home Awaits
//
// Elements missing from slots fall back to their default content.
func ExportText(elements []models.TemplateElement, slots models.SlotContentMap) string {
	var sb strings.Builder
	for _, el := range elements {
		text, ok := slots[el.ID]
		if !ok {
			text = el.Content
		}
		fmt.Fprintf(&sb, "%s:\n%s\n\n", strings.ToUpper(el.ID), text)
	}
	return sb.String()
}
