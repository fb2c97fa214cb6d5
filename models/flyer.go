package models

import "time"

// Section is one titled block of generated copy.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// StructuredContent is the parsed form of a generator response.
type StructuredContent struct {
	Headline     string    `json:"headline"`
	Sections     []Section `json:"sections"`
	CallToAction string    `json:"callToAction"`
}

type Style struct {
	FontSize   int     `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
	FontWeight string  `json:"fontWeight,omitempty" yaml:"fontWeight,omitempty"`
	Color      string  `json:"color,omitempty" yaml:"color,omitempty"`
	TextAlign  string  `json:"textAlign,omitempty" yaml:"textAlign,omitempty"`
	LineHeight float64 `json:"lineHeight,omitempty" yaml:"lineHeight,omitempty"`
}

type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// TemplateElement is a named text slot of a template. Content holds the
// placeholder shown when no generated copy maps onto the slot.
type TemplateElement struct {
	Type     string   `json:"type" yaml:"type"`
	ID       string   `json:"id" yaml:"id"`
	Content  string   `json:"content" yaml:"content"`
	Style    Style    `json:"style" yaml:"style"`
	Position Position `json:"position" yaml:"position"`
}

type Layout struct {
	Width           int               `json:"width" yaml:"width"`
	Height          int               `json:"height" yaml:"height"`
	BackgroundColor string            `json:"backgroundColor" yaml:"backgroundColor"`
	Elements        []TemplateElement `json:"elements" yaml:"elements"`
}

type Template struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	Layout      Layout `json:"layout" yaml:"layout"`
}

// Element returns the element with the given slot id.
func (t Template) Element(id string) (TemplateElement, bool) {
	for _, el := range t.Layout.Elements {
		if el.ID == id {
			return el, true
		}
	}
	return TemplateElement{}, false
}

// SlotContentMap maps a slot id to its display text.
type SlotContentMap map[string]string

// GeneratedContent is the result of a bare generation request, without a template.
type GeneratedContent struct {
	OriginalInput   string            `json:"originalInput"`
	EnhancedContent StructuredContent `json:"enhancedContent"`
	FlyerType       string            `json:"flyerType"`
}

// Flyer is a template paired with generated content.
type Flyer struct {
	ID            string            `json:"id"`
	Template      Template          `json:"template"`
	Content       StructuredContent `json:"content"`
	OriginalInput string            `json:"originalInput"`
	FlyerType     string            `json:"flyerType"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// FlyerSession holds the user's slot-level overrides for a flyer. Overrides
// never modify Flyer.Content.
type FlyerSession struct {
	Flyer     Flyer             `json:"flyer"`
	Edits     map[string]string `json:"edits"`
	FontSizes map[string]int    `json:"fontSizes"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// FlyerView is what the editor renders: effective text and font size per slot.
type FlyerView struct {
	Flyer     Flyer          `json:"flyer"`
	Slots     SlotContentMap `json:"slots"`
	FontSizes map[string]int `json:"fontSizes"`
	Edited    []string       `json:"edited"`
	UpdatedAt time.Time      `json:"updatedAt"`

	// ExtendedSlots is set when category slot rules took part in the mapping.
	ExtendedSlots bool `json:"extendedSlots"`
}

// SlotSource names where a slot rule takes its text from.
type SlotSource string

const (
	SourceHeadline     SlotSource = "headline"
	SourceCallToAction SlotSource = "callToAction"
	SourceSection      SlotSource = "section"
)

// SlotRule binds slot ids to a content source. For SourceSection the first
// section whose lower-cased title contains any keyword is used.
type SlotRule struct {
	Slots    []string   `json:"slots" yaml:"slots"`
	Source   SlotSource `json:"source" yaml:"source"`
	Keywords []string   `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}
