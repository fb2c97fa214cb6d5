package service

import (
	"fmt"
	"sort"
)

const DefaultFlyerType = "real-estate"

var flyerPrompts = map[string]string{
	"real-estate": `You are a professional real estate marketing expert. Turn the following basic property information into compelling, professional flyer copy.

Input: "%s"

Write a well-structured real estate flyer with these sections:
1. **Main Headline** - a catchy, attention-grabbing title
2. **Property Highlights** - 3 to 5 key features as bullet points
3. **Location Benefits** - what the location offers
4. **Call to Action** - a compelling closing statement

Guidelines:
- Use professional, enthusiastic language
- Focus on benefits and lifestyle
- Keep relevant details from the input
- Keep it scannable and under 300 words
- Put each section title on its own line wrapped in ** markers

Return clean, readable text sections.`,

	"event": `You are an event marketing specialist. Turn the following event information into exciting flyer copy.

Input: "%s"

Write an engaging event flyer with:
1. **Event Title** - an exciting, memorable headline
2. **Event Details** - date, time and location if provided
3. **Why Attend** - benefits and highlights as bullet points
4. **Call to Action** - an encouraging action statement

Keep it clear, action-oriented and under 250 words. Put each section title on its own line wrapped in ** markers.`,

	"business": `You are a business marketing expert. Turn the following business information into professional promotional copy.

Input: "%s"

Write compelling business flyer copy with:
1. **Business Headline** - a professional, benefit-focused title
2. **Key Services/Products** - main offerings as bullet points
3. **Why Choose Us** - unique value propositions
4. **Contact Call to Action** - a professional closing

Keep it benefit-focused and under 300 words. Put each section title on its own line wrapped in ** markers.`,
}

// PromptFor builds the generation prompt for a flyer type. Unknown types use
// the real-estate prompt.
func PromptFor(userInput, flyerType string) string {
	tmpl, ok := flyerPrompts[flyerType]
	if !ok {
		tmpl = flyerPrompts[DefaultFlyerType]
	}
	return fmt.Sprintf(tmpl, userInput)
}

// FlyerTypes lists the flyer types with a dedicated prompt.
func FlyerTypes() []string {
	types := make([]string, 0, len(flyerPrompts))
	for t := range flyerPrompts {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
