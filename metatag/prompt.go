package metatag

import "strings"

// categoryGuidance describes what belongs in each category. The model is
// shown these as the values of the JSON schema it must fill in.
var categoryGuidance = map[string]string{
	"character_primary": "List of main characters that are essential to story, appears in most pages. " +
		"It should be the named characters as well as the Generic and Broad Character Classes " +
		"like 'hero', 'boy', 'dog', 'cat', 'mother', 'father', 'teacher', 'student' etc.",
	"character_secondary": "List of secondary characters that can be changed without affecting core story, " +
		"appears only in few pages. It should be the named characters as well as the Generic and " +
		"Broad Character Classes like 'hero', 'boy', 'dog', 'cat', 'mother', 'father', 'teacher', 'student' etc.",
	"setting_primary":   "Primary geographical location, type of space, time period, rural/urban classification - Central to the story",
	"setting_secondary": "Secondary or background settings - Less important to main plot",
	"theme_primary": "Main scientific themes, concepts, social themes, ideas, curriculum subjects, genre - " +
		"Core to the story along with the curriculum terms, or genre related terms which aren't " +
		"directly stated but implied in the story.",
	"theme_secondary": "Secondary or supporting themes - Present but not central, along with the curriculum " +
		"terms, or genre related terms which aren't directly stated but implied in the story.",
	"events_primary":     "Major events and main problems handled by characters - Critical to story progression",
	"events_secondary":   "Minor events and side problems - Could be removed without major impact",
	"emotions_primary":   "Main emotions expressed or felt by characters, overall story emotion - Dominant throughout",
	"emotions_secondary": "Secondary emotions and feelings - Occasional or background emotions",
	"keywords": "List of important keywords from the whole text that can be used for search and indexing - " +
		"Should be filtered to remove common words and focus on unique terms",
}

// schemaBlock renders the JSON schema shown to the model, with keys in
// canonical order.
func schemaBlock() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for i, key := range Keys {
		sb.WriteString("    \"")
		sb.WriteString(key)
		sb.WriteString("\": \"")
		sb.WriteString(categoryGuidance[key])
		sb.WriteString("\"")
		if i < len(Keys)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// BuildPrompt assembles the meta-tag generation prompt for a story.
// With chainOfThought the model is asked to analyze the story before
// emitting the JSON; the analysis precedes the fenced JSON block and is
// discarded by extraction.
func BuildPrompt(storyText string, chainOfThought bool) string {
	var sb strings.Builder
	sb.WriteString("Generate comprehensive meta-tags for a story in 11 categories.\n\n")
	if chainOfThought {
		sb.WriteString("First, write a short analysis of key plot points, characters, themes, ")
		sb.WriteString("and concepts to understand the story's educational and thematic elements. ")
		sb.WriteString("Then generate the meta-tags.\n\n")
	}
	sb.WriteString("Generate meta-tags in exactly this JSON format:\n")
	sb.WriteString(schemaBlock())
	sb.WriteString("\n\nStory text:\n")
	sb.WriteString(storyText)
	return sb.String()
}
