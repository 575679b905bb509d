package service

import (
	"strings"

	"github.com/Jamolkhon5/sewing-assistant/internal/ai/sewing/models"
	"github.com/Jamolkhon5/sewing-assistant/internal/ai/sewing/prompts"
)

// DefaultCatalog lists the canned categories in match priority order.
func DefaultCatalog() []models.Category {
	return []models.Category{
		{Name: "machine", Keywords: []string{"machine", "recommend", "beginner"}, Answer: prompts.MachineAnswer},
		{Name: "technique", Keywords: []string{"technique", "basic", "how to"}, Answer: prompts.TechniqueAnswer},
		{Name: "problem", Keywords: []string{"problem", "issue", "help", "wrong"}, Answer: prompts.ProblemAnswer},
		{Name: "fabric", Keywords: []string{"fabric", "material", "cloth"}, Answer: prompts.FabricAnswer},
	}
}

// FallbackResponder answers from the canned catalog when the upstream
// service is not available. It is immutable and safe for concurrent use.
type FallbackResponder struct {
	catalog     []models.Category
	helpMessage string
}

func NewFallbackResponder() *FallbackResponder {
	return &FallbackResponder{
		catalog:     DefaultCatalog(),
		helpMessage: prompts.HelpMessage,
	}
}

// Classify returns the answer of the first category whose keywords occur in
// message, or the help message when none do.
func (fr *FallbackResponder) Classify(message string) string {
	message = strings.ToLower(message)

	for _, category := range fr.catalog {
		if fr.containsAny(message, category.Keywords) {
			return category.Answer
		}
	}
	return fr.helpMessage
}

func (fr *FallbackResponder) containsAny(message string, words []string) bool {
	for _, word := range words {
		if strings.Contains(message, word) {
			return true
		}
	}
	return false
}
