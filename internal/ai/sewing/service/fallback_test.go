package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/Jamolkhon5/sewing-assistant/internal/ai/sewing/prompts"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestClassify(t *testing.T) {
	fr := NewFallbackResponder()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"machine keyword", "Which machine should I buy?", prompts.MachineAnswer},
		{"recommend keyword upper-case", "RECOMMEND something", prompts.MachineAnswer},
		{"beginner keyword", "I am a Beginner", prompts.MachineAnswer},
		{"technique keyword", "Show me a technique", prompts.TechniqueAnswer},
		{"basic keyword", "the basics please", prompts.TechniqueAnswer},
		{"how to phrase", "How to sew a hem", prompts.TechniqueAnswer},
		{"problem keyword", "I have a problem", prompts.ProblemAnswer},
		{"issue keyword", "tension issue", prompts.ProblemAnswer},
		{"help keyword", "help!", prompts.ProblemAnswer},
		{"wrong keyword", "something went wrong", prompts.ProblemAnswer},
		{"fabric keyword", "what fabric?", prompts.FabricAnswer},
		{"material keyword", "Which MATERIAL", prompts.FabricAnswer},
		{"cloth keyword", "cheap cloth", prompts.FabricAnswer},
		{"no match", "hello there", prompts.HelpMessage},
		{"empty message", "", prompts.HelpMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fr.Classify(tt.message))
		})
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	fr := NewFallbackResponder()

	assert.Equal(t, prompts.MachineAnswer, fr.Classify("which fabric works with my machine"))
	assert.Equal(t, prompts.TechniqueAnswer, fr.Classify("basic problem with fabric"))
	assert.Equal(t, prompts.ProblemAnswer, fr.Classify("what is wrong with this material"))
}

func TestClassify_SubstringMatch(t *testing.T) {
	fr := NewFallbackResponder()

	// "helpful" contains "help"; "clothing" contains "cloth".
	assert.Equal(t, prompts.ProblemAnswer, fr.Classify("be helpful"))
	assert.Equal(t, prompts.FabricAnswer, fr.Classify("clothing"))
}

func TestClassify_Deterministic(t *testing.T) {
	fr := NewFallbackResponder()

	for _, msg := range []string{"", "machine", "cotton or linen?", "how to thread"} {
		assert.Equal(t, fr.Classify(msg), fr.Classify(msg))
		assert.Equal(t, fr.Classify(msg), NewFallbackResponder().Classify(msg))
	}
}

func TestDefaultCatalog_Order(t *testing.T) {
	var names []string
	for _, c := range DefaultCatalog() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"machine", "technique", "problem", "fabric"}, names)
}
