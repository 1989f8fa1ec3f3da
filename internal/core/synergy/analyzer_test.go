package synergy

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracelab/trace/internal/core/graph"
	"github.com/tracelab/trace/internal/core/model"
)

func analyzerFixtures(t *testing.T) (*model.ExtractedPaper, *model.ExtractedPaper, *model.Graph) {
	t.Helper()
	paperA := &model.ExtractedPaper{
		Claims:              []string{"Spaced repetition improves retention"},
		Methods:             []string{"randomized crossover"},
		Evidence:            []string{"n=120 recall scores"},
		ExplicitLimitations: []string{"college-age sample only"},
		ImplicitLimitations: []string{"self-reported study time"},
		Variables:           []string{"recall accuracy"},
	}
	paperB := &model.ExtractedPaper{
		Claims:              []string{"Sleep consolidates declarative memory"},
		Methods:             []string{"polysomnography"},
		Evidence:            []string{"slow-wave activity correlates with recall"},
		ExplicitLimitations: []string{"no long-term follow-up"},
		ImplicitLimitations: []string{"lab-only sleep conditions"},
		Variables:           []string{"recall accuracy", "sleep duration"},
	}
	g, err := graph.Build(paperA, paperB)
	require.NoError(t, err)
	return paperA, paperB, g
}

const analysisJSON = `{
	"overlapping_variables": ["recall accuracy"],
	"potential_synergies": [
		{
			"id": "syn_1",
			"description": "Sleep consolidation could extend spaced-repetition gains",
			"paper_A_support": ["A_claim_1"],
			"paper_B_support": ["B_claim_1"]
		}
	],
	"potential_conflicts": []
}`

func TestAnalyzeParsesResponse(t *testing.T) {
	paperA, paperB, g := analyzerFixtures(t)
	mockLLM := &MockLLM{Response: "```json\n" + analysisJSON + "\n```"}
	analyzer := NewAnalyzer(mockLLM)

	result, err := analyzer.Analyze(context.Background(), paperA, paperB, g)

	require.NoError(t, err)
	assert.Equal(t, []string{"recall accuracy"}, result.OverlappingVariables)
	require.Len(t, result.PotentialSynergies, 1)
	assert.Equal(t, "syn_1", result.PotentialSynergies[0].ID)
	assert.Equal(t, []string{"A_claim_1"}, result.PotentialSynergies[0].PaperASupport)
	assert.Empty(t, result.PotentialConflicts)

	require.Len(t, mockLLM.Prompts, 1)
	assert.Contains(t, mockLLM.Prompts[0], "A_claim_1")
	assert.Contains(t, mockLLM.Prompts[0], "B_claim_1")
	assert.Equal(t, float32(0.2), mockLLM.Temperatures[0])
}

func TestAnalyzeRepairsMalformedJSON(t *testing.T) {
	paperA, paperB, g := analyzerFixtures(t)
	mockLLM := &MockLLM{ResponseQueue: []string{
		"The comparison suggests a synergy but here is broken output {",
		analysisJSON,
	}}
	analyzer := NewAnalyzer(mockLLM)

	result, err := analyzer.Analyze(context.Background(), paperA, paperB, g)

	require.NoError(t, err)
	assert.Len(t, result.PotentialSynergies, 1)
	require.Len(t, mockLLM.Prompts, 2)
	assert.Equal(t, float32(0), mockLLM.Temperatures[1])
}

func TestAnalyzeFailsAfterRepair(t *testing.T) {
	paperA, paperB, g := analyzerFixtures(t)
	mockLLM := &MockLLM{ResponseQueue: []string{"still { not json", "again { not json"}}
	analyzer := NewAnalyzer(mockLLM)

	_, err := analyzer.Analyze(context.Background(), paperA, paperB, g)

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrMalformedResponse))
	assert.Len(t, mockLLM.Prompts, 2)
}

func TestAnalyzeWrapsTransportError(t *testing.T) {
	paperA, paperB, g := analyzerFixtures(t)
	mockLLM := &MockLLM{Err: errors.New("connection refused")}
	analyzer := NewAnalyzer(mockLLM)

	_, err := analyzer.Analyze(context.Background(), paperA, paperB, g)

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrReasoningService))
}

func TestAnalyzePromptIsDeterministic(t *testing.T) {
	paperA, paperB, g := analyzerFixtures(t)
	analyzer := NewAnalyzer(&MockLLM{})

	first, err := analyzer.buildPrompt(paperA, paperB, g)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		next, err := analyzer.buildPrompt(paperA, paperB, g)
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}

	// Claim ids are listed in sorted order.
	assert.Less(t, strings.Index(first, "- A_claim_1:"), strings.Index(first, "- B_claim_1:"))
}

func TestAnalyzeNormalizesNilLists(t *testing.T) {
	paperA, paperB, g := analyzerFixtures(t)
	mockLLM := &MockLLM{Response: `{"overlapping_variables": null}`}
	analyzer := NewAnalyzer(mockLLM)

	result, err := analyzer.Analyze(context.Background(), paperA, paperB, g)

	require.NoError(t, err)
	assert.NotNil(t, result.OverlappingVariables)
	assert.NotNil(t, result.PotentialSynergies)
	assert.NotNil(t, result.PotentialConflicts)
	assert.Empty(t, result.PotentialSynergies)
}
