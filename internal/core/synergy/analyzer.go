package synergy

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tracelab/trace/internal/core/common"
	"github.com/tracelab/trace/internal/core/model"
	"github.com/tracelab/trace/internal/llm"
)

const analysisTemperature = 0.2

// Analyzer asks the reasoner for overlapping variables, synergies and
// conflicts between two extracted papers.
type Analyzer struct {
	LLM llm.LLMClient
}

func NewAnalyzer(llmClient llm.LLMClient) *Analyzer {
	return &Analyzer{LLM: llmClient}
}

// Analyze runs the cross-paper comparison. A response that fails to parse
// gets one repair re-prompt before the call is treated as failed.
func (a *Analyzer) Analyze(ctx context.Context, paperA, paperB *model.ExtractedPaper, g *model.Graph) (*model.AnalysisResult, error) {
	prompt, err := a.buildPrompt(paperA, paperB, g)
	if err != nil {
		return nil, err
	}

	response, err := a.LLM.Generate(ctx, prompt, analysisTemperature)
	if err != nil {
		return nil, fmt.Errorf("%w: synergy analysis: %v", model.ErrReasoningService, err)
	}

	result, err := common.ParseJSON[model.AnalysisResult](response)
	if err != nil {
		result, err = a.repairJSON(ctx, response)
		if err != nil {
			return nil, err
		}
	}

	normalize(&result)
	return &result, nil
}

func (a *Analyzer) repairJSON(ctx context.Context, badText string) (model.AnalysisResult, error) {
	var zero model.AnalysisResult

	fixPrompt := fmt.Sprintf(`The following text should be valid JSON but is not. Fix it.

TEXT:
%s

Return only corrected JSON with the structure:
{
  "overlapping_variables": [],
  "potential_synergies": [],
  "potential_conflicts": []
}`, badText)

	response, err := a.LLM.Generate(ctx, fixPrompt, 0)
	if err != nil {
		return zero, fmt.Errorf("%w: JSON repair: %v", model.ErrReasoningService, err)
	}

	result, err := common.ParseJSON[model.AnalysisResult](response)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", model.ErrMalformedResponse, err)
	}
	return result, nil
}

// normalize replaces nil lists with empty ones so downstream stages never
// see null where the contract promises a sequence.
func normalize(r *model.AnalysisResult) {
	if r.OverlappingVariables == nil {
		r.OverlappingVariables = []string{}
	}
	if r.PotentialSynergies == nil {
		r.PotentialSynergies = []model.Synergy{}
	}
	if r.PotentialConflicts == nil {
		r.PotentialConflicts = []model.Conflict{}
	}
}

func (a *Analyzer) buildPrompt(paperA, paperB *model.ExtractedPaper, g *model.Graph) (string, error) {
	aJSON, err := json.MarshalIndent(paperA, "", "  ")
	if err != nil {
		return "", err
	}
	bJSON, err := json.MarshalIndent(paperB, "", "  ")
	if err != nil {
		return "", err
	}

	claimIDs := g.ClaimIDs("")
	sort.Strings(claimIDs)
	claimList := ""
	for _, id := range claimIDs {
		claimList += fmt.Sprintf("- %s: %s\n", id, g.Nodes[id].Text)
	}

	return fmt.Sprintf(`You are a scientific analysis agent that compares two structured paper representations.

CRITICAL RULES:
1. You receive ALREADY STRUCTURED JSON - NOT raw paper text
2. You MUST NOT hallucinate new claims or variables not present in the input JSON
3. You MUST return STRICT JSON format only - no free-form paragraphs
4. Only identify synergies/conflicts that are scientifically plausible based on the provided claims, evidence, and variables

PAPER A: %s

PAPER B: %s

VALID CLAIM IDs:
%s
Your goal: Find where a specific method in one paper addresses a specific explicit limitation in the other.

Output a STRICT JSON object:

{
  "overlapping_variables": ["variable1", "variable2"],
  "potential_synergies": [
    {
      "id": "syn_1",
      "description": "The [method from Paper A] addresses the [limitation in Paper B] by [technical mechanism].",
      "paper_A_support": ["A_claim_1"],
      "paper_B_support": ["B_claim_1"]
    }
  ],
  "potential_conflicts": [
    {
      "id": "conf_1",
      "description": "Specific description of the conflict or tension",
      "paper_A_support": ["A_claim_2"],
      "paper_B_support": ["B_claim_1"]
    }
  ]
}

RULES:
1. You CANNOT create a synergy unless you can cite claim IDs from BOTH papers, taken from the valid list above.
2. Do not invent new variable names; overlapping_variables must appear in both papers' variables fields.
3. If no strong technical fit exists, return empty lists.

Return ONLY valid JSON.`, aJSON, bJSON, claimList), nil
}
