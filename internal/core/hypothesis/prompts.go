package hypothesis

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tracelab/trace/internal/core/model"
)

func (g *Generator) draftPrompt(paperA, paperB *model.ExtractedPaper,
	analysis *model.AnalysisResult, primary *model.Synergy) (string, error) {

	analysisJSON, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	primaryJSON, err := json.MarshalIndent(primary, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`You are a scientific hypothesis generation agent that creates testable hypotheses from paper synergies.

CRITICAL RULES:
1. Your task is NOT to summarize the papers - it is to propose ONE new scientific hypothesis
2. The hypothesis MUST be falsifiable and combine elements from BOTH papers into something NEW
3. You MUST only use information from the provided JSON - do not introduce outside knowledge
4. You MUST reference specific claim IDs (e.g. "A_claim_1", "B_claim_2") in your rationale and source_support
5. You MUST NOT invent datasets, variables, or numerical values not implied by the inputs
6. Return ONLY a single valid JSON object - no commentary

INPUT SYNERGY ANALYSIS: %s

PRIMARY SYNERGY TO FOCUS ON:
%s

Output a STRICT JSON object:

{
  "primary_synergy_id": "%s",
  "hypothesis": "If [specific method from Paper A] is applied to [system from Paper B], then [specific variable] will [increase/decrease/change] due to [technical mechanism].",
  "rationale": "Technical justification referencing specific claim IDs and variable names from the input.",
  "source_support": {
    "paper_A_claim_ids": ["A_claim_1"],
    "paper_B_claim_ids": ["B_claim_1"],
    "variables_used": ["variable_from_paper_a", "variable_from_paper_b"]
  },
  "proposed_experiment": {
    "description": "Concrete experimental setup that could test this hypothesis.",
    "measurements": ["specific_metric_1", "specific_metric_2"],
    "expected_direction": "increase/decrease"
  },
  "confidence": "high/medium/low",
  "risk_notes": ["Key assumption that might fail"]
}

RULES:
1. Use ONLY variables present in the papers' variables fields.
2. The hypothesis must be testable with specific measurements.

Return ONLY valid JSON.`, analysisJSON, primaryJSON, primary.ID), nil
}

func (g *Generator) retryPrompt(paperA, paperB *model.ExtractedPaper,
	analysis *model.AnalysisResult, graph *model.Graph, primary *model.Synergy,
	violations []model.Violation) (string, error) {

	base, err := g.draftPrompt(paperA, paperB, analysis, primary)
	if err != nil {
		return "", err
	}

	claimIDs := graph.ClaimIDs("")
	sort.Strings(claimIDs)

	vars := map[string]bool{}
	for _, v := range paperA.Variables {
		vars[v] = true
	}
	for _, v := range paperB.Variables {
		vars[v] = true
	}
	varList := make([]string, 0, len(vars))
	for v := range vars {
		varList = append(varList, v)
	}
	sort.Strings(varList)

	synergyIDs := make([]string, len(analysis.PotentialSynergies))
	for i, s := range analysis.PotentialSynergies {
		synergyIDs[i] = s.ID
	}
	sort.Strings(synergyIDs)

	feedback := make([]string, len(violations))
	for i, v := range violations {
		feedback[i] = "  - " + v.String()
	}

	return fmt.Sprintf(`RETRY REQUEST: the previous hypothesis referenced identifiers that do not exist.

VALIDATION ERRORS FROM PREVIOUS ATTEMPT:
%s

CRITICAL: You MUST use ONLY the following valid identifiers.

VALID CLAIM IDs: %s
VALID VARIABLES: %s
VALID SYNERGY IDs: %s

DO NOT reference any claim ID or variable outside these lists.

%s`, strings.Join(feedback, "\n"),
		strings.Join(claimIDs, ", "),
		strings.Join(varList, ", "),
		strings.Join(synergyIDs, ", "),
		base), nil
}
