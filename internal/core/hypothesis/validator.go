package hypothesis

import (
	"strings"

	"github.com/tracelab/trace/internal/core/model"
)

// Validate checks that every identifier a candidate card references is
// grounded in the run's inputs: claim ids must resolve to graph nodes of the
// right paper, variables must appear in the union of both papers' variable
// lists (case-insensitive), and the primary synergy id must name a known
// synergy. Pure inspection; all violations are reported, not just the first.
func Validate(card *model.HypothesisCard, g *model.Graph, paperA, paperB *model.ExtractedPaper, synergies []model.Synergy) model.ValidationResult {
	var violations []model.Violation

	for _, id := range card.SourceSupport.PaperAClaimIDs {
		if !isClaimOf(g, id, model.PaperA) {
			violations = append(violations, model.Violation{Kind: model.ViolationPaperAClaim, ID: id})
		}
	}
	for _, id := range card.SourceSupport.PaperBClaimIDs {
		if !isClaimOf(g, id, model.PaperB) {
			violations = append(violations, model.Violation{Kind: model.ViolationPaperBClaim, ID: id})
		}
	}

	valid := variableSet(paperA, paperB)
	for _, v := range card.SourceSupport.VariablesUsed {
		if !valid[strings.ToLower(v)] {
			violations = append(violations, model.Violation{Kind: model.ViolationVariable, ID: v})
		}
	}

	if card.PrimarySynergyID != "" {
		known := false
		for _, s := range synergies {
			if s.ID == card.PrimarySynergyID {
				known = true
				break
			}
		}
		if !known {
			violations = append(violations, model.Violation{Kind: model.ViolationSynergyID, ID: card.PrimarySynergyID})
		}
	}

	return model.ValidationResult{Valid: len(violations) == 0, Violations: violations}
}

func isClaimOf(g *model.Graph, id string, paper model.PaperTag) bool {
	n, ok := g.Nodes[id]
	return ok && n.Type == model.NodeClaim && n.Paper == paper
}

func variableSet(papers ...*model.ExtractedPaper) map[string]bool {
	set := map[string]bool{}
	for _, p := range papers {
		for _, v := range p.Variables {
			set[strings.ToLower(v)] = true
		}
	}
	return set
}
