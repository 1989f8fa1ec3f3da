package graph

import (
	"fmt"

	"github.com/tracelab/trace/internal/core/model"
)

// Build constructs the base knowledge graph from two extracted papers.
//
// Claim nodes get ids {X}_claim_{i} and variable nodes {X}_var_{j}, both
// 1-indexed in input order. The extraction layer supplies no per-claim
// variable association, so the builder links conservatively: every claim of
// a paper gets a uses_variable edge to every variable of the same paper.
// Pure function, no I/O.
func Build(paperA, paperB *model.ExtractedPaper) (*model.Graph, error) {
	if err := paperA.Validate("Paper A"); err != nil {
		return nil, err
	}
	if err := paperB.Validate("Paper B"); err != nil {
		return nil, err
	}

	g := model.NewGraph()
	addPaper(g, paperA, model.PaperA)
	addPaper(g, paperB, model.PaperB)
	return g, nil
}

func addPaper(g *model.Graph, p *model.ExtractedPaper, tag model.PaperTag) {
	for i, claim := range p.Claims {
		g.AddNode(model.GraphNode{
			ID:    fmt.Sprintf("%s_claim_%d", tag, i+1),
			Type:  model.NodeClaim,
			Paper: tag,
			Text:  claim,
		})
	}
	for j, variable := range p.Variables {
		g.AddNode(model.GraphNode{
			ID:    fmt.Sprintf("%s_var_%d", tag, j+1),
			Type:  model.NodeVariable,
			Paper: tag,
			Text:  variable,
		})
	}

	// Conservative paper-wide linking.
	for i := range p.Claims {
		for j := range p.Variables {
			g.AddEdge(model.GraphEdge{
				Source:   fmt.Sprintf("%s_claim_%d", tag, i+1),
				Target:   fmt.Sprintf("%s_var_%d", tag, j+1),
				Relation: model.RelationUsesVariable,
			})
		}
	}
}
