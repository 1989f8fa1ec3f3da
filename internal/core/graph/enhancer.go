package graph

import (
	"fmt"

	"github.com/tracelab/trace/internal/core/common"
	"github.com/tracelab/trace/internal/core/model"
)

// Enhance merges the reasoner's analysis into the base graph and returns a
// new graph value. Overlapping variables become var_{slug} nodes tagged
// "both"; each synergy and conflict contributes one edge per cross-paper
// support pair, tagged with its correlation id.
//
// Every claim id a candidate references must already exist in the base
// graph; a dangling reference fails the merge rather than being accepted.
func Enhance(base *model.Graph, analysis *model.AnalysisResult) (*model.Graph, error) {
	if err := checkGrounding(base, analysis); err != nil {
		return nil, err
	}

	g := base.Clone()

	for _, name := range analysis.OverlappingVariables {
		id := "var_" + common.Slug(name)
		if g.HasNode(id) {
			continue
		}
		g.AddNode(model.GraphNode{
			ID:    id,
			Type:  model.NodeVariable,
			Paper: model.PaperBoth,
			Text:  name,
		})
	}

	for _, syn := range analysis.PotentialSynergies {
		for _, a := range syn.PaperASupport {
			for _, b := range syn.PaperBSupport {
				g.AddEdge(model.GraphEdge{
					Source:    a,
					Target:    b,
					Relation:  model.RelationPotentialSynergy,
					SynergyID: syn.ID,
				})
			}
		}
	}

	for _, conf := range analysis.PotentialConflicts {
		for _, a := range conf.PaperASupport {
			for _, b := range conf.PaperBSupport {
				g.AddEdge(model.GraphEdge{
					Source:     a,
					Target:     b,
					Relation:   model.RelationPotentialConflict,
					ConflictID: conf.ID,
				})
			}
		}
	}

	return g, nil
}

func checkGrounding(base *model.Graph, analysis *model.AnalysisResult) error {
	check := func(kind, id string, support []string) error {
		for _, claimID := range support {
			if !base.HasNode(claimID) {
				return fmt.Errorf("%w: %s %s references unknown claim %q",
					model.ErrGroundingViolation, kind, id, claimID)
			}
		}
		return nil
	}

	for _, syn := range analysis.PotentialSynergies {
		if err := check("synergy", syn.ID, syn.PaperASupport); err != nil {
			return err
		}
		if err := check("synergy", syn.ID, syn.PaperBSupport); err != nil {
			return err
		}
	}
	for _, conf := range analysis.PotentialConflicts {
		if err := check("conflict", conf.ID, conf.PaperASupport); err != nil {
			return err
		}
		if err := check("conflict", conf.ID, conf.PaperBSupport); err != nil {
			return err
		}
	}
	return nil
}
