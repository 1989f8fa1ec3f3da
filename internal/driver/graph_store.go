package driver

import (
	"context"
	"fmt"

	"github.com/tracelab/trace/internal/core/model"
)

// GraphStore mirrors a run's enhanced knowledge graph into the graph
// database so analysts can inspect claim/variable relationships. Persistence
// is best-effort infrastructure; the pipeline's own graph stays in memory.
type GraphStore struct {
	Driver GraphDriver
}

func NewGraphStore(d GraphDriver) *GraphStore {
	return &GraphStore{Driver: d}
}

// EnsureIndices creates the id/run_id lookup indices. Called once at startup.
func (s *GraphStore) EnsureIndices(ctx context.Context) error {
	return s.Driver.BuildIndices(ctx)
}

func (s *GraphStore) SaveGraph(ctx context.Context, runID string, g *model.Graph) error {
	for _, n := range g.Nodes {
		query := SaveVariableNodeQuery
		if n.Type == model.NodeClaim {
			query = SaveClaimNodeQuery
		}
		params := map[string]interface{}{
			"id":     n.ID,
			"run_id": runID,
			"paper":  string(n.Paper),
			"text":   n.Text,
		}
		if _, err := s.Driver.ExecuteQuery(ctx, query, params); err != nil {
			return fmt.Errorf("failed to save node %s: %w", n.ID, err)
		}
	}

	for _, e := range g.Edges {
		params := map[string]interface{}{
			"source":      e.Source,
			"target":      e.Target,
			"run_id":      runID,
			"relation":    string(e.Relation),
			"synergy_id":  e.SynergyID,
			"conflict_id": e.ConflictID,
		}
		if _, err := s.Driver.ExecuteQuery(ctx, SaveGraphEdgeQuery, params); err != nil {
			return fmt.Errorf("failed to save edge %s->%s: %w", e.Source, e.Target, err)
		}
	}

	return nil
}
