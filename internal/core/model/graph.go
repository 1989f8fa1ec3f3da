package model

type NodeType string

const (
	NodeClaim    NodeType = "claim"
	NodeVariable NodeType = "variable"
)

type PaperTag string

const (
	PaperA    PaperTag = "A"
	PaperB    PaperTag = "B"
	PaperBoth PaperTag = "both"
)

type RelationType string

const (
	RelationUsesVariable      RelationType = "uses_variable"
	RelationPotentialSynergy  RelationType = "potential_synergy"
	RelationPotentialConflict RelationType = "potential_conflict"
)

type GraphNode struct {
	ID    string   `json:"id"`
	Type  NodeType `json:"type"`
	Paper PaperTag `json:"paper"`
	Text  string   `json:"text"`
}

type GraphEdge struct {
	Source     string       `json:"source"`
	Target     string       `json:"target"`
	Relation   RelationType `json:"relation"`
	SynergyID  string       `json:"synergy_id,omitempty"`
	ConflictID string       `json:"conflict_id,omitempty"`
}

// Graph holds the cross-paper knowledge graph for one analysis run. Node
// ids are unique; edge order carries no meaning.
type Graph struct {
	Nodes map[string]GraphNode `json:"nodes"`
	Edges []GraphEdge          `json:"edges"`
}

func NewGraph() *Graph {
	return &Graph{Nodes: map[string]GraphNode{}}
}

func (g *Graph) AddNode(n GraphNode) {
	g.Nodes[n.ID] = n
}

func (g *Graph) AddEdge(e GraphEdge) {
	g.Edges = append(g.Edges, e)
}

func (g *Graph) HasNode(id string) bool {
	_, ok := g.Nodes[id]
	return ok
}

// ClaimIDs returns the ids of all claim nodes, optionally restricted to one
// paper. Pass an empty tag for claims from any paper.
func (g *Graph) ClaimIDs(paper PaperTag) []string {
	var ids []string
	for id, n := range g.Nodes {
		if n.Type != NodeClaim {
			continue
		}
		if paper != "" && n.Paper != paper {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// Clone returns a deep copy so enhancement can produce a new value instead
// of mutating the builder's output.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		Nodes: make(map[string]GraphNode, len(g.Nodes)),
		Edges: make([]GraphEdge, len(g.Edges)),
	}
	for id, n := range g.Nodes {
		c.Nodes[id] = n
	}
	copy(c.Edges, g.Edges)
	return c
}
