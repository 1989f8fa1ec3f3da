package model

// Synergy is a hypothesized complementary relationship between claims from
// the two papers, as proposed by the reasoner.
type Synergy struct {
	ID            string   `json:"id"`
	Description   string   `json:"description"`
	PaperASupport []string `json:"paper_A_support"`
	PaperBSupport []string `json:"paper_B_support"`
}

// Conflict is a hypothesized contradiction between claims from the two
// papers. Same shape as Synergy, different relation in the graph.
type Conflict struct {
	ID            string   `json:"id"`
	Description   string   `json:"description"`
	PaperASupport []string `json:"paper_A_support"`
	PaperBSupport []string `json:"paper_B_support"`
}

// AnalysisResult is the parsed synergy/conflict analysis for one paper pair.
type AnalysisResult struct {
	OverlappingVariables []string   `json:"overlapping_variables"`
	PotentialSynergies   []Synergy  `json:"potential_synergies"`
	PotentialConflicts   []Conflict `json:"potential_conflicts"`
}
