package model

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

type SourceSupport struct {
	PaperAClaimIDs []string `json:"paper_A_claim_ids"`
	PaperBClaimIDs []string `json:"paper_B_claim_ids"`
	VariablesUsed  []string `json:"variables_used"`
}

type ProposedExperiment struct {
	Description       string   `json:"description"`
	Measurements      []string `json:"measurements"`
	ExpectedDirection string   `json:"expected_direction"`
}

// HypothesisCard is the generated hypothesis artifact. It is mutable only
// inside the retry loop; once accepted it is treated as immutable.
type HypothesisCard struct {
	HypothesisID       string             `json:"hypothesis_id"`
	PrimarySynergyID   string             `json:"primary_synergy_id"`
	Hypothesis         string             `json:"hypothesis"`
	Rationale          string             `json:"rationale"`
	SourceSupport      SourceSupport      `json:"source_support"`
	ProposedExperiment ProposedExperiment `json:"proposed_experiment"`
	Confidence         Confidence         `json:"confidence"`
	RiskNotes          []string           `json:"risk_notes"`
}

type ViolationKind string

const (
	ViolationPaperAClaim ViolationKind = "paper_A_claim"
	ViolationPaperBClaim ViolationKind = "paper_B_claim"
	ViolationVariable    ViolationKind = "variable"
	ViolationSynergyID   ViolationKind = "synergy_id"
)

type Violation struct {
	Kind ViolationKind
	ID   string
}

func (v Violation) String() string {
	return string(v.Kind) + ": " + v.ID
}

// ValidationResult reports every grounding violation found in a candidate
// card, not just the first.
type ValidationResult struct {
	Valid      bool
	Violations []Violation
}

// MintedCard is a HypothesisCard enriched after acceptance. The extra
// fields are excluded from canonicalization.
type MintedCard struct {
	HypothesisCard
	ContentHash  string `json:"content_hash"`
	CreatedAt    string `json:"created_at"`
	Version      string `json:"version"`
	AuthorWallet string `json:"author_wallet"`
	TxID         string `json:"tx_id,omitempty"`
}

type MintResult struct {
	HypothesisID string `json:"hypothesis_id"`
	ContentHash  string `json:"content_hash"`
	TxID         string `json:"tx_id"`
	CreatedAt    string `json:"created_at"`
	Version      string `json:"version"`
}
