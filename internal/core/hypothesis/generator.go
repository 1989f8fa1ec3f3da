package hypothesis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/tracelab/trace/internal/core/common"
	"github.com/tracelab/trace/internal/core/model"
	"github.com/tracelab/trace/internal/llm"
)

// State of the generation loop. Drafting and Validating alternate until the
// card is accepted, the budget runs out, or a hard failure ends the run.
type State string

const (
	StateDrafting              State = "drafting"
	StateValidating            State = "validating"
	StateFixing                State = "fixing"
	StateAccepted              State = "accepted"
	StateLowConfidenceAccepted State = "low_confidence_accepted"
	StateFailed                State = "failed"
)

// maxAttempts bounds reasoner invocations per run: 1 initial draft plus 2
// feedback-guided retries. This is a design constant, not tunable per
// reasoner.
const maxAttempts = 3

const draftTemperature = 0.1

// Generator runs the bounded draft/validate/fix loop that turns the primary
// synergy into a grounded HypothesisCard.
type Generator struct {
	LLM llm.LLMClient
}

func NewGenerator(llmClient llm.LLMClient) *Generator {
	return &Generator{LLM: llmClient}
}

// Result is the terminal outcome of one generation run. Card is nil only
// when State is StateFailed.
type Result struct {
	Card     *model.HypothesisCard
	State    State
	Attempts int
}

// Generate drives the state machine. Accepted and LowConfidenceAccepted
// both yield a usable card; Failed yields an error and no card. Attempts
// run strictly sequentially since each retry prompt depends on the previous
// attempt's violations.
func (g *Generator) Generate(ctx context.Context, paperA, paperB *model.ExtractedPaper,
	analysis *model.AnalysisResult, graph *model.Graph, primary *model.Synergy) (*Result, error) {

	var card *model.HypothesisCard
	var lastViolations []model.Violation

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var prompt string
		var err error
		if attempt == 1 {
			prompt, err = g.draftPrompt(paperA, paperB, analysis, primary)
		} else {
			log.Printf("[hypothesis] retry %d/%d with validation feedback", attempt-1, maxAttempts-1)
			prompt, err = g.retryPrompt(paperA, paperB, analysis, graph, primary, lastViolations)
		}
		if err != nil {
			return nil, err
		}

		candidate, err := g.draft(ctx, prompt)
		if err != nil {
			if !isMalformed(err) {
				// Reasoner transport failures (including timeouts) surface to
				// the caller; an earlier invalid draft never converts them
				// into success.
				return &Result{State: StateFailed, Attempts: attempt}, err
			}
			log.Printf("[hypothesis] attempt %d unparseable: %v", attempt, err)
			if attempt < maxAttempts {
				// A malformed attempt consumes budget but leaves no card to
				// validate; keep the previous violations for the next prompt.
				continue
			}
			if card == nil {
				return &Result{State: StateFailed, Attempts: attempt},
					fmt.Errorf("%w: %v", model.ErrGenerationFailed, err)
			}
			break
		}

		candidate.HypothesisID = "trace_hyp_" + uuid.New().String()[:8]
		normalizeCard(candidate)
		card = candidate

		result := Validate(card, graph, paperA, paperB, analysis.PotentialSynergies)
		if result.Valid {
			return &Result{Card: card, State: StateAccepted, Attempts: attempt}, nil
		}
		lastViolations = result.Violations

		if attempt < maxAttempts {
			for _, v := range lastViolations {
				log.Printf("[hypothesis] attempt %d violation: %s", attempt, v)
			}
		}
	}

	// Budget exhausted: strip offending identifiers instead of re-invoking
	// the reasoner.
	fixed := fix(card, graph, paperA, paperB, primary, lastViolations)
	if fixed.Hypothesis == "" || fixed.ProposedExperiment.Description == "" {
		return &Result{State: StateFailed, Attempts: maxAttempts},
			fmt.Errorf("%w: card structurally incomplete after stripping invalid references", model.ErrGenerationFailed)
	}

	fixed.Confidence = model.ConfidenceLow
	fixed.RiskNotes = append(fixed.RiskNotes, downgradeNote(lastViolations))
	return &Result{Card: fixed, State: StateLowConfidenceAccepted, Attempts: maxAttempts}, nil
}

// draft invokes the reasoner and parses the response, allowing a single
// "fix this JSON" re-prompt on parse failure.
func (g *Generator) draft(ctx context.Context, prompt string) (*model.HypothesisCard, error) {
	response, err := g.LLM.Generate(ctx, prompt, draftTemperature)
	if err != nil {
		return nil, fmt.Errorf("%w: hypothesis drafting: %v", model.ErrReasoningService, err)
	}

	card, err := common.ParseJSON[model.HypothesisCard](response)
	if err == nil {
		return &card, nil
	}

	fixPrompt := fmt.Sprintf(`The following text should be valid JSON but is not. Fix it and return ONLY valid JSON.

TEXT:
%s

Return only corrected JSON with the Hypothesis Card structure:
{
  "primary_synergy_id": "syn_1",
  "hypothesis": "...",
  "rationale": "...",
  "source_support": {"paper_A_claim_ids": [], "paper_B_claim_ids": [], "variables_used": []},
  "proposed_experiment": {"description": "...", "measurements": [], "expected_direction": "..."},
  "confidence": "medium",
  "risk_notes": []
}`, response)

	repaired, err := g.LLM.Generate(ctx, fixPrompt, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: JSON repair: %v", model.ErrReasoningService, err)
	}
	card, err = common.ParseJSON[model.HypothesisCard](repaired)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedResponse, err)
	}
	return &card, nil
}

func isMalformed(err error) bool {
	return errors.Is(err, model.ErrMalformedResponse)
}

// normalizeCard fills structural defaults so validation operates on a
// complete shape even when the reasoner omitted optional fields.
func normalizeCard(c *model.HypothesisCard) {
	switch strings.ToLower(string(c.Confidence)) {
	case "low":
		c.Confidence = model.ConfidenceLow
	case "high":
		c.Confidence = model.ConfidenceHigh
	default:
		c.Confidence = model.ConfidenceMedium
	}
	if c.RiskNotes == nil {
		c.RiskNotes = []string{}
	}
	if c.SourceSupport.PaperAClaimIDs == nil {
		c.SourceSupport.PaperAClaimIDs = []string{}
	}
	if c.SourceSupport.PaperBClaimIDs == nil {
		c.SourceSupport.PaperBClaimIDs = []string{}
	}
	if c.SourceSupport.VariablesUsed == nil {
		c.SourceSupport.VariablesUsed = []string{}
	}
	if c.ProposedExperiment.Measurements == nil {
		c.ProposedExperiment.Measurements = []string{}
	}
}

// fix deterministically removes every offending identifier from the card,
// producing a new value. Used only once the retry budget is exhausted.
func fix(card *model.HypothesisCard, g *model.Graph, paperA, paperB *model.ExtractedPaper,
	primary *model.Synergy, violations []model.Violation) *model.HypothesisCard {

	fixed := *card

	keepClaims := func(ids []string, paper model.PaperTag) []string {
		kept := []string{}
		for _, id := range ids {
			if isClaimOf(g, id, paper) {
				kept = append(kept, id)
			}
		}
		return kept
	}
	fixed.SourceSupport.PaperAClaimIDs = keepClaims(card.SourceSupport.PaperAClaimIDs, model.PaperA)
	fixed.SourceSupport.PaperBClaimIDs = keepClaims(card.SourceSupport.PaperBClaimIDs, model.PaperB)

	valid := variableSet(paperA, paperB)
	keptVars := []string{}
	for _, v := range card.SourceSupport.VariablesUsed {
		if valid[strings.ToLower(v)] {
			keptVars = append(keptVars, v)
		}
	}
	fixed.SourceSupport.VariablesUsed = keptVars

	for _, v := range violations {
		if v.Kind == model.ViolationSynergyID {
			fixed.PrimarySynergyID = primary.ID
			break
		}
	}

	fixed.RiskNotes = append([]string{}, card.RiskNotes...)
	return &fixed
}

func downgradeNote(violations []model.Violation) string {
	parts := make([]string, len(violations))
	for i, v := range violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("Confidence downgraded: invalid references stripped after %d attempts: %s",
		maxAttempts, strings.Join(parts, ", "))
}
