package synergy

import (
	"fmt"
	"strings"

	"github.com/tracelab/trace/internal/core/model"
)

// SelectPrimary picks the single synergy that drives hypothesis generation.
//
// score(s) = len(paper_A_support) + len(paper_B_support) + number of
// overlapping variable names mentioned in the description (case-insensitive).
// The maximum wins; ties break toward the earliest input position, so the
// choice is stable across runs. An empty synergy list is fatal: no
// hypothesis can be grounded without at least one relationship.
func SelectPrimary(synergies []model.Synergy, overlappingVars []string) (*model.Synergy, error) {
	if len(synergies) == 0 {
		return nil, fmt.Errorf("%w: no potential synergies to select from", model.ErrInputValidation)
	}

	best := 0
	bestScore := score(synergies[0], overlappingVars)
	for i := 1; i < len(synergies); i++ {
		if s := score(synergies[i], overlappingVars); s > bestScore {
			best = i
			bestScore = s
		}
	}
	return &synergies[best], nil
}

func score(s model.Synergy, overlappingVars []string) int {
	n := len(s.PaperASupport) + len(s.PaperBSupport)
	desc := strings.ToLower(s.Description)
	for _, v := range overlappingVars {
		if strings.Contains(desc, strings.ToLower(v)) {
			n++
		}
	}
	return n
}
