package synergy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracelab/trace/internal/core/model"
)

func TestSelectPrimaryHighestScoreWins(t *testing.T) {
	synergies := []model.Synergy{
		{ID: "syn_1", PaperASupport: []string{"A_claim_1"}, PaperBSupport: []string{"B_claim_1"}},
		{ID: "syn_2", PaperASupport: []string{"A_claim_1", "A_claim_2"}, PaperBSupport: []string{"B_claim_1", "B_claim_2"}},
	}

	primary, err := SelectPrimary(synergies, nil)

	require.NoError(t, err)
	assert.Equal(t, "syn_2", primary.ID)
}

func TestSelectPrimaryCountsVariableMentions(t *testing.T) {
	synergies := []model.Synergy{
		{
			ID:            "syn_1",
			Description:   "Links Sleep Duration and recall accuracy across both designs",
			PaperASupport: []string{"A_claim_1"},
			PaperBSupport: []string{"B_claim_1"},
		},
		{
			ID:            "syn_2",
			Description:   "Unrelated mechanism",
			PaperASupport: []string{"A_claim_1", "A_claim_2"},
			PaperBSupport: []string{"B_claim_1"},
		},
	}

	// syn_1 scores 2 support + 2 mentions = 4; syn_2 scores 3.
	primary, err := SelectPrimary(synergies, []string{"sleep duration", "recall accuracy"})

	require.NoError(t, err)
	assert.Equal(t, "syn_1", primary.ID)
}

func TestSelectPrimaryTieKeepsEarliest(t *testing.T) {
	synergies := []model.Synergy{
		{ID: "syn_1", PaperASupport: []string{"A_claim_1"}, PaperBSupport: []string{"B_claim_1"}},
		{ID: "syn_2", PaperASupport: []string{"A_claim_2"}, PaperBSupport: []string{"B_claim_1"}},
	}

	for i := 0; i < 10; i++ {
		primary, err := SelectPrimary(synergies, nil)
		require.NoError(t, err)
		assert.Equal(t, "syn_1", primary.ID)
	}
}

func TestSelectPrimaryEmptyListFails(t *testing.T) {
	_, err := SelectPrimary(nil, []string{"recall accuracy"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInputValidation))
}
