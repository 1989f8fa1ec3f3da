package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tracelab/trace/internal/core/model"
)

func mintedCard(id, synergyID string, confidence model.Confidence, variables ...string) *model.MintedCard {
	return &model.MintedCard{
		HypothesisCard: model.HypothesisCard{
			HypothesisID:     id,
			PrimarySynergyID: synergyID,
			Hypothesis:       "some falsifiable statement",
			SourceSupport: model.SourceSupport{
				PaperAClaimIDs: []string{"A_claim_1"},
				PaperBClaimIDs: []string{"B_claim_1"},
				VariablesUsed:  variables,
			},
			Confidence: confidence,
		},
		ContentHash:  "0xabc",
		CreatedAt:    "2026-08-23T00:00:00Z",
		Version:      "v1",
		AuthorWallet: "0xwallet",
	}
}

func TestFileStoreSaveAndGet(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	card := mintedCard("trace_hyp_11111111", "syn_1", model.ConfidenceMedium, "recall accuracy")
	require.NoError(t, store.Save(card))

	got, err := store.Get("trace_hyp_11111111")
	require.NoError(t, err)
	assert.Equal(t, card.Hypothesis, got.Hypothesis)
	assert.Equal(t, card.ContentHash, got.ContentHash)
	assert.Equal(t, card.AuthorWallet, got.AuthorWallet)
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	card := mintedCard("trace_hyp_11111111", "syn_1", model.ConfidenceMedium)
	require.NoError(t, store.Save(card))
	card.TxID = "0xfeed"
	require.NoError(t, store.Save(card))

	got, err := store.Get("trace_hyp_11111111")
	require.NoError(t, err)
	assert.Equal(t, "0xfeed", got.TxID)
}

func TestFileStoreSaveRequiresID(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	err = store.Save(&model.MintedCard{})

	assert.Error(t, err)
}

func TestFileStoreGetNotFound(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get("trace_hyp_missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreListFilters(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(mintedCard("trace_hyp_1", "syn_1", model.ConfidenceMedium, "recall accuracy")))
	require.NoError(t, store.Save(mintedCard("trace_hyp_2", "syn_1", model.ConfidenceLow, "sleep duration")))
	require.NoError(t, store.Save(mintedCard("trace_hyp_3", "syn_2", model.ConfidenceMedium, "recall accuracy", "sleep duration")))

	all, err := store.List(Filters{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	bySynergy, err := store.List(Filters{PrimarySynergyID: "syn_1"})
	require.NoError(t, err)
	assert.Len(t, bySynergy, 2)

	byConfidence, err := store.List(Filters{Confidence: model.ConfidenceLow})
	require.NoError(t, err)
	require.Len(t, byConfidence, 1)
	assert.Equal(t, "trace_hyp_2", byConfidence[0].HypothesisID)

	byVariable, err := store.List(Filters{Variables: []string{"Sleep Duration"}})
	require.NoError(t, err)
	assert.Len(t, byVariable, 2)

	combined, err := store.List(Filters{PrimarySynergyID: "syn_2", Variables: []string{"recall accuracy"}})
	require.NoError(t, err)
	require.Len(t, combined, 1)
	assert.Equal(t, "trace_hyp_3", combined[0].HypothesisID)
}

func TestFileStoreListSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(mintedCard("trace_hyp_1", "syn_1", model.ConfidenceMedium)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644))

	cards, err := store.List(Filters{})
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}
