package mint

import (
	"context"
	"fmt"
	"time"

	"github.com/tracelab/trace/internal/core/canonical"
	"github.com/tracelab/trace/internal/core/model"
	"github.com/tracelab/trace/internal/ledger"
	"github.com/tracelab/trace/internal/registry"
)

const cardVersion = "v1"

// Minter fingerprints an accepted card and hands it to the registry and
// ledger collaborators.
type Minter struct {
	Registry registry.Store
	Ledger   ledger.Writer
}

func NewMinter(store registry.Store, writer ledger.Writer) *Minter {
	return &Minter{Registry: store, Ledger: writer}
}

// Mint validates card structure, canonicalizes the content fields, hashes
// them, enriches the card with post-acceptance metadata, persists it, and
// writes the ledger receipt. The enrichment fields never feed the hash.
func (m *Minter) Mint(ctx context.Context, card *model.HypothesisCard, authorWallet string) (*model.MintResult, *model.MintedCard, error) {
	if err := validateStructure(card); err != nil {
		return nil, nil, err
	}

	doc, err := canonical.Canonicalize(card)
	if err != nil {
		return nil, nil, err
	}
	contentHash := canonical.Hash(doc)

	minted := &model.MintedCard{
		HypothesisCard: *card,
		ContentHash:    contentHash,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		Version:        cardVersion,
		AuthorWallet:   authorWallet,
	}

	if err := m.Registry.Save(minted); err != nil {
		return nil, nil, fmt.Errorf("registry save failed: %w", err)
	}

	txID, err := m.Ledger.WriteReceipt(ctx, card.HypothesisID, contentHash, authorWallet)
	if err != nil {
		return nil, nil, fmt.Errorf("ledger receipt failed: %w", err)
	}

	minted.TxID = txID
	if err := m.Registry.Save(minted); err != nil {
		return nil, nil, fmt.Errorf("registry update failed: %w", err)
	}

	return &model.MintResult{
		HypothesisID: card.HypothesisID,
		ContentHash:  contentHash,
		TxID:         txID,
		CreatedAt:    minted.CreatedAt,
		Version:      cardVersion,
	}, minted, nil
}

func validateStructure(card *model.HypothesisCard) error {
	if card.HypothesisID == "" {
		return fmt.Errorf("%w: card missing hypothesis_id", model.ErrInputValidation)
	}
	if card.PrimarySynergyID == "" {
		return fmt.Errorf("%w: card missing primary_synergy_id", model.ErrInputValidation)
	}
	if card.Hypothesis == "" {
		return fmt.Errorf("%w: card missing hypothesis text", model.ErrInputValidation)
	}
	if card.ProposedExperiment.Description == "" {
		return fmt.Errorf("%w: card missing experiment description", model.ErrInputValidation)
	}
	return nil
}
