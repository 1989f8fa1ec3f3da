package registry

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tracelab/trace/internal/core/model"
)

// FileStore keeps one JSON file per hypothesis id under a directory.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create registry dir '%s': %w", dir, err)
	}
	return &FileStore{Dir: dir}, nil
}

func (s *FileStore) Save(card *model.MintedCard) error {
	if card.HypothesisID == "" {
		return fmt.Errorf("card must have hypothesis_id")
	}

	data, err := json.MarshalIndent(card, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal card: %w", err)
	}

	path := filepath.Join(s.Dir, card.HypothesisID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (s *FileStore) Get(hypothesisID string) (*model.MintedCard, error) {
	path := filepath.Join(s.Dir, hypothesisID+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var card model.MintedCard
	if err := json.Unmarshal(data, &card); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &card, nil
}

func (s *FileStore) List(filters Filters) ([]*model.MintedCard, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var cards []*model.MintedCard
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.Dir, e.Name()))
		if err != nil {
			log.Printf("Warning: failed to read %s: %v", e.Name(), err)
			continue
		}
		var card model.MintedCard
		if err := json.Unmarshal(data, &card); err != nil {
			log.Printf("Warning: failed to decode %s: %v", e.Name(), err)
			continue
		}
		if matches(&card, filters) {
			cards = append(cards, &card)
		}
	}
	return cards, nil
}

func matches(card *model.MintedCard, f Filters) bool {
	if f.PrimarySynergyID != "" && card.PrimarySynergyID != f.PrimarySynergyID {
		return false
	}
	if f.Confidence != "" && card.Confidence != f.Confidence {
		return false
	}
	if len(f.Variables) > 0 {
		found := false
		for _, want := range f.Variables {
			for _, have := range card.SourceSupport.VariablesUsed {
				if strings.EqualFold(want, have) {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
