package registry

import (
	"errors"

	"github.com/tracelab/trace/internal/core/model"
)

// ErrNotFound is returned by Get when no card exists under the id.
var ErrNotFound = errors.New("hypothesis not found")

// Filters narrows List results. Zero values mean "no constraint";
// Variables matches cards whose variables_used intersects the given set.
type Filters struct {
	Variables        []string
	PrimarySynergyID string
	Confidence       model.Confidence
}

// Store persists minted hypothesis cards. Key-value semantics only; the
// pipeline core never depends on how cards are stored.
type Store interface {
	Save(card *model.MintedCard) error
	Get(hypothesisID string) (*model.MintedCard, error)
	List(filters Filters) ([]*model.MintedCard, error)
}
