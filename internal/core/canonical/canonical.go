package canonical

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tracelab/trace/internal/core/model"
)

// contentFields is the allow-list of content-bearing HypothesisCard fields.
// Enrichment fields added after acceptance (content_hash, created_at,
// version, author_wallet, tx_id) are deliberately absent so they never
// influence the fingerprint.
var contentFields = []string{
	"hypothesis_id",
	"primary_synergy_id",
	"hypothesis",
	"rationale",
	"source_support",
	"proposed_experiment",
	"confidence",
	"risk_notes",
}

// Canonicalize projects a card onto its content fields and serializes them
// deterministically: keys in lexicographic order at every nesting depth,
// sequences in original order, compact UTF-8 with no HTML escaping.
// Identical content yields identical bytes regardless of field order, and
// canonicalizing canonical bytes is the identity.
func Canonicalize(card *model.HypothesisCard) ([]byte, error) {
	raw, err := json.Marshal(card)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCanonicalization, err)
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCanonicalization, err)
	}

	projected := map[string]json.RawMessage{}
	for _, f := range contentFields {
		if v, ok := all[f]; ok {
			projected[f] = v
		}
	}

	keep, err := json.Marshal(projected)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCanonicalization, err)
	}
	return CanonicalizeRaw(keep)
}

// CanonicalizeRaw re-serializes arbitrary JSON into canonical form. Key
// order of the input is irrelevant; map keys come out sorted at every depth
// because encoding/json sorts them, and array order is preserved.
func CanonicalizeRaw(data []byte) ([]byte, error) {
	var value any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCanonicalization, err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCanonicalization, err)
	}
	// Encoder appends a newline; canonical bytes carry none.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
