package model

import "fmt"

// ExtractedPaper is the structured summary produced by the upstream
// extraction layer for a single paper. All fields are required; a nil
// slice after decoding means the field was missing from the input.
type ExtractedPaper struct {
	Claims              []string `json:"claims"`
	Methods             []string `json:"methods"`
	Evidence            []string `json:"evidence"`
	ExplicitLimitations []string `json:"explicit_limitations"`
	ImplicitLimitations []string `json:"implicit_limitations"`
	Variables           []string `json:"variables"`
}

// Validate checks that every required field is present. Empty lists are
// fine; missing lists are not.
func (p *ExtractedPaper) Validate(name string) error {
	var missing []string
	if p.Claims == nil {
		missing = append(missing, "claims")
	}
	if p.Methods == nil {
		missing = append(missing, "methods")
	}
	if p.Evidence == nil {
		missing = append(missing, "evidence")
	}
	if p.ExplicitLimitations == nil {
		missing = append(missing, "explicit_limitations")
	}
	if p.ImplicitLimitations == nil {
		missing = append(missing, "implicit_limitations")
	}
	if p.Variables == nil {
		missing = append(missing, "variables")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s missing required fields: %v", ErrInputValidation, name, missing)
	}
	return nil
}
