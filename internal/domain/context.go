// Package domain defines the core types of the creative engine: product
// context, creativity configuration and parameter mapping, concepts produced
// by ideation, drafted content artifacts, and the creativity assessment with
// its statistical aggregates.
//
// Types in this package are plain data with explicit validation; they carry
// no provider or transport concerns. Values handed to a pipeline run are
// treated as immutable by the run that receives them.
package domain

// ProductContext describes the subject of the content being generated.
// It is supplied externally (manual input or the context-extraction
// collaborator) and never mutated by the engine.
type ProductContext struct {
	// Name is the product or company name.
	Name string `json:"name" validate:"required"`

	// Description is an optional free-form product description.
	Description string `json:"description,omitempty"`

	// TargetAudience describes who the content speaks to.
	TargetAudience string `json:"target_audience,omitempty"`

	// PainPoint is the customer problem the product addresses.
	PainPoint string `json:"pain_point,omitempty"`

	// KeyBenefit is the primary value proposition.
	KeyBenefit string `json:"key_benefit,omitempty"`

	// Offer is the call-to-action or promotion, if any.
	Offer string `json:"offer,omitempty"`

	// Platform is the distribution platform (defaults to "tiktok" in
	// prompts when empty).
	Platform string `json:"platform,omitempty"`

	// Extra carries additional named fields that prompt templates may
	// reference without schema changes here.
	Extra map[string]string `json:"extra,omitempty"`
}

// Validate checks that the context carries the minimum required fields.
func (p *ProductContext) Validate() error { return validate.Struct(p) }

// PlatformOrDefault returns the configured platform, falling back to tiktok.
func (p *ProductContext) PlatformOrDefault() string {
	if p.Platform == "" {
		return "tiktok"
	}
	return p.Platform
}

// Clone returns a deep copy so pipeline runs cannot alias caller state.
func (p *ProductContext) Clone() ProductContext {
	cp := *p
	cp.Extra = cloneStringMap(p.Extra)
	return cp
}
