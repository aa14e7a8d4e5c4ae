package llm

import (
	"fmt"
	"strings"
)

// CostTier classifies a model's relative usage expense.
type CostTier int

const (
	TierLow CostTier = iota
	TierMedium
	TierHigh
)

func (t CostTier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	}
	return "unknown"
}

// ModelSpec is a resolved model: a concrete identifier plus its cost
// tier.
type ModelSpec struct {
	ID   string
	Tier CostTier
}

// Concrete model identifiers behind the aliases.
const (
	ModelHaiku        = "claude-3-5-haiku-20241022"
	ModelHaikuLatest  = "claude-3-5-haiku-latest"
	ModelSonnet       = "claude-sonnet-4-5-20250929"
	ModelSonnetLatest = "claude-sonnet-4-5"
	ModelOpus         = "claude-opus-4-1-20250805"
	ModelOpusLatest   = "claude-opus-4-1"
)

// aliases is the static table mapping short user-facing tokens to
// concrete models. Initialized once, never mutated.
var aliases = map[string]ModelSpec{
	"haiku":         {ID: ModelHaiku, Tier: TierLow},
	"haiku-latest":  {ID: ModelHaikuLatest, Tier: TierLow},
	"sonnet":        {ID: ModelSonnet, Tier: TierMedium},
	"sonnet-latest": {ID: ModelSonnetLatest, Tier: TierMedium},
	"opus":          {ID: ModelOpus, Tier: TierHigh},
	"opus-latest":   {ID: ModelOpusLatest, Tier: TierHigh},
}

// ResolveModel resolves a user-supplied model token. Alias tokens map
// through the static table; anything else passes through unchanged as
// a literal identifier so power users can name models directly. The
// returned bool indicates that the caller should obtain a cost
// confirmation before proceeding; the resolver itself never prompts.
func ResolveModel(token string) (ModelSpec, bool) {
	if spec, ok := aliases[strings.ToLower(token)]; ok {
		return spec, spec.Tier == TierHigh
	}

	spec := ModelSpec{ID: token, Tier: TierMedium}
	// Opus-class literals are the expensive ones worth gating on, same
	// substring rule the confirmation warning has always used.
	if strings.Contains(strings.ToLower(token), "opus") {
		spec.Tier = TierHigh
	}
	return spec, spec.Tier == TierHigh
}

// ResolveModelStrict behaves like ResolveModel but rejects tokens that
// are neither aliases nor recognizably shaped model identifiers.
func ResolveModelStrict(token string) (ModelSpec, bool, error) {
	if spec, ok := aliases[strings.ToLower(token)]; ok {
		return spec, spec.Tier == TierHigh, nil
	}
	if !looksLikeModelID(token) {
		return ModelSpec{}, false, fmt.Errorf("%w: %q is not an alias or a recognized model id", ErrUnknownModel, token)
	}
	spec, confirm := ResolveModel(token)
	return spec, confirm, nil
}

func looksLikeModelID(token string) bool {
	t := strings.ToLower(token)
	return strings.HasPrefix(t, "claude-") ||
		strings.HasPrefix(t, "gpt-") ||
		strings.HasPrefix(t, "o1") ||
		strings.HasPrefix(t, "o3") ||
		strings.HasPrefix(t, "o4")
}

// IsClaudeModel reports whether the identifier names an Anthropic
// model.
func IsClaudeModel(id string) bool {
	return strings.HasPrefix(strings.ToLower(id), "claude-")
}

// pricing holds USD per million tokens, input and output.
type pricing struct {
	in  float64
	out float64
}

var modelPricing = map[string]pricing{
	ModelHaiku:        {in: 0.80, out: 4.00},
	ModelHaikuLatest:  {in: 0.80, out: 4.00},
	ModelSonnet:       {in: 3.00, out: 15.00},
	ModelSonnetLatest: {in: 3.00, out: 15.00},
	ModelOpus:         {in: 15.00, out: 75.00},
	ModelOpusLatest:   {in: 15.00, out: 75.00},
}

// EstimateCost returns the USD cost of a call against the given model,
// or false when no pricing is known for it.
func EstimateCost(modelID string, usage Usage) (float64, bool) {
	p, ok := modelPricing[modelID]
	if !ok {
		return 0, false
	}
	const mtok = 1_000_000
	return float64(usage.InputTokens)/mtok*p.in + float64(usage.OutputTokens)/mtok*p.out, true
}
