// Package llm wraps the Gemini API for the offline coach.
package llm

// ModelTier selects a model by capability.
type ModelTier string

const (
	// TierLite is for short structured answers such as scoring one reply.
	TierLite ModelTier = "lite"
	// TierStandard is for longer generation such as a whole interview script.
	TierStandard ModelTier = "standard"
)

// DefaultSystem is the persona every request runs under.
const DefaultSystem = "You are an experienced technical interviewer and career coach. " +
	"Answer only with the JSON document the request describes."

// Config holds the model names and sampling settings.
type Config struct {
	Models      map[ModelTier]string
	Temperature float32
	System      string // system instruction; empty sends none
}

// DefaultConfig returns the Gemini defaults.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature: 0.4,
		System:      DefaultSystem,
	}
}

// GetModel returns the model for tier, falling back to standard and then lite.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return c.Models[TierLite]
}

// WithModel returns a copy of c using model for tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{Models: make(map[ModelTier]string, len(c.Models)+1), Temperature: c.Temperature, System: c.System}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return out
}
