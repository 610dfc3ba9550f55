package config

import "time"

const (
	defaultSpamModel     = "gemini-2.0-flash"
	defaultInsightsModel = "gemini-2.0-flash"
	defaultAITimeoutMS   = 10000
)

// AIConfig holds the generative model settings.
type AIConfig struct {
	APIKey string `mapstructure:"API_KEY" json:"-"` // Never serialize

	// SpamModel classifies submissions; it runs inline with the submit request.
	SpamModel string `mapstructure:"SPAM_MODEL" json:"spamModel"`

	// InsightsModel extracts pain points and positives from transcripts.
	InsightsModel string `mapstructure:"INSIGHTS_MODEL" json:"insightsModel"`

	TimeoutMS int `mapstructure:"TIMEOUT_MS" json:"timeoutMs"`
}

// DefaultAIConfig returns the defaults without an API key.
func DefaultAIConfig() AIConfig {
	return AIConfig{
		SpamModel:     defaultSpamModel,
		InsightsModel: defaultInsightsModel,
		TimeoutMS:     defaultAITimeoutMS,
	}
}

// IsEnabled returns true if the AI API is configured
func (c AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// Timeout is the deadline applied to every model call.
func (c AIConfig) Timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return time.Duration(defaultAITimeoutMS) * time.Millisecond
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
