package ai

import (
	"context"
)

// ProfileInput bundles everything the scoring oracle may consider for
// one user. All fields are optional; the oracle scores whatever is
// present.
type ProfileInput struct {
	Name          string   `json:"name"`
	GithubURL     string   `json:"github_url,omitempty"`
	LinkedinURL   string   `json:"linkedin_url,omitempty"`
	PortfolioURL  string   `json:"portfolio_url,omitempty"`
	PortfolioText string   `json:"portfolio_text,omitempty"`
	Feedback      []string `json:"feedback,omitempty"`
}

// ProfileScores is the oracle's structured verdict. Scores are 0-100;
// FraudRiskLevel is one of "low", "medium", "high".
type ProfileScores struct {
	GithubScore    int    `json:"github_score"`
	LinkedinScore  int    `json:"linkedin_score"`
	PortfolioScore int    `json:"portfolio_score"`
	FraudRiskLevel string `json:"fraud_risk_level"`
	Summary        string `json:"summary"`
}

// GenerateOptions holds configuration for oracle requests.
type GenerateOptions struct {
	Model         string   // Model identifier to use for generation
	SystemPrompts []string // System prompts prepended to the request
	Temperature   float64  // Sampling temperature (0.0-2.0)
	Thinking      string   // Extended thinking mode configuration
}

// GenerateOption is a functional option for configuring oracle requests.
type GenerateOption func(*GenerateOptions)

// WithModel returns a GenerateOption that sets the model to use.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

// WithSystemPrompts returns a GenerateOption that sets the system
// prompts prepended to the request.
func WithSystemPrompts(prompts ...string) GenerateOption {
	return func(o *GenerateOptions) {
		o.SystemPrompts = prompts
	}
}

// WithTemperature returns a GenerateOption that sets the sampling
// temperature. Lower values make outputs more deterministic.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// WithThinking returns a GenerateOption that enables extended thinking
// mode where the backing model supports it.
func WithThinking(thinking string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Thinking = thinking
	}
}

// ModelMetrics contains accumulated usage metrics from oracle calls.
type ModelMetrics struct {
	InputTokens  int   `json:"input_tokens"`
	OutputTokens int   `json:"output_tokens"`
	TotalTokens  int   `json:"total_tokens"`
	DurationMs   int64 `json:"duration_ms"`
}

// ProfileOracle is the boundary to the LLM that produces profile
// scores. The scoring rubric lives on the model side; callers treat
// the result as opaque, already-validated data.
type ProfileOracle interface {
	ScoreProfile(ctx context.Context, input ProfileInput, opts ...GenerateOption) (ProfileScores, error)

	ResetMetrics()
	GetMetrics() ModelMetrics
}
