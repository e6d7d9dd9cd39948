// Package openai implements the profile scoring oracle on the OpenAI
// chat completions API (or any compatible endpoint).
package openai

import (
	"sync"

	"github.com/ryuzo-k/kokoro-graph/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OracleOpenAIClient implements ai.ProfileOracle against an
// OpenAI-compatible chat endpoint.
//
// An OracleOpenAIClient should be created using NewOracleOpenAIClient.
type OracleOpenAIClient struct {
	scoringModel string

	chatURL string
	chatKey string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewOracleOpenAIClientParams defines the configuration for creating an
// OracleOpenAIClient. ChatURL may be empty to use the default OpenAI
// endpoint.
type NewOracleOpenAIClientParams struct {
	ScoringModel string

	ChatURL string
	ChatKey string
}

// NewOracleOpenAIClient creates a new client configured with the given
// parameters.
func NewOracleOpenAIClient(params NewOracleOpenAIClientParams) *OracleOpenAIClient {
	return &OracleOpenAIClient{
		scoringModel: params.ScoringModel,

		chatURL: params.ChatURL,
		chatKey: params.ChatKey,

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		ChatClient: newOpenaiClient(params.ChatURL, params.ChatKey),
	}
}

func newOpenaiClient(baseURL string, apiKey string) *openai.Client {
	if apiKey == "" {
		return nil
	}
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}

func (c *OracleOpenAIClient) modifyMetrics(delta ai.ModelMetrics) {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	c.metrics.InputTokens += delta.InputTokens
	c.metrics.OutputTokens += delta.OutputTokens
	c.metrics.TotalTokens += delta.TotalTokens
	c.metrics.DurationMs += delta.DurationMs
}

func (c *OracleOpenAIClient) ResetMetrics() {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	c.metrics = ai.ModelMetrics{}
}

func (c *OracleOpenAIClient) GetMetrics() ai.ModelMetrics {
	c.metricsLock.Lock()
	defer c.metricsLock.Unlock()
	return c.metrics
}
