package ollama

import (
	"context"
	"encoding/json"

	"github.com/ryuzo-k/kokoro-graph/pkg/ai"
	"github.com/ryuzo-k/kokoro-graph/pkg/logger"

	"github.com/ollama/ollama/api"
	"github.com/pkoukk/tiktoken-go"
)

// ScoreProfile sends the assembled scoring prompt with a schema-
// constrained format and parses the response leniently.
func (c *OracleOllamaClient) ScoreProfile(
	ctx context.Context,
	input ai.ProfileInput,
	opts ...ai.GenerateOption,
) (ai.ProfileScores, error) {
	if err := c.reqLock.Acquire(ctx, 1); err != nil {
		return ai.ProfileScores{}, err
	}
	defer c.reqLock.Release(1)

	options := ai.GenerateOptions{
		Model:       c.scoringModel,
		Temperature: 0.1,
		Thinking:    "",
	}
	for _, o := range opts {
		o(&options)
	}

	prompt, err := ai.BuildProfilePrompt(input)
	if err != nil {
		return ai.ProfileScores{}, err
	}

	schemaObj := ai.GenerateSchema(&ai.ProfileScores{})
	formatBytes, err := json.Marshal(schemaObj)
	if err != nil {
		return ai.ProfileScores{}, err
	}
	var format json.RawMessage = formatBytes

	messages := make([]api.Message, 0, len(options.SystemPrompts)+1)
	for _, sp := range options.SystemPrompts {
		messages = append(messages, api.Message{Role: "system", Content: sp})
	}
	messages = append(messages, api.Message{Role: "user", Content: prompt})

	stream := false
	req := &api.ChatRequest{
		Model:    options.Model,
		Messages: messages,
		Stream:   &stream,
		Format:   format,
		Options:  map[string]any{"temperature": options.Temperature},
	}

	if options.Thinking != "" {
		req.Think = &api.ThinkValue{Value: options.Thinking}
	}

	// Grow the context window when the prompt outruns the default.
	enc, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		return ai.ProfileScores{}, err
	}
	promptTokens := len(enc.Encode(prompt, nil, nil)) + 200
	if promptTokens > 4096 {
		req.Options["num_ctx"] = promptTokens
	}

	var final api.ChatResponse
	if err := c.Client.Chat(ctx, req, func(cr api.ChatResponse) error {
		final.Message.Content += cr.Message.Content
		if cr.Done {
			final.Done = true
			final.Metrics = cr.Metrics
		}
		return nil
	}); err != nil {
		return ai.ProfileScores{}, err
	}

	c.modifyMetrics(ai.ModelMetrics{
		InputTokens:  final.Metrics.PromptEvalCount,
		OutputTokens: final.Metrics.EvalCount,
		TotalTokens:  final.Metrics.PromptEvalCount + final.Metrics.EvalCount,
		DurationMs:   final.Metrics.TotalDuration.Milliseconds(),
	})

	var scores ai.ProfileScores
	if err := ai.UnmarshalFlexible(final.Message.Content, &scores); err != nil {
		return ai.ProfileScores{}, err
	}

	logger.Debug("[Oracle][ScoreProfile] Scored profile",
		"model", options.Model,
		"fraud_risk", scores.FraudRiskLevel,
	)
	return scores, nil
}
