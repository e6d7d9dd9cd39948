package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/ryuzo-k/kokoro-graph/pkg/ai"
	"github.com/ryuzo-k/kokoro-graph/pkg/logger"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"
)

// ScoreProfile sends the assembled scoring prompt to the chat model
// with a JSON schema enforcing the ProfileScores structure.
func (c *OracleOpenAIClient) ScoreProfile(
	ctx context.Context,
	input ai.ProfileInput,
	opts ...ai.GenerateOption,
) (ai.ProfileScores, error) {
	if c.ChatClient == nil {
		return ai.ProfileScores{}, fmt.Errorf("openai oracle not configured")
	}

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

	schema := ai.GenerateSchema(&ai.ProfileScores{})
	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "profile_scores",
		Description: openai.String("Channel scores and fraud risk for a user profile"),
		Schema:      schema,
		Strict:      openai.Bool(true),
	}

	msgs := []openai.ChatCompletionMessageParamUnion{}
	for _, sp := range options.SystemPrompts {
		msgs = append(msgs, openai.SystemMessage(sp))
	}
	msgs = append(msgs, openai.UserMessage(prompt))

	body := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(options.Model),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
		Messages:    msgs,
		Temperature: openai.Float(options.Temperature),
	}

	if options.Thinking != "" {
		// gpt-5 models only accept temperature 1.0 when reasoning is enabled
		if c.chatURL == "" {
			body.Temperature = openai.Float(1.0)
		}
		body.ReasoningEffort = shared.ReasoningEffort(options.Thinking)
	}

	start := time.Now()
	response, err := c.ChatClient.Chat.Completions.New(ctx, body)
	if err != nil {
		return ai.ProfileScores{}, err
	}
	duration := time.Since(start).Milliseconds()

	c.modifyMetrics(ai.ModelMetrics{
		InputTokens:  int(response.Usage.PromptTokens),
		OutputTokens: int(response.Usage.CompletionTokens),
		TotalTokens:  int(response.Usage.TotalTokens),
		DurationMs:   duration,
	})

	if len(response.Choices) == 0 {
		return ai.ProfileScores{}, fmt.Errorf("no choices in response from model")
	}

	var scores ai.ProfileScores
	if err := ai.UnmarshalFlexible(response.Choices[0].Message.Content, &scores); err != nil {
		return ai.ProfileScores{}, err
	}

	logger.Debug("[Oracle][ScoreProfile] Scored profile",
		"model", options.Model,
		"fraud_risk", scores.FraudRiskLevel,
	)
	return scores, nil
}
