package service

import (
	"context"
	"fmt"
	"strings"

	"expenselens/internal/models"
	"expenselens/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// ExtractionClient sends expense descriptions to the completion service and
// returns the raw response text. One completion call per request, no
// retries.
type ExtractionClient struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	logger *zap.Logger
}

func buildSystemInstruction() string {
	categories := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		categories[i] = string(c)
	}

	return `You are an expense analyzer. The user sends a free-text description of a single expense.

Extract three fields from it:
- "name": a concise name for the expense
- "amount": the numeric amount spent, without currency symbols
- "category": exactly one of: ` + strings.Join(categories, ", ") + `

Return ONLY a JSON object of the form {"name": "...", "amount": 0.00, "category": "..."}.
Do not wrap the response in code fences. Do not add comments or any text outside the JSON.
If the amount is not stated, use 0. If no category fits, use "Other".`
}

func NewExtractionClient(ctx context.Context, cfg *config.GigaChatConfig, logger *zap.Logger) (*ExtractionClient, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = buildSystemInstruction()
	model.Temperature = 0.1

	return &ExtractionClient{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Extract sends the description to the provider and returns the raw
// response text verbatim. The caller stores and parses it.
func (c *ExtractionClient) Extract(ctx context.Context, description string) (string, error) {
	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: "Analyze this expense: " + description},
	}

	resp, err := c.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	text := resp.Choices[0].Message.Content
	c.logger.Debug("Extraction completed", zap.Int("response_length", len(text)))

	return text, nil
}

func (c *ExtractionClient) Close() error {
	if c.client != nil {
		c.client.Close()
	}
	return nil
}
