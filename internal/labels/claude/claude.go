// Package claude implements labels.Analyzer on the Anthropic Messages API.
package claude

import (
	"context"
	"fmt"
	"io"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/JasonMadeSomething/claimbench/internal/labels"
)

type Analyzer struct {
	client *anthropic.Client
	model  anthropic.Model
}

func New(apiKey, model string) *Analyzer {
	return &Analyzer{
		client: anthropic.NewClient(apiKey),
		model:  anthropic.Model(model),
	}
}

// Labels sends the photo to the model and parses its line-oriented response.
func (a *Analyzer) Labels(ctx context.Context, r io.Reader, mimeType string) ([]string, error) {
	imageData, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	resp, err := a.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: a.model,
		// Labels are a handful of short lines; 512 tokens is generous.
		MaxTokens: 512,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewImageMessageContent(anthropic.NewMessageContentSource(
						anthropic.MessagesContentSourceTypeBase64,
						normaliseMIME(mimeType),
						imageData,
					)),
					anthropic.NewTextMessageContent(labels.Prompt),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call claude: %w", err)
	}

	return labels.ParseLabels(resp.GetFirstContentText()), nil
}

// normaliseMIME maps browser MIME types to the values the Anthropic API
// accepts. Unknown types are coerced to jpeg.
func normaliseMIME(mimeType string) string {
	switch mimeType {
	case "image/png", "image/gif", "image/webp":
		return mimeType
	default:
		return "image/jpeg"
	}
}
