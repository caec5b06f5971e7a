// Package gemini provides a Google Gemini implementation of
// gutencore.Completer.
package gemini

import (
	"context"

	"github.com/fwojciec/gutencore"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Completer implements gutencore.Completer at compile time.
var _ gutencore.Completer = (*Completer)(nil)

// Completer sends prompts to Gemini and returns text completions.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer for the given model.
// An empty model selects DefaultModel.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Complete sends the prompt and returns the completion text.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", gutencore.Errorf(gutencore.EINVALID, "prompt required")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", gutencore.Errorf(gutencore.EMODEL, "gemini returned nil result")
	}

	text := result.Text()
	if text == "" {
		return "", gutencore.Errorf(gutencore.EMODEL, "gemini returned empty completion")
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// Anchor extraction wants literal transcription, not creativity, so the
// temperature sits at zero.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a careful text-processing assistant working on Project Gutenberg ebooks. Follow the output format instructions exactly. When asked to quote from a text, reproduce it exactly, byte for byte.",
			}},
		},
		Temperature: &temp,
	}
}
