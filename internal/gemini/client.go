package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrEmptyResponse is returned when the model answers without any text.
var ErrEmptyResponse = errors.New("model returned no text")

type Options struct {
	Model           string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
}

type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewClient(ctx context.Context, apiKey string, opts Options) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(opts.Model)
	model.SetTemperature(opts.Temperature)
	model.SetTopP(opts.TopP)
	model.SetMaxOutputTokens(opts.MaxOutputTokens)

	return &Client{
		client: client,
		model:  model,
	}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// GenerateText sends a text-only prompt.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, genai.Text(prompt))
}

// GenerateFromImage sends the image followed by the prompt. format is the
// image subtype, e.g. "jpeg" or "png".
func (c *Client) GenerateFromImage(ctx context.Context, image []byte, format, prompt string) (string, error) {
	return c.generate(ctx, genai.ImageData(format, image), genai.Text(prompt))
}

func (c *Client) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return responseText(resp)
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
