// Package gemini implements the Captioner port with Google's Gemini models.
package gemini

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/custodia-labs/docblocks/internal/adapters/driven/caption"
	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driven"
)

// Ensure Captioner implements the interface.
var _ driven.Captioner = (*Captioner)(nil)

// Environment variables consulted for the API key, in order.
var APIKeyEnv = []string{"GOOGLE_API_KEY", "GEMINI_API_KEY"}

// generateFunc sends contents to model and returns the response text.
type generateFunc func(ctx context.Context, model string, contents []*genai.Content) (string, error)

// Captioner asks a Gemini model to describe preview images.
type Captioner struct {
	model    string
	generate generateFunc
}

// New creates a Captioner. An empty apiKey is resolved from the environment.
func New(ctx context.Context, apiKey, model string) (*Captioner, error) {
	if apiKey == "" {
		apiKey = KeyFromEnv()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini captioner: missing %s: %w", APIKeyEnv[0], domain.ErrServiceUnavailable)
	}
	if model == "" {
		model = domain.DefaultCaptionModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Captioner{
		model: model,
		generate: func(ctx context.Context, model string, contents []*genai.Content) (string, error) {
			res, err := client.Models.GenerateContent(ctx, model, contents, nil)
			if err != nil {
				return "", err
			}
			return res.Text(), nil
		},
	}, nil
}

// KeyFromEnv returns the first API key found in the environment.
func KeyFromEnv() string {
	for _, name := range APIKeyEnv {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// Caption returns a short description of img.
func (c *Captioner) Caption(ctx context.Context, img domain.ImagePayload) (string, error) {
	if len(img.Data) == 0 {
		return "", fmt.Errorf("captioning image: no data: %w", domain.ErrInvalidInput)
	}
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: caption.Prompt},
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: img.Data}},
		},
	}}

	out, err := c.generate(ctx, c.model, contents)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", c.model, err)
	}
	return caption.Clean(out), nil
}
