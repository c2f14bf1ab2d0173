// Package ai provides factory functions for creating preview captioners.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/docblocks/internal/adapters/driven/caption/gemini"
	"github.com/custodia-labs/docblocks/internal/adapters/driven/caption/ollama"
	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// pinger is implemented by captioners that can check connectivity.
type pinger interface {
	Ping(ctx context.Context) error
}

// CreateAndValidateCaptioner creates the configured captioner and checks
// that it is reachable. Returns nil when captioning is off.
func CreateAndValidateCaptioner(ctx context.Context, settings domain.CaptionSettings) (driven.Captioner, error) {
	c, err := CreateCaptioner(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'docblocks config set caption.provider off' to disable captions",
			domain.ErrServiceUnavailable, err)
	}
	if c == nil {
		return nil, nil
	}

	if p, ok := c.(pinger); ok {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()

		if err := p.Ping(pingCtx); err != nil {
			return nil, fmt.Errorf("%w: caption service unreachable (%w)", domain.ErrServiceUnavailable, err)
		}
	}
	return c, nil
}

// CreateCaptioner creates the captioner selected by settings.
// Returns nil if captioning is off.
func CreateCaptioner(ctx context.Context, settings domain.CaptionSettings) (driven.Captioner, error) {
	switch settings.Provider {
	case domain.CaptionOff, "":
		return nil, nil

	case domain.CaptionGemini:
		c, err := gemini.New(ctx, "", settings.Model)
		if err != nil {
			return nil, err
		}
		return c, nil

	case domain.CaptionOllama:
		return createOllama(settings), nil

	default:
		return nil, fmt.Errorf("unsupported caption provider: %s", settings.Provider)
	}
}

// createOllama creates an Ollama captioner. The shared model default names
// a Gemini model, so it falls back to the Ollama default.
func createOllama(settings domain.CaptionSettings) driven.Captioner {
	model := settings.Model
	if model == domain.DefaultCaptionModel {
		model = ""
	}
	return ollama.New(ollama.Config{
		BaseURL: settings.BaseURL,
		Model:   model,
	})
}
