package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/custodia-labs/docblocks/internal/core/domain"
)

func TestNew_MissingKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := New(context.Background(), "", "")
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestKeyFromEnv(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", " second ")
	assert.Equal(t, "second", KeyFromEnv())

	t.Setenv("GOOGLE_API_KEY", "first")
	assert.Equal(t, "first", KeyFromEnv())
}

func TestCaption(t *testing.T) {
	var gotModel string
	var gotContents []*genai.Content
	c := &Captioner{
		model: "test-model",
		generate: func(_ context.Context, model string, contents []*genai.Content) (string, error) {
			gotModel = model
			gotContents = contents
			return "\"A bar chart of quarterly revenue.\"\nExtra line", nil
		},
	}

	caption, err := c.Caption(context.Background(), domain.ImagePayload{Data: []byte{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, "A bar chart of quarterly revenue", caption)
	assert.Equal(t, "test-model", gotModel)

	require.Len(t, gotContents, 1)
	require.Len(t, gotContents[0].Parts, 2)
	assert.Equal(t, "image/png", gotContents[0].Parts[1].InlineData.MIMEType)
	assert.Equal(t, []byte{1, 2, 3}, gotContents[0].Parts[1].InlineData.Data)
}

func TestCaption_Errors(t *testing.T) {
	c := &Captioner{
		model: "m",
		generate: func(context.Context, string, []*genai.Content) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}

	_, err := c.Caption(context.Background(), domain.ImagePayload{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = c.Caption(context.Background(), domain.ImagePayload{Data: []byte{1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
