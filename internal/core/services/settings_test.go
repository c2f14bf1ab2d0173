package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docblocks/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docblocks/internal/core/domain"
)

func TestLoadSettings_Defaults(t *testing.T) {
	assert.Equal(t, domain.DefaultSettings(), LoadSettings(nil))
	assert.Equal(t, domain.DefaultSettings(), LoadSettings(memory.NewConfigStore()))
}

func TestLoadSettings_Overrides(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		KeyPreviewPages:    int64(3),
		KeyConcurrency:     8,
		KeyDataDir:         "/var/lib/docblocks",
		KeyBatchSize:       100,
		KeyMigrate:         false,
		KeyPreviewWidth:    480,
		KeyCaptionProvider: "gemini",
		KeyCaptionModel:    "gemini-2.5-pro",
		KeyWatchRate:       0.5,
		KeyServerAddr:      "127.0.0.1:9000",
		KeyMaxUploadMB:     16,
	})

	s := LoadSettings(store)

	assert.Equal(t, 3, s.Parse.PreviewPages)
	assert.Equal(t, 8, s.Parse.Concurrency)
	assert.Equal(t, "/var/lib/docblocks", s.Storage.DataDir)
	assert.Equal(t, 100, s.Storage.BatchSize)
	assert.False(t, s.Storage.Migrate)
	assert.Equal(t, 480, s.Preview.Width)
	assert.Equal(t, domain.CaptionGemini, s.Caption.Provider)
	assert.Equal(t, "gemini-2.5-pro", s.Caption.Model)
	assert.Equal(t, 0.5, s.Watch.Rate)
	assert.Equal(t, "127.0.0.1:9000", s.Server.Addr)
	assert.Equal(t, 16, s.Server.MaxUploadMB)
}

func TestLoadSettings_IgnoresInvalid(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		KeyConcurrency:     0,
		KeyPreviewPages:    -2,
		KeyCaptionProvider: "openai",
		KeyMigrate:         "yes",
		KeyWatchRate:       -1.0,
	})

	s := LoadSettings(store)
	d := domain.DefaultSettings()

	assert.Equal(t, d.Parse.Concurrency, s.Parse.Concurrency)
	assert.Equal(t, d.Parse.PreviewPages, s.Parse.PreviewPages)
	assert.Equal(t, domain.CaptionOff, s.Caption.Provider)
	assert.True(t, s.Storage.Migrate)
	assert.Equal(t, d.Watch.Rate, s.Watch.Rate)
}

func TestSettingsService_SetAndValue(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	tests := []struct {
		key, value, want string
	}{
		{KeyConcurrency, "6", "6"},
		{KeyPreviewPages, " 2 ", "2"},
		{KeyWatchRate, "0.25", "0.25"},
		{KeyMigrate, "false", "false"},
		{KeyCaptionProvider, "gemini", "gemini"},
		{KeyCaptionProvider, "ollama", "ollama"},
		{KeyCaptionBaseURL, "http://gpu:11434", "http://gpu:11434"},
		{KeyServerAddr, ":9999", ":9999"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.NoError(t, svc.Set(tt.key, tt.value))
			got, err := svc.Value(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, 6, svc.Get().Parse.Concurrency)
}

func TestSettingsService_SetRejects(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	for _, tc := range [][2]string{
		{"search.mode", "fast"},
		{KeyConcurrency, "0"},
		{KeyConcurrency, "many"},
		{KeyPreviewPages, "-1"},
		{KeyWatchRate, "0"},
		{KeyMigrate, "sometimes"},
		{KeyCaptionProvider, "openai"},
		{KeyPreviewWidth, "8"},
	} {
		err := svc.Set(tc[0], tc[1])
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%s=%s", tc[0], tc[1])
	}

	_, err := svc.Value("nope")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_KeysAndPath(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore())

	keys := svc.Keys()
	assert.Len(t, keys, 12)
	assert.IsNonDecreasing(t, keys)
	for _, k := range keys {
		_, err := svc.Value(k)
		assert.NoError(t, err, k)
	}
	assert.Equal(t, ":memory:", svc.Path())
}
