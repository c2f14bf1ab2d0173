package services

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driven"
	"github.com/custodia-labs/docblocks/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyPreviewPages    = "parse.preview_pages"
	KeyConcurrency     = "parse.concurrency"
	KeyDataDir         = "storage.data_dir"
	KeyBatchSize       = "storage.batch_size"
	KeyMigrate         = "storage.migrate"
	KeyPreviewWidth    = "preview.width"
	KeyCaptionProvider = "caption.provider"
	KeyCaptionModel    = "caption.model"
	KeyCaptionBaseURL  = "caption.base_url"
	KeyWatchRate       = "watch.rate"
	KeyServerAddr      = "server.addr"
	KeyMaxUploadMB     = "server.max_upload_mb"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindBool
)

// setting describes how a key is parsed and validated.
type setting struct {
	kind valueKind
	// min is the smallest accepted number for numeric keys.
	min float64
}

var settingKeys = map[string]setting{
	KeyPreviewPages:    {kind: kindInt, min: 0},
	KeyConcurrency:     {kind: kindInt, min: 1},
	KeyDataDir:         {kind: kindString},
	KeyBatchSize:       {kind: kindInt, min: 1},
	KeyMigrate:         {kind: kindBool},
	KeyPreviewWidth:    {kind: kindInt, min: 16},
	KeyCaptionProvider: {kind: kindString},
	KeyCaptionModel:    {kind: kindString},
	KeyCaptionBaseURL:  {kind: kindString},
	KeyWatchRate:       {kind: kindFloat, min: 0.01},
	KeyServerAddr:      {kind: kindString},
	KeyMaxUploadMB:     {kind: kindInt, min: 1},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// LoadSettings reads settings from store, applying defaults for missing or
// out-of-range values.
func LoadSettings(store driven.ConfigStore) domain.Settings {
	s := domain.DefaultSettings()
	if store == nil {
		return s
	}

	if v, ok := intValue(store, KeyPreviewPages); ok && v >= 0 {
		s.Parse.PreviewPages = v
	}
	if v, ok := intValue(store, KeyConcurrency); ok && v > 0 {
		s.Parse.Concurrency = v
	}
	if v := store.GetString(KeyDataDir); v != "" {
		s.Storage.DataDir = v
	}
	if v, ok := intValue(store, KeyBatchSize); ok && v > 0 {
		s.Storage.BatchSize = v
	}
	if v, ok := store.Get(KeyMigrate); ok {
		if b, isBool := v.(bool); isBool {
			s.Storage.Migrate = b
		}
	}
	if v, ok := intValue(store, KeyPreviewWidth); ok && v > 0 {
		s.Preview.Width = v
	}
	if p := domain.CaptionProvider(store.GetString(KeyCaptionProvider)); p.IsValid() {
		s.Caption.Provider = p
	}
	if v := store.GetString(KeyCaptionModel); v != "" {
		s.Caption.Model = v
	}
	s.Caption.BaseURL = store.GetString(KeyCaptionBaseURL)
	if v := store.GetFloat(KeyWatchRate); v > 0 {
		s.Watch.Rate = v
	}
	if v := store.GetString(KeyServerAddr); v != "" {
		s.Server.Addr = v
	}
	if v, ok := intValue(store, KeyMaxUploadMB); ok && v > 0 {
		s.Server.MaxUploadMB = v
	}
	return s
}

func intValue(store driven.ConfigStore, key string) (int, bool) {
	if _, ok := store.Get(key); !ok {
		return 0, false
	}
	return store.GetInt(key), true
}

// Get returns the current settings.
func (s *SettingsService) Get() domain.Settings {
	return LoadSettings(s.configStore)
}

// Keys returns every recognised setting key, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Value returns the effective value of key.
func (s *SettingsService) Value(key string) (string, error) {
	st := s.Get()
	switch key {
	case KeyPreviewPages:
		return strconv.Itoa(st.Parse.PreviewPages), nil
	case KeyConcurrency:
		return strconv.Itoa(st.Parse.Concurrency), nil
	case KeyDataDir:
		return st.Storage.DataDir, nil
	case KeyBatchSize:
		return strconv.Itoa(st.Storage.BatchSize), nil
	case KeyMigrate:
		return strconv.FormatBool(st.Storage.Migrate), nil
	case KeyPreviewWidth:
		return strconv.Itoa(st.Preview.Width), nil
	case KeyCaptionProvider:
		return st.Caption.Provider.String(), nil
	case KeyCaptionModel:
		return st.Caption.Model, nil
	case KeyCaptionBaseURL:
		return st.Caption.BaseURL, nil
	case KeyWatchRate:
		return strconv.FormatFloat(st.Watch.Rate, 'g', -1, 64), nil
	case KeyServerAddr:
		return st.Server.Addr, nil
	case KeyMaxUploadMB:
		return strconv.Itoa(st.Server.MaxUploadMB), nil
	default:
		return "", fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}
}

// Set parses value according to the type of key and stores it.
func (s *SettingsService) Set(key, value string) error {
	def, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}
	value = strings.TrimSpace(value)

	var parsed any
	switch def.kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || float64(n) < def.min {
			return fmt.Errorf("%s must be an integer >= %g: %w", key, def.min, domain.ErrInvalidInput)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < def.min {
			return fmt.Errorf("%s must be a number >= %g: %w", key, def.min, domain.ErrInvalidInput)
		}
		parsed = f
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false: %w", key, domain.ErrInvalidInput)
		}
		parsed = b
	default:
		if key == KeyCaptionProvider && !domain.CaptionProvider(value).IsValid() {
			return fmt.Errorf("%s must be one of %s, %s, %s: %w",
				key, domain.CaptionOff, domain.CaptionGemini, domain.CaptionOllama, domain.ErrInvalidInput)
		}
		parsed = value
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}
