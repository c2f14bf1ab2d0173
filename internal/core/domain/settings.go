package domain

// CaptionProvider selects the service used to caption page previews.
type CaptionProvider string

// Available caption providers.
const (
	// CaptionOff disables captioning.
	CaptionOff CaptionProvider = "off"

	// CaptionGemini uses the Gemini API.
	CaptionGemini CaptionProvider = "gemini"

	// CaptionOllama uses a vision model served by Ollama.
	CaptionOllama CaptionProvider = "ollama"
)

// IsValid returns true if the provider is recognised.
func (p CaptionProvider) IsValid() bool {
	switch p {
	case CaptionOff, CaptionGemini, CaptionOllama:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p CaptionProvider) String() string {
	return string(p)
}

// Settings holds application configuration.
type Settings struct {
	Parse   ParseSettings
	Storage StorageSettings
	Preview PreviewSettings
	Caption CaptionSettings
	Watch   WatchSettings
	Server  ServerSettings
}

// ParseSettings controls document parsing.
type ParseSettings struct {
	// PreviewPages caps page previews per document. Zero means no cap.
	PreviewPages int

	// Concurrency is the number of pages processed at once.
	Concurrency int
}

// StorageSettings controls block persistence.
type StorageSettings struct {
	// DataDir holds the SQLite database. Empty means the default location.
	DataDir string

	// BatchSize is the number of rows per insert statement.
	BatchSize int

	// Migrate creates the schema on startup when true.
	Migrate bool
}

// PreviewSettings controls page preview rendering.
type PreviewSettings struct {
	// Width is the preview image width in pixels.
	Width int
}

// CaptionSettings controls preview captioning.
type CaptionSettings struct {
	Provider CaptionProvider

	// Model is the provider model name. Providers fall back to their own
	// default when it names another provider's model.
	Model string

	// BaseURL overrides the provider endpoint (Ollama only).
	BaseURL string
}

// WatchSettings controls the inbox watcher.
type WatchSettings struct {
	// Rate is the maximum number of files ingested per second.
	Rate float64
}

// ServerSettings controls the HTTP API.
type ServerSettings struct {
	Addr        string
	MaxUploadMB int
}

// Defaults.
const (
	DefaultConcurrency  = 4
	DefaultBatchSize    = 50
	DefaultPreviewWidth = 320
	DefaultCaptionModel = "gemini-2.5-flash"
	DefaultWatchRate    = 2.0
	DefaultServerAddr   = ":8080"
	DefaultMaxUploadMB  = 64
)

// DefaultSettings returns settings with every field at its default.
func DefaultSettings() Settings {
	return Settings{
		Parse: ParseSettings{
			PreviewPages: 0,
			Concurrency:  DefaultConcurrency,
		},
		Storage: StorageSettings{
			BatchSize: DefaultBatchSize,
			Migrate:   true,
		},
		Preview: PreviewSettings{
			Width: DefaultPreviewWidth,
		},
		Caption: CaptionSettings{
			Provider: CaptionOff,
			Model:    DefaultCaptionModel,
		},
		Watch: WatchSettings{
			Rate: DefaultWatchRate,
		},
		Server: ServerSettings{
			Addr:        DefaultServerAddr,
			MaxUploadMB: DefaultMaxUploadMB,
		},
	}
}
