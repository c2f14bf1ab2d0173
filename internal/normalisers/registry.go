package normalisers

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driven"
	"github.com/custodia-labs/docblocks/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// FallbackMaxPriority is the highest priority of a fallback normaliser.
// Normalisers at or below it are used when nothing else matches.
const FallbackMaxPriority = 9

// Registry picks a normaliser by MIME type, then file extension, then
// falls back to the best fallback normaliser.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates a registry holding the given normalisers.
func NewRegistry(normalisers ...driven.Normaliser) *Registry {
	r := &Registry{}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Register adds a normaliser. Normalisers are kept in descending priority.
func (r *Registry) Register(normaliser driven.Normaliser) {
	if normaliser == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers = append(r.normalisers, normaliser)
	sort.SliceStable(r.normalisers, func(i, j int) bool {
		return r.normalisers[i].Priority() > r.normalisers[j].Priority()
	})
}

// SupportedMIMETypes returns the MIME types claimed by non-fallback normalisers.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var types []string
	for _, n := range r.normalisers {
		if n.Priority() <= FallbackMaxPriority {
			continue
		}
		for _, t := range n.SupportedMIMETypes() {
			if !slices.Contains(types, t) {
				types = append(types, t)
			}
		}
	}
	sort.Strings(types)
	return types
}

// Select returns the normaliser that would handle raw.
func (r *Registry) Select(raw *domain.RawDocument) (driven.Normaliser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if mt := mediaType(raw.MIMEType); mt != "" {
		for _, n := range r.normalisers {
			if n.Priority() > FallbackMaxPriority && slices.Contains(n.SupportedMIMETypes(), mt) {
				return n, nil
			}
		}
	}

	if ext := strings.ToLower(filepath.Ext(raw.Name)); ext != "" {
		for _, n := range r.normalisers {
			if n.Priority() > FallbackMaxPriority && slices.Contains(n.SupportedExtensions(), ext) {
				return n, nil
			}
		}
	}

	for _, n := range r.normalisers {
		if n.Priority() <= FallbackMaxPriority {
			return n, nil
		}
	}
	return nil, fmt.Errorf("no normaliser for %q (%s): %w", raw.Name, raw.MIMEType, domain.ErrUnsupportedType)
}

// Normalise parses raw with the selected normaliser.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument, opts domain.ParseOptions) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	n, err := r.Select(raw)
	if err != nil {
		return nil, err
	}
	logger.Debug("normalising %q (%s) with %T", raw.Name, raw.MIMEType, n)
	return n.Normalise(ctx, raw, opts)
}

// mediaType strips parameters and lower-cases a Content-Type value.
func mediaType(v string) string {
	if v == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(v))
	}
	return mt
}
