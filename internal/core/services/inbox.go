package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driven"
	"github.com/custodia-labs/docblocks/internal/core/ports/driving"
	"github.com/custodia-labs/docblocks/internal/logger"
)

// Ensure InboxService implements the interface.
var _ driving.InboxService = (*InboxService)(nil)

// InboxEvent reports how one change was handled.
type InboxEvent struct {
	Type       domain.ChangeType
	Path       string
	DocumentID string

	// Result is set for successful ingests.
	Result *driving.IngestResult

	// Err is set when the change could not be handled.
	Err error
}

// InboxOption configures an InboxService.
type InboxOption func(*InboxService)

// WithRate limits how many changes are handled per second.
func WithRate(perSecond float64) InboxOption {
	return func(s *InboxService) {
		if perSecond > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithParseOptions sets the options used for every ingest.
func WithParseOptions(opts domain.ParseOptions) InboxOption {
	return func(s *InboxService) { s.opts = opts }
}

// WithInitialScan ingests files already present before watching.
func WithInitialScan() InboxOption {
	return func(s *InboxService) { s.scan = true }
}

// WithObserver registers fn to be called after each handled change.
func WithObserver(fn func(InboxEvent)) InboxOption {
	return func(s *InboxService) { s.observe = fn }
}

// InboxService ingests files that appear in a watched directory and drops
// the blocks of files that disappear.
type InboxService struct {
	docs    driving.DocumentService
	source  driven.ChangeSource
	limiter *rate.Limiter
	opts    domain.ParseOptions
	scan    bool
	observe func(InboxEvent)
}

// NewInboxService creates a new inbox service.
func NewInboxService(docs driving.DocumentService, source driven.ChangeSource, opts ...InboxOption) *InboxService {
	s := &InboxService{
		docs:    docs,
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(domain.DefaultWatchRate), 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DocumentIDForPath derives a stable document ID from a file path, so a
// file keeps its block set across updates.
func DocumentIDForPath(path string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+path)).String()
}

// Run handles changes until ctx is cancelled or the source closes. A
// cancelled ctx is a normal stop and returns nil.
func (s *InboxService) Run(ctx context.Context) error {
	if s.docs == nil || s.source == nil {
		return fmt.Errorf("running inbox: %w", domain.ErrServiceUnavailable)
	}

	changes, err := s.source.Watch(ctx)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}

	if s.scan {
		existing, err := s.source.Scan(ctx)
		if err != nil {
			return fmt.Errorf("scanning inbox: %w", err)
		}
		logger.Info("initial scan found %d files", len(existing))
		for _, change := range existing {
			if err := s.handle(ctx, change); err != nil {
				return nil
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			if err := s.handle(ctx, change); err != nil {
				return nil
			}
		}
	}
}

// handle processes one change. It returns an error only when ctx ended
// while waiting for the rate limiter.
func (s *InboxService) handle(ctx context.Context, change domain.RawDocumentChange) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	ev := InboxEvent{Type: change.Type, Path: change.Path, DocumentID: DocumentIDForPath(change.Path)}

	switch change.Type {
	case domain.ChangeDeleted:
		if err := s.docs.Delete(ctx, ev.DocumentID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			ev.Err = err
			logger.Warn("removing blocks for %s: %v", change.Path, err)
		} else {
			logger.Info("removed blocks for %s", change.Path)
		}
	default:
		doc := change.Document
		result, err := s.docs.Ingest(ctx, ev.DocumentID, &doc, s.opts)
		if err != nil {
			ev.Err = err
			logger.Warn("ingesting %s: %v", change.Path, err)
		} else {
			ev.Result = result
			logger.Info("%s %s -> %s", change.Type, change.Path, ev.DocumentID)
		}
	}

	if s.observe != nil {
		s.observe(ev)
	}
	return nil
}
