package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driven"
)

// Ensure BlockStore implements the interface.
var _ driven.BlockStore = (*BlockStore)(nil)

// BlockStore is an in-memory implementation of driven.BlockStore.
type BlockStore struct {
	mu     sync.RWMutex
	blocks map[string][]domain.Block
}

// NewBlockStore creates a new in-memory block store.
func NewBlockStore() *BlockStore {
	return &BlockStore{
		blocks: make(map[string][]domain.Block),
	}
}

// ReplaceBlocks stores blocks as the block set of documentID.
func (s *BlockStore) ReplaceBlocks(_ context.Context, documentID string, blocks []domain.Block) error {
	if documentID == "" {
		return fmt.Errorf("replacing blocks: empty document id: %w", domain.ErrInvalidInput)
	}
	for i, b := range blocks {
		if b == nil {
			return fmt.Errorf("block %d: %w", i, domain.ErrInvalidInput)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(blocks) == 0 {
		delete(s.blocks, documentID)
		return nil
	}
	s.blocks[documentID] = slices.Clone(blocks)
	return nil
}

// GetBlocks retrieves the block set of documentID.
func (s *BlockStore) GetBlocks(_ context.Context, documentID string) ([]domain.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blocks, ok := s.blocks[documentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return slices.Clone(blocks), nil
}

// DeleteBlocks removes the block set of documentID.
func (s *BlockStore) DeleteBlocks(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blocks, documentID)
	return nil
}

// ListDocuments summarises every stored block set, ordered by ID.
func (s *BlockStore) ListDocuments(_ context.Context) ([]domain.DocumentSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.DocumentSummary, 0, len(s.blocks))
	for id, blocks := range s.blocks {
		sum := domain.DocumentSummary{ID: id, Blocks: len(blocks)}
		for _, b := range blocks {
			sum.Pages = max(sum.Pages, b.PageNumber())
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
