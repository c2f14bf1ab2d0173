package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driven"
)

var _ driven.BlockStore = (*Store)(nil)

// columnsPerRow is the number of bound parameters per inserted block.
const columnsPerRow = 5

// ReplaceBlocks swaps the stored block set of documentID for blocks in a
// single transaction. On any failure the previous set is left intact.
func (s *Store) ReplaceBlocks(ctx context.Context, documentID string, blocks []domain.Block) error {
	if documentID == "" {
		return fmt.Errorf("replacing blocks: empty document id: %w", domain.ErrInvalidInput)
	}

	rows := make([][]any, 0, len(blocks))
	for i, b := range blocks {
		payload, err := domain.EncodeBlock(b)
		if err != nil {
			return fmt.Errorf("encoding block %d: %w", i, err)
		}
		var page any
		if domain.HasPage(b) {
			page = b.PageNumber()
		}
		rows = append(rows, []any{documentID, i, b.Kind().String(), page, string(payload)})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM document_blocks WHERE document_id = ?", documentID); err != nil {
		return wrapSchemaErr("deleting previous blocks", err)
	}

	for start := 0; start < len(rows); start += s.batchSize {
		end := min(start+s.batchSize, len(rows))
		if err := insertBatch(ctx, tx, rows[start:end]); err != nil {
			return wrapSchemaErr(fmt.Sprintf("inserting blocks %d-%d", start, end-1), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing blocks: %w", err)
	}
	return nil
}

func insertBatch(ctx context.Context, tx *sql.Tx, rows [][]any) error {
	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", columnsPerRow), ", ") + ")"

	var q strings.Builder
	q.WriteString("INSERT INTO document_blocks (document_id, block_order, block_type, page_number, payload) VALUES ")
	args := make([]any, 0, len(rows)*columnsPerRow)
	for i, row := range rows {
		if i > 0 {
			q.WriteString(", ")
		}
		q.WriteString(placeholder)
		args = append(args, row...)
	}

	_, err := tx.ExecContext(ctx, q.String(), args...)
	return err
}

// GetBlocks returns the stored blocks for documentID in order.
func (s *Store) GetBlocks(ctx context.Context, documentID string) ([]domain.Block, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT payload FROM document_blocks WHERE document_id = ? ORDER BY block_order", documentID)
	if err != nil {
		return nil, wrapSchemaErr("querying blocks", err)
	}
	defer rows.Close()

	var blocks []domain.Block
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning block: %w", err)
		}
		b, err := domain.DecodeBlock([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("decoding block %d of %s: %w", len(blocks), documentID, err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blocks: %w", err)
	}

	if len(blocks) == 0 {
		return nil, fmt.Errorf("blocks of %q: %w", documentID, domain.ErrNotFound)
	}
	return blocks, nil
}

// DeleteBlocks removes the stored block set of documentID.
func (s *Store) DeleteBlocks(ctx context.Context, documentID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM document_blocks WHERE document_id = ?", documentID); err != nil {
		return wrapSchemaErr("deleting blocks", err)
	}
	return nil
}

// ListDocuments summarises each stored block set, ordered by document ID.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.DocumentSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT document_id, COUNT(*), COALESCE(MAX(page_number), 0)
		FROM document_blocks
		GROUP BY document_id
		ORDER BY document_id
	`)
	if err != nil {
		return nil, wrapSchemaErr("listing documents", err)
	}
	defer rows.Close()

	var out []domain.DocumentSummary
	for rows.Next() {
		var sum domain.DocumentSummary
		if err := rows.Scan(&sum.ID, &sum.Blocks, &sum.Pages); err != nil {
			return nil, fmt.Errorf("scanning summary: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// wrapSchemaErr tags errors caused by a missing table with
// domain.ErrSchemaAbsent.
func wrapSchemaErr(op string, err error) error {
	if strings.Contains(err.Error(), "no such table") {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrSchemaAbsent, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
