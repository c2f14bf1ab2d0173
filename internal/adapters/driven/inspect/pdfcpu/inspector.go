// Package pdfcpu implements the Inspector port with github.com/pdfcpu/pdfcpu.
// It validates the PDF structure and reports whether any page draws an
// image XObject, which text extraction alone cannot tell.
package pdfcpu

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/core/ports/driven"
)

// Ensure Inspector implements the interface.
var _ driven.Inspector = (*Inspector)(nil)

// Inspector reads PDFs with pdfcpu.
type Inspector struct {
	conf *model.Configuration
}

// New creates an Inspector with pdfcpu's default configuration.
func New() *Inspector {
	return &Inspector{conf: model.NewDefaultConfiguration()}
}

// Inspect validates content and reports image stream presence.
func (i *Inspector) Inspect(_ context.Context, content []byte) (q *domain.Quality, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdfcpu: %v", r)
		}
	}()

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(content), i.conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	return &domain.Quality{HasImageStreams: hasImageStreams(ctx)}, nil
}

// hasImageStreams checks the optimised page resources first, then falls
// back to scanning the xref table for image stream dictionaries.
func hasImageStreams(ctx *model.Context) bool {
	if ctx.Optimize != nil {
		for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
			if len(pdfcpu.ImageObjNrs(ctx, pageNr)) > 0 {
				return true
			}
		}
	}
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				return true
			}
		}
	}
	return false
}
