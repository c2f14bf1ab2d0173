package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/docblocks/internal/core/domain"
	"github.com/custodia-labs/docblocks/internal/logger"
)

// ParseResponse is the body returned by the parse and ingest endpoints.
type ParseResponse struct {
	DocumentID string           `json:"document_id,omitempty"`
	Persisted  bool             `json:"persisted"`
	SaveError  string           `json:"save_error,omitempty"`
	Document   *domain.Document `json:"document"`
}

// BlocksResponse is the body of GET /v1/documents/{id}/blocks.
type BlocksResponse struct {
	DocumentID string        `json:"document_id"`
	Blocks     domain.Blocks `json:"blocks"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	raw, opts, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	doc, err := s.docs.Parse(r.Context(), raw, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ParseResponse{Document: doc})
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	raw, opts, err := s.readUpload(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.docs.Ingest(r.Context(), chi.URLParam(r, "id"), raw, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := ParseResponse{
		DocumentID: result.DocumentID,
		Persisted:  result.Persisted,
		Document:   result.Document,
	}
	if result.PersistErr != nil {
		resp.SaveError = result.PersistErr.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	docs, err := s.docs.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if docs == nil {
		docs = []domain.DocumentSummary{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleBlocks(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	blocks, err := s.docs.Blocks(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, BlocksResponse{DocumentID: id, Blocks: blocks})
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	text, err := s.docs.Text(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, text)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.docs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readUpload reads the request body as a document. Parse options come from
// the preview_pages and skip_previews query parameters.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*domain.RawDocument, domain.ParseOptions, error) {
	opts := domain.ParseOptions{MaxPreviewPages: s.previewPages}
	q := r.URL.Query()
	if v := q.Get("preview_pages"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, opts, fmt.Errorf("preview_pages %q: %w", v, domain.ErrInvalidInput)
		}
		opts.MaxPreviewPages = n
	}
	if v := q.Get("skip_previews"); v != "" {
		skip, err := strconv.ParseBool(v)
		if err != nil {
			return nil, opts, fmt.Errorf("skip_previews %q: %w", v, domain.ErrInvalidInput)
		}
		opts.SkipPreviews = skip
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		raw, err := readMultipart(r)
		return raw, opts, err
	}

	content, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, opts, bodyError(err)
	}
	if len(content) == 0 {
		return nil, opts, fmt.Errorf("empty request body: %w", domain.ErrInvalidInput)
	}
	return &domain.RawDocument{
		Name:     q.Get("name"),
		MIMEType: mediaType,
		Content:  content,
	}, opts, nil
}

func readMultipart(r *http.Request) (*domain.RawDocument, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, fmt.Errorf("multipart field \"file\" missing: %w", domain.ErrInvalidInput)
		}
		return nil, bodyError(err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, bodyError(err)
	}

	mimeType, _, _ := mime.ParseMediaType(header.Header.Get("Content-Type"))
	return &domain.RawDocument{
		Name:     header.Filename,
		MIMEType: mimeType,
		Content:  content,
	}, nil
}

// errTooLarge marks bodies over the upload limit.
var errTooLarge = errors.New("request body too large")

func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: limit is %d bytes", errTooLarge, maxErr.Limit)
	}
	return fmt.Errorf("reading request body: %w: %w", domain.ErrInvalidInput, err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrParseFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Warn("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, ErrorResponse{
		Error:     err.Error(),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("encoding response: %v", err)
	}
}
