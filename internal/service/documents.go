package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/google/uuid"

	"github.com/nardonidigital/agency-api/internal/core"
	"github.com/nardonidigital/agency-api/internal/domain/model"
	"github.com/nardonidigital/agency-api/internal/ports"
)

// DocumentServiceOptions groups dependencies for DocumentService.
type DocumentServiceOptions struct {
	Documents core.DocumentRepository
	Store     ports.DocumentStore
	Logger    *slog.Logger
}

// DocumentService coordinates document metadata in Postgres with the bytes
// in object storage.
type DocumentService struct {
	documents core.DocumentRepository
	store     ports.DocumentStore
	logger    *slog.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(opts DocumentServiceOptions) *DocumentService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentService{documents: opts.Documents, store: opts.Store, logger: logger}
}

// Upload stores the document bytes, then registers the metadata. A failed
// metadata insert removes the orphaned object best-effort.
func (s *DocumentService) Upload(ctx context.Context, req *model.CreateDocumentRequest, r io.Reader) (*model.Document, error) {
	if req == nil {
		return nil, fmt.Errorf("create document request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	storageKey := path.Join(req.ClientID, uuid.NewString())
	if err := s.store.Upload(ctx, storageKey, req.ContentType, r, req.SizeBytes); err != nil {
		return nil, fmt.Errorf("upload document bytes: %w", err)
	}

	doc, err := s.documents.Create(ctx, req, storageKey)
	if err != nil {
		if cleanupErr := s.store.Delete(ctx, storageKey); cleanupErr != nil {
			s.logger.WarnContext(ctx, "failed to clean up orphaned object",
				"storage_key", storageKey, "error", cleanupErr)
		}
		return nil, err
	}
	return doc, nil
}

// Download returns the metadata and a reader over the bytes. The caller
// closes the reader.
func (s *DocumentService) Download(ctx context.Context, id string) (*model.Document, io.ReadCloser, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Download(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("download document bytes: %w", err)
	}
	return doc, rc, nil
}

// GetByID retrieves document metadata.
func (s *DocumentService) GetByID(ctx context.Context, id string) (*model.Document, error) {
	return s.documents.GetByID(ctx, id)
}

// List returns documents across all clients, newest first, with client names.
func (s *DocumentService) List(ctx context.Context, limit, offset int) ([]*model.DocumentWithClient, error) {
	return s.documents.List(ctx, limit, offset)
}

// ListByClient returns a client's documents, newest first.
func (s *DocumentService) ListByClient(ctx context.Context, clientID string, limit, offset int) ([]*model.Document, error) {
	return s.documents.ListByClient(ctx, clientID, limit, offset)
}

// Delete removes the metadata first, then the bytes. An object store
// failure after the metadata is gone is logged, not surfaced.
func (s *DocumentService) Delete(ctx context.Context, id string) (bool, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	removed, err := s.documents.Delete(ctx, id)
	if err != nil || !removed {
		return removed, err
	}

	if storeErr := s.store.Delete(ctx, doc.StorageKey); storeErr != nil {
		s.logger.WarnContext(ctx, "failed to delete object for removed document",
			"storage_key", doc.StorageKey, "error", storeErr)
	}
	return true, nil
}
