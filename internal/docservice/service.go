// Package docservice coordinates storage, index, and rendering for block
// documents.
package docservice

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/blocks"
	"github.com/starford/ansuz/internal/checksum"
	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/render"
	"github.com/starford/ansuz/internal/storage"
)

// DocumentDetail is the full representation of a document.
type DocumentDetail struct {
	Path       string         `json:"path"`
	Title      string         `json:"title"`
	Blocks     []blocks.Block `json:"blocks"`
	BlockCount int            `json:"block_count"`
	Checksum   string         `json:"checksum"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// DocumentListItem is a lightweight item in a list response.
type DocumentListItem struct {
	Path       string    `json:"path"`
	Title      string    `json:"title"`
	Checksum   string    `json:"checksum"`
	BlockCount int       `json:"block_count"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Service coordinates storage and index operations.
type Service struct {
	store    storage.Provider
	db       *index.DB
	renderer *render.Renderer
}

// NewService creates a new document service.
func NewService(store storage.Provider, db *index.DB) *Service {
	return &Service{store: store, db: db, renderer: render.New()}
}

// GetDocument reads a document from storage and decodes its block list.
func (s *Service) GetDocument(_ context.Context, path string) (*DocumentDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return s.buildDetail(path, data), nil
}

// CreateDocument validates, writes, and indexes a new document. An empty
// block list creates the canonical default document.
func (s *Service) CreateDocument(_ context.Context, path string, list []blocks.Block) (*DocumentDetail, error) {
	if _, err := s.store.Read(path); err == nil {
		return nil, apperr.ErrAlreadyExists
	}
	if len(list) == 0 {
		list = blocks.DefaultBlocks()
	}
	data, err := s.encode(list)
	if err != nil {
		return nil, err
	}
	if err := s.store.Write(path, data); err != nil {
		return nil, err
	}
	if err := s.IndexDocument(path, data); err != nil {
		return nil, err
	}
	return s.buildDetail(path, data), nil
}

// UpdateDocument writes an updated block list with optimistic concurrency:
// a non-empty ifMatch must equal the checksum of the stored bytes.
func (s *Service) UpdateDocument(_ context.Context, path string, list []blocks.Block, ifMatch string) (*DocumentDetail, error) {
	existing, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if ifMatch != "" && ifMatch != checksum.Sum(existing) {
		return nil, apperr.ErrConflict
	}
	data, err := s.encode(list)
	if err != nil {
		return nil, err
	}
	if err := s.store.Write(path, data); err != nil {
		return nil, err
	}
	if err := s.IndexDocument(path, data); err != nil {
		return nil, err
	}
	return s.buildDetail(path, data), nil
}

// DeleteDocument removes a document from storage and index.
func (s *Service) DeleteDocument(_ context.Context, path string) error {
	if err := s.store.Delete(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.ErrNotFound
		}
		return err
	}
	return s.db.DeleteDocument(path)
}

// ListDocuments returns paginated documents.
func (s *Service) ListDocuments(_ context.Context, limit, offset int, sort string) ([]DocumentListItem, int, error) {
	rows, total, err := s.db.ListDocuments(limit, offset, sort)
	if err != nil {
		return nil, 0, err
	}
	items := make([]DocumentListItem, len(rows))
	for i, r := range rows {
		items[i] = DocumentListItem{
			Path:       r.Path,
			Title:      r.Title,
			Checksum:   r.Checksum,
			BlockCount: r.BlockCount,
			UpdatedAt:  r.UpdatedAt,
		}
	}
	return items, total, nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// RenderDocument reads a document and renders it to sanitized HTML.
func (s *Service) RenderDocument(ctx context.Context, path string) (string, error) {
	detail, err := s.GetDocument(ctx, path)
	if err != nil {
		return "", err
	}
	return s.renderer.Document(detail.Blocks)
}

// RenderBlocks renders an ad-hoc block list to sanitized HTML.
func (s *Service) RenderBlocks(_ context.Context, list []blocks.Block) (string, error) {
	return s.renderer.Document(list)
}

// IndexDocument decodes data and upserts its projections into the index.
// Exported so that sync and watcher paths can reuse it.
func (s *Service) IndexDocument(path string, data []byte) error {
	list := blocks.Decode(string(data))
	return s.db.UpsertDocument(index.DocumentRow{
		Path:       path,
		Title:      blocks.Title(list),
		Checksum:   checksum.Sum(data),
		BlockCount: len(list),
		UpdatedAt:  time.Now(),
	}, blocks.PlainText(list))
}

// encode validates and serializes a block list for persistence.
func (s *Service) encode(list []blocks.Block) ([]byte, error) {
	if err := blocks.ValidateDocument(list); err != nil {
		return nil, errors.Join(apperr.ErrInvalidDocument, err)
	}
	text, err := blocks.Encode(list)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

// buildDetail constructs a DocumentDetail from raw data without re-reading
// the file.
func (s *Service) buildDetail(path string, data []byte) *DocumentDetail {
	list := blocks.Decode(string(data))
	return &DocumentDetail{
		Path:       path,
		Title:      blocks.Title(list),
		Blocks:     list,
		BlockCount: len(list),
		Checksum:   checksum.Sum(data),
		UpdatedAt:  time.Now(),
	}
}
