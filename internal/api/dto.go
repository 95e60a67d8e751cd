package api

import (
	"github.com/starford/ansuz/internal/blocks"
	"github.com/starford/ansuz/internal/docservice"
)

// CreateDocumentRequest is the request body for creating a document.
// An empty or omitted block list creates the default one-block document.
type CreateDocumentRequest struct {
	Path   string         `json:"path" example:"courses/intro.json" validate:"required"`
	Blocks []blocks.Block `json:"blocks"`
}

// UpdateDocumentRequest is the request body for updating a document.
type UpdateDocumentRequest struct {
	Blocks []blocks.Block `json:"blocks" validate:"required"`
}

// RenderRequest is the request body for rendering an ad-hoc block list.
type RenderRequest struct {
	Blocks []blocks.Block `json:"blocks" validate:"required"`
}

// RenderResponse carries the rendered HTML.
type RenderResponse struct {
	HTML string `json:"html" validate:"required"`
}

// DocumentDetail is the full document response type (aliased from the domain layer).
type DocumentDetail = docservice.DocumentDetail

// DocumentListItem is a lightweight item in a list response (aliased from the domain layer).
type DocumentListItem = docservice.DocumentListItem

// DocumentListResponse wraps paginated document listings.
type DocumentListResponse struct {
	Documents []DocumentListItem `json:"documents" validate:"required"`
	Total     int                `json:"total" example:"42" validate:"required"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Path    string `json:"path" example:"courses/intro.json" validate:"required"`
	Title   string `json:"title" example:"Intro" validate:"required"`
	Snippet string `json:"snippet" example:"...matched text..." validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}

// AttachmentUploadResponse is returned after a successful attachment upload.
type AttachmentUploadResponse struct {
	Filename string `json:"filename" example:"image.png" validate:"required"`
	Size     int64  `json:"size" example:"12345" validate:"required"`
	URL      string `json:"url" example:"/attachments/image.png" validate:"required"`
}
