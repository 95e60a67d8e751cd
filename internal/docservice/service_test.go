package docservice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/blocks"
	"github.com/starford/ansuz/internal/testutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	_, store := testutil.TestLibrary(t)
	db := testutil.TestDB(t)
	return NewService(store, db)
}

func sampleBlocks() []blocks.Block {
	return []blocks.Block{
		blocks.New(blocks.TypeHeading1, "My Course", nil),
		blocks.New(blocks.TypeText, "Welcome to the lesson.", nil),
	}
}

func TestCreateAndGetDocument(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	created, err := s.CreateDocument(ctx, "course.json", sampleBlocks())
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if created.Title != "My Course" || created.BlockCount != 2 {
		t.Errorf("created = %+v", created)
	}

	got, err := s.GetDocument(ctx, "course.json")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if got.Checksum != created.Checksum {
		t.Errorf("checksum mismatch: %q vs %q", got.Checksum, created.Checksum)
	}
	if len(got.Blocks) != 2 || got.Blocks[0].Content != "My Course" {
		t.Errorf("blocks = %+v", got.Blocks)
	}
}

func TestCreateDefaultsEmptyDocument(t *testing.T) {
	s := newTestService(t)
	created, err := s.CreateDocument(context.Background(), "empty.json", nil)
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if created.BlockCount != 1 || created.Blocks[0].Type != blocks.TypeText {
		t.Errorf("created = %+v, want one empty text block", created)
	}
}

func TestCreateRejectsExisting(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	_, _ = s.CreateDocument(ctx, "dup.json", sampleBlocks())

	if _, err := s.CreateDocument(ctx, "dup.json", sampleBlocks()); !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestCreateRejectsInvalidBlocks(t *testing.T) {
	s := newTestService(t)
	bad := sampleBlocks()
	bad[1].ID = bad[0].ID // duplicate id

	_, err := s.CreateDocument(context.Background(), "bad.json", bad)
	if !errors.Is(err, apperr.ErrInvalidDocument) {
		t.Errorf("err = %v, want ErrInvalidDocument", err)
	}
}

func TestUpdateWithIfMatch(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	created, _ := s.CreateDocument(ctx, "doc.json", sampleBlocks())

	updated := sampleBlocks()
	got, err := s.UpdateDocument(ctx, "doc.json", updated, created.Checksum)
	if err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}
	if got.Checksum == created.Checksum {
		t.Error("checksum should change after update")
	}

	// Stale checksum is rejected.
	if _, err := s.UpdateDocument(ctx, "doc.json", updated, created.Checksum); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("stale update err = %v, want ErrConflict", err)
	}

	// Empty If-Match skips the check.
	if _, err := s.UpdateDocument(ctx, "doc.json", updated, ""); err != nil {
		t.Errorf("unconditional update: %v", err)
	}
}

func TestUpdateMissingDocument(t *testing.T) {
	s := newTestService(t)
	_, err := s.UpdateDocument(context.Background(), "nope.json", sampleBlocks(), "")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteDocument(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	_, _ = s.CreateDocument(ctx, "del.json", sampleBlocks())

	if err := s.DeleteDocument(ctx, "del.json"); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	if _, err := s.GetDocument(ctx, "del.json"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("get after delete err = %v", err)
	}
	items, total, err := s.ListDocuments(ctx, 10, 0, "")
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 || len(items) != 0 {
		t.Errorf("list after delete = %d/%d", len(items), total)
	}
}

func TestListDocuments(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	_, _ = s.CreateDocument(ctx, "a.json", sampleBlocks())
	_, _ = s.CreateDocument(ctx, "b.json", []blocks.Block{blocks.New(blocks.TypeHeading1, "Another", nil)})

	items, total, err := s.ListDocuments(ctx, 10, 0, "title")
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("total = %d len = %d", total, len(items))
	}
	if items[0].Title != "Another" {
		t.Errorf("title sort order: %+v", items)
	}
}

func TestSearchFindsBlockText(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	_, _ = s.CreateDocument(ctx, "find.json", []blocks.Block{
		blocks.New(blocks.TypeText, "the quokka is nocturnal", nil),
	})

	hits, err := s.Search(ctx, "quokka", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].Path != "find.json" {
		t.Errorf("hits = %+v", hits)
	}
}

func TestRenderDocument(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	_, _ = s.CreateDocument(ctx, "r.json", sampleBlocks())

	html, err := s.RenderDocument(ctx, "r.json")
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if !strings.Contains(html, "<h1>My Course</h1>") {
		t.Errorf("html = %q", html)
	}

	if _, err := s.RenderDocument(ctx, "missing.json"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("render missing err = %v", err)
	}
}
