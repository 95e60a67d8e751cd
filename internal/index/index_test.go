package index

import (
	"os"
	"testing"
	"time"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "ansuz-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM documents`).Scan(&count); err != nil {
		t.Fatalf("documents table missing: %v", err)
	}
}

func TestUpsertAndGetChecksum(t *testing.T) {
	db := testDB(t)
	row := DocumentRow{
		Path:       "hello.json",
		Title:      "Hello World",
		Checksum:   "abc123",
		BlockCount: 3,
		UpdatedAt:  time.Now(),
	}
	if err := db.UpsertDocument(row, "Hello World\nsome body text"); err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}
	cs, err := db.GetChecksum("hello.json")
	if err != nil {
		t.Fatalf("GetChecksum: %v", err)
	}
	if cs != "abc123" {
		t.Errorf("checksum = %q, want %q", cs, "abc123")
	}
}

func TestGetDocument(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDocument(DocumentRow{Path: "d.json", Title: "Doc", Checksum: "1", BlockCount: 2, UpdatedAt: time.Now()}, "body")

	d, err := db.GetDocument("d.json")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if d == nil || d.Title != "Doc" || d.BlockCount != 2 {
		t.Errorf("row = %+v", d)
	}

	missing, err := db.GetDocument("nope.json")
	if err != nil {
		t.Fatalf("GetDocument missing: %v", err)
	}
	if missing != nil {
		t.Errorf("missing row = %+v, want nil", missing)
	}
}

func TestListDocuments(t *testing.T) {
	db := testDB(t)
	base := time.Now()
	_ = db.UpsertDocument(DocumentRow{Path: "b.json", Title: "Bravo", Checksum: "1", UpdatedAt: base.Add(-time.Hour)}, "")
	_ = db.UpsertDocument(DocumentRow{Path: "a.json", Title: "alpha", Checksum: "2", UpdatedAt: base}, "")
	_ = db.UpsertDocument(DocumentRow{Path: "c.json", Title: "Charlie", Checksum: "3", UpdatedAt: base.Add(-2 * time.Hour)}, "")

	rows, total, err := db.ListDocuments(10, 0, "")
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if total != 3 || len(rows) != 3 {
		t.Fatalf("total = %d rows = %d, want 3/3", total, len(rows))
	}
	if rows[0].Path != "a.json" {
		t.Errorf("default sort should put newest first, got %s", rows[0].Path)
	}

	rows, _, err = db.ListDocuments(10, 0, "title")
	if err != nil {
		t.Fatalf("ListDocuments by title: %v", err)
	}
	if rows[0].Title != "alpha" || rows[2].Title != "Charlie" {
		t.Errorf("title sort order wrong: %+v", rows)
	}

	rows, total, err = db.ListDocuments(2, 2, "")
	if err != nil {
		t.Fatalf("ListDocuments page: %v", err)
	}
	if total != 3 || len(rows) != 1 {
		t.Errorf("page total = %d rows = %d, want 3/1", total, len(rows))
	}
}

func TestDeleteDocument(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDocument(DocumentRow{Path: "del.json", Checksum: "x", UpdatedAt: time.Now()}, "body")

	if err := db.DeleteDocument("del.json"); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	cs, _ := db.GetChecksum("del.json")
	if cs != "" {
		t.Errorf("deleted document still has checksum %q", cs)
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertDocument(DocumentRow{Path: "up.json", Title: "Old", Checksum: "1", BlockCount: 1, UpdatedAt: now}, "old body")
	_ = db.UpsertDocument(DocumentRow{Path: "up.json", Title: "New", Checksum: "2", BlockCount: 5, UpdatedAt: now}, "new body")

	cs, _ := db.GetChecksum("up.json")
	if cs != "2" {
		t.Errorf("checksum = %q, want %q", cs, "2")
	}
	d, _ := db.GetDocument("up.json")
	if d == nil || d.Title != "New" || d.BlockCount != 5 {
		t.Errorf("row = %+v", d)
	}
}

func TestGetChecksum_NotFound(t *testing.T) {
	db := testDB(t)
	cs, err := db.GetChecksum("nonexistent.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs != "" {
		t.Errorf("expected empty checksum, got %q", cs)
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDocument(DocumentRow{Path: "s.json", Title: "Search Me", Checksum: "1", UpdatedAt: time.Now()}, "uniqueword appears here")

	results, err := db.Search("uniqueword", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Path != "s.json" {
		t.Errorf("search results = %+v, want 1 hit for s.json", results)
	}
}

func TestAllChecksums(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertDocument(DocumentRow{Path: "a.json", Checksum: "1", UpdatedAt: time.Now()}, "")
	_ = db.UpsertDocument(DocumentRow{Path: "b.json", Checksum: "2", UpdatedAt: time.Now()}, "")

	m, err := db.AllChecksums()
	if err != nil {
		t.Fatalf("AllChecksums: %v", err)
	}
	if len(m) != 2 || m["a.json"] != "1" || m["b.json"] != "2" {
		t.Errorf("checksums = %v", m)
	}
}
