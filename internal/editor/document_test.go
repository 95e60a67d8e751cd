package editor

import (
	"errors"
	"testing"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/blocks"
)

func newTestEditor(types ...blocks.BlockType) *Editor {
	list := make([]blocks.Block, len(types))
	for i, t := range types {
		list[i] = blocks.New(t, "", nil)
	}
	return New(list)
}

func ids(e *Editor) []string {
	bs := e.Blocks()
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.ID
	}
	return out
}

func TestNewEmptyStartsWithDefault(t *testing.T) {
	e := New(nil)
	if e.Len() != 1 {
		t.Fatalf("len = %d, want 1", e.Len())
	}
	if b := e.Blocks()[0]; b.Type != blocks.TypeText || b.Content != "" {
		t.Errorf("starting block = %s %q", b.Type, b.Content)
	}
}

func TestInsertAfter(t *testing.T) {
	e := newTestEditor(blocks.TypeText, blocks.TypeText)
	first := ids(e)[0]

	nb, err := e.InsertAfter(first, blocks.TypeHeading1)
	if err != nil {
		t.Fatalf("InsertAfter: %v", err)
	}
	if e.Len() != 3 {
		t.Fatalf("len = %d, want 3", e.Len())
	}
	if got := ids(e)[1]; got != nb.ID {
		t.Errorf("new block at index 1 = %s, want %s", got, nb.ID)
	}
	if e.FocusedID() != nb.ID || e.SelectedID() != nb.ID {
		t.Error("new block must be focused and selected")
	}
}

func TestInsertAfterUnknownAnchorIsNoop(t *testing.T) {
	e := newTestEditor(blocks.TypeText)
	before := ids(e)
	_, err := e.InsertAfter("nope", blocks.TypeText)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	after := ids(e)
	if len(after) != len(before) || after[0] != before[0] {
		t.Error("list mutated on unknown anchor")
	}
}

func TestDeleteLastBlockClearsInstead(t *testing.T) {
	e := New([]blocks.Block{blocks.New(blocks.TypeText, "keep me", nil)})
	id := ids(e)[0]
	if err := e.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if e.Len() != 1 {
		t.Fatalf("len = %d, want 1", e.Len())
	}
	b := e.Blocks()[0]
	if b.ID != id || b.Content != "" {
		t.Errorf("block = %s %q, want same id with empty content", b.ID, b.Content)
	}
}

func TestDeleteMovesFocusToPrevious(t *testing.T) {
	e := newTestEditor(blocks.TypeText, blocks.TypeText, blocks.TypeText)
	all := ids(e)
	if err := e.Delete(all[1]); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if e.FocusedID() != all[0] {
		t.Errorf("focus = %s, want previous block %s", e.FocusedID(), all[0])
	}

	// Deleting the first block focuses the new first.
	if err := e.Delete(all[0]); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if e.FocusedID() != all[2] {
		t.Errorf("focus = %s, want first remaining %s", e.FocusedID(), all[2])
	}
}

func TestDuplicate(t *testing.T) {
	e := New([]blocks.Block{blocks.New(blocks.TypeCode, "x := 1", &blocks.CodeMetadata{Language: "go", ShowLineNumbers: true})})
	src := ids(e)[0]

	dup, err := e.Duplicate(src)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	if dup.ID == src {
		t.Error("duplicate must get a new id")
	}
	if dup.Type != blocks.TypeCode || dup.Content != "x := 1" {
		t.Errorf("duplicate = %s %q", dup.Type, dup.Content)
	}
	meta, ok := dup.Metadata.(*blocks.CodeMetadata)
	if !ok || meta.Language != "go" {
		t.Errorf("duplicate metadata = %#v", dup.Metadata)
	}
	if e.FocusedID() != dup.ID {
		t.Error("focus must move to the duplicate")
	}
	// Metadata must not be shared.
	ce, err := e.Code(dup.ID, nil)
	if err != nil {
		t.Fatalf("Code: %v", err)
	}
	if err := ce.SetLanguage("python"); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	orig, _ := e.Block(src)
	if orig.Metadata.(*blocks.CodeMetadata).Language != "go" {
		t.Error("editing the duplicate changed the original's metadata")
	}
}

func TestMoveUpDown(t *testing.T) {
	e := newTestEditor(blocks.TypeText, blocks.TypeText, blocks.TypeText)
	all := ids(e)

	if err := e.MoveUp(all[0]); err != nil {
		t.Fatalf("MoveUp at top: %v", err)
	}
	if got := ids(e); got[0] != all[0] {
		t.Error("MoveUp at top must be a no-op")
	}

	if err := e.MoveDown(all[0]); err != nil {
		t.Fatalf("MoveDown: %v", err)
	}
	if got := ids(e); got[0] != all[1] || got[1] != all[0] {
		t.Errorf("order after MoveDown = %v", got)
	}

	if err := e.MoveDown(all[2]); err != nil {
		t.Fatalf("MoveDown at bottom: %v", err)
	}
	if got := ids(e); got[2] != all[2] {
		t.Error("MoveDown at bottom must be a no-op")
	}
}

func TestConvertTypeProseFamily(t *testing.T) {
	e := New([]blocks.Block{blocks.New(blocks.TypeText, "hello", nil)})
	id := ids(e)[0]

	if err := e.ConvertType(id, blocks.TypeHeading2); err != nil {
		t.Fatalf("ConvertType: %v", err)
	}
	b, _ := e.Block(id)
	if b.Type != blocks.TypeHeading2 || b.Content != "hello" {
		t.Errorf("block = %s %q", b.Type, b.Content)
	}
}

func TestConvertTypeRejectsNonProse(t *testing.T) {
	e := newTestEditor(blocks.TypeTable, blocks.TypeText)
	all := ids(e)

	if err := e.ConvertType(all[0], blocks.TypeText); !errors.Is(err, ErrNotConvertible) {
		t.Errorf("table->text err = %v, want ErrNotConvertible", err)
	}
	if err := e.ConvertType(all[1], blocks.TypeQuiz); !errors.Is(err, ErrNotConvertible) {
		t.Errorf("text->quiz err = %v, want ErrNotConvertible", err)
	}
	b, _ := e.Block(all[0])
	if b.Type != blocks.TypeTable {
		t.Error("rejected conversion must not mutate")
	}
}

func TestUpdateContentBumpsUpdatedAt(t *testing.T) {
	e := New([]blocks.Block{blocks.New(blocks.TypeText, "a", nil)})
	id := ids(e)[0]
	before, _ := e.Block(id)

	if err := e.UpdateContent(id, "b", &blocks.TextMetadata{Alignment: blocks.AlignRight}); err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}
	after, _ := e.Block(id)
	if after.Content != "b" {
		t.Errorf("content = %q", after.Content)
	}
	if after.UpdatedAt.Before(before.UpdatedAt) {
		t.Error("UpdatedAt must not go backwards")
	}
	if m, ok := after.Metadata.(*blocks.TextMetadata); !ok || m.Alignment != blocks.AlignRight {
		t.Errorf("metadata = %#v", after.Metadata)
	}
}

func TestUpdateContentRejectsWrongMetadataShape(t *testing.T) {
	e := newTestEditor(blocks.TypeText)
	id := ids(e)[0]
	err := e.UpdateContent(id, "x", &blocks.VideoMetadata{URL: "u"})
	if err == nil {
		t.Fatal("video metadata on a text block must be rejected")
	}
	b, _ := e.Block(id)
	if b.Content == "x" {
		t.Error("rejected update must not mutate content")
	}
}

func TestReorder(t *testing.T) {
	e := newTestEditor(blocks.TypeText, blocks.TypeHeading1, blocks.TypeCode, blocks.TypeQuote)
	all := ids(e)

	if err := e.Reorder(0, 2); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	want := []string{all[1], all[2], all[0], all[3]}
	got := ids(e)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	if err := e.Reorder(3, 0); err != nil {
		t.Fatalf("Reorder back: %v", err)
	}
	if got := ids(e)[0]; got != all[3] {
		t.Errorf("first = %s, want %s", got, all[3])
	}

	if err := e.Reorder(0, 9); err == nil {
		t.Error("out-of-range reorder must fail")
	}
}

func TestOnChangeEmitsSnapshots(t *testing.T) {
	e := newTestEditor(blocks.TypeText)
	id := ids(e)[0]

	var calls int
	var last []blocks.Block
	e.SetOnChange(func(snapshot []blocks.Block) {
		calls++
		last = snapshot
	})

	if err := e.UpdateContent(id, "one", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := e.InsertAfter(id, blocks.TypeDivider); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if len(last) != 2 || last[0].Content != "one" {
		t.Errorf("last snapshot = %+v", last)
	}
	// The snapshot must be detached from editor state.
	last[0].Content = "tampered"
	b, _ := e.Block(id)
	if b.Content != "one" {
		t.Error("snapshot aliases editor state")
	}
}

func TestFocusAndSelectionAreExclusive(t *testing.T) {
	e := newTestEditor(blocks.TypeText, blocks.TypeText)
	all := ids(e)

	if err := e.Focus(all[0]); err != nil {
		t.Fatal(err)
	}
	if err := e.Focus(all[1]); err != nil {
		t.Fatal(err)
	}
	if e.FocusedID() != all[1] {
		t.Error("only the most recently focused block may be focused")
	}
	e.Blur()
	if e.FocusedID() != "" {
		t.Error("Blur must clear focus")
	}
	if err := e.Select(all[0]); err != nil {
		t.Fatal(err)
	}
	e.ClearSelection()
	if e.SelectedID() != "" {
		t.Error("ClearSelection must clear selection")
	}
	if err := e.Focus("nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Focus unknown = %v", err)
	}
}
