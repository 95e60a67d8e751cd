package editor

import (
	"testing"

	"github.com/starford/ansuz/internal/blocks"
)

type fakeClipboard struct {
	text string
}

func (f *fakeClipboard) WriteText(text string) error {
	f.text = text
	return nil
}

func TestInsertIndent(t *testing.T) {
	content, caret := InsertIndent("ab", 1)
	if content != "a  b" || caret != 3 {
		t.Errorf("got (%q, %d)", content, caret)
	}
	// Caret clamped to bounds.
	content, caret = InsertIndent("x", 99)
	if content != "x  " || caret != 3 {
		t.Errorf("got (%q, %d)", content, caret)
	}
}

func TestInsertNewline(t *testing.T) {
	content, caret := InsertNewline("ab", 1)
	if content != "a\nb" || caret != 2 {
		t.Errorf("got (%q, %d)", content, caret)
	}
}

func TestCodeLanguageGuard(t *testing.T) {
	e := newTestEditor(blocks.TypeCode)
	c, err := e.Code(ids(e)[0], nil)
	if err != nil {
		t.Fatalf("Code: %v", err)
	}
	if err := c.SetLanguage("python"); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	if err := c.SetLanguage("brainvolt"); err == nil {
		t.Error("unlisted language must be rejected")
	}
	b, _ := e.Block(ids(e)[0])
	if b.Metadata.(*blocks.CodeMetadata).Language != "python" {
		t.Error("rejected language must not overwrite the previous one")
	}
}

func TestCodeToggleLineNumbersAndFilename(t *testing.T) {
	e := newTestEditor(blocks.TypeCode)
	id := ids(e)[0]
	c, _ := e.Code(id, nil)

	if err := c.ToggleLineNumbers(); err != nil {
		t.Fatal(err)
	}
	b, _ := e.Block(id)
	if b.Metadata.(*blocks.CodeMetadata).ShowLineNumbers {
		t.Error("toggle must flip the default true to false")
	}

	if err := c.SetFilename("main.go"); err != nil {
		t.Fatal(err)
	}
	b, _ = e.Block(id)
	if b.Metadata.(*blocks.CodeMetadata).Filename != "main.go" {
		t.Error("filename not stored")
	}
}

func TestCodeCopyWritesRawSource(t *testing.T) {
	e := newTestEditor(blocks.TypeCode)
	id := ids(e)[0]
	clip := &fakeClipboard{}
	c, _ := e.Code(id, clip)

	if err := c.SetSource("fmt.Println(\"hi\")"); err != nil {
		t.Fatal(err)
	}
	if err := c.Copy(); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if clip.text != "fmt.Println(\"hi\")" {
		t.Errorf("clipboard = %q", clip.text)
	}
}
