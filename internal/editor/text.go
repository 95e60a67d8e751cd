package editor

import (
	"fmt"

	"github.com/starford/ansuz/internal/blocks"
)

// FormatCommand is an inline rich-text formatting command executed by the
// host environment's content-editable surface.
type FormatCommand string

// Inline formatting commands.
const (
	FormatBold        FormatCommand = "bold"
	FormatItalic      FormatCommand = "italic"
	FormatUnderline   FormatCommand = "underline"
	FormatStrike      FormatCommand = "strikeThrough"
	FormatLink        FormatCommand = "createLink"
	FormatClearFormat FormatCommand = "removeFormat"
)

// RichTextHost is the narrow contract to the host platform's native
// rich-text editing primitive. The editor never mutates inline markup
// itself: it executes a command and re-reads the resulting serialized HTML.
type RichTextHost interface {
	// Exec runs an inline formatting command on the current selection.
	// arg carries the command payload (e.g. the link URL for createLink).
	Exec(cmd FormatCommand, arg string) error
	// ReadHTML returns the surface's serialized rich-text content.
	ReadHTML() string
}

// TextEditor edits a prose block (text, heading, quote) through a rich-text
// host surface.
type TextEditor struct {
	ed   *Editor
	id   string
	host RichTextHost
}

// Text returns a prose editor for the given block.
func (e *Editor) Text(id string, host RichTextHost) (*TextEditor, error) {
	b, err := e.Block(id)
	if err != nil {
		return nil, err
	}
	if !blocks.Prose(b.Type) {
		return nil, fmt.Errorf("editor: block %s is %s, not a prose block", id, b.Type)
	}
	return &TextEditor{ed: e, id: id, host: host}, nil
}

// ApplyFormat executes an inline formatting command on the host surface and
// propagates the re-read content through the orchestrator.
func (t *TextEditor) ApplyFormat(cmd FormatCommand, arg string) error {
	if err := t.host.Exec(cmd, arg); err != nil {
		return err
	}
	return t.SetContent(t.host.ReadHTML())
}

// SetContent propagates an edited rich-text content string.
func (t *TextEditor) SetContent(html string) error {
	return t.ed.UpdateContent(t.id, html, nil)
}

// HasContent distinguishes "no content yet" (placeholder shown) from edited
// content.
func (t *TextEditor) HasContent() bool {
	b, err := t.ed.Block(t.id)
	return err == nil && b.Content != ""
}

// SetAlignment stores the block alignment in its text metadata.
func (t *TextEditor) SetAlignment(a blocks.Alignment) error {
	return t.updateMeta(func(m *blocks.TextMetadata) { m.Alignment = a })
}

// SetListType stores the block list style in its text metadata.
func (t *TextEditor) SetListType(l blocks.ListType) error {
	return t.updateMeta(func(m *blocks.TextMetadata) { m.ListType = l })
}

func (t *TextEditor) updateMeta(mutate func(*blocks.TextMetadata)) error {
	b, err := t.ed.Block(t.id)
	if err != nil {
		return err
	}
	meta, _ := b.Metadata.(*blocks.TextMetadata)
	if meta == nil {
		meta = &blocks.TextMetadata{}
	}
	mutate(meta)
	if err := meta.Validate(); err != nil {
		return err
	}
	return t.ed.UpdateContent(t.id, b.Content, meta)
}
