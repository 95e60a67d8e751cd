package editor

import (
	"fmt"

	"github.com/starford/ansuz/internal/blocks"
)

// Indent is the fixed-width indent inserted by the code block's indent key.
const Indent = "  "

// Clipboard is the host clipboard contract used by the code block's copy
// control. It receives the raw source string, never highlighted markup.
type Clipboard interface {
	WriteText(text string) error
}

// CodeEditor edits a code block as plain text.
type CodeEditor struct {
	ed        *Editor
	id        string
	clipboard Clipboard
}

// Code returns a code editor for the given block. clipboard may be nil when
// the copy control is not wired.
func (e *Editor) Code(id string, clipboard Clipboard) (*CodeEditor, error) {
	b, err := e.Block(id)
	if err != nil {
		return nil, err
	}
	if b.Type != blocks.TypeCode {
		return nil, fmt.Errorf("editor: block %s is %s, not a code block", id, b.Type)
	}
	return &CodeEditor{ed: e, id: id, clipboard: clipboard}, nil
}

// InsertIndent inserts the fixed indent at the caret position of content and
// returns the new content and caret. The indent key never moves focus out of
// the block.
func InsertIndent(content string, caret int) (string, int) {
	if caret < 0 {
		caret = 0
	}
	if caret > len(content) {
		caret = len(content)
	}
	return content[:caret] + Indent + content[caret:], caret + len(Indent)
}

// InsertNewline inserts a literal line break at the caret (the Enter
// behaviour inside code blocks).
func InsertNewline(content string, caret int) (string, int) {
	if caret < 0 {
		caret = 0
	}
	if caret > len(content) {
		caret = len(content)
	}
	return content[:caret] + "\n" + content[caret:], caret + 1
}

// SetSource replaces the code block's source text.
func (c *CodeEditor) SetSource(src string) error {
	return c.ed.UpdateContent(c.id, src, nil)
}

// SetLanguage changes the declared language; only allow-listed languages are
// accepted.
func (c *CodeEditor) SetLanguage(lang string) error {
	if !blocks.LanguageSupported(lang) {
		return fmt.Errorf("editor: language %q is not supported", lang)
	}
	return c.updateMeta(func(m *blocks.CodeMetadata) { m.Language = lang })
}

// SetFilename sets the optional filename shown in the block header.
func (c *CodeEditor) SetFilename(name string) error {
	return c.updateMeta(func(m *blocks.CodeMetadata) { m.Filename = name })
}

// ToggleLineNumbers flips the line-numbers display flag.
func (c *CodeEditor) ToggleLineNumbers() error {
	return c.updateMeta(func(m *blocks.CodeMetadata) { m.ShowLineNumbers = !m.ShowLineNumbers })
}

// SetTheme changes the highlight theme used for preview display.
func (c *CodeEditor) SetTheme(theme string) error {
	return c.updateMeta(func(m *blocks.CodeMetadata) { m.Theme = theme })
}

// Copy writes the raw source string to the host clipboard.
func (c *CodeEditor) Copy() error {
	if c.clipboard == nil {
		return fmt.Errorf("editor: no clipboard available")
	}
	b, err := c.ed.Block(c.id)
	if err != nil {
		return err
	}
	return c.clipboard.WriteText(b.Content)
}

func (c *CodeEditor) updateMeta(mutate func(*blocks.CodeMetadata)) error {
	b, err := c.ed.Block(c.id)
	if err != nil {
		return err
	}
	meta, _ := b.Metadata.(*blocks.CodeMetadata)
	if meta == nil {
		meta = &blocks.CodeMetadata{Language: "javascript", ShowLineNumbers: true, Theme: "dark"}
	}
	mutate(meta)
	return c.ed.UpdateContent(c.id, b.Content, meta)
}
