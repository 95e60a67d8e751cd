package editor

import (
	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/blocks"
)

// Key identifies a keyboard command routed through the orchestrator. Plain
// character input never reaches this layer; it stays inside the per-block
// editing surface.
type Key string

// Keyboard commands.
const (
	KeyEnter     Key = "enter"
	KeyBackspace Key = "backspace"
	KeySlash     Key = "/"
)

// KeyContext describes the caret situation inside the focused block at the
// moment the key was pressed.
type KeyContext struct {
	AtStart bool // caret at the very start of the block
	Empty   bool // block has no content yet
}

// KeyResult reports what a keyboard command did.
type KeyResult struct {
	// Inserted is the newly created block after a paragraph break, if any.
	Inserted *blocks.Block
	// Deleted is true when the command removed the block.
	Deleted bool
	// LiteralNewline is true when the key should insert a line break into
	// the block's own content instead of splitting the document (code
	// blocks opt out of block-splitting).
	LiteralNewline bool
	// MenuOpened is true when the command menu was opened at this block.
	MenuOpened bool
}

// HandleKey applies the document-level keyboard policy for the given block:
//
//   - Enter on a non-code block inserts a new text block after it and moves
//     focus there; inside a code block it is a literal line break.
//   - Backspace at the start of an empty, non-last block deletes it and
//     moves focus to the previous block.
//   - The menu trigger as the first character of an empty block opens the
//     block type menu anchored at that block.
func (e *Editor) HandleKey(id string, k Key, ctx KeyContext) (KeyResult, error) {
	i, ok := e.indexOf(id)
	if !ok {
		return KeyResult{}, apperr.ErrNotFound
	}

	switch k {
	case KeyEnter:
		if e.list[i].Type == blocks.TypeCode {
			return KeyResult{LiteralNewline: true}, nil
		}
		nb, err := e.InsertAfter(id, blocks.TypeText)
		if err != nil {
			return KeyResult{}, err
		}
		return KeyResult{Inserted: &nb}, nil

	case KeyBackspace:
		if !ctx.AtStart || !ctx.Empty || len(e.list) == 1 {
			return KeyResult{}, nil
		}
		if err := e.Delete(id); err != nil {
			return KeyResult{}, err
		}
		return KeyResult{Deleted: true}, nil

	case KeySlash:
		if ctx.Empty {
			e.openMenu(id)
			return KeyResult{MenuOpened: true}, nil
		}
		return KeyResult{}, nil
	}

	return KeyResult{}, nil
}
