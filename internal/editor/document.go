// Package editor implements the document editing layer: an orchestrator that
// owns the ordered block list of one document, plus per-type block editors
// that produce content and metadata updates through it.
//
// All mutations are synchronous and single-writer; the only asynchronous
// collaborator is the autosave debouncer, which subscribes to change
// snapshots via SetOnChange.
package editor

import (
	"errors"
	"fmt"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/blocks"
)

// ErrNotConvertible is returned by ConvertType when either side of the
// conversion is outside the prose family. Converting a block that carries
// type-specific metadata would strand it, so such conversions are rejected.
var ErrNotConvertible = errors.New("editor: block type is not convertible")

// ChangeFunc receives a complete snapshot of the block list after each
// settled edit.
type ChangeFunc func(snapshot []blocks.Block)

// Editor owns the ordered block list for one document and dispatches
// structural edits. At most one block is focused and at most one selected at
// a time.
type Editor struct {
	list     []blocks.Block
	selected string
	focused  string
	menu     menuState
	onChange ChangeFunc
}

// New creates an editor over the given block list. An empty or nil list
// starts from the canonical default document.
func New(list []blocks.Block) *Editor {
	if len(list) == 0 {
		list = blocks.DefaultBlocks()
	}
	copied := make([]blocks.Block, len(list))
	for i := range list {
		copied[i] = list[i].Clone()
	}
	return &Editor{list: copied}
}

// Load replaces the document with a freshly decoded serialized form.
func Load(serialized string) *Editor {
	return New(blocks.Decode(serialized))
}

// SetOnChange registers the snapshot callback invoked after every mutation.
func (e *Editor) SetOnChange(fn ChangeFunc) {
	e.onChange = fn
}

// Blocks returns a deep copy of the current block list.
func (e *Editor) Blocks() []blocks.Block {
	out := make([]blocks.Block, len(e.list))
	for i := range e.list {
		out[i] = e.list[i].Clone()
	}
	return out
}

// Serialize encodes the current block list to its persisted form.
func (e *Editor) Serialize() (string, error) {
	return blocks.Encode(e.list)
}

// Len returns the number of blocks in the document.
func (e *Editor) Len() int { return len(e.list) }

// FocusedID returns the id of the focused block, or "".
func (e *Editor) FocusedID() string { return e.focused }

// SelectedID returns the id of the selected block, or "".
func (e *Editor) SelectedID() string { return e.selected }

// Focus makes the given block the single focused block.
func (e *Editor) Focus(id string) error {
	if _, ok := e.indexOf(id); !ok {
		return apperr.ErrNotFound
	}
	e.focused = id
	return nil
}

// Blur clears focus (the document lost focus entirely).
func (e *Editor) Blur() { e.focused = "" }

// Select makes the given block the single selected block.
func (e *Editor) Select(id string) error {
	if _, ok := e.indexOf(id); !ok {
		return apperr.ErrNotFound
	}
	e.selected = id
	return nil
}

// ClearSelection deselects any selected block.
func (e *Editor) ClearSelection() { e.selected = "" }

// Block returns a copy of the block with the given id.
func (e *Editor) Block(id string) (blocks.Block, error) {
	i, ok := e.indexOf(id)
	if !ok {
		return blocks.Block{}, apperr.ErrNotFound
	}
	return e.list[i].Clone(), nil
}

// InsertAfter creates a new default block of type t immediately after the
// anchor block. The new block becomes both selected and focused. An unknown
// anchor leaves the list untouched.
func (e *Editor) InsertAfter(anchorID string, t blocks.BlockType) (blocks.Block, error) {
	if !blocks.Known(t) {
		return blocks.Block{}, fmt.Errorf("editor: unknown block type %q", t)
	}
	i, ok := e.indexOf(anchorID)
	if !ok {
		return blocks.Block{}, apperr.ErrNotFound
	}
	nb := blocks.New(t, "", nil)
	e.list = append(e.list, blocks.Block{})
	copy(e.list[i+2:], e.list[i+1:])
	e.list[i+1] = nb
	e.selected = nb.ID
	e.focused = nb.ID
	e.emit()
	return nb.Clone(), nil
}

// Delete removes a block. Deleting the document's only block clears its
// content in place instead, preserving the at-least-one-block invariant.
// Otherwise focus moves to the preceding block (or the new first block).
func (e *Editor) Delete(id string) error {
	i, ok := e.indexOf(id)
	if !ok {
		return apperr.ErrNotFound
	}
	if len(e.list) == 1 {
		e.list[0].Content = ""
		e.list[0].Touch()
		e.emit()
		return nil
	}
	e.list = append(e.list[:i], e.list[i+1:]...)
	if e.selected == id {
		e.selected = ""
	}
	focusIdx := i - 1
	if focusIdx < 0 {
		focusIdx = 0
	}
	e.focused = e.list[focusIdx].ID
	e.emit()
	return nil
}

// Duplicate inserts a copy of the block (new id, same type, content and
// metadata) immediately after it and moves focus to the copy.
func (e *Editor) Duplicate(id string) (blocks.Block, error) {
	i, ok := e.indexOf(id)
	if !ok {
		return blocks.Block{}, apperr.ErrNotFound
	}
	src := e.list[i]
	dup := blocks.New(src.Type, src.Content, nil)
	if src.Metadata != nil {
		dup.Metadata = src.Clone().Metadata
	} else {
		dup.Metadata = nil
	}
	e.list = append(e.list, blocks.Block{})
	copy(e.list[i+2:], e.list[i+1:])
	e.list[i+1] = dup
	e.selected = dup.ID
	e.focused = dup.ID
	e.emit()
	return dup.Clone(), nil
}

// MoveUp swaps the block with its predecessor. No-op at the top.
func (e *Editor) MoveUp(id string) error {
	i, ok := e.indexOf(id)
	if !ok {
		return apperr.ErrNotFound
	}
	if i == 0 {
		return nil
	}
	e.list[i-1], e.list[i] = e.list[i], e.list[i-1]
	e.emit()
	return nil
}

// MoveDown swaps the block with its successor. No-op at the bottom.
func (e *Editor) MoveDown(id string) error {
	i, ok := e.indexOf(id)
	if !ok {
		return apperr.ErrNotFound
	}
	if i == len(e.list)-1 {
		return nil
	}
	e.list[i], e.list[i+1] = e.list[i+1], e.list[i]
	e.emit()
	return nil
}

// ConvertType changes the block's type in place, preserving content, id and
// creation time. Only prose-family conversions (text, headings, quote) are
// allowed; anything else returns ErrNotConvertible without mutating.
func (e *Editor) ConvertType(id string, newType blocks.BlockType) error {
	i, ok := e.indexOf(id)
	if !ok {
		return apperr.ErrNotFound
	}
	if !blocks.Prose(e.list[i].Type) || !blocks.Prose(newType) {
		return ErrNotConvertible
	}
	e.list[i].Type = newType
	e.list[i].Touch()
	e.emit()
	return nil
}

// UpdateContent replaces a block's content and, when meta is non-nil, its
// metadata. The metadata shape must match the block's type.
func (e *Editor) UpdateContent(id, content string, meta blocks.Metadata) error {
	i, ok := e.indexOf(id)
	if !ok {
		return apperr.ErrNotFound
	}
	if meta != nil {
		probe := e.list[i]
		probe.Metadata = meta
		if err := probe.Validate(); err != nil {
			return err
		}
		e.list[i].Metadata = meta
	}
	e.list[i].Content = content
	e.list[i].Touch()
	e.emit()
	return nil
}

// Reorder moves the block at fromIndex to toIndex as one atomic splice,
// preserving the relative order of all other blocks.
func (e *Editor) Reorder(fromIndex, toIndex int) error {
	n := len(e.list)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n {
		return fmt.Errorf("editor: reorder index out of range (%d -> %d of %d)", fromIndex, toIndex, n)
	}
	if fromIndex == toIndex {
		return nil
	}
	moved := e.list[fromIndex]
	rest := append(e.list[:fromIndex], e.list[fromIndex+1:]...)
	e.list = append(rest[:toIndex], append([]blocks.Block{moved}, rest[toIndex:]...)...)
	e.emit()
	return nil
}

func (e *Editor) indexOf(id string) (int, bool) {
	for i := range e.list {
		if e.list[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (e *Editor) emit() {
	if e.onChange != nil {
		e.onChange(e.Blocks())
	}
}
