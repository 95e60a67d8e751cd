package editor

import (
	"strings"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/blocks"
)

// MenuEntry is one selectable row of the block type menu.
type MenuEntry struct {
	Type     blocks.BlockType
	Label    string
	Keywords string
}

// menuEntries lists the menu in display order.
var menuEntries = []MenuEntry{
	{blocks.TypeText, "Text", "paragraph plain"},
	{blocks.TypeHeading1, "Heading 1", "h1 title"},
	{blocks.TypeHeading2, "Heading 2", "h2 subtitle"},
	{blocks.TypeHeading3, "Heading 3", "h3"},
	{blocks.TypeImage, "Image", "picture photo upload"},
	{blocks.TypeVideo, "Video", "youtube vimeo loom embed"},
	{blocks.TypeCode, "Code", "snippet source"},
	{blocks.TypeQuote, "Quote", "blockquote citation"},
	{blocks.TypeDivider, "Divider", "separator rule hr"},
	{blocks.TypeQuiz, "Quiz", "questions test"},
	{blocks.TypeTable, "Table", "grid rows columns"},
}

type menuState struct {
	open   bool
	anchor string
	query  string
}

// MenuOpen reports whether the block type menu is showing.
func (e *Editor) MenuOpen() bool { return e.menu.open }

// MenuAnchor returns the id of the block the menu is anchored at.
func (e *Editor) MenuAnchor() string { return e.menu.anchor }

func (e *Editor) openMenu(anchorID string) {
	e.menu = menuState{open: true, anchor: anchorID}
}

// CloseMenu dismisses the menu without changing the document.
func (e *Editor) CloseMenu() {
	e.menu = menuState{}
}

// FilterMenu narrows the menu to entries matching the typed query.
func (e *Editor) FilterMenu(query string) []MenuEntry {
	e.menu.query = query
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]MenuEntry(nil), menuEntries...)
	}
	var out []MenuEntry
	for _, entry := range menuEntries {
		if strings.Contains(strings.ToLower(entry.Label), q) ||
			strings.Contains(entry.Keywords, q) ||
			strings.Contains(string(entry.Type), q) {
			out = append(out, entry)
		}
	}
	return out
}

// ConfirmMenu applies the chosen type. An empty prose anchor is converted in
// place (keeping its id and position); any other anchor gets a new block of
// the chosen type inserted after it. The affected block ends up focused and
// selected, and the menu closes.
func (e *Editor) ConfirmMenu(t blocks.BlockType) (blocks.Block, error) {
	if !e.menu.open {
		return blocks.Block{}, apperr.ErrNotFound
	}
	anchor := e.menu.anchor
	defer e.CloseMenu()

	i, ok := e.indexOf(anchor)
	if !ok {
		return blocks.Block{}, apperr.ErrNotFound
	}

	cur := e.list[i]
	if cur.Content == "" && blocks.Prose(cur.Type) {
		if blocks.Prose(t) {
			if err := e.ConvertType(anchor, t); err != nil {
				return blocks.Block{}, err
			}
		} else {
			// Re-seed the empty shell as the chosen type, keeping its
			// identity and position.
			nb := blocks.New(t, "", nil)
			nb.ID = cur.ID
			nb.CreatedAt = cur.CreatedAt
			e.list[i] = nb
			e.emit()
		}
		e.selected = cur.ID
		e.focused = cur.ID
		return e.list[i].Clone(), nil
	}

	return e.InsertAfter(anchor, t)
}
