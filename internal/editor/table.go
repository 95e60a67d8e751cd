package editor

import (
	"errors"
	"fmt"

	"github.com/starford/ansuz/internal/blocks"
)

// Table structural guards.
var (
	// ErrLastRow rejects deleting the only remaining row.
	ErrLastRow = errors.New("editor: table must keep at least one row")
	// ErrLastColumn rejects deleting the only remaining column.
	ErrLastColumn = errors.New("editor: table must keep at least one column")
)

// NavKey is a cell navigation key.
type NavKey string

// Cell navigation keys.
const (
	NavUp       NavKey = "up"
	NavDown     NavKey = "down"
	NavLeft     NavKey = "left"
	NavRight    NavKey = "right"
	NavTab      NavKey = "tab"
	NavShiftTab NavKey = "shift-tab"
)

// TableEditor edits a table block's rectangular grid. Every structural edit
// re-derives the grid so all rows keep the same cell count.
type TableEditor struct {
	ed *Editor
	id string
}

// Table returns a table editor for the given block.
func (e *Editor) Table(id string) (*TableEditor, error) {
	b, err := e.Block(id)
	if err != nil {
		return nil, err
	}
	if b.Type != blocks.TypeTable {
		return nil, fmt.Errorf("editor: block %s is %s, not a table block", id, b.Type)
	}
	return &TableEditor{ed: e, id: id}, nil
}

// Dims returns the current row and column counts.
func (t *TableEditor) Dims() (rows, cols int) {
	m := t.meta()
	rows = len(m.Rows)
	if rows > 0 {
		cols = len(m.Rows[0])
	}
	return rows, cols
}

// SetCell replaces the text content of one cell.
func (t *TableEditor) SetCell(row, col int, content string) error {
	return t.update(func(m *blocks.TableMetadata) error {
		if err := checkCell(m, row, col); err != nil {
			return err
		}
		m.Rows[row][col].Content = content
		return nil
	})
}

// SetCellStyle sets a cell's background color and alignment.
func (t *TableEditor) SetCellStyle(row, col int, background string, align blocks.Alignment) error {
	return t.update(func(m *blocks.TableMetadata) error {
		if err := checkCell(m, row, col); err != nil {
			return err
		}
		m.Rows[row][col].BackgroundColor = background
		m.Rows[row][col].Alignment = align
		return nil
	})
}

// InsertRow inserts an empty row at the given index (0..rows inserts before
// that position; rows appends).
func (t *TableEditor) InsertRow(at int) error {
	return t.update(func(m *blocks.TableMetadata) error {
		rows, cols := len(m.Rows), rowWidth(m)
		if at < 0 || at > rows {
			return fmt.Errorf("editor: row index %d out of range", at)
		}
		row := make([]blocks.TableCell, cols)
		m.Rows = append(m.Rows, nil)
		copy(m.Rows[at+1:], m.Rows[at:])
		m.Rows[at] = row
		return nil
	})
}

// DeleteRow removes the row at the given index; the last remaining row is
// protected.
func (t *TableEditor) DeleteRow(at int) error {
	return t.update(func(m *blocks.TableMetadata) error {
		if len(m.Rows) <= 1 {
			return ErrLastRow
		}
		if at < 0 || at >= len(m.Rows) {
			return fmt.Errorf("editor: row index %d out of range", at)
		}
		m.Rows = append(m.Rows[:at], m.Rows[at+1:]...)
		return nil
	})
}

// InsertColumn inserts an empty column at the given index across every row.
// When the table has a header row, the new header cell gets a placeholder.
func (t *TableEditor) InsertColumn(at int) error {
	return t.update(func(m *blocks.TableMetadata) error {
		cols := rowWidth(m)
		if at < 0 || at > cols {
			return fmt.Errorf("editor: column index %d out of range", at)
		}
		for r := range m.Rows {
			cell := blocks.TableCell{}
			if r == 0 && m.HasHeader {
				cell.Content = fmt.Sprintf("Header %d", at+1)
			}
			row := append(m.Rows[r], blocks.TableCell{})
			copy(row[at+1:], row[at:])
			row[at] = cell
			m.Rows[r] = row
		}
		return nil
	})
}

// DeleteColumn removes the column at the given index from every row; the
// last remaining column is protected.
func (t *TableEditor) DeleteColumn(at int) error {
	return t.update(func(m *blocks.TableMetadata) error {
		cols := rowWidth(m)
		if cols <= 1 {
			return ErrLastColumn
		}
		if at < 0 || at >= cols {
			return fmt.Errorf("editor: column index %d out of range", at)
		}
		for r := range m.Rows {
			m.Rows[r] = append(m.Rows[r][:at], m.Rows[r][at+1:]...)
		}
		return nil
	})
}

// SetHasHeader toggles rendering of row 0 as a header row.
func (t *TableEditor) SetHasHeader(on bool) error {
	return t.update(func(m *blocks.TableMetadata) error {
		m.HasHeader = on
		return nil
	})
}

// SetBorderStyle changes the table border style.
func (t *TableEditor) SetBorderStyle(s blocks.BorderStyle) error {
	return t.update(func(m *blocks.TableMetadata) error {
		m.BorderStyle = s
		return nil
	})
}

// SetAlternatingColors toggles zebra striping.
func (t *TableEditor) SetAlternatingColors(on bool) error {
	return t.update(func(m *blocks.TableMetadata) error {
		m.AlternatingColors = on
		return nil
	})
}

// Navigate resolves cell-to-cell keyboard navigation from (row, col).
// Tab wraps from the last column to the first column of the next row;
// Shift+Tab wraps from the first column to the last column of the previous
// row. Edge rows have no further wrap. ok is false when the move would leave
// the grid.
func (t *TableEditor) Navigate(row, col int, key NavKey) (nextRow, nextCol int, ok bool) {
	rows, cols := t.Dims()
	if rows == 0 || cols == 0 || row < 0 || row >= rows || col < 0 || col >= cols {
		return row, col, false
	}
	switch key {
	case NavUp:
		if row > 0 {
			return row - 1, col, true
		}
	case NavDown:
		if row < rows-1 {
			return row + 1, col, true
		}
	case NavLeft:
		if col > 0 {
			return row, col - 1, true
		}
	case NavRight:
		if col < cols-1 {
			return row, col + 1, true
		}
	case NavTab:
		if col < cols-1 {
			return row, col + 1, true
		}
		if row < rows-1 {
			return row + 1, 0, true
		}
	case NavShiftTab:
		if col > 0 {
			return row, col - 1, true
		}
		if row > 0 {
			return row - 1, cols - 1, true
		}
	}
	return row, col, false
}

func (t *TableEditor) meta() *blocks.TableMetadata {
	b, err := t.ed.Block(t.id)
	if err == nil {
		if m, ok := b.Metadata.(*blocks.TableMetadata); ok {
			return m
		}
	}
	return &blocks.TableMetadata{}
}

func (t *TableEditor) update(mutate func(*blocks.TableMetadata) error) error {
	b, err := t.ed.Block(t.id)
	if err != nil {
		return err
	}
	meta, ok := b.Metadata.(*blocks.TableMetadata)
	if !ok || meta == nil {
		return fmt.Errorf("editor: table block %s has no grid", t.id)
	}
	if err := mutate(meta); err != nil {
		return err
	}
	if err := meta.Validate(); err != nil {
		return err
	}
	return t.ed.UpdateContent(t.id, b.Content, meta)
}

func rowWidth(m *blocks.TableMetadata) int {
	if len(m.Rows) == 0 {
		return 0
	}
	return len(m.Rows[0])
}

func checkCell(m *blocks.TableMetadata, row, col int) error {
	if row < 0 || row >= len(m.Rows) || col < 0 || col >= len(m.Rows[row]) {
		return fmt.Errorf("editor: cell (%d,%d) out of range", row, col)
	}
	return nil
}
