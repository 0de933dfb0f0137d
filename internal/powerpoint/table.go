package powerpoint

import (
	"fmt"

	ole "github.com/go-ole/go-ole"
)

// Table wraps the table behind a table shape.
type Table struct {
	disp *ole.IDispatch
}

// Dimensions returns the table's row and column counts.
func (t *Table) Dimensions() (rows, cols int, err error) {
	rowsColl, err := t.rows()
	if err != nil {
		return 0, 0, err
	}
	defer release(rowsColl)
	if rows, err = collectionCount(rowsColl); err != nil {
		return 0, 0, err
	}

	colsColl, err := t.columns()
	if err != nil {
		return 0, 0, err
	}
	defer release(colsColl)
	if cols, err = collectionCount(colsColl); err != nil {
		return 0, 0, err
	}
	return rows, cols, nil
}

// CellText returns the text of the 1-based cell.
func (t *Table) CellText(row, col int) (string, error) {
	textRange, err := t.cellTextRange(row, col)
	if err != nil {
		return "", err
	}
	defer textRange.Release()
	return textRange.Text()
}

// SetCellText replaces the text of the 1-based cell.
func (t *Table) SetCellText(row, col int, text string) error {
	textRange, err := t.cellTextRange(row, col)
	if err != nil {
		return err
	}
	defer textRange.Release()
	return textRange.SetText(text)
}

// Contents reads the whole table as rows of cell text.
func (t *Table) Contents() ([][]string, error) {
	rows, cols, err := t.Dimensions()
	if err != nil {
		return nil, err
	}

	out := make([][]string, 0, rows)
	for r := 1; r <= rows; r++ {
		rowText := make([]string, 0, cols)
		for c := 1; c <= cols; c++ {
			text, err := t.CellText(r, c)
			if err != nil {
				return nil, err
			}
			rowText = append(rowText, text)
		}
		out = append(out, rowText)
	}
	return out, nil
}

// CellShape returns the shape behind the 1-based cell, through which
// fills and fonts are set.
func (t *Table) CellShape(row, col int) (*Shape, error) {
	cell, err := t.cell(row, col)
	if err != nil {
		return nil, err
	}
	defer release(cell)

	disp, err := getDispatch(cell, "Shape")
	if err != nil {
		return nil, err
	}
	return &Shape{disp: disp}, nil
}

// InsertRow adds a row before the 1-based index, or at the end when
// before is 0.
func (t *Table) InsertRow(before int) error {
	rows, err := t.rows()
	if err != nil {
		return err
	}
	defer release(rows)

	if before > 0 {
		return t.addTo(rows, before)
	}
	return t.addTo(rows, -1)
}

// InsertColumn adds a column before the 1-based index, or at the end
// when before is 0.
func (t *Table) InsertColumn(before int) error {
	cols, err := t.columns()
	if err != nil {
		return err
	}
	defer release(cols)

	if before > 0 {
		return t.addTo(cols, before)
	}
	return t.addTo(cols, -1)
}

// DeleteRow removes the 1-based row.
func (t *Table) DeleteRow(index int) error {
	rows, err := t.rows()
	if err != nil {
		return err
	}
	defer release(rows)
	return t.deleteFrom(rows, index, "row")
}

// DeleteColumn removes the 1-based column.
func (t *Table) DeleteColumn(index int) error {
	cols, err := t.columns()
	if err != nil {
		return err
	}
	defer release(cols)
	return t.deleteFrom(cols, index, "column")
}

// MergeCells merges the rectangle spanned by the two 1-based cells.
func (t *Table) MergeCells(row1, col1, row2, col2 int) error {
	first, err := t.cell(row1, col1)
	if err != nil {
		return err
	}
	defer release(first)

	second, err := t.cell(row2, col2)
	if err != nil {
		return err
	}
	defer release(second)
	return call(first, "Merge", second)
}

// SetColumnWidth sets the width of the 1-based column in points.
func (t *Table) SetColumnWidth(col int, width float64) error {
	cols, err := t.columns()
	if err != nil {
		return err
	}
	defer release(cols)

	column, err := t.itemChecked(cols, col, "column")
	if err != nil {
		return err
	}
	defer release(column)
	return put(column, "Width", width)
}

// SetRowHeight sets the height of the 1-based row in points.
func (t *Table) SetRowHeight(row int, height float64) error {
	rows, err := t.rows()
	if err != nil {
		return err
	}
	defer release(rows)

	rowDisp, err := t.itemChecked(rows, row, "row")
	if err != nil {
		return err
	}
	defer release(rowDisp)
	return put(rowDisp, "Height", height)
}

// Release frees the underlying handle.
func (t *Table) Release() {
	release(t.disp)
	t.disp = nil
}

func (t *Table) rows() (*ole.IDispatch, error) {
	return getDispatch(t.disp, "Rows")
}

func (t *Table) columns() (*ole.IDispatch, error) {
	return getDispatch(t.disp, "Columns")
}

func (t *Table) cell(row, col int) (*ole.IDispatch, error) {
	rows, cols, err := t.Dimensions()
	if err != nil {
		return nil, err
	}
	if row < 1 || row > rows || col < 1 || col > cols {
		return nil, fmt.Errorf("cell (%d,%d) is out of range; the table is %dx%d", row, col, rows, cols)
	}
	return callDispatch(t.disp, "Cell", row, col)
}

func (t *Table) cellTextRange(row, col int) (*TextRange, error) {
	cell, err := t.cell(row, col)
	if err != nil {
		return nil, err
	}
	defer release(cell)

	shape, err := getDispatch(cell, "Shape")
	if err != nil {
		return nil, err
	}
	defer release(shape)

	frame, err := getDispatch(shape, "TextFrame")
	if err != nil {
		return nil, err
	}
	defer release(frame)

	disp, err := getDispatch(frame, "TextRange")
	if err != nil {
		return nil, err
	}
	return &TextRange{disp: disp}, nil
}

func (t *Table) addTo(coll *ole.IDispatch, before int) error {
	var (
		added *ole.IDispatch
		err   error
	)
	if before > 0 {
		added, err = callDispatch(coll, "Add", before)
	} else {
		added, err = callDispatch(coll, "Add")
	}
	if err != nil {
		return err
	}
	release(added)
	return nil
}

func (t *Table) deleteFrom(coll *ole.IDispatch, index int, kind string) error {
	item, err := t.itemChecked(coll, index, kind)
	if err != nil {
		return err
	}
	defer release(item)
	return call(item, "Delete")
}

func (t *Table) itemChecked(coll *ole.IDispatch, index int, kind string) (*ole.IDispatch, error) {
	count, err := collectionCount(coll)
	if err != nil {
		return nil, err
	}
	if index < 1 || index > count {
		return nil, fmt.Errorf("%s %d is out of range; the table has %d %ss", kind, index, count, kind)
	}
	return collectionItem(coll, index)
}
