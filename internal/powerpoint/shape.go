package powerpoint

import (
	"fmt"

	ole "github.com/go-ole/go-ole"
)

// Shape wraps one shape.
type Shape struct {
	disp *ole.IDispatch
}

// ShapeInfo is the inventory record tools return for a shape.
type ShapeInfo struct {
	Index    int     `json:"index"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Left     float64 `json:"left"`
	Top      float64 `json:"top"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	HasText  bool    `json:"has_text"`
	Text     string  `json:"text,omitempty"`
}

// msoShapeType values worth naming in tool output.
var shapeTypeNames = map[int]string{
	1:  "auto_shape",
	2:  "callout",
	3:  "chart",
	4:  "comment",
	5:  "freeform",
	6:  "group",
	7:  "embedded_object",
	9:  "line",
	11: "linked_picture",
	13: "picture",
	14: "placeholder",
	15: "text_effect",
	16: "media",
	17: "text_box",
	19: "table",
	24: "smart_art",
}

// Info reads the shape's inventory record.
func (s *Shape) Info() (ShapeInfo, error) {
	var info ShapeInfo
	var err error

	if info.Index, err = s.ZOrderPosition(); err != nil {
		return info, err
	}
	if info.Name, err = s.Name(); err != nil {
		return info, err
	}
	typeCode, err := getInt(s.disp, "Type")
	if err != nil {
		return info, err
	}
	info.Type = shapeTypeNames[typeCode]
	if info.Type == "" {
		info.Type = fmt.Sprintf("shape_%d", typeCode)
	}
	if info.Left, err = getFloat(s.disp, "Left"); err != nil {
		return info, err
	}
	if info.Top, err = getFloat(s.disp, "Top"); err != nil {
		return info, err
	}
	if info.Width, err = getFloat(s.disp, "Width"); err != nil {
		return info, err
	}
	if info.Height, err = getFloat(s.disp, "Height"); err != nil {
		return info, err
	}
	if info.Rotation, err = getFloat(s.disp, "Rotation"); err != nil {
		return info, err
	}
	if info.HasText, err = s.HasTextFrame(); err != nil {
		return info, err
	}
	if info.HasText {
		text, err := s.text()
		if err != nil {
			return info, err
		}
		info.Text = text
	}
	return info, nil
}

// Name returns the shape's name.
func (s *Shape) Name() (string, error) {
	return getString(s.disp, "Name")
}

// SetName renames the shape.
func (s *Shape) SetName(name string) error {
	return put(s.disp, "Name", name)
}

// ZOrderPosition returns the shape's 1-based position in the slide's
// shape collection.
func (s *Shape) ZOrderPosition() (int, error) {
	return getInt(s.disp, "ZOrderPosition")
}

// Geometry returns left, top, width, height in points.
func (s *Shape) Geometry() (left, top, width, height float64, err error) {
	if left, err = getFloat(s.disp, "Left"); err != nil {
		return
	}
	if top, err = getFloat(s.disp, "Top"); err != nil {
		return
	}
	if width, err = getFloat(s.disp, "Width"); err != nil {
		return
	}
	height, err = getFloat(s.disp, "Height")
	return
}

// SetGeometry updates the provided parts of the shape's geometry. Nil
// fields stay untouched.
func (s *Shape) SetGeometry(left, top, width, height *float64) error {
	if left != nil {
		if err := put(s.disp, "Left", *left); err != nil {
			return err
		}
	}
	if top != nil {
		if err := put(s.disp, "Top", *top); err != nil {
			return err
		}
	}
	if width != nil {
		if err := put(s.disp, "Width", *width); err != nil {
			return err
		}
	}
	if height != nil {
		if err := put(s.disp, "Height", *height); err != nil {
			return err
		}
	}
	return nil
}

// SetRotation rotates the shape to the given angle in degrees.
func (s *Shape) SetRotation(degrees float64) error {
	return put(s.disp, "Rotation", degrees)
}

// Delete removes the shape.
func (s *Shape) Delete() error {
	return call(s.disp, "Delete")
}

// Duplicate copies the shape and returns the copy.
func (s *Shape) Duplicate() (*Shape, error) {
	dupRange, err := callDispatch(s.disp, "Duplicate")
	if err != nil {
		return nil, err
	}
	defer release(dupRange)

	disp, err := collectionItem(dupRange, 1)
	if err != nil {
		return nil, err
	}
	return &Shape{disp: disp}, nil
}

// HasTextFrame reports whether the shape can hold text.
func (s *Shape) HasTextFrame() (bool, error) {
	return getTriState(s.disp, "HasTextFrame")
}

// TextRange returns the shape's text range. Fails for shapes without
// a text frame.
func (s *Shape) TextRange() (*TextRange, error) {
	hasText, err := s.HasTextFrame()
	if err != nil {
		return nil, err
	}
	if !hasText {
		name, _ := s.Name()
		return nil, fmt.Errorf("shape %q cannot hold text", name)
	}

	frame, err := getDispatch(s.disp, "TextFrame")
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

// SetAutoSize sets the text frame's auto-size mode.
func (s *Shape) SetAutoSize(mode int) error {
	frame, err := getDispatch(s.disp, "TextFrame")
	if err != nil {
		return err
	}
	defer release(frame)
	return put(frame, "AutoSize", mode)
}

// SetFillColor fills the shape with a solid color.
func (s *Shape) SetFillColor(bgr int) error {
	fill, err := getDispatch(s.disp, "Fill")
	if err != nil {
		return err
	}
	defer release(fill)

	if err := call(fill, "Solid"); err != nil {
		return err
	}
	fore, err := getDispatch(fill, "ForeColor")
	if err != nil {
		return err
	}
	defer release(fore)
	return put(fore, "RGB", bgr)
}

// SetFillTransparency sets the fill transparency, 0 opaque to 1
// invisible.
func (s *Shape) SetFillTransparency(transparency float64) error {
	fill, err := getDispatch(s.disp, "Fill")
	if err != nil {
		return err
	}
	defer release(fill)
	return put(fill, "Transparency", transparency)
}

// SetFillVisible shows or hides the fill.
func (s *Shape) SetFillVisible(visible bool) error {
	fill, err := getDispatch(s.disp, "Fill")
	if err != nil {
		return err
	}
	defer release(fill)
	return put(fill, "Visible", triState(visible))
}

// SetLineColor colors the shape's outline.
func (s *Shape) SetLineColor(bgr int) error {
	line, err := getDispatch(s.disp, "Line")
	if err != nil {
		return err
	}
	defer release(line)

	fore, err := getDispatch(line, "ForeColor")
	if err != nil {
		return err
	}
	defer release(fore)
	return put(fore, "RGB", bgr)
}

// SetLineWeight sets the outline weight in points.
func (s *Shape) SetLineWeight(points float64) error {
	line, err := getDispatch(s.disp, "Line")
	if err != nil {
		return err
	}
	defer release(line)
	return put(line, "Weight", points)
}

// SetLineVisible shows or hides the outline.
func (s *Shape) SetLineVisible(visible bool) error {
	line, err := getDispatch(s.disp, "Line")
	if err != nil {
		return err
	}
	defer release(line)
	return put(line, "Visible", triState(visible))
}

// SetShadowVisible shows or hides the shape's shadow.
func (s *Shape) SetShadowVisible(visible bool) error {
	shadow, err := getDispatch(s.disp, "Shadow")
	if err != nil {
		return err
	}
	defer release(shadow)
	return put(shadow, "Visible", triState(visible))
}

// ZOrder moves the shape in the z-order with an msoZOrderCmd.
func (s *Shape) ZOrder(cmd int) error {
	return call(s.disp, "ZOrder", cmd)
}

// HasTable reports whether the shape holds a table.
func (s *Shape) HasTable() (bool, error) {
	return getTriState(s.disp, "HasTable")
}

// Table returns the shape's table. Fails for shapes without one.
func (s *Shape) Table() (*Table, error) {
	hasTable, err := s.HasTable()
	if err != nil {
		return nil, err
	}
	if !hasTable {
		name, _ := s.Name()
		return nil, fmt.Errorf("shape %q is not a table", name)
	}

	disp, err := getDispatch(s.disp, "Table")
	if err != nil {
		return nil, err
	}
	return &Table{disp: disp}, nil
}

// Select adds the shape to the active window's selection. replace
// true starts a fresh selection.
func (s *Shape) Select(replace bool) error {
	return call(s.disp, "Select", triState(replace))
}

// Ungroup splits a group shape into its members.
func (s *Shape) Ungroup() error {
	members, err := callDispatch(s.disp, "Ungroup")
	if err != nil {
		return err
	}
	release(members)
	return nil
}

// Release frees the underlying handle.
func (s *Shape) Release() {
	release(s.disp)
	s.disp = nil
}

func (s *Shape) text() (string, error) {
	textRange, err := s.TextRange()
	if err != nil {
		return "", err
	}
	defer textRange.Release()
	return textRange.Text()
}

// Selection-based shape range operations. Grouping and alignment work
// on the window selection because the automation model wants a shape
// range, which is easiest to build by selecting.

// SelectShapes selects the given shapes in the active window.
func SelectShapes(shapes []*Shape) error {
	for i, shape := range shapes {
		if err := shape.Select(i == 0); err != nil {
			return err
		}
	}
	return nil
}

func (a *Application) selectionShapeRange() (*ole.IDispatch, error) {
	selection, err := a.Selection()
	if err != nil {
		return nil, err
	}
	defer release(selection)
	return getDispatch(selection, "ShapeRange")
}

// GroupSelection groups the currently selected shapes and returns the
// group.
func (a *Application) GroupSelection() (*Shape, error) {
	shapeRange, err := a.selectionShapeRange()
	if err != nil {
		return nil, err
	}
	defer release(shapeRange)

	disp, err := callDispatch(shapeRange, "Group")
	if err != nil {
		return nil, err
	}
	return &Shape{disp: disp}, nil
}

// AlignSelection aligns the selected shapes with an msoAlignCmd.
func (a *Application) AlignSelection(cmd int, relativeToSlide bool) error {
	shapeRange, err := a.selectionShapeRange()
	if err != nil {
		return err
	}
	defer release(shapeRange)
	return call(shapeRange, "Align", cmd, triState(relativeToSlide))
}

// DistributeSelection spreads the selected shapes evenly with an
// msoDistributeCmd.
func (a *Application) DistributeSelection(cmd int, relativeToSlide bool) error {
	shapeRange, err := a.selectionShapeRange()
	if err != nil {
		return err
	}
	defer release(shapeRange)
	return call(shapeRange, "Distribute", cmd, triState(relativeToSlide))
}
