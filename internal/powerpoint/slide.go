package powerpoint

import (
	"fmt"

	ole "github.com/go-ole/go-ole"
)

// Slide wraps one slide.
type Slide struct {
	disp *ole.IDispatch
}

// Index returns the slide's current 1-based position.
func (s *Slide) Index() (int, error) {
	return getInt(s.disp, "SlideIndex")
}

// ID returns the slide's stable identifier.
func (s *Slide) ID() (int, error) {
	return getInt(s.disp, "SlideID")
}

// Name returns the slide's name.
func (s *Slide) Name() (string, error) {
	return getString(s.disp, "Name")
}

// LayoutName returns the name of the slide's custom layout.
func (s *Slide) LayoutName() (string, error) {
	layout, err := getDispatch(s.disp, "CustomLayout")
	if err != nil {
		return "", err
	}
	defer release(layout)
	return getString(layout, "Name")
}

// Delete removes the slide.
func (s *Slide) Delete() error {
	return call(s.disp, "Delete")
}

// Duplicate copies the slide right after itself and returns the copy.
func (s *Slide) Duplicate() (*Slide, error) {
	dupRange, err := callDispatch(s.disp, "Duplicate")
	if err != nil {
		return nil, err
	}
	defer release(dupRange)

	disp, err := collectionItem(dupRange, 1)
	if err != nil {
		return nil, err
	}
	return &Slide{disp: disp}, nil
}

// MoveTo moves the slide to the given 1-based position.
func (s *Slide) MoveTo(position int) error {
	return call(s.disp, "MoveTo", position)
}

// Select selects the slide in the active window.
func (s *Slide) Select() error {
	return call(s.disp, "Select")
}

// MoveToSectionStart moves the slide to the start of the given
// 1-based section.
func (s *Slide) MoveToSectionStart(section int) error {
	return call(s.disp, "MoveToSectionStart", section)
}

// NotesText returns the speaker notes.
func (s *Slide) NotesText() (string, error) {
	notes, err := s.notesRange()
	if err != nil {
		return "", err
	}
	defer notes.Release()
	return notes.Text()
}

// SetNotesText replaces the speaker notes.
func (s *Slide) SetNotesText(text string) error {
	notes, err := s.notesRange()
	if err != nil {
		return err
	}
	defer notes.Release()
	return notes.SetText(text)
}

// SetBackgroundColor fills the slide background with a solid color and
// detaches it from the master background.
func (s *Slide) SetBackgroundColor(bgr int) error {
	fill, err := s.backgroundFill()
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

// SetBackgroundPicture fills the slide background with the image at
// path.
func (s *Slide) SetBackgroundPicture(path string) error {
	fill, err := s.backgroundFill()
	if err != nil {
		return err
	}
	defer release(fill)
	return call(fill, "UserPicture", path)
}

// ShapeCount returns the number of shapes on the slide.
func (s *Slide) ShapeCount() (int, error) {
	shapes, err := s.shapes()
	if err != nil {
		return 0, err
	}
	defer release(shapes)
	return collectionCount(shapes)
}

// Shape returns the shape at the given 1-based index.
func (s *Slide) Shape(index int) (*Shape, error) {
	shapes, err := s.shapes()
	if err != nil {
		return nil, err
	}
	defer release(shapes)

	count, err := collectionCount(shapes)
	if err != nil {
		return nil, err
	}
	if index < 1 || index > count {
		return nil, fmt.Errorf("shape %d is out of range; the slide has %d shapes", index, count)
	}

	disp, err := collectionItem(shapes, index)
	if err != nil {
		return nil, err
	}
	return &Shape{disp: disp}, nil
}

// ShapeByName returns the shape with the given name.
func (s *Slide) ShapeByName(name string) (*Shape, error) {
	shapes, err := s.shapes()
	if err != nil {
		return nil, err
	}
	defer release(shapes)

	disp, err := collectionItem(shapes, name)
	if err != nil {
		return nil, fmt.Errorf("no shape named %q on the slide", name)
	}
	return &Shape{disp: disp}, nil
}

// Shapes returns every shape on the slide in z-order.
func (s *Slide) Shapes() ([]*Shape, error) {
	shapes, err := s.shapes()
	if err != nil {
		return nil, err
	}
	defer release(shapes)

	count, err := collectionCount(shapes)
	if err != nil {
		return nil, err
	}
	out := make([]*Shape, 0, count)
	for i := 1; i <= count; i++ {
		disp, err := collectionItem(shapes, i)
		if err != nil {
			return nil, err
		}
		out = append(out, &Shape{disp: disp})
	}
	return out, nil
}

// AddShape adds an autoshape with the given msoAutoShapeType and
// geometry in points.
func (s *Slide) AddShape(shapeType int, left, top, width, height float64) (*Shape, error) {
	shapes, err := s.shapes()
	if err != nil {
		return nil, err
	}
	defer release(shapes)

	disp, err := callDispatch(shapes, "AddShape", shapeType, left, top, width, height)
	if err != nil {
		return nil, err
	}
	return &Shape{disp: disp}, nil
}

// AddLine adds a straight line between two points.
func (s *Slide) AddLine(x1, y1, x2, y2 float64) (*Shape, error) {
	shapes, err := s.shapes()
	if err != nil {
		return nil, err
	}
	defer release(shapes)

	disp, err := callDispatch(shapes, "AddLine", x1, y1, x2, y2)
	if err != nil {
		return nil, err
	}
	return &Shape{disp: disp}, nil
}

// AddTextbox adds a horizontal text box.
func (s *Slide) AddTextbox(left, top, width, height float64) (*Shape, error) {
	shapes, err := s.shapes()
	if err != nil {
		return nil, err
	}
	defer release(shapes)

	disp, err := callDispatch(shapes, "AddTextbox", msoTextOrientationHorizontal, left, top, width, height)
	if err != nil {
		return nil, err
	}
	return &Shape{disp: disp}, nil
}

// AddPicture inserts the image at path. Non-positive width and height
// keep the image's natural size.
func (s *Slide) AddPicture(path string, left, top, width, height float64) (*Shape, error) {
	shapes, err := s.shapes()
	if err != nil {
		return nil, err
	}
	defer release(shapes)

	var disp *ole.IDispatch
	if width > 0 && height > 0 {
		disp, err = callDispatch(shapes, "AddPicture", path, msoFalse, msoTrue, left, top, width, height)
	} else {
		disp, err = callDispatch(shapes, "AddPicture", path, msoFalse, msoTrue, left, top)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert picture %s: %w", path, err)
	}
	return &Shape{disp: disp}, nil
}

// AddMedia inserts the video or audio file at path.
func (s *Slide) AddMedia(path string, left, top, width, height float64) (*Shape, error) {
	shapes, err := s.shapes()
	if err != nil {
		return nil, err
	}
	defer release(shapes)

	var disp *ole.IDispatch
	if width > 0 && height > 0 {
		disp, err = callDispatch(shapes, "AddMediaObject2", path, msoFalse, msoTrue, left, top, width, height)
	} else {
		disp, err = callDispatch(shapes, "AddMediaObject2", path, msoFalse, msoTrue, left, top)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert media %s: %w", path, err)
	}
	return &Shape{disp: disp}, nil
}

// AddTable adds a table shape with the given dimensions and geometry.
func (s *Slide) AddTable(rows, cols int, left, top, width, height float64) (*Shape, error) {
	shapes, err := s.shapes()
	if err != nil {
		return nil, err
	}
	defer release(shapes)

	disp, err := callDispatch(shapes, "AddTable", rows, cols, left, top, width, height)
	if err != nil {
		return nil, err
	}
	return &Shape{disp: disp}, nil
}

// Export renders the slide to path using the given filter ("PNG",
// "JPG"). Non-positive width and height keep the native size.
func (s *Slide) Export(path, filter string, width, height int) error {
	if width > 0 && height > 0 {
		return call(s.disp, "Export", path, filter, width, height)
	}
	return call(s.disp, "Export", path, filter)
}

// Release frees the underlying handle.
func (s *Slide) Release() {
	release(s.disp)
	s.disp = nil
}

func (s *Slide) shapes() (*ole.IDispatch, error) {
	return getDispatch(s.disp, "Shapes")
}

func (s *Slide) notesRange() (*TextRange, error) {
	notesPage, err := getDispatch(s.disp, "NotesPage")
	if err != nil {
		return nil, err
	}
	defer release(notesPage)

	shapes, err := getDispatch(notesPage, "Shapes")
	if err != nil {
		return nil, err
	}
	defer release(shapes)

	placeholders, err := getDispatch(shapes, "Placeholders")
	if err != nil {
		return nil, err
	}
	defer release(placeholders)

	count, err := collectionCount(placeholders)
	if err != nil {
		return nil, err
	}
	if count < 2 {
		return nil, fmt.Errorf("the slide has no notes placeholder")
	}

	body, err := collectionItem(placeholders, 2)
	if err != nil {
		return nil, err
	}
	defer release(body)

	frame, err := getDispatch(body, "TextFrame")
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

func (s *Slide) backgroundFill() (*ole.IDispatch, error) {
	if err := put(s.disp, "FollowMasterBackground", msoFalse); err != nil {
		return nil, err
	}
	background, err := getDispatch(s.disp, "Background")
	if err != nil {
		return nil, err
	}
	defer release(background)
	return getDispatch(background, "Fill")
}
