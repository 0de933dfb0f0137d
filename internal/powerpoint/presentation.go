package powerpoint

import (
	"fmt"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/slidewire/slidewire/internal/com"
)

// Presentation wraps one open presentation.
type Presentation struct {
	disp *ole.IDispatch
}

var _ com.Document = (*Presentation)(nil)

// Name returns the short file name.
func (p *Presentation) Name() (string, error) {
	return getString(p.disp, "Name")
}

// FullName returns the full path, or the short name for presentations
// that have never been saved.
func (p *Presentation) FullName() (string, error) {
	return getString(p.disp, "FullName")
}

// Path returns the directory of the file, empty for unsaved ones.
func (p *Presentation) Path() (string, error) {
	return getString(p.disp, "Path")
}

// Focus activates the presentation's first document window.
func (p *Presentation) Focus() error {
	windows, err := getDispatch(p.disp, "Windows")
	if err != nil {
		return err
	}
	defer release(windows)

	count, err := collectionCount(windows)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("presentation has no document window")
	}

	window, err := collectionItem(windows, 1)
	if err != nil {
		return err
	}
	defer release(window)
	return call(window, "Activate")
}

// Saved reports whether the presentation has unsaved changes.
func (p *Presentation) Saved() (bool, error) {
	return getTriState(p.disp, "Saved")
}

// SetSaved marks the presentation clean. Closing a clean presentation
// skips the save prompt.
func (p *Presentation) SetSaved(saved bool) error {
	return put(p.disp, "Saved", triState(saved))
}

// Save writes the presentation to its current path.
func (p *Presentation) Save() error {
	return call(p.disp, "Save")
}

// SaveAs writes the presentation to path in the given native format.
func (p *Presentation) SaveAs(path string, format int) error {
	return call(p.disp, "SaveAs", path, format, msoFalse)
}

// SaveCopyAs writes a copy to path without rebinding the presentation.
func (p *Presentation) SaveCopyAs(path string) error {
	return call(p.disp, "SaveCopyAs", path)
}

// ExportPDF writes the whole presentation as a PDF.
func (p *Presentation) ExportPDF(path string) error {
	return call(p.disp, "SaveAs", path, ppSaveAsPDF, msoFalse)
}

// ExportImages renders every slide into directory using the given
// filter ("PNG", "JPG"). Zero width and height keep the native size.
func (p *Presentation) ExportImages(directory, filter string, width, height int) error {
	if width > 0 && height > 0 {
		return call(p.disp, "Export", directory, filter, width, height)
	}
	return call(p.disp, "Export", directory, filter)
}

// Close closes the presentation. Callers that want to discard changes
// mark it saved first.
func (p *Presentation) Close() error {
	return call(p.disp, "Close")
}

// SlideCount returns the number of slides.
func (p *Presentation) SlideCount() (int, error) {
	slides, err := p.slides()
	if err != nil {
		return 0, err
	}
	defer release(slides)
	return collectionCount(slides)
}

// Slide returns the slide at the given 1-based index.
func (p *Presentation) Slide(index int) (*Slide, error) {
	slides, err := p.slides()
	if err != nil {
		return nil, err
	}
	defer release(slides)

	count, err := collectionCount(slides)
	if err != nil {
		return nil, err
	}
	if index < 1 || index > count {
		return nil, fmt.Errorf("slide %d is out of range; the presentation has %d slides", index, count)
	}

	disp, err := collectionItem(slides, index)
	if err != nil {
		return nil, err
	}
	return &Slide{disp: disp}, nil
}

// Slides returns every slide in order.
func (p *Presentation) Slides() ([]*Slide, error) {
	slides, err := p.slides()
	if err != nil {
		return nil, err
	}
	defer release(slides)

	count, err := collectionCount(slides)
	if err != nil {
		return nil, err
	}
	out := make([]*Slide, 0, count)
	for i := 1; i <= count; i++ {
		disp, err := collectionItem(slides, i)
		if err != nil {
			return nil, err
		}
		out = append(out, &Slide{disp: disp})
	}
	return out, nil
}

// AddSlide inserts a slide at the 1-based index. layoutIndex greater
// than zero picks that custom layout from the slide master; otherwise
// the slide is blank.
func (p *Presentation) AddSlide(index, layoutIndex int) (*Slide, error) {
	slides, err := p.slides()
	if err != nil {
		return nil, err
	}
	defer release(slides)

	if layoutIndex > 0 {
		layout, err := p.customLayout(layoutIndex)
		if err != nil {
			return nil, err
		}
		defer release(layout)

		disp, err := callDispatch(slides, "AddSlide", index, layout)
		if err != nil {
			return nil, err
		}
		return &Slide{disp: disp}, nil
	}

	disp, err := callDispatch(slides, "Add", index, ppLayoutBlank)
	if err != nil {
		return nil, err
	}
	return &Slide{disp: disp}, nil
}

// LayoutNames lists the slide master's custom layouts in order.
func (p *Presentation) LayoutNames() ([]string, error) {
	layouts, err := p.customLayouts()
	if err != nil {
		return nil, err
	}
	defer release(layouts)

	count, err := collectionCount(layouts)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		layout, err := collectionItem(layouts, i)
		if err != nil {
			return nil, err
		}
		name, err := getString(layout, "Name")
		release(layout)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// SlideSize returns the slide width and height in points.
func (p *Presentation) SlideSize() (width, height float64, err error) {
	setup, err := getDispatch(p.disp, "PageSetup")
	if err != nil {
		return 0, 0, err
	}
	defer release(setup)

	width, err = getFloat(setup, "SlideWidth")
	if err != nil {
		return 0, 0, err
	}
	height, err = getFloat(setup, "SlideHeight")
	if err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

// Property reads a built-in document property such as "Title" or
// "Author".
func (p *Presentation) Property(name string) (interface{}, error) {
	props, err := getDispatch(p.disp, "BuiltInDocumentProperties")
	if err != nil {
		return nil, err
	}
	defer release(props)

	item, err := collectionItem(props, name)
	if err != nil {
		return nil, fmt.Errorf("unknown document property %q", name)
	}
	defer release(item)

	v, err := oleutil.GetProperty(item, "Value")
	if err != nil {
		return nil, fmt.Errorf("Value: %w", err)
	}
	defer v.Clear()
	return v.Value(), nil
}

// SetProperty writes a built-in document property.
func (p *Presentation) SetProperty(name string, value interface{}) error {
	props, err := getDispatch(p.disp, "BuiltInDocumentProperties")
	if err != nil {
		return err
	}
	defer release(props)

	item, err := collectionItem(props, name)
	if err != nil {
		return fmt.Errorf("unknown document property %q", name)
	}
	defer release(item)
	return put(item, "Value", value)
}

// Release frees the underlying handle.
func (p *Presentation) Release() {
	release(p.disp)
	p.disp = nil
}

func (p *Presentation) slides() (*ole.IDispatch, error) {
	return getDispatch(p.disp, "Slides")
}

func (p *Presentation) customLayouts() (*ole.IDispatch, error) {
	master, err := getDispatch(p.disp, "SlideMaster")
	if err != nil {
		return nil, err
	}
	defer release(master)
	return getDispatch(master, "CustomLayouts")
}

func (p *Presentation) customLayout(index int) (*ole.IDispatch, error) {
	layouts, err := p.customLayouts()
	if err != nil {
		return nil, err
	}
	defer release(layouts)

	count, err := collectionCount(layouts)
	if err != nil {
		return nil, err
	}
	if index < 1 || index > count {
		return nil, fmt.Errorf("layout %d is out of range; the slide master has %d layouts", index, count)
	}
	return collectionItem(layouts, index)
}
