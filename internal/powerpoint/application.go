package powerpoint

import (
	"fmt"

	ole "github.com/go-ole/go-ole"

	"github.com/slidewire/slidewire/internal/com"
)

// Application wraps the top-level automation object.
type Application struct {
	disp *ole.IDispatch
}

var _ com.Host = (*Application)(nil)

// Ping reads a cheap property to prove the process behind the handle
// is still alive.
func (a *Application) Ping() error {
	_, err := getString(a.disp, "Name")
	return err
}

// Name returns the application name.
func (a *Application) Name() (string, error) {
	return getString(a.disp, "Name")
}

// Version returns the application version string.
func (a *Application) Version() (string, error) {
	return getString(a.disp, "Version")
}

// Build returns the application build string.
func (a *Application) Build() (string, error) {
	return getString(a.disp, "Build")
}

// Visible reports whether the main window is shown.
func (a *Application) Visible() (bool, error) {
	return getTriState(a.disp, "Visible")
}

// SetVisible shows or hides the main window.
func (a *Application) SetVisible(visible bool) error {
	state := msoFalse
	if visible {
		state = msoTrue
	}
	return put(a.disp, "Visible", state)
}

// ActiveDocument returns the active presentation.
func (a *Application) ActiveDocument() (com.Document, error) {
	disp, err := getDispatch(a.disp, "ActivePresentation")
	if err != nil {
		return nil, err
	}
	return &Presentation{disp: disp}, nil
}

// Documents returns every open presentation in collection order.
func (a *Application) Documents() ([]com.Document, error) {
	presentations, err := a.presentations()
	if err != nil {
		return nil, err
	}
	defer release(presentations)

	count, err := collectionCount(presentations)
	if err != nil {
		return nil, err
	}
	docs := make([]com.Document, 0, count)
	for i := 1; i <= count; i++ {
		item, err := collectionItem(presentations, i)
		if err != nil {
			return nil, err
		}
		docs = append(docs, &Presentation{disp: item})
	}
	return docs, nil
}

// OpenPresentations returns typed wrappers for every open
// presentation, in collection order.
func (a *Application) OpenPresentations() ([]*Presentation, error) {
	docs, err := a.Documents()
	if err != nil {
		return nil, err
	}
	out := make([]*Presentation, len(docs))
	for i, doc := range docs {
		out[i] = doc.(*Presentation)
	}
	return out, nil
}

// PresentationCount returns how many presentations are open.
func (a *Application) PresentationCount() (int, error) {
	presentations, err := a.presentations()
	if err != nil {
		return 0, err
	}
	defer release(presentations)
	return collectionCount(presentations)
}

// OpenPresentation opens the file at path. withWindow false opens it
// without a document window, which exports use for temporary copies.
func (a *Application) OpenPresentation(path string, readOnly, withWindow bool) (*Presentation, error) {
	presentations, err := a.presentations()
	if err != nil {
		return nil, err
	}
	defer release(presentations)

	disp, err := callDispatch(presentations, "Open", path, triState(readOnly), msoFalse, triState(withWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &Presentation{disp: disp}, nil
}

// NewPresentation creates a blank presentation, applying the template
// at templatePath when given.
func (a *Application) NewPresentation(templatePath string) (*Presentation, error) {
	presentations, err := a.presentations()
	if err != nil {
		return nil, err
	}
	defer release(presentations)

	disp, err := callDispatch(presentations, "Add", msoTrue)
	if err != nil {
		return nil, fmt.Errorf("failed to create presentation: %w", err)
	}
	pres := &Presentation{disp: disp}

	if templatePath != "" {
		if err := call(disp, "ApplyTemplate", templatePath); err != nil {
			pres.Release()
			return nil, fmt.Errorf("failed to apply template %s: %w", templatePath, err)
		}
	}
	return pres, nil
}

// ExecuteMso runs a named ribbon command.
func (a *Application) ExecuteMso(idMso string) error {
	bars, err := getDispatch(a.disp, "CommandBars")
	if err != nil {
		return err
	}
	defer release(bars)
	return call(bars, "ExecuteMso", idMso)
}

// Undo reverts the last interactive action.
func (a *Application) Undo() error {
	return a.ExecuteMso("Undo")
}

// Redo reapplies the last undone action.
func (a *Application) Redo() error {
	return a.ExecuteMso("Redo")
}

// GotoSlide scrolls the active window to the given 1-based slide.
func (a *Application) GotoSlide(index int) error {
	window, err := getDispatch(a.disp, "ActiveWindow")
	if err != nil {
		return err
	}
	defer release(window)

	view, err := getDispatch(window, "View")
	if err != nil {
		return err
	}
	defer release(view)
	return call(view, "GotoSlide", index)
}

// Selection returns the active window's shape selection.
func (a *Application) Selection() (*ole.IDispatch, error) {
	window, err := getDispatch(a.disp, "ActiveWindow")
	if err != nil {
		return nil, err
	}
	defer release(window)
	return getDispatch(window, "Selection")
}

// SlideShowCount returns the number of running slide show windows.
func (a *Application) SlideShowCount() (int, error) {
	windows, err := getDispatch(a.disp, "SlideShowWindows")
	if err != nil {
		return 0, err
	}
	defer release(windows)
	return collectionCount(windows)
}

// SlideShowView returns the view of the first running slide show, or
// an error when none is running.
func (a *Application) SlideShowView() (*SlideShowView, error) {
	windows, err := getDispatch(a.disp, "SlideShowWindows")
	if err != nil {
		return nil, err
	}
	defer release(windows)

	count, err := collectionCount(windows)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("no slide show is running")
	}

	window, err := collectionItem(windows, 1)
	if err != nil {
		return nil, err
	}
	defer release(window)

	view, err := getDispatch(window, "View")
	if err != nil {
		return nil, err
	}
	return &SlideShowView{disp: view}, nil
}

// Quit exits the application. The caller forgets the session handle
// afterwards.
func (a *Application) Quit() error {
	return call(a.disp, "Quit")
}

// Release frees the underlying handle.
func (a *Application) Release() {
	release(a.disp)
	a.disp = nil
}

func (a *Application) presentations() (*ole.IDispatch, error) {
	return getDispatch(a.disp, "Presentations")
}

func triState(b bool) int {
	if b {
		return msoTrue
	}
	return msoFalse
}
