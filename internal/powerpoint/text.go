package powerpoint

import (
	"fmt"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// TextRange wraps a range of text in a shape's text frame.
type TextRange struct {
	disp *ole.IDispatch
}

// FontOptions carries the font attributes a format call may change.
// Nil fields stay untouched.
type FontOptions struct {
	Name      *string
	Size      *float64
	Bold      *bool
	Italic    *bool
	Underline *bool
	// Color is a BGR value from ParseHexColor.
	Color *int
}

// Text returns the range's text.
func (t *TextRange) Text() (string, error) {
	return getString(t.disp, "Text")
}

// SetText replaces the range's text.
func (t *TextRange) SetText(text string) error {
	return put(t.disp, "Text", text)
}

// Append adds text after the range.
func (t *TextRange) Append(text string) error {
	v, err := oleutil.CallMethod(t.disp, "InsertAfter", text)
	if err != nil {
		return fmt.Errorf("InsertAfter: %w", err)
	}
	v.Clear()
	return nil
}

// Length returns the number of characters in the range.
func (t *TextRange) Length() (int, error) {
	return getInt(t.disp, "Length")
}

// SetFont applies the provided font attributes to the range.
func (t *TextRange) SetFont(opts FontOptions) error {
	font, err := getDispatch(t.disp, "Font")
	if err != nil {
		return err
	}
	defer release(font)

	if opts.Name != nil {
		if err := put(font, "Name", *opts.Name); err != nil {
			return err
		}
	}
	if opts.Size != nil {
		if err := put(font, "Size", *opts.Size); err != nil {
			return err
		}
	}
	if opts.Bold != nil {
		if err := put(font, "Bold", triState(*opts.Bold)); err != nil {
			return err
		}
	}
	if opts.Italic != nil {
		if err := put(font, "Italic", triState(*opts.Italic)); err != nil {
			return err
		}
	}
	if opts.Underline != nil {
		if err := put(font, "Underline", triState(*opts.Underline)); err != nil {
			return err
		}
	}
	if opts.Color != nil {
		color, err := getDispatch(font, "Color")
		if err != nil {
			return err
		}
		defer release(color)
		if err := put(color, "RGB", *opts.Color); err != nil {
			return err
		}
	}
	return nil
}

// Find reports whether the text occurs in the range.
func (t *TextRange) Find(what string, matchCase, wholeWords bool) (bool, error) {
	v, err := oleutil.CallMethod(t.disp, "Find", what, 0, triState(matchCase), triState(wholeWords))
	if err != nil {
		return false, fmt.Errorf("Find: %w", err)
	}
	found := v.ToIDispatch() != nil
	v.Clear()
	return found, nil
}

// ReplaceAll replaces every occurrence of what and returns how many it
// replaced. The search resumes after each replacement, so replacements
// containing the needle do not loop.
func (t *TextRange) ReplaceAll(what, with string, matchCase, wholeWords bool) (int, error) {
	count := 0
	after := 0
	for {
		v, err := oleutil.CallMethod(t.disp, "Replace", what, with, after, triState(matchCase), triState(wholeWords))
		if err != nil {
			return count, fmt.Errorf("Replace: %w", err)
		}
		replaced := v.ToIDispatch()
		if replaced == nil {
			v.Clear()
			return count, nil
		}
		count++

		start, serr := getInt(replaced, "Start")
		length, lerr := getInt(replaced, "Length")
		v.Clear()
		if serr != nil {
			return count, serr
		}
		if lerr != nil {
			return count, lerr
		}
		after = start + length - 1
	}
}

// ParagraphCount returns the number of paragraphs in the range.
func (t *TextRange) ParagraphCount() (int, error) {
	paragraphs, err := callDispatch(t.disp, "Paragraphs")
	if err != nil {
		return 0, err
	}
	defer release(paragraphs)
	return collectionCount(paragraphs)
}

// Paragraphs returns the sub-range covering length paragraphs starting
// at the 1-based start.
func (t *TextRange) Paragraphs(start, length int) (*TextRange, error) {
	disp, err := callDispatch(t.disp, "Paragraphs", start, length)
	if err != nil {
		return nil, err
	}
	return &TextRange{disp: disp}, nil
}

// Bullet styles accepted by SetBulletStyle.
const (
	ppBulletNone       = 0
	ppBulletUnnumbered = 1
	ppBulletNumbered   = 2
)

// SetBulletStyle sets the bullet style ("none", "bullet", "number")
// and, when level is positive, the indent level of the range's
// paragraphs.
func (t *TextRange) SetBulletStyle(style string, level int) error {
	if level > 0 {
		if err := put(t.disp, "IndentLevel", level); err != nil {
			return err
		}
	}

	format, err := getDispatch(t.disp, "ParagraphFormat")
	if err != nil {
		return err
	}
	defer release(format)

	bullet, err := getDispatch(format, "Bullet")
	if err != nil {
		return err
	}
	defer release(bullet)

	switch style {
	case "none":
		return put(bullet, "Visible", msoFalse)
	case "bullet":
		if err := put(bullet, "Visible", msoTrue); err != nil {
			return err
		}
		return put(bullet, "Type", ppBulletUnnumbered)
	case "number":
		if err := put(bullet, "Visible", msoTrue); err != nil {
			return err
		}
		return put(bullet, "Type", ppBulletNumbered)
	default:
		return fmt.Errorf("unknown bullet style %q; supported styles: none, bullet, number", style)
	}
}

// Release frees the underlying handle.
func (t *TextRange) Release() {
	release(t.disp)
	t.disp = nil
}
