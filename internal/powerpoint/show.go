package powerpoint

import (
	ole "github.com/go-ole/go-ole"
)

// ppSlideShowRangeType
const (
	ppShowAll        = 1
	ppShowSlideRange = 2
)

// StartShowOptions control how a slide show starts.
type StartShowOptions struct {
	// FromSlide starts the show at this 1-based slide; 0 starts at the
	// beginning.
	FromSlide int
	// Kiosk runs the show full screen without speaker controls.
	Kiosk bool
	// Loop restarts the show when it reaches the end.
	Loop bool
}

// StartSlideShow runs the presentation as a slide show.
func (p *Presentation) StartSlideShow(opts StartShowOptions) error {
	settings, err := getDispatch(p.disp, "SlideShowSettings")
	if err != nil {
		return err
	}
	defer release(settings)

	showType := ppShowTypeSpeaker
	if opts.Kiosk {
		showType = ppShowTypeKiosk
	}
	if err := put(settings, "ShowType", showType); err != nil {
		return err
	}
	if err := put(settings, "LoopUntilStopped", triState(opts.Loop)); err != nil {
		return err
	}

	if opts.FromSlide > 0 {
		count, err := p.SlideCount()
		if err != nil {
			return err
		}
		if err := put(settings, "RangeType", ppShowSlideRange); err != nil {
			return err
		}
		if err := put(settings, "StartingSlide", opts.FromSlide); err != nil {
			return err
		}
		if err := put(settings, "EndingSlide", count); err != nil {
			return err
		}
	} else {
		if err := put(settings, "RangeType", ppShowAll); err != nil {
			return err
		}
	}

	window, err := callDispatch(settings, "Run")
	if err != nil {
		return err
	}
	release(window)
	return nil
}

// SlideShowView drives a running slide show.
type SlideShowView struct {
	disp *ole.IDispatch
}

// Next advances the show by one step.
func (v *SlideShowView) Next() error {
	return call(v.disp, "Next")
}

// Previous steps the show back.
func (v *SlideShowView) Previous() error {
	return call(v.disp, "Previous")
}

// GotoSlide jumps the show to the given 1-based slide.
func (v *SlideShowView) GotoSlide(index int) error {
	return call(v.disp, "GotoSlide", index)
}

// Exit ends the show.
func (v *SlideShowView) Exit() error {
	return call(v.disp, "Exit")
}

// State returns the ppSlideShowState value.
func (v *SlideShowView) State() (int, error) {
	return getInt(v.disp, "State")
}

// SetState changes the show state, e.g. to black or white screen.
func (v *SlideShowView) SetState(state int) error {
	return put(v.disp, "State", state)
}

// Position returns the current 1-based show position.
func (v *SlideShowView) Position() (int, error) {
	return getInt(v.disp, "CurrentShowPosition")
}

// CurrentSlideIndex returns the index of the slide on screen.
func (v *SlideShowView) CurrentSlideIndex() (int, error) {
	slide, err := getDispatch(v.disp, "Slide")
	if err != nil {
		return 0, err
	}
	defer release(slide)
	return getInt(slide, "SlideIndex")
}

// Release frees the underlying handle.
func (v *SlideShowView) Release() {
	release(v.disp)
	v.disp = nil
}

// Black and white screen states exposed to the show provider.
const (
	ShowStateBlack = ppSlideShowBlackScreen
	ShowStateWhite = ppSlideShowWhiteScreen
)
