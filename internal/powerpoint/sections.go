package powerpoint

import (
	"fmt"

	ole "github.com/go-ole/go-ole"
)

// Section describes one presentation section for tool output.
type Section struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	FirstSlide int    `json:"first_slide"`
	SlideCount int    `json:"slide_count"`
}

// Sections lists the presentation's sections in order.
func (p *Presentation) Sections() ([]Section, error) {
	props, err := p.sectionProperties()
	if err != nil {
		return nil, err
	}
	defer release(props)

	count, err := collectionCount(props)
	if err != nil {
		return nil, err
	}

	sections := make([]Section, 0, count)
	for i := 1; i <= count; i++ {
		name, err := getString(props, "Name", i)
		if err != nil {
			return nil, err
		}
		firstSlide, err := callInt(props, "FirstSlide", i)
		if err != nil {
			return nil, err
		}
		slideCount, err := callInt(props, "SlidesCount", i)
		if err != nil {
			return nil, err
		}
		sections = append(sections, Section{
			Index:      i,
			Name:       name,
			FirstSlide: firstSlide,
			SlideCount: slideCount,
		})
	}
	return sections, nil
}

// AddSectionBeforeSlide inserts a section starting at the given slide
// and returns its 1-based index.
func (p *Presentation) AddSectionBeforeSlide(slideIndex int, name string) (int, error) {
	props, err := p.sectionProperties()
	if err != nil {
		return 0, err
	}
	defer release(props)
	return callInt(props, "AddBeforeSlide", slideIndex, name)
}

// RenameSection renames the section at the 1-based index.
func (p *Presentation) RenameSection(index int, name string) error {
	props, err := p.sectionProperties()
	if err != nil {
		return err
	}
	defer release(props)

	if err := p.checkSectionIndex(props, index); err != nil {
		return err
	}
	return call(props, "Rename", index, name)
}

// MoveSection moves the section at the 1-based index to a new
// 1-based position.
func (p *Presentation) MoveSection(index, position int) error {
	props, err := p.sectionProperties()
	if err != nil {
		return err
	}
	defer release(props)

	if err := p.checkSectionIndex(props, index); err != nil {
		return err
	}
	return call(props, "Move", index, position)
}

// DeleteSection removes the section at the 1-based index. deleteSlides
// true removes the section's slides as well.
func (p *Presentation) DeleteSection(index int, deleteSlides bool) error {
	props, err := p.sectionProperties()
	if err != nil {
		return err
	}
	defer release(props)

	if err := p.checkSectionIndex(props, index); err != nil {
		return err
	}
	return call(props, "Delete", index, deleteSlides)
}

func (p *Presentation) checkSectionIndex(props *ole.IDispatch, index int) error {
	count, err := collectionCount(props)
	if err != nil {
		return err
	}
	if index < 1 || index > count {
		return fmt.Errorf("section %d is out of range; the presentation has %d sections", index, count)
	}
	return nil
}

func (p *Presentation) sectionProperties() (*ole.IDispatch, error) {
	return getDispatch(p.disp, "SectionProperties")
}
