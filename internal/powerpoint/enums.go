package powerpoint

import (
	"fmt"
	"sort"
	"strings"
)

// msoTriState
const (
	msoTrue  = -1
	msoFalse = 0
)

// ppSlideLayout
const (
	ppLayoutTitle     = 1
	ppLayoutText      = 2
	ppLayoutTitleOnly = 11
	ppLayoutBlank     = 12
)

// ppSaveAsFileType
const (
	ppSaveAsPresentation           = 1
	ppSaveAsJPG                    = 17
	ppSaveAsPNG                    = 18
	ppSaveAsOpenXMLPresentation    = 24
	ppSaveAsOpenXMLTemplate        = 26
	ppSaveAsOpenXMLShow            = 28
	ppSaveAsPDF                    = 32
	ppSaveAsXPS                    = 33
	ppSaveAsOpenXMLPictureFreeform = 36
)

// saveFormats maps the format names tools accept onto ppSaveAsFileType
// values.
var saveFormats = map[string]int{
	"pptx": ppSaveAsOpenXMLPresentation,
	"ppt":  ppSaveAsPresentation,
	"potx": ppSaveAsOpenXMLTemplate,
	"ppsx": ppSaveAsOpenXMLShow,
	"pdf":  ppSaveAsPDF,
	"xps":  ppSaveAsXPS,
	"png":  ppSaveAsPNG,
	"jpg":  ppSaveAsJPG,
}

// SaveFormat resolves a format name ("pptx", "pdf", ...) to its native
// file type constant.
func SaveFormat(name string) (int, error) {
	format, ok := saveFormats[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown save format %q; supported formats: %s", name, strings.Join(sortedKeys(saveFormats), ", "))
	}
	return format, nil
}

// Slide image export filters understood by Slide.Export.
var exportFilters = map[string]string{
	"png": "PNG",
	"jpg": "JPG",
	"gif": "GIF",
	"bmp": "BMP",
}

// ExportFilter resolves an image format name to the native export
// filter string.
func ExportFilter(name string) (string, error) {
	filter, ok := exportFilters[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("unknown image format %q; supported formats: %s", name, strings.Join(sortedKeys(exportFilters), ", "))
	}
	return filter, nil
}

// msoAutoShapeType, trimmed to the shapes tools expose.
var autoShapeTypes = map[string]int{
	"rectangle":           1,
	"parallelogram":       2,
	"trapezoid":           3,
	"diamond":             4,
	"rounded_rectangle":   5,
	"octagon":             6,
	"isosceles_triangle":  7,
	"right_triangle":      8,
	"oval":                9,
	"hexagon":             10,
	"cross":               11,
	"regular_pentagon":    12,
	"can":                 13,
	"cube":                14,
	"donut":               18,
	"no_symbol":           19,
	"heart":               21,
	"lightning_bolt":      22,
	"sun":                 23,
	"moon":                24,
	"arc":                 25,
	"left_bracket":        29,
	"right_bracket":       30,
	"left_brace":          31,
	"right_brace":         32,
	"right_arrow":         33,
	"left_arrow":          34,
	"up_arrow":            35,
	"down_arrow":          36,
	"left_right_arrow":    37,
	"up_down_arrow":       38,
	"bent_arrow":          41,
	"u_turn_arrow":        42,
	"chevron":             52,
	"block_arc":           20,
	"smiley_face":         17,
	"star_4":              91,
	"star_5":              92,
	"star_8":              93,
	"star_16":             94,
	"star_24":             95,
	"star_32":             96,
	"rounded_callout":     106,
	"oval_callout":        107,
	"cloud_callout":       108,
	"flowchart_process":   61,
	"flowchart_decision":  63,
	"flowchart_terminator": 69,
}

// AutoShapeType resolves a shape name to its msoAutoShapeType value.
func AutoShapeType(name string) (int, error) {
	shapeType, ok := autoShapeTypes[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown shape type %q; supported types: %s", name, strings.Join(sortedKeys(autoShapeTypes), ", "))
	}
	return shapeType, nil
}

// AutoShapeTypeNames lists the accepted shape type names.
func AutoShapeTypeNames() []string {
	return sortedKeys(autoShapeTypes)
}

// msoZOrderCmd
var zOrderCommands = map[string]int{
	"bring_to_front": 0,
	"send_to_back":   1,
	"bring_forward":  2,
	"send_backward":  3,
}

// ZOrderCommand resolves a z-order action name to its msoZOrderCmd
// value.
func ZOrderCommand(name string) (int, error) {
	cmd, ok := zOrderCommands[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown z-order action %q; supported actions: %s", name, strings.Join(sortedKeys(zOrderCommands), ", "))
	}
	return cmd, nil
}

// msoAlignCmd
var alignCommands = map[string]int{
	"left":   0,
	"center": 1,
	"right":  2,
	"top":    3,
	"middle": 4,
	"bottom": 5,
}

// AlignCommand resolves an alignment name to its msoAlignCmd value.
func AlignCommand(name string) (int, error) {
	cmd, ok := alignCommands[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown alignment %q; supported alignments: %s", name, strings.Join(sortedKeys(alignCommands), ", "))
	}
	return cmd, nil
}

// msoDistributeCmd
const (
	msoDistributeHorizontally = 0
	msoDistributeVertically   = 1
)

// DistributeCommand resolves a distribution axis name to its
// msoDistributeCmd constant.
func DistributeCommand(name string) (int, error) {
	switch strings.ToLower(name) {
	case "horizontal":
		return msoDistributeHorizontally, nil
	case "vertical":
		return msoDistributeVertically, nil
	default:
		return 0, fmt.Errorf("unknown distribution axis %q; use horizontal or vertical", name)
	}
}

// ppSlideShowState
const (
	ppSlideShowRunning     = 1
	ppSlideShowPaused      = 2
	ppSlideShowBlackScreen = 3
	ppSlideShowWhiteScreen = 4
	ppSlideShowDone        = 5
)

// SlideShowStateName renders a ppSlideShowState value for tool output.
func SlideShowStateName(state int) string {
	switch state {
	case ppSlideShowRunning:
		return "running"
	case ppSlideShowPaused:
		return "paused"
	case ppSlideShowBlackScreen:
		return "black"
	case ppSlideShowWhiteScreen:
		return "white"
	case ppSlideShowDone:
		return "done"
	default:
		return fmt.Sprintf("unknown (%d)", state)
	}
}

// ppSlideShowType
const (
	ppShowTypeSpeaker = 1
	ppShowTypeKiosk   = 3
)

// TextFrame auto-size modes.
const (
	ppAutoSizeNone           = 0
	ppAutoSizeShapeToFitText = 1
)

// AutoSizeMode resolves an autofit mode name to its ppAutoSize
// constant.
func AutoSizeMode(name string) (int, error) {
	switch strings.ToLower(name) {
	case "none":
		return ppAutoSizeNone, nil
	case "fit":
		return ppAutoSizeShapeToFitText, nil
	default:
		return 0, fmt.Errorf("unknown autofit mode %q; use none or fit", name)
	}
}

// msoTextOrientation
const msoTextOrientationHorizontal = 1

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
