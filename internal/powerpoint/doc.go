// Package powerpoint is the object layer over the PowerPoint
// automation model. It wraps raw IDispatch handles in typed structs
// (Application, Presentation, Slide, Shape, ...) whose methods map
// one-to-one onto automation properties and methods.
//
// None of these types are safe to touch off the automation thread.
// Providers never hold them directly; they go through Client, which
// builds closures around the typed layer and runs them on the bridge.
package powerpoint
