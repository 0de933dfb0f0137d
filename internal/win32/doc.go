// Package win32 wraps the small set of native desktop calls the server
// needs outside of plain COM dispatch: apartment initialization for the
// worker thread and keystroke injection for dismissing modal dialogs.
//
// Everything here is best-effort on non-Windows builds. The apartment
// reports the library's not-implemented error and DismissDialog is a
// no-op, which keeps the module compiling and testable on any platform.
package win32
