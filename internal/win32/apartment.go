package win32

import (
	ole "github.com/go-ole/go-ole"
)

// STA is the single-threaded apartment used by the bridge worker. The
// caller must have locked its goroutine to an OS thread before calling
// Initialize, and must call Uninitialize on the same thread.
type STA struct{}

// Initialize enters a single-threaded apartment on the current thread.
func (STA) Initialize() error {
	return ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED)
}

// Uninitialize leaves the apartment entered by Initialize.
func (STA) Uninitialize() {
	ole.CoUninitialize()
}
