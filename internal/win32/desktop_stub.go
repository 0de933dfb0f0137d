//go:build !windows

package win32

import "time"

// DismissDialog is a no-op on platforms without a native desktop.
func DismissDialog(windowClass string, pause time.Duration) {}
