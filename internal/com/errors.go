package com

import (
	"errors"

	ole "github.com/go-ole/go-ole"
)

// Transient busy HRESULTs. The automation server returns these while a
// modal dialog or a long native operation blocks its message pump.
const (
	hrCallRejected uintptr = 0x80010001 // RPC_E_CALL_REJECTED
	hrRetryLater   uintptr = 0x8001010A // RPC_E_SERVERCALL_RETRYLATER
)

var (
	// ErrNotRunning reports a call against a stopped bridge.
	ErrNotRunning = errors.New("automation bridge is not running")

	// ErrTimeout reports a caller that gave up waiting. The worker is
	// never interrupted; the abandoned call may still finish.
	ErrTimeout = errors.New("automation call timed out")

	// ErrNoDocument reports that no presentation is open or active.
	ErrNoDocument = errors.New("no active presentation; open or create one first")
)

// IsTransientBusy reports whether err is one of the two busy codes
// worth retrying. Every other failure propagates immediately.
func IsTransientBusy(err error) bool {
	var oleErr *ole.OleError
	if !errors.As(err, &oleErr) {
		return false
	}
	switch oleErr.Code() {
	case hrCallRejected, hrRetryLater:
		return true
	}
	if sub := oleErr.SubError(); sub != nil {
		return IsTransientBusy(sub)
	}
	return false
}
