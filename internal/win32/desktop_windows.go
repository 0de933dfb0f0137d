//go:build windows

package win32

import (
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW         = user32.NewProc("FindWindowW")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procSendInput           = user32.NewProc("SendInput")
)

const (
	vkEscape        = 0x1B
	keyEventFlagsUp = 0x0002
	inputKeyboard   = 1
)

type keyboardInput struct {
	vk        uint16
	scan      uint16
	flags     uint32
	time      uint32
	extraInfo uintptr
}

// keyInput matches the native INPUT struct. The trailing padding fills
// the union out to the size of MOUSEINPUT on both 32 and 64 bit.
type keyInput struct {
	inputType uint32
	ki        keyboardInput
	padding   [8]byte
}

// DismissDialog brings the window of the given class to the foreground
// and sends it an Escape keystroke. It is a best-effort recovery for
// modal dialogs that make the automation server reject calls; every
// step may silently fail.
func DismissDialog(windowClass string, pause time.Duration) {
	cls, err := windows.UTF16PtrFromString(windowClass)
	if err != nil {
		return
	}

	hwnd, _, _ := procFindWindowW.Call(uintptr(unsafe.Pointer(cls)), 0)
	if hwnd == 0 {
		return
	}

	procSetForegroundWindow.Call(hwnd)

	// Give the window manager a moment to move focus before injecting
	// the keystroke.
	time.Sleep(pause)

	sendEscape()
}

func sendEscape() {
	inputs := []keyInput{
		{inputType: inputKeyboard, ki: keyboardInput{vk: vkEscape}},
		{inputType: inputKeyboard, ki: keyboardInput{vk: vkEscape, flags: keyEventFlagsUp}},
	}
	procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
}
