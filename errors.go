package iohook

import "fmt"

// Error is a stable numeric error code mirroring libuiohook's
// UIOHOOK_ERROR_* taxonomy, so callers across platforms can switch on a
// known value instead of matching error strings.
type Error uint8

// Error code space. Values are stable across releases.
const (
	ErrSuccess Error = 0x00
	ErrFailure Error = 0x01

	// System level errors.
	ErrOutOfMemory   Error = 0x02
	ErrPostTextNull  Error = 0x03

	// X11 specific errors.
	ErrXOpenDisplay         Error = 0x20
	ErrXRecordNotFound      Error = 0x21
	ErrXRecordAllocRange    Error = 0x22
	ErrXRecordCreateContext Error = 0x23
	ErrXRecordEnableContext Error = 0x24
	ErrXRecordGetContext    Error = 0x25

	// Windows specific errors.
	ErrSetWindowsHookEx     Error = 0x30
	ErrGetModuleHandle      Error = 0x31
	ErrCreateInvisibleWindow Error = 0x32

	// Darwin specific errors.
	ErrAXAPIDisabled        Error = 0x40
	ErrCreateEventPort       Error = 0x41
	ErrCreateRunLoopSource  Error = 0x42
	ErrGetRunLoop           Error = 0x43
	ErrCreateObserver       Error = 0x44
)

var errorText = map[Error]string{
	ErrSuccess:               "success",
	ErrFailure:               "generic failure",
	ErrOutOfMemory:           "out of memory",
	ErrPostTextNull:          "post_text called with nil text",
	ErrXOpenDisplay:          "could not open X display",
	ErrXRecordNotFound:       "X RECORD extension not found",
	ErrXRecordAllocRange:     "X RECORD range allocation failed",
	ErrXRecordCreateContext:  "X RECORD context creation failed",
	ErrXRecordEnableContext:  "X RECORD context enable failed",
	ErrXRecordGetContext:     "X RECORD get-context failed",
	ErrSetWindowsHookEx:      "SetWindowsHookEx failed",
	ErrGetModuleHandle:       "could not resolve module HINSTANCE",
	ErrCreateInvisibleWindow: "could not create invisible window",
	ErrAXAPIDisabled:         "accessibility API access not granted",
	ErrCreateEventPort:       "CGEventTap creation failed",
	ErrCreateRunLoopSource:   "CFRunLoopSource creation failed",
	ErrGetRunLoop:            "could not obtain the main CFRunLoop",
	ErrCreateObserver:        "CFRunLoopObserver creation failed",
}

// Error implements the error interface.
func (e Error) Error() string {
	if s, ok := errorText[e]; ok {
		return s
	}
	return fmt.Sprintf("iohook: unknown error code 0x%02X", uint8(e))
}

// IsSuccess reports whether e represents ErrSuccess.
func (e Error) IsSuccess() bool {
	return e == ErrSuccess
}
