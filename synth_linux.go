//go:build linux

package iohook

/*
#cgo pkg-config: x11 xtst
#include <X11/Xlib.h>
#include <X11/extensions/XTest.h>
#include <stdlib.h>

static void fake_key(Display *d, unsigned int keycode, int press) {
	XTestFakeKeyEvent(d, keycode, press, 0);
	XFlush(d);
}

static void fake_button(Display *d, unsigned int button, int press) {
	XTestFakeButtonEvent(d, button, press, 0);
	XFlush(d);
}

static void fake_motion_abs(Display *d, int x, int y) {
	XTestFakeMotionEvent(d, -1, x, y, 0);
	XFlush(d);
}

static void fake_wheel(Display *d, unsigned int button, int clicks) {
	for (int i = 0; i < clicks; i++) {
		XTestFakeButtonEvent(d, button, True, 0);
		XTestFakeButtonEvent(d, button, False, 0);
	}
	XFlush(d);
}

static KeyCode unused_keycode(Display *d) {
	int min, max;
	XDisplayKeycodes(d, &min, &max);
	int keysymsPerKeycode;
	KeySym *syms = XGetKeyboardMapping(d, (KeyCode) min, max - min + 1, &keysymsPerKeycode);
	KeyCode found = 0;
	for (int kc = max; kc >= min && found == 0; kc--) {
		int allNone = 1;
		for (int j = 0; j < keysymsPerKeycode; j++) {
			if (syms[(kc - min) * keysymsPerKeycode + j] != NoSymbol) {
				allNone = 0;
				break;
			}
		}
		if (allNone) {
			found = (KeyCode) kc;
		}
	}
	XFree(syms);
	return found;
}

// remap_keycode sets all 4 shift levels of kc to the same keysym
// (or to NoSymbol when restoring), per spec.md §4.7's post_text dance.
static void remap_keycode(Display *d, KeyCode kc, KeySym sym) {
	KeySym syms[4] = { sym, sym, sym, sym };
	XChangeKeyboardMapping(d, kc, 4, syms, 1);
	XSync(d, False);
}

static int screen_count(Display *d) {
	return XScreenCount(d);
}

static void screen_size(Display *d, int i, int *w, int *h) {
	*w = XDisplayWidth(d, i);
	*h = XDisplayHeight(d, i);
}
*/
import "C"

import (
	"sync"
	"time"
)

var postTextDelayNanos uint32 = 50_000_000

func nativeGetPostTextDelayX11() uint32 { return postTextDelayNanos }

func nativeSetPostTextDelayX11(delayNanos uint32) {
	postTextDelayNanos = delayNanos
}

func nativePostEvent(evt *VirtualEvent) error {
	display := openLinuxDisplay()
	if display == nil {
		return ErrXOpenDisplay
	}
	defer closeLinuxDisplay(display)

	switch evt.Type {
	case EventKeyPressed, EventKeyReleased:
		native, ok := newCodeTable().VirtualToNative(evt.Keyboard.KeyCode)
		if !ok {
			return ErrFailure
		}
		C.fake_key(display, C.uint(native), boolToCInt(evt.Type == EventKeyPressed))
		return nil
	case EventMousePressed, EventMouseReleased, EventMousePressedIgnoreCoords, EventMouseReleasedIgnoreCoords:
		if evt.Type == EventMousePressed || evt.Type == EventMouseReleased {
			C.fake_motion_abs(display, C.int(evt.Mouse.X), C.int(evt.Mouse.Y))
		}
		C.fake_button(display, C.uint(linuxXButton(evt.Mouse.Button)),
			boolToCInt(evt.Type == EventMousePressed || evt.Type == EventMousePressedIgnoreCoords))
		return nil
	case EventMouseMoved, EventMouseDragged:
		C.fake_motion_abs(display, C.int(evt.Mouse.X), C.int(evt.Mouse.Y))
		return nil
	case EventMouseMovedRelativeToCursor:
		C.XTestFakeRelativeMotionEvent(display, C.int(evt.Mouse.X), C.int(evt.Mouse.Y), 0)
		C.XFlush(display)
		return nil
	case EventMouseWheel:
		button := xButtonWheelDown
		if evt.Wheel.Rotation > 0 {
			button = xButtonWheelUp
		}
		if evt.Wheel.Direction == WheelHorizontal {
			if evt.Wheel.Rotation > 0 {
				button = xButtonWheelRight
			} else {
				button = xButtonWheelLeft
			}
		}
		C.fake_wheel(display, C.uint(button), C.int(evt.Wheel.Delta))
		return nil
	default:
		return ErrFailure
	}
}

func linuxXButton(button uint16) int {
	switch button {
	case MouseButton1:
		return xButtonLeft
	case MouseButton2:
		return xButtonRight
	case MouseButton3:
		return xButtonMiddle
	default:
		return xButtonLeft
	}
}

func boolToCInt(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

// nativePostText synthesizes text without requiring the characters to
// already exist in the active keymap: it finds an unused keycode,
// remaps it to each rune in turn, fakes the press/release, then remaps
// back, mirroring x11/post_event.c's post_text dance. postTextDelayNanos
// paces each remap so X has time to propagate the mapping change.
var postTextMu sync.Mutex

func nativePostText(text string) error {
	postTextMu.Lock()
	defer postTextMu.Unlock()

	display := openLinuxDisplay()
	if display == nil {
		return ErrXOpenDisplay
	}
	defer closeLinuxDisplay(display)

	kc := C.unused_keycode(display)
	if kc == 0 {
		return ErrFailure
	}

	delay := time.Duration(postTextDelayNanos) * time.Nanosecond
	for _, r := range text {
		C.remap_keycode(display, kc, C.KeySym(r)|0x01000000) // Unicode codepoint keysym (XK_Unicode offset)
		time.Sleep(delay)
		C.fake_key(display, C.uint(kc), 1)
		C.fake_key(display, C.uint(kc), 0)
		time.Sleep(delay)
	}
	// Restore the borrowed keycode to NoSymbol so it doesn't keep
	// reporting the last injected character if something else presses it.
	C.remap_keycode(display, kc, C.NoSymbol)
	return nil
}

func nativeCreateScreenInfo() []ScreenData {
	display := openLinuxDisplay()
	if display == nil {
		return nil
	}
	defer closeLinuxDisplay(display)

	n := int(C.screen_count(display))
	screens := make([]ScreenData, 0, n)
	for i := 0; i < n; i++ {
		var w, h C.int
		C.screen_size(display, C.int(i), &w, &h)
		screens = append(screens, ScreenData{
			Number: uint8(i + 1),
			Width:  uint16(w),
			Height: uint16(h),
		})
	}
	return screens
}

func nativeGetAutoRepeatRate() (int32, error) {
	return 0, nil
}

func nativeGetAutoRepeatDelay() (int32, error) {
	return 0, nil
}

func nativeGetPointerAccelerationMultiplier() (float64, error) {
	return 1.0, nil
}

func nativeGetPointerAccelerationThreshold() (int32, error) {
	return 0, nil
}

func nativeGetPointerAccelerationSensitivity() (float64, error) {
	return 1.0, nil
}

func nativeGetMultiClickTime() (uint32, error) {
	return uint32(multiClickWindowMillis), nil
}
