//go:build darwin

package iohook

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreGraphics -framework CoreFoundation

#include <ApplicationServices/ApplicationServices.h>

static void post_key(CGKeyCode code, bool down, CGEventFlags flags) {
	CGEventRef e = CGEventCreateKeyboardEvent(NULL, code, down);
	CGEventSetFlags(e, flags);
	CGEventPost(kCGSessionEventTap, e);
	CFRelease(e);
}

static void post_unicode_key(const UniChar *chars, int length, bool down, CGEventFlags flags) {
	CGEventRef e = CGEventCreateKeyboardEvent(NULL, 0, down);
	CGEventSetFlags(e, flags);
	CGEventKeyboardSetUnicodeString(e, (UniCharCount) length, chars);
	CGEventPost(kCGSessionEventTap, e);
	CFRelease(e);
}

static void post_mouse_button(CGEventType type, CGMouseButton button, double x, double y) {
	CGEventRef e = CGEventCreateMouseEvent(NULL, type, CGPointMake(x, y), button);
	CGEventPost(kCGSessionEventTap, e);
	CFRelease(e);
}

static void post_mouse_move(CGEventType type, double x, double y) {
	CGEventRef e = CGEventCreateMouseEvent(NULL, type, CGPointMake(x, y), kCGMouseButtonLeft);
	CGEventPost(kCGSessionEventTap, e);
	CFRelease(e);
}

static void post_scroll(int32_t delta, bool horizontal) {
	CGEventRef e;
	if (horizontal) {
		e = CGEventCreateScrollWheelEvent(NULL, kCGScrollEventUnitPixel, 2, 0, delta);
	} else {
		e = CGEventCreateScrollWheelEvent(NULL, kCGScrollEventUnitPixel, 1, delta);
	}
	CGEventPost(kCGSessionEventTap, e);
	CFRelease(e);
}

static int display_count(void) {
	uint32_t count = 0;
	CGGetActiveDisplayList(0, NULL, &count);
	return (int) count;
}

static void display_bounds(int index, double *x, double *y, double *w, double *h) {
	uint32_t count = 0;
	CGDirectDisplayID ids[32];
	CGGetActiveDisplayList(32, ids, &count);
	if ((uint32_t) index >= count) {
		*x = *y = *w = *h = 0;
		return;
	}
	CGRect bounds = CGDisplayBounds(ids[index]);
	*x = bounds.origin.x;
	*y = bounds.origin.y;
	*w = bounds.size.width;
	*h = bounds.size.height;
}
*/
import "C"

import (
	"sync"
	"unicode/utf16"
)

// darwinSynthFlags is the synthesis engine's own modifier shadow
// (spec.md §5: independent of the capture-side ModifierMask in
// modifier.go), because CGEventCreateKeyboardEvent needs an explicit
// CGEventFlags mask stamped on every synthesized event rather than
// inheriting whatever the OS's live modifier state happens to be.
var (
	darwinSynthMu    sync.Mutex
	darwinSynthFlags C.CGEventFlags
)

const (
	cgEventFlagMaskShift   C.CGEventFlags = 0x00020000
	cgEventFlagMaskControl C.CGEventFlags = 0x00040000
	cgEventFlagMaskAlt     C.CGEventFlags = 0x00080000
	cgEventFlagMaskCommand C.CGEventFlags = 0x00100000
)

func darwinSynthFlagBit(vc VirtualCode) C.CGEventFlags {
	switch vc {
	case VCShiftL, VCShiftR:
		return cgEventFlagMaskShift
	case VCControlL, VCControlR:
		return cgEventFlagMaskControl
	case VCAltL, VCAltR:
		return cgEventFlagMaskAlt
	case VCMetaL, VCMetaR:
		return cgEventFlagMaskCommand
	default:
		return 0
	}
}

func darwinUpdateSynthFlags(vc VirtualCode, down bool) {
	bit := darwinSynthFlagBit(vc)
	if bit == 0 {
		return
	}
	darwinSynthMu.Lock()
	if down {
		darwinSynthFlags |= bit
	} else {
		darwinSynthFlags &^= bit
	}
	darwinSynthMu.Unlock()
}

func darwinCurrentSynthFlags() C.CGEventFlags {
	darwinSynthMu.Lock()
	defer darwinSynthMu.Unlock()
	return darwinSynthFlags
}

func nativePostEvent(evt *VirtualEvent) error {
	switch evt.Type {
	case EventKeyPressed, EventKeyReleased:
		native, ok := darwinCodeTable{}.VirtualToNative(evt.Keyboard.KeyCode)
		if !ok {
			return ErrFailure
		}
		down := evt.Type == EventKeyPressed
		darwinUpdateSynthFlags(evt.Keyboard.KeyCode, down)
		C.post_key(C.CGKeyCode(native), C.bool(down), darwinCurrentSynthFlags())
		return nil
	case EventMousePressed, EventMouseReleased, EventMousePressedIgnoreCoords, EventMouseReleasedIgnoreCoords:
		pressed := evt.Type == EventMousePressed || evt.Type == EventMousePressedIgnoreCoords
		cgType, button := darwinMouseEventType(evt.Mouse.Button, pressed)
		C.post_mouse_button(cgType, button, C.double(evt.Mouse.X), C.double(evt.Mouse.Y))
		return nil
	case EventMouseMoved, EventMouseDragged:
		C.post_mouse_move(C.kCGEventMouseMoved, C.double(evt.Mouse.X), C.double(evt.Mouse.Y))
		return nil
	case EventMouseMovedRelativeToCursor:
		cur := C.CGEventCreate(0)
		if cur == 0 {
			return ErrFailure
		}
		pt := C.CGEventGetLocation(cur)
		C.CFRelease(C.CFTypeRef(cur))
		C.post_mouse_move(C.kCGEventMouseMoved, C.double(pt.x)+C.double(evt.Mouse.X), C.double(pt.y)+C.double(evt.Mouse.Y))
		return nil
	case EventMouseWheel:
		horizontal := evt.Wheel.Direction == WheelHorizontal
		C.post_scroll(C.int32_t(evt.Wheel.Rotation), C.bool(horizontal))
		return nil
	default:
		return ErrFailure
	}
}

func darwinMouseEventType(button uint16, pressed bool) (C.CGEventType, C.CGMouseButton) {
	switch button {
	case MouseButton1:
		if pressed {
			return C.kCGEventLeftMouseDown, C.kCGMouseButtonLeft
		}
		return C.kCGEventLeftMouseUp, C.kCGMouseButtonLeft
	case MouseButton2:
		if pressed {
			return C.kCGEventRightMouseDown, C.kCGMouseButtonRight
		}
		return C.kCGEventRightMouseUp, C.kCGMouseButtonRight
	default:
		if pressed {
			return C.kCGEventOtherMouseDown, C.kCGMouseButtonCenter
		}
		return C.kCGEventOtherMouseUp, C.kCGMouseButtonCenter
	}
}

func nativePostText(text string) error {
	units := utf16.Encode([]rune(text))
	cunits := make([]C.UniChar, len(units))
	for i, u := range units {
		cunits[i] = C.UniChar(u)
	}
	if len(cunits) == 0 {
		return nil
	}
	flags := darwinCurrentSynthFlags()
	C.post_unicode_key(&cunits[0], C.int(len(cunits)), true, flags)
	C.post_unicode_key(&cunits[0], C.int(len(cunits)), false, flags)
	return nil
}

func nativeCreateScreenInfo() []ScreenData {
	n := int(C.display_count())
	screens := make([]ScreenData, 0, n)
	for i := 0; i < n; i++ {
		var x, y, w, h C.double
		C.display_bounds(C.int(i), &x, &y, &w, &h)
		screens = append(screens, ScreenData{
			Number: uint8(i + 1),
			X:      int16(x),
			Y:      int16(y),
			Width:  uint16(w),
			Height: uint16(h),
		})
	}
	return screens
}

func nativeGetPostTextDelayX11() uint32  { return 0 }
func nativeSetPostTextDelayX11(_ uint32) {}

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
