//go:build linux

package iohook

/*
#cgo pkg-config: x11 xtst
#include <X11/Xlib.h>
#include <X11/Xlibint.h>
#include <X11/Xproto.h>
#include <X11/extensions/record.h>
#include <X11/extensions/XTest.h>
#include <X11/XKBlib.h>
#include <X11/keysym.h>
#include <stdlib.h>
#include <string.h>

extern void goRecordCallback(XPointer closure, XRecordInterceptData *data);
extern void goMappingChanged(void);

// key_held reports whether the key mapped to the given keysym is
// currently down, per x11/input_helper.c's initialize_modifiers bit
// scan of XQueryKeymap's 256-bit vector.
static int key_held(Display *d, const char keymap[32], KeySym sym) {
	KeyCode kc = XKeysymToKeycode(d, sym);
	if (kc == 0) {
		return 0;
	}
	return (keymap[kc / 8] & (1 << (kc % 8))) != 0;
}

static void query_keymap(Display *d, char *out32) {
	XQueryKeymap(d, out32);
}

// query_pointer_mask reports the root pointer's button state mask
// (ShiftMask/ControlMask/Mod1Mask/Mod4Mask/ButtonNMask), or 0 with
// ok=0 if the query failed.
static unsigned int query_pointer_mask(Display *d, int *ok) {
	Window root = DefaultRootWindow(d);
	Window rootRet, childRet;
	int rootX, rootY, winX, winY;
	unsigned int mask = 0;
	*ok = XQueryPointer(d, root, &rootRet, &childRet, &rootX, &rootY, &winX, &winY, &mask);
	return mask;
}

static unsigned int indicator_state(Display *d, int *ok) {
	unsigned int ledMask = 0;
	*ok = (XkbGetIndicatorState(d, XkbUseCoreKbd, &ledMask) == Success);
	return ledMask;
}

static Display *open_control_display(void) {
	return XOpenDisplay(NULL);
}

static Display *open_data_display(void) {
	return XOpenDisplay(NULL);
}

// enable_detectable_autorepeat lets KeyRelease/KeyPress autorepeat
// pairs be told apart from a genuine release+press, per spec.md §4.3.
static void enable_detectable_autorepeat(Display *display) {
	Bool supported;
	XkbSetDetectableAutoRepeat(display, True, &supported);
}

// watch_mapping_notify blocks on the control display's event queue,
// which receives X11's broadcast MappingNotify whenever the keyboard
// mapping changes (XkbNewKeyboardNotify is not selected or handled),
// and calls back into Go so the virtual code table can be
// rebuilt (spec.md §4.1's "re-run on keyboard-layout change").
static void watch_mapping_notify(Display *display) {
	XSelectInput(display, DefaultRootWindow(display), PropertyChangeMask);
	XEvent ev;
	while (1) {
		XNextEvent(display, &ev);
		if (ev.type == MappingNotify) {
			XRefreshKeyboardMapping((XMappingEvent *) &ev);
			goMappingChanged();
		}
	}
}

static int record_extension_available(Display *ctrl) {
	int major, minor;
	return XRecordQueryVersion(ctrl, &major, &minor);
}

static XRecordContext create_record_context(Display *ctrl) {
	XRecordClientSpec clients = XRecordAllClients;
	XRecordRange *range = XRecordAllocRange();
	if (range == NULL) {
		return 0;
	}
	range->device_events.first = KeyPress;
	range->device_events.last = MotionNotify;

	XRecordContext ctx = XRecordCreateContext(ctrl, 0, &clients, 1, &range, 1);
	XFree(range);
	return ctx;
}

// enable_context blocks the calling thread, invoking goRecordCallback
// for every intercepted event, until XRecordDisableContext is called
// from another thread on the control connection.
static int enable_context(Display *data, XRecordContext ctx) {
	return XRecordEnableContext(data, ctx, goRecordCallback, NULL);
}

// decode_event extracts the fields dispatch.go needs from the raw wire
// event RECORD hands back. RECORD delivers events in X protocol wire
// format (xEvent), the same struct core Xlib event delivery decodes
// from, so the fields are read directly rather than via XNextEvent.
static void decode_event(XRecordInterceptData *data, int *type, unsigned int *detail,
		int *rootX, int *rootY, unsigned int *time) {
	xEvent *ev = (xEvent *) data->data;
	*type = ev->u.u.type;
	*detail = ev->u.u.detail;
	*rootX = ev->u.keyButtonPointer.rootX;
	*rootY = ev->u.keyButtonPointer.rootY;
	*time = ev->u.keyButtonPointer.time;
}
*/
import "C"

import (
	"runtime"
	"sync"
	"unsafe"
)

const (
	xKeyPress      = 2
	xKeyRelease    = 3
	xButtonPress   = 4
	xButtonRelease = 5
	xMotionNotify  = 6
)

const (
	xButtonLeft      = 1
	xButtonMiddle    = 2
	xButtonRight     = 3
	xButtonWheelUp   = 4
	xButtonWheelDown = 5
	xButtonWheelLeft = 6
	xButtonWheelRight = 7
)

// linuxBackend captures input system-wide via the X11 RECORD extension
// on a dedicated "data" connection while issuing control calls (enable/
// disable) on a second "control" connection, per x11/input_hook.c —
// RECORD requires the two be distinct connections.
type linuxBackend struct {
	mu       sync.Mutex
	ctrl     *C.Display
	data     *C.Display
	ctx      C.XRecordContext
	mapWatch *C.Display
	disp     *dispatcher
}

// nativePollInitialModifiers mirrors x11/input_helper.c's
// initialize_modifiers + initialize_locks: XQueryKeymap plus
// XQueryPointer's button mask for held keys/buttons, and
// XkbGetIndicatorState for the lock LEDs.
func nativePollInitialModifiers() ModifierMask {
	display := openLinuxDisplay()
	if display == nil {
		return 0
	}
	defer closeLinuxDisplay(display)

	var mask ModifierMask

	var keymap [32]C.char
	C.query_keymap(display, &keymap[0])

	var ok C.int
	ptrMask := C.query_pointer_mask(display, &ok)
	if ok != 0 {
		if ptrMask&C.ShiftMask != 0 {
			if C.key_held(display, &keymap[0], C.XK_Shift_L) != 0 {
				mask |= MaskShiftL
			}
			if C.key_held(display, &keymap[0], C.XK_Shift_R) != 0 {
				mask |= MaskShiftR
			}
		}
		if ptrMask&C.ControlMask != 0 {
			if C.key_held(display, &keymap[0], C.XK_Control_L) != 0 {
				mask |= MaskCtrlL
			}
			if C.key_held(display, &keymap[0], C.XK_Control_R) != 0 {
				mask |= MaskCtrlR
			}
		}
		if ptrMask&C.Mod1Mask != 0 {
			if C.key_held(display, &keymap[0], C.XK_Alt_L) != 0 {
				mask |= MaskAltL
			}
			if C.key_held(display, &keymap[0], C.XK_Alt_R) != 0 {
				mask |= MaskAltR
			}
		}
		if ptrMask&C.Mod4Mask != 0 {
			if C.key_held(display, &keymap[0], C.XK_Super_L) != 0 {
				mask |= MaskMetaL
			}
			if C.key_held(display, &keymap[0], C.XK_Super_R) != 0 {
				mask |= MaskMetaR
			}
		}

		if ptrMask&C.Button1Mask != 0 {
			mask |= MaskButton1
		}
		if ptrMask&C.Button2Mask != 0 {
			mask |= MaskButton2
		}
		if ptrMask&C.Button3Mask != 0 {
			mask |= MaskButton3
		}
		if ptrMask&C.Button4Mask != 0 {
			mask |= MaskButton4
		}
		if ptrMask&C.Button5Mask != 0 {
			mask |= MaskButton5
		}
	} else {
		logf(LogWarn, "nativePollInitialModifiers: XQueryPointer failed to get current modifiers")
		if C.key_held(display, &keymap[0], C.XK_Shift_L) != 0 {
			mask |= MaskShiftL
		}
		if C.key_held(display, &keymap[0], C.XK_Shift_R) != 0 {
			mask |= MaskShiftR
		}
		if C.key_held(display, &keymap[0], C.XK_Control_L) != 0 {
			mask |= MaskCtrlL
		}
		if C.key_held(display, &keymap[0], C.XK_Control_R) != 0 {
			mask |= MaskCtrlR
		}
		if C.key_held(display, &keymap[0], C.XK_Alt_L) != 0 {
			mask |= MaskAltL
		}
		if C.key_held(display, &keymap[0], C.XK_Alt_R) != 0 {
			mask |= MaskAltR
		}
	}

	var ledOk C.int
	led := C.indicator_state(display, &ledOk)
	if ledOk == 0 {
		logf(LogWarn, "nativePollInitialModifiers: XkbGetIndicatorState failed to get current led mask")
	} else {
		if led&0x01 != 0 {
			mask |= MaskCapsLock
		}
		if led&0x02 != 0 {
			mask |= MaskNumLock
		}
		if led&0x04 != 0 {
			mask |= MaskScrollLock
		}
	}

	return mask
}

func newCaptureBackend() captureBackend { return &linuxBackend{} }

var activeLinuxBackend *linuxBackend

func (b *linuxBackend) Start(disp *dispatcher, mode captureMode) error {
	b.disp = disp
	activeLinuxBackend = b

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ctrl := C.open_control_display()
	if ctrl == nil {
		return ErrXOpenDisplay
	}
	data := C.open_data_display()
	if data == nil {
		C.XCloseDisplay(ctrl)
		return ErrXOpenDisplay
	}

	if C.record_extension_available(ctrl) == 0 {
		C.XCloseDisplay(ctrl)
		C.XCloseDisplay(data)
		return ErrXRecordNotFound
	}

	ctx := C.create_record_context(ctrl)
	if ctx == 0 {
		C.XCloseDisplay(ctrl)
		C.XCloseDisplay(data)
		return ErrXRecordAllocRange
	}

	b.mu.Lock()
	b.ctrl, b.data, b.ctx = ctrl, data, ctx
	b.mu.Unlock()

	C.enable_detectable_autorepeat(ctrl)

	if mapWatch := C.open_control_display(); mapWatch != nil {
		b.mu.Lock()
		b.mapWatch = mapWatch
		b.mu.Unlock()
		go C.watch_mapping_notify(mapWatch)
	}

	if C.enable_context(data, ctx) == 0 {
		return ErrXRecordEnableContext
	}
	return nil
}

//export goMappingChanged
func goMappingChanged() {
	b := activeLinuxBackend
	if b == nil || b.disp == nil {
		return
	}
	if refresher, ok := b.disp.table.(interface{ refresh() }); ok {
		refresher.refresh()
	}
}

func (b *linuxBackend) Stop() error {
	b.mu.Lock()
	ctrl, ctx := b.ctrl, b.ctx
	data := b.data
	mapWatch := b.mapWatch
	b.mu.Unlock()

	if ctrl == nil {
		return nil
	}
	C.XRecordDisableContext(ctrl, ctx)
	C.XFlush(ctrl)
	C.XRecordFreeContext(ctrl, ctx)
	C.XCloseDisplay(ctrl)
	if data != nil {
		C.XCloseDisplay(data)
	}
	if mapWatch != nil {
		// watch_mapping_notify's XNextEvent is left blocked on this
		// connection; closing the fd out from under it ends the
		// goroutine rather than leaking it past process teardown.
		C.XCloseDisplay(mapWatch)
	}
	return nil
}

//export goRecordCallback
func goRecordCallback(closure C.XPointer, data *C.XRecordInterceptData) {
	defer C.XRecordFreeData(data)

	if data.category != C.XRecordFromServer {
		return
	}

	b := activeLinuxBackend
	if b == nil || b.disp == nil {
		return
	}

	var evType C.int
	var detail C.uint
	var rootX, rootY C.int
	var t C.uint
	C.decode_event(data, &evType, &detail, &rootX, &rootY, &t)

	native := uint16(detail)
	x, y := int16(rootX), int16(rootY)
	tm := uint64(t)

	switch evType {
	case xKeyPress:
		b.disp.KeyPressed(native, native, tm)
	case xKeyRelease:
		b.disp.KeyReleased(native, native, tm)
	case xButtonPress:
		switch native {
		case xButtonWheelUp:
			b.disp.Wheel(1, 1, WheelUnitScroll, WheelVertical, x, y, tm)
		case xButtonWheelDown:
			b.disp.Wheel(-1, 1, WheelUnitScroll, WheelVertical, x, y, tm)
		case xButtonWheelLeft:
			b.disp.Wheel(-1, 1, WheelUnitScroll, WheelHorizontal, x, y, tm)
		case xButtonWheelRight:
			b.disp.Wheel(1, 1, WheelUnitScroll, WheelHorizontal, x, y, tm)
		default:
			b.disp.ButtonPressed(linuxButtonIndex(native), x, y, tm)
		}
	case xButtonRelease:
		switch native {
		case xButtonWheelUp, xButtonWheelDown, xButtonWheelLeft, xButtonWheelRight:
			// wheel clicks have no matching release
		default:
			b.disp.ButtonReleased(linuxButtonIndex(native), x, y, tm)
		}
	case xMotionNotify:
		b.disp.Moved(x, y, tm)
	}

	_ = unsafe.Pointer(closure)
}

func linuxButtonIndex(detail uint16) uint16 {
	switch detail {
	case xButtonLeft:
		return MouseButton1
	case xButtonMiddle:
		return MouseButton3
	case xButtonRight:
		return MouseButton2
	default:
		return MouseNoButton
	}
}
