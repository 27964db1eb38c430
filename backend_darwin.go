//go:build darwin

package iohook

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation -framework Carbon -framework AppKit

#include <ApplicationServices/ApplicationServices.h>
#import <AppKit/AppKit.h>

extern CGEventRef goEventTapCallback(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *refcon);

// NX_SUBTYPE_AUX_CONTROL_BUTTONS / NX_KEYTYPE_* come from IOKit's
// hidsystem/ev_keymap.h; redeclared here so this file only needs
// AppKit, matching the value the real header ships.
#define NX_SUBTYPE_AUX_CONTROL_BUTTONS 8
#define NX_KEYSTATE_DOWN 0x0A
// kCGEventSystemDefined has no public CGEventType constant; 14 is the
// stable private value (NX_SYSDEFINED) media keys and similar hardware
// events arrive as, matching NSEventTypeSystemDefined.
#define NX_SYSDEFINED 14

static CFMachPortRef create_event_tap(void *refcon) {
	CGEventMask mask =
		CGEventMaskBit(kCGEventKeyDown) | CGEventMaskBit(kCGEventKeyUp) |
		CGEventMaskBit(kCGEventFlagsChanged) |
		CGEventMaskBit(kCGEventLeftMouseDown) | CGEventMaskBit(kCGEventLeftMouseUp) |
		CGEventMaskBit(kCGEventRightMouseDown) | CGEventMaskBit(kCGEventRightMouseUp) |
		CGEventMaskBit(kCGEventOtherMouseDown) | CGEventMaskBit(kCGEventOtherMouseUp) |
		CGEventMaskBit(kCGEventMouseMoved) |
		CGEventMaskBit(kCGEventLeftMouseDragged) | CGEventMaskBit(kCGEventRightMouseDragged) |
		CGEventMaskBit(kCGEventOtherMouseDragged) |
		CGEventMaskBit(kCGEventScrollWheel) |
		CGEventMaskBit(NX_SYSDEFINED);

	return CGEventTapCreate(
		kCGSessionEventTap,
		kCGHeadInsertEventTap,
		kCGEventTapOptionDefault,
		mask,
		goEventTapCallback,
		refcon);
}

// decode_system_defined extracts the NX_KEYTYPE_* media-key code and
// down/up state from an NX_SYSDEFINED event (media keys never generate
// kCGEventKeyDown/Up; they only surface here). Returns 0 if event is not
// an aux-control-button system-defined event.
static int decode_system_defined(CGEventRef event, int *out_key, int *out_down, int *out_repeat) {
	NSEvent *nsEvent = [NSEvent eventWithCGEvent:event];
	if (nsEvent == nil || [nsEvent subtype] != NX_SUBTYPE_AUX_CONTROL_BUTTONS) {
		return 0;
	}
	NSInteger data1 = [nsEvent data1];
	*out_key = (int)((data1 & 0xFFFF0000) >> 16);
	int keyFlags = (int)(data1 & 0xFFFF);
	*out_down = ((keyFlags & 0xFF00) >> 8) == NX_KEYSTATE_DOWN;
	*out_repeat = (keyFlags & 0x1) != 0;
	return 1;
}

static int key_state(CGKeyCode code) {
	return CGEventSourceKeyState(kCGEventSourceStateCombinedSessionState, code) ? 1 : 0;
}

static int button_state(CGMouseButton button) {
	return CGEventSourceButtonState(kCGEventSourceStateCombinedSessionState, button) ? 1 : 0;
}

static int caps_lock_state() {
	return (CGEventSourceFlagsState(kCGEventSourceStateCombinedSessionState) & kCGEventFlagMaskAlphaShift) ? 1 : 0;
}

static CFRunLoopSourceRef add_to_run_loop(CFMachPortRef tap) {
	CFRunLoopSourceRef src = CFMachPortCreateRunLoopSource(kCFAllocatorDefault, tap, 0);
	CFRunLoopAddSource(CFRunLoopGetCurrent(), src, kCFRunLoopCommonModes);
	CGEventTapEnable(tap, true);
	return src;
}
*/
import "C"

import (
	"sync"
	"unsafe"
)

// darwinBackend drives a CGEventTap on the calling goroutine's thread,
// which must be locked to an OS thread and pumped through CFRunLoopRun,
// mirroring darwin/input_hook.c. The tap callback runs on that thread;
// TIS lookups are marshaled to the main thread separately (see
// unicode_darwin.go).
type darwinBackend struct {
	mu      sync.Mutex
	tap     C.CFMachPortRef
	runLoop C.CFRunLoopRef
	disp    *dispatcher
	mode    captureMode
}

func newCaptureBackend() captureBackend { return &darwinBackend{} }

var activeDarwinBackend *darwinBackend

func (b *darwinBackend) Start(disp *dispatcher, mode captureMode) error {
	b.disp = disp
	b.mode = mode
	activeDarwinBackend = b

	lockMainThreadForRunLoop()
	defer unlockMainThreadForRunLoop()

	tap := C.create_event_tap(nil)
	if tap == 0 {
		return ErrCreateEventPort
	}
	b.mu.Lock()
	b.tap = tap
	b.runLoop = C.CFRunLoopGetCurrent()
	b.mu.Unlock()

	src := C.add_to_run_loop(tap)
	if src == 0 {
		return ErrCreateRunLoopSource
	}

	if disp.proc != nil {
		// Nothing further to do here: HOOK_ENABLED/DISABLED are
		// dispatched by session.go around Start/Stop.
	}

	C.CFRunLoopRun()
	return nil
}

func (b *darwinBackend) Stop() error {
	b.mu.Lock()
	tap := b.tap
	runLoop := b.runLoop
	b.mu.Unlock()
	if tap == 0 {
		return nil
	}
	C.CGEventTapEnable(tap, C.bool(false))
	if runLoop != 0 {
		C.CFRunLoopStop(runLoop)
	}
	return nil
}

//export goEventTapCallback
func goEventTapCallback(proxy C.CGEventTapProxy, eventType C.CGEventType, event C.CGEventRef, refcon unsafe.Pointer) C.CGEventRef {
	b := activeDarwinBackend
	if b == nil || b.disp == nil {
		return event
	}

	switch eventType {
	case C.kCGEventKeyDown, C.kCGEventKeyUp, C.kCGEventFlagsChanged, C.CGEventType(C.NX_SYSDEFINED):
		if b.mode == modeMouse {
			return event
		}
	default:
		if b.mode == modeKeyboard {
			return event
		}
	}

	t := uint64(C.CGEventGetTimestamp(event) / 1000000)

	switch eventType {
	case C.kCGEventKeyDown:
		vc := darwinVCFromEvent(event)
		raw := uint16(C.CGEventGetIntegerValueField(event, C.kCGKeyboardEventKeycode))
		if b.disp.KeyPressed(raw, raw, t) {
			_ = vc
			return 0
		}
	case C.kCGEventKeyUp:
		raw := uint16(C.CGEventGetIntegerValueField(event, C.kCGKeyboardEventKeycode))
		if b.disp.KeyReleased(raw, raw, t) {
			return 0
		}
	case C.kCGEventFlagsChanged:
		darwinDispatchFlagsChanged(b.disp, event, t)
	case C.kCGEventLeftMouseDown:
		if darwinDispatchButton(b.disp, event, MouseButton1, true, t) {
			return 0
		}
	case C.kCGEventLeftMouseUp:
		if darwinDispatchButton(b.disp, event, MouseButton1, false, t) {
			return 0
		}
	case C.kCGEventRightMouseDown:
		if darwinDispatchButton(b.disp, event, MouseButton2, true, t) {
			return 0
		}
	case C.kCGEventRightMouseUp:
		if darwinDispatchButton(b.disp, event, MouseButton2, false, t) {
			return 0
		}
	case C.kCGEventOtherMouseDown:
		button := darwinOtherButton(event)
		if darwinDispatchButton(b.disp, event, button, true, t) {
			return 0
		}
	case C.kCGEventOtherMouseUp:
		button := darwinOtherButton(event)
		if darwinDispatchButton(b.disp, event, button, false, t) {
			return 0
		}
	case C.kCGEventMouseMoved, C.kCGEventLeftMouseDragged, C.kCGEventRightMouseDragged, C.kCGEventOtherMouseDragged:
		x, y := darwinEventLocation(event)
		if b.disp.Moved(x, y, t) {
			return 0
		}
	case C.kCGEventScrollWheel:
		darwinDispatchWheel(b.disp, event, t)
	case C.CGEventType(C.NX_SYSDEFINED):
		if darwinDispatchSystemDefined(b.disp, event, t) {
			return 0
		}
	}

	return event
}

// darwinDispatchSystemDefined decodes NX_SYSDEFINED media-key events
// (volume/brightness/play-pause/next/previous), which bypass the normal
// keyDown/keyUp path entirely on macOS.
func darwinDispatchSystemDefined(disp *dispatcher, event C.CGEventRef, t uint64) bool {
	var key, down, repeat C.int
	if C.decode_system_defined(event, &key, &down, &repeat) == 0 {
		return false
	}
	vc := darwinMediaKeyToVC(int(key))
	if vc == VCUndefined {
		return false
	}
	raw := uint16(key)
	if down != 0 {
		return disp.KeyPressed(raw, raw, t)
	}
	return disp.KeyReleased(raw, raw, t)
}

// darwinMediaKeyToVC maps NX_KEYTYPE_* (IOKit hidsystem/ev_keymap.h)
// values to the shared VirtualCode space.
func darwinMediaKeyToVC(key int) VirtualCode {
	switch key {
	case 0: // NX_KEYTYPE_SOUND_UP
		return VCVolumeUp
	case 1: // NX_KEYTYPE_SOUND_DOWN
		return VCVolumeDown
	case 7: // NX_KEYTYPE_MUTE
		return VCVolumeMute
	case 16: // NX_KEYTYPE_PLAY
		return VCMediaPlay
	case 17: // NX_KEYTYPE_NEXT
		return VCMediaNext
	case 18: // NX_KEYTYPE_PREVIOUS
		return VCMediaPrevious
	case 19: // NX_KEYTYPE_FAST
		return VCMediaNext
	case 20: // NX_KEYTYPE_REWIND
		return VCMediaRewind
	case 14: // NX_KEYTYPE_EJECT
		return VCMediaEject
	default:
		return VCUndefined
	}
}

// nativePollInitialModifiers mirrors darwin/input_helper.c's
// initialize_modifiers: queries CGEventSource for every modifier key,
// mouse button, and the caps-lock flag's held state, since macOS has no
// notion of num-lock or scroll-lock to poll.
func nativePollInitialModifiers() ModifierMask {
	var mask ModifierMask

	if C.key_state(C.CGKeyCode(kVKShift)) != 0 {
		mask |= MaskShiftL
	}
	if C.key_state(C.CGKeyCode(kVKRightShift)) != 0 {
		mask |= MaskShiftR
	}
	if C.key_state(C.CGKeyCode(kVKControl)) != 0 {
		mask |= MaskCtrlL
	}
	if C.key_state(C.CGKeyCode(kVKRightControl)) != 0 {
		mask |= MaskCtrlR
	}
	if C.key_state(C.CGKeyCode(kVKOption)) != 0 {
		mask |= MaskAltL
	}
	if C.key_state(C.CGKeyCode(kVKRightOption)) != 0 {
		mask |= MaskAltR
	}
	if C.key_state(C.CGKeyCode(kVKCommand)) != 0 {
		mask |= MaskMetaL
	}
	if C.key_state(C.CGKeyCode(kVKRightCommand)) != 0 {
		mask |= MaskMetaR
	}

	if C.button_state(C.kCGMouseButtonLeft) != 0 {
		mask |= MaskButton1
	}
	if C.button_state(C.kCGMouseButtonRight) != 0 {
		mask |= MaskButton2
	}
	if C.button_state(C.kCGMouseButtonCenter) != 0 {
		mask |= MaskButton3
	}
	if C.button_state(3) != 0 {
		mask |= MaskButton4
	}
	if C.button_state(4) != 0 {
		mask |= MaskButton5
	}

	if C.caps_lock_state() != 0 {
		mask |= MaskCapsLock
	}

	return mask
}

func darwinVCFromEvent(event C.CGEventRef) VirtualCode {
	raw := uint16(C.CGEventGetIntegerValueField(event, C.kCGKeyboardEventKeycode))
	return darwinCodeTable{}.NativeToVirtual(raw)
}

func darwinEventLocation(event C.CGEventRef) (int16, int16) {
	pt := C.CGEventGetLocation(event)
	return int16(pt.x), int16(pt.y)
}

func darwinOtherButton(event C.CGEventRef) uint16 {
	n := int64(C.CGEventGetIntegerValueField(event, C.kCGMouseEventButtonNumber))
	switch n {
	case 2:
		return MouseButton3
	case 3:
		return MouseButton4
	case 4:
		return MouseButton5
	default:
		return MouseNoButton
	}
}

func darwinDispatchButton(disp *dispatcher, event C.CGEventRef, button uint16, pressed bool, t uint64) bool {
	x, y := darwinEventLocation(event)
	if pressed {
		return disp.ButtonPressed(button, x, y, t)
	}
	return disp.ButtonReleased(button, x, y, t)
}

func darwinDispatchWheel(disp *dispatcher, event C.CGEventRef, t uint64) {
	x, y := darwinEventLocation(event)
	isContinuous := int64(C.CGEventGetIntegerValueField(event, C.kCGScrollWheelEventIsContinuous)) != 0
	delta := int64(C.CGEventGetIntegerValueField(event, C.kCGScrollWheelEventPointDeltaAxis1))

	scrollType := WheelBlockScroll
	if isContinuous {
		scrollType = WheelUnitScroll
	}
	disp.Wheel(int16(delta), uint16(absInt64(delta)), scrollType, WheelVertical, x, y, t)
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// darwinDispatchFlagsChanged takes the modifier key that transitioned
// from the event's keycode field and treats the event as a press if that
// key's bit is clear in the current mask, else as a release, since
// kCGEventFlagsChanged has no separate down/up event type.
func darwinDispatchFlagsChanged(disp *dispatcher, event C.CGEventRef, t uint64) {
	raw := uint16(C.CGEventGetIntegerValueField(event, C.kCGKeyboardEventKeycode))
	vc := darwinCodeTable{}.NativeToVirtual(raw)
	bit := MaskForModifier(vc)
	if bit == 0 {
		return
	}
	pressed := modifierMask()&bit == 0
	if pressed {
		disp.KeyPressed(raw, raw, t)
	} else {
		disp.KeyReleased(raw, raw, t)
	}
}
