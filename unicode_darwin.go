//go:build darwin

package iohook

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Carbon -framework CoreFoundation

#include <Carbon/Carbon.h>

// uc_key_translate wraps UCKeyTranslate against the current keyboard
// layout's Unicode data, keeping dead-key state across calls the way
// darwin/input_helper.c's keycode_to_unicode does.
static UniCharCount uc_key_translate(UInt16 keycode, UInt16 modifierKeyState,
		UInt32 *deadKeyState, UniChar *out, UniCharCount maxLen) {
	TISInputSourceRef source = TISCopyCurrentKeyboardLayoutInputSource();
	if (source == NULL) {
		return 0;
	}
	CFDataRef layoutData = (CFDataRef) TISGetInputSourceProperty(source, kTISPropertyUnicodeKeyLayoutData);
	if (layoutData == NULL) {
		CFRelease(source);
		return 0;
	}
	const UCKeyboardLayout *layout = (const UCKeyboardLayout *) CFDataGetBytePtr(layoutData);

	// Flags 0 (not kUCKeyTranslateNoDeadKeysBit): deadKeyState is threaded
	// in and out across calls precisely so dead-key composition works for
	// real typing, per spec's "kept-across-calls dead-key state".
	UniCharCount length = 0;
	UCKeyTranslate(layout, keycode, kUCKeyActionDown, modifierKeyState,
		LMGetKbdType(), 0, deadKeyState, maxLen, &length, out);

	CFRelease(source);
	return length;
}
*/
import "C"

// darwinUnicodeResolver mirrors darwin/input_helper.c's
// keycode_to_unicode: UCKeyTranslate must run on the main thread
// because TISCopyCurrentKeyboardLayoutInputSource touches AppKit state,
// so every call is marshaled via runOnMainThread (mainthread_darwin.go).
type darwinUnicodeResolver struct {
	deadKeyState C.UInt32
}

func newUnicodeResolver() unicodeResolver { return &darwinUnicodeResolver{} }

func (r *darwinUnicodeResolver) Resolve(vc VirtualCode, mask ModifierMask) []uint16 {
	native, ok := darwinCodeTable{}.VirtualToNative(vc)
	if !ok {
		return nil
	}

	var units []uint16
	runOnMainThread(func() {
		modState := darwinCarbonModifierState(mask)
		buf := make([]C.UniChar, 8)
		n := C.uc_key_translate(C.UInt16(native), modState, &r.deadKeyState, &buf[0], C.UniCharCount(len(buf)))
		for i := C.UniCharCount(0); i < n; i++ {
			units = append(units, uint16(buf[i]))
		}
	})
	if mask&MaskCapsLock != 0 {
		for i, u := range units {
			units[i] = uint16(toUpperUTF16Unit(u))
		}
	}
	return units
}

func toUpperUTF16Unit(u uint16) rune {
	r := rune(u)
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// darwinCarbonModifierState packs ModifierMask into UCKeyTranslate's
// modifierKeyState: the EventRecord.modifiers word's top byte. Per
// spec.md §4.5, Command/Control/Option bits are deliberately left unset
// so a binding like Cmd-A still resolves to 'a'; CapsLock is handled
// separately by uppercasing the result rather than fed to the
// translator. Only Shift participates in the translation itself.
func darwinCarbonModifierState(mask ModifierMask) C.UInt16 {
	const shiftBit = 1 << 9
	var modifiers uint16
	if mask&MaskShift != 0 {
		modifiers |= shiftBit
	}
	return C.UInt16((modifiers >> 8) & 0xFF)
}
