//go:build linux

package iohook

/*
#cgo pkg-config: x11
#include <X11/Xlib.h>
#include <stdlib.h>

// lookup_unicode builds a throwaway XIM/XIC against the given display
// and feeds a synthetic XKeyEvent through Xutf8LookupString, per
// spec.md §4.5 ("Xutf8LookupString with a freshly-created input
// context for KeyPress"). A synthetic event against the root window
// avoids needing a mapped window of our own.
static int lookup_unicode(Display *display, unsigned int keycode, unsigned int state,
		char *out, int outLen) {
	XKeyEvent ev;
	ev.type = KeyPress;
	ev.display = display;
	ev.root = DefaultRootWindow(display);
	ev.window = ev.root;
	ev.subwindow = None;
	ev.time = 0;
	ev.x = ev.y = ev.x_root = ev.y_root = 0;
	ev.same_screen = True;
	ev.keycode = keycode;
	ev.state = state;

	XIM im = XOpenIM(display, NULL, NULL, NULL);
	if (im == NULL) {
		KeySym sym;
		return XLookupString(&ev, out, outLen, &sym, NULL);
	}

	XIC ic = XCreateIC(im, XNInputStyle, XIMPreeditNothing | XIMStatusNothing,
		XNClientWindow, ev.window, XNFocusWindow, ev.window, NULL);
	if (ic == NULL) {
		XCloseIM(im);
		KeySym sym;
		return XLookupString(&ev, out, outLen, &sym, NULL);
	}

	KeySym sym;
	Status status;
	int n = Xutf8LookupString(ic, &ev, out, outLen, &sym, &status);

	XDestroyIC(ic);
	XCloseIM(im);
	return n;
}
*/
import "C"

import (
	"unicode/utf8"
	"unsafe"
)

type linuxUnicodeResolver struct{}

func newUnicodeResolver() unicodeResolver { return linuxUnicodeResolver{} }

const (
	shiftMask   = 1 << 0
	lockMask    = 1 << 1
	controlMask = 1 << 2
	mod1Mask    = 1 << 3 // Alt on most layouts
)

func (linuxUnicodeResolver) Resolve(vc VirtualCode, mask ModifierMask) []uint16 {
	display := openLinuxDisplay()
	if display == nil {
		return nil
	}
	defer closeLinuxDisplay(display)

	native, ok := sharedCodeTable().VirtualToNative(vc)
	if !ok {
		return nil
	}

	var state C.uint
	if mask&MaskShift != 0 {
		state |= shiftMask
	}
	if mask&MaskCapsLock != 0 {
		state |= lockMask
	}
	if mask&MaskCtrl != 0 {
		state |= controlMask
	}
	if mask&MaskAlt != 0 {
		state |= mod1Mask
	}

	buf := make([]C.char, 8)
	n := C.lookup_unicode(display, C.uint(native), state, &buf[0], C.int(len(buf)))
	if n <= 0 {
		return nil
	}

	raw := C.GoBytes(unsafe.Pointer(&buf[0]), n)
	var units []uint16
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		if r == utf8.RuneError && size <= 1 {
			break
		}
		if r > 0xFFFF {
			r1, r2 := utf16SurrogatePair(r)
			units = append(units, r1, r2)
		} else {
			units = append(units, uint16(r))
		}
		raw = raw[size:]
	}
	return units
}

func utf16SurrogatePair(r rune) (uint16, uint16) {
	r -= 0x10000
	hi := uint16(0xD800 + (r >> 10))
	lo := uint16(0xDC00 + (r & 0x3FF))
	return hi, lo
}
