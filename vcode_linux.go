//go:build linux

package iohook

/*
#cgo pkg-config: x11 xkbfile
#include <X11/Xlib.h>
#include <X11/XKBlib.h>
#include <X11/extensions/XKBfile.h>
#include <stdlib.h>
#include <string.h>

// xkb_key_name copies the 4-byte symbolic key name for keycode into out,
// NUL terminated. Returns 0 if the Xkb name table has no entry.
static int xkb_key_name(Display *display, unsigned int keycode, char *out) {
	XkbDescPtr desc = XkbGetMap(display, XkbAllClientInfoMask, XkbUseCoreKbd);
	if (desc == NULL) {
		return 0;
	}
	if (XkbGetNames(display, XkbKeyNamesMask, desc) != Success) {
		XkbFreeKeyboard(desc, XkbAllClientInfoMask, True);
		return 0;
	}
	if (desc->names == NULL || desc->names->keys == NULL ||
		keycode < desc->min_key_code || keycode > desc->max_key_code) {
		XkbFreeKeyboard(desc, XkbAllClientInfoMask, True);
		return 0;
	}
	memcpy(out, desc->names->keys[keycode].name, XkbKeyNameLength);
	out[XkbKeyNameLength] = '\0';
	XkbFreeKeyboard(desc, XkbAllClientInfoMask, True);
	return 1;
}

static int xkb_min_max(Display *display, unsigned int *min, unsigned int *max) {
	int mn, mx;
	XDisplayKeycodes(display, &mn, &mx);
	*min = (unsigned int) mn;
	*max = (unsigned int) mx;
	return 1;
}
*/
import "C"

import (
	"sync"
	"unsafe"
)

// linuxCodeTable translates between X11 keycodes and VirtualCode via
// the Xkb symbolic 4-character key-name table (e.g. "AD01" -> VC_Q),
// discovered at runtime from the active keyboard mapping rather than
// hard-coded to one physical layout. It is rebuilt in place (mu guards
// the two maps) whenever backend_linux.go's mapping-notify watcher
// sees the keyboard layout change, per spec.md §4.1's "re-run on
// keyboard-layout change" requirement.
type linuxCodeTable struct {
	mu         sync.RWMutex
	nativeToVC map[uint16]VirtualCode
	vcToNative map[VirtualCode]uint16
}

var sharedLinuxCodeTableOnce sync.Once
var sharedLinuxCodeTable *linuxCodeTable

// sharedCodeTable returns the process-wide linuxCodeTable instance so
// the dispatcher and the Unicode resolver see the same (and
// same-freshness) Xkb mapping instead of each rebuilding it.
func sharedCodeTable() *linuxCodeTable {
	sharedLinuxCodeTableOnce.Do(func() {
		sharedLinuxCodeTable = &linuxCodeTable{}
		sharedLinuxCodeTable.refresh()
	})
	return sharedLinuxCodeTable
}

func newCodeTable() codeTable {
	return sharedCodeTable()
}

// refresh walks min_keycode..max_keycode on a fresh connection,
// comparing each position's Xkb symbolic name against xkbNameToVC, and
// swaps in the result. Called once at table construction and again by
// backend_linux.go on MappingNotify.
func (t *linuxCodeTable) refresh() {
	display := openLinuxDisplay()
	if display == nil {
		return
	}
	defer closeLinuxDisplay(display)

	nativeToVC := make(map[uint16]VirtualCode)
	vcToNative := make(map[VirtualCode]uint16)

	var min, max C.uint
	C.xkb_min_max(display, &min, &max)

	buf := make([]C.char, 5)
	for kc := min; kc <= max; kc++ {
		if C.xkb_key_name(display, C.uint(kc), &buf[0]) == 0 {
			continue
		}
		name := C.GoString(&buf[0])
		vc, ok := xkbNameToVC[name]
		if !ok {
			continue
		}
		nativeToVC[uint16(kc)] = vc
		if _, exists := vcToNative[vc]; !exists {
			vcToNative[vc] = uint16(kc)
		}
	}

	t.mu.Lock()
	t.nativeToVC = nativeToVC
	t.vcToNative = vcToNative
	t.mu.Unlock()
}

func (t *linuxCodeTable) NativeToVirtual(native uint16) VirtualCode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if vc, ok := t.nativeToVC[native]; ok {
		return vc
	}
	return VCUndefined
}

func (t *linuxCodeTable) VirtualToNative(vc VirtualCode) (uint16, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	native, ok := t.vcToNative[vc]
	return native, ok
}

func openLinuxDisplay() *C.Display {
	d := C.XOpenDisplay(nil)
	if d == nil {
		return nil
	}
	return d
}

func closeLinuxDisplay(d *C.Display) {
	C.XCloseDisplay(d)
}

var _ = unsafe.Pointer(nil)

// xkbNameToVC mirrors libuiohook's vcode_keycode_table: the Xkb
// symbolic name used on virtually every PC-105 X11 layout for a given
// physical key, mapped to the stable VirtualCode identifier.
var xkbNameToVC = map[string]VirtualCode{
	"ESC": VCEscape,

	"FK01": VCF1, "FK02": VCF2, "FK03": VCF3, "FK04": VCF4,
	"FK05": VCF5, "FK06": VCF6, "FK07": VCF7, "FK08": VCF8,
	"FK09": VCF9, "FK10": VCF10, "FK11": VCF11, "FK12": VCF12,
	"FK13": VCF13, "FK14": VCF14, "FK15": VCF15, "FK16": VCF16,
	"FK17": VCF17, "FK18": VCF18, "FK19": VCF19, "FK20": VCF20,
	"FK21": VCF21, "FK22": VCF22, "FK23": VCF23, "FK24": VCF24,

	"TLDE": VCBackQuote,
	"AE01": VC1, "AE02": VC2, "AE03": VC3, "AE04": VC4, "AE05": VC5,
	"AE06": VC6, "AE07": VC7, "AE08": VC8, "AE09": VC9, "AE10": VC0,
	"AE11": VCMinus, "AE12": VCEquals,

	"BKSP": VCBackspace,
	"TAB":  VCTab,
	"CAPS": VCCapsLock,

	"AD01": VCQ, "AD02": VCW, "AD03": VCE, "AD04": VCR, "AD05": VCT,
	"AD06": VCY, "AD07": VCU, "AD08": VCI, "AD09": VCO, "AD10": VCP,
	"AD11": VCOpenBracket, "AD12": VCCloseBracket,

	"AC01": VCA, "AC02": VCS, "AC03": VCD, "AC04": VCF, "AC05": VCG,
	"AC06": VCH, "AC07": VCJ, "AC08": VCK, "AC09": VCL,
	"AC10": VCSemicolon, "AC11": VCQuote, "BKSL": VCBackSlash, "AC12": VCBackSlash,

	"LSGT": VC102,
	"AB01": VCZ, "AB02": VCX, "AB03": VCC, "AB04": VCV, "AB05": VCB,
	"AB06": VCN, "AB07": VCM, "AB08": VCComma, "AB09": VCPeriod,
	"AB10": VCSlash,

	"SPCE": VCSpace,
	"RTRN": VCEnter,

	"LFSH": VCShiftL, "RTSH": VCShiftR,
	"LALT": VCAltL, "RALT": VCAltR,
	"LCTL": VCControlL, "RCTL": VCControlR,
	"LWIN": VCMetaL, "LMTA": VCMetaL,
	"RWIN": VCMetaR, "RMTA": VCMetaR,
	"COMP": VCContextMenu, "MENU": VCContextMenu,

	"PRSC": VCPrintScreen,
	"SCLK": VCScrollLock,
	"PAUS": VCPause,
	"INS":  VCInsert,
	"DELE": VCDelete,
	"HOME": VCHome,
	"END":  VCEnd,
	"PGUP": VCPageUp,
	"PGDN": VCPageDown,

	"UP":   VCUp,
	"LEFT": VCLeft,
	"RGHT": VCRight,
	"DOWN": VCDown,

	"NMLK": VCNumLock,
	"KPDV": VCKPDivide,
	"KPMU": VCKPMultiply,
	"KPSU": VCKPSubtract,
	"KPAD": VCKPAdd,
	"KPEN": VCKPEnter,
	"KPDL": VCKPDecimal,
	"KPEQ": VCKPEquals,
	"KP0": VCKP0, "KP1": VCKP1, "KP2": VCKP2, "KP3": VCKP3, "KP4": VCKP4,
	"KP5": VCKP5, "KP6": VCKP6, "KP7": VCKP7, "KP8": VCKP8, "KP9": VCKP9,

	"MUTE": VCVolumeMute,
	"VOL-": VCVolumeDown,
	"VOL+": VCVolumeUp,
	"PLAY": VCMediaPlay,
	"STOP": VCMediaStop,
	"PRWR": VCMediaPrevious,
	"NXWR": VCMediaNext,
	"EJCT": VCMediaEject,

	"HIRA": VCHiragana,
	"KANA": VCKatakana,
	"HKTG": VCKatakanaHiragana,
	"HENK": VCConvert,
	"MUHE": VCNonConvert,
	"HNGL": VCHangul,
	"HJCV": VCHanja,
	"AE13": VCJPComma,
	"JPCM": VCJPComma,
}
