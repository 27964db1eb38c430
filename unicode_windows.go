//go:build windows

package iohook

import (
	"unsafe"
)

var (
	procToUnicodeEx          = user32.NewProc("ToUnicodeEx")
	procGetKeyboardState      = user32.NewProc("GetKeyboardState")
	procGetForegroundWindow   = user32.NewProc("GetForegroundWindow")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procGetKeyboardLayout     = user32.NewProc("GetKeyboardLayout")
	procGetKeyState           = user32.NewProc("GetKeyState")
	procMapVirtualKeyW        = user32.NewProc("MapVirtualKeyW")
)

// windowsUnicodeResolver mirrors windows/input_helper.c's
// keycode_to_unicode: it snapshots the current keyboard state, queries
// the foreground thread's keyboard layout, then calls ToUnicodeEx with
// the "don't alter keyboard state" flag so repeated calls are
// side-effect free for dead-key sequences already committed elsewhere.
type windowsUnicodeResolver struct{}

func newUnicodeResolver() unicodeResolver { return windowsUnicodeResolver{} }

const toUnicodeExNoSideEffects = 0x04

func (windowsUnicodeResolver) Resolve(vc VirtualCode, mask ModifierMask) []uint16 {
	vk, ok := windowsCodeTable{}.VirtualToNative(vc)
	if !ok {
		return nil
	}
	vk &^= extendedKeyBit

	var state [256]byte
	procGetKeyboardState.Call(uintptr(unsafe.Pointer(&state[0])))
	if mask&MaskShift != 0 {
		state[vkShift] = 0x80
	}
	if mask&MaskCtrl != 0 {
		state[vkControl] = 0x80
	}
	if mask&MaskAlt != 0 {
		state[vkMenu] = 0x80
	}
	if mask&MaskCapsLock != 0 {
		state[vkCapital] = 0x01
	}

	layout := foregroundKeyboardLayout()

	var buf [8]uint16
	scanCode, _ := mapVirtualKeyToScan(uint32(vk))

	ret, _, _ := procToUnicodeEx.Call(
		uintptr(vk),
		uintptr(scanCode),
		uintptr(unsafe.Pointer(&state[0])),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		uintptr(toUnicodeExNoSideEffects),
		layout,
	)

	n := int32(ret)
	if n <= 0 {
		return nil
	}
	return append([]uint16(nil), buf[:n]...)
}

func foregroundKeyboardLayout() uintptr {
	hwnd, _, _ := procGetForegroundWindow.Call()
	var pid uint32
	tid, _, _ := procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	layout, _, _ := procGetKeyboardLayout.Call(tid)
	return layout
}

func mapVirtualKeyToScan(vk uint32) (uint32, error) {
	ret, _, _ := procMapVirtualKeyW.Call(uintptr(vk), 0)
	return uint32(ret), nil
}
