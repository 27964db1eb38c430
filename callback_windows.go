//go:build windows

package iohook

import (
	"sync"
	"syscall"
	"unsafe"
)

var (
	callbackOnce       sync.Once
	keyboardCallbackFn func(int32, uintptr, *kbdllhookstruct) uintptr
	mouseCallbackFn    func(int32, uintptr, *msllhookstruct) uintptr

	keyboardTrampoline uintptr
	mouseTrampoline    uintptr

	monitorEnumFn         func(uintptr) uintptr
	monitorEnumTrampoline uintptr
	monitorEnumOnce       sync.Once

	wndProcFn        func(hwnd, message, wParam, lParam uintptr) uintptr
	wndProcTrampoline uintptr
	wndProcOnce       sync.Once
)

// newWindowsWndProc builds the single process-wide WNDPROC trampoline
// used by the invisible window create_invisible_window registers, per
// windows/input_hook.c's WndProc.
func newWindowsWndProc(fn func(hwnd, message, wParam, lParam uintptr) uintptr) uintptr {
	wndProcFn = fn
	wndProcOnce.Do(func() {
		wndProcTrampoline = syscall.NewCallback(func(hwnd, message, wParam, lParam uintptr) uintptr {
			if wndProcFn == nil {
				return 0
			}
			return wndProcFn(hwnd, message, wParam, lParam)
		})
	})
	return wndProcTrampoline
}

// newWindowsMonitorEnumCallback builds the single process-wide
// MonitorEnumProc trampoline used by EnumDisplayMonitors.
func newWindowsMonitorEnumCallback(fn func(uintptr) uintptr) uintptr {
	monitorEnumFn = fn
	monitorEnumOnce.Do(func() {
		monitorEnumTrampoline = syscall.NewCallback(func(hmon, _hdc, _rect, _lparam uintptr) uintptr {
			if monitorEnumFn == nil {
				return 1
			}
			return monitorEnumFn(hmon)
		})
	})
	return monitorEnumTrampoline
}

// newWindowsKeyboardCallback lazily builds the single process-wide
// syscall.NewCallback trampoline for the keyboard hook proc. Windows
// hook procs must be created once per process image, so the trampoline
// is cached rather than rebuilt per Run call.
func newWindowsKeyboardCallback(fn func(int32, uintptr, *kbdllhookstruct) uintptr) uintptr {
	keyboardCallbackFn = fn
	callbackOnce.Do(initWindowsCallbacks)
	return keyboardTrampoline
}

func newWindowsMouseCallback(fn func(int32, uintptr, *msllhookstruct) uintptr) uintptr {
	mouseCallbackFn = fn
	callbackOnce.Do(initWindowsCallbacks)
	return mouseTrampoline
}

func initWindowsCallbacks() {
	keyboardTrampoline = syscall.NewCallback(func(nCode int32, wParam uintptr, lParam uintptr) uintptr {
		if keyboardCallbackFn == nil {
			return 0
		}
		return keyboardCallbackFn(nCode, wParam, (*kbdllhookstruct)(unsafe.Pointer(lParam)))
	})
	mouseTrampoline = syscall.NewCallback(func(nCode int32, wParam uintptr, lParam uintptr) uintptr {
		if mouseCallbackFn == nil {
			return 0
		}
		return mouseCallbackFn(nCode, wParam, (*msllhookstruct)(unsafe.Pointer(lParam)))
	})
}
