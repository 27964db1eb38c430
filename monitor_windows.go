//go:build windows

package iohook

import (
	"sync"
	"unsafe"
)

var (
	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW     = user32.NewProc("GetMonitorInfoW")
	procGetSystemMetrics    = user32.NewProc("GetSystemMetrics")
)

const (
	smCxVirtualScreen = 78
	smCyVirtualScreen = 79
	smCxScreen        = 0
	smCyScreen        = 1
)

type rect struct {
	Left, Top, Right, Bottom int32
}

type monitorInfoEx struct {
	CbSize    uint32
	RcMonitor rect
	RcWork    rect
	DwFlags   uint32
	SzDevice  [32]uint16
}

// monitorHelper caches the most-negative virtual-screen origin so
// PostEvent can normalize absolute coordinates into SendInput's
// [0,65535] space regardless of how monitors are arranged, mirroring
// windows/monitor_helper.c.
type monitorHelper struct {
	mu           sync.Mutex
	screens      []ScreenData
	originX      int32
	originY      int32
	originCached bool
}

var winMonitors monitorHelper

func (m *monitorHelper) refresh() []ScreenData {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.screens = m.screens[:0]
	minX, minY := int32(0), int32(0)

	monitorEnumCallback = func(hmon uintptr) uintptr {
		var info monitorInfoEx
		info.CbSize = uint32(unsafe.Sizeof(info))
		procGetMonitorInfoW.Call(hmon, uintptr(unsafe.Pointer(&info)))

		r := info.RcMonitor
		if r.Left < minX {
			minX = r.Left
		}
		if r.Top < minY {
			minY = r.Top
		}
		m.screens = append(m.screens, ScreenData{
			Number: uint8(len(m.screens) + 1),
			X:      int16(r.Left),
			Y:      int16(r.Top),
			Width:  uint16(r.Right - r.Left),
			Height: uint16(r.Bottom - r.Top),
		})
		return 1
	}
	procEnumDisplayMonitors.Call(0, 0, monitorEnumCallbackPtr(), 0)

	m.originX = minX
	m.originY = minY
	m.originCached = true
	return append([]ScreenData(nil), m.screens...)
}

func (m *monitorHelper) origin() (int32, int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.originCached {
		m.mu.Unlock()
		m.refresh()
		m.mu.Lock()
	}
	return m.originX, m.originY
}

var monitorEnumCallback func(hmon uintptr) uintptr

func monitorEnumCallbackPtr() uintptr {
	return newWindowsMonitorEnumCallback(func(hmon uintptr) uintptr {
		if monitorEnumCallback != nil {
			return monitorEnumCallback(hmon)
		}
		return 1
	})
}

func nativeCreateScreenInfo() []ScreenData {
	return winMonitors.refresh()
}
