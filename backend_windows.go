//go:build windows

package iohook

import (
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	whKeyboardLL = 13
	whMouseLL    = 14

	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105

	wmMouseMove   = 0x0200
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmRButtonDown = 0x0204
	wmRButtonUp   = 0x0205
	wmMButtonDown = 0x0207
	wmMButtonUp   = 0x0208
	wmMouseWheel  = 0x020A
	wmMouseHWheel = 0x020E
	wmXButtonDown = 0x020B
	wmXButtonUp   = 0x020C

	wmClose         = 0x0010
	wmDestroy       = 0x0002
	wmDisplayChange = 0x007E
	wmQuit          = 0x0012

	llKHFExtended = 0x01
	llKHFUp       = 0x80

	xbutton1 = 1
	xbutton2 = 2

	wsDisabled     = 0x08000000
	wsExNoActivate = 0x08000000
	swHide         = 0
)

var (
	user32                = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookExW  = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHook  = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx     = user32.NewProc("CallNextHookEx")
	procGetMessageW        = user32.NewProc("GetMessageW")
	procPostThreadMessageW = user32.NewProc("PostThreadMessageW")
	procTranslateMessage   = user32.NewProc("TranslateMessage")
	procDispatchMessageW   = user32.NewProc("DispatchMessageW")
	procRegisterClassExW   = user32.NewProc("RegisterClassExW")
	procCreateWindowExW    = user32.NewProc("CreateWindowExW")
	procDefWindowProcW     = user32.NewProc("DefWindowProcW")
	procDestroyWindow      = user32.NewProc("DestroyWindow")
	procShowWindow         = user32.NewProc("ShowWindow")
	procPostMessageW       = user32.NewProc("PostMessageW")
	procPostQuitMessage    = user32.NewProc("PostQuitMessage")
)

// wndClassExW mirrors WNDCLASSEXW, used to register the invisible
// window's class, per windows/input_hook.c's create_invisible_window.
type wndClassExW struct {
	CbSize        uint32
	Style         uint32
	LpfnWndProc   uintptr
	CbClsExtra    int32
	CbWndExtra    int32
	HInstance     uintptr
	HIcon         uintptr
	HCursor       uintptr
	HbrBackground uintptr
	LpszMenuName  *uint16
	LpszClassName *uint16
	HIconSm       uintptr
}

type kbdllhookstruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msllhookstruct struct {
	Pt          struct{ X, Y int32 }
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// windowsBackend installs the low-level keyboard/mouse hooks and pumps
// the message loop on a single dedicated thread, mirroring
// windows/input_hook.c's hook + invisible-window design.
type windowsBackend struct {
	mu        sync.Mutex
	threadID  uint32
	hwnd      uintptr
	kbdHook   uintptr
	mouseHook uintptr
	disp      *dispatcher
}

func newCaptureBackend() captureBackend { return &windowsBackend{} }

var activeWindowsBackend *windowsBackend

var (
	invisibleWindowClassOnce sync.Once
	invisibleWindowClassName *uint16
	invisibleWindowClassErr  error
)

// registerInvisibleWindowClass registers the window class backing the
// invisible window, mirroring create_invisible_window's RegisterClassEx
// call in windows/input_hook.c. The class is process-wide, so it is
// only ever registered once.
func registerInvisibleWindowClass(hInstance uintptr) error {
	invisibleWindowClassOnce.Do(func() {
		name, err := windows.UTF16PtrFromString("GoIOHookInvisibleWindow")
		if err != nil {
			invisibleWindowClassErr = ErrCreateInvisibleWindow
			return
		}
		wc := wndClassExW{
			CbSize:        uint32(unsafe.Sizeof(wndClassExW{})),
			LpfnWndProc:   newWindowsWndProc(invisibleWindowProc),
			HInstance:     hInstance,
			LpszClassName: name,
		}
		atom, _, _ := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc)))
		if atom == 0 {
			invisibleWindowClassErr = ErrCreateInvisibleWindow
			return
		}
		invisibleWindowClassName = name
	})
	return invisibleWindowClassErr
}

// createInvisibleWindow creates and hides the window used solely to
// receive WM_DISPLAYCHANGE, WM_CLOSE, and WM_DESTROY, per
// windows/input_hook.c's create_invisible_window. GetMessageW(NULL, ...)
// only delivers messages for windows the calling thread owns, so
// WM_DISPLAYCHANGE never arrives without this window existing.
func createInvisibleWindow(hInstance uintptr) (uintptr, error) {
	if err := registerInvisibleWindowClass(hInstance); err != nil {
		return 0, err
	}
	title, err := windows.UTF16PtrFromString("Hidden Window to Monitor Display Change Events")
	if err != nil {
		return 0, ErrCreateInvisibleWindow
	}
	hwnd, _, _ := procCreateWindowExW.Call(
		uintptr(wsExNoActivate),
		uintptr(unsafe.Pointer(invisibleWindowClassName)),
		uintptr(unsafe.Pointer(title)),
		uintptr(wsDisabled),
		0, 0, 1, 1,
		0, 0,
		hInstance,
		0,
	)
	if hwnd == 0 {
		return 0, ErrCreateInvisibleWindow
	}
	procShowWindow.Call(hwnd, uintptr(swHide))
	return hwnd, nil
}

// invisibleWindowProc is the WndProc for the invisible window, mirroring
// windows/input_hook.c's WndProc switch.
func invisibleWindowProc(hwnd, message, wParam, lParam uintptr) uintptr {
	switch uint32(message) {
	case wmClose:
		procDestroyWindow.Call(hwnd)
		return 0
	case wmDestroy:
		procPostQuitMessage.Call(0)
		return 0
	case wmDisplayChange:
		nativeCreateScreenInfo()
		return 0
	default:
		ret, _, _ := procDefWindowProcW.Call(hwnd, message, wParam, lParam)
		return ret
	}
}

func (b *windowsBackend) Start(disp *dispatcher, mode captureMode) error {
	b.disp = disp
	activeWindowsBackend = b

	runtimeLockOSThread()
	defer runtimeUnlockOSThread()

	b.mu.Lock()
	b.threadID = getCurrentThreadID()
	b.mu.Unlock()

	hInstance, err := getModuleHandle()
	if err != nil {
		return ErrGetModuleHandle
	}

	hwnd, err := createInvisibleWindow(hInstance)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.hwnd = hwnd
	b.mu.Unlock()

	if mode == modeBoth || mode == modeKeyboard {
		hook, _, _ := procSetWindowsHookExW.Call(
			uintptr(whKeyboardLL),
			windowsKeyboardProcPtr(),
			hInstance,
			0,
		)
		if hook == 0 {
			return ErrSetWindowsHookEx
		}
		b.kbdHook = hook
	}

	if mode == modeBoth || mode == modeMouse {
		hook, _, _ := procSetWindowsHookExW.Call(
			uintptr(whMouseLL),
			windowsMouseProcPtr(),
			hInstance,
			0,
		)
		if hook == 0 {
			if b.kbdHook != 0 {
				procUnhookWindowsHook.Call(b.kbdHook)
			}
			return ErrSetWindowsHookEx
		}
		b.mouseHook = hook
	}

	var m msg
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if int32(ret) <= 0 {
			break
		}
		// WM_DISPLAYCHANGE, WM_CLOSE, and WM_DESTROY for the invisible
		// window are dispatched to invisibleWindowProc from here.
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}

	b.unhook()
	return nil
}

func (b *windowsBackend) Stop() error {
	b.mu.Lock()
	tid := b.threadID
	hwnd := b.hwnd
	b.mu.Unlock()
	if hwnd != 0 {
		procPostMessageW.Call(hwnd, uintptr(wmClose), 0, 0)
	}
	if tid == 0 {
		return nil
	}
	procPostThreadMessageW.Call(uintptr(tid), uintptr(wmQuit), 0, 0)
	return nil
}

func (b *windowsBackend) unhook() {
	if b.kbdHook != 0 {
		procUnhookWindowsHook.Call(b.kbdHook)
		b.kbdHook = 0
	}
	if b.mouseHook != 0 {
		procUnhookWindowsHook.Call(b.mouseHook)
		b.mouseHook = 0
	}
}

const (
	vkLbutton = 0x01
	vkRbutton = 0x02
	vkMbutton = 0x04
	vkXbutton1 = 0x05
	vkXbutton2 = 0x06
)

// nativePollInitialModifiers polls every modifier key, mouse button,
// and lock key's held/toggled state via GetKeyState before the hook
// starts delivering events, per spec.md §4.2.
func nativePollInitialModifiers() ModifierMask {
	var mask ModifierMask

	held := func(vk int32) bool {
		state, _, _ := procGetKeyState.Call(uintptr(vk))
		return int16(state) < 0
	}
	toggled := func(vk int32) bool {
		state, _, _ := procGetKeyState.Call(uintptr(vk))
		return state&1 != 0
	}

	if held(vkLshift) {
		mask |= MaskShiftL
	}
	if held(vkRshift) {
		mask |= MaskShiftR
	}
	if held(vkLcontrol) {
		mask |= MaskCtrlL
	}
	if held(vkRcontrol) {
		mask |= MaskCtrlR
	}
	if held(vkLmenu) {
		mask |= MaskAltL
	}
	if held(vkRmenu) {
		mask |= MaskAltR
	}
	if held(vkLwin) {
		mask |= MaskMetaL
	}
	if held(vkRwin) {
		mask |= MaskMetaR
	}

	if held(vkLbutton) {
		mask |= MaskButton1
	}
	if held(vkRbutton) {
		mask |= MaskButton2
	}
	if held(vkMbutton) {
		mask |= MaskButton3
	}
	if held(vkXbutton1) {
		mask |= MaskButton4
	}
	if held(vkXbutton2) {
		mask |= MaskButton5
	}

	if toggled(vkCapital) {
		mask |= MaskCapsLock
	}
	if toggled(vkNumlock) {
		mask |= MaskNumLock
	}
	if toggled(vkScroll) {
		mask |= MaskScrollLock
	}

	return mask
}

func getModuleHandle() (uintptr, error) {
	h, err := windows.GetModuleHandle("")
	if err != nil {
		return 0, err
	}
	return uintptr(h), nil
}

func getCurrentThreadID() uint32 {
	return windows.GetCurrentThreadId()
}

// keyboardHookCallback is invoked by the OS on the hook thread for
// every low-level keyboard message. Returning a non-zero value
// suppresses the event from reaching the rest of the system.
func keyboardHookCallback(nCode int32, wParam uintptr, lParam *kbdllhookstruct) uintptr {
	b := activeWindowsBackend
	if nCode < 0 || b == nil || b.disp == nil {
		return callNextHookDefault(nCode, wParam, lParam)
	}

	native := uint16(lParam.VkCode)
	if lParam.Flags&llKHFExtended != 0 {
		native |= extendedKeyBit
	}

	var consumed bool
	switch wParam {
	case wmKeyDown, wmSysKeyDown:
		consumed = b.disp.KeyPressed(native, uint16(lParam.ScanCode), uint64(lParam.Time))
	case wmKeyUp, wmSysKeyUp:
		consumed = b.disp.KeyReleased(native, uint16(lParam.ScanCode), uint64(lParam.Time))
	}

	if consumed {
		return 1
	}
	return callNextHookDefault(nCode, wParam, lParam)
}

// mouseHookCallback is invoked for every low-level mouse message.
func mouseHookCallback(nCode int32, wParam uintptr, lParam *msllhookstruct) uintptr {
	b := activeWindowsBackend
	if nCode < 0 || b == nil || b.disp == nil {
		return callNextHookDefaultMouse(nCode, wParam, lParam)
	}

	x := int16(lParam.Pt.X)
	y := int16(lParam.Pt.Y)
	t := uint64(lParam.Time)

	var consumed bool
	switch wParam {
	case wmMouseMove:
		consumed = b.disp.Moved(x, y, t)
	case wmLButtonDown:
		consumed = b.disp.ButtonPressed(MouseButton1, x, y, t)
	case wmLButtonUp:
		consumed = b.disp.ButtonReleased(MouseButton1, x, y, t)
	case wmRButtonDown:
		consumed = b.disp.ButtonPressed(MouseButton2, x, y, t)
	case wmRButtonUp:
		consumed = b.disp.ButtonReleased(MouseButton2, x, y, t)
	case wmMButtonDown:
		consumed = b.disp.ButtonPressed(MouseButton3, x, y, t)
	case wmMButtonUp:
		consumed = b.disp.ButtonReleased(MouseButton3, x, y, t)
	case wmXButtonDown:
		button := xbuttonIndex(lParam.MouseData)
		consumed = b.disp.ButtonPressed(button, x, y, t)
	case wmXButtonUp:
		button := xbuttonIndex(lParam.MouseData)
		consumed = b.disp.ButtonReleased(button, x, y, t)
	case wmMouseWheel:
		rotation := int16(lParam.MouseData >> 16)
		consumed = b.disp.Wheel(rotation, uint16(absInt16(rotation)), WheelUnitScroll, WheelVertical, x, y, t)
	case wmMouseHWheel:
		rotation := int16(lParam.MouseData >> 16)
		consumed = b.disp.Wheel(rotation, uint16(absInt16(rotation)), WheelUnitScroll, WheelHorizontal, x, y, t)
	}

	if consumed {
		return 1
	}
	return callNextHookDefaultMouse(nCode, wParam, lParam)
}

// xbuttonIndex decodes the high word of mouseData for XBUTTON1/2 into
// the shared 1-5 mouse button index space (REDESIGN FLAG: the decoded
// button index is passed through, not a hard-coded button).
func xbuttonIndex(mouseData uint32) uint16 {
	switch uint16(mouseData >> 16) {
	case xbutton1:
		return MouseButton4
	case xbutton2:
		return MouseButton5
	default:
		return MouseNoButton
	}
}

func absInt16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}

func callNextHookDefault(nCode int32, wParam uintptr, lParam *kbdllhookstruct) uintptr {
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, uintptr(unsafe.Pointer(lParam)))
	return ret
}

func callNextHookDefaultMouse(nCode int32, wParam uintptr, lParam *msllhookstruct) uintptr {
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, uintptr(unsafe.Pointer(lParam)))
	return ret
}

// windowsKeyboardProcPtr and windowsMouseProcPtr delegate to
// callback_windows.go, which owns the syscall.NewCallback trampolines;
// kept separate so this file's logic stays testable by inspection
// without worrying about callback registration lifetime.
func windowsKeyboardProcPtr() uintptr {
	return newWindowsKeyboardCallback(keyboardHookCallback)
}

func windowsMouseProcPtr() uintptr {
	return newWindowsMouseCallback(mouseHookCallback)
}

// Low-level hooks are thread-affine: the hook and its message loop must
// live on the same OS thread for the hook to keep receiving callbacks.
func runtimeLockOSThread()   { runtime.LockOSThread() }
func runtimeUnlockOSThread() { runtime.UnlockOSThread() }
