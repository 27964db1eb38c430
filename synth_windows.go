//go:build windows

package iohook

import (
	"unicode/utf16"
	"unsafe"
)

var (
	procSendInput              = user32.NewProc("SendInput")
	procSystemParametersInfoW  = user32.NewProc("SystemParametersInfoW")
)

const (
	inputKeyboard = 1
	inputMouse    = 0

	keyEventFExtendedKey = 0x0001
	keyEventFKeyUp       = 0x0002
	keyEventFUnicode     = 0x0004

	mouseEventFMove       = 0x0001
	mouseEventFLeftDown   = 0x0002
	mouseEventFLeftUp     = 0x0004
	mouseEventFRightDown  = 0x0008
	mouseEventFRightUp    = 0x0010
	mouseEventFMiddleDown = 0x0020
	mouseEventFMiddleUp   = 0x0040
	mouseEventFXDown      = 0x0080
	mouseEventFXUp        = 0x0100
	mouseEventFWheel      = 0x0800
	mouseEventFHWheel     = 0x1000
	mouseEventFAbsolute   = 0x8000
	mouseEventFVirtualDesk = 0x4000

	spiGetKeyboardSpeed = 0x000A
	spiGetKeyboardDelay = 0x0016
)

type keybdInput struct {
	WVk         uint16
	WScan       uint16
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

type mouseInput struct {
	Dx          int32
	Dy          int32
	MouseData   uint32
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

// input is a manually laid-out INPUT union: Type selects which of the
// two payloads below is valid. Windows' INPUT struct is a C union, so
// the Go struct allocates room for the larger payload and both
// accessors alias the same bytes via unsafe.Pointer.
type input struct {
	Type    uint32
	_       uint32 // alignment pad, matches the compiler-inserted gap before the union on amd64
	payload [32]byte
}

func newKeyboardInput(ki keybdInput) input {
	var in input
	in.Type = inputKeyboard
	*(*keybdInput)(unsafe.Pointer(&in.payload[0])) = ki
	return in
}

func newMouseInput(mi mouseInput) input {
	var in input
	in.Type = inputMouse
	*(*mouseInput)(unsafe.Pointer(&in.payload[0])) = mi
	return in
}

func sendInputs(inputs []input) error {
	if len(inputs) == 0 {
		return nil
	}
	ret, _, _ := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(ret) != len(inputs) {
		return ErrFailure
	}
	return nil
}

// nativePostEvent synthesizes evt via SendInput, normalizing absolute
// mouse coordinates through the cached virtual-screen origin so
// multi-monitor setups with negative-origin monitors land correctly in
// SendInput's [0,65535] absolute space.
func nativePostEvent(evt *VirtualEvent) error {
	switch evt.Type {
	case EventKeyPressed, EventKeyReleased:
		return postKeySynth(evt)
	case EventMousePressed, EventMouseReleased, EventMousePressedIgnoreCoords, EventMouseReleasedIgnoreCoords:
		return postButtonSynth(evt)
	case EventMouseMoved, EventMouseDragged, EventMouseMovedRelativeToCursor:
		return postMoveSynth(evt)
	case EventMouseWheel:
		return postWheelSynth(evt)
	default:
		return ErrFailure
	}
}

func postKeySynth(evt *VirtualEvent) error {
	vk, ok := windowsCodeTable{}.VirtualToNative(evt.Keyboard.KeyCode)
	if !ok {
		return ErrFailure
	}
	var flags uint32
	if vk&extendedKeyBit != 0 {
		flags |= keyEventFExtendedKey
	}
	if evt.Type == EventKeyReleased {
		flags |= keyEventFKeyUp
	}
	ki := keybdInput{WVk: vk &^ extendedKeyBit, DwFlags: flags}
	return sendInputs([]input{newKeyboardInput(ki)})
}

func postButtonSynth(evt *VirtualEvent) error {
	pressed := evt.Type == EventMousePressed || evt.Type == EventMousePressedIgnoreCoords
	var flags uint32
	var mouseData uint32

	switch evt.Mouse.Button {
	case MouseButton1:
		flags = pickFlag(pressed, mouseEventFLeftDown, mouseEventFLeftUp)
	case MouseButton2:
		flags = pickFlag(pressed, mouseEventFRightDown, mouseEventFRightUp)
	case MouseButton3:
		flags = pickFlag(pressed, mouseEventFMiddleDown, mouseEventFMiddleUp)
	case MouseButton4:
		flags = pickFlag(pressed, mouseEventFXDown, mouseEventFXUp)
		mouseData = xbutton1
	case MouseButton5:
		flags = pickFlag(pressed, mouseEventFXDown, mouseEventFXUp)
		mouseData = xbutton2
	default:
		return ErrFailure
	}

	ignoreCoords := evt.Type == EventMousePressedIgnoreCoords || evt.Type == EventMouseReleasedIgnoreCoords
	mi := mouseInput{MouseData: mouseData, DwFlags: flags}
	if !ignoreCoords {
		nx, ny := normalizeAbsolute(evt.Mouse.X, evt.Mouse.Y)
		mi.Dx, mi.Dy = nx, ny
		mi.DwFlags |= mouseEventFAbsolute | mouseEventFMove | mouseEventFVirtualDesk
	}
	return sendInputs([]input{newMouseInput(mi)})
}

func postMoveSynth(evt *VirtualEvent) error {
	flags := uint32(mouseEventFMove)
	var dx, dy int32
	if evt.Type == EventMouseMovedRelativeToCursor {
		dx, dy = int32(evt.Mouse.X), int32(evt.Mouse.Y)
	} else {
		dx, dy = normalizeAbsolute(evt.Mouse.X, evt.Mouse.Y)
		flags |= mouseEventFAbsolute | mouseEventFVirtualDesk
	}
	mi := mouseInput{Dx: dx, Dy: dy, DwFlags: flags}
	return sendInputs([]input{newMouseInput(mi)})
}

func postWheelSynth(evt *VirtualEvent) error {
	flags := uint32(mouseEventFWheel)
	if evt.Wheel.Direction == WheelHorizontal {
		flags = mouseEventFHWheel
	}
	mi := mouseInput{MouseData: uint32(int32(evt.Wheel.Rotation)), DwFlags: flags}
	return sendInputs([]input{newMouseInput(mi)})
}

func pickFlag(pressed bool, down, up uint32) uint32 {
	if pressed {
		return down
	}
	return up
}

// normalizeAbsolute maps a desktop coordinate into SendInput's
// [0,65535] absolute space, accounting for the virtual screen's
// most-negative origin (windows/monitor_helper.c).
func normalizeAbsolute(x, y int16) (int32, int32) {
	originX, originY := winMonitors.origin()
	vw, _, _ := procGetSystemMetrics.Call(uintptr(smCxVirtualScreen))
	vh, _, _ := procGetSystemMetrics.Call(uintptr(smCyVirtualScreen))
	if vw == 0 {
		vw = 1
	}
	if vh == 0 {
		vh = 1
	}
	nx := mulDiv(int32(x)-originX, 65535, int32(vw))
	ny := mulDiv(int32(y)-originY, 65535, int32(vh))
	return nx, ny
}

// mulDiv reproduces Win32 MulDiv's round-to-nearest (ties away from
// zero) semantics; a truncating division would make the S4 coordinate
// round-trip test land one LSB short at the high end of each screen.
func mulDiv(a, b, c int32) int32 {
	num := int64(a) * int64(b)
	den := int64(c)
	if (num < 0) != (den < 0) {
		return int32((num - den/2) / den)
	}
	return int32((num + den/2) / den)
}

// nativePostText synthesizes text by sending a KEYEVENTF_UNICODE
// down/up pair per UTF-16 code unit, including surrogate pairs.
func nativePostText(text string) error {
	units := utf16.Encode([]rune(text))
	inputs := make([]input, 0, len(units)*2)
	for _, u := range units {
		inputs = append(inputs,
			newKeyboardInput(keybdInput{WScan: u, DwFlags: keyEventFUnicode}),
			newKeyboardInput(keybdInput{WScan: u, DwFlags: keyEventFUnicode | keyEventFKeyUp}),
		)
	}
	return sendInputs(inputs)
}

func nativeGetPostTextDelayX11() uint32      { return 0 }
func nativeSetPostTextDelayX11(_ uint32)     {}

func nativeGetAutoRepeatRate() (int32, error) {
	var speed uint32
	ret, _, _ := procSystemParametersInfoW.Call(uintptr(spiGetKeyboardSpeed), 0, uintptr(unsafe.Pointer(&speed)), 0)
	if ret == 0 {
		return 0, ErrFailure
	}
	return int32(speed), nil
}

func nativeGetAutoRepeatDelay() (int32, error) {
	var delay uint32
	ret, _, _ := procSystemParametersInfoW.Call(uintptr(spiGetKeyboardDelay), 0, uintptr(unsafe.Pointer(&delay)), 0)
	if ret == 0 {
		return 0, ErrFailure
	}
	return int32(delay), nil
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
