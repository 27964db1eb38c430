package iohook

// VirtualCode is a stable, platform-independent identifier for a
// physical key or logical input action. See uiohook's VC_* space;
// values are held constant across platforms so a consumer never has to
// branch on GOOS to interpret a keycode.
type VirtualCode uint16

// VC_UNDEFINED means "no mapping": the native code had no corresponding
// virtual code on this platform. Events carrying it are still
// dispatched, but they are never synthesizable (PostEvent rejects them).
const VCUndefined VirtualCode = 0x0000

// CharUndefined marks a keyboard_event_data.KeyChar that does not carry
// a typed character (i.e. no KEY_TYPED should be derived from it).
const CharUndefined uint16 = 0xFFFF

// Function keys.
const (
	VCEscape VirtualCode = 0x001B

	VCF1  VirtualCode = 0x0070
	VCF2  VirtualCode = 0x0071
	VCF3  VirtualCode = 0x0072
	VCF4  VirtualCode = 0x0073
	VCF5  VirtualCode = 0x0074
	VCF6  VirtualCode = 0x0075
	VCF7  VirtualCode = 0x0076
	VCF8  VirtualCode = 0x0077
	VCF9  VirtualCode = 0x0078
	VCF10 VirtualCode = 0x0079
	VCF11 VirtualCode = 0x007A
	VCF12 VirtualCode = 0x007B

	VCF13 VirtualCode = 0xF000
	VCF14 VirtualCode = 0xF001
	VCF15 VirtualCode = 0xF002
	VCF16 VirtualCode = 0xF003
	VCF17 VirtualCode = 0xF004
	VCF18 VirtualCode = 0xF005
	VCF19 VirtualCode = 0xF006
	VCF20 VirtualCode = 0xF007
	VCF21 VirtualCode = 0xF008
	VCF22 VirtualCode = 0xF009
	VCF23 VirtualCode = 0xF00A
	VCF24 VirtualCode = 0xF00B
)

// Alphanumeric zone.
const (
	VCBackQuote VirtualCode = 0x00C0

	VC0 VirtualCode = 0x0030
	VC1 VirtualCode = 0x0031
	VC2 VirtualCode = 0x0032
	VC3 VirtualCode = 0x0033
	VC4 VirtualCode = 0x0034
	VC5 VirtualCode = 0x0035
	VC6 VirtualCode = 0x0036
	VC7 VirtualCode = 0x0037
	VC8 VirtualCode = 0x0038
	VC9 VirtualCode = 0x0039

	VCMinus  VirtualCode = 0x002D
	VCEquals VirtualCode = 0x003D

	VCBackspace VirtualCode = 0x0008

	VCTab      VirtualCode = 0x0009
	VCCapsLock VirtualCode = 0x0014

	VCA VirtualCode = 0x0041
	VCB VirtualCode = 0x0042
	VCC VirtualCode = 0x0043
	VCD VirtualCode = 0x0044
	VCE VirtualCode = 0x0045
	VCF VirtualCode = 0x0046
	VCG VirtualCode = 0x0047
	VCH VirtualCode = 0x0048
	VCI VirtualCode = 0x0049
	VCJ VirtualCode = 0x004A
	VCK VirtualCode = 0x004B
	VCL VirtualCode = 0x004C
	VCM VirtualCode = 0x004D
	VCN VirtualCode = 0x004E
	VCO VirtualCode = 0x004F
	VCP VirtualCode = 0x0050
	VCQ VirtualCode = 0x0051
	VCR VirtualCode = 0x0052
	VCS VirtualCode = 0x0053
	VCT VirtualCode = 0x0054
	VCU VirtualCode = 0x0055
	VCV VirtualCode = 0x0056
	VCW VirtualCode = 0x0057
	VCX VirtualCode = 0x0058
	VCY VirtualCode = 0x0059
	VCZ VirtualCode = 0x005A

	VCOpenBracket  VirtualCode = 0x005B
	VCCloseBracket VirtualCode = 0x005C
	VCBackSlash    VirtualCode = 0x005D

	VCSemicolon VirtualCode = 0x003B
	VCQuote     VirtualCode = 0x00DE
	VCEnter     VirtualCode = 0x000A

	VCComma  VirtualCode = 0x002C
	VCPeriod VirtualCode = 0x002E
	VCSlash  VirtualCode = 0x002F

	VCSpace VirtualCode = 0x0020

	VC102  VirtualCode = 0x0099
	VCMisc VirtualCode = 0x0E01
)

// Edit key zone.
const (
	VCPrintScreen VirtualCode = 0x009A
	VCPrint       VirtualCode = 0x009C
	VCSelect      VirtualCode = 0x009D
	VCExecute     VirtualCode = 0x009E
	VCScrollLock  VirtualCode = 0x0091
	VCPause       VirtualCode = 0x0013
	VCCancel      VirtualCode = 0x00D3
	VCHelp        VirtualCode = 0x009F

	VCInsert   VirtualCode = 0x009B
	VCDelete   VirtualCode = 0x007F
	VCHome     VirtualCode = 0x0024
	VCEnd      VirtualCode = 0x0023
	VCPageUp   VirtualCode = 0x0021
	VCPageDown VirtualCode = 0x0022
)

// Cursor key zone.
const (
	VCUp    VirtualCode = 0x0026
	VCLeft  VirtualCode = 0x0025
	VCRight VirtualCode = 0x0027
	VCDown  VirtualCode = 0x0028
)

// Numeric zone.
const (
	VCNumLock VirtualCode = 0x0090

	VCKPClear    VirtualCode = 0x000C
	VCKPDivide   VirtualCode = 0x006F
	VCKPMultiply VirtualCode = 0x006A
	VCKPSubtract VirtualCode = 0x006D
	VCKPEquals   VirtualCode = 0x007C
	VCKPAdd      VirtualCode = 0x006B
	VCKPEnter    VirtualCode = 0x007D
	VCKPDecimal  VirtualCode = 0x006E
	VCKPSeparator VirtualCode = 0x006C
	VCKPPlusMinus VirtualCode = 0x007E

	VCKP0 VirtualCode = 0x0060
	VCKP1 VirtualCode = 0x0061
	VCKP2 VirtualCode = 0x0062
	VCKP3 VirtualCode = 0x0063
	VCKP4 VirtualCode = 0x0064
	VCKP5 VirtualCode = 0x0065
	VCKP6 VirtualCode = 0x0066
	VCKP7 VirtualCode = 0x0067
	VCKP8 VirtualCode = 0x0068
	VCKP9 VirtualCode = 0x0069

	VCKPOpenParenthesis  VirtualCode = 0xEE01
	VCKPCloseParenthesis VirtualCode = 0xEE02
)

// Modifier and control keys.
const (
	VCShiftL   VirtualCode = 0xA010
	VCShiftR   VirtualCode = 0xB010
	VCControlL VirtualCode = 0xA011
	VCControlR VirtualCode = 0xB011
	VCAltL     VirtualCode = 0xA012
	VCAltR     VirtualCode = 0xB012
	VCMetaL    VirtualCode = 0xA09D
	VCMetaR    VirtualCode = 0xB09D

	VCContextMenu        VirtualCode = 0x020D
	VCFunction           VirtualCode = 0x020E // macOS only
	VCChangeInputSource  VirtualCode = 0x020F // macOS only
)

// Shortcut keys.
const (
	VCPower VirtualCode = 0xE05E
	VCSleep VirtualCode = 0xE05F
	VCWake  VirtualCode = 0xE063

	VCMedia         VirtualCode = 0xE023
	VCMediaPlay     VirtualCode = 0xE022
	VCMediaStop     VirtualCode = 0xE024
	VCMediaPrevious VirtualCode = 0xE010
	VCMediaNext     VirtualCode = 0xE019
	VCMediaSelect   VirtualCode = 0xE06D
	VCMediaEject    VirtualCode = 0xE02C
	VCMediaClose    VirtualCode = 0xE02D
	VCMediaEjectClose VirtualCode = 0xE02F
	VCMediaRecord   VirtualCode = 0xE031
	VCMediaRewind   VirtualCode = 0xE033

	VCVolumeMute VirtualCode = 0xE020
	VCVolumeDown VirtualCode = 0xE030
	VCVolumeUp   VirtualCode = 0xE02E

	VCAttn      VirtualCode = 0xE090
	VCCrSel     VirtualCode = 0xE091
	VCExSel     VirtualCode = 0xE092
	VCEraseEOF  VirtualCode = 0xE093
	VCPlay      VirtualCode = 0xE094
	VCZoom      VirtualCode = 0xE095
	VCNoName    VirtualCode = 0xE096
	VCPA1       VirtualCode = 0xE097

	VCApp1          VirtualCode = 0xE026
	VCApp2          VirtualCode = 0xE027
	VCApp3          VirtualCode = 0xE028
	VCApp4          VirtualCode = 0xE029
	VCAppBrowser    VirtualCode = 0xE025
	VCAppCalculator VirtualCode = 0xE021
	VCAppMail       VirtualCode = 0xE06C

	VCBrowserSearch    VirtualCode = 0xE065
	VCBrowserHome      VirtualCode = 0xE032
	VCBrowserBack      VirtualCode = 0xE06A
	VCBrowserForward   VirtualCode = 0xE069
	VCBrowserStop      VirtualCode = 0xE068
	VCBrowserRefresh   VirtualCode = 0xE067
	VCBrowserFavorites VirtualCode = 0xE066
)

// Asian language keys.
const (
	VCKatakanaHiragana VirtualCode = 0x0106
	VCKatakana         VirtualCode = 0x00F1
	VCHiragana         VirtualCode = 0x00F2
	VCKana             VirtualCode = 0x0015
	VCKanji            VirtualCode = 0x0019
	VCHangul           VirtualCode = 0x00E9
	VCJunja            VirtualCode = 0x00E8
	VCFinal            VirtualCode = 0x00E7
	VCHanja            VirtualCode = 0x00E6

	VCAccept     VirtualCode = 0x001E
	VCConvert    VirtualCode = 0x001C
	VCNonConvert VirtualCode = 0x001D
	VCIMEOn      VirtualCode = 0x0109
	VCIMEOff     VirtualCode = 0x0108
	VCModeChange VirtualCode = 0x0107
	VCProcess    VirtualCode = 0x0105

	VCAlphanumeric VirtualCode = 0x00F0
	VCUnderscore   VirtualCode = 0x020B
	VCYen          VirtualCode = 0x020C
	VCJPComma      VirtualCode = 0x0210
)

// Other Linux keys, retained for completeness of the shared identifier
// space even though most have no Windows/macOS native code.
const (
	VCStop  VirtualCode = 0xFF78
	VCProps VirtualCode = 0xFF76
	VCFront VirtualCode = 0xFF77
	VCOpen  VirtualCode = 0xFF74
	VCFind  VirtualCode = 0xFF70
	VCAgain VirtualCode = 0xFF79
	VCUndo  VirtualCode = 0xFF7A
	VCRedo  VirtualCode = 0xFF7F
	VCCopy  VirtualCode = 0xFF7C
	VCPaste VirtualCode = 0xFF7D
	VCCut   VirtualCode = 0xFF7B

	VCLineFeed             VirtualCode = 0xC001
	VCMacro                VirtualCode = 0xC002
	VCScale                VirtualCode = 0xC003
	VCSetup                VirtualCode = 0xC004
	VCFile                 VirtualCode = 0xC005
	VCSendFile             VirtualCode = 0xC006
	VCDeleteFile           VirtualCode = 0xC007
	VCMSDos                VirtualCode = 0xC008
	VCLock                 VirtualCode = 0xC009
	VCRotateDisplay        VirtualCode = 0xC00A
	VCCycleWindows         VirtualCode = 0xC00B
	VCComputer             VirtualCode = 0xC00C
	VCPhone                VirtualCode = 0xC00D
	VCISO                  VirtualCode = 0xC00E
	VCConfig               VirtualCode = 0xC00F
	VCExit                 VirtualCode = 0xC010
	VCMove                 VirtualCode = 0xC011
	VCEdit                 VirtualCode = 0xC012
	VCScrollUp             VirtualCode = 0xC013
	VCScrollDown           VirtualCode = 0xC014
	VCNew                  VirtualCode = 0xC015
	VCPlayCD               VirtualCode = 0xC016
	VCPauseCD              VirtualCode = 0xC017
	VCDashboard            VirtualCode = 0xC018
	VCSuspend              VirtualCode = 0xC019
	VCClose                VirtualCode = 0xC01A
	VCFastForward          VirtualCode = 0xC01C
	VCBassBoost            VirtualCode = 0xC01D
	VCHP                   VirtualCode = 0xC01E
	VCCamera               VirtualCode = 0xC01F
	VCSound                VirtualCode = 0xC020
	VCQuestion             VirtualCode = 0xC021
	VCEmail                VirtualCode = 0xC022
	VCChat                 VirtualCode = 0xC023
	VCConnect              VirtualCode = 0xC024
	VCFinance              VirtualCode = 0xC025
	VCSport                VirtualCode = 0xC026
	VCShop                 VirtualCode = 0xC027
	VCAltErase             VirtualCode = 0xC028
	VCBrightnessDown       VirtualCode = 0xC029
	VCBrightnessUp         VirtualCode = 0xC02A
	VCBrightnessCycle      VirtualCode = 0xC02B
	VCBrightnessAuto       VirtualCode = 0xC02C
	VCSwitchVideoMode      VirtualCode = 0xC02D
	VCKeyboardLightToggle  VirtualCode = 0xC02E
	VCKeyboardLightDown    VirtualCode = 0xC02F
	VCKeyboardLightUp      VirtualCode = 0xC030
	VCSend                 VirtualCode = 0xC031
	VCReply                VirtualCode = 0xC032
	VCForwardMail          VirtualCode = 0xC033
	VCSave                 VirtualCode = 0xC034
	VCDocuments            VirtualCode = 0xC035
	VCBattery              VirtualCode = 0xC036
	VCBluetooth            VirtualCode = 0xC037
	VCWLAN                 VirtualCode = 0xC038
	VCUWB                  VirtualCode = 0xC039
	VCX11Unknown           VirtualCode = 0xC03A
	VCVideoNext            VirtualCode = 0xC03B
	VCVideoPrevious        VirtualCode = 0xC03C
	VCDisplayOff           VirtualCode = 0xC03D
	VCWWAN                 VirtualCode = 0xC03E
	VCRFKill               VirtualCode = 0xC03F
)

// ModifierMask is a process-wide bitmask of currently-held modifiers and
// mouse buttons (C2).
type ModifierMask uint16

// Modifier bits.
const (
	MaskShiftL ModifierMask = 1 << 0
	MaskCtrlL  ModifierMask = 1 << 1
	MaskMetaL  ModifierMask = 1 << 2
	MaskAltL   ModifierMask = 1 << 3

	MaskShiftR ModifierMask = 1 << 4
	MaskCtrlR  ModifierMask = 1 << 5
	MaskMetaR  ModifierMask = 1 << 6
	MaskAltR   ModifierMask = 1 << 7

	MaskButton1 ModifierMask = 1 << 8
	MaskButton2 ModifierMask = 1 << 9
	MaskButton3 ModifierMask = 1 << 10
	MaskButton4 ModifierMask = 1 << 11
	MaskButton5 ModifierMask = 1 << 12

	MaskNumLock    ModifierMask = 1 << 13
	MaskCapsLock   ModifierMask = 1 << 14
	MaskScrollLock ModifierMask = 1 << 15
)

// Aggregate masks: bitwise union of the L/R sides.
const (
	MaskShift = MaskShiftL | MaskShiftR
	MaskCtrl  = MaskCtrlL | MaskCtrlR
	MaskMeta  = MaskMetaL | MaskMetaR
	MaskAlt   = MaskAltL | MaskAltR
)

// MaskForModifier returns the ModifierMask bit a given modifier
// VirtualCode contributes, or 0 if vc is not a modifier key.
func MaskForModifier(vc VirtualCode) ModifierMask {
	switch vc {
	case VCShiftL:
		return MaskShiftL
	case VCShiftR:
		return MaskShiftR
	case VCControlL:
		return MaskCtrlL
	case VCControlR:
		return MaskCtrlR
	case VCMetaL:
		return MaskMetaL
	case VCMetaR:
		return MaskMetaR
	case VCAltL:
		return MaskAltL
	case VCAltR:
		return MaskAltR
	case VCCapsLock:
		return MaskCapsLock
	case VCNumLock:
		return MaskNumLock
	case VCScrollLock:
		return MaskScrollLock
	default:
		return 0
	}
}

// MaskForButton returns the ModifierMask bit for mouse button 1-5, or 0.
func MaskForButton(button uint16) ModifierMask {
	switch button {
	case MouseButton1:
		return MaskButton1
	case MouseButton2:
		return MaskButton2
	case MouseButton3:
		return MaskButton3
	case MouseButton4:
		return MaskButton4
	case MouseButton5:
		return MaskButton5
	default:
		return 0
	}
}

// Mouse button identifiers.
const (
	MouseNoButton uint16 = 0
	MouseButton1  uint16 = 1 // left
	MouseButton2  uint16 = 2 // right
	MouseButton3  uint16 = 3 // middle
	MouseButton4  uint16 = 4
	MouseButton5  uint16 = 5
)

// Wheel scroll type / direction.
const (
	WheelUnitScroll  uint8 = 1
	WheelBlockScroll uint8 = 2

	WheelVertical   uint8 = 3
	WheelHorizontal uint8 = 4
)

// EventType tags a VirtualEvent's payload.
type EventType uint8

const (
	EventHookEnabled EventType = iota + 1
	EventHookDisabled
	EventKeyTyped
	EventKeyPressed
	EventKeyReleased
	EventMouseClicked
	EventMousePressed
	EventMouseReleased
	EventMouseMoved
	EventMouseDragged
	EventMouseWheel
	EventMousePressedIgnoreCoords
	EventMouseReleasedIgnoreCoords
	EventMouseMovedRelativeToCursor
)

func (t EventType) String() string {
	switch t {
	case EventHookEnabled:
		return "HOOK_ENABLED"
	case EventHookDisabled:
		return "HOOK_DISABLED"
	case EventKeyTyped:
		return "KEY_TYPED"
	case EventKeyPressed:
		return "KEY_PRESSED"
	case EventKeyReleased:
		return "KEY_RELEASED"
	case EventMouseClicked:
		return "MOUSE_CLICKED"
	case EventMousePressed:
		return "MOUSE_PRESSED"
	case EventMouseReleased:
		return "MOUSE_RELEASED"
	case EventMouseMoved:
		return "MOUSE_MOVED"
	case EventMouseDragged:
		return "MOUSE_DRAGGED"
	case EventMouseWheel:
		return "MOUSE_WHEEL"
	case EventMousePressedIgnoreCoords:
		return "MOUSE_PRESSED_IGNORE_COORDS"
	case EventMouseReleasedIgnoreCoords:
		return "MOUSE_RELEASED_IGNORE_COORDS"
	case EventMouseMovedRelativeToCursor:
		return "MOUSE_MOVED_RELATIVE_TO_CURSOR"
	default:
		return "UNKNOWN"
	}
}

// KeyboardData is the payload for KEY_PRESSED/KEY_RELEASED/KEY_TYPED.
type KeyboardData struct {
	KeyCode VirtualCode
	RawCode uint16
	KeyChar uint16 // UTF-16 code unit; CharUndefined when not typed
}

// MouseData is the payload for MOUSE_{CLICKED,PRESSED,RELEASED,MOVED,DRAGGED}.
type MouseData struct {
	Button uint16
	Clicks uint16
	X      int16
	Y      int16
}

// WheelData is the payload for MOUSE_WHEEL.
type WheelData struct {
	X         int16
	Y         int16
	Type      uint8
	Rotation  int16
	Delta     uint16
	Direction uint8
}

// VirtualEvent is the normalized, platform-independent event record C5
// builds and dispatches. Only one of Keyboard/Mouse/Wheel is meaningful,
// selected by Type. Lifetime: stack-allocated per event, valid only for
// the duration of the synchronous dispatch call.
type VirtualEvent struct {
	Type EventType
	Time uint64 // milliseconds on the platform's own event clock, not Unix-epoch time
	Mask ModifierMask

	Keyboard KeyboardData
	Mouse    MouseData
	Wheel    WheelData

	// Consumed is set by the dispatch callback to request the OS not
	// deliver this event further. The alternative boolean-return
	// calling convention is not used here: the field form lets one
	// dispatcher signature serve both capture and replay paths.
	Consumed bool
}

// DispatchFunc is the user-supplied event handler signature installed
// via SetDispatchProc. It runs synchronously on the hook thread.
type DispatchFunc func(event *VirtualEvent)
