//go:build windows

package iohook

// Windows virtual-key codes (winuser.h VK_*). Defined locally rather
// than pulled from golang.org/x/sys/windows, which does not export the
// VK_* space; x/sys/windows is still used for the syscalls themselves
// in backend_windows.go and synth_windows.go.
const (
	vkBack       = 0x08
	vkTab        = 0x09
	vkClear      = 0x0C
	vkReturn     = 0x0D
	vkShift      = 0x10
	vkControl    = 0x11
	vkMenu       = 0x12
	vkPause      = 0x13
	vkCapital    = 0x14
	vkKana       = 0x15
	vkJunja      = 0x17
	vkFinal      = 0x18
	vkHanja      = 0x19
	vkEscape     = 0x1B
	vkConvert    = 0x1C
	vkNonconvert = 0x1D
	vkAccept     = 0x1E
	vkModechange = 0x1F
	vkSpace      = 0x20
	vkPrior      = 0x21
	vkNext       = 0x22
	vkEnd        = 0x23
	vkHome       = 0x24
	vkLeft       = 0x25
	vkUp         = 0x26
	vkRight      = 0x27
	vkDown       = 0x28
	vkSelect     = 0x29
	vkPrint      = 0x2A
	vkExecute    = 0x2B
	vkSnapshot   = 0x2C
	vkInsert     = 0x2D
	vkDelete     = 0x2E
	vkHelp       = 0x2F

	vk0 = 0x30
	vk1 = 0x31
	vk2 = 0x32
	vk3 = 0x33
	vk4 = 0x34
	vk5 = 0x35
	vk6 = 0x36
	vk7 = 0x37
	vk8 = 0x38
	vk9 = 0x39

	vkA = 0x41
	vkB = 0x42
	vkC = 0x43
	vkD = 0x44
	vkE = 0x45
	vkF = 0x46
	vkG = 0x47
	vkH = 0x48
	vkI = 0x49
	vkJ = 0x4A
	vkK = 0x4B
	vkL = 0x4C
	vkM = 0x4D
	vkN = 0x4E
	vkO = 0x4F
	vkP = 0x50
	vkQ = 0x51
	vkR = 0x52
	vkS = 0x53
	vkT = 0x54
	vkU = 0x55
	vkV = 0x56
	vkW = 0x57
	vkX = 0x58
	vkY = 0x59
	vkZ = 0x5A

	vkLwin = 0x5B
	vkRwin = 0x5C
	vkApps = 0x5D
	vkSleep = 0x5F

	vkNumpad0   = 0x60
	vkNumpad1   = 0x61
	vkNumpad2   = 0x62
	vkNumpad3   = 0x63
	vkNumpad4   = 0x64
	vkNumpad5   = 0x65
	vkNumpad6   = 0x66
	vkNumpad7   = 0x67
	vkNumpad8   = 0x68
	vkNumpad9   = 0x69
	vkMultiply  = 0x6A
	vkAdd       = 0x6B
	vkSeparator = 0x6C
	vkSubtract  = 0x6D
	vkDecimal   = 0x6E
	vkDivide    = 0x6F

	vkF1  = 0x70
	vkF2  = 0x71
	vkF3  = 0x72
	vkF4  = 0x73
	vkF5  = 0x74
	vkF6  = 0x75
	vkF7  = 0x76
	vkF8  = 0x77
	vkF9  = 0x78
	vkF10 = 0x79
	vkF11 = 0x7A
	vkF12 = 0x7B
	vkF13 = 0x7C
	vkF14 = 0x7D
	vkF15 = 0x7E
	vkF16 = 0x7F
	vkF17 = 0x80
	vkF18 = 0x81
	vkF19 = 0x82
	vkF20 = 0x83
	vkF21 = 0x84
	vkF22 = 0x85
	vkF23 = 0x86
	vkF24 = 0x87

	vkNumlock = 0x90
	vkScroll  = 0x91

	vkLshift   = 0xA0
	vkRshift   = 0xA1
	vkLcontrol = 0xA2
	vkRcontrol = 0xA3
	vkLmenu    = 0xA4
	vkRmenu    = 0xA5

	vkBrowserBack      = 0xA6
	vkBrowserForward   = 0xA7
	vkBrowserRefresh   = 0xA8
	vkBrowserStop      = 0xA9
	vkBrowserSearch    = 0xAA
	vkBrowserFavorites = 0xAB
	vkBrowserHome      = 0xAC

	vkVolumeMute = 0xAD
	vkVolumeDown = 0xAE
	vkVolumeUp   = 0xAF

	vkMediaNextTrack = 0xB0
	vkMediaPrevTrack = 0xB1
	vkMediaStop      = 0xB2
	vkMediaPlayPause = 0xB3
	vkLaunchMail     = 0xB4
	vkLaunchApp1     = 0xB6
	vkLaunchApp2     = 0xB7

	vkOem1      = 0xBA // ;:
	vkOemPlus   = 0xBB // =+
	vkOemComma  = 0xBC
	vkOemMinus  = 0xBD
	vkOemPeriod = 0xBE
	vkOem2      = 0xBF // /?
	vkOem3      = 0xC0 // `~

	vkOem4 = 0xDB // [{
	vkOem5 = 0xDC // \|
	vkOem6 = 0xDD // ]}
	vkOem7 = 0xDE // '"
	vkOem102 = 0xE2

	vkProcesskey = 0xE5
)

// windowsCodeTable implements codeTable with the VK_* <-> VirtualCode
// mapping. Several VC_* identifiers share a VK (e.g. VC_ENTER and
// VC_KP_ENTER both report vkReturn); the hook's LLKHF_EXTENDED flag
// disambiguates them, so the capture backend folds it into the native
// code as extendedKeyBit and the native-to-virtual lookup can pick the
// numpad variant.
type windowsCodeTable struct{}

func newCodeTable() codeTable { return windowsCodeTable{} }

const extendedKeyBit uint16 = 0x0100

func (windowsCodeTable) NativeToVirtual(native uint16) VirtualCode {
	extended := native&extendedKeyBit != 0
	vk := native &^ extendedKeyBit

	switch vk {
	case vkReturn:
		if extended {
			return VCKPEnter
		}
		return VCEnter
	case vkControl:
		if extended {
			return VCControlR
		}
		return VCControlL
	case vkMenu:
		if extended {
			return VCAltR
		}
		return VCAltL
	case vkShift:
		return VCShiftL
	case vkLshift:
		return VCShiftL
	case vkRshift:
		return VCShiftR
	case vkLcontrol:
		return VCControlL
	case vkRcontrol:
		return VCControlR
	case vkLmenu:
		return VCAltL
	case vkRmenu:
		return VCAltR
	case vkLwin:
		return VCMetaL
	case vkRwin:
		return VCMetaR
	case vkDelete:
		if !extended {
			return VCKPDecimal
		}
		return VCDelete
	case vkInsert:
		if !extended {
			return VCKP0
		}
		return VCInsert
	case vkHome:
		if !extended {
			return VCKP7
		}
		return VCHome
	case vkEnd:
		if !extended {
			return VCKP1
		}
		return VCEnd
	case vkPrior:
		if !extended {
			return VCKP9
		}
		return VCPageUp
	case vkNext:
		if !extended {
			return VCKP3
		}
		return VCPageDown
	case vkUp:
		if !extended {
			return VCKP8
		}
		return VCUp
	case vkDown:
		if !extended {
			return VCKP2
		}
		return VCDown
	case vkLeft:
		if !extended {
			return VCKP4
		}
		return VCLeft
	case vkRight:
		if !extended {
			return VCKP6
		}
		return VCRight
	}

	if vc, ok := vkSimpleTable[vk]; ok {
		return vc
	}
	return VCUndefined
}

func (windowsCodeTable) VirtualToNative(vc VirtualCode) (uint16, bool) {
	switch vc {
	case VCEnter:
		return vkReturn, true
	case VCKPEnter:
		return vkReturn | extendedKeyBit, true
	case VCControlL:
		return vkLcontrol, true
	case VCControlR:
		return vkRcontrol | extendedKeyBit, true
	case VCAltL:
		return vkLmenu, true
	case VCAltR:
		return vkRmenu | extendedKeyBit, true
	case VCShiftL:
		return vkLshift, true
	case VCShiftR:
		return vkRshift, true
	case VCMetaL:
		return vkLwin | extendedKeyBit, true
	case VCMetaR:
		return vkRwin | extendedKeyBit, true
	}
	for _, vk := range []uint16{vkInsert, vkDelete, vkHome, vkEnd, vkPrior, vkNext, vkUp, vkDown, vkLeft, vkRight} {
		if native := vk | extendedKeyBit; (windowsCodeTable{}).NativeToVirtual(native) == vc {
			return native, true
		}
	}
	for vk, mapped := range vkSimpleTable {
		if mapped == vc {
			return vk, true
		}
	}
	return 0, false
}

// vkSimpleTable covers every VK that maps onto exactly one VirtualCode
// regardless of the extended-key flag.
var vkSimpleTable = map[uint16]VirtualCode{
	vkEscape:  VCEscape,
	vkTab:     VCTab,
	vkBack:    VCBackspace,
	vkCapital: VCCapsLock,
	vkSpace:   VCSpace,
	vkClear:   VCKPClear,
	vkPause:   VCPause,

	vk0: VC0, vk1: VC1, vk2: VC2, vk3: VC3, vk4: VC4,
	vk5: VC5, vk6: VC6, vk7: VC7, vk8: VC8, vk9: VC9,

	vkA: VCA, vkB: VCB, vkC: VCC, vkD: VCD, vkE: VCE, vkF: VCF, vkG: VCG,
	vkH: VCH, vkI: VCI, vkJ: VCJ, vkK: VCK, vkL: VCL, vkM: VCM, vkN: VCN,
	vkO: VCO, vkP: VCP, vkQ: VCQ, vkR: VCR, vkS: VCS, vkT: VCT, vkU: VCU,
	vkV: VCV, vkW: VCW, vkX: VCX, vkY: VCY, vkZ: VCZ,

	vkApps: VCContextMenu,
	vkSleep: VCSleep,

	vkNumpad0: VCKP0, vkNumpad1: VCKP1, vkNumpad2: VCKP2, vkNumpad3: VCKP3,
	vkNumpad4: VCKP4, vkNumpad5: VCKP5, vkNumpad6: VCKP6, vkNumpad7: VCKP7,
	vkNumpad8: VCKP8, vkNumpad9: VCKP9,
	vkMultiply:  VCKPMultiply,
	vkAdd:       VCKPAdd,
	vkSeparator: VCKPSeparator,
	vkSubtract:  VCKPSubtract,
	vkDecimal:   VCKPDecimal,
	vkDivide:    VCKPDivide,

	vkF1: VCF1, vkF2: VCF2, vkF3: VCF3, vkF4: VCF4, vkF5: VCF5, vkF6: VCF6,
	vkF7: VCF7, vkF8: VCF8, vkF9: VCF9, vkF10: VCF10, vkF11: VCF11, vkF12: VCF12,
	vkF13: VCF13, vkF14: VCF14, vkF15: VCF15, vkF16: VCF16, vkF17: VCF17,
	vkF18: VCF18, vkF19: VCF19, vkF20: VCF20, vkF21: VCF21, vkF22: VCF22,
	vkF23: VCF23, vkF24: VCF24,

	vkNumlock: VCNumLock,
	vkScroll:  VCScrollLock,
	vkPrint:   VCPrintScreen,
	vkSnapshot: VCPrintScreen,
	vkSelect:  VCSelect,
	vkExecute: VCExecute,
	vkHelp:    VCHelp,

	vkBrowserBack:      VCBrowserBack,
	vkBrowserForward:   VCBrowserForward,
	vkBrowserRefresh:   VCBrowserRefresh,
	vkBrowserStop:      VCBrowserStop,
	vkBrowserSearch:    VCBrowserSearch,
	vkBrowserFavorites: VCBrowserFavorites,
	vkBrowserHome:      VCBrowserHome,

	vkVolumeMute: VCVolumeMute,
	vkVolumeDown: VCVolumeDown,
	vkVolumeUp:   VCVolumeUp,

	vkMediaNextTrack: VCMediaNext,
	vkMediaPrevTrack: VCMediaPrevious,
	vkMediaStop:      VCMediaStop,
	vkMediaPlayPause: VCMediaPlay,
	vkLaunchMail:     VCAppMail,
	vkLaunchApp1:     VCApp1,
	vkLaunchApp2:     VCApp2,

	vkOem1:      VCSemicolon,
	vkOemPlus:   VCEquals,
	vkOemComma:  VCComma,
	vkOemMinus:  VCMinus,
	vkOemPeriod: VCPeriod,
	vkOem2:      VCSlash,
	vkOem3:      VCBackQuote,
	vkOem4:      VCOpenBracket,
	vkOem5:      VCBackSlash,
	vkOem6:      VCCloseBracket,
	vkOem7:      VCQuote,
	vkOem102:    VC102,

	vkKana:       VCKana,
	vkJunja:      VCJunja,
	vkFinal:      VCFinal,
	vkHanja:      VCHanja,
	vkConvert:    VCConvert,
	vkNonconvert: VCNonConvert,
	vkAccept:     VCAccept,
	vkModechange: VCModeChange,
	vkProcesskey: VCProcess,
}
