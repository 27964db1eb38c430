package iohook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "KEY_PRESSED", EventKeyPressed.String())
	assert.Equal(t, "MOUSE_WHEEL", EventMouseWheel.String())
	assert.Equal(t, "UNKNOWN", EventType(0).String())
}

func TestMaskForModifierCoversAllModifierKeys(t *testing.T) {
	cases := map[VirtualCode]ModifierMask{
		VCShiftL:   MaskShiftL,
		VCShiftR:   MaskShiftR,
		VCControlL: MaskCtrlL,
		VCControlR: MaskCtrlR,
		VCMetaL:    MaskMetaL,
		VCMetaR:    MaskMetaR,
		VCAltL:     MaskAltL,
		VCAltR:     MaskAltR,
		VCCapsLock: MaskCapsLock,
		VCNumLock:  MaskNumLock,
		VCScrollLock: MaskScrollLock,
	}
	for vc, want := range cases {
		assert.Equal(t, want, MaskForModifier(vc))
	}
	assert.Equal(t, ModifierMask(0), MaskForModifier(VCA))
}

func TestMaskForButtonCoversAllButtons(t *testing.T) {
	assert.Equal(t, MaskButton1, MaskForButton(MouseButton1))
	assert.Equal(t, MaskButton2, MaskForButton(MouseButton2))
	assert.Equal(t, MaskButton3, MaskForButton(MouseButton3))
	assert.Equal(t, MaskButton4, MaskForButton(MouseButton4))
	assert.Equal(t, MaskButton5, MaskForButton(MouseButton5))
}
