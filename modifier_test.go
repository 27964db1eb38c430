package iohook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetModifiers(t *testing.T) {
	t.Helper()
	modifierReset(0)
}

func TestApplyKeyModifierHeldKeys(t *testing.T) {
	resetModifiers(t)

	bit := applyKeyModifier(VCShiftL, true)
	assert.Equal(t, MaskShiftL, bit)
	assert.NotZero(t, modifierMask()&MaskShiftL)

	applyKeyModifier(VCShiftL, false)
	assert.Zero(t, modifierMask()&MaskShiftL)
}

func TestApplyKeyModifierNonModifierKeyIsNoop(t *testing.T) {
	resetModifiers(t)
	bit := applyKeyModifier(VCA, true)
	assert.Equal(t, ModifierMask(0), bit)
	assert.Zero(t, modifierMask())
}

func TestApplyKeyModifierLockKeysToggleOnPressOnly(t *testing.T) {
	resetModifiers(t)

	applyKeyModifier(VCCapsLock, true)
	assert.NotZero(t, modifierMask()&MaskCapsLock, "first press should turn CapsLock on")

	applyKeyModifier(VCCapsLock, false)
	assert.NotZero(t, modifierMask()&MaskCapsLock, "release must not clear a lock key")

	applyKeyModifier(VCCapsLock, true)
	assert.Zero(t, modifierMask()&MaskCapsLock, "second press should turn CapsLock back off")
}

func TestApplyButtonModifier(t *testing.T) {
	resetModifiers(t)

	applyButtonModifier(MouseButton1, true)
	assert.NotZero(t, modifierMask()&MaskButton1)

	applyButtonModifier(MouseButton1, false)
	assert.Zero(t, modifierMask()&MaskButton1)
}

func TestAggregateMasksCoverBothSides(t *testing.T) {
	assert.Equal(t, MaskShiftL|MaskShiftR, ModifierMask(MaskShift))
	assert.Equal(t, MaskCtrlL|MaskCtrlR, ModifierMask(MaskCtrl))
	assert.Equal(t, MaskAltL|MaskAltR, ModifierMask(MaskAlt))
	assert.Equal(t, MaskMetaL|MaskMetaR, ModifierMask(MaskMeta))
}

func TestMaskForButtonUnknownIndex(t *testing.T) {
	assert.Equal(t, ModifierMask(0), MaskForButton(99))
}
