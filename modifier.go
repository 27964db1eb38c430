package iohook

import "sync/atomic"

// modifierState is the process-wide current modifier/button mask (C2).
// The dispatcher is the sole writer while a session is running; reads
// can come from a different goroutine when a caller inspects mask state
// from within its dispatch callback or calls PostEvent concurrently, so
// the mask is held in an atomic rather than behind a mutex.
var modifierState atomic.Uint32

func modifierMask() ModifierMask {
	return ModifierMask(modifierState.Load())
}

func modifierSet(bit ModifierMask) {
	for {
		old := modifierState.Load()
		next := old | uint32(bit)
		if modifierState.CompareAndSwap(old, next) {
			return
		}
	}
}

func modifierUnset(bit ModifierMask) {
	for {
		old := modifierState.Load()
		next := old &^ uint32(bit)
		if modifierState.CompareAndSwap(old, next) {
			return
		}
	}
}

func modifierReset(mask ModifierMask) {
	modifierState.Store(uint32(mask))
}

// applyKeyModifier updates the modifier mask for a keyboard press/release
// of vc, returning the bit it touched (0 if vc is not a modifier key).
func applyKeyModifier(vc VirtualCode, pressed bool) ModifierMask {
	bit := MaskForModifier(vc)
	if bit == 0 {
		return 0
	}
	// Lock keys (CapsLock/NumLock/ScrollLock) toggle on press only;
	// every other modifier tracks the physical held state.
	switch vc {
	case VCCapsLock, VCNumLock, VCScrollLock:
		if pressed {
			if modifierMask()&bit != 0 {
				modifierUnset(bit)
			} else {
				modifierSet(bit)
			}
		}
	default:
		if pressed {
			modifierSet(bit)
		} else {
			modifierUnset(bit)
		}
	}
	return bit
}

// applyButtonModifier updates the modifier mask for a mouse button
// press/release, returning the bit it touched.
func applyButtonModifier(button uint16, pressed bool) ModifierMask {
	bit := MaskForButton(button)
	if bit == 0 {
		return 0
	}
	if pressed {
		modifierSet(bit)
	} else {
		modifierUnset(bit)
	}
	return bit
}
