package iohook

// codeTable translates between a platform's native key identifier and
// the stable cross-platform VirtualCode space (C1). Each platform file
// provides one implementation; dispatch.go never branches on GOOS
// itself, which is what keeps this file testable without cgo.
type codeTable interface {
	NativeToVirtual(native uint16) VirtualCode
	VirtualToNative(vc VirtualCode) (native uint16, ok bool)
}

// unicodeResolver turns a key press plus the current modifier mask into
// zero or more UTF-16 code units (C6). Zero units means "no KEY_TYPED
// follow-up": either the key has no textual representation (a function
// key, a modifier) or the platform resolver deliberately consumed it
// into dead-key state.
type unicodeResolver interface {
	Resolve(vc VirtualCode, mask ModifierMask) []uint16
}

const (
	multiClickWindowMillis uint64 = 500
	maxClickCount          uint16 = 3
)

// dispatcher holds the platform-independent C5 normalizer/dispatcher
// state: click tracking for MOUSE_CLICKED synthesis and the held-button
// set used to reclassify MOUSE_MOVED as MOUSE_DRAGGED.
type dispatcher struct {
	table   codeTable
	unicode unicodeResolver
	proc    DispatchFunc

	lastClickX, lastClickY int16
	lastClickButton        uint16
	lastClickTime          uint64
	clickCount             uint16

	buttonsDown ModifierMask
}

func newDispatcher(table codeTable, unicode unicodeResolver) *dispatcher {
	return &dispatcher{table: table, unicode: unicode}
}

func (d *dispatcher) dispatch(evt *VirtualEvent) bool {
	if d.proc != nil {
		d.proc(evt)
	}
	return evt.Consumed
}

// KeyPressed processes a native key-down. It returns whether the press
// should be consumed (swallowed, not forwarded to the rest of the OS).
func (d *dispatcher) KeyPressed(native, raw uint16, t uint64) bool {
	vc := d.table.NativeToVirtual(native)
	applyKeyModifier(vc, true)

	evt := &VirtualEvent{
		Type: EventKeyPressed,
		Time: t,
		Mask: modifierMask(),
		Keyboard: KeyboardData{
			KeyCode: vc,
			RawCode: raw,
			KeyChar: CharUndefined,
		},
	}
	consumed := d.dispatch(evt)

	if d.unicode != nil {
		for _, unit := range d.unicode.Resolve(vc, modifierMask()) {
			if isNonCharacterUnit(unit) {
				continue
			}
			typed := &VirtualEvent{
				Type: EventKeyTyped,
				Time: t,
				Mask: modifierMask(),
				Keyboard: KeyboardData{
					KeyCode: vc,
					RawCode: raw,
					KeyChar: unit,
				},
			}
			d.dispatch(typed)
		}
	}

	return consumed
}

// KeyReleased processes a native key-up.
func (d *dispatcher) KeyReleased(native, raw uint16, t uint64) bool {
	vc := d.table.NativeToVirtual(native)
	applyKeyModifier(vc, false)

	evt := &VirtualEvent{
		Type: EventKeyReleased,
		Time: t,
		Mask: modifierMask(),
		Keyboard: KeyboardData{
			KeyCode: vc,
			RawCode: raw,
			KeyChar: CharUndefined,
		},
	}
	return d.dispatch(evt)
}

// ButtonPressed processes a native mouse button press at (x, y).
func (d *dispatcher) ButtonPressed(button uint16, x, y int16, t uint64) bool {
	applyButtonModifier(button, true)
	d.buttonsDown |= MaskForButton(button)
	clicks := d.trackClick(button, x, y, t)

	evt := &VirtualEvent{
		Type: EventMousePressed,
		Time: t,
		Mask: modifierMask(),
		Mouse: MouseData{
			Button: button,
			Clicks: clicks,
			X:      x,
			Y:      y,
		},
	}
	return d.dispatch(evt)
}

// ButtonReleased processes a native mouse button release at (x, y),
// synthesizing the follow-up MOUSE_CLICKED event when the release lands
// on the same button/position as the matching press.
func (d *dispatcher) ButtonReleased(button uint16, x, y int16, t uint64) bool {
	applyButtonModifier(button, false)
	d.buttonsDown &^= MaskForButton(button)

	evt := &VirtualEvent{
		Type: EventMouseReleased,
		Time: t,
		Mask: modifierMask(),
		Mouse: MouseData{
			Button: button,
			Clicks: d.clickCount,
			X:      x,
			Y:      y,
		},
	}
	consumed := d.dispatch(evt)

	if button == d.lastClickButton && x == d.lastClickX && y == d.lastClickY {
		clicked := &VirtualEvent{
			Type: EventMouseClicked,
			Time: t,
			Mask: modifierMask(),
			Mouse: MouseData{
				Button: button,
				Clicks: d.clickCount,
				X:      x,
				Y:      y,
			},
		}
		d.dispatch(clicked)
	}

	return consumed
}

// Moved processes native pointer motion, reclassifying it as
// MOUSE_DRAGGED whenever a button is currently held.
func (d *dispatcher) Moved(x, y int16, t uint64) bool {
	typ := EventMouseMoved
	if d.buttonsDown != 0 {
		typ = EventMouseDragged
	}
	evt := &VirtualEvent{
		Type: typ,
		Time: t,
		Mask: modifierMask(),
		Mouse: MouseData{
			X: x,
			Y: y,
		},
	}
	return d.dispatch(evt)
}

// Wheel processes a native scroll event.
func (d *dispatcher) Wheel(rotation int16, delta uint16, scrollType, direction uint8, x, y int16, t uint64) bool {
	evt := &VirtualEvent{
		Type: EventMouseWheel,
		Time: t,
		Mask: modifierMask(),
		Wheel: WheelData{
			X:         x,
			Y:         y,
			Type:      scrollType,
			Rotation:  rotation,
			Delta:     delta,
			Direction: direction,
		},
	}
	return d.dispatch(evt)
}

// trackClick advances the multi-click counter: a press on the same
// button at the same coordinates within multiClickWindowMillis extends
// the streak (capped at maxClickCount), anything else starts a new one.
func (d *dispatcher) trackClick(button uint16, x, y int16, t uint64) uint16 {
	sameSpot := button == d.lastClickButton && x == d.lastClickX && y == d.lastClickY
	withinWindow := t >= d.lastClickTime && t-d.lastClickTime <= multiClickWindowMillis

	if sameSpot && withinWindow && d.clickCount > 0 {
		if d.clickCount < maxClickCount {
			d.clickCount++
		}
	} else {
		d.clickCount = 1
	}

	d.lastClickButton = button
	d.lastClickX = x
	d.lastClickY = y
	d.lastClickTime = t
	return d.clickCount
}

// nonCharacterUnits is the literal set of resolved UTF-16 units spec.md
// §4.4 names as non-character codepoints to suppress from KEY_TYPED.
var nonCharacterUnits = map[uint16]bool{
	0x01: true,
	0x04: true,
	0x05: true,
	0x0B: true,
	0x0C: true,
	0x10: true,
	0x1F: true,
}

// isNonCharacterUnit reports whether a resolved UTF-16 unit should be
// suppressed from KEY_TYPED rather than forwarded.
func isNonCharacterUnit(unit uint16) bool {
	if unit == CharUndefined {
		return true
	}
	return nonCharacterUnits[unit]
}
