package iohook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCodeTable maps a handful of fixed native codes onto VirtualCodes
// so dispatch.go's logic can be exercised without any platform backend.
type fakeCodeTable struct{}

func (fakeCodeTable) NativeToVirtual(native uint16) VirtualCode {
	switch native {
	case 1:
		return VCA
	case 2:
		return VCShiftL
	default:
		return VCUndefined
	}
}

func (fakeCodeTable) VirtualToNative(vc VirtualCode) (uint16, bool) {
	switch vc {
	case VCA:
		return 1, true
	case VCShiftL:
		return 2, true
	default:
		return 0, false
	}
}

type fakeUnicodeResolver struct {
	units []uint16
}

func (f fakeUnicodeResolver) Resolve(VirtualCode, ModifierMask) []uint16 {
	return f.units
}

func newTestDispatcher(units ...uint16) (*dispatcher, *[]*VirtualEvent) {
	modifierReset(0)
	var captured []*VirtualEvent
	d := newDispatcher(fakeCodeTable{}, fakeUnicodeResolver{units: units})
	d.proc = func(evt *VirtualEvent) {
		captured = append(captured, evt)
	}
	return d, &captured
}

func TestKeyPressedDispatchesPressThenTyped(t *testing.T) {
	d, captured := newTestDispatcher('a')

	d.KeyPressed(1, 30, 100)

	require.Len(t, *captured, 2)
	assert.Equal(t, EventKeyPressed, (*captured)[0].Type)
	assert.Equal(t, VCA, (*captured)[0].Keyboard.KeyCode)
	assert.Equal(t, EventKeyTyped, (*captured)[1].Type)
	assert.Equal(t, uint16('a'), (*captured)[1].Keyboard.KeyChar)
}

func TestKeyPressedSuppressesNonCharacterUnits(t *testing.T) {
	d, captured := newTestDispatcher(0x0B) // VT, in spec.md's suppression list
	d.KeyPressed(1, 1, 0)
	assert.Len(t, *captured, 1, "control-character units must not produce KEY_TYPED")
}

func TestKeyPressedUpdatesModifierMask(t *testing.T) {
	d, _ := newTestDispatcher()
	d.KeyPressed(2, 2, 0) // native 2 -> VCShiftL
	assert.NotZero(t, modifierMask()&MaskShiftL)
	d.KeyReleased(2, 2, 0)
	assert.Zero(t, modifierMask()&MaskShiftL)
}

func TestConsumedEventStopsPropagation(t *testing.T) {
	d, _ := newTestDispatcher()
	d.proc = func(evt *VirtualEvent) {
		evt.Consumed = true
	}
	consumed := d.KeyPressed(1, 1, 0)
	assert.True(t, consumed)
}

func TestButtonPressTracksMultiClick(t *testing.T) {
	d, captured := newTestDispatcher()

	d.ButtonPressed(MouseButton1, 10, 10, 0)
	d.ButtonReleased(MouseButton1, 10, 10, 10)
	d.ButtonPressed(MouseButton1, 10, 10, 50)
	d.ButtonReleased(MouseButton1, 10, 10, 60)

	var clicksSeen []uint16
	for _, evt := range *captured {
		if evt.Type == EventMousePressed {
			clicksSeen = append(clicksSeen, evt.Mouse.Clicks)
		}
	}
	require.Len(t, clicksSeen, 2)
	assert.Equal(t, uint16(1), clicksSeen[0])
	assert.Equal(t, uint16(2), clicksSeen[1], "second press at the same spot within the window should be a double-click")
}

func TestButtonPressResetsClickCountAfterWindow(t *testing.T) {
	d, captured := newTestDispatcher()

	d.ButtonPressed(MouseButton1, 10, 10, 0)
	d.ButtonReleased(MouseButton1, 10, 10, 0)
	d.ButtonPressed(MouseButton1, 10, 10, 10_000) // far beyond the multi-click window

	var lastPressClicks uint16
	for _, evt := range *captured {
		if evt.Type == EventMousePressed {
			lastPressClicks = evt.Mouse.Clicks
		}
	}
	assert.Equal(t, uint16(1), lastPressClicks)
}

func TestButtonReleaseEmitsClickedAtSameSpot(t *testing.T) {
	d, captured := newTestDispatcher()

	d.ButtonPressed(MouseButton1, 5, 5, 0)
	d.ButtonReleased(MouseButton1, 5, 5, 1)

	var types []EventType
	for _, evt := range *captured {
		types = append(types, evt.Type)
	}
	assert.Contains(t, types, EventMouseClicked)
}

func TestMovedReclassifiesAsDraggedWhileButtonHeld(t *testing.T) {
	d, captured := newTestDispatcher()

	d.ButtonPressed(MouseButton1, 0, 0, 0)
	d.Moved(1, 1, 1)
	d.ButtonReleased(MouseButton1, 1, 1, 2)
	d.Moved(2, 2, 3)

	var moveTypes []EventType
	for _, evt := range *captured {
		if evt.Type == EventMouseMoved || evt.Type == EventMouseDragged {
			moveTypes = append(moveTypes, evt.Type)
		}
	}
	require.Len(t, moveTypes, 2)
	assert.Equal(t, EventMouseDragged, moveTypes[0])
	assert.Equal(t, EventMouseMoved, moveTypes[1])
}

func TestWheelDispatchesWheelEvent(t *testing.T) {
	d, captured := newTestDispatcher()
	d.Wheel(3, 3, WheelUnitScroll, WheelVertical, 0, 0, 0)
	require.Len(t, *captured, 1)
	assert.Equal(t, EventMouseWheel, (*captured)[0].Type)
	assert.Equal(t, int16(3), (*captured)[0].Wheel.Rotation)
}

func TestIsNonCharacterUnit(t *testing.T) {
	assert.True(t, isNonCharacterUnit(0x01))
	assert.True(t, isNonCharacterUnit(0x04))
	assert.True(t, isNonCharacterUnit(0x05))
	assert.True(t, isNonCharacterUnit(0x0B))
	assert.True(t, isNonCharacterUnit(0x0C))
	assert.True(t, isNonCharacterUnit(0x10))
	assert.True(t, isNonCharacterUnit(0x1F))
	assert.True(t, isNonCharacterUnit(CharUndefined))
	assert.False(t, isNonCharacterUnit(0x1B), "ESC is not in spec.md's suppression list")
	assert.False(t, isNonCharacterUnit(0x7F), "DEL is not in spec.md's suppression list")
	assert.False(t, isNonCharacterUnit('\t'))
	assert.False(t, isNonCharacterUnit('a'))
}
