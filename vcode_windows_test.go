//go:build windows

package iohook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowsCodeTableRoundTripSimpleKeys(t *testing.T) {
	tbl := newCodeTable()
	for vk, vc := range vkSimpleTable {
		got := tbl.NativeToVirtual(vk)
		assert.Equal(t, vc, got, "native 0x%02X should resolve to %v", vk, vc)

		native, ok := tbl.VirtualToNative(vc)
		assert.True(t, ok, "%v should have a native mapping", vc)
		assert.Equal(t, vc, tbl.NativeToVirtual(native), "round trip through native 0x%02X should return %v", native, vc)
	}
}

// TestWindowsCodeTableLeftRightAmbiguity covers the VK_SHIFT/VK_LSHIFT
// overlap: VK_SHIFT carries no side information and is always resolved
// to the left variant, while the dedicated VK_LSHIFT/VK_RSHIFT codes
// resolve to their respective sides.
func TestWindowsCodeTableLeftRightAmbiguity(t *testing.T) {
	tbl := newCodeTable()

	assert.Equal(t, VCShiftL, tbl.NativeToVirtual(vkShift))
	assert.Equal(t, VCShiftL, tbl.NativeToVirtual(vkLshift))
	assert.Equal(t, VCShiftR, tbl.NativeToVirtual(vkRshift))

	native, ok := tbl.VirtualToNative(VCShiftL)
	assert.True(t, ok)
	assert.Equal(t, uint16(vkLshift), native)

	native, ok = tbl.VirtualToNative(VCShiftR)
	assert.True(t, ok)
	assert.Equal(t, uint16(vkRshift), native)
}

// TestWindowsCodeTableExtendedKeyDisambiguation covers the lParam
// extended-key bit distinguishing VC_ENTER (main keyboard) from
// VC_KP_ENTER (numpad), both of which share VK_RETURN.
func TestWindowsCodeTableExtendedKeyDisambiguation(t *testing.T) {
	tbl := newCodeTable()

	assert.Equal(t, VCEnter, tbl.NativeToVirtual(vkReturn))
	assert.Equal(t, VCKPEnter, tbl.NativeToVirtual(vkReturn|extendedKeyBit))

	native, ok := tbl.VirtualToNative(VCEnter)
	assert.True(t, ok)
	assert.Equal(t, uint16(vkReturn), native)

	native, ok = tbl.VirtualToNative(VCKPEnter)
	assert.True(t, ok)
	assert.Equal(t, uint16(vkReturn)|extendedKeyBit, native)
}

func TestWindowsCodeTableUnknownNative(t *testing.T) {
	tbl := newCodeTable()
	assert.Equal(t, VCUndefined, tbl.NativeToVirtual(0xFFFF))
}

func TestWindowsCodeTableUnmappedVirtualCode(t *testing.T) {
	tbl := newCodeTable()
	_, ok := tbl.VirtualToNative(VCUndefined)
	assert.False(t, ok)
}
