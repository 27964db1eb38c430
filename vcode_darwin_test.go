//go:build darwin

package iohook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDarwinCodeTableRoundTrip(t *testing.T) {
	tbl := newCodeTable()
	for native, vc := range darwinNativeTable {
		assert.Equal(t, vc, tbl.NativeToVirtual(native), "native 0x%02X should resolve to %v", native, vc)

		mapped, ok := tbl.VirtualToNative(vc)
		assert.True(t, ok, "%v should have a native mapping", vc)
		assert.Equal(t, vc, tbl.NativeToVirtual(mapped), "round trip through native 0x%02X should return %v", mapped, vc)
	}
}

// TestDarwinCodeTableRightCommand guards kVKRightCommand's entry in
// darwinNativeTable: both live key events and VC_META_R synthesis
// depend on it being present.
func TestDarwinCodeTableRightCommand(t *testing.T) {
	tbl := newCodeTable()

	assert.Equal(t, VCMetaR, tbl.NativeToVirtual(kVKRightCommand))

	native, ok := tbl.VirtualToNative(VCMetaR)
	assert.True(t, ok)
	assert.Equal(t, uint16(kVKRightCommand), native)
}

func TestDarwinCodeTableUnknownNative(t *testing.T) {
	tbl := newCodeTable()
	assert.Equal(t, VCUndefined, tbl.NativeToVirtual(0xFF))
}
