package vm

import "testing"

func TestSignExtend12_TopBitsAllSetWhenSignBitSet(t *testing.T) {
	got := signExtend12(0xFFF) // bit 11 set
	if got>>12 != 0xFFFFF {
		t.Errorf("expected top 20 bits all set, got 0x%08x", got)
	}
}

func TestSignExtend12_PositiveUnaffected(t *testing.T) {
	if got := signExtend12(0x7FF); got != 0x7FF {
		t.Errorf("expected 0x7FF unchanged, got 0x%x", got)
	}
}

func TestSignExtend13(t *testing.T) {
	if got := signExtend13(0x1000); got != 0xFFFFF000 {
		t.Errorf("expected sign-extended 0x1000 (bit 12 set) to be 0xFFFFF000, got 0x%08x", got)
	}
}

func TestSignExtend21(t *testing.T) {
	if got := signExtend21(0x100000); got != 0xFFF00000 {
		t.Errorf("expected sign-extended bit 20 to yield 0xFFF00000, got 0x%08x", got)
	}
}

func TestAsSigned(t *testing.T) {
	if got := asSigned(0x80000000); got != -2147483648 {
		t.Errorf("expected minimal int32, got %d", got)
	}
}
