package bits

import "testing"

func TestBits(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		if v := Set(0, 7); v != Bit7 {
			t.Errorf("expected 0x80, got 0x%02X", v)
		}
	})
	t.Run("reset", func(t *testing.T) {
		if v := Reset(0xFF, 0); v != 0xFE {
			t.Errorf("expected 0xFE, got 0x%02X", v)
		}
	})
	t.Run("test", func(t *testing.T) {
		if !Test(Bit3, 3) {
			t.Errorf("expected bit 3 to be set, got unset")
		}
		if Test(Bit3, 2) {
			t.Errorf("expected bit 2 to be unset, got set")
		}
	})
	t.Run("val", func(t *testing.T) {
		if v := Val(Bit5, 5); v != 1 {
			t.Errorf("expected 1, got %d", v)
		}
	})
	t.Run("set to", func(t *testing.T) {
		if v := SetTo(0x0F, Bit7|Bit6, true); v != 0xCF {
			t.Errorf("expected 0xCF, got 0x%02X", v)
		}
		if v := SetTo(0xCF, Bit7|Bit6, false); v != 0x0F {
			t.Errorf("expected 0x0F, got 0x%02X", v)
		}
	})
}

func TestField(t *testing.T) {
	tests := []struct {
		name    string
		b, mask uint8
		want    uint8
	}{
		{"top two", 0b1100_0000, 0b1100_0000, 0b11},
		{"middle three", 0b0010_1000, 0b0011_1000, 0b101},
		{"low two", 0b1111_1110, 0b0000_0011, 0b10},
		{"empty mask", 0xFF, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Field(tt.b, tt.mask); got != tt.want {
				t.Errorf("expected 0b%b, got 0b%b", tt.want, got)
			}
		})
	}
}

func TestWithField(t *testing.T) {
	// replacing a field leaves every other bit untouched
	if v := WithField(0b1010_1010, 0b0011_1000, 0b111); v != 0b1011_1010 {
		t.Errorf("expected 0b10111010, got 0b%08b", v)
	}
	// oversized values are truncated to the field
	if v := WithField(0, 0b0000_0011, 0xFF); v != 0b11 {
		t.Errorf("expected 0b11, got 0b%b", v)
	}
	if v := WithField(0x5A, 0, 0xFF); v != 0x5A {
		t.Errorf("expected 0x5A, got 0x%02X", v)
	}
}
