package token

import "testing"

func TestEncodeKnownValue(t *testing.T) {
	// category=1, action=4<<3=32, stamina=3<<6=192, zone=5<<8=1280
	tok := Encode(1, 4, 3, 5)
	if tok != 1505 {
		t.Fatalf("expected 1505, got %d", tok)
	}
}

func TestDecodeKnownValue(t *testing.T) {
	c, a, s, z := Decode(1505)
	if c != 1 || a != 4 || s != 3 || z != 5 {
		t.Fatalf("expected (1,4,3,5), got (%d,%d,%d,%d)", c, a, s, z)
	}
}

func TestRoundTripFullDomain(t *testing.T) {
	for category := 0; category <= 7; category++ {
		for action := 0; action <= 7; action++ {
			for stamina := 0; stamina <= 3; stamina++ {
				for zone := 0; zone <= 15; zone++ {
					tok := Encode(category, action, stamina, zone)
					c, a, s, z := Decode(tok)
					if c != category || a != action || s != stamina || z != zone {
						t.Fatalf("round trip (%d,%d,%d,%d) → %d → (%d,%d,%d,%d)",
							category, action, stamina, zone, tok, c, a, s, z)
					}
				}
			}
		}
	}
}

func TestEncodeTruncatesOutOfRange(t *testing.T) {
	// 9 = 0b1001 truncates to 0b001 in a 3-bit field
	if got, want := Encode(9, 0, 0, 0), Encode(1, 0, 0, 0); got != want {
		t.Fatalf("category truncation: expected %d, got %d", want, got)
	}
	// 5 = 0b101 truncates to 0b01 in a 2-bit field
	if got, want := Encode(0, 0, 5, 0), Encode(0, 0, 1, 0); got != want {
		t.Fatalf("stamina truncation: expected %d, got %d", want, got)
	}
	// 17 = 0b10001 truncates to 0b0001 in a 4-bit field
	if got, want := Encode(0, 0, 0, 17), Encode(0, 0, 0, 1); got != want {
		t.Fatalf("zone truncation: expected %d, got %d", want, got)
	}
}

func TestTokenStaysWithinDomain(t *testing.T) {
	tok := Encode(7, 7, 3, 15)
	if int(tok) >= Domain {
		t.Fatalf("token %d outside domain %d", tok, Domain)
	}
	if tok != 4095 {
		t.Fatalf("expected max token 4095, got %d", tok)
	}
}

func TestFieldAccessors(t *testing.T) {
	tok := Encode(2, 6, 1, 9)
	if tok.StaminaBucket() != 1 {
		t.Fatalf("expected stamina bucket 1, got %d", tok.StaminaBucket())
	}
	if tok.Zone() != 9 {
		t.Fatalf("expected zone 9, got %d", tok.Zone())
	}
}
