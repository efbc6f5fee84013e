package tile

import "testing"

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []struct {
		name         string
		x, y, order  int
		flipX, flipY bool
	}{
		{"origin_first_tileset", 0, 0, 1, false, false},
		{"typical_sprite", 96, 128, 3, false, false},
		{"flip_x", 32, 0, 1, true, false},
		{"flip_y", 0, 32, 2, false, true},
		{"both_flips", 16, 48, 7, true, true},
		{"max_coords", MaxCoord, MaxCoord, 1, false, false},
		{"max_order", 0, 0, MaxOrder, true, true},
		{"everything_max", MaxCoord, MaxCoord, MaxOrder, true, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := Pack(c.x, c.y, c.order, c.flipX, c.flipY)
			if err != nil {
				t.Fatalf("Pack(%d, %d, %d, %v, %v) error: %v", c.x, c.y, c.order, c.flipX, c.flipY, err)
			}
			if r.IsEmpty() {
				t.Fatalf("packed non-empty inputs but got Empty")
			}
			x, y, order, fx, fy := r.Unpack()
			if x != c.x || y != c.y || order != c.order || fx != c.flipX || fy != c.flipY {
				t.Fatalf("round trip mismatch: got (%d, %d, %d, %v, %v), want (%d, %d, %d, %v, %v)",
					x, y, order, fx, fy, c.x, c.y, c.order, c.flipX, c.flipY)
			}
		})
	}
}

func TestPackRangeErrors(t *testing.T) {
	cases := []struct {
		name        string
		x, y, order int
	}{
		{"order_zero_reserved", 0, 0, 0},
		{"order_negative", 0, 0, -1},
		{"order_too_large", 0, 0, MaxOrder + 1},
		{"x_negative", -1, 0, 1},
		{"x_too_large", MaxCoord + 1, 0, 1},
		{"y_negative", 0, -1, 1},
		{"y_too_large", 0, MaxCoord + 1, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := Pack(c.x, c.y, c.order, false, false)
			if err == nil {
				t.Fatalf("Pack(%d, %d, %d) should fail, got %v", c.x, c.y, c.order, r)
			}
			if r != Empty {
				t.Fatalf("failed Pack should return Empty, got %v", r)
			}
		})
	}
}

func TestEmptySentinel(t *testing.T) {
	x, y, order, fx, fy := Empty.Unpack()
	if x != 0 || y != 0 || order != 0 || fx || fy {
		t.Fatalf("Empty.Unpack() = (%d, %d, %d, %v, %v), want all zero", x, y, order, fx, fy)
	}
	if !Empty.IsEmpty() {
		t.Fatalf("Empty.IsEmpty() should be true")
	}
	if r := MustPack(0, 0, 1, false, false); r.IsEmpty() {
		t.Fatalf("order 1 at origin must not collide with Empty")
	}
}

func TestAccessorsMatchUnpack(t *testing.T) {
	r := MustPack(320, 64, 12, true, false)
	if r.X() != 320 || r.Y() != 64 || r.Order() != 12 || !r.FlipX() || r.FlipY() {
		t.Fatalf("accessor mismatch on %v", r)
	}
}

func TestMustPackPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("MustPack(0, 0, 0) should panic")
		}
	}()
	MustPack(0, 0, 0, false, false)
}
