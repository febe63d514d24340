package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent vertical (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "single pixel overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9, 9, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectInflate(t *testing.T) {
	r := NewRect(2, 3, 4, 5).Inflate(1)
	if r != NewRect(1, 2, 6, 7) {
		t.Errorf("Inflate(1) = %+v, expected {1 2 6 7}", r)
	}

	// Rooms separated by a two-cell gap stop touching once padded.
	a := NewRect(0, 0, 3, 3).Inflate(1)
	b := NewRect(5, 0, 3, 3).Inflate(1)
	if a.Intersects(b) {
		t.Error("padded rooms with a two-cell gap should not intersect")
	}
	c := NewRect(4, 0, 3, 3).Inflate(1)
	if !a.Intersects(c) {
		t.Error("padded rooms with a one-cell gap should intersect")
	}
}

func TestRectCenter(t *testing.T) {
	c := NewRect(-5, 2, 3, 4).Center()
	if c != V(-3.5, 4) {
		t.Errorf("Center() = %v, expected (-3.5,4)", c)
	}
}

func TestVec2Normalize(t *testing.T) {
	n := V(3, 4).Normalize()
	if n != V(0.6, 0.8) {
		t.Errorf("Normalize() = %v, expected (0.6,0.8)", n)
	}
	if V(0, 0).Normalize() != V(0, 0) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec2Floor(t *testing.T) {
	tests := []struct {
		in       Vec2
		expected Coord
	}{
		{V(1.5, 2.9), C(1, 2)},
		{V(-0.5, -1), C(-1, -1)},
		{V(0, 0), C(0, 0)},
	}
	for _, tc := range tests {
		if got := tc.in.Floor(); got != tc.expected {
			t.Errorf("Floor(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestCoordChebyshev(t *testing.T) {
	if d := C(0, 0).Chebyshev(C(3, -5)); d != 5 {
		t.Errorf("Chebyshev = %d, expected 5", d)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMaxAbs(t *testing.T) {
	if Min(5, 10) != 5 || Min(10, 5) != 5 {
		t.Error("Min should return the smaller value")
	}
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return the larger value")
	}
	if Abs(-5) != 5 || Abs(5) != 5 || Abs(0) != 0 {
		t.Error("Abs returned wrong value")
	}
}
