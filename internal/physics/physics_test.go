package physics

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 30, 40)
	if r.Left() != 10 || r.Right() != 40 || r.Top() != 20 || r.Bottom() != 60 {
		t.Errorf("edges = (%v,%v,%v,%v), want (10,40,20,60)", r.Left(), r.Right(), r.Top(), r.Bottom())
	}
	if r.CenterX() != 25 || r.CenterY() != 40 {
		t.Errorf("center = (%v,%v), want (25,40)", r.CenterX(), r.CenterY())
	}
}

func TestOverlap(t *testing.T) {
	base := NewRect(0, 0, 10, 10)
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"identical", NewRect(0, 0, 10, 10), true},
		{"inside", NewRect(2, 2, 3, 3), true},
		{"partial", NewRect(5, 5, 10, 10), true},
		{"touching right edge", NewRect(10, 0, 5, 5), false},
		{"touching bottom edge", NewRect(0, 10, 5, 5), false},
		{"far away", NewRect(100, 100, 1, 1), false},
		{"thin bullet crossing", NewRect(4, -5, 1, 20), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlap(base, tt.b); got != tt.want {
				t.Errorf("Overlap(%v, %v) = %v, want %v", base, tt.b, got, tt.want)
			}
			if got := Overlap(tt.b, base); got != tt.want {
				t.Errorf("Overlap is not symmetric for %v", tt.b)
			}
		})
	}
}

func TestContains(t *testing.T) {
	r := NewRect(500, 375, 200, 50)
	tests := []struct {
		x, y float64
		want bool
	}{
		{500, 375, true},
		{600, 400, true},
		{699.9, 424.9, true},
		{700, 400, false},
		{600, 425, false},
		{499, 400, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
