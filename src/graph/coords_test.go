package graph

import "testing"

func TestTimeScale(t *testing.T) {
	s := NewTimeScale(100, 10)
	if s.Width != 1000 || s.PxPerSec != 10 {
		t.Fatalf("width/pps = %v/%v, want 1000/10", s.Width, s.PxPerSec)
	}
	if x := s.X(5); x != 50 {
		t.Fatalf("X(5) = %v, want 50", x)
	}
}

func TestTimeScaleCapAndFloor(t *testing.T) {
	s := NewTimeScale(100, 100)
	if s.Width != MaxGraphWidth {
		t.Fatalf("width not capped: %v", s.Width)
	}
	if s.PxPerSec != 40 { // floor(4096/100)
		t.Fatalf("pps = %v, want 40", s.PxPerSec)
	}
	z := NewTimeScale(0, 20)
	if z.Width != 0 || z.PxPerSec != 0 || z.X(3) != 0 {
		t.Fatalf("zero duration should map everything to 0: %+v", z)
	}
}

func TestValueScale(t *testing.T) {
	if _, ok := NewValueScale(10, 350, 0); ok {
		t.Fatalf("zero max must not produce a scale")
	}
	vs, ok := NewValueScale(10, 350, 7)
	if !ok {
		t.Fatalf("expected scale")
	}
	if vs.Y(7) != 10 || vs.Y(0) != 360 {
		t.Fatalf("Y(max)=%v Y(0)=%v", vs.Y(7), vs.Y(0))
	}
}
