package simulation

import (
	"math"
	"testing"
)

func near(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func TestSteer(t *testing.T) {
	const (
		strength  = float32(0.75)
		turnSpeed = float32(2)
		dt        = float32(1)
	)
	tests := []struct {
		name                 string
		forward, left, right float64
		want                 float32
	}{
		{"forward strongest keeps heading", 3, 1, 2, 0},
		{"forward weakest turns randomly", 0, 2, 1, (strength - 0.5) * 2 * turnSpeed * dt},
		{"right stronger turns right", 1, 1, 2, -strength * turnSpeed * dt},
		{"right stronger with forward between", 2, 1, 3, -strength * turnSpeed * dt},
		{"left stronger with forward between goes straight", 2, 3, 1, 0},
		{"left stronger than tied forward and right goes straight", 1, 3, 1, 0},
		{"all equal goes straight", 1, 1, 1, 0},
		{"all zero goes straight", 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAgent(5, 5, 0)
			a.steer(tt.forward, tt.left, tt.right, strength, turnSpeed, dt)
			if !near(a.Angle, tt.want, 1e-6) {
				t.Errorf("angle = %v, want %v", a.Angle, tt.want)
			}
		})
	}
}

func TestAdvanceInBounds(t *testing.T) {
	a := NewAgent(1, 1, 0)
	if hit := a.advance(2, 1, 10, 10, 1.5); hit {
		t.Fatal("unexpected wall hit")
	}
	if !near(a.X, 3, 1e-6) || !near(a.Y, 1, 1e-6) || a.Angle != 0 {
		t.Errorf("unexpected agent %s", a)
	}
}

func TestAdvanceWallHitClampsAndRedirects(t *testing.T) {
	a := NewAgent(5, 5, 0)
	if hit := a.advance(10, 1, 10, 10, 2.5); !hit {
		t.Fatal("expected wall hit")
	}
	if !near(a.X, 8.99, 1e-5) {
		t.Errorf("expected x clamped to 8.99, got %v", a.X)
	}
	if !near(a.Y, 5, 1e-5) {
		t.Errorf("expected y to stay 5, got %v", a.Y)
	}
	if a.Angle != 2.5 {
		t.Errorf("expected fresh heading 2.5, got %v", a.Angle)
	}
}

func TestAdvanceNegativeSide(t *testing.T) {
	a := NewAgent(0.5, 3, math.Pi)
	a.advance(1, 1, 10, 10, 0.25)
	if a.X != 0 {
		t.Errorf("expected x clamped to 0, got %v", a.X)
	}
	if !near(a.Y, 3, 1e-5) {
		t.Errorf("expected y to stay 3, got %v", a.Y)
	}
}

func TestAdvanceOneCellAxis(t *testing.T) {
	a := NewAgent(0.5, 2, 0)
	if hit := a.advance(3, 1, 1, 5, 1); !hit {
		t.Fatal("expected wall hit")
	}
	if a.X != 0 {
		t.Errorf("expected x clamped to 0 on a one-column grid, got %v", a.X)
	}
}

func TestAgentString(t *testing.T) {
	got := NewAgent(1.5, 2, 0.25).String()
	want := "Agent Pos: [1.500, 2.000] Angle: 0.250"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestAgentCellClamps(t *testing.T) {
	x, y := NewAgent(-4, 12.7, 0).Cell(10, 10)
	if x != 0 || y != 9 {
		t.Errorf("expected (0,9), got (%d,%d)", x, y)
	}
	x, y = NewAgent(3.99, 4.01, 0).Cell(10, 10)
	if x != 3 || y != 4 {
		t.Errorf("expected floor (3,4), got (%d,%d)", x, y)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{-math.Pi / 2, 3 * math.Pi / 2},
	}
	for _, tt := range tests {
		got := wrapAngle(tt.in)
		if !near(got, tt.want, 1e-5) {
			t.Errorf("wrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got < 0 || got >= twoPi {
			t.Errorf("wrapAngle(%v) = %v out of [0,2π)", tt.in, got)
		}
	}
}

func TestSenseWindow(t *testing.T) {
	f := newTestField(t, 30, 30)
	f.Set(20, 10, 1)

	a := NewAgent(10, 10, 0)
	if got := sense(f, a, 0, 10, 1); got != 1 {
		t.Errorf("forward sensor should see the hotspot, got %v", got)
	}
	if got := sense(f, a, math.Pi/2, 10, 1); got != 0 {
		t.Errorf("side sensor should read zero, got %v", got)
	}
	if got := sense(f, a, 0, 7, 1); got != 0 {
		t.Errorf("short sensor should miss the hotspot, got %v", got)
	}
}

func TestReadSensorsOffsets(t *testing.T) {
	f := newTestField(t, 30, 30)
	// left is +angle, which in grid coordinates is +y for a heading of 0
	f.Set(10, 20, 2)
	f.Set(10, 1, 5)

	p := DefaultParams()
	p.SenseDistance = 10
	p.SenseAngleDifference = math.Pi / 2
	p.SenseSize = 1

	forward, left, right := readSensors(f, NewAgent(10, 10, 0), p)
	if forward != 0 || left != 2 || right != 5 {
		t.Errorf("got forward=%v left=%v right=%v", forward, left, right)
	}
}
