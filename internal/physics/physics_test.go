package physics

import (
	"math"
	"slices"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestDistance(t *testing.T) {
	if d := Distance(r2.Vec{X: 1, Y: 1}, r2.Vec{X: 4, Y: 5}); d != 5 {
		t.Errorf("Distance() = %v, expected 5", d)
	}
}

func TestCircleOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Circle
		expected bool
	}{
		{"apart", Circle{r2.Vec{X: 0, Y: 0}, 1}, Circle{r2.Vec{X: 5, Y: 0}, 1}, false},
		{"touching", Circle{r2.Vec{X: 0, Y: 0}, 1}, Circle{r2.Vec{X: 2, Y: 0}, 1}, false},
		{"overlapping", Circle{r2.Vec{X: 0, Y: 0}, 2}, Circle{r2.Vec{X: 3, Y: 0}, 2}, true},
		{"nested", Circle{r2.Vec{X: 0, Y: 0}, 10}, Circle{r2.Vec{X: 1, Y: 1}, 1}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() is not symmetric")
			}
		})
	}
}

func TestCircleContains(t *testing.T) {
	c := Circle{Center: r2.Vec{X: 10, Y: 10}, Radius: 5}
	if !c.Contains(r2.Vec{X: 15, Y: 10}) {
		t.Error("edge point should be contained")
	}
	if c.Contains(r2.Vec{X: 15.1, Y: 10}) {
		t.Error("outside point should not be contained")
	}
}

func TestToward(t *testing.T) {
	v := Toward(r2.Vec{X: 0, Y: 0}, r2.Vec{X: 0, Y: 7})
	if math.Abs(v.X) > 1e-12 || math.Abs(v.Y-1) > 1e-12 {
		t.Errorf("Toward() = %v, expected (0, 1)", v)
	}
	if z := Toward(r2.Vec{X: 3, Y: 3}, r2.Vec{X: 3, Y: 3}); z != (r2.Vec{}) {
		t.Errorf("Toward() of coincident points = %v, expected zero", z)
	}
}

func collect(g *Grid, p r2.Vec) []int {
	var out []int
	g.Near(p, func(i int) bool {
		out = append(out, i)
		return false
	})
	slices.Sort(out)
	return out
}

func TestGridNear(t *testing.T) {
	g := NewGrid(100, 100, 10)
	g.Insert(r2.Vec{X: 5, Y: 5}, 0)
	g.Insert(r2.Vec{X: 15, Y: 15}, 1)
	g.Insert(r2.Vec{X: 55, Y: 55}, 2)
	g.Insert(r2.Vec{X: 95, Y: 95}, 3)

	got := collect(g, r2.Vec{X: 6, Y: 6})
	// Cell (0,0) neighbours wrap to (9,9)
	if !slices.Equal(got, []int{0, 1, 3}) {
		t.Errorf("Near() = %v, expected [0 1 3]", got)
	}

	if got := collect(g, r2.Vec{X: 55, Y: 55}); !slices.Equal(got, []int{2}) {
		t.Errorf("Near() = %v, expected [2]", got)
	}
}

func TestGridNearStopsEarly(t *testing.T) {
	g := NewGrid(30, 30, 10)
	for i := 0; i < 5; i++ {
		g.Insert(r2.Vec{X: 15, Y: 15}, i)
	}
	calls := 0
	g.Near(r2.Vec{X: 15, Y: 15}, func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Errorf("Near() visited %d items after stop, expected 1", calls)
	}
}

func TestGridClampsOffCanvas(t *testing.T) {
	g := NewGrid(100, 100, 10)
	g.Insert(r2.Vec{X: -20, Y: 150}, 7)
	if got := collect(g, r2.Vec{X: 0, Y: 99}); !slices.Equal(got, []int{7}) {
		t.Errorf("Near() = %v, expected [7]", got)
	}
}

func TestGridReset(t *testing.T) {
	g := NewGrid(100, 100, 10)
	g.Insert(r2.Vec{X: 50, Y: 50}, 1)
	g.Reset(100, 100, 10)
	if got := collect(g, r2.Vec{X: 50, Y: 50}); len(got) != 0 {
		t.Errorf("Near() after Reset = %v, expected empty", got)
	}

	g.Reset(200, 50, 25)
	g.Insert(r2.Vec{X: 190, Y: 40}, 4)
	if got := collect(g, r2.Vec{X: 180, Y: 30}); !slices.Equal(got, []int{4}) {
		t.Errorf("Near() after resize = %v, expected [4]", got)
	}
}
