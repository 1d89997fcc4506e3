package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectEdges(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 30, Height: 40}
	assert.InDelta(t, 40.0, r.Right(), 1e-9)
	assert.InDelta(t, 60.0, r.Bottom(), 1e-9)
	assert.Equal(t, Point{X: 25, Y: 40}, r.Center())
	assert.Equal(t, Rect{X: 5, Y: 27, Width: 30, Height: 40}, r.Translate(-5, 7))
}

func TestContainsRect(t *testing.T) {
	outer := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	assert.True(t, outer.ContainsRect(Rect{X: 10, Y: 10, Width: 20, Height: 20}))
	assert.True(t, outer.ContainsRect(outer), "edges are inclusive")
	assert.False(t, outer.ContainsRect(Rect{X: 90, Y: 10, Width: 20, Height: 20}))
	assert.False(t, outer.ContainsRect(Rect{X: -1, Y: 0, Width: 10, Height: 10}))
}

func TestIntersectionArea(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	tests := []struct {
		name string
		b    Rect
		want float64
	}{
		{"overlap", Rect{X: 5, Y: 5, Width: 10, Height: 10}, 25},
		{"contained", Rect{X: 2, Y: 2, Width: 3, Height: 3}, 9},
		{"touching edge", Rect{X: 10, Y: 0, Width: 10, Height: 10}, 0},
		{"apart", Rect{X: 20, Y: 20, Width: 5, Height: 5}, 0},
		{"not a number", Rect{X: math.NaN(), Y: 0, Width: 10, Height: 10}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, IntersectionArea(a, tt.b), 1e-9)
			assert.InDelta(t, tt.want, IntersectionArea(tt.b, a), 1e-9)
		})
	}
}

func TestDist2AndClamp(t *testing.T) {
	assert.InDelta(t, 25.0, Dist2(Point{X: 0, Y: 0}, Point{X: 3, Y: 4}), 1e-9)
	assert.InDelta(t, 0.0, Clamp(-1, 0, 1), 1e-9)
	assert.InDelta(t, 1.0, Clamp(2, 0, 1), 1e-9)
	assert.InDelta(t, 0.5, Clamp(0.5, 0, 1), 1e-9)
}

func TestFinite(t *testing.T) {
	assert.True(t, Finite())
	assert.True(t, Finite(0, -3.5, 1e300))
	assert.False(t, Finite(1, math.NaN()))
	assert.False(t, Finite(math.Inf(1)))
	assert.False(t, Finite(math.Inf(-1), 2))

	assert.True(t, Rect{Width: 1, Height: 1}.Finite())
	assert.False(t, Rect{X: math.NaN(), Width: 1, Height: 1}.Finite())
}
