// seehuhn.de/go/contour - isocontour extraction for gridded scalar data
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package contour

import (
	"errors"
	"math"
	"math/bits"
	"testing"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func TestNewGridErrors(t *testing.T) {
	cases := []struct {
		w, h int
		n    int
		want error
	}{
		{1, 5, 5, ErrInvalidGridShape},
		{5, 1, 5, ErrInvalidGridShape},
		{0, 0, 0, ErrInvalidGridShape},
		{-2, 3, 0, ErrInvalidGridShape},
		{3, 3, 8, ErrValueCount},
		{3, 3, 10, ErrValueCount},
		{math.MaxInt/2 + 1, 2, 0, ErrInvalidGridShape},
	}
	for _, c := range cases {
		_, err := NewGrid(c.w, c.h, make([]float64, c.n))
		if !errors.Is(err, c.want) {
			t.Errorf("%d×%d with %d values: got %v, want %v", c.w, c.h, c.n, err, c.want)
		}
	}

	// width·height wraps around to len(Values)
	half := 1 << (bits.UintSize / 2)
	big := &Grid{Width: half, Height: half}
	if err := big.Validate(); !errors.Is(err, ErrInvalidGridShape) {
		t.Errorf("%d×%d with no values: got %v, want %v", half, half, err, ErrInvalidGridShape)
	}
	if _, err := Extract(big, 0); !errors.Is(err, ErrInvalidGridShape) {
		t.Errorf("Extract: got %v, want %v", err, ErrInvalidGridShape)
	}

	g, err := NewGrid(2, 2, make([]float64, 4))
	if err != nil {
		t.Fatal(err)
	}
	if g.Spacing != (vec.Vec2{X: 1, Y: 1}) || g.Origin != (vec.Vec2{}) {
		t.Errorf("unexpected geometry: origin %v, spacing %v", g.Origin, g.Spacing)
	}
}

func TestGridGeometry(t *testing.T) {
	g := &Grid{
		Width:   5,
		Height:  3,
		Origin:  vec.Vec2{X: 10, Y: -4},
		Spacing: vec.Vec2{X: 0.5, Y: -2},
		Values:  make([]float64, 15),
	}

	want := rect.Rect{LLx: 10, LLy: -8, URx: 12, URy: -4}
	if got := g.Bounds(); got != want {
		t.Errorf("Bounds: got %v, want %v", got, want)
	}

	m := g.IndexToPhysical()
	for _, ij := range [][2]float64{{0, 0}, {4, 2}, {1.5, 0.25}} {
		i, j := ij[0], ij[1]
		p := g.Point(i, j)
		q := vec.Vec2{
			X: m[0]*i + m[2]*j + m[4],
			Y: m[1]*i + m[3]*j + m[5],
		}
		if p != q {
			t.Errorf("index (%g, %g): Point gives %v, matrix gives %v", i, j, p, q)
		}
	}
}

func TestGridAccess(t *testing.T) {
	vals := []float64{
		3, 1, 4,
		1, 5, 9,
	}
	g, err := NewGrid(3, 2, vals)
	if err != nil {
		t.Fatal(err)
	}
	if v := g.At(2, 1); v != 9 {
		t.Errorf("At(2, 1) = %g, want 9", v)
	}
	if v := g.At(1, 0); v != 1 {
		t.Errorf("At(1, 0) = %g, want 1", v)
	}
	lo, hi := g.Range()
	if lo != 1 || hi != 9 {
		t.Errorf("Range() = %g, %g, want 1, 9", lo, hi)
	}
}
