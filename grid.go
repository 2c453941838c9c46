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
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

var (
	// ErrInvalidGridShape indicates a grid with fewer than two samples in
	// one of the two directions, or with too many samples to index.
	ErrInvalidGridShape = errors.New("contour: invalid grid shape")

	// ErrValueCount indicates that the number of samples does not match the
	// grid dimensions.
	ErrValueCount = errors.New("contour: number of values does not match grid size")
)

// Grid is a regularly sampled 2D scalar field.
//
// Sample (i, j) is stored at Values[j*Width+i] and is located at
// Origin + (i*Spacing.X, j*Spacing.Y) in physical coordinates.
// A Grid is not modified by any function in this package.
type Grid struct {
	Width, Height int
	Origin        vec.Vec2
	Spacing       vec.Vec2
	Values        []float64
}

// NewGrid returns a grid with the given dimensions, unit spacing and
// the origin at (0, 0).  The values are used directly, not copied.
func NewGrid(width, height int, values []float64) (*Grid, error) {
	g := &Grid{
		Width:   width,
		Height:  height,
		Spacing: vec.Vec2{X: 1, Y: 1},
		Values:  values,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks that the grid can be used for contour extraction.
func (g *Grid) Validate() error {
	if g.Width < 2 || g.Height < 2 {
		return fmt.Errorf("%w: got %d×%d", ErrInvalidGridShape, g.Width, g.Height)
	}
	if g.Width > math.MaxInt/g.Height {
		return fmt.Errorf("%w: got %d×%d", ErrInvalidGridShape, g.Width, g.Height)
	}
	if n := g.Width * g.Height; len(g.Values) != n {
		return fmt.Errorf("%w: have %d, want %d", ErrValueCount, len(g.Values), n)
	}
	return nil
}

// At returns the sample at grid index (i, j).
func (g *Grid) At(i, j int) float64 {
	return g.Values[j*g.Width+i]
}

// Point returns the physical position of grid index (i, j).
// Fractional indices are allowed.
func (g *Grid) Point(i, j float64) vec.Vec2 {
	return vec.Vec2{
		X: g.Origin.X + i*g.Spacing.X,
		Y: g.Origin.Y + j*g.Spacing.Y,
	}
}

// IndexToPhysical returns the affine map from grid index space to physical
// coordinates.
func (g *Grid) IndexToPhysical() matrix.Matrix {
	return matrix.Matrix{g.Spacing.X, 0, 0, g.Spacing.Y, g.Origin.X, g.Origin.Y}
}

// Bounds returns the physical extent covered by the grid samples.
// Negative spacings are handled, so that LLx <= URx and LLy <= URy.
func (g *Grid) Bounds() rect.Rect {
	p0 := g.Point(0, 0)
	p1 := g.Point(float64(g.Width-1), float64(g.Height-1))
	return rect.Rect{
		LLx: min(p0.X, p1.X),
		LLy: min(p0.Y, p1.Y),
		URx: max(p0.X, p1.X),
		URy: max(p0.Y, p1.Y),
	}
}

// Range returns the smallest and largest sample value.
// The grid must contain at least one value.
func (g *Grid) Range() (lo, hi float64) {
	return floats.Min(g.Values), floats.Max(g.Values)
}
