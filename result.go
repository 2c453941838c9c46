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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Segment is a piece of the isocontour inside a single grid cell.
// A and B are in physical coordinates.
type Segment struct {
	A, B vec.Vec2
}

// Result is the output of [Extract].
type Result struct {
	// Isovalue is the scalar value the contour was extracted for.
	Isovalue float64

	// Segments lists the contour pieces in row-major cell order.
	Segments []Segment

	// Cells is the number of grid cells which were examined.
	Cells int

	// Ambiguous counts the cells with four crossed edges.  These saddle
	// cells do not contribute segments, so the contour has gaps there.
	Ambiguous int
}

// Len returns the number of segments.
func (r *Result) Len() int {
	return len(r.Segments)
}

// Bounds returns the smallest rectangle which contains all segment end
// points.  The second return value is false if there are no segments.
func (r *Result) Bounds() (rect.Rect, bool) {
	if len(r.Segments) == 0 {
		return rect.Rect{}, false
	}
	first := r.Segments[0].A
	b := rect.Rect{LLx: first.X, LLy: first.Y, URx: first.X, URy: first.Y}
	for _, s := range r.Segments {
		for _, p := range [2]vec.Vec2{s.A, s.B} {
			b.LLx = min(b.LLx, p.X)
			b.LLy = min(b.LLy, p.Y)
			b.URx = max(b.URx, p.X)
			b.URy = max(b.URy, p.Y)
		}
	}
	return b, true
}

// Path returns the segments as a path, with one open two-point subpath per
// segment.
func (r *Result) Path() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [1]vec.Vec2
		for _, s := range r.Segments {
			buf[0] = s.A
			if !yield(path.CmdMoveTo, buf[:]) {
				return
			}
			buf[0] = s.B
			if !yield(path.CmdLineTo, buf[:]) {
				return
			}
		}
	}
}

// Points returns the segment end points, two per segment, in segment
// order.  Points shared between neighbouring cells are repeated.
func (r *Result) Points() []vec.Vec2 {
	pts := make([]vec.Vec2, 0, 2*len(r.Segments))
	for _, s := range r.Segments {
		pts = append(pts, s.A, s.B)
	}
	return pts
}

// Lines returns the line connectivity matching [Result.Points]:
// segment k connects points 2k and 2k+1.
func (r *Result) Lines() [][2]int {
	lines := make([][2]int, len(r.Segments))
	for k := range lines {
		lines[k] = [2]int{2 * k, 2*k + 1}
	}
	return lines
}

// PointScalars returns one value per point of [Result.Points], each equal
// to the isovalue.  Output formats use this to colour the contour.
func (r *Result) PointScalars() []float64 {
	vals := make([]float64, 2*len(r.Segments))
	for i := range vals {
		vals[i] = r.Isovalue
	}
	return vals
}
