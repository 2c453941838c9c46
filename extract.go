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
	"seehuhn.de/go/geom/vec"
)

// cellCorners gives the corners of a cell as index offsets from its lower
// left sample, in counterclockwise order.  Edge k runs from corner k to
// corner k+1 (mod 4), so the edges are visited in the order bottom, right,
// top, left.
var cellCorners = [4][2]int{
	{0, 0}, // bottom left
	{1, 0}, // bottom right
	{1, 1}, // top right
	{0, 1}, // top left
}

// Extract computes the isocontour of g at the given isovalue.
//
// The result holds one segment for every cell which has exactly two crossed
// edges, in row-major cell order.  The end points of a segment are
// listed in the order the edges were visited.
//
// Extract returns an error wrapping [ErrInvalidGridShape] if the grid has
// fewer than two samples in either direction, and [ErrValueCount] if
// the number of values does not match the grid dimensions.
func Extract(g *Grid, isovalue float64, opts ...Option) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts)

	rows := g.Height - 1
	res := &Result{
		Isovalue: isovalue,
		Cells:    (g.Width - 1) * rows,
	}

	bands := o.bands(rows)
	if len(bands) <= 1 {
		res.Segments, res.Ambiguous = scanRows(g, isovalue, 0, rows, nil)
	} else {
		scanBands(g, isovalue, bands, res)
	}

	Logger().Debug("contour extracted",
		"width", g.Width,
		"height", g.Height,
		"isovalue", isovalue,
		"segments", len(res.Segments),
		"ambiguous", res.Ambiguous,
		"bands", max(len(bands), 1))
	return res, nil
}

// scanRows processes the cells in rows j0, ..., j1-1 and appends the
// resulting segments to segs.  The second return value is the number of
// ambiguous cells.
//
// The crossing test compares four booleans around a closed loop, so the
// number of crossed edges of a cell is always even.
func scanRows(g *Grid, iso float64, j0, j1 int, segs []Segment) ([]Segment, int) {
	ambiguous := 0
	var s [4]float64
	var pts [4]vec.Vec2

	w := g.Width
	for j := j0; j < j1; j++ {
		for i := range w - 1 {
			base := j*w + i
			s[0] = g.Values[base]
			s[1] = g.Values[base+1]
			s[2] = g.Values[base+w+1]
			s[3] = g.Values[base+w]

			n := 0
			for k := range 4 {
				sa, sb := s[k], s[(k+1)%4]
				if (sa <= iso) == (sb <= iso) {
					continue
				}
				pts[n] = g.edgePoint(i, j, k, edgeParameter(sa, sb, iso))
				n++
			}

			switch n {
			case 2:
				segs = append(segs, Segment{A: pts[0], B: pts[1]})
			case 4:
				ambiguous++
			}
		}
	}
	return segs, ambiguous
}

// edgeParameter returns the position of iso between the edge end values sa
// and sb, as a fraction of the edge length measured from the first end
// point.  For a degenerate edge with sa == sb the first end point is used.
func edgeParameter(sa, sb, iso float64) float64 {
	if sa == sb {
		return 0
	}
	return (iso - sa) / (sb - sa)
}

// edgePoint returns the physical position of the point at parameter t along
// edge k of cell (i, j).
func (g *Grid) edgePoint(i, j, k int, t float64) vec.Vec2 {
	a := cellCorners[k]
	b := cellCorners[(k+1)%4]
	u := float64(i + a[0])
	v := float64(j + a[1])
	switch {
	case b[0] > a[0]:
		u += t
	case b[0] < a[0]:
		u -= t
	case b[1] > a[1]:
		v += t
	default:
		v -= t
	}
	return g.Point(u, v)
}
