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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Stroke draws every line segment of p as an independent stroke of width
// r.Width, with caps of style r.Cap at both ends.  No joins are added
// between consecutive segments: contour paths consist of separate
// MoveTo/LineTo pairs, and segments which share an end point overlap at
// their caps.  Curve segments are replaced by their chords.
//
// Zero-length segments are drawn as a dot for round and square caps and
// are omitted for butt caps.
//
// Coverage is passed to emit one scanline at a time; the coverage slice is
// only valid during the call.
func (r *Rasterizer) Stroke(p path.Path, emit func(y, xMin int, coverage []float32)) {
	r.outline = r.outline[:0]
	r.outlineOffsets = r.outlineOffsets[:0]

	var current, subpath vec.Vec2
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			current = pts[0]
			subpath = current
		case path.CmdLineTo, path.CmdQuadTo, path.CmdCubeTo:
			end := pts[len(pts)-1]
			r.addSegment(current, end)
			current = end
		case path.CmdClose:
			if current != subpath {
				r.addSegment(current, subpath)
			}
			current = subpath
		}
	}

	r.fillOutlines(emit)
}

// addSegment appends the outline polygon of the stroked segment a-b.
//
// The polygon runs along the +N side from a to b, around the end cap,
// back along the -N side and around the start cap.  All polygons share
// this orientation, so overlaps are filled once under the nonzero rule.
func (r *Rasterizer) addSegment(a, b vec.Vec2) {
	d := r.Width / 2
	start := len(r.outline)

	ab := b.Sub(a)
	length := ab.Length()
	if length < zeroLengthThreshold {
		switch r.Cap {
		case graphics.LineCapRound:
			r.addArc(a, d, vec.Vec2{X: 1, Y: 0}, 2*math.Pi, true)
		case graphics.LineCapSquare:
			r.addSquare(a, vec.Vec2{X: 1, Y: 0}, d)
		default:
			return
		}
		r.outlineOffsets = append(r.outlineOffsets, start)
		return
	}

	T := ab.Mul(1 / length)
	N := vec.Vec2{X: -T.Y, Y: T.X} // normal (90° CCW from T)

	r.outline = append(r.outline, a.Add(N.Mul(d)), b.Add(N.Mul(d)))
	r.addCap(b, T, d)
	r.outline = append(r.outline, b.Sub(N.Mul(d)), a.Sub(N.Mul(d)))
	r.addCap(a, T.Mul(-1), d)

	r.outlineOffsets = append(r.outlineOffsets, start)
}

// addCap adds a cap at point P.  T is the outward tangent (pointing away
// from the segment), d is half the stroke width.  The caller has already
// added P+N*d and adds P-N*d afterwards.
func (r *Rasterizer) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}

	switch r.Cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		r.outline = append(r.outline, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))
	case graphics.LineCapRound:
		// sweep clockwise from N to -N, through T
		r.addArc(P, d, N, -math.Pi, true)
	}
}

// addArc appends points on a circular arc around center, starting in
// direction startDir and turning by sweep radians.  The number of points
// is chosen so that the chords stay within r.Flatness device pixels of
// the arc.
func (r *Rasterizer) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	devRadius := max(
		r.transformLinear(vec.Vec2{X: radius, Y: 0}).Length(),
		r.transformLinear(vec.Vec2{X: 0, Y: radius}).Length(),
	)

	n := 1
	if devRadius >= r.Flatness {
		// a chord spanning angle θ deviates from the arc by
		// radius*(1-cos(θ/2))
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		if step <= 0 || math.IsNaN(step) {
			step = math.Pi / 4
		}
		n = max(int(math.Ceil(math.Abs(sweep)/step)), 1)
	} else if math.Abs(sweep) > math.Pi {
		// keep full circles from collapsing to a line
		n = 3
	}

	i0 := 1
	if includeStart {
		i0 = 0
	}
	dt := sweep / float64(n)
	for i := i0; i <= n; i++ {
		sin, cos := math.Sincos(float64(i) * dt)
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		r.outline = append(r.outline, center.Add(dir.Mul(radius)))
	}
}

// addSquare appends a square of side 2*d centred at center, with sides
// parallel and orthogonal to T.
func (r *Rasterizer) addSquare(center, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}
	r.outline = append(r.outline,
		center.Add(T.Mul(d)).Add(N.Mul(d)),
		center.Add(T.Mul(d)).Sub(N.Mul(d)),
		center.Sub(T.Mul(d)).Sub(N.Mul(d)),
		center.Sub(T.Mul(d)).Add(N.Mul(d)),
	)
}

// fillOutlines fills all collected outline polygons as one shape.
func (r *Rasterizer) fillOutlines(emit func(y, xMin int, coverage []float32)) {
	if len(r.outlineOffsets) == 0 {
		return
	}

	r.startEdges()
	for i, start := range r.outlineOffsets {
		end := len(r.outline)
		if i+1 < len(r.outlineOffsets) {
			end = r.outlineOffsets[i+1]
		}
		poly := r.outline[start:end]
		if len(poly) < 2 {
			continue
		}
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	}

	r.fillEdges(emit)
}

// transformLinear applies the linear part of the CTM to v.
func (r *Rasterizer) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}
