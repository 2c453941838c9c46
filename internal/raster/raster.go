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

// Package raster computes anti-aliased pixel coverage for line geometry.
//
// The package is used to draw contour previews: every contour segment is
// turned into a thin polygon (see [Rasterizer.Stroke]) and the polygons are
// filled using the nonzero winding rule.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// edge is a polygon edge in device coordinates.
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasterizer converts polygons and stroked line segments to pixel coverage
// values between 0 (outside) and 1 (inside).  Internal buffers are kept
// between calls, so a single Rasterizer should be reused for many paths.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space (contour coordinates) to device space (pixels).
	// Must be non-singular.
	CTM matrix.Matrix

	// Clip limits the output to this device space rectangle.
	// Coordinates must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a round
	// cap and its polygonal approximation.  Must be positive.
	Flatness float64

	// Width is the stroke width in user space units.  Must be positive.
	Width float64

	// Cap is the shape used at both ends of every stroked segment.
	Cap graphics.LineCapStyle

	// smallPathThreshold is the largest bounding box area (in pixels) for
	// which the whole bounding box is accumulated at once.  Larger shapes
	// are processed scanline by scanline, using an active edge list.
	smallPathThreshold int

	cover       []float32 // per pixel change of cover; reused for output
	area        []float32 // per pixel area contribution
	edges       []edge    // edges of the current shape (device space)
	activeIdx   []int     // indices of active edges
	rowHasEdges []bool    // per scanline: whether any edge contributes

	outline        []vec.Vec2 // stroke polygons, stored contiguously
	outlineOffsets []int      // start index of each polygon in outline

	edgeBBoxFirst bool // true until the first edge is added
	edgeDevXMin   float64
	edgeDevXMax   float64
	edgeDevYMin   float64
	edgeDevYMax   float64
}

// NewRasterizer returns a Rasterizer for the given clip rectangle, using
// the identity transformation, unit stroke width and butt caps.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:      matrix.Identity,
		Clip:     clip,
		Flatness: defaultFlatness,
		Width:    1.0,
		Cap:      graphics.LineCapButt,

		smallPathThreshold: smallPathThreshold,
	}
}

// Reset restores the defaults of [NewRasterizer] for the given clip
// rectangle, keeping the allocated buffers.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1.0
	r.Cap = graphics.LineCapButt

	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.activeIdx = r.activeIdx[:0]
	r.rowHasEdges = r.rowHasEdges[:0]
	r.outline = r.outline[:0]
	r.outlineOffsets = r.outlineOffsets[:0]
}

// FillNonZero fills the polygons described by p, using the nonzero winding
// rule.  Open subpaths are closed implicitly.  Curve segments are replaced
// by the chord from the current point to the curve end point.
//
// Coverage is passed to emit one scanline at a time; the coverage slice is
// only valid during the call.
func (r *Rasterizer) FillNonZero(p path.Path, emit func(y, xMin int, coverage []float32)) {
	r.startEdges()

	var current, subpath vec.Vec2
	open := false
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if open && current != subpath {
				r.addEdge(current, subpath)
			}
			current = pts[0]
			subpath = current
			open = true
		case path.CmdLineTo, path.CmdQuadTo, path.CmdCubeTo:
			end := pts[len(pts)-1]
			r.addEdge(current, end)
			current = end
		case path.CmdClose:
			if current != subpath {
				r.addEdge(current, subpath)
			}
			current = subpath
			open = false
		}
	}
	if open && current != subpath {
		r.addEdge(current, subpath)
	}

	r.fillEdges(emit)
}

// startEdges clears the edge list before a new shape is collected.
func (r *Rasterizer) startEdges() {
	r.edges = r.edges[:0]
	r.edgeBBoxFirst = true
}

// fillEdges fills the collected edges with the nonzero winding rule.
func (r *Rasterizer) fillEdges(emit func(y, xMin int, coverage []float32)) {
	xMin, xMax, yMin, yMax, ok := r.edgeBounds()
	if !ok {
		return
	}

	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillSmallPath(xMin, xMax, yMin, yMax, emit)
	} else {
		r.fillLargePath(xMin, xMax, yMin, yMax, emit)
	}
}

// edgeBounds returns the integer bounding box of the collected edges,
// clamped to the clip rectangle.
func (r *Rasterizer) edgeBounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.edgeDevXMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.edgeDevXMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.edgeDevYMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.edgeDevYMax))+1, int(r.Clip.URy))

	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// addEdge transforms an edge from user space to device space and adds it
// to the edge list.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	dx0 := r.CTM[0]*p0.X + r.CTM[2]*p0.Y + r.CTM[4]
	dy0 := r.CTM[1]*p0.X + r.CTM[3]*p0.Y + r.CTM[5]
	dx1 := r.CTM[0]*p1.X + r.CTM[2]*p1.Y + r.CTM[4]
	dy1 := r.CTM[1]*p1.X + r.CTM[3]*p1.Y + r.CTM[5]

	// horizontal edges do not contribute to coverage
	dy := dy1 - dy0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}

	r.edges = append(r.edges, edge{
		x0: dx0, y0: dy0,
		x1: dx1, y1: dy1,
		dxdy: (dx1 - dx0) / dy,
	})

	if r.edgeBBoxFirst {
		r.edgeDevXMin = min(dx0, dx1)
		r.edgeDevXMax = max(dx0, dx1)
		r.edgeDevYMin = min(dy0, dy1)
		r.edgeDevYMax = max(dy0, dy1)
		r.edgeBBoxFirst = false
	} else {
		r.edgeDevXMin = min(r.edgeDevXMin, dx0, dx1)
		r.edgeDevXMax = max(r.edgeDevXMax, dx0, dx1)
		r.edgeDevYMin = min(r.edgeDevYMin, dy0, dy1)
		r.edgeDevYMax = max(r.edgeDevYMax, dy0, dy1)
	}
}

// Coverage accumulation:
//
// Every edge crossing a pixel contributes
//
//	cover = sign * dy
//	area  = cover * (1 - xFrac)
//
// where dy is the vertical extent of the edge inside the pixel, sign is +1
// for downward edges and -1 for upward edges, and xFrac is the mean
// horizontal position of the edge inside the pixel.  Integrating a
// scanline from left to right,
//
//	coverage[i] = sum(cover[0:i]) + area[i]
//
// gives the signed area of the shape inside pixel i.

// accumulateEdge adds the contribution of e within scanline y to the cover
// and area buffers.  The buffers are indexed by x - bboxXMin.  Edges left
// of the bounding box are accumulated into the first pixel.
func (r *Rasterizer) accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xLeft := e.x0 + e.dxdy*(yTop-e.y0)
	xRight := e.x0 + e.dxdy*(yBot-e.y0)
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	if pixRight < bboxXMin {
		coverVal := sign * float32(yBot-yTop)
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pixLeft >= bboxXMax {
		return
	}

	if pixLeft == pixRight {
		r.accumulateInColumn(e, yTop, yBot, sign, pixLeft, cover, area, bboxXMin, bboxXMax)
		return
	}

	// the edge crosses several pixel columns: split it at the column
	// boundaries
	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		yAtLeft := e.y0 + dydx*(float64(pix)-e.x0)
		yAtRight := e.y0 + dydx*(float64(pix+1)-e.x0)
		segYMin := max(min(yAtLeft, yAtRight), yTop)
		segYMax := min(max(yAtLeft, yAtRight), yBot)
		if segYMax <= segYMin {
			continue
		}
		r.accumulateInColumn(e, segYMin, segYMax, sign, pix, cover, area, bboxXMin, bboxXMax)
	}
}

// accumulateInColumn adds the contribution of the part of e between yTop
// and yBot, which must lie within pixel column pix.
func (r *Rasterizer) accumulateInColumn(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, bboxXMin, bboxXMax int) {
	coverVal := sign * float32(yBot-yTop)

	if pix < bboxXMin {
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pix >= bboxXMax {
		return
	}

	yMid := (yTop + yBot) / 2
	xMid := e.x0 + e.dxdy*(yMid-e.y0)
	xFrac := xMid - float64(pix)

	idx := pix - bboxXMin
	cover[idx] += coverVal
	area[idx] += coverVal * float32(1-xFrac)
}

// integrateScanline converts accumulated cover and area values into
// coverage, using the nonzero winding rule.  The result is stored in cover.
func integrateScanline(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]

		cov := raw
		if raw < 0 {
			cov = -raw
		}
		cover[i] = min(cov, 1)
	}
}

// trimZeros returns the part of coverage between the first and the last
// non-zero value, together with its offset.  If all values are zero,
// nil is returned.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

// fillSmallPath accumulates all edges into buffers covering the whole
// bounding box, then integrates every row.
func (r *Rasterizer) fillSmallPath(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)

	r.rowHasEdges = slices.Grow(r.rowHasEdges[:0], height)[:height]
	clear(r.rowHasEdges)

	for i := range r.edges {
		e := &r.edges[i]

		edgeYMin := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		edgeYMax := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := edgeYMin; y < edgeYMax; y++ {
			row := y - yMin
			off := row * width
			r.accumulateEdge(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)
			r.rowHasEdges[row] = true
		}
	}

	for row := range height {
		if !r.rowHasEdges[row] {
			continue
		}
		off := row * width
		coverage := r.cover[off : off+width]
		integrateScanline(coverage, r.area[off:off+width])
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+offset, trimmed)
		}
	}
}

// fillLargePath processes one scanline at a time, keeping track of the
// edges which intersect the current scanline.
func (r *Rasterizer) fillLargePath(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	nextEdge := 0
	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		yfNext := float64(y + 1)

		for nextEdge < len(r.edges) && min(r.edges[nextEdge].y0, r.edges[nextEdge].y1) < yfNext {
			r.activeIdx = append(r.activeIdx, nextEdge)
			nextEdge++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)

		touched := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if max(e.y0, e.y1) <= yf {
				// edge is finished, swap-remove it
				r.activeIdx[i] = r.activeIdx[len(r.activeIdx)-1]
				r.activeIdx = r.activeIdx[:len(r.activeIdx)-1]
				continue
			}
			r.accumulateEdge(e, y, r.cover, r.area, xMin, xMax)
			touched = true
			i++
		}
		if !touched {
			continue
		}

		integrateScanline(r.cover, r.area)
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

const (
	// defaultFlatness is the default tolerance for approximating round
	// caps, in device pixels.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the smallest vertical extent of an edge
	// which contributes to coverage.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the default bounding box area (in pixels) up
	// to which the whole bounding box is accumulated at once.
	smallPathThreshold = 65536

	// zeroLengthThreshold is the length below which a segment is
	// treated as a single point.
	zeroLengthThreshold = 1e-10
)
