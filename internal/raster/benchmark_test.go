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
	"fmt"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/contour"
	"seehuhn.de/go/contour/testcases"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// rippleContour returns the segments of the ripple test case for a
// mid-range isovalue.
func rippleContour(b *testing.B) *contour.Result {
	b.Helper()
	var tc testcases.TestCase
	for _, c := range testcases.All["smooth"] {
		if c.Name == "ripple" {
			tc = c
		}
	}
	g := &contour.Grid{
		Width:   tc.Width,
		Height:  tc.Height,
		Origin:  tc.Origin,
		Spacing: tc.Step(),
		Values:  tc.Values(),
	}
	res, err := contour.Extract(g, 0.01)
	if err != nil {
		b.Fatal(err)
	}
	return res
}

// BenchmarkStrokeContour benchmarks our rasterizer drawing a contour.
func BenchmarkStrokeContour(b *testing.B) {
	res := rippleContour(b)
	p := res.Path()
	bounds, _ := res.Bounds()

	for _, size := range []int{64, 512, 2048} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{LLx: 0, LLy: 0, URx: float64(size), URy: float64(size)}
			r := NewRasterizer(clip)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			sx := float64(size) / (bounds.URx - bounds.LLx)
			sy := float64(size) / (bounds.URy - bounds.LLy)
			ctm := matrix.Matrix{sx, 0, 0, sy, -bounds.LLx * sx, -bounds.LLy * sy}

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(clip)
				r.CTM = ctm
				r.Width = 1.5 / sx
				r.Cap = graphics.LineCapRound
				r.Stroke(p, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, c := range coverage {
						row[i] = max(row[i], uint8(c*255))
					}
				})
			}
		})
	}
}

// BenchmarkVectorContour benchmarks x/image/vector drawing the same
// contour, with every segment filled as a quadrilateral.
func BenchmarkVectorContour(b *testing.B) {
	res := rippleContour(b)
	bounds, _ := res.Bounds()

	for _, size := range []int{64, 512, 2048} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{255})

			sx := float64(size) / (bounds.URx - bounds.LLx)
			sy := float64(size) / (bounds.URy - bounds.LLy)
			dev := func(p vec.Vec2) (float32, float32) {
				return float32((p.X - bounds.LLx) * sx), float32((p.Y - bounds.LLy) * sy)
			}

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(size, size)
				for _, s := range res.Segments {
					ax, ay := dev(s.A)
					bx, by := dev(s.B)
					nx, ny := ay-by, bx-ax
					l := float32(vec.Vec2{X: float64(nx), Y: float64(ny)}.Length())
					if l == 0 {
						continue
					}
					nx, ny = 0.75*nx/l, 0.75*ny/l
					r.MoveTo(ax+nx, ay+ny)
					r.LineTo(bx+nx, by+ny)
					r.LineTo(bx-nx, by-ny)
					r.LineTo(ax-nx, ay-ny)
					r.ClosePath()
				}
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// BenchmarkFillTriangles measures the plain polygon fill.
func BenchmarkFillTriangles(b *testing.B) {
	shapes := &builder{}
	for k := range 100 {
		x := float64(k%10) * 20
		y := float64(k/10) * 20
		shapes = shapes.MoveTo(vec.Vec2{X: x, Y: y}).
			LineTo(vec.Vec2{X: x + 19, Y: y + 3}).
			LineTo(vec.Vec2{X: x + 7, Y: y + 18}).
			Close()
	}
	p := shapes.Path()
	clip := rect.Rect{LLx: 0, LLy: 0, URx: 200, URy: 200}
	r := NewRasterizer(clip)

	b.ReportAllocs()
	for b.Loop() {
		r.FillNonZero(p, func(y, xMin int, coverage []float32) {})
	}
}
