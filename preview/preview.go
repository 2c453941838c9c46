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

// Package preview draws isocontours into raster images.
package preview

import (
	"image"
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"

	"seehuhn.de/go/contour"
	"seehuhn.de/go/contour/internal/raster"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"
)

// Options controls the output of [Render].
// A nil *Options uses the defaults given for each field.
type Options struct {
	// Width and Height give the image size in pixels.  If only one of
	// them is set, the other is chosen to match the aspect ratio of
	// Bounds.  The default width is 512.
	Width, Height int

	// Bounds is the physical region shown in the image.  The default is
	// the bounding box of all contours, enlarged by 5% on each side.
	Bounds rect.Rect

	// LineWidth is the stroke width in pixels.  The default is 1.5.
	LineWidth float64

	// Background fills the image before drawing.  The default is white.
	Background color.Color

	// ColorMap assigns colours to isovalues.  Its range is set to the
	// range of the isovalues.  The default is Moreland's smooth blue-red
	// diverging map.
	ColorMap palette.ColorMap
}

const (
	defaultWidth     = 512
	defaultLineWidth = 1.5
	boundsMargin     = 0.05
)

// layout maps physical coordinates to image coordinates.
type layout struct {
	width, height int
	bounds        rect.Rect
	scale         float64 // pixels per physical unit
	ox, oy        float64 // offset which centres the bounds in the image
	lineWidth     float64 // in pixels
}

func newLayout(results []*contour.Result, opts *Options) *layout {
	bounds := opts.Bounds
	if bounds == (rect.Rect{}) {
		bounds = contentBounds(results)
	}
	bw := bounds.URx - bounds.LLx
	bh := bounds.URy - bounds.LLy

	width, height := opts.Width, opts.Height
	switch {
	case width <= 0 && height <= 0:
		width = defaultWidth
		height = max(int(math.Round(float64(width)*bh/bw)), 1)
	case width <= 0:
		width = max(int(math.Round(float64(height)*bw/bh)), 1)
	case height <= 0:
		height = max(int(math.Round(float64(width)*bh/bw)), 1)
	}

	s := min(float64(width)/bw, float64(height)/bh)
	l := &layout{
		width:     width,
		height:    height,
		bounds:    bounds,
		scale:     s,
		ox:        (float64(width) - bw*s) / 2,
		oy:        (float64(height) - bh*s) / 2,
		lineWidth: opts.LineWidth,
	}
	if l.lineWidth <= 0 {
		l.lineWidth = defaultLineWidth
	}
	return l
}

// imageCTM returns the map from physical coordinates to image pixels,
// with the y axis pointing down.
func (l *layout) imageCTM() matrix.Matrix {
	s := l.scale
	return matrix.Matrix{s, 0, 0, -s, l.ox - l.bounds.LLx*s, l.oy + l.bounds.URy*s}
}

// pageCTM returns the map from physical coordinates to PDF page
// coordinates, with the y axis pointing up.
func (l *layout) pageCTM() matrix.Matrix {
	s := l.scale
	return matrix.Matrix{s, 0, 0, s, l.ox - l.bounds.LLx*s, l.oy - l.bounds.LLy*s}
}

// Render draws every contour segment of the given results.  Each result
// is drawn in the colour its isovalue has in the colour map.  Physical
// coordinates are mapped to the image with equal scale in both directions,
// with the y axis pointing up.
func Render(results []*contour.Result, opts *Options) *image.RGBA {
	if opts == nil {
		opts = &Options{}
	}
	l := newLayout(results, opts)

	img := image.NewRGBA(image.Rect(0, 0, l.width, l.height))
	fill(img, color.RGBAModel.Convert(background(opts)).(color.RGBA))

	cmap := opts.ColorMap
	if cmap == nil {
		cmap = moreland.SmoothBlueRed()
	}
	setRange(cmap, results)

	r := raster.NewRasterizer(rect.Rect{URx: float64(l.width), URy: float64(l.height)})
	r.CTM = l.imageCTM()
	r.Width = l.lineWidth / l.scale
	r.Cap = graphics.LineCapRound

	segments := 0
	for _, res := range results {
		if res.Len() == 0 {
			continue
		}
		segments += res.Len()

		col, err := cmap.At(res.Isovalue)
		if err != nil {
			// NaN isovalues are outside every range
			col = color.Black
		}
		src := color.RGBAModel.Convert(col).(color.RGBA)

		r.Stroke(res.Path(), func(y, xMin int, coverage []float32) {
			blend(img, y, xMin, coverage, src)
		})
	}

	contour.Logger().Debug("preview rendered",
		"width", l.width,
		"height", l.height,
		"contours", len(results),
		"segments", segments)
	return img
}

func background(opts *Options) color.Color {
	if opts.Background == nil {
		return color.White
	}
	return opts.Background
}

// contentBounds returns the bounding box of all segments, with a margin.
// Degenerate boxes are enlarged to unit size.
func contentBounds(results []*contour.Result) rect.Rect {
	var b rect.Rect
	found := false
	for _, res := range results {
		rb, ok := res.Bounds()
		if !ok {
			continue
		}
		if !found {
			b = rb
			found = true
			continue
		}
		b.LLx = min(b.LLx, rb.LLx)
		b.LLy = min(b.LLy, rb.LLy)
		b.URx = max(b.URx, rb.URx)
		b.URy = max(b.URy, rb.URy)
	}
	if !found {
		return rect.Rect{URx: 1, URy: 1}
	}

	if b.URx-b.LLx == 0 {
		b.LLx -= 0.5
		b.URx += 0.5
	}
	if b.URy-b.LLy == 0 {
		b.LLy -= 0.5
		b.URy += 0.5
	}
	mx := boundsMargin * (b.URx - b.LLx)
	my := boundsMargin * (b.URy - b.LLy)
	return rect.Rect{LLx: b.LLx - mx, LLy: b.LLy - my, URx: b.URx + mx, URy: b.URy + my}
}

// setRange sets the colour map range to the range of the isovalues.
func setRange(cmap palette.ColorMap, results []*contour.Result) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, res := range results {
		if math.IsNaN(res.Isovalue) {
			continue
		}
		lo = min(lo, res.Isovalue)
		hi = max(hi, res.Isovalue)
	}
	if lo > hi {
		lo, hi = 0, 1
	} else if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	cmap.SetMin(lo)
	cmap.SetMax(hi)
}

func fill(img *image.RGBA, c color.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
}

// blend composites src over one row of img, using the coverage as alpha.
func blend(img *image.RGBA, y, xMin int, coverage []float32, src color.RGBA) {
	off := img.PixOffset(xMin, y)
	row := img.Pix[off : off+4*len(coverage)]
	for i, a := range coverage {
		p := row[4*i : 4*i+4 : 4*i+4]
		p[0] = mix(src.R, p[0], a)
		p[1] = mix(src.G, p[1], a)
		p[2] = mix(src.B, p[2], a)
		p[3] = mix(src.A, p[3], a)
	}
}

func mix(src, dst uint8, a float32) uint8 {
	return uint8(float32(src)*a + float32(dst)*(1-a) + 0.5)
}
