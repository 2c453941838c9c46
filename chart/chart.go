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

// Package chart shows isocontours as gonum/plot charts, with axes in
// physical coordinates.
package chart

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"seehuhn.de/go/contour"
)

// ErrNaN indicates a contour with a NaN isovalue, which has no colour.
var ErrNaN = errors.New("chart: isovalue is NaN")

// Segments draws the segments of one contour.
// It implements the plot.Plotter, plot.DataRanger and plot.Thumbnailer
// interfaces.
type Segments struct {
	Segments []contour.Segment
	draw.LineStyle
}

// NewSegments returns a plotter for the segments of res, using the
// default line style.
func NewSegments(res *contour.Result) *Segments {
	return &Segments{
		Segments:  res.Segments,
		LineStyle: plotter.DefaultLineStyle,
	}
}

// Plot implements the plot.Plotter interface.
func (s *Segments) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, seg := range s.Segments {
		c.StrokeLine2(s.LineStyle,
			trX(seg.A.X), trY(seg.A.Y),
			trX(seg.B.X), trY(seg.B.Y))
	}
}

// DataRange implements the plot.DataRanger interface.
func (s *Segments) DataRange() (xmin, xmax, ymin, ymax float64) {
	if len(s.Segments) == 0 {
		return math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)
	}
	res := contour.Result{Segments: s.Segments}
	b, _ := res.Bounds()
	return b.LLx, b.URx, b.LLy, b.URy
}

// Thumbnail implements the plot.Thumbnailer interface.
func (s *Segments) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(s.LineStyle, c.Min.X, y, c.Max.X, y)
}

// Options controls the output of [New].
// A nil *Options uses the defaults given for each field.
type Options struct {
	// Title is shown above the chart.
	Title string

	// XLabel and YLabel name the axes.  The defaults are "x" and "y".
	XLabel, YLabel string

	// LineWidth is the width of the contour lines.  The default is 1pt.
	LineWidth vg.Length

	// ColorMap assigns colours to isovalues.  Its range is set to the
	// range of the isovalues.  The default is Moreland's smooth blue-red
	// diverging map.
	ColorMap palette.ColorMap

	// NoLegend omits the legend listing the isovalues.
	NoLegend bool
}

// New returns a chart showing the given contours, one colour per
// isovalue.
func New(results []*contour.Result, opts *Options) (*plot.Plot, error) {
	if opts == nil {
		opts = &Options{}
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	if p.X.Label.Text == "" {
		p.X.Label.Text = "x"
	}
	p.Y.Label.Text = opts.YLabel
	if p.Y.Label.Text == "" {
		p.Y.Label.Text = "y"
	}
	p.Add(plotter.NewGrid())

	cmap := opts.ColorMap
	if cmap == nil {
		cmap = moreland.SmoothBlueRed()
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, res := range results {
		if math.IsNaN(res.Isovalue) {
			return nil, ErrNaN
		}
		lo = min(lo, res.Isovalue)
		hi = max(hi, res.Isovalue)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	if len(results) > 0 {
		cmap.SetMin(lo)
		cmap.SetMax(hi)
	}

	width := opts.LineWidth
	if width <= 0 {
		width = vg.Points(1)
	}

	for _, res := range results {
		col, err := cmap.At(res.Isovalue)
		if err != nil {
			return nil, fmt.Errorf("isovalue %g: %w", res.Isovalue, err)
		}
		s := NewSegments(res)
		s.Color = col
		s.Width = width
		p.Add(s)
		if !opts.NoLegend {
			p.Legend.Add(strconv.FormatFloat(res.Isovalue, 'g', -1, 64), s)
		}
	}
	p.Legend.Top = true

	return p, nil
}

// Save writes the chart to the named file, creating the parent directory
// if needed.  The format is chosen by the file name extension, as for
// (*plot.Plot).Save.
func Save(p *plot.Plot, name string, width, height vg.Length) error {
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return p.Save(width, height, name)
}
