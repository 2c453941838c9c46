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

package preview

import (
	"image/color"
	"math"
	"os"
	"path/filepath"

	"seehuhn.de/go/contour"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	pdfcolor "seehuhn.de/go/pdf/graphics/color"
)

// maxGray is the lightest grey used for contour lines in PDF output.
const maxGray = 0.6

// WritePDF draws the contours as vector graphics on a single PDF page.
// The page size in PDF points equals the image size Render would use.
// Contours are drawn in shades of grey, darker for larger isovalues;
// ColorMap is not used.
func WritePDF(name string, results []*contour.Result, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}
	l := newLayout(results, opts)

	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	paper := &pdf.Rectangle{
		URx: float64(l.width),
		URy: float64(l.height),
	}
	page, err := document.CreateSinglePage(name, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	bg := color.GrayModel.Convert(background(opts)).(color.Gray)
	page.SetFillColor(pdfcolor.DeviceGray(float64(bg.Y) / 255))
	page.Rectangle(0, 0, float64(l.width), float64(l.height))
	page.Fill()

	page.Transform(l.pageCTM())
	page.SetLineWidth(l.lineWidth / l.scale)
	page.SetLineCap(graphics.LineCapRound)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, res := range results {
		if !math.IsNaN(res.Isovalue) {
			lo = min(lo, res.Isovalue)
			hi = max(hi, res.Isovalue)
		}
	}

	for _, res := range results {
		if res.Len() == 0 {
			continue
		}

		gray := 0.0
		if hi > lo {
			t := (res.Isovalue - lo) / (hi - lo)
			if !math.IsNaN(t) {
				gray = maxGray * (1 - t)
			}
		}
		page.SetStrokeColor(pdfcolor.DeviceGray(gray))

		for _, s := range res.Segments {
			page.MoveTo(s.A.X, s.A.Y)
			page.LineTo(s.B.X, s.B.Y)
		}
		page.Stroke()
	}

	return page.Close()
}
