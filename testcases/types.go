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

package testcases

import (
	"seehuhn.de/go/geom/vec"
)

// TestCase defines a scalar field sampled on a regular grid, together with
// isovalues which are interesting for this field.
type TestCase struct {
	Name      string                     // lowercase a-z, 0-9 and _ only
	Width     int                        // number of samples in x direction
	Height    int                        // number of samples in y direction
	Origin    vec.Vec2                   // physical position of sample (0, 0)
	Spacing   vec.Vec2                   // distance between samples (zero-value means unit spacing)
	Field     func(x, y float64) float64 // evaluated at physical sample positions
	Isovalues []float64                  // contour levels worth testing
}

// Step returns the sample spacing, with the zero value replaced by
// unit spacing.
func (tc TestCase) Step() vec.Vec2 {
	if tc.Spacing == (vec.Vec2{}) {
		return vec.Vec2{X: 1, Y: 1}
	}
	return tc.Spacing
}

// Values samples the field in row-major order: the sample with index
// (i, j) is stored at position j*Width+i.
func (tc TestCase) Values() []float64 {
	step := tc.Step()
	vals := make([]float64, tc.Width*tc.Height)
	for j := range tc.Height {
		y := tc.Origin.Y + float64(j)*step.Y
		for i := range tc.Width {
			x := tc.Origin.X + float64(i)*step.X
			vals[j*tc.Width+i] = tc.Field(x, y)
		}
	}
	return vals
}
