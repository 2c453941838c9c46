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
	"math"

	"seehuhn.de/go/geom/vec"
)

var smoothCases = []TestCase{
	{
		Name:      "ramp_x",
		Width:     16,
		Height:    12,
		Field:     func(x, y float64) float64 { return x },
		Isovalues: []float64{0.5, 3.25, 7, 14.999},
	},
	{
		Name:      "ramp_diagonal",
		Width:     20,
		Height:    20,
		Field:     func(x, y float64) float64 { return x + 0.5*y },
		Isovalues: []float64{2.3, 9.1, 17.75},
	},
	{
		Name:      "bump",
		Width:     41,
		Height:    41,
		Origin:    vec.Vec2{X: -2, Y: -2},
		Spacing:   vec.Vec2{X: 0.1, Y: 0.1},
		Field:     gaussian(0, 0, 0.8),
		Isovalues: []float64{0.1, 0.5, 0.9},
	},
	{
		Name:      "bump_anisotropic",
		Width:     33,
		Height:    17,
		Origin:    vec.Vec2{X: 10, Y: -40},
		Spacing:   vec.Vec2{X: 0.25, Y: 5},
		Field:     gaussian(14, 0, 2),
		Isovalues: []float64{0.05, 0.3, 0.6},
	},
	{
		Name:      "ripple",
		Width:     64,
		Height:    48,
		Spacing:   vec.Vec2{X: 0.2, Y: 0.2},
		Field:     func(x, y float64) float64 { return math.Sin(x) * math.Cos(0.7*y) },
		Isovalues: []float64{-0.6, 0.01, 0.45},
	},
	{
		// values in a range similar to a sea level pressure anomaly field
		Name:   "pressure",
		Width:  50,
		Height: 50,
		Field: func(x, y float64) float64 {
			dx, dy := x-31, y-22
			r := math.Hypot(dx, dy)
			return 630 - 2068*math.Exp(-r*r/60) + 40*math.Sin(0.3*x)
		},
		Isovalues: []float64{-1000, -500, 0, 100, 500},
	},
}

// gaussian returns a radially symmetric bump of height 1 centred at
// (cx, cy), with standard deviation sigma.
func gaussian(cx, cy, sigma float64) func(x, y float64) float64 {
	return func(x, y float64) float64 {
		dx, dy := x-cx, y-cy
		return math.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
	}
}
