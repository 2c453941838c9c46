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

import "math"

var degenerateCases = []TestCase{
	{
		// smallest possible grid, a single cell
		Name:      "single_cell",
		Width:     2,
		Height:    2,
		Field:     func(x, y float64) float64 { return 10 * x },
		Isovalues: []float64{5, 0, 10},
	},
	{
		// f = x*y has a saddle at the centre cell
		Name:      "saddle",
		Width:     6,
		Height:    6,
		Field:     func(x, y float64) float64 { return (x - 2.5) * (y - 2.5) },
		Isovalues: []float64{0, 0.1, -0.1},
	},
	{
		// alternating values, every cell is ambiguous at isovalue 0.5
		Name:   "checkerboard",
		Width:  8,
		Height: 8,
		Field: func(x, y float64) float64 {
			return float64((int(x) + int(y)) % 2)
		},
		Isovalues: []float64{0.5, 0, 1},
	},
	{
		// integer plateaus, isovalues hit sample values exactly
		Name:      "terraces",
		Width:     12,
		Height:    9,
		Field:     func(x, y float64) float64 { return math.Floor((x + y) / 3) },
		Isovalues: []float64{1, 2, 2.5, 4},
	},
	{
		// constant field, no contour for any isovalue
		Name:      "constant",
		Width:     5,
		Height:    4,
		Field:     func(x, y float64) float64 { return 7 },
		Isovalues: []float64{7, 6.5, 7.5},
	},
}
