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
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Levels returns n evenly spaced isovalues strictly between lo and hi.
// The values divide [lo, hi] into n+1 intervals of equal length.
// If n < 1, Levels returns nil.
func Levels(lo, hi float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	span := floats.Span(make([]float64, n+2), lo, hi)
	return span[1 : n+1]
}

// ExtractLevels extracts one contour per isovalue.  The results are
// returned in the order of the isovalues.
func ExtractLevels(g *Grid, isovalues []float64, opts ...Option) ([]*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	res := make([]*Result, len(isovalues))
	for k, iso := range isovalues {
		r, err := Extract(g, iso, opts...)
		if err != nil {
			return nil, fmt.Errorf("isovalue %g: %w", iso, err)
		}
		res[k] = r
	}
	return res, nil
}
