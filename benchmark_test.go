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

package contour_test

import (
	"fmt"
	"math"
	"runtime"
	"testing"

	"seehuhn.de/go/contour"
)

func BenchmarkExtract(b *testing.B) {
	for _, n := range []int{64, 256, 1024} {
		vals := make([]float64, n*n)
		for j := range n {
			for i := range n {
				x, y := float64(i)/8, float64(j)/8
				vals[j*n+i] = math.Sin(x) * math.Cos(y)
			}
		}
		g, err := contour.NewGrid(n, n, vals)
		if err != nil {
			b.Fatal(err)
		}

		for _, workers := range []int{1, runtime.GOMAXPROCS(0)} {
			b.Run(fmt.Sprintf("%dx%d/workers=%d", n, n, workers), func(b *testing.B) {
				b.ReportAllocs()
				for b.Loop() {
					_, err := contour.Extract(g, 0.1, contour.WithWorkers(workers))
					if err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
