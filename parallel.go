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

import "sync"

// band is a half-open range [j0, j1) of cell rows.
type band struct {
	j0, j1 int
}

// bands splits the given number of cell rows into contiguous bands, one
// per worker.  A result with fewer than two bands means that the grid
// should be scanned serially.
func (o options) bands(rows int) []band {
	if o.workers <= 1 || rows < 2*o.minBandRows {
		return nil
	}
	n := min(o.workers, rows/o.minBandRows)
	size := (rows + n - 1) / n

	res := make([]band, 0, n)
	for j0 := 0; j0 < rows; j0 += size {
		res = append(res, band{j0: j0, j1: min(j0+size, rows)})
	}
	return res
}

// scanBands scans each band on its own goroutine and stores the
// concatenated segments, in band order, in res.
//
// Each worker owns its output buffer, so no locking is required.  Since
// the bands are concatenated in row order, the segments appear in the same
// order as for a serial scan.
func scanBands(g *Grid, iso float64, bands []band, res *Result) {
	parts := make([][]Segment, len(bands))
	ambiguous := make([]int, len(bands))

	var wg sync.WaitGroup
	wg.Add(len(bands))
	for k, b := range bands {
		go func() {
			defer wg.Done()
			parts[k], ambiguous[k] = scanRows(g, iso, b.j0, b.j1, nil)
		}()
	}
	wg.Wait()

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	var segs []Segment
	if total > 0 {
		segs = make([]Segment, 0, total)
	}
	res.Ambiguous = 0
	for k, p := range parts {
		segs = append(segs, p...)
		res.Ambiguous += ambiguous[k]
	}
	res.Segments = segs
}
