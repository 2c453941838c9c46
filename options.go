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

import "runtime"

// Option configures a call to [Extract] or [ExtractLevels].
//
// Example:
//
//	// scan the grid using all available CPUs
//	res, err := contour.Extract(g, 0.5, contour.WithWorkers(0))
type Option func(*options)

// options holds the settings collected from the Option values.
type options struct {
	workers     int
	minBandRows int
}

// defaultMinBandRows is the smallest number of cell rows given to a
// single worker.
const defaultMinBandRows = 16

func newOptions(opts []Option) options {
	o := options{
		workers:     1,
		minBandRows: defaultMinBandRows,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithWorkers sets the number of goroutines used to scan the grid.
// A value of 1 (the default) scans the grid on the calling goroutine.
// Values less than 1 select runtime.GOMAXPROCS(0) workers.
//
// The result does not depend on the number of workers.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// WithMinRowsPerBand sets the smallest number of cell rows handed to one
// worker.  Grids with fewer than two bands worth of rows are scanned
// serially.  Values less than 1 are treated as 1.
func WithMinRowsPerBand(k int) Option {
	return func(o *options) {
		o.minBandRows = max(k, 1)
	}
}
