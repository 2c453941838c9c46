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

// Package contour extracts isocontours from regularly sampled 2D scalar
// fields, using a simplified marching squares algorithm.
//
// Every grid cell is processed independently. The four cell edges are
// visited counterclockwise starting with the bottom edge, and an edge is
// crossed when the isovalue separates its two end values (a value equal to
// the isovalue counts as below). The crossing point is found by linear
// interpolation along the edge. A cell with exactly two crossings
// contributes one line segment; all other cells contribute nothing. In
// particular, ambiguous saddle cells with four crossings are dropped; the
// number of such cells is reported in [Result.Ambiguous].
//
// The result is an ordered collection of independent segments. Segments
// are not joined into polylines and shared end points are not merged.
package contour

//go:generate go run ./testcases/export
