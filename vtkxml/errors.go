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

package vtkxml

import "errors"

var (
	// ErrNotTwoDimensional indicates image data with more than one
	// sample in z direction.
	ErrNotTwoDimensional = errors.New("vtkxml: image data is not two-dimensional")

	// ErrUnsupported indicates a valid VTK file which uses a feature this
	// package cannot read.
	ErrUnsupported = errors.New("vtkxml: unsupported VTK feature")

	// ErrMalformed indicates a file which is not valid VTK XML.
	ErrMalformed = errors.New("vtkxml: malformed VTK file")
)
