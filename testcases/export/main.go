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

// Command export writes the test grids as VTK ImageData files, together
// with a JSON index listing the isovalues of each grid, for comparison
// with other tools such as ParaView.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/contour"
	"seehuhn.de/go/contour/testcases"
	"seehuhn.de/go/contour/vtkxml"
)

func main() {
	var out struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			file := filepath.Join("testdata", "grids", name+".vti")

			step := tc.Step()
			g := &contour.Grid{
				Width:   tc.Width,
				Height:  tc.Height,
				Origin:  tc.Origin,
				Spacing: step,
				Values:  tc.Values(),
			}
			if err := vtkxml.WriteImageDataFile(file, g, "Scalars"); err != nil {
				panic(err)
			}

			out.TestCases = append(out.TestCases, jsonTestCase{
				Name:      name,
				File:      filepath.ToSlash(file),
				Width:     tc.Width,
				Height:    tc.Height,
				Origin:    []float64{tc.Origin.X, tc.Origin.Y},
				Spacing:   []float64{step.X, step.Y},
				Isovalues: tc.Isovalues,
			})
		}
	}

	f, err := os.Create("testdata/testcases.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name      string    `json:"name"`
	File      string    `json:"file"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Origin    []float64 `json:"origin"`
	Spacing   []float64 `json:"spacing"`
	Isovalues []float64 `json:"isovalues"`
}
