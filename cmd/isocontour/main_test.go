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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/contour"
	"seehuhn.de/go/contour/vtkxml"
)

// writeBump writes a 30×20 grid with a single maximum of 100.
func writeBump(t *testing.T, dir string) string {
	t.Helper()
	const w, h = 30, 20
	vals := make([]float64, w*h)
	for j := range h {
		for i := range w {
			dx, dy := float64(i-15), float64(j-10)
			vals[j*w+i] = 100 - dx*dx - dy*dy
		}
	}
	g, err := contour.NewGrid(w, h, vals)
	require.NoError(t, err)

	name := filepath.Join(dir, "bump.vti")
	require.NoError(t, vtkxml.WriteImageDataFile(name, g, "Pressure"))
	return name
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := writeBump(t, dir)
	output := filepath.Join(dir, "out", "contour.vtp")

	var stdout, stderr bytes.Buffer
	err := run([]string{"-input", input, "-isovalue", "50", "-output", output}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "Isocontour successfully written to "+output+"!\n", stdout.String())
	assert.Contains(t, stderr.String(), "contours written")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `Name="Isovalue"`)
}

func TestRunLevels(t *testing.T) {
	dir := t.TempDir()
	input := writeBump(t, dir)
	output := filepath.Join(dir, "levels.vtp")
	png := filepath.Join(dir, "levels.png")
	svg := filepath.Join(dir, "plots", "levels.svg")

	var stdout, stderr bytes.Buffer
	err := run([]string{
		"-input", input,
		"-levels", "4",
		"-output", output,
		"-scalar-name", "Pressure",
		"-preview", png,
		"-chart", svg,
		"-workers", "0",
		"-v",
	}, &stdout, &stderr)
	require.NoError(t, err)

	for _, name := range []string{output, png, svg} {
		info, err := os.Stat(name)
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
	assert.Contains(t, stderr.String(), "level=DEBUG")
}

func TestRunPDFPreview(t *testing.T) {
	dir := t.TempDir()
	input := writeBump(t, dir)
	pdfFile := filepath.Join(dir, "preview.pdf")

	err := run([]string{
		"-input", input,
		"-isovalue", "20",
		"-output", filepath.Join(dir, "c.vtp"),
		"-preview", pdfFile,
	}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	info, err := os.Stat(pdfFile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeBump(t, dir)
	output := filepath.Join(dir, "out.vtp")

	cases := []struct {
		name string
		args []string
		want error
	}{
		{"no_input", []string{"-isovalue", "1", "-output", output}, errUsage},
		{"no_output", []string{"-input", input, "-isovalue", "1"}, errUsage},
		{"wrong_extension", []string{"-input", input, "-isovalue", "1", "-output", "out.vtk"}, errUsage},
		{"no_isovalue", []string{"-input", input, "-output", output}, errUsage},
		{"both", []string{"-input", input, "-isovalue", "1", "-levels", "3", "-output", output}, errUsage},
		{"zero_levels", []string{"-input", input, "-levels", "0", "-output", output}, errUsage},
		{"below_min", []string{"-input", input, "-isovalue", "-1438", "-min", "-1438", "-max", "630", "-output", output}, errOutOfRange},
		{"above_max", []string{"-input", input, "-isovalue", "700", "-max", "630", "-output", output}, errOutOfRange},
		{"levels_outside", []string{"-input", input, "-levels", "3", "-max", "10", "-output", output}, errOutOfRange},
		{"bad_preview", []string{"-input", input, "-isovalue", "1", "-output", output, "-preview", filepath.Join(dir, "x.jpg")}, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := run(c.args, &bytes.Buffer{}, &bytes.Buffer{})
			require.Error(t, err)
			if c.want != nil {
				require.ErrorIs(t, err, c.want)
			}
		})
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := run([]string{
		"-input", filepath.Join(dir, "missing.vti"),
		"-isovalue", "1",
		"-output", filepath.Join(dir, "out.vtp"),
	}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "missing.vti"))
}
