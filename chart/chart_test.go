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

package chart

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"seehuhn.de/go/contour"
	"seehuhn.de/go/contour/testcases"
	"seehuhn.de/go/geom/vec"
)

func bumpContours(t *testing.T) []*contour.Result {
	t.Helper()
	var tc testcases.TestCase
	for _, c := range testcases.All["smooth"] {
		if c.Name == "bump" {
			tc = c
		}
	}
	g := &contour.Grid{
		Width:   tc.Width,
		Height:  tc.Height,
		Origin:  tc.Origin,
		Spacing: tc.Step(),
		Values:  tc.Values(),
	}
	results, err := contour.ExtractLevels(g, tc.Isovalues)
	require.NoError(t, err)
	return results
}

func TestSegmentsDataRange(t *testing.T) {
	s := &Segments{Segments: []contour.Segment{
		{A: vec.Vec2{X: 1, Y: -2}, B: vec.Vec2{X: 3, Y: 0.5}},
		{A: vec.Vec2{X: -0.5, Y: 4}, B: vec.Vec2{X: 2, Y: 1}},
	}}
	xmin, xmax, ymin, ymax := s.DataRange()
	assert.Equal(t, -0.5, xmin)
	assert.Equal(t, 3.0, xmax)
	assert.Equal(t, -2.0, ymin)
	assert.Equal(t, 4.0, ymax)
}

func TestSegmentsDataRangeEmpty(t *testing.T) {
	xmin, xmax, _, _ := (&Segments{}).DataRange()
	assert.True(t, math.IsInf(xmin, 1))
	assert.True(t, math.IsInf(xmax, -1))
}

func TestNew(t *testing.T) {
	results := bumpContours(t)

	p, err := New(results, &Options{Title: "bump", XLabel: "east"})
	require.NoError(t, err)
	assert.Equal(t, "bump", p.Title.Text)
	assert.Equal(t, "east", p.X.Label.Text)
	assert.Equal(t, "y", p.Y.Label.Text)

	// the axes cover exactly the union of the contour bounds
	first, ok := results[0].Bounds()
	require.True(t, ok)
	for _, res := range results[1:] {
		b, ok := res.Bounds()
		require.True(t, ok)
		first.LLx = min(first.LLx, b.LLx)
		first.LLy = min(first.LLy, b.LLy)
		first.URx = max(first.URx, b.URx)
		first.URy = max(first.URy, b.URy)
	}
	assert.Equal(t, first.LLx, p.X.Min)
	assert.Equal(t, first.URx, p.X.Max)
	assert.Equal(t, first.LLy, p.Y.Min)
	assert.Equal(t, first.URy, p.Y.Max)
}

func TestNewNaN(t *testing.T) {
	results := []*contour.Result{{Isovalue: 0}, {Isovalue: math.NaN()}}
	_, err := New(results, nil)
	assert.ErrorIs(t, err, ErrNaN)
}

func TestSave(t *testing.T) {
	p, err := New(bumpContours(t), nil)
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"chart.png", "sub/chart.svg", "chart.pdf"} {
		t.Run(name, func(t *testing.T) {
			fname := filepath.Join(dir, name)
			require.NoError(t, Save(p, fname, 10*vg.Centimeter, 10*vg.Centimeter))

			info, err := os.Stat(fname)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}
