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
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

func TestResultAccessors(t *testing.T) {
	g := rippleGrid(40, 30)
	res, err := Extract(g, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	n := res.Len()
	if n == 0 {
		t.Fatal("no segments")
	}

	pts := res.Points()
	lines := res.Lines()
	scalars := res.PointScalars()
	if len(pts) != 2*n || len(lines) != n || len(scalars) != 2*n {
		t.Fatalf("got %d points, %d lines, %d scalars for %d segments",
			len(pts), len(lines), len(scalars), n)
	}
	for k, seg := range res.Segments {
		l := lines[k]
		if pts[l[0]] != seg.A || pts[l[1]] != seg.B {
			t.Errorf("segment %d: line %v does not match %v", k, l, seg)
		}
	}
	for i, v := range scalars {
		if v != 0.2 {
			t.Errorf("scalar %d: got %g, want 0.2", i, v)
		}
	}

	var cmds []path.Command
	var coords []vec.Vec2
	for cmd, pp := range res.Path() {
		cmds = append(cmds, cmd)
		coords = append(coords, pp...)
	}
	if len(cmds) != 2*n {
		t.Fatalf("path has %d commands, want %d", len(cmds), 2*n)
	}
	for i, cmd := range cmds {
		want := path.CmdMoveTo
		if i%2 == 1 {
			want = path.CmdLineTo
		}
		if cmd != want {
			t.Fatalf("command %d: got %v, want %v", i, cmd, want)
		}
	}
	if d := cmp.Diff(pts, coords); d != "" {
		t.Errorf("path coordinates (-points +path):\n%s", d)
	}
}

func TestResultBounds(t *testing.T) {
	var empty Result
	if _, ok := empty.Bounds(); ok {
		t.Error("empty result has bounds")
	}
	if empty.Len() != 0 || len(empty.Points()) != 0 {
		t.Error("empty result is not empty")
	}
	for range empty.Path() {
		t.Error("empty result has a non-empty path")
	}

	res := Result{Segments: []Segment{
		{A: vec.Vec2{X: 1, Y: 2}, B: vec.Vec2{X: -1, Y: 3}},
		{A: vec.Vec2{X: 0, Y: -5}, B: vec.Vec2{X: 4, Y: 0}},
	}}
	got, ok := res.Bounds()
	want := rect.Rect{LLx: -1, LLy: -5, URx: 4, URy: 3}
	if !ok || got != want {
		t.Errorf("Bounds() = %v, %t, want %v", got, ok, want)
	}
}
