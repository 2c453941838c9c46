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

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"seehuhn.de/go/contour"
)

// PolyDataOptions controls the output of [WritePolyData].
// A nil *PolyDataOptions is equivalent to the zero value.
type PolyDataOptions struct {
	// ScalarName, if non-empty, adds a point data array of this name,
	// holding the isovalue at every point.
	ScalarName string
}

// WritePolyData writes the segments of res as an ASCII VTK XML PolyData
// file.  Every segment becomes a line cell with two points of its own.
func WritePolyData(w io.Writer, res *contour.Result, opts *PolyDataOptions) error {
	return WritePolyDataLevels(w, []*contour.Result{res}, opts)
}

// WritePolyDataLevels writes the segments of several contours into a single
// PolyData file.  If a scalar array is written, every point carries the
// isovalue of its own contour.  Nil entries are skipped.
func WritePolyDataLevels(w io.Writer, results []*contour.Result, opts *PolyDataOptions) error {
	if opts == nil {
		opts = &PolyDataOptions{}
	}

	var xyz, scalars []float64
	var conn, offsets []int
	for _, res := range results {
		if res == nil {
			continue
		}
		base := len(xyz) / 3
		for _, p := range res.Points() {
			xyz = append(xyz, p.X, p.Y, 0)
		}
		for _, l := range res.Lines() {
			conn = append(conn, base+l[0], base+l[1])
			offsets = append(offsets, len(conn))
		}
		scalars = append(scalars, res.PointScalars()...)
	}

	out := &xmlWriter{w: bufio.NewWriter(w)}
	out.header("PolyData")
	out.printf("  <PolyData>\n")
	out.printf("    <Piece NumberOfPoints=\"%d\" NumberOfVerts=\"0\" NumberOfLines=\"%d\" NumberOfStrips=\"0\" NumberOfPolys=\"0\">\n",
		len(xyz)/3, len(offsets))

	if opts.ScalarName != "" {
		name := xmlAttr(opts.ScalarName)
		out.printf("      <PointData Scalars=\"%s\">\n", name)
		out.printf("        <DataArray type=\"Float32\" Name=\"%s\" format=\"ascii\">\n", name)
		out.floats32(scalars)
		out.printf("        </DataArray>\n")
		out.printf("      </PointData>\n")
	} else {
		out.printf("      <PointData>\n      </PointData>\n")
	}

	out.printf("      <Points>\n")
	out.printf("        <DataArray type=\"Float64\" Name=\"Points\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	out.floats64(xyz)
	out.printf("        </DataArray>\n")
	out.printf("      </Points>\n")

	out.printf("      <Lines>\n")
	out.printf("        <DataArray type=\"Int64\" Name=\"connectivity\" format=\"ascii\">\n")
	out.ints(conn)
	out.printf("        </DataArray>\n")
	out.printf("        <DataArray type=\"Int64\" Name=\"offsets\" format=\"ascii\">\n")
	out.ints(offsets)
	out.printf("        </DataArray>\n")
	out.printf("      </Lines>\n")

	out.printf("    </Piece>\n")
	out.printf("  </PolyData>\n")
	out.printf("</VTKFile>\n")
	return out.flush()
}

// WritePolyDataFile writes the contours to a PolyData file, creating the
// parent directory if needed.
func WritePolyDataFile(name string, results []*contour.Result, opts *PolyDataOptions) error {
	return writeFile(name, func(w io.Writer) error {
		return WritePolyDataLevels(w, results, opts)
	})
}

// WriteImageData writes the grid as an ASCII VTK XML ImageData file.
// The values are stored as a Float64 point data array with the given
// name, which is marked as the active scalars.
func WriteImageData(w io.Writer, g *contour.Grid, name string) error {
	if err := g.Validate(); err != nil {
		return err
	}
	name = xmlAttr(name)

	out := &xmlWriter{w: bufio.NewWriter(w)}
	out.header("ImageData")
	extent := fmt.Sprintf("0 %d 0 %d 0 0", g.Width-1, g.Height-1)
	out.printf("  <ImageData WholeExtent=\"%s\" Origin=\"%s %s 0\" Spacing=\"%s %s 1\">\n",
		extent,
		formatFloat(g.Origin.X), formatFloat(g.Origin.Y),
		formatFloat(g.Spacing.X), formatFloat(g.Spacing.Y))
	out.printf("    <Piece Extent=\"%s\">\n", extent)
	out.printf("      <PointData Scalars=\"%s\">\n", name)
	out.printf("        <DataArray type=\"Float64\" Name=\"%s\" format=\"ascii\">\n", name)
	out.floats64(g.Values)
	out.printf("        </DataArray>\n")
	out.printf("      </PointData>\n")
	out.printf("      <CellData>\n      </CellData>\n")
	out.printf("    </Piece>\n")
	out.printf("  </ImageData>\n")
	out.printf("</VTKFile>\n")
	return out.flush()
}

// WriteImageDataFile writes an ImageData file to disk, creating the parent
// directory if needed.
func WriteImageDataFile(fname string, g *contour.Grid, name string) error {
	return writeFile(fname, func(w io.Writer) error {
		return WriteImageData(w, g, name)
	})
}

func writeFile(name string, write func(io.Writer) error) (err error) {
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return write(f)
}

// xmlWriter keeps the first error of a sequence of writes.
type xmlWriter struct {
	w   *bufio.Writer
	buf []byte
	err error
}

func (x *xmlWriter) header(typ string) {
	x.printf("<?xml version=\"1.0\"?>\n")
	x.printf("<VTKFile type=\"%s\" version=\"1.0\" byte_order=\"LittleEndian\" header_type=\"UInt64\">\n", typ)
}

func (x *xmlWriter) printf(format string, args ...any) {
	if x.err != nil {
		return
	}
	_, x.err = fmt.Fprintf(x.w, format, args...)
}

// valuesPerLine is the number of array values written per line.
const valuesPerLine = 6

func (x *xmlWriter) floats64(vals []float64) {
	x.values(len(vals), func(b []byte, i int) []byte {
		return strconv.AppendFloat(b, vals[i], 'g', -1, 64)
	})
}

func (x *xmlWriter) floats32(vals []float64) {
	x.values(len(vals), func(b []byte, i int) []byte {
		return strconv.AppendFloat(b, float64(float32(vals[i])), 'g', -1, 32)
	})
}

func (x *xmlWriter) ints(vals []int) {
	x.values(len(vals), func(b []byte, i int) []byte {
		return strconv.AppendInt(b, int64(vals[i]), 10)
	})
}

func (x *xmlWriter) values(n int, appendVal func([]byte, int) []byte) {
	for start := 0; start < n && x.err == nil; start += valuesPerLine {
		x.buf = append(x.buf[:0], "          "...)
		for i := start; i < min(start+valuesPerLine, n); i++ {
			if i > start {
				x.buf = append(x.buf, ' ')
			}
			x.buf = appendVal(x.buf, i)
		}
		x.buf = append(x.buf, '\n')
		_, x.err = x.w.Write(x.buf)
	}
}

func (x *xmlWriter) flush() error {
	if x.err != nil {
		return x.err
	}
	return x.w.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// xmlAttr escapes s for use in a double quoted attribute value.
func xmlAttr(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}
