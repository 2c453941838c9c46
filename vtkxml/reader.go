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

// Package vtkxml reads and writes the VTK XML file formats used for
// contour extraction: ImageData (.vti) files as input grids and PolyData
// (.vtp) files for the extracted contours.
package vtkxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"seehuhn.de/go/contour"
	"seehuhn.de/go/geom/vec"
)

type vtkFile struct {
	XMLName      xml.Name   `xml:"VTKFile"`
	Type         string     `xml:"type,attr"`
	ByteOrder    string     `xml:"byte_order,attr"`
	HeaderType   string     `xml:"header_type,attr"`
	Compressor   string     `xml:"compressor,attr"`
	ImageData    *imageData `xml:"ImageData"`
	AppendedData *struct {
		Encoding string `xml:"encoding,attr"`
	} `xml:"AppendedData"`
}

type imageData struct {
	WholeExtent string  `xml:"WholeExtent,attr"`
	Origin      string  `xml:"Origin,attr"`
	Spacing     string  `xml:"Spacing,attr"`
	Direction   string  `xml:"Direction,attr"`
	Pieces      []piece `xml:"Piece"`
}

type piece struct {
	Extent    string       `xml:"Extent,attr"`
	PointData attributeSet `xml:"PointData"`
}

type attributeSet struct {
	Scalars string      `xml:"Scalars,attr"`
	Arrays  []dataArray `xml:"DataArray"`
}

type dataArray struct {
	Type               string `xml:"type,attr"`
	Name               string `xml:"Name,attr"`
	NumberOfComponents int    `xml:"NumberOfComponents,attr"`
	Format             string `xml:"format,attr"`
	Offset             int    `xml:"offset,attr"`
	Text               string `xml:",chardata"`
}

// ReadImageData reads a VTK XML ImageData file and returns the scalar
// field as a grid.
//
// The active scalars of the point data are used, or the first point data
// array if no scalars are marked active.  For arrays with more than one
// component, the first component is used.  The z components of origin and
// spacing are ignored.
func ReadImageData(r io.Reader) (*contour.Grid, error) {
	doc, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc, appended, err := splitAppended(doc)
	if err != nil {
		return nil, err
	}

	var f vtkFile
	if err := xml.Unmarshal(doc, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if f.Type != "ImageData" || f.ImageData == nil {
		return nil, fmt.Errorf("%w: file type %q", ErrUnsupported, f.Type)
	}
	img := f.ImageData

	ext, err := parseInts(img.WholeExtent, 6)
	if err != nil {
		return nil, fmt.Errorf("%w: WholeExtent: %w", ErrMalformed, err)
	}
	width, okX := extentSize(ext[0], ext[1])
	height, okY := extentSize(ext[2], ext[3])
	depth, okZ := extentSize(ext[4], ext[5])
	if !okX || !okY || !okZ {
		return nil, fmt.Errorf("%w: WholeExtent %q", ErrMalformed, img.WholeExtent)
	}
	if depth != 1 {
		return nil, fmt.Errorf("%w: %d×%d×%d samples", ErrNotTwoDimensional, width, height, depth)
	}
	if width > math.MaxInt/height {
		return nil, fmt.Errorf("%w: %d×%d samples", ErrMalformed, width, height)
	}

	origin := []float64{0, 0, 0}
	if img.Origin != "" {
		if origin, err = parseFloats(img.Origin, 3); err != nil {
			return nil, fmt.Errorf("%w: Origin: %w", ErrMalformed, err)
		}
	}
	spacing := []float64{1, 1, 1}
	if img.Spacing != "" {
		if spacing, err = parseFloats(img.Spacing, 3); err != nil {
			return nil, fmt.Errorf("%w: Spacing: %w", ErrMalformed, err)
		}
	}
	if d := strings.Fields(img.Direction); len(d) > 0 && strings.Join(d, " ") != "1 0 0 0 1 0 0 0 1" {
		return nil, fmt.Errorf("%w: Direction %q", ErrUnsupported, img.Direction)
	}

	if len(img.Pieces) != 1 {
		return nil, fmt.Errorf("%w: %d pieces", ErrUnsupported, len(img.Pieces))
	}
	p := img.Pieces[0]
	if p.Extent != "" {
		pe, err := parseInts(p.Extent, 6)
		if err != nil {
			return nil, fmt.Errorf("%w: Extent: %w", ErrMalformed, err)
		}
		if [6]int(pe) != [6]int(ext) {
			return nil, fmt.Errorf("%w: piece extent differs from whole extent", ErrUnsupported)
		}
	}

	arr, err := p.PointData.scalars()
	if err != nil {
		return nil, err
	}

	dec, err := newDecoder(&f, appended)
	if err != nil {
		return nil, err
	}
	values, err := dec.values(arr, width*height)
	if err != nil {
		return nil, fmt.Errorf("array %q: %w", arr.Name, err)
	}

	g := &contour.Grid{
		Width:  width,
		Height: height,
		Origin: vec.Vec2{
			X: origin[0] + float64(ext[0])*spacing[0],
			Y: origin[1] + float64(ext[2])*spacing[1],
		},
		Spacing: vec.Vec2{X: spacing[0], Y: spacing[1]},
		Values:  values,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	contour.Logger().Debug("vtk image data read",
		"width", width,
		"height", height,
		"array", arr.Name,
		"type", arr.Type,
		"format", arr.Format,
		"compressor", f.Compressor)
	return g, nil
}

// ReadImageDataFile reads a VTK XML ImageData file from disk.
func ReadImageDataFile(name string) (g *contour.Grid, err error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	g, err = ReadImageData(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return g, nil
}

// scalars selects the array to contour.
func (s *attributeSet) scalars() (*dataArray, error) {
	if len(s.Arrays) == 0 {
		return nil, fmt.Errorf("%w: no point data arrays", ErrMalformed)
	}
	if s.Scalars != "" {
		for i := range s.Arrays {
			if s.Arrays[i].Name == s.Scalars {
				return &s.Arrays[i], nil
			}
		}
		return nil, fmt.Errorf("%w: scalars %q not found", ErrMalformed, s.Scalars)
	}
	return &s.Arrays[0], nil
}

// splitAppended removes the contents of the AppendedData element from doc,
// since raw binary data cannot be parsed as XML.  The returned data starts
// after the leading underscore.
func splitAppended(doc []byte) (xmlPart, appended []byte, err error) {
	start := bytes.Index(doc, []byte("<AppendedData"))
	if start < 0 {
		return doc, nil, nil
	}
	tagEnd := bytes.IndexByte(doc[start:], '>')
	if tagEnd < 0 {
		return nil, nil, fmt.Errorf("%w: unterminated AppendedData tag", ErrMalformed)
	}
	tagEnd += start + 1
	closing := bytes.LastIndex(doc, []byte("</AppendedData>"))
	if closing < tagEnd {
		return nil, nil, fmt.Errorf("%w: unterminated AppendedData", ErrMalformed)
	}

	body := doc[tagEnd:closing]
	mark := bytes.IndexByte(body, '_')
	if mark < 0 || len(bytes.TrimSpace(body[:mark])) != 0 {
		return nil, nil, fmt.Errorf("%w: AppendedData does not start with '_'", ErrMalformed)
	}
	appended = body[mark+1:]

	xmlPart = make([]byte, 0, tagEnd+len(doc)-closing)
	xmlPart = append(xmlPart, doc[:tagEnd]...)
	xmlPart = append(xmlPart, doc[closing:]...)
	return xmlPart, appended, nil
}

// extentSize returns the number of samples hi-lo+1 of an extent range.
// The result is false for empty ranges and for ranges too large for an int.
func extentSize(lo, hi int) (int, bool) {
	if hi < lo {
		return 0, false
	}
	n := hi - lo
	if n < 0 || n == math.MaxInt {
		return 0, false
	}
	return n + 1, true
}

func parseInts(s string, n int) ([]int, error) {
	fields := strings.Fields(s)
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	res := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	res := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		res[i] = v
	}
	return res, nil
}
