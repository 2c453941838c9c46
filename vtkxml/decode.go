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
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zlib"
)

// decoder holds the file level settings needed to decode data arrays.
type decoder struct {
	order      binary.ByteOrder
	headerSize int  // 4 for UInt32 headers, 8 for UInt64
	compressed bool // data blocks use vtkZLibDataCompressor

	appended       []byte
	appendedBase64 bool
}

func newDecoder(f *vtkFile, appended []byte) (*decoder, error) {
	d := &decoder{appended: appended}

	switch f.ByteOrder {
	case "", "LittleEndian":
		d.order = binary.LittleEndian
	case "BigEndian":
		d.order = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: byte order %q", ErrUnsupported, f.ByteOrder)
	}

	switch f.HeaderType {
	case "", "UInt32":
		d.headerSize = 4
	case "UInt64":
		d.headerSize = 8
	default:
		return nil, fmt.Errorf("%w: header type %q", ErrUnsupported, f.HeaderType)
	}

	switch f.Compressor {
	case "":
	case "vtkZLibDataCompressor":
		d.compressed = true
	default:
		return nil, fmt.Errorf("%w: compressor %q", ErrUnsupported, f.Compressor)
	}

	if f.AppendedData != nil {
		switch f.AppendedData.Encoding {
		case "raw":
		case "base64":
			d.appendedBase64 = true
			d.appended = []byte(stripSpace(string(appended)))
		default:
			return nil, fmt.Errorf("%w: appended data encoding %q",
				ErrUnsupported, f.AppendedData.Encoding)
		}
	}
	return d, nil
}

// values decodes the first component of the first n tuples of arr.
func (d *decoder) values(arr *dataArray, n int) ([]float64, error) {
	nComp := max(arr.NumberOfComponents, 1)

	if arr.Format == "ascii" {
		fields := strings.Fields(arr.Text)
		if len(fields)%nComp != 0 || len(fields)/nComp != n {
			return nil, fmt.Errorf("%w: %d values for %d tuples", ErrMalformed, len(fields), n)
		}
		res := make([]float64, n)
		for i := range res {
			v, err := strconv.ParseFloat(fields[i*nComp], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
			}
			res[i] = v
		}
		return res, nil
	}

	size, conv, err := d.converter(arr.Type)
	if err != nil {
		return nil, err
	}

	var src source
	switch arr.Format {
	case "binary":
		src, err = d.inlineSource(stripSpace(arr.Text))
	case "appended":
		if d.appended == nil {
			return nil, fmt.Errorf("%w: no AppendedData element", ErrMalformed)
		}
		if arr.Offset < 0 || arr.Offset > len(d.appended) {
			return nil, fmt.Errorf("%w: offset %d out of range", ErrMalformed, arr.Offset)
		}
		if d.appendedBase64 {
			src = &base64Source{s: string(d.appended[arr.Offset:])}
		} else {
			src = &rawSource{b: d.appended[arr.Offset:]}
		}
	default:
		return nil, fmt.Errorf("%w: format %q", ErrUnsupported, arr.Format)
	}
	if err != nil {
		return nil, err
	}

	if nComp > math.MaxInt/size {
		return nil, fmt.Errorf("%w: %d components", ErrMalformed, nComp)
	}
	stride := nComp * size

	data, err := d.readBlock(src)
	if err != nil {
		return nil, err
	}
	if len(data)%stride != 0 || len(data)/stride != n {
		return nil, fmt.Errorf("%w: %d bytes for %d tuples of %s",
			ErrMalformed, len(data), n, arr.Type)
	}

	res := make([]float64, n)
	for i := range res {
		res[i] = conv(data[i*stride : i*stride+size])
	}
	return res, nil
}

// readBlock reads the header and the data of one array from src, and
// decompresses the data if needed.
func (d *decoder) readBlock(src source) ([]byte, error) {
	if !d.compressed {
		hdr, err := src.next(d.headerSize)
		if err != nil {
			return nil, err
		}
		nBytes, err := d.headerWord(hdr, 0)
		if err != nil {
			return nil, err
		}
		return src.next(nBytes)
	}

	// header: #blocks, block size, last block size, compressed sizes
	first, err := src.peek(d.headerSize)
	if err != nil {
		return nil, err
	}
	nBlocks, err := d.headerWord(first, 0)
	if err != nil {
		return nil, err
	}
	hdr, err := src.next((3 + nBlocks) * d.headerSize)
	if err != nil {
		return nil, err
	}
	blockSize, err := d.headerWord(hdr, 1)
	if err != nil {
		return nil, err
	}
	lastSize, err := d.headerWord(hdr, 2)
	if err != nil {
		return nil, err
	}
	if lastSize == 0 {
		lastSize = blockSize
	}

	sizes := make([]int, nBlocks)
	total := 0
	for k := range sizes {
		if sizes[k], err = d.headerWord(hdr, 3+k); err != nil {
			return nil, err
		}
		total += sizes[k]
	}
	packed, err := src.next(total)
	if err != nil {
		return nil, err
	}

	var out []byte
	pos := 0
	for k, size := range sizes {
		want := blockSize
		if k == nBlocks-1 {
			want = lastSize
		}
		zr, err := zlib.NewReader(bytes.NewReader(packed[pos : pos+size]))
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %w", ErrMalformed, k, err)
		}
		block, err := io.ReadAll(io.LimitReader(zr, int64(want)+1))
		zr.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %w", ErrMalformed, k, err)
		}
		if len(block) != want {
			return nil, fmt.Errorf("%w: block %d has %d bytes, want %d",
				ErrMalformed, k, len(block), want)
		}
		out = append(out, block...)
		pos += size
	}
	return out, nil
}

// headerWord returns the k-th integer of a block header.
func (d *decoder) headerWord(hdr []byte, k int) (int, error) {
	var v uint64
	if d.headerSize == 4 {
		v = uint64(d.order.Uint32(hdr[4*k:]))
	} else {
		v = d.order.Uint64(hdr[8*k:])
	}
	if v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: block size %d too large", ErrUnsupported, v)
	}
	return int(v), nil
}

// inlineSource prepares base64 encoded data from a DataArray element.
//
// VTK writes the block header and the data as two separately padded
// base64 streams.  Older files encode both as a single stream.  The two
// cases are distinguished by the padding at the end of the header.
func (d *decoder) inlineSource(s string) (source, error) {
	hdrLen := d.headerSize
	if d.compressed {
		first, err := (&base64Source{s: s}).peek(d.headerSize)
		if err != nil {
			return nil, err
		}
		nBlocks, err := d.headerWord(first, 0)
		if err != nil {
			return nil, err
		}
		hdrLen = (3 + nBlocks) * d.headerSize
	}

	chars := base64Len(hdrLen)
	if hdrLen%3 != 0 && len(s) >= chars && s[chars-1] == '=' {
		return &base64Source{s: s}, nil
	}

	all, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return &rawSource{b: all}, nil
}

// source delivers the bytes of a data block.
type source interface {
	// next returns the following n bytes.
	next(n int) ([]byte, error)

	// peek returns the following n bytes without consuming them.
	peek(n int) ([]byte, error)
}

type rawSource struct {
	b   []byte
	pos int
}

func (r *rawSource) peek(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.b) {
		return nil, fmt.Errorf("%w: unexpected end of data", ErrMalformed)
	}
	return r.b[r.pos : r.pos+n], nil
}

func (r *rawSource) next(n int) ([]byte, error) {
	b, err := r.peek(n)
	if err != nil {
		return nil, err
	}
	r.pos += n
	return b, nil
}

// base64Source decodes a sequence of separately padded base64 streams.
type base64Source struct {
	s   string
	pos int
}

func (b *base64Source) peek(n int) ([]byte, error) {
	chars := base64Len(n)
	if n < 0 || b.pos+chars > len(b.s) {
		return nil, fmt.Errorf("%w: unexpected end of base64 data", ErrMalformed)
	}
	buf, err := base64.StdEncoding.DecodeString(b.s[b.pos : b.pos+chars])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(buf) < n {
		return nil, fmt.Errorf("%w: short base64 block", ErrMalformed)
	}
	return buf[:n], nil
}

func (b *base64Source) next(n int) ([]byte, error) {
	buf, err := b.peek(n)
	if err != nil {
		return nil, err
	}
	b.pos += base64Len(n)
	return buf, nil
}

// base64Len returns the length of the padded base64 encoding of n bytes.
func base64Len(n int) int {
	return 4 * ((n + 2) / 3)
}

// converter returns the size of one value of the given VTK type and a
// function to convert it to float64.
func (d *decoder) converter(typ string) (int, func([]byte) float64, error) {
	o := d.order
	switch typ {
	case "Int8":
		return 1, func(b []byte) float64 { return float64(int8(b[0])) }, nil
	case "UInt8":
		return 1, func(b []byte) float64 { return float64(b[0]) }, nil
	case "Int16":
		return 2, func(b []byte) float64 { return float64(int16(o.Uint16(b))) }, nil
	case "UInt16":
		return 2, func(b []byte) float64 { return float64(o.Uint16(b)) }, nil
	case "Int32":
		return 4, func(b []byte) float64 { return float64(int32(o.Uint32(b))) }, nil
	case "UInt32":
		return 4, func(b []byte) float64 { return float64(o.Uint32(b)) }, nil
	case "Int64":
		return 8, func(b []byte) float64 { return float64(int64(o.Uint64(b))) }, nil
	case "UInt64":
		return 8, func(b []byte) float64 { return float64(o.Uint64(b)) }, nil
	case "Float32":
		return 4, func(b []byte) float64 { return float64(math.Float32frombits(o.Uint32(b))) }, nil
	case "Float64":
		return 8, func(b []byte) float64 { return math.Float64frombits(o.Uint64(b)) }, nil
	default:
		return 0, nil, fmt.Errorf("%w: data type %q", ErrUnsupported, typ)
	}
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
