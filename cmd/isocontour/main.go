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

// Command isocontour extracts isocontours from a 2D VTK ImageData file and
// writes them as VTK PolyData.
//
// Usage:
//
//	isocontour -input grid.vti -isovalue 100 -output contour.vtp
//	isocontour -input grid.vti -levels 8 -output contours.vtp -preview contours.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"

	"seehuhn.de/go/contour"
	"seehuhn.de/go/contour/chart"
	"seehuhn.de/go/contour/preview"
	"seehuhn.de/go/contour/vtkxml"
)

var (
	errUsage      = errors.New("invalid arguments")
	errOutOfRange = errors.New("isovalue outside the allowed range")
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "isocontour:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("isocontour", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("input", "", "input VTK ImageData file (`.vti`)")
	isovalue := fs.Float64("isovalue", 0, "scalar value of the contour")
	output := fs.String("output", "", "output VTK PolyData file (`.vtp`)")
	levels := fs.Int("levels", 0, "extract `n` evenly spaced contours over the data range")
	lo := fs.Float64("min", 0, "isovalues must be larger than this")
	hi := fs.Float64("max", 0, "isovalues must be smaller than this")
	scalarName := fs.String("scalar-name", "Isovalue", "name of the per-point isovalue array (empty to omit)")
	previewFile := fs.String("preview", "", "also draw the contours into this image `file` (.png, .tif, .bmp, .pdf)")
	chartFile := fs.String("chart", "", "also plot the contours into this `file` (.png, .svg, .pdf, ...)")
	workers := fs.Int("workers", 1, "number of worker goroutines (0 uses all CPUs)")
	verbose := fs.Bool("v", false, "log debug messages")
	if err := fs.Parse(args); err != nil {
		return err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	contour.SetLogger(logger)
	defer contour.SetLogger(nil)

	switch {
	case *input == "":
		return fmt.Errorf("%w: -input is required", errUsage)
	case *output == "":
		return fmt.Errorf("%w: -output is required", errUsage)
	case !strings.EqualFold(filepath.Ext(*output), ".vtp"):
		return fmt.Errorf("%w: -output must be a .vtp file", errUsage)
	case set["isovalue"] == set["levels"]:
		return fmt.Errorf("%w: exactly one of -isovalue and -levels is required", errUsage)
	case set["levels"] && *levels < 1:
		return fmt.Errorf("%w: -levels must be positive", errUsage)
	case fs.NArg() > 0:
		return fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}

	inRange := func(v float64) error {
		if set["min"] && !(v > *lo) || set["max"] && !(v < *hi) {
			return fmt.Errorf("%w: %g", errOutOfRange, v)
		}
		return nil
	}
	if set["isovalue"] {
		if err := inRange(*isovalue); err != nil {
			return err
		}
	}

	g, err := vtkxml.ReadImageDataFile(*input)
	if err != nil {
		return err
	}
	logger.Debug("grid loaded", "file", *input, "width", g.Width, "height", g.Height)

	isos := []float64{*isovalue}
	if set["levels"] {
		dataLo, dataHi := g.Range()
		isos = contour.Levels(dataLo, dataHi, *levels)
		for _, v := range isos {
			if err := inRange(v); err != nil {
				return err
			}
		}
	}

	results, err := contour.ExtractLevels(g, isos, contour.WithWorkers(*workers))
	if err != nil {
		return err
	}
	segments, ambiguous := 0, 0
	for _, res := range results {
		segments += res.Len()
		ambiguous += res.Ambiguous
	}
	if ambiguous > 0 {
		logger.Warn("ambiguous cells skipped", "cells", ambiguous)
	}

	err = vtkxml.WritePolyDataFile(*output, results, &vtkxml.PolyDataOptions{ScalarName: *scalarName})
	if err != nil {
		return err
	}
	logger.Info("contours written", "file", *output, "levels", len(results), "segments", segments)

	if *previewFile != "" {
		if strings.EqualFold(filepath.Ext(*previewFile), ".pdf") {
			err = preview.WritePDF(*previewFile, results, nil)
		} else {
			err = preview.WriteFile(*previewFile, preview.Render(results, nil))
		}
		if err != nil {
			return err
		}
		logger.Info("preview written", "file", *previewFile)
	}

	if *chartFile != "" {
		p, err := chart.New(results, &chart.Options{Title: filepath.Base(*input)})
		if err != nil {
			return err
		}
		if err := chart.Save(p, *chartFile, 15*vg.Centimeter, 15*vg.Centimeter); err != nil {
			return err
		}
		logger.Info("chart written", "file", *chartFile)
	}

	fmt.Fprintf(stdout, "Isocontour successfully written to %s!\n", *output)
	return nil
}
