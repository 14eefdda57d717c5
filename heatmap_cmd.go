package main

import (
	"encoding/csv"
	"fmt"
	"image/png"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"scworld/heatmap"
)

func heatmapCommand() *cli.Command {
	return &cli.Command{
		Name:  "heatmap",
		Usage: "render a PNG heatmap from CSV coordinate data",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "x-column",
				Aliases: []string{"x"},
				Usage:   "CSV column holding heatmap x coordinates (default \"x\")",
			},
			&cli.StringFlag{
				Name:    "y-column",
				Aliases: []string{"y"},
				Usage:   "CSV column holding heatmap y coordinates (default \"y\")",
			},
			&cli.StringFlag{
				Name:    "value-column",
				Aliases: []string{"c"},
				Usage:   "CSV column holding heatmap values (default \"value\")",
			},
			&cli.IntFlag{
				Name:    "min-value",
				Aliases: []string{"0"},
				Usage:   "smallest possible value, to calibrate the colouring; defaults to the smallest value found",
			},
			&cli.IntFlag{
				Name:    "max-value",
				Aliases: []string{"9"},
				Usage:   "largest possible value, to calibrate the colouring; defaults to the largest value found",
			},
			&cli.StringFlag{
				Name:    "data-file",
				Aliases: []string{"f"},
				Usage:   "CSV file to read; '-' or absent reads standard input",
			},
			&cli.StringFlag{
				Name:    "output-file",
				Aliases: []string{"o"},
				Usage:   "PNG file to write; defaults to standard output",
			},
			&cli.StringFlag{
				Name:    "color-map",
				Aliases: []string{"m"},
				Usage:   "YAML colour-map file converting values to colours; '-' reads standard input",
			},
		},
		Action: renderHeatmap,
	}
}

func renderHeatmap(c *cli.Context) error {
	var colorMapFile *heatmap.File
	if path := c.String("color-map"); path != "" {
		var err error
		if colorMapFile, err = loadColorMap(path); err != nil {
			return err
		}
	}
	options := heatmap.Options{}
	if colorMapFile != nil {
		options = colorMapFile.Options
	}

	// Flags win over colour-map options, which win over the defaults.
	fallback := func(flag, option, def string) string {
		if flag != "" {
			return flag
		}
		if option != "" {
			return option
		}
		return def
	}
	xColumn := fallback(c.String("x-column"), options.XColumn, "x")
	yColumn := fallback(c.String("y-column"), options.YColumn, "y")
	valueColumn := fallback(c.String("value-column"), options.ValueColumn, "value")

	minValue, maxValue := options.MinValue, options.MaxValue
	if c.IsSet("min-value") {
		v := c.Int("min-value")
		minValue = &v
	}
	if c.IsSet("max-value") {
		v := c.Int("max-value")
		maxValue = &v
	}

	points, err := readPoints(fallback(c.String("data-file"), options.DataFile, ""),
		xColumn, yColumn, valueColumn)
	if err != nil {
		return err
	}
	dataSet, err := heatmap.NewDataSet(points, minValue, maxValue)
	if err != nil {
		return err
	}

	var colors heatmap.ColorMap = heatmap.Greyscale{}
	if colorMapFile != nil {
		if colors, err = colorMapFile.ColorMap(); err != nil {
			return err
		}
	}

	out, closeOut, err := openOutput(fallback(c.String("output-file"), options.OutputFile, ""))
	if err != nil {
		return err
	}
	if err := png.Encode(out, heatmap.Render(dataSet, colors)); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func loadColorMap(path string) (*heatmap.File, error) {
	if path == "-" {
		return heatmap.ParseFile(os.Stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return heatmap.ParseFile(file)
}

// readPoints reads heatmap samples from the named CSV columns. Values are
// parsed as floats and rounded, so both plain integers and the quoted
// floats other tools emit are accepted.
func readPoints(path, xColumn, yColumn, valueColumn string) ([]heatmap.Point, error) {
	var in io.Reader = os.Stdin
	if path != "" && path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		in = file
	}

	reader := csv.NewReader(in)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %v", err)
	}
	columns := map[string]int{}
	for i, name := range header {
		columns[name] = i
	}
	var indices [3]int
	for i, name := range []string{xColumn, yColumn, valueColumn} {
		index, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("CSV data has no %q column", name)
		}
		indices[i] = index
	}

	var points []heatmap.Point
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return points, nil
		}
		if err != nil {
			return nil, err
		}
		var values [3]int
		for i, index := range indices {
			parsed, err := strconv.ParseFloat(row[index], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: %v", len(points)+2, err)
			}
			values[i] = int(math.Round(parsed))
		}
		points = append(points, heatmap.Point{X: values[0], Y: values[1], Value: values[2]})
	}
}
