package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"scworld/chunks"
)

// writeCSVHeader writes a header row with every column quoted. The data
// rows are all numeric and stay unquoted, so the header is the one row
// encoding/csv cannot produce: it never force-quotes plain strings.
func writeCSVHeader(w io.Writer, columns []string) error {
	quoted := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = `"` + column + `"`
	}
	_, err := fmt.Fprintln(w, strings.Join(quoted, ","))
	return err
}

// writeBlocksCSV drains a block stream into CSV rows.
func writeBlocksCSV(w io.Writer, source chunks.BlockSource) error {
	if err := writeCSVHeader(w, []string{"x", "y", "z", "type", "light", "state"}); err != nil {
		return err
	}
	out := csv.NewWriter(w)
	for {
		block, err := source.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		row := []string{
			strconv.Itoa(block.X),
			strconv.Itoa(block.Y),
			strconv.Itoa(block.Z),
			strconv.Itoa(block.Type),
			strconv.Itoa(block.Light),
			strconv.Itoa(block.State),
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

// writeSurfaceCSV drains a surface stream into CSV rows.
func writeSurfaceCSV(w io.Writer, surface *chunks.SurfaceStream) error {
	if err := writeCSVHeader(w, []string{"x", "y", "elevation", "temperature", "humidity"}); err != nil {
		return err
	}
	out := csv.NewWriter(w)
	for {
		point, err := surface.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		row := []string{
			strconv.Itoa(point.X),
			strconv.Itoa(point.Y),
			strconv.Itoa(point.Elevation),
			strconv.Itoa(point.Temperature),
			strconv.Itoa(point.Humidity),
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}
