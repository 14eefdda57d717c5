// Package heatmap renders integer values associated with coordinates as
// PNG heatmaps, one pixel per coordinate.
package heatmap

import (
	"errors"
	"image"
)

// ErrNoData is returned when a data set would be empty.
var ErrNoData = errors.New("heatmap: no data points")

// Point is one heatmap sample. At most one point per (x, y) coordinate is
// rendered; later duplicates win.
type Point struct {
	X, Y  int
	Value int
}

// Bounds describes a data set's extent and value calibration.
type Bounds struct {
	X, Y          int // minimum corner
	Width, Height int // inclusive extents
	Min, Max      int
}

// Range returns the calibrated value range.
func (b Bounds) Range() int {
	return b.Max - b.Min
}

// DataSet holds heatmap samples together with their computed bounds.
type DataSet struct {
	Bounds Bounds
	Points []Point
}

// NewDataSet computes the bounds of points. minValue and maxValue calibrate
// the colour scale when non-nil; otherwise the observed extremes are used.
func NewDataSet(points []Point, minValue, maxValue *int) (*DataSet, error) {
	if len(points) == 0 {
		return nil, ErrNoData
	}

	bounds := Bounds{
		X: points[0].X, Y: points[0].Y,
		Min: points[0].Value, Max: points[0].Value,
	}
	maxX, maxY := points[0].X, points[0].Y
	for _, point := range points[1:] {
		bounds.X = min(bounds.X, point.X)
		bounds.Y = min(bounds.Y, point.Y)
		maxX = max(maxX, point.X)
		maxY = max(maxY, point.Y)
		bounds.Min = min(bounds.Min, point.Value)
		bounds.Max = max(bounds.Max, point.Value)
	}
	bounds.Width = maxX - bounds.X + 1
	bounds.Height = maxY - bounds.Y + 1
	if minValue != nil {
		bounds.Min = *minValue
	}
	if maxValue != nil {
		bounds.Max = *maxValue
	}
	return &DataSet{Bounds: bounds, Points: points}, nil
}

// Render draws the data set onto an RGBA image, one pixel per point,
// leaving coordinates without data fully transparent.
func Render(ds *DataSet, colors ColorMap) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ds.Bounds.Width, ds.Bounds.Height))
	for _, point := range ds.Points {
		img.SetRGBA(point.X-ds.Bounds.X, point.Y-ds.Bounds.Y,
			colors.Color(point.Value-ds.Bounds.Min, ds.Bounds.Range()))
	}
	return img
}
