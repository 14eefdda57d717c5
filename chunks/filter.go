package chunks

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoSurfacePoint reports a block column that has no surface point to be
// relative to. Well-formed files store a full surface strip with every
// chunk, so this only occurs on inconsistent input.
var ErrNoSurfacePoint = errors.New("chunks: no surface point for column")

// Plane restricts a block stream to a single z level, either absolute or
// relative to the terrain elevation of each block's column.
type Plane struct {
	Z        int
	Relative bool
}

// ParsePlane interprets a plane argument: a bare integer selects an
// absolute z level, while a "+" or "-" prefix selects an offset from the
// terrain surface.
func ParsePlane(s string) (Plane, error) {
	z, err := strconv.Atoi(s)
	if err != nil {
		return Plane{}, fmt.Errorf("chunks: bad plane %q: %v", s, err)
	}
	relative := strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-")
	return Plane{Z: z, Relative: relative}, nil
}

// Column identifies one vertical block column by its world x and y.
type Column struct {
	X, Y int
}

// ElevationMap materializes the terrain elevation of every column in the
// file. A relative plane filter needs the complete map before the first
// block can be judged, because blocks stream in chunk order while their
// columns' surface points may come later in the file. The map holds at most
// 65536 columns.
func ElevationMap(r *Reader) (map[Column]int, error) {
	elevations := make(map[Column]int)
	surface := r.Surface()
	for {
		point, err := surface.Next()
		if err == io.EOF {
			return elevations, nil
		}
		if err != nil {
			return nil, err
		}
		elevations[Column{point.X, point.Y}] = point.Elevation
	}
}

// FilteredBlocks wraps a block stream so that only blocks on one plane come
// out. For a relative plane, elevations must hold the terrain elevation of
// every column (see ElevationMap); for an absolute plane it is ignored.
type FilteredBlocks struct {
	blocks     BlockSource
	plane      Plane
	elevations map[Column]int
}

// NewFilteredBlocks builds a plane filter over a block stream.
func NewFilteredBlocks(blocks BlockSource, plane Plane, elevations map[Column]int) *FilteredBlocks {
	return &FilteredBlocks{blocks: blocks, plane: plane, elevations: elevations}
}

// Next returns the next block on the filter's plane, skipping everything
// else in a single pass over the underlying stream.
func (s *FilteredBlocks) Next() (Block, error) {
	for {
		block, err := s.blocks.Next()
		if err != nil {
			return Block{}, err
		}
		want := s.plane.Z
		if s.plane.Relative {
			elevation, ok := s.elevations[Column{block.X, block.Y}]
			if !ok {
				return Block{}, fmt.Errorf("%w: (%d, %d)",
					ErrNoSurfacePoint, block.X, block.Y)
			}
			want = elevation + s.plane.Z
		}
		if block.Z == want {
			return block, nil
		}
	}
}
