// Package chunks decodes Survivalcraft's Chunks.dat and Chunks32.dat world
// save files into block and terrain surface records.
//
// A world is three-dimensional: the x and y axes form the horizontal plane
// and z points up. The chunk constants are named as if the world is seen
// from directly above, so ChunkWidth runs along x, ChunkHeight along y
// (height here is not the up/down direction in the game) and ChunkDepth
// along z.
package chunks

// Size of a chunk in blocks. Identical in every supported file format.
const (
	ChunkWidth  = 16
	ChunkHeight = 16
	ChunkDepth  = 128
)

// Block is one decoded block at its absolute world position.
type Block struct {
	X, Y, Z int
	Type    int
	Light   int
	State   int
}

// SurfacePoint describes the terrain at one (x, y) column: its elevation
// plus the climate values the game derives weather from.
type SurfacePoint struct {
	X, Y        int
	Elevation   int
	Temperature int
	Humidity    int
}

// blockPosition resolves the world position of the block at linear index i
// inside the chunk at grid position (cx, cy). Blocks are stored with z
// varying fastest, then y, then x; nothing in the file cross-checks this, so
// the formula must exactly invert the game's write order.
func blockPosition(i, cx, cy int) (x, y, z int) {
	x = i/(ChunkHeight*ChunkDepth) + cx*ChunkWidth
	y = (i/ChunkDepth)%ChunkWidth + cy*ChunkHeight
	z = i % ChunkDepth
	return
}

// surfacePosition resolves the world position of the surface point at
// linear index i inside the chunk at grid position (cx, cy).
func surfacePosition(i, cx, cy int) (x, y int) {
	x = i/ChunkWidth + cx*ChunkWidth
	y = i%ChunkWidth + cy*ChunkHeight
	return
}
