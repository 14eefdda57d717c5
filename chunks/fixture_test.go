package chunks

import (
	"bytes"
	"encoding/binary"
)

// Synthetic in-memory chunks files for the decoder tests.

type testChunk struct {
	cx, cy  int
	blocks  []byte
	surface []byte
}

func newTestChunk(format *Format, cx, cy int) *testChunk {
	return &testChunk{
		cx:      cx,
		cy:      cy,
		blocks:  make([]byte, format.BlocksSize()),
		surface: make([]byte, format.SurfaceSize()),
	}
}

// blockIndex is the linear index of local coordinates (x, y, z); z varies
// fastest, then y, then x.
func blockIndex(x, y, z int) int {
	return x*ChunkHeight*ChunkDepth + y*ChunkDepth + z
}

func (c *testChunk) setClassicBlock(x, y, z, typ int, packed byte) {
	i := blockIndex(x, y, z)
	c.blocks[2*i] = byte(typ)
	c.blocks[2*i+1] = packed
}

func (c *testChunk) set32Block(x, y, z int, word uint32) {
	binary.LittleEndian.PutUint32(c.blocks[4*blockIndex(x, y, z):], word)
}

func (c *testChunk) setSurface(x, y, elevation int, climate byte) {
	i := x*ChunkWidth + y
	c.surface[4*i] = byte(elevation)
	c.surface[4*i+1] = climate
}

// makeDirectory builds a directory image holding the given entry values,
// keyed by table slot, with every other slot set to the format's sentinel.
func makeDirectory(format *Format, entries map[int]int32) []byte {
	raw := make([]byte, format.DirectorySize())
	if format.sentinel != 0 {
		for slot := 0; slot < directoryEntries; slot++ {
			binary.LittleEndian.PutUint32(raw[slot*direntrySize+8:],
				uint32(format.sentinel))
		}
	}
	for slot, entry := range entries {
		binary.LittleEndian.PutUint32(raw[slot*direntrySize+8:], uint32(entry))
	}
	return raw
}

// buildFile assembles a complete chunks file with the given chunks stored
// back to back after the directory, referenced from consecutive slots.
func buildFile(format *Format, chunks ...*testChunk) []byte {
	entries := make(map[int]int32, len(chunks))
	for i := range chunks {
		if format == Format32 {
			entries[i] = int32(i)
		} else {
			entries[i] = int32(format.DirectorySize() + i*format.ChunkSize())
		}
	}

	var buf bytes.Buffer
	buf.Write(makeDirectory(format, entries))
	for _, chunk := range chunks {
		binary.Write(&buf, binary.LittleEndian, format.Magic)
		binary.Write(&buf, binary.LittleEndian, uint32(chunk.cx))
		binary.Write(&buf, binary.LittleEndian, uint32(chunk.cy))
		buf.Write(chunk.blocks)
		buf.Write(chunk.surface)
	}
	return buf.Bytes()
}

// singleChunkFile is the classic-format fixture most tests share: one chunk
// at grid (0, 0), all blocks zero except (5, 5, 10) of type 9, terrain
// elevation 200 everywhere except column (5, 5) at 50 with temperature 3
// and humidity 7.
func singleChunkFile() *bytes.Reader {
	chunk := newTestChunk(FormatClassic, 0, 0)
	chunk.setClassicBlock(5, 5, 10, 9, 0)
	for x := 0; x < ChunkWidth; x++ {
		for y := 0; y < ChunkHeight; y++ {
			chunk.setSurface(x, y, 200, 0)
		}
	}
	chunk.setSurface(5, 5, 50, 3|7<<4)
	return bytes.NewReader(buildFile(FormatClassic, chunk))
}
