package main

import (
	"bytes"
	"encoding/binary"
	"testing"

	"scworld/chunks"
)

// classicFixture builds a single-chunk classic-format file at grid (0, 0)
// with one non-zero block at (5, 5, 10) and a surface point of elevation
// 50, temperature 3 and humidity 7 at column (5, 5).
func classicFixture(t *testing.T) *bytes.Reader {
	t.Helper()
	return bytes.NewReader(classicFixtureBytes())
}

func classicFixtureBytes() []byte {
	format := chunks.FormatClassic

	directory := make([]byte, format.DirectorySize())
	binary.LittleEndian.PutUint32(directory[8:], uint32(format.DirectorySize()))

	var buf bytes.Buffer
	buf.Write(directory)
	binary.Write(&buf, binary.LittleEndian, format.Magic)
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // chunk x
	binary.Write(&buf, binary.LittleEndian, uint32(0)) // chunk y

	blocks := make([]byte, format.BlocksSize())
	i := 5*chunks.ChunkHeight*chunks.ChunkDepth + 5*chunks.ChunkDepth + 10
	blocks[2*i] = 9      // type
	blocks[2*i+1] = 0x53 // light 3, state 5
	buf.Write(blocks)

	surface := make([]byte, format.SurfaceSize())
	point := 5*chunks.ChunkWidth + 5
	surface[4*point] = 50         // elevation
	surface[4*point+1] = 3 | 7<<4 // temperature 3, humidity 7
	buf.Write(surface)

	return buf.Bytes()
}
