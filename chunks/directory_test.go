package chunks

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDirectoryClassic(t *testing.T) {
	raw := makeDirectory(FormatClassic, map[int]int32{1: 1000, 3: 2000})

	directory, err := ReadDirectory(bytes.NewReader(raw), FormatClassic)
	require.NoError(t, err)

	// Sentinel slots produce nothing; the rest keep table-slot order.
	assert.Equal(t, []int64{1000, 2000}, directory.Offsets)
	assert.Equal(t, uint(2), directory.Populated())

	slots := directory.Slots()
	assert.True(t, slots.Test(1))
	assert.True(t, slots.Test(3))
	assert.False(t, slots.Test(0))
}

func TestReadDirectory32(t *testing.T) {
	raw := makeDirectory(Format32, map[int]int32{2: 0, 5: 2})

	directory, err := ReadDirectory(bytes.NewReader(raw), Format32)
	require.NoError(t, err)

	want := []int64{
		Format32.OffsetFromIndex(0),
		Format32.OffsetFromIndex(2),
	}
	assert.Equal(t, want, directory.Offsets)
	assert.Equal(t, int64(786444), directory.Offsets[0])
	assert.Equal(t, int64(786444+2*132112), directory.Offsets[1])
}

func TestReadDirectoryEmpty(t *testing.T) {
	directory, err := ReadDirectory(bytes.NewReader(makeDirectory(FormatClassic, nil)), FormatClassic)
	require.NoError(t, err)
	assert.Empty(t, directory.Offsets)
	assert.Equal(t, uint(0), directory.Populated())
}

func TestReadDirectoryTruncated(t *testing.T) {
	raw := makeDirectory(FormatClassic, nil)
	_, err := ReadDirectory(bytes.NewReader(raw[:len(raw)/2]), FormatClassic)
	assert.ErrorIs(t, err, ErrTruncated)
}
