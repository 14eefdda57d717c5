package chunks

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/willf/bitset"
)

// ErrTruncated reports a file shorter than a section it must contain.
var ErrTruncated = errors.New("chunks: file truncated")

// Directory is the decoded chunk directory: the byte offset of every stored
// chunk in raw table-slot order, plus the set of populated slots.
type Directory struct {
	Offsets []int64
	slots   *bitset.BitSet
}

// Populated reports how many grid slots hold a chunk.
func (d *Directory) Populated() uint {
	return d.slots.Count()
}

// Slots returns a copy of the populated-slot set, indexed by table slot.
func (d *Directory) Slots() *bitset.BitSet {
	return d.slots.Clone()
}

// ReadDirectory parses the chunk directory at the start of source.
//
// The whole table is read in a single pass before anything else, since every
// later seek depends on decoded entries. Sentinel entries produce nothing;
// the remaining offsets keep their raw table-slot order, which is not sorted
// by coordinate. On return the source is positioned just past the directory.
func ReadDirectory(source io.ReadSeeker, format *Format) (*Directory, error) {
	if _, err := source.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	raw := make([]byte, format.DirectorySize())
	if _, err := io.ReadFull(source, raw); err != nil {
		return nil, fmt.Errorf("%w: directory needs %d bytes: %v",
			ErrTruncated, len(raw), err)
	}

	directory := &Directory{slots: bitset.New(directoryEntries)}
	for slot := 0; slot < directoryEntries; slot++ {
		// Only the trailing int32 of each 12-byte entry carries the
		// offset or index; the game ignores the leading bytes too.
		entry := int32(binary.LittleEndian.Uint32(raw[slot*direntrySize+8:]))
		if entry == format.sentinel {
			continue
		}
		directory.slots.Set(uint(slot))
		directory.Offsets = append(directory.Offsets, format.OffsetFromIndex(entry))
	}
	return directory, nil
}
