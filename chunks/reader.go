package chunks

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrBadMagic reports a chunk header whose magic number does not match the
// active format. A single bad magic means the wrong format was selected for
// the whole file, so the entire read is aborted rather than one chunk
// skipped.
var ErrBadMagic = errors.New("chunks: header magic mismatch")

// Reader decodes a chunks file from a seekable source.
//
// The reader owns the source's position: at most one stream obtained from it
// may be consumed at a time, and it is not safe for concurrent access.
// Decoding the same file in parallel requires one Reader per file handle.
type Reader struct {
	source    io.ReadSeeker
	format    *Format
	directory *Directory
	Name      string
}

// NewReader creates a Reader for the given format and reads the chunk
// directory. Ownership of the source is transferred to the reader.
func NewReader(source io.ReadSeeker, format *Format) (*Reader, error) {
	directory, err := ReadDirectory(source, format)
	if err != nil {
		return nil, err
	}
	reader := &Reader{source: source, format: format, directory: directory}
	if file, ok := source.(*os.File); ok {
		reader.Name = file.Name()
	}
	return reader, nil
}

// Format returns the format the reader decodes.
func (r *Reader) Format() *Format {
	return r.format
}

// Directory returns the decoded chunk directory.
func (r *Reader) Directory() *Directory {
	return r.directory
}

// Close closes the underlying source if it is an io.Closer.
func (r *Reader) Close() error {
	if closer, ok := r.source.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// readHeader seeks to a chunk and validates its 16-byte header, returning
// the chunk's grid position.
func (r *Reader) readHeader(offset int64) (cx, cy int, err error) {
	if _, err = r.source.Seek(offset, io.SeekStart); err != nil {
		return 0, 0, err
	}
	raw := make([]byte, headerSize)
	if _, err = io.ReadFull(r.source, raw); err != nil {
		return 0, 0, fmt.Errorf("%w: chunk header at offset %d: %v",
			ErrTruncated, offset, err)
	}
	magic := binary.LittleEndian.Uint64(raw)
	if magic != r.format.Magic {
		return 0, 0, fmt.Errorf("%w: got 0x%X, want 0x%X (wrong format selected?)",
			ErrBadMagic, magic, r.format.Magic)
	}
	cx = int(binary.LittleEndian.Uint32(raw[8:]))
	cy = int(binary.LittleEndian.Uint32(raw[12:]))
	return cx, cy, nil
}

// readSection bulk-reads one chunk section at the current position. A
// section is at most 128 KiB, so decoding records out of a single in-memory
// buffer is cheap.
func (r *Reader) readSection(size int) ([]byte, error) {
	buf := make([]byte, size)
	if _, err := io.ReadFull(r.source, buf); err != nil {
		return nil, fmt.Errorf("%w: chunk section needs %d bytes: %v",
			ErrTruncated, size, err)
	}
	return buf, nil
}

// BlockSource is any stream of block records ending in io.EOF.
type BlockSource interface {
	Next() (Block, error)
}

// BlockStream is a single forward pass over every block in the file, chunk
// by chunk in directory order. It moves the reader's position as it goes and
// cannot be restarted once consumed.
type BlockStream struct {
	reader *Reader
	next   int // next directory offset
	buf    []byte
	i      int // linear index of the next record in buf
	cx, cy int
	err    error
}

// Blocks returns a stream over every block record in the file.
func (r *Reader) Blocks() *BlockStream {
	return &BlockStream{reader: r}
}

// Next returns the next decoded block. It returns io.EOF once the file is
// exhausted; any other error aborts the stream for good.
func (s *BlockStream) Next() (Block, error) {
	if s.err != nil {
		return Block{}, s.err
	}
	if s.buf == nil || s.i == blocksPerChunk {
		if s.err = s.loadChunk(); s.err != nil {
			return Block{}, s.err
		}
	}
	format := s.reader.format
	raw := s.buf[s.i*format.blockSize : (s.i+1)*format.blockSize]
	typ, light, state := format.decodeBlock(raw)
	x, y, z := blockPosition(s.i, s.cx, s.cy)
	s.i++
	return Block{X: x, Y: y, Z: z, Type: typ, Light: light, State: state}, nil
}

func (s *BlockStream) loadChunk() error {
	if s.next == len(s.reader.directory.Offsets) {
		return io.EOF
	}
	offset := s.reader.directory.Offsets[s.next]
	s.next++
	cx, cy, err := s.reader.readHeader(offset)
	if err != nil {
		return err
	}
	buf, err := s.reader.readSection(s.reader.format.BlocksSize())
	if err != nil {
		return err
	}
	s.cx, s.cy, s.buf, s.i = cx, cy, buf, 0
	return nil
}

// SurfaceStream is a single forward pass over every surface point in the
// file, skipping each chunk's block section. Like BlockStream it owns the
// reader's position while it is consumed.
type SurfaceStream struct {
	reader *Reader
	next   int
	buf    []byte
	i      int
	cx, cy int
	err    error
}

// Surface returns a stream over every surface point in the file.
func (r *Reader) Surface() *SurfaceStream {
	return &SurfaceStream{reader: r}
}

// Next returns the next decoded surface point. It returns io.EOF once the
// file is exhausted; any other error aborts the stream for good.
func (s *SurfaceStream) Next() (SurfacePoint, error) {
	if s.err != nil {
		return SurfacePoint{}, s.err
	}
	if s.buf == nil || s.i == pointsPerChunk {
		if s.err = s.loadChunk(); s.err != nil {
			return SurfacePoint{}, s.err
		}
	}
	raw := s.buf[s.i*surfacePointSize : (s.i+1)*surfacePointSize]
	elevation, temperature, humidity := decodeSurfacePoint(raw)
	x, y := surfacePosition(s.i, s.cx, s.cy)
	s.i++
	return SurfacePoint{
		X: x, Y: y,
		Elevation:   elevation,
		Temperature: temperature,
		Humidity:    humidity,
	}, nil
}

func (s *SurfaceStream) loadChunk() error {
	if s.next == len(s.reader.directory.Offsets) {
		return io.EOF
	}
	offset := s.reader.directory.Offsets[s.next]
	s.next++
	cx, cy, err := s.reader.readHeader(offset)
	if err != nil {
		return err
	}
	if _, err := s.reader.source.Seek(int64(s.reader.format.BlocksSize()), io.SeekCurrent); err != nil {
		return err
	}
	buf, err := s.reader.readSection(s.reader.format.SurfaceSize())
	if err != nil {
		return err
	}
	s.cx, s.cy, s.buf, s.i = cx, cy, buf, 0
	return nil
}
