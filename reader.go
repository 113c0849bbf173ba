package binpack

import (
	"fmt"
	"io"

	"github.com/op/go-logging"

	"github.com/mirajhq/binpack/bitstream"
	"github.com/mirajhq/binpack/chain"
	"github.com/mirajhq/binpack/chunk"
	"github.com/mirajhq/binpack/compress"
	"github.com/mirajhq/binpack/enum"
	"github.com/mirajhq/binpack/position"
)

var log = logging.MustGetLogger("binpack")

// Sentinel error kinds (spec §7), shared with package chunk so callers can
// use errors.Is against either this package's or chunk's exported values
// interchangeably.
var (
	ErrIO            = chunk.ErrIO
	ErrInvalidFormat = chunk.ErrInvalidFormat
	ErrEndOfFile     = chunk.ErrEndOfFile
)

// stemAndCountSize is the minimum number of bytes a chunk buffer must still
// hold for another stem to begin (32-byte stem + 2-byte ply count).
const stemAndCountSize = compress.StemSize + 2

// Reader streams Entry values out of a binpack byte stream, reconstructing
// each chain's running position as it decodes ply records.
type Reader struct {
	chunks   *chunk.Reader
	fileSize int64

	buf []byte
	off int

	inChain        bool
	chainBits      *bitstream.Reader
	chainPos       position.Position
	chainLastScore int16
	chainPly       uint16
	chainResult    enum.Result
	chainRemaining uint16

	done bool
}

// NewReader returns a Reader over r. fileSize is advisory (surfaced via
// FileSize) and may be 0 if unknown; it does not affect decoding. Per spec
// §7, a stream with zero chunks fails the constructor with ErrEndOfFile.
func NewReader(r io.Reader, fileSize int64) (*Reader, error) {
	rd := &Reader{chunks: chunk.NewReader(r), fileSize: fileSize}

	buf, err := rd.chunks.NextChunk()
	if err != nil {
		return nil, err
	}
	rd.buf = buf

	return rd, nil
}

// FileSize returns the advisory total size passed to NewReader.
func (r *Reader) FileSize() int64 { return r.fileSize }

// ReadBytes returns how many chunk bytes (headers included) have been
// consumed so far.
func (r *Reader) ReadBytes() int64 { return r.chunks.BytesRead() }

// HasNext reports whether another Entry is available.
func (r *Reader) HasNext() bool { return !r.done }

// IsNextEntryContinuation reports whether the next call to Next will
// advance an already-open chain rather than start a new one from a stem.
func (r *Reader) IsNextEntryContinuation() bool { return r.inChain }

// Next returns the next Entry. Callers must check HasNext first; calling
// Next after HasNext reports false returns ErrEndOfFile.
func (r *Reader) Next() (Entry, error) {
	if r.done {
		return Entry{}, ErrEndOfFile
	}
	if r.inChain {
		return r.nextChainEntry()
	}
	return r.nextStemEntry()
}

func (r *Reader) nextStemEntry() (Entry, error) {
	if r.off+compress.StemSize > len(r.buf) {
		return Entry{}, fmt.Errorf("%w: stem truncated at chunk boundary", ErrInvalidFormat)
	}
	stem, err := compress.DecodeStem(r.buf[r.off:])
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	r.off += compress.StemSize

	if r.off+2 > len(r.buf) {
		return Entry{}, fmt.Errorf("%w: ply count truncated at chunk boundary", ErrInvalidFormat)
	}
	numPlies := uint16(r.buf[r.off])<<8 | uint16(r.buf[r.off+1])
	r.off += 2

	entry := Entry{Pos: stem.Pos, Move: stem.Move, Score: stem.Score, Ply: stem.Ply, Result: stem.Result}

	if numPlies > 0 {
		r.chainBits = bitstream.NewReader(r.buf[r.off:])
		r.chainPos = stem.Pos
		r.chainPos.DoMove(stem.Move)
		r.chainLastScore = -stem.Score
		r.chainPly = stem.Ply + 1
		r.chainResult = stem.Result
		r.chainRemaining = numPlies
		r.inChain = true
	} else {
		r.advanceChunkIfNeeded()
	}

	return entry, nil
}

func (r *Reader) nextChainEntry() (Entry, error) {
	mv, score, newLast, err := chain.DecodePly(r.chainBits, r.chainPos, r.chainLastScore)
	if err != nil {
		r.done = true
		return Entry{}, fmt.Errorf("%w: chain ply truncated: %v", ErrInvalidFormat, err)
	}
	entry := Entry{Pos: r.chainPos, Move: mv, Score: score, Ply: r.chainPly, Result: r.chainResult}

	r.chainPos.DoMove(mv)
	r.chainLastScore = newLast
	r.chainPly++
	r.chainRemaining--

	if r.chainRemaining == 0 {
		r.off += r.chainBits.BytesRead()
		r.chainBits = nil
		r.inChain = false
		r.advanceChunkIfNeeded()
	}

	return entry, nil
}

func (r *Reader) advanceChunkIfNeeded() {
	if r.off+stemAndCountSize <= len(r.buf) {
		return
	}

	buf, err := r.chunks.NextChunk()
	if err != nil {
		log.Debugf("binpack: ending iteration: %v", err)
		r.done = true
		return
	}
	r.buf = buf
	r.off = 0
}
