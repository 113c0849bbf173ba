package binpack

import (
	"io"

	"github.com/mirajhq/binpack/bitstream"
	"github.com/mirajhq/binpack/chain"
	"github.com/mirajhq/binpack/chunk"
	"github.com/mirajhq/binpack/compress"
)

// DefaultMaxChainPlies caps a single chain's length defensively (spec §9,
// open question 3: "an explicit cap is advisable"). 0x3FFF matches the
// 14-bit ply field width the stem's ply/result word reserves, so a chain
// can never encode a ply count its own stem couldn't represent after a
// restart.
const DefaultMaxChainPlies = 0x3FFF

// Writer serializes Entry values into a binpack byte stream, detecting
// continuations to build chains and emitting BINP chunks at chain
// boundaries once the buffered payload crosses the target size.
type Writer struct {
	chunks        *chunk.Writer
	maxChainPlies int

	hasLast bool
	last    Entry

	chainOpen      bool
	chainBits      bitstream.Writer
	chainLastScore int16
	chainPlies     int
}

// NewWriter returns a Writer appending BINP chunks to out. targetSize <= 0
// uses chunk.DefaultTargetSize; maxChainPlies <= 0 uses
// DefaultMaxChainPlies, and values above chain.MaxPlies are clamped to it.
func NewWriter(out io.Writer, targetSize, maxChainPlies int) *Writer {
	if maxChainPlies <= 0 {
		maxChainPlies = DefaultMaxChainPlies
	}
	if maxChainPlies > chain.MaxPlies {
		maxChainPlies = chain.MaxPlies
	}
	return &Writer{
		chunks:        chunk.NewWriter(out, targetSize),
		maxChainPlies: maxChainPlies,
	}
}

// WriteEntry appends e to the stream: as a new ply if e continues the
// previously written entry's chain, otherwise closing any open chain and
// starting a fresh one from e's stem.
func (w *Writer) WriteEntry(e Entry) error {
	if w.hasLast && w.chainOpen && w.chainPlies < w.maxChainPlies && IsContinuation(w.last, e) {
		w.chainLastScore = chain.EncodePly(&w.chainBits, e.Pos, e.Move, e.Score, w.chainLastScore)
		w.chainPlies++
		w.last = e
		return nil
	}

	if w.chainOpen {
		w.closeChain()
	}

	if w.chunks.ShouldFlush() {
		if err := w.chunks.Flush(); err != nil {
			return err
		}
	}

	stem := compress.Stem{
		Pos:    e.Pos,
		Move:   e.Move,
		Score:  e.Score,
		Ply:    e.Ply,
		Result: e.Result,
		Rule50: uint16(e.Pos.HalfmoveClock),
	}
	stemBytes := stem.Encode()
	w.chunks.Append(stemBytes[:])

	w.chainOpen = true
	w.chainBits = bitstream.Writer{}
	w.chainLastScore = -e.Score
	w.chainPlies = 0

	w.last = e
	w.hasLast = true

	return nil
}

// closeChain appends the open chain's 2-byte ply count and bit-packed
// plies to the chunk buffer.
func (w *Writer) closeChain() {
	numPlies := uint16(w.chainPlies)
	var header [2]byte
	header[0], header[1] = byte(numPlies>>8), byte(numPlies)
	w.chunks.Append(header[:])

	if numPlies > 0 {
		w.chunks.Append(w.chainBits.Bytes())
	}

	log.Debugf("binpack: closed chain of %d plies", numPlies)
	w.chainOpen = false
}

// Flush finalizes any open chain and emits the remaining buffered bytes as
// a final chunk. Safe to call repeatedly; a no-op once there is nothing
// pending.
func (w *Writer) Flush() error {
	if w.chainOpen {
		w.closeChain()
	}
	return w.chunks.Flush()
}
