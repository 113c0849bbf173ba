package compress

import (
	"bytes"
	"testing"

	"github.com/mirajhq/binpack/enum"
	"github.com/mirajhq/binpack/position"
)

var cposFixture = []byte{
	0x62, 0x79, 0xc0, 0x15, 0x18, 0x4c, 0xf1, 0x64,
	0x64, 0x6a, 0x00, 0x04, 0x08, 0x30, 0x02, 0x11,
	0x11, 0x91, 0x13, 0x75, 0xf7, 0x00, 0x00, 0x00,
}

func TestDecodeCposFixture(t *testing.T) {
	pos, err := DecodeCpos(cposFixture)
	if err != nil {
		t.Fatalf("DecodeCpos: %v", err)
	}
	pos.HalfmoveClock = 0
	pos.FullmoveNumber = 1

	want := "1r3rk1/p2qnpb1/6pp/P1p1p3/3nN3/2QP2P1/R3PPBP/2B2RK1 b - - 0 1"
	if got := pos.Serialize(); got != want {
		t.Fatalf("Serialize() = %q, want %q", got, want)
	}
}

func TestEncodeCposRoundTrip(t *testing.T) {
	fen := "1r3rk1/p2qnpb1/6pp/P1p1p3/3nN3/2QP2P1/R3PPBP/2B2RK1 b - - 0 1"
	p := position.Parse(fen)

	encoded := EncodeCpos(p)
	if !bytes.Equal(encoded[:], cposFixture) {
		t.Fatalf("EncodeCpos = % x, want % x", encoded, cposFixture)
	}
}

func TestCposEnPassantNibble(t *testing.T) {
	// A black pawn on d4 can safely recapture en passant on e3 once White
	// pushes e2e4, so the EP square must round-trip through the nibble codec.
	p := position.Parse("4k3/8/8/8/3p4/8/4P3/4K3 w - - 0 1")
	p.DoMove(position.NewMove(enum.Sq(4, 1), enum.Sq(4, 3), enum.MoveNormal)) // e2e4

	encoded := EncodeCpos(p)
	decoded, err := DecodeCpos(encoded[:])
	if err != nil {
		t.Fatalf("DecodeCpos: %v", err)
	}
	if decoded.EPSquare != enum.Sq(4, 2) {
		t.Fatalf("EPSquare = %d, want e3 (%d)", decoded.EPSquare, enum.Sq(4, 2))
	}
}

func TestCposCastlingRightsRoundTrip(t *testing.T) {
	p := position.Parse("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	encoded := EncodeCpos(p)
	decoded, err := DecodeCpos(encoded[:])
	if err != nil {
		t.Fatalf("DecodeCpos: %v", err)
	}
	if decoded.CastlingRights != (enum.WhiteKing | enum.WhiteQueen | enum.BlackKing | enum.BlackQueen) {
		t.Fatalf("CastlingRights = %04b, want all four rights", decoded.CastlingRights)
	}
}

func TestCposInvalidDoublePushRank(t *testing.T) {
	var data [CposSize]byte
	data[0] = 0x01 // a single occupied square: a8 (data[0] is the occupancy's top byte)
	data[8] = 12   // nibble 12 on rank 8 is not a valid double-push rank
	if _, err := DecodeCpos(data[:]); err == nil {
		t.Fatalf("expected ErrInvalidFormat for nibble 12 on the wrong rank")
	}
}

func TestStemFixtureFullDecode(t *testing.T) {
	data := append(append([]byte{}, cposFixture...),
		0x3d, 0xe8, 0x00, 0xfd, 0x00, 0x27, 0x00, 0x02)

	stem, err := DecodeStem(data)
	if err != nil {
		t.Fatalf("DecodeStem: %v", err)
	}

	if stem.Move.From() != 61 || stem.Move.To() != 58 {
		t.Fatalf("move = %d->%d, want 61->58", stem.Move.From(), stem.Move.To())
	}
	if stem.Move.Type() != enum.MoveNormal {
		t.Fatalf("move type = %d, want Normal", stem.Move.Type())
	}
	if stem.Score != -127 {
		t.Fatalf("score = %d, want -127", stem.Score)
	}
	if stem.Ply != 39 {
		t.Fatalf("ply = %d, want 39", stem.Ply)
	}
	if stem.Result != enum.ResultDraw {
		t.Fatalf("result = %d, want 0", stem.Result)
	}
	if stem.Rule50 != 2 {
		t.Fatalf("rule50 = %d, want 2", stem.Rule50)
	}

	want := "1r3rk1/p2qnpb1/6pp/P1p1p3/3nN3/2QP2P1/R3PPBP/2B2RK1 b - - 2 20"
	if got := stem.Pos.Serialize(); got != want {
		t.Fatalf("Pos.Serialize() = %q, want %q", got, want)
	}
}

func TestStemEncodeDecodeRoundTrip(t *testing.T) {
	p := position.Parse("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	s := Stem{
		Pos:    p,
		Move:   position.NewMove(enum.Sq(4, 1), enum.Sq(4, 3), enum.MoveNormal),
		Score:  254,
		Ply:    0,
		Result: enum.ResultWhiteWin,
		Rule50: 0,
	}

	encoded := s.Encode()
	got, err := DecodeStem(encoded[:])
	if err != nil {
		t.Fatalf("DecodeStem: %v", err)
	}
	if got.Score != s.Score || got.Ply != s.Ply || got.Result != s.Result {
		t.Fatalf("round trip mismatch: got %+v, want score/ply/result %d/%d/%d",
			got, s.Score, s.Ply, s.Result)
	}
	if got.Move != s.Move {
		t.Fatalf("move round trip mismatch: got %v, want %v", got.Move, s.Move)
	}
}

func TestStemTooShort(t *testing.T) {
	if _, err := DecodeStem(make([]byte, StemSize-1)); err == nil {
		t.Fatalf("expected ErrInvalidFormat for a truncated stem")
	}
}
