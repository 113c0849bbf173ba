package position

import "testing"

func TestToBitboardsStartpos(t *testing.T) {
	bb := ToBitboards("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR")

	wantPawns := uint64(0xFF00)
	if bb[0] != wantPawns { // WPawn
		t.Fatalf("white pawns = %#x, want %#x", bb[0], wantPawns)
	}
	wantBlackPawns := uint64(0xFF000000000000)
	if bb[1] != wantBlackPawns { // BPawn
		t.Fatalf("black pawns = %#x, want %#x", bb[1], wantBlackPawns)
	}
}

func TestFromBitboardsRoundTrip(t *testing.T) {
	board := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R"
	bb := ToBitboards(board)
	if got := FromBitboards(bb); got != board {
		t.Fatalf("FromBitboards(ToBitboards(x)) = %q, want %q", got, board)
	}
}
