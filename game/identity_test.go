package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

/* spec:
- assignment: one identifier per starting piece, derived from its origin square
- quiet move: relocate one identifier
- capture: remove the destination identifier, record it, relocate the mover
- en passant: the taken identifier comes off the captured pawn's own square, not the destination
- castling: exactly two identifiers relocate (king and the rook)
- reversal: exact inverse of whichever branch applied, restoring any taken identifier
- fault: capture undo without a taken identifier leaves the square unoccupied instead of crashing
*/

func testSnapshot(cells map[Square]SnapshotCell) Snapshot {
	var snap Snapshot
	for sq, c := range cells {
		snap[sq.Rank()][sq.File()] = c
	}
	return snap
}

func sq(s string) Square {
	parsed, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestNewIdentityMap(t *testing.T) {
	snap := testSnapshot(map[Square]SnapshotCell{
		sq("e2"): {Type: Pawn, Side: White},
		sq("d7"): {Type: Pawn, Side: Black},
		sq("e1"): {Type: King, Side: White},
	})

	m := NewIdentityMap(snap)

	require.Len(t, m, 3, "exactly the occupied squares should be mapped")
	require.Equal(t, PieceID("wP-e2"), m[sq("e2")])
	require.Equal(t, PieceID("bP-d7"), m[sq("d7")])
	require.Equal(t, PieceID("wK-e1"), m[sq("e1")])
}

func TestIdentityApply(t *testing.T) {
	t.Run("quiet move relocates one identifier", func(t *testing.T) {
		m := IdentityMap{sq("e2"): "wP-e2"}

		u := m.Apply(Move{From: sq("e2"), To: sq("e4"), Side: White})

		require.Empty(t, u.Taken, "a quiet move takes nothing")
		require.Equal(t, IdentityMap{sq("e4"): "wP-e2"}, m)
	})

	t.Run("capture records the destination identifier", func(t *testing.T) {
		m := IdentityMap{sq("e4"): "wP-e2", sq("d5"): "bP-d7"}

		u := m.Apply(Move{From: sq("e4"), To: sq("d5"), Side: White, Capture: true, Captured: Pawn})

		require.Equal(t, PieceID("bP-d7"), u.Taken)
		require.Equal(t, IdentityMap{sq("d5"): "wP-e2"}, m)
	})

	t.Run("en passant takes off the captured pawn's own square", func(t *testing.T) {
		m := IdentityMap{sq("e5"): "wP-e2", sq("d5"): "bP-d7"}

		u := m.Apply(Move{From: sq("e5"), To: sq("d6"), Side: White, EnPassant: true, Captured: Pawn})

		require.Equal(t, PieceID("bP-d7"), u.Taken, "the victim is on d5, not d6")
		require.Equal(t, IdentityMap{sq("d6"): "wP-e2"}, m)
	})

	t.Run("kingside castle relocates king and rook", func(t *testing.T) {
		m := IdentityMap{sq("e1"): "wK-e1", sq("h1"): "wR-h1"}

		u := m.Apply(Move{From: sq("e1"), To: sq("g1"), Side: White, CastleKing: true})

		require.Empty(t, u.Taken)
		require.Equal(t, IdentityMap{sq("g1"): "wK-e1", sq("f1"): "wR-h1"}, m)
	})

	t.Run("queenside castle relocates king and rook", func(t *testing.T) {
		m := IdentityMap{sq("e8"): "bK-e8", sq("a8"): "bR-a8"}

		u := m.Apply(Move{From: sq("e8"), To: sq("c8"), Side: Black, CastleQueen: true})

		require.Empty(t, u.Taken)
		require.Equal(t, IdentityMap{sq("c8"): "bK-e8", sq("d8"): "bR-a8"}, m)
	})
}

func TestIdentityReverse(t *testing.T) {
	t.Run("capture round-trips", func(t *testing.T) {
		before := IdentityMap{sq("e4"): "wP-e2", sq("d5"): "bP-d7"}
		m := before.Copy()
		mv := Move{From: sq("e4"), To: sq("d5"), Side: White, Capture: true, Captured: Pawn}

		u := m.Apply(mv)
		m.Reverse(mv, u)

		require.Equal(t, before, m)
	})

	t.Run("en passant round-trips", func(t *testing.T) {
		before := IdentityMap{sq("e5"): "wP-e2", sq("d5"): "bP-d7"}
		m := before.Copy()
		mv := Move{From: sq("e5"), To: sq("d6"), Side: White, EnPassant: true, Captured: Pawn}

		u := m.Apply(mv)
		m.Reverse(mv, u)

		require.Equal(t, before, m)
	})

	t.Run("castles round-trip", func(t *testing.T) {
		for _, tc := range []struct {
			name   string
			before IdentityMap
			mv     Move
		}{
			{
				name:   "kingside",
				before: IdentityMap{sq("e1"): "wK-e1", sq("h1"): "wR-h1"},
				mv:     Move{From: sq("e1"), To: sq("g1"), Side: White, CastleKing: true},
			},
			{
				name:   "queenside",
				before: IdentityMap{sq("e1"): "wK-e1", sq("a1"): "wR-a1"},
				mv:     Move{From: sq("e1"), To: sq("c1"), Side: White, CastleQueen: true},
			},
		} {
			t.Run(tc.name, func(t *testing.T) {
				m := tc.before.Copy()

				u := m.Apply(tc.mv)
				m.Reverse(tc.mv, u)

				require.Equal(t, tc.before, m)
			})
		}
	})

	t.Run("missing taken identifier degrades to an unoccupied square", func(t *testing.T) {
		m := IdentityMap{sq("d5"): "wP-e2"}
		mv := Move{From: sq("e4"), To: sq("d5"), Side: White, Capture: true, Captured: Pawn}

		m.Reverse(mv, IdentityUndo{})

		require.Equal(t, IdentityMap{sq("e4"): "wP-e2"}, m, "the mover returns home, the victim's square stays empty")
	})
}
