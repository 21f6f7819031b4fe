package game

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// PieceID is a stable per-piece token, assigned once at game start and never
// reused or reassigned, so a piece can be followed across moves, undos and redos
// independently of its board position.
type PieceID string

// NewPieceID derives an identifier from a piece's side, type and starting square,
// e.g. "wP-e2". Starting squares are unique, so identifiers are too.
func NewPieceID(s Side, t PieceType, origin Square) PieceID {
	prefix := "w"
	if s == Black {
		prefix = "b"
	}
	return PieceID(fmt.Sprintf("%s%s-%s", prefix, t.Letter(), origin))
}

// IdentityMap maps each occupied square to its piece identifier. It covers
// exactly the occupied squares: each identifier appears on at most one square
// and each occupied square holds at most one identifier.
type IdentityMap map[Square]PieceID

// NewIdentityMap assigns one identifier per piece of the starting layout.
func NewIdentityMap(snap Snapshot) IdentityMap {
	m := make(IdentityMap)
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			cell := snap[rank][file]
			if cell.Empty() {
				continue
			}
			sq := NewSquare(file, rank)
			m[sq] = NewPieceID(cell.Side, cell.Type, sq)
		}
	}
	return m
}

func (m IdentityMap) Copy() IdentityMap {
	c := make(IdentityMap, len(m))
	for sq, id := range m {
		c[sq] = id
	}
	return c
}

// IdentityUndo is pushed once per applied move: the identifier removed by the
// move, empty when the move captured nothing.
type IdentityUndo struct {
	Taken PieceID
}

// takenSquare is where a capture-like move removes its victim. For en passant
// the captured pawn sits beside the mover, not on the destination square.
func takenSquare(mv Move) Square {
	if mv.EnPassant {
		return NewSquare(mv.To.File(), mv.From.Rank())
	}
	return mv.To
}

// Apply mutates the map for an accepted move and returns the record needed to
// reverse it. Flag branches are mutually exclusive, first match wins.
func (m IdentityMap) Apply(mv Move) IdentityUndo {
	var u IdentityUndo
	switch {
	case mv.Capture || mv.EnPassant:
		sq := takenSquare(mv)
		u.Taken = m[sq]
		delete(m, sq)
		m.relocate(mv.From, mv.To)
	case mv.CastleKing:
		m.relocate(mv.From, mv.To)
		rank := mv.From.Rank()
		m.relocate(NewSquare(7, rank), NewSquare(5, rank))
	case mv.CastleQueen:
		m.relocate(mv.From, mv.To)
		rank := mv.From.Rank()
		m.relocate(NewSquare(0, rank), NewSquare(3, rank))
	default:
		m.relocate(mv.From, mv.To)
	}
	return u
}

// Reverse performs the exact inverse of Apply for the same move and its record.
// A capture-like record with no taken identifier means the tracker and the
// rules engine disagreed; the square is left unoccupied and identity for it is
// best-effort from here on.
func (m IdentityMap) Reverse(mv Move, u IdentityUndo) {
	switch {
	case mv.Capture || mv.EnPassant:
		m.relocate(mv.To, mv.From)
		sq := takenSquare(mv)
		if u.Taken == "" {
			log.Error().
				Str("move", mv.String()).
				Str("square", sq.String()).
				Msg("identity: undo of a capture holds no taken identifier, leaving square unoccupied")
			return
		}
		m[sq] = u.Taken
	case mv.CastleKing:
		m.relocate(mv.To, mv.From)
		rank := mv.From.Rank()
		m.relocate(NewSquare(5, rank), NewSquare(7, rank))
	case mv.CastleQueen:
		m.relocate(mv.To, mv.From)
		rank := mv.From.Rank()
		m.relocate(NewSquare(3, rank), NewSquare(0, rank))
	default:
		m.relocate(mv.To, mv.From)
	}
}

func (m IdentityMap) relocate(from, to Square) {
	id, ok := m[from]
	if !ok {
		log.Error().
			Str("from", from.String()).
			Str("to", to.String()).
			Msg("identity: no identifier on vacated square")
		return
	}
	m[to] = id
	delete(m, from)
}
