package game

import "fmt"

// Square addresses one of the 64 board cells. A1 is 0, H8 is 63.
type Square uint8

func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

func (sq Square) File() int {
	return int(sq) % 8
}

func (sq Square) Rank() int {
	return int(sq) / 8
}

func (sq Square) String() string {
	return fmt.Sprintf("%c%d", 'a'+sq.File(), sq.Rank()+1)
}

// ParseSquare reads algebraic notation like "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return 0, fmt.Errorf("invalid square %q", s)
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}

// PieceType is the kind of a piece, independent of its side.
type PieceType int

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceTypeNames = map[PieceType]string{
	Pawn:   "Pawn",
	Knight: "Knight",
	Bishop: "Bishop",
	Rook:   "Rook",
	Queen:  "Queen",
	King:   "King",
}

var pieceTypeLetters = map[PieceType]string{
	Pawn:   "P",
	Knight: "N",
	Bishop: "B",
	Rook:   "R",
	Queen:  "Q",
	King:   "K",
}

func (pt PieceType) String() string {
	if name, ok := pieceTypeNames[pt]; ok {
		return name
	}
	return "None"
}

// Letter is the single-letter form used in identifiers and user input (N for knight).
func (pt PieceType) Letter() string {
	return pieceTypeLetters[pt]
}

// ParsePieceType reads a single-letter piece name, as used for promotions.
func ParsePieceType(s string) (PieceType, error) {
	switch s {
	case "":
		return NoPieceType, nil
	case "p", "P":
		return Pawn, nil
	case "n", "N":
		return Knight, nil
	case "b", "B":
		return Bishop, nil
	case "r", "R":
		return Rook, nil
	case "q", "Q":
		return Queen, nil
	case "k", "K":
		return King, nil
	}
	return NoPieceType, fmt.Errorf("invalid piece type %q", s)
}

// SnapshotCell is one cell of the rules engine's board, with no identity attached.
// The zero value is an empty cell.
type SnapshotCell struct {
	Type PieceType
	Side Side
}

func (c SnapshotCell) Empty() bool {
	return c.Type == NoPieceType
}

// Snapshot is the rules engine's view of the board, rank-major: Snapshot[rank][file].
type Snapshot [8][8]SnapshotCell

// Cell is one cell of the board projection: the engine's piece plus its stable
// identifier. The zero value is an empty cell.
type Cell struct {
	Type PieceType
	Side Side
	ID   PieceID
}

func (c Cell) Empty() bool {
	return c.Type == NoPieceType
}

// Board is the projection handed to observers, rank-major: Board[rank][file].
type Board [8][8]Cell

// At returns the cell for a square.
func (b Board) At(sq Square) Cell {
	return b[sq.Rank()][sq.File()]
}

// ProjectBoard combines the rules engine's snapshot with the identity map.
func ProjectBoard(snap Snapshot, ids IdentityMap) Board {
	var b Board
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			cell := snap[rank][file]
			if cell.Empty() {
				continue
			}
			b[rank][file] = Cell{
				Type: cell.Type,
				Side: cell.Side,
				ID:   ids[NewSquare(file, rank)],
			}
		}
	}
	return b
}
