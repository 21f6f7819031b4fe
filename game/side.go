package game

// Side is one of the two players/colors.
type Side int

const (
	White Side = iota
	Black
)

func (s Side) String() string {
	if s == White {
		return "White"
	}
	return "Black"
}

func (s Side) Other() Side {
	if s == White {
		return Black
	}
	return White
}
