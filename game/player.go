package game

// PlayerKind classifies who produces a side's moves.
type PlayerKind int

const (
	LocalPlayer PlayerKind = iota
	AutomatedPlayer
)

func (k PlayerKind) String() string {
	if k == AutomatedPlayer {
		return "automated"
	}
	return "local"
}

// Player describes one side for the life of a game instance.
type Player struct {
	Name string
	Kind PlayerKind
}
