package game

// Completion encodes the terminal conditions of a finished game as a string of
// single-character tags in fixed order. Empty means the game is still active.
type Completion string

// Completion tags, in the order they appear in the encoded string.
const (
	TagOutOfTime            = "T"
	TagCheckmate            = "C"
	TagDraw                 = "D"
	TagInsufficientMaterial = "I"
	TagThreefoldRepetition  = "R"
)

func (c Completion) Complete() bool {
	return c != ""
}

// EvaluateCompletion combines the rules engine's terminal predicates with an
// externally supplied timed-out signal. Pure function: each tag is present iff
// its predicate holds, and the result is empty when none do.
func EvaluateCompletion(timedOut, checkmate, draw, insufficientMaterial, threefoldRepetition bool) Completion {
	var c Completion
	if timedOut {
		c += TagOutOfTime
	}
	if checkmate {
		c += TagCheckmate
	}
	if draw {
		c += TagDraw
	}
	if insufficientMaterial {
		c += TagInsufficientMaterial
	}
	if threefoldRepetition {
		c += TagThreefoldRepetition
	}
	return c
}

func evaluateRules(r Rules, timedOut bool) Completion {
	return EvaluateCompletion(timedOut, r.Checkmate(), r.Draw(), r.InsufficientMaterial(), r.ThreefoldRepetition())
}
