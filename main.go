package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chesscore/engine"
	"chesscore/game"
	"chesscore/gamemaster"
	"chesscore/oracle"
)

func main() {
	white := flag.String("white", "White", "white player's name")
	black := flag.String("black", "Black", "black player's name")
	allotment := flag.Duration("time", 5*time.Minute, "per-side time allotment")
	oracleURL := flag.String("oracle", "", "suggestion server URL; black plays automatically when set")
	serve := flag.String("serve", "", "serve move suggestions on this address instead of playing")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *serve != "" {
		if err := oracle.ListenAndServe(*serve, oracle.FirstLegal{}); err != nil {
			log.Fatal().Err(err).Msg("suggestion server stopped")
		}
		return
	}

	cfg := game.Config{
		Allotment: *allotment,
		White:     game.Player{Name: *white, Kind: game.LocalPlayer},
		Black:     game.Player{Name: *black, Kind: game.LocalPlayer},
	}
	var opts []gamemaster.Option
	if *oracleURL != "" {
		cfg.Black = game.Player{Name: *black, Kind: game.AutomatedPlayer}
		opts = append(opts, gamemaster.WithOracle(oracle.NewClient(*oracleURL)))
	}
	gm := gamemaster.New(engine.New(), cfg, opts...)

	fmt.Println("Moves as e2e4, e7e8q to promote. Commands: undo, redo, pause, quit.")
	render(gm.State())
	run(gm, cfg.Black.Kind == game.AutomatedPlayer)
}

func run(gm *gamemaster.GameMaster, autoBlack bool) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		gs := gm.State()
		if gs.Complete() {
			fmt.Printf("Game over: %s.\n", describeCompletion(gs.Completion))
			return
		}
		fmt.Printf("%s to move> ", gs.PlayerFor(gs.Turn).Name)
		if !scanner.Scan() {
			return
		}
		input := strings.TrimSpace(strings.ToLower(scanner.Text()))

		var err error
		moved := false
		switch input {
		case "":
			continue
		case "quit", "exit":
			return
		case "undo":
			err = gm.Undo()
		case "redo":
			err = gm.Redo()
		case "pause":
			err = gm.Pause()
		default:
			err = playInput(gm, input)
			moved = err == nil
		}
		if err != nil {
			fmt.Println(rejection(err))
			continue
		}
		render(gm.State())

		if moved && autoBlack && !gm.State().Complete() && gm.State().Turn == game.Black {
			if err := autoMove(gm); err != nil {
				fmt.Println("automated opponent unavailable:", err)
				continue
			}
			render(gm.State())
		}
	}
}

func playInput(gm *gamemaster.GameMaster, input string) error {
	if len(input) != 4 && len(input) != 5 {
		return game.ErrIllegalMove
	}
	from, err := game.ParseSquare(input[:2])
	if err != nil {
		return game.ErrIllegalMove
	}
	to, err := game.ParseSquare(input[2:4])
	if err != nil {
		return game.ErrIllegalMove
	}
	promotion, err := game.ParsePieceType(input[4:])
	if err != nil {
		return game.ErrIllegalMove
	}
	return gm.Move(from, to, promotion)
}

func autoMove(gm *gamemaster.GameMaster) error {
	done := make(chan error, 1)
	if err := gm.RequestAutoMove(func(err error) { done <- err }); err != nil {
		return err
	}
	return <-done
}

func rejection(err error) string {
	switch {
	case errors.Is(err, game.ErrIllegalMove):
		return "That move is not legal here."
	case errors.Is(err, game.ErrNothingToUndo):
		return "Nothing to undo."
	case errors.Is(err, game.ErrNothingToRedo):
		return "Nothing to redo."
	case errors.Is(err, game.ErrPauseUnsupported):
		return "Pausing is not supported."
	case errors.Is(err, game.ErrGameComplete):
		return "The game is over."
	}
	return err.Error()
}

var (
	whitePiece = color.New(color.FgHiYellow, color.Bold)
	blackPiece = color.New(color.FgHiCyan, color.Bold)
	boardDot   = color.New(color.FgHiBlack)
)

func render(gs *game.GameState) {
	fmt.Println()
	for rank := 7; rank >= 0; rank-- {
		fmt.Printf(" %d ", rank+1)
		for file := 0; file < 8; file++ {
			cell := gs.Board[rank][file]
			switch {
			case cell.Empty():
				boardDot.Print(" .")
			case cell.Side == game.White:
				whitePiece.Printf(" %s", cell.Type.Letter())
			default:
				blackPiece.Printf(" %s", strings.ToLower(cell.Type.Letter()))
			}
		}
		fmt.Println()
	}
	fmt.Println("    a b c d e f g h")

	for _, s := range []game.Side{game.White, game.Black} {
		line := fmt.Sprintf(" %s %s", gs.Clocks.Clocks[s].String(), gs.PlayerFor(s).Name)
		if caps := gs.Captured[s]; len(caps) > 0 {
			letters := make([]string, len(caps))
			for i, pt := range caps {
				letters[i] = pt.Letter()
			}
			line += " captured: " + strings.Join(letters, " ")
		}
		if gs.InCheck[s] {
			line += " (in check)"
		}
		fmt.Println(line)
	}
	fmt.Println()
}

func describeCompletion(c game.Completion) string {
	names := []struct {
		tag  string
		name string
	}{
		{game.TagOutOfTime, "out of time"},
		{game.TagCheckmate, "checkmate"},
		{game.TagDraw, "draw"},
		{game.TagInsufficientMaterial, "insufficient material"},
		{game.TagThreefoldRepetition, "threefold repetition"},
	}
	var parts []string
	for _, n := range names {
		if strings.Contains(string(c), n.tag) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return string(c)
	}
	return strings.Join(parts, ", ")
}
