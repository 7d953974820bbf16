package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"miners/game"
)

var ErrQuit = errors.New("player quit")

// Console is a human seat playing battle log commands typed on a terminal.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// NextMove shows the board and reads commands until one parses. Reading
// blocks, so ctx is only checked between lines.
func (p *Console) NextMove(ctx context.Context, gs *game.GameState, id game.PlayerID) (game.Move, bool, error) {
	p.render(gs, id)
	for {
		if err := ctx.Err(); err != nil {
			return game.Move{}, false, err
		}
		fmt.Fprintf(p.out, "%s> ", id)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return game.Move{}, false, err
			}
			return game.Move{}, false, ErrQuit
		}
		line := strings.TrimSpace(p.in.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return game.Move{}, false, ErrQuit
		case "help", "?":
			p.help(gs)
			continue
		case "board":
			p.render(gs, id)
			continue
		}
		move, err := game.ParseCommand(line)
		if err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}
		return move, true, nil
	}
}

func (p *Console) render(gs *game.GameState, id game.PlayerID) {
	fmt.Fprintln(p.out, gs.Board.String())
	scores := gs.Scores()
	for _, other := range gs.Seated() {
		pl := gs.Players[other]
		status := ""
		if pl.Eliminated {
			status = " (eliminated)"
		}
		fmt.Fprintf(p.out, "%s %c%c  mines %d  power %d%s\n", other, pl.StationGlyph, pl.MineGlyph, scores[other], gs.LinePower(other), status)
	}
	if gs.CanStrike(id) {
		fmt.Fprintf(p.out, "weapon charged, armed stations: %v\n", game.WeaponCells(gs.Board, id, gs.Threshold))
	}
}

func (p *Console) help(gs *game.GameState) {
	fmt.Fprintln(p.out, "S <col> <row>   build a station")
	fmt.Fprintln(p.out, "M <col> <row>   build a mine")
	fmt.Fprintln(p.out, "L <col> <row>   strike")
	if gs.Combat == game.CombatBeam {
		fmt.Fprintln(p.out, "LV <col> <row>  strike along the column")
	}
	if gs.AllowManualSkip {
		fmt.Fprintln(p.out, "P               pass")
	}
	fmt.Fprintln(p.out, "board, help, quit")
}
