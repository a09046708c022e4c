// Package shell is the interactive front end: it parses typed
// coordinates, renders the board, and drives the engine through its
// public interfaces.
package shell

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/hexboardgames/hexchess/config"
	"github.com/hexboardgames/hexchess/engine"
	"github.com/hexboardgames/hexchess/game"
	"github.com/hexboardgames/hexchess/hexgrid"
	"github.com/hexboardgames/hexchess/move"
	"github.com/hexboardgames/hexchess/openings"
	"github.com/hexboardgames/hexchess/piece"
	"github.com/hexboardgames/hexchess/tablebase"
)

type Controller struct {
	l    *readline.Instance
	cfg  *config.Config
	eng  *engine.Engine
	pos  *game.Position
	book *openings.Store
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewController(cfg *config.Config) (*Controller, error) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "hexchess> ",
		HistoryFile:     "/tmp/hexchess_readline.tmp",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	c := &Controller{
		l:   l,
		cfg: cfg,
		eng: engine.New(),
		pos: game.NewGame(),
	}
	if cfg.OpeningBookPath != "" {
		book, err := openings.Open(cfg.OpeningBookPath)
		if err != nil {
			log.Warn().Err(err).Msg("opening-book-unavailable")
		} else {
			c.book = book
		}
	}
	return c, nil
}

func (c *Controller) Close() {
	if c.book != nil {
		c.book.Close()
	}
	c.l.Close()
}

// Warmup generates the configured tablebases before the loop starts.
func (c *Controller) Warmup(ctx context.Context) error {
	if len(c.cfg.TablebaseWarmup) == 0 {
		return nil
	}
	all := tablebase.SupportedConfigurations()
	wanted := lo.Filter(all, func(cfg tablebase.Configuration, _ int) bool {
		return lo.Contains(c.cfg.TablebaseWarmup, cfg.Name())
	})
	return c.eng.Tablebase().WarmUp(ctx, wanted)
}

func (c *Controller) Loop() {
	defer c.Close()
	for {
		line, err := c.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] == "exit" || fields[0] == "quit" {
			break
		}
		out, err := c.execute(fields)
		if err != nil {
			showMessage("error: "+err.Error(), c.l.Stderr())
			continue
		}
		if out != "" {
			showMessage(out, c.l.Stdout())
		}
	}
	log.Debug().Msg("exiting readline loop")
}

func (c *Controller) execute(fields []string) (string, error) {
	switch fields[0] {
	case "new":
		c.pos = game.NewGame()
		return c.render(), nil
	case "show":
		return c.render(), nil
	case "moves":
		ms := c.pos.LegalMoves()
		parts := lo.Map(ms, func(m move.Move, _ int) string { return m.String() })
		return fmt.Sprintf("%d legal: %s", len(ms), strings.Join(parts, " ")), nil
	case "move":
		return c.userMove(fields[1:])
	case "play":
		return c.enginePlay(fields[1:])
	case "hint":
		return c.hint(fields[1:])
	case "eval":
		return fmt.Sprintf("static eval (White's view): %d", c.eng.Evaluate(c.pos)), nil
	case "tb":
		return c.tbCommand(fields[1:])
	case "book":
		return c.bookCommand()
	case "help":
		return helpText, nil
	}
	return "", fmt.Errorf("unknown command %q (try help)", fields[0])
}

const helpText = `commands:
new                 start a new game
show                render the board
moves               list legal moves
move <q,r> <q,r> [piece]   play a move (optional promotion piece Q/C/L/N)
play [depth]        let the engine move
hint [depth]        suggest a move without playing it
eval                static evaluation
tb gen <name|all>   generate a tablebase (e.g. KvK, KQvK:w)
tb probe            probe the tablebase for the current position
book                show opening-book lines for the current position
exit                leave`

func (c *Controller) render() string {
	checkmate, stalemate := engine.Outcome(c.pos)
	status := fmt.Sprintf("move %d, %s to play", c.pos.MoveNumber(), c.pos.SideToMove())
	if checkmate {
		status = fmt.Sprintf("checkmate, %s wins", c.pos.SideToMove().Opponent())
	} else if stalemate {
		status = "stalemate"
	}
	return c.pos.Board().String() + status
}

func parseCoord(s string) (hexgrid.Coord, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return hexgrid.Coord{}, fmt.Errorf("coordinate %q: want q,r", s)
	}
	q, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return hexgrid.Coord{}, err
	}
	r, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return hexgrid.Coord{}, err
	}
	c := hexgrid.Coord{Q: q, R: r}
	if !hexgrid.IsValidCell(c) {
		return hexgrid.Coord{}, game.ErrInvalidCoordinate
	}
	return c, nil
}

func parsePromotion(s string) (piece.Type, error) {
	switch strings.ToUpper(s) {
	case "Q":
		return piece.Queen, nil
	case "C":
		return piece.Chariot, nil
	case "L":
		return piece.Lance, nil
	case "N":
		return piece.Knight, nil
	}
	return piece.NoType, fmt.Errorf("unknown promotion piece %q", s)
}

func (c *Controller) userMove(args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("usage: move <q,r> <q,r> [piece]")
	}
	from, err := parseCoord(args[0])
	if err != nil {
		return "", err
	}
	to, err := parseCoord(args[1])
	if err != nil {
		return "", err
	}
	m := move.New(from, to)
	if len(args) > 2 {
		promo, err := parsePromotion(args[2])
		if err != nil {
			return "", err
		}
		m.Promotion = promo
	}
	hash := c.pos.Hash()
	if err := c.pos.Make(m); err != nil {
		return "", err
	}
	if c.book != nil {
		if err := c.book.Record(hash, m, false); err != nil {
			log.Warn().Err(err).Msg("book-record-failed")
		}
	}
	return c.render(), nil
}

func (c *Controller) depthArg(args []string) int {
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil && d > 0 {
			return d
		}
	}
	return c.cfg.DefaultDepth
}

func (c *Controller) enginePlay(args []string) (string, error) {
	res, err := c.eng.BestMove(context.Background(), c.pos, c.depthArg(args))
	if err != nil {
		return "", err
	}
	if res.BestMove == nil {
		return "no move available", nil
	}
	if err := c.pos.Make(*res.BestMove); err != nil {
		return "", err
	}
	return fmt.Sprintf("engine plays %s (score %d, %d nodes)\n%s",
		res.BestMove, res.Score, res.NodesSearched, c.render()), nil
}

func (c *Controller) hint(args []string) (string, error) {
	res, err := c.eng.BestMove(context.Background(), c.pos, c.depthArg(args))
	if err != nil {
		return "", err
	}
	if res.BestMove == nil {
		return "no move available", nil
	}
	return fmt.Sprintf("suggested: %s (score %d)", res.BestMove, res.Score), nil
}

func (c *Controller) tbCommand(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("usage: tb gen <name|all> | tb probe")
	}
	switch args[0] {
	case "gen":
		if len(args) < 2 {
			return "", fmt.Errorf("usage: tb gen <name|all>")
		}
		configs := tablebase.SupportedConfigurations()
		if args[1] != "all" {
			configs = lo.Filter(configs, func(cfg tablebase.Configuration, _ int) bool {
				return cfg.Name() == args[1]
			})
			if len(configs) == 0 {
				return "", fmt.Errorf("unknown configuration %q", args[1])
			}
		}
		if err := c.eng.Tablebase().WarmUp(context.Background(), configs); err != nil {
			return "", err
		}
		return "generated", nil
	case "probe":
		entry, ok := c.eng.Tablebase().Probe(c.pos.Board(), c.pos.SideToMove())
		if !ok {
			return "not in tablebase", nil
		}
		s := fmt.Sprintf("%s, dtm %d", entry.WDL, entry.DTM)
		if entry.BestMove != nil {
			s += ", best " + entry.BestMove.String()
		}
		return s, nil
	}
	return "", fmt.Errorf("unknown tb subcommand %q", args[0])
}

func (c *Controller) bookCommand() (string, error) {
	if c.book == nil {
		return "opening book disabled", nil
	}
	lines, err := c.book.Lookup(c.pos.Hash())
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "no book lines", nil
	}
	parts := lo.Map(lines, func(bm openings.BookMove, _ int) string {
		return fmt.Sprintf("%s (played %d, won %d)", bm.Move, bm.Played, bm.Wins)
	})
	return strings.Join(parts, "\n"), nil
}
