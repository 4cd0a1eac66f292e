package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/wricardo/mcp-training/snakesladders/game/dice"
	"github.com/wricardo/mcp-training/snakesladders/game/engine"
	"github.com/wricardo/mcp-training/snakesladders/game/service"
)

// Options configures a Shell. Zero values pick the classic board and a
// randomly seeded die.
type Options struct {
	Board     *engine.Board
	Dice      engine.RollSource
	FinishAll bool
	MaxTurns  int
	Logger    *log.Logger
}

// Shell plays one game on a terminal: it registers players from prompts,
// then waits for Enter before every roll
type Shell struct {
	in     io.Reader
	out    io.Writer
	lines  <-chan string
	opts   Options
	logger *log.Logger
}

// NewShell creates a shell reading answers from in and writing prompts to out
func NewShell(in io.Reader, out io.Writer, opts Options) *Shell {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Shell{
		in:     in,
		out:    out,
		opts:   opts,
		logger: logger,
	}
}

// scanLines feeds input lines to a channel that is closed at end of input or
// once ctx is done. A Read already blocked on in finishes before the
// goroutine can exit.
func scanLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

// readLine waits for the next input line. It returns io.EOF once input is
// exhausted.
func (s *Shell) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

func (s *Shell) println(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}

// Run plays a full game and returns the winner's name. Input is read only
// while Run is active.
func (s *Shell) Run(ctx context.Context) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.lines = scanLines(ctx, s.in)

	board := s.opts.Board
	if board == nil {
		board = engine.DefaultBoard()
	}
	rolls := s.opts.Dice
	if rolls == nil {
		seed, err := dice.NewSeed()
		if err != nil {
			return "", fmt.Errorf("failed to seed dice: %w", err)
		}
		rolls = dice.NewSeeded(seed)
	}

	var engineOpts []engine.Option
	if s.opts.FinishAll {
		engineOpts = append(engineOpts, engine.WithFinishAll())
	}
	if s.opts.MaxTurns > 0 {
		engineOpts = append(engineOpts, engine.WithMaxTurns(s.opts.MaxTurns))
	}

	game := engine.NewEngineWithBoard(board, engineOpts...)
	defer game.Cleanup()
	if err := game.Subscribe(engine.ObserverFunc(s.onEvent)); err != nil {
		return "", err
	}

	if err := s.registerPlayers(ctx, game); err != nil {
		return "", err
	}
	if len(game.GetPlayers()) == 0 {
		return "", engine.ErrNoPlayers
	}

	s.println("Press Enter to start the game")
	if _, err := s.readLine(ctx); err != nil {
		return "", err
	}

	if err := game.StartGame(s.enterToRoll(rolls)); err != nil {
		return "", err
	}
	s.logger.Printf("[START] console board=%s players=%d", board.Name(), len(game.GetPlayers()))

	winner, err := game.Run(ctx)
	if err != nil {
		return "", err
	}

	if _, err := game.EndGame(); err != nil {
		return "", err
	}
	s.println("Game completed!!")
	s.logger.Printf("[END] console winner=%q", winner)
	return winner, nil
}

// registerPlayers prompts for players until the answer is "n" or input ends
func (s *Shell) registerPlayers(ctx context.Context, game *engine.GameEngine) error {
	for {
		s.println("Want to add a player? (y/n)")
		answer, err := s.readLine(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.EqualFold(answer, "n") || strings.EqualFold(answer, "no") {
			return nil
		}

		s.println("Enter player's name:")
		name, err := s.readLine(ctx)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if err := game.AddPlayer(name); err != nil {
			if errors.Is(err, engine.ErrEmptyPlayerName) {
				s.println("Can't take empty player name")
				continue
			}
			return err
		}
	}
}

// enterToRoll waits for Enter before each roll of rolls
func (s *Shell) enterToRoll(rolls engine.RollSource) engine.RollSource {
	return engine.RollFunc(func(ctx context.Context) (int, error) {
		if _, err := s.readLine(ctx); err != nil {
			return 0, err
		}
		die, err := rolls.Roll(ctx)
		if err != nil {
			return 0, err
		}
		s.println("Dice value: %d", die)
		return die, nil
	})
}

func (s *Shell) onEvent(event engine.Event) {
	switch event.Type {
	case engine.EventTurnStarted:
		s.println("%s: (press enter to roll the dice)", service.FormatEvent(event))
	case engine.EventPlayerCompleted:
		s.println("%s.", service.FormatEvent(event))
	default:
		s.println("%s", service.FormatEvent(event))
	}
}
