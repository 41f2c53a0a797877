package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/deadloct/rps-championship-bot/game"
	log "github.com/sirupsen/logrus"
)

const consolePrompt = "> "

var consoleHelp = []game.HelpEntry{
	{Usage: "rock | r", Description: "Throw rock"},
	{Usage: "paper | p", Description: "Throw paper"},
	{Usage: "scissors | s", Description: "Throw scissors"},
	{Usage: "stats", Description: "Show your all-time statistics"},
	{Usage: "new", Description: "Abandon the current match and start a new one"},
	{Usage: "help", Description: "Show this help"},
	{Usage: "quit | q", Description: "Save your statistics and exit"},
}

// Console plays a single local session over a line-oriented terminal.
type Console struct {
	in       io.Reader
	out      io.Writer
	session  *game.Session
	reporter *game.Reporter
}

func NewConsole(in io.Reader, out io.Writer, session *game.Session, reporter *game.Reporter) *Console {
	return &Console{in: in, out: out, session: session, reporter: reporter}
}

// Run reads commands until the player quits, input ends, or ctx is done. The
// session is saved on every exit path.
func (c *Console) Run(ctx context.Context) error {
	defer c.session.Close()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	c.printf("Rock Paper Scissors Championship\n\n")
	c.printHelp()
	c.printf("\n%v\n%v", game.Scoreboard(c.session.Match()), consolePrompt)

	for {
		select {
		case <-ctx.Done():
			log.Info("console interrupted, saving stats")
			c.printf("\nGoodbye!\n")
			return nil

		case err := <-readErr:
			c.printf("\nGoodbye!\n")
			return err

		case line := <-lines:
			if quit := c.handle(strings.TrimSpace(line)); quit {
				c.printf("Goodbye!\n")
				return nil
			}

			c.printf("%v", consolePrompt)
		}
	}
}

func (c *Console) handle(line string) (quit bool) {
	switch strings.ToLower(line) {
	case "":
	case "quit", "q", "exit":
		return true
	case "help", "h", "?":
		c.printHelp()
	case "stats":
		c.printStats()
	case "new":
		state := c.session.NewMatch()
		c.printf("New match started! Choose your weapon!\n%v\n", game.Scoreboard(state))
	default:
		choice, err := game.ParseChoice(line)
		if err != nil {
			c.printf("Unknown command %q. Type \"help\" for a list of commands.\n", line)
			return false
		}

		c.play(choice)
	}

	return false
}

func (c *Console) play(choice game.Choice) {
	res, err := c.session.Play(choice)
	switch {
	case errors.Is(err, game.ErrMatchOver):
		c.printf("Match Over. Start a new match to play again!\n")
		return
	case err != nil:
		log.Errorf("could not play round: %v", err)
		c.printf("Something went wrong, please try again.\n")
		return
	}

	text, err := c.reporter.Round(res)
	if err != nil {
		log.Errorf("could not render round: %v", err)
		return
	}
	c.printf("\n%v\n", text)

	if !res.MatchOver() {
		return
	}

	text, err = c.reporter.Conclusion(res.State)
	if err != nil {
		log.Errorf("could not render match conclusion: %v", err)
		return
	}
	c.printf("\n%v\n", text)
}

func (c *Console) printHelp() {
	text, err := c.reporter.Help(consoleHelp)
	if err != nil {
		log.Errorf("could not render help: %v", err)
		return
	}

	c.printf("%v", text)
}

func (c *Console) printStats() {
	text, err := c.reporter.Stats(c.session.Stats())
	if err != nil {
		log.Errorf("could not render stats: %v", err)
		return
	}

	c.printf("\n%v\n", text)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
