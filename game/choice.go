package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deadloct/rps-championship-bot/settings"
)

var ErrInvalidChoice = errors.New("invalid choice")

type Choice int

const (
	Rock Choice = iota + 1
	Paper
	Scissors
)

var Choices = []Choice{Rock, Paper, Scissors}

var choiceAliases = map[string]Choice{
	"rock":     Rock,
	"r":        Rock,
	"paper":    Paper,
	"p":        Paper,
	"scissors": Scissors,
	"s":        Scissors,
}

// ParseChoice accepts a choice name or its first letter, ignoring case and
// surrounding whitespace.
func ParseChoice(str string) (Choice, error) {
	if c, ok := choiceAliases[strings.ToLower(strings.TrimSpace(str))]; ok {
		return c, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidChoice, str)
}

func (c Choice) Valid() bool {
	return c >= Rock && c <= Scissors
}

func (c Choice) String() string {
	switch c {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	}

	return fmt.Sprintf("Choice(%d)", int(c))
}

func (c Choice) Title() string {
	s := c.String()
	if !c.Valid() {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

func (c Choice) Emoji() settings.EmojiInfo {
	switch c {
	case Rock:
		return settings.GetEmoji(settings.EmojiRock)
	case Paper:
		return settings.GetEmoji(settings.EmojiPaper)
	case Scissors:
		return settings.GetEmoji(settings.EmojiScissors)
	}

	return settings.EmojiInfo{}
}

// Beats returns the choice that c defeats.
func (c Choice) Beats() Choice {
	switch c {
	case Rock:
		return Scissors
	case Scissors:
		return Paper
	case Paper:
		return Rock
	}

	return 0
}

// CounterTo returns the choice that defeats c.
func CounterTo(c Choice) Choice {
	switch c {
	case Rock:
		return Paper
	case Paper:
		return Scissors
	case Scissors:
		return Rock
	}

	return 0
}

type RoundOutcome int

const (
	Tie RoundOutcome = iota
	ChallengerWins
	OpponentWins
)

func (o RoundOutcome) String() string {
	switch o {
	case Tie:
		return "tie"
	case ChallengerWins:
		return "challenger-wins"
	case OpponentWins:
		return "opponent-wins"
	}

	return fmt.Sprintf("RoundOutcome(%d)", int(o))
}

// Resolve compares the challenger's choice a against the opponent's choice b.
func Resolve(a, b Choice) RoundOutcome {
	switch {
	case a == b:
		return Tie
	case a.Beats() == b:
		return ChallengerWins
	default:
		return OpponentWins
	}
}
