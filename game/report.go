package game

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/deadloct/rps-championship-bot/data"
	"github.com/deadloct/rps-championship-bot/lib"
	"github.com/deadloct/rps-championship-bot/settings"
	"github.com/deadloct/rps-championship-bot/stats"
)

type TauntGenerator interface {
	GetTaunt(key string, vals lib.TauntValues) string
}

// HelpEntry describes one command of a front end.
type HelpEntry struct {
	Usage       string
	Description string
}

type roundValues struct {
	Headline       string
	PlayerEmoji    string
	PlayerChoice   string
	ComputerEmoji  string
	ComputerChoice string
	ComputerIcon   string
	Taunt          string
	Scoreboard     string
}

type conclusionValues struct {
	Trophy        string
	ComputerIcon  string
	PlayerScore   int
	ComputerScore int
}

type statsValues struct {
	stats.Record
	Icon string
}

// Reporter renders game events as player-facing text.
type Reporter struct {
	taunts TauntGenerator

	round   *template.Template
	victory *template.Template
	defeat  *template.Template
	stats   *template.Template
	help    *template.Template
}

// NewReporter parses the embedded templates. A nil taunt generator disables
// taunts.
func NewReporter(taunts TauntGenerator) (*Reporter, error) {
	r := &Reporter{taunts: taunts}

	for _, t := range []struct {
		dst  **template.Template
		name string
		text string
	}{
		{&r.round, "round", data.RoundTemplate},
		{&r.victory, "victory", data.VictoryTemplate},
		{&r.defeat, "defeat", data.DefeatTemplate},
		{&r.stats, "stats", data.StatsTemplate},
		{&r.help, "help", data.HelpTemplate},
	} {
		tmpl, err := template.New(t.name).Parse(t.text)
		if err != nil {
			return nil, fmt.Errorf("unable to parse %v template: %w", t.name, err)
		}

		*t.dst = tmpl
	}

	return r, nil
}

func (r *Reporter) Round(res RoundResult) (string, error) {
	computer := settings.GetEmoji(settings.EmojiComputer).EmojiCode()

	var headline, tauntKey string
	switch res.Outcome {
	case Tie:
		headline = settings.GetEmoji(settings.EmojiTie).EmojiCode() + " It's a TIE!"
		tauntKey = "tie"
	case ChallengerWins:
		headline = "🎉 You WIN this round!"
		tauntKey = "win"
	default:
		headline = "💻 Computer WINS this round!"
		tauntKey = "loss"
	}

	var taunt string
	if r.taunts != nil {
		taunt = r.taunts.GetTaunt(tauntKey, lib.TauntValues{
			Player:   res.Challenger.Title(),
			Computer: res.Opponent.Title(),
		})
	}

	return execute(r.round, roundValues{
		Headline:       headline,
		PlayerEmoji:    res.Challenger.Emoji().EmojiCode(),
		PlayerChoice:   res.Challenger.Title(),
		ComputerEmoji:  res.Opponent.Emoji().EmojiCode(),
		ComputerChoice: res.Opponent.Title(),
		ComputerIcon:   computer,
		Taunt:          taunt,
		Scoreboard:     Scoreboard(res.State),
	})
}

// Conclusion renders the victory or defeat announcement for a finished match.
func (r *Reporter) Conclusion(state MatchState) (string, error) {
	winner, over := state.Winner()
	if !over {
		return "", fmt.Errorf("match %v is still in progress", state.ID)
	}

	tmpl := r.defeat
	if winner == ChallengerWins {
		tmpl = r.victory
	}

	return execute(tmpl, conclusionValues{
		Trophy:        settings.GetEmoji(settings.EmojiTrophy).EmojiCode(),
		ComputerIcon:  settings.GetEmoji(settings.EmojiComputer).EmojiCode(),
		PlayerScore:   state.ChallengerScore,
		ComputerScore: state.OpponentScore,
	})
}

func (r *Reporter) Stats(record stats.Record) (string, error) {
	return execute(r.stats, statsValues{
		Record: record,
		Icon:   settings.GetEmoji(settings.EmojiStats).EmojiCode(),
	})
}

func (r *Reporter) Help(entries []HelpEntry) (string, error) {
	return execute(r.help, struct{ Commands []HelpEntry }{entries})
}

// Scoreboard is the one-line score summary shown between rounds.
func Scoreboard(state MatchState) string {
	return fmt.Sprintf("You: %v  |  Round: %v  |  Computer: %v",
		state.ChallengerScore, state.Round, state.OpponentScore)
}

func execute(tmpl *template.Template, vals any) (string, error) {
	var result bytes.Buffer
	if err := tmpl.Execute(&result, vals); err != nil {
		return "", err
	}

	return result.String(), nil
}
