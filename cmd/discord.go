package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/deadloct/rps-championship-bot/game"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	CommandPrefix           = "rps-"
	CommandHelp             = CommandPrefix + "help"
	CommandPlay             = CommandPrefix + "play"
	CommandPlayOptionChoice = "choice"
	CommandStats            = CommandPrefix + "stats"
	CommandNew              = CommandPrefix + "new"

	// Button custom IDs take the form rps:<match id>:<action>, where the
	// action is a choice or ButtonNew.
	ButtonPrefix = "rps:"
	ButtonNew    = "new"
)

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        CommandHelp,
		Description: "Explains how to play",
	},
	{
		Name:        CommandPlay,
		Description: "Play a round of the current best-of-three match",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        CommandPlayOptionChoice,
				Description: "Your weapon",
				Required:    true,
				Choices:     choiceOptions(),
			},
		},
	},
	{
		Name:        CommandStats,
		Description: "Shows your all-time statistics",
	},
	{
		Name:        CommandNew,
		Description: "Abandons your current match and starts a new one",
	},
}

var discordHelp = []game.HelpEntry{
	{Usage: "/" + CommandPlay + " choice:<rock|paper|scissors>", Description: "Play a round, or use the buttons under a result"},
	{Usage: "/" + CommandStats, Description: "Show your all-time statistics"},
	{Usage: "/" + CommandNew, Description: "Abandon the current match and start a new one"},
	{Usage: "/" + CommandHelp, Description: "Show this help"},
}

func choiceOptions() []*discordgo.ApplicationCommandOptionChoice {
	var opts []*discordgo.ApplicationCommandOptionChoice
	for _, c := range game.Choices {
		opts = append(opts, &discordgo.ApplicationCommandOptionChoice{Name: c.Title(), Value: c.String()})
	}

	return opts
}

// Manager serves the game over Discord slash commands and message buttons.
type Manager struct {
	games    *game.Manager
	reporter *game.Reporter
}

func NewManager(games *game.Manager, reporter *game.Reporter) *Manager {
	return &Manager{games: games, reporter: reporter}
}

func (m *Manager) RegisterCommands(session *discordgo.Session) error {
	log.Info("registering commands")

	for _, v := range commands {
		if _, err := session.ApplicationCommandCreate(session.State.User.ID, "", v); err != nil {
			log.Errorf("error creating command %v: %v", v.Name, err)
			return err
		}

		log.Infof("registered command %v", v.Name)
	}

	log.Info("finished registering commands")
	return nil
}

func (m *Manager) DeregisterCommands(session *discordgo.Session) error {
	existingCommands, err := session.ApplicationCommands(session.State.User.ID, "")
	if err != nil {
		log.Errorf("could not retrieve existing commands: %v", err)
		return err
	}

	log.Info("deregistering commands")

	var errs []error
	for _, v := range existingCommands {
		if err := session.ApplicationCommandDelete(session.State.User.ID, "", v.ID); err != nil {
			log.Warnf("failed to deregister command %v: %v", v.Name, err)
			errs = append(errs, err)
			continue
		}

		log.Infof("deregistered command %v", v.Name)
	}

	log.Info("finished deregistering commands")
	return errors.Join(errs...)
}

func (m *Manager) CommandHandler(session *discordgo.Session, ic *discordgo.InteractionCreate) {
	player := game.NewParticipant(ic.Member, ic.User)
	if player.ID() == "" {
		log.Warn("ignoring interaction without a user")
		return
	}

	var data *discordgo.InteractionResponseData
	switch ic.Type {
	case discordgo.InteractionApplicationCommand:
		name := ic.ApplicationCommandData().Name
		log.Infof("%v issued command %v", player.DisplayFullName(), name)

		switch name {
		case CommandHelp:
			m.respond(session, ic, &discordgo.InteractionResponseData{Content: "> Command acknowledged."})
			m.sendHelp(game.NewDiscordSender(session, ic.ChannelID), player)
			return

		case CommandPlay:
			var choice string
			for _, option := range ic.ApplicationCommandData().Options {
				if option.Name == CommandPlayOptionChoice {
					choice = option.StringValue()
				}
			}
			data = m.play(player, uuid.Nil, choice)

		case CommandStats:
			data = m.stats(player)

		case CommandNew:
			data = m.newMatch(player)

		default:
			data = &discordgo.InteractionResponseData{Content: "> Unknown command.", Flags: discordgo.MessageFlagsEphemeral}
		}

	case discordgo.InteractionMessageComponent:
		data = m.button(player, ic.MessageComponentData().CustomID)

	default:
		return
	}

	m.respond(session, ic, data)
}

func (m *Manager) button(player *game.Participant, customID string) *discordgo.InteractionResponseData {
	log.Debugf("%v pressed button %v", player.DisplayFullName(), customID)

	matchID, action, err := parseButtonID(customID)
	if err != nil {
		log.Warnf("ignoring button from %v: %v", player.DisplayFullName(), err)
		return &discordgo.InteractionResponseData{
			Content: "> That button no longer works. Use /" + CommandNew + " to start a new match.",
			Flags:   discordgo.MessageFlagsEphemeral,
		}
	}

	if action == ButtonNew {
		state, err := m.games.Session(player.ID(), player.DisplayFullName()).ReplaceMatch(matchID)
		if errors.Is(err, game.ErrStaleMatch) {
			return staleMatch()
		}

		return newMatchResponse(player, state)
	}

	return m.play(player, matchID, action)
}

// play plays a round of the match with the given ID, or of the current match
// when the ID is uuid.Nil.
func (m *Manager) play(player *game.Participant, matchID uuid.UUID, choiceStr string) *discordgo.InteractionResponseData {
	choice, err := game.ParseChoice(choiceStr)
	if err != nil {
		return &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("> %q is not a weapon. Choose rock, paper or scissors.", choiceStr),
			Flags:   discordgo.MessageFlagsEphemeral,
		}
	}

	session := m.games.Session(player.ID(), player.DisplayFullName())

	var res game.RoundResult
	if matchID == uuid.Nil {
		res, err = session.Play(choice)
	} else {
		res, err = session.PlayMatch(matchID, choice)
	}

	switch {
	case errors.Is(err, game.ErrStaleMatch):
		return staleMatch()
	case errors.Is(err, game.ErrMatchOver):
		return &discordgo.InteractionResponseData{
			Content:    "> Match Over. Start a new match to play again!",
			Components: newMatchButtons(session.Match().ID),
			Flags:      discordgo.MessageFlagsEphemeral,
		}
	case err != nil:
		log.Errorf("could not play round for %v: %v", player.DisplayFullName(), err)
		return &discordgo.InteractionResponseData{Content: "> There was an unexpected error playing that round."}
	}

	text, err := m.reporter.Round(res)
	if err != nil {
		log.Errorf("could not render round: %v", err)
		return &discordgo.InteractionResponseData{Content: "> There was an unexpected error showing that round."}
	}

	data := &discordgo.InteractionResponseData{
		Content:    fmt.Sprintf("%v\n%v", player.Mention(), game.Quote(text)),
		Components: choiceButtons(res.State.ID),
	}

	if res.MatchOver() {
		conclusion, err := m.reporter.Conclusion(res.State)
		if err != nil {
			log.Errorf("could not render match conclusion: %v", err)
		} else {
			data.Embeds = []*discordgo.MessageEmbed{{Description: codeBlock(conclusion)}}
		}
		data.Components = newMatchButtons(res.State.ID)
	}

	return data
}

func (m *Manager) stats(player *game.Participant) *discordgo.InteractionResponseData {
	text, err := m.reporter.Stats(m.games.Session(player.ID(), player.DisplayFullName()).Stats())
	if err != nil {
		log.Errorf("could not render stats: %v", err)
		return &discordgo.InteractionResponseData{Content: "> There was an unexpected error loading your statistics."}
	}

	return &discordgo.InteractionResponseData{
		Content: fmt.Sprintf("%v\n%v", player.Mention(), codeBlock(text)),
	}
}

func (m *Manager) newMatch(player *game.Participant) *discordgo.InteractionResponseData {
	return newMatchResponse(player, m.games.Session(player.ID(), player.DisplayFullName()).NewMatch())
}

func newMatchResponse(player *game.Participant, state game.MatchState) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content:    fmt.Sprintf("%v\n> New match started! Choose your weapon!\n> %v", player.Mention(), game.Scoreboard(state)),
		Components: choiceButtons(state.ID),
	}
}

func staleMatch() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: "> That match is over. Use the buttons on your latest match.",
		Flags:   discordgo.MessageFlagsEphemeral,
	}
}

func (m *Manager) sendHelp(sender game.Sender, player *game.Participant) {
	text, err := m.reporter.Help(discordHelp)
	if err != nil {
		log.Errorf("could not render help: %v", err)
		return
	}

	if _, err := sender.SendQuoted(fmt.Sprintf("%v, here is how to play:", player.Mention())); err != nil {
		log.Errorf("could not send help heading: %v", err)
		return
	}

	if _, err := sender.SendEmbed(text); err != nil {
		log.Errorf("could not send help: %v", err)
	}
}

func (m *Manager) respond(session *discordgo.Session, ic *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	err := session.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Errorf("error responding to interaction %v: %v", ic.ID, err)
	}
}

func buttonID(matchID uuid.UUID, action string) string {
	return ButtonPrefix + matchID.String() + ":" + action
}

func parseButtonID(customID string) (uuid.UUID, string, error) {
	rest, ok := strings.CutPrefix(customID, ButtonPrefix)
	if !ok {
		return uuid.Nil, "", fmt.Errorf("unknown button %q", customID)
	}

	idStr, action, ok := strings.Cut(rest, ":")
	if !ok {
		return uuid.Nil, "", fmt.Errorf("button %q has no match id", customID)
	}

	matchID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("button %q has an invalid match id: %w", customID, err)
	}

	if matchID == uuid.Nil {
		return uuid.Nil, "", fmt.Errorf("button %q has an empty match id", customID)
	}

	return matchID, action, nil
}

func choiceButtons(matchID uuid.UUID) []discordgo.MessageComponent {
	var buttons []discordgo.MessageComponent
	for _, c := range game.Choices {
		buttons = append(buttons, discordgo.Button{
			Label:    c.Title(),
			Style:    discordgo.PrimaryButton,
			CustomID: buttonID(matchID, c.String()),
			Emoji:    c.Emoji().ComponentEmoji(),
		})
	}

	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}}
}

func newMatchButtons(matchID uuid.UUID) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "New Match",
			Style:    discordgo.SecondaryButton,
			CustomID: buttonID(matchID, ButtonNew),
			Emoji:    &discordgo.ComponentEmoji{Name: "🔄"},
		},
	}}}
}

func codeBlock(str string) string {
	return "```\n" + strings.TrimRight(str, "\n") + "\n```"
}
