package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/deadloct/rps-championship-bot/game"
	"github.com/deadloct/rps-championship-bot/stats"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeed = 5

func testDiscordManager(t *testing.T) (*Manager, map[string]*stats.MemoryStore) {
	t.Helper()

	reporter, err := game.NewReporter(nil)
	require.NoError(t, err)

	stores := make(map[string]*stats.MemoryStore)
	games := game.NewManager(game.ManagerConfig{
		StatsDir:  "stats",
		NewPicker: func() game.Picker { return game.NewSeededPicker(testSeed) },
		NewStore: func(path string) stats.Store {
			s := &stats.MemoryStore{}
			stores[path] = s
			return s
		},
	})

	return NewManager(games, reporter), stores
}

func testPlayer(id string) *game.Participant {
	return game.NewParticipant(&discordgo.Member{User: &discordgo.User{ID: id, Username: "user-" + id}}, nil)
}

func currentMatch(m *Manager, player *game.Participant) uuid.UUID {
	return m.games.Session(player.ID(), player.DisplayFullName()).Match().ID
}

func customIDs(components []discordgo.MessageComponent) []string {
	var ids []string
	for _, c := range components {
		row, ok := c.(discordgo.ActionsRow)
		if !ok {
			continue
		}

		for _, b := range row.Components {
			if button, ok := b.(discordgo.Button); ok {
				ids = append(ids, button.CustomID)
			}
		}
	}

	return ids
}

func TestManager_PlayMatch(t *testing.T) {
	m, stores := testDiscordManager(t)
	player := testPlayer("42")
	moves := winningInput(t, testSeed, 2)

	first := m.play(player, uuid.Nil, moves[0])
	assert.True(t, strings.HasPrefix(first.Content, "<@42>\n> "))
	assert.Contains(t, first.Content, "You WIN this round!")
	matchID := currentMatch(m, player)
	id := matchID.String()
	assert.Equal(t, []string{"rps:" + id + ":rock", "rps:" + id + ":paper", "rps:" + id + ":scissors"}, customIDs(first.Components))
	assert.Empty(t, first.Embeds)

	// the second round comes in through a button
	second := m.button(player, buttonID(matchID, moves[1]))
	require.Len(t, second.Embeds, 1)
	assert.Contains(t, second.Embeds[0].Description, "YOU ARE THE CHAMPION!")
	assert.Equal(t, []string{"rps:" + id + ":new"}, customIDs(second.Components))

	third := m.play(player, uuid.Nil, "rock")
	assert.Contains(t, third.Content, "Match Over")
	assert.Equal(t, discordgo.MessageFlagsEphemeral, third.Flags)
	assert.Equal(t, []string{"rps:" + id + ":new"}, customIDs(third.Components))

	store := stores[filepath.Join("stats", "42.json")]
	require.NotNil(t, store)
	assert.Equal(t, 1, store.Record.MatchesWon)
}

func TestManager_InvalidChoice(t *testing.T) {
	m, stores := testDiscordManager(t)

	data := m.play(testPlayer("1"), uuid.Nil, "lizard")
	assert.Contains(t, data.Content, "is not a weapon")
	assert.Equal(t, discordgo.MessageFlagsEphemeral, data.Flags)
	assert.Empty(t, stores, "invalid input should not open a session")
}

func TestManager_NewMatchButton(t *testing.T) {
	m, _ := testDiscordManager(t)
	player := testPlayer("7")
	moves := winningInput(t, testSeed, 2)

	m.play(player, uuid.Nil, moves[0])
	over := m.play(player, uuid.Nil, moves[1])
	oldMatch := currentMatch(m, player)

	data := m.button(player, customIDs(over.Components)[0])
	assert.Contains(t, data.Content, "New match started!")
	assert.Contains(t, data.Content, "You: 0  |  Round: 1  |  Computer: 0")
	newMatch := currentMatch(m, player)
	assert.NotEqual(t, oldMatch, newMatch)
	assert.Equal(t, buttonID(newMatch, "rock"), customIDs(data.Components)[0])
}

func TestManager_StaleButtons(t *testing.T) {
	m, _ := testDiscordManager(t)
	player := testPlayer("8")
	moves := winningInput(t, testSeed, 2)

	m.play(player, uuid.Nil, moves[0])
	over := m.play(player, uuid.Nil, moves[1])
	finished := currentMatch(m, player)
	staleNew := customIDs(over.Components)[0]

	started := m.button(player, staleNew)
	require.NotContains(t, started.Content, "That match is over")
	current := currentMatch(m, player)

	round := m.button(player, buttonID(current, "rock"))
	require.Contains(t, round.Content, "Round: 2")
	before := m.games.Session(player.ID(), player.DisplayFullName()).Match()

	tests := map[string]string{
		"new match from a finished match": staleNew,
		"choice from a finished match":    buttonID(finished, "paper"),
	}

	for name, customID := range tests {
		t.Run(name, func(t *testing.T) {
			data := m.button(player, customID)
			assert.Contains(t, data.Content, "That match is over")
			assert.Equal(t, discordgo.MessageFlagsEphemeral, data.Flags)
			assert.Equal(t, before, m.games.Session(player.ID(), player.DisplayFullName()).Match())
		})
	}
}

func TestManager_MalformedButtons(t *testing.T) {
	m, stores := testDiscordManager(t)

	tests := map[string]string{
		"no match id":    "rps:rock",
		"legacy new":     "rps:new",
		"invalid id":     "rps:not-a-uuid:rock",
		"nil id":         buttonID(uuid.Nil, "rock"),
		"unknown prefix": "hg:" + uuid.NewString() + ":rock",
	}

	for name, customID := range tests {
		t.Run(name, func(t *testing.T) {
			data := m.button(testPlayer("5"), customID)
			assert.Contains(t, data.Content, "That button no longer works")
			assert.Equal(t, discordgo.MessageFlagsEphemeral, data.Flags)
		})
	}

	assert.Empty(t, stores, "malformed buttons should not open a session")
}

func TestManager_Stats(t *testing.T) {
	m, _ := testDiscordManager(t)
	player := testPlayer("9")
	moves := winningInput(t, testSeed, 2)

	m.play(player, uuid.Nil, moves[0])
	m.play(player, uuid.Nil, moves[1])

	data := m.stats(player)
	assert.Contains(t, data.Content, "```")
	assert.Contains(t, data.Content, "Matches Won:     1")
	assert.Contains(t, data.Content, "Win Rate:        100.0%")
}

func TestManager_PlayersAreIndependent(t *testing.T) {
	m, stores := testDiscordManager(t)
	moves := winningInput(t, testSeed, 2)

	m.play(testPlayer("a"), uuid.Nil, moves[0])
	m.play(testPlayer("a"), uuid.Nil, moves[1])
	m.play(testPlayer("b"), uuid.Nil, moves[0])

	assert.Len(t, stores, 2)
	assert.Equal(t, 1, stores[filepath.Join("stats", "a.json")].Record.TotalMatches)
	assert.Equal(t, 0, stores[filepath.Join("stats", "b.json")].Record.TotalMatches)
}

type bufferSender struct {
	quoted []string
	embeds []string
}

func (b *bufferSender) SendQuoted(str string) (*discordgo.Message, error) {
	b.quoted = append(b.quoted, game.Quote(str))
	return nil, nil
}

func (b *bufferSender) SendEmbed(str string) (*discordgo.Message, error) {
	b.embeds = append(b.embeds, str)
	return nil, nil
}

func TestManager_SendHelp(t *testing.T) {
	m, _ := testDiscordManager(t)
	sender := &bufferSender{}

	m.sendHelp(sender, testPlayer("3"))

	require.Len(t, sender.quoted, 1)
	assert.Contains(t, sender.quoted[0], "<@3>")

	require.Len(t, sender.embeds, 1)
	for _, cmd := range []string{CommandPlay, CommandStats, CommandNew, CommandHelp} {
		assert.Contains(t, sender.embeds[0], "/"+cmd)
	}
}

func TestCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range commands {
		names[c.Name] = true
	}

	for _, name := range []string{CommandHelp, CommandPlay, CommandStats, CommandNew} {
		assert.True(t, names[name], "missing command %v", name)
	}

	var choices []string
	for _, c := range commands[1].Options[0].Choices {
		choices = append(choices, c.Value.(string))
	}
	assert.Equal(t, []string{"rock", "paper", "scissors"}, choices)
}
