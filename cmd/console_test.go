package cmd

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/deadloct/rps-championship-bot/game"
	"github.com/deadloct/rps-championship-bot/stats"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.WarnLevel)
}

// winningInput returns the commands that beat every pick of a picker seeded
// with seed.
func winningInput(t *testing.T, seed uint64, rounds int) []string {
	t.Helper()
	preview := game.NewSeededPicker(seed)

	var input []string
	for i := 0; i < rounds; i++ {
		c, err := preview.Pick()
		require.NoError(t, err)
		input = append(input, game.CounterTo(c).String())
	}

	return input
}

func testRunConsole(t *testing.T, store stats.Store, seed uint64, input []string) string {
	t.Helper()

	reporter, err := game.NewReporter(nil)
	require.NoError(t, err)

	session := game.NewSession(game.SessionConfig{Picker: game.NewSeededPicker(seed), Store: store})

	var out bytes.Buffer
	console := NewConsole(strings.NewReader(strings.Join(input, "\n")+"\n"), &out, session, reporter)
	require.NoError(t, console.Run(context.Background()))

	return out.String()
}

func TestConsole_WinMatchThenQuit(t *testing.T) {
	const seed = 7
	store := &stats.MemoryStore{}
	input := append(winningInput(t, seed, 2), "stats", "quit")

	out := testRunConsole(t, store, seed, input)

	assert.Contains(t, out, "You WIN this round!")
	assert.Contains(t, out, "YOU ARE THE CHAMPION!")
	assert.Contains(t, out, "Final Score: You 2 - 0 Computer")
	assert.Contains(t, out, "Matches Won:     1")
	assert.Contains(t, out, "Goodbye!")

	assert.Equal(t, stats.Record{MatchesWon: 1, TotalMatches: 1, RoundsWon: 2, TotalRounds: 2}, store.Record)
	assert.Equal(t, 2, store.Saves, "expected a save at match end and another on quit")
}

func TestConsole_MatchOverAndNewMatch(t *testing.T) {
	const seed = 11
	moves := winningInput(t, seed, 3)
	input := []string{moves[0], moves[1], moves[2], "new", moves[2]}

	out := testRunConsole(t, &stats.MemoryStore{}, seed, input)

	assert.Contains(t, out, "Match Over. Start a new match to play again!")
	assert.Contains(t, out, "New match started!")
	assert.Equal(t, 3, strings.Count(out, "You WIN this round!"))
}

func TestConsole_UnknownAndHelp(t *testing.T) {
	out := testRunConsole(t, &stats.MemoryStore{}, 1, []string{"lizard", "help", ""})

	assert.Contains(t, out, `Unknown command "lizard"`)
	assert.Equal(t, 2, strings.Count(out, "quit | q"), "help is printed on start and on request")
}

func TestConsole_EOFSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rps_stats.json")
	testRunConsole(t, stats.NewFileStore(path), 3, []string{"rock"})

	r := stats.NewFileStore(path).Load()
	assert.Equal(t, 1, r.TotalRounds)
	assert.Equal(t, 0, r.TotalMatches)
}

func TestConsole_ContextCancel(t *testing.T) {
	reporter, err := game.NewReporter(nil)
	require.NoError(t, err)

	store := &stats.MemoryStore{}
	session := game.NewSession(game.SessionConfig{Store: store})

	in, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewConsole(in, io.Discard, session, reporter).Run(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("console did not stop after cancel")
	}

	assert.Equal(t, 1, store.Saves)
}
