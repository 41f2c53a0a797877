package settings

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

type EmojiKey string

// EmojiInfo describes either a plain unicode emoji or a custom guild emoji.
// Custom emoji take precedence when both a name and an ID are configured.
type EmojiInfo struct {
	Unicode  string
	Name     string
	ID       string
	Animated bool
}

func (e EmojiInfo) Custom() bool {
	return e.Name != "" && e.ID != ""
}

func (e EmojiInfo) EmojiCode() string {
	if !e.Custom() {
		return e.Unicode
	}

	format := "<:%v:%v>"
	if e.Animated {
		format = "<a:%v:%v>"
	}

	return fmt.Sprintf(format, e.Name, e.ID)
}

// ComponentEmoji returns the emoji in the form used by message buttons.
func (e EmojiInfo) ComponentEmoji() *discordgo.ComponentEmoji {
	if e.Custom() {
		return &discordgo.ComponentEmoji{Name: e.Name, ID: e.ID, Animated: e.Animated}
	}

	return &discordgo.ComponentEmoji{Name: e.Unicode}
}

var (
	EmojiRock     EmojiKey = "Rock"
	EmojiPaper    EmojiKey = "Paper"
	EmojiScissors EmojiKey = "Scissors"
	EmojiTrophy   EmojiKey = "Trophy"
	EmojiComputer EmojiKey = "Computer"
	EmojiTie      EmojiKey = "Tie"
	EmojiStats    EmojiKey = "Stats"

	emojis = map[EmojiKey]EmojiInfo{
		EmojiRock:     customizable("ROCK", "🪨"),
		EmojiPaper:    customizable("PAPER", "📄"),
		EmojiScissors: customizable("SCISSORS", "✂️"),
		EmojiTrophy:   customizable("TROPHY", "🏆"),
		EmojiComputer: customizable("COMPUTER", "🤖"),
		EmojiTie:      {Unicode: "🤝"},
		EmojiStats:    {Unicode: "📊"},
	}
)

func GetEmoji(key EmojiKey) EmojiInfo {
	v, ok := emojis[key]
	if !ok {
		return EmojiInfo{}
	}

	return v
}

func customizable(key, unicode string) EmojiInfo {
	return EmojiInfo{
		Unicode:  unicode,
		Name:     GetenvStr(key + "_EMOJI_NAME"),
		ID:       GetenvStr(key + "_EMOJI_ID"),
		Animated: GetenvBool(key + "_EMOJI_ANIMATED"),
	}
}

func GetenvStr(key string) string {
	return os.Getenv(EnvKey(key))
}

func GetenvBool(key string) bool {
	s := GetenvStr(key)
	if s == "" {
		return false
	}

	v, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}

	return v
}
