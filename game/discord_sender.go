package game

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/deadloct/rps-championship-bot/settings"
	log "github.com/sirupsen/logrus"
)

type Sender interface {
	SendQuoted(str string) (*discordgo.Message, error)
	SendEmbed(str string) (*discordgo.Message, error)
}

// ChannelMessenger is the part of *discordgo.Session the sender needs.
type ChannelMessenger interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type SendingFunc func(str string) (*discordgo.Message, error)

type DiscordSender struct {
	channelID string
	messenger ChannelMessenger
	maxLength int
}

func NewDiscordSender(messenger ChannelMessenger, channelID string) *DiscordSender {
	return &DiscordSender{
		channelID: channelID,
		messenger: messenger,
		maxLength: settings.DiscordMaxMessageLength,
	}
}

func (s *DiscordSender) SendQuoted(str string) (*discordgo.Message, error) {
	return s.sendBlock(str, func(block string) (*discordgo.Message, error) {
		return s.normal(Quote(block))
	})
}

func (s *DiscordSender) SendEmbed(str string) (*discordgo.Message, error) {
	return s.sendBlock(str, s.embed)
}

// lineOverhead covers the quote marker and blank-line filler Quote may add.
const lineOverhead = len("> ") + len(settings.WhiteSpaceChar) + len("\n")

// sendBlock splits str on line boundaries into messages that fit Discord's
// length limit. The last message sent is returned.
func (s *DiscordSender) sendBlock(str string, sender SendingFunc) (*discordgo.Message, error) {
	var (
		msg     *discordgo.Message
		errs    []error
		payload []string
		size    int
	)

	flush := func() {
		if len(payload) == 0 {
			return
		}

		m, err := sender(strings.Join(payload, "\n"))
		if m != nil {
			msg = m
		}
		errs = append(errs, err)
		payload = nil
		size = 0
	}

	limit := s.maxLength - lineOverhead

	for _, line := range strings.Split(str, "\n") {
		if len(line) > limit {
			flush()
			for _, part := range splitWords(line, limit) {
				payload = []string{part}
				flush()
			}
			continue
		}

		cost := len(line) + lineOverhead
		if size+cost > s.maxLength {
			flush()
		}

		payload = append(payload, line)
		size += cost
	}

	flush()
	return msg, errors.Join(errs...)
}

// splitWords breaks an over-long line on spaces. Words longer than limit are
// cut on a rune boundary.
func splitWords(str string, limit int) []string {
	var (
		parts []string
		line  string
	)

	for _, word := range strings.Fields(str) {
		for len(word) > limit {
			if line != "" {
				parts = append(parts, line)
				line = ""
			}
			cut := limit
			for cut > 0 && !utf8.RuneStart(word[cut]) {
				cut--
			}
			if cut == 0 {
				_, cut = utf8.DecodeRuneInString(word)
			}

			parts = append(parts, word[:cut])
			word = word[cut:]
		}

		// Space character between line and word is why this uses >= instead of >
		if line != "" && len(line)+len(word)+1 >= limit {
			parts = append(parts, line)
			line = ""
		}

		if line == "" {
			line = word
		} else {
			line += " " + word
		}
	}

	if line != "" {
		parts = append(parts, line)
	}

	return parts
}

func (s *DiscordSender) normal(str string) (*discordgo.Message, error) {
	log.Tracef("sending message of length %v", len(str))
	msg, err := s.messenger.ChannelMessageSend(s.channelID, str)
	if err != nil {
		log.Errorf("error sending message of length %v: %v", len(str), err)
	}

	return msg, err
}

func (s *DiscordSender) embed(str string) (*discordgo.Message, error) {
	log.Tracef("sending embed of length %v", len(str))
	msg, err := s.messenger.ChannelMessageSendEmbed(s.channelID, &discordgo.MessageEmbed{
		Description: str,
	})
	if err != nil {
		log.Errorf("error sending embed of length %v: %v", len(str), err)
	}

	return msg, err
}

// Quote prefixes every line with a Discord block quote marker.
func Quote(str string) string {
	lines := strings.Split(str, "\n")
	for i, line := range lines {
		if line == "" {
			line = settings.WhiteSpaceChar
		}
		lines[i] = "> " + line
	}

	return strings.Join(lines, "\n")
}
