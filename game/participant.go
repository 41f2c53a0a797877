package game

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Participant identifies the Discord user behind a command. Guild commands
// carry a member; direct messages only carry a user.
type Participant struct {
	Member *discordgo.Member
	User   *discordgo.User
}

func NewParticipant(member *discordgo.Member, user *discordgo.User) *Participant {
	if member != nil && member.User != nil {
		user = member.User
	}

	return &Participant{Member: member, User: user}
}

func (p *Participant) ID() string {
	if p.User == nil {
		return ""
	}

	return p.User.ID
}

func (p *Participant) DisplayName() string {
	if p.Member != nil && p.Member.Nick != "" {
		return p.Member.Nick
	}

	if p.User == nil {
		return "unknown"
	}

	if p.User.GlobalName != "" {
		return p.User.GlobalName
	}

	return p.User.Username
}

func (p *Participant) Mention() string {
	return fmt.Sprintf("<@%v>", p.ID())
}

func (p *Participant) DisplayFullName() string {
	if p.User == nil {
		return p.DisplayName()
	}

	return fmt.Sprintf("%v (%v, %v)", p.DisplayName(), p.User.Username, p.User.ID)
}
