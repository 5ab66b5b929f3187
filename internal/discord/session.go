// Package discord is the platform edge: the gateway session, the slash
// command surface and the interaction handlers. Everything below it speaks
// services and repositories; nothing below it imports discordgo except for
// the embed/component types that cross the Messenger boundary.
package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Session wraps the gateway connection behind the narrow messaging surface
// the scheduler and dashboard packages consume.
type Session struct {
	s *discordgo.Session
}

func NewSession(token string) (*Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages
	return &Session{s: s}, nil
}

func (s *Session) Open() error {
	return s.s.Open()
}

func (s *Session) Close() error {
	return s.s.Close()
}

func (s *Session) Raw() *discordgo.Session {
	return s.s
}

func (s *Session) Send(channelID, content string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (string, error) {
	send := &discordgo.MessageSend{
		Content:    content,
		Components: components,
	}
	if embed != nil {
		send.Embeds = []*discordgo.MessageEmbed{embed}
	}

	msg, err := s.s.ChannelMessageSendComplex(channelID, send)
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

func (s *Session) Edit(channelID, messageID string, embed *discordgo.MessageEmbed) error {
	embeds := []*discordgo.MessageEmbed{embed}
	empty := ""
	_, err := s.s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel: channelID,
		ID:      messageID,
		Content: &empty,
		Embeds:  &embeds,
	})
	return err
}

func (s *Session) Delete(channelID, messageID string) error {
	return s.s.ChannelMessageDelete(channelID, messageID)
}

func (s *Session) SendDM(userID, content string) error {
	channel, err := s.s.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("open DM channel: %w", err)
	}
	_, err = s.s.ChannelMessageSend(channel.ID, content)
	return err
}

// DisplayName resolves a user id to something printable. An error means the
// user cannot be resolved anymore and callers may prune their data.
func (s *Session) DisplayName(userID string) (string, error) {
	user, err := s.s.User(userID)
	if err != nil {
		return "", err
	}
	if user.GlobalName != "" {
		return user.GlobalName, nil
	}
	return user.Username, nil
}
