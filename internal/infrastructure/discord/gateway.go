package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/coupon-quest/coupon-quest/internal/application/quest"
)

const (
	commandName        = "quiz"
	commandDescription = "Start the coupon quest!"
)

// Gateway adapts Discord events to the quest service boundary: the /quiz
// slash command becomes a start request, direct messages become answer
// events, and outbound DMs implement quest.Messenger.
type Gateway struct {
	session *discordgo.Session
	quest   *quest.Service
	appID   string
	guildID string
	logger  zerolog.Logger
}

// NewGateway creates a gateway for the given bot token. The session is not
// opened yet; call Start once the quest service is wired in.
func NewGateway(token, appID, guildID string, logger zerolog.Logger) (*Gateway, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	return &Gateway{
		session: session,
		appID:   appID,
		guildID: guildID,
		logger:  logger.With().Str("service", "discord").Logger(),
	}, nil
}

// SendDirect implements quest.Messenger.
func (g *Gateway) SendDirect(_ context.Context, userID, text string) error {
	ch, err := g.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open dm channel: %w", err)
	}
	if _, err := g.session.ChannelMessageSend(ch.ID, text); err != nil {
		return fmt.Errorf("failed to send dm: %w", err)
	}
	return nil
}

// Start attaches handlers, opens the gateway connection, and registers the
// guild slash command.
func (g *Gateway) Start(questSvc *quest.Service) error {
	g.quest = questSvc
	g.session.AddHandler(g.onInteraction)
	g.session.AddHandler(g.onMessage)

	if err := g.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord connection: %w", err)
	}

	if g.appID == "" && g.session.State.User != nil {
		g.appID = g.session.State.User.ID
	}

	_, err := g.session.ApplicationCommandCreate(g.appID, g.guildID, &discordgo.ApplicationCommand{
		Name:        commandName,
		Description: commandDescription,
	})
	if err != nil {
		return fmt.Errorf("failed to register /%s command: %w", commandName, err)
	}

	g.logger.Info().Str("guild_id", g.guildID).Msg("discord gateway connected")
	return nil
}

// Close shuts down the gateway connection.
func (g *Gateway) Close() error {
	return g.session.Close()
}

func (g *Gateway) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.ApplicationCommandData().Name != commandName {
		return
	}
	userID := interactionUserID(i)
	if userID == "" {
		return
	}

	reply := g.quest.HandleStart(context.Background(), userID)
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: reply,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		g.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to respond to interaction")
	}
}

func (g *Gateway) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	// A message with no guild arrived over a DM channel.
	isDirect := m.GuildID == ""

	reply, handled := g.quest.HandleMessage(context.Background(), m.Author.ID, m.Content, isDirect)
	if !handled {
		return
	}
	if _, err := s.ChannelMessageSendReply(m.ChannelID, reply, m.Reference()); err != nil {
		g.logger.Warn().Err(err).Str("user_id", m.Author.ID).Msg("failed to send reply")
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
